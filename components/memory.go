package components

import (
	"fmt"
	"sync"

	"github.com/urferr/embabel-agent-examples/schema"
)

// Memory manages the chat history for an agent.
// Safe for concurrent use.
type Memory struct {
	// history is the list of messages in the conversation so far
	history []Message
	// turnID is the ID of the current turn
	turnID string
	// maxMessages is the maximum number of messages to keep in history.
	// When exceeded, oldest messages are removed first. Zero means unbounded.
	maxMessages int
	mtx         sync.RWMutex
}

// NewMemory initializes a Memory with an empty history and optional size constraint.
func NewMemory(maxMessages int) *Memory {
	return &Memory{
		maxMessages: maxMessages,
		history:     make([]Message, 0, maxMessages+1),
	}
}

// MaxMessages returns the max number of messages
func (m *Memory) MaxMessages() int {
	return m.maxMessages
}

// SetMaxMessages set the max number of messages
func (m *Memory) SetMaxMessages(maxMessages int) *Memory {
	m.maxMessages = maxMessages
	return m
}

// TurnID returns the current turn ID
func (m *Memory) TurnID() string {
	return m.turnID
}

// SetTurnID set the current turn ID
func (m *Memory) SetTurnID(turnID string) *Memory {
	m.turnID = turnID
	return m
}

// NewTurn starts a new turn with a freshly generated turn ID.
func (m *Memory) NewTurn() *Memory {
	return m.SetTurnID(NewTurnID())
}

// NewMessage adds a message to the chat history and manages overflow.
func (m *Memory) NewMessage(role MessageRole, content schema.Schema) *Message {
	msg := NewMessage(role, content).SetTurnID(m.turnID)
	m.mtx.Lock()
	m.history = append(m.history, *msg)
	if m.maxMessages > 0 && len(m.history) > m.maxMessages {
		m.history = m.history[1:]
	}
	m.mtx.Unlock()
	return msg
}

// SetHistory replaces the chat history with a copy of the given messages.
func (m *Memory) SetHistory(history []Message) *Memory {
	m.mtx.Lock()
	m.history = make([]Message, len(history))
	copy(m.history, history)
	m.mtx.Unlock()
	return m
}

// History retrieves the chat history.
func (m *Memory) History() []Message {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.history
}

// Copy copies the state of src into this memory.
func (m *Memory) Copy(src *Memory) {
	m.SetMaxMessages(src.MaxMessages()).SetTurnID(src.TurnID())
	m.SetHistory(src.History())
}

// Reset clears the chat history.
func (m *Memory) Reset() *Memory {
	m.mtx.Lock()
	m.history = make([]Message, 0, m.maxMessages)
	m.mtx.Unlock()
	return m
}

// DeleteTurn deletes all messages belonging to the given turn ID.
// Returns an error if the turn ID is not found.
func (m *Memory) DeleteTurn(turnID string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	l := len(m.history)
	list := make([]Message, 0, l)
	for _, v := range m.history {
		if v.TurnID() == turnID {
			continue
		}
		list = append(list, v)
	}
	m.history = list
	num := len(list)
	if num == l {
		return fmt.Errorf("TurnID %s not found in memory", turnID)
	}
	if num == 0 {
		m.turnID = ""
	} else if turnID == m.turnID {
		m.turnID = m.history[num-1].TurnID()
	}
	return nil
}

// MessageCount returns the number of messages in the chat history.
func (m *Memory) MessageCount() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.history)
}
