package components

import (
	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/urferr/embabel-agent-examples/schema"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'assistant')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// Message represents a message in the chat history.
type Message struct {
	content schema.Schema
	// role is the role of the message sender
	role MessageRole
	// turnID is the unique identifier for the turn this message belongs to
	turnID string
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

// StringifiedContent returns the message content serialized for transport
func (m Message) StringifiedContent() string {
	return schema.Stringify(m.content)
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = schema.Stringify(m.content)
}

// ToAnthropic convert message to anthropic Message
func (m Message) ToAnthropic(dist *anthropic.Message) {
	dist.Role = anthropic.ChatRole(m.role)
	dist.Content = []anthropic.MessageContent{anthropic.NewTextMessageContent(schema.Stringify(m.content))}
}

// ToCohere convert message to cohere Message
func (m Message) ToCohere(dist *cohere.Message) {
	switch m.role {
	case SystemRole:
		dist.Role = "SYSTEM"
		dist.System = &cohere.ChatMessage{
			Message: schema.Stringify(m.content),
		}
	case AssistantRole:
		dist.Role = "CHATBOT"
		dist.Chatbot = &cohere.ChatMessage{
			Message: schema.Stringify(m.content),
		}
	default:
		dist.Role = "USER"
		dist.User = &cohere.ChatMessage{
			Message: schema.Stringify(m.content),
		}
	}
}
