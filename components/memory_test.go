package components

import (
	"testing"

	"github.com/urferr/embabel-agent-examples/schema"
)

func TestMemoryOverflow(t *testing.T) {
	mem := NewMemory(2)
	mem.NewMessage(UserRole, schema.String("one"))
	mem.NewMessage(AssistantRole, schema.String("two"))
	mem.NewMessage(UserRole, schema.String("three"))
	if n := mem.MessageCount(); n != 2 {
		t.Fatalf("Expect 2 messages, but got %d", n)
	}
	if got := mem.History()[0].StringifiedContent(); got != "two" {
		t.Errorf("Expect oldest message two, but got %s", got)
	}
}

func TestMemoryDeleteTurn(t *testing.T) {
	mem := NewMemory(0)
	mem.NewTurn()
	first := mem.TurnID()
	mem.NewMessage(UserRole, schema.String("q1"))
	mem.NewMessage(AssistantRole, schema.String("a1"))
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.String("q2"))
	if err := mem.DeleteTurn(first); err != nil {
		t.Fatal(err)
	}
	if n := mem.MessageCount(); n != 1 {
		t.Fatalf("Expect 1 message, but got %d", n)
	}
	if err := mem.DeleteTurn("missing"); err == nil {
		t.Error("Expect error for missing turn ID")
	}
}

func TestMemoryCopy(t *testing.T) {
	src := NewMemory(5)
	src.NewTurn()
	src.NewMessage(UserRole, schema.String("hello"))
	dst := NewMemory(0)
	dst.Copy(src)
	if dst.MaxMessages() != 5 {
		t.Errorf("Expect maxMessages 5, but got %d", dst.MaxMessages())
	}
	if dst.TurnID() != src.TurnID() {
		t.Errorf("Expect turnID %s, but got %s", src.TurnID(), dst.TurnID())
	}
	if dst.MessageCount() != 1 {
		t.Errorf("Expect 1 message, but got %d", dst.MessageCount())
	}
}
