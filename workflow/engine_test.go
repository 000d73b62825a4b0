package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/urferr/embabel-agent-examples/tools"
)

// reviewedDraft simulates a draft/review/redo pipeline: two writers draft in
// parallel, an editor merges, a reviewer rejects the first merge and accepts
// the second.
func TestEngineCritiqueLoop(t *testing.T) {
	var reviews int
	var mtx sync.Mutex

	draft := func(model string) Handler {
		return func(ctx context.Context, b *Blackboard) (any, error) {
			topic, _ := Get[string](b, "topic")
			return fmt.Sprintf("%s draft about %s", model, topic), nil
		}
	}
	redo := func(model string) Handler {
		return func(ctx context.Context, b *Blackboard) (any, error) {
			c, _ := Get[critique](b, "review")
			return fmt.Sprintf("%s redo addressing %s", model, c.Reasoning), nil
		}
	}

	engine := New()
	engine.AddConditions(
		On("accepted", "review", func(c critique) bool { return c.Accepted }),
		On("rejected", "review", func(c critique) bool { return !c.Accepted }),
	)
	engine.AddActions(
		Action{
			Name:          "draftA",
			Inputs:        []string{"topic"},
			Post:          []string{"accepted"},
			OutputBinding: "draftA",
			CanRerun:      true,
			Handler:       draft("A"),
		},
		Action{
			Name:          "draftB",
			Inputs:        []string{"topic"},
			Post:          []string{"accepted"},
			OutputBinding: "draftB",
			CanRerun:      true,
			Handler:       draft("B"),
		},
		Action{
			Name:          "redoA",
			Inputs:        []string{"topic", "review"},
			Pre:           []string{"rejected"},
			Post:          []string{"accepted"},
			OutputBinding: "draftA",
			CanRerun:      true,
			Handler:       redo("A"),
		},
		Action{
			Name:          "redoB",
			Inputs:        []string{"topic", "review"},
			Pre:           []string{"rejected"},
			Post:          []string{"accepted"},
			OutputBinding: "draftB",
			CanRerun:      true,
			Handler:       redo("B"),
		},
		Action{
			Name:          "merge",
			Inputs:        []string{"draftA", "draftB"},
			Post:          []string{"accepted"},
			OutputBinding: "merged",
			CanRerun:      true,
			Handler: func(ctx context.Context, b *Blackboard) (any, error) {
				a, _ := Get[string](b, "draftA")
				bDraft, _ := Get[string](b, "draftB")
				return a + " + " + bDraft, nil
			},
		},
		Action{
			Name:          "review",
			Inputs:        []string{"merged"},
			Post:          []string{"accepted"},
			OutputBinding: "review",
			CanRerun:      true,
			Handler: func(ctx context.Context, b *Blackboard) (any, error) {
				mtx.Lock()
				reviews++
				n := reviews
				mtx.Unlock()
				if n == 1 {
					return critique{Accepted: false, Reasoning: "needs work"}, nil
				}
				return critique{Accepted: true, Reasoning: "fine"}, nil
			},
		},
		Action{
			Name:          "accept",
			Inputs:        []string{"merged", "review"},
			Pre:           []string{"accepted"},
			OutputBinding: "final",
			AchievesGoal:  true,
			Handler: func(ctx context.Context, b *Blackboard) (any, error) {
				merged, _ := Get[string](b, "merged")
				return merged, nil
			},
		},
	)

	b := NewBlackboard()
	b.Set("topic", "workflows")
	out, err := engine.Run(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	final, ok := out.(string)
	if !ok {
		t.Fatalf("Expect string output, but got %T", out)
	}
	if !strings.Contains(final, "A redo addressing needs work") || !strings.Contains(final, "B redo addressing needs work") {
		t.Errorf("Expect final output from redone drafts, but got %s", final)
	}
	if reviews != 2 {
		t.Errorf("Expect 2 reviews, but got %d", reviews)
	}
}

func TestEngineStalls(t *testing.T) {
	engine := New()
	engine.AddActions(Action{
		Name:   "never",
		Inputs: []string{"missing"},
		Handler: func(ctx context.Context, b *Blackboard) (any, error) {
			return nil, nil
		},
	})
	if _, err := engine.Run(context.Background(), NewBlackboard()); err == nil {
		t.Error("Expect stall error")
	}
}

func TestEngineHandlerError(t *testing.T) {
	boom := errors.New("boom")
	engine := New()
	engine.AddActions(Action{
		Name:          "explode",
		Inputs:        []string{"topic"},
		OutputBinding: "out",
		Handler: func(ctx context.Context, b *Blackboard) (any, error) {
			return nil, boom
		},
	})
	b := NewBlackboard()
	b.Set("topic", "anything")
	if _, err := engine.Run(context.Background(), b); !errors.Is(err, boom) {
		t.Errorf("Expect wrapped handler error, but got %v", err)
	}
}

func TestEngineValidate(t *testing.T) {
	engine := New()
	engine.AddActions(Action{
		Name: "orphan",
		Pre:  []string{"unknown"},
		Handler: func(ctx context.Context, b *Blackboard) (any, error) {
			return nil, nil
		},
	})
	if _, err := engine.Run(context.Background(), NewBlackboard()); err == nil {
		t.Error("Expect validation error for unknown condition")
	}

	engine = New()
	engine.AddActions(Action{
		Name:       "toolless",
		ToolGroups: []string{tools.WebGroup},
		Handler: func(ctx context.Context, b *Blackboard) (any, error) {
			return nil, nil
		},
	})
	if _, err := engine.Run(context.Background(), NewBlackboard()); err == nil {
		t.Error("Expect validation error for missing tool groups")
	}
}
