package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/Knetic/govaluate"
)

// Condition is a named predicate over the blackboard. Conditions gate
// actions: an action only becomes runnable once all of its preconditions
// evaluate true.
type Condition struct {
	// Name is how actions reference the condition
	Name string
	// Eval evaluates the condition against the blackboard
	Eval func(b *Blackboard) bool
}

// On builds a condition evaluated against the named binding.
// The condition is false while the binding is absent or of the wrong type.
func On[T any](name, binding string, fn func(T) bool) Condition {
	return Condition{
		Name: name,
		Eval: func(b *Blackboard) bool {
			v, ok := Get[T](b, binding)
			if !ok {
				return false
			}
			return fn(v)
		},
	}
}

// Expr builds a condition from a govaluate expression over blackboard
// bindings. Bindings are flattened into expression parameters: a primitive
// binding keeps its name, a struct binding contributes one parameter per
// JSON field joined with an underscore, e.g. critique_accepted.
// The condition is false while a referenced parameter is absent.
func Expr(name, expr string) (Condition, error) {
	exp, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return Condition{}, fmt.Errorf("invalid condition expression %q: %w", expr, err)
	}
	return Condition{
		Name: name,
		Eval: func(b *Blackboard) bool {
			params := flattenBindings(b.Bindings())
			for _, v := range exp.Vars() {
				if _, ok := params[v]; !ok {
					return false
				}
			}
			result, err := exp.Evaluate(params)
			if err != nil {
				return false
			}
			ok, isBool := result.(bool)
			return isBool && ok
		},
	}, nil
}

// flattenBindings converts bindings into govaluate parameters. Struct
// bindings are flattened one level through their JSON representation.
func flattenBindings(bindings map[string]any) map[string]any {
	params := make(map[string]any, len(bindings))
	for name, value := range bindings {
		// govaluate arithmetic wants float64 numbers
		switch v := value.(type) {
		case string, bool, float64:
			params[name] = v
			continue
		case int:
			params[name] = float64(v)
			continue
		case int64:
			params[name] = float64(v)
			continue
		case float32:
			params[name] = float64(v)
			continue
		}
		bs, err := json.Marshal(value)
		if err != nil {
			continue
		}
		fields := make(map[string]any)
		if err := json.Unmarshal(bs, &fields); err != nil {
			continue
		}
		for field, v := range fields {
			switch v.(type) {
			case string, bool, float64:
				params[name+"_"+field] = v
			}
		}
	}
	return params
}
