package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/urferr/embabel-agent-examples/tools"
)

const DefaultMaxIterations = 20

// Engine interprets a set of declaratively described actions and conditions.
// Each iteration it selects every runnable action (inputs bound,
// preconditions true, not yet run unless rerunnable with changed inputs),
// runs the selection in parallel, publishes the outputs, and stops once an
// action marked as achieving the goal has produced its output.
type Engine struct {
	actions       []Action
	conditions    map[string]Condition
	groups        *tools.Groups
	logger        *slog.Logger
	maxIterations int
}

type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithToolGroups sets the registry used to resolve action tool groups.
func WithToolGroups(groups *tools.Groups) Option {
	return func(e *Engine) {
		e.groups = groups
	}
}

// WithMaxIterations bounds the number of scheduling iterations.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		e.maxIterations = n
	}
}

// New returns a new Engine.
func New(opts ...Option) *Engine {
	ret := &Engine{
		conditions: make(map[string]Condition),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.maxIterations == 0 {
		ret.maxIterations = DefaultMaxIterations
	}
	return ret
}

// AddActions registers actions with the engine.
func (e *Engine) AddActions(actions ...Action) *Engine {
	e.actions = append(e.actions, actions...)
	return e
}

// AddConditions registers named conditions with the engine.
func (e *Engine) AddConditions(conditions ...Condition) *Engine {
	for _, c := range conditions {
		e.conditions[c.Name] = c
	}
	return e
}

// validate checks that every referenced condition and tool group exists.
func (e *Engine) validate() error {
	for _, action := range e.actions {
		if action.Handler == nil {
			return fmt.Errorf("action %s has no handler", action.Name)
		}
		for _, name := range append(append([]string{}, action.Pre...), action.Post...) {
			if _, ok := e.conditions[name]; !ok {
				return fmt.Errorf("action %s references unknown condition %s", action.Name, name)
			}
		}
		if len(action.ToolGroups) > 0 {
			if e.groups == nil {
				return fmt.Errorf("action %s requires tool groups but none are registered", action.Name)
			}
			if _, err := e.groups.Resolve(action.ToolGroups...); err != nil {
				return fmt.Errorf("action %s: %w", action.Name, err)
			}
		}
	}
	return nil
}

// Run drives the workflow against the blackboard until a goal action
// produces its output. Returns the goal action's output.
func (e *Engine) Run(ctx context.Context, b *Blackboard) (any, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	// input binding versions recorded per action at its last run
	lastRun := make(map[string]map[string]int64)
	for iter := 0; iter < e.maxIterations; iter++ {
		runnable := e.runnable(b, lastRun)
		if len(runnable) == 0 {
			return nil, errors.New("workflow stalled before achieving its goal")
		}
		results := make([]any, len(runnable))
		g, gctx := errgroup.WithContext(ctx)
		for idx, action := range runnable {
			versions := make(map[string]int64, len(action.Inputs))
			for _, input := range action.Inputs {
				versions[input] = b.Version(input)
			}
			lastRun[action.Name] = versions
			e.logger.Debug("running action", "action", action.Name, "iteration", iter)
			g.Go(func() error {
				out, err := action.Handler(gctx, b)
				if err != nil {
					return fmt.Errorf("action %s: %w", action.Name, err)
				}
				results[idx] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for idx, action := range runnable {
			if action.OutputBinding != "" && results[idx] != nil {
				b.Set(action.OutputBinding, results[idx])
			}
			e.logger.Info("action completed", "action", action.Name, "output", action.OutputBinding)
		}
		for idx, action := range runnable {
			if action.AchievesGoal {
				e.logger.Info("goal achieved", "action", action.Name)
				return results[idx], nil
			}
		}
	}
	return nil, fmt.Errorf("goal not achieved after %d iterations", e.maxIterations)
}

// runnable selects every action whose inputs are bound, whose preconditions
// hold, and which has not run yet unless it can rerun and one of its inputs
// changed since its last run.
func (e *Engine) runnable(b *Blackboard, lastRun map[string]map[string]int64) []Action {
	var selection []Action
	for _, action := range e.actions {
		if !b.Has(action.Inputs...) {
			continue
		}
		satisfied := true
		for _, name := range action.Pre {
			if !e.conditions[name].Eval(b) {
				satisfied = false
				break
			}
		}
		if !satisfied {
			continue
		}
		if versions, ran := lastRun[action.Name]; ran {
			if !action.CanRerun {
				continue
			}
			changed := false
			for _, input := range action.Inputs {
				if b.Version(input) > versions[input] {
					changed = true
					break
				}
			}
			if !changed {
				continue
			}
		}
		selection = append(selection, action)
	}
	return selection
}
