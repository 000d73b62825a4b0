package workflow

import "context"

// Handler carries out the work of an action against the blackboard.
type Handler func(ctx context.Context, b *Blackboard) (any, error)

// Action is one declaratively described step of a workflow. The engine
// decides when an action runs from its input bindings and preconditions;
// the action itself only supplies the business logic.
type Action struct {
	// Name identifies the action in logs
	Name string
	// Inputs names the bindings that must be present before the action can run
	Inputs []string
	// Pre names the conditions that must hold before the action can run
	Pre []string
	// Post names the conditions the action works toward. Purely descriptive
	// in this engine but kept with the action so a workflow reads as a plan.
	Post []string
	// OutputBinding is the binding the handler result is stored under
	OutputBinding string
	// CanRerun marks the action as rerunnable when one of its inputs changes
	CanRerun bool
	// ToolGroups names the tool groups the handler needs
	ToolGroups []string
	// AchievesGoal marks the action whose output completes the workflow
	AchievesGoal bool
	// Handler does the work
	Handler Handler
}
