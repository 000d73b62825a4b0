package cot

import "github.com/urferr/embabel-agent-examples/components/systemprompt"

type Option = func(g *Generator)

// WithBackground appends background lines to the identity section
func WithBackground(lines ...string) Option {
	return func(g *Generator) {
		g.background = append(g.background, lines...)
	}
}

// WithSteps appends reasoning step lines
func WithSteps(lines ...string) Option {
	return func(g *Generator) {
		g.steps = append(g.steps, lines...)
	}
}

// WithOutputInstructs appends output instruction lines
func WithOutputInstructs(lines ...string) Option {
	return func(g *Generator) {
		g.outputInstructs = append(g.outputInstructs, lines...)
	}
}

// WithContextProviders set Generator context providers
func WithContextProviders(providers ...systemprompt.ContextProvider) Option {
	return func(g *Generator) {
		g.AddContextProviders(providers...)
	}
}
