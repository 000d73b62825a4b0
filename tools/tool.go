package tools

import (
	"context"

	"github.com/urferr/embabel-agent-examples/schema"
)

// ITool is the common surface of every tool.
type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
}

// Tool is a typed tool with input schema I and output schema O.
type Tool[I schema.Schema, O schema.Schema] interface {
	ITool
	Run(context.Context, *I, *O) error
}

// AnonymousTool is a tool that can be invoked without compile-time knowledge
// of its schemas, e.g. by an agent dispatching on tool groups.
type AnonymousTool interface {
	ITool
	RunAnonymous(context.Context, any) (any, error)
}

// Config carries the metadata shared by all tools.
type Config struct {
	// title is the presentation title of the tool
	title string
	// description tells the model what the tool does
	description string
}

func (c *Config) SetTitle(v string) {
	c.title = v
}

func (c Config) Title() string {
	return c.title
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}
