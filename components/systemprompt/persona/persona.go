package persona

import (
	"fmt"
	"strings"

	"github.com/urferr/embabel-agent-examples/components/systemprompt"
)

// Persona describes the character an agent should adopt when writing output.
// It contributes its description to the system prompt as a context provider.
type Persona struct {
	// Name is the display name of the persona
	Name string `json:"name" yaml:"name" validate:"required"`
	// Description describes who the persona is
	Description string `json:"description,omitempty" yaml:"description"`
	// Voice is the tone of voice the persona writes in
	Voice string `json:"voice,omitempty" yaml:"voice"`
	// Objective is what the persona is trying to achieve
	Objective string `json:"objective,omitempty" yaml:"objective"`
}

var _ systemprompt.ContextProvider = (*Persona)(nil)

// New returns a new Persona
func New(name, description, voice, objective string) *Persona {
	return &Persona{
		Name:        name,
		Description: description,
		Voice:       voice,
		Objective:   objective,
	}
}

func (p Persona) Title() string {
	return "Persona"
}

func (p Persona) Info() string {
	parts := make([]string, 0, 4)
	parts = append(parts, fmt.Sprintf("You are %s.", p.Name))
	if p.Description != "" {
		parts = append(parts, fmt.Sprintf("Your persona: %s.", p.Description))
	}
	if p.Voice != "" {
		parts = append(parts, fmt.Sprintf("Your voice: %s.", p.Voice))
	}
	if p.Objective != "" {
		parts = append(parts, fmt.Sprintf("Your objective: %s.", p.Objective))
	}
	return strings.Join(parts, "\n")
}

// ResponseFormat instructs the model how final output should be formatted.
type ResponseFormat string

const (
	Markdown ResponseFormat = "markdown"
	Text     ResponseFormat = "text"
	HTML     ResponseFormat = "html"
)

var _ systemprompt.ContextProvider = ResponseFormat("")

func (f ResponseFormat) Title() string {
	return "Response format"
}

func (f ResponseFormat) Info() string {
	if f == "" {
		return ""
	}
	return fmt.Sprintf("Format your response as %s.", string(f))
}
