package simple

import (
	"strings"

	"github.com/urferr/embabel-agent-examples/components/systemprompt"
)

// Generator is a plain system prompt generator: a fixed content block
// followed by the context provider sections.
type Generator struct {
	systemprompt.BaseGenerator
	content []string
}

var _ systemprompt.Generator = (*Generator)(nil)

// New returns a new system prompt Generator
func New(content string, options ...Option) *Generator {
	ret := new(Generator)
	ret.content = append(ret.content, content)
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// AddContent appends another content block to the prompt.
func (g *Generator) AddContent(content string) {
	g.content = append(g.content, content)
}

func (g *Generator) Generate() string {
	var b strings.Builder
	for _, block := range g.content {
		b.WriteString(block)
		b.WriteString("\n")
	}
	if providers := g.ContextProviders(); len(providers) > 0 {
		b.WriteString("\n# EXTRA INFORMATION AND CONTEXT\n")
		for _, provider := range providers {
			info := provider.Info()
			if info == "" {
				continue
			}
			b.WriteString("## ")
			b.WriteString(provider.Title())
			b.WriteString("\n")
			b.WriteString(info)
			b.WriteString("\n\n")
		}
	}
	return strings.TrimSpace(b.String())
}
