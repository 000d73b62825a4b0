package tools

import "fmt"

// Well-known tool group names. Workflow actions declare which groups they
// need and the runner resolves members from a Groups registry.
const (
	WebGroup     = "web"
	BrowserGroup = "browser"
)

// Groups is a registry of named tool groups.
type Groups struct {
	groups map[string][]AnonymousTool
}

// NewGroups returns an empty tool group registry.
func NewGroups() *Groups {
	return &Groups{
		groups: make(map[string][]AnonymousTool),
	}
}

// Register adds tools to the named group.
func (g *Groups) Register(group string, members ...AnonymousTool) *Groups {
	g.groups[group] = append(g.groups[group], members...)
	return g
}

// Group returns the members of the named group.
// Returns an error when the group has no members.
func (g *Groups) Group(group string) ([]AnonymousTool, error) {
	members := g.groups[group]
	if len(members) == 0 {
		return nil, fmt.Errorf("tool group '%s' not found", group)
	}
	return members, nil
}

// Resolve returns the members of every named group, in declaration order.
func (g *Groups) Resolve(groups ...string) ([]AnonymousTool, error) {
	members := make([]AnonymousTool, 0, len(groups))
	for _, group := range groups {
		list, err := g.Group(group)
		if err != nil {
			return nil, err
		}
		members = append(members, list...)
	}
	return members, nil
}
