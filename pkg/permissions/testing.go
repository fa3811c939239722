package permissions

import (
	"github.com/mmcdole/viking-permd/pkg/principals"
)

// TestGroup describes one group for NewTestRegistry
type TestGroup struct {
	Name        string
	Permissions []string
	Inheritance []string
	IsDefault   bool
}

// NewTestRegistry builds a registry from the given groups in order
func NewTestRegistry(groups []TestGroup) *Registry {
	registry := NewRegistry()
	for _, g := range groups {
		_ = registry.Add(&Group{
			Name:        g.Name,
			Permissions: g.Permissions,
			Inheritance: g.Inheritance,
			IsDefault:   g.IsDefault,
		})
	}
	return registry
}

// NewTestEngine builds a loaded engine over a memory source holding the
// given groups and a resolver for the given player/group assignments.
// Reserved console and server senders resolve to their principal kinds.
func NewTestEngine(groups []TestGroup, players map[string]string) (*Engine, error) {
	source := NewMemorySource()
	if err := source.Install(NewTestRegistry(groups)); err != nil {
		return nil, err
	}

	resolver := principals.NewMemorySource()
	for name, group := range players {
		resolver.AddPrincipal(&principals.Principal{
			Name:  name,
			Kind:  principals.KindPlayer,
			Group: group,
		})
	}

	engine := NewEngine(source, principals.NewReservedResolver(resolver))
	if err := engine.Reload(); err != nil {
		return nil, err
	}
	return engine, nil
}
