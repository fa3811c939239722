package permissions

import (
	"fmt"
	"strings"
)

// Registry holds the group definitions in declaration order. Declaration
// order is significant: Flatten processes groups in a single reverse pass,
// and DefaultGroup breaks ties between multiple default-flagged groups by
// taking the first declared one.
//
// A Registry is built once and never mutated after Flatten; the Engine
// publishes it wholesale behind an atomic pointer.
type Registry struct {
	groups []*Group
	index  map[string]*Group
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]*Group),
	}
}

// Add appends a group to the registry, preserving declaration order
func (r *Registry) Add(group *Group) error {
	if group.Name == "" {
		return fmt.Errorf("adding group: empty name")
	}
	if _, exists := r.index[group.Name]; exists {
		return fmt.Errorf("adding group %q: %w", group.Name, ErrDuplicateGroup)
	}
	r.groups = append(r.groups, group)
	r.index[group.Name] = group
	return nil
}

// Lookup returns the group registered under name
func (r *Registry) Lookup(name string) (*Group, bool) {
	group, ok := r.index[name]
	return group, ok
}

// Groups returns the groups in declaration order
func (r *Registry) Groups() []*Group {
	return r.groups
}

// Len returns the number of registered groups
func (r *Registry) Len() int {
	return len(r.groups)
}

// DefaultGroup returns the first declared group with IsDefault set, or nil
// if no group carries the flag
func (r *Registry) DefaultGroup() *Group {
	for _, group := range r.groups {
		if group.IsDefault {
			return group
		}
	}
	return nil
}

// Flatten computes every group's combined permission set in a single pass
// over the registry in reverse declaration order. A group picks up an
// inherited group's combined set as it stands when the group is visited, so
// a parent must be declared after its child for the inheritance to take
// effect. This matches how definition files are conventionally authored
// (base groups last); it is not a topological closure, and inheritance
// cycles yield whatever partial union existed at visit time.
//
// Names in Inheritance that match no registered group are skipped.
// Combined keys are lowercased; matching is case-insensitive throughout.
func (r *Registry) Flatten() {
	for i := len(r.groups) - 1; i >= 0; i-- {
		group := r.groups[i]
		combined := make(map[string]struct{}, len(group.Permissions))
		for _, perm := range group.Permissions {
			combined[strings.ToLower(perm)] = struct{}{}
		}
		for _, name := range group.Inheritance {
			parent, ok := r.index[name]
			if !ok {
				continue
			}
			for perm := range parent.Combined {
				combined[perm] = struct{}{}
			}
		}
		group.Combined = combined
	}
}
