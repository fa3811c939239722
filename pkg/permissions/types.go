package permissions

// UniversalWildcard is the permission that grants everything, unconditionally.
const UniversalWildcard = ".*"

// Group represents one named role in the registry.
type Group struct {
	// Name is the unique key the group is registered under
	Name string

	// Permissions are the permission strings granted directly to this group
	Permissions []string

	// Inheritance lists the names of other groups this group inherits from,
	// in declaration order
	Inheritance []string

	// IsDefault marks the fallback group for principals with no resolvable
	// group assignment
	IsDefault bool

	// Combined is the flattened permission set: the group's own permissions
	// unioned with the combined permissions of every inherited group. Keys
	// are lowercased. Populated by Registry.Flatten, never loaded.
	Combined map[string]struct{}
}

// Source provides durable storage for group definitions
type Source interface {
	// LoadGroups reads the group definitions in declaration order.
	// The returned registry is unflattened.
	LoadGroups() (*Registry, error)

	// SaveGroups persists the registry verbatim, in iteration order
	SaveGroups(registry *Registry) error

	// Exists reports whether a backing definition store is present
	Exists() (bool, error)

	// Install writes the given registry as the initial definition store,
	// creating any missing parent location
	Install(registry *Registry) error
}
