package permissions

// DefaultRegistry returns the built-in group definitions installed by Create
// when no definition store exists. Base groups are declared after the groups
// that inherit them, the order the single-pass flattening expects.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, group := range []*Group{
		{
			Name:        "owner",
			Permissions: []string{UniversalWildcard},
		},
		{
			Name:        "admin",
			Permissions: []string{"ban.*", "round.*", "teleport.*"},
			Inheritance: []string{"moderator"},
		},
		{
			Name:        "moderator",
			Permissions: []string{"kick.*", "mute.player"},
			Inheritance: []string{"default"},
		},
		{
			Name:        "default",
			Permissions: []string{"chat.send"},
			IsDefault:   true,
		},
	} {
		// Names are distinct by construction
		_ = registry.Add(group)
	}
	return registry
}
