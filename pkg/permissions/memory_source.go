package permissions

import "sync"

// MemorySource implements Source in memory, for embedding and tests
type MemorySource struct {
	mu       sync.Mutex
	registry *Registry
}

// NewMemorySource creates a MemorySource with no backing registry
func NewMemorySource() *MemorySource {
	return &MemorySource{}
}

// LoadGroups implements Source. The stored registry is copied so callers
// can flatten and swap it without mutating the source's copy.
func (s *MemorySource) LoadGroups() (*Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry := NewRegistry()
	if s.registry == nil {
		return registry, nil
	}
	for _, group := range s.registry.Groups() {
		if err := registry.Add(&Group{
			Name:        group.Name,
			Permissions: append([]string(nil), group.Permissions...),
			Inheritance: append([]string(nil), group.Inheritance...),
			IsDefault:   group.IsDefault,
		}); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// SaveGroups implements Source
func (s *MemorySource) SaveGroups(registry *Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = registry
	return nil
}

// Exists implements Source
func (s *MemorySource) Exists() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry != nil, nil
}

// Install implements Source
func (s *MemorySource) Install(registry *Registry) error {
	return s.SaveGroups(registry)
}
