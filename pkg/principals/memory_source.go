package principals

import "sync"

// MemorySource implements Resolver using an in-memory map
type MemorySource struct {
	mu         sync.RWMutex
	principals map[string]*Principal
}

// NewMemorySource creates a new MemorySource
func NewMemorySource() *MemorySource {
	return &MemorySource{
		principals: make(map[string]*Principal),
	}
}

// ResolvePrincipal implements Resolver
func (s *MemorySource) ResolvePrincipal(sender string) (*Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	principal, ok := s.principals[sender]
	if !ok {
		return nil, ErrPrincipalNotFound
	}
	return principal, nil
}

// AddPrincipal registers a principal under its name
func (s *MemorySource) AddPrincipal(principal *Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals[principal.Name] = principal
}

// RemovePrincipal removes a principal by name
func (s *MemorySource) RemovePrincipal(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.principals, name)
}
