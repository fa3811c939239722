package principals

import (
	"sync"
	"time"

	"github.com/mmcdole/viking-permd/pkg/logging"
)

// Repository provides cached access to principal data
type Repository struct {
	source        Resolver
	cacheDuration time.Duration

	mu          sync.RWMutex
	cache       map[string]*Principal
	lastRefresh map[string]time.Time
}

// NewRepository creates a new Repository
func NewRepository(source Resolver, cacheDuration time.Duration) *Repository {
	return &Repository{
		source:        source,
		cacheDuration: cacheDuration,
		cache:         make(map[string]*Principal),
		lastRefresh:   make(map[string]time.Time),
	}
}

// ResolvePrincipal implements Resolver, using the cache when fresh
func (r *Repository) ResolvePrincipal(sender string) (*Principal, error) {
	r.mu.RLock()
	principal, exists := r.cache[sender]
	lastRefresh := r.lastRefresh[sender]
	r.mu.RUnlock()

	if exists && time.Since(lastRefresh) < r.cacheDuration {
		logging.App.Debug("using cached principal", "sender", sender, "cache_age", time.Since(lastRefresh))
		return principal, nil
	}

	principal, err := r.source.ResolvePrincipal(sender)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[sender] = principal
	r.lastRefresh[sender] = time.Now()
	r.mu.Unlock()

	return principal, nil
}

// RefreshPrincipal forces a refresh of a principal from the source
func (r *Repository) RefreshPrincipal(sender string) error {
	principal, err := r.source.ResolvePrincipal(sender)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cache[sender] = principal
	r.lastRefresh[sender] = time.Now()
	r.mu.Unlock()

	logging.App.Debug("refreshed principal cache", "sender", sender)
	return nil
}
