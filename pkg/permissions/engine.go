package permissions

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mmcdole/viking-permd/pkg/logging"
	"github.com/mmcdole/viking-permd/pkg/principals"
)

// Engine resolves permission checks against the current group registry.
//
// The registry is published behind an atomic pointer: Reload builds and
// flattens a complete replacement off to the side and swaps it in one step,
// so an in-flight check sees either the old registry or the new one in full,
// never a partial mix. Checks never block on a reload.
type Engine struct {
	source   Source
	resolver principals.Resolver
	registry atomic.Pointer[Registry]

	checksTotal   atomic.Int64
	checksGranted atomic.Int64
	lastReload    atomic.Int64 // unix seconds, 0 until first Reload
}

// Stats is a point-in-time snapshot of engine counters
type Stats struct {
	Groups        int
	ChecksTotal   int64
	ChecksGranted int64
	LastReload    time.Time
}

// NewEngine creates an Engine over the given definition source and principal
// resolver. The registry starts empty; call Reload to populate it.
func NewEngine(source Source, resolver principals.Resolver) *Engine {
	e := &Engine{
		source:   source,
		resolver: resolver,
	}
	e.registry.Store(NewRegistry())
	return e
}

// Create ensures a backing definition store exists, installing the built-in
// default groups if none is present. It does not touch the in-memory
// registry and is safe to call on every startup.
func (e *Engine) Create() error {
	exists, err := e.source.Exists()
	if err != nil {
		return fmt.Errorf("checking group definitions: %w", err)
	}
	if exists {
		return nil
	}
	if err := e.source.Install(DefaultRegistry()); err != nil {
		return fmt.Errorf("installing default group definitions: %w", err)
	}
	logging.App.Info("installed default group definitions")
	return nil
}

// Reload replaces the registry with a freshly loaded, fully flattened one.
// On failure the previous registry stays in effect.
func (e *Engine) Reload() error {
	registry, err := e.source.LoadGroups()
	if err != nil {
		return fmt.Errorf("loading group definitions: %w", err)
	}
	registry.Flatten()
	e.registry.Store(registry)
	e.lastReload.Store(time.Now().Unix())
	logging.App.Info("reloaded permission groups", "groups", registry.Len())
	return nil
}

// Stats returns current engine counters
func (e *Engine) Stats() Stats {
	stats := Stats{
		Groups:        e.registry.Load().Len(),
		ChecksTotal:   e.checksTotal.Load(),
		ChecksGranted: e.checksGranted.Load(),
	}
	if unix := e.lastReload.Load(); unix != 0 {
		stats.LastReload = time.Unix(unix, 0)
	}
	return stats
}

// Save persists the current registry back to the definition store verbatim,
// in declaration order.
func (e *Engine) Save() error {
	if err := e.source.SaveGroups(e.registry.Load()); err != nil {
		return fmt.Errorf("saving group definitions: %w", err)
	}
	return nil
}

// Registry returns the current registry snapshot
func (e *Engine) Registry() *Registry {
	return e.registry.Load()
}

// DefaultGroup returns the current registry's default group, or nil
func (e *Engine) DefaultGroup() *Group {
	return e.registry.Load().DefaultGroup()
}

// CheckPermission reports whether the sender holds the given permission.
//
// The console principal is authorized unconditionally; the dedicated-server
// principal is authorized whenever any groups are loaded. Everyone else is
// checked against their group's combined permission set, falling back to the
// default group when their group key is unknown. Every failure to resolve is
// an ordinary not-authorized outcome, never an error.
func (e *Engine) CheckPermission(sender string, permission string) bool {
	granted := e.checkPermission(sender, permission)
	e.checksTotal.Add(1)
	if granted {
		e.checksGranted.Add(1)
	}
	return granted
}

func (e *Engine) checkPermission(sender string, permission string) bool {
	if permission == "" {
		return false
	}

	principal, err := e.resolver.ResolvePrincipal(sender)
	if err != nil || principal == nil {
		logging.App.Debug("permission check: no principal", "sender", sender, "permission", permission)
		return false
	}

	if principal.Kind == principals.KindConsole {
		return true
	}

	registry := e.registry.Load()
	if registry.Len() == 0 {
		logging.App.Debug("permission check: empty registry", "sender", sender, "permission", permission)
		return false
	}

	if principal.Kind == principals.KindServer {
		return true
	}

	key := principal.GroupKey()
	if key == "" {
		logging.App.Debug("permission check: no group key", "sender", sender, "permission", permission)
		return false
	}

	group, ok := registry.Lookup(key)
	if !ok {
		group = registry.DefaultGroup()
		if group == nil {
			logging.App.Debug("permission check: unknown group, no default", "sender", sender, "group", key, "permission", permission)
			return false
		}
	}

	granted := group.Has(permission)
	logging.App.Debug("permission check", "sender", sender, "group", group.Name, "permission", permission, "granted", granted)
	return granted
}
