package permissions

import (
	"errors"
	"testing"

	"github.com/mmcdole/viking-permd/pkg/principals"
)

func TestCheckPermissionPlayers(t *testing.T) {
	groups := []TestGroup{
		{Name: "admin", Permissions: []string{"ban.*"}, Inheritance: []string{"moderator"}},
		{Name: "moderator", Permissions: []string{"kick.*"}},
		{Name: "default", Permissions: []string{"chat.send"}, IsDefault: true},
	}
	players := map[string]string{
		"frodo":  "admin",
		"sam":    "moderator",
		"gollum": "",          // no group at all
		"merry":  "nosuchgrp", // unknown group, falls back to default
	}

	engine, err := NewTestEngine(groups, players)
	if err != nil {
		t.Fatalf("NewTestEngine failed: %v", err)
	}

	cases := []struct {
		name       string
		sender     string
		permission string
		want       bool
	}{
		{"admin own permission", "frodo", "ban.player", true},
		{"admin inherited permission", "frodo", "kick.player", true},
		{"moderator denied admin permission", "sam", "ban.player", false},
		{"moderator own permission", "sam", "kick.player", true},
		{"no group falls back to nothing", "gollum", "chat.send", false},
		{"unknown group falls back to default", "merry", "chat.send", true},
		{"default lacks elevated permission", "merry", "kick.player", false},
		{"unknown sender", "nobody", "chat.send", false},
		{"empty permission", "frodo", "", false},
		{"console bypasses checks", "console", "anything.whatever", true},
		{"server passes with loaded registry", "server", "anything.whatever", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.CheckPermission(tc.sender, tc.permission); got != tc.want {
				t.Errorf("CheckPermission(%q, %q) = %v, want %v",
					tc.sender, tc.permission, got, tc.want)
			}
		})
	}
}

func TestCheckPermissionUniversalWildcardScenario(t *testing.T) {
	// "*.*" is an ordinary two-segment permission, not the universal ".*"
	engine, err := NewTestEngine([]TestGroup{
		{Name: "admin", Permissions: []string{"*.*"}},
		{Name: "default", Permissions: []string{"chat.send"}, IsDefault: true},
	}, map[string]string{
		"stranger": "ghosts",
	})
	if err != nil {
		t.Fatalf("NewTestEngine failed: %v", err)
	}

	if !engine.CheckPermission("stranger", "chat.send") {
		t.Error("unknown group should fall back to the default group's chat.send")
	}
	if engine.CheckPermission("stranger", "kick.player") {
		t.Error("default group does not hold kick.player")
	}
}

func TestCheckPermissionNoDefaultGroup(t *testing.T) {
	engine, err := NewTestEngine([]TestGroup{
		{Name: "admin", Permissions: []string{".*"}},
	}, map[string]string{
		"stranger": "ghosts",
	})
	if err != nil {
		t.Fatalf("NewTestEngine failed: %v", err)
	}

	if engine.CheckPermission("stranger", "chat.send") {
		t.Error("unknown group with no default group must be denied")
	}
}

func TestCheckPermissionEmptyRegistry(t *testing.T) {
	resolver := principals.NewMemorySource()
	resolver.AddPrincipal(&principals.Principal{Name: "frodo", Kind: principals.KindPlayer, Group: "admin"})

	engine := NewEngine(NewMemorySource(), principals.NewReservedResolver(resolver))

	if engine.CheckPermission("frodo", "chat.send") {
		t.Error("empty registry must deny players")
	}
	if engine.CheckPermission("server", "chat.send") {
		t.Error("empty registry must deny the server actor")
	}
	if !engine.CheckPermission("console", "chat.send") {
		t.Error("console bypasses even an empty registry")
	}
}

func TestCheckPermissionStoredGroupFallback(t *testing.T) {
	resolver := principals.NewMemorySource()
	resolver.AddPrincipal(&principals.Principal{Name: "frodo", Kind: principals.KindPlayer, StoredGroup: "moderator"})
	resolver.AddPrincipal(&principals.Principal{Name: "sam", Kind: principals.KindPlayer, Group: "admin", StoredGroup: "moderator"})

	source := NewMemorySource()
	if err := source.Install(NewTestRegistry([]TestGroup{
		{Name: "admin", Permissions: []string{"ban.*"}},
		{Name: "moderator", Permissions: []string{"kick.*"}},
	})); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	engine := NewEngine(source, resolver)
	if err := engine.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if !engine.CheckPermission("frodo", "kick.player") {
		t.Error("stored group attribute should be used when no current assignment exists")
	}
	if !engine.CheckPermission("sam", "ban.player") {
		t.Error("current assignment should win over the stored attribute")
	}
	if engine.CheckPermission("sam", "kick.player") {
		t.Error("stored attribute must not apply when a current assignment exists")
	}
}

type failingSource struct{}

func (failingSource) LoadGroups() (*Registry, error) { return nil, errors.New("corrupt definitions") }
func (failingSource) SaveGroups(*Registry) error     { return errors.New("unwritable") }
func (failingSource) Exists() (bool, error)          { return true, nil }
func (failingSource) Install(*Registry) error        { return errors.New("unwritable") }

func TestReloadFailureKeepsOldRegistry(t *testing.T) {
	groups := []TestGroup{{Name: "admin", Permissions: []string{"kick.*"}}}
	engine, err := NewTestEngine(groups, map[string]string{"frodo": "admin"})
	if err != nil {
		t.Fatalf("NewTestEngine failed: %v", err)
	}

	// Swap in a source that fails; the loaded registry must survive
	engine.source = failingSource{}
	if err := engine.Reload(); err == nil {
		t.Fatal("expected Reload to fail")
	}

	if !engine.CheckPermission("frodo", "kick.player") {
		t.Error("failed reload must leave the previous registry in effect")
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	source := NewMemorySource()
	engine := NewEngine(source, principals.NewReservedResolver(nil))

	if err := engine.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := engine.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	installed := engine.Registry().Len()
	if installed == 0 {
		t.Fatal("Create should install the default definitions")
	}

	// Second Create must not overwrite the store
	if err := engine.Create(); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if err := engine.Reload(); err != nil {
		t.Fatalf("second Reload failed: %v", err)
	}
	if engine.Registry().Len() != installed {
		t.Error("Create must be a no-op when definitions already exist")
	}
}

func TestDefaultRegistryFlattens(t *testing.T) {
	registry := DefaultRegistry()
	registry.Flatten()

	def := registry.DefaultGroup()
	if def == nil {
		t.Fatal("built-in definitions must include a default group")
	}

	admin, ok := registry.Lookup("admin")
	if !ok {
		t.Fatal("built-in definitions must include admin")
	}
	// admin inherits moderator which inherits default
	for _, perm := range []string{"ban.player", "kick.player", "chat.send"} {
		if !admin.Has(perm) {
			t.Errorf("built-in admin should hold %q", perm)
		}
	}

	owner, ok := registry.Lookup("owner")
	if !ok {
		t.Fatal("built-in definitions must include owner")
	}
	if !owner.Has("absolutely.anything") {
		t.Error("built-in owner should hold the universal wildcard")
	}
}

func TestStats(t *testing.T) {
	engine, err := NewTestEngine(
		[]TestGroup{{Name: "admin", Permissions: []string{"kick.*"}}},
		map[string]string{"frodo": "admin"},
	)
	if err != nil {
		t.Fatalf("NewTestEngine failed: %v", err)
	}

	engine.CheckPermission("frodo", "kick.player")
	engine.CheckPermission("frodo", "ban.player")

	stats := engine.Stats()
	if stats.Groups != 1 {
		t.Errorf("expected 1 group, got %d", stats.Groups)
	}
	if stats.ChecksTotal != 2 {
		t.Errorf("expected 2 checks, got %d", stats.ChecksTotal)
	}
	if stats.ChecksGranted != 1 {
		t.Errorf("expected 1 granted check, got %d", stats.ChecksGranted)
	}
	if stats.LastReload.IsZero() {
		t.Error("LastReload should be set after Reload")
	}
}
