package permissions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/viking-permd/pkg/principals"
)

func TestWatcherReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groups.yml")

	before := "admin:\n  permissions:\n    - kick.*\n"
	require.NoError(t, os.WriteFile(path, []byte(before), 0644))

	resolver := principals.NewMemorySource()
	resolver.AddPrincipal(&principals.Principal{Name: "frodo", Kind: principals.KindPlayer, Group: "admin"})

	engine := NewEngine(NewFileSource(path), resolver)
	require.NoError(t, engine.Reload())
	require.True(t, engine.CheckPermission("frodo", "kick.player"))
	require.False(t, engine.CheckPermission("frodo", "ban.player"))

	watcher, err := NewWatcher(engine, path)
	require.NoError(t, err)
	defer watcher.Close()

	after := "admin:\n  permissions:\n    - kick.*\n    - ban.*\n"
	require.NoError(t, os.WriteFile(path, []byte(after), 0644))

	require.Eventually(t, func() bool {
		return engine.CheckPermission("frodo", "ban.player")
	}, 5*time.Second, 20*time.Millisecond, "watcher should reload after the file changes")
}

func TestWatcherKeepsRegistryOnBadWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groups.yml")
	require.NoError(t, os.WriteFile(path, []byte("admin:\n  permissions:\n    - kick.*\n"), 0644))

	resolver := principals.NewMemorySource()
	resolver.AddPrincipal(&principals.Principal{Name: "frodo", Kind: principals.KindPlayer, Group: "admin"})

	engine := NewEngine(NewFileSource(path), resolver)
	require.NoError(t, engine.Reload())

	watcher, err := NewWatcher(engine, path)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(path, []byte("admin: [unbalanced"), 0644))

	// The failed reload must leave the old registry serving checks
	require.Never(t, func() bool {
		return !engine.CheckPermission("frodo", "kick.player")
	}, 500*time.Millisecond, 20*time.Millisecond)
}
