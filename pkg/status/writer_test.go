package status

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/viking-permd/pkg/permissions"
)

// mockProvider implements Provider for testing
type mockProvider struct {
	stats permissions.Stats
}

func (m *mockProvider) Stats() permissions.Stats {
	return m.stats
}

func TestWriteStartFile(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(tmpDir, 10*time.Second, "v1.0.0", &mockProvider{})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	if err := w.WriteStartFile(); err != nil {
		t.Fatalf("WriteStartFile failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "last_start"))
	if err != nil {
		t.Fatalf("Failed to read last_start: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "version: v1.0.0") {
		t.Errorf("last_start missing version, got:\n%s", content)
	}
	if !strings.Contains(content, "pid: ") {
		t.Errorf("last_start missing pid, got:\n%s", content)
	}
}

func TestWriteRunningFile(t *testing.T) {
	tmpDir := t.TempDir()

	provider := &mockProvider{stats: permissions.Stats{
		Groups:        4,
		ChecksTotal:   10,
		ChecksGranted: 7,
		LastReload:    time.Now(),
	}}

	w, err := New(tmpDir, 10*time.Second, "v1.0.0", provider)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	if err := w.writeRunningFile(); err != nil {
		t.Fatalf("writeRunningFile failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "running"))
	if err != nil {
		t.Fatalf("Failed to read running: %v", err)
	}

	content := string(data)
	for _, want := range []string{"groups: 4", "checks_total: 10", "checks_granted: 7"} {
		if !strings.Contains(content, want) {
			t.Errorf("running file missing %q, got:\n%s", want, content)
		}
	}
}

func TestHeartbeatStartStop(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(tmpDir, 10*time.Millisecond, "v1.0.0", &mockProvider{})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	w.StartHeartbeat()
	defer w.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(filepath.Join(tmpDir, "running")); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("heartbeat never wrote the running file")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
