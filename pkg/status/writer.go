package status

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/mmcdole/viking-permd/pkg/logging"
	"github.com/mmcdole/viking-permd/pkg/permissions"
)

// Provider supplies the engine counters reported in status files
type Provider interface {
	Stats() permissions.Stats
}

// Writer maintains status files for daemon health monitoring. It writes a
// last_start file once and refreshes a running file on an interval.
type Writer struct {
	dir            string
	updateInterval time.Duration
	pid            int
	version        string
	startTime      time.Time
	provider       Provider

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a new status Writer
func New(dir string, updateInterval time.Duration, version string, provider Provider) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create status directory: %w", err)
	}

	return &Writer{
		dir:            dir,
		updateInterval: updateInterval,
		pid:            os.Getpid(),
		version:        version,
		startTime:      time.Now(),
		provider:       provider,
		stopCh:         make(chan struct{}),
	}, nil
}

// WriteStartFile writes the last_start file with startup information
func (w *Writer) WriteStartFile() error {
	now := time.Now()
	content := fmt.Sprintf(`timestamp_unix: %d
timestamp_human: %s
pid: %d
version: %s
`,
		now.Unix(),
		now.Format("Mon Jan 02 15:04:05 2006"),
		w.pid,
		w.version,
	)

	if err := w.atomicWrite(filepath.Join(w.dir, "last_start"), []byte(content)); err != nil {
		return fmt.Errorf("failed to write last_start: %w", err)
	}

	logging.App.Info("wrote status file", "file", "last_start")
	return nil
}

// StartHeartbeat starts a goroutine that periodically updates the running file
func (w *Writer) StartHeartbeat() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.updateInterval)
		defer ticker.Stop()

		if err := w.writeRunningFile(); err != nil {
			logging.App.Error("failed to write running file", "error", err)
		}

		for {
			select {
			case <-ticker.C:
				if err := w.writeRunningFile(); err != nil {
					logging.App.Error("failed to write running file", "error", err)
				}
			case <-w.stopCh:
				return
			}
		}
	}()

	logging.App.Info("started status heartbeat", "interval", w.updateInterval)
}

// Stop stops the heartbeat goroutine
func (w *Writer) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	logging.App.Info("stopped status heartbeat")
}

// writeRunningFile writes the current runtime status to the running file
func (w *Writer) writeRunningFile() error {
	now := time.Now()

	var stats permissions.Stats
	if w.provider != nil {
		stats = w.provider.Stats()
	}

	lastReload := int64(0)
	if !stats.LastReload.IsZero() {
		lastReload = stats.LastReload.Unix()
	}

	content := fmt.Sprintf(`timestamp_unix: %d
uptime_seconds: %d
groups: %d
checks_total: %d
checks_granted: %d
last_reload_unix: %d
goroutines: %d
`,
		now.Unix(),
		int64(now.Sub(w.startTime).Seconds()),
		stats.Groups,
		stats.ChecksTotal,
		stats.ChecksGranted,
		lastReload,
		runtime.NumGoroutine(),
	)

	if err := w.atomicWrite(filepath.Join(w.dir, "running"), []byte(content)); err != nil {
		return fmt.Errorf("failed to write running: %w", err)
	}

	logging.App.Debug("updated running file", "groups", stats.Groups, "checks_total", stats.ChecksTotal)
	return nil
}

// atomicWrite writes content to a temp file and renames it into place so
// readers never see a partial write
func (w *Writer) atomicWrite(path string, content []byte) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}
