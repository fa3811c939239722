package permissions

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mmcdole/viking-permd/pkg/logging"
)

// Watcher reloads an engine whenever its definition file changes on disk.
// The file's directory is watched rather than the file itself so editors
// that replace the file with a rename are still picked up.
type Watcher struct {
	engine   *Engine
	filePath string
	watcher  *fsnotify.Watcher

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the engine's definition file at filePath
func NewWatcher(engine *Engine, filePath string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(filePath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching groups directory: %w", err)
	}

	w := &Watcher{
		engine:   engine,
		filePath: filePath,
		watcher:  fw,
		stopCh:   make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.filePath) {
				continue
			}
			logging.App.Info("groups file changed, reloading", "path", w.filePath)
			if err := w.engine.Reload(); err != nil {
				// Keep the previous registry in effect
				logging.App.Error("reload after file change failed", "path", w.filePath, "error", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.App.Error("file watcher error", "path", w.filePath, "error", err)
		case <-w.stopCh:
			return
		}
	}
}

// Close stops watching and releases the underlying watcher
func (w *Watcher) Close() error {
	close(w.stopCh)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
