package directive

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more file events before
// reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a Service when one of its files changes on disk. It
// watches the OS filesystem, so the service must read from it as well.
type Watcher struct {
	service  *Service
	onReload []func()
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	active  bool
	dirs    map[string]bool
	timer   *time.Timer
}

// NewWatcher creates a watcher for service. The onReload hooks run after
// every successful reload.
func NewWatcher(service *Service, onReload ...func()) *Watcher {
	return &Watcher{
		service:  service,
		onReload: onReload,
		debounce: DefaultDebounce,
		dirs:     make(map[string]bool),
	}
}

// SetDebounce changes the delay between the last file event and the reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Start begins watching until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active {
		slog.Debug("Help watcher already active")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	w.watcher = watcher
	w.active = true
	w.dirs = make(map[string]bool)

	if err := w.syncDirsLocked(); err != nil {
		watcher.Close()
		w.watcher = nil
		w.active = false
		return fmt.Errorf("failed to add directories to watcher: %w", err)
	}

	go w.watchFiles(ctx, watcher)

	slog.Debug("Started file system watcher for help topics", "directories", len(w.dirs))
	return nil
}

// Stop closes the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *Watcher) stopLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
		slog.Info("Help watcher stopped")
	}
	w.active = false
}

// syncDirsLocked adds the directories of all service files to the watcher.
func (w *Watcher) syncDirsLocked() error {
	for _, f := range w.service.Files() {
		dir := filepath.Dir(f)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
		slog.Debug("Added directory to help watcher", "path", dir)
	}
	return nil
}

func (w *Watcher) watchFiles(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() {
		w.mu.Lock()
		if w.watcher == watcher {
			w.stopLocked()
		}
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Help watcher context cancelled")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Help watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.isWatchedFile(event.Name) {
		return
	}

	slog.Debug("Help file event", "event", event.Op.String(), "path", event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.active {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) isWatchedFile(name string) bool {
	name = filepath.Clean(name)
	for _, f := range w.service.Files() {
		if filepath.Clean(f) == name {
			return true
		}
	}
	return false
}

func (w *Watcher) reload() {
	if err := w.service.Reload(); err != nil {
		slog.Error("Failed to reload help topics, keeping previous tree", "error", err)
		return
	}

	w.mu.Lock()
	if w.active {
		if err := w.syncDirsLocked(); err != nil {
			slog.Error("Failed to watch new help directories", "error", err)
		}
	}
	w.mu.Unlock()

	for _, hook := range w.onReload {
		hook()
	}
}
