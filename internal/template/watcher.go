package template

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"dummysite/pkg/logging"
)

// DefaultDebounceInterval is the time to wait after the last change to the
// template file before reloading it.
const DefaultDebounceInterval = 500 * time.Millisecond

// TemplateWatcher reloads a Renderer when its template file changes.
//
// The directory holding the file is watched rather than the file itself, so
// editors that replace the file by rename, and ConfigMap volume updates
// (which swap a symlink), are both picked up.
type TemplateWatcher struct {
	mu sync.Mutex

	renderer *Renderer

	// debounce delays the reload after the last event
	debounce time.Duration

	// onReload is called after every reload attempt; used by tests
	onReload func(error)

	fsWatcher *fsnotify.Watcher
	stopCh    chan struct{}
	running   bool

	debounceTimer *time.Timer
	debounceMu    sync.Mutex
}

// NewTemplateWatcher creates a watcher for the renderer's template file.
func NewTemplateWatcher(renderer *Renderer) *TemplateWatcher {
	return &TemplateWatcher{
		renderer: renderer,
		debounce: DefaultDebounceInterval,
	}
}

// Start begins watching. It is a no-op for the built-in template.
// If fsnotify cannot watch the directory the error is logged and the
// template simply stays as loaded.
func (w *TemplateWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || w.renderer.Path() == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("Template", "fsnotify not available, job template will not be reloaded: %v", err)
		return nil
	}

	dir := filepath.Dir(w.renderer.Path())
	if err := watcher.Add(dir); err != nil {
		logging.Warn("Template", "Failed to watch %s, job template will not be reloaded: %v", dir, err)
		watcher.Close()
		return nil
	}

	w.fsWatcher = watcher
	w.stopCh = make(chan struct{})
	w.running = true

	// Capture channels before releasing lock to avoid race conditions
	go w.processEvents(watcher.Events, watcher.Errors, w.stopCh)

	logging.Info("Template", "Watching %s for job template changes", w.renderer.Path())
	return nil
}

// Stop ends watching.
func (w *TemplateWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	w.fsWatcher.Close()

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceMu.Unlock()
}

func (w *TemplateWatcher) processEvents(eventsCh <-chan fsnotify.Event, errorsCh <-chan error, stopCh <-chan struct{}) {
	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			logging.Error("Template", err, "fsnotify error")
		}
	}
}

func (w *TemplateWatcher) handleEvent(event fsnotify.Event) {
	// ConfigMap mounts update through "..data" symlink swaps, so any
	// create/write/rename in the directory may mean new template content.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if filepath.Base(event.Name) != filepath.Base(w.renderer.Path()) && filepath.Base(event.Name) != "..data" {
		return
	}

	logging.Debug("Template", "Job template changed: %s", event.Name)
	w.triggerReloadDebounced()
}

func (w *TemplateWatcher) triggerReloadDebounced() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if !running {
			return
		}

		err := w.renderer.Reload()
		if err != nil {
			logging.Error("Template", err, "Keeping previous job template")
		} else {
			logging.Info("Template", "Reloaded job template %s", w.renderer.Path())
		}
		if w.onReload != nil {
			w.onReload(err)
		}
	})
}
