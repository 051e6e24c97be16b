package credentials

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"vercelctl/pkg/logging"
)

// DefaultDebounceInterval is the time to wait after the last file event
// before reloading.
const DefaultDebounceInterval = 200 * time.Millisecond

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = 2 * time.Second

// Reloader re-reads persisted credentials and reports whether they changed.
type Reloader interface {
	Dir() string
	Reload() (bool, error)
}

// WatcherConfig holds configuration for the credentials watcher.
type WatcherConfig struct {
	Store Reloader

	// OnChange is called after the file changed to different values.
	OnChange func()

	Debounce     time.Duration
	PollInterval time.Duration
}

// Watcher monitors the credentials file for changes made by other processes.
// Writes made through the watched store itself do not trigger OnChange
// because Reload finds nothing new.
type Watcher struct {
	mu      sync.Mutex
	config  WatcherConfig
	fs      *fsnotify.Watcher
	stopCh  chan struct{}
	running bool

	debounceMu    sync.Mutex
	debounceTimer *time.Timer
}

// NewWatcher creates a watcher. Start must be called to begin watching.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Store == nil {
		return nil, errors.New("credentials watcher requires a store")
	}
	if config.Debounce == 0 {
		config.Debounce = DefaultDebounceInterval
	}
	if config.PollInterval == 0 {
		config.PollInterval = DefaultPollInterval
	}
	return &Watcher{config: config}, nil
}

// Start begins watching. It falls back to polling when the directory cannot
// be watched with fsnotify.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	w.stopCh = make(chan struct{})
	w.running = true

	dir := w.config.Store.Dir()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("Credentials", "fsnotify not available, falling back to polling: %v", err)
		go w.poll(w.stopCh)
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		logging.Warn("Credentials", "Failed to watch %s, falling back to polling: %v", dir, err)
		watcher.Close()
		go w.poll(w.stopCh)
		return nil
	}

	w.fs = watcher
	go w.processEvents(w.stopCh, watcher.Events, watcher.Errors)
	logging.Debug("Credentials", "Watching %s for credential changes", dir)
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	if w.fs != nil {
		w.fs.Close()
		w.fs = nil
	}

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceMu.Unlock()
}

func (w *Watcher) processEvents(stopCh <-chan struct{}, events <-chan fsnotify.Event, errs <-chan error) {
	for {
		select {
		case <-stopCh:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != FileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.reloadDebounced()
		case err, ok := <-errs:
			if !ok {
				return
			}
			logging.Error("Credentials", err, "fsnotify error")
		}
	}
}

func (w *Watcher) poll(stopCh <-chan struct{}) {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			w.reload()
		}
	}
}

func (w *Watcher) reloadDebounced() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.config.Debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if !running {
		return
	}

	changed, err := w.config.Store.Reload()
	if err != nil {
		logging.Warn("Credentials", "Failed to reload credentials: %v", err)
		return
	}
	if changed && w.config.OnChange != nil {
		logging.Debug("Credentials", "Credentials changed outside this process")
		w.config.OnChange()
	}
}
