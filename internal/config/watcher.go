package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces rapid change events (editors often write a
// config file several times in quick succession).
const DefaultDebounce = 250 * time.Millisecond

// Handler receives the reloaded configuration, or the error that prevented
// reloading it.
type Handler func(cfg Config, err error)

// Watcher reloads a configuration file when it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	fsw      *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// Watch starts watching path and invokes handler after each debounced
// change. The directory is watched rather than the file itself, so
// rename-and-replace writes are still observed.
func Watch(path string, debounce time.Duration, handler Handler) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		handler:  handler,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Pending debounced reloads are dropped.
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.handler(Config{}, fmt.Errorf("watch config: %w", err))
		}
	}
}

// schedule arms (or re-arms) the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.handler(Load(w.path))
	})
}
