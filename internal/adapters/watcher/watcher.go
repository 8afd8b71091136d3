package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/recipe/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 16

// Watcher watches a fixed set of files through their parent directories,
// so files that do not exist yet or are replaced atomically are still observed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	targets   map[string]struct{}
	onError   func(error)

	mu     sync.Mutex
	closed bool
	events chan ports.WatchEvent
}

// NewWatcher creates a new file watcher.
func NewWatcher(window time.Duration, onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsWatcher: fsw,
		targets:   make(map[string]struct{}),
		onError:   onError,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}
	w.debouncer = NewDebouncer(window, w.emit)
	return w, nil
}

// Start begins watching the given files.
func (w *Watcher) Start(ctx context.Context, paths []string) error {
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		w.targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.debouncer.Stop()
	return w.fsWatcher.Close()
}

// Events returns an iterator of debounced change batches.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if _, watched := w.targets[filepath.Clean(event.Name)]; watched {
				w.debouncer.Add(event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// emit forwards a batch. Batches are dropped when the consumer lags behind.
func (w *Watcher) emit(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.events <- ports.WatchEvent{Paths: paths}:
	default:
	}
}

func (w *Watcher) close() {
	w.debouncer.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed {
		w.closed = true
		close(w.events)
	}
}
