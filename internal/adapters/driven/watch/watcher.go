// Package watch stages PDFs dropped into a folder.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is staged.
const DefaultDebounce = 250 * time.Millisecond

// Handler receives a file that has settled in the watched folder.
type Handler = func(domain.StagedFile)

// Watcher reports new or rewritten PDFs in a single directory.
// Subdirectories are not watched.
type Watcher struct {
	dir      string
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	fs      *fsnotify.Watcher
	done    chan struct{}
}

// New creates a watcher for dir. A zero debounce uses DefaultDebounce.
func New(dir string, debounce time.Duration) *Watcher {
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
	}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Start begins watching and calls handle from a background goroutine until
// ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context, handle Handler) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.mu.Lock()
	if w.fs != nil {
		w.mu.Unlock()
		_ = fsw.Close()
		return errors.New("watcher already started")
	}
	w.fs = fsw
	w.done = make(chan struct{})
	w.mu.Unlock()

	logger.Info("watching folder", zap.String("dir", w.dir))
	go w.run(ctx, fsw, handle)
	return nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, handle Handler) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return
		case event, ok := <-fsw.Events:
			if !ok {
				w.stopPending()
				return
			}
			if path, ok := w.handleFsEvent(event); ok {
				w.schedule(path, handle)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				w.stopPending()
				return
			}
			logger.Warn("watch error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}

// handleFsEvent returns the path to stage for event, if any.
// Only creates and writes of visible PDF files qualify.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || !domain.IsPDF(base) {
		return "", false
	}
	return event.Name, true
}

// schedule (re)starts the quiet period for path.
func (w *Watcher) schedule(path string, handle Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		file, err := domain.StagedFileFromPath(path)
		if err != nil {
			logger.Debug("skip watched file", zap.String("path", path), zap.Error(err))
			return
		}
		handle(file)
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	fsw, done := w.fs, w.done
	w.fs = nil
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	err := fsw.Close()
	<-done
	return err
}
