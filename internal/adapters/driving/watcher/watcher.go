// Package watcher monitors a directory and ingests changed documents.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driving"
	"github.com/strata-labs/strata/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is
// ingested. Editors fire several write events per save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher ingests files from a directory as they appear or change.
type Watcher struct {
	ingest     driving.IngestService
	extensions []string
	debounce   time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions replaces the watched file extensions.
func WithExtensions(extensions []string) Option {
	return func(w *Watcher) {
		if len(extensions) > 0 {
			w.extensions = extensions
		}
	}
}

// WithDebounce replaces the quiet period before ingesting a changed file.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher that feeds changed files into the ingest service.
func New(ingest driving.IngestService, opts ...Option) *Watcher {
	w := &Watcher{
		ingest:     ingest,
		extensions: []string{".md", ".txt"},
		debounce:   DefaultDebounce,
		pending:    make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch blocks monitoring dir until the context is cancelled.
// Create and write events schedule a debounced ingest of the file;
// remove and rename events cancel any pending ingest.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return err
	}
	logger.Info("Watching %s for %v files", dir, w.extensions)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.watchedExtension(event.Name) {
				continue
			}

			switch {
			case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
				w.schedule(ctx, event.Name)
			case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
				w.cancel(event.Name)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// schedule (re)arms the debounce timer for one file.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingestFile(ctx, path)
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Cannot read %s: %v", path, err)
		return
	}

	report, err := w.ingest.Ingest(ctx, &domain.RawDocument{
		ID:      path,
		Name:    filepath.Base(path),
		Content: string(content),
	})
	if err != nil {
		logger.Error("Ingest of %s failed: %v", path, err)
		return
	}
	logger.Info("Ingested %s: %d indexed, %d failed", path, report.UnitsIndexed, report.UnitsFailed)
}

func (w *Watcher) watchedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
