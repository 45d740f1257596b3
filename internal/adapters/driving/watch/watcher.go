// Package watch ingests PDF and DOCX files dropped into an inbox directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// DefaultSettleDelay is how long a file must stay quiet before it is ingested.
const DefaultSettleDelay = 500 * time.Millisecond

// action is what a filesystem event asks the watcher to do.
type action int

const (
	actionNone action = iota
	actionIngest
	actionDelete
)

// EventKind classifies a processed file.
type EventKind string

// Event kinds.
const (
	EventIngested EventKind = "ingested"
	EventDeleted  EventKind = "deleted"
	EventFailed   EventKind = "failed"
)

// Event reports the outcome for one file.
type Event struct {
	Kind   EventKind
	Path   string
	Record *domain.DocumentRecord
	Err    error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettleDelay sets how long writes must pause before a file is ingested.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.settle = d
		}
	}
}

// WithReporter receives an Event for every processed file.
func WithReporter(fn func(Event)) Option {
	return func(w *Watcher) {
		w.report = fn
	}
}

// WithExtensions replaces the watched file extensions (lower case, with dot).
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = make(map[string]bool, len(exts))
		for _, e := range exts {
			w.extensions[strings.ToLower(e)] = true
		}
	}
}

// Watcher ingests new and updated documents in one directory and deletes
// the documents of removed files. Files are processed one at a time.
type Watcher struct {
	docs       driving.DocumentService
	dir        string
	settle     time.Duration
	extensions map[string]bool
	report     func(Event)

	mu      sync.Mutex
	ids     map[string]string // path -> document ID
	pending map[string]*time.Timer
	work    chan job
	done    chan struct{}
}

type job struct {
	path string
	act  action
}

// New creates a watcher for dir.
func New(docs driving.DocumentService, dir string, opts ...Option) *Watcher {
	w := &Watcher{
		docs:       docs,
		dir:        filepath.Clean(dir),
		settle:     DefaultSettleDelay,
		extensions: map[string]bool{".pdf": true, ".docx": true},
		report:     func(Event) {},
		ids:        make(map[string]string),
		pending:    make(map[string]*time.Timer),
		work:       make(chan job, 64),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Documents already in the catalog are
// matched to files by name so updates re-ingest them in place.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	defer close(w.done)

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.seed(ctx)
	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.schedule(ev.Name, w.classify(ev))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		case j := <-w.work:
			w.process(ctx, j)
		}
	}
}

// IngestExisting ingests every eligible file already in the directory.
func (w *Watcher) IngestExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.dir, err)
	}
	w.seed(ctx)
	for _, e := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		path := filepath.Join(w.dir, e.Name())
		if e.IsDir() || !w.eligible(path) {
			continue
		}
		w.process(ctx, job{path: path, act: actionIngest})
	}
	return nil
}

// classify maps a filesystem event to an action. Directories, hidden files
// and unsupported extensions are ignored.
func (w *Watcher) classify(ev fsnotify.Event) action {
	if !w.eligible(ev.Name) {
		return actionNone
	}
	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		if info, err := os.Stat(ev.Name); err != nil || info.IsDir() {
			return actionNone
		}
		return actionIngest
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return actionDelete
	default:
		return actionNone
	}
}

func (w *Watcher) eligible(path string) bool {
	return !isHidden(filepath.Base(path)) && w.extensions[strings.ToLower(filepath.Ext(path))]
}

// schedule queues an action once the file has been quiet for the settle delay.
// A newer event for the same path replaces the pending one.
func (w *Watcher) schedule(path string, act action) {
	if act == actionNone {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.work <- job{path: path, act: act}:
		case <-w.done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) process(ctx context.Context, j job) {
	switch j.act {
	case actionIngest:
		w.ingest(ctx, j.path)
	case actionDelete:
		w.remove(ctx, j.path)
	}
}

func (w *Watcher) ingest(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.report(Event{Kind: EventFailed, Path: path, Err: err})
		return
	}

	w.mu.Lock()
	id := w.ids[path]
	w.mu.Unlock()

	rec, err := w.docs.Ingest(ctx, driving.IngestRequest{ID: id, Name: path, Data: data})
	if rec != nil {
		w.mu.Lock()
		w.ids[path] = rec.ID
		w.mu.Unlock()
	}
	if err != nil {
		w.report(Event{Kind: EventFailed, Path: path, Record: rec, Err: err})
		return
	}
	w.report(Event{Kind: EventIngested, Path: path, Record: rec})
}

func (w *Watcher) remove(ctx context.Context, path string) {
	w.mu.Lock()
	id, ok := w.ids[path]
	delete(w.ids, path)
	w.mu.Unlock()
	if !ok {
		return
	}

	err := w.docs.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		w.report(Event{Kind: EventFailed, Path: path, Err: err})
		return
	}
	w.report(Event{Kind: EventDeleted, Path: path, Record: &domain.DocumentRecord{ID: id}})
}

// seed maps files in the directory to catalog records with the same file
// name. Records are newest first, so the newest record wins.
func (w *Watcher) seed(ctx context.Context) {
	recs, err := w.docs.List(ctx)
	if err != nil {
		logger.Warn("watch: list documents: %v", err)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, r := range recs {
		path := filepath.Join(w.dir, r.Filename)
		if _, ok := w.ids[path]; ok || r.Filename == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			w.ids[path] = r.ID
		}
	}
}

// isHidden reports whether a file name starts with a dot. Office lock
// files (~$report.docx) count as hidden too.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$")
}
