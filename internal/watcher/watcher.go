// Package watcher reports batches of changed source files under a repository root.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"kindsort/internal/paths"
	"kindsort/internal/slogutil"
)

// EventType represents the type of file system event
type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
	EventRename
)

// String returns a string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	case EventRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event is a change to one file. Path is relative to the watched root, with forward
// slashes.
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}

// Removed reports whether the file is gone after the event.
func (e Event) Removed() bool {
	return e.Type == EventDelete || e.Type == EventRename
}

// ChangeHandler is called with each batch of changes.
type ChangeHandler func(events []Event)

// Config contains watcher configuration
type Config struct {
	Root     string
	Debounce time.Duration
	// Match selects the files that produce events. Nil matches every file.
	Match func(rel string) bool
	// Ignore reports whether a directory or file is skipped. Nil skips nothing.
	Ignore func(rel string, dir bool) bool
}

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a directory tree with fsnotify. Directories created while running
// are added as they appear.
type Watcher struct {
	config  Config
	logger  *slog.Logger
	handler ChangeHandler
	fsw     *fsnotify.Watcher
	batch   *BatchDebouncer

	mu   sync.Mutex
	dirs map[string]bool
}

// New creates a watcher over cfg.Root. Call Run to start delivering events.
func New(cfg Config, logger *slog.Logger, handler ChangeHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	w := &Watcher{
		config:  cfg,
		logger:  slogutil.OrDiscard(logger),
		handler: handler,
		fsw:     fsw,
		dirs:    make(map[string]bool),
	}
	w.batch = NewBatchDebouncer(cfg.Debounce, w.emit)

	if err := w.addRecursive(cfg.Root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers batches until ctx is done or the underlying watcher fails. Pending
// events are dropped on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.batch.Cancel()

	w.logger.Info("File watcher started",
		"root", w.config.Root,
		"dirs", len(w.WatchedDirs()),
		"debounce", w.config.Debounce)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

// Close releases the fsnotify watcher.
func (w *Watcher) Close() error {
	w.batch.Cancel()
	return w.fsw.Close()
}

// WatchedDirs returns the watched directories relative to the root, sorted.
func (w *Watcher) WatchedDirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.dirs))
	for dir := range w.dirs {
		out = append(out, dir)
	}
	slices.Sort(out)
	return out
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.config.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) ignored(rel string, dir bool) bool {
	return w.config.Ignore != nil && rel != "." && w.config.Ignore(rel, dir)
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel := w.rel(path)
		if w.ignored(rel, true) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", rel, "error", err)
			return nil
		}
		w.mu.Lock()
		w.dirs[rel] = true
		w.mu.Unlock()
		w.logger.Debug("Watching directory", "path", rel)
		return nil
	})
}

func (w *Watcher) handle(event fsnotify.Event) {
	rel := w.rel(event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.ignored(rel, true) {
				if err := w.addRecursive(event.Name); err != nil {
					w.logger.Warn("Failed to watch new directory", "path", rel, "error", err)
				}
			}
			return
		}
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.dirs, rel)
		w.mu.Unlock()
	}

	typ, ok := eventType(event.Op)
	if !ok || w.ignored(rel, false) {
		return
	}
	if w.config.Match != nil && !w.config.Match(rel) {
		return
	}

	w.logger.Debug("File change detected", "path", rel, "op", typ.String())
	w.batch.Add(Event{Type: typ, Path: rel, Timestamp: time.Now()})
}

func (w *Watcher) emit(events []Event) {
	w.logger.Debug("Emitting changes", "count", len(events))
	if w.handler != nil {
		w.handler(events)
	}
}

func eventType(op fsnotify.Op) (EventType, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return EventDelete, true
	case op.Has(fsnotify.Rename):
		return EventRename, true
	case op.Has(fsnotify.Create):
		return EventCreate, true
	case op.Has(fsnotify.Write):
		return EventModify, true
	default:
		return 0, false
	}
}

// Coalesce keeps the last event for each path and sorts the result by path.
func Coalesce(events []Event) []Event {
	last := make(map[string]Event, len(events))
	for _, e := range events {
		last[e.Path] = e
	}
	out := make([]Event, 0, len(last))
	for _, e := range last {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Event) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// Existing returns the paths of events whose file still exists under root.
func Existing(root string, events []Event) []string {
	var out []string
	for _, e := range events {
		if e.Removed() {
			continue
		}
		if info, err := os.Stat(paths.JoinRepoPath(root, e.Path)); err == nil && !info.IsDir() {
			out = append(out, e.Path)
		}
	}
	return out
}
