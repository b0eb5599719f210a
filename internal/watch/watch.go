// Package watch rebuilds planner documents when their inputs change. It
// watches the parent directories of the plan file and of every event glob,
// filters raw filesystem events against those inputs, and collapses editor
// write bursts into a single change notification.
package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/observability"
)

// DefaultDebounce is the quiet window after the last matching event before
// a change notification fires.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Paths are individual files to watch. Their parent directories are
	// registered, so replace-by-rename saves are still observed.
	Paths []string

	// Globs select additional files by doublestar pattern, rooted at the
	// pattern's fixed base directory. Subdirectories under the base are
	// watched recursively.
	Globs []string

	// Debounce overrides the quiet window. Zero means DefaultDebounce.
	Debounce time.Duration

	// Logger receives watch activity. Nil discards.
	Logger *log.Logger
}

// Watcher turns raw filesystem events into debounced change batches.
// Construct with New and drive it with Run; the change callback runs on
// the Run goroutine, so a slow rebuild naturally backpressures flushes.
type Watcher struct {
	opts     Options
	fw       *fsnotify.Watcher
	onChange func(paths []string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	flushC  chan struct{}
}

// New creates a watcher over the given inputs. onChange receives the
// deduplicated, sorted paths that settled during one debounce window.
func New(opts Options, onChange func(paths []string)) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "a change callback is required")
	}
	if len(opts.Paths) == 0 && len(opts.Globs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to watch")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		opts:     opts,
		fw:       fw,
		onChange: onChange,
		pending:  make(map[string]struct{}),
		flushC:   make(chan struct{}, 1),
	}

	for _, p := range opts.Paths {
		if err := fw.Add(filepath.Dir(p)); err != nil {
			fw.Close()
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "watching %s", filepath.Dir(p))
		}
	}
	for _, g := range opts.Globs {
		base, _ := doublestar.SplitPattern(g)
		if err := w.addTree(base); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree registers base and every non-hidden directory below it.
func (w *Watcher) addTree(base string) error {
	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			// The glob base may not exist yet; watching starts once the
			// directory appears under an already-watched parent.
			w.opts.Logger.Debug("glob base missing, skipping", "dir", base)
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "watching %s", base)
	}

	return filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if hidden(path) && path != base {
			return filepath.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "watching %s", path)
		}
		w.opts.Logger.Debug("watching directory", "dir", path)
		return nil
	})
}

// Run processes events until ctx is cancelled, invoking the change
// callback after each quiet window. It always returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	w.opts.Logger.Info("watching for changes",
		"paths", len(w.opts.Paths), "globs", len(w.opts.Globs))
	observability.Watch().OnWatchStart(ctx, len(w.opts.Paths), len(w.opts.Globs))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fw.Events:
			if !ok {
				return ctx.Err()
			}
			w.handle(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return ctx.Err()
			}
			observability.Watch().OnWatchError(ctx, err)
			w.opts.Logger.Warn("watch error", "err", err)
		case <-w.flushC:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	// New directories under a glob base join the watch before filtering,
	// so files created inside them are not missed.
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !hidden(ev.Name) {
			if err := w.addTree(ev.Name); err != nil {
				w.opts.Logger.Warn("watch new directory", "dir", ev.Name, "err", err)
			}
		}
	}

	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	if !w.matches(ev.Name) {
		return
	}
	w.opts.Logger.Debug("input changed", "path", ev.Name, "op", ev.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[ev.Name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() {
		select {
		case w.flushC <- struct{}{}:
		default:
		}
	})
}

// matches reports whether a changed path is one of the watched inputs.
func (w *Watcher) matches(path string) bool {
	if hidden(path) {
		return false
	}
	clean := filepath.Clean(path)
	for _, p := range w.opts.Paths {
		if filepath.Clean(p) == clean {
			return true
		}
	}
	slashed := filepath.ToSlash(clean)
	for _, g := range w.opts.Globs {
		if ok, _ := doublestar.Match(g, slashed); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(paths)
	w.opts.Logger.Info("change detected", "files", len(paths))
	observability.Watch().OnChange(ctx, paths)
	w.onChange(paths)
}

func (w *Watcher) close() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.fw.Close()
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
