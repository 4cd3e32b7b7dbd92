// Package watch triggers re-aggregation when source files change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/hexsprite/lintmesh/internal/files"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher observes a tree and reports batches of changed lintable files
// after a quiet period, so one save storm becomes one lint run.
type Watcher struct {
	root     string
	excluded map[string]bool
	debounce time.Duration
	log      *zap.SugaredLogger
	fire     func(changed []string)
}

func New(root string, exclude []string, debounce time.Duration, log *zap.SugaredLogger, fire func([]string)) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}
	return &Watcher{root: root, excluded: excluded, debounce: debounce, log: log, fire: fire}
}

// Run watches until the context is canceled. Changes to excluded directories
// and non-lintable files never trigger a batch.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.root); err != nil {
		return err
	}

	pending := map[string]bool{}
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(fsw, ev, pending)
			if len(pending) > 0 {
				timerC = time.After(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watch error", "error", err)

		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			sort.Strings(changed)
			w.fire(changed)
		}
	}
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, ev fsnotify.Event, pending map[string]bool) {
	if w.underExcluded(ev.Name) {
		return
	}

	// New directories join the watch set so files created inside them are
	// still seen.
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fsw, ev.Name); err != nil {
				w.log.Warnw("cannot watch new directory", "path", ev.Name, "error", err)
			}
			return
		}
	}

	if !files.Lintable(ev.Name) {
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	pending[filepath.ToSlash(rel)] = true
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if w.excluded[d.Name()] && path != root {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func (w *Watcher) underExcluded(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if w.excluded[seg] {
			return true
		}
	}
	return false
}
