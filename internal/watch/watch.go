// Package watch reruns a rebuild after changes under a directory tree settle.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/kbsite/internal/logfields"
)

// DefaultDebounce is the quiet period before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc is invoked once per settled batch of changes.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a directory tree recursively.
type Watcher struct {
	root     string
	debounce time.Duration
	rebuild  RebuildFunc
	watcher  *fsnotify.Watcher

	mu       sync.Mutex
	timer    *time.Timer
	requests chan struct{}
}

// New watches root and every directory below it. debounce <= 0 uses
// DefaultDebounce.
func New(root string, debounce time.Duration, rebuild RebuildFunc) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(fw, abs); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		root:     abs,
		debounce: debounce,
		rebuild:  rebuild,
		watcher:  fw,
		requests: make(chan struct{}, 1),
	}, nil
}

// Run processes events until ctx is cancelled. Rebuilds never overlap; a
// change during a rebuild queues exactly one more.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("Watching for changes", logfields.Path(w.root))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildLoop(ctx)
	}()

	defer func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		if err := w.watcher.Close(); err != nil {
			slog.Warn("Error closing file watcher", logfields.Error(err))
		}
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) rebuildLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.requests:
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
				continue
			}
			slog.Info("Rebuild complete", logfields.DurationMS(time.Since(start).Milliseconds()))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(w.watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger()
}

// trigger restarts the debounce timer.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.requests <- struct{}{}:
		default:
		}
	})
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden, editor swap and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}
