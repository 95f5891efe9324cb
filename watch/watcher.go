// Package watch re-runs spell checks when input or allow-list files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/schemaspell/paths"
	"github.com/fsnotify/fsnotify"
)

// Handler is called with the sorted paths that changed since the last call.
type Handler func(ctx context.Context, changed []string)

// Watcher watches the directories of a set of glob patterns and calls its
// handler once changes to matching files have settled.
type Watcher struct {
	patterns []string
	debounce time.Duration
	handler  Handler
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changes until quiet for one debounce period
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
	lastEvent time.Time
}

// New creates a watcher for the comma-separated glob patterns.
func New(patterns []string, debounce time.Duration, handler Handler, logger *slog.Logger) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch handler is required")
	}
	if debounce <= 0 {
		return nil, fmt.Errorf("invalid debounce %s", debounce)
	}

	var cleaned []string
	for _, p := range patterns {
		cleaned = append(cleaned, paths.Split(p)...)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("no patterns to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		patterns: cleaned,
		debounce: debounce,
		handler:  handler,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
	}, nil
}

// Run watches until ctx is cancelled. The handler runs on the calling
// goroutine, one call at a time.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for _, dir := range w.baseDirs() {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn("Skipping missing watch directory", "path", dir)
			continue
		}
		if err := w.addWatchesRecursive(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.logger.Info("Watching for changes",
		"patterns", w.patterns,
		"debounce", w.debounce)

	ticker := time.NewTicker(max(w.debounce/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if changed := w.takeSettled(time.Now()); len(changed) > 0 {
				w.logger.Info("Files changed", "files", changed)
				w.handler(ctx, changed)
			}
		}
	}
}

// Matches reports whether path is covered by one of the watched patterns.
func (w *Watcher) Matches(path string) bool {
	path = filepath.Clean(path)
	for _, pattern := range w.patterns {
		if ok, _ := doublestar.PathMatch(filepath.Clean(pattern), path); ok {
			return true
		}
	}
	return false
}

// baseDirs returns the deduplicated static directory prefixes of the
// patterns.
func (w *Watcher) baseDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, pattern := range w.patterns {
		dir := baseDir(pattern)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// baseDir returns the directory part of pattern that holds no glob
// metacharacters.
func baseDir(pattern string) string {
	if !paths.ContainsGlob(pattern) {
		return filepath.Dir(pattern)
	}
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

// addWatchesRecursive adds watches to root and the directories below it.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		// Skip hidden directories
		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// handleFSEvent records a change to a watched file or watches a new
// directory.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(path); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if !w.Matches(path) {
		return
	}

	w.record(path, event.Op, time.Now())
	w.logger.Debug("Change detected", "path", path, "op", event.Op.String())
}

func (w *Watcher) record(path string, op fsnotify.Op, at time.Time) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.pending[path] |= op
	w.lastEvent = at
}

// takeSettled returns and clears the pending paths once no change has
// arrived for a full debounce period.
func (w *Watcher) takeSettled(now time.Time) []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 || now.Sub(w.lastEvent) < w.debounce {
		return nil
	}

	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]fsnotify.Op)
	sort.Strings(changed)
	return changed
}
