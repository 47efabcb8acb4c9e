// Package watcher polls a corpus root for Java file changes and triggers
// re-indexing. Polling (mtime+size snapshots) instead of inotify keeps the
// behavior identical across platforms and network filesystems.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/DeusData/javagraph/internal/discover"
)

const (
	baseInterval = 1 * time.Second
	maxInterval  = 60 * time.Second
)

type fileSnapshot struct {
	modTime time.Time
	size    int64
}

// IndexFunc is invoked when the watched corpus has changed.
type IndexFunc func(ctx context.Context) error

// Watcher polls one corpus root. The poll interval adapts to corpus size
// so large trees are not re-walked every second.
type Watcher struct {
	rootPath string
	ignore   []string
	indexFn  IndexFunc

	snapshot map[string]fileSnapshot
	interval time.Duration
}

// New creates a Watcher over a corpus root. ignorePatterns are passed
// through to file discovery.
func New(rootPath string, ignorePatterns []string, indexFn IndexFunc) *Watcher {
	return &Watcher{
		rootPath: rootPath,
		ignore:   ignorePatterns,
		indexFn:  indexFn,
		interval: baseInterval,
	}
}

// Run blocks until ctx is cancelled. The first poll captures a baseline
// without triggering an index; later polls trigger indexFn on any change
// to the discovered .java set (content, addition, or removal).
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(baseInterval)
	defer ticker.Stop()

	next := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if now.Before(next) {
				continue
			}
			w.poll(ctx)
			next = time.Now().Add(w.interval)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	if _, err := os.Stat(w.rootPath); err != nil {
		slog.Warn("watcher.root_gone", "path", w.rootPath)
		w.interval = maxInterval
		return
	}

	snap, err := w.capture(ctx)
	if err != nil {
		slog.Warn("watcher.snapshot", "err", err)
		return
	}
	w.interval = pollInterval(len(snap))

	if w.snapshot == nil {
		slog.Debug("watcher.baseline", "files", len(snap))
		w.snapshot = snap
		return
	}
	if snapshotsEqual(w.snapshot, snap) {
		return
	}

	slog.Info("watcher.changed", "root", w.rootPath, "files", len(snap))
	if err := w.indexFn(ctx); err != nil {
		slog.Warn("watcher.index", "err", err)
		// Keep the old snapshot so the change retries next cycle.
		return
	}
	w.snapshot = snap
}

func (w *Watcher) capture(ctx context.Context) (map[string]fileSnapshot, error) {
	files, err := discover.Discover(ctx, w.rootPath, &discover.Options{IgnorePatterns: w.ignore})
	if err != nil {
		return nil, err
	}
	snap := make(map[string]fileSnapshot, len(files))
	for _, f := range files {
		info, statErr := os.Stat(f.Path)
		if statErr != nil {
			continue
		}
		snap[f.RelPath] = fileSnapshot{modTime: info.ModTime(), size: info.Size()}
	}
	return snap, nil
}

func snapshotsEqual(a, b map[string]fileSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for path, as := range a {
		bs, ok := b[path]
		if !ok || !as.modTime.Equal(bs.modTime) || as.size != bs.size {
			return false
		}
	}
	return true
}

// pollInterval grows with corpus size: 1s base plus 1s per 500 files,
// capped at maxInterval.
func pollInterval(fileCount int) time.Duration {
	d := baseInterval + time.Duration(fileCount/500)*time.Second
	if d > maxInterval {
		d = maxInterval
	}
	return d
}
