package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/models"
	"github.com/vanpelt/gitmonitor/internal/recovery"
)

var ErrWatcherStarted = errors.New("file watcher already started")

// FileWatcher observes a working tree (minus .git) and emits typed change events
type FileWatcher struct {
	root    string
	events  chan models.FileWatchEvent
	watcher *fsnotify.Watcher
	started atomic.Bool
	dropped atomic.Uint64
	done    chan struct{}
	once    sync.Once
}

func NewFileWatcher(root string, buffer int) *FileWatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &FileWatcher{
		root:   filepath.Clean(root),
		events: make(chan models.FileWatchEvent, buffer),
		done:   make(chan struct{}),
	}
}

// Events is the outbound event stream. It is never closed; consumers stop on
// their own context.
func (w *FileWatcher) Events() <-chan models.FileWatchEvent {
	return w.events
}

// Dropped counts events discarded because nobody drained the channel in time
func (w *FileWatcher) Dropped() uint64 {
	return w.dropped.Load()
}

// Start registers the tree and launches the watch loop. The loop ends when ctx
// is cancelled or Close is called. A watcher cannot be started twice.
func (w *FileWatcher) Start(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrWatcherStarted
	}

	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("failed to stat watch root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch root %s is not a directory", w.root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.watcher = watcher

	count, err := w.addRecursive(w.root)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	logger.Infof("👀 Watching %s (%d directories)", w.root, count)

	recovery.SafeGoWithCleanup("file-watcher", func() {
		w.loop(ctx)
	}, func() {
		watcher.Close()
	})
	return nil
}

// Close stops the watch loop
func (w *FileWatcher) Close() {
	w.once.Do(func() { close(w.done) })
}

func (w *FileWatcher) addRecursive(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The root must be readable; unreadable subtrees are skipped.
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if path == dir {
				return err
			}
			logger.Warnf("Failed to watch %s: %v", path, err)
			return nil
		}
		count++
		return nil
	})
	return count, err
}

func (w *FileWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("File watcher error: %v", err)
		}
	}
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	if w.isIgnored(ev.Name) {
		return
	}

	eventType, ok := mapOp(ev.Op)
	if !ok {
		return
	}

	if eventType == models.FileCreated {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if _, err := w.addRecursive(ev.Name); err != nil {
				logger.Warnf("Failed to watch new directory %s: %v", ev.Name, err)
			}
		}
	}

	event := models.NewFileWatchEvent(eventType, ev.Name)
	select {
	case w.events <- event:
	default:
		w.dropped.Add(1)
		logger.Warnf("File event channel full, dropped %s %s", eventType, ev.Name)
	}
}

// isIgnored reports whether path lies inside a .git directory of the tree
func (w *FileWatcher) isIgnored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}

func mapOp(op fsnotify.Op) (models.FileEventType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return models.FileCreated, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return models.FileDeleted, true
	case op.Has(fsnotify.Write):
		return models.FileModified, true
	default:
		return "", false
	}
}
