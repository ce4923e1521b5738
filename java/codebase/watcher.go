package codebase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/quickview/java/scanner"
)

var watchLog = commonlog.GetLogger("quickview.watch")

// FileWatcher keeps a Codebase current with .java changes on disk. Changes
// are collected until a path has been quiet for the debounce period, then
// inheritance caches are dropped and open files are re-read.
type FileWatcher struct {
	fsWatcher *fsnotify.Watcher
	codebase  *Codebase
	root      string
	filter    *scanner.Filter
	debounce  time.Duration
	callback  func(paths []string)
	mu        sync.Mutex
	pending   map[string]time.Time
}

func NewFileWatcher(c *Codebase, root string, filter *scanner.Filter, debounce time.Duration) (*FileWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &FileWatcher{
		fsWatcher: fsWatcher,
		codebase:  c,
		root:      root,
		filter:    filter,
		debounce:  debounce,
		pending:   make(map[string]time.Time),
	}, nil
}

// SetCallback sets a function called with every batch of changed paths,
// after the codebase has been updated.
func (w *FileWatcher) SetCallback(cb func(paths []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callback = cb
}

// Start watches the root until ctx is done or the watcher is stopped.
func (w *FileWatcher) Start(ctx context.Context) error {
	if err := w.addTree(w.root); err != nil {
		return err
	}
	watchLog.Infof("watching %s", w.root)

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Errorf("watch error: %v", err)
		}
	}
}

func (w *FileWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(w.root, path); relErr == nil && w.filter.Skip(rel, true) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	path := event.Name
	rel, err := filepath.Rel(w.root, path)
	if err == nil && w.filter.Skip(rel, false) {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addTree(path); err != nil {
				watchLog.Warningf("watch %s: %v", path, err)
			}
			return
		}
	}
	if !scanner.IsJavaFile(path) {
		return
	}

	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

func (w *FileWatcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending(time.Now())
		}
	}
}

// processPending applies the paths that have been quiet since now minus
// the debounce period.
func (w *FileWatcher) processPending(now time.Time) {
	w.mu.Lock()
	var ready []string
	for path, changed := range w.pending {
		if now.Sub(changed) >= w.debounce {
			ready = append(ready, path)
		}
	}
	for _, path := range ready {
		delete(w.pending, path)
	}
	cb := w.callback
	w.mu.Unlock()

	if len(ready) == 0 {
		return
	}
	sort.Strings(ready)
	w.apply(ready)
	if cb != nil {
		cb(ready)
	}
}

func (w *FileWatcher) apply(paths []string) {
	w.codebase.Session().Invalidate()
	for _, path := range paths {
		if w.codebase.GetFile(path) == nil {
			continue
		}
		if err := w.codebase.ScanFile(path); err != nil {
			watchLog.Debugf("keeping last contents of %s: %v", path, err)
		}
	}
	watchLog.Debugf("%d files changed", len(paths))
}

func (w *FileWatcher) Stop() error {
	return w.fsWatcher.Close()
}

// WatchedDirs returns the directories currently watched.
func (w *FileWatcher) WatchedDirs() []string {
	return w.fsWatcher.WatchList()
}
