// Package watcher reports changes to parameter and catalog files. Bursts
// of events for one file are coalesced by a debounce gate per file.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/philipparndt/gopipe/internal/debounce"
)

// DefaultDelay is the quiet period before a change is reported
const DefaultDelay = 200 * time.Millisecond

// Option configures a FileWatcher
type Option func(*FileWatcher)

// WithScheduler replaces the wall clock timers, mainly for tests
func WithScheduler(s debounce.Scheduler) Option {
	return func(fw *FileWatcher) {
		fw.scheduler = s
	}
}

// WithLogger sets the logger for watcher errors
func WithLogger(l *slog.Logger) Option {
	return func(fw *FileWatcher) {
		fw.logger = l
	}
}

// FileWatcher watches files for changes and triggers callbacks
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	delay     time.Duration
	scheduler debounce.Scheduler
	logger    *slog.Logger
	gates     map[string]*debounce.Gate[uint64]
	events    map[string]uint64
	dirs      map[string]int
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(delay time.Duration, opts ...Option) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		delay:     delay,
		scheduler: debounce.TimerScheduler{},
		logger:    slog.Default(),
		gates:     make(map[string]*debounce.Gate[uint64]),
		events:    make(map[string]uint64),
		dirs:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// Watch starts watching the specified files. The callback receives the
// absolute path once a burst of changes to that file has settled.
//
// The containing directory is watched rather than the file itself, so
// editors that save by renaming a temporary file are still noticed.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if _, exists := fw.gates[absPath]; exists {
			continue
		}

		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fw.dirs[dir]++

		gate := debounce.New[uint64](0, fw.delay, fw.scheduler, debounce.WithName(filepath.Base(absPath)), debounce.WithLogger(fw.logger))
		path := absPath
		gate.OnChange(func(uint64) { callback(path) })
		fw.gates[absPath] = gate
	}

	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				fw.handleEvent(event)

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Warn("watcher error", "err", err)
			}
		}
	}()
}

// handleEvent feeds write and create events of watched files to their gate
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	path := filepath.Clean(event.Name)

	fw.mu.Lock()
	gate, exists := fw.gates[path]
	if exists {
		fw.events[path]++
	}
	count := fw.events[path]
	fw.mu.Unlock()

	if exists {
		gate.Stabilize(count)
	}
}

// Close stops the watcher and drops pending notifications
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, gate := range fw.gates {
		gate.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// RemoveAll removes all watched files
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, gate := range fw.gates {
		gate.Stop()
	}
	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return err
		}
	}

	fw.gates = make(map[string]*debounce.Gate[uint64])
	fw.events = make(map[string]uint64)
	fw.dirs = make(map[string]int)
	return nil
}
