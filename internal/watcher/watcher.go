// Package watcher turns filesystem changes into scan triggers.
//
// When watching is enabled, changes to text files under the scan root fire
// the registered trigger after a debounce window, so the pipeline picks up
// new or modified files immediately instead of waiting out the scan
// interval. The trigger is advisory: losing an event only means the change
// is picked up by the next timed pass.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mzielinski/freqwatch/internal/logging"
)

// Trigger is called after the debounce window closes on a burst of
// relevant changes.
type Trigger func()

// FileFilter determines if a change path is relevant.
type FileFilter func(path string) bool

// TxtFilter selects text files the same way the scanner does:
// case-sensitive ".txt" suffix.
func TxtFilter(path string) bool {
	return strings.HasSuffix(filepath.Base(path), ".txt")
}

// NoHiddenFilter drops changes under dot-directories.
func NoHiddenFilter(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") {
			return false
		}
	}
	return true
}

// ScanTrigger watches a directory tree and debounces change bursts into
// single trigger invocations.
type ScanTrigger struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	trigger  Trigger
	filters  []FileFilter
	logger   logging.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewScanTrigger creates a trigger that fires after debounce of quiet time
// following a relevant change.
func NewScanTrigger(debounce time.Duration, trigger Trigger, logger logging.Logger) (*ScanTrigger, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.Discard()
	}

	return &ScanTrigger{
		watcher:  w,
		debounce: debounce,
		trigger:  trigger,
		filters:  []FileFilter{TxtFilter, NoHiddenFilter},
		logger:   logger.WithComponent("watcher"),
	}, nil
}

// AddRecursive adds root and all its subdirectories to the watch.
// Directories created later are added as their create events arrive.
func (st *ScanTrigger) AddRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return st.watcher.Add(path)
		}
		return nil
	})
}

// Start runs the watch loop until ctx is cancelled.
func (st *ScanTrigger) Start(ctx context.Context) {
	go st.watchLoop(ctx)
}

// Stop stops watching and releases the underlying watcher. Pending
// debounce timers are cancelled.
func (st *ScanTrigger) Stop() error {
	st.mu.Lock()
	if st.timer != nil {
		st.timer.Stop()
	}
	st.mu.Unlock()

	return st.watcher.Close()
}

func (st *ScanTrigger) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-st.watcher.Events:
			if !ok {
				return
			}
			st.handleEvent(ctx, event)
		case err, ok := <-st.watcher.Errors:
			if !ok {
				return
			}
			// Log and keep watching; a watch error never stops the pipeline.
			st.logger.Warn(ctx, err, "watch error")
		}
	}
}

func (st *ScanTrigger) handleEvent(ctx context.Context, event fsnotify.Event) {
	// Newly created directories join the watch so files appearing inside
	// them are seen too.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := st.watcher.Add(event.Name); err != nil {
				st.logger.Warn(ctx, err, "adding created directory to watch failed", "path", event.Name)
			}
			return
		}
	}

	for _, filter := range st.filters {
		if !filter(event.Name) {
			return
		}
	}

	st.logger.Debug(ctx, "relevant change", "path", event.Name, "op", event.Op.String())
	st.schedule()
}

// schedule arms the debounce timer, restarting it while changes keep
// arriving so one burst fires the trigger once.
func (st *ScanTrigger) schedule() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.timer != nil {
		st.timer.Stop()
	}

	st.timer = time.AfterFunc(st.debounce, st.trigger)
}
