package in

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	progressin "cafetalk/internal/modules/progress/port/in"
	"cafetalk/internal/platform/logging"
)

const defaultDebounce = 150 * time.Millisecond

// StateWatcher reloads progress when another process rewrites the state
// file. Bursts of events are collapsed into one reload.
type StateWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	usecase  progressin.Usecase
	path     string
	debounce time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func NewStateWatcher(statePath string, usecase progressin.Usecase, logger *zap.Logger) (*StateWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new fsnotify watcher: %w", err)
	}
	return &StateWatcher{
		watcher:  watcher,
		usecase:  usecase,
		path:     filepath.Clean(statePath),
		debounce: defaultDebounce,
		logger:   logging.OrNop(logger).Named("watcher"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches the state file's directory. It does not block.
func (w *StateWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	// The directory is watched rather than the file because writes replace
	// the file by rename.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the event loop and waits for it to exit. It is safe to call
// without Start and more than once.
func (w *StateWatcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Debug("close watcher", zap.Error(err))
	}
}

func (w *StateWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			if err := w.usecase.Reload(ctx); err != nil {
				w.logger.Warn("reload progress", zap.Error(err))
				continue
			}
			w.logger.Debug("progress reloaded", zap.String("path", w.path))
		}
	}
}

func (w *StateWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}
