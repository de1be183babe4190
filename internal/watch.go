package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/dbglint/internal/hir/dump"
	tt "github.com/gnolang/dbglint/internal/types"
)

// watchSettle is how long a change must rest before the dump is re-linted,
// so that one write split into several events is processed once.
const watchSettle = 100 * time.Millisecond

var ErrAlreadyWatching = errors.New("already watching")

// OnIssues sets the function called with the result of every re-lint in
// watch mode. By default results are logged.
func (e *Engine) OnIssues(fn func(filename string, issues []tt.Issue)) {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()
	e.onIssues = fn
}

// StartWatching re-lints dump files below dirs whenever they are written.
// With no dirs, the engine's root directory is watched.
func (e *Engine) StartWatching(dirs ...string) error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.isWatching {
		return ErrAlreadyWatching
	}
	if len(dirs) > 0 {
		e.watchDirs = dirs
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.watchDone = make(chan struct{})
	e.isWatching = true
	go e.watchLoop(watcher, e.watchDone)
	return nil
}

// StopWatching closes the watcher and waits for pending events to finish.
func (e *Engine) StopWatching() error {
	e.watchMu.Lock()
	if !e.isWatching {
		e.watchMu.Unlock()
		e.logger.Info("not watching")
		return nil
	}
	e.isWatching = false
	watcher, done := e.watcher, e.watchDone
	e.watchMu.Unlock()

	err := watcher.Close()
	<-done
	return err
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				e.logger.Warn("cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !dump.IsDumpFile(event.Name) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(watchSettle)
	issues, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("error linting dump", zap.String("file", event.Name), zap.Error(err))
		return
	}
	e.reportIssues(event.Name, issues)
}

func (e *Engine) reportIssues(filename string, issues []tt.Issue) {
	e.watchMu.Lock()
	fn := e.onIssues
	e.watchMu.Unlock()
	if fn != nil {
		fn(filename, issues)
		return
	}

	if len(issues) == 0 {
		e.logger.Info("no issues found", zap.String("file", filename))
		return
	}

	e.logger.Info("found issues", zap.String("file", filename), zap.Int("count", len(issues)))
	for _, issue := range issues {
		e.logger.Info(issue.Message,
			zap.String("rule", issue.Rule),
			zap.String("at", fmt.Sprintf("%s:%d:%d", issue.Filename, issue.Start.Line, issue.Start.Column)),
		)
	}
}
