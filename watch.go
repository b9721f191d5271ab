package typekit

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// WatchFunc receives the re-classification of a file that changed.
type WatchFunc func(path string, result TestResult)

// Watcher re-runs the classification pipeline whenever a watched file is
// created or written. Watching a directory covers the files inside it.
type Watcher struct {
	tester FileTester
	fw     *fsnotify.Watcher
	fn     WatchFunc
}

// NewWatcher creates a Watcher delivering results to fn.
func NewWatcher(tester FileTester, fn WatchFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{tester: tester, fw: fw, fn: fn}, nil
}

// Add registers a file or directory for watching.
func (w *Watcher) Add(path string) error {
	return w.fw.Add(path)
}

// Run blocks delivering re-classifications until the context is cancelled
// or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.fn(event.Name, w.tester.TestFile(event.Name))
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
