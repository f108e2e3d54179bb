package deck

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/storage"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

// Watch reloads the deck at path whenever it is written or replaced and
// calls fn with the result. A reload that fails is passed as a nil deck and
// the error. The directory is watched rather than the file so atomic
// rename-on-save keeps working. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(*storage.Deck, error)) error {
	return watch(ctx, path, DefaultDebounce, fn)
}

func watch(ctx context.Context, path string, debounce time.Duration, fn func(*storage.Deck, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving deck path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			debuglog.Warnf("closing deck watcher: %v", closeErr)
		}
	}()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	debuglog.Infof("watching deck %s", abs)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			deck, err := Load(abs)
			if err != nil {
				debuglog.Warnf("reloading deck %s: %v", abs, err)
			} else {
				debuglog.WithFields(map[string]interface{}{
					"deck":  deck.ID,
					"items": len(deck.Items),
				}).Debugf("deck reloaded")
			}
			fn(deck, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debuglog.Warnf("deck watcher: %v", err)
		}
	}
}
