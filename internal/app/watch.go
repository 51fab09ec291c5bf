package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/stepconf/internal/fsutil"
)

// Watch validates the configured files, then validates them again whenever
// one of them changes, until ctx is done. Bursts of events, such as an
// editor's atomic save, are folded into one run by waiting until no event
// arrived for the configured debounce period.
//
// onRun, when not nil, is called after every validation with its result. An
// invalid configuration does not stop the watch.
func (a *App) Watch(ctx context.Context, onRun func(err error)) error {
	ctx = a.context(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create fsnotify: %w", err)
	}
	defer fsw.Close()

	watched := make(map[string]struct{})
	run := func() {
		err := a.Validate(ctx)
		if err != nil && !errors.Is(err, ErrInvalid) {
			a.logger.Error("Validation failed.", "error", err)
		}
		// New directories may have appeared since the last run.
		if werr := a.subscribe(fsw, watched); werr != nil {
			a.logger.Error("Failed to watch directories.", "error", werr)
		}
		if onRun != nil {
			onRun(err)
		}
	}
	run()
	a.logger.Info("Watching for changes.", "dirs", len(watched))

	ticker := time.NewTicker(a.config.Debounce / 2)
	defer ticker.Stop()
	var pending time.Time

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Watch stopped.")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create == 0 && !fsutil.Matches(a.config.Paths, a.config.Include, event.Name) {
				continue
			}
			a.logger.Debug("Change detected.", "path", event.Name, "op", event.Op.String())
			pending = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("Watcher error.", "error", err)

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < a.config.Debounce {
				continue
			}
			pending = time.Time{}
			run()
		}
	}
}

func (a *App) subscribe(fsw *fsnotify.Watcher, watched map[string]struct{}) error {
	dirs, err := fsutil.WatchDirs(a.config.Paths)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if _, ok := watched[d]; ok {
			continue
		}
		if err := fsw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
		watched[d] = struct{}{}
		a.logger.Debug("Watching directory.", "dir", d)
	}
	return nil
}
