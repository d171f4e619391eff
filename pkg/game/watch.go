package game

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/fsnotify.v1"
)

const defaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one full build and returns the sources it read.
type RebuildFunc func(ctx context.Context) (*Result, error)

// Watcher rebuilds a game whenever its configuration or one of its lessons
// changes on disk.
type Watcher struct {
	ConfigPath string
	Rebuild    RebuildFunc
	Debounce   time.Duration
	Logger     zerolog.Logger

	hashes map[string]string
}

// watchedPaths returns the config path and every source of the last build.
func (w *Watcher) watchedPaths(res *Result) []string {
	paths := []string{w.ConfigPath}
	if res != nil {
		for path := range res.Hashes {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths[1:])
	return paths
}

// build runs Rebuild unless no watched file changed since the last run.
func (w *Watcher) build(ctx context.Context, last *Result) (*Result, error) {
	hashes, err := FingerprintFiles(w.watchedPaths(last))
	if err != nil {
		return last, err
	}
	if w.hashes != nil && sameHashes(hashes, w.hashes) {
		w.Logger.Debug().Msg("no source changed, skipping rebuild")
		return last, nil
	}

	res, err := w.Rebuild(ctx)
	if err != nil {
		// Keep the old fingerprints so the next save retries.
		return last, err
	}
	w.hashes, err = FingerprintFiles(w.watchedPaths(res))
	return res, err
}

// Run builds once, then watches the directories of all sources until ctx is
// cancelled. Build failures are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Rebuild == nil {
		return fmt.Errorf("watcher has no rebuild function")
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	last, err := w.build(ctx, nil)
	if err != nil {
		w.Logger.Error().Err(err).Msg("build failed")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	addDirs := func(res *Result) error {
		for _, path := range w.watchedPaths(res) {
			dir := filepath.Dir(path)
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watching directory %s: %w", dir, err)
			}
			watched[dir] = true
		}
		return nil
	}
	if err := addDirs(last); err != nil {
		return err
	}
	w.Logger.Info().Int("directories", len(watched)).Msg("Watching for changes")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.Logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change detected")
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			res, err := w.build(ctx, last)
			if err != nil {
				w.Logger.Error().Err(err).Msg("build failed")
				continue
			}
			if res != last {
				w.Logger.Info().Msg("Rebuilt")
			}
			last = res
			if err := addDirs(last); err != nil {
				w.Logger.Warn().Err(err).Msg("watch error")
			}
		}
	}
}
