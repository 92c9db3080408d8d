package config

import (
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/logger"
)

// Watch reloads path whenever it changes and hands the new theme to onTheme.
// onTheme runs on the watcher's goroutine. A change that fails to load or
// validate is logged and otherwise ignored.
//
// The parent directory is watched rather than the file, so editors that save
// by renaming a temp file over the original are picked up.
func Watch(path string, log logger.Logger, onTheme func(Theme)) (io.Closer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't watch config for changes", "")
	}

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't watch config directory "+filepath.Dir(target),
			"Check the directory exists and is readable")
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := Load(target)
				if err != nil {
					log.Warn("config reload failed: %v", err)
					continue
				}
				if err := ValidateTheme(cfg.Theme); err != nil {
					log.Warn("config reload rejected: %v", err)
					continue
				}
				log.Info("theme reloaded from %s", target)
				onTheme(cfg.Theme)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher: %v", err)
			}
		}
	}()

	return w, nil
}
