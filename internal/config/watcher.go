package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file on change and hands the result to a
// callback. Only the brewing section is expected to change at runtime; the
// callback decides what to apply.
type Watcher struct {
	path     string
	onReload func(*Config)
	fw       *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given config path. onReload is invoked
// with each successfully reloaded configuration.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors replace files on save and a
	// direct file watch is lost after the first rename.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{path: path, onReload: onReload, fw: fw}, nil
}

// Run processes filesystem events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				slog.Warn("Config reload skipped", "path", w.path, "error", err)
				continue
			}
			slog.Info("Configuration reloaded", "path", w.path)
			w.onReload(cfg)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watcher error", "error", err)
		}
	}
}
