// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// configWatcher re-reads a config file when it changes and hands the cvars
// to the game loop through Updates. It never touches console variables
// itself: writes stay on the game loop goroutine.
type configWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan map[string]int
	done    chan struct{}
	log     *zap.Logger
}

func watchConfig(path string, log *zap.Logger) (*configWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config path %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	// Editors often replace the file instead of writing it, so watch the
	// directory and filter by name.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	cw := &configWatcher{
		path:    abs,
		watcher: w,
		updates: make(chan map[string]int, 1),
		done:    make(chan struct{}),
		log:     log,
	}
	go cw.run()
	return cw, nil
}

// Updates delivers the cvars of the latest successfully parsed file. Only the
// newest pending update is kept.
func (cw *configWatcher) Updates() <-chan map[string]int {
	return cw.updates
}

func (cw *configWatcher) run() {
	defer close(cw.done)
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cw.reload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (cw *configWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		cw.log.Warn("config reload failed", zap.Error(err))
		return
	}
	cw.log.Debug("config changed", zap.String("path", cw.path), zap.Int("cvars", len(cfg.CVars)))

	// Drop a pending update nobody consumed yet in favour of this one.
	select {
	case <-cw.updates:
	default:
	}
	select {
	case cw.updates <- cfg.CVars:
	default:
	}
}

func (cw *configWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}
