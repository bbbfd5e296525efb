/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	applog "pagecomposer/internal/log"
)

// reloadDelay coalesces the burst of events editors emit for a single save.
const reloadDelay = 150 * time.Millisecond

// Watch observes the config file at path and calls fn with the freshly loaded and
// validated configuration after every change, until ctx is cancelled.
// The parent directory is watched so atomic rename-on-save is seen as well.
// Invalid files are logged and skipped; fn only ever sees valid configs.
func Watch(ctx context.Context, path string, fn func(AppConfig)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	logger := applog.WithComponent("config")
	logger.Info("watcher: started", slog.String("path", path))

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(reloadDelay)
			fire = timer.C
		} else {
			timer.Reset(reloadDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-fire:
			cfg, err := LoadFile(path)
			if err != nil {
				logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			if err := cfg.Validate(); err != nil {
				logger.Warn("watcher: invalid config", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("watcher: reloaded", slog.String("path", path))
			fn(cfg)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				schedule()
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", werr.Error()))
		}
	}
}
