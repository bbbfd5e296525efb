/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"pagecomposer/internal/config"
	"pagecomposer/internal/crash"
	"pagecomposer/internal/document"
	applog "pagecomposer/internal/log"
	"pagecomposer/internal/session"
)

func runWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, path, err := setup(cmd)
	if err != nil {
		return err
	}
	st := document.NewStore(storeConfig(cfg.Editor))
	defer crash.Recover(st)
	return follow(ctx, st, path)
}

// follow keeps st open and applies the editor session settings (grid and zoom) from the
// config file at path whenever it changes, until ctx is cancelled.
func follow(ctx context.Context, st *document.Store, path string) error {
	l := applog.WithComponent("watch")
	d := session.New(st, session.Options{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return d.Run(gctx) })

	updates := d.Subscribe()
	g.Go(func() error {
		for snap := range updates {
			l.Info("document updated",
				slog.Uint64("rev", snap.Revision),
				slog.Bool("grid", snap.Grid.Enabled),
				slog.Float64("grid_size", snap.Grid.Size),
				slog.Float64("zoom", snap.Zoom))
		}
		return nil
	})

	g.Go(func() error {
		defer d.Close()
		return config.Watch(gctx, path, func(c config.AppConfig) {
			err := d.Dispatch(gctx, applyEditor(c.Editor))
			if err != nil {
				l.Warn("apply config failed", slog.String("error", err.Error()))
			}
		})
	})

	l.Info("watching config", slog.String("path", path))
	return g.Wait()
}

// applyEditor returns the command that brings the session settings in line with e.
func applyEditor(e config.EditorConfig) session.Command {
	return func(s *document.Store) {
		s.SetGridSettings(e.GridEnabled, e.GridSize)
		s.SetZoom(e.Zoom)
	}
}
