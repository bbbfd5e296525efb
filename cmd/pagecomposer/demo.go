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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"pagecomposer/internal/crash"
	"pagecomposer/internal/document"
	"pagecomposer/internal/domain"
	applog "pagecomposer/internal/log"
	"pagecomposer/internal/session"
)

func runDemo(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	st := document.NewStore(storeConfig(cfg.Editor))
	defer crash.Recover(st)

	snap, err := playScenario(ctx, st)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	if cmd.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return printSummary(out, snap)
}

// playScenario drives the example edit sequence through a dispatcher: a page resized to
// 800x1000, a rectangle added with the grid off and sent to the back, then an attempt
// to remove the only page. It returns the final snapshot.
func playScenario(ctx context.Context, st *document.Store) (document.Snapshot, error) {
	l := applog.WithComponent("demo")
	d := session.New(st, session.Options{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Run(gctx) })

	updates := d.Subscribe()
	g.Go(func() error {
		for snap := range updates {
			l.Debug("snapshot", slog.Uint64("rev", snap.Revision), slog.Int("pages", len(snap.Pages)))
		}
		return nil
	})

	var final document.Snapshot
	g.Go(func() error {
		defer d.Close()
		sctx := applog.ContextWithAttrs(gctx, slog.String("scenario", "example"))
		p := st.Snapshot().ActivePageID
		var rect string
		steps := []struct {
			name string
			cmd  session.Command
		}{
			{"resize page", func(s *document.Store) {
				s.UpdatePage(p, domain.PagePatch{
					Width:   domain.Ptr(800.0),
					Height:  domain.Ptr(1000.0),
					Margins: &domain.Margins{Top: 60, Bottom: 60, Left: 60, Right: 60},
				})
			}},
			{"grid off", func(s *document.Store) { s.SetGridSettings(false, 0) }},
			{"add rect", func(s *document.Store) {
				s.AddElement(p, domain.ElementRect)
				rect = s.Snapshot().SelectedElementIDs[0]
			}},
			{"send to back", func(s *document.Store) { s.MoveElementLayer(rect, domain.LayerBack) }},
			{"remove only page", func(s *document.Store) { s.RemovePage(p) }},
		}
		for _, step := range steps {
			if err := d.Dispatch(sctx, step.cmd); err != nil {
				return fmt.Errorf("%s: %w", step.name, err)
			}
			l.InfoContext(sctx, "step applied", slog.String("step", step.name), slog.Uint64("rev", st.Revision()))
		}
		final = st.Snapshot()
		return st.CheckInvariants()
	})

	if err := g.Wait(); err != nil {
		return document.Snapshot{}, err
	}
	return final, nil
}

func printSummary(w io.Writer, snap document.Snapshot) error {
	if _, err := fmt.Fprintf(w, "revision %d, %d page(s), %d element(s), zoom %g\n",
		snap.Revision, len(snap.Pages), len(snap.Elements), snap.Zoom); err != nil {
		return err
	}
	for i, pg := range snap.Pages {
		marker := " "
		if pg.ID == snap.ActivePageID {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s page %d %s (%gx%g)\n", marker, i+1, pg.ID, pg.Width, pg.Height)
		for z, el := range snap.ElementsOf(pg.ID) {
			kind := string(el.Type)
			if el.IsBody {
				kind = "body"
			}
			sel := ""
			if snap.IsSelected(el.ID) {
				sel = " [selected]"
			}
			_, _ = fmt.Fprintf(w, "    z%d %-6s %s at (%g,%g) %gx%g fill=%s%s\n",
				z, kind, el.ID, el.X, el.Y, el.Width, el.Height, el.Fill, sel)
		}
	}
	return nil
}
