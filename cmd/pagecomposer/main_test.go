/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"pagecomposer/internal/config"
	"pagecomposer/internal/document"
	"pagecomposer/internal/domain"
	"pagecomposer/internal/version"
)

func TestPlayScenario(t *testing.T) {
	st := document.NewStore(document.Config{})
	snap, err := playScenario(context.Background(), st)
	if err != nil {
		t.Fatalf("playScenario: %v", err)
	}
	if len(snap.Pages) != 1 {
		t.Fatalf("the only page must survive, got %d pages", len(snap.Pages))
	}
	pg := snap.Pages[0]
	if pg.Width != 800 || pg.Height != 1000 || len(pg.Elements) != 2 {
		t.Fatalf("page = %+v", pg)
	}
	rect, body := snap.Elements[pg.Elements[0]], snap.Elements[pg.Elements[1]]
	if rect.Type != domain.ElementRect || !body.IsBody {
		t.Fatalf("rect should be at the back: %v", pg.Elements)
	}
	if rect.X != 100 || rect.Y != 100 || rect.Fill != "#525252" {
		t.Fatalf("rect = %+v", rect)
	}
	if len(snap.SelectedElementIDs) != 1 || snap.SelectedElementIDs[0] != rect.ID {
		t.Fatalf("selection = %v", snap.SelectedElementIDs)
	}
	if body.Width != 680 || body.Height != 880 {
		t.Fatalf("body = %+v", body)
	}
}

func TestStoreConfigMapsEditorSection(t *testing.T) {
	e := config.Defaults().Editor
	e.MarginLeft = 30
	e.GridEnabled = true
	st := document.NewStore(storeConfig(e))
	snap := st.Snapshot()
	if !snap.Grid.Enabled || snap.Grid.Size != e.GridSize {
		t.Fatalf("grid = %+v", snap.Grid)
	}
	body, _ := st.BodyOf(snap.ActivePageID)
	if body.X != 30 || body.Width != e.PageWidth-30-e.MarginRight {
		t.Fatalf("body = %+v", body)
	}
}

func TestStoreConfigKeepsZeroPlacement(t *testing.T) {
	e := config.Defaults().Editor
	e.MarginTop, e.MarginLeft = 0, 0
	e.GridEnabled = true
	e.TextRowOffset = 0
	st := document.NewStore(storeConfig(e))
	p := st.Snapshot().ActivePageID
	st.AddElement(p, domain.ElementText)
	el, ok := st.Element(st.Snapshot().SelectedElementIDs[0])
	if !ok || el.X != 0 || el.Y != 0 {
		t.Fatalf("text = %+v, want at (0,0)", el)
	}
}

func TestApplyEditor(t *testing.T) {
	st := document.NewStore(document.Config{})
	e := config.Defaults().Editor
	e.GridEnabled, e.GridSize, e.Zoom = true, 16, 1.75
	applyEditor(e)(st)
	snap := st.Snapshot()
	if !snap.Grid.Enabled || snap.Grid.Size != 16 || snap.Zoom != 1.75 {
		t.Fatalf("session = %+v %v", snap.Grid, snap.Zoom)
	}
}

func TestPrintSummary(t *testing.T) {
	st := document.NewStore(document.Config{})
	st.AddElement(st.Snapshot().ActivePageID, domain.ElementCircle)
	var buf bytes.Buffer
	if err := printSummary(&buf, st.Snapshot()); err != nil {
		t.Fatalf("printSummary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"1 page(s)", "2 element(s)", "* page 1", "body", "circle", "[selected]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintConfigListsOverrides(t *testing.T) {
	t.Setenv(config.EnvZoom, "2")
	var buf bytes.Buffer
	if err := printConfig(&buf, "/tmp/config.yaml", config.Defaults()); err != nil {
		t.Fatalf("printConfig: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "grid_size: 24") || !strings.Contains(out, "editor.zoom overridden by PCW_ZOOM") {
		t.Fatalf("config output:\n%s", out)
	}
}

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(config.EnvLogLevel, "error")
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf
	if err := app.Run(context.Background(), append([]string{"pagecomposer"}, args...)); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	if out := runApp(t, "version"); strings.TrimSpace(out) != version.String() {
		t.Fatalf("version output = %q", out)
	}
}

func TestDemoCommandJSON(t *testing.T) {
	out := runApp(t, "demo", "--json")
	var snap document.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("demo output is not a snapshot: %v\n%s", err, out)
	}
	if len(snap.Pages) != 1 || len(snap.Elements) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
}
