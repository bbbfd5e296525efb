/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package document

import (
	"slices"
	"testing"

	"pagecomposer/internal/domain"
)

// addAndGet adds an element of type t to the first page and returns it.
func addAndGet(t *testing.T, s *Store, typ domain.ElementType) domain.Element {
	t.Helper()
	p := firstPage(t, s).ID
	s.AddElement(p, typ)
	pg, _ := s.Page(p)
	el, ok := s.Element(pg.Elements[len(pg.Elements)-1])
	if !ok || el.Type != typ {
		t.Fatalf("added element not found on top of page: %+v", el)
	}
	return el
}

func TestElementDefaults(t *testing.T) {
	cases := []struct {
		typ          domain.ElementType
		w, h         float64
		fill, stroke string
	}{
		{domain.ElementText, 300, 48, "#000000", ""},
		{domain.ElementRect, 96, 96, "#525252", ""},
		{domain.ElementCircle, 96, 96, "#525252", ""},
		{domain.ElementImage, 96, 96, "#525252", ""},
		{domain.ElementLine, 120, 2, "transparent", "#000000"},
		{domain.ElementPath, 0, 0, "transparent", "#000000"},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			s := newTestStore(t)
			el := addAndGet(t, s, tc.typ)
			if el.Width != tc.w || el.Height != tc.h {
				t.Fatalf("size = %vx%v, want %vx%v", el.Width, el.Height, tc.w, tc.h)
			}
			if el.Fill != tc.fill || el.Stroke != tc.stroke {
				t.Fatalf("fill/stroke = %q/%q", el.Fill, el.Stroke)
			}
			if el.Opacity != 1 || el.Rotation != 0 || !el.SnapToGrid || el.IsBody {
				t.Fatalf("base defaults wrong: %+v", el)
			}
			if tc.stroke != "" && el.StrokeWidth != 2 {
				t.Fatalf("stroke width = %v", el.StrokeWidth)
			}
		})
	}
}

func TestTextElementDefaults(t *testing.T) {
	s := newTestStore(t)
	el := addAndGet(t, s, domain.ElementText)
	if el.Text != "New Text" || el.HTMLContent != "<p>New Text</p>" {
		t.Fatalf("text = %q / %q", el.Text, el.HTMLContent)
	}
	if el.FontSize != 12 || el.FontFamily != "Inter" || el.LineHeight != 2 {
		t.Fatalf("typography = %+v", el)
	}
	if el.Align != domain.AlignLeft || el.VerticalAlign != domain.VAlignTop {
		t.Fatalf("alignment = %q/%q", el.Align, el.VerticalAlign)
	}
}

func TestElementSizeFollowsGridUnit(t *testing.T) {
	s := newTestStore(t)
	s.SetGridSettings(false, 10)
	el := addAndGet(t, s, domain.ElementRect)
	if el.Width != 40 || el.Height != 40 {
		t.Fatalf("rect size = %vx%v, want 40x40", el.Width, el.Height)
	}
}

func TestPlacementGridOff(t *testing.T) {
	for _, typ := range []domain.ElementType{domain.ElementText, domain.ElementRect, domain.ElementPath} {
		s := newTestStore(t)
		el := addAndGet(t, s, typ)
		if el.X != 100 || el.Y != 100 {
			t.Fatalf("%s placed at (%v,%v), want (100,100)", typ, el.X, el.Y)
		}
	}
}

func TestPlacementGridOn(t *testing.T) {
	s := newTestStore(t)
	s.SetGridSettings(true, 0)

	// margins 60 on a 24 grid: 2.5 rounds up to 3 units = 72, plus two rows for text.
	text := addAndGet(t, s, domain.ElementText)
	if text.X != 72 || text.Y != 120 {
		t.Fatalf("text placed at (%v,%v), want (72,120)", text.X, text.Y)
	}
	// anchor 100 on a 24 grid rounds to 96.
	rect := addAndGet(t, s, domain.ElementRect)
	if rect.X != 96 || rect.Y != 96 {
		t.Fatalf("rect placed at (%v,%v), want (96,96)", rect.X, rect.Y)
	}

	s.SetGridSettings(true, 40)
	text = addAndGet(t, s, domain.ElementText)
	if text.X != 80 || text.Y != 160 {
		t.Fatalf("text on 40 grid at (%v,%v), want (80,160)", text.X, text.Y)
	}
	line := addAndGet(t, s, domain.ElementLine)
	if line.X != 120 || line.Y != 120 {
		t.Fatalf("line on 40 grid at (%v,%v), want (120,120)", line.X, line.Y)
	}
}

func TestPlacementConstantsAreConfigurable(t *testing.T) {
	s := NewStore(Config{NewID: seqIDs(), GridEnabled: true, GridSize: 10,
		TextRowOffset: domain.Ptr(1.0), ShapeAnchor: domain.Ptr(33.0), FreePosition: domain.Ptr(40.0)})
	text := addAndGet(t, s, domain.ElementText)
	if text.X != 60 || text.Y != 70 {
		t.Fatalf("text at (%v,%v), want (60,70)", text.X, text.Y)
	}
	rect := addAndGet(t, s, domain.ElementRect)
	if rect.X != 30 || rect.Y != 30 {
		t.Fatalf("rect at (%v,%v), want (30,30)", rect.X, rect.Y)
	}
	s.SetGridSettings(false, 0)
	free := addAndGet(t, s, domain.ElementCircle)
	if free.X != 40 || free.Y != 40 {
		t.Fatalf("free element at (%v,%v), want (40,40)", free.X, free.Y)
	}
}

func TestPlacementAcceptsZeroConstants(t *testing.T) {
	m := domain.Margins{Top: 48, Bottom: 48, Left: 48, Right: 48}
	s := NewStore(Config{NewID: seqIDs(), GridEnabled: true, Margins: &m,
		TextRowOffset: domain.Ptr(0.0), ShapeAnchor: domain.Ptr(0.0), FreePosition: domain.Ptr(0.0)})
	text := addAndGet(t, s, domain.ElementText)
	if text.X != 48 || text.Y != 48 {
		t.Fatalf("text at (%v,%v), want (48,48)", text.X, text.Y)
	}
	rect := addAndGet(t, s, domain.ElementRect)
	if rect.X != 0 || rect.Y != 0 {
		t.Fatalf("rect at (%v,%v), want (0,0)", rect.X, rect.Y)
	}
	s.SetGridSettings(false, 0)
	free := addAndGet(t, s, domain.ElementCircle)
	if free.X != 0 || free.Y != 0 {
		t.Fatalf("free element at (%v,%v), want (0,0)", free.X, free.Y)
	}
}

func TestAddElementSelectsAndEndsDrawing(t *testing.T) {
	s := newTestStore(t)
	first := addAndGet(t, s, domain.ElementRect)
	s.SetDrawingMode(domain.ToolPen)
	second := addAndGet(t, s, domain.ElementRect)
	snap := s.Snapshot()
	if !slices.Equal(snap.SelectedElementIDs, []string{second.ID}) {
		t.Fatalf("selection = %v, want only %q", snap.SelectedElementIDs, second.ID)
	}
	if snap.IsDrawing || snap.DrawingTool != domain.ToolNone {
		t.Fatalf("drawing mode should end: %q", snap.DrawingTool)
	}
	pg := snap.Pages[0]
	if !slices.Equal(pg.Elements[1:], []string{first.ID, second.ID}) {
		t.Fatalf("new elements should stack on top: %v", pg.Elements)
	}
}

func TestUpdateElementMerges(t *testing.T) {
	s := newTestStore(t)
	el := addAndGet(t, s, domain.ElementText)
	s.UpdateElement(el.ID, domain.ElementPatch{X: domain.Ptr(5.0), Fill: domain.Ptr("#ff0000")})
	s.UpdateElement(el.ID, domain.ElementPatch{Fill: domain.Ptr("#00ff00"), FontWeight: domain.Ptr("bold")})
	got, _ := s.Element(el.ID)
	if got.X != 5 || got.Fill != "#00ff00" || got.FontWeight != "bold" {
		t.Fatalf("merge result = %+v", got)
	}
	if got.Y != el.Y || got.Text != el.Text || got.Type != el.Type {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUpdateElementAcceptsAnyValues(t *testing.T) {
	s := newTestStore(t)
	el := addAndGet(t, s, domain.ElementRect)
	s.UpdateElement(el.ID, domain.ElementPatch{Width: domain.Ptr(-50.0), Opacity: domain.Ptr(7.0)})
	got, _ := s.Element(el.ID)
	if got.Width != -50 || got.Opacity != 7 {
		t.Fatalf("values should be stored as given: %+v", got)
	}
}

func TestUpdateBodyKeepsGeometry(t *testing.T) {
	s := newTestStore(t)
	p := firstPage(t, s).ID
	body, _ := s.BodyOf(p)
	s.UpdateElement(body.ID, domain.ElementPatch{
		X: domain.Ptr(0.0), Width: domain.Ptr(10.0),
		HTMLContent: domain.Ptr("<p>Hello</p>"),
	})
	got, _ := s.BodyOf(p)
	if got.X != body.X || got.Width != body.Width {
		t.Fatalf("body geometry moved: %+v", got)
	}
	if got.HTMLContent != "<p>Hello</p>" {
		t.Fatalf("body content not updated: %q", got.HTMLContent)
	}
	mustConsistent(t, s)
}

func TestRemoveElement(t *testing.T) {
	s := newTestStore(t)
	a := addAndGet(t, s, domain.ElementRect)
	b := addAndGet(t, s, domain.ElementCircle)
	s.SelectElement(a.ID, true)

	s.RemoveElement(a.ID)
	snap := s.Snapshot()
	if _, ok := snap.Elements[a.ID]; ok {
		t.Fatalf("element still in pool")
	}
	if snap.Pages[0].IndexOf(a.ID) >= 0 {
		t.Fatalf("element still on page")
	}
	if !slices.Equal(snap.SelectedElementIDs, []string{b.ID}) {
		t.Fatalf("selection = %v", snap.SelectedElementIDs)
	}
	mustConsistent(t, s)
}

func TestRemoveBodyIsRefused(t *testing.T) {
	s := newTestStore(t)
	p := firstPage(t, s).ID
	body, _ := s.BodyOf(p)
	before := s.Snapshot()
	s.RemoveElement(body.ID)
	after := s.Snapshot()
	if len(after.Elements) != len(before.Elements) || len(after.Pages[0].Elements) != len(before.Pages[0].Elements) {
		t.Fatalf("body removal changed the document")
	}
}

func TestMoveElementToPage(t *testing.T) {
	s := newTestStore(t)
	p1 := firstPage(t, s).ID
	s.AddPage()
	p2 := pageIDs(s)[1]
	s.AddElement(p2, domain.ElementRect)
	s.AddElement(p1, domain.ElementRect)
	el := s.Snapshot().SelectedElementIDs[0]

	s.MoveElementToPage(el, p2)
	src, _ := s.Page(p1)
	dst, _ := s.Page(p2)
	if src.IndexOf(el) >= 0 {
		t.Fatalf("element still on source page")
	}
	if dst.Elements[len(dst.Elements)-1] != el {
		t.Fatalf("element should land on top of destination: %v", dst.Elements)
	}
	mustConsistent(t, s)

	rev := s.Revision()
	s.MoveElementToPage(el, "nope")
	body, _ := s.BodyOf(p1)
	s.MoveElementToPage(body.ID, p2)
	if s.Revision() != rev {
		t.Fatalf("invalid moves should be no-ops")
	}
}
