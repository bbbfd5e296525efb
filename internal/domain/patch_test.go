/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "testing"

func TestElementPatchOverwritesOnlySetFields(t *testing.T) {
	el := Element{ID: "e", Type: ElementRect, X: 10, Y: 20, Width: 96, Height: 96, Fill: "#525252", Opacity: 1}
	ElementPatch{X: Ptr(50.0), Fill: Ptr("#ff0000"), Points: &[]string{"1,2"}}.Apply(&el)
	if el.X != 50 || el.Y != 20 {
		t.Fatalf("position merge wrong: %+v", el)
	}
	if el.Fill != "#ff0000" || el.Opacity != 1 || el.Width != 96 {
		t.Fatalf("attribute merge wrong: %+v", el)
	}
	if len(el.Points) != 1 || el.Points[0] != "1,2" {
		t.Fatalf("points not applied: %+v", el.Points)
	}
	if el.ID != "e" || el.Type != ElementRect {
		t.Fatalf("identity changed: %+v", el)
	}
}

func TestElementPatchWithoutGeometry(t *testing.T) {
	p := ElementPatch{X: Ptr(1.0), Height: Ptr(2.0), Text: Ptr("hi")}
	if !p.TouchesGeometry() {
		t.Fatalf("expected geometry patch")
	}
	q := p.WithoutGeometry()
	if q.TouchesGeometry() {
		t.Fatalf("geometry not stripped: %+v", q)
	}
	if q.Text == nil || *q.Text != "hi" {
		t.Fatalf("non-geometry field lost")
	}
	if p.X == nil {
		t.Fatalf("WithoutGeometry must not modify the receiver")
	}
}

func TestPagePatch(t *testing.T) {
	pg := Page{Width: 800, Height: 1000, Background: "#ffffff", Orientation: Portrait}
	if (PagePatch{Background: Ptr("#000")}).TouchesGeometry() {
		t.Fatalf("background patch does not touch geometry")
	}
	p := PagePatch{Height: Ptr(600.0), Orientation: Ptr(Landscape), Margins: &Margins{Top: 1, Bottom: 2, Left: 3, Right: 4}}
	if !p.TouchesGeometry() {
		t.Fatalf("height/margins patch touches geometry")
	}
	p.Apply(&pg)
	if pg.Width != 800 || pg.Height != 600 || pg.Orientation != Landscape || pg.Background != "#ffffff" {
		t.Fatalf("unexpected page after patch: %+v", pg)
	}
	if pg.Margins != (Margins{Top: 1, Bottom: 2, Left: 3, Right: 4}) {
		t.Fatalf("margins not replaced: %+v", pg.Margins)
	}
}

func TestNumberingPatch(t *testing.T) {
	n := PageNumbering{Enabled: true, Position: NumberBottomCenter, StartFrom: 1, Format: FormatPlain}
	NumberingPatch{StartFrom: Ptr(5), Format: Ptr(FormatDashed)}.Apply(&n)
	want := PageNumbering{Enabled: true, Position: NumberBottomCenter, StartFrom: 5, Format: FormatDashed}
	if n != want {
		t.Fatalf("numbering = %+v, want %+v", n, want)
	}
}
