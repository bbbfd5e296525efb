/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package document

import (
	"log/slog"
	"reflect"
	"slices"

	"pagecomposer/internal/domain"
	"pagecomposer/internal/geometry"
)

// newElement returns an element of type t with the variant defaults for grid unit g.
// Position is left at the origin; placement is decided by the caller.
func newElement(id string, t domain.ElementType, g float64) domain.Element {
	el := domain.Element{
		ID:         id,
		Type:       t,
		Width:      100,
		Height:     100,
		Opacity:    1,
		Fill:       "#333333",
		SnapToGrid: true,
	}
	switch t {
	case domain.ElementText:
		el.Text = "New Text"
		el.HTMLContent = "<p>New Text</p>"
		el.FontSize = 12
		el.FontFamily = "Inter"
		el.Width, el.Height = 300, g*2
		el.Fill = "#000000"
		el.Align = domain.AlignLeft
		el.VerticalAlign = domain.VAlignTop
		el.LineHeight = 2
		el.LetterSpacing = 0
	case domain.ElementRect, domain.ElementCircle, domain.ElementImage:
		el.Width, el.Height = g*4, g*4
		el.Fill = "#525252"
	case domain.ElementLine:
		el.Width, el.Height = g*5, 2
		el.Fill = "transparent"
		el.Stroke = "#000000"
		el.StrokeWidth = 2
	case domain.ElementPath:
		el.Width, el.Height = 0, 0
		el.Fill = "transparent"
		el.Stroke = "#000000"
		el.StrokeWidth = 2
		el.PathData = ""
	}
	return el
}

// placement returns where a new element of type t lands on pg.
func (s *Store) placement(t domain.ElementType, pg domain.Page) geometry.Pt {
	if !s.grid.Enabled {
		return geometry.Pt{X: *s.cfg.FreePosition, Y: *s.cfg.FreePosition}
	}
	g := s.grid.Size
	if t == domain.ElementText {
		return geometry.Pt{
			X: geometry.Snap(pg.Margins.Left, g),
			Y: geometry.Snap(pg.Margins.Top, g) + *s.cfg.TextRowOffset*g,
		}
	}
	return geometry.SnapPt(geometry.Pt{X: *s.cfg.ShapeAnchor, Y: *s.cfg.ShapeAnchor}, g)
}

// AddElement creates an element of type t on page pageID, on top of the existing ones.
// The new element becomes the sole selection and any drawing tool is switched off.
func (s *Store) AddElement(pageID string, t domain.ElementType) {
	s.mutate("AddElement", func() bool {
		if !t.Valid() {
			return false
		}
		i := s.pageIndex(pageID)
		if i < 0 {
			return false
		}
		el := newElement(s.cfg.NewID(), t, s.grid.Size)
		p := s.placement(t, s.pages[i])
		el.X, el.Y = p.X, p.Y
		s.elements[el.ID] = el
		s.pages[i].Elements = append(s.pages[i].Elements, el.ID)
		s.selected = []string{el.ID}
		s.tool = domain.ToolNone
		s.log.Debug("element added", slog.String("page", pageID), slog.String("element", el.ID), slog.String("type", string(t)))
		return true
	})
}

// UpdateElement merges patch into element id. The body element keeps its derived geometry:
// position and size in the patch are ignored for it.
func (s *Store) UpdateElement(id string, patch domain.ElementPatch) {
	s.mutate("UpdateElement", func() bool {
		el, ok := s.elements[id]
		if !ok {
			return false
		}
		if el.IsBody {
			patch = patch.WithoutGeometry()
		}
		before := el.Clone()
		patch.Apply(&el)
		s.elements[id] = el
		return !reflect.DeepEqual(before, el)
	})
}

// RemoveElement deletes element id from the pool, from every page and from the selection.
// Body elements are never removed.
func (s *Store) RemoveElement(id string) {
	s.mutate("RemoveElement", func() bool {
		el, ok := s.elements[id]
		if !ok {
			return false
		}
		if el.IsBody {
			s.log.Debug("refusing to remove body element", slog.String("element", id))
			return false
		}
		delete(s.elements, id)
		for i := range s.pages {
			s.pages[i].Elements = slices.DeleteFunc(s.pages[i].Elements, func(eid string) bool { return eid == id })
		}
		s.deselect(id)
		return true
	})
}

// MoveElementToPage moves element id from its current page to the top of page pageID.
// Body elements stay on their page.
func (s *Store) MoveElementToPage(id, pageID string) {
	s.mutate("MoveElementToPage", func() bool {
		el, ok := s.elements[id]
		if !ok || el.IsBody {
			return false
		}
		dst := s.pageIndex(pageID)
		src := s.ownerIndex(id)
		if dst < 0 || src < 0 || src == dst {
			return false
		}
		s.pages[src].Elements = slices.DeleteFunc(s.pages[src].Elements, func(eid string) bool { return eid == id })
		s.pages[dst].Elements = append(s.pages[dst].Elements, id)
		return true
	})
}
