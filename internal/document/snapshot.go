/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package document

import (
	"pagecomposer/internal/domain"
)

// Snapshot is a read-only, deep-copied view of the document at one revision.
// Mutating a Snapshot never affects the Store.
type Snapshot struct {
	Pages              []domain.Page             `json:"pages"`
	Elements           map[string]domain.Element `json:"elements"`
	ActivePageID       string                    `json:"activePageId"`
	SelectedElementIDs []string                  `json:"selectedElementIds"`
	Zoom               float64                   `json:"zoom"`
	Grid               domain.GridSettings       `json:"gridSettings"`
	PageNumbering      domain.PageNumbering      `json:"pageNumbering"`
	DrawingTool        domain.DrawingTool        `json:"drawingTool"`
	IsDrawing          bool                      `json:"isDrawing"`
	Revision           uint64                    `json:"revision"`
}

// Snapshot returns the current document state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	pages := make([]domain.Page, len(s.pages))
	for i, pg := range s.pages {
		pages[i] = pg.Clone()
	}
	els := make(map[string]domain.Element, len(s.elements))
	for id, el := range s.elements {
		els[id] = el.Clone()
	}
	return Snapshot{
		Pages:              pages,
		Elements:           els,
		ActivePageID:       s.activePageID,
		SelectedElementIDs: append([]string{}, s.selected...),
		Zoom:               s.zoom,
		Grid:               s.grid,
		PageNumbering:      s.numbering,
		DrawingTool:        s.tool,
		IsDrawing:          s.tool.Active(),
		Revision:           s.revision,
	}
}

// Revision returns the current revision. It increases with every state change.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Page returns a copy of page id.
func (s *Store) Page(id string) (domain.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.pageIndex(id)
	if i < 0 {
		return domain.Page{}, false
	}
	return s.pages[i].Clone(), true
}

// Element returns a copy of element id.
func (s *Store) Element(id string) (domain.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.elements[id]
	if !ok {
		return domain.Element{}, false
	}
	return el.Clone(), true
}

// BodyOf returns the body element of page pageID.
func (s *Store) BodyOf(pageID string) (domain.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.pageIndex(pageID)
	if i < 0 {
		return domain.Element{}, false
	}
	bid, ok := s.bodyID(i)
	if !ok {
		return domain.Element{}, false
	}
	return s.elements[bid].Clone(), true
}

// ActivePage returns the active page of the snapshot.
func (sn Snapshot) ActivePage() (domain.Page, bool) {
	for _, pg := range sn.Pages {
		if pg.ID == sn.ActivePageID {
			return pg, true
		}
	}
	return domain.Page{}, false
}

// IsSelected reports whether element id is selected in the snapshot.
func (sn Snapshot) IsSelected(id string) bool {
	for _, sid := range sn.SelectedElementIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// ElementsOf returns the elements of page pageID in z-order, back to front.
func (sn Snapshot) ElementsOf(pageID string) []domain.Element {
	for _, pg := range sn.Pages {
		if pg.ID != pageID {
			continue
		}
		out := make([]domain.Element, 0, len(pg.Elements))
		for _, id := range pg.Elements {
			if el, ok := sn.Elements[id]; ok {
				out = append(out, el)
			}
		}
		return out
	}
	return nil
}
