/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package document

import (
	"reflect"
	"slices"

	"pagecomposer/internal/domain"
)

// AddPage appends a page that inherits size and margins from the last page and makes it active.
func (s *Store) AddPage() {
	s.mutate("AddPage", func() bool {
		last := s.pages[len(s.pages)-1]
		pg := s.newPage(last.Width, last.Height, last.Margins)
		s.pages = append(s.pages, pg)
		s.activePageID = pg.ID
		return true
	})
}

// AddPageAfter inserts a page right after refID, inheriting its size and margins, and makes it active.
func (s *Store) AddPageAfter(refID string) {
	s.mutate("AddPageAfter", func() bool {
		i := s.pageIndex(refID)
		if i < 0 {
			return false
		}
		ref := s.pages[i]
		pg := s.newPage(ref.Width, ref.Height, ref.Margins)
		s.pages = slices.Insert(s.pages, i+1, pg)
		s.activePageID = pg.ID
		return true
	})
}

// DuplicatePage deep-copies page id and every element it owns under fresh ids,
// inserts the copy right after the source and makes it active.
func (s *Store) DuplicatePage(id string) {
	s.mutate("DuplicatePage", func() bool {
		i := s.pageIndex(id)
		if i < 0 {
			return false
		}
		cp := s.pages[i].Clone()
		cp.ID = s.cfg.NewID()
		cp.Elements = cp.Elements[:0]
		for _, eid := range s.pages[i].Elements {
			el, ok := s.elements[eid]
			if !ok {
				continue
			}
			el = el.Clone()
			el.ID = s.cfg.NewID()
			s.elements[el.ID] = el
			cp.Elements = append(cp.Elements, el.ID)
		}
		s.pages = slices.Insert(s.pages, i+1, cp)
		s.activePageID = cp.ID
		return true
	})
}

// RemovePage deletes page id together with the elements it owns. The last remaining
// page is never removed. If the active page goes, the first page becomes active.
func (s *Store) RemovePage(id string) {
	s.mutate("RemovePage", func() bool {
		if len(s.pages) <= 1 {
			return false
		}
		i := s.pageIndex(id)
		if i < 0 {
			return false
		}
		owned := s.pages[i].Elements
		for _, eid := range owned {
			delete(s.elements, eid)
		}
		s.deselect(owned...)
		s.pages = slices.Delete(s.pages, i, i+1)
		if s.activePageID == id {
			s.activePageID = s.pages[0].ID
		}
		return true
	})
}

// UpdatePage merges patch into page id. When size or margins change, the body element is
// refitted in the same critical section.
func (s *Store) UpdatePage(id string, patch domain.PagePatch) {
	s.mutate("UpdatePage", func() bool {
		i := s.pageIndex(id)
		if i < 0 {
			return false
		}
		before := s.pages[i].Clone()
		patch.Apply(&s.pages[i])
		if patch.TouchesGeometry() {
			s.refitBody(i)
		}
		return !reflect.DeepEqual(before, s.pages[i])
	})
}

// refitBody recomputes the body geometry of page i from its size and margins.
func (s *Store) refitBody(i int) {
	bid, ok := s.bodyID(i)
	if !ok {
		return
	}
	body := s.elements[bid]
	domain.FitBody(&body, s.pages[i])
	s.elements[bid] = body
}

// ReorderPages moves the page at index from to index to. An out-of-range from is a no-op;
// to is clamped into range.
func (s *Store) ReorderPages(from, to int) {
	s.mutate("ReorderPages", func() bool {
		n := len(s.pages)
		if from < 0 || from >= n {
			return false
		}
		to = max(0, min(to, n-1))
		if from == to {
			return false
		}
		pg := s.pages[from]
		s.pages = slices.Delete(s.pages, from, from+1)
		s.pages = slices.Insert(s.pages, to, pg)
		return true
	})
}

// SelectPage makes page id active and clears the element selection.
func (s *Store) SelectPage(id string) {
	s.mutate("SelectPage", func() bool {
		if s.pageIndex(id) < 0 {
			return false
		}
		changed := s.activePageID != id || len(s.selected) > 0
		s.activePageID = id
		s.selected = nil
		return changed
	})
}
