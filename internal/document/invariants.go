/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package document

import (
	"errors"
	"fmt"
	"log/slog"

	"pagecomposer/internal/domain"
)

// ErrInvalidDocument is returned when a document violates a structural invariant.
var ErrInvalidDocument = errors.New("invalid document")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

// checkStructure verifies the page/element graph: at least one page, unique page ids,
// every referenced element present under its own id, no element on two pages and exactly
// one body element per page.
func checkStructure(pages []domain.Page, elements map[string]domain.Element) error {
	if len(pages) == 0 {
		return invalid("document has no pages")
	}
	seenPages := make(map[string]struct{}, len(pages))
	owner := make(map[string]string, len(elements))
	for _, pg := range pages {
		if pg.ID == "" {
			return invalid("page without id")
		}
		if _, dup := seenPages[pg.ID]; dup {
			return invalid("duplicate page id %q", pg.ID)
		}
		seenPages[pg.ID] = struct{}{}
		bodies := 0
		for _, eid := range pg.Elements {
			el, ok := elements[eid]
			if !ok {
				return invalid("page %q references missing element %q", pg.ID, eid)
			}
			if el.ID != eid {
				return invalid("element keyed %q carries id %q", eid, el.ID)
			}
			if prev, dup := owner[eid]; dup {
				return invalid("element %q owned by pages %q and %q", eid, prev, pg.ID)
			}
			owner[eid] = pg.ID
			if el.IsBody {
				bodies++
			}
		}
		if bodies != 1 {
			return invalid("page %q has %d body elements", pg.ID, bodies)
		}
	}
	return nil
}

// CheckInvariants verifies the whole document: structure, body geometry, the active page
// and the selection. A nil error means the document is consistent.
func (s *Store) CheckInvariants() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkStructure(s.pages, s.elements); err != nil {
		return err
	}
	for i, pg := range s.pages {
		bid, _ := s.bodyID(i)
		body := s.elements[bid]
		want := domain.BodyGeometry(pg)
		if body.X != want.X || body.Y != want.Y || body.Width != want.W || body.Height != want.H {
			return invalid("body %q of page %q is out of sync with its margins", bid, pg.ID)
		}
	}
	if s.pageIndex(s.activePageID) < 0 {
		return invalid("active page %q does not exist", s.activePageID)
	}
	for _, id := range s.selected {
		if _, ok := s.elements[id]; !ok {
			return invalid("selected element %q does not exist", id)
		}
	}
	return nil
}

// ReplacePages adopts pages and elements as the whole document. The input must satisfy the
// structural invariants; otherwise ErrInvalidDocument is returned and nothing changes.
// Body geometry is re-derived, unreferenced elements are dropped, the first page becomes
// active and the selection is cleared. The input is copied.
func (s *Store) ReplacePages(pages []domain.Page, elements map[string]domain.Element) error {
	if err := checkStructure(pages, elements); err != nil {
		s.log.Debug("replace rejected", slog.String("error", err.Error()))
		return err
	}
	s.mutate("ReplacePages", func() bool {
		np := make([]domain.Page, len(pages))
		ne := make(map[string]domain.Element)
		for i, pg := range pages {
			np[i] = pg.Clone()
			for _, eid := range pg.Elements {
				el := elements[eid].Clone()
				if el.IsBody {
					domain.FitBody(&el, pg)
				}
				ne[eid] = el
			}
		}
		s.pages = np
		s.elements = ne
		s.activePageID = np[0].ID
		s.selected = nil
		return true
	})
	return nil
}
