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

// SelectElement selects element id. With multi false it becomes the only selected element;
// with multi true its membership in the selection is toggled.
func (s *Store) SelectElement(id string, multi bool) {
	s.mutate("SelectElement", func() bool {
		if _, ok := s.elements[id]; !ok {
			return false
		}
		if !multi {
			if len(s.selected) == 1 && s.selected[0] == id {
				return false
			}
			s.selected = []string{id}
			return true
		}
		if s.isSelected(id) {
			s.deselect(id)
		} else {
			s.selected = append(s.selected, id)
		}
		return true
	})
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.mutate("ClearSelection", func() bool {
		if len(s.selected) == 0 {
			return false
		}
		s.selected = nil
		return true
	})
}

// SetDrawingMode activates tool (ToolNone deactivates) and clears the selection.
// Unknown tools are ignored.
func (s *Store) SetDrawingMode(tool domain.DrawingTool) {
	s.mutate("SetDrawingMode", func() bool {
		if !tool.Valid() {
			return false
		}
		changed := s.tool != tool || len(s.selected) > 0
		s.tool = tool
		s.selected = nil
		return changed
	})
}

// SetGridSettings toggles grid placement. A size of zero or less keeps the current grid unit.
func (s *Store) SetGridSettings(enabled bool, size float64) {
	s.mutate("SetGridSettings", func() bool {
		next := s.grid
		next.Enabled = enabled
		if size > 0 {
			next.Size = size
		}
		if next == s.grid {
			return false
		}
		s.grid = next
		return true
	})
}

// SetZoom sets the view scale. No bounds are enforced here.
func (s *Store) SetZoom(z float64) {
	s.mutate("SetZoom", func() bool {
		if s.zoom == z {
			return false
		}
		s.zoom = z
		return true
	})
}

// SetPageNumbering merges patch into the page-numbering settings.
func (s *Store) SetPageNumbering(patch domain.NumberingPatch) {
	s.mutate("SetPageNumbering", func() bool {
		next := s.numbering
		patch.Apply(&next)
		if next == s.numbering {
			return false
		}
		s.numbering = next
		return true
	})
}
