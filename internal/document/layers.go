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

// MoveElementLayer changes the z-order of element id within the page that owns it.
// Up and down swap with the neighbour and stop at the ends; front and back move the id
// to the last and first position.
func (s *Store) MoveElementLayer(id string, dir domain.LayerDirection) {
	s.mutate("MoveElementLayer", func() bool {
		pi := s.ownerIndex(id)
		if pi < 0 {
			return false
		}
		order := s.pages[pi].Elements
		idx := s.pages[pi].IndexOf(id)
		var newIdx int
		switch dir {
		case domain.LayerUp:
			newIdx = idx + 1
		case domain.LayerDown:
			newIdx = idx - 1
		case domain.LayerFront:
			newIdx = len(order) - 1
		case domain.LayerBack:
			newIdx = 0
		default:
			return false
		}
		if newIdx < 0 || newIdx >= len(order) || newIdx == idx {
			return false
		}
		// move in slice
		if newIdx < idx {
			copy(order[newIdx+1:idx+1], order[newIdx:idx])
		} else {
			copy(order[idx:newIdx], order[idx+1:newIdx+1])
		}
		order[newIdx] = id
		return true
	})
}
