/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geometry

// Basic 2D geometry in page units. Values are float64 to match the document model;
// no clamping is done here, negative sizes pass through untouched.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Origin returns the min corner.
func (r Rect) Origin() Pt { return Pt{r.X, r.Y} }

// InsetEdges shrinks the rectangle by individual amounts per edge (negative grows).
func (r Rect) InsetEdges(top, right, bottom, left float64) Rect {
	return Rect{X: r.X + left, Y: r.Y + top, W: r.W - left - right, H: r.H - top - bottom}
}

// Snap rounds v to the nearest multiple of unit. Halves round up, so
// Snap(36, 24) == 48. A non-positive unit disables snapping.
func Snap(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Floor(v/unit+0.5) * unit
}

// SnapPt snaps both coordinates of p to the grid.
func SnapPt(p Pt, unit float64) Pt {
	return Pt{X: Snap(p.X, unit), Y: Snap(p.Y, unit)}
}
