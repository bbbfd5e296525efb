/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "pagecomposer/internal/geometry"

// BodyGeometry derives the body element's rectangle from the page's size and margins.
// It is the only source of body position and size.
func BodyGeometry(p Page) geometry.Rect {
	m := p.Margins
	return geometry.R(0, 0, p.Width, p.Height).InsetEdges(m.Top, m.Right, m.Bottom, m.Left)
}

// FitBody writes the derived body geometry into el.
func FitBody(el *Element, p Page) {
	r := BodyGeometry(p)
	el.X, el.Y, el.Width, el.Height = r.X, r.Y, r.W, r.H
}

// NewBody returns the primary text container for page p with the given id.
func NewBody(id string, p Page) Element {
	el := Element{
		ID:            id,
		Type:          ElementText,
		IsBody:        true,
		Text:          "",
		HTMLContent:   "<p></p>",
		FontSize:      12,
		FontFamily:    "Inter",
		Fill:          "#000000",
		Align:         AlignLeft,
		VerticalAlign: VAlignTop,
		LineHeight:    2,
		Opacity:       1,
		Rotation:      0,
		SnapToGrid:    true,
	}
	FitBody(&el, p)
	return el
}
