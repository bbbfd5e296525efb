/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Patches are partial updates: a nil field means "leave as is".
// Identity, variant tag, body flag and page membership are deliberately absent.

// Ptr returns a pointer to v, handy for building patches.
func Ptr[T any](v T) *T { return &v }

// PagePatch is a partial page update. Margins replace the whole inset set.
type PagePatch struct {
	Width           *float64     `json:"width,omitempty"`
	Height          *float64     `json:"height,omitempty"`
	Background      *string      `json:"background,omitempty"`
	BackgroundImage *string      `json:"backgroundImage,omitempty"`
	Orientation     *Orientation `json:"orientation,omitempty"`
	Margins         *Margins     `json:"margins,omitempty"`
}

// TouchesGeometry reports whether applying the patch can move the body element.
func (p PagePatch) TouchesGeometry() bool {
	return p.Width != nil || p.Height != nil || p.Margins != nil
}

// Apply overlays the non-nil fields onto pg.
func (p PagePatch) Apply(pg *Page) {
	if p.Width != nil {
		pg.Width = *p.Width
	}
	if p.Height != nil {
		pg.Height = *p.Height
	}
	if p.Background != nil {
		pg.Background = *p.Background
	}
	if p.BackgroundImage != nil {
		pg.BackgroundImage = *p.BackgroundImage
	}
	if p.Orientation != nil {
		pg.Orientation = *p.Orientation
	}
	if p.Margins != nil {
		pg.Margins = *p.Margins
	}
}

// ElementPatch is a partial element update.
type ElementPatch struct {
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	Width       *float64 `json:"width,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Fill        *string  `json:"fill,omitempty"`
	Stroke      *string  `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
	Rotation    *float64 `json:"rotation,omitempty"`
	SnapToGrid  *bool    `json:"snapToGrid,omitempty"`

	Text          *string        `json:"text,omitempty"`
	HTMLContent   *string        `json:"htmlContent,omitempty"`
	FontSize      *float64       `json:"fontSize,omitempty"`
	FontFamily    *string        `json:"fontFamily,omitempty"`
	FontWeight    *string        `json:"fontWeight,omitempty"`
	Align         *TextAlign     `json:"align,omitempty"`
	VerticalAlign *VerticalAlign `json:"verticalAlign,omitempty"`
	LineHeight    *float64       `json:"lineHeight,omitempty"`
	LetterSpacing *float64       `json:"letterSpacing,omitempty"`

	Src             *string `json:"src,omitempty"`
	LockAspectRatio *bool   `json:"lockAspectRatio,omitempty"`

	Points   *[]string `json:"points,omitempty"`
	PathData *string   `json:"pathData,omitempty"`
}

// TouchesGeometry reports whether the patch sets position or size.
func (p ElementPatch) TouchesGeometry() bool {
	return p.X != nil || p.Y != nil || p.Width != nil || p.Height != nil
}

// WithoutGeometry returns a copy of p with position and size cleared.
func (p ElementPatch) WithoutGeometry() ElementPatch {
	p.X, p.Y, p.Width, p.Height = nil, nil, nil, nil
	return p
}

// Apply overlays the non-nil fields onto el.
func (p ElementPatch) Apply(el *Element) {
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setS := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setF(&el.X, p.X)
	setF(&el.Y, p.Y)
	setF(&el.Width, p.Width)
	setF(&el.Height, p.Height)
	setS(&el.Fill, p.Fill)
	setS(&el.Stroke, p.Stroke)
	setF(&el.StrokeWidth, p.StrokeWidth)
	setF(&el.Opacity, p.Opacity)
	setF(&el.Rotation, p.Rotation)
	if p.SnapToGrid != nil {
		el.SnapToGrid = *p.SnapToGrid
	}

	setS(&el.Text, p.Text)
	setS(&el.HTMLContent, p.HTMLContent)
	setF(&el.FontSize, p.FontSize)
	setS(&el.FontFamily, p.FontFamily)
	setS(&el.FontWeight, p.FontWeight)
	if p.Align != nil {
		el.Align = *p.Align
	}
	if p.VerticalAlign != nil {
		el.VerticalAlign = *p.VerticalAlign
	}
	setF(&el.LineHeight, p.LineHeight)
	setF(&el.LetterSpacing, p.LetterSpacing)

	setS(&el.Src, p.Src)
	if p.LockAspectRatio != nil {
		el.LockAspectRatio = *p.LockAspectRatio
	}

	if p.Points != nil {
		el.Points = append([]string(nil), (*p.Points)...)
	}
	setS(&el.PathData, p.PathData)
}

// NumberingPatch is a partial page-numbering update.
type NumberingPatch struct {
	Enabled   *bool           `json:"enabled,omitempty"`
	Position  *NumberPosition `json:"position,omitempty"`
	StartFrom *int            `json:"startFrom,omitempty"`
	Format    *NumberFormat   `json:"format,omitempty"`
}

// Apply overlays the non-nil fields onto n.
func (p NumberingPatch) Apply(n *PageNumbering) {
	if p.Enabled != nil {
		n.Enabled = *p.Enabled
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.StartFrom != nil {
		n.StartFrom = *p.StartFrom
	}
	if p.Format != nil {
		n.Format = *p.Format
	}
}
