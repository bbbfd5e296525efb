/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany..
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the document model of the page composer: pages, positioned elements
// and the editor-session settings that travel with a document. Elements live in a flat
// id-keyed pool owned by the document; pages only hold ordered id lists.

// ElementType is the variant tag of an element.
type ElementType string

const (
	ElementText   ElementType = "text"
	ElementRect   ElementType = "rect"
	ElementCircle ElementType = "circle"
	ElementImage  ElementType = "image"
	ElementLine   ElementType = "line"
	ElementPath   ElementType = "path"
)

// Valid reports whether t is one of the known variants.
func (t ElementType) Valid() bool {
	switch t {
	case ElementText, ElementRect, ElementCircle, ElementImage, ElementLine, ElementPath:
		return true
	}
	return false
}

type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

type VerticalAlign string

const (
	VAlignTop    VerticalAlign = "top"
	VAlignMiddle VerticalAlign = "middle"
	VAlignBottom VerticalAlign = "bottom"
)

type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Element is a positioned visual unit on a page.
// Which of the optional attributes are meaningful depends on Type.
type Element struct {
	ID          string      `json:"id"`
	Type        ElementType `json:"type"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Fill        string      `json:"fill,omitempty"`
	Stroke      string      `json:"stroke,omitempty"`
	StrokeWidth float64     `json:"strokeWidth,omitempty"`
	Opacity     float64     `json:"opacity"`
	Rotation    float64     `json:"rotation"`

	// SnapToGrid true constrains the element to grid/margin alignment, false is free placement.
	SnapToGrid bool `json:"snapToGrid"`
	// IsBody marks the page's primary text container. Exactly one per page.
	IsBody bool `json:"isBody,omitempty"`

	// text
	Text          string        `json:"text,omitempty"` // plain-text fallback
	HTMLContent   string        `json:"htmlContent,omitempty"`
	FontSize      float64       `json:"fontSize,omitempty"`
	FontFamily    string        `json:"fontFamily,omitempty"`
	FontWeight    string        `json:"fontWeight,omitempty"`
	Align         TextAlign     `json:"align,omitempty"`
	VerticalAlign VerticalAlign `json:"verticalAlign,omitempty"`
	LineHeight    float64       `json:"lineHeight,omitempty"`
	LetterSpacing float64       `json:"letterSpacing,omitempty"`

	// image
	Src             string `json:"src,omitempty"`
	LockAspectRatio bool   `json:"lockAspectRatio,omitempty"`

	// line / path
	Points   []string `json:"points,omitempty"`
	PathData string   `json:"pathData,omitempty"`
}

// Clone returns a deep copy of e.
func (e Element) Clone() Element {
	if e.Points != nil {
		e.Points = append([]string(nil), e.Points...)
	}
	return e
}

// Margins are the physical page insets.
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Page represents one physical page. Elements is the page's z-order:
// later ids are drawn on top of earlier ones.
type Page struct {
	ID              string      `json:"id"`
	Elements        []string    `json:"elements"`
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	Background      string      `json:"background"`
	BackgroundImage string      `json:"backgroundImage,omitempty"`
	Orientation     Orientation `json:"orientation"`
	Margins         Margins     `json:"margins"`
}

// Clone returns a deep copy of p.
func (p Page) Clone() Page {
	p.Elements = append([]string{}, p.Elements...)
	return p
}

// IndexOf returns the position of elementID in the page's z-order or -1.
func (p Page) IndexOf(elementID string) int {
	for i, id := range p.Elements {
		if id == elementID {
			return i
		}
	}
	return -1
}

type NumberPosition string

const (
	NumberBottomCenter NumberPosition = "bottom-center"
	NumberBottomRight  NumberPosition = "bottom-right"
	NumberTopRight     NumberPosition = "top-right"
	NumberTopCenter    NumberPosition = "top-center"
)

type NumberFormat string

const (
	FormatPlain   NumberFormat = "1"
	FormatOfTotal NumberFormat = "1/n"
	FormatDashed  NumberFormat = "- 1 -"
)

// PageNumbering is display configuration only; nothing is derived from it here.
type PageNumbering struct {
	Enabled   bool           `json:"enabled"`
	Position  NumberPosition `json:"position"`
	StartFrom int            `json:"startFrom"`
	Format    NumberFormat   `json:"format"`
}

// GridSettings controls grid-snapped placement of new elements.
type GridSettings struct {
	Enabled bool    `json:"enabled"`
	Size    float64 `json:"size"`
}

// DrawingTool is the active freehand tool. The zero value means no tool.
type DrawingTool string

const (
	ToolNone   DrawingTool = ""
	ToolPen    DrawingTool = "pen"
	ToolBrush  DrawingTool = "brush"
	ToolEraser DrawingTool = "eraser"
)

// Valid reports whether t is ToolNone or one of the known tools.
func (t DrawingTool) Valid() bool {
	switch t {
	case ToolNone, ToolPen, ToolBrush, ToolEraser:
		return true
	}
	return false
}

// Active reports whether a freehand tool is set.
func (t DrawingTool) Active() bool { return t != ToolNone }

// LayerDirection is a z-order move within a page.
type LayerDirection string

const (
	LayerUp    LayerDirection = "up"   // one step toward the front
	LayerDown  LayerDirection = "down" // one step toward the back
	LayerFront LayerDirection = "front"
	LayerBack  LayerDirection = "back"
)
