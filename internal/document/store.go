/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package document holds the in-memory document being edited: the ordered pages, the flat
// element pool they reference by id, and the editor-session state (active page, selection,
// zoom, grid, page numbering, drawing tool).
//
// Every exported mutator is one atomic state transition under a single aggregate lock.
// Mutators take plain values and return nothing; references to unknown ids and refused
// structural changes are silent no-ops. Callers observe effects through Snapshot.
package document

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"pagecomposer/internal/domain"
	applog "pagecomposer/internal/log"
)

// Defaults for a fresh document (A4 at 96 dpi).
const (
	DefaultPageWidth  = 794.0
	DefaultPageHeight = 1123.0
	DefaultMargin     = 60.0
	DefaultGridSize   = 24.0
	DefaultBackground = "#ffffff"

	DefaultTextRowOffset = 2.0
	DefaultShapeAnchor   = 100.0
	DefaultFreePosition  = 100.0
)

// Config seeds a Store. Zero values fall back to the package defaults.
type Config struct {
	PageWidth  float64
	PageHeight float64
	// Margins of the initial page; nil means DefaultMargin on every side.
	Margins *domain.Margins

	GridSize    float64
	GridEnabled bool
	Zoom        float64

	// Placement of new elements; nil selects the default, zero is a valid setting.
	// TextRowOffset is how many grid rows below the top margin new text lands (grid on).
	TextRowOffset *float64
	// ShapeAnchor is the coordinate non-text elements snap from (grid on).
	ShapeAnchor *float64
	// FreePosition is the x and y of new elements when the grid is off.
	FreePosition *float64

	// NewID generates page and element ids. Defaults to random UUIDs.
	NewID  func() string
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.PageWidth <= 0 {
		c.PageWidth = DefaultPageWidth
	}
	if c.PageHeight <= 0 {
		c.PageHeight = DefaultPageHeight
	}
	if c.Margins == nil {
		c.Margins = &domain.Margins{Top: DefaultMargin, Bottom: DefaultMargin, Left: DefaultMargin, Right: DefaultMargin}
	}
	if c.GridSize <= 0 {
		c.GridSize = DefaultGridSize
	}
	if c.Zoom == 0 {
		c.Zoom = 1
	}
	if c.TextRowOffset == nil {
		c.TextRowOffset = domain.Ptr(DefaultTextRowOffset)
	}
	if c.ShapeAnchor == nil {
		c.ShapeAnchor = domain.Ptr(DefaultShapeAnchor)
	}
	if c.FreePosition == nil {
		c.FreePosition = domain.Ptr(DefaultFreePosition)
	}
	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
	if c.Logger == nil {
		c.Logger = applog.WithComponent("document")
	}
	return c
}

// Store is the document aggregate. The zero value is not usable; use NewStore.
type Store struct {
	mu  sync.Mutex
	cfg Config
	log *slog.Logger

	pages        []domain.Page
	elements     map[string]domain.Element
	activePageID string
	selected     []string // ordered set
	zoom         float64
	grid         domain.GridSettings
	numbering    domain.PageNumbering
	tool         domain.DrawingTool
	revision     uint64
}

// NewStore returns a document with a single empty page (body element only) that is active.
func NewStore(cfg Config) *Store {
	cfg = cfg.withDefaults()
	s := &Store{
		cfg:      cfg,
		log:      cfg.Logger,
		elements: make(map[string]domain.Element),
		zoom:     cfg.Zoom,
		grid:     domain.GridSettings{Enabled: cfg.GridEnabled, Size: cfg.GridSize},
		numbering: domain.PageNumbering{
			Enabled:   true,
			Position:  domain.NumberBottomCenter,
			StartFrom: 1,
			Format:    domain.FormatPlain,
		},
	}
	pg := s.newPage(cfg.PageWidth, cfg.PageHeight, *cfg.Margins)
	s.pages = []domain.Page{pg}
	s.activePageID = pg.ID
	return s
}

// mutate runs fn as one critical section. fn reports whether it changed anything;
// only then is the revision bumped.
func (s *Store) mutate(op string, fn func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn() {
		s.revision++
		return
	}
	applog.WithOperation(s.log, op).Debug("no-op")
}

// newPage creates a page and its body element and stores the body in the pool.
// The page itself is not inserted.
func (s *Store) newPage(width, height float64, m domain.Margins) domain.Page {
	pg := domain.Page{
		ID:          s.cfg.NewID(),
		Width:       width,
		Height:      height,
		Background:  DefaultBackground,
		Orientation: domain.Portrait,
		Margins:     m,
	}
	body := domain.NewBody(s.cfg.NewID(), pg)
	pg.Elements = []string{body.ID}
	s.elements[body.ID] = body
	return pg
}

func (s *Store) pageIndex(id string) int {
	for i := range s.pages {
		if s.pages[i].ID == id {
			return i
		}
	}
	return -1
}

// ownerIndex returns the index of the page whose sequence holds elementID, or -1.
func (s *Store) ownerIndex(elementID string) int {
	for i := range s.pages {
		if s.pages[i].IndexOf(elementID) >= 0 {
			return i
		}
	}
	return -1
}

// bodyID returns the id of the body element on page i.
func (s *Store) bodyID(i int) (string, bool) {
	for _, id := range s.pages[i].Elements {
		if el, ok := s.elements[id]; ok && el.IsBody {
			return id, true
		}
	}
	return "", false
}

func (s *Store) isSelected(id string) bool {
	for _, sid := range s.selected {
		if sid == id {
			return true
		}
	}
	return false
}

// deselect drops the given ids from the selection and reports whether any was selected.
func (s *Store) deselect(ids ...string) bool {
	if len(s.selected) == 0 || len(ids) == 0 {
		return false
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.selected[:0:0]
	for _, sid := range s.selected {
		if _, ok := drop[sid]; !ok {
			kept = append(kept, sid)
		}
	}
	changed := len(kept) != len(s.selected)
	s.selected = kept
	return changed
}
