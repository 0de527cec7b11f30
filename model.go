// seehuhn.de/go/fingerpaint - a finger-paint drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fingerpaint

import (
	"math"
	"slices"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Stroke is one continuous freehand mark.
type Stroke struct {
	// ID is a random identifier assigned when the stroke is begun.  It
	// stays the same in every snapshot, so that hosts can use it to
	// associate their own data with a stroke.
	ID string

	Color Color

	// Width is the line width in device-independent pixels.
	Width float64

	// Path starts with a MoveTo, followed by one QuadTo per accepted input
	// sample.  A finished stroke ends with a LineTo.
	Path *path.Data
}

// Closed reports whether the stroke has been finalised.
func (s Stroke) Closed() bool {
	if s.Path == nil {
		return false
	}
	n := len(s.Path.Cmds)
	return n > 0 && s.Path.Cmds[n-1] == path.CmdLineTo
}

// Bounds returns a rectangle which contains all pixels painted by the
// stroke.  The rectangle is the bounding box of the control points, grown
// by half the line width.
func (s Stroke) Bounds() rect.Rect {
	if s.Path == nil || len(s.Path.Coords) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{
		LLx: math.Inf(+1), LLy: math.Inf(+1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, p := range s.Path.Coords {
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	d := s.Width / 2
	b.LLx -= d
	b.LLy -= d
	b.URx += d
	b.URy += d
	return b
}

// clone returns a copy of s which shares no path storage with s.
func (s Stroke) clone() Stroke {
	s.Path = &path.Data{
		Cmds:   slices.Clone(s.Path.Cmds),
		Coords: slices.Clone(s.Path.Coords),
	}
	return s
}

// Handle identifies a stroke while it is being drawn.  A handle becomes
// stale once its stroke is finalised or removed.
type Handle struct {
	seq uint64
}

// Model is an ordered list of strokes.  The order is the paint order:
// later strokes cover earlier ones.
//
// At most one stroke is in progress at any time, and it is always the last
// one in the list.  All other strokes are immutable.
type Model struct {
	// Tolerance is passed to the [Smoother] of each new stroke.
	Tolerance float64

	strokes []Stroke

	// state of the stroke in progress, if active is true
	active bool
	seq    uint64
	smooth Smoother
}

// NewModel returns an empty model with the default smoothing tolerance.
func NewModel() *Model {
	return &Model{Tolerance: DefaultTolerance}
}

// Begin starts a new stroke at start and returns its handle.  A stroke
// which is still in progress is finalised first.
func (m *Model) Begin(c Color, width float64, start vec.Vec2) Handle {
	if m.active {
		m.finalize()
	}

	p := &path.Data{}
	m.smooth = Smoother{Tolerance: m.Tolerance}
	m.smooth.Start(start, p)
	m.strokes = append(m.strokes, Stroke{
		ID:    uuid.NewString(),
		Color: c,
		Width: width,
		Path:  p,
	})

	m.seq++
	m.active = true
	return Handle{seq: m.seq}
}

// Extend adds the input sample p to the stroke h.  It reports whether the
// stroke geometry changed.  If h is not the stroke in progress, Extend
// does nothing.
func (m *Model) Extend(h Handle, p vec.Vec2) bool {
	if !m.isActive(h) {
		return false
	}
	return m.smooth.Add(p, m.strokes[len(m.strokes)-1].Path)
}

// Finalize closes the stroke h.  Afterwards the stroke cannot change any
// more.  If h is not the stroke in progress, Finalize does nothing and
// returns false.
func (m *Model) Finalize(h Handle) bool {
	if !m.isActive(h) {
		return false
	}
	m.finalize()
	return true
}

func (m *Model) finalize() {
	m.smooth.Finish(m.strokes[len(m.strokes)-1].Path)
	m.active = false
}

func (m *Model) isActive(h Handle) bool {
	return m.active && h.seq == m.seq
}

// Active returns the handle of the stroke in progress.
func (m *Model) Active() (Handle, bool) {
	if !m.active {
		return Handle{}, false
	}
	return Handle{seq: m.seq}, true
}

// Undo removes the most recent stroke, including a stroke which is still
// in progress.  It reports whether a stroke was removed.  Undo on an empty
// model does nothing.
func (m *Model) Undo() bool {
	n := len(m.strokes)
	if n == 0 {
		return false
	}
	m.strokes[n-1] = Stroke{}
	m.strokes = m.strokes[:n-1]
	m.active = false
	return true
}

// Clear removes all strokes.
func (m *Model) Clear() {
	clear(m.strokes)
	m.strokes = m.strokes[:0]
	m.active = false
}

// Len returns the number of strokes, including a stroke in progress.
func (m *Model) Len() int {
	return len(m.strokes)
}

// Snapshot returns a copy of the strokes in paint order.  The paths are
// copied as well, so that neither later input nor changes made by the
// caller affect the other side.
func (m *Model) Snapshot() []Stroke {
	res := make([]Stroke, len(m.strokes))
	for i := range m.strokes {
		res[i] = m.strokes[i].clone()
	}
	return res
}
