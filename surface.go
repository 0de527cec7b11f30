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
	"image"
	"math"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/fingerpaint/raster"
)

// Limits for the stroke width, in device-independent pixels.
const (
	MinWidth = 1.0
	MaxWidth = 100.0

	DefaultWidth = 20.0
)

// Surface connects pointer input to a [Model] and renders the strokes into
// an off-screen raster.
//
// The raster is a cache: it can always be rebuilt by painting all strokes,
// in order, over the background colour.  Every operation which changes the
// picture marks the raster as stale and calls the invalidate hook, if any.
// The host then calls [Surface.Draw] or [Surface.Redraw].
//
// Input coordinates are in device-independent pixels (dp).  The raster is
// measured in device pixels; the two are related by the density.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	model *Model

	background Color
	color      Color
	width      float64
	density    float64
	invalidate func()

	current Handle
	drawing bool

	buf     *image.RGBA
	pending bool
	rast    *raster.Rasterizer
	paint   *raster.Painter
}

// Option configures a [Surface].
type Option func(*Surface)

// WithBackground sets the background colour.  The default is white.
func WithBackground(c Color) Option {
	return func(s *Surface) { s.background = c }
}

// WithColor sets the initial stroke colour.  The default is [Green].
func WithColor(c Color) Option {
	return func(s *Surface) { s.color = c }
}

// WithWidth sets the initial stroke width.  The default is [DefaultWidth].
func WithWidth(w float64) Option {
	return func(s *Surface) { s.width = clampWidth(w) }
}

// WithDensity sets the number of device pixels per dp.  The default is 1.
// Non-positive values are ignored.
func WithDensity(d float64) Option {
	return func(s *Surface) {
		if d > 0 && !math.IsInf(d, 0) {
			s.density = d
		}
	}
}

// WithTolerance sets the smoothing tolerance, in dp.  The default is
// [DefaultTolerance].
func WithTolerance(t float64) Option {
	return func(s *Surface) { s.model.Tolerance = max(t, 0) }
}

// WithInvalidate installs a function which is called whenever the raster
// needs to be redrawn.  Hosts use this to schedule a repaint.
func WithInvalidate(fn func()) Option {
	return func(s *Surface) { s.invalidate = fn }
}

// NewSurface returns a new, unconfigured drawing surface.
func NewSurface(opts ...Option) *Surface {
	s := &Surface{
		model:      NewModel(),
		background: White,
		color:      Green,
		width:      DefaultWidth,
		density:    1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configure sets the size of the raster, in device pixels.  This must be
// called once the size of the host output is known, and again whenever it
// changes.  Until then, Redraw and Draw do nothing and ExportRaster returns
// nil.  Non-positive sizes leave the surface unconfigured.
func (s *Surface) Configure(width, height int) {
	if width <= 0 || height <= 0 {
		s.buf = nil
		s.rast = nil
		s.paint = nil
		return
	}
	if s.buf != nil && s.buf.Rect.Dx() == width && s.buf.Rect.Dy() == height {
		return
	}

	s.buf = image.NewRGBA(image.Rect(0, 0, width, height))
	clip := raster.ClipFor(s.buf)
	if s.rast == nil {
		s.rast = raster.NewRasterizer(clip)
		s.paint = raster.NewPainter(s.buf, s.color)
	} else {
		s.rast.Clip = clip
		s.paint.Dst = s.buf
	}
	s.requestRedraw()
}

// Configured reports whether the raster has been allocated.
func (s *Surface) Configured() bool {
	return s.buf != nil
}

// SetColor sets the colour for the next stroke.  Existing strokes keep
// their colour.
func (s *Surface) SetColor(c Color) {
	s.color = c
}

// Color returns the colour for the next stroke.
func (s *Surface) Color() Color {
	return s.color
}

// SetWidth sets the width for the next stroke.  The value is clamped to
// the range [MinWidth, MaxWidth].
func (s *Surface) SetWidth(w float64) {
	s.width = clampWidth(w)
}

// Width returns the width for the next stroke.
func (s *Surface) Width() float64 {
	return s.width
}

// SetBackground changes the background colour.
func (s *Surface) SetBackground(c Color) {
	if c == s.background {
		return
	}
	s.background = c
	s.requestRedraw()
}

func clampWidth(w float64) float64 {
	if math.IsNaN(w) {
		return DefaultWidth
	}
	return min(max(w, MinWidth), MaxWidth)
}

// Down starts a new stroke at (x, y), using the current colour and width.
func (s *Surface) Down(x, y float64) {
	s.current = s.model.Begin(s.color, s.width, vec.Vec2{X: x, Y: y})
	s.drawing = true
	s.requestRedraw()
}

// Move extends the current stroke.  Without a preceding Down, Move does
// nothing.
func (s *Surface) Move(x, y float64) {
	if !s.drawing {
		return
	}
	if s.model.Extend(s.current, vec.Vec2{X: x, Y: y}) {
		s.requestRedraw()
	}
}

// Up finishes the current stroke.  The stroke ends at the last accepted
// input sample; the position (x, y) of the up event itself is not used.
func (s *Surface) Up(x, y float64) {
	if !s.drawing {
		return
	}
	s.drawing = false
	if s.model.Finalize(s.current) {
		s.requestRedraw()
	}
}

// Undo removes the most recent stroke.  A stroke which is still being
// drawn is removed as well.
func (s *Surface) Undo() {
	if s.model.Undo() {
		s.drawing = false
		s.requestRedraw()
	}
}

// Clear removes all strokes.
func (s *Surface) Clear() {
	if s.model.Len() == 0 {
		return
	}
	s.model.Clear()
	s.drawing = false
	s.requestRedraw()
}

// Strokes returns a copy of the strokes in paint order.
func (s *Surface) Strokes() []Stroke {
	return s.model.Snapshot()
}

// Tolerance returns the minimum per-axis distance, in dp, between
// accepted input samples.
func (s *Surface) Tolerance() float64 {
	return s.model.Tolerance
}

// NeedsRedraw reports whether the raster is out of date.
func (s *Surface) NeedsRedraw() bool {
	return s.pending
}

func (s *Surface) requestRedraw() {
	s.pending = true
	if s.invalidate != nil {
		s.invalidate()
	}
}

// Redraw rebuilds the raster from the stroke list.  Before the surface is
// configured, Redraw does nothing.
func (s *Surface) Redraw() {
	if s.buf == nil {
		return
	}

	draw.Draw(s.buf, s.buf.Rect, image.NewUniform(s.background), image.Point{}, draw.Src)

	d := s.density
	for i := range s.model.strokes {
		st := &s.model.strokes[i]
		s.rast.Reset(s.rast.Clip)
		s.rast.CTM = matrix.Matrix{d, 0, 0, d, 0, 0}
		s.rast.Width = st.Width
		s.rast.Cap = graphics.LineCapRound
		s.rast.Join = graphics.LineJoinRound
		s.paint.SetColor(st.Color)
		s.rast.Stroke(st.Path, s.paint.Emit)
	}

	s.pending = false
}

// Draw brings the raster up to date and copies it, unscaled, to dst with
// its top-left corner at the point at.
func (s *Surface) Draw(dst draw.Image, at image.Point) {
	if s.buf == nil {
		return
	}
	if s.pending {
		s.Redraw()
	}
	r := s.buf.Rect.Add(at)
	draw.Draw(dst, r, s.buf, image.Point{}, draw.Src)
}

// ExportRaster returns a copy of the fully composited picture.  The copy
// does not change when more strokes are drawn.  Before the surface is
// configured, ExportRaster returns nil.
func (s *Surface) ExportRaster() *image.RGBA {
	if s.buf == nil {
		return nil
	}
	if s.pending {
		s.Redraw()
	}
	img := image.NewRGBA(s.buf.Rect)
	copy(img.Pix, s.buf.Pix)
	return img
}
