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

// Package raster converts vector paths into anti-aliased pixel coverage.
//
// A [Rasterizer] fills or strokes a path and reports, row by row, the
// fraction of each pixel covered by the shape.  A [Painter] turns these
// coverage rows into solid-colour pixels of an [image.RGBA].
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage values for the pixels xMin, xMin+1, ...
// of row y.  The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
	dir    float32 // +1 if the edge points down, -1 if it points up
	yTop   float64 // min(y0, y1)
	yBot   float64 // max(y0, y1)
}

// hit is a crossing of an edge with a sample line.
type hit struct {
	x   float64
	dir float32
}

// Rasterizer converts vector paths to pixel coverage values.  One instance
// can be reused for many paths; internal buffers grow as needed and are
// kept between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output, in integer-aligned device coordinates.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and its polygonal approximation.  Must be positive.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the style used at the open ends of stroked subpaths.
	Cap graphics.LineCapStyle

	// Join is the style used at corners of stroked subpaths.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the
	// stroke width.  Must be at least 1.
	MiterLimit float64

	cover     []float32
	area      []float32
	edges     []edge
	active    []int
	crossings []float64
	hits      []hit

	// stroke geometry
	segs     []segment
	subpaths []subpath
	dots     []vec.Vec2
	outline  []vec.Vec2
	pieces   []int // start index of each polygon in outline

	// device space bounding box of the collected edges
	noEdges bool
	bbox    rect.Rect
}

// NewRasterizer returns a Rasterizer for the given clip rectangle.  The
// remaining parameters are set to the defaults used for finger painting:
// unit width, round caps and round joins.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound
	r.MiterLimit = defaultMiterLimit
}

// FillNonZero fills p using the nonzero winding rule.  Open subpaths are
// closed implicitly.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.fill(p, nonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.  Open subpaths are closed
// implicitly.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.fill(p, evenOdd, emit)
}

type fillRule int

const (
	nonZero fillRule = iota
	evenOdd
)

func (r *Rasterizer) fill(p *path.Data, rule fillRule, emit EmitFunc) {
	if p == nil {
		return
	}
	r.startEdges()

	var cur, start vec.Vec2
	open := false
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.addEdge(cur, start)
			}
			cur = p.Coords[i]
			start = cur
			open = true
			i++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[i])
			cur = p.Coords[i]
			i++
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, p.Coords[i], p.Coords[i+1], r.addEdge)
			cur = p.Coords[i+1]
			i += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[i], p.Coords[i+1], p.Coords[i+2], r.addEdge)
			cur = p.Coords[i+2]
			i += 3
		case path.CmdClose:
			r.addEdge(cur, start)
			cur = start
			open = false
		}
	}
	if open {
		r.addEdge(cur, start)
	}

	r.scan(rule, emit)
}

// transformLinear applies the linear part of the CTM, ignoring translation.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasterizer) transform(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y + r.CTM[4],
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y + r.CTM[5],
	}
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2 by
// line segments and passes them to emit.  The number of segments is
// chosen so that the device space error stays below r.Flatness.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	// the maximal deviation of the chord is |p0 - 2p1 + p2| / 4
	dev := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the segment count.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.noEdges = true
}

// addEdge transforms the user space segment a-b to device space and adds
// it to the edge list.  Horizontal edges do not contribute to coverage and
// are dropped.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	a = r.transform(a)
	b = r.transform(b)

	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}

	e := edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
		dir:  1,
		yTop: a.Y,
		yBot: b.Y,
	}
	if dy < 0 {
		e.dir = -1
		e.yTop, e.yBot = b.Y, a.Y
	}
	r.edges = append(r.edges, e)

	box := rect.Rect{
		LLx: min(a.X, b.X), LLy: e.yTop,
		URx: max(a.X, b.X), URy: e.yBot,
	}
	if r.noEdges {
		r.bbox = box
		r.noEdges = false
	} else {
		r.bbox.LLx = min(r.bbox.LLx, box.LLx)
		r.bbox.LLy = min(r.bbox.LLy, box.LLy)
		r.bbox.URx = max(r.bbox.URx, box.URx)
		r.bbox.URy = max(r.bbox.URy, box.URy)
	}
}

// pixelRange returns the clipped integer pixel range touched by the
// collected edges.
func (r *Rasterizer) pixelRange() (xMin, xMax, yMin, yMax int, ok bool) {
	if r.noEdges {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// scan walks the scanlines covered by the edge list, keeping a list of
// active edges, and emits the coverage of every non-empty row.
//
// For each pixel two quantities are accumulated: cover, the signed
// vertical extent of the edges crossing the pixel, and area, the part of
// that extent which lies to the right of the edge inside the pixel.
// Summing cover from the left and adding area gives the signed area of the
// shape inside each pixel.
func (r *Rasterizer) scan(rule fillRule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.pixelRange()
	if !ok {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	r.sortEdges()
	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		next = r.advance(y, next)
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, idx := range r.active {
			r.accumulate(&r.edges[idx], y, xMin, xMax)
		}

		if rule == nonZero {
			integrateNonZero(r.cover, r.area)
		} else {
			integrateEvenOdd(r.cover, r.area)
		}
		if row, offs := trimZeros(r.cover); row != nil {
			emit(y, xMin+offs, row)
		}
	}
}

// scanUnion emits the coverage of the union of the collected polygons,
// i.e. of the region with nonzero winding number.
//
// The signed areas used by scan add up where polygons overlap inside an
// edge pixel, so that such pixels come out too dark.  Here every pixel row
// is instead sampled along unionSamples horizontal lines.  On each line the
// spans of nonzero winding are found from the sorted edge crossings, and
// their exact length is added to the pixels they cover.
func (r *Rasterizer) scanUnion(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.pixelRange()
	if !ok {
		return
	}
	width := xMax - xMin
	// r.cover holds runs of fully covered pixels as differences,
	// r.area holds the partially covered pixels at the ends of spans.
	r.cover = slices.Grow(r.cover[:0], width+1)[:width+1]
	r.area = slices.Grow(r.area[:0], width)[:width]

	const w = 1.0 / unionSamples

	r.sortEdges()
	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		next = r.advance(y, next)
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for k := range unionSamples {
			ys := float64(y) + (float64(k)+0.5)*w

			r.hits = r.hits[:0]
			for _, idx := range r.active {
				e := &r.edges[idx]
				if ys < e.yTop || ys >= e.yBot {
					continue
				}
				r.hits = append(r.hits, hit{x: e.x0 + e.dxdy*(ys-e.y0), dir: e.dir})
			}
			slices.SortFunc(r.hits, func(a, b hit) int {
				return cmp.Compare(a.x, b.x)
			})

			var winding float32
			var start float64
			for _, h := range r.hits {
				before := winding
				winding += h.dir
				if before == 0 && winding != 0 {
					start = h.x
				} else if before != 0 && winding == 0 {
					r.addSpan(start, h.x, xMin, xMax, w)
				}
			}
		}

		var acc float32
		for i := range width {
			acc += r.cover[i]
			r.cover[i] = min(acc+r.area[i], 1)
		}
		if row, offs := trimZeros(r.cover[:width]); row != nil {
			emit(y, xMin+offs, row)
		}
	}
}

// addSpan adds the horizontal span a-b of one sample line, with weight w,
// to the buffers used by scanUnion.
func (r *Rasterizer) addSpan(a, b float64, xMin, xMax int, w float32) {
	a = max(a, float64(xMin))
	b = min(b, float64(xMax))
	if b <= a {
		return
	}
	ia := int(math.Floor(a))
	ib := min(int(math.Floor(b)), xMax)

	i := ia - xMin
	if ia == ib {
		r.area[i] += w * float32(b-a)
		return
	}
	r.area[i] += w * float32(float64(ia+1)-a)
	r.cover[i+1] += w
	r.cover[ib-xMin] -= w
	if ib < xMax {
		r.area[ib-xMin] += w * float32(b-float64(ib))
	}
}

func (r *Rasterizer) sortEdges() {
	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yTop, b.yTop)
	})
}

// advance updates the active edge list for row y.  Edges must be sorted
// by yTop; next is the index of the first edge not yet activated, and the
// updated value is returned.
func (r *Rasterizer) advance(y, next int) int {
	rowTop := float64(y)
	rowBot := float64(y + 1)

	for next < len(r.edges) && r.edges[next].yTop < rowBot {
		r.active = append(r.active, next)
		next++
	}

	// drop edges which end above this row
	k := 0
	for _, idx := range r.active {
		if r.edges[idx].yBot > rowTop {
			r.active[k] = idx
			k++
		}
	}
	r.active = r.active[:k]
	return next
}

// accumulate adds the contribution of e inside row y to the cover and area
// buffers, which are indexed by x - xMin.
func (r *Rasterizer) accumulate(e *edge, y, xMin, xMax int) {
	top := max(float64(y), e.yTop)
	bot := min(float64(y+1), e.yBot)
	if bot <= top {
		return
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)
	left := int(math.Floor(min(xTop, xBot)))
	right := int(math.Floor(max(xTop, xBot)))

	if left == right {
		r.deposit(e, top, bot, xMin, xMax)
		return
	}

	// split the edge where it crosses pixel column boundaries
	r.crossings = append(r.crossings[:0], top, bot)
	for x := left + 1; x <= right; x++ {
		yx := e.y0 + (float64(x)-e.x0)/e.dxdy
		if yx > top && yx < bot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)
	for i := 1; i < len(r.crossings); i++ {
		r.deposit(e, r.crossings[i-1], r.crossings[i], xMin, xMax)
	}
}

// deposit adds the part of e between heights top and bot, which must lie
// within a single pixel column.
func (r *Rasterizer) deposit(e *edge, top, bot float64, xMin, xMax int) {
	if bot <= top {
		return
	}
	c := e.dir * float32(bot-top)

	xMid := e.x0 + e.dxdy*((top+bot)/2-e.y0)
	pix := int(math.Floor(xMid))
	switch {
	case pix < xMin:
		// left of the buffer: every pixel lies to the right of the edge
		r.cover[0] += c
		r.area[0] += c
	case pix < xMax:
		i := pix - xMin
		r.cover[i] += c
		r.area[i] += c * float32(1-(xMid-float64(pix)))
	}
}

// integrateNonZero converts cover and area into coverage values in place,
// using the nonzero winding rule.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd converts cover and area into coverage values in place,
// using the even-odd rule.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		v -= 2 * float32(int(v/2))
		if v > 1 {
			v = 2 - v
		}
		cover[i] = v
	}
}

// trimZeros strips leading and trailing zeros.  It returns nil if all
// values are zero.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF and PostScript.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the smallest vertical extent for an edge
	// to contribute coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the shortest stroke segment which still has
	// a direction.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the largest |sin| between two segments
	// which are treated as one straight line.
	collinearityThreshold = 1e-6

	// unionSamples is the number of sample lines per pixel row used for
	// stroke outlines.
	unionSamples = 16
)
