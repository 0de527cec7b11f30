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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a flattened piece of a stroked path, in user space.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A to B
	N    vec.Vec2 // unit normal, T rotated by 90° counter-clockwise
}

// subpath is a range of r.segs.
type subpath struct {
	start, end int
	closed     bool
}

// Stroke renders the outline of p using Width, Cap, Join and MiterLimit.
//
// The outline is assembled from simple convex pieces: one quadrilateral
// per flattened segment, one join piece per corner and one cap per open
// end.  The pieces are filled together as a union, so that overlapping
// pieces are painted only once, also in anti-aliased edge pixels.
//
// A subpath which consists of a single point has no direction.  With
// round caps it is drawn as a disc of diameter Width, with square caps as
// an axis-aligned square, and with butt caps it is not drawn.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	if p == nil || r.Width <= 0 {
		return
	}
	r.flatten(p)

	r.outline = r.outline[:0]
	r.pieces = r.pieces[:0]
	d := r.Width / 2

	for _, pt := range r.dots {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(pt, d)
		case graphics.LineCapSquare:
			r.addSquareCap(pt, vec.Vec2{X: 1}, d)
			r.addSquareCap(pt, vec.Vec2{X: -1}, d)
		}
	}

	for _, sp := range r.subpaths {
		segs := r.segs[sp.start:sp.end]
		for i := range segs {
			r.addBody(&segs[i], d)
			if i > 0 {
				r.addJoin(&segs[i-1], &segs[i], d)
			}
		}
		first, last := &segs[0], &segs[len(segs)-1]
		if sp.closed {
			r.addJoin(last, first, d)
		} else {
			r.addCap(first.A, first.T.Mul(-1), d)
			r.addCap(last.B, last.T, d)
		}
	}

	r.fillOutline(emit)
}

// flatten splits p into subpaths of straight segments.  Subpaths without
// any segment of positive length are collected in r.dots.
func (r *Rasterizer) flatten(p *path.Data) {
	r.segs = r.segs[:0]
	r.subpaths = r.subpaths[:0]
	r.dots = r.dots[:0]

	var cur, start vec.Vec2
	spStart := 0
	open := false

	finish := func(closed bool) {
		if !open {
			return
		}
		if len(r.segs) == spStart {
			r.dots = append(r.dots, start)
		} else {
			r.subpaths = append(r.subpaths, subpath{start: spStart, end: len(r.segs), closed: closed})
		}
		open = false
	}

	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			cur = p.Coords[i]
			start = cur
			spStart = len(r.segs)
			open = true
			i++
		case path.CmdLineTo:
			if open {
				r.addSegment(cur, p.Coords[i])
			}
			cur = p.Coords[i]
			i++
		case path.CmdQuadTo:
			if open {
				r.flattenQuadratic(cur, p.Coords[i], p.Coords[i+1], r.addSegment)
			}
			cur = p.Coords[i+1]
			i += 2
		case path.CmdCubeTo:
			if open {
				r.flattenCubic(cur, p.Coords[i], p.Coords[i+1], p.Coords[i+2], r.addSegment)
			}
			cur = p.Coords[i+2]
			i += 3
		case path.CmdClose:
			if open {
				r.addSegment(cur, start)
			}
			finish(true)
			cur = start
		}
	}
	finish(false)
}

// addSegment appends the segment a-b, unless it has zero length.
func (r *Rasterizer) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// addBody adds the quadrilateral covering the segment s.
func (r *Rasterizer) addBody(s *segment, d float64) {
	off := s.N.Mul(d)
	r.addPiece(s.A.Add(off), s.B.Add(off), s.B.Sub(off), s.A.Sub(off))
}

// addCap adds a line cap at P.  T is the unit direction pointing away
// from the stroke.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(P, d)
	case graphics.LineCapSquare:
		r.addSquareCap(P, T, d)
	}
}

// addSquareCap adds the half square which extends the stroke by d beyond P.
func (r *Rasterizer) addSquareCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}.Mul(d)
	ext := T.Mul(d)
	r.addPiece(P.Add(N), P.Add(N).Add(ext), P.Sub(N).Add(ext), P.Sub(N))
}

// addJoin fills the gap on the outer side of the corner between the
// consecutive segments prev and next.  The inner side is already covered
// by the overlapping segment bodies.
func (r *Rasterizer) addJoin(prev, next *segment, d float64) {
	sin := prev.T.X*next.T.Y - prev.T.Y*next.T.X
	cos := prev.T.Dot(next.T)
	if math.Abs(sin) < collinearityThreshold && cos > 0 {
		return
	}

	P := next.A
	if r.Join == graphics.LineJoinRound {
		r.addDisc(P, d)
		return
	}

	// A counter-clockwise turn opens the gap on the -N side.
	side := d
	if sin > 0 {
		side = -d
	}
	o1 := P.Add(prev.N.Mul(side))
	o2 := P.Add(next.N.Mul(side))

	if r.Join == graphics.LineJoinMiter {
		// The miter length, relative to the stroke width, is 1/cos(θ/2)
		// where θ is the turning angle.
		cosHalf := math.Sqrt((1 + cos) / 2)
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit+1e-10 {
			bisector := prev.N.Add(next.N)
			if l := bisector.Length(); l > zeroLengthThreshold {
				tip := P.Add(bisector.Mul(side / (l * cosHalf)))
				r.addPiece(P, o1, tip, o2)
				return
			}
		}
	}

	// bevel, or a miter which exceeds the limit
	r.addPiece(P, o1, o2)
}

// addDisc adds a circle of the given radius around c.  The number of
// vertices is chosen so that the device space error stays below
// r.Flatness.
func (r *Rasterizer) addDisc(c vec.Vec2, radius float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length(),
	)

	n := 4
	if devRadius > r.Flatness {
		// A chord spanning the angle φ deviates from the circle by
		// radius*(1-cos(φ/2)).
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	// Enlarge the polygon so that its area equals the area of the circle.
	step := 2 * math.Pi / float64(n)
	radius *= math.Sqrt(step / math.Sin(step))

	start := len(r.outline)
	for i := range n {
		phi := step * float64(i)
		r.outline = append(r.outline, c.Add(vec.Vec2{X: math.Cos(phi), Y: math.Sin(phi)}.Mul(radius)))
	}
	r.closePiece(start)
}

// addPiece adds a convex polygon to the outline.
func (r *Rasterizer) addPiece(pts ...vec.Vec2) {
	start := len(r.outline)
	r.outline = append(r.outline, pts...)
	r.closePiece(start)
}

// closePiece finishes the polygon r.outline[start:].  Polygons are
// normalised to counter-clockwise orientation, so that all pieces add up
// under the nonzero rule.  Degenerate polygons are dropped.
func (r *Rasterizer) closePiece(start int) {
	poly := r.outline[start:]
	var area float64
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		area += a.X*b.Y - b.X*a.Y
	}
	if len(poly) < 3 || math.Abs(area) < zeroLengthThreshold {
		r.outline = r.outline[:start]
		return
	}
	if area < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	r.pieces = append(r.pieces, start)
}

// fillOutline fills the union of all collected pieces.
func (r *Rasterizer) fillOutline(emit EmitFunc) {
	if len(r.pieces) == 0 {
		return
	}
	r.startEdges()
	for i, start := range r.pieces {
		end := len(r.outline)
		if i+1 < len(r.pieces) {
			end = r.pieces[i+1]
		}
		poly := r.outline[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scanUnion(emit)
}
