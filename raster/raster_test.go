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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// coverageGrid collects emitted coverage into a w×h grid.
type coverageGrid struct {
	w, h int
	v    []float32
}

func newGrid(w, h int) *coverageGrid {
	return &coverageGrid{w: w, h: h, v: make([]float32, w*h)}
}

func (g *coverageGrid) emit(y, xMin int, coverage []float32) {
	for i, c := range coverage {
		g.v[y*g.w+xMin+i] = c
	}
}

func (g *coverageGrid) at(x, y int) float32 {
	return g.v[y*g.w+x]
}

func (g *coverageGrid) sum() float64 {
	var s float64
	for _, c := range g.v {
		s += float64(c)
	}
	return s
}

func clip(w, h int) rect.Rect {
	return rect.Rect{URx: float64(w), URy: float64(h)}
}

// TestTriangleCoverage checks exact coverage values for a thin triangle.
// The triangle (0,0)→(10,0)→(10,1) has a diagonal edge y = x/10, so pixel
// x is covered to (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	g := newGrid(10, 1)
	r := NewRasterizer(clip(10, 1))
	r.FillNonZero(triangle, g.emit)

	for x := range 10 {
		want := float32(2*x+1) / 20
		if got := g.at(x, 0); math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, want, got)
		}
	}
}

func TestFillImplicitClose(t *testing.T) {
	open := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 8, Y: 2}).
		LineTo(vec.Vec2{X: 8, Y: 8}).
		LineTo(vec.Vec2{X: 2, Y: 8})
	closed := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 8, Y: 2}).
		LineTo(vec.Vec2{X: 8, Y: 8}).
		LineTo(vec.Vec2{X: 2, Y: 8}).
		Close()

	a, b := newGrid(10, 10), newGrid(10, 10)
	r := NewRasterizer(clip(10, 10))
	r.FillNonZero(open, a.emit)
	r.FillNonZero(closed, b.emit)

	for i := range a.v {
		if a.v[i] != b.v[i] {
			t.Fatalf("pixel %d: open path %.3f, closed path %.3f", i, a.v[i], b.v[i])
		}
	}
	if s := a.sum(); math.Abs(s-36) > 1e-4 {
		t.Errorf("expected total coverage 36, got %.4f", s)
	}
}

func TestFillRules(t *testing.T) {
	// two nested squares with the same orientation
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 10}).LineTo(vec.Vec2{X: 0, Y: 10}).Close().
		MoveTo(vec.Vec2{X: 3, Y: 3}).LineTo(vec.Vec2{X: 7, Y: 3}).
		LineTo(vec.Vec2{X: 7, Y: 7}).LineTo(vec.Vec2{X: 3, Y: 7}).Close()

	r := NewRasterizer(clip(10, 10))

	nz := newGrid(10, 10)
	r.FillNonZero(p, nz.emit)
	if c := nz.at(5, 5); c != 1 {
		t.Errorf("nonzero: centre coverage %.3f, expected 1", c)
	}

	eo := newGrid(10, 10)
	r.FillEvenOdd(p, eo.emit)
	if c := eo.at(5, 5); c != 0 {
		t.Errorf("even-odd: centre coverage %.3f, expected 0", c)
	}
	if c := eo.at(1, 1); c != 1 {
		t.Errorf("even-odd: ring coverage %.3f, expected 1", c)
	}
}

func TestFillClipped(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: -20, Y: -20}).
		LineTo(vec.Vec2{X: 30, Y: -20}).
		LineTo(vec.Vec2{X: 30, Y: 30}).
		LineTo(vec.Vec2{X: -20, Y: 30}).
		Close()

	g := newGrid(10, 10)
	r := NewRasterizer(clip(10, 10))
	r.FillNonZero(p, g.emit)
	for i, c := range g.v {
		if c != 1 {
			t.Fatalf("pixel %d: coverage %.3f, expected 1", i, c)
		}
	}
}

func TestStrokeDot(t *testing.T) {
	dot := (&path.Data{}).
		MoveTo(vec.Vec2{X: 16, Y: 16}).
		LineTo(vec.Vec2{X: 16, Y: 16})

	for _, tc := range []struct {
		name string
		cap  graphics.LineCapStyle
		want float64
	}{
		{"round", graphics.LineCapRound, math.Pi * 5 * 5},
		{"square", graphics.LineCapSquare, 10 * 10},
		{"butt", graphics.LineCapButt, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(32, 32)
			r := NewRasterizer(clip(32, 32))
			r.Width = 10
			r.Cap = tc.cap
			r.Stroke(dot, g.emit)

			if s := g.sum(); math.Abs(s-tc.want) > 0.02*tc.want+1e-6 {
				t.Errorf("total coverage %.2f, expected %.2f", s, tc.want)
			}
			if tc.want > 0 && g.at(16, 16) != 1 {
				t.Errorf("centre coverage %.3f, expected 1", g.at(16, 16))
			}
		})
	}
}

func TestStrokeLineCaps(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 32}).
		LineTo(vec.Vec2{X: 54, Y: 32})

	body := 44.0 * 8
	for _, tc := range []struct {
		name string
		cap  graphics.LineCapStyle
		want float64
	}{
		{"butt", graphics.LineCapButt, body},
		{"square", graphics.LineCapSquare, body + 2*4*8},
		{"round", graphics.LineCapRound, body + math.Pi*4*4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(64, 64)
			r := NewRasterizer(clip(64, 64))
			r.Width = 8
			r.Cap = tc.cap
			r.Stroke(line, g.emit)

			if s := g.sum(); math.Abs(s-tc.want) > 0.01*tc.want {
				t.Errorf("total coverage %.2f, expected %.2f", s, tc.want)
			}
			for _, c := range g.v {
				if c < 0 || c > 1 {
					t.Fatalf("coverage %.3f outside [0, 1]", c)
				}
			}
		})
	}
}

func TestStrokeJoins(t *testing.T) {
	// a right angle, turning at (32, 10)
	corner := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 32, Y: 10}).
		LineTo(vec.Vec2{X: 32, Y: 40})

	area := func(join graphics.LineJoinStyle, limit float64) float64 {
		g := newGrid(64, 64)
		r := NewRasterizer(clip(64, 64))
		r.Width = 6
		r.Cap = graphics.LineCapButt
		r.Join = join
		r.MiterLimit = limit
		r.Stroke(corner, g.emit)
		return g.sum()
	}

	bevel := area(graphics.LineJoinBevel, 10)
	round := area(graphics.LineJoinRound, 10)
	miter := area(graphics.LineJoinMiter, 10)
	clipped := area(graphics.LineJoinMiter, 1.1)

	// The outer corner is a 3×3 square: the bevel covers half of it, the
	// round join a quarter disc, the miter all of it.
	const eps = 0.5
	if d := miter - bevel; math.Abs(d-4.5) > eps {
		t.Errorf("miter-bevel difference %.2f, expected 4.5", d)
	}
	if d := round - bevel; math.Abs(d-(math.Pi*9/4-4.5)) > eps {
		t.Errorf("round-bevel difference %.2f, expected %.2f", d, math.Pi*9/4-4.5)
	}
	if math.Abs(clipped-bevel) > 1e-3 {
		t.Errorf("miter beyond the limit should fall back to bevel: %.3f != %.3f", clipped, bevel)
	}
}

// TestStrokeOverlapPaintedOnce checks that a path crossing itself is not
// painted twice where it overlaps.
func TestStrokeOverlapPaintedOnce(t *testing.T) {
	cross := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 20}).
		LineTo(vec.Vec2{X: 35, Y: 20}).
		LineTo(vec.Vec2{X: 35, Y: 35}).
		LineTo(vec.Vec2{X: 20, Y: 35}).
		LineTo(vec.Vec2{X: 20, Y: 5})

	g := newGrid(40, 40)
	r := NewRasterizer(clip(40, 40))
	r.Width = 6
	r.Stroke(cross, g.emit)

	if c := g.at(20, 20); c != 1 {
		t.Errorf("coverage at crossing %.3f, expected 1", c)
	}
	for i, c := range g.v {
		if c > 1 {
			t.Fatalf("pixel %d: coverage %.3f exceeds 1", i, c)
		}
	}
}

// TestStrokeCapSeam checks that anti-aliased edge pixels where a round cap
// overlaps the body of the stroke get the same coverage as edge pixels
// along the body.
func TestStrokeCapSeam(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 20, Y: 20.3}).
		LineTo(vec.Vec2{X: 60, Y: 20.3})

	g := newGrid(80, 40)
	r := NewRasterizer(clip(80, 40))
	r.Width = 10
	r.Stroke(line, g.emit)

	for _, y := range []int{15, 25} {
		body := g.at(40, y)
		if body <= 0 || body >= 1 {
			t.Fatalf("row %d: edge coverage %.3f along the body", y, body)
		}
		for _, x := range []int{20, 21, 59} {
			if c := g.at(x, y); c != body {
				t.Errorf("row %d: coverage %.3f at x=%d, %.3f along the body",
					y, c, x, body)
			}
		}
	}
}

// TestStrokeRingArea strokes a closed regular polygon.  The covered area
// is known in closed form and must not depend on how finely the round
// joins are approximated.
func TestStrokeRingArea(t *testing.T) {
	const (
		n = 64
		R = 20.0
		w = 6.0
	)
	ring := &path.Data{}
	for i := range n {
		phi := 2 * math.Pi * float64(i) / n
		p := vec.Vec2{X: 32 + R*math.Cos(phi), Y: 32 + R*math.Sin(phi)}
		if i == 0 {
			ring.MoveTo(p)
		} else {
			ring.LineTo(p)
		}
	}
	ring.Close()

	perimeter := n * 2 * R * math.Sin(math.Pi/n)
	d := w / 2
	want := 2*perimeter*d + d*d*(math.Pi-n*math.Tan(math.Pi/n))

	for _, tc := range []struct {
		flatness, tol float64
	}{
		{0.25, 0.02},
		{0.01, 0.01},
	} {
		g := newGrid(64, 64)
		r := NewRasterizer(clip(64, 64))
		r.Width = w
		r.Flatness = tc.flatness
		r.Stroke(ring, g.emit)

		if s := g.sum(); math.Abs(s-want) > tc.tol*want {
			t.Errorf("flatness %g: area %.1f, expected %.1f", tc.flatness, s, want)
		}
		for i, c := range g.v {
			if c > 1 {
				t.Fatalf("flatness %g: pixel %d has coverage %.3f", tc.flatness, i, c)
			}
		}
	}
}

func TestStrokeQuadraticWithCTM(t *testing.T) {
	curve := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 10}).
		QuadTo(vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 18, Y: 10})

	unscaled := newGrid(64, 64)
	r := NewRasterizer(clip(64, 64))
	r.Width = 2
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinBevel
	r.Stroke(curve, unscaled.emit)

	scaled := newGrid(64, 64)
	r.CTM = matrix.Matrix{3, 0, 0, 3, 0, 0}
	r.Stroke(curve, scaled.emit)

	ratio := scaled.sum() / unscaled.sum()
	if math.Abs(ratio-9) > 0.5 {
		t.Errorf("scaling by 3 changed the area by %.2f, expected 9", ratio)
	}
}

func TestStrokeEmpty(t *testing.T) {
	r := NewRasterizer(clip(10, 10))
	called := false
	emit := func(int, int, []float32) { called = true }

	r.Stroke(nil, emit)
	r.Stroke(&path.Data{}, emit)
	r.Width = 0
	r.Stroke((&path.Data{}).MoveTo(vec.Vec2{X: 5, Y: 5}).LineTo(vec.Vec2{X: 8, Y: 8}), emit)

	if called {
		t.Error("empty stroke produced coverage")
	}
}

func TestResetKeepsBuffers(t *testing.T) {
	r := NewRasterizer(clip(64, 64))
	r.Width = 8
	r.Cap = graphics.LineCapButt
	r.Stroke((&path.Data{}).MoveTo(vec.Vec2{X: 1, Y: 1}).LineTo(vec.Vec2{X: 60, Y: 60}), func(int, int, []float32) {})

	r.Reset(clip(8, 8))
	if r.Width != 1 || r.Cap != graphics.LineCapRound || r.Join != graphics.LineJoinRound {
		t.Errorf("Reset did not restore defaults: width %g, cap %v, join %v", r.Width, r.Cap, r.Join)
	}
	if r.CTM != matrix.Identity {
		t.Errorf("Reset did not restore the identity CTM")
	}
	if cap(r.edges) == 0 {
		t.Errorf("Reset dropped the edge buffer")
	}
}
