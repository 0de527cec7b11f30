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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// DefaultTolerance is the minimal movement, in device-independent pixels,
// before a new input sample changes the stroke geometry.
const DefaultTolerance = 4.0

// Smoother turns a sequence of raw input samples into a smooth curve.
//
// Every accepted sample p adds a quadratic Bézier segment with the
// previously accepted point as control point, ending at the midpoint
// between the two.  Consecutive segments therefore share tangents at their
// joints.  Samples which moved less than Tolerance in both coordinates are
// dropped as jitter.
//
// A Smoother keeps only the last accepted point.
type Smoother struct {
	Tolerance float64

	last vec.Vec2
}

// Start begins a new curve at p.
func (s *Smoother) Start(p vec.Vec2, dst *path.Data) {
	s.last = p
	dst.MoveTo(p)
}

// Add feeds one input sample.  It reports whether geometry was appended
// to dst.
func (s *Smoother) Add(p vec.Vec2, dst *path.Data) bool {
	dx := math.Abs(p.X - s.last.X)
	dy := math.Abs(p.Y - s.last.Y)
	if dx < s.Tolerance && dy < s.Tolerance || math.IsNaN(dx+dy) {
		return false
	}
	mid := p.Add(s.last).Mul(0.5)
	dst.QuadTo(s.last, mid)
	s.last = p
	return true
}

// Finish ends the curve with a straight segment to the last accepted
// point.
func (s *Smoother) Finish(dst *path.Data) {
	dst.LineTo(s.last)
}

// Last returns the last accepted point.
func (s *Smoother) Last() vec.Vec2 {
	return s.last
}
