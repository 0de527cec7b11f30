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

// Package testcases contains recorded input sessions for a drawing
// surface.  They are used by the tests and by the paintreplay tool.
package testcases

//go:generate go test -run TestAgainstReference -update .

import (
	"fmt"
	"strconv"

	"seehuhn.de/go/fingerpaint"
)

// Case is a named input session.
type Case struct {
	Name    string  // lowercase a-z and _ only
	Width   int     // canvas width in device pixels
	Height  int     // canvas height in device pixels
	Density float64 // device pixels per dp (zero means 1)
	Steps   []Step

	// Strokes is the number of strokes left after the session.
	Strokes int

	// Pixels lists the expected colours of some pixels of the final
	// raster.
	Pixels []Pixel
}

// Pixel is the expected colour of one pixel, in device coordinates.
// Color is in the format accepted by [fingerpaint.ParseColor].
type Pixel struct {
	X, Y  int
	Color string
}

// Op is the kind of a [Step].
type Op string

// The operations which can occur in a session.
const (
	OpDown   Op = "down"
	OpMove   Op = "move"
	OpUp     Op = "up"
	OpCancel Op = "cancel"
	OpUndo   Op = "undo"
	OpClear  Op = "clear"
	OpColor  Op = "color" // Value is a colour, see [fingerpaint.ParseColor]
	OpWidth  Op = "width" // Value is the new stroke width
)

// Step is one input event or command.
type Step struct {
	Op    Op      `koanf:"op"`
	X     float64 `koanf:"x"`
	Y     float64 `koanf:"y"`
	Value string  `koanf:"value"`
}

// Apply feeds the steps to s, in order.
func Apply(s *fingerpaint.Surface, steps []Step) error {
	for i, st := range steps {
		switch st.Op {
		case OpDown:
			s.HandleEvent(fingerpaint.PointerEvent{Phase: fingerpaint.PhaseDown, X: st.X, Y: st.Y})
		case OpMove:
			s.HandleEvent(fingerpaint.PointerEvent{Phase: fingerpaint.PhaseMove, X: st.X, Y: st.Y})
		case OpUp:
			s.HandleEvent(fingerpaint.PointerEvent{Phase: fingerpaint.PhaseUp, X: st.X, Y: st.Y})
		case OpCancel:
			s.HandleEvent(fingerpaint.PointerEvent{Phase: fingerpaint.PhaseCancel, X: st.X, Y: st.Y})
		case OpUndo:
			s.Undo()
		case OpClear:
			s.Clear()
		case OpColor:
			c, err := fingerpaint.ParseColor(st.Value)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			s.SetColor(c)
		case OpWidth:
			w, err := strconv.ParseFloat(st.Value, 64)
			if err != nil {
				return fmt.Errorf("step %d: invalid width: %w", i, err)
			}
			s.SetWidth(w)
		default:
			return fmt.Errorf("step %d: unknown operation %q", i, st.Op)
		}
	}
	return nil
}

// NewSurface returns a configured surface for the case and replays its
// steps.
func (c Case) NewSurface(opts ...fingerpaint.Option) (*fingerpaint.Surface, error) {
	if c.Density > 0 {
		opts = append(opts, fingerpaint.WithDensity(c.Density))
	}
	s := fingerpaint.NewSurface(opts...)
	s.Configure(c.Width, c.Height)
	if err := Apply(s, c.Steps); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return s, nil
}

// gesture returns the steps for one stroke through the given points.
func gesture(pts ...float64) []Step {
	n := len(pts) / 2
	steps := make([]Step, 0, n+1)
	for i := range n {
		op := OpMove
		if i == 0 {
			op = OpDown
		}
		steps = append(steps, Step{Op: op, X: pts[2*i], Y: pts[2*i+1]})
	}
	steps = append(steps, Step{Op: OpUp, X: pts[2*n-2], Y: pts[2*n-1]})
	return steps
}

func concat(parts ...[]Step) []Step {
	var res []Step
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}

func set(op Op, value string) []Step {
	return []Step{{Op: op, Value: value}}
}
