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

package testcases

import "math"

var strokeCases = []Case{
	{
		Name:    "single_segment",
		Width:   64,
		Height:  64,
		Steps:   gesture(10, 10, 20, 10),
		Strokes: 1,
		Pixels:  []Pixel{{15, 10, "lime"}, {40, 40, "white"}},
	},
	{
		Name:    "dot",
		Width:   64,
		Height:  64,
		Steps:   gesture(32, 32),
		Strokes: 1,
		Pixels:  []Pixel{{32, 32, "lime"}, {32, 50, "white"}},
	},
	{
		Name:    "zigzag",
		Width:   128,
		Height:  128,
		Steps:   gesture(10, 100, 30, 20, 50, 100, 70, 20, 90, 100, 110, 20),
		Strokes: 1,
		Pixels:  []Pixel{{10, 100, "lime"}, {120, 120, "white"}},
	},
	{
		Name:    "spiral",
		Width:   200,
		Height:  200,
		Steps:   gesture(spiral(100, 100, 5, 90, 60)...),
		Strokes: 1,
		Pixels:  []Pixel{{100, 100, "lime"}, {5, 5, "white"}},
	},
	{
		Name:    "crossing",
		Width:   100,
		Height:  100,
		Steps:   concat(gesture(10, 50, 90, 50), set(OpColor, "blue"), gesture(50, 10, 50, 90)),
		Strokes: 2,
		Pixels:  []Pixel{{50, 50, "blue"}, {25, 50, "lime"}, {20, 20, "white"}},
	},
	{
		Name:    "high_density",
		Width:   200,
		Height:  200,
		Density: 2.5,
		Steps:   gesture(10, 10, 30, 60, 70, 20),
		Strokes: 1,
		Pixels:  []Pixel{{25, 25, "lime"}, {190, 190, "white"}},
	},
}

var undoCases = []Case{
	{
		Name:    "two_strokes_one_undo",
		Width:   64,
		Height:  64,
		Steps:   concat(gesture(10, 10, 50, 10), gesture(10, 50, 50, 50), set(OpUndo, "")),
		Strokes: 1,
		Pixels:  []Pixel{{30, 10, "lime"}, {30, 50, "white"}},
	},
	{
		Name:    "empty",
		Width:   32,
		Height:  32,
		Steps:   concat(set(OpUndo, ""), set(OpUndo, "")),
		Strokes: 0,
		Pixels:  []Pixel{{16, 16, "white"}},
	},
	{
		Name:   "during_stroke",
		Width:  64,
		Height: 64,
		Steps: concat(
			gesture(5, 5, 60, 5),
			[]Step{{Op: OpDown, X: 5, Y: 30}, {Op: OpMove, X: 60, Y: 30}, {Op: OpUndo}, {Op: OpMove, X: 60, Y: 60}, {Op: OpUp}},
		),
		Strokes: 1,
		Pixels:  []Pixel{{30, 5, "lime"}, {30, 30, "white"}, {30, 60, "white"}},
	},
	{
		Name:    "clear",
		Width:   64,
		Height:  64,
		Steps:   concat(gesture(10, 10, 50, 50), gesture(50, 10, 10, 50), set(OpClear, "")),
		Strokes: 0,
		Pixels:  []Pixel{{30, 30, "white"}},
	},
}

var brushCases = []Case{
	{
		Name:   "widths",
		Width:  240,
		Height: 80,
		Steps: concat(
			set(OpWidth, "1"), gesture(20, 10, 20, 70),
			set(OpWidth, "5"), gesture(60, 10, 60, 70),
			set(OpWidth, "20"), gesture(110, 10, 110, 70),
			set(OpWidth, "40"), gesture(180, 10, 180, 70),
		),
		Strokes: 4,
		Pixels:  []Pixel{{60, 40, "lime"}, {110, 40, "lime"}, {180, 40, "lime"}, {150, 40, "white"}},
	},
	{
		Name:   "width_clamped",
		Width:  200,
		Height: 200,
		Steps: concat(
			set(OpWidth, "0"), gesture(20, 20, 180, 20),
			set(OpWidth, "500"), gesture(20, 120, 180, 120),
		),
		Strokes: 2,
		Pixels:  []Pixel{{100, 120, "lime"}, {100, 50, "white"}},
	},
	{
		Name:   "translucent",
		Width:  100,
		Height: 100,
		Steps: concat(
			set(OpColor, "#ff000080"), set(OpWidth, "30"),
			gesture(10, 30, 90, 30, 90, 70, 10, 70, 10, 30),
		),
		Strokes: 1,
		Pixels:  []Pixel{{50, 30, "#ff7f7f"}, {50, 50, "white"}},
	},
	{
		Name:   "palette",
		Width:  160,
		Height: 60,
		Steps: concat(
			set(OpColor, "red"), gesture(20, 30),
			set(OpColor, "#0f0"), gesture(60, 30),
			set(OpColor, "navy"), gesture(100, 30),
			set(OpColor, "#000000"), gesture(140, 30),
		),
		Strokes: 4,
		Pixels:  []Pixel{{20, 30, "red"}, {60, 30, "#0f0"}, {100, 30, "navy"}, {140, 30, "black"}},
	},
}

var inputCases = []Case{
	{
		Name:    "jitter",
		Width:   64,
		Height:  64,
		Steps:   gesture(30, 30, 31, 32, 33, 29, 29, 33, 32, 31),
		Strokes: 1,
		Pixels:  []Pixel{{30, 30, "lime"}, {30, 45, "white"}},
	},
	{
		Name:   "spurious_moves",
		Width:  64,
		Height: 64,
		Steps: concat(
			[]Step{{Op: OpMove, X: 10, Y: 10}, {Op: OpUp, X: 20, Y: 20}},
			gesture(10, 30, 50, 30),
			[]Step{{Op: OpMove, X: 50, Y: 50}},
		),
		Strokes: 1,
		Pixels:  []Pixel{{30, 30, "lime"}, {30, 10, "white"}},
	},
	{
		Name:   "cancel",
		Width:  64,
		Height: 64,
		Steps: []Step{
			{Op: OpDown, X: 10, Y: 10},
			{Op: OpMove, X: 30, Y: 30},
			{Op: OpCancel, X: 60, Y: 10},
		},
		Strokes: 1,
		Pixels:  []Pixel{{20, 20, "lime"}, {60, 10, "white"}},
	},
	{
		Name:   "missing_up",
		Width:  64,
		Height: 64,
		Steps: []Step{
			{Op: OpDown, X: 10, Y: 10},
			{Op: OpMove, X: 50, Y: 10},
			{Op: OpDown, X: 10, Y: 50},
			{Op: OpMove, X: 50, Y: 50},
			{Op: OpUp, X: 50, Y: 50},
		},
		Strokes: 2,
		Pixels:  []Pixel{{30, 10, "lime"}, {30, 50, "lime"}},
	},
	{
		Name:    "outside",
		Width:   64,
		Height:  64,
		Steps:   gesture(-40, -40, 32, 32, 120, 20),
		Strokes: 1,
		Pixels:  []Pixel{{0, 0, "lime"}, {5, 60, "white"}},
	},
}

// spiral returns n points on an Archimedean spiral around (cx, cy).
func spiral(cx, cy, r0, r1 float64, n int) []float64 {
	pts := make([]float64, 0, 2*n)
	for i := range n {
		t := float64(i) / float64(n-1)
		phi := 6 * math.Pi * t
		r := r0 + (r1-r0)*t
		pts = append(pts, cx+r*math.Cos(phi), cy+r*math.Sin(phi))
	}
	return pts
}
