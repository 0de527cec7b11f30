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

// Package fingerpaint implements a headless finger-paint drawing surface.
//
// Pointer input is turned into freehand strokes, which are smoothed while
// they are drawn (see [Smoother]) and kept in an ordered [Model] with
// single-step undo.  A [Surface] renders the strokes into an off-screen
// raster, which the host can copy to its output or export as an image.
//
// The host is responsible for delivering input events, calling
// [Surface.Configure] once the output size is known, and repainting when
// the surface asks for it:
//
//	s := fingerpaint.NewSurface(fingerpaint.WithInvalidate(scheduleRepaint))
//	s.Configure(width, height)
//	s.Down(10, 10)
//	s.Move(20, 10)
//	s.Up(20, 10)
//	s.Draw(screen, image.Point{})
package fingerpaint
