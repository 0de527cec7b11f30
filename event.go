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

import "fmt"

// Phase is the stage of a pointer gesture.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp

	// PhaseCancel is sent when the host abandons a gesture.  The stroke
	// drawn so far is kept.
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PointerEvent is a single input sample of the tracked pointer.  X and Y
// are in device-independent pixels, relative to the top-left corner of the
// surface.
type PointerEvent struct {
	Phase Phase
	X, Y  float64
}

// HandleEvent dispatches e to Down, Move or Up.  Events with an unknown
// phase are ignored.
func (s *Surface) HandleEvent(e PointerEvent) {
	switch e.Phase {
	case PhaseDown:
		s.Down(e.X, e.Y)
	case PhaseMove:
		s.Move(e.X, e.Y)
	case PhaseUp, PhaseCancel:
		s.Up(e.X, e.Y)
	}
}
