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
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a packed, non-premultiplied colour value 0xRRGGBBAA.
type Color uint32

// Predefined colours.
const (
	White Color = 0xffffffff
	Black Color = 0x000000ff
	Green Color = 0x00ff00ff
)

// ErrUnknownColor is returned by [ParseColor] for strings which are neither
// a hex colour nor a known colour name.
var ErrUnknownColor = errors.New("unknown colour")

// NRGBA returns the colour as a non-premultiplied [color.NRGBA].
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

// RGBA implements the [color.Color] interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// FromColor converts an arbitrary colour to a Color.
func FromColor(c color.Color) Color {
	if c, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color(uint32(n.R)<<24 | uint32(n.G)<<16 | uint32(n.B)<<8 | uint32(n.A))
}

// ParseColor parses a colour given as "#rgb", "#rrggbb", "#rrggbbaa" or as
// one of the SVG 1.1 colour names ("green", "navy", ...).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		switch len(hex) {
		case 3:
			r, g, b := v>>8&0xf, v>>4&0xf, v&0xf
			return Color((r*0x11)<<24 | (g*0x11)<<16 | (b*0x11)<<8 | 0xff), nil
		case 6:
			return Color(v<<8 | 0xff), nil
		case 8:
			return Color(v), nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromColor(c), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}
