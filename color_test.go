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
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Color
	}{
		{"#0f0", Green},
		{"#00ff00", Green},
		{"#00FF00ff", Green},
		{"#12345678", 0x12345678},
		{"lime", Green},
		{" White ", White},
		{"black", Black},
		{"navy", 0x000080ff},
	} {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %s, expected %s", tc.in, got, tc.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#gggggg", "#-12", "chartreuse-ish"} {
		_, err := ParseColor(in)
		if !errors.Is(err, ErrUnknownColor) {
			t.Errorf("ParseColor(%q): expected ErrUnknownColor, got %v", in, err)
		}
	}
}

func TestColorString(t *testing.T) {
	for _, c := range []Color{Green, White, Black, 0x80402010} {
		back, err := ParseColor(c.String())
		if err != nil || back != c {
			t.Errorf("%s: parsed back as %s, %v", c, back, err)
		}
	}
}

func TestColorConversion(t *testing.T) {
	c := Color(0xff000080)
	r, g, b, a := c.RGBA()
	if a != 0x8080 || r != 0x8080 || g != 0 || b != 0 {
		t.Errorf("RGBA() = %04x %04x %04x %04x", r, g, b, a)
	}

	if got := FromColor(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}); got != 0x12345678 {
		t.Errorf("FromColor(NRGBA) = %s", got)
	}
	if got := FromColor(color.Gray{Y: 0x40}); got != 0x404040ff {
		t.Errorf("FromColor(Gray) = %s", got)
	}
	if got := FromColor(Green); got != Green {
		t.Errorf("FromColor(Green) = %s", got)
	}
}
