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
	"image"
	"image/color"

	"seehuhn.de/go/geom/rect"
)

// Painter composites coverage rows onto an RGBA image, using a solid
// colour and the Porter-Duff "source over" operator.
type Painter struct {
	Dst *image.RGBA

	// premultiplied source colour, 16 bits per channel
	r, g, b, a uint32
}

// NewPainter returns a Painter which paints onto dst using colour c.
func NewPainter(dst *image.RGBA, c color.Color) *Painter {
	p := &Painter{Dst: dst}
	p.SetColor(c)
	return p
}

// SetColor changes the paint colour.
func (p *Painter) SetColor(c color.Color) {
	p.r, p.g, p.b, p.a = c.RGBA()
}

// Emit blends one row of coverage values into the destination image.
// It has the signature of an [EmitFunc] and can be passed directly to
// the fill and stroke methods of a [Rasterizer].
func (p *Painter) Emit(y, xMin int, coverage []float32) {
	const m = 1<<16 - 1

	bounds := p.Dst.Rect
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	for i, c := range coverage {
		x := xMin + i
		if x < bounds.Min.X || x >= bounds.Max.X {
			continue
		}
		if c <= 0 {
			continue
		}
		ma := uint32(min(c, 1)*m + 0.5)

		// same arithmetic as image/draw for a uniform source and a mask
		a := (m - p.a*ma/m) * 0x101
		pix := p.Dst.Pix[p.Dst.PixOffset(x, y):]
		pix[0] = uint8((uint32(pix[0])*a/m + p.r*ma/m) >> 8)
		pix[1] = uint8((uint32(pix[1])*a/m + p.g*ma/m) >> 8)
		pix[2] = uint8((uint32(pix[2])*a/m + p.b*ma/m) >> 8)
		pix[3] = uint8((uint32(pix[3])*a/m + p.a*ma/m) >> 8)
	}
}

// ClipFor returns the clip rectangle, in device space, which covers the
// image bounds.
func ClipFor(img image.Image) rect.Rect {
	b := img.Bounds()
	return rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}
}
