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

package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 5, 3))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(2, 1, color.RGBA{G: 255, A: 255})
	return img
}

func TestEncodeRoundTrip(t *testing.T) {
	img := testImage()

	buf := &bytes.Buffer{}
	if err := Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("bounds %v, expected %v", decoded.Bounds(), img.Bounds())
	}
	r, g, b, a := decoded.At(2, 1).RGBA()
	if r != 0 || g != 0xffff || b != 0 || a != 0xffff {
		t.Errorf("pixel (2,1) = %04x %04x %04x %04x", r, g, b, a)
	}
}

func TestNoImage(t *testing.T) {
	var rgba *image.RGBA
	for _, img := range []image.Image{nil, rgba} {
		if err := Encode(&bytes.Buffer{}, img); !errors.Is(err, ErrNoImage) {
			t.Errorf("Encode(%T): %v", img, err)
		}
		if _, err := WriteFile(t.TempDir(), img); !errors.Is(err, ErrNoImage) {
			t.Errorf("WriteFile(%T): %v", img, err)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteFile(dir, testImage())
	if err != nil {
		t.Fatal(err)
	}
	if name != filepath.Join(dir, DisplayName) {
		t.Errorf("wrote %q", name)
	}

	// overwrite the previous drawing
	if _, err := WriteFile(dir, testImage()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only %s, found %d files", DisplayName, len(entries))
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("written file is not a PNG: %v", err)
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	if _, err := WriteFile(dir, testImage()); err == nil {
		t.Error("writing into a missing directory succeeded")
	}
}
