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

// Package export writes finished drawings to PNG files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// File name and media type under which drawings are stored.
const (
	DisplayName = "drawing.png"
	MIMEType    = "image/png"
)

// ErrNoImage is returned when there is nothing to export, for example
// because the drawing surface has not been configured yet.
var ErrNoImage = errors.New("no image to export")

// Encode writes img to w in PNG format.
func Encode(w io.Writer, img image.Image) error {
	if isNil(img) {
		return ErrNoImage
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encoding %s: %w", DisplayName, err)
	}
	return nil
}

// WriteFile stores img as DisplayName in the directory dir and returns the
// path of the new file.  The file is written to a temporary name first and
// then renamed, so that readers never see a partial image.
func WriteFile(dir string, img image.Image) (string, error) {
	if isNil(img) {
		return "", ErrNoImage
	}

	tmp, err := os.CreateTemp(dir, ".drawing-*.png")
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	err = Encode(tmp, img)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("export: %w", closeErr)
	}
	if err != nil {
		return "", err
	}

	name := filepath.Join(dir, DisplayName)
	if err := os.Rename(tmpName, name); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return name, nil
}

// isNil catches both a nil interface and a typed nil pointer, as returned
// by an unconfigured surface.
func isNil(img image.Image) bool {
	if img == nil {
		return true
	}
	switch img := img.(type) {
	case *image.RGBA:
		return img == nil
	case *image.NRGBA:
		return img == nil
	}
	return false
}
