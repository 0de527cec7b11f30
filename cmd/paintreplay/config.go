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

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"seehuhn.de/go/fingerpaint"
	"seehuhn.de/go/fingerpaint/testcases"
)

const envPrefix = "FINGERPAINT_"

// Config holds the settings of the replay tool.
type Config struct {
	Canvas CanvasConfig `koanf:"canvas"`
	Brush  BrushConfig  `koanf:"brush"`
	Log    LogConfig    `koanf:"log"`
}

// CanvasConfig describes the drawing surface.
type CanvasConfig struct {
	Width      int     `koanf:"width"`
	Height     int     `koanf:"height"`
	Density    float64 `koanf:"density"`
	Background string  `koanf:"background"`
}

// BrushConfig holds the initial brush settings.
type BrushConfig struct {
	Color     string  `koanf:"color"`
	Width     float64 `koanf:"width"`
	Tolerance float64 `koanf:"tolerance"`
}

// LogConfig selects the log level ("debug", "info", "warn", "error") and
// the output format ("text" or "json").
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

var defaults = map[string]any{
	"canvas.width":      480,
	"canvas.height":     800,
	"canvas.density":    1.0,
	"canvas.background": "white",
	"brush.color":       "#00ff00",
	"brush.width":       fingerpaint.DefaultWidth,
	"brush.tolerance":   fingerpaint.DefaultTolerance,
	"log.level":         "info",
	"log.format":        "text",
}

// LoadConfig reads the configuration in three layers, later layers taking
// precedence:
//
//  1. built-in defaults
//  2. the YAML file at path, if path is not empty
//  3. environment variables with the FINGERPAINT_ prefix
//
// Environment variables map to keys by replacing underscores with dots,
// e.g. FINGERPAINT_BRUSH_WIDTH sets brush.width.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the tool cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.Density <= 0 {
		errs = append(errs, fmt.Errorf("canvas.density must be positive, got %g", c.Canvas.Density))
	}
	if _, err := fingerpaint.ParseColor(c.Canvas.Background); err != nil {
		errs = append(errs, fmt.Errorf("canvas.background: %w", err))
	}
	if _, err := fingerpaint.ParseColor(c.Brush.Color); err != nil {
		errs = append(errs, fmt.Errorf("brush.color: %w", err))
	}
	if c.Brush.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("brush.tolerance must not be negative, got %g", c.Brush.Tolerance))
	}
	return errors.Join(errs...)
}

// Options returns the surface options for the configuration.  The
// configuration must have been validated.
func (c *Config) Options() []fingerpaint.Option {
	bg, _ := fingerpaint.ParseColor(c.Canvas.Background)
	fg, _ := fingerpaint.ParseColor(c.Brush.Color)
	return []fingerpaint.Option{
		fingerpaint.WithBackground(bg),
		fingerpaint.WithColor(fg),
		fingerpaint.WithWidth(c.Brush.Width),
		fingerpaint.WithDensity(c.Canvas.Density),
		fingerpaint.WithTolerance(c.Brush.Tolerance),
	}
}

// LoadScript reads a list of steps from a YAML file of the form
//
//	steps:
//	  - {op: down, x: 10, y: 10}
//	  - {op: move, x: 20, y: 10}
//	  - {op: up}
//	  - {op: color, value: navy}
func LoadScript(path string) ([]testcases.Step, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	var steps []testcases.Step
	if err := k.Unmarshal("steps", &steps); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("script %s: no steps", path)
	}
	return steps, nil
}
