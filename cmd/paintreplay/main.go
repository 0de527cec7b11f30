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

// Command paintreplay replays recorded input on a drawing surface and
// stores the result as a PNG image.
//
// Usage:
//
//	paintreplay [-config file.yaml] -script gestures.yaml [-out dir]
//	paintreplay [-config file.yaml] -case stroke_zigzag [-out dir]
//	paintreplay -case all -out testdata/replay
//	paintreplay -list
//
// With -case all, every built-in case is written to its own
// subdirectory of the output directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"seehuhn.de/go/fingerpaint"
	"seehuhn.de/go/fingerpaint/export"
	"seehuhn.de/go/fingerpaint/testcases"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "paintreplay:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("paintreplay", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "YAML configuration `file`")
	scriptPath := flags.String("script", "", "YAML gesture script to replay")
	caseName := flags.String("case", "", "built-in case to replay, or \"all\"")
	outDir := flags.String("out", ".", "output `directory`")
	list := flags.Bool("list", false, "list the built-in cases and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *list {
		for _, name := range caseNames() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, stderr)

	switch {
	case *scriptPath != "" && *caseName != "":
		return errors.New("-script and -case are mutually exclusive")
	case *scriptPath != "":
		steps, err := LoadScript(*scriptPath)
		if err != nil {
			return err
		}
		s := fingerpaint.NewSurface(cfg.Options()...)
		s.Configure(cfg.Canvas.Width, cfg.Canvas.Height)
		if err := testcases.Apply(s, steps); err != nil {
			return fmt.Errorf("%s: %w", *scriptPath, err)
		}
		return save(logger, s, *outDir, filepath.Base(*scriptPath))
	case *caseName == "all":
		for _, name := range caseNames() {
			dir := filepath.Join(*outDir, name)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			if err := replayCase(logger, cfg, name, dir); err != nil {
				return err
			}
		}
		return nil
	case *caseName != "":
		return replayCase(logger, cfg, *caseName, *outDir)
	default:
		flags.Usage()
		return errors.New("one of -script, -case or -list is required")
	}
}

func replayCase(logger *slog.Logger, cfg *Config, name, dir string) error {
	tc, ok := testcases.Find(name)
	if !ok {
		return fmt.Errorf("unknown case %q", name)
	}
	s, err := tc.NewSurface(cfg.Options()...)
	if err != nil {
		return err
	}
	if len(s.Strokes()) != tc.Strokes {
		logger.Warn("unexpected stroke count",
			slog.String("case", name),
			slog.Int("got", len(s.Strokes())),
			slog.Int("want", tc.Strokes))
	}
	return save(logger, s, dir, name)
}

func save(logger *slog.Logger, s *fingerpaint.Surface, dir, source string) error {
	for i, st := range s.Strokes() {
		logger.Debug("stroke",
			slog.String("source", source),
			slog.Int("index", i),
			slog.String("id", st.ID),
			slog.String("color", st.Color.String()),
			slog.Float64("width", st.Width),
			slog.Int("commands", len(st.Path.Cmds)))
	}

	img := s.ExportRaster()
	name, err := export.WriteFile(dir, img)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	logger.Info("drawing exported",
		slog.String("source", source),
		slog.Int("strokes", len(s.Strokes())),
		slog.String("file", name),
		slog.String("type", export.MIMEType))
	return nil
}

func caseNames() []string {
	var names []string
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			names = append(names, category+"_"+tc.Name)
		}
	}
	return names
}

// newLogger returns a logger writing to w.  Level is one of "debug",
// "info", "warn" and "error"; unknown values select "info".  Format "json"
// selects JSON output, everything else plain text.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl == slog.LevelDebug}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
