// seehuhn.de/go/visibility - visibility polygons for 2D scenes
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

// Command viewer shows the visible region of a source which follows the
// mouse.
//
// The scene is read from a YAML scene file, see package scenefile.
// Without a scene file, a built-in maze is shown.  Areas which have been
// seen before are remembered and drawn darker than the current view.
//
// Keys:
//
//	C           cycle through the channels
//	V           toggle the cone of the source
//	Left/Right  turn the cone
//	F           forget the explored area
//	Escape      quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/scenefile"
	"seehuhn.de/go/visibility/testcases"
)

func main() {
	sceneFile := flag.String("scene", "", "scene file (YAML)")
	sourceName := flag.String("source", "", "name of the source to use")
	scale := flag.Float64("scale", 2, "screen pixels per scene unit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	visibility.SetLogger(logger)

	sc, cfg, err := load(*sceneFile, *sourceName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g := newGame(sc, cfg, *scale)
	b := sc.Bounds()
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(fmt.Sprintf("visibility: %gx%g, %d edges", b.URx-b.LLx, b.URy-b.LLy, sc.Len()))
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("viewer failed", "error", err)
		os.Exit(1)
	}
}

// load returns the scene and source configuration to show.
func load(fname, source string) (*visibility.Scene, *visibility.Config, error) {
	if fname == "" {
		tc := testcases.All["large"][2]
		sc, err := tc.Scene()
		return sc, visibility.DefaultConfig(), err
	}

	f, err := scenefile.Load(fname)
	if err != nil {
		return nil, nil, err
	}
	sc, err := f.Scene()
	if err != nil {
		return nil, nil, err
	}

	var src *scenefile.Source
	switch {
	case source != "":
		var ok bool
		src, ok = f.Source(source)
		if !ok {
			return nil, nil, fmt.Errorf("%s: no source %q", fname, source)
		}
	case len(f.Sources) > 0:
		src = &f.Sources[0]
	default:
		return sc, visibility.DefaultConfig(), nil
	}
	cfg, err := src.Config()
	return sc, cfg, err
}
