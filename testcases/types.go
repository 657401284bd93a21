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

// Package testcases holds named visibility scenarios.  The scenarios are
// used by the tests of the visibility package, and by the commands which
// plot and export them.
package testcases

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility"
)

// TestCase defines a single visibility computation.
type TestCase struct {
	Name   string    // lowercase a-z, 0-9 and _ only
	Bounds rect.Rect // scene bounds
	Edges  []visibility.Edge
	Origin vec.Vec2

	// Config is used for the computation.  Nil means
	// visibility.DefaultConfig().  The config must not be modified.
	Config *visibility.Config

	// Visible lists points which must lie inside the result.
	Visible []vec.Vec2

	// Hidden lists points which must lie outside the result.
	Hidden []vec.Vec2
}

// Scene builds a new scene containing copies of the edges of tc.
func (tc *TestCase) Scene() (*visibility.Scene, error) {
	sc := visibility.NewScene(tc.Bounds)
	for i := range tc.Edges {
		e := tc.Edges[i]
		if err := sc.AddEdge(&e); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// wall returns a wall from (x0, y0) to (x1, y1) which blocks all channels.
func wall(id visibility.EdgeID, x0, y0, x1, y1 float64) visibility.Edge {
	return *visibility.NewWall(id, pt(x0, y0), pt(x1, y1))
}

// leveled returns e with the given level on all channels.
func leveled(e visibility.Edge, level visibility.Level) visibility.Edge {
	for c := range e.Levels {
		e.Levels[c] = level
	}
	return e
}

// box returns four walls forming the outline of a rectangle, clockwise
// on screen.
func box(prefix string, x0, y0, x1, y1 float64) []visibility.Edge {
	return []visibility.Edge{
		wall(visibility.EdgeID(prefix+"n"), x0, y0, x1, y0),
		wall(visibility.EdgeID(prefix+"e"), x1, y0, x1, y1),
		wall(visibility.EdgeID(prefix+"s"), x1, y1, x0, y1),
		wall(visibility.EdgeID(prefix+"w"), x0, y1, x0, y0),
	}
}

// config returns visibility.DefaultConfig(), modified by fn.
func config(fn func(cfg *visibility.Config)) *visibility.Config {
	cfg := visibility.DefaultConfig()
	fn(cfg)
	return cfg
}

// square100 is the bounds used by most scenarios.
var square100 = rect.Rect{URx: 100, URy: 100}
