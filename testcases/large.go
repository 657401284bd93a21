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

package testcases

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility"
)

var largeCases = []TestCase{
	{
		Name:    "pillars",
		Bounds:  square100,
		Edges:   pillars(10, 2),
		Origin:  pt(55.3, 54.6),
		Visible: []vec.Vec2{pt(57, 57), pt(55, 95), pt(95, 55)},
		Hidden:  []vec.Vec2{pt(66, 65), pt(44, 45)},
	},
	{
		Name:   "pillars_cone",
		Bounds: square100,
		Edges:  pillars(10, 2),
		Origin: pt(55.3, 54.6),
		Config: config(func(cfg *visibility.Config) {
			cfg.Angle = 120
			cfg.Radius = 40
		}),
		Visible: []vec.Vec2{pt(55, 70)},
		Hidden:  []vec.Vec2{pt(55, 45), pt(55, 98)},
	},
	{
		Name:    "maze",
		Bounds:  rect.Rect{URx: 400, URy: 300},
		Edges:   maze(400, 300, 20),
		Origin:  pt(210, 150),
		Visible: []vec.Vec2{pt(210, 155)},
	},
}

// pillars returns square pillars of the given size, placed on a grid with
// the given spacing over the square 0 <= x, y <= 100.
func pillars(spacing, size float64) []visibility.Edge {
	var res []visibility.Edge
	for y := spacing; y < 100; y += spacing {
		for x := spacing; x < 100; x += spacing {
			prefix := fmt.Sprintf("p%g_%g_", x, y)
			res = append(res, box(prefix, x, y, x+size, y+size)...)
		}
	}
	return res
}

// maze returns a deterministic arrangement of wall segments on a grid with
// the given cell size.  Each grid cell contributes one wall, alternating
// between horizontal and vertical in a pattern which leaves gaps between
// neighbouring walls.
func maze(width, height, cell float64) []visibility.Edge {
	var res []visibility.Edge
	seed := uint32(1)
	for y := cell; y < height; y += cell {
		for x := cell; x < width; x += cell {
			// linear congruential generator, for a fixed pattern
			seed = seed*1664525 + 1013904223
			id := visibility.EdgeID(fmt.Sprintf("m%g_%g", x, y))
			half := cell * 0.4
			if seed>>31 == 0 {
				res = append(res, wall(id, x-half, y, x+half, y))
			} else {
				res = append(res, wall(id, x, y-half, x, y+half))
			}
		}
	}
	return res
}
