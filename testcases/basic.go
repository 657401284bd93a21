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
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility"
)

var basicCases = []TestCase{
	{
		Name:    "empty",
		Bounds:  square100,
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(1, 1), pt(99, 99), pt(99, 1), pt(1, 99)},
	},
	{
		Name:    "single_wall",
		Bounds:  square100,
		Edges:   []visibility.Edge{wall("a", 60, 40, 60, 60)},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(55, 50), pt(80, 85), pt(10, 50)},
		Hidden:  []vec.Vec2{pt(80, 50), pt(99, 50)},
	},
	{
		Name:    "box_room",
		Bounds:  square100,
		Edges:   box("", 40, 40, 60, 60),
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(45, 45), pt(59, 59)},
		Hidden:  []vec.Vec2{pt(30, 50), pt(70, 50), pt(50, 90)},
	},
	{
		Name:   "crossing_walls",
		Bounds: square100,
		Edges: []visibility.Edge{
			wall("a", 60, 30, 80, 70),
			wall("b", 60, 70, 80, 30),
		},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(65, 50)},
		Hidden:  []vec.Vec2{pt(75, 50), pt(95, 50)},
	},
	{
		Name:   "corridor",
		Bounds: square100,
		Edges: []visibility.Edge{
			wall("n", 10, 45, 90, 45),
			wall("s", 90, 55, 10, 55),
		},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(15, 50), pt(85, 50), pt(98, 48)},
		Hidden:  []vec.Vec2{pt(50, 30), pt(50, 70), pt(5, 20)},
	},
}
