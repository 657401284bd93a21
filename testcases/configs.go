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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/clip"
)

var configCases = []TestCase{
	{
		Name:    "cone",
		Bounds:  square100,
		Origin:  pt(50, 50),
		Config:  config(func(cfg *visibility.Config) { cfg.Angle = 60 }),
		Visible: []vec.Vec2{pt(50, 70), pt(52, 95), pt(48, 95)},
		Hidden:  []vec.Vec2{pt(50, 30), pt(70, 52), pt(30, 52)},
	},
	{
		Name:   "cone_rotated",
		Bounds: square100,
		Origin: pt(50, 50),
		Config: config(func(cfg *visibility.Config) {
			cfg.Angle = 60
			cfg.Rotation = 180
		}),
		Visible: []vec.Vec2{pt(50, 30), pt(52, 5)},
		Hidden:  []vec.Vec2{pt(50, 70), pt(70, 48)},
	},
	{
		Name:   "cone_wide",
		Bounds: square100,
		Origin: pt(50, 50),
		Config: config(func(cfg *visibility.Config) {
			cfg.Angle = 270
			cfg.Rotation = 90
		}),
		Visible: []vec.Vec2{pt(20, 50), pt(50, 20), pt(50, 80)},
		Hidden:  []vec.Vec2{pt(80, 50)},
	},
	{
		Name:   "radius",
		Bounds: square100,
		Origin: pt(50, 50),
		Config: config(func(cfg *visibility.Config) {
			cfg.Radius = 20
			cfg.Density = 64
		}),
		Visible: []vec.Vec2{pt(60, 50), pt(40, 40)},
		Hidden:  []vec.Vec2{pt(75, 50), pt(50, 90), pt(66, 66)},
	},
	{
		Name:   "radius_and_wall",
		Bounds: square100,
		Edges:  []visibility.Edge{wall("a", 60, 10, 60, 90)},
		Origin: pt(50, 50),
		Config: config(func(cfg *visibility.Config) {
			cfg.Radius = 20
		}),
		Visible: []vec.Vec2{pt(55, 50), pt(50, 65), pt(35, 50)},
		Hidden:  []vec.Vec2{pt(65, 50), pt(50, 75)},
	},
	{
		Name:   "cone_in_room",
		Bounds: square100,
		Edges:  box("", 20, 20, 80, 80),
		Origin: pt(50, 50),
		Config: config(func(cfg *visibility.Config) {
			cfg.Angle = 90
			cfg.Rotation = 270
		}),
		Visible: []vec.Vec2{pt(75, 50), pt(70, 60)},
		Hidden:  []vec.Vec2{pt(90, 50), pt(30, 50), pt(50, 75)},
	},
	{
		Name:   "rectangle_shape",
		Bounds: square100,
		Origin: pt(50, 50),
		Config: config(func(cfg *visibility.Config) {
			cfg.Shapes = []clip.Shape{
				clip.NewRectangle(rect.Rect{LLx: 30, LLy: 30, URx: 70, URy: 70}),
			}
		}),
		Visible: []vec.Vec2{pt(35, 35), pt(65, 65)},
		Hidden:  []vec.Vec2{pt(20, 50), pt(80, 80)},
	},
}
