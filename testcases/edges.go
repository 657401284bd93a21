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

var edgeCases = []TestCase{
	{
		Name:    "limited_once",
		Bounds:  square100,
		Edges:   []visibility.Edge{leveled(wall("a", 60, 30, 60, 70), visibility.Limited)},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(55, 50), pt(80, 50), pt(99, 60)},
	},
	{
		Name:   "limited_twice",
		Bounds: square100,
		Edges: []visibility.Edge{
			leveled(wall("a", 60, 10, 60, 90), visibility.Limited),
			leveled(wall("b", 70, 10, 70, 90), visibility.Limited),
		},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(65, 50), pt(65, 60)},
		Hidden:  []vec.Vec2{pt(80, 50), pt(90, 40)},
	},
	{
		Name:   "limited_then_normal",
		Bounds: square100,
		Edges: []visibility.Edge{
			leveled(wall("a", 56, 10, 56, 90), visibility.Limited),
			wall("b", 64, 10, 64, 90),
		},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(60, 50)},
		Hidden:  []vec.Vec2{pt(70, 50)},
	},
	{
		// the origin lies on the transparent side of the wall
		Name:    "one_way_open",
		Bounds:  square100,
		Edges:   []visibility.Edge{oneWay(wall("a", 60, 10, 60, 90), visibility.Left)},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(80, 50)},
	},
	{
		Name:    "one_way_closed",
		Bounds:  square100,
		Edges:   []visibility.Edge{oneWay(wall("a", 60, 10, 60, 90), visibility.Right)},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(55, 50)},
		Hidden:  []vec.Vec2{pt(80, 50)},
	},
	{
		Name:    "one_way_reversed",
		Bounds:  square100,
		Edges:   []visibility.Edge{oneWay(wall("a", 60, 10, 60, 90), visibility.Left)},
		Origin:  pt(50, 50),
		Config:  config(func(cfg *visibility.Config) { cfg.DirectionMode = visibility.DirectionReversed }),
		Visible: []vec.Vec2{pt(55, 50)},
		Hidden:  []vec.Vec2{pt(80, 50)},
	},
	{
		Name:    "darkness_ignored",
		Bounds:  square100,
		Edges:   []visibility.Edge{darkness(wall("a", 60, 10, 60, 90))},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(80, 50)},
	},
	{
		Name:   "darkness_enabled",
		Bounds: square100,
		Edges:  []visibility.Edge{darkness(wall("a", 60, 10, 60, 90))},
		Origin: pt(50, 50),
		Config: config(func(cfg *visibility.Config) {
			cfg.EdgeTypes[visibility.Darkness] = 0
		}),
		Hidden: []vec.Vec2{pt(80, 50)},
	},
	{
		Name:    "proximity_near",
		Bounds:  square100,
		Edges:   []visibility.Edge{threshold(wall("a", 60, 40, 60, 60), visibility.Proximity, 20)},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(80, 50)},
	},
	{
		Name:    "proximity_far",
		Bounds:  square100,
		Edges:   []visibility.Edge{threshold(wall("a", 60, 40, 60, 60), visibility.Proximity, 5)},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(55, 50)},
		Hidden:  []vec.Vec2{pt(80, 50)},
	},
	{
		Name:    "distance_far",
		Bounds:  square100,
		Edges:   []visibility.Edge{threshold(wall("a", 60, 40, 60, 60), visibility.Distance, 5)},
		Origin:  pt(50, 50),
		Visible: []vec.Vec2{pt(80, 50)},
	},
	{
		Name:   "threshold_disabled",
		Bounds: square100,
		Edges:  []visibility.Edge{threshold(wall("a", 60, 40, 60, 60), visibility.Proximity, 20)},
		Origin: pt(50, 50),
		Config: config(func(cfg *visibility.Config) { cfg.UseThreshold = false }),
		Hidden: []vec.Vec2{pt(80, 50)},
	},
	{
		Name:    "below_wall",
		Bounds:  square100,
		Edges:   []visibility.Edge{lowWall(wall("a", 60, 10, 60, 90), 5)},
		Origin:  pt(50, 50),
		Config:  config(func(cfg *visibility.Config) { cfg.Elevation = 10 }),
		Visible: []vec.Vec2{pt(80, 50)},
	},
	{
		Name:   "sound_passes",
		Bounds: square100,
		Edges: []visibility.Edge{
			soundproof(wall("a", 60, 10, 60, 90), false),
			soundproof(wall("b", 40, 10, 40, 90), true),
		},
		Origin:  pt(50, 50),
		Config:  config(func(cfg *visibility.Config) { cfg.Channel = visibility.Sound }),
		Visible: []vec.Vec2{pt(80, 50)},
		Hidden:  []vec.Vec2{pt(20, 50)},
	},
}

func oneWay(e visibility.Edge, d visibility.Direction) visibility.Edge {
	e.Direction = d
	return e
}

func darkness(e visibility.Edge) visibility.Edge {
	e.Type = visibility.Darkness
	return e
}

// threshold returns e with the given threshold level on all channels.
func threshold(e visibility.Edge, level visibility.Level, dist float64) visibility.Edge {
	e = leveled(e, level)
	for c := range e.Thresholds {
		e.Thresholds[c] = visibility.Threshold{Distance: dist}
	}
	return e
}

// lowWall limits e to elevations between 0 and top.
func lowWall(e visibility.Edge, top float64) visibility.Edge {
	e.Height = &visibility.Span{Bottom: 0, Top: top}
	return e
}

// soundproof sets whether e blocks sound.
func soundproof(e visibility.Edge, blocks bool) visibility.Edge {
	if blocks {
		e.Levels[visibility.Sound] = visibility.Normal
	} else {
		e.Levels[visibility.Sound] = visibility.None
	}
	return e
}
