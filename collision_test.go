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

package visibility

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestCollisions(t *testing.T) {
	type hit struct {
		x     float64
		edges int
	}
	cases := []struct {
		name  string
		edges []*Edge
		any   bool
		all   []hit
	}{
		{
			name: "none",
		},
		{
			name:  "single_limited",
			edges: []*Edge{wall("l1", pt(7, -5), pt(7, 5), Limited)},
			any:   false,
		},
		{
			name: "two_limited",
			edges: []*Edge{
				wall("l1", pt(7, -5), pt(7, 5), Limited),
				wall("l2", pt(9, -5), pt(9, 5), Limited),
			},
			any: true,
			all: []hit{{9, 1}},
		},
		{
			name: "normal_first",
			edges: []*Edge{
				wall("n", pt(5, -5), pt(5, 5), Normal),
				wall("l1", pt(7, -5), pt(7, 5), Limited),
			},
			any: true,
			all: []hit{{5, 1}, {7, 1}},
		},
		{
			name: "merged",
			edges: []*Edge{
				wall("n", pt(5, -5), pt(5, 5), Normal),
				wall("d", pt(3, -2), pt(7, 2), Normal),
			},
			any: true,
			all: []hit{{5, 2}},
		},
		{
			name: "other_channel",
			edges: []*Edge{
				func() *Edge {
					e := wall("n", pt(5, -5), pt(5, 5), Normal)
					e.Levels[Move] = None
					return e
				}(),
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sc := newScene(t, square(10), c.edges...)
			cfg := DefaultConfig()
			cfg.Channel = Move
			s := NewSweep()

			got, err := s.HasCollision(sc, pt(0, 0), pt(10, 0), cfg)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.any {
				t.Errorf("HasCollision = %t, want %t", got, c.any)
			}

			all, err := s.Collisions(sc, pt(0, 0), pt(10, 0), cfg)
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != len(c.all) {
				t.Fatalf("got %d collisions, want %d: %v", len(all), len(c.all), all)
			}
			for i, h := range c.all {
				if all[i].Point != pt(h.x, 0) || len(all[i].Edges) != h.edges {
					t.Errorf("collision %d: %v with %d edges, want (%g, 0) with %d",
						i, all[i].Point, len(all[i].Edges), h.x, h.edges)
				}
				if math.Abs(all[i].T-h.x/10) > 1e-12 {
					t.Errorf("collision %d: T = %g", i, all[i].T)
				}
			}

			first, ok, err := s.ClosestCollision(sc, pt(0, 0), pt(10, 0), cfg)
			if err != nil {
				t.Fatal(err)
			}
			if ok != (len(c.all) > 0) {
				t.Fatalf("ClosestCollision found=%t", ok)
			}
			if ok && first.Point != all[0].Point {
				t.Errorf("closest collision at %v, want %v", first.Point, all[0].Point)
			}
		})
	}
}

func TestCollisionAtDestination(t *testing.T) {
	sc := newScene(t, square(10), wall("n", pt(5, -5), pt(5, 5), Normal))
	hit, err := HasCollision(sc, pt(0, 0), pt(5, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("collision at the destination not reported")
	}
	hit, err = HasCollision(sc, pt(0, 0), pt(4.5, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("collision reported before the wall")
	}
}

func TestCollisionMatchesPolygon(t *testing.T) {
	sc := newScene(t, square(10),
		wall("a", pt(5, -20), pt(5, 20), Normal),
		wall("b", pt(-3, -8), pt(-3, -2), Limited),
		wall("c", pt(-6, -9), pt(-6, 9), Limited),
	)
	poly := compute(t, sc, pt(0, 0), nil)
	s := NewSweep()
	for _, p := range []vec.Vec2{pt(8, 0), pt(-8, -5), pt(-8, 5), pt(-4, -5), pt(3, 3)} {
		blocked, err := s.HasCollision(sc, pt(0, 0), p, nil)
		if err != nil {
			t.Fatal(err)
		}
		if blocked == poly.Contains(p) {
			t.Errorf("%v: blocked=%t, but visible=%t", p, blocked, poly.Contains(p))
		}
	}
}
