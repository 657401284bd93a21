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
	"cmp"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// Collision is a point where a segment meets one or more edges.
type Collision struct {
	// Point is the location of the collision.
	Point vec.Vec2

	// T is the position of the collision along the segment, with 0 at the
	// origin and 1 at the destination.
	T float64

	// Edges lists the edges meeting at the point.
	Edges []*Edge

	// Limited is true if all edges at the point are Limited for the
	// channel in use.
	Limited bool
}

// collisionMode selects how much work a collision test does.
type collisionMode uint8

const (
	collisionAny collisionMode = iota
	collisionAll
	collisionClosest
)

// HasCollision reports whether the segment from origin to dest is
// blocked.  The radius, the cone and the shapes of cfg are ignored.
func (s *Sweep) HasCollision(sc *Scene, origin, dest vec.Vec2, cfg *Config) (bool, error) {
	res, err := s.collide(sc, origin, dest, cfg, collisionAny)
	return len(res) > 0, err
}

// Collisions returns all points where the segment from origin to dest is
// blocked, ordered by distance from the origin.  The radius, the cone and
// the shapes of cfg are ignored.
func (s *Sweep) Collisions(sc *Scene, origin, dest vec.Vec2, cfg *Config) ([]Collision, error) {
	return s.collide(sc, origin, dest, cfg, collisionAll)
}

// ClosestCollision returns the first point where the segment from origin
// to dest is blocked.  The radius, the cone and the shapes of cfg are
// ignored.
func (s *Sweep) ClosestCollision(sc *Scene, origin, dest vec.Vec2, cfg *Config) (Collision, bool, error) {
	res, err := s.collide(sc, origin, dest, cfg, collisionClosest)
	if err != nil || len(res) == 0 {
		return Collision{}, false, err
	}
	return res[0], true, nil
}

// HasCollision is a shortcut for NewSweep().HasCollision.
func HasCollision(sc *Scene, origin, dest vec.Vec2, cfg *Config) (bool, error) {
	return NewSweep().HasCollision(sc, origin, dest, cfg)
}

func (s *Sweep) collide(sc *Scene, origin, dest vec.Vec2, cfg *Config, mode collisionMode) ([]Collision, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s.reset(sc, origin, cfg, thresholdOff)
	if cfg.UseThreshold {
		s.mode = thresholdEnforced
	}
	b := plane.SegmentBounds(origin, dest)
	s.bbox = rect.Rect{LLx: b.LLx - 1, LLy: b.LLy - 1, URx: b.URx + 1, URy: b.URy + 1}
	s.candidates = sc.query(s.candidates[:0], s.bbox, s.includeEdge)

	type hit struct {
		key     plane.Key
		p       vec.Vec2
		t       float64
		edge    *Edge
		limited bool
	}
	var hits []hit
	for _, e := range s.candidates {
		p, t, ok := plane.SegmentIntersection(origin, dest, e.A, e.B)
		if !ok || t <= 0 {
			continue
		}
		limited := e.Levels[cfg.Channel] == Limited
		if mode == collisionAny && (!limited || len(hits) > 0) {
			return []Collision{{Point: p, T: t, Edges: []*Edge{e}, Limited: limited}}, nil
		}
		hits = append(hits, hit{key: plane.KeyOf(p), p: p, t: t, edge: e, limited: limited})
	}
	if mode == collisionAny {
		return nil, nil
	}

	slices.SortStableFunc(hits, func(a, b hit) int {
		return cmp.Compare(a.t, b.t)
	})
	var res []Collision
	index := make(map[plane.Key]int, len(hits))
	for _, h := range hits {
		if i, ok := index[h.key]; ok {
			c := &res[i]
			c.Edges = append(c.Edges, h.edge)
			c.Limited = c.Limited && h.limited
			continue
		}
		index[h.key] = len(res)
		res = append(res, Collision{
			Point:   h.p,
			T:       h.t,
			Edges:   []*Edge{h.edge},
			Limited: h.limited,
		})
	}

	if len(res) > 0 && res[0].Limited {
		res = res[1:]
	}
	if mode == collisionClosest && len(res) > 1 {
		res = res[:1]
	}
	return res, nil
}
