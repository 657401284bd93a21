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

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// rayPoint is a stop along a ray cast from the origin: either a vertex of
// the current group, or a point where the ray crosses the interior of an
// active edge.
type rayPoint struct {
	p       vec.Vec2
	dist2   float64
	vertex  int32 // -1 for crossings
	limited bool
}

// raySide tracks one side of a ray while walking outwards.
type raySide struct {
	limited bool
	blocked bool
	stop    vec.Vec2
}

// pass records an obstacle.  A Limited obstacle is passed once, the
// second one blocks.
func (r *raySide) pass(p vec.Vec2, limited bool) {
	if limited && !r.limited {
		r.limited = true
		return
	}
	r.blocked = true
	r.stop = p
}

// vertex records a vertex with the given flags on this side.
func (r *raySide) vertex(p vec.Vec2, limiting, blocking bool) {
	switch {
	case blocking:
		r.blocked = true
		r.stop = p
	case limiting:
		r.pass(p, true)
	}
}

// castRay walks outwards along the ray through a group of collinear
// vertices, and adds the points where the polygon boundary meets the ray
// on its counter-clockwise and clockwise side.
func (s *Sweep) castRay(group []int32) {
	first := &s.vertices[group[0]]
	end := s.rayEnd(first.p)

	s.ray = s.ray[:0]
	for _, vi := range group {
		v := &s.vertices[vi]
		s.ray = append(s.ray, rayPoint{p: v.p, dist2: v.dist2, vertex: vi})
	}
	for _, ei := range s.active {
		e := &s.edges[ei]
		if e.mark == s.mark {
			continue
		}
		p, _, ok := plane.SegmentIntersection(s.origin, end, e.a, e.b)
		if !ok {
			continue
		}
		p = e.snap(p)
		s.ray = append(s.ray, rayPoint{
			p:       p,
			dist2:   plane.Dist2(s.origin, p),
			vertex:  -1,
			limited: e.level == Limited,
		})
	}
	slices.SortFunc(s.ray, func(a, b rayPoint) int {
		if c := cmp.Compare(a.dist2, b.dist2); c != 0 {
			return c
		}
		return cmp.Compare(a.vertex, b.vertex)
	})

	var ccw, cw raySide
	for _, rp := range s.ray {
		if rp.vertex < 0 {
			if !ccw.blocked {
				ccw.pass(rp.p, rp.limited)
			}
			if !cw.blocked {
				cw.pass(rp.p, rp.limited)
			}
		} else {
			v := &s.vertices[rp.vertex]
			if !ccw.blocked {
				ccw.vertex(v.p, v.limitingCCW, v.blockingCCW)
			}
			if !cw.blocked {
				cw.vertex(v.p, v.limitingCW, v.blockingCW)
			}
		}
		if ccw.blocked && cw.blocked {
			break
		}
	}
	if !ccw.blocked {
		ccw.stop = end
	}
	if !cw.blocked {
		cw.stop = end
	}

	s.addPoint(ccw.stop)
	if cw.stop != ccw.stop {
		s.addPoint(cw.stop)
	}
}
