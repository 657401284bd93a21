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
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/clip"
	"seehuhn.de/go/visibility/internal/plane"
)

// sweepEdge is the working copy of an edge taking part in a sweep.
// The endpoints are snapped to the integer grid and oriented so that b
// lies clockwise of a, as seen from the origin.
type sweepEdge struct {
	src    *Edge // nil for the sides of the bounding box
	a, b   vec.Vec2
	va, vb int32
	level  Level

	active int32 // position in Sweep.active, or -1
	mark   int
}

// vertex is a point of the edge graph.  Edges listed in cw continue
// clockwise from the vertex, edges listed in ccw continue counter-clockwise.
// An edge passing through a vertex is listed in both.
type vertex struct {
	key   plane.Key
	p     vec.Vec2
	angle float64
	dist2 float64

	cw, ccw []int32

	level                   Level
	limitingCW, limitingCCW bool
	blockingCW, blockingCCW bool
	synthetic, visited      bool
}

// includeEdge decides whether a scene edge takes part in the sweep.
func (s *Sweep) includeEdge(e *Edge, _ rect.Rect) bool {
	cfg := s.cfg

	minPri, ok := cfg.minPriority(e.Type)
	if !ok || e.Priority < minPri {
		return false
	}
	for _, sh := range s.shapes {
		if !sh.IncludesSegment(e.A, e.B) {
			return false
		}
	}

	level := e.Levels[cfg.Channel]
	if level == None {
		return false
	}

	side := e.side(s.origin)
	if side == Both {
		return false
	}
	if e.Direction != Both && cfg.DirectionMode != DirectionBoth {
		blocks := e.Direction
		if cfg.DirectionMode == DirectionReversed {
			blocks = opposite(blocks)
		}
		if side != blocks {
			return false
		}
	}

	if level.IsThreshold() && s.mode != thresholdOff {
		th := e.Thresholds[cfg.Channel]
		if thresholdApplies(s.origin, s.cfg.ExternalRadius, e, level, th) {
			if !th.Attenuation || s.mode == thresholdRelaxed {
				return false
			}
		}
	}

	if e.Height != nil && !e.Height.Contains(cfg.Elevation) {
		return false
	}

	return plane.SegmentTouchesRect(e.A, e.B, s.bbox)
}

func opposite(d Direction) Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// thresholdApplies reports whether a source at origin, with the given
// external radius, lies inside the band in which a threshold edge becomes
// transparent.
func thresholdApplies(origin vec.Vec2, ext float64, e *Edge, level Level, th Threshold) bool {
	if th.Distance <= 0 {
		return false
	}
	d := plane.Dist(origin, plane.ClosestPoint(origin, e.A, e.B))
	if level == Proximity {
		return max(d-ext, 0) < th.Distance
	}
	return d+ext > th.Distance
}

// identifyEdges selects the edges taking part in the sweep and adds the
// sides of the bounding box.
func (s *Sweep) identifyEdges() {
	s.candidates = s.scene.query(s.candidates[:0], s.bbox, s.includeEdge)
	for _, e := range s.candidates {
		a := plane.KeyOf(e.A).Vec()
		b := plane.KeyOf(e.B).Vec()
		o := plane.Orient(s.origin, a, b)
		if o == 0 {
			continue
		}
		if o < 0 {
			a, b = b, a
		}
		s.byID[e.ID] = int32(len(s.edges))
		s.edges = append(s.edges, sweepEdge{
			src:    e,
			a:      a,
			b:      b,
			level:  e.Levels[s.cfg.Channel],
			active: -1,
		})
	}

	c := plane.Corners(s.bbox)
	for i := range c {
		s.edges = append(s.edges, sweepEdge{
			a:      c[i],
			b:      c[(i+1)%len(c)],
			level:  Normal,
			active: -1,
		})
	}
}

// identifyVertices builds the vertices of the edge graph: the endpoints
// of all edges, and the points where edges cross.
func (s *Sweep) identifyVertices() {
	for i := range s.edges {
		e := &s.edges[i]
		va := s.vertexAt(plane.KeyOf(e.a), e.a, false)
		vb := s.vertexAt(plane.KeyOf(e.b), e.b, false)
		e = &s.edges[i]
		e.va, e.vb = va, vb
		s.attach(va, int32(i), true)
		s.attach(vb, int32(i), false)
	}

	// The scene lists which edges cross.  The crossing points are
	// recomputed from the snapped endpoints, so that every crossing lies
	// on the segments used by the sweep.
	first := int32(len(s.edges) - 4)
	for i := range first {
		src := s.edges[i].src
		a, b := s.edges[i].a, s.edges[i].b
		for _, x := range src.intersections {
			j, ok := s.byID[x.Other]
			if !ok || j <= i {
				continue
			}
			p, _, ok := plane.SegmentIntersection(a, b, s.edges[j].a, s.edges[j].b)
			if ok {
				s.addCrossing(i, j, p)
			}
		}
		for j := first; j < int32(len(s.edges)); j++ {
			p, _, ok := plane.SegmentIntersection(a, b, s.edges[j].a, s.edges[j].b)
			if ok {
				s.addCrossing(i, j, s.edges[j].snap(p))
			}
		}
	}
}

// addCrossing adds a vertex where edges i and j cross at p.  An edge is
// not attached to a crossing which coincides with one of its own
// endpoints.  If the crossing rounds to an existing vertex which does not
// lie on an edge, that edge is not attached either.
func (s *Sweep) addCrossing(i, j int32, p vec.Vec2) {
	vi := s.vertexAt(plane.KeyOf(p), p, true)
	q := s.vertices[vi].p
	for _, ei := range [2]int32{i, j} {
		e := &s.edges[ei]
		if e.va == vi || e.vb == vi {
			continue
		}
		if plane.Dist(q, plane.ClosestPoint(q, e.a, e.b)) > clip.Epsilon {
			continue
		}
		s.attach(vi, ei, true)
		s.attach(vi, ei, false)
	}
}

// snap moves a point found on a side of the bounding box exactly onto
// that side.
func (e *sweepEdge) snap(p vec.Vec2) vec.Vec2 {
	if e.src != nil {
		return p
	}
	if e.a.X == e.b.X {
		p.X = e.a.X
	} else {
		p.Y = e.a.Y
	}
	return p
}

// vertexAt returns the vertex with the given key, creating it if needed.
func (s *Sweep) vertexAt(key plane.Key, p vec.Vec2, synthetic bool) int32 {
	if vi, ok := s.keys[key]; ok {
		return vi
	}

	n := len(s.vertices)
	if n < cap(s.vertices) {
		s.vertices = s.vertices[:n+1]
	} else {
		s.vertices = append(s.vertices, vertex{})
	}
	v := &s.vertices[n]
	*v = vertex{
		key:       key,
		p:         p,
		angle:     plane.SweepAngle(s.origin, p),
		dist2:     plane.Dist2(s.origin, p),
		cw:        v.cw[:0],
		ccw:       v.ccw[:0],
		synthetic: synthetic,
	}
	vi := int32(n)
	s.keys[key] = vi
	return vi
}

// attach records that edge ei continues from vertex vi in the clockwise
// (cw=true) or counter-clockwise direction.
func (s *Sweep) attach(vi, ei int32, cw bool) {
	v := &s.vertices[vi]
	list := &v.ccw
	if cw {
		list = &v.cw
	}
	if slices.Contains(*list, ei) {
		return
	}
	*list = append(*list, ei)
	v.level = max(v.level, s.edges[ei].level)
	v.limitingCW, v.blockingCW = s.sideFlags(v.cw)
	v.limitingCCW, v.blockingCCW = s.sideFlags(v.ccw)
}

// sideFlags classifies one side of a vertex.  A single Limited edge
// limits, any other edge blocks, and several edges always block.
func (s *Sweep) sideFlags(list []int32) (limiting, blocking bool) {
	switch len(list) {
	case 0:
		return false, false
	case 1:
		lim := s.edges[list[0]].level == Limited
		return lim, !lim
	default:
		return false, true
	}
}

// direction returns the unit vector pointing from the origin to p.
func (s *Sweep) direction(p vec.Vec2) vec.Vec2 {
	d := p.Sub(s.origin)
	l := d.Length()
	if l == 0 {
		return vec.Vec2{X: -1}
	}
	return d.Mul(1 / l)
}

// rayEnd returns the end point of the ray from the origin through p.
func (s *Sweep) rayEnd(p vec.Vec2) vec.Vec2 {
	return s.origin.Add(s.direction(p).Mul(s.rayDist))
}
