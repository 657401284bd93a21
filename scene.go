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
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
	"seehuhn.de/go/visibility/quadtree"
)

// Errors returned when modifying a Scene.
var (
	ErrDuplicateEdge = errors.New("duplicate edge ID")
	ErrUnknownEdge   = errors.New("unknown edge")
)

// Scene holds the edges of a 2D scene together with the playable bounds.
// All computations read their edges from a Scene.
//
// Edges are indexed in a quadtree, and every edge records where it
// crosses other edges.  A Scene is not safe for concurrent use; this
// includes concurrent computations, since queries of the index update
// internal state.
type Scene struct {
	bounds rect.Rect
	index  *quadtree.Tree[*Edge]
	edges  map[EdgeID]*Edge
}

// NewScene returns an empty scene with the given bounds.
func NewScene(bounds rect.Rect) *Scene {
	return &Scene{
		bounds: bounds,
		index:  quadtree.New[*Edge](bounds),
		edges:  make(map[EdgeID]*Edge),
	}
}

// Bounds returns the playable area of the scene.
func (s *Scene) Bounds() rect.Rect {
	return s.bounds
}

// SetBounds changes the playable area and rebuilds the edge index.
func (s *Scene) SetBounds(b rect.Rect) {
	s.bounds = b
	s.index.Rebuild(b)
}

// Len returns the number of edges in the scene.
func (s *Scene) Len() int {
	return len(s.edges)
}

// Edge returns the edge with the given ID.
func (s *Scene) Edge(id EdgeID) (*Edge, bool) {
	e, ok := s.edges[id]
	return e, ok
}

// Edges returns all edges, ordered by ID.
func (s *Scene) Edges() []*Edge {
	res := make([]*Edge, 0, len(s.edges))
	for _, e := range s.edges {
		res = append(res, e)
	}
	slices.SortFunc(res, func(a, b *Edge) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return res
}

// AddEdge inserts e into the scene and records its crossings with the
// edges already present.  The scene keeps a reference to e.
func (s *Scene) AddEdge(e *Edge) error {
	if _, dup := s.edges[e.ID]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateEdge, e.ID)
	}
	s.edges[e.ID] = e
	e.intersections = e.intersections[:0]
	s.link(e)
	s.index.Insert(e, e.Bounds())
	return nil
}

// RemoveEdge deletes the edge with the given ID from the scene.
func (s *Scene) RemoveEdge(id EdgeID) error {
	e, ok := s.edges[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEdge, id)
	}
	s.unlink(e)
	s.index.Remove(e)
	delete(s.edges, id)
	return nil
}

// UpdateEdge moves the edge with the given ID to new endpoints.
func (s *Scene) UpdateEdge(id EdgeID, a, b vec.Vec2) error {
	e, ok := s.edges[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEdge, id)
	}
	s.unlink(e)
	e.A, e.B = a, b
	s.index.Update(e, e.Bounds())
	s.link(e)
	return nil
}

// reach returns a distance which is larger than the distance between any
// two points of the scene.
func (s *Scene) reach() float64 {
	b := s.bounds
	return 2*math.Hypot(b.URx-b.LLx, b.URy-b.LLy) + 1
}

// query appends the edges overlapping r which pass the test to dst.
func (s *Scene) query(dst []*Edge, r rect.Rect, test func(*Edge, rect.Rect) bool) []*Edge {
	return s.index.AppendQuery(dst, r, test)
}

// link records the crossings between e and all other edges.
func (s *Scene) link(e *Edge) {
	for _, o := range s.index.Query(e.Bounds(), nil) {
		if o == e {
			continue
		}
		p, ok := crossing(e, o)
		if !ok {
			continue
		}
		e.intersections = append(e.intersections, Intersection{Other: o.ID, Point: p})
		o.intersections = append(o.intersections, Intersection{Other: e.ID, Point: p})
	}
}

// unlink removes all crossings involving e.
func (s *Scene) unlink(e *Edge) {
	for _, x := range e.intersections {
		o, ok := s.edges[x.Other]
		if !ok {
			continue
		}
		o.intersections = slices.DeleteFunc(o.intersections, func(y Intersection) bool {
			return y.Other == e.ID
		})
	}
	e.intersections = e.intersections[:0]
}

// crossing returns the point where two edges cross.  Edges which share
// an endpoint are joined through that endpoint and need no crossing.
func crossing(e, o *Edge) (vec.Vec2, bool) {
	if e.A == o.A || e.A == o.B || e.B == o.A || e.B == o.B {
		return vec.Vec2{}, false
	}
	p, _, ok := plane.SegmentIntersection(e.A, e.B, o.A, o.B)
	return p, ok
}
