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

// Package clip intersects and unites simple polygons with shapes whose
// boundary is known exactly, such as circles, rectangles and circular
// sectors.
//
// Curved boundaries are never approximated while searching for
// intersections.  Vertices of the curved boundary are only introduced
// where the output follows the shape, between two intersection points.
package clip

import (
	"errors"
	"fmt"
	"slices"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// ErrInvalidPolygon is returned when a subject polygon has fewer than
// three points or does not run clockwise.
var ErrInvalidPolygon = errors.New("invalid subject polygon")

// Op selects the boolean operation performed by [Clip].
type Op int

// These are the supported operations.
const (
	Intersect Op = iota
	Union
)

func (op Op) String() string {
	switch op {
	case Intersect:
		return "intersect"
	case Union:
		return "union"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// state classifies a piece of the subject boundary relative to the shape.
type state uint8

const (
	outside state = iota
	inside
	boundary
)

// node is a vertex of the subject, after all boundary intersections have
// been inserted.
type node struct {
	p  vec.Vec2
	on bool
}

// crossing is a point where the subject boundary enters or leaves the
// shape.  The leading points are the subject vertices between the
// previous crossing and this one.
type crossing struct {
	p       vec.Vec2
	exit    bool
	leading []vec.Vec2
}

// Clip combines the subject polygon with the shape s.
//
// The subject must be a simple polygon running clockwise on screen, i.e.
// with positive signed area in y-down coordinates.  The result has at
// most one loop, except for a union of disjoint regions, where both the
// subject and the shape outline are returned.  An empty result means the
// intersection is empty.
func Clip(subject []vec.Vec2, s Shape, op Op) ([][]vec.Vec2, error) {
	if err := checkSubject(subject); err != nil {
		return nil, err
	}
	if op != Intersect && op != Union {
		return nil, fmt.Errorf("clip: unsupported operation %s", op)
	}

	nodes := augment(subject, s)
	m := len(nodes)
	states := make([]state, m)
	start := -1
	for j := range m {
		states[j] = classify(s, nodes[j], nodes[(j+1)%m])
		if start < 0 && states[j] != boundary {
			start = j
		}
	}
	if start < 0 {
		// The subject runs along the shape boundary everywhere.
		return envelop(subject, s, op, inside), nil
	}

	prev := states[start]
	var crossings []crossing
	var leading, run []vec.Vec2
	for i := 1; i <= m; i++ {
		j := (start + i) % m
		nd := nodes[j]
		next := states[j]
		if !nd.on && next == prev {
			leading = append(leading, nd.p)
			continue
		}

		run = append(run, nd.p)
		if next == boundary {
			continue
		}
		last := len(run) - 1
		switch {
		case next == prev:
			// touching without crossing
			leading = append(leading, run...)
		case next == inside:
			leading = append(leading, run[:last]...)
			crossings = append(crossings, crossing{p: run[last], leading: leading})
			leading = nil
		default:
			crossings = append(crossings, crossing{p: run[0], exit: true, leading: leading})
			leading = slices.Clone(run[1:])
		}
		run = run[:0]
		prev = next
	}

	if len(crossings) == 0 {
		return envelop(subject, s, op, prev), nil
	}
	crossings[0].leading = append(leading, crossings[0].leading...)

	traceSubjectAtExit := op == Intersect
	k := len(crossings)
	var out []vec.Vec2
	for i, c := range crossings {
		if c.exit == traceSubjectAtExit {
			out = append(out, c.leading...)
		} else {
			from := crossings[(i+k-1)%k].p
			out = append(out, s.PointsBetween(from, c.p)...)
		}
		out = append(out, c.p)
	}
	if len(out) < 3 {
		return nil, nil
	}
	return [][]vec.Vec2{out}, nil
}

func checkSubject(pts []vec.Vec2) error {
	if len(pts) < 3 {
		return fmt.Errorf("%w: %d points", ErrInvalidPolygon, len(pts))
	}
	if area := plane.SignedArea(pts); !(area > 0) {
		return fmt.Errorf("%w: signed area %g", ErrInvalidPolygon, area)
	}
	return nil
}

// augment returns the subject vertices with all boundary intersections
// inserted in order.  Subject vertices which are within Epsilon of an
// intersection are marked as boundary points instead.
func augment(subject []vec.Vec2, s Shape) []node {
	n := len(subject)
	on := make([]bool, n)
	for i, a := range subject {
		on[i] = s.PointIsOn(a)
	}
	hits := make([][]vec.Vec2, n)
	for i, a := range subject {
		j := (i + 1) % n
		b := subject[j]
		for _, q := range s.SegmentIntersections(a, b) {
			switch {
			case near(q, a):
				on[i] = true
			case near(q, b):
				on[j] = true
			default:
				hits[i] = append(hits[i], q)
			}
		}
	}

	nodes := make([]node, 0, n+8)
	for i, a := range subject {
		nodes = append(nodes, node{p: a, on: on[i]})
		for _, q := range hits[i] {
			nodes = append(nodes, node{p: q, on: true})
		}
	}
	return nodes
}

func near(a, b vec.Vec2) bool {
	return plane.Dist2(a, b) <= Epsilon*Epsilon
}

// classify decides whether the subject segment from a to b lies inside
// the shape, outside, or along the boundary.  Since all intersections
// have been inserted, the segment does not cross the boundary.
func classify(s Shape, a, b node) state {
	var probe vec.Vec2
	switch {
	case !a.on:
		probe = a.p
	case !b.on:
		probe = b.p
	default:
		probe = a.p.Add(b.p).Mul(0.5)
		if s.PointIsOn(probe) {
			return boundary
		}
	}
	if s.Contains(probe) {
		return inside
	}
	return outside
}

// envelop handles the case where the subject boundary does not cross the
// shape boundary.  Where is the state of the subject boundary.
func envelop(subject []vec.Vec2, s Shape, op Op, where state) [][]vec.Vec2 {
	switch {
	case where == inside:
		if op == Union {
			return [][]vec.Vec2{s.Points()}
		}
		return [][]vec.Vec2{slices.Clone(subject)}
	case plane.InPolygon(subject, s.Interior()):
		if op == Union {
			return [][]vec.Vec2{slices.Clone(subject)}
		}
		return [][]vec.Vec2{s.Points()}
	default:
		if op == Union {
			return [][]vec.Vec2{slices.Clone(subject), s.Points()}
		}
		return nil
	}
}
