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
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// pruneDist2 is the squared distance below which a polygon point is
// considered redundant.
const pruneDist2 = 0.25 * 0.25

func (s *Sweep) addPoint(p vec.Vec2) {
	s.points = appendPruned(s.points, p)
}

// appendPruned appends p to pts.  Points which lie within 0.25 units of
// the line through their neighbours are removed first, repeatedly.
func appendPruned(pts []vec.Vec2, p vec.Vec2) []vec.Vec2 {
	for {
		n := len(pts)
		switch n {
		case 0:
			return append(pts, p)
		case 1:
			if plane.Dist2(pts[0], p) > pruneDist2 {
				return append(pts, p)
			}
			return pts
		}
		if offLine(pts[n-2], pts[n-1], p) >= pruneDist2 {
			return append(pts, p)
		}
		pts = pts[:n-1]
	}
}

// offLine returns the squared distance of the middle point of three
// points from the line through the other two.  The two points which are
// farthest apart are taken as the ends.
func offLine(a, b, c vec.Vec2) float64 {
	dab := plane.Dist2(a, b)
	dbc := plane.Dist2(b, c)
	dac := plane.Dist2(a, c)

	var p, q, m vec.Vec2
	switch {
	case dac >= dab && dac >= dbc:
		p, q, m = a, c, b
	case dab >= dbc:
		p, q, m = a, b, c
	default:
		p, q, m = b, c, a
	}
	l2 := plane.Dist2(p, q)
	if l2 == 0 {
		return 0
	}
	o := plane.Orient(p, q, m)
	return o * o / l2
}

// closePoints prunes across the seam where the polygon closes.  If fewer
// than three points remain, the polygon is discarded.
func (s *Sweep) closePoints() {
	pts := s.points
	if len(pts) < 3 {
		s.points = pts[:0]
		return
	}
	p0, p1 := pts[0], pts[1]
	pts = appendPruned(pts, p0)
	pts = appendPruned(pts, p1)
	if len(pts) < 5 {
		s.points = pts[:0]
		return
	}
	n := copy(pts, pts[2:])
	s.points = pts[:n]
}
