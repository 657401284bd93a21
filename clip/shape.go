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

package clip

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// Shape is a closed region with an exactly known boundary, which can act
// as the clip region in [Clip].
//
// All point sequences returned by a Shape run clockwise on screen, i.e. in
// the direction of increasing atan2 angle when the y-axis points down.
type Shape interface {
	// Contains reports whether p lies inside the shape or on its boundary.
	Contains(p vec.Vec2) bool

	// PointIsOn reports whether p lies on the boundary, up to the
	// tolerance Epsilon.
	PointIsOn(p vec.Vec2) bool

	// SegmentIntersections returns the points where the segment ab meets
	// the boundary, ordered from a to b.  If ab runs along a straight
	// part of the boundary, the two ends of the shared piece are
	// returned.
	SegmentIntersections(a, b vec.Vec2) []vec.Vec2

	// PointsBetween returns the boundary vertices strictly between the
	// boundary points a and b, walking clockwise from a to b.
	PointsBetween(a, b vec.Vec2) []vec.Vec2

	// Points returns the boundary as a closed polygon.
	Points() []vec.Vec2

	// Interior returns a point in the interior of the shape.
	Interior() vec.Vec2

	// Bounds returns the bounding rectangle of the shape.
	Bounds() rect.Rect

	// IncludesSegment reports whether the segment ab can affect a
	// visibility polygon clipped to this shape.  False positives are
	// allowed.
	IncludesSegment(a, b vec.Vec2) bool
}

// Epsilon is the distance below which a point counts as lying on a
// shape boundary.
const Epsilon = 1e-6

// defaultDensity is the smallest number of vertices used for a full
// circle when no density is given.
const defaultDensity = 8

// DensityFor returns the number of vertices needed to approximate a full
// circle of the given radius so that no chord is farther than one unit
// from the arc.
func DensityFor(radius float64) int {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return defaultDensity
	}
	n := int(math.Ceil(math.Pi / math.Sqrt(2/radius)))
	return max(n, defaultDensity)
}

// outline describes a boundary by a sequence of vertices together with
// their position along the boundary.  Positions increase strictly and
// lie in [0, total).
type outline struct {
	knots []vec.Vec2
	at    []float64
	total float64
}

func (o *outline) add(p vec.Vec2, s float64) {
	o.knots = append(o.knots, p)
	o.at = append(o.at, s)
}

// between returns the knots strictly between positions sa and sb, walking
// forward and wrapping around once if needed.
func (o *outline) between(sa, sb float64) []vec.Vec2 {
	const tol = 1e-9
	if sb <= sa+tol {
		sb += o.total
	}
	var res []vec.Vec2
	for lap := range 2 {
		offs := float64(lap) * o.total
		for i, s := range o.at {
			s += offs
			if s <= sa+tol {
				continue
			}
			if s >= sb-tol {
				return res
			}
			res = append(res, o.knots[i])
		}
	}
	return res
}

// polyline builds the outline of a closed polygon, parametrized by
// arc length.
func polyline(pts []vec.Vec2) outline {
	o := outline{
		knots: pts,
		at:    make([]float64, len(pts)),
	}
	var s float64
	for i, p := range pts {
		o.at[i] = s
		s += plane.Dist(p, pts[(i+1)%len(pts)])
	}
	o.total = s
	return o
}

// param returns the arc length position of the boundary point closest
// to p.  The outline must have been built by polyline.
func (o *outline) param(p vec.Vec2) float64 {
	n := len(o.knots)
	best := math.Inf(1)
	var s float64
	for i, a := range o.knots {
		b := o.knots[(i+1)%n]
		q := plane.ClosestPoint(p, a, b)
		if d := plane.Dist2(p, q); d < best {
			best = d
			s = o.at[i] + plane.Dist(a, q)
		}
	}
	if s >= o.total {
		s -= o.total
	}
	return s
}

// onPolyline reports whether p lies within Epsilon of a side of the
// closed polygon pts.
func onPolyline(pts []vec.Vec2, p vec.Vec2) bool {
	n := len(pts)
	for i, a := range pts {
		b := pts[(i+1)%n]
		if plane.Dist2(p, plane.ClosestPoint(p, a, b)) <= Epsilon*Epsilon {
			return true
		}
	}
	return false
}

// hit is an intersection point along a segment, with its parameter.
type hit struct {
	t float64
	p vec.Vec2
}

// sideHits appends the intersections of ab with the side cd.  If the
// two segments are collinear, the ends of their common piece are used.
func sideHits(hits []hit, a, b, c, d vec.Vec2) []hit {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return hits
	}
	if p, t, ok := plane.SegmentIntersection(a, b, c, d); ok {
		return append(hits, hit{t, p})
	}

	// Parallel segments: report the shared piece, if any.
	tol := Epsilon * math.Sqrt(l2)
	if math.Abs(plane.Orient(a, b, c)) > tol || math.Abs(plane.Orient(a, b, d)) > tol {
		return hits
	}
	for _, q := range []vec.Vec2{c, d} {
		t := q.Sub(a).Dot(ab) / l2
		if t > 0 && t < 1 {
			hits = append(hits, hit{t, q})
		}
	}
	return hits
}

// circleHits appends the intersections of ab with a circle.
func circleHits(hits []hit, a, b, center vec.Vec2, r float64) []hit {
	d := b.Sub(a)
	f := a.Sub(center)
	qa := d.Dot(d)
	if qa == 0 {
		return hits
	}
	qb := 2 * f.Dot(d)
	qc := f.Dot(f) - r*r
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return hits
	}
	root := math.Sqrt(disc)
	for _, t := range []float64{(-qb - root) / (2 * qa), (-qb + root) / (2 * qa)} {
		if t >= 0 && t <= 1 {
			hits = append(hits, hit{t, a.Add(d.Mul(t))})
		}
		if root == 0 {
			break
		}
	}
	return hits
}

// sortedPoints orders the hits along the segment and removes duplicates.
func sortedPoints(hits []hit) []vec.Vec2 {
	if len(hits) == 0 {
		return nil
	}
	slices.SortFunc(hits, func(x, y hit) int {
		return cmp.Compare(x.t, y.t)
	})
	res := make([]vec.Vec2, 0, len(hits))
	for _, h := range hits {
		if n := len(res); n > 0 && plane.Dist2(res[n-1], h.p) <= Epsilon*Epsilon {
			continue
		}
		res = append(res, h.p)
	}
	return res
}

// angleOf returns the screen angle of p around c in [0, 2π).
func angleOf(c, p vec.Vec2) float64 {
	a := math.Atan2(p.Y-c.Y, p.X-c.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// onCircle returns the point at screen angle theta on a circle.
func onCircle(c vec.Vec2, r, theta float64) vec.Vec2 {
	return vec.Vec2{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)}
}
