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

// Package plane holds the small set of planar predicates shared by the
// quadtree, the clipper and the sweep.
//
// All functions assume screen coordinates, where the y-axis points down.
// In this system a positive orientation means "clockwise as seen on
// screen".
package plane

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Orient returns twice the signed area of the triangle a, b, c.
// The result is positive if c lies clockwise of the directed line a→b,
// negative if it lies counter-clockwise, and zero if the three points
// are collinear.
func Orient(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Cross returns the z-component of the cross product of u and v.
func Cross(u, v vec.Vec2) float64 {
	return u.X*v.Y - u.Y*v.X
}

// Dist2 returns the squared distance between a and b.
func Dist2(a, b vec.Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Dist returns the distance between a and b.
func Dist(a, b vec.Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// LineIntersection intersects the infinite lines through a, b and c, d.
// The point is a + t0·(b-a) = c + t1·(d-c).  If the lines are parallel,
// ok is false.
func LineIntersection(a, b, c, d vec.Vec2) (p vec.Vec2, t0, t1 float64, ok bool) {
	denom := (d.Y-c.Y)*(b.X-a.X) - (d.X-c.X)*(b.Y-a.Y)
	if denom == 0 {
		return vec.Vec2{}, 0, 0, false
	}
	t0 = ((d.X-c.X)*(a.Y-c.Y) - (d.Y-c.Y)*(a.X-c.X)) / denom
	t1 = ((b.X-a.X)*(a.Y-c.Y) - (b.Y-a.Y)*(a.X-c.X)) / denom
	p = vec.Vec2{X: a.X + t0*(b.X-a.X), Y: a.Y + t0*(b.Y-a.Y)}
	return p, t0, t1, true
}

// SegmentIntersection intersects the closed segments ab and cd.
// Parallel segments never intersect, even if they overlap.
func SegmentIntersection(a, b, c, d vec.Vec2) (p vec.Vec2, t0 float64, ok bool) {
	p, t0, t1, ok := LineIntersection(a, b, c, d)
	if !ok || t0 < 0 || t0 > 1 || t1 < 0 || t1 > 1 {
		return vec.Vec2{}, 0, false
	}
	return p, t0, true
}

// SegmentsIntersect reports whether the closed segments ab and cd touch
// or cross.  If cd is collinear with ab the result is false.
func SegmentsIntersect(a, b, c, d vec.Vec2) bool {
	xa := Orient(a, b, c)
	xb := Orient(a, b, d)
	if xa == 0 && xb == 0 {
		return false
	}
	xab := xa*xb <= 0
	xcd := Orient(c, d, a)*Orient(c, d, b) <= 0
	return xab && xcd
}

// ClosestPoint returns the point of the segment ab closest to p.
func ClosestPoint(p, a, b vec.Vec2) vec.Vec2 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	t = min(max(t, 0), 1)
	return a.Add(ab.Mul(t))
}

// SweepAngle returns the angle of p as seen from origin, measured from
// due west and increasing clockwise, in the range [0, 2π).
func SweepAngle(origin, p vec.Vec2) float64 {
	a := math.Atan2(p.Y-origin.Y, p.X-origin.X) + math.Pi
	if a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Key is an integer grid location used to identify coincident points.
type Key struct {
	X, Y int64
}

// KeyOf rounds p to the nearest grid location, rounding halves up.
func KeyOf(p vec.Vec2) Key {
	return Key{
		X: int64(math.Floor(p.X + 0.5)),
		Y: int64(math.Floor(p.Y + 0.5)),
	}
}

// Vec returns the location of k.
func (k Key) Vec() vec.Vec2 {
	return vec.Vec2{X: float64(k.X), Y: float64(k.Y)}
}

// Overlaps reports whether two rectangles share at least one point.
// Touching boundaries count as overlap.
func Overlaps(a, b rect.Rect) bool {
	return a.LLx <= b.URx && b.LLx <= a.URx && a.LLy <= b.URy && b.LLy <= a.URy
}

// Intersect returns the intersection of two rectangles.  If the
// rectangles are disjoint, ok is false.
func Intersect(a, b rect.Rect) (r rect.Rect, ok bool) {
	r = rect.Rect{
		LLx: max(a.LLx, b.LLx),
		LLy: max(a.LLy, b.LLy),
		URx: min(a.URx, b.URx),
		URy: min(a.URy, b.URy),
	}
	if r.LLx > r.URx || r.LLy > r.URy {
		return rect.Rect{}, false
	}
	return r, true
}

// Contains reports whether p lies inside r or on its boundary.
func Contains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// StrictlyContains reports whether p lies in the interior of r.
func StrictlyContains(r rect.Rect, p vec.Vec2) bool {
	return p.X > r.LLx && p.X < r.URx && p.Y > r.LLy && p.Y < r.URy
}

// SegmentBounds returns the bounding rectangle of the segment ab.
func SegmentBounds(a, b vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: min(a.X, b.X),
		LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X),
		URy: max(a.Y, b.Y),
	}
}

// Bounds returns the bounding rectangle of a point set.
// The zero rectangle is returned for an empty set.
func Bounds(pts []vec.Vec2) rect.Rect {
	if len(pts) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return r
}

// Corners returns the corners of r in clockwise screen order, starting
// at the top-left corner.
func Corners(r rect.Rect) [4]vec.Vec2 {
	return [4]vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	}
}

// SegmentTouchesRect reports whether the segment ab has a point in r.
func SegmentTouchesRect(a, b vec.Vec2, r rect.Rect) bool {
	if Contains(r, a) || Contains(r, b) {
		return true
	}
	if !Overlaps(SegmentBounds(a, b), r) {
		return false
	}
	c := Corners(r)
	for i := range 4 {
		if SegmentsIntersect(a, b, c[i], c[(i+1)%4]) {
			return true
		}
	}
	return false
}

// SignedArea returns the shoelace area of a closed polygon.  Polygons
// which run clockwise on screen have positive area.
func SignedArea(pts []vec.Vec2) float64 {
	n := len(pts)
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%n]
		area += p.X*q.Y - q.X*p.Y
	}
	return area / 2
}

// InPolygon reports whether p lies inside the closed polygon pts, using
// the even-odd rule.  Points on the boundary may go either way.
func InPolygon(pts []vec.Vec2, p vec.Vec2) bool {
	inside := false
	n := len(pts)
	for i := range n {
		a := pts[i]
		b := pts[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
