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
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// Wedge is a circular sector.  The boundary runs from the apex along the
// first ray, clockwise along the arc, and back to the apex along the
// second ray.
type Wedge struct {
	Apex   vec.Vec2
	Radius float64

	// Start is the screen angle of the first ray, in radians.
	Start float64

	// Sweep is the opening angle in radians, in the range (0, 2π).
	Sweep float64

	// Density is the number of vertices a full circle of this radius
	// would have.  If zero, DensityFor(Radius) is used.
	Density int
}

// NewWedge returns the wedge centered on the direction mid, with the
// given opening angle.  All angles are in radians.
func NewWedge(apex vec.Vec2, radius, mid, sweep float64, density int) *Wedge {
	start := math.Mod(mid-sweep/2, 2*math.Pi)
	if start < 0 {
		start += 2 * math.Pi
	}
	return &Wedge{
		Apex:    apex,
		Radius:  radius,
		Start:   start,
		Sweep:   sweep,
		Density: density,
	}
}

func (w *Wedge) rays() (p0, p1 vec.Vec2) {
	p0 = onCircle(w.Apex, w.Radius, w.Start)
	p1 = onCircle(w.Apex, w.Radius, w.Start+w.Sweep)
	return p0, p1
}

// rel returns the angle of p, measured clockwise from the first ray,
// in [0, 2π).
func (w *Wedge) rel(p vec.Vec2) float64 {
	a := angleOf(w.Apex, p) - w.Start
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// inCone reports whether p lies between the two rays, ignoring the
// radius.
func (w *Wedge) inCone(p vec.Vec2) bool {
	const tol = 1e-12
	a := w.rel(p)
	return a <= w.Sweep+tol || a >= 2*math.Pi-tol
}

// Contains implements the [Shape] interface.
func (w *Wedge) Contains(p vec.Vec2) bool {
	d := plane.Dist(w.Apex, p)
	if d > w.Radius+Epsilon {
		return false
	}
	return d <= Epsilon || w.inCone(p) || w.onRays(p)
}

func (w *Wedge) onRays(p vec.Vec2) bool {
	p0, p1 := w.rays()
	e2 := Epsilon * Epsilon
	return plane.Dist2(p, plane.ClosestPoint(p, w.Apex, p0)) <= e2 ||
		plane.Dist2(p, plane.ClosestPoint(p, w.Apex, p1)) <= e2
}

// PointIsOn implements the [Shape] interface.
func (w *Wedge) PointIsOn(p vec.Vec2) bool {
	if w.onRays(p) {
		return true
	}
	return math.Abs(plane.Dist(w.Apex, p)-w.Radius) <= Epsilon && w.inCone(p)
}

// SegmentIntersections implements the [Shape] interface.
func (w *Wedge) SegmentIntersections(a, b vec.Vec2) []vec.Vec2 {
	p0, p1 := w.rays()
	var hits []hit
	hits = sideHits(hits, a, b, w.Apex, p0)
	hits = sideHits(hits, a, b, p1, w.Apex)
	for _, h := range circleHits(nil, a, b, w.Apex, w.Radius) {
		if w.inCone(h.p) {
			hits = append(hits, h)
		}
	}
	return sortedPoints(hits)
}

// PointsBetween implements the [Shape] interface.
func (w *Wedge) PointsBetween(a, b vec.Vec2) []vec.Vec2 {
	o := w.outline()
	return o.between(w.param(a), w.param(b))
}

// param returns the position of a boundary point p, measured along the
// boundary from the apex.
func (w *Wedge) param(p vec.Vec2) float64 {
	r := w.Radius
	p0, p1 := w.rays()
	d := plane.Dist(w.Apex, p)

	best := plane.Dist2(p, plane.ClosestPoint(p, w.Apex, p0))
	s := min(d, r)
	if d1 := plane.Dist2(p, plane.ClosestPoint(p, p1, w.Apex)); d1 < best {
		best = d1
		s = r + r*w.Sweep + (r - min(d, r))
	}
	if w.inCone(p) {
		darc := (d - r) * (d - r)
		if darc < best {
			rel := w.rel(p)
			if rel > w.Sweep {
				rel = 0
			}
			s = r + r*rel
		}
	}

	total := 2*r + r*w.Sweep
	if s >= total {
		s -= total
	}
	return s
}

// outline lists the boundary vertices with their positions along the
// boundary: the apex, the end of the first ray, the arc vertices, and
// the end of the second ray.
func (w *Wedge) outline() outline {
	r := w.Radius
	p0, p1 := w.rays()
	o := outline{total: 2*r + r*w.Sweep}
	o.add(w.Apex, 0)
	o.add(p0, r)

	n := w.density()
	step := 2 * math.Pi / float64(n)
	k := math.Floor(w.Start/step) + 1
	for {
		theta := k * step
		rel := theta - w.Start
		if rel >= w.Sweep-1e-9 {
			break
		}
		if rel > 1e-9 {
			o.add(onCircle(w.Apex, r, theta), r+r*rel)
		}
		k++
	}

	o.add(p1, r+r*w.Sweep)
	return o
}

func (w *Wedge) density() int {
	if w.Density > 0 {
		return w.Density
	}
	return DensityFor(w.Radius)
}

// Points implements the [Shape] interface.
func (w *Wedge) Points() []vec.Vec2 {
	return w.outline().knots
}

// Interior implements the [Shape] interface.
func (w *Wedge) Interior() vec.Vec2 {
	return onCircle(w.Apex, w.Radius/2, w.Start+w.Sweep/2)
}

// Bounds implements the [Shape] interface.
func (w *Wedge) Bounds() rect.Rect {
	p0, p1 := w.rays()
	pts := []vec.Vec2{w.Apex, p0, p1}
	for q := range 4 {
		theta := float64(q) * math.Pi / 2
		if w.inCone(onCircle(w.Apex, 1, theta)) {
			pts = append(pts, onCircle(w.Apex, w.Radius, theta))
		}
	}
	return plane.Bounds(pts)
}

// IncludesSegment implements the [Shape] interface.
// A segment is included if an endpoint lies inside the cone, or if it
// crosses one of the two rays.
func (w *Wedge) IncludesSegment(a, b vec.Vec2) bool {
	if w.inCone(a) || w.inCone(b) {
		return true
	}
	p0, p1 := w.rays()
	return plane.SegmentsIntersect(a, b, w.Apex, p0) || plane.SegmentsIntersect(a, b, w.Apex, p1)
}
