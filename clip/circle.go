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

// Circle is a disk.  Its boundary is exact for containment and
// intersection tests; Points and PointsBetween sample it at the angles
// k·2π/Density, so that output vertices of concentric circles and wedges
// with the same density line up.
type Circle struct {
	Center vec.Vec2
	Radius float64

	// Density is the number of vertices on the full boundary.
	// If zero, DensityFor(Radius) is used.
	Density int
}

func (c *Circle) density() int {
	if c.Density > 0 {
		return c.Density
	}
	return DensityFor(c.Radius)
}

// Contains implements the [Shape] interface.
func (c *Circle) Contains(p vec.Vec2) bool {
	return plane.Dist(c.Center, p) <= c.Radius+Epsilon
}

// PointIsOn implements the [Shape] interface.
func (c *Circle) PointIsOn(p vec.Vec2) bool {
	return math.Abs(plane.Dist(c.Center, p)-c.Radius) <= Epsilon
}

// SegmentIntersections implements the [Shape] interface.
func (c *Circle) SegmentIntersections(a, b vec.Vec2) []vec.Vec2 {
	return sortedPoints(circleHits(nil, a, b, c.Center, c.Radius))
}

// PointsBetween implements the [Shape] interface.
func (c *Circle) PointsBetween(a, b vec.Vec2) []vec.Vec2 {
	o := c.outline()
	return o.between(angleOf(c.Center, a), angleOf(c.Center, b))
}

// Points implements the [Shape] interface.
func (c *Circle) Points() []vec.Vec2 {
	return c.outline().knots
}

func (c *Circle) outline() outline {
	n := c.density()
	step := 2 * math.Pi / float64(n)
	o := outline{
		knots: make([]vec.Vec2, 0, n),
		at:    make([]float64, 0, n),
		total: 2 * math.Pi,
	}
	for k := range n {
		theta := float64(k) * step
		o.add(onCircle(c.Center, c.Radius, theta), theta)
	}
	return o
}

// Interior implements the [Shape] interface.
func (c *Circle) Interior() vec.Vec2 {
	return c.Center
}

// Bounds implements the [Shape] interface.
func (c *Circle) Bounds() rect.Rect {
	return rect.Rect{
		LLx: c.Center.X - c.Radius,
		LLy: c.Center.Y - c.Radius,
		URx: c.Center.X + c.Radius,
		URy: c.Center.Y + c.Radius,
	}
}

// IncludesSegment implements the [Shape] interface.
// Segments which stay outside the disk are rejected.
func (c *Circle) IncludesSegment(a, b vec.Vec2) bool {
	q := plane.ClosestPoint(c.Center, a, b)
	return plane.Dist(c.Center, q) <= c.Radius
}
