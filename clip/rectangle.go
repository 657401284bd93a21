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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	rect.Rect
}

// NewRectangle returns the clip shape for r.
func NewRectangle(r rect.Rect) *Rectangle {
	return &Rectangle{Rect: r}
}

// Contains implements the [Shape] interface.
func (r *Rectangle) Contains(p vec.Vec2) bool {
	return p.X >= r.LLx-Epsilon && p.X <= r.URx+Epsilon &&
		p.Y >= r.LLy-Epsilon && p.Y <= r.URy+Epsilon
}

// PointIsOn implements the [Shape] interface.
func (r *Rectangle) PointIsOn(p vec.Vec2) bool {
	c := plane.Corners(r.Rect)
	return onPolyline(c[:], p)
}

// SegmentIntersections implements the [Shape] interface.
func (r *Rectangle) SegmentIntersections(a, b vec.Vec2) []vec.Vec2 {
	c := plane.Corners(r.Rect)
	var hits []hit
	for i := range 4 {
		hits = sideHits(hits, a, b, c[i], c[(i+1)%4])
	}
	return sortedPoints(hits)
}

// PointsBetween implements the [Shape] interface.
func (r *Rectangle) PointsBetween(a, b vec.Vec2) []vec.Vec2 {
	c := plane.Corners(r.Rect)
	o := polyline(c[:])
	return o.between(o.param(a), o.param(b))
}

// Points implements the [Shape] interface.
// The corners are listed clockwise, starting at the top left.
func (r *Rectangle) Points() []vec.Vec2 {
	c := plane.Corners(r.Rect)
	return c[:]
}

// Interior implements the [Shape] interface.
func (r *Rectangle) Interior() vec.Vec2 {
	return vec.Vec2{X: (r.LLx + r.URx) / 2, Y: (r.LLy + r.URy) / 2}
}

// Bounds implements the [Shape] interface.
func (r *Rectangle) Bounds() rect.Rect {
	return r.Rect
}

// IncludesSegment implements the [Shape] interface.
func (r *Rectangle) IncludesSegment(a, b vec.Vec2) bool {
	return plane.SegmentTouchesRect(a, b, r.Rect)
}
