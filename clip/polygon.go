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
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// Polygon is a simple polygon used as a clip shape.
type Polygon struct {
	line   outline
	bounds rect.Rect
}

// NewPolygon returns the clip shape for a simple polygon.  The points
// must run clockwise on screen.  The slice is copied.
func NewPolygon(pts []vec.Vec2) (*Polygon, error) {
	if err := checkSubject(pts); err != nil {
		return nil, err
	}
	pts = slices.Clone(pts)
	return &Polygon{
		line:   polyline(pts),
		bounds: plane.Bounds(pts),
	}, nil
}

// Contains implements the [Shape] interface.
func (p *Polygon) Contains(q vec.Vec2) bool {
	return plane.InPolygon(p.line.knots, q) || onPolyline(p.line.knots, q)
}

// PointIsOn implements the [Shape] interface.
func (p *Polygon) PointIsOn(q vec.Vec2) bool {
	return onPolyline(p.line.knots, q)
}

// SegmentIntersections implements the [Shape] interface.
func (p *Polygon) SegmentIntersections(a, b vec.Vec2) []vec.Vec2 {
	pts := p.line.knots
	n := len(pts)
	var hits []hit
	for i, c := range pts {
		hits = sideHits(hits, a, b, c, pts[(i+1)%n])
	}
	return sortedPoints(hits)
}

// PointsBetween implements the [Shape] interface.
func (p *Polygon) PointsBetween(a, b vec.Vec2) []vec.Vec2 {
	return p.line.between(p.line.param(a), p.line.param(b))
}

// Points implements the [Shape] interface.
func (p *Polygon) Points() []vec.Vec2 {
	return slices.Clone(p.line.knots)
}

// Interior implements the [Shape] interface.
// The point is found on a horizontal line through the polygon, halfway
// between the first two boundary crossings.
func (p *Polygon) Interior() vec.Vec2 {
	pts := p.line.knots
	b := p.bounds
	y := b.LLy + 0.5123*(b.URy-b.LLy)

	var xs []float64
	n := len(pts)
	for i, a := range pts {
		c := pts[(i+1)%n]
		if (a.Y > y) != (c.Y > y) {
			xs = append(xs, a.X+(y-a.Y)*(c.X-a.X)/(c.Y-a.Y))
		}
	}
	if len(xs) < 2 {
		return pts[0]
	}
	slices.Sort(xs)
	return vec.Vec2{X: (xs[0] + xs[1]) / 2, Y: y}
}

// Bounds implements the [Shape] interface.
func (p *Polygon) Bounds() rect.Rect {
	return p.bounds
}

// IncludesSegment implements the [Shape] interface.
func (p *Polygon) IncludesSegment(a, b vec.Vec2) bool {
	return plane.SegmentTouchesRect(a, b, p.bounds)
}
