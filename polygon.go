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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// Polygon is the result of a visibility computation.
type Polygon struct {
	// Points lists the vertices, clockwise on screen.  The polygon is
	// implicitly closed.  Empty results have no points.
	Points []vec.Vec2

	// Bounds is the bounding rectangle of the points.
	Bounds rect.Rect
}

func newPolygon(pts []vec.Vec2) *Polygon {
	if len(pts) < 3 {
		return &Polygon{}
	}
	return &Polygon{
		Points: pts,
		Bounds: plane.Bounds(pts),
	}
}

// IsEmpty reports whether the polygon has no area.
func (p *Polygon) IsEmpty() bool {
	return len(p.Points) < 3
}

// Flat returns the vertex coordinates as x0, y0, x1, y1, ...
func (p *Polygon) Flat() []float64 {
	res := make([]float64, 0, 2*len(p.Points))
	for _, q := range p.Points {
		res = append(res, q.X, q.Y)
	}
	return res
}

// Area returns the area enclosed by the polygon.
func (p *Polygon) Area() float64 {
	if p.IsEmpty() {
		return 0
	}
	return plane.SignedArea(p.Points)
}

// Contains reports whether q lies inside the polygon.
func (p *Polygon) Contains(q vec.Vec2) bool {
	if p.IsEmpty() || !plane.Contains(p.Bounds, q) {
		return false
	}
	return plane.InPolygon(p.Points, q)
}

// Path returns the outline of the polygon as a closed path.
func (p *Polygon) Path() *path.Data {
	res := &path.Data{}
	if p.IsEmpty() {
		return res
	}
	res.MoveTo(p.Points[0])
	for _, q := range p.Points[1:] {
		res.LineTo(q)
	}
	return res.Close()
}
