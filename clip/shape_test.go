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
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

func TestShapeOutlines(t *testing.T) {
	poly, err := NewPolygon([]vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10), pt(5, 3), pt(0, 10)})
	if err != nil {
		t.Fatal(err)
	}
	shapes := map[string]Shape{
		"circle":    &Circle{Center: pt(3, 4), Radius: 7, Density: 20},
		"rectangle": NewRectangle(rect.Rect{LLx: -1, LLy: -2, URx: 3, URy: 5}),
		"wedge":     NewWedge(pt(1, 1), 20, 0, 2, 0),
		"reflex":    NewWedge(pt(0, 0), 20, math.Pi, 1.5*math.Pi, 64),
		"polygon":   poly,
	}
	for name, s := range shapes {
		t.Run(name, func(t *testing.T) {
			pts := s.Points()
			if area := plane.SignedArea(pts); area <= 0 {
				t.Errorf("outline has signed area %g", area)
			}
			for i, p := range pts {
				if !s.PointIsOn(p) {
					t.Errorf("outline point %d %v not on the boundary", i, p)
				}
				if !s.Contains(p) {
					t.Errorf("outline point %d %v not contained", i, p)
				}
			}
			in := s.Interior()
			if !s.Contains(in) || s.PointIsOn(in) {
				t.Errorf("interior point %v is not interior", in)
			}
			b := s.Bounds()
			for _, p := range pts {
				if !plane.Contains(rect.Rect{LLx: b.LLx - 1e-9, LLy: b.LLy - 1e-9, URx: b.URx + 1e-9, URy: b.URy + 1e-9}, p) {
					t.Errorf("point %v outside bounds %v", p, b)
				}
			}
		})
	}
}

func TestCirclePointsBetween(t *testing.T) {
	c := &Circle{Radius: 1, Density: 4}

	// From east, clockwise on screen to west, passes south (+y).
	got := c.PointsBetween(pt(1, 0), pt(-1, 0))
	if !samePoints(got, []vec.Vec2{pt(0, 1)}) {
		t.Errorf("got %v, want [(0,1)]", got)
	}

	// Wrapping from north to south-east.
	a := pt(0, -1)
	b := pt(math.Sqrt2/2, math.Sqrt2/2)
	got = c.PointsBetween(a, b)
	if !samePoints(got, []vec.Vec2{pt(1, 0)}) {
		t.Errorf("got %v, want [(1,0)]", got)
	}
}

func TestSegmentIntersections(t *testing.T) {
	c := &Circle{Radius: 5}
	got := c.SegmentIntersections(pt(-10, 0), pt(10, 0))
	if !samePoints(got, []vec.Vec2{pt(-5, 0), pt(5, 0)}) {
		t.Errorf("circle: got %v", got)
	}
	got = c.SegmentIntersections(pt(10, 0), pt(-10, 0))
	if !samePoints(got, []vec.Vec2{pt(5, 0), pt(-5, 0)}) {
		t.Errorf("circle reversed: got %v", got)
	}

	r := NewRectangle(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10})
	got = r.SegmentIntersections(pt(-5, 0), pt(15, 0))
	if !samePoints(got, []vec.Vec2{pt(0, 0), pt(10, 0)}) {
		t.Errorf("rectangle collinear: got %v", got)
	}
}

func TestWedgeIncludesSegment(t *testing.T) {
	// Cone pointing east, 90 degrees wide.
	w := NewWedge(pt(0, 0), 10, 0, math.Pi/2, 0)
	cases := []struct {
		a, b vec.Vec2
		want bool
	}{
		{pt(5, 0), pt(6, 1), true},     // inside
		{pt(5, -10), pt(5, 10), true},  // crosses both rays
		{pt(-5, -1), pt(-5, 1), false}, // behind the apex
		{pt(1, 3), pt(5, 3), true},     // one end inside
	}
	for i, tc := range cases {
		if got := w.IncludesSegment(tc.a, tc.b); got != tc.want {
			t.Errorf("%d: IncludesSegment(%v, %v) = %t", i, tc.a, tc.b, got)
		}
	}
}

func TestDensityFor(t *testing.T) {
	if n := DensityFor(0); n != defaultDensity {
		t.Errorf("DensityFor(0) = %d", n)
	}
	prev := 0
	for _, r := range []float64{1, 10, 100, 1000} {
		n := DensityFor(r)
		if n < prev {
			t.Errorf("DensityFor(%g) = %d decreases", r, n)
		}
		prev = n

		sagitta := r * (1 - math.Cos(math.Pi/float64(n)))
		if sagitta > 1+1e-9 {
			t.Errorf("radius %g: sagitta %g", r, sagitta)
		}
	}
}
