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
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// square returns the square with the given corners, clockwise on screen.
func square(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x0, y0), pt(x1, y0), pt(x1, y1), pt(x0, y1)}
}

func samePoints(a, b []vec.Vec2) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if plane.Dist(a[i], b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestEnvelopment(t *testing.T) {
	circle := &Circle{Radius: 10, Density: 32}

	type testCase struct {
		name    string
		subject []vec.Vec2
		op      Op
		want    [][]vec.Vec2
	}
	small := square(-5, -5, 5, 5)
	large := square(-20, -20, 20, 20)
	far := square(100, 100, 110, 110)
	cases := []testCase{
		{"inside_intersect", small, Intersect, [][]vec.Vec2{small}},
		{"inside_union", small, Union, [][]vec.Vec2{circle.Points()}},
		{"around_intersect", large, Intersect, [][]vec.Vec2{circle.Points()}},
		{"around_union", large, Union, [][]vec.Vec2{large}},
		{"disjoint_intersect", far, Intersect, nil},
		{"disjoint_union", far, Union, [][]vec.Vec2{far, circle.Points()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Clip(tc.subject, circle, tc.op)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d loops, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if !samePoints(got[i], tc.want[i]) {
					t.Errorf("loop %d: got %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestCircleHalfPlane(t *testing.T) {
	circle := &Circle{Radius: 10, Density: 36}
	subject := square(-20, -20, 5, 20)

	got, err := Clip(subject, circle, Intersect)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d loops, want 1", len(got))
	}
	loop := got[0]
	if len(loop) != 25 {
		t.Errorf("got %d points, want 25", len(loop))
	}
	for _, p := range loop {
		if p.X > 5+1e-9 {
			t.Errorf("point %v right of x=5", p)
		}
		if plane.Dist(pt(0, 0), p) > 10+1e-9 {
			t.Errorf("point %v outside the circle", p)
		}
	}
	if area := plane.SignedArea(loop); area <= 0 {
		t.Errorf("result has signed area %g", area)
	}

	got, err = Clip(subject, circle, Union)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0]) != 17 {
		t.Fatalf("union: got %v", got)
	}
	if area := plane.SignedArea(got[0]); area <= 25*40 {
		t.Errorf("union has area %g, want more than the subject", area)
	}
}

func TestTangentTouch(t *testing.T) {
	// The triangle touches the circle at (10, 0) without crossing.
	circle := &Circle{Radius: 10, Density: 16}
	subject := []vec.Vec2{pt(10, 0), pt(20, 10), pt(20, -10)}
	if plane.SignedArea(subject) <= 0 {
		subject = []vec.Vec2{pt(10, 0), pt(20, -10), pt(20, 10)}
	}
	got, err := Clip(subject, circle, Intersect)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty intersection", got)
	}
}

func TestRectangleClip(t *testing.T) {
	r := NewRectangle(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10})
	subject := square(5, 5, 15, 15)

	got, err := Clip(subject, r, Intersect)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d loops", len(got))
	}
	if a := plane.SignedArea(got[0]); math.Abs(a-25) > 1e-9 {
		t.Errorf("intersection area %g, want 25", a)
	}

	got, err = Clip(subject, r, Union)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d loops", len(got))
	}
	if a := plane.SignedArea(got[0]); math.Abs(a-175) > 1e-9 {
		t.Errorf("union area %g, want 175", a)
	}
}

func TestSharedEdge(t *testing.T) {
	// The subject shares its left side with the clip rectangle.
	r := NewRectangle(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10})
	subject := square(0, 2, 20, 8)

	got, err := Clip(subject, r, Intersect)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d loops", len(got))
	}
	if a := plane.SignedArea(got[0]); math.Abs(a-60) > 1e-9 {
		t.Errorf("intersection area %g, want 60", a)
	}
}

func TestWedgeClip(t *testing.T) {
	w := NewWedge(pt(0, 0), 10, math.Pi/2, math.Pi/2, 72)
	got, err := Clip(square(-20, -20, 20, 20), w, Intersect)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d loops", len(got))
	}
	for _, p := range got[0] {
		if !w.Contains(p) {
			t.Errorf("point %v outside the wedge", p)
		}
	}
	want := math.Pi * 100 / 4
	if a := plane.SignedArea(got[0]); math.Abs(a-want) > 0.05*want {
		t.Errorf("area %g, want about %g", a, want)
	}
}

func TestInvalidSubject(t *testing.T) {
	circle := &Circle{Radius: 10}
	cases := map[string][]vec.Vec2{
		"too_short":         {pt(0, 0), pt(1, 0)},
		"counter_clockwise": {pt(-5, -5), pt(-5, 5), pt(5, 5), pt(5, -5)},
		"flat":              {pt(0, 0), pt(1, 0), pt(2, 0)},
	}
	for name, subject := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Clip(subject, circle, Intersect)
			if !errors.Is(err, ErrInvalidPolygon) {
				t.Errorf("got error %v, want ErrInvalidPolygon", err)
			}
		})
	}
}

func TestPolygonShapeUnion(t *testing.T) {
	// Two overlapping star-shaped regions around the origin.
	a := square(-10, -10, 10, 10)
	b, err := NewPolygon(square(-5, -20, 5, 20))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Clip(a, b, Union)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d loops", len(got))
	}
	want := 400.0 + 2*10*10
	if area := plane.SignedArea(got[0]); math.Abs(area-want) > 1e-9 {
		t.Errorf("union area %g, want %g", area, want)
	}
}
