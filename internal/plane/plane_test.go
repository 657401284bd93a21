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

package plane

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestOrient(t *testing.T) {
	a := vec.Vec2{X: 0, Y: 0}
	b := vec.Vec2{X: 10, Y: 0}
	// y points down, so (5, 5) is below the line and clockwise of a→b
	if o := Orient(a, b, vec.Vec2{X: 5, Y: 5}); o <= 0 {
		t.Errorf("Orient = %g, want > 0", o)
	}
	if o := Orient(a, b, vec.Vec2{X: 5, Y: -5}); o >= 0 {
		t.Errorf("Orient = %g, want < 0", o)
	}
	if o := Orient(a, b, vec.Vec2{X: 20, Y: 0}); o != 0 {
		t.Errorf("Orient = %g, want 0", o)
	}
}

func TestSegmentIntersection(t *testing.T) {
	type testCase struct {
		name       string
		a, b, c, d vec.Vec2
		p          vec.Vec2
		t0         float64
		ok         bool
	}
	cases := []testCase{
		{
			name: "cross",
			a:    vec.Vec2{X: 0, Y: 0}, b: vec.Vec2{X: 10, Y: 0},
			c: vec.Vec2{X: 5, Y: -5}, d: vec.Vec2{X: 5, Y: 5},
			p: vec.Vec2{X: 5, Y: 0}, t0: 0.5, ok: true,
		},
		{
			name: "touch",
			a:    vec.Vec2{X: 0, Y: 0}, b: vec.Vec2{X: 10, Y: 0},
			c: vec.Vec2{X: 10, Y: 0}, d: vec.Vec2{X: 10, Y: 5},
			p: vec.Vec2{X: 10, Y: 0}, t0: 1, ok: true,
		},
		{
			name: "miss",
			a:    vec.Vec2{X: 0, Y: 0}, b: vec.Vec2{X: 10, Y: 0},
			c: vec.Vec2{X: 12, Y: -5}, d: vec.Vec2{X: 12, Y: 5},
		},
		{
			name: "parallel",
			a:    vec.Vec2{X: 0, Y: 0}, b: vec.Vec2{X: 10, Y: 0},
			c: vec.Vec2{X: 0, Y: 0}, d: vec.Vec2{X: 5, Y: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, t0, ok := SegmentIntersection(tc.a, tc.b, tc.c, tc.d)
			if ok != tc.ok {
				t.Fatalf("ok = %t, want %t", ok, tc.ok)
			}
			if ok && (p != tc.p || t0 != tc.t0) {
				t.Errorf("got %v at %g, want %v at %g", p, t0, tc.p, tc.t0)
			}
			if SegmentsIntersect(tc.a, tc.b, tc.c, tc.d) != tc.ok {
				t.Errorf("SegmentsIntersect disagrees")
			}
		})
	}
}

func TestClosestPoint(t *testing.T) {
	a := vec.Vec2{X: 0, Y: 0}
	b := vec.Vec2{X: 10, Y: 0}
	cases := []struct {
		p, want vec.Vec2
	}{
		{vec.Vec2{X: 5, Y: 3}, vec.Vec2{X: 5, Y: 0}},
		{vec.Vec2{X: -4, Y: 3}, a},
		{vec.Vec2{X: 14, Y: -3}, b},
	}
	for _, tc := range cases {
		if got := ClosestPoint(tc.p, a, b); got != tc.want {
			t.Errorf("ClosestPoint(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
	if got := ClosestPoint(vec.Vec2{X: 1, Y: 1}, a, a); got != a {
		t.Errorf("degenerate segment: got %v", got)
	}
}

func TestSweepAngle(t *testing.T) {
	o := vec.Vec2{X: 1, Y: 1}
	cases := []struct {
		p    vec.Vec2
		want float64
	}{
		{vec.Vec2{X: -1, Y: 1}, 0},
		{vec.Vec2{X: 1, Y: -1}, math.Pi / 2}, // north, on screen
		{vec.Vec2{X: 3, Y: 1}, math.Pi},
		{vec.Vec2{X: 1, Y: 3}, 3 * math.Pi / 2},
	}
	for _, tc := range cases {
		got := SweepAngle(o, tc.p)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("SweepAngle(%v) = %g, want %g", tc.p, got, tc.want)
		}
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("SweepAngle(%v) = %g out of range", tc.p, got)
		}
	}
}

func TestKeyOf(t *testing.T) {
	cases := []struct {
		p    vec.Vec2
		want Key
	}{
		{vec.Vec2{X: 0.4, Y: -0.4}, Key{0, 0}},
		{vec.Vec2{X: 0.5, Y: -0.5}, Key{1, 0}},
		{vec.Vec2{X: -1.6, Y: 2.6}, Key{-2, 3}},
	}
	for _, tc := range cases {
		if got := KeyOf(tc.p); got != tc.want {
			t.Errorf("KeyOf(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestRectangles(t *testing.T) {
	a := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	b := rect.Rect{LLx: 10, LLy: 5, URx: 20, URy: 20}
	if !Overlaps(a, b) {
		t.Error("touching rectangles must overlap")
	}
	r, ok := Intersect(a, b)
	if !ok || r != (rect.Rect{LLx: 10, LLy: 5, URx: 10, URy: 10}) {
		t.Errorf("Intersect = %v, %t", r, ok)
	}
	if _, ok := Intersect(a, rect.Rect{LLx: 11, LLy: 0, URx: 12, URy: 1}); ok {
		t.Error("disjoint rectangles intersect")
	}

	if !Contains(a, vec.Vec2{X: 10, Y: 0}) || StrictlyContains(a, vec.Vec2{X: 10, Y: 0}) {
		t.Error("wrong treatment of boundary points")
	}

	if !SegmentTouchesRect(vec.Vec2{X: -5, Y: 5}, vec.Vec2{X: 15, Y: 5}, a) {
		t.Error("segment through rectangle not detected")
	}
	if SegmentTouchesRect(vec.Vec2{X: -5, Y: 8}, vec.Vec2{X: 8, Y: 21}, rect.Rect{LLx: 5, LLy: 0, URx: 10, URy: 5}) {
		t.Error("segment passing below the rectangle touches it")
	}
}

func TestPolygonHelpers(t *testing.T) {
	// clockwise on screen
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	if a := SignedArea(pts); a != 16 {
		t.Errorf("SignedArea = %g, want 16", a)
	}
	rev := []vec.Vec2{pts[3], pts[2], pts[1], pts[0]}
	if a := SignedArea(rev); a != -16 {
		t.Errorf("SignedArea = %g, want -16", a)
	}
	if !InPolygon(pts, vec.Vec2{X: 1, Y: 3}) || InPolygon(pts, vec.Vec2{X: 5, Y: 1}) {
		t.Error("InPolygon gives wrong answers")
	}
	if b := Bounds(pts); b != (rect.Rect{URx: 4, URy: 4}) {
		t.Errorf("Bounds = %v", b)
	}
}
