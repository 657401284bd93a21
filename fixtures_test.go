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

package visibility_test

import (
	"maps"
	"slices"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/internal/plane"
	"seehuhn.de/go/visibility/testcases"
)

func TestFixtures(t *testing.T) {
	s := visibility.NewSweep()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				sc, err := tc.Scene()
				if err != nil {
					t.Fatal(err)
				}
				poly, err := s.Compute(sc, tc.Origin, tc.Config)
				if err != nil {
					t.Fatal(err)
				}
				if poly.IsEmpty() {
					t.Fatal("empty polygon")
				}
				if poly.Area() <= 0 {
					t.Errorf("area = %g, want > 0", poly.Area())
				}

				b := tc.Bounds
				outer := rect.Rect{LLx: b.LLx - 1, LLy: b.LLy - 1, URx: b.URx + 1, URy: b.URy + 1}
				for _, p := range poly.Points {
					if !plane.Contains(outer, p) {
						t.Errorf("point %v outside the scene", p)
					}
				}

				if tc.Config == nil || tc.Config.Angle >= 360 {
					if !poly.Contains(tc.Origin) {
						t.Error("origin is not visible")
					}
				}
				for _, p := range tc.Visible {
					if !poly.Contains(p) {
						t.Errorf("%v should be visible", p)
					}
				}
				for _, p := range tc.Hidden {
					if poly.Contains(p) {
						t.Errorf("%v should be hidden", p)
					}
				}

				// a fresh Sweep gives the same result
				again, err := visibility.Compute(sc, tc.Origin, tc.Config)
				if err != nil {
					t.Fatal(err)
				}
				if !slices.Equal(poly.Points, again.Points) {
					t.Error("result depends on the state of the Sweep")
				}
			})
		}
	}
}

// BenchmarkComputeAll measures steady-state performance by reusing a
// single Sweep across all scenarios.
func BenchmarkComputeAll(b *testing.B) {
	var cases []testcases.TestCase
	var scenes []*visibility.Scene
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			sc, err := tc.Scene()
			if err != nil {
				b.Fatal(err)
			}
			cases = append(cases, tc)
			scenes = append(scenes, sc)
		}
	}

	s := visibility.NewSweep()
	b.ReportAllocs()
	for b.Loop() {
		for i, tc := range cases {
			if _, err := s.Compute(scenes[i], tc.Origin, tc.Config); err != nil {
				b.Fatal(err)
			}
		}
	}
}
