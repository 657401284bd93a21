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
	"slices"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func prune(pts []vec.Vec2) []vec.Vec2 {
	var res []vec.Vec2
	for _, p := range pts {
		res = appendPruned(res, p)
	}
	return res
}

func TestAppendPruned(t *testing.T) {
	cases := []struct {
		name string
		in   []vec.Vec2
		want []vec.Vec2
	}{
		{
			name: "collinear",
			in:   []vec.Vec2{pt(0, 0), pt(5, 0.0005), pt(10, 0)},
			want: []vec.Vec2{pt(0, 0), pt(10, 0)},
		},
		{
			name: "duplicate",
			in:   []vec.Vec2{pt(0, 0), pt(0.1, 0)},
			want: []vec.Vec2{pt(0, 0)},
		},
		{
			name: "spike",
			in:   []vec.Vec2{pt(0, 0), pt(10, 0), pt(0, 0.1)},
			want: []vec.Vec2{pt(0, 0)},
		},
		{
			name: "corner",
			in:   []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10)},
			want: []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10)},
		},
		{
			name: "square_with_midpoints",
			in: []vec.Vec2{
				pt(0, 0), pt(5, 0.01), pt(10, 0),
				pt(10, 5), pt(10.01, 10), pt(5, 10), pt(0, 10),
			},
			want: []vec.Vec2{pt(0, 0), pt(10, 0), pt(10.01, 10), pt(0, 10)},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := prune(c.in)
			if !slices.Equal(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
			if again := prune(got); !slices.Equal(again, got) {
				t.Errorf("pruning is not idempotent: %v -> %v", got, again)
			}
		})
	}
}

func TestClosePoints(t *testing.T) {
	s := NewSweep()
	s.points = append(s.points, pt(5, 0), pt(10, 0), pt(10, 10), pt(0, 10), pt(0, 0))
	s.closePoints()
	want := []vec.Vec2{pt(10, 10), pt(0, 10), pt(0, 0), pt(10, 0)}
	if !slices.Equal(s.points, want) {
		t.Errorf("got %v, want %v", s.points, want)
	}

	s.points = append(s.points[:0], pt(0, 0), pt(10, 0))
	s.closePoints()
	if len(s.points) != 0 {
		t.Errorf("degenerate polygon kept: %v", s.points)
	}
}
