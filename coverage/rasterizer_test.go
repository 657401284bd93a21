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

package coverage

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// strategies lists dense limits which force either fill strategy.
var strategies = []struct {
	name  string
	limit int
}{
	{"dense", 1 << 30},
	{"rows", 0},
}

// render fills pts into a w×h byte buffer.
func render(r *Rasterizer, pts []vec.Vec2, w, h int) []byte {
	buf := make([]byte, w*h)
	r.FillPolygon(pts, func(y, xMin int, coverage []float32) {
		row := buf[y*w+xMin:]
		for i, c := range coverage {
			row[i] = byte(min(255, int(c*256)))
		}
	})
	return buf
}

// reference fills pts using x/image/vector.
func reference(m matrix.Matrix, pts []vec.Vec2, w, h int) []byte {
	z := vector.NewRasterizer(w, h)
	for i, p := range pts {
		x := float32(m[0]*p.X + m[2]*p.Y + m[4])
		y := float32(m[1]*p.X + m[3]*p.Y + m[5])
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})
	return dst.Pix
}

func visibilityPolygon(t *testing.T) []vec.Vec2 {
	t.Helper()
	sc := visibility.NewScene(rect.Rect{URx: 100, URy: 100})
	walls := []*visibility.Edge{
		visibility.NewWall("a", pt(30, 20), pt(45, 35)),
		visibility.NewWall("b", pt(60, 60), pt(80, 55)),
		visibility.NewWall("c", pt(20, 70), pt(35, 65)),
	}
	for _, e := range walls {
		if err := sc.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	poly, err := visibility.Compute(sc, pt(50, 50), nil)
	if err != nil {
		t.Fatal(err)
	}
	if poly.IsEmpty() {
		t.Fatal("empty visibility polygon")
	}
	return poly.Points
}

func TestAgainstVector(t *testing.T) {
	type testCase struct {
		name string
		m    matrix.Matrix
		pts  []vec.Vec2
	}
	cases := []testCase{
		{
			name: "square",
			m:    matrix.Identity,
			pts:  []vec.Vec2{pt(10.3, 12.7), pt(50.5, 12.7), pt(50.5, 40.2), pt(10.3, 40.2)},
		},
		{
			name: "triangle",
			m:    matrix.Identity,
			pts:  []vec.Vec2{pt(5, 60), pt(32.25, 3.5), pt(60, 58)},
		},
		{
			name: "concave",
			m:    matrix.Identity,
			pts: []vec.Vec2{
				pt(4, 4), pt(60, 4), pt(60, 20), pt(20, 24), pt(24, 60), pt(4, 60),
			},
		},
		{
			name: "self_overlapping",
			m:    matrix.Identity,
			pts: []vec.Vec2{
				pt(32, 2), pt(50, 60), pt(2, 22), pt(62, 22), pt(14, 60),
			},
		},
		{
			name: "scaled",
			m:    matrix.Scale(2, 2).Translate(3.5, 1.25),
			pts:  []vec.Vec2{pt(3, 3), pt(28, 7), pt(25, 28), pt(6, 24)},
		},
		{
			name: "visibility",
			m:    matrix.Scale(0.6, 0.6).Translate(2, 2),
			pts:  visibilityPolygon(t),
		},
	}

	const w, h = 64, 64
	for _, tc := range cases {
		want := reference(tc.m, tc.pts, w, h)
		for _, st := range strategies {
			name := tc.name + "_" + st.name
			t.Run(name, func(t *testing.T) {
				r := NewRasterizer(rect.Rect{URx: w, URy: h})
				r.Transform = tc.m
				r.denseLimit = st.limit
				got := render(r, tc.pts, w, h)
				if err := compare(name, want, got, w, h); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

// compare checks that two coverage images agree up to rounding.
func compare(name string, want, got []byte, w, h int) error {
	var diffs []int
	for i := range want {
		d := int(want[i]) - int(got[i])
		if d < 0 {
			d = -d
		}
		diffs = append(diffs, d)
	}
	slices.Sort(diffs)
	p80 := diffs[int(math.Round(0.80*float64(len(diffs)-1)))]
	worst := diffs[len(diffs)-1]
	if p80 == 0 && worst <= 16 {
		return nil
	}
	_ = writeDiffImage(name, want, got, w, h)
	return fmt.Errorf("80th percentile diff %d, largest diff %d", p80, worst)
}

func writeDiffImage(name string, want, got []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	// actual, difference, reference
	img := image.NewRGBA(image.Rect(0, 0, 3*w, h))
	for y := range h {
		for x := range w {
			i := y*w + x
			a, e := got[i], want[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})
			switch d := int(e) - int(a); {
			case d > 0:
				img.Set(x+w, y, color.RGBA{G: uint8(d), A: 255})
			case d < 0:
				img.Set(x+w, y, color.RGBA{R: uint8(-d), A: 255})
			default:
				img.Set(x+w, y, color.RGBA{A: 255})
			}
			img.Set(x+2*w, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// TestTriangleCoverage checks exact values for a triangle with a diagonal
// edge y = x/10.  Cell x is covered to (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(pt(0, 0)).
		LineTo(pt(10, 0)).
		LineTo(pt(10, 1)).
		Close()

	for _, st := range strategies {
		t.Run(st.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
			r.denseLimit = st.limit

			got := make([]float32, 10)
			r.Fill(p, func(y, xMin int, coverage []float32) {
				if y == 0 {
					copy(got[xMin:], coverage)
				}
			})

			for x := range 10 {
				want := float32(2*x+1) / 20
				if math.Abs(float64(got[x]-want)) > 1e-5 {
					t.Errorf("cell %d: got %.4f, want %.4f", x, got[x], want)
				}
			}
		})
	}
}

func TestClipLeft(t *testing.T) {
	// The square extends to the left of the clip rectangle.
	square := []vec.Vec2{pt(-5, 2), pt(5, 2), pt(5, 6), pt(-5, 6)}
	for _, st := range strategies {
		t.Run(st.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
			r.denseLimit = st.limit
			buf := render(r, square, 10, 10)
			for y := range 10 {
				for x := range 10 {
					want := byte(0)
					if x < 5 && y >= 2 && y < 6 {
						want = 255
					}
					if got := buf[y*10+x]; got != want {
						t.Fatalf("cell (%d, %d) = %d, want %d", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestCurves(t *testing.T) {
	// a circle of radius 20, made from four cubic Bézier curves
	const k = 0.5522847498
	const c, R = 32.0, 20.0
	p := (&path.Data{}).
		MoveTo(pt(c, c-R)).
		CubeTo(pt(c+k*R, c-R), pt(c+R, c-k*R), pt(c+R, c)).
		CubeTo(pt(c+R, c+k*R), pt(c+k*R, c+R), pt(c, c+R)).
		CubeTo(pt(c-k*R, c+R), pt(c-R, c+k*R), pt(c-R, c)).
		CubeTo(pt(c-R, c-k*R), pt(c-k*R, c-R), pt(c, c-R)).
		Close()

	r := NewRasterizer(rect.Rect{URx: 64, URy: 64})
	var total float64
	r.Fill(p, func(y, xMin int, coverage []float32) {
		for _, v := range coverage {
			total += float64(v)
		}
	})
	want := math.Pi * R * R
	if math.Abs(total-want) > 0.02*want {
		t.Errorf("area = %g, want %g", total, want)
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid(20, 10, matrix.Scale(0.5, 0.5))
	if w, h := g.Size(); w != 20 || h != 10 {
		t.Fatalf("size = %dx%d", w, h)
	}

	// world (0,0)-(20,10) is cells (0,0)-(10,5)
	g.AddPolygon([]vec.Vec2{pt(0, 0), pt(20, 0), pt(20, 10), pt(0, 10)})
	g.Add((&path.Data{}).
		MoveTo(pt(10, 10)).
		LineTo(pt(30, 10)).
		LineTo(pt(30, 15)).
		LineTo(pt(10, 15)).
		Close())

	cases := []struct {
		x, y int
		want float32
	}{
		{0, 0, 1},
		{9, 4, 1},
		{10, 4, 0},
		{12, 6, 1},
		{5, 6, 1},
		{4, 6, 0},
		{7, 7, 0.5},
		{15, 2, 0},
		{-1, 0, 0},
		{0, 10, 0},
	}
	for _, tc := range cases {
		if got := g.At(tc.x, tc.y); got != tc.want {
			t.Errorf("At(%d, %d) = %g, want %g", tc.x, tc.y, got, tc.want)
		}
	}

	if !g.Visible(0, 0, 0.5) || g.Visible(15, 2, 0) {
		t.Error("wrong visibility")
	}

	g.Set(15, 2, 0.25)
	g.Set(100, 100, 1) // ignored
	if g.At(15, 2) != 0.25 || g.Visible(15, 2, 0.5) {
		t.Error("Set has no effect")
	}

	// coverage never decreases
	g.AddPolygon([]vec.Vec2{pt(0, 0), pt(0.5, 0), pt(0.5, 0.5)})
	if g.At(0, 0) != 1 {
		t.Error("coverage decreased")
	}

	img := g.Image()
	if img.GrayAt(0, 0).Y != 255 || img.GrayAt(19, 9).Y != 0 {
		t.Error("wrong image")
	}

	g.Clear()
	if g.At(0, 0) != 0 {
		t.Error("Clear has no effect")
	}
}

func BenchmarkFill(b *testing.B) {
	sizes := []int{64, 512, 2048}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := NewRasterizer(rect.Rect{URx: float64(size), URy: float64(size)})
			pts := star(float64(size))
			emit := func(y, xMin int, coverage []float32) {}

			b.ReportAllocs()
			for b.Loop() {
				r.FillPolygon(pts, emit)
			}
		})
	}
}

func BenchmarkVector(b *testing.B) {
	sizes := []int{64, 512, 2048}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})
			pts := star(float64(size))

			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
				for _, p := range pts[1:] {
					z.LineTo(float32(p.X), float32(p.Y))
				}
				z.ClosePath()
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// star returns a 32-pointed star filling a square of the given size.
func star(size float64) []vec.Vec2 {
	const n = 64
	c := size / 2
	var pts []vec.Vec2
	for i := range n {
		r := 0.45 * size
		if i%2 == 1 {
			r = 0.2 * size
		}
		phi := 2 * math.Pi * float64(i) / n
		pts = append(pts, pt(c+r*math.Cos(phi), c+r*math.Sin(phi)))
	}
	return pts
}
