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

// Package coverage converts visibility polygons into per-cell coverage on
// an integer grid.
//
// The Rasterizer computes, for every grid cell, the fraction of the cell
// covered by a filled path, using the nonzero winding rule.  A Grid keeps
// the largest coverage seen for each cell over several polygons, for
// example to remember which parts of a map have been explored.
package coverage

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	// flatEps is the smallest vertical extent, in grid units, for which a
	// segment contributes to coverage.
	flatEps = 1e-10

	// denseLimit is the largest bounding box area, in cells, which is
	// filled using one buffer for the whole box.  Larger paths are filled
	// one row at a time using a list of active segments.
	denseLimit = 1 << 16

	defaultFlatness = 0.25
)

// segment is a line segment in grid coordinates.
type segment struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (s *segment) xAt(y float64) float64 {
	return s.x0 + s.dxdy*(y-s.y0)
}

func (s *segment) top() float64    { return min(s.y0, s.y1) }
func (s *segment) bottom() float64 { return max(s.y0, s.y1) }

// Rasterizer computes cell coverage for filled paths.  Buffers are kept
// between calls, so that a Rasterizer which is reused does not allocate.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Transform maps world coordinates to grid coordinates.  Cell (x, y)
	// covers the unit square with top-left corner (x, y).
	Transform matrix.Matrix

	// Clip is the range of cells which are computed.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the largest distance, in grid units, between a curve and
	// the line segments used to approximate it.
	Flatness float64

	denseLimit int

	cover []float32
	area  []float32
	segs  []segment
	live  []int
	used  []bool

	hasBox       bool
	boxX0, boxX1 float64
	boxY0, boxY1 float64
}

// NewRasterizer returns a Rasterizer for the cells in clip, using the
// identity transform.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Transform:  matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		denseLimit: denseLimit,
	}
}

// Reset changes the clip rectangle and restores the identity transform.
// Internal buffers are kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.Transform = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
}

// FillPolygon fills the closed polygon with the given vertices.  See Fill
// for the meaning of emit.
func (r *Rasterizer) FillPolygon(pts []vec.Vec2, emit func(y, xMin int, coverage []float32)) {
	r.startPath()
	if len(pts) < 3 {
		return
	}
	for i, p := range pts {
		r.addSegment(p, pts[(i+1)%len(pts)])
	}
	r.fill(emit)
}

// Fill fills p using the nonzero winding rule.  Open subpaths are closed
// implicitly.  For every row with non-zero coverage, emit is called with
// the row index, the first cell of the row which is covered, and the
// coverage values, ranging from 0 to 1.  The coverage slice is only valid
// during the call.
func (r *Rasterizer) Fill(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.startPath()

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addSegment(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addSegment(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.addCurve(cur, p.Coords[k:k+2])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.addCurve(cur, p.Coords[k:k+3])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addSegment(cur, start)
			}
			cur = start
		}
	}
	if cur != start {
		r.addSegment(cur, start)
	}

	r.fill(emit)
}

func (r *Rasterizer) startPath() {
	r.segs = r.segs[:0]
	r.hasBox = false
}

// apply maps a point from world to grid coordinates.
func (r *Rasterizer) apply(p vec.Vec2) vec.Vec2 {
	m := r.Transform
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// addCurve replaces a Bézier curve by line segments.  The curve starts at
// p0; ctrl holds the remaining control points, the last of which is the
// end point.
func (r *Rasterizer) addCurve(p0 vec.Vec2, ctrl []vec.Vec2) {
	// The deviation of the curve from its chord is bounded by the size of
	// the second differences of the control polygon, in grid units.
	var buf [4]vec.Vec2
	pts := append(buf[:0], r.apply(p0))
	for _, c := range ctrl {
		pts = append(pts, r.apply(c))
	}
	var dev float64
	for i := 0; i+2 < len(pts); i++ {
		d := pts[i].Sub(pts[i+1].Mul(2)).Add(pts[i+2])
		dev = max(dev, d.Length())
	}
	n := 1
	if dev > 0 {
		deg := float64(len(pts) - 1)
		n = max(1, int(math.Ceil(math.Sqrt(deg*(deg-1)*dev/(8*r.Flatness)))))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		q := bezier(p0, ctrl, float64(i)/float64(n))
		r.addSegment(prev, q)
		prev = q
	}
}

// bezier evaluates a quadratic or cubic Bézier curve at t.
func bezier(p0 vec.Vec2, ctrl []vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	if len(ctrl) == 2 {
		return p0.Mul(s * s).Add(ctrl[0].Mul(2 * s * t)).Add(ctrl[1].Mul(t * t))
	}
	return p0.Mul(s * s * s).
		Add(ctrl[0].Mul(3 * s * s * t)).
		Add(ctrl[1].Mul(3 * s * t * t)).
		Add(ctrl[2].Mul(t * t * t))
}

// addSegment adds the segment from world point a to world point b.
func (r *Rasterizer) addSegment(a, b vec.Vec2) {
	p := r.apply(a)
	q := r.apply(b)

	dy := q.Y - p.Y
	if math.Abs(dy) < flatEps {
		return
	}
	r.segs = append(r.segs, segment{
		x0: p.X, y0: p.Y,
		x1: q.X, y1: q.Y,
		dxdy: (q.X - p.X) / dy,
	})

	if !r.hasBox {
		r.boxX0, r.boxX1 = p.X, p.X
		r.boxY0, r.boxY1 = p.Y, p.Y
		r.hasBox = true
	}
	r.boxX0 = min(r.boxX0, p.X, q.X)
	r.boxX1 = max(r.boxX1, p.X, q.X)
	r.boxY0 = min(r.boxY0, p.Y, q.Y)
	r.boxY1 = max(r.boxY1, p.Y, q.Y)
}

// box returns the range of cells touched by the segments, clipped to
// r.Clip.
func (r *Rasterizer) box() (x0, x1, y0, y1 int, ok bool) {
	if len(r.segs) == 0 {
		return 0, 0, 0, 0, false
	}
	x0 = max(int(math.Floor(r.boxX0)), int(r.Clip.LLx))
	x1 = min(int(math.Floor(r.boxX1))+1, int(r.Clip.URx))
	y0 = max(int(math.Floor(r.boxY0)), int(r.Clip.LLy))
	y1 = min(int(math.Floor(r.boxY1))+1, int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return x0, x1, y0, y1, true
}

func (r *Rasterizer) fill(emit func(y, xMin int, coverage []float32)) {
	x0, x1, y0, y1, ok := r.box()
	if !ok {
		return
	}
	if (x1-x0)*(y1-y0) < r.denseLimit {
		r.fillDense(x0, x1, y0, y1, emit)
	} else {
		r.fillRows(x0, x1, y0, y1, emit)
	}
}

// fillDense accumulates all segments into one buffer covering the
// bounding box, then integrates the rows.
func (r *Rasterizer) fillDense(x0, x1, y0, y1 int, emit func(y, xMin int, coverage []float32)) {
	w := x1 - x0
	h := y1 - y0
	r.cover = grow(r.cover, w*h)
	r.area = grow(r.area, w*h)
	r.used = slices.Grow(r.used[:0], h)[:h]
	clear(r.used)

	for i := range r.segs {
		s := &r.segs[i]
		first := max(int(math.Floor(s.top())), y0)
		last := min(int(math.Floor(s.bottom()))+1, y1)
		for y := first; y < last; y++ {
			row := (y - y0) * w
			accumulate(s, y, r.cover[row:row+w], r.area[row:row+w], x0)
			r.used[y-y0] = true
		}
	}

	for k := range h {
		if !r.used[k] {
			continue
		}
		row := r.cover[k*w : (k+1)*w]
		integrate(row, r.area[k*w:(k+1)*w])
		if span, off := nonzeroSpan(row); span != nil {
			emit(y0+k, x0+off, span)
		}
	}
}

// fillRows processes one row at a time, keeping the list of segments
// which intersect the current row.
func (r *Rasterizer) fillRows(x0, x1, y0, y1 int, emit func(y, xMin int, coverage []float32)) {
	w := x1 - x0
	r.cover = grow(r.cover, w)
	r.area = grow(r.area, w)

	slices.SortFunc(r.segs, func(a, b segment) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})
	r.live = r.live[:0]
	next := 0

	for y := y0; y < y1; y++ {
		rowTop := float64(y)
		rowBot := float64(y + 1)

		for next < len(r.segs) && r.segs[next].top() < rowBot {
			r.live = append(r.live, next)
			next++
		}
		if len(r.live) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.live); {
			s := &r.segs[r.live[i]]
			if s.bottom() <= rowTop {
				r.live[i] = r.live[len(r.live)-1]
				r.live = r.live[:len(r.live)-1]
				continue
			}
			if accumulate(s, y, r.cover, r.area, x0) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area)
		if span, off := nonzeroSpan(r.cover); span != nil {
			emit(y, x0+off, span)
		}
	}
}

// accumulate adds the part of s within row y to the accumulators, which
// hold the cells x0, x0+1, ..., x0+len(cover)-1.  For each cell, cover
// receives the signed height of the segment inside the cell column, and
// area receives the same height weighted by the fraction of the cell to
// the right of the segment.  The contributions of cells to the left of x0
// are folded into cell x0.
//
// The return value reports whether the row received any contribution.
func accumulate(s *segment, y int, cover, area []float32, x0 int) bool {
	top := max(float64(y), s.top())
	bot := min(float64(y+1), s.bottom())
	if bot <= top {
		return false
	}
	sign := float32(1)
	if s.y1 < s.y0 {
		sign = -1
	}

	xt := s.xAt(top)
	xb := s.xAt(bot)
	c0 := int(math.Floor(min(xt, xb)))
	c1 := int(math.Floor(max(xt, xb)))
	if c0 >= x0+len(cover) {
		return false
	}

	if c0 == c1 {
		addCell(cover, area, x0, c0, sign*float32(bot-top), (xt+xb)/2)
		return true
	}

	dydx := 1 / s.dxdy
	for c := c0; c <= c1 && c < x0+len(cover); c++ {
		ya := s.y0 + dydx*(float64(c)-s.x0)
		yb := s.y0 + dydx*(float64(c+1)-s.x0)
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bot)
		if hi <= lo {
			continue
		}
		addCell(cover, area, x0, c, sign*float32(hi-lo), s.xAt((lo+hi)/2))
	}
	return true
}

func addCell(cover, area []float32, x0, c int, dy float32, xMid float64) {
	if c < x0 {
		cover[0] += dy
		area[0] += dy
		return
	}
	i := c - x0
	if i >= len(cover) {
		return
	}
	cover[i] += dy
	area[i] += dy * float32(1-(xMid-float64(c)))
}

// integrate turns the accumulated values of one row into coverage, using
// the nonzero winding rule.  The result overwrites cover.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// nonzeroSpan strips zero values from both ends of row.
func nonzeroSpan(row []float32) ([]float32, int) {
	lo := 0
	for lo < len(row) && row[lo] == 0 {
		lo++
	}
	if lo == len(row) {
		return nil, 0
	}
	hi := len(row)
	for row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}

// grow returns a zeroed slice of length n, reusing buf if possible.
func grow(buf []float32, n int) []float32 {
	buf = slices.Grow(buf[:0], n)[:n]
	clear(buf)
	return buf
}
