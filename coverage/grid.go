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
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Grid records, for every cell, the largest coverage seen so far.
type Grid struct {
	width, height int
	cells         []float32
	r             *Rasterizer
}

// NewGrid returns an empty grid with the given number of cells.  The
// transform m maps world coordinates to cell coordinates.
func NewGrid(width, height int, m matrix.Matrix) *Grid {
	r := NewRasterizer(rect.Rect{URx: float64(width), URy: float64(height)})
	r.Transform = m
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]float32, width*height),
		r:      r,
	}
}

// Size returns the number of columns and rows of the grid.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Transform returns the world to cell transform of the grid.
func (g *Grid) Transform() matrix.Matrix {
	return g.r.Transform
}

// Clear sets all cells to zero.
func (g *Grid) Clear() {
	clear(g.cells)
}

// At returns the coverage of cell (x, y).  Cells outside the grid have
// coverage 0.
func (g *Grid) At(x, y int) float32 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0
	}
	return g.cells[y*g.width+x]
}

// Set changes the coverage of cell (x, y).  Cells outside the grid are
// ignored.
func (g *Grid) Set(x, y int, v float32) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = v
}

// Visible reports whether the coverage of cell (x, y) exceeds threshold.
func (g *Grid) Visible(x, y int, threshold float32) bool {
	return g.At(x, y) > threshold
}

// Add merges the region enclosed by p into the grid.
func (g *Grid) Add(p *path.Data) {
	g.r.Fill(p, g.merge)
}

// AddPolygon merges the closed polygon with the given vertices into the
// grid.
func (g *Grid) AddPolygon(pts []vec.Vec2) {
	g.r.FillPolygon(pts, g.merge)
}

func (g *Grid) merge(y, xMin int, coverage []float32) {
	row := g.cells[y*g.width+xMin:]
	for i, c := range coverage {
		row[i] = max(row[i], c)
	}
}

// Image returns the grid as a grayscale image, with coverage 1 shown as
// white.
func (g *Grid) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.width, g.height))
	for y := range g.height {
		for x := range g.width {
			c := g.cells[y*g.width+x]
			img.SetGray(x, y, color.Gray{Y: uint8(min(255, int(c*256)))})
		}
	}
	return img
}
