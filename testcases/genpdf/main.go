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

// Command genpdf plots the visibility scenarios as PDF files.
//
// Each plot shows the visible region in light gray, the edges of the
// scene in black, with Limited edges dashed, and the origin as a small
// square.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/testcases"
)

const (
	pageSize = 400.0 // longest side of the plot, in PDF points
	margin   = 20.0
)

func main() {
	outDir := flag.String("o", "testdata/plots", "output directory")
	flag.Parse()

	visibility.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		panic(err)
	}

	s := visibility.NewSweep()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			fname := filepath.Join(*outDir, name+".pdf")
			if err := plot(s, tc, fname); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func plot(s *visibility.Sweep, tc testcases.TestCase, fname string) error {
	sc, err := tc.Scene()
	if err != nil {
		return err
	}
	poly, err := s.Compute(sc, tc.Origin, tc.Config)
	if err != nil {
		return err
	}

	b := tc.Bounds
	w, h := b.URx-b.LLx, b.URy-b.LLy
	scale := pageSize / max(w, h)
	paper := &pdf.Rectangle{
		URx: scale*w + 2*margin,
		URy: scale*h + 2*margin,
	}

	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Scene coordinates have the y-axis pointing down.
	page.Transform(matrix.Matrix{
		scale, 0,
		0, -scale,
		margin - scale*b.LLx, paper.URy - margin + scale*b.LLy,
	})

	page.SetFillColor(color.DeviceGray(0.97))
	page.Rectangle(b.LLx, b.LLy, w, h)
	page.Fill()

	if !poly.IsEmpty() {
		page.SetFillColor(color.DeviceGray(0.8))
		p := poly.Path()
		k := 0
		for _, cmd := range p.Cmds {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(p.Coords[k].X, p.Coords[k].Y)
				k++
			case path.CmdLineTo:
				page.LineTo(p.Coords[k].X, p.Coords[k].Y)
				k++
			case path.CmdClose:
				page.ClosePath()
			}
		}
		page.Fill()
	}

	page.SetLineCap(graphics.LineCapRound)
	page.SetLineWidth(1.5 / scale)
	page.SetStrokeColor(color.DeviceGray(0))
	for _, e := range sc.Edges() {
		if e.Levels[configOf(tc).Channel] == visibility.Limited {
			page.SetLineDash([]float64{4 / scale, 3 / scale}, 0)
		} else {
			page.SetLineDash(nil, 0)
		}
		page.MoveTo(e.A.X, e.A.Y)
		page.LineTo(e.B.X, e.B.Y)
		page.Stroke()
	}

	r := 3 / scale
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(tc.Origin.X-r, tc.Origin.Y-r, 2*r, 2*r)
	page.Fill()

	return page.Close()
}

func configOf(tc testcases.TestCase) *visibility.Config {
	if tc.Config != nil {
		return tc.Config
	}
	return visibility.DefaultConfig()
}
