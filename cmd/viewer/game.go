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

package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/coverage"
)

// fogCell is the size of a cell of the explored-area grid, in screen
// pixels.
const fogCell = 4

var (
	backgroundColor = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
	exploredColor   = color.RGBA{R: 0x38, G: 0x38, B: 0x48, A: 0xff}
	wallColor       = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	limitedColor    = color.RGBA{R: 0x80, G: 0x80, B: 0xd0, A: 0xff}
	sourceColor     = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
)

type game struct {
	scene *visibility.Scene
	cfg   *visibility.Config
	sweep *visibility.Sweep

	// cam maps scene coordinates to screen pixels.
	cam           matrix.Matrix
	width, height int

	origin    vec.Vec2
	poly      *visibility.Polygon
	coneOn    bool
	coneAngle float64

	fog      *coverage.Grid
	fogImg   *ebiten.Image
	fogPix   []byte
	whiteImg *ebiten.Image
}

func newGame(sc *visibility.Scene, cfg *visibility.Config, scale float64) *game {
	b := sc.Bounds()
	width := int(math.Ceil((b.URx - b.LLx) * scale))
	height := int(math.Ceil((b.URy - b.LLy) * scale))
	cam := matrix.Matrix{scale, 0, 0, scale, -scale * b.LLx, -scale * b.LLy}

	fw := (width + fogCell - 1) / fogCell
	fh := (height + fogCell - 1) / fogCell
	fogMatrix := cam
	for i := range fogMatrix {
		fogMatrix[i] /= fogCell
	}

	whiteImg := ebiten.NewImage(1, 1)
	whiteImg.Fill(color.White)

	coneAngle := cfg.Angle
	if coneAngle >= 360 {
		coneAngle = 90
	}

	return &game{
		scene:     sc,
		cfg:       cfg,
		sweep:     visibility.NewSweep(),
		cam:       cam,
		width:     width,
		height:    height,
		coneOn:    cfg.Angle < 360,
		coneAngle: coneAngle,
		fog:       coverage.NewGrid(fw, fh, fogMatrix),
		fogImg:    ebiten.NewImage(fw, fh),
		fogPix:    make([]byte, 4*fw*fh),
		whiteImg:  whiteImg,
		poly:      &visibility.Polygon{},
	}
}

// toScreen maps a point in scene coordinates to screen pixels.
func (g *game) toScreen(p vec.Vec2) (float32, float32) {
	m := g.cam
	return float32(m[0]*p.X + m[2]*p.Y + m[4]), float32(m[1]*p.X + m[3]*p.Y + m[5])
}

// fromScreen maps screen pixels back to scene coordinates.
func (g *game) fromScreen(x, y int) vec.Vec2 {
	m := g.cam
	return vec.Vec2{
		X: (float64(x) - m[4]) / m[0],
		Y: (float64(y) - m[5]) / m[3],
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.cfg.Channel = (g.cfg.Channel + 1) % visibility.NumChannels
		visibility.Logger().Info("channel changed", "channel", g.cfg.Channel)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.coneOn = !g.coneOn
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fog.Clear()
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.cfg.Rotation = math.Mod(g.cfg.Rotation+357, 360)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.cfg.Rotation = math.Mod(g.cfg.Rotation+3, 360)
	}
	if g.coneOn {
		g.cfg.Angle = g.coneAngle
	} else {
		g.cfg.Angle = 360
	}

	g.origin = g.fromScreen(ebiten.CursorPosition())
	poly, err := g.sweep.Compute(g.scene, g.origin, g.cfg)
	if err != nil {
		return fmt.Errorf("origin %v: %w", g.origin, err)
	}
	g.poly = poly
	if !poly.IsEmpty() {
		g.fog.AddPolygon(poly.Points)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawFog(screen)
	g.drawPolygon(screen)

	for _, e := range g.scene.Edges() {
		x0, y0 := g.toScreen(e.A)
		x1, y1 := g.toScreen(e.B)
		clr := wallColor
		switch e.Levels[g.cfg.Channel] {
		case visibility.None:
			continue
		case visibility.Limited:
			clr = limitedColor
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}

	sx, sy := g.toScreen(g.origin)
	vector.DrawFilledCircle(screen, sx, sy, 4, sourceColor, true)

	msg := fmt.Sprintf("channel %s  cone %v  points %d  area %.0f\nFPS %.1f",
		g.cfg.Channel, g.coneOn, len(g.poly.Points), g.poly.Area(), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}

// drawFog shows the area which has been seen before.
func (g *game) drawFog(screen *ebiten.Image) {
	w, h := g.fog.Size()
	for y := range h {
		for x := range w {
			c := g.fog.At(x, y)
			i := 4 * (y*w + x)
			g.fogPix[i] = uint8(float32(exploredColor.R) * c)
			g.fogPix[i+1] = uint8(float32(exploredColor.G) * c)
			g.fogPix[i+2] = uint8(float32(exploredColor.B) * c)
			g.fogPix[i+3] = uint8(255 * c)
		}
	}
	g.fogImg.WritePixels(g.fogPix)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(fogCell, fogCell)
	screen.DrawImage(g.fogImg, opts)
}

// drawPolygon fills the currently visible region.
func (g *game) drawPolygon(screen *ebiten.Image) {
	if g.poly.IsEmpty() {
		return
	}

	var p vector.Path
	for i, q := range g.poly.Points {
		x, y := g.toScreen(q)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 0
		vs[i].SrcY = 0
		vs[i].ColorR = 0.9
		vs[i].ColorG = 0.85
		vs[i].ColorB = 0.5
		vs[i].ColorA = 0.5
	}
	screen.DrawTriangles(vs, is, g.whiteImg, &ebiten.DrawTrianglesOptions{})
}

func (g *game) Layout(int, int) (int, int) {
	return g.width, g.height
}
