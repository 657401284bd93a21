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
	"cmp"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/clip"
	"seehuhn.de/go/visibility/internal/plane"
)

// collinearEps is the largest angle difference, in radians, for which
// two vertices are considered to lie on the same ray from the origin.
const collinearEps = 1e-12

// thresholdMode selects how Proximity and Distance edges are handled
// during one sweep.
type thresholdMode uint8

const (
	// thresholdOff makes threshold edges block like Normal edges.
	thresholdOff thresholdMode = iota

	// thresholdEnforced drops threshold edges within their threshold,
	// except for attenuating edges which keep blocking.
	thresholdEnforced

	// thresholdRelaxed drops all threshold edges within their threshold.
	thresholdRelaxed
)

// Sweep computes visibility polygons.  A Sweep holds working buffers,
// which are reused between computations to reduce allocations.
//
// A Sweep is not safe for concurrent use.  Queries update bookkeeping
// inside the Scene, so a Scene must not be used by several Sweeps at the
// same time either.
type Sweep struct {
	scene  *Scene
	origin vec.Vec2
	cfg    *Config
	mode   thresholdMode

	shapes  []clip.Shape
	bbox    rect.Rect
	rayDist float64

	candidates []*Edge
	edges      []sweepEdge
	byID       map[EdgeID]int32
	vertices   []vertex
	keys       map[plane.Key]int32
	order      []int32
	active     []int32
	ray        []rayPoint
	points     []vec.Vec2
	mark       int
}

// NewSweep allocates a new Sweep.
func NewSweep() *Sweep {
	return &Sweep{
		byID: make(map[EdgeID]int32),
		keys: make(map[plane.Key]int32),
	}
}

// Compute returns the region visible from origin.  A nil cfg is the same
// as DefaultConfig().
//
// The result is empty if the origin lies outside the scene bounds, or if
// the radius or the angle of the configuration is zero.
func Compute(sc *Scene, origin vec.Vec2, cfg *Config) (*Polygon, error) {
	return NewSweep().Compute(sc, origin, cfg)
}

// Compute returns the region visible from origin.  See the package-level
// function Compute for details.
func (s *Sweep) Compute(sc *Scene, origin vec.Vec2, cfg *Config) (*Polygon, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Radius <= 0 || cfg.Angle <= 0 || !plane.Contains(sc.Bounds(), origin) {
		return &Polygon{}, nil
	}

	mode := thresholdOff
	if cfg.UseThreshold {
		mode = thresholdEnforced
	}
	pts, err := s.run(sc, origin, cfg, mode)
	if err != nil {
		return nil, err
	}
	if mode == thresholdEnforced && len(pts) >= 3 {
		pts, err = s.attenuate(sc, origin, cfg, pts)
		if err != nil {
			return nil, err
		}
	}
	return newPolygon(pts), nil
}

// run performs one complete sweep and returns a newly allocated polygon.
func (s *Sweep) run(sc *Scene, origin vec.Vec2, cfg *Config, mode thresholdMode) ([]vec.Vec2, error) {
	s.reset(sc, origin, cfg, mode)
	s.boundaryShapes()
	if !s.boundingBox() {
		return nil, nil
	}
	s.identifyEdges()
	s.identifyVertices()
	s.sweep()
	s.closePoints()

	Logger().Debug("visibility sweep",
		"origin", origin,
		"edges", len(s.edges),
		"vertices", len(s.vertices),
		"points", len(s.points))

	return s.constrain()
}

func (s *Sweep) reset(sc *Scene, origin vec.Vec2, cfg *Config, mode thresholdMode) {
	s.scene = sc
	s.origin = origin
	s.cfg = cfg
	s.mode = mode
	s.shapes = s.shapes[:0]
	clear(s.candidates)
	s.candidates = s.candidates[:0]
	s.edges = s.edges[:0]
	clear(s.byID)
	s.vertices = s.vertices[:0]
	clear(s.keys)
	s.order = s.order[:0]
	s.active = s.active[:0]
	s.ray = s.ray[:0]
	s.points = s.points[:0]
	s.mark = 0
}

// boundaryShapes collects the shapes which restrict the result: the cone,
// the radius and the caller's shapes, in this order.
func (s *Sweep) boundaryShapes() {
	cfg := s.cfg
	density := cfg.density()
	if cfg.limitedAngle() {
		r := cfg.Radius
		if !cfg.limitedRadius() {
			r = s.scene.reach()
		}
		mid := (cfg.Rotation + 90) * math.Pi / 180
		sweep := cfg.Angle * math.Pi / 180
		s.shapes = append(s.shapes, clip.NewWedge(s.origin, r, mid, sweep, density))
	}
	if cfg.limitedRadius() {
		s.shapes = append(s.shapes, &clip.Circle{
			Center:  s.origin,
			Radius:  cfg.Radius,
			Density: density,
		})
	}
	s.shapes = append(s.shapes, cfg.Shapes...)
}

// boundingBox computes the integer rectangle which contains the result.
// It returns false if the origin is not inside this rectangle.
func (s *Sweep) boundingBox() bool {
	b := s.scene.Bounds()
	for _, sh := range s.shapes {
		var ok bool
		b, ok = plane.Intersect(b, sh.Bounds())
		if !ok {
			return false
		}
	}
	b = rect.Rect{
		LLx: math.Floor(b.LLx) - 1,
		LLy: math.Floor(b.LLy) - 1,
		URx: math.Ceil(b.URx) + 1,
		URy: math.Ceil(b.URy) + 1,
	}
	if !plane.StrictlyContains(b, s.origin) {
		return false
	}
	s.bbox = b
	s.rayDist = math.Hypot(b.URx-b.LLx, b.URy-b.LLy) + 1
	return true
}

// sweep visits all vertices in clockwise order and records the polygon
// points.
func (s *Sweep) sweep() {
	s.order = slices.Grow(s.order[:0], len(s.vertices))
	for i := range s.vertices {
		s.order = append(s.order, int32(i))
	}
	slices.SortFunc(s.order, func(i, j int32) int {
		a, b := &s.vertices[i], &s.vertices[j]
		if c := cmp.Compare(a.angle, b.angle); c != 0 {
			return c
		}
		if c := cmp.Compare(a.dist2, b.dist2); c != 0 {
			return c
		}
		if c := cmp.Compare(a.key.X, b.key.X); c != 0 {
			return c
		}
		return cmp.Compare(a.key.Y, b.key.Y)
	})

	s.initialActive()

	n := len(s.order)
	for i := 0; i < n; {
		first := s.vertices[s.order[i]].angle
		j := i + 1
		for j < n && s.vertices[s.order[j]].angle-first <= collinearEps {
			j++
		}
		group := s.order[i:j]
		if len(group) > 1 {
			slices.SortStableFunc(group, func(i, j int32) int {
				return cmp.Compare(s.vertices[i].dist2, s.vertices[j].dist2)
			})
		}
		s.visitGroup(group)
		i = j
	}
}

// initialActive finds the edges which cross the ray pointing west from
// the origin, where the sweep starts.
func (s *Sweep) initialActive() {
	west := vec.Vec2{X: s.origin.X - s.rayDist, Y: s.origin.Y}
	for i := range s.edges {
		e := &s.edges[i]
		if plane.SegmentsIntersect(s.origin, west, e.a, e.b) {
			s.activate(int32(i))
		}
	}
}

// visitGroup processes a run of vertices on a common ray from the origin.
// The group is ordered by distance from the origin.
func (s *Sweep) visitGroup(group []int32) {
	s.mark++
	for _, vi := range group {
		v := &s.vertices[vi]
		for _, ei := range v.cw {
			s.edges[ei].mark = s.mark
		}
		for _, ei := range v.ccw {
			s.edges[ei].mark = s.mark
		}
	}
	for _, vi := range group {
		s.updateActive(vi)
	}

	behind, wasLimited := s.isBehind(group[0])
	if !behind {
		s.classify(group, wasLimited)
	}

	for _, vi := range group {
		s.vertices[vi].visited = true
	}
}

// updateActive removes the edges ending at vertex vi from the active set
// and adds the edges starting there.
func (s *Sweep) updateActive(vi int32) {
	v := &s.vertices[vi]
	for _, ei := range v.ccw {
		if !slices.Contains(v.cw, ei) {
			s.deactivate(ei)
		}
	}
	for _, ei := range v.cw {
		e := &s.edges[ei]
		if s.vertices[e.va].visited && s.vertices[e.vb].visited {
			continue
		}
		s.activate(ei)
	}
}

func (s *Sweep) activate(ei int32) {
	e := &s.edges[ei]
	if e.active >= 0 {
		return
	}
	e.active = int32(len(s.active))
	s.active = append(s.active, ei)
}

func (s *Sweep) deactivate(ei int32) {
	e := &s.edges[ei]
	pos := e.active
	if pos < 0 {
		return
	}
	last := s.active[len(s.active)-1]
	s.active[pos] = last
	s.edges[last].active = pos
	s.active = s.active[:len(s.active)-1]
	e.active = -1
}

// isBehind reports whether vertex vi is hidden from the origin by an
// active edge.  A single Limited edge in front of the vertex does not hide
// it; in this case wasLimited is true.
func (s *Sweep) isBehind(vi int32) (behind, wasLimited bool) {
	v := &s.vertices[vi]
	for _, ei := range s.active {
		e := &s.edges[ei]
		if e.mark == s.mark {
			continue
		}
		oo := plane.Orient(e.a, e.b, s.origin)
		ov := plane.Orient(e.a, e.b, v.p)
		if !(oo > 0 && ov < 0 || oo < 0 && ov > 0) {
			continue
		}
		if e.level == Limited && !wasLimited {
			wasLimited = true
			continue
		}
		return true, wasLimited
	}
	return false, wasLimited
}

// classify decides which points a visible vertex contributes.
func (s *Sweep) classify(group []int32, wasLimited bool) {
	v := &s.vertices[group[0]]
	collinear := len(group) > 1

	cwLimiting := v.limitingCW && !wasLimited
	ccwLimiting := v.limitingCCW && !wasLimited
	cwBlocking := v.blockingCW || v.limitingCW && wasLimited
	ccwBlocking := v.blockingCCW || v.limitingCCW && wasLimited

	switch {
	case len(v.ccw) == 0:
		s.castRay(group)
	case !collinear && cwLimiting && ccwLimiting:
		// The ray passes a chain of Limited edges.
	case cwBlocking && ccwBlocking:
		s.addPoint(v.p)
	default:
		s.castRay(group)
	}
}

// constrain applies the boundary shapes to the swept polygon and returns
// the result in newly allocated memory.
func (s *Sweep) constrain() ([]vec.Vec2, error) {
	if len(s.points) < 3 {
		return nil, nil
	}
	loop := slices.Clone(s.points)
	for _, sh := range s.shapes {
		res, err := clip.Clip(loop, sh, clip.Intersect)
		if err != nil {
			return nil, fmt.Errorf("restricting to %T: %w", sh, err)
		}
		if len(res) == 0 {
			return nil, nil
		}
		if len(res) > 1 {
			Logger().Warn("clip produced several polygons",
				"shape", fmt.Sprintf("%T", sh),
				"count", len(res))
		}
		loop = res[0]
	}
	return loop, nil
}
