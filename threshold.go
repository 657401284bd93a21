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
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/clip"
	"seehuhn.de/go/visibility/internal/plane"
)

// attenuate extends the polygon through attenuating threshold edges.
//
// Every attenuating edge whose threshold applies yields a radius up to
// which the source sees through it.  The region visible with all such
// edges removed, cut to this radius, is merged into the polygon.  The
// circles are concentric, so only the largest radius matters.
func (s *Sweep) attenuate(sc *Scene, origin vec.Vec2, cfg *Config, pts []vec.Vec2) ([]vec.Vec2, error) {
	radius := attenuationRadius(sc, origin, cfg)
	if radius <= 0 {
		return pts, nil
	}

	relaxed, err := s.run(sc, origin, cfg, thresholdRelaxed)
	if err != nil {
		return nil, err
	}
	if len(relaxed) < 3 {
		return pts, nil
	}

	circle := &clip.Circle{Center: origin, Radius: radius, Density: cfg.density()}
	parts, err := clip.Clip(relaxed, circle, clip.Intersect)
	if err != nil {
		return nil, fmt.Errorf("attenuation: %w", err)
	}
	if len(parts) == 0 {
		return pts, nil
	}
	extra, err := clip.NewPolygon(parts[0])
	if err != nil {
		return pts, nil
	}
	merged, err := clip.Clip(pts, extra, clip.Union)
	if err != nil {
		return nil, fmt.Errorf("attenuation: %w", err)
	}
	if len(merged) != 1 {
		Logger().Warn("attenuation union produced several polygons",
			"count", len(merged))
		if len(merged) == 0 {
			return pts, nil
		}
	}
	return merged[0], nil
}

// attenuationRadius returns the largest distance up to which the source
// sees through an attenuating threshold edge, or 0 if there is no such
// edge.
func attenuationRadius(sc *Scene, origin vec.Vec2, cfg *Config) float64 {
	total := cfg.Radius
	if !cfg.limitedRadius() {
		total = sc.reach()
	}
	area := rect.Rect{
		LLx: origin.X - total,
		LLy: origin.Y - total,
		URx: origin.X + total,
		URy: origin.Y + total,
	}

	var best float64
	for _, e := range sc.index.Query(area, nil) {
		level := e.Levels[cfg.Channel]
		if !level.IsThreshold() {
			continue
		}
		th := e.Thresholds[cfg.Channel]
		if !th.Attenuation {
			continue
		}
		if minPri, ok := cfg.minPriority(e.Type); !ok || e.Priority < minPri {
			continue
		}
		if e.Height != nil && !e.Height.Contains(cfg.Elevation) {
			continue
		}
		if !thresholdApplies(origin, cfg.ExternalRadius, e, level, th) {
			continue
		}

		inside := plane.Dist(origin, plane.ClosestPoint(origin, e.A, e.B))
		if inside >= total {
			continue
		}
		outside := total - inside
		r := inside + attenuatedDistance(level, th, inside, outside, cfg.ExternalRadius, cfg.AttenuationMultiplier)
		best = max(best, r)
	}
	return best
}

// attenuatedDistance returns how far beyond a threshold edge the source
// still sees.  The edge is at distance inside from the source, and the
// source range extends outside units beyond the edge.
func attenuatedDistance(level Level, th Threshold, inside, outside, ext, mult float64) float64 {
	if mult <= 0 {
		return outside
	}

	var src float64
	if level == Proximity {
		src = max(inside-ext, 0)
	} else {
		src = inside + ext
	}
	pct := src / th.Distance

	var inv float64
	if level == Proximity {
		inv = 1 - pct
	} else {
		inv = min(1, pct-1)
	}
	if inv >= 1 {
		return outside
	}

	a := inv / (2 * (1 - inv)) * mult
	d := a * th.Distance
	if math.IsNaN(d) || d < 0 {
		return 0
	}
	return min(d, outside)
}
