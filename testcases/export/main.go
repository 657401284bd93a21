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

// Command export writes the visibility scenarios, together with the
// computed polygons, as a GeoJSON feature collection.
//
// Scene coordinates are written unchanged, so the y-axis of the exported
// geometry points down.
package main

import (
	"flag"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/testcases"
)

func main() {
	outFile := flag.String("o", "testdata/scenarios.geojson", "output file")
	flag.Parse()

	visibility.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	fc := geojson.NewFeatureCollection()
	s := visibility.NewSweep()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			if err := addCase(fc, s, category, tc); err != nil {
				panic(err)
			}
		}
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(*outFile, data, 0644); err != nil {
		panic(err)
	}
}

func addCase(fc *geojson.FeatureCollection, s *visibility.Sweep, category string, tc testcases.TestCase) error {
	name := category + "_" + tc.Name

	sc, err := tc.Scene()
	if err != nil {
		return err
	}
	poly, err := s.Compute(sc, tc.Origin, tc.Config)
	if err != nil {
		return err
	}

	channel := visibility.Sight
	if tc.Config != nil {
		channel = tc.Config.Channel
	}

	f := geojson.NewFeature(orb.Polygon{toRing(poly.Points)})
	f.Properties["case"] = name
	f.Properties["kind"] = "visible"
	f.Properties["area"] = poly.Area()
	fc.Append(f)

	f = geojson.NewFeature(toPoint(tc.Origin))
	f.Properties["case"] = name
	f.Properties["kind"] = "origin"
	fc.Append(f)

	for _, e := range sc.Edges() {
		f = geojson.NewFeature(orb.LineString{toPoint(e.A), toPoint(e.B)})
		f.Properties["case"] = name
		f.Properties["kind"] = "edge"
		f.Properties["id"] = string(e.ID)
		f.Properties["type"] = e.Type.String()
		f.Properties["level"] = e.Levels[channel].String()
		f.Properties["direction"] = e.Direction.String()
		fc.Append(f)
	}
	return nil
}

func toPoint(p vec.Vec2) orb.Point {
	return orb.Point{p.X, p.Y}
}

// toRing converts a polygon outline to a closed GeoJSON ring.
func toRing(pts []vec.Vec2) orb.Ring {
	if len(pts) == 0 {
		return orb.Ring{}
	}
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, toPoint(p))
	}
	return append(ring, ring[0])
}
