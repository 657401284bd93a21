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

// Package visibility computes the region of a 2D scene which can be seen,
// lit or heard from a point.
//
// A [Scene] holds occluding segments ([Edge]) in a quadtree.  [Compute]
// sweeps a ray clockwise around the origin and records where it meets the
// nearest blocking edge.  The resulting [Polygon] is then restricted to
// the radius, the cone and any extra [clip.Shape] given in the [Config].
//
// Coordinates follow the screen convention: x grows to the right and y
// grows downwards.  "Clockwise" always refers to the picture on screen.
// Result polygons run clockwise.
//
// The same edges can be used for collision tests along a segment, see
// [Sweep.Collisions].
package visibility

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genpdf
