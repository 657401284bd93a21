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

// Package scenefile reads scene descriptions in YAML format.
//
// A scene file lists the bounds of the scene, its walls and a number of
// named sources:
//
//	bounds: [0, 0, 400, 300]
//	walls:
//	  - id: north
//	    from: [10, 10]
//	    to: [390, 10]
//	  - from: [200, 10]
//	    to: [200, 150]
//	    levels: {sight: limited, sound: none}
//	    direction: left
//	sources:
//	  - name: guard
//	    position: [100, 100]
//	    radius: 120
//	    angle: 90
//
// Walls without an id are assigned a random one.  Unspecified blocking
// levels default to normal.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility"
)

// ErrInvalid is returned for scene files with invalid content.
var ErrInvalid = errors.New("invalid scene file")

// File is the content of a scene file.
type File struct {
	Bounds  [4]float64 `yaml:"bounds"` // x0, y0, x1, y1
	Walls   []Wall     `yaml:"walls"`
	Sources []Source   `yaml:"sources"`
}

// Point is a location in scene coordinates.
type Point [2]float64

// Vec converts p to a vector.
func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: p[0], Y: p[1]}
}

// Wall describes one edge of the scene.
type Wall struct {
	ID   string `yaml:"id,omitempty"`
	From Point  `yaml:"from"`
	To   Point  `yaml:"to"`
	Type string `yaml:"type,omitempty"` // "wall" or "darkness"

	// Levels maps channel names to level names.
	Levels map[string]string `yaml:"levels,omitempty"`

	// Thresholds maps channel names to threshold parameters.
	Thresholds map[string]Threshold `yaml:"thresholds,omitempty"`

	Direction string      `yaml:"direction,omitempty"`
	Priority  float64     `yaml:"priority,omitempty"`
	Height    *[2]float64 `yaml:"height,omitempty"` // bottom, top
}

// Threshold gives the parameters of a Proximity or Distance wall.
type Threshold struct {
	Distance    float64 `yaml:"distance"`
	Attenuation bool    `yaml:"attenuation,omitempty"`
}

// Source describes a named point from which visibility is computed.
// Omitted fields take the values of visibility.DefaultConfig().
type Source struct {
	Name     string `yaml:"name"`
	Position Point  `yaml:"position"`
	Channel  string `yaml:"channel,omitempty"`

	Radius         *float64 `yaml:"radius,omitempty"`
	ExternalRadius float64  `yaml:"external_radius,omitempty"`
	Angle          *float64 `yaml:"angle,omitempty"`
	Rotation       float64  `yaml:"rotation,omitempty"`

	DirectionMode string             `yaml:"direction_mode,omitempty"`
	EdgeTypes     map[string]float64 `yaml:"edge_types,omitempty"`
	UseThreshold  *bool              `yaml:"use_threshold,omitempty"`
	Attenuation   *float64           `yaml:"attenuation,omitempty"`

	Density   int     `yaml:"density,omitempty"`
	Elevation float64 `yaml:"elevation,omitempty"`
}

// Load reads a scene file from disk.
func Load(fname string) (*File, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return f, nil
}

// Parse decodes a scene file.  Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	f := &File{}
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	b := f.bounds()
	if !(b.URx > b.LLx && b.URy > b.LLy) {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrInvalid, f.Bounds)
	}

	seen := make(map[string]bool, len(f.Walls))
	for i := range f.Walls {
		w := &f.Walls[i]
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("%w: duplicate wall %q", ErrInvalid, w.ID)
		}
		seen[w.ID] = true
	}

	names := make(map[string]bool, len(f.Sources))
	for _, s := range f.Sources {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: source without name", ErrInvalid)
		}
		if names[s.Name] {
			return nil, fmt.Errorf("%w: duplicate source %q", ErrInvalid, s.Name)
		}
		names[s.Name] = true
	}

	return f, nil
}

func (f *File) bounds() rect.Rect {
	return rect.Rect{LLx: f.Bounds[0], LLy: f.Bounds[1], URx: f.Bounds[2], URy: f.Bounds[3]}
}

// Scene builds the scene described by the file.
func (f *File) Scene() (*visibility.Scene, error) {
	sc := visibility.NewScene(f.bounds())
	for i := range f.Walls {
		e, err := f.Walls[i].Edge()
		if err != nil {
			return nil, err
		}
		if err := sc.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// Source returns the source with the given name.
func (f *File) Source(name string) (*Source, bool) {
	for i := range f.Sources {
		if f.Sources[i].Name == name {
			return &f.Sources[i], true
		}
	}
	return nil, false
}

// Edge converts the wall into a scene edge.
func (w *Wall) Edge() (*visibility.Edge, error) {
	e := visibility.NewWall(visibility.EdgeID(w.ID), w.From.Vec(), w.To.Vec())
	e.Priority = w.Priority

	var err error
	if w.Type != "" {
		e.Type, err = visibility.ParseEdgeType(w.Type)
		if err != nil {
			return nil, w.wrap(err)
		}
	}
	if w.Direction != "" {
		e.Direction, err = visibility.ParseDirection(w.Direction)
		if err != nil {
			return nil, w.wrap(err)
		}
	}
	for name, l := range w.Levels {
		c, err := visibility.ParseChannel(name)
		if err != nil {
			return nil, w.wrap(err)
		}
		e.Levels[c], err = visibility.ParseLevel(l)
		if err != nil {
			return nil, w.wrap(err)
		}
	}
	for name, th := range w.Thresholds {
		c, err := visibility.ParseChannel(name)
		if err != nil {
			return nil, w.wrap(err)
		}
		if th.Distance < 0 {
			return nil, w.wrap(fmt.Errorf("negative threshold %g", th.Distance))
		}
		e.Thresholds[c] = visibility.Threshold{
			Distance:    th.Distance,
			Attenuation: th.Attenuation,
		}
	}
	if w.Height != nil {
		if w.Height[0] > w.Height[1] {
			return nil, w.wrap(fmt.Errorf("empty height range %v", *w.Height))
		}
		e.Height = &visibility.Span{Bottom: w.Height[0], Top: w.Height[1]}
	}
	return e, nil
}

func (w *Wall) wrap(err error) error {
	return fmt.Errorf("%w: wall %q: %w", ErrInvalid, w.ID, err)
}

// Config returns the configuration for a computation from s.
func (s *Source) Config() (*visibility.Config, error) {
	cfg := visibility.DefaultConfig()

	var err error
	if s.Channel != "" {
		cfg.Channel, err = visibility.ParseChannel(s.Channel)
		if err != nil {
			return nil, s.wrap(err)
		}
	}
	if s.Radius != nil {
		cfg.Radius = *s.Radius
	}
	if s.Angle != nil {
		cfg.Angle = *s.Angle
	}
	cfg.ExternalRadius = s.ExternalRadius
	cfg.Rotation = s.Rotation

	switch s.DirectionMode {
	case "", "normal":
		cfg.DirectionMode = visibility.DirectionNormal
	case "reversed":
		cfg.DirectionMode = visibility.DirectionReversed
	case "both":
		cfg.DirectionMode = visibility.DirectionBoth
	default:
		return nil, s.wrap(fmt.Errorf("unknown direction mode %q", s.DirectionMode))
	}

	if s.EdgeTypes != nil {
		cfg.EdgeTypes = make(map[visibility.EdgeType]float64, len(s.EdgeTypes))
		for name, pri := range s.EdgeTypes {
			t, err := visibility.ParseEdgeType(name)
			if err != nil {
				return nil, s.wrap(err)
			}
			cfg.EdgeTypes[t] = pri
		}
	}
	if s.UseThreshold != nil {
		cfg.UseThreshold = *s.UseThreshold
	}
	if s.Attenuation != nil {
		cfg.AttenuationMultiplier = *s.Attenuation
	}
	cfg.Density = s.Density
	cfg.Elevation = s.Elevation

	if err := cfg.Validate(); err != nil {
		return nil, s.wrap(err)
	}
	return cfg, nil
}

func (s *Source) wrap(err error) error {
	return fmt.Errorf("%w: source %q: %w", ErrInvalid, s.Name, err)
}
