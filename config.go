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
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/visibility/clip"
)

// ErrInvalidConfig is returned for configurations which cannot be used
// for a computation.
var ErrInvalidConfig = errors.New("invalid configuration")

// DirectionMode controls how one-directional edges are treated.
type DirectionMode uint8

// These are the supported direction modes.
const (
	// DirectionNormal makes one-directional edges block from their
	// blocking side only.
	DirectionNormal DirectionMode = iota

	// DirectionReversed makes one-directional edges block from their
	// transparent side only.
	DirectionReversed

	// DirectionBoth makes one-directional edges block from both sides.
	DirectionBoth
)

// Config describes a single visibility computation.
//
// The zero value describes an empty polygon; use DefaultConfig to obtain
// a usable starting point.
type Config struct {
	// Channel selects which blocking level of the edges is used.
	Channel Channel

	// Radius is the maximum range of the source.  Use math.Inf(1) for an
	// unlimited range.  A radius of zero or less gives an empty polygon.
	Radius float64

	// ExternalRadius is the size of the source itself.  It is used when
	// deciding whether threshold edges apply.
	ExternalRadius float64

	// Angle is the opening angle of the source cone, in degrees.
	// Values of 360 or more mean no angular restriction; zero or less
	// gives an empty polygon.
	Angle float64

	// Rotation is the direction of the cone, in degrees.  A rotation of
	// zero faces towards positive y, larger values turn clockwise on
	// screen.
	Rotation float64

	// DirectionMode controls one-directional edges.
	DirectionMode DirectionMode

	// EdgeTypes lists the edge types taking part in the computation, each
	// with the minimum priority an edge of this type must have.
	// If nil, all walls take part.
	EdgeTypes map[EdgeType]float64

	// UseThreshold enables the special handling of Proximity and Distance
	// edges.  If false, such edges block like Normal edges.
	UseThreshold bool

	// AttenuationMultiplier scales how far a source can see through
	// attenuating threshold edges.  Zero or less disables attenuation, so
	// that the edges are fully transparent inside their threshold.
	AttenuationMultiplier float64

	// Shapes are additional regions the result is restricted to.  They
	// are applied after the cone and the radius, in order.
	Shapes []clip.Shape

	// Density is the number of vertices used for a full circle.
	// If zero, a value is derived from the radius.
	Density int

	// Elevation is the height of the source.  Edges with a height span
	// only take part if the span contains this value.
	Elevation float64
}

// DefaultConfig returns a configuration for an unlimited sight source
// which is blocked by all walls.
func DefaultConfig() *Config {
	return &Config{
		Channel:               Sight,
		Radius:                math.Inf(1),
		Angle:                 360,
		EdgeTypes:             map[EdgeType]float64{Wall: math.Inf(-1)},
		UseThreshold:          true,
		AttenuationMultiplier: 1,
	}
}

// Validate checks the configuration for values which cannot be used.
func (c *Config) Validate() error {
	switch {
	case int(c.Channel) >= NumChannels:
		return fmt.Errorf("%w: channel %d", ErrInvalidConfig, c.Channel)
	case math.IsNaN(c.Radius) || math.IsNaN(c.Angle) || math.IsNaN(c.Rotation):
		return fmt.Errorf("%w: NaN geometry", ErrInvalidConfig)
	case c.Density < 0:
		return fmt.Errorf("%w: density %d", ErrInvalidConfig, c.Density)
	case c.ExternalRadius < 0:
		return fmt.Errorf("%w: external radius %g", ErrInvalidConfig, c.ExternalRadius)
	}
	return nil
}

// minPriority returns the minimum priority for edges of type t, and
// whether such edges take part at all.
func (c *Config) minPriority(t EdgeType) (float64, bool) {
	if c.EdgeTypes == nil {
		return math.Inf(-1), t == Wall
	}
	p, ok := c.EdgeTypes[t]
	return p, ok
}

func (c *Config) density() int {
	if c.Density > 0 {
		return c.Density
	}
	return clip.DensityFor(c.Radius)
}

func (c *Config) limitedRadius() bool {
	return !math.IsInf(c.Radius, 1)
}

func (c *Config) limitedAngle() bool {
	return c.Angle < 360
}
