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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/visibility/internal/plane"
)

// Channel is an independent occlusion dimension.  An edge may block one
// channel and let another pass.
type Channel uint8

// These are the supported channels.
const (
	Sight Channel = iota
	Light
	Sound
	Move

	NumChannels = 4
)

var channelNames = [NumChannels]string{"sight", "light", "sound", "move"}

func (c Channel) String() string {
	if int(c) < NumChannels {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ParseChannel converts a channel name, as returned by Channel.String,
// back to a Channel.
func ParseChannel(s string) (Channel, error) {
	for i, name := range channelNames {
		if name == s {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// Level describes how an edge affects one channel.  Levels are ordered:
// where several edges meet, the largest level wins.
type Level uint8

// These are the possible blocking levels.
const (
	// None means the edge has no effect.
	None Level = iota

	// Limited edges let a ray pass once.  A second Limited edge along
	// the same ray blocks.
	Limited

	// Normal edges always block.
	Normal

	// Proximity edges block, unless the source is closer to the edge
	// than the threshold distance.
	Proximity

	// Distance edges block, unless the source is farther away from the
	// edge than the threshold distance.
	Distance
)

var levelNames = []string{"none", "limited", "normal", "proximity", "distance"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a level name, as returned by Level.String, back to
// a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// IsThreshold reports whether l is one of the threshold levels.
func (l Level) IsThreshold() bool {
	return l == Proximity || l == Distance
}

// Direction restricts an edge to block from one side only.
type Direction uint8

// These are the possible edge directions.  Left and Right refer to the
// side of the directed segment A→B, as seen on screen.
const (
	// Both means the edge blocks from either side.
	Both Direction = iota

	// Left means the edge blocks sources on its left side only.
	Left

	// Right means the edge blocks sources on its right side only.
	Right
)

var directionNames = []string{"both", "left", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts a direction name back to a Direction.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// EdgeType distinguishes the different kinds of edges in a scene.
// Each computation chooses which types take part.
type EdgeType uint8

// These are the supported edge types.
const (
	Wall EdgeType = iota
	Darkness
)

func (t EdgeType) String() string {
	switch t {
	case Wall:
		return "wall"
	case Darkness:
		return "darkness"
	default:
		return fmt.Sprintf("EdgeType(%d)", int(t))
	}
}

// ParseEdgeType converts an edge type name back to an EdgeType.
func ParseEdgeType(s string) (EdgeType, error) {
	switch s {
	case "wall":
		return Wall, nil
	case "darkness":
		return Darkness, nil
	}
	return 0, fmt.Errorf("unknown edge type %q", s)
}

// Threshold holds the parameters of a Proximity or Distance edge for one
// channel.
type Threshold struct {
	// Distance is the threshold distance between source and edge.
	Distance float64

	// Attenuation makes the edge fade out gradually, instead of switching
	// between blocking and transparent at the threshold distance.
	Attenuation bool
}

// Span is a closed interval of elevations.
type Span struct {
	Bottom, Top float64
}

// Contains reports whether z lies in the span.
func (s Span) Contains(z float64) bool {
	return z >= s.Bottom && z <= s.Top
}

// EdgeID identifies an edge within a Scene.
type EdgeID string

// Edge is an occluding segment.
//
// Edges are owned by the caller.  After an edge is added to a Scene, its
// geometry must only be changed through Scene.UpdateEdge.  All other
// fields may be changed between computations.
type Edge struct {
	ID   EdgeID
	A, B vec.Vec2
	Type EdgeType

	// Levels gives the blocking level for each channel.
	Levels [NumChannels]Level

	// Thresholds gives the threshold parameters for each channel.  Only
	// used for channels where the level is Proximity or Distance.
	Thresholds [NumChannels]Threshold

	Direction Direction
	Priority  float64

	// Height limits the edge to a range of source elevations.
	// Nil means the edge extends infinitely up and down.
	Height *Span

	intersections []Intersection
}

// Intersection records where an edge crosses another edge of the same
// Scene.
type Intersection struct {
	Other EdgeID
	Point vec.Vec2
}

// Intersections returns the crossings of e with other edges in its Scene.
// The returned slice must not be modified.
func (e *Edge) Intersections() []Intersection {
	return e.intersections
}

// Bounds returns the bounding rectangle of the edge.
func (e *Edge) Bounds() rect.Rect {
	return plane.SegmentBounds(e.A, e.B)
}

// side returns the side of A→B on which p lies, or Both if p lies on the
// line through the edge.
func (e *Edge) side(p vec.Vec2) Direction {
	o := plane.Orient(e.A, e.B, p)
	switch {
	case o > 0:
		return Right
	case o < 0:
		return Left
	default:
		return Both
	}
}

// NewWall returns an edge of type Wall which blocks all channels.
func NewWall(id EdgeID, a, b vec.Vec2) *Edge {
	return &Edge{
		ID:     id,
		A:      a,
		B:      b,
		Type:   Wall,
		Levels: [NumChannels]Level{Normal, Normal, Normal, Normal},
	}
}
