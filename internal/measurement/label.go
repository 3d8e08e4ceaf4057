package measurement

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/pkg/geometry"
)

// Pixel offset applied to every label anchor
const (
	LabelOffsetX = -20.0
	LabelOffsetY = -10.0
)

// Point is a screen position in viewport pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps label names to screen anchors
type Positions map[string]Point

// Equal reports whether both position sets hold the same anchors
func (p Positions) Equal(other Positions) bool {
	if len(p) != len(other) {
		return false
	}
	for name, a := range p {
		b, ok := other[name]
		if !ok || math.Abs(a.X-b.X) > 1e-9 || math.Abs(a.Y-b.Y) > 1e-9 {
			return false
		}
	}
	return true
}

// Projector maps world points to screen pixels. viewer.Camera satisfies it.
type Projector interface {
	Project(point geometry.Vector3) (float64, float64, bool)
}

// labelPairs names the ground vertex pairs whose midpoints carry the labels
var labelPairs = map[string][2]int{
	Width:  {0, 1},
	Length: {1, 3},
}

// Anchors projects the width and length label anchors of the building into the screen
func Anchors(e *building.Entity, projector Projector) Positions {
	ground := e.Mesh().GroundVertices()
	if len(ground) < 4 {
		panic(fmt.Sprintf("measurement: label anchors need 4 ground vertices, mesh has %d", len(ground)))
	}

	positions := make(Positions, len(labelPairs))
	for name, pair := range labelPairs {
		world := e.LocalToWorld(ground[pair[0]].Midpoint(ground[pair[1]]))
		x, y, _ := projector.Project(world)
		positions[name] = Point{X: x + LabelOffsetX, Y: y + LabelOffsetY}
	}
	return positions
}
