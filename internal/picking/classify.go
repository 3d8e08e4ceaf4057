package picking

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomassing/pkg/geometry"
)

// Category is the building element a gesture targets
type Category int

const (
	None Category = iota
	Roof
	Wall
	EndWall
)

func (c Category) String() string {
	switch c {
	case None:
		return "none"
	case Roof:
		return "roof"
	case Wall:
		return "wall"
	case EndWall:
		return "end wall"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// RoofRule decides which normals count as roof faces
type RoofRule int

const (
	// RoofHorizontal accepts horizontal faces only (|n.y| == 1)
	RoofHorizontal RoofRule = iota
	// RoofNonVertical accepts every face that is not vertical (n.y != 0), e.g. gable slopes
	RoofNonVertical
)

func (r RoofRule) String() string {
	switch r {
	case RoofHorizontal:
		return "horizontal"
	case RoofNonVertical:
		return "non-vertical"
	}
	return fmt.Sprintf("RoofRule(%d)", int(r))
}

// ParseRoofRule converts a rule name
func ParseRoofRule(name string) (RoofRule, error) {
	switch name {
	case "horizontal":
		return RoofHorizontal, nil
	case "non-vertical":
		return RoofNonVertical, nil
	}
	return RoofHorizontal, fmt.Errorf("unknown roof rule %q", name)
}

// Classify maps a face normal to a category. Roof wins over Wall, Wall over EndWall.
func Classify(normal geometry.Vector3, rule RoofRule) Category {
	switch {
	case isRoof(normal, rule):
		return Roof
	case math.Abs(normal.X) == 1:
		return Wall
	case math.Abs(normal.Z) == 1:
		return EndWall
	}
	return None
}

func isRoof(normal geometry.Vector3, rule RoofRule) bool {
	if rule == RoofNonVertical {
		return normal.Y != 0 && !math.IsNaN(normal.Y)
	}
	return math.Abs(normal.Y) == 1
}
