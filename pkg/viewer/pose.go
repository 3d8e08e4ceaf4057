package viewer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gomassing/pkg/geometry"
)

// PoseKey is the store key of the saved camera pose
const PoseKey = "controlsState"

// ErrNoPose is returned when nothing was saved yet
var ErrNoPose = errors.New("no saved camera pose")

// Store is a string key-value store. fyne.Preferences satisfies it.
type Store interface {
	String(key string) string
	SetString(key string, value string)
}

// Vector3Data represents a 3D vector for JSON serialization
type Vector3Data struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewVector3Data converts a vector for serialization
func NewVector3Data(v geometry.Vector3) Vector3Data {
	return Vector3Data{X: v.X, Y: v.Y, Z: v.Z}
}

// Vector3 converts back to a geometry vector
func (d Vector3Data) Vector3() geometry.Vector3 {
	return geometry.NewVector3(d.X, d.Y, d.Z)
}

func (d Vector3Data) finite() bool {
	for _, f := range []float64{d.X, d.Y, d.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Pose is the persisted orbit state: the point orbited around and the camera object
type Pose struct {
	Target         Vector3Data `json:"target"`
	ObjectPosition Vector3Data `json:"objectPosition"`
	ObjectRotation Vector3Data `json:"objectRotation"`
}

// DefaultPose looks at the lower storey from above and behind the house
func DefaultPose() Pose {
	return Pose{
		Target:         Vector3Data{X: 0, Y: 4, Z: 0},
		ObjectPosition: Vector3Data{X: 10, Y: 15, Z: -5},
	}
}

// Validate rejects poses a camera cannot be placed at
func (p Pose) Validate() error {
	if !p.Target.finite() || !p.ObjectPosition.finite() || !p.ObjectRotation.finite() {
		return fmt.Errorf("pose has non-finite components")
	}
	if p.Target.Vector3().Distance(p.ObjectPosition.Vector3()) == 0 {
		return fmt.Errorf("camera position equals its target")
	}
	return nil
}

// LoadPose reads the saved pose. It returns ErrNoPose when the key is absent.
func LoadPose(store Store) (Pose, error) {
	raw := store.String(PoseKey)
	if raw == "" {
		return Pose{}, ErrNoPose
	}

	var pose Pose
	if err := json.Unmarshal([]byte(raw), &pose); err != nil {
		return Pose{}, fmt.Errorf("failed to parse saved camera pose: %w", err)
	}
	if err := pose.Validate(); err != nil {
		return Pose{}, fmt.Errorf("invalid saved camera pose: %w", err)
	}
	return pose, nil
}

// SavePose writes the pose under PoseKey
func SavePose(store Store, pose Pose) error {
	data, err := json.Marshal(pose)
	if err != nil {
		return fmt.Errorf("failed to marshal camera pose: %w", err)
	}
	store.SetString(PoseKey, string(data))
	return nil
}
