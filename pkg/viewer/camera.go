package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gomassing/pkg/geometry"
)

// Default camera settings
const (
	DefaultFOV  = 45.0 // vertical field of view in degrees
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Camera is a perspective camera looking at a target point
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64
	Near     float64
	Far      float64
	Width    float64 // viewport width in pixels
	Height   float64 // viewport height in pixels
}

// NewCamera creates a camera for a viewport, placed at the default pose
func NewCamera(width, height float64) *Camera {
	c := &Camera{
		Up:     geometry.Up,
		FOV:    DefaultFOV,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Width:  width,
		Height: height,
	}
	c.ApplyPose(DefaultPose())
	return c
}

// Resize updates the viewport dimensions
func (c *Camera) Resize(width, height float64) {
	c.Width = width
	c.Height = height
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Vec(), c.Target.Vec(), c.Up.Vec())
}

// Projection returns the perspective matrix for the current viewport
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = c.Width / c.Height
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// NDC converts pointer pixels (top-left origin) to normalized device coordinates
func (c *Camera) NDC(px, py float64) (float64, float64) {
	return (px/c.Width)*2 - 1, -(py/c.Height)*2 + 1
}

// Ray builds the world-space ray from the camera through a pointer position
func (c *Camera) Ray(px, py float64) geometry.Ray {
	x, y := c.NDC(px, py)
	inv := c.Projection().Mul4(c.View()).Inv()

	near := mgl64.TransformCoordinate(mgl64.Vec3{x, y, -1}, inv)
	far := mgl64.TransformCoordinate(mgl64.Vec3{x, y, 1}, inv)

	return geometry.NewRay(geometry.FromVec(near), geometry.FromVec(far.Sub(near)))
}

// Project maps a world point to screen pixels (top-left origin).
// The boolean is false when the point is behind the camera.
func (c *Camera) Project(point geometry.Vector3) (float64, float64, bool) {
	win := mgl64.Project(point.Vec(), c.View(), c.Projection(), 0, 0, int(c.Width), int(c.Height))
	inFront := c.Target.Sub(c.Position).Dot(point.Sub(c.Position)) > 0
	return win[0], c.Height - win[1], inFront
}

// Rotation returns the camera orientation as XYZ Euler angles in radians
func (c *Camera) Rotation() geometry.Vector3 {
	m := c.View().Inv()
	m13 := mgl64.Clamp(m.At(0, 2), -1, 1)

	var r geometry.Vector3
	r.Y = math.Asin(m13)
	if math.Abs(m13) < 0.9999999 {
		r.X = math.Atan2(-m.At(1, 2), m.At(2, 2))
		r.Z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		r.X = math.Atan2(m.At(2, 1), m.At(1, 1))
	}
	return r
}

// Pose captures the camera state for persistence
func (c *Camera) Pose() Pose {
	return Pose{
		Target:         NewVector3Data(c.Target),
		ObjectPosition: NewVector3Data(c.Position),
		ObjectRotation: NewVector3Data(c.Rotation()),
	}
}

// ApplyPose restores position and target. ObjectRotation is not read: with a fixed up
// axis the orientation is derived from position and target.
func (c *Camera) ApplyPose(p Pose) {
	c.Target = p.Target.Vector3()
	c.Position = p.ObjectPosition.Vector3()
}
