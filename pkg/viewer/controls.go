package viewer

import "math"

// Controls orbit a camera around its target
type Controls struct {
	Enabled       bool
	MaxPolarAngle float64 // radians from the up axis
	MinDistance   float64
	MaxDistance   float64
	RotateSpeed   float64
	ZoomSpeed     float64
	camera        *Camera
}

// NewControls creates enabled orbit controls for the camera
func NewControls(camera *Camera) *Controls {
	return &Controls{
		Enabled:       true,
		MaxPolarAngle: 1.5,
		MinDistance:   1,
		MaxDistance:   200,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		camera:        camera,
	}
}

// Rotate orbits by a pointer delta in pixels. It does nothing while disabled.
func (c *Controls) Rotate(dx, dy float64) bool {
	if !c.Enabled || (dx == 0 && dy == 0) {
		return false
	}
	radius, theta, phi := c.spherical()

	h := c.camera.Height
	if h <= 0 {
		h = 1
	}
	theta -= 2 * math.Pi * dx / h * c.RotateSpeed
	phi -= 2 * math.Pi * dy / h * c.RotateSpeed
	phi = math.Max(1e-6, math.Min(c.MaxPolarAngle, phi))

	c.setSpherical(radius, theta, phi)
	return true
}

// Zoom dollies towards (deltaY < 0) or away from the target. It does nothing while disabled.
func (c *Controls) Zoom(deltaY float64) bool {
	if !c.Enabled || deltaY == 0 {
		return false
	}
	radius, theta, phi := c.spherical()

	scale := math.Pow(0.95, c.ZoomSpeed)
	if deltaY > 0 {
		radius /= scale
	} else {
		radius *= scale
	}
	radius = math.Max(c.MinDistance, math.Min(c.MaxDistance, radius))

	c.setSpherical(radius, theta, phi)
	return true
}

func (c *Controls) spherical() (radius, theta, phi float64) {
	offset := c.camera.Position.Sub(c.camera.Target)
	radius = offset.Length()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math.Atan2(offset.X, offset.Z)
	phi = math.Acos(math.Max(-1, math.Min(1, offset.Y/radius)))
	return radius, theta, phi
}

func (c *Controls) setSpherical(radius, theta, phi float64) {
	c.camera.Position.X = c.camera.Target.X + radius*math.Sin(phi)*math.Sin(theta)
	c.camera.Position.Y = c.camera.Target.Y + radius*math.Cos(phi)
	c.camera.Position.Z = c.camera.Target.Z + radius*math.Sin(phi)*math.Cos(theta)
}
