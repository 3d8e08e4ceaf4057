package geometry

import "fmt"

// Plane is the set of points p with Normal·p + Constant = 0
type Plane struct {
	Normal   Vector3
	Constant float64
}

// NewPlane creates a plane from a normal and a point on it
func NewPlane(normal, point Vector3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Constant: -point.Dot(n)}
}

// PlaneFromCoplanarPoints builds the plane through a, b and c.
// Collinear points do not define a plane and return an error.
func PlaneFromCoplanarPoints(a, b, c Vector3) (Plane, error) {
	normal := c.Sub(b).Cross(a.Sub(b))
	if normal.Length() < epsilon {
		return Plane{}, fmt.Errorf("points %v, %v, %v are collinear", a, b, c)
	}
	return NewPlane(normal, a), nil
}

// DistanceTo returns the signed distance from the plane to a point
func (p Plane) DistanceTo(point Vector3) float64 {
	return p.Normal.Dot(point) + p.Constant
}
