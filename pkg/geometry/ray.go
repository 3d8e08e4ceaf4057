package geometry

import "math"

const epsilon = 1e-9

// Ray is a half-line with a unit direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle runs Möller–Trumbore against a triangle, double sided.
// It returns the distance along the ray and whether the ray hits.
func (r Ray) IntersectTriangle(a, b, c Vector3) (float64, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1.0 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// IntersectPlane returns the point where the ray crosses the plane
func (r Ray) IntersectPlane(p Plane) (Vector3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < epsilon {
		// parallel; a ray lying in the plane hits at its origin
		if math.Abs(p.DistanceTo(r.Origin)) < epsilon {
			return r.Origin, true
		}
		return Vector3{}, false
	}
	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 {
		return Vector3{}, false
	}
	return r.At(t), true
}
