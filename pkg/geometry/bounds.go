package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// BoundingBoxOf returns the box enclosing all points
func BoundingBoxOf(points []Vector3) BoundingBox {
	bbox := NewBoundingBox()
	for _, p := range points {
		bbox.Extend(p)
	}
	return bbox
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether nothing was added to the box
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return b.Min.Midpoint(b.Max)
}

// BoundingSphere encloses a point set, used to cull ray tests
type BoundingSphere struct {
	Center Vector3
	Radius float64
}

// BoundingSphereOf computes a sphere centred on the points' bounding box
func BoundingSphereOf(points []Vector3) BoundingSphere {
	if len(points) == 0 {
		return BoundingSphere{}
	}
	center := BoundingBoxOf(points).Center()
	radius := 0.0
	for _, p := range points {
		radius = math.Max(radius, center.Distance(p))
	}
	return BoundingSphere{Center: center, Radius: radius}
}

// IntersectsRay reports whether the ray passes through the sphere in front of its origin
func (s BoundingSphere) IntersectsRay(r Ray) bool {
	toCenter := s.Center.Sub(r.Origin)
	along := toCenter.Dot(r.Direction)
	distSq := toCenter.Dot(toCenter) - along*along
	if distSq > s.Radius*s.Radius {
		return false
	}
	// origin inside the sphere, or sphere ahead
	return along >= 0 || toCenter.Length() <= s.Radius
}
