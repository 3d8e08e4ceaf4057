// Package picking casts pointer rays into the scene and classifies the faces they hit.
package picking

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/pkg/geometry"
	"github.com/philipparndt/gomassing/pkg/viewer"
)

// Pickable is a renderable mesh placed in the world. building.Entity satisfies it.
type Pickable interface {
	Mesh() *building.Mesh
	Transform() mgl64.Mat4
}

// Intersection is one ray hit, in world space
type Intersection struct {
	Point     geometry.Vector3
	Face      *building.Face
	Object    *building.Mesh
	FaceIndex int
	Distance  float64
}

// Scene is the set of pickable objects
type Scene struct {
	objects []Pickable
}

// NewScene creates a scene of the given objects
func NewScene(objects ...Pickable) *Scene {
	return &Scene{objects: objects}
}

// Intersect casts a ray from the camera through a pointer position (viewport pixels).
// Hits are sorted nearest first; an empty result means nothing was hit.
func (s *Scene) Intersect(camera *viewer.Camera, px, py float64) []Intersection {
	return s.IntersectRay(camera.Ray(px, py))
}

// IntersectRay tests a world-space ray against every face of every object
func (s *Scene) IntersectRay(ray geometry.Ray) []Intersection {
	var hits []Intersection

	for _, object := range s.objects {
		mesh := object.Mesh()
		transform := object.Transform()
		inverse := transform.Inv()

		// test in mesh space, report in world space
		origin := ray.Origin.Transform(inverse)
		local := geometry.NewRay(origin, ray.Origin.Add(ray.Direction).Transform(inverse).Sub(origin))
		if !mesh.Sphere.IntersectsRay(local) {
			continue
		}

		for _, face := range mesh.Faces {
			best, found := 0.0, false
			for _, tri := range face.Triangles() {
				t, ok := local.IntersectTriangle(mesh.Vertices[tri[0]], mesh.Vertices[tri[1]], mesh.Vertices[tri[2]])
				if ok && (!found || t < best) {
					best, found = t, true
				}
			}
			if !found {
				continue
			}

			point := local.At(best).Transform(transform)
			hits = append(hits, Intersection{
				Point:     point,
				Face:      face,
				Object:    mesh,
				FaceIndex: face.Index,
				Distance:  point.Distance(ray.Origin),
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Nearest returns the first hit, if any
func Nearest(hits []Intersection) (Intersection, bool) {
	if len(hits) == 0 {
		return Intersection{}, false
	}
	return hits[0], true
}
