package picking

import (
	"testing"

	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/pkg/geometry"
	"github.com/philipparndt/gomassing/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHouse(t *testing.T, opts building.Options) *building.Entity {
	t.Helper()
	e, err := building.NewEntity(opts)
	require.NoError(t, err)
	return e
}

func TestIntersectRaySortedNearestFirst(t *testing.T) {
	house := newHouse(t, building.DefaultOptions())
	scene := NewScene(house)

	ray := geometry.NewRay(geometry.NewVector3(10, 1, 3), geometry.NewVector3(-1, 0, 0))
	hits := scene.IntersectRay(ray)

	require.Len(t, hits, 2)
	assert.Equal(t, building.EastWall, hits[0].Face.Polygon.Name)
	assert.Equal(t, building.WestWall, hits[1].Face.Polygon.Name)
	assert.InDelta(t, 8, hits[0].Distance, 1e-9)
	assert.InDelta(t, 12, hits[1].Distance, 1e-9)
	assert.True(t, hits[0].Point.ApproxEqual(geometry.NewVector3(2, 1, 3), 1e-9))
	assert.Same(t, house.Mesh(), hits[0].Object)
	assert.Equal(t, hits[0].Face.Index, hits[0].FaceIndex)
}

func TestIntersectRayMiss(t *testing.T) {
	scene := NewScene(newHouse(t, building.DefaultOptions()))

	ray := geometry.NewRay(geometry.NewVector3(10, 1, 3), geometry.NewVector3(1, 0, 0))
	assert.Empty(t, scene.IntersectRay(ray))

	_, ok := Nearest(nil)
	assert.False(t, ok)
}

func TestIntersectRayUsesEntityTransform(t *testing.T) {
	opts := building.DefaultOptions()
	opts.Position = geometry.NewVector3(10, 0, 0)
	scene := NewScene(newHouse(t, opts))

	ray := geometry.NewRay(geometry.NewVector3(20, 1, 3), geometry.NewVector3(-1, 0, 0))
	hit, ok := Nearest(scene.IntersectRay(ray))

	require.True(t, ok)
	assert.True(t, hit.Point.ApproxEqual(geometry.NewVector3(12, 1, 3), 1e-9))
	assert.InDelta(t, 8, hit.Distance, 1e-9)
}

func TestIntersectFromCamera(t *testing.T) {
	scene := NewScene(newHouse(t, building.DefaultOptions()))

	camera := viewer.NewCamera(400, 400)
	camera.Position = geometry.NewVector3(0, 20, 3)
	camera.Target = geometry.NewVector3(0, 0, 3)
	camera.Up = geometry.NewVector3(0, 0, 1)

	hit, ok := Nearest(scene.Intersect(camera, 200, 200))
	require.True(t, ok)
	assert.Equal(t, building.Roof, hit.Face.Polygon.Name)
	assert.Equal(t, Roof, Classify(hit.Face.Normal, RoofHorizontal))

	assert.Empty(t, scene.Intersect(camera, 0, 0))
}

func TestIntersectFollowsMutation(t *testing.T) {
	house := newHouse(t, building.DefaultOptions())
	scene := NewScene(house)
	east, ok := house.Mesh().Polygon(building.EastWall)
	require.True(t, ok)

	house.SetWallSpan(east, 4)

	ray := geometry.NewRay(geometry.NewVector3(10, 1, 3), geometry.NewVector3(-1, 0, 0))
	hit, ok := Nearest(scene.IntersectRay(ray))
	require.True(t, ok)
	assert.InDelta(t, 6, hit.Distance, 1e-9)
}
