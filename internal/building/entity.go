// Package building holds the geometry model of one house volume: the vertex buffer,
// its faces and extrudable polygons, and the named mutations the editor applies to it.
// All mutations keep the mesh caches (normals, bounding volumes, edges) in sync.
package building

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gomassing/pkg/geometry"
	"github.com/samber/lo"
)

// Wall span limits applied when dragging a side wall
const (
	MinWallOffset = 0.0001
	MaxWallOffset = 5.0
)

// Profile selects the roof shape of the house
type Profile int

const (
	// ProfileFlat is a box with a horizontal roof
	ProfileFlat Profile = iota
	// ProfileGable has pentagonal end walls and two sloped roof planes
	ProfileGable
)

func (p Profile) String() string {
	switch p {
	case ProfileFlat:
		return "flat"
	case ProfileGable:
		return "gable"
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// ParseProfile converts a profile name
func ParseProfile(name string) (Profile, error) {
	switch name {
	case "flat":
		return ProfileFlat, nil
	case "gable":
		return ProfileGable, nil
	}
	return ProfileFlat, fmt.Errorf("unknown roof profile %q", name)
}

// ErrCollapsed is returned when an extrusion would fold the volume onto itself
var ErrCollapsed = errors.New("building: extrusion collapses the volume")

// ErrSkewed is returned when an extrusion would tilt an axis aligned face of another polygon
var ErrSkewed = errors.New("building: extrusion tilts a neighbouring face")

// Options describe the initial house volume
type Options struct {
	Width       float64 // X extent, centred on the origin
	Length      float64 // Z extent, starting at the origin
	FloorHeight float64 // storey height
	RidgeHeight float64 // gable rise above the top storey
	Profile     Profile
	Position    geometry.Vector3 // world offset of the entity
}

// DefaultOptions returns the house the editor starts with
func DefaultOptions() Options {
	return Options{
		Width:       4,
		Length:      6,
		FloorHeight: 2.7,
		RidgeHeight: 1.5,
		Profile:     ProfileFlat,
	}
}

// Entity is a building: a stack of floors rendered from one mesh
type Entity struct {
	floors      int
	floorHeight float64
	transform   mgl64.Mat4
	mesh        *Mesh
}

// NewEntity builds a single storey house from the options
func NewEntity(opts Options) (*Entity, error) {
	if opts.Width <= 0 || opts.Length <= 0 || opts.FloorHeight <= 0 {
		return nil, fmt.Errorf("building: width, length and floor height must be positive, got %v x %v x %v",
			opts.Width, opts.Length, opts.FloorHeight)
	}
	if opts.Width/2 > MaxWallOffset {
		return nil, fmt.Errorf("building: width %v exceeds the wall span limit of %v", opts.Width, 2*MaxWallOffset)
	}
	if opts.Profile == ProfileGable && opts.RidgeHeight <= 0 {
		return nil, fmt.Errorf("building: gable profile needs a positive ridge height, got %v", opts.RidgeHeight)
	}

	e := &Entity{
		floorHeight: opts.FloorHeight,
		transform:   mgl64.Translate3D(opts.Position.X, opts.Position.Y, opts.Position.Z),
		mesh:        buildHouse(opts),
	}
	e.mesh.Refresh()
	return e, nil
}

// Floors is the number of storeys added above the ground floor
func (e *Entity) Floors() int {
	return e.floors
}

// Mesh returns the building's mesh
func (e *Entity) Mesh() *Mesh {
	return e.mesh
}

// Transform returns the local-to-world matrix
func (e *Entity) Transform() mgl64.Mat4 {
	return e.transform
}

// LocalToWorld transforms a mesh-space point into world space
func (e *Entity) LocalToWorld(p geometry.Vector3) geometry.Vector3 {
	return p.Transform(e.transform)
}

// WorldToLocal transforms a world-space point into mesh space
func (e *Entity) WorldToLocal(p geometry.Vector3) geometry.Vector3 {
	return p.Transform(e.transform.Inv())
}

// Height is the highest point of the building
func (e *Entity) Height() float64 {
	return e.mesh.Height()
}

// AddFloor raises (direction > 0) or lowers (direction < 0) the top of the building by one
// storey. Removing below the ground floor is a no-op; the return value reports a change.
func (e *Entity) AddFloor(direction int) bool {
	if direction == 0 || (direction < 0 && e.floors == 0) {
		return false
	}
	step := e.floorHeight
	if direction < 0 {
		step = -step
	}

	top := e.floorHeight * float64(e.floors+1)
	for i, v := range e.mesh.Vertices {
		if v.Y >= top-1e-9 {
			e.mesh.Vertices[i].Y += step
		}
	}

	if direction > 0 {
		e.floors++
	} else {
		e.floors--
	}
	e.mesh.Refresh()
	return true
}

// Extrude moves the polygon along its outward normal by distance. Sloped polygons are
// extruded by raising (or lowering) their ridge instead, so the walls they share eaves
// with stay upright.
func (e *Entity) Extrude(p *Polygon, distance float64) error {
	normal := p.Normal()
	if !axisAligned(normal) {
		return e.moveRidge(p, distance)
	}

	before := make([]geometry.Vector3, len(e.mesh.Vertices))
	copy(before, e.mesh.Vertices)

	for _, i := range p.indices {
		e.mesh.Vertices[i] = e.mesh.Vertices[i].Add(normal.Mul(distance))
	}

	if collapsed(before, e.mesh.Vertices, p.indices, normal) {
		copy(e.mesh.Vertices, before)
		return fmt.Errorf("%w: %s by %v", ErrCollapsed, p.Name, distance)
	}
	return e.commit(p, before, distance)
}

// moveRidge shifts the highest vertices of a sloped polygon along Up. The ridge must stay
// MinWallOffset above the polygon's other vertices.
func (e *Entity) moveRidge(p *Polygon, distance float64) error {
	top := lo.Max(lo.Map(p.Vertices(), func(v geometry.Vector3, _ int) float64 { return v.Y }))
	ridge, rest := lo.FilterReject(p.indices, func(i int, _ int) bool {
		return e.mesh.Vertices[i].Y >= top-1e-9
	})
	if len(rest) == 0 {
		return fmt.Errorf("%w: %s has no ridge", ErrSkewed, p.Name)
	}
	eaves := lo.Max(lo.Map(rest, func(i int, _ int) float64 { return e.mesh.Vertices[i].Y }))
	if top+distance-eaves < MinWallOffset {
		return fmt.Errorf("%w: %s ridge by %v", ErrCollapsed, p.Name, distance)
	}

	before := make([]geometry.Vector3, len(e.mesh.Vertices))
	copy(before, e.mesh.Vertices)
	for _, i := range ridge {
		e.mesh.Vertices[i].Y += distance
	}
	return e.commit(p, before, distance)
}

// commit keeps a move unless it tilts an axis aligned face of another polygon
func (e *Entity) commit(p *Polygon, before []geometry.Vector3, distance float64) error {
	if face, ok := e.mesh.tilted(p); ok {
		copy(e.mesh.Vertices, before)
		return fmt.Errorf("%w: %s by %v would tilt %s", ErrSkewed, p.Name, distance, face.Polygon.Name)
	}
	p.dirty = true
	e.mesh.Refresh()
	return nil
}

// SetWallSpan moves every vertex of a side wall to x, clamped per side into
// [MinWallOffset, MaxWallOffset] or [-MaxWallOffset, -MinWallOffset]. Vertices on X = 0
// (ridge line) are left alone. It returns the clamped X applied on the wall's side.
func (e *Entity) SetWallSpan(p *Polygon, x float64) float64 {
	applied := x
	for _, i := range p.indices {
		v := &e.mesh.Vertices[i]
		switch {
		case v.X > 0:
			v.X = ClampPositive(x)
			applied = v.X
		case v.X < 0:
			v.X = ClampNegative(x)
			applied = v.X
		}
	}
	p.dirty = true
	e.mesh.Refresh()
	return applied
}

// ClampPositive restricts x into the positive wall range
func ClampPositive(x float64) float64 {
	return math.Min(math.Max(x, MinWallOffset), MaxWallOffset)
}

// ClampNegative restricts x into the negative wall range
func ClampNegative(x float64) float64 {
	return math.Max(math.Min(x, -MinWallOffset), -MaxWallOffset)
}

// collapsed reports whether the moved polygon came closer than MinWallOffset to the rest
// of the volume, measured along its normal. Moves that widen the gap are always allowed.
func collapsed(before, after []geometry.Vector3, moved []int, normal geometry.Vector3) bool {
	isMoved := make(map[int]bool, len(moved))
	for _, i := range moved {
		isMoved[i] = true
	}
	gap := func(points []geometry.Vector3) (float64, bool) {
		minMoved, maxRest := math.Inf(1), math.Inf(-1)
		for i, p := range points {
			if isMoved[i] {
				minMoved = math.Min(minMoved, p.Dot(normal))
			} else {
				maxRest = math.Max(maxRest, p.Dot(normal))
			}
		}
		return minMoved - maxRest, !math.IsInf(maxRest, -1)
	}
	gapBefore, ok := gap(before)
	if !ok {
		return false
	}
	gapAfter, _ := gap(after)
	return gapAfter < MinWallOffset && gapAfter < gapBefore
}
