package building

import "github.com/philipparndt/gomassing/pkg/geometry"

// Polygon names of the generated house
const (
	EastWall  = "east wall"
	WestWall  = "west wall"
	NorthEnd  = "north end wall"
	SouthEnd  = "south end wall"
	Roof      = "roof"
	EastSlope = "east roof slope"
	WestSlope = "west roof slope"
	Floor     = "floor"
)

// buildHouse lays out the vertex buffer with the four ground vertices first, in grid order,
// so the footprint measurements read them directly:
//
//	0 (-w,0,0)  1 (+w,0,0)  2 (-w,0,L)  3 (+w,0,L)
//	4..7 the same corners at wall top, 8 and 9 the ridge ends (gable only)
func buildHouse(opts Options) *Mesh {
	hw := opts.Width / 2
	l := opts.Length
	h := opts.FloorHeight

	vertices := []geometry.Vector3{
		{X: -hw, Y: 0, Z: 0},
		{X: hw, Y: 0, Z: 0},
		{X: -hw, Y: 0, Z: l},
		{X: hw, Y: 0, Z: l},
		{X: -hw, Y: h, Z: 0},
		{X: hw, Y: h, Z: 0},
		{X: -hw, Y: h, Z: l},
		{X: hw, Y: h, Z: l},
	}
	if opts.Profile == ProfileGable {
		r := h + opts.RidgeHeight
		vertices = append(vertices,
			geometry.Vector3{X: 0, Y: r, Z: 0},
			geometry.Vector3{X: 0, Y: r, Z: l},
		)
	}

	m := newMesh(vertices)
	m.addPolygon(EastWall, 1, 3, 5, 7)
	m.addPolygon(WestWall, 2, 0, 6, 4)

	switch opts.Profile {
	case ProfileGable:
		m.addPolygon(NorthEnd, 3, 2, 6, 9, 7)
		m.addPolygon(SouthEnd, 0, 1, 5, 8, 4)
		m.addPolygon(EastSlope, 5, 7, 8, 9)
		m.addPolygon(WestSlope, 6, 4, 9, 8)
	default:
		m.addPolygon(NorthEnd, 3, 2, 7, 6)
		m.addPolygon(SouthEnd, 0, 1, 4, 5)
		m.addPolygon(Roof, 4, 5, 6, 7)
	}

	m.addPolygon(Floor, 0, 1, 2, 3)
	return m
}
