package building

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomassing/pkg/geometry"
	"github.com/samber/lo"
)

// Ring orders close a face outline starting and ending on its first vertex.
// Quads are stored in grid order (bottom-left, bottom-right, top-left, top-right),
// pentagons in perimeter order.
var (
	QuadRing     = []int{0, 2, 3, 1, 0}
	PentagonRing = []int{0, 1, 2, 3, 4, 0}
)

// axisSnap is how close a normal component must be to ±1 to be snapped onto the axis
const axisSnap = 1e-9

// Face is a polygon of the mesh. Indices point into Mesh.Vertices.
type Face struct {
	Index   int
	Indices []int
	Normal  geometry.Vector3
	Polygon *Polygon
}

// Ring returns the closed outline of the face as vertex buffer indices
func (f *Face) Ring() []int {
	var order []int
	switch len(f.Indices) {
	case 4:
		order = QuadRing
	case 5:
		order = PentagonRing
	default:
		panic(fmt.Sprintf("building: face %d has %d vertices, only quads and pentagons are supported", f.Index, len(f.Indices)))
	}
	return lo.Map(order, func(i int, _ int) int { return f.Indices[i] })
}

// Triangles fans the face outline into triangles of vertex buffer indices
func (f *Face) Triangles() [][3]int {
	ring := f.Ring()
	ring = ring[:len(ring)-1]
	tris := make([][3]int, 0, len(ring)-2)
	for i := 1; i+1 < len(ring); i++ {
		tris = append(tris, [3]int{ring[0], ring[i], ring[i+1]})
	}
	return tris
}

// Polygon is an extrudable building element (wall, end wall, roof plane)
type Polygon struct {
	Name    string
	Faces   []*Face
	mesh    *Mesh
	indices []int
	dirty   bool
}

// Vertices returns the current vertex positions of the polygon
func (p *Polygon) Vertices() []geometry.Vector3 {
	return lo.Map(p.indices, func(i int, _ int) geometry.Vector3 { return p.mesh.Vertices[i] })
}

// Normal returns the outward normal of the polygon's first face
func (p *Polygon) Normal() geometry.Vector3 {
	return p.Faces[0].Normal
}

// Mesh returns the mesh the polygon renders from
func (p *Polygon) Mesh() *Mesh {
	return p.mesh
}

// Dirty reports whether the polygon has changed since the last frame
func (p *Polygon) Dirty() bool {
	return p.dirty
}

// Mesh owns the vertex buffer of a building volume and the caches derived from it
type Mesh struct {
	Vertices []geometry.Vector3
	Faces    []*Face
	Polygons []*Polygon

	Box    geometry.BoundingBox
	Sphere geometry.BoundingSphere
	// Edges is the outline buffer of every face edge, deduplicated
	Edges [][2]geometry.Vector3

	version uint64
	dirty   bool
}

func newMesh(vertices []geometry.Vector3) *Mesh {
	return &Mesh{Vertices: vertices}
}

// addPolygon registers a single-face polygon built from vertex buffer indices
func (m *Mesh) addPolygon(name string, indices ...int) *Polygon {
	p := &Polygon{Name: name, mesh: m, indices: lo.Uniq(indices)}
	face := &Face{Index: len(m.Faces), Indices: indices, Polygon: p}
	p.Faces = []*Face{face}
	m.Faces = append(m.Faces, face)
	m.Polygons = append(m.Polygons, p)
	return p
}

// Version increases with every refresh
func (m *Mesh) Version() uint64 {
	return m.version
}

// TakeDirty reports whether the geometry changed since the last call and clears the flag
func (m *Mesh) TakeDirty() bool {
	dirty := m.dirty
	m.dirty = false
	for _, p := range m.Polygons {
		p.dirty = false
	}
	return dirty
}

// Polygon looks up a polygon by name
func (m *Mesh) Polygon(name string) (*Polygon, bool) {
	return lo.Find(m.Polygons, func(p *Polygon) bool { return p.Name == name })
}

// GroundVertices returns the vertices lying on grade (Y == 0) in buffer order
func (m *Mesh) GroundVertices() []geometry.Vector3 {
	return lo.Filter(m.Vertices, func(v geometry.Vector3, _ int) bool { return v.Y == 0 })
}

// Height returns the highest vertex Y
func (m *Mesh) Height() float64 {
	return lo.Max(lo.Map(m.Vertices, func(v geometry.Vector3, _ int) float64 { return v.Y }))
}

// Width is the X distance between the first two ground vertices
func (m *Mesh) Width() float64 {
	ground := m.groundAtLeast(2)
	return math.Abs(ground[0].X - ground[1].X)
}

// Length is the Z distance between the second and third ground vertices
func (m *Mesh) Length() float64 {
	ground := m.groundAtLeast(3)
	return math.Abs(ground[1].Z - ground[2].Z)
}

func (m *Mesh) groundAtLeast(n int) []geometry.Vector3 {
	ground := m.GroundVertices()
	if len(ground) < n {
		panic(fmt.Sprintf("building: expected at least %d ground vertices, mesh has %d", n, len(ground)))
	}
	return ground
}

// Refresh recomputes normals, bounding volumes and the edges buffer after a mutation
func (m *Mesh) Refresh() {
	m.Box = geometry.BoundingBoxOf(m.Vertices)
	m.Sphere = geometry.BoundingSphereOf(m.Vertices)
	center := m.Box.Center()

	type edgeKey struct{ a, b int }
	seen := make(map[edgeKey]bool)
	m.Edges = m.Edges[:0]

	for _, f := range m.Faces {
		ring := f.Ring()
		f.Normal = m.faceNormal(ring, center)

		for i := 0; i+1 < len(ring); i++ {
			a, b := ring[i], ring[i+1]
			if a > b {
				a, b = b, a
			}
			if seen[edgeKey{a, b}] {
				continue
			}
			seen[edgeKey{a, b}] = true
			m.Edges = append(m.Edges, [2]geometry.Vector3{m.Vertices[a], m.Vertices[b]})
		}
	}

	m.version++
	m.dirty = true
}

// tilted returns the first face outside p whose axis aligned normal would change with the
// current vertex positions. Stored normals still describe the geometry before the move.
func (m *Mesh) tilted(p *Polygon) (*Face, bool) {
	center := geometry.BoundingBoxOf(m.Vertices).Center()
	for _, f := range m.Faces {
		if f.Polygon == p || !axisAligned(f.Normal) {
			continue
		}
		if m.faceNormal(f.Ring(), center) != f.Normal {
			return f, true
		}
	}
	return nil, false
}

// axisAligned reports whether n is ±1 on exactly one axis
func axisAligned(n geometry.Vector3) bool {
	zeros := lo.Count([]float64{n.X, n.Y, n.Z}, 0)
	return zeros == 2 && math.Abs(n.X)+math.Abs(n.Y)+math.Abs(n.Z) == 1
}

// faceNormal uses Newell's method over the closed ring and orients the result away
// from the volume's center
func (m *Mesh) faceNormal(ring []int, center geometry.Vector3) geometry.Vector3 {
	var n geometry.Vector3
	var centroid geometry.Vector3
	for i := 0; i+1 < len(ring); i++ {
		cur, next := m.Vertices[ring[i]], m.Vertices[ring[i+1]]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
		centroid = centroid.Add(cur)
	}
	centroid = centroid.Mul(1 / float64(len(ring)-1))

	n = n.Normalize()
	if n.Dot(centroid.Sub(center)) < 0 {
		n = n.Mul(-1)
	}
	return snapAxis(n)
}

// snapAxis removes rounding noise so axis aligned faces carry exact ±1 components
func snapAxis(n geometry.Vector3) geometry.Vector3 {
	switch {
	case math.Abs(math.Abs(n.X)-1) < axisSnap:
		return geometry.Vector3{X: math.Copysign(1, n.X)}
	case math.Abs(math.Abs(n.Y)-1) < axisSnap:
		return geometry.Vector3{Y: math.Copysign(1, n.Y)}
	case math.Abs(math.Abs(n.Z)-1) < axisSnap:
		return geometry.Vector3{Z: math.Copysign(1, n.Z)}
	}
	return n
}
