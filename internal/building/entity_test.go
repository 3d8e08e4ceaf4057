package building

import (
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/gomassing/pkg/geometry"
)

func newTestEntity(t *testing.T, profile Profile) *Entity {
	t.Helper()
	opts := DefaultOptions()
	opts.Profile = profile
	e, err := NewEntity(opts)
	if err != nil {
		t.Fatalf("NewEntity failed: %v", err)
	}
	return e
}

func polygon(t *testing.T, e *Entity, name string) *Polygon {
	t.Helper()
	p, ok := e.Mesh().Polygon(name)
	if !ok {
		t.Fatalf("polygon %q not found", name)
	}
	return p
}

func TestNewEntityDimensions(t *testing.T) {
	e := newTestEntity(t, ProfileFlat)
	m := e.Mesh()

	if e.Floors() != 0 {
		t.Errorf("Floors() = %d, want 0", e.Floors())
	}
	if got := len(m.GroundVertices()); got != 4 {
		t.Errorf("GroundVertices() returned %d vertices, want 4", got)
	}
	if math.Abs(m.Width()-4) > 1e-12 {
		t.Errorf("Width() = %v, want 4", m.Width())
	}
	if math.Abs(m.Length()-6) > 1e-12 {
		t.Errorf("Length() = %v, want 6", m.Length())
	}
	if math.Abs(e.Height()-2.7) > 1e-12 {
		t.Errorf("Height() = %v, want 2.7", e.Height())
	}
	if got := len(m.Edges); got != 12 {
		t.Errorf("flat house has %d edges, want 12", got)
	}
}

func TestNewEntityRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts func(*Options)
	}{
		{"zero width", func(o *Options) { o.Width = 0 }},
		{"negative length", func(o *Options) { o.Length = -1 }},
		{"too wide", func(o *Options) { o.Width = 12 }},
		{"gable without ridge", func(o *Options) { o.Profile = ProfileGable; o.RidgeHeight = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.opts(&opts)
			if _, err := NewEntity(opts); err == nil {
				t.Error("NewEntity succeeded, want an error")
			}
		})
	}
}

func TestFaceNormals(t *testing.T) {
	e := newTestEntity(t, ProfileFlat)

	tests := []struct {
		polygon string
		normal  geometry.Vector3
	}{
		{EastWall, geometry.NewVector3(1, 0, 0)},
		{WestWall, geometry.NewVector3(-1, 0, 0)},
		{NorthEnd, geometry.NewVector3(0, 0, 1)},
		{SouthEnd, geometry.NewVector3(0, 0, -1)},
		{Roof, geometry.NewVector3(0, 1, 0)},
		{Floor, geometry.NewVector3(0, -1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.polygon, func(t *testing.T) {
			if got := polygon(t, e, tt.polygon).Normal(); got != tt.normal {
				t.Errorf("Normal() = %v, want %v", got, tt.normal)
			}
		})
	}
}

func TestGableProfile(t *testing.T) {
	e := newTestEntity(t, ProfileGable)
	m := e.Mesh()

	north := polygon(t, e, NorthEnd)
	if got := len(north.Faces[0].Ring()); got != 6 {
		t.Errorf("pentagon ring has %d entries, want 6", got)
	}
	if got := north.Normal(); got != geometry.NewVector3(0, 0, 1) {
		t.Errorf("north end wall normal = %v, want +Z", got)
	}

	slope := polygon(t, e, EastSlope).Normal()
	if slope.X <= 0 || slope.Y <= 0 || slope.Z != 0 {
		t.Errorf("east slope normal = %v, want +X+Y tilt", slope)
	}
	if got := len(m.Edges); got != 15 {
		t.Errorf("gable house has %d edges, want 15", got)
	}
	if math.Abs(e.Height()-4.2) > 1e-12 {
		t.Errorf("Height() = %v, want ridge at 4.2", e.Height())
	}
}

func TestAddFloor(t *testing.T) {
	e := newTestEntity(t, ProfileFlat)

	if !e.AddFloor(1) {
		t.Fatal("AddFloor(1) reported no change")
	}
	if e.Floors() != 1 {
		t.Errorf("Floors() = %d, want 1", e.Floors())
	}
	if math.Abs(e.Height()-5.4) > 1e-12 {
		t.Errorf("Height() = %v, want 5.4", e.Height())
	}

	if !e.AddFloor(-1) {
		t.Fatal("AddFloor(-1) reported no change")
	}
	if e.Floors() != 0 || math.Abs(e.Height()-2.7) > 1e-12 {
		t.Errorf("after removing: floors %d height %v, want 0 and 2.7", e.Floors(), e.Height())
	}

	if e.AddFloor(-1) {
		t.Error("AddFloor(-1) on the ground floor should be a no-op")
	}
	if got := len(e.Mesh().GroundVertices()); got != 4 {
		t.Errorf("ground vertices changed to %d", got)
	}
}

func TestAddFloorRaisesRidge(t *testing.T) {
	e := newTestEntity(t, ProfileGable)
	e.AddFloor(1)

	if math.Abs(e.Height()-6.9) > 1e-12 {
		t.Errorf("Height() = %v, want 6.9", e.Height())
	}
}

func TestExtrude(t *testing.T) {
	e := newTestEntity(t, ProfileFlat)
	north := polygon(t, e, NorthEnd)
	version := e.Mesh().Version()

	if err := e.Extrude(north, 1.2); err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	if math.Abs(e.Mesh().Length()-7.2) > 1e-12 {
		t.Errorf("Length() = %v, want 7.2", e.Mesh().Length())
	}
	if !north.Dirty() || e.Mesh().Version() == version {
		t.Error("Extrude did not mark the geometry dirty")
	}
	if math.Abs(e.Mesh().Box.Max.Z-7.2) > 1e-12 {
		t.Errorf("bounding box not refreshed, max Z %v", e.Mesh().Box.Max.Z)
	}

	if err := e.Extrude(north, -1.2); err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	if math.Abs(e.Mesh().Length()-6) > 1e-12 {
		t.Errorf("Length() = %v, want 6", e.Mesh().Length())
	}
}

func TestExtrudeCollapse(t *testing.T) {
	e := newTestEntity(t, ProfileFlat)
	south := polygon(t, e, SouthEnd)

	err := e.Extrude(south, -6)
	if !errors.Is(err, ErrCollapsed) {
		t.Fatalf("Extrude error = %v, want ErrCollapsed", err)
	}
	if math.Abs(e.Mesh().Length()-6) > 1e-12 {
		t.Errorf("collapsed extrusion was not reverted, length %v", e.Mesh().Length())
	}
}

func TestExtrudeSlopeMovesRidge(t *testing.T) {
	e := newTestEntity(t, ProfileGable)
	slope := polygon(t, e, EastSlope)
	east := polygon(t, e, EastWall)

	if err := e.Extrude(slope, 1); err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	if math.Abs(e.Height()-5.2) > 1e-12 {
		t.Errorf("Height() = %v, want ridge at 5.2", e.Height())
	}
	if got := east.Normal(); got != geometry.NewVector3(1, 0, 0) {
		t.Errorf("east wall normal = %v after slope extrude, want +X", got)
	}
	for _, v := range east.Vertices() {
		if v.X != 2 {
			t.Errorf("east wall vertex moved to %v", v)
		}
	}
	for _, name := range []string{NorthEnd, SouthEnd} {
		if got := polygon(t, e, name).Normal(); got.X != 0 || got.Y != 0 {
			t.Errorf("%s normal = %v, want ±Z", name, got)
		}
	}

	// the ridge may not drop below the eaves at 2.7
	err := e.Extrude(slope, -3)
	if !errors.Is(err, ErrCollapsed) {
		t.Fatalf("Extrude error = %v, want ErrCollapsed", err)
	}
	if math.Abs(e.Height()-5.2) > 1e-12 {
		t.Errorf("rejected ridge move was not reverted, height %v", e.Height())
	}
}

func TestTiltedFace(t *testing.T) {
	e := newTestEntity(t, ProfileGable)
	m := e.Mesh()
	slope := polygon(t, e, EastSlope)

	if _, ok := m.tilted(slope); ok {
		t.Error("untouched mesh reported a tilted face")
	}

	// push an eave outwards as a move along the slope normal would
	m.Vertices[5].X += 0.6
	face, ok := m.tilted(slope)
	if !ok {
		t.Fatal("moved eave did not tilt a face")
	}
	if face.Polygon.Name != EastWall {
		t.Errorf("tilted face belongs to %q, want %q", face.Polygon.Name, EastWall)
	}
}

func TestSetWallSpan(t *testing.T) {
	tests := []struct {
		name    string
		wall    string
		x       float64
		applied float64
		width   float64
	}{
		{"widen east", EastWall, 4, 4, 6},
		{"clamp east max", EastWall, 40, MaxWallOffset, 7},
		{"clamp east through zero", EastWall, -3, MinWallOffset, 2 + MinWallOffset},
		{"widen west", WestWall, -3, -3, 5},
		{"clamp west through zero", WestWall, 1, -MinWallOffset, 2 + MinWallOffset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEntity(t, ProfileFlat)
			applied := e.SetWallSpan(polygon(t, e, tt.wall), tt.x)

			if math.Abs(applied-tt.applied) > 1e-12 {
				t.Errorf("SetWallSpan applied %v, want %v", applied, tt.applied)
			}
			if math.Abs(e.Mesh().Width()-tt.width) > 1e-9 {
				t.Errorf("Width() = %v, want %v", e.Mesh().Width(), tt.width)
			}
		})
	}
}

func TestClampNeverZero(t *testing.T) {
	for _, x := range []float64{-100, -5, -0.00001, 0, 0.00001, 2, 5, 100} {
		if p := ClampPositive(x); p < MinWallOffset || p > MaxWallOffset {
			t.Errorf("ClampPositive(%v) = %v out of range", x, p)
		}
		if n := ClampNegative(x); n > -MinWallOffset || n < -MaxWallOffset {
			t.Errorf("ClampNegative(%v) = %v out of range", x, n)
		}
	}
}

func TestGroundAssertion(t *testing.T) {
	m := newMesh([]geometry.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}})

	defer func() {
		if recover() == nil {
			t.Error("Width() on a mesh with one ground vertex should panic")
		}
	}()
	m.Width()
}

func TestTakeDirty(t *testing.T) {
	e := newTestEntity(t, ProfileFlat)

	if !e.Mesh().TakeDirty() {
		t.Error("fresh mesh should be dirty")
	}
	if e.Mesh().TakeDirty() {
		t.Error("TakeDirty should clear the flag")
	}
	e.AddFloor(1)
	if !e.Mesh().TakeDirty() {
		t.Error("AddFloor should mark the mesh dirty")
	}
}

func TestLocalToWorld(t *testing.T) {
	opts := DefaultOptions()
	opts.Position = geometry.NewVector3(10, 0, -2)
	e, err := NewEntity(opts)
	if err != nil {
		t.Fatalf("NewEntity failed: %v", err)
	}

	world := e.LocalToWorld(geometry.NewVector3(1, 2, 3))
	if !world.ApproxEqual(geometry.NewVector3(11, 2, 1), 1e-12) {
		t.Errorf("LocalToWorld = %v, want (11,2,1)", world)
	}
	if back := e.WorldToLocal(world); !back.ApproxEqual(geometry.NewVector3(1, 2, 3), 1e-12) {
		t.Errorf("WorldToLocal = %v, want (1,2,3)", back)
	}
}
