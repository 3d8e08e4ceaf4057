package viewer

import "github.com/philipparndt/gomassing/pkg/geometry"

// Frame is an immutable snapshot of everything needed to draw one picture.
// Front ends draw from frames only, never from the live geometry.
type Frame struct {
	Seq            uint64
	Camera         Camera
	Faces          []FaceShape
	Edges          [][2]geometry.Vector3
	Outline        []geometry.Vector3
	OutlineVisible bool
	Labels         []Label
}

// FaceShape is a world-space polygon outline (not closed) with its normal
type FaceShape struct {
	Points []geometry.Vector3
	Normal geometry.Vector3
}

// Label is a text placed at a screen anchor in viewport pixels
type Label struct {
	Name string
	Text string
	X, Y float64
}
