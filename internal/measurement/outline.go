package measurement

import (
	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/pkg/geometry"
	"github.com/samber/lo"
)

// Placer maps mesh-space points to world space. building.Entity satisfies it.
type Placer interface {
	LocalToWorld(p geometry.Vector3) geometry.Vector3
}

// LineBuffer is the geometry of one outline: a closed ring over a face's vertices.
// It reads the vertices live, so mutations of the face show up without a rebuild.
// A buffer must be released before it is dropped.
type LineBuffer struct {
	mesh     *building.Mesh
	ring     []int
	placer   Placer
	released bool
}

// NewLineBuffer creates the ring buffer of a face
func NewLineBuffer(mesh *building.Mesh, face *building.Face, placer Placer) *LineBuffer {
	return &LineBuffer{mesh: mesh, ring: face.Ring(), placer: placer}
}

// Points returns the world positions of the closed ring. It is empty after Release.
func (b *LineBuffer) Points() []geometry.Vector3 {
	if b.released {
		return nil
	}
	return lo.Map(b.ring, func(i int, _ int) geometry.Vector3 {
		return b.placer.LocalToWorld(b.mesh.Vertices[i])
	})
}

// Release frees the buffer
func (b *LineBuffer) Release() {
	b.released = true
	b.mesh = nil
}

// Outline is the single highlight polyline around the targeted face
type Outline struct {
	buffer   *LineBuffer
	visible  bool
	rebuilds int
}

// NewOutline creates a hidden, empty outline
func NewOutline() *Outline {
	return &Outline{}
}

// Replace releases the current buffer, installs a new one and shows the outline
func (o *Outline) Replace(buffer *LineBuffer) {
	if o.buffer != nil {
		o.buffer.Release()
	}
	o.buffer = buffer
	o.visible = true
	o.rebuilds++
}

// Show makes the outline visible
func (o *Outline) Show() {
	o.visible = true
}

// Hide makes the outline invisible and keeps its buffer
func (o *Outline) Hide() {
	o.visible = false
}

// Visible reports whether the outline is drawn
func (o *Outline) Visible() bool {
	return o.visible && o.buffer != nil
}

// Points returns the current polyline
func (o *Outline) Points() []geometry.Vector3 {
	if o.buffer == nil {
		return nil
	}
	return o.buffer.Points()
}

// Rebuilds counts the buffer replacements
func (o *Outline) Rebuilds() int {
	return o.rebuilds
}

// Release frees the current buffer and hides the outline
func (o *Outline) Release() {
	if o.buffer != nil {
		o.buffer.Release()
		o.buffer = nil
	}
	o.visible = false
}
