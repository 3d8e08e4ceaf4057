package measurement

import "github.com/philipparndt/gomassing/internal/building"

// HitTracker suppresses repeated hit-test results on the same face
type HitTracker struct {
	hit    bool
	object *building.Mesh
	face   int
}

// Observe records the nearest hit of a result and reports whether it
// differs from the previous one: a different face, or a hit/no-hit toggle.
func (t *HitTracker) Observe(object *building.Mesh, faceIndex int, hit bool) bool {
	changed := hit != t.hit || (hit && (object != t.object || faceIndex != t.face))
	t.hit, t.object, t.face = hit, object, faceIndex
	if !hit {
		t.object, t.face = nil, 0
	}
	return changed
}

// Reset forgets the previous result
func (t *HitTracker) Reset() {
	*t = HitTracker{}
}
