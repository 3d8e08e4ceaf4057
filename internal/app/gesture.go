package app

import (
	"errors"
	"math"

	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/internal/measurement"
	"github.com/philipparndt/gomassing/internal/picking"
	"github.com/philipparndt/gomassing/pkg/geometry"
	"go.uber.org/zap"
)

// Phase is the state of the gesture state machine
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseButtonDown
	PhaseDragging
	PhaseOrbiting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseButtonDown:
		return "button down"
	case PhaseDragging:
		return "dragging"
	case PhaseOrbiting:
		return "orbiting"
	}
	return "unknown"
}

// gesture is one press-to-release interaction. The category is fixed at the press.
type gesture struct {
	phase     Phase
	category  picking.Category
	direction int
	hit       picking.Intersection
	plane     geometry.Plane
	hasPlane  bool

	startX, startY float64
	lastX, lastY   float64
}

func (g *gesture) travelled(x, y float64) float64 {
	return math.Hypot(x-g.startX, y-g.startY)
}

func (e *Editor) pointerDown(ev PointerDown) {
	if e.gesture.phase != PhaseIdle {
		// a second button while one is held is ignored
		return
	}
	direction := ev.Button.Direction()
	e.gesture = gesture{
		phase:     PhaseButtonDown,
		direction: direction,
		startX:    ev.X,
		startY:    ev.Y,
		lastX:     ev.X,
		lastY:     ev.Y,
	}

	hit, ok := picking.Nearest(e.scene.Intersect(e.camera, ev.X, ev.Y))
	if !ok {
		if e.controls.Enabled {
			e.gesture.phase = PhaseOrbiting
		}
		return
	}

	e.controls.Enabled = false
	e.gesture.hit = hit
	e.gesture.category = picking.Classify(hit.Face.Normal, e.cfg.RoofRule)

	switch e.gesture.category {
	case picking.Roof:
		e.roofDown(direction)
	case picking.Wall:
		e.wallDown(hit)
	case picking.EndWall:
		e.endWallDown(hit, direction)
	}
}

func (e *Editor) roofDown(direction int) {
	if e.entity.AddFloor(direction) {
		e.report(measurement.FloorMetrics(e.entity))
	}
	e.outline.Show()
	e.log.Debug("roof", zap.Int("direction", direction), zap.Int("floors", e.entity.Floors()))
	e.requestRender()
}

func (e *Editor) wallDown(hit picking.Intersection) {
	p := hit.Point
	plane, err := geometry.PlaneFromCoplanarPoints(p, p.Add(geometry.Up), p.Add(hit.Face.Normal.Normalize()))
	if err != nil {
		e.log.Warn("cannot constrain wall drag", zap.Error(err), zap.String("polygon", hit.Face.Polygon.Name))
	} else {
		e.gesture.plane = plane
		e.gesture.hasPlane = true
	}
	e.log.Debug("wall", zap.String("polygon", hit.Face.Polygon.Name))
	e.requestRender()
}

func (e *Editor) endWallDown(hit picking.Intersection, direction int) {
	polygon := hit.Face.Polygon
	distance := e.cfg.EndWallStep * float64(direction)
	if err := e.entity.Extrude(polygon, distance); err != nil {
		e.logExtrudeError(err, polygon, distance)
	} else {
		e.report(measurement.LengthMetric(hit.Object))
	}
	e.outline.Show()
	e.log.Debug("end wall", zap.String("polygon", polygon.Name), zap.Float64("distance", distance))
	e.requestRender()
}

func (e *Editor) pointerMove(ev PointerMove) {
	g := &e.gesture
	switch g.phase {
	case PhaseButtonDown:
		if g.travelled(ev.X, ev.Y) < e.cfg.DragThreshold {
			break
		}
		g.phase = PhaseDragging
		fallthrough
	case PhaseDragging:
		if g.category == picking.Wall {
			e.dragWall(ev.X, ev.Y)
		}
		e.requestRender()
	case PhaseOrbiting:
		if e.controls.Rotate(ev.X-g.lastX, ev.Y-g.lastY) {
			e.requestRender()
		}
	}
	g.lastX, g.lastY = ev.X, ev.Y

	e.offerHover(hoverPoint{ev.X, ev.Y})
}

func (e *Editor) dragWall(x, y float64) {
	g := &e.gesture
	if !g.hasPlane {
		return
	}
	ray := e.camera.Ray(x, y)
	point, ok := ray.IntersectPlane(g.plane)
	if !ok {
		return
	}
	local := e.entity.WorldToLocal(point)
	applied := e.entity.SetWallSpan(g.hit.Face.Polygon, local.X)

	e.report(measurement.WidthMetric(g.hit.Object))
	e.outline.Show()
	e.log.Debug("dragging wall", zap.Float64("x", applied))
}

func (e *Editor) pointerUp(ev PointerUp) {
	g := e.gesture
	if g.phase == PhaseButtonDown && g.category == picking.None && g.hit.Face != nil {
		e.clickExtrude(g.hit, g.direction)
	}
	e.gesture = gesture{}
	e.controls.Enabled = true
	e.requestRender()
}

func (e *Editor) clickExtrude(hit picking.Intersection, direction int) {
	polygon := hit.Face.Polygon
	distance := e.cfg.ClickStep * float64(direction)
	if err := e.entity.Extrude(polygon, distance); err != nil {
		e.logExtrudeError(err, polygon, distance)
		return
	}
	e.report(measurement.AllMetrics(e.entity))
	e.log.Debug("extrude", zap.String("polygon", polygon.Name), zap.Float64("distance", distance))
}

func (e *Editor) logExtrudeError(err error, polygon *building.Polygon, distance float64) {
	if errors.Is(err, building.ErrCollapsed) || errors.Is(err, building.ErrSkewed) {
		e.log.Info("extrusion rejected", zap.String("polygon", polygon.Name), zap.Float64("distance", distance))
		return
	}
	e.log.Warn("extrusion failed", zap.Error(err), zap.String("polygon", polygon.Name))
}

func (e *Editor) offerHover(p hoverPoint) {
	if e.hover.offer(e.now(), p) {
		e.hitTest(p)
	}
}

// hitTest updates the outline from the face under the pointer. Repeated results on the
// same face are dropped; while a button is held only the dedup state follows the pointer.
func (e *Editor) hitTest(p hoverPoint) {
	hit, ok := picking.Nearest(e.scene.Intersect(e.camera, p.x, p.y))
	if !e.tracker.Observe(hit.Object, hit.FaceIndex, ok) {
		return
	}
	if e.gesture.phase == PhaseIdle {
		if ok {
			e.outline.Replace(measurement.NewLineBuffer(hit.Object, hit.Face, e.entity))
		} else {
			e.outline.Hide()
		}
	}
	e.requestRender()
}
