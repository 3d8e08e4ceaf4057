package app

import (
	"context"
	"sort"

	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/internal/measurement"
	"github.com/philipparndt/gomassing/internal/picking"
	"github.com/philipparndt/gomassing/pkg/geometry"
	"github.com/philipparndt/gomassing/pkg/viewer"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// drawFrame updates the label anchors and hands a snapshot to the sink
func (e *Editor) drawFrame() {
	e.updateLabelPositions()
	e.seq++
	e.sink.DrawFrame(e.snapshot())
}

func (e *Editor) updateLabelPositions() {
	positions := measurement.Anchors(e.entity, e.camera)
	if positions.Equal(e.positions) {
		return
	}
	e.positions = positions
	e.listener.UpdateMeasurements(copyPositions(positions))
}

// snapshot copies everything a front end draws, so the frame stays valid while the
// editor keeps mutating the house
func (e *Editor) snapshot() viewer.Frame {
	e.refreshGeometry()

	labels := make([]viewer.Label, 0, len(e.positions))
	for name, p := range e.positions {
		labels = append(labels, viewer.Label{Name: name, Text: e.metrics[name].String(), X: p.X, Y: p.Y})
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })

	return viewer.Frame{
		Seq:            e.seq,
		Camera:         *e.camera,
		Faces:          e.faces,
		Edges:          e.edges,
		Outline:        e.outline.Points(),
		OutlineVisible: e.outline.Visible(),
		Labels:         labels,
	}
}

// refreshGeometry rebuilds the world-space faces and edges when the mesh changed since the
// last frame. Unchanged frames share the previous slices, which are never written again.
func (e *Editor) refreshGeometry() {
	mesh := e.entity.Mesh()
	changed := lo.FilterMap(mesh.Polygons, func(p *building.Polygon, _ int) (string, bool) {
		return p.Name, p.Dirty()
	})
	if !mesh.TakeDirty() && e.faces != nil {
		return
	}

	faces := make([]viewer.FaceShape, 0, len(mesh.Faces))
	for _, f := range mesh.Faces {
		ring := f.Ring()
		points := lo.Map(ring[:len(ring)-1], func(i int, _ int) geometry.Vector3 {
			return e.entity.LocalToWorld(mesh.Vertices[i])
		})
		faces = append(faces, viewer.FaceShape{Points: points, Normal: f.Normal})
	}
	e.faces = faces
	e.edges = lo.Map(mesh.Edges, func(edge [2]geometry.Vector3, _ int) [2]geometry.Vector3 {
		return [2]geometry.Vector3{e.entity.LocalToWorld(edge[0]), e.entity.LocalToWorld(edge[1])}
	})
	e.geometryBuilds++
	e.log.Debug("geometry rebuilt", zap.Uint64("version", mesh.Version()), zap.Strings("polygons", changed))
}

func copyPositions(p measurement.Positions) measurement.Positions {
	out := make(measurement.Positions, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Status is a copy of the editor state
type Status struct {
	Phase           Phase
	Category        picking.Category
	Floors          int
	Metrics         measurement.Metrics
	Labels          measurement.Positions
	OutlineVisible  bool
	OutlineRebuilds int
	ControlsEnabled bool
	Frames          uint64
	GeometryBuilds  int
	Pose            viewer.Pose
}

func (e *Editor) status() Status {
	m := measurement.Metrics{}
	m.Merge(e.metrics)
	return Status{
		Phase:           e.gesture.phase,
		Category:        e.gesture.category,
		Floors:          e.entity.Floors(),
		Metrics:         m,
		Labels:          copyPositions(e.positions),
		OutlineVisible:  e.outline.Visible(),
		OutlineRebuilds: e.outline.Rebuilds(),
		ControlsEnabled: e.controls.Enabled,
		Frames:          e.seq,
		GeometryBuilds:  e.geometryBuilds,
		Pose:            e.camera.Pose(),
	}
}

// Snapshot builds a frame of the current state on demand, outside the render schedule
func (e *Editor) Snapshot(ctx context.Context) (viewer.Frame, error) {
	var frame viewer.Frame
	q := query{fn: func() {
		e.updateLabelPositions()
		frame = e.snapshot()
	}, done: make(chan struct{})}
	if err := e.Dispatch(q); err != nil {
		return viewer.Frame{}, err
	}
	select {
	case <-q.done:
		return frame, nil
	case <-e.done:
		return viewer.Frame{}, ErrStopped
	case <-ctx.Done():
		return viewer.Frame{}, ctx.Err()
	}
}
