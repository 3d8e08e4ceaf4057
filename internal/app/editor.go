// Package app runs the massing editor: one goroutine owns the house, the camera and the
// overlay, consumes input events in order and publishes frame snapshots.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/internal/measurement"
	"github.com/philipparndt/gomassing/internal/picking"
	"github.com/philipparndt/gomassing/pkg/geometry"
	"github.com/philipparndt/gomassing/pkg/viewer"
	"go.uber.org/zap"
)

// ErrStopped is returned for events sent after the editor was torn down
var ErrStopped = errors.New("app: editor stopped")

// Listener receives derived values whenever they change. It is called on the editor goroutine.
type Listener interface {
	UpdateMetrics(metrics measurement.Metrics)
	UpdateMeasurements(positions measurement.Positions)
}

// FrameSink receives one snapshot per scheduled frame. It is called on the editor goroutine.
type FrameSink interface {
	DrawFrame(frame viewer.Frame)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Metrics      func(measurement.Metrics)
	Measurements func(measurement.Positions)
}

func (l ListenerFuncs) UpdateMetrics(m measurement.Metrics) {
	if l.Metrics != nil {
		l.Metrics(m)
	}
}

func (l ListenerFuncs) UpdateMeasurements(p measurement.Positions) {
	if l.Measurements != nil {
		l.Measurements(p)
	}
}

// FrameSinkFunc adapts a function to a FrameSink
type FrameSinkFunc func(viewer.Frame)

func (f FrameSinkFunc) DrawFrame(frame viewer.Frame) {
	f(frame)
}

// Editor is the interaction engine for one house
type Editor struct {
	cfg      Config
	log      *zap.Logger
	store    viewer.Store
	listener Listener
	sink     FrameSink
	session  string

	events chan Event
	stop   chan struct{}
	done   chan struct{}

	mu       sync.Mutex
	running  bool
	closed   bool
	teardown sync.Once
	closeErr error

	// owned by the loop goroutine
	entity    *building.Entity
	scene     *picking.Scene
	camera    *viewer.Camera
	controls  *viewer.Controls
	outline   *measurement.Outline
	tracker   measurement.HitTracker
	gesture   gesture
	hover     hoverThrottle
	render    renderScheduler
	metrics   measurement.Metrics
	positions measurement.Positions
	seq       uint64
	now       func() time.Time

	// world-space geometry of the last rebuild, shared by frames until the mesh changes
	faces          []viewer.FaceShape
	edges          [][2]geometry.Vector3
	geometryBuilds int
}

// New creates an editor with a fresh house. The camera pose is restored from store when a
// valid one was saved; listener and sink may be nil.
func New(cfg Config, store viewer.Store, listener Listener, sink FrameSink, logger *zap.Logger) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid editor config: %w", err)
	}
	entity, err := building.NewEntity(cfg.House)
	if err != nil {
		return nil, fmt.Errorf("failed to build house: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if listener == nil {
		listener = ListenerFuncs{}
	}
	if sink == nil {
		sink = FrameSinkFunc(func(viewer.Frame) {})
	}

	session := uuid.NewString()
	e := &Editor{
		cfg:       cfg,
		log:       logger.With(zap.String("session", session)),
		store:     store,
		listener:  listener,
		sink:      sink,
		session:   session,
		events:    make(chan Event, cfg.QueueSize),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		entity:    entity,
		scene:     picking.NewScene(entity),
		camera:    viewer.NewCamera(cfg.Width, cfg.Height),
		outline:   measurement.NewOutline(),
		hover:     hoverThrottle{window: cfg.HoverThrottle},
		render:    renderScheduler{throttle: cfg.RenderThrottle, settle: cfg.RenderSettle},
		metrics:   measurement.Metrics{},
		positions: measurement.Positions{},
		now:       time.Now,
	}
	e.controls = viewer.NewControls(e.camera)
	e.restorePose()
	return e, nil
}

func (e *Editor) restorePose() {
	if e.store == nil {
		return
	}
	pose, err := viewer.LoadPose(e.store)
	switch {
	case errors.Is(err, viewer.ErrNoPose):
		e.log.Debug("no saved camera pose, using default")
	case err != nil:
		e.log.Warn("failed to restore camera pose, using default", zap.Error(err))
	default:
		e.camera.ApplyPose(pose)
	}
}

// Session returns the id tagging this editor's log output
func (e *Editor) Session() string {
	return e.session
}

// Run processes events until ctx is done or Close is called, then tears the editor down.
// It reports the first frame and all metrics right away.
func (e *Editor) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.closed || e.running {
		e.mu.Unlock()
		return ErrStopped
	}
	e.running = true
	e.mu.Unlock()

	defer close(e.done)
	defer e.shutdown()

	e.log.Info("editor started",
		zap.Float64("width", e.cfg.Width),
		zap.Float64("height", e.cfg.Height),
		zap.Stringer("profile", e.cfg.House.Profile),
		zap.Stringer("roofRule", e.cfg.RoofRule))

	e.report(measurement.AllMetrics(e.entity))
	e.drawFrame()

	heartbeat := time.NewTicker(e.cfg.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.stop:
			return nil
		case ev := <-e.events:
			e.handle(ev)
		case <-heartbeat.C:
			e.requestRender()
		case <-e.hover.timer.C:
			if p, ok := e.hover.expire(e.now()); ok {
				e.hitTest(p)
			}
		case <-e.render.timer.C:
			e.render.timer.fired()
			e.drawFrame()
		}
	}
}

// Dispatch queues an event. It blocks while the queue is full and fails with ErrStopped
// once the editor is torn down.
func (e *Editor) Dispatch(ev Event) error {
	select {
	case <-e.stop:
		return ErrStopped
	case <-e.done:
		return ErrStopped
	default:
	}
	select {
	case e.events <- ev:
		return nil
	case <-e.stop:
		return ErrStopped
	case <-e.done:
		return ErrStopped
	}
}

// Status reports the editor state after every event dispatched before the call was handled
func (e *Editor) Status(ctx context.Context) (Status, error) {
	var status Status
	q := query{fn: func() { status = e.status() }, done: make(chan struct{})}
	if err := e.Dispatch(q); err != nil {
		return Status{}, err
	}
	select {
	case <-q.done:
		return status, nil
	case <-e.done:
		return Status{}, ErrStopped
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
}

// Close stops the loop, saves the camera pose and releases the overlay. It is safe to call
// more than once; later calls return the first result.
func (e *Editor) Close() error {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.stop)
	}
	running := e.running
	e.mu.Unlock()

	if running {
		<-e.done
	} else {
		e.shutdown()
	}
	return e.closeErr
}

func (e *Editor) shutdown() {
	e.teardown.Do(func() {
		e.hover.stop()
		e.render.stop()
		e.outline.Release()
		e.tracker.Reset()
		e.gesture = gesture{}

		if e.store != nil {
			if err := viewer.SavePose(e.store, e.camera.Pose()); err != nil {
				e.closeErr = fmt.Errorf("failed to save camera pose: %w", err)
				e.log.Error("failed to save camera pose", zap.Error(err))
			}
		}
		e.log.Info("editor stopped", zap.Uint64("frames", e.seq))
	})
}

func (e *Editor) handle(ev Event) {
	switch ev := ev.(type) {
	case PointerDown:
		e.pointerDown(ev)
	case PointerMove:
		e.pointerMove(ev)
	case PointerUp:
		e.pointerUp(ev)
		e.offerHover(hoverPoint{ev.X, ev.Y})
	case Wheel:
		if e.controls.Zoom(ev.DeltaY) {
			e.log.Debug("zoom", zap.Float64("deltaY", ev.DeltaY))
		}
		e.requestRender()
	case Resize:
		if ev.Width > 0 && ev.Height > 0 {
			e.camera.Resize(ev.Width, ev.Height)
			e.requestRender()
		}
	case query:
		ev.fn()
		close(ev.done)
	default:
		e.log.Warn("unknown event", zap.String("type", fmt.Sprintf("%T", ev)))
	}
}

func (e *Editor) requestRender() {
	e.render.request(e.now())
}

// report forwards the metrics that changed since the last report
func (e *Editor) report(m measurement.Metrics) {
	changed := m.Changed(e.metrics)
	if len(changed) == 0 {
		return
	}
	e.metrics.Merge(changed)
	e.listener.UpdateMetrics(changed)
}
