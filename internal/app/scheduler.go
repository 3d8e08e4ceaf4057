package app

import "time"

// timer is a one-shot timer whose channel is nil while it is not armed,
// so it can sit in a select without firing.
type timer struct {
	t *time.Timer
	C <-chan time.Time
}

func (t *timer) arm(d time.Duration) {
	if t.t == nil {
		t.t = time.NewTimer(d)
	} else {
		t.t.Reset(d)
	}
	t.C = t.t.C
}

// fired must be called after receiving from C
func (t *timer) fired() {
	t.C = nil
}

func (t *timer) stop() {
	if t.t != nil {
		t.t.Stop()
	}
	t.C = nil
}

// hoverThrottle passes the first position of a window through at once and
// the most recent one when the window ends.
type hoverThrottle struct {
	window  time.Duration
	until   time.Time
	pending *hoverPoint
	timer   timer
}

type hoverPoint struct {
	x, y float64
}

// offer reports whether p should be hit-tested now. Otherwise it is kept for the window's end.
func (h *hoverThrottle) offer(now time.Time, p hoverPoint) bool {
	if !now.Before(h.until) {
		h.open(now)
		return true
	}
	h.pending = &p
	return false
}

// expire closes the window and returns the point kept for its end, which opens the next window
func (h *hoverThrottle) expire(now time.Time) (hoverPoint, bool) {
	h.timer.fired()
	if h.pending == nil {
		return hoverPoint{}, false
	}
	p := *h.pending
	h.pending = nil
	h.open(now)
	return p, true
}

func (h *hoverThrottle) open(now time.Time) {
	h.until = now.Add(h.window)
	h.timer.arm(h.window)
}

func (h *hoverThrottle) stop() {
	h.pending = nil
	h.timer.stop()
}

// renderScheduler turns render requests into frames: leading edge throttle, then a settle delay
type renderScheduler struct {
	throttle time.Duration
	settle   time.Duration
	until    time.Time
	timer    timer
}

// request asks for a frame. Requests inside the throttle window are dropped.
func (r *renderScheduler) request(now time.Time) bool {
	if now.Before(r.until) {
		return false
	}
	r.until = now.Add(r.throttle)
	r.timer.arm(r.settle)
	return true
}

func (r *renderScheduler) stop() {
	r.timer.stop()
}
