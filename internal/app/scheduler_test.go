package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoverThrottle(t *testing.T) {
	h := hoverThrottle{window: 20 * time.Millisecond}
	defer h.stop()
	t0 := time.Unix(0, 0)

	assert.True(t, h.offer(t0, hoverPoint{1, 1}), "first event of a window passes")
	assert.False(t, h.offer(t0.Add(5*time.Millisecond), hoverPoint{2, 2}))
	assert.False(t, h.offer(t0.Add(10*time.Millisecond), hoverPoint{3, 3}))

	p, ok := h.expire(t0.Add(20 * time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, hoverPoint{3, 3}, p, "latest event wins")

	// the trailing event opened a new window
	assert.False(t, h.offer(t0.Add(30*time.Millisecond), hoverPoint{4, 4}))
	p, ok = h.expire(t0.Add(40 * time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, hoverPoint{4, 4}, p)

	_, ok = h.expire(t0.Add(60 * time.Millisecond))
	assert.False(t, ok, "empty window")
	assert.True(t, h.offer(t0.Add(61*time.Millisecond), hoverPoint{5, 5}))
}

func TestRenderSchedulerLeadingEdge(t *testing.T) {
	r := renderScheduler{throttle: 20 * time.Millisecond, settle: 10 * time.Millisecond}
	defer r.stop()
	t0 := time.Unix(0, 0)

	assert.True(t, r.request(t0))
	assert.NotNil(t, r.timer.C)
	assert.False(t, r.request(t0.Add(19*time.Millisecond)))
	assert.True(t, r.request(t0.Add(20*time.Millisecond)))
}

func TestTimerFireAndStop(t *testing.T) {
	var tm timer
	assert.Nil(t, tm.C)

	tm.arm(time.Millisecond)
	select {
	case <-tm.C:
		tm.fired()
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Nil(t, tm.C)

	tm.arm(time.Hour)
	tm.stop()
	assert.Nil(t, tm.C)
}
