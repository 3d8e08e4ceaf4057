package app

import (
	"fmt"
	"time"

	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/internal/picking"
)

// Config holds the editor settings
type Config struct {
	Width  float64 // viewport width in pixels
	Height float64 // viewport height in pixels

	HoverThrottle  time.Duration // window coalescing hover hit-tests
	RenderThrottle time.Duration // minimum spacing of render requests
	RenderSettle   time.Duration // delay between a render request and the frame
	Heartbeat      time.Duration // idle redraw interval

	DragThreshold float64 // pointer travel in pixels that turns a press into a drag
	EndWallStep   float64 // extrusion applied by an end wall press
	ClickStep     float64 // extrusion applied by a click on any other face
	RoofRule      picking.RoofRule

	House     building.Options
	QueueSize int // buffered input events
}

// DefaultConfig returns the settings of the stock editor
func DefaultConfig() Config {
	return Config{
		Width:          400,
		Height:         400,
		HoverThrottle:  20 * time.Millisecond,
		RenderThrottle: 20 * time.Millisecond,
		RenderSettle:   10 * time.Millisecond,
		Heartbeat:      2 * time.Second,
		DragThreshold:  5,
		EndWallStep:    1.2,
		ClickStep:      1,
		RoofRule:       picking.RoofHorizontal,
		House:          building.DefaultOptions(),
		QueueSize:      64,
	}
}

// Validate checks the settings for values the editor cannot run with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must have a positive size, got %vx%v", c.Width, c.Height)
	}
	if c.HoverThrottle < 0 || c.RenderThrottle < 0 || c.RenderSettle < 0 {
		return fmt.Errorf("throttle and settle durations must not be negative")
	}
	if c.Heartbeat <= 0 {
		return fmt.Errorf("heartbeat must be positive, got %v", c.Heartbeat)
	}
	if c.DragThreshold < 0 {
		return fmt.Errorf("drag threshold must not be negative, got %v", c.DragThreshold)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("event queue size must be at least 1, got %d", c.QueueSize)
	}
	return nil
}
