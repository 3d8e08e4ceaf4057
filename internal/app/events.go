package app

import "fmt"

// Button is the mouse button of a press
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Direction maps the button onto the sign of its action: primary adds, secondary removes
func (b Button) Direction() int {
	if b == ButtonSecondary {
		return -1
	}
	return 1
}

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// ParseButton converts a button name
func ParseButton(name string) (Button, error) {
	switch name {
	case "", "primary":
		return ButtonPrimary, nil
	case "secondary":
		return ButtonSecondary, nil
	}
	return ButtonPrimary, fmt.Errorf("unknown mouse button %q", name)
}

// Event is an input event for the editor. Positions are viewport pixels, top-left origin.
type Event interface {
	isEvent()
}

// PointerDown is a button press
type PointerDown struct {
	X, Y   float64
	Button Button
}

// PointerMove is pointer motion, with or without a button held
type PointerMove struct {
	X, Y float64
}

// PointerUp is a button release
type PointerUp struct {
	X, Y float64
}

// Wheel is a scroll step; negative values zoom in
type Wheel struct {
	DeltaY float64
}

// Resize changes the viewport size
type Resize struct {
	Width, Height float64
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Wheel) isEvent()       {}
func (Resize) isEvent()      {}

// query runs fn on the loop goroutine
type query struct {
	fn   func()
	done chan struct{}
}

func (query) isEvent() {}
