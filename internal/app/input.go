package app

import (
	"github.com/philipparndt/gomassing/pkg/viewer"
	"go.uber.org/zap"
)

// Input returns a viewer.PointerHandler that dispatches widget input into the editor
func (e *Editor) Input() viewer.PointerHandler {
	return pointerInput{editor: e}
}

type pointerInput struct {
	editor *Editor
}

func (in pointerInput) PointerDown(x, y float64, secondary bool) {
	button := ButtonPrimary
	if secondary {
		button = ButtonSecondary
	}
	in.send(PointerDown{X: x, Y: y, Button: button})
}

func (in pointerInput) PointerMove(x, y float64) {
	in.send(PointerMove{X: x, Y: y})
}

func (in pointerInput) PointerUp(x, y float64) {
	in.send(PointerUp{X: x, Y: y})
}

func (in pointerInput) Wheel(deltaY float64) {
	in.send(Wheel{DeltaY: deltaY})
}

func (in pointerInput) Resize(width, height float64) {
	in.send(Resize{Width: width, Height: height})
}

func (in pointerInput) send(ev Event) {
	if err := in.editor.Dispatch(ev); err != nil {
		in.editor.log.Debug("input dropped", zap.Error(err))
	}
}
