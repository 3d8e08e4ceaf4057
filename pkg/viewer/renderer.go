package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// PointerHandler receives the input events of a HouseView in viewport units
type PointerHandler interface {
	PointerDown(x, y float64, secondary bool)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
	Wheel(deltaY float64)
	Resize(width, height float64)
}

// HouseView is a widget that draws frames and forwards mouse input
type HouseView struct {
	widget.BaseWidget
	handler PointerHandler
	frame   Frame
	raster  *canvas.Raster
	size    fyne.Size
}

// NewHouseView creates a view forwarding input to handler
func NewHouseView(handler PointerHandler) *HouseView {
	v := &HouseView{handler: handler}
	v.raster = canvas.NewRaster(func(w, h int) image.Image {
		return Rasterize(v.frame, w, h)
	})
	v.ExtendBaseWidget(v)
	return v
}

// SetFrame replaces the displayed frame. It must be called on the fyne main goroutine.
func (v *HouseView) SetFrame(frame Frame) {
	v.frame = frame
	v.raster.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (v *HouseView) CreateRenderer() fyne.WidgetRenderer {
	return &houseViewRenderer{view: v}
}

// MouseDown starts a gesture
func (v *HouseView) MouseDown(event *desktop.MouseEvent) {
	v.handler.PointerDown(float64(event.Position.X), float64(event.Position.Y), event.Button == desktop.MouseButtonSecondary)
}

// MouseUp ends a gesture
func (v *HouseView) MouseUp(event *desktop.MouseEvent) {
	v.handler.PointerUp(float64(event.Position.X), float64(event.Position.Y))
}

// MouseIn is required by desktop.Hoverable
func (v *HouseView) MouseIn(event *desktop.MouseEvent) {
	v.handler.PointerMove(float64(event.Position.X), float64(event.Position.Y))
}

// MouseMoved forwards hover motion
func (v *HouseView) MouseMoved(event *desktop.MouseEvent) {
	v.handler.PointerMove(float64(event.Position.X), float64(event.Position.Y))
}

// MouseOut is required by desktop.Hoverable
func (v *HouseView) MouseOut() {}

// Dragged forwards motion while a button is held
func (v *HouseView) Dragged(event *fyne.DragEvent) {
	v.handler.PointerMove(float64(event.Position.X), float64(event.Position.Y))
}

// DragEnd is required by fyne.Draggable; the release arrives through MouseUp
func (v *HouseView) DragEnd() {}

// Scrolled handles scroll events for zooming
func (v *HouseView) Scrolled(event *fyne.ScrollEvent) {
	v.handler.Wheel(-float64(event.Scrolled.DY))
}

type houseViewRenderer struct {
	view *HouseView
}

func (r *houseViewRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
	if size != r.view.size {
		r.view.size = size
		r.view.handler.Resize(float64(size.Width), float64(size.Height))
	}
}

func (r *houseViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *houseViewRenderer) Refresh() {
	r.view.raster.Refresh()
}

func (r *houseViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster}
}

func (r *houseViewRenderer) Destroy() {}
