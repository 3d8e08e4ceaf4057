package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gomassing/internal/app"
	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/internal/measurement"
	"github.com/philipparndt/gomassing/internal/picking"
	"github.com/philipparndt/gomassing/pkg/viewer"
	"github.com/philipparndt/gomassing/version"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type App struct {
	window  fyne.Window
	editor  *app.Editor
	view    *viewer.HouseView
	metrics *MetricsInfo
	log     *zap.Logger
}

// MetricsInfo holds the labels of the metrics panel
type MetricsInfo struct {
	floorsLabel *widget.Label
	heightLabel *widget.Label
	widthLabel  *widget.Label
	lengthLabel *widget.Label
}

func main() {
	gable := pflag.Bool("gable", false, "start with a gable roof")
	debug := pflag.Bool("debug", false, "development logging")
	pflag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := app.DefaultConfig()
	if *gable {
		cfg.House.Profile = building.ProfileGable
		cfg.RoofRule = picking.RoofNonVertical
	}

	a := fyneapp.NewWithID("io.github.philipparndt.gomassing")
	w := a.NewWindow("Massing " + version.GetFullVersion())

	gui := &App{window: w, log: logger}
	gui.metrics = &MetricsInfo{
		floorsLabel: widget.NewLabel("Floors: -"),
		heightLabel: widget.NewLabel("Height: -"),
		widthLabel:  widget.NewLabel("Width: -"),
		lengthLabel: widget.NewLabel("Length: -"),
	}

	editor, err := app.New(cfg, a.Preferences(), gui, gui, logger)
	if err != nil {
		logger.Fatal("failed to create editor", zap.Error(err))
	}
	gui.editor = editor
	gui.view = viewer.NewHouseView(editor.Input())
	gui.setupMainUI()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := editor.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("editor stopped", zap.Error(err))
		}
	}()

	w.SetOnClosed(func() {
		if err := editor.Close(); err != nil {
			logger.Warn("failed to close editor", zap.Error(err))
		}
		cancel()
	})

	w.Resize(fyne.NewSize(float32(cfg.Width)+300, float32(cfg.Height)))
	w.ShowAndRun()
}

func (a *App) setupMainUI() {
	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click the roof to add a floor\n" +
			"• Right click the roof to remove one\n" +
			"• Drag a side wall to change the width\n" +
			"• Click an end wall to extend the house\n" +
			"• Drag empty space to rotate the view\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Metrics:"),
		widget.NewSeparator(),
		a.metrics.floorsLabel,
		a.metrics.heightLabel,
		a.metrics.widthLabel,
		a.metrics.lengthLabel,
		widget.NewSeparator(),
		instructions,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.view,     // center
	)
	a.window.SetContent(content)
}

// UpdateMetrics runs on the editor goroutine and hands the values to the UI goroutine
func (a *App) UpdateMetrics(m measurement.Metrics) {
	fyne.Do(func() {
		for name, q := range m {
			switch name {
			case measurement.Floors:
				a.metrics.floorsLabel.SetText("Floors: " + q.String())
			case measurement.Height:
				a.metrics.heightLabel.SetText("Height: " + q.String())
			case measurement.Width:
				a.metrics.widthLabel.SetText("Width: " + q.String())
			case measurement.Length:
				a.metrics.lengthLabel.SetText("Length: " + q.String())
			}
		}
	})
}

// UpdateMeasurements is drawn through the frame labels, only logged here
func (a *App) UpdateMeasurements(p measurement.Positions) {
	a.log.Debug("label anchors", zap.Any("positions", p))
}

// DrawFrame hands a snapshot to the view on the UI goroutine
func (a *App) DrawFrame(frame viewer.Frame) {
	fyne.Do(func() {
		a.view.SetFrame(frame)
	})
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
