package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Step is one entry of a recorded gesture script: an event, or a pause when Event is nil
type Step struct {
	Event Event
	Wait  time.Duration
}

type stepData struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button string  `json:"button,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Ms     int     `json:"ms,omitempty"`
}

// ParseScript reads a JSON array of steps such as
//
//	[{"type":"down","x":200,"y":200,"button":"primary"},{"type":"wait","ms":30},{"type":"up","x":200,"y":200}]
func ParseScript(r io.Reader) ([]Step, error) {
	var raw []stepData
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}

	steps := make([]Step, 0, len(raw))
	for i, d := range raw {
		step, err := d.step()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (d stepData) step() (Step, error) {
	switch d.Type {
	case "down":
		button, err := ParseButton(d.Button)
		if err != nil {
			return Step{}, err
		}
		return Step{Event: PointerDown{X: d.X, Y: d.Y, Button: button}}, nil
	case "move":
		return Step{Event: PointerMove{X: d.X, Y: d.Y}}, nil
	case "up":
		return Step{Event: PointerUp{X: d.X, Y: d.Y}}, nil
	case "wheel":
		return Step{Event: Wheel{DeltaY: d.DeltaY}}, nil
	case "resize":
		return Step{Event: Resize{Width: d.Width, Height: d.Height}}, nil
	case "wait":
		if d.Ms < 0 {
			return Step{}, fmt.Errorf("wait must not be negative, got %dms", d.Ms)
		}
		return Step{Wait: time.Duration(d.Ms) * time.Millisecond}, nil
	}
	return Step{}, fmt.Errorf("unknown step type %q", d.Type)
}

// Play dispatches the steps in order, pausing where the script waits
func (e *Editor) Play(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if step.Event == nil {
			select {
			case <-time.After(step.Wait):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		if err := e.Dispatch(step.Event); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}
