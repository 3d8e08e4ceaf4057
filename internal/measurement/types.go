// Package measurement derives the displayed state of the house: metric values, the
// outline overlay around the targeted face and the screen anchors of the labels.
package measurement

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/philipparndt/gomassing/internal/building"
)

// Metric names
const (
	Floors = "floors"
	Height = "height"
	Width  = "width"
	Length = "length"
)

// Quantity is a measured value with its unit. It encodes as a [value, unit] pair.
type Quantity struct {
	Value float64
	Unit  string
}

// String formats the quantity for display
func (q Quantity) String() string {
	if q.Unit == "" {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%.2f %s", q.Value, q.Unit)
}

// MarshalJSON encodes the quantity as [value, unit]
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{q.Value, q.Unit})
}

// UnmarshalJSON decodes a [value, unit] pair
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("quantity must be a [value, unit] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("quantity must be a [value, unit] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &q.Value); err != nil {
		return fmt.Errorf("invalid quantity value: %w", err)
	}
	if err := json.Unmarshal(pair[1], &q.Unit); err != nil {
		return fmt.Errorf("invalid quantity unit: %w", err)
	}
	return nil
}

// Metrics is a partial record of metric values keyed by metric name
type Metrics map[string]Quantity

// Changed returns the entries of m that differ from prev
func (m Metrics) Changed(prev Metrics) Metrics {
	changed := Metrics{}
	for name, q := range m {
		if old, ok := prev[name]; !ok || !sameQuantity(old, q) {
			changed[name] = q
		}
	}
	return changed
}

// Merge copies the entries of other into m
func (m Metrics) Merge(other Metrics) {
	for name, q := range other {
		m[name] = q
	}
}

func sameQuantity(a, b Quantity) bool {
	return a.Unit == b.Unit && math.Abs(a.Value-b.Value) < 1e-12
}

// FloorMetrics reports the storey count and the building height
func FloorMetrics(e *building.Entity) Metrics {
	return Metrics{
		Floors: {Value: float64(e.Floors()), Unit: ""},
		Height: {Value: e.Height(), Unit: "m"},
	}
}

// WidthMetric reports the footprint width of a mesh
func WidthMetric(m *building.Mesh) Metrics {
	return Metrics{Width: {Value: m.Width(), Unit: "m"}}
}

// LengthMetric reports the footprint length of a mesh
func LengthMetric(m *building.Mesh) Metrics {
	return Metrics{Length: {Value: m.Length(), Unit: "m"}}
}

// AllMetrics reports every metric of the building
func AllMetrics(e *building.Entity) Metrics {
	all := FloorMetrics(e)
	all.Merge(WidthMetric(e.Mesh()))
	all.Merge(LengthMetric(e.Mesh()))
	return all
}
