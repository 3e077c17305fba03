package controls

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/galaxy/galaxy"
)

// ErrUnknownField is returned for field IDs or names the controller does not know.
var ErrUnknownField = errors.New("controls: unknown field")

// ErrInvalidRange is returned for a range that would let Set store a value
// the generator rejects.
var ErrInvalidRange = errors.New("controls: invalid range")

// FieldID identifies an editable galaxy parameter.
type FieldID int

const (
	FieldCount FieldID = iota
	FieldSize
	FieldRadius
	FieldBranches
	FieldSpin
	FieldRandomness
)

// Range is the declared domain of a field.
type Range struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Clamp restricts v to [Min, Max] and snaps it to a multiple of Step.
// NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	if r.Step > 0 && !math.IsInf(v, 0) {
		v = math.Round(v/r.Step) * r.Step
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Field describes one editable parameter.
type Field struct {
	ID      FieldID
	Name    string // config key
	Label   string // panel label
	Format  string // printf format for the panel value
	Integer bool
	Range   Range
}

// DefaultFields returns the editable fields in panel order.
func DefaultFields() []Field {
	return []Field{
		{ID: FieldCount, Name: "count", Label: "Count", Format: "%.0f", Integer: true, Range: Range{300, 500000, 1}},
		{ID: FieldSize, Name: "size", Label: "Size", Format: "%.4f", Range: Range{0.005, 0.1, 0.0001}},
		{ID: FieldRadius, Name: "radius", Label: "Radius", Format: "%.0f", Range: Range{1, 7, 1}},
		{ID: FieldBranches, Name: "branches", Label: "Branches", Format: "%.0f", Integer: true, Range: Range{3, 20, 1}},
		{ID: FieldSpin, Name: "spin", Label: "Spin", Format: "%.3f", Range: Range{-1, 5, 0.001}},
		{ID: FieldRandomness, Name: "randomness", Label: "Randomness", Format: "%.2f", Range: Range{1, 5, 0.01}},
	}
}

// ValidateRange checks a configured range for field id. Every value the range
// can clamp to must satisfy galaxy.Params.Validate.
func ValidateRange(id FieldID, r Range) error {
	for _, v := range []float64{r.Min, r.Max, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounds %v..%v step %v must be finite", ErrInvalidRange, r.Min, r.Max, r.Step)
		}
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidRange, r.Min, r.Max)
	}
	if r.Step < 0 {
		return fmt.Errorf("%w: negative step %v", ErrInvalidRange, r.Step)
	}

	switch id {
	case FieldCount, FieldBranches:
		if r.Min < 1 {
			return fmt.Errorf("%w: min %v must be at least 1", ErrInvalidRange, r.Min)
		}
	case FieldSize, FieldRadius:
		if r.Min <= 0 {
			return fmt.Errorf("%w: min %v must be positive", ErrInvalidRange, r.Min)
		}
	case FieldRandomness:
		if r.Min < 0 {
			return fmt.Errorf("%w: min %v must be non-negative", ErrInvalidRange, r.Min)
		}
	case FieldSpin:
	default:
		return fmt.Errorf("%w: id %d", ErrUnknownField, id)
	}
	return nil
}

// FieldByName looks up a field ID by its config key.
func FieldByName(name string) (FieldID, error) {
	for _, f := range DefaultFields() {
		if f.Name == name {
			return f.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// get reads a field from params.
func get(p *galaxy.Params, id FieldID) float64 {
	switch id {
	case FieldCount:
		return float64(p.Count)
	case FieldSize:
		return p.Size
	case FieldRadius:
		return p.Radius
	case FieldBranches:
		return float64(p.Branches)
	case FieldSpin:
		return p.Spin
	case FieldRandomness:
		return p.Randomness
	}
	return 0
}

// set writes an already clamped value into params.
func set(p *galaxy.Params, id FieldID, v float64) {
	switch id {
	case FieldCount:
		p.Count = int(math.Round(v))
	case FieldSize:
		p.Size = v
	case FieldRadius:
		p.Radius = v
	case FieldBranches:
		p.Branches = int(math.Round(v))
	case FieldSpin:
		p.Spin = v
	case FieldRandomness:
		p.Randomness = v
	}
}
