package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies a toggleable display layer.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayPanel      OverlayID = "panel"
	OverlayHUD        OverlayID = "hud"
	OverlayPerf       OverlayID = "perf"
	OverlayStarfield  OverlayID = "starfield"
	OverlayAutoRotate OverlayID = "auto_rotate"
)

// OverlayDescriptor defines a layer that can be toggled from the keyboard.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // keyboard key to toggle (0 = no key)
	KeyLabel string // key label for the legend
	Default  bool   // enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the viewer's overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{ID: OverlayPanel, Name: "panel", Key: rl.KeyH, KeyLabel: "H", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayHUD, Name: "hud", Key: rl.KeyF1, KeyLabel: "F1", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayPerf, Name: "perf", Key: rl.KeyF3, KeyLabel: "F3"})
	r.Register(OverlayDescriptor{ID: OverlayStarfield, Name: "stars", Key: rl.KeyS, KeyLabel: "S", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayAutoRotate, Name: "spin", Key: rl.KeySpace, KeyLabel: "Space", Default: true})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// Keys returns the bound toggle keys.
func (r *OverlayRegistry) Keys() []int32 {
	keys := make([]int32, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		if desc.Key != 0 {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}

// Legend returns "H: panel | F1: hud | ..." for the bound overlays.
func (r *OverlayRegistry) Legend() string {
	parts := make([]string, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		if desc.KeyLabel != "" {
			parts = append(parts, desc.KeyLabel+": "+desc.Name)
		}
	}
	return strings.Join(parts, " | ")
}
