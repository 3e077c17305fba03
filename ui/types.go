// Package ui draws the parameter panel and heads-up display on top of the scene.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	HintColor      rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	SliderHeight   int32
	SwatchSize     int32
	ButtonHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 22, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 64, B: 80, A: 255},
		SectionHeader:  rl.Color{R: 255, G: 135, B: 0, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		HintColor:      rl.Gray,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		SliderHeight:   16,
		SwatchSize:     14,
		ButtonHeight:   24,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
)
