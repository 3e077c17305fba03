package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/controls"
	"github.com/pthm-cable/galaxy/galaxy"
)

// ParamSource is the parameter surface the panel edits.
type ParamSource interface {
	Fields() []controls.Field
	Value(id controls.FieldID) float64
	Set(id controls.FieldID, v float64) (float64, error)
	Params() galaxy.Params
}

// PanelEvents reports what happened in the panel this frame.
type PanelEvents struct {
	Changed bool // at least one value changed
	Commit  bool // an edit finished; the galaxy should be rebuilt
	Reset   bool // the reset button was pressed
}

// ParamPanel renders one slider per editable field, the color swatches
// and a reset button.
type ParamPanel struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
	margin   int32
	visible  bool
	tracker  EditTracker
	bounds   rl.Rectangle
}

// NewParamPanel creates a visible panel of the given width.
func NewParamPanel(width int32, anchor PanelAnchor) *ParamPanel {
	return &ParamPanel{
		renderer: NewRenderer(),
		anchor:   anchor,
		width:    width,
		margin:   10,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (p *ParamPanel) SetVisible(visible bool) {
	p.visible = visible
}

// IsVisible returns whether the panel is shown.
func (p *ParamPanel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility.
func (p *ParamPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Bounds returns the panel rectangle computed by the last Place.
func (p *ParamPanel) Bounds() rl.Rectangle {
	return p.bounds
}

// Contains reports whether a screen point is over the visible panel.
func (p *ParamPanel) Contains(pt rl.Vector2) bool {
	if !p.visible {
		return false
	}
	b := p.bounds
	return pt.X >= b.X && pt.X <= b.X+b.Width && pt.Y >= b.Y && pt.Y <= b.Y+b.Height
}

// rowHeight is the vertical space of one labeled slider.
func (p *ParamPanel) rowHeight() int32 {
	t := p.renderer.Theme
	return t.LineHeight + t.SliderHeight + 6
}

// Height returns the panel height for the given number of fields.
func (p *ParamPanel) Height(fields int) int32 {
	t := p.renderer.Theme
	header := t.LineHeight + 4
	swatches := 3 * (t.LineHeight + 2)
	return t.Padding + header + int32(fields)*p.rowHeight() + swatches + t.ButtonHeight + t.LineHeight + t.Padding
}

// Place positions the panel for a screen of width screenW.
func (p *ParamPanel) Place(screenW int32, fields int) {
	x := p.margin
	if p.anchor == AnchorTopRight {
		x = screenW - p.width - p.margin
	}
	p.bounds = rl.Rectangle{
		X:      float32(x),
		Y:      float32(p.margin),
		Width:  float32(p.width),
		Height: float32(p.Height(fields)),
	}
}

// Draw renders the panel and applies slider edits to src. released reports
// whether the left mouse button went up this frame. Values changed while
// dragging are applied immediately; Commit is reported once on release.
func (p *ParamPanel) Draw(src ParamSource, screenW int32, released bool) PanelEvents {
	var ev PanelEvents
	if !p.visible {
		ev.Commit = p.tracker.Observe(false, released)
		return ev
	}

	fields := src.Fields()
	p.Place(screenW, len(fields))

	r := p.renderer
	t := r.Theme
	x, y := int32(p.bounds.X), int32(p.bounds.Y)
	r.DrawPanel(x, y, int32(p.bounds.Width), int32(p.bounds.Height))

	cx := x + t.Padding
	inner := int32(p.bounds.Width) - 2*t.Padding
	cy := r.DrawSectionHeader(cx, y+t.Padding, "Galaxy")

	for _, f := range fields {
		cur := src.Value(f.ID)
		text := fmt.Sprintf(f.Format, cur)
		r.DrawLabel(cx, cy, f.Label)
		r.DrawValue(cx+inner-rl.MeasureText(text, t.FontSize), cy, text)
		cy += t.LineHeight

		rect := rl.Rectangle{X: float32(cx), Y: float32(cy), Width: float32(inner), Height: float32(t.SliderHeight)}
		next := gui.SliderBar(rect, "", "", float32(cur), float32(f.Range.Min), float32(f.Range.Max))
		if next != float32(cur) {
			if v, err := src.Set(f.ID, float64(next)); err == nil && v != cur {
				ev.Changed = true
			}
		}
		cy += t.SliderHeight + 6
	}

	params := src.Params()
	cy = r.DrawColorSwatch(cx, cy, "Inside", params.InsideColor)
	cy = r.DrawColorSwatch(cx, cy, "Mid", params.MidColor)
	cy = r.DrawColorSwatch(cx, cy, "Outside", params.OutsideColor)

	button := rl.Rectangle{X: float32(cx), Y: float32(cy), Width: float32(inner), Height: float32(t.ButtonHeight)}
	if gui.Button(button, "Reset") {
		ev.Reset = true
		p.tracker.Cancel()
	}
	cy += t.ButtonHeight + 4

	if p.tracker.Pending() {
		rl.DrawText("release to apply", cx, cy, t.FontSize, t.HintColor)
	}

	if !ev.Reset {
		ev.Commit = p.tracker.Observe(ev.Changed, released)
	}
	return ev
}
