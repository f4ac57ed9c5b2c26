package output

import "github.com/yourusername/gridwm/internal/types"

// borderCells is the margin kept around the display box.
const borderCells = 2

// ScalingContext handles coordinate transformation from pixel space to terminal character space
type ScalingContext struct {
	Origin types.Point // display origin in pixels

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	ScaleX float64
	ScaleY float64
}

// NewScalingContext maps a display frame onto a terminal area. Terminal
// cells are roughly twice as tall as wide, which the vertical scale
// absorbs since both axes are fitted independently.
func NewScalingContext(display types.Rect, termWidth, termHeight int) *ScalingContext {
	if display.IsEmpty() {
		display = types.Rect{Width: 1920, Height: 1080}
	}

	availWidth := termWidth - 2*borderCells
	availHeight := termHeight - 2*borderCells
	if availWidth < 10 {
		availWidth = 10
	}
	if availHeight < 5 {
		availHeight = 5
	}

	return &ScalingContext{
		Origin:     types.Point{X: display.X, Y: display.Y},
		TermWidth:  termWidth,
		TermHeight: termHeight,
		ScaleX:     float64(availWidth) / display.Width,
		ScaleY:     float64(availHeight) / display.Height,
	}
}

// PixelToTerminal converts pixel coordinates to terminal coordinates
func (sc *ScalingContext) PixelToTerminal(x, y float64) (int, int) {
	termX := int((x - sc.Origin.X) * sc.ScaleX)
	termY := int((y - sc.Origin.Y) * sc.ScaleY)
	return termX + borderCells, termY + borderCells
}

// ScaleSize converts pixel dimensions to terminal character dimensions
func (sc *ScalingContext) ScaleSize(w, h float64) (int, int) {
	termW := int(w * sc.ScaleX)
	termH := int(h * sc.ScaleY)

	// Minimum size of 3x2 for visibility
	if termW < 3 {
		termW = 3
	}
	if termH < 2 {
		termH = 2
	}
	return termW, termH
}

// RectToTerminal converts a pixel rect to a clamped terminal box.
func (sc *ScalingContext) RectToTerminal(r types.Rect) (x, y, w, h int) {
	x, y = sc.PixelToTerminal(r.X, r.Y)
	w, h = sc.ScaleSize(r.Width, r.Height)
	return sc.ClampToCanvas(x, y, w, h)
}

// ClampToCanvas ensures coordinates are within canvas bounds
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	if x+w >= sc.TermWidth {
		w = sc.TermWidth - x - 1
	}
	if y+h >= sc.TermHeight {
		h = sc.TermHeight - y - 1
	}

	if w < 3 {
		w = 3
	}
	if h < 2 {
		h = 2
	}
	return x, y, w, h
}
