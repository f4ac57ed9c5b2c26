// Package layout maps a workspace's window sequence onto screen rectangles.
//
// Every function here is pure: identical inputs give identical placements.
package layout

import (
	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/types"
)

// Engine computes placements. Gap is the margin kept between adjacent
// cells; edges touching the available rect are never inset.
type Engine struct {
	Gap float64
}

// Compute returns one placement per sequenced window, in sequence order.
// area must already be deflated by outer gaps and borders.
func (e Engine) Compute(ws model.WorkspaceView, area types.Rect, params types.LayoutParams) []types.WindowPlacement {
	n := len(ws.Windows)
	placements := make([]types.WindowPlacement, 0, n)
	if n == 0 {
		return placements
	}

	if ws.Layout == types.LayoutFloat {
		for _, w := range ws.Windows {
			placements = append(placements, types.WindowPlacement{WindowID: w.ID, Bounds: w.Geometry})
		}
		return placements
	}

	ratio := params.SplitRatio
	if params.Validate() != nil {
		ratio = types.DefaultSplitRatio
	}

	cells := Cells(ws.Layout, n, area, ratio)
	for i, w := range ws.Windows {
		placements = append(placements, types.WindowPlacement{
			WindowID: w.ID,
			Bounds:   e.applyGap(cells[i], area),
		})
	}
	return placements
}

// Cells partitions area into n rectangles for a tiling kind, before gaps.
// Float is treated as Monocle since it has no partition of its own.
func Cells(kind types.LayoutKind, n int, area types.Rect, ratio float64) []types.Rect {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []types.Rect{area}
	}

	switch kind {
	case types.LayoutBSP:
		return bsp(n, area, ratio)
	case types.LayoutStack:
		return stack(n, area, ratio)
	case types.LayoutGrid:
		return grid(n, area)
	case types.LayoutSpiral:
		return spiral(n, area, ratio)
	case types.LayoutColumn:
		return columns(n, area)
	default:
		return monocle(n, area)
	}
}

// applyGap insets each interior edge by half the gap so neighbours end up
// Gap apart. Insets on one axis never take more than half the cell, so the
// result stays inside r with a positive size.
func (e Engine) applyGap(r, area types.Rect) types.Rect {
	half := e.Gap / 2
	if half <= 0 {
		return r
	}

	var left, right, top, bottom float64
	if r.X > area.X+types.Epsilon {
		left = half
	}
	if r.Right() < area.Right()-types.Epsilon {
		right = half
	}
	if r.Y > area.Y+types.Epsilon {
		top = half
	}
	if r.Bottom() < area.Bottom()-types.Epsilon {
		bottom = half
	}
	left, right = clampInsets(left, right, r.Width)
	top, bottom = clampInsets(top, bottom, r.Height)

	return types.Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
}

// clampInsets scales a pair of insets down so together they use at most
// half of size.
func clampInsets(a, b, size float64) (float64, float64) {
	limit := size / 2
	if total := a + b; total > limit && total > 0 {
		scale := limit / total
		return a * scale, b * scale
	}
	return a, b
}
