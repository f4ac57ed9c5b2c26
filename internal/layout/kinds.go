package layout

import (
	"math"

	"github.com/yourusername/gridwm/internal/types"
)

// splitVertical cuts r with a vertical line at ratio of its width.
func splitVertical(r types.Rect, ratio float64) (left, right types.Rect) {
	w := r.Width * ratio
	left = types.Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
	right = types.Rect{X: r.X + w, Y: r.Y, Width: r.Width - w, Height: r.Height}
	return left, right
}

// splitHorizontal cuts r with a horizontal line at ratio of its height.
func splitHorizontal(r types.Rect, ratio float64) (top, bottom types.Rect) {
	h := r.Height * ratio
	top = types.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
	bottom = types.Rect{X: r.X, Y: r.Y + h, Width: r.Width, Height: r.Height - h}
	return top, bottom
}

// bsp bisects the remaining space once per window. The earlier window of
// each pair takes ratio of the longer dimension; the last window takes
// whatever remains.
func bsp(n int, area types.Rect, ratio float64) []types.Rect {
	cells := make([]types.Rect, 0, n)
	rest := area
	for i := 0; i < n-1; i++ {
		var first types.Rect
		if rest.Width >= rest.Height {
			first, rest = splitVertical(rest, ratio)
		} else {
			first, rest = splitHorizontal(rest, ratio)
		}
		cells = append(cells, first)
	}
	return append(cells, rest)
}

// stack puts the master on the left and shares the right side by height.
func stack(n int, area types.Rect, ratio float64) []types.Rect {
	master, side := splitVertical(area, ratio)
	cells := []types.Rect{master}
	return append(cells, rows(n-1, side)...)
}

// rows divides r into n equal horizontal bands, top to bottom.
func rows(n int, r types.Rect) []types.Rect {
	cells := make([]types.Rect, n)
	for i := 0; i < n; i++ {
		top := r.Y + r.Height*float64(i)/float64(n)
		bottom := r.Y + r.Height*float64(i+1)/float64(n)
		cells[i] = types.Rect{X: r.X, Y: top, Width: r.Width, Height: bottom - top}
	}
	return cells
}

// columns divides r into n equal vertical bands, left to right.
func columns(n int, r types.Rect) []types.Rect {
	cells := make([]types.Rect, n)
	for i := 0; i < n; i++ {
		left := r.X + r.Width*float64(i)/float64(n)
		right := r.X + r.Width*float64(i+1)/float64(n)
		cells[i] = types.Rect{X: left, Y: r.Y, Width: right - left, Height: r.Height}
	}
	return cells
}

// grid fills ceil(sqrt(n)) columns row-major. A short last row stretches
// its cells across the full width.
func grid(n int, area types.Rect) []types.Rect {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	numRows := (n + cols - 1) / cols

	cells := make([]types.Rect, 0, n)
	for i, band := range rows(numRows, area) {
		count := cols
		if i == numRows-1 {
			count = n - cols*(numRows-1)
		}
		cells = append(cells, columns(count, band)...)
	}
	return cells
}

// spiral gives each window ratio of the remaining space and rotates the
// remainder right, down, left, up.
func spiral(n int, area types.Rect, ratio float64) []types.Rect {
	cells := make([]types.Rect, 0, n)
	rest := area
	for i := 0; i < n-1; i++ {
		var cell types.Rect
		switch i % 4 {
		case 0:
			cell, rest = splitVertical(rest, ratio)
		case 1:
			cell, rest = splitHorizontal(rest, ratio)
		case 2:
			rest, cell = splitVertical(rest, 1-ratio)
		case 3:
			rest, cell = splitHorizontal(rest, 1-ratio)
		}
		cells = append(cells, cell)
	}
	return append(cells, rest)
}

// monocle gives every window the whole area.
func monocle(n int, area types.Rect) []types.Rect {
	cells := make([]types.Rect, n)
	for i := range cells {
		cells[i] = area
	}
	return cells
}
