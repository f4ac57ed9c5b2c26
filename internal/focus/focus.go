// Package focus selects focus targets: directional, sequential, under the
// pointer and across displays. Functions take read-only views and return
// ids; the caller applies any mutation.
package focus

import (
	"math"

	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/types"
)

// edgeTolerance absorbs minor alignment differences between monitors.
const edgeTolerance = 5.0

// FindAdjacentDisplay finds the display adjacent to the current one in the given direction.
// Returns false if no display exists in that direction.
func FindAdjacentDisplay(current string, direction types.Direction, displays []model.DisplayView) (model.DisplayView, bool) {
	var currentFrame types.Rect
	found := false
	for _, d := range displays {
		if d.ID == current {
			currentFrame = d.Frame
			found = true
			break
		}
	}
	if !found || currentFrame.IsEmpty() {
		return model.DisplayView{}, false
	}

	for _, d := range displays {
		if d.ID == current || d.Frame.IsEmpty() {
			continue
		}
		candidate := d.Frame

		isAdjacent := false
		switch direction {
		case types.DirLeft:
			// B is to the left: B.X + B.Width ≈ A.X AND vertical overlap
			isAdjacent = math.Abs(candidate.Right()-currentFrame.X) <= edgeTolerance &&
				overlapsVertically(currentFrame, candidate)
		case types.DirRight:
			isAdjacent = math.Abs(currentFrame.Right()-candidate.X) <= edgeTolerance &&
				overlapsVertically(currentFrame, candidate)
		case types.DirUp:
			isAdjacent = math.Abs(candidate.Bottom()-currentFrame.Y) <= edgeTolerance &&
				overlapsHorizontally(currentFrame, candidate)
		case types.DirDown:
			isAdjacent = math.Abs(currentFrame.Bottom()-candidate.Y) <= edgeTolerance &&
				overlapsHorizontally(currentFrame, candidate)
		}

		if isAdjacent {
			return d, true
		}
	}

	return model.DisplayView{}, false
}

// MatchVisualPosition maps a position from source display to equivalent position on target display.
// Uses normalized coordinates to preserve visual position.
func MatchVisualPosition(source types.Rect, sourceDisplay, targetDisplay types.Rect) types.Point {
	center := source.Center()
	if sourceDisplay.IsEmpty() {
		return targetDisplay.Center()
	}

	normX := (center.X - sourceDisplay.X) / sourceDisplay.Width
	normY := (center.Y - sourceDisplay.Y) / sourceDisplay.Height

	return types.Point{
		X: targetDisplay.X + normX*targetDisplay.Width,
		Y: targetDisplay.Y + normY*targetDisplay.Height,
	}
}

// ClosestToPoint finds the cell whose center is closest to the given point.
// Ties keep the earlier cell.
func ClosestToPoint(point types.Point, cells []Cell) (uint32, bool) {
	var closest uint32
	closestDist := math.MaxFloat64
	found := false

	for _, c := range cells {
		center := c.Bounds.Center()
		dist := math.Hypot(center.X-point.X, center.Y-point.Y)
		if dist < closestDist {
			closest, closestDist, found = c.ID, dist, true
		}
	}

	return closest, found
}
