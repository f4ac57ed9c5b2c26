package focus

import (
	"math"

	"github.com/yourusername/gridwm/internal/types"
)

// Cell is a window's layout rectangle. Slices of cells are always in
// workspace sequence order, which is the final tie-breaker.
type Cell struct {
	ID     uint32
	Bounds types.Rect
}

// FindTarget finds the best window to navigate to in the given direction.
// Candidates sharing an edge span with the current cell win over ones that
// don't; among them the nearest center along the direction wins, then the
// smallest orthogonal offset, then sequence order.
// If wrapAround is true and nothing lies in the direction, it wraps to the
// opposite edge.
func FindTarget(current uint32, direction types.Direction, cells []Cell, wrapAround bool) (uint32, bool) {
	rects := make([]types.Rect, len(cells))
	cur := -1
	for i, c := range cells {
		rects[i] = c.Bounds
		if c.ID == current {
			cur = i
		}
	}
	if cur < 0 {
		return 0, false
	}

	if i := findInDirection(cur, direction, rects); i >= 0 {
		return cells[i].ID, true
	}

	// No cell found in direction - try wrap around if enabled
	if wrapAround {
		if i := findWrapAround(cur, direction, rects); i >= 0 {
			return cells[i].ID, true
		}
	}

	return 0, false
}

// findInDirection returns the index of the best rect in direction from
// rects[cur], or -1. Rects sharing a span with the current one on the
// perpendicular axis always beat those that do not; after that the
// nearest center along the direction wins, then the smaller
// perpendicular offset, then sequence order.
func findInDirection(cur int, direction types.Direction, rects []types.Rect) int {
	current := rects[cur]
	currentCenter := current.Center()

	best := -1
	bestAligned := false
	bestPrimary, bestOrtho := math.MaxFloat64, math.MaxFloat64

	for i, bounds := range rects {
		if i == cur {
			continue
		}

		targetCenter := bounds.Center()
		if !isInDirection(currentCenter, targetCenter, direction) {
			continue
		}

		aligned := sharesSpan(current, bounds, direction)
		primary := primaryDistance(currentCenter, targetCenter, direction)
		ortho := perpendicularDistance(currentCenter, targetCenter, direction)

		switch {
		case best < 0:
		case aligned != bestAligned:
			if !aligned {
				continue
			}
		case primary < bestPrimary-types.Epsilon:
		case math.Abs(primary-bestPrimary) <= types.Epsilon && ortho < bestOrtho-types.Epsilon:
		default:
			continue
		}

		best, bestAligned, bestPrimary, bestOrtho = i, aligned, primary, ortho
	}

	return best
}

// isInDirection checks if target is in the specified direction from source.
// Uses center points for comparison.
func isInDirection(source, target types.Point, direction types.Direction) bool {
	switch direction {
	case types.DirLeft:
		return target.X < source.X
	case types.DirRight:
		return target.X > source.X
	case types.DirUp:
		return target.Y < source.Y
	case types.DirDown:
		return target.Y > source.Y
	default:
		return false
	}
}

// sharesSpan reports whether two rects overlap on the axis orthogonal to
// the direction of travel.
func sharesSpan(a, b types.Rect, direction types.Direction) bool {
	if direction.Horizontal() {
		return overlapsVertically(a, b)
	}
	return overlapsHorizontally(a, b)
}

// primaryDistance is the center offset along the direction of travel.
func primaryDistance(source, target types.Point, direction types.Direction) float64 {
	if direction.Horizontal() {
		return math.Abs(target.X - source.X)
	}
	return math.Abs(target.Y - source.Y)
}

// perpendicularDistance returns the distance along the perpendicular axis.
func perpendicularDistance(source, target types.Point, direction types.Direction) float64 {
	if direction.Horizontal() {
		return math.Abs(target.Y - source.Y)
	}
	return math.Abs(target.X - source.X)
}

// findWrapAround finds the cell on the opposite edge when wrapping.
// For example, if going right and no cell exists, wrap to the leftmost cell.
func findWrapAround(cur int, direction types.Direction, rects []types.Rect) int {
	currentCenter := rects[cur].Center()

	best := -1
	bestDistance := math.MaxFloat64

	for i, bounds := range rects {
		if i == cur {
			continue
		}

		targetCenter := bounds.Center()
		if !isOnOppositeEdge(targetCenter, direction, rects) {
			continue
		}

		// Prefer the most aligned cell
		distance := perpendicularDistance(currentCenter, targetCenter, direction)
		if distance < bestDistance-types.Epsilon {
			bestDistance = distance
			best = i
		}
	}

	return best
}

// isOnOppositeEdge checks if a cell is on the opposite edge for wrap-around.
func isOnOppositeEdge(target types.Point, direction types.Direction, rects []types.Rect) bool {
	// Find the extreme positions in the grid
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, bounds := range rects {
		center := bounds.Center()
		minX = math.Min(minX, center.X)
		maxX = math.Max(maxX, center.X)
		minY = math.Min(minY, center.Y)
		maxY = math.Max(maxY, center.Y)
	}

	// Define "edge" as being within 10% of the extreme
	xThreshold := (maxX - minX) * 0.1
	yThreshold := (maxY - minY) * 0.1
	if xThreshold == 0 {
		xThreshold = 1
	}
	if yThreshold == 0 {
		yThreshold = 1
	}

	switch direction {
	case types.DirLeft:
		return target.X >= maxX-xThreshold
	case types.DirRight:
		return target.X <= minX+xThreshold
	case types.DirUp:
		return target.Y >= maxY-yThreshold
	case types.DirDown:
		return target.Y <= minY+yThreshold
	default:
		return false
	}
}

// overlapsVertically checks if two rects have vertical overlap.
func overlapsVertically(a, b types.Rect) bool {
	return a.Y < b.Y+b.Height && a.Y+a.Height > b.Y
}

// overlapsHorizontally checks if two rects have horizontal overlap.
func overlapsHorizontally(a, b types.Rect) bool {
	return a.X < b.X+b.Width && a.X+a.Width > b.X
}
