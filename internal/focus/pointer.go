package focus

import "github.com/yourusername/gridwm/internal/types"

// AtPoint returns the topmost window containing p. Floating windows sit
// above tiled ones, the focused window above its peers, and among the rest
// the smallest rectangle wins, then sequence order.
func AtPoint(p types.Point, tiled, floating []Cell, focused uint32) (uint32, bool) {
	if id, ok := smallestContaining(p, floating, focused); ok {
		return id, true
	}
	return smallestContaining(p, tiled, focused)
}

func smallestContaining(p types.Point, cells []Cell, focused uint32) (uint32, bool) {
	var best uint32
	bestArea := -1.0
	for _, c := range cells {
		if !c.Bounds.Contains(p) {
			continue
		}
		if c.ID == focused {
			return c.ID, true
		}
		if bestArea < 0 || c.Bounds.Area() < bestArea {
			best, bestArea = c.ID, c.Bounds.Area()
		}
	}
	return best, bestArea >= 0
}
