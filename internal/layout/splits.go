package layout

import "github.com/yourusername/gridwm/internal/types"

// DefaultResizeAmount is the default ratio step for grow/shrink commands.
const DefaultResizeAmount = 0.05

// AdjustSplitRatio shifts a split ratio by delta, clamped to
// [MinSplitRatio, MaxSplitRatio].
func AdjustSplitRatio(ratio, delta float64) float64 {
	next := ratio + delta
	if next < types.MinSplitRatio {
		return types.MinSplitRatio
	}
	if next > types.MaxSplitRatio {
		return types.MaxSplitRatio
	}
	return next
}
