package layout

import (
	"math"
	"testing"
)

func TestAdjustSplitRatio(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		delta    float64
		expected float64
	}{
		{"grow", 0.5, DefaultResizeAmount, 0.55},
		{"shrink", 0.5, -DefaultResizeAmount, 0.45},
		{"clamp high", 0.88, 0.05, 0.9},
		{"clamp low", 0.12, -0.05, 0.1},
		{"at max", 0.9, 0.1, 0.9},
		{"zero delta", 0.3, 0, 0.3},
		{"step to max", 0.85, 0.1, 0.9},
		{"large shrink", 0.5, -0.6, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustSplitRatio(tt.ratio, tt.delta)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
