package types

import (
	"errors"
	"testing"
)

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want Point
	}{
		{
			name: "origin rect",
			rect: Rect{X: 0, Y: 0, Width: 100, Height: 100},
			want: Point{X: 50, Y: 50},
		},
		{
			name: "offset rect",
			rect: Rect{X: 100, Y: 200, Width: 50, Height: 80},
			want: Point{X: 125, Y: 240},
		},
		{
			name: "zero size",
			rect: Rect{X: 10, Y: 20, Width: 0, Height: 0},
			want: Point{X: 10, Y: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rect.Center()
			if got.X != tt.want.X || got.Y != tt.want.Y {
				t.Errorf("Center() = (%v, %v), want (%v, %v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center point", Point{X: 50, Y: 50}, true},
		{"top-left corner", Point{X: 0, Y: 0}, true},
		{"bottom-right corner", Point{X: 100, Y: 100}, true},
		{"outside right", Point{X: 150, Y: 50}, false},
		{"outside left", Point{X: -10, Y: 50}, false},
		{"outside top", Point{X: 50, Y: -10}, false},
		{"outside bottom", Point{X: 50, Y: 150}, false},
		{"on edge", Point{X: 100, Y: 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirLeft, "left"},
		{DirRight, "right"},
		{DirUp, "up"},
		{DirDown, "down"},
		{Direction(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.dir.String(); got != tt.want {
				t.Errorf("Direction.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		wantDir Direction
		wantOK  bool
	}{
		{"left", DirLeft, true},
		{"right", DirRight, true},
		{"up", DirUp, true},
		{"down", DirDown, true},
		{"east", DirRight, true},
		{"invalid", 0, false},
		{"LEFT", 0, false}, // case sensitive
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gotDir, gotOK := ParseDirection(tt.input)
			if gotDir != tt.wantDir || gotOK != tt.wantOK {
				t.Errorf("ParseDirection(%q) = (%v, %v), want (%v, %v)",
					tt.input, gotDir, gotOK, tt.wantDir, tt.wantOK)
			}
		})
	}
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		other Rect
		want  float64
	}{
		{"identical", a, 10000},
		{"adjacent right", Rect{X: 100, Y: 0, Width: 100, Height: 100}, 0},
		{"quarter", Rect{X: 50, Y: 50, Width: 100, Height: 100}, 2500},
		{"disjoint", Rect{X: 300, Y: 300, Width: 10, Height: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlap(tt.other); got != tt.want {
				t.Errorf("Overlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}

	got := r.Inset(10)
	want := Rect{X: 10, Y: 10, Width: 80, Height: 30}
	if got != want {
		t.Errorf("Inset(10) = %+v, want %+v", got, want)
	}

	got = r.Inset(40)
	if got.Height != 0 {
		t.Errorf("expected height clamped to 0, got %v", got.Height)
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	if !outer.ContainsRect(outer) {
		t.Error("expected rect to contain itself")
	}
	if !outer.ContainsRect(Rect{X: 500, Y: 400, Width: 500, Height: 400}) {
		t.Error("expected bottom-right quadrant to be contained")
	}
	if outer.ContainsRect(Rect{X: 501, Y: 0, Width: 500, Height: 10}) {
		t.Error("expected overflowing rect to be rejected")
	}
}

func TestParseLayoutKind(t *testing.T) {
	tests := []struct {
		input   string
		want    LayoutKind
		wantErr bool
	}{
		{"bsp", LayoutBSP, false},
		{"binary", LayoutBSP, false},
		{"Stacking", LayoutStack, false},
		{"columns", LayoutColumn, false},
		{"fullscreen", LayoutMonocle, false},
		{"floating", LayoutFloat, false},
		{" grid ", LayoutGrid, false},
		{"spiral", LayoutSpiral, false},
		{"tabs", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLayoutKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLayoutKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLayoutKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLayoutCycle(t *testing.T) {
	kind := LayoutBSP
	seen := []LayoutKind{}
	for i := 0; i < len(LayoutKinds()); i++ {
		seen = append(seen, kind)
		kind = kind.Next()
	}
	if kind != LayoutBSP {
		t.Errorf("expected cycle to return to bsp, got %q", kind)
	}

	want := []LayoutKind{LayoutBSP, LayoutStack, LayoutGrid, LayoutSpiral, LayoutColumn, LayoutMonocle, LayoutFloat}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("cycle[%d] = %q, want %q", i, seen[i], want[i])
		}
	}

	if LayoutBSP.Previous() != LayoutFloat {
		t.Errorf("expected previous of bsp to be float, got %q", LayoutBSP.Previous())
	}
	if LayoutMonocle.Previous() != LayoutColumn {
		t.Errorf("expected previous of monocle to be column, got %q", LayoutMonocle.Previous())
	}
}

func TestLayoutParamsValidate(t *testing.T) {
	tests := []struct {
		ratio   float64
		wantErr bool
	}{
		{0.5, false},
		{0.1, false},
		{0.99, false},
		{0, true},
		{1, true},
		{-0.2, true},
		{1.5, true},
	}

	for _, tt := range tests {
		err := LayoutParams{SplitRatio: tt.ratio}.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.ratio, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidLayoutParams) {
			t.Errorf("expected ErrInvalidLayoutParams, got %v", err)
		}
	}
}

func TestDirectionIota(t *testing.T) {
	// Verify iota ordering
	if DirLeft != 0 {
		t.Errorf("DirLeft = %d, want 0", DirLeft)
	}
	if DirRight != 1 {
		t.Errorf("DirRight = %d, want 1", DirRight)
	}
	if DirUp != 2 {
		t.Errorf("DirUp = %d, want 2", DirUp)
	}
	if DirDown != 3 {
		t.Errorf("DirDown = %d, want 3", DirDown)
	}
}
