package focus

import (
	"errors"
	"testing"
	"time"

	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/types"
)

// Test grid layout:
// +--------+--------+
// |  1     |  2     |
// +--------+--------+
// |        3        |
// +--------+--------+
func makeTestGrid() []Cell {
	return []Cell{
		{ID: 1, Bounds: types.Rect{X: 0, Y: 0, Width: 500, Height: 400}},
		{ID: 2, Bounds: types.Rect{X: 500, Y: 0, Width: 500, Height: 400}},
		{ID: 3, Bounds: types.Rect{X: 0, Y: 400, Width: 1000, Height: 400}},
	}
}

// Test 2x2 grid:
// +--------+--------+
// |   1    |   2    |
// +--------+--------+
// |   3    |   4    |
// +--------+--------+
func make2x2Grid() []Cell {
	return []Cell{
		{ID: 1, Bounds: types.Rect{X: 0, Y: 0, Width: 500, Height: 400}},
		{ID: 2, Bounds: types.Rect{X: 500, Y: 0, Width: 500, Height: 400}},
		{ID: 3, Bounds: types.Rect{X: 0, Y: 400, Width: 500, Height: 400}},
		{ID: 4, Bounds: types.Rect{X: 500, Y: 400, Width: 500, Height: 400}},
	}
}

func TestFindTarget_Directions(t *testing.T) {
	grid := makeTestGrid()

	tests := []struct {
		name    string
		from    uint32
		dir     types.Direction
		want    uint32
		wantHit bool
	}{
		{"right from 1", 1, types.DirRight, 2, true},
		{"left from 2", 2, types.DirLeft, 1, true},
		{"down from 1", 1, types.DirDown, 3, true},
		{"down from 2", 2, types.DirDown, 3, true},
		{"up from 3 ties to sequence order", 3, types.DirUp, 1, true},
		{"nothing left of 1", 1, types.DirLeft, 0, false},
		{"nothing below 3", 3, types.DirDown, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindTarget(tt.from, tt.dir, grid, false)
			if found != tt.wantHit {
				t.Fatalf("expected found=%v, got %v", tt.wantHit, found)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFindTarget_WrapAround(t *testing.T) {
	grid := make2x2Grid()

	tests := []struct {
		from uint32
		dir  types.Direction
		want uint32
	}{
		{2, types.DirRight, 1},
		{1, types.DirLeft, 2},
		{3, types.DirDown, 1},
		{1, types.DirUp, 3},
	}

	for _, tt := range tests {
		got, found := FindTarget(tt.from, tt.dir, grid, true)
		if !found {
			t.Fatalf("expected wrap-around from %d going %s", tt.from, tt.dir)
		}
		if got != tt.want {
			t.Errorf("from %d going %s: expected %d (wrap around), got %d", tt.from, tt.dir, tt.want, got)
		}
	}
}

func TestFindTarget_WrapDisabled(t *testing.T) {
	grid := make2x2Grid()

	_, found := FindTarget(2, types.DirRight, grid, false)
	if found {
		t.Error("expected no cell when wrap-around disabled")
	}
}

func TestFindTarget_InvalidCurrent(t *testing.T) {
	_, found := FindTarget(99, types.DirRight, makeTestGrid(), false)
	if found {
		t.Error("expected not found for unknown window")
	}
}

func TestFindTarget_BSPPicksAdjacentPartition(t *testing.T) {
	// BSP with 4 windows on 1000x800:
	// +-------+-------+
	// |       |   2   |
	// |   1   +---+---+
	// |       | 3 | 4 |
	// +-------+---+---+
	rects := layout.Cells(types.LayoutBSP, 4, types.Rect{Width: 1000, Height: 800}, 0.5)
	cells := make([]Cell, len(rects))
	for i, r := range rects {
		cells[i] = Cell{ID: uint32(i + 1), Bounds: r}
	}

	got, found := FindTarget(1, types.DirRight, cells, false)
	if !found {
		t.Fatal("expected a window to the right")
	}
	if got == 4 {
		t.Fatal("picked the partition two steps away")
	}
	if got != 3 {
		t.Errorf("expected 3, got %d", got)
	}

	got, _ = FindTarget(3, types.DirRight, cells, false)
	if got != 4 {
		t.Errorf("expected 4 right of 3, got %d", got)
	}
	got, _ = FindTarget(4, types.DirUp, cells, false)
	if got != 2 {
		t.Errorf("expected 2 above 4, got %d", got)
	}
}

func TestFindTarget_PrefersAligned(t *testing.T) {
	// 1 sits at the top; 2 is far right on the same band; 3 is closer but
	// entirely below the band.
	cells := []Cell{
		{ID: 1, Bounds: types.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
		{ID: 2, Bounds: types.Rect{X: 600, Y: 0, Width: 100, Height: 100}},
		{ID: 3, Bounds: types.Rect{X: 150, Y: 300, Width: 100, Height: 100}},
	}

	got, _ := FindTarget(1, types.DirRight, cells, false)
	if got != 2 {
		t.Errorf("expected aligned window 2, got %d", got)
	}
}

func TestFindTarget_MonocleHasNoDirection(t *testing.T) {
	full := types.Rect{Width: 1000, Height: 800}
	cells := []Cell{{ID: 1, Bounds: full}, {ID: 2, Bounds: full}}

	if _, found := FindTarget(1, types.DirRight, cells, false); found {
		t.Error("expected no directional target when rects coincide")
	}
}

func TestCycleWindowIndex(t *testing.T) {
	tests := []struct {
		current  int
		total    int
		forward  bool
		expected int
	}{
		{0, 3, true, 1},
		{2, 3, true, 0}, // Wrap around
		{0, 3, false, 2},
		{1, 3, false, 0},
		{0, 1, true, 0}, // Single window
		{0, 0, true, 0},
	}

	for _, tt := range tests {
		result := CycleWindowIndex(tt.current, tt.total, tt.forward)
		if result != tt.expected {
			t.Errorf("CycleWindowIndex(%d, %d, %v) = %d, want %d",
				tt.current, tt.total, tt.forward, result, tt.expected)
		}
	}
}

func TestNextPrevious(t *testing.T) {
	windows := []uint32{10, 20, 30}

	tests := []struct {
		name    string
		fn      func([]uint32, uint32) (uint32, bool)
		current uint32
		want    uint32
	}{
		{"next middle", Next, 20, 30},
		{"next wraps", Next, 30, 10},
		{"next unknown starts at first", Next, 99, 10},
		{"previous middle", Previous, 20, 10},
		{"previous wraps", Previous, 10, 30},
		{"previous unknown starts at last", Previous, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(windows, tt.current)
			if !ok {
				t.Fatal("expected a window")
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}

	if _, ok := Next(nil, 1); ok {
		t.Error("expected no window for empty sequence")
	}
}

func TestAtPoint(t *testing.T) {
	tiled := makeTestGrid()
	floating := []Cell{{ID: 9, Bounds: types.Rect{X: 400, Y: 300, Width: 200, Height: 200}}}

	tests := []struct {
		name    string
		p       types.Point
		focused uint32
		want    uint32
		wantHit bool
	}{
		{"plain tiled", types.Point{X: 100, Y: 100}, 0, 1, true},
		{"floating on top", types.Point{X: 450, Y: 350}, 1, 9, true},
		{"bottom band", types.Point{X: 900, Y: 700}, 0, 3, true},
		{"outside", types.Point{X: 2000, Y: 100}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := AtPoint(tt.p, tiled, floating, tt.focused)
			if found != tt.wantHit || got != tt.want {
				t.Errorf("expected (%d, %v), got (%d, %v)", tt.want, tt.wantHit, got, found)
			}
		})
	}
}

func TestAtPoint_MonoclePrefersFocused(t *testing.T) {
	full := types.Rect{Width: 1000, Height: 800}
	cells := []Cell{{ID: 1, Bounds: full}, {ID: 2, Bounds: full}, {ID: 3, Bounds: full}}

	got, _ := AtPoint(types.Point{X: 10, Y: 10}, cells, nil, 2)
	if got != 2 {
		t.Errorf("expected focused window 2, got %d", got)
	}
	got, _ = AtPoint(types.Point{X: 10, Y: 10}, cells, nil, 0)
	if got != 1 {
		t.Errorf("expected first in sequence, got %d", got)
	}
}

func TestMasterSwap(t *testing.T) {
	ws := model.WorkspaceView{Windows: []model.WindowView{{ID: 1}, {ID: 2}, {ID: 3}}}

	a, b, err := MasterSwap(ws, 3)
	if err != nil {
		t.Fatalf("MasterSwap: %v", err)
	}
	if a != 3 || b != 1 {
		t.Errorf("expected (3, 1), got (%d, %d)", a, b)
	}

	if _, _, err := MasterSwap(ws, 0); !errors.Is(err, ErrNoFocus) {
		t.Errorf("expected ErrNoFocus, got %v", err)
	}
	if _, _, err := MasterSwap(ws, 42); !errors.Is(err, ErrNoFocus) {
		t.Errorf("expected ErrNoFocus for untiled focus, got %v", err)
	}
}

func TestFindAdjacentDisplay(t *testing.T) {
	displays := []model.DisplayView{
		{ID: "main", Frame: types.Rect{X: 0, Y: 0, Width: 1000, Height: 800}},
		{ID: "side", Frame: types.Rect{X: 1002, Y: 100, Width: 800, Height: 600}},
	}

	got, ok := FindAdjacentDisplay("main", types.DirRight, displays)
	if !ok || got.ID != "side" {
		t.Errorf("expected side display to the right, got %q (%v)", got.ID, ok)
	}
	if _, ok := FindAdjacentDisplay("main", types.DirLeft, displays); ok {
		t.Error("expected nothing to the left")
	}
	got, ok = FindAdjacentDisplay("side", types.DirLeft, displays)
	if !ok || got.ID != "main" {
		t.Errorf("expected main display to the left, got %q", got.ID)
	}
}

func TestMatchVisualPosition(t *testing.T) {
	src := types.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	dst := types.Rect{X: 1000, Y: 0, Width: 500, Height: 400}
	cell := types.Rect{X: 0, Y: 0, Width: 500, Height: 400} // center (250,200)

	got := MatchVisualPosition(cell, src, dst)
	if got.X != 1125 || got.Y != 100 {
		t.Errorf("expected (1125, 100), got (%v, %v)", got.X, got.Y)
	}
}

func TestDebouncer_CoalescesToLast(t *testing.T) {
	fired := make(chan types.Point, 4)
	d := NewDebouncer(30*time.Millisecond, func(p types.Point) { fired <- p })
	defer d.Stop()

	d.Push(types.Point{X: 1})
	d.Push(types.Point{X: 2})
	d.Push(types.Point{X: 3})

	select {
	case p := <-fired:
		if p.X != 3 {
			t.Errorf("expected last point, got %v", p)
		}
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}

	select {
	case p := <-fired:
		t.Errorf("unexpected second fire with %v", p)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_ZeroDelayAndStop(t *testing.T) {
	var got []types.Point
	d := NewDebouncer(0, func(p types.Point) { got = append(got, p) })

	d.Push(types.Point{X: 5})
	d.Stop()
	d.Push(types.Point{X: 6})

	if len(got) != 1 || got[0].X != 5 {
		t.Errorf("expected exactly one synchronous fire, got %v", got)
	}
}
