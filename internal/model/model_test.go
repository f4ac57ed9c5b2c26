package model

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/yourusername/gridwm/internal/types"
)

// newTestModel builds one 1000x800 display with workspaces "1" and "2".
func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New()
	if err := m.AddDisplay("d1", types.Rect{Width: 1000, Height: 800}, true); err != nil {
		t.Fatalf("AddDisplay: %v", err)
	}
	for _, id := range []string{"1", "2"} {
		if err := m.AddWorkspace(id, "d1", types.LayoutBSP, types.DefaultLayoutParams()); err != nil {
			t.Fatalf("AddWorkspace(%s): %v", id, err)
		}
	}
	return m
}

func tiled(id uint32) Window {
	return Window{ID: id, Managed: true}
}

func seq(t *testing.T, m *Model, ws string) []uint32 {
	t.Helper()
	v, ok := m.Workspace(ws)
	if !ok {
		t.Fatalf("workspace %s not found", ws)
	}
	return v.IDs()
}

func equalIDs(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddWindow(t *testing.T) {
	m := newTestModel(t)

	for _, id := range []uint32{1, 2, 3} {
		if err := m.AddWindow("1", tiled(id)); err != nil {
			t.Fatalf("AddWindow(%d): %v", id, err)
		}
	}
	if got := seq(t, m, "1"); !equalIDs(got, []uint32{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", got)
	}

	err := m.AddWindow("2", tiled(2))
	if !errors.Is(err, ErrDuplicateWindow) {
		t.Errorf("expected ErrDuplicateWindow, got %v", err)
	}

	err = m.AddWindow("nope", tiled(9))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, ok := m.Window(9); ok {
		t.Error("window added despite failure")
	}
}

func TestAddWindow_UntiledStaysOutOfSequence(t *testing.T) {
	m := newTestModel(t)

	m.AddWindow("1", Window{ID: 1, Managed: false})
	m.AddWindow("1", Window{ID: 2, Managed: true, Floating: true})
	m.AddWindow("1", tiled(3))

	if got := seq(t, m, "1"); !equalIDs(got, []uint32{3}) {
		t.Errorf("expected only tiled window in sequence, got %v", got)
	}

	v, _ := m.Workspace("1")
	if len(v.Floating) != 1 || v.Floating[0].ID != 2 {
		t.Errorf("expected floating window 2, got %+v", v.Floating)
	}
	if err := m.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestRemoveWindow_ClearsFocus(t *testing.T) {
	m := newTestModel(t)
	m.AddWindow("1", tiled(1))
	m.AddWindow("1", tiled(2))

	if err := m.Focus(2); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if err := m.RemoveWindow(2); err != nil {
		t.Fatalf("RemoveWindow: %v", err)
	}

	if m.Focused() != 0 {
		t.Errorf("expected no global focus, got %d", m.Focused())
	}
	v, _ := m.Workspace("1")
	if v.Focused != 0 {
		t.Errorf("expected no workspace focus, got %d", v.Focused)
	}

	if err := m.RemoveWindow(2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveThenReAdd_AppendsWithoutStaleGeometry(t *testing.T) {
	m := newTestModel(t)
	for _, id := range []uint32{1, 2, 3} {
		m.AddWindow("1", tiled(id))
	}
	m.SetGeometry(1, types.Rect{X: 10, Y: 10, Width: 300, Height: 300})

	if err := m.RemoveWindow(1); err != nil {
		t.Fatalf("RemoveWindow: %v", err)
	}
	if err := m.AddWindow("1", tiled(1)); err != nil {
		t.Fatalf("AddWindow: %v", err)
	}

	if got := seq(t, m, "1"); !equalIDs(got, []uint32{2, 3, 1}) {
		t.Errorf("expected [2 3 1], got %v", got)
	}
	w, _ := m.Window(1)
	if w.Geometry != (types.Rect{}) {
		t.Errorf("expected fresh geometry, got %+v", w.Geometry)
	}
}

func TestMoveWindow(t *testing.T) {
	m := newTestModel(t)
	for _, id := range []uint32{1, 2, 3} {
		m.AddWindow("1", tiled(id))
	}

	if err := m.MoveWindow(3, "1", 0); err != nil {
		t.Fatalf("MoveWindow within: %v", err)
	}
	if got := seq(t, m, "1"); !equalIDs(got, []uint32{3, 1, 2}) {
		t.Errorf("expected [3 1 2], got %v", got)
	}

	m.Focus(3)
	if err := m.MoveWindow(3, "2", -1); err != nil {
		t.Fatalf("MoveWindow across: %v", err)
	}
	if got := seq(t, m, "1"); !equalIDs(got, []uint32{1, 2}) {
		t.Errorf("expected [1 2], got %v", got)
	}
	if got := seq(t, m, "2"); !equalIDs(got, []uint32{3}) {
		t.Errorf("expected [3], got %v", got)
	}
	v, _ := m.Workspace("2")
	if v.Focused != 3 {
		t.Errorf("expected focus to follow window, got %d", v.Focused)
	}
	if err := m.Check(); err != nil {
		t.Fatal(err)
	}

	if err := m.MoveWindow(42, "2", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := m.MoveWindow(1, "2", 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if got := seq(t, m, "1"); !equalIDs(got, []uint32{1, 2}) {
		t.Errorf("failed move mutated source: %v", got)
	}
}

func TestReorder(t *testing.T) {
	m := newTestModel(t)
	for _, id := range []uint32{1, 2, 3, 4} {
		m.AddWindow("1", tiled(id))
	}

	tests := []struct {
		name    string
		ws      string
		id      uint32
		index   int
		want    []uint32
		wantErr error
	}{
		{"to front", "1", 3, 0, []uint32{3, 1, 2, 4}, nil},
		{"to back", "1", 3, 3, []uint32{1, 2, 4, 3}, nil},
		{"negative", "1", 1, -1, nil, ErrIndexOutOfRange},
		{"past end", "1", 1, 4, nil, ErrIndexOutOfRange},
		{"missing window", "1", 9, 0, nil, ErrNotFound},
		{"missing workspace", "x", 1, 0, nil, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := seq(t, m, "1")
			err := m.Reorder(tt.ws, tt.id, tt.index)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if got := seq(t, m, "1"); !equalIDs(got, before) {
					t.Errorf("failed reorder mutated sequence: %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reorder: %v", err)
			}
			if got := seq(t, m, "1"); !equalIDs(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			// restore
			m.Reorder("1", tt.id, indexOf(before, tt.id))
		})
	}
}

func TestFocus_SingleGlobalFocus(t *testing.T) {
	m := newTestModel(t)
	m.AddWindow("1", tiled(1))
	m.AddWindow("2", tiled(2))

	m.Focus(1)
	m.Focus(2)

	if m.Focused() != 2 {
		t.Errorf("expected focus 2, got %d", m.Focused())
	}
	if m.ActiveWorkspace() != "2" {
		t.Errorf("expected active workspace 2, got %s", m.ActiveWorkspace())
	}
	if err := m.Focus(7); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if m.Focused() != 2 {
		t.Errorf("failed focus changed global focus to %d", m.Focused())
	}
	if err := m.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestSetFloating(t *testing.T) {
	m := newTestModel(t)
	for _, id := range []uint32{1, 2, 3} {
		m.AddWindow("1", tiled(id))
	}

	m.SetFloating(1, true)
	if got := seq(t, m, "1"); !equalIDs(got, []uint32{2, 3}) {
		t.Errorf("expected [2 3], got %v", got)
	}
	m.SetFloating(1, false)
	if got := seq(t, m, "1"); !equalIDs(got, []uint32{2, 3, 1}) {
		t.Errorf("expected [2 3 1], got %v", got)
	}
	if err := m.SetFloating(9, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSwap(t *testing.T) {
	m := newTestModel(t)
	for _, id := range []uint32{1, 2, 3} {
		m.AddWindow("1", tiled(id))
	}
	m.AddWindow("2", tiled(4))

	if err := m.Swap(1, 3); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if got := seq(t, m, "1"); !equalIDs(got, []uint32{3, 2, 1}) {
		t.Errorf("expected [3 2 1], got %v", got)
	}
	if err := m.Swap(1, 4); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for cross-workspace swap, got %v", err)
	}
}

func TestRemoveDisplay_MigratesWorkspaces(t *testing.T) {
	m := newTestModel(t)
	m.AddDisplay("d2", types.Rect{X: 1000, Width: 800, Height: 600}, false)
	m.AddWorkspace("3", "d2", types.LayoutStack, types.DefaultLayoutParams())
	m.AddWindow("3", tiled(5))

	target, err := m.RemoveDisplay("d2")
	if err != nil {
		t.Fatalf("RemoveDisplay: %v", err)
	}
	if target != "d1" {
		t.Errorf("expected migration to d1, got %s", target)
	}
	v, _ := m.Workspace("3")
	if v.Display != "d1" {
		t.Errorf("expected workspace 3 on d1, got %s", v.Display)
	}
	if err := m.Check(); err != nil {
		t.Fatal(err)
	}

	if _, err := m.RemoveDisplay("d1"); !errors.Is(err, ErrLastDisplay) {
		t.Errorf("expected ErrLastDisplay, got %v", err)
	}
}

func TestSetLayout_RejectsBadRatio(t *testing.T) {
	m := newTestModel(t)

	err := m.SetLayout("1", types.LayoutStack, types.LayoutParams{SplitRatio: 1.2})
	if !errors.Is(err, types.ErrInvalidLayoutParams) {
		t.Fatalf("expected ErrInvalidLayoutParams, got %v", err)
	}
	v, _ := m.Workspace("1")
	if v.Layout != types.LayoutBSP {
		t.Errorf("failed SetLayout changed kind to %s", v.Layout)
	}
}

// TestInvariantsUnderMixedOperations drives a fixed pseudo-random sequence of
// valid and invalid calls and checks the invariants after every step.
func TestInvariantsUnderMixedOperations(t *testing.T) {
	m := newTestModel(t)
	rng := rand.New(rand.NewSource(7))
	workspaces := []string{"1", "2", "missing"}

	for step := 0; step < 2000; step++ {
		id := uint32(rng.Intn(12) + 1)
		ws := workspaces[rng.Intn(len(workspaces))]

		switch rng.Intn(8) {
		case 0:
			m.AddWindow(ws, Window{ID: id, Managed: rng.Intn(4) > 0, Floating: rng.Intn(5) == 0})
		case 1:
			m.RemoveWindow(id)
		case 2:
			m.MoveWindow(id, ws, rng.Intn(6)-1)
		case 3:
			m.Reorder(ws, id, rng.Intn(6)-1)
		case 4:
			m.Focus(id)
		case 5:
			m.SetFloating(id, rng.Intn(2) == 0)
		case 6:
			m.Swap(id, uint32(rng.Intn(12)+1))
		case 7:
			m.SetGeometry(id, types.Rect{Width: float64(rng.Intn(500)), Height: 100})
		}

		if err := m.Check(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
}
