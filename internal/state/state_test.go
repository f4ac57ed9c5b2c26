package state

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/yourusername/gridwm/internal/types"
)

func TestNewRuntimeState(t *testing.T) {
	state := NewRuntimeState()

	if state.Version != StateVersion {
		t.Errorf("Version = %d, want %d", state.Version, StateVersion)
	}
	if state.Workspaces == nil {
		t.Error("Workspaces should not be nil")
	}
	if len(state.Workspaces) != 0 {
		t.Error("Workspaces should be empty")
	}
}

func TestSetWorkspace(t *testing.T) {
	state := NewRuntimeState()

	if !state.SetWorkspace("1", types.LayoutStack, 0.6) {
		t.Error("expected first set to report a change")
	}
	if state.SetWorkspace("1", types.LayoutStack, 0.6) {
		t.Error("expected identical set to report no change")
	}
	if !state.SetWorkspace("1", types.LayoutGrid, 0.6) {
		t.Error("expected layout change to report a change")
	}

	ws, ok := state.Workspace("1")
	if !ok {
		t.Fatal("expected workspace 1")
	}
	if ws.Layout != types.LayoutGrid || ws.SplitRatio != 0.6 {
		t.Errorf("expected grid/0.6, got %s/%v", ws.Layout, ws.SplitRatio)
	}

	state.RemoveWorkspace("1")
	if _, ok := state.Workspace("1"); ok {
		t.Error("expected workspace 1 to be removed")
	}
}

func TestWorkspace_RejectsBadRecords(t *testing.T) {
	state := NewRuntimeState()
	state.Workspaces["bad-kind"] = &WorkspaceState{Layout: "tabbed", SplitRatio: 0.5}
	state.Workspaces["bad-ratio"] = &WorkspaceState{Layout: types.LayoutBSP, SplitRatio: 1.5}
	state.Workspaces["nil"] = nil

	for _, id := range []string{"bad-kind", "bad-ratio", "nil", "missing"} {
		if _, ok := state.Workspace(id); ok {
			t.Errorf("expected %s to be reported absent", id)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	state := NewRuntimeState()
	state.SetWorkspace("1", types.LayoutSpiral, 0.55)
	state.SetWorkspace("code", types.LayoutMonocle, 0.5)

	if err := state.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not remain after save")
	}

	loaded, err := LoadStateFrom(path)
	if err != nil {
		t.Fatalf("LoadStateFrom: %v", err)
	}

	ids := loaded.WorkspaceIDs()
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "code" {
		t.Errorf("expected [1 code], got %v", ids)
	}
	ws, _ := loaded.Workspace("1")
	if ws.Layout != types.LayoutSpiral || ws.SplitRatio != 0.55 {
		t.Errorf("expected spiral/0.55, got %s/%v", ws.Layout, ws.SplitRatio)
	}
}

func TestLoadStateFrom_Missing(t *testing.T) {
	state, err := LoadStateFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(state.Workspaces) != 0 {
		t.Error("expected empty state")
	}
}

func TestLoadStateFrom_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStateFrom(path); err == nil {
		t.Error("expected error for corrupt state file")
	}
}

func TestLoadStateFrom_OldVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	data := `{"version": 0, "workspaces": {"1": {"layout": "column", "splitRatio": 0.5}}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	state, err := LoadStateFrom(path)
	if err != nil {
		t.Fatalf("LoadStateFrom: %v", err)
	}
	if state.Version != StateVersion {
		t.Errorf("expected migrated version %d, got %d", StateVersion, state.Version)
	}
	if ws, ok := state.Workspace("1"); !ok || ws.Layout != types.LayoutColumn {
		t.Errorf("expected column layout preserved, got %+v", ws)
	}
}
