package state

import (
	"sync"
	"time"

	"github.com/yourusername/gridwm/internal/types"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 1
)

// RuntimeState is the root state structure persisted to disk
type RuntimeState struct {
	Version     int                        `json:"version"`
	Workspaces  map[string]*WorkspaceState `json:"workspaces"`
	LastUpdated time.Time                  `json:"lastUpdated"`

	mu sync.RWMutex `json:"-"` // For thread-safe access (not serialized)
}

// WorkspaceState is the layout choice remembered for one workspace
type WorkspaceState struct {
	Layout     types.LayoutKind `json:"layout"`
	SplitRatio float64          `json:"splitRatio"`
}

// NewRuntimeState creates a new empty runtime state
func NewRuntimeState() *RuntimeState {
	return &RuntimeState{
		Version:     StateVersion,
		Workspaces:  make(map[string]*WorkspaceState),
		LastUpdated: time.Now(),
	}
}

// Workspace returns a copy of the remembered state for a workspace.
// Records with an unknown layout or invalid ratio are reported as absent.
func (rs *RuntimeState) Workspace(id string) (WorkspaceState, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	ws, ok := rs.Workspaces[id]
	if !ok || ws == nil {
		return WorkspaceState{}, false
	}
	if _, err := types.ParseLayoutKind(string(ws.Layout)); err != nil {
		return WorkspaceState{}, false
	}
	if (types.LayoutParams{SplitRatio: ws.SplitRatio}).Validate() != nil {
		return WorkspaceState{}, false
	}
	return *ws, true
}

// SetWorkspace records the layout for a workspace. It reports whether
// anything changed.
func (rs *RuntimeState) SetWorkspace(id string, kind types.LayoutKind, ratio float64) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if ws, ok := rs.Workspaces[id]; ok && ws.Layout == kind && ws.SplitRatio == ratio {
		return false
	}
	rs.Workspaces[id] = &WorkspaceState{Layout: kind, SplitRatio: ratio}
	rs.LastUpdated = time.Now()
	return true
}

// RemoveWorkspace removes a workspace from state
func (rs *RuntimeState) RemoveWorkspace(id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	delete(rs.Workspaces, id)
}

// WorkspaceIDs returns the ids with a remembered layout.
func (rs *RuntimeState) WorkspaceIDs() []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	ids := make([]string, 0, len(rs.Workspaces))
	for id := range rs.Workspaces {
		ids = append(ids, id)
	}
	return ids
}
