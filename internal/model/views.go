package model

import (
	"sort"

	"github.com/yourusername/gridwm/internal/types"
)

// WindowView is a read-only copy of a window.
type WindowView struct {
	ID        uint32     `json:"id"`
	Workspace string     `json:"workspace"`
	Geometry  types.Rect `json:"geometry"`
	Managed   bool       `json:"managed"`
	Floating  bool       `json:"floating"`
	App       string     `json:"app,omitempty"`
	Title     string     `json:"title,omitempty"`
}

// WorkspaceView is an immutable snapshot of a workspace, handed to the
// layout engine and the focus logic.
type WorkspaceView struct {
	ID       string             `json:"id"`
	Display  string             `json:"display"`
	Layout   types.LayoutKind   `json:"layout"`
	Params   types.LayoutParams `json:"params"`
	Windows  []WindowView       `json:"windows"`  // sequence order
	Floating []WindowView       `json:"floating"` // floating managed windows, by id
	Focused  uint32             `json:"focused"`
}

// IDs returns the sequence ids in order.
func (v WorkspaceView) IDs() []uint32 {
	ids := make([]uint32, len(v.Windows))
	for i, w := range v.Windows {
		ids[i] = w.ID
	}
	return ids
}

// DisplayView is a read-only copy of a display.
type DisplayView struct {
	ID         string     `json:"id"`
	Frame      types.Rect `json:"frame"`
	Main       bool       `json:"main"`
	Workspaces []string   `json:"workspaces"`
	Active     string     `json:"active"`
}

func (w *Window) view() WindowView {
	return WindowView{
		ID:        w.ID,
		Workspace: w.Workspace,
		Geometry:  w.Geometry,
		Managed:   w.Managed,
		Floating:  w.Floating,
		App:       w.App,
		Title:     w.Title,
	}
}

// Window returns a copy of a window.
func (m *Model) Window(id uint32) (WindowView, bool) {
	w, ok := m.windows[id]
	if !ok {
		return WindowView{}, false
	}
	return w.view(), true
}

// Windows returns every window ordered by id.
func (m *Model) Windows() []WindowView {
	out := make([]WindowView, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, w.view())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Workspace returns a snapshot of a workspace.
func (m *Model) Workspace(id string) (WorkspaceView, bool) {
	ws, ok := m.workspaces[id]
	if !ok {
		return WorkspaceView{}, false
	}

	v := WorkspaceView{
		ID:       ws.ID,
		Display:  ws.Display,
		Layout:   ws.Layout,
		Params:   ws.Params,
		Windows:  make([]WindowView, 0, len(ws.Windows)),
		Floating: []WindowView{},
		Focused:  ws.Focused,
	}
	for _, wid := range ws.Windows {
		v.Windows = append(v.Windows, m.windows[wid].view())
	}
	for _, w := range m.windows {
		if w.Workspace == id && w.Managed && w.Floating {
			v.Floating = append(v.Floating, w.view())
		}
	}
	sort.Slice(v.Floating, func(i, j int) bool { return v.Floating[i].ID < v.Floating[j].ID })
	return v, true
}

// Workspaces returns every workspace ordered by display, then by creation.
func (m *Model) Workspaces() []WorkspaceView {
	var out []WorkspaceView
	for _, did := range m.displayOrder {
		for _, wsID := range m.displays[did].Workspaces {
			v, _ := m.Workspace(wsID)
			out = append(out, v)
		}
	}
	return out
}

// Display returns a copy of a display.
func (m *Model) Display(id string) (DisplayView, bool) {
	d, ok := m.displays[id]
	if !ok {
		return DisplayView{}, false
	}
	return DisplayView{
		ID:         d.ID,
		Frame:      d.Frame,
		Main:       d.Main,
		Workspaces: append([]string(nil), d.Workspaces...),
		Active:     d.Active,
	}, true
}

// Displays returns every display in attach order.
func (m *Model) Displays() []DisplayView {
	out := make([]DisplayView, 0, len(m.displayOrder))
	for _, id := range m.displayOrder {
		v, _ := m.Display(id)
		out = append(out, v)
	}
	return out
}

// Focused returns the globally focused window id, or 0.
func (m *Model) Focused() uint32 {
	return m.focused
}

// ActiveDisplay returns the display holding the focused window, falling
// back to the main display and then the first one.
func (m *Model) ActiveDisplay() string {
	if w, ok := m.windows[m.focused]; ok {
		return m.workspaces[w.Workspace].Display
	}
	for _, id := range m.displayOrder {
		if m.displays[id].Main {
			return id
		}
	}
	if len(m.displayOrder) > 0 {
		return m.displayOrder[0]
	}
	return ""
}

// ActiveWorkspace returns the workspace holding the focused window, or the
// visible workspace of the active display.
func (m *Model) ActiveWorkspace() string {
	if w, ok := m.windows[m.focused]; ok {
		return w.Workspace
	}
	if d, ok := m.displays[m.ActiveDisplay()]; ok {
		return d.Active
	}
	return ""
}

// DisplayAt returns the display whose frame contains p.
func (m *Model) DisplayAt(p types.Point) (string, bool) {
	for _, id := range m.displayOrder {
		if m.displays[id].Frame.Contains(p) {
			return id, true
		}
	}
	return "", false
}
