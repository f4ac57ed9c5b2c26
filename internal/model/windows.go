package model

import (
	"fmt"

	"github.com/yourusername/gridwm/internal/types"
)

// AddWindow places a new window in a workspace. Tiled windows are appended
// to the end of the sequence.
func (m *Model) AddWindow(workspace string, w Window) error {
	if _, ok := m.windows[w.ID]; ok {
		return fmt.Errorf("window %d: %w", w.ID, ErrDuplicateWindow)
	}
	ws, ok := m.workspaces[workspace]
	if !ok {
		return fmt.Errorf("workspace %s: %w", workspace, ErrNotFound)
	}

	win := w
	win.Workspace = workspace
	m.windows[win.ID] = &win
	if win.tiled() {
		ws.Windows = append(ws.Windows, win.ID)
	}
	return nil
}

// RemoveWindow forgets a window, clearing any focus it held.
func (m *Model) RemoveWindow(id uint32) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("window %d: %w", id, ErrNotFound)
	}

	ws := m.workspaces[w.Workspace]
	if i := indexOf(ws.Windows, id); i >= 0 {
		ws.Windows = removeAt(ws.Windows, i)
	}
	if ws.Focused == id {
		ws.Focused = 0
	}
	if m.focused == id {
		m.focused = 0
	}
	delete(m.windows, id)
	return nil
}

// MoveWindow relocates a window to position in the target workspace's
// sequence. A negative position appends. Floating and unmanaged windows
// only change owner.
func (m *Model) MoveWindow(id uint32, target string, position int) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("window %d: %w", id, ErrNotFound)
	}
	dst, ok := m.workspaces[target]
	if !ok {
		return fmt.Errorf("workspace %s: %w", target, ErrNotFound)
	}
	src := m.workspaces[w.Workspace]

	srcSeq := src.Windows
	if i := indexOf(srcSeq, id); i >= 0 {
		srcSeq = removeAt(srcSeq, i)
	}
	dstSeq := dst.Windows
	if src == dst {
		dstSeq = srcSeq
	}

	if w.tiled() {
		if position > len(dstSeq) {
			return fmt.Errorf("position %d of %d: %w", position, len(dstSeq), ErrIndexOutOfRange)
		}
		if position < 0 {
			position = len(dstSeq)
		}
		dstSeq = insertAt(dstSeq, position, id)
	}

	src.Windows = srcSeq
	dst.Windows = dstSeq
	if src != dst {
		if src.Focused == id {
			src.Focused = 0
		}
		if m.focused == id {
			dst.Focused = id
		}
	}
	w.Workspace = target
	return nil
}

// SetGeometry records the last known frame of a window. Unknown ids are ignored.
func (m *Model) SetGeometry(id uint32, rect types.Rect) {
	if w, ok := m.windows[id]; ok {
		w.Geometry = rect
	}
}

// Reorder moves a tiled window to index within its workspace's sequence.
func (m *Model) Reorder(workspace string, id uint32, index int) error {
	ws, ok := m.workspaces[workspace]
	if !ok {
		return fmt.Errorf("workspace %s: %w", workspace, ErrNotFound)
	}
	cur := indexOf(ws.Windows, id)
	if cur < 0 {
		return fmt.Errorf("window %d in workspace %s: %w", id, workspace, ErrNotFound)
	}
	if index < 0 || index >= len(ws.Windows) {
		return fmt.Errorf("index %d of %d: %w", index, len(ws.Windows), ErrIndexOutOfRange)
	}
	ws.Windows = insertAt(removeAt(ws.Windows, cur), index, id)
	return nil
}

// Swap exchanges the sequence positions of two tiled windows that share a workspace.
func (m *Model) Swap(a, b uint32) error {
	wa, ok := m.windows[a]
	if !ok {
		return fmt.Errorf("window %d: %w", a, ErrNotFound)
	}
	ws := m.workspaces[wa.Workspace]
	i, j := indexOf(ws.Windows, a), indexOf(ws.Windows, b)
	if i < 0 {
		return fmt.Errorf("window %d in workspace %s: %w", a, ws.ID, ErrNotFound)
	}
	if j < 0 {
		return fmt.Errorf("window %d in workspace %s: %w", b, ws.ID, ErrNotFound)
	}
	ws.Windows[i], ws.Windows[j] = ws.Windows[j], ws.Windows[i]
	return nil
}

// Focus makes a window the global focus and the focus of its workspace.
func (m *Model) Focus(id uint32) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("window %d: %w", id, ErrNotFound)
	}
	m.focused = id
	m.workspaces[w.Workspace].Focused = id
	return nil
}

// ClearFocus drops the global focus. Workspace-local focus is kept so it
// can be restored later.
func (m *Model) ClearFocus() {
	m.focused = 0
}

// SetFloating toggles a managed window in or out of automatic placement.
// A window leaving float is appended to the end of its sequence.
func (m *Model) SetFloating(id uint32, floating bool) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("window %d: %w", id, ErrNotFound)
	}
	if w.Floating == floating {
		return nil
	}

	ws := m.workspaces[w.Workspace]
	w.Floating = floating
	if i := indexOf(ws.Windows, id); i >= 0 && !w.tiled() {
		ws.Windows = removeAt(ws.Windows, i)
	} else if w.tiled() && i < 0 {
		ws.Windows = append(ws.Windows, id)
	}
	return nil
}
