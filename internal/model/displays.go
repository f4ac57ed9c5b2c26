package model

import (
	"fmt"

	"github.com/yourusername/gridwm/internal/types"
)

// AddDisplay registers a monitor.
func (m *Model) AddDisplay(id string, frame types.Rect, main bool) error {
	if _, ok := m.displays[id]; ok {
		return fmt.Errorf("display %s: %w", id, ErrExists)
	}
	m.displays[id] = &Display{ID: id, Frame: frame, Main: main}
	m.displayOrder = append(m.displayOrder, id)
	return nil
}

// UpdateDisplay replaces the usable frame of a monitor.
func (m *Model) UpdateDisplay(id string, frame types.Rect, main bool) error {
	d, ok := m.displays[id]
	if !ok {
		return fmt.Errorf("display %s: %w", id, ErrNotFound)
	}
	d.Frame = frame
	d.Main = main
	return nil
}

// RemoveDisplay detaches a monitor. Its workspaces, and the windows they
// hold, move to the main remaining display (or the first one).
func (m *Model) RemoveDisplay(id string) (string, error) {
	d, ok := m.displays[id]
	if !ok {
		return "", fmt.Errorf("display %s: %w", id, ErrNotFound)
	}

	target := ""
	for _, other := range m.displayOrder {
		if other == id {
			continue
		}
		if target == "" {
			target = other
		}
		if m.displays[other].Main {
			target = other
			break
		}
	}
	if target == "" {
		return "", ErrLastDisplay
	}

	dst := m.displays[target]
	for _, wsID := range d.Workspaces {
		m.workspaces[wsID].Display = target
		dst.Workspaces = append(dst.Workspaces, wsID)
	}
	if dst.Active == "" && len(dst.Workspaces) > 0 {
		dst.Active = dst.Workspaces[0]
	}

	delete(m.displays, id)
	for i, other := range m.displayOrder {
		if other == id {
			m.displayOrder = append(m.displayOrder[:i:i], m.displayOrder[i+1:]...)
			break
		}
	}
	return target, nil
}

// AddWorkspace creates a workspace on a display. The first workspace of a
// display becomes its active one.
func (m *Model) AddWorkspace(id, display string, kind types.LayoutKind, params types.LayoutParams) error {
	d, ok := m.displays[display]
	if !ok {
		return fmt.Errorf("display %s: %w", display, ErrNotFound)
	}
	if _, ok := m.workspaces[id]; ok {
		return fmt.Errorf("workspace %s: %w", id, ErrExists)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	m.workspaces[id] = &Workspace{
		ID:      id,
		Display: display,
		Layout:  kind,
		Params:  params,
		Windows: []uint32{},
	}
	d.Workspaces = append(d.Workspaces, id)
	if d.Active == "" {
		d.Active = id
	}
	return nil
}

// SetActiveWorkspace makes a workspace the visible one of its display.
func (m *Model) SetActiveWorkspace(id string) error {
	ws, ok := m.workspaces[id]
	if !ok {
		return fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	m.displays[ws.Display].Active = id
	return nil
}

// SetLayout changes the layout kind and params of a workspace.
func (m *Model) SetLayout(id string, kind types.LayoutKind, params types.LayoutParams) error {
	ws, ok := m.workspaces[id]
	if !ok {
		return fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	if err := params.Validate(); err != nil {
		return err
	}
	ws.Layout = kind
	ws.Params = params
	return nil
}
