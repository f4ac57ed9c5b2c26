package model

import "fmt"

// Check verifies the structural invariants of the model and returns the
// first violation found.
func (m *Model) Check() error {
	for _, did := range m.displayOrder {
		d, ok := m.displays[did]
		if !ok {
			return fmt.Errorf("display order references missing display %s", did)
		}
		for _, wsID := range d.Workspaces {
			ws, ok := m.workspaces[wsID]
			if !ok {
				return fmt.Errorf("display %s lists missing workspace %s", did, wsID)
			}
			if ws.Display != did {
				return fmt.Errorf("workspace %s listed by %s but owned by %s", wsID, did, ws.Display)
			}
		}
	}

	owner := make(map[uint32]string)
	for id, ws := range m.workspaces {
		if _, ok := m.displays[ws.Display]; !ok {
			return fmt.Errorf("workspace %s owned by missing display %s", id, ws.Display)
		}
		for _, wid := range ws.Windows {
			if prev, dup := owner[wid]; dup {
				return fmt.Errorf("window %d sequenced in both %s and %s", wid, prev, id)
			}
			owner[wid] = id
			w, ok := m.windows[wid]
			if !ok {
				return fmt.Errorf("workspace %s sequences missing window %d", id, wid)
			}
			if !w.tiled() {
				return fmt.Errorf("workspace %s sequences untiled window %d", id, wid)
			}
			if w.Workspace != id {
				return fmt.Errorf("window %d sequenced in %s but owned by %s", wid, id, w.Workspace)
			}
		}
		if ws.Focused != 0 {
			w, ok := m.windows[ws.Focused]
			if !ok || w.Workspace != id {
				return fmt.Errorf("workspace %s focuses foreign window %d", id, ws.Focused)
			}
		}
	}

	for id, w := range m.windows {
		if _, ok := m.workspaces[w.Workspace]; !ok {
			return fmt.Errorf("window %d owned by missing workspace %s", id, w.Workspace)
		}
		if w.tiled() && owner[id] != w.Workspace {
			return fmt.Errorf("tiled window %d missing from sequence of %s", id, w.Workspace)
		}
	}

	if m.focused != 0 {
		w, ok := m.windows[m.focused]
		if !ok {
			return fmt.Errorf("global focus on missing window %d", m.focused)
		}
		if m.workspaces[w.Workspace].Focused != m.focused {
			return fmt.Errorf("global focus %d is not the focus of workspace %s", m.focused, w.Workspace)
		}
	}
	return nil
}
