package wm

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/yourusername/gridwm/internal/focus"
	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/types"
)

// bootstrap rebuilds the model from the binding's enumeration.
func (m *Manager) bootstrap(ctx context.Context) error {
	displays, err := m.binding.EnumerateDisplays(ctx)
	if err != nil {
		return fmt.Errorf("enumerate displays: %w", err)
	}
	if len(displays) == 0 {
		return fmt.Errorf("enumerate displays: no displays")
	}
	m.syncDisplays(displays)

	windows, err := m.binding.EnumerateWindows(ctx)
	if err != nil {
		return fmt.Errorf("enumerate windows: %w", err)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].ID < windows[j].ID })
	for _, w := range windows {
		m.addWindow(w)
	}

	m.out.send(osCommand{op: opGrabHotkeys, combos: m.table.Combos()})
	m.relayoutAll()
	return nil
}

// syncDisplays reconciles the model's displays with the reported set.
// Displays are ordered left to right so configured display indexes are stable.
func (m *Manager) syncDisplays(displays []types.DisplayInfo) {
	sorted := append([]types.DisplayInfo(nil), displays...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Frame, sorted[j].Frame
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	present := make(map[string]bool, len(sorted))
	for _, d := range sorted {
		present[d.ID] = true
		if _, ok := m.model.Display(d.ID); ok {
			m.model.UpdateDisplay(d.ID, d.Frame, d.Main)
			continue
		}
		if err := m.model.AddDisplay(d.ID, d.Frame, d.Main); err != nil {
			logging.Warn().Err(err).Str("display", d.ID).Msg("add display failed")
			continue
		}
		logging.Info().Str("display", d.ID).Msg("display attached")
	}

	for _, d := range m.model.Displays() {
		if present[d.ID] {
			continue
		}
		focusedWS := ""
		if w, ok := m.model.Window(m.model.Focused()); ok && w.Workspace != "" {
			if ws, ok := m.model.Workspace(w.Workspace); ok && ws.Display == d.ID {
				focusedWS = ws.ID
			}
		}
		target, err := m.model.RemoveDisplay(d.ID)
		if err != nil {
			logging.Warn().Err(err).Str("display", d.ID).Msg("remove display failed")
			continue
		}
		// The workspace holding focus stays visible on its new display.
		if focusedWS != "" {
			m.model.SetActiveWorkspace(focusedWS)
		}
		logging.Info().Str("display", d.ID).Str("migratedTo", target).Msg("display detached")
	}

	m.ensureWorkspaces(sorted)
}

// ensureWorkspaces gives every display its configured workspaces, or a
// numbered default when none is configured for it.
func (m *Manager) ensureWorkspaces(sorted []types.DisplayInfo) {
	for i, d := range sorted {
		for _, wc := range m.cfg.Layout.Workspaces {
			if wc.Display == i {
				m.createWorkspace(wc.Name, d.ID)
			}
		}
		if dv, ok := m.model.Display(d.ID); ok && len(dv.Workspaces) == 0 {
			m.createWorkspace(m.defaultWorkspaceName(i), d.ID)
		}
	}

	// Workspaces configured for a display index that does not exist land
	// on the main display.
	main := m.mainDisplay()
	for _, wc := range m.cfg.Layout.Workspaces {
		if wc.Display >= len(sorted) && main != "" {
			m.createWorkspace(wc.Name, main)
		}
	}
}

func (m *Manager) defaultWorkspaceName(index int) string {
	for n := index + 1; ; n++ {
		name := strconv.Itoa(n)
		if _, exists := m.model.Workspace(name); !exists {
			return name
		}
	}
}

// createWorkspace adds a workspace unless it exists. Layout comes from the
// persisted state, then the configuration.
func (m *Manager) createWorkspace(name, display string) {
	if _, exists := m.model.Workspace(name); exists {
		return
	}
	kind, params := m.cfg.Layout.WorkspaceLayout(name)
	if m.store != nil {
		if saved, ok := m.store.Workspace(name); ok {
			kind, params = saved.Layout, types.LayoutParams{SplitRatio: saved.SplitRatio}
		}
	}
	if err := m.model.AddWorkspace(name, display, kind, params); err != nil {
		logging.Warn().Err(err).Str("workspace", name).Msg("create workspace failed")
		return
	}
	logging.Debug().Str("workspace", name).Str("display", display).Str("layout", string(kind)).Msg("workspace created")
}

func (m *Manager) mainDisplay() string {
	displays := m.model.Displays()
	for _, d := range displays {
		if d.Main {
			return d.ID
		}
	}
	if len(displays) > 0 {
		return displays[0].ID
	}
	return ""
}

// workspaceFor picks the workspace a new window lands in: the visible
// workspace of its hinted display, else of the display under its center,
// else the active one.
func (m *Manager) workspaceFor(w types.WindowInfo) string {
	if d, ok := m.model.Display(w.Display); ok && w.Display != "" {
		return d.Active
	}
	if id, ok := m.model.DisplayAt(w.Frame.Center()); ok {
		d, _ := m.model.Display(id)
		return d.Active
	}
	return m.model.ActiveWorkspace()
}

// addWindow classifies and records a window. It reports whether the window
// joined a tiling sequence.
func (m *Manager) addWindow(info types.WindowInfo) (string, bool) {
	decision := m.policy.Classify(info)
	ws := m.workspaceFor(info)
	err := m.model.AddWindow(ws, model.Window{
		ID:       info.ID,
		Geometry: info.Frame,
		Managed:  decision.Managed,
		Floating: decision.Floating,
		App:      info.App,
		Title:    info.Title,
	})
	if err != nil {
		logging.Warn().Err(err).Uint32("windowId", info.ID).Msg("add window failed")
		return "", false
	}
	if info.Focused {
		m.model.Focus(info.ID)
	}

	logging.Debug().
		Uint32("windowId", info.ID).
		Str("app", info.App).
		Str("workspace", ws).
		Bool("managed", decision.Managed).
		Bool("floating", decision.Floating).
		Str("reason", decision.Reason).
		Msg("window added")
	return ws, decision.Managed && !decision.Floating
}

func (m *Manager) windowAppeared(info types.WindowInfo) {
	if _, exists := m.model.Window(info.ID); exists {
		m.model.SetGeometry(info.ID, info.Frame)
		return
	}
	if ws, tiled := m.addWindow(info); tiled {
		m.relayout(ws)
	}
}

func (m *Manager) windowDisappeared(id uint32) {
	w, ok := m.model.Window(id)
	if !ok {
		return
	}
	if err := m.model.RemoveWindow(id); err != nil {
		logging.Warn().Err(err).Uint32("windowId", id).Msg("remove window failed")
		return
	}
	if w.Managed && !w.Floating {
		m.relayout(w.Workspace)
	}
}

func (m *Manager) windowFocused(id uint32) {
	w, ok := m.model.Window(id)
	if !ok {
		logging.Debug().Uint32("windowId", id).Msg("focus on unknown window")
		return
	}
	m.model.Focus(id)
	m.activate(w.Workspace)
}

func (m *Manager) displaysChanged(ctx context.Context, displays []types.DisplayInfo) {
	if displays == nil {
		var err error
		displays, err = m.binding.EnumerateDisplays(ctx)
		if err != nil {
			logging.Warn().Err(err).Msg("enumerate displays failed")
			return
		}
	}
	if len(displays) == 0 {
		logging.Warn().Msg("display change with no displays ignored")
		return
	}
	m.syncDisplays(displays)
	m.relayoutAll()
}

// pointerMoved implements focus-follows-mouse for a debounced position.
func (m *Manager) pointerMoved(p types.Point) {
	if !m.cfg.Focus.FollowsMouse {
		return
	}
	displayID, ok := m.model.DisplayAt(p)
	if !ok {
		return
	}
	d, _ := m.model.Display(displayID)
	ws, ok := m.model.Workspace(d.Active)
	if !ok {
		return
	}

	id, ok := focus.AtPoint(p, storedCells(ws.Windows), storedCells(ws.Floating), m.model.Focused())
	if !ok || id == m.model.Focused() {
		return
	}
	m.model.Focus(id)
	m.out.send(osCommand{op: opFocus, id: id})
}

// storedCells uses the last pushed or observed geometry.
func storedCells(windows []model.WindowView) []focus.Cell {
	cells := make([]focus.Cell, len(windows))
	for i, w := range windows {
		cells[i] = focus.Cell{ID: w.ID, Bounds: w.Geometry}
	}
	return cells
}

// layoutArea is the display frame minus outer gap and border.
func (m *Manager) layoutArea(display string) (types.Rect, bool) {
	d, ok := m.model.Display(display)
	if !ok {
		return types.Rect{}, false
	}
	return d.Frame.Inset(m.cfg.General.Gap + m.cfg.General.BorderWidth), true
}

// relayout recomputes a workspace and pushes the geometry of every window
// whose placement changed. The commanded geometry is stored at once; a later
// WindowMoved observation overrides it. Only the active workspace of each
// display is laid out; the others keep their last geometry until activated.
func (m *Manager) relayout(wsID string) {
	ws, ok := m.model.Workspace(wsID)
	if !ok {
		return
	}
	if d, ok := m.model.Display(ws.Display); !ok || d.Active != wsID {
		return
	}
	area, ok := m.layoutArea(ws.Display)
	if !ok {
		return
	}

	for i, p := range m.engine.Compute(ws, area, ws.Params) {
		if ws.Windows[i].Geometry.ApproxEqual(p.Bounds) {
			continue
		}
		m.model.SetGeometry(p.WindowID, p.Bounds)
		m.out.send(osCommand{op: opSetGeometry, id: p.WindowID, rect: p.Bounds})
	}

	if ws.Layout == types.LayoutMonocle && ws.Focused != 0 {
		m.out.send(osCommand{op: opRaise, id: ws.Focused})
	}
}

// activate makes a workspace the active one on its display and lays it
// out when that changed.
func (m *Manager) activate(wsID string) {
	ws, ok := m.model.Workspace(wsID)
	if !ok {
		return
	}
	d, ok := m.model.Display(ws.Display)
	if !ok || d.Active == wsID {
		return
	}
	if err := m.model.SetActiveWorkspace(wsID); err != nil {
		logging.Warn().Err(err).Str("workspace", wsID).Msg("activate workspace failed")
		return
	}
	logging.Debug().Str("workspace", wsID).Str("display", ws.Display).Msg("workspace activated")
	m.relayout(wsID)
}

func (m *Manager) relayoutAll() {
	for _, ws := range m.model.Workspaces() {
		m.relayout(ws.ID)
	}
}

// layoutCells returns the computed rectangles of a workspace's tiled
// windows followed by the stored geometry of its floating ones.
func (m *Manager) layoutCells(ws model.WorkspaceView) []focus.Cell {
	area, _ := m.layoutArea(ws.Display)
	placements := m.engine.Compute(ws, area, ws.Params)
	cells := make([]focus.Cell, 0, len(placements)+len(ws.Floating))
	for _, p := range placements {
		cells = append(cells, focus.Cell{ID: p.WindowID, Bounds: p.Bounds})
	}
	return append(cells, storedCells(ws.Floating)...)
}

func (m *Manager) saveState() {
	if m.store == nil || m.statePath == "" {
		return
	}
	if err := m.store.SaveTo(m.statePath); err != nil {
		logging.Warn().Err(err).Str("path", m.statePath).Msg("save state failed")
	}
}

// rememberLayout records a workspace's layout and saves when it changed.
func (m *Manager) rememberLayout(wsID string) {
	if m.store == nil {
		return
	}
	ws, ok := m.model.Workspace(wsID)
	if !ok {
		return
	}
	if m.store.SetWorkspace(wsID, ws.Layout, ws.Params.SplitRatio) {
		m.saveState()
	}
}
