package wm

import (
	"errors"
	"fmt"

	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/focus"
	"github.com/yourusername/gridwm/internal/hotkeys"
	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/types"
)

// execute validates and applies one command on the loop goroutine.
func (m *Manager) execute(cmd Command) (any, error) {
	switch cmd.Kind {
	case CmdStatus:
		return m.status(), nil
	case CmdSetLayout:
		return m.setLayout(cmd.Workspace, cmd.Layout, cmd.SplitRatio)
	case CmdCycleLayout:
		return m.cycleLayout(cmd.Workspace, cmd.Reverse)
	case CmdFocusDirection:
		return m.focusDirection(cmd.Direction)
	case CmdFocusNext:
		return m.focusCycle(true)
	case CmdFocusPrevious:
		return m.focusCycle(false)
	case CmdFocusWindow:
		if err := m.focusWindow(cmd.WindowID); err != nil {
			return nil, err
		}
		w, _ := m.model.Window(cmd.WindowID)
		return w, nil
	case CmdMoveDirection:
		return nil, m.moveDirection(cmd.Direction)
	case CmdMoveToWorkspace:
		return nil, m.moveToWorkspace(cmd.Workspace)
	case CmdSwapMaster:
		return nil, m.swapMaster()
	case CmdToggleFloat:
		return m.toggleFloat(cmd.WindowID)
	case CmdToggleFullscreen:
		return m.toggleFullscreen(cmd.Workspace)
	case CmdAdjustRatio:
		return m.adjustRatio(cmd.Workspace, cmd.Delta)
	case CmdCloseFocused:
		return nil, m.closeFocused()
	case CmdCloseWindow:
		return nil, m.closeWindow(cmd.WindowID)
	case CmdMoveWindow:
		return m.moveWindow(cmd.WindowID, cmd.Frame)
	case CmdExec:
		return nil, m.exec(cmd.Exec)
	case CmdReload:
		return nil, m.reload()
	case CmdStop:
		logging.Info().Msg("stop requested")
		m.stopping = true
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
}

func (m *Manager) status() Status {
	st := Status{
		Displays:   m.model.Displays(),
		Workspaces: m.model.Workspaces(),
		Unmanaged:  []model.WindowView{},
		Focused:    m.model.Focused(),
		Active:     m.model.ActiveWorkspace(),
	}
	for _, w := range m.model.Windows() {
		if !w.Managed {
			st.Unmanaged = append(st.Unmanaged, w)
		}
	}
	return st
}

// workspace resolves a workspace name, defaulting to the active one.
func (m *Manager) workspace(name string) (model.WorkspaceView, error) {
	if name == "" {
		name = m.model.ActiveWorkspace()
	}
	ws, ok := m.model.Workspace(name)
	if !ok {
		return model.WorkspaceView{}, fmt.Errorf("workspace %q: %w", name, model.ErrNotFound)
	}
	return ws, nil
}

// focusedWindow returns the focused window and its workspace.
func (m *Manager) focusedWindow() (model.WindowView, model.WorkspaceView, error) {
	id := m.model.Focused()
	w, ok := m.model.Window(id)
	if !ok {
		return model.WindowView{}, model.WorkspaceView{}, focus.ErrNoFocus
	}
	ws, _ := m.model.Workspace(w.Workspace)
	return w, ws, nil
}

func (m *Manager) setLayout(name string, kind types.LayoutKind, ratio float64) (any, error) {
	ws, err := m.workspace(name)
	if err != nil {
		return nil, err
	}
	kind, err = types.ParseLayoutKind(string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	params := ws.Params
	if ratio != 0 {
		params.SplitRatio = ratio
	}
	return m.applyLayout(ws.ID, kind, params, true)
}

func (m *Manager) cycleLayout(name string, reverse bool) (any, error) {
	ws, err := m.workspace(name)
	if err != nil {
		return nil, err
	}
	kind := ws.Layout.Next()
	if reverse {
		kind = ws.Layout.Previous()
	}
	return m.applyLayout(ws.ID, kind, ws.Params, true)
}

func (m *Manager) adjustRatio(name string, delta float64) (any, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta must be non-zero", ErrInvalidArgument)
	}
	ws, err := m.workspace(name)
	if err != nil {
		return nil, err
	}
	params := ws.Params
	params.SplitRatio = layout.AdjustSplitRatio(params.SplitRatio, delta)
	return m.applyLayout(ws.ID, ws.Layout, params, true)
}

func (m *Manager) toggleFullscreen(name string) (any, error) {
	ws, err := m.workspace(name)
	if err != nil {
		return nil, err
	}
	if ws.Layout != types.LayoutMonocle {
		m.prevKind[ws.ID] = ws.Layout
		return m.applyLayout(ws.ID, types.LayoutMonocle, ws.Params, false)
	}

	prev, ok := m.prevKind[ws.ID]
	if !ok {
		prev, _ = m.cfg.Layout.WorkspaceLayout(ws.ID)
		if prev == types.LayoutMonocle {
			prev = types.LayoutBSP
		}
	}
	return m.applyLayout(ws.ID, prev, ws.Params, false)
}

// applyLayout switches a workspace's layout, relayouts and returns the
// new snapshot. persist records the choice in the state file; a temporary
// fullscreen is not recorded.
func (m *Manager) applyLayout(wsID string, kind types.LayoutKind, params types.LayoutParams, persist bool) (any, error) {
	if err := m.model.SetLayout(wsID, kind, params); err != nil {
		return nil, err
	}
	if persist {
		delete(m.prevKind, wsID)
		m.rememberLayout(wsID)
	}
	m.relayout(wsID)

	logging.Info().Str("workspace", wsID).Str("layout", string(kind)).Float64("splitRatio", params.SplitRatio).Msg("layout changed")
	ws, _ := m.model.Workspace(wsID)
	return ws, nil
}

// focusWindow moves model focus and asks the OS to follow.
func (m *Manager) focusWindow(id uint32) error {
	if err := m.model.Focus(id); err != nil {
		return err
	}
	w, _ := m.model.Window(id)
	m.activate(w.Workspace)
	m.out.send(osCommand{op: opFocus, id: id})
	m.out.send(osCommand{op: opRaise, id: id})
	return nil
}

// focusResult focuses id and returns its view.
func (m *Manager) focusResult(id uint32) (any, error) {
	if err := m.focusWindow(id); err != nil {
		return nil, err
	}
	w, _ := m.model.Window(id)
	return w, nil
}

func (m *Manager) focusDirection(dir types.Direction) (any, error) {
	w, ws, err := m.focusedWindow()
	if err != nil {
		return nil, err
	}
	cells := m.layoutCells(ws)
	if id, ok := focus.FindTarget(w.ID, dir, cells, false); ok {
		return m.focusResult(id)
	}
	if m.cfg.Focus.CrossDisplay {
		if id, ok := m.acrossDisplays(w, ws, dir); ok {
			return m.focusResult(id)
		}
	}
	if m.cfg.Focus.WrapAround {
		if id, ok := focus.FindTarget(w.ID, dir, cells, true); ok && id != w.ID {
			return m.focusResult(id)
		}
	}
	return nil, nil
}

// acrossDisplays picks the window on the adjacent display's visible
// workspace closest to the same visual position.
func (m *Manager) acrossDisplays(w model.WindowView, ws model.WorkspaceView, dir types.Direction) (uint32, bool) {
	src, ok := m.model.Display(ws.Display)
	if !ok {
		return 0, false
	}
	dst, ok := focus.FindAdjacentDisplay(src.ID, dir, m.model.Displays())
	if !ok {
		return 0, false
	}
	target, ok := m.model.Workspace(dst.Active)
	if !ok {
		return 0, false
	}
	p := focus.MatchVisualPosition(w.Geometry, src.Frame, dst.Frame)
	return focus.ClosestToPoint(p, m.layoutCells(target))
}

func (m *Manager) focusCycle(forward bool) (any, error) {
	current := m.model.Focused()
	ws, err := m.workspace("")
	if err != nil {
		return nil, err
	}
	ids := ws.IDs()
	if len(ids) == 0 {
		return nil, nil
	}

	var id uint32
	var ok bool
	if forward {
		id, ok = focus.Next(ids, current)
	} else {
		id, ok = focus.Previous(ids, current)
	}
	if !ok {
		// Focus is outside the sequence: start from an end.
		id = ids[0]
		if !forward {
			id = ids[len(ids)-1]
		}
	}
	return m.focusResult(id)
}

func (m *Manager) moveDirection(dir types.Direction) error {
	w, ws, err := m.focusedWindow()
	if err != nil {
		return err
	}
	if !w.Managed || w.Floating {
		return fmt.Errorf("%w: window %d is not tiled", ErrInvalidArgument, w.ID)
	}

	area, _ := m.layoutArea(ws.Display)
	placements := m.engine.Compute(ws, area, ws.Params)
	cells := make([]focus.Cell, len(placements))
	for i, p := range placements {
		cells[i] = focus.Cell{ID: p.WindowID, Bounds: p.Bounds}
	}
	if target, ok := focus.FindTarget(w.ID, dir, cells, m.cfg.Focus.WrapAround); ok && target != w.ID {
		if err := m.model.Swap(w.ID, target); err != nil {
			return err
		}
		m.relayout(ws.ID)
		return nil
	}

	if !m.cfg.Focus.CrossDisplay {
		return nil
	}
	dst, ok := focus.FindAdjacentDisplay(ws.Display, dir, m.model.Displays())
	if !ok || dst.Active == "" {
		return nil
	}
	return m.transfer(w.ID, ws.ID, dst.Active)
}

func (m *Manager) moveToWorkspace(name string) error {
	if name == "" {
		return fmt.Errorf("%w: workspace name required", ErrInvalidArgument)
	}
	w, ws, err := m.focusedWindow()
	if err != nil {
		return err
	}
	if _, exists := m.model.Workspace(name); !exists {
		m.createWorkspace(name, m.model.ActiveDisplay())
	}
	if name == ws.ID {
		return nil
	}
	return m.transfer(w.ID, ws.ID, name)
}

// transfer appends a window to another workspace and relayouts both.
func (m *Manager) transfer(id uint32, from, to string) error {
	if err := m.model.MoveWindow(id, to, -1); err != nil {
		return err
	}
	m.activate(to)
	m.relayout(from)
	m.relayout(to)
	logging.Info().Uint32("windowId", id).Str("from", from).Str("workspace", to).Msg("window moved")
	return nil
}

func (m *Manager) swapMaster() error {
	_, ws, err := m.focusedWindow()
	if err != nil {
		return err
	}
	a, b, err := focus.MasterSwap(ws, m.model.Focused())
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}
	if err := m.model.Swap(a, b); err != nil {
		return err
	}
	m.relayout(ws.ID)
	return nil
}

func (m *Manager) toggleFloat(id uint32) (any, error) {
	if id == 0 {
		id = m.model.Focused()
		if id == 0 {
			return nil, focus.ErrNoFocus
		}
	}
	w, ok := m.model.Window(id)
	if !ok {
		return nil, fmt.Errorf("window %d: %w", id, model.ErrNotFound)
	}
	if !w.Managed {
		return nil, fmt.Errorf("%w: window %d is not managed", ErrInvalidArgument, id)
	}
	if err := m.model.SetFloating(id, !w.Floating); err != nil {
		return nil, err
	}
	m.relayout(w.Workspace)

	w, _ = m.model.Window(id)
	logging.Debug().Uint32("windowId", id).Bool("floating", w.Floating).Msg("float toggled")
	return w, nil
}

func (m *Manager) closeFocused() error {
	return m.closeWindow(0)
}

// closeWindow asks the OS to close a window, the focused one for id 0.
func (m *Manager) closeWindow(id uint32) error {
	if id == 0 {
		id = m.model.Focused()
		if id == 0 {
			return focus.ErrNoFocus
		}
	}
	if _, ok := m.model.Window(id); !ok {
		return fmt.Errorf("window %d: %w", id, model.ErrNotFound)
	}
	// The model drops the window when the OS reports it gone.
	m.out.send(osCommand{op: opClose, id: id})
	return nil
}

// moveWindow places a window at an explicit frame. A tiled window is
// floated first so the layout does not pull it back.
func (m *Manager) moveWindow(id uint32, frame types.Rect) (any, error) {
	if frame.IsEmpty() {
		return nil, fmt.Errorf("%w: empty frame", ErrInvalidArgument)
	}
	if id == 0 {
		id = m.model.Focused()
		if id == 0 {
			return nil, focus.ErrNoFocus
		}
	}
	w, ok := m.model.Window(id)
	if !ok {
		return nil, fmt.Errorf("window %d: %w", id, model.ErrNotFound)
	}

	if w.Managed && !w.Floating {
		if err := m.model.SetFloating(id, true); err != nil {
			return nil, err
		}
		m.relayout(w.Workspace)
	}
	m.model.SetGeometry(id, frame)
	m.out.send(osCommand{op: opSetGeometry, id: id, rect: frame})

	w, _ = m.model.Window(id)
	logging.Debug().Uint32("windowId", id).Interface("frame", frame).Msg("window moved")
	return w, nil
}

func (m *Manager) exec(command string) error {
	if command == "" {
		return fmt.Errorf("%w: empty command", ErrInvalidArgument)
	}
	if err := m.execFn(command); err != nil {
		return fmt.Errorf("exec %q: %w", command, err)
	}
	logging.Info().Str("command", command).Msg("command started")
	return nil
}

// reload swaps configuration in place. The model and window assignment
// are kept; on any error the previous configuration stays active.
func (m *Manager) reload() error {
	if m.loader == nil {
		return fmt.Errorf("%w: no configuration source", ErrInvalidArgument)
	}
	cfg, err := m.loader()
	if err != nil {
		if !errors.Is(err, config.ErrInvalid) {
			err = fmt.Errorf("%w: %v", config.ErrInvalid, err)
		}
		logging.Warn().Err(err).Msg("reload rejected")
		return err
	}
	table, err := hotkeys.NewTable(cfg.Hotkeys.Bindings)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	m.applyConfig(cfg, table)
	m.prevKind = make(map[string]types.LayoutKind)
	for _, ws := range m.model.Workspaces() {
		kind, params := cfg.Layout.WorkspaceLayout(ws.ID)
		if err := m.model.SetLayout(ws.ID, kind, params); err != nil {
			logging.Warn().Err(err).Str("workspace", ws.ID).Msg("reapply layout failed")
			continue
		}
		m.rememberLayout(ws.ID)
	}

	displays := m.model.Displays()
	infos := make([]types.DisplayInfo, len(displays))
	for i, d := range displays {
		infos[i] = types.DisplayInfo{ID: d.ID, Frame: d.Frame, Main: d.Main}
	}
	m.syncDisplays(infos)
	m.relayoutAll()

	m.out.send(osCommand{op: opGrabHotkeys, combos: table.Combos()})
	logging.SetLevel(cfg.Logging.Level)
	logging.Info().Int("bindings", table.Len()).Msg("configuration reloaded")
	return nil
}
