package ipc

import (
	"fmt"

	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/wm"
)

// MethodPing is answered by the server itself.
const MethodPing = "ping"

// Methods lists every method the control socket accepts.
func Methods() []string {
	return []string{
		MethodPing,
		string(wm.CmdStatus),
		string(wm.CmdSetLayout),
		string(wm.CmdCycleLayout),
		string(wm.CmdFocusDirection),
		string(wm.CmdFocusNext),
		string(wm.CmdFocusPrevious),
		string(wm.CmdFocusWindow),
		string(wm.CmdMoveDirection),
		string(wm.CmdMoveToWorkspace),
		string(wm.CmdSwapMaster),
		string(wm.CmdToggleFloat),
		string(wm.CmdToggleFullscreen),
		string(wm.CmdAdjustRatio),
		string(wm.CmdCloseFocused),
		string(wm.CmdCloseWindow),
		string(wm.CmdMoveWindow),
		string(wm.CmdExec),
		string(wm.CmdReload),
		string(wm.CmdStop),
	}
}

// CommandFromRequest maps a request onto the manager's command vocabulary.
func CommandFromRequest(req *models.Request) (wm.Command, error) {
	p := req.Params
	cmd := wm.Command{
		Kind:      wm.CommandKind(req.Method),
		Workspace: models.ToString(p["workspace"]),
	}

	switch cmd.Kind {
	case wm.CmdStatus, wm.CmdFocusNext, wm.CmdFocusPrevious, wm.CmdSwapMaster,
		wm.CmdToggleFullscreen, wm.CmdCloseFocused, wm.CmdReload, wm.CmdStop,
		wm.CmdMoveToWorkspace:

	case wm.CmdSetLayout:
		kind, err := types.ParseLayoutKind(models.ToString(p["kind"]))
		if err != nil {
			return cmd, fmt.Errorf("%w: %v", wm.ErrInvalidArgument, err)
		}
		cmd.Layout = kind
		cmd.SplitRatio = models.ToFloat64(p["splitRatio"])

	case wm.CmdCycleLayout:
		cmd.Reverse = models.ToBool(p["reverse"])

	case wm.CmdFocusDirection, wm.CmdMoveDirection:
		dir, ok := types.ParseDirection(models.ToString(p["direction"]))
		if !ok {
			return cmd, fmt.Errorf("%w: direction %q", wm.ErrInvalidArgument, models.ToString(p["direction"]))
		}
		cmd.Direction = dir

	case wm.CmdFocusWindow:
		cmd.WindowID = models.ToUint32(p["windowId"])
		if cmd.WindowID == 0 {
			return cmd, fmt.Errorf("%w: windowId required", wm.ErrInvalidArgument)
		}

	case wm.CmdToggleFloat, wm.CmdCloseWindow:
		cmd.WindowID = models.ToUint32(p["windowId"])

	case wm.CmdMoveWindow:
		cmd.WindowID = models.ToUint32(p["windowId"])
		frame, ok := models.ParseFrame(p["frame"])
		if !ok || frame.IsEmpty() {
			return cmd, fmt.Errorf("%w: frame with positive width and height required", wm.ErrInvalidArgument)
		}
		cmd.Frame = frame

	case wm.CmdAdjustRatio:
		cmd.Delta = models.ToFloat64(p["delta"])

	case wm.CmdExec:
		cmd.Exec = models.ToString(p["command"])

	default:
		return cmd, fmt.Errorf("%w: %q", wm.ErrUnknownCommand, req.Method)
	}
	return cmd, nil
}
