package wm

import (
	"github.com/yourusername/gridwm/internal/hotkeys"
	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/types"
)

// CommandKind names an operation in the command vocabulary shared by
// hotkeys and the control channel.
type CommandKind string

const (
	CmdStatus           CommandKind = "status"
	CmdSetLayout        CommandKind = "setLayout"
	CmdCycleLayout      CommandKind = "cycleLayout"
	CmdFocusDirection   CommandKind = "focusDirection"
	CmdFocusNext        CommandKind = "focusNext"
	CmdFocusPrevious    CommandKind = "focusPrevious"
	CmdFocusWindow      CommandKind = "focusWindow"
	CmdMoveDirection    CommandKind = "moveDirection"
	CmdMoveToWorkspace  CommandKind = "moveToWorkspace"
	CmdSwapMaster       CommandKind = "swapMaster"
	CmdToggleFloat      CommandKind = "toggleFloat"
	CmdToggleFullscreen CommandKind = "toggleFullscreen"
	CmdAdjustRatio      CommandKind = "adjustRatio"
	CmdCloseFocused     CommandKind = "closeFocused"
	CmdCloseWindow      CommandKind = "closeWindow"
	CmdMoveWindow       CommandKind = "moveWindow"
	CmdExec             CommandKind = "exec"
	CmdReload           CommandKind = "reload"
	CmdStop             CommandKind = "stop"
)

// Command is a request to the manager. Unused fields stay zero.
type Command struct {
	Kind       CommandKind
	Workspace  string           // empty: the focused workspace
	Layout     types.LayoutKind // setLayout
	SplitRatio float64          // setLayout; 0 keeps the current ratio
	Reverse    bool             // cycleLayout
	Direction  types.Direction  // focusDirection, moveDirection
	WindowID   uint32           // focusWindow, toggleFloat, closeWindow, moveWindow (0: focused)
	Frame      types.Rect       // moveWindow
	Delta      float64          // adjustRatio
	Exec       string           // exec
}

// Status is the reply to CmdStatus.
type Status struct {
	Displays   []model.DisplayView   `json:"displays"`
	Workspaces []model.WorkspaceView `json:"workspaces"`
	Unmanaged  []model.WindowView    `json:"unmanaged"`
	Focused    uint32                `json:"focused"`
	Active     string                `json:"activeWorkspace"`
}

// CommandForAction translates a hotkey action into a command.
func CommandForAction(a hotkeys.Action) Command {
	switch a.Kind {
	case hotkeys.ActionFocus:
		return Command{Kind: CmdFocusDirection, Direction: a.Direction}
	case hotkeys.ActionMove:
		return Command{Kind: CmdMoveDirection, Direction: a.Direction}
	case hotkeys.ActionFocusNext:
		return Command{Kind: CmdFocusNext}
	case hotkeys.ActionFocusPrevious:
		return Command{Kind: CmdFocusPrevious}
	case hotkeys.ActionSwapMain:
		return Command{Kind: CmdSwapMaster}
	case hotkeys.ActionCloseWindow:
		return Command{Kind: CmdCloseFocused}
	case hotkeys.ActionToggleLayout:
		return Command{Kind: CmdCycleLayout}
	case hotkeys.ActionToggleFloat:
		return Command{Kind: CmdToggleFloat}
	case hotkeys.ActionToggleFullscreen:
		return Command{Kind: CmdToggleFullscreen}
	case hotkeys.ActionIncreaseRatio:
		return Command{Kind: CmdAdjustRatio, Delta: ratioStep}
	case hotkeys.ActionDecreaseRatio:
		return Command{Kind: CmdAdjustRatio, Delta: -ratioStep}
	case hotkeys.ActionLayout:
		return Command{Kind: CmdSetLayout, Layout: types.LayoutKind(a.Arg)}
	case hotkeys.ActionSendToWorkspace:
		return Command{Kind: CmdMoveToWorkspace, Workspace: a.Arg}
	case hotkeys.ActionExec:
		return Command{Kind: CmdExec, Exec: a.Arg}
	case hotkeys.ActionReload:
		return Command{Kind: CmdReload}
	default:
		return Command{Kind: CommandKind(a.Kind)}
	}
}
