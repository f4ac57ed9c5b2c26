package hotkeys

import (
	"fmt"
	"strings"

	"github.com/yourusername/gridwm/internal/types"
)

// ActionKind names what a hotkey does.
type ActionKind string

const (
	ActionFocus            ActionKind = "focus"
	ActionMove             ActionKind = "move"
	ActionFocusNext        ActionKind = "focus_next"
	ActionFocusPrevious    ActionKind = "focus_prev"
	ActionSwapMain         ActionKind = "swap_main"
	ActionCloseWindow      ActionKind = "close_window"
	ActionToggleLayout     ActionKind = "toggle_layout"
	ActionToggleFloat      ActionKind = "toggle_float"
	ActionToggleFullscreen ActionKind = "toggle_fullscreen"
	ActionIncreaseRatio    ActionKind = "increase_ratio"
	ActionDecreaseRatio    ActionKind = "decrease_ratio"
	ActionLayout           ActionKind = "layout"
	ActionSendToWorkspace  ActionKind = "send_to_workspace"
	ActionExec             ActionKind = "exec"
	ActionReload           ActionKind = "reload"
)

// Action is a parsed binding target. Direction is set for focus and move;
// Arg carries the layout kind, workspace name or command line.
type Action struct {
	Kind      ActionKind
	Direction types.Direction
	Arg       string
}

func (a Action) String() string {
	switch a.Kind {
	case ActionFocus, ActionMove:
		return string(a.Kind) + "_" + a.Direction.String()
	case ActionLayout, ActionSendToWorkspace, ActionExec:
		return string(a.Kind) + ":" + a.Arg
	default:
		return string(a.Kind)
	}
}

var simpleActions = map[string]ActionKind{
	"focus_next":        ActionFocusNext,
	"focus_prev":        ActionFocusPrevious,
	"focus_previous":    ActionFocusPrevious,
	"swap_main":         ActionSwapMain,
	"close_window":      ActionCloseWindow,
	"toggle_layout":     ActionToggleLayout,
	"toggle_float":      ActionToggleFloat,
	"toggle_fullscreen": ActionToggleFullscreen,
	"increase_ratio":    ActionIncreaseRatio,
	"decrease_ratio":    ActionDecreaseRatio,
	"reload":            ActionReload,
	"restart":           ActionReload,
}

// ParseAction parses an action string: focus_left, move_down, swap_main,
// layout:grid, send_to_workspace:2, exec:open -a Terminal, and so on.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Action{}, fmt.Errorf("%w: empty", ErrInvalidAction)
	}

	name, arg, hasArg := strings.Cut(s, ":")
	arg = strings.TrimSpace(arg)

	switch name {
	case "exec", "send_to_workspace":
		if !hasArg || arg == "" {
			return Action{}, fmt.Errorf("%w: %s requires an argument", ErrInvalidAction, name)
		}
		return Action{Kind: ActionKind(name), Arg: arg}, nil
	case "layout":
		kind, err := types.ParseLayoutKind(arg)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		return Action{Kind: ActionLayout, Arg: string(kind)}, nil
	}

	if hasArg {
		return Action{}, fmt.Errorf("%w: %s takes no argument", ErrInvalidAction, name)
	}
	if kind, ok := simpleActions[name]; ok {
		return Action{Kind: kind}, nil
	}

	for _, prefix := range []ActionKind{ActionFocus, ActionMove} {
		rest, ok := strings.CutPrefix(name, string(prefix)+"_")
		if !ok {
			continue
		}
		if dir, ok := types.ParseDirection(rest); ok {
			return Action{Kind: prefix, Direction: dir}, nil
		}
	}

	return Action{}, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, s)
}
