package wm

import (
	"context"

	"github.com/yourusername/gridwm/internal/types"
)

// Binding is the native window-system interface. Enumeration and pointer
// queries are synchronous; geometry and focus calls may block up to the
// context deadline.
type Binding interface {
	EnumerateDisplays(ctx context.Context) ([]types.DisplayInfo, error)
	EnumerateWindows(ctx context.Context) ([]types.WindowInfo, error)
	QueryPointerLocation(ctx context.Context) (types.Point, error)

	SetGeometry(ctx context.Context, id uint32, rect types.Rect) error
	Raise(ctx context.Context, id uint32) error
	Focus(ctx context.Context, id uint32) error
	Close(ctx context.Context, id uint32) error

	// GrabHotkeys replaces the set of combos reported as HotkeyTriggered.
	GrabHotkeys(ctx context.Context, combos []string) error

	// Observe delivers window, display and hotkey observations through emit
	// until ctx is done.
	Observe(ctx context.Context, emit func(Event)) error
}

// EventKind identifies an input to the manager loop.
type EventKind int

const (
	EventWindowAppeared EventKind = iota
	EventWindowDisappeared
	EventWindowMoved
	EventWindowFocused
	EventDisplaysChanged
	EventHotkeyTriggered
	EventPointerMoved
	eventControl
)

func (k EventKind) String() string {
	switch k {
	case EventWindowAppeared:
		return "windowAppeared"
	case EventWindowDisappeared:
		return "windowDisappeared"
	case EventWindowMoved:
		return "windowMoved"
	case EventWindowFocused:
		return "windowFocused"
	case EventDisplaysChanged:
		return "displaysChanged"
	case EventHotkeyTriggered:
		return "hotkeyTriggered"
	case EventPointerMoved:
		return "pointerMoved"
	case eventControl:
		return "control"
	default:
		return "unknown"
	}
}

// Event is one queued input. Only the fields of its Kind are set.
type Event struct {
	Kind     EventKind
	Window   types.WindowInfo    // appeared: full info; others: ID, moved: Frame
	Displays []types.DisplayInfo // displaysChanged; nil means re-enumerate
	Combo    string              // hotkeyTriggered
	Point    types.Point         // pointerMoved

	req *request
}

// WindowAppeared reports a new top-level window.
func WindowAppeared(info types.WindowInfo) Event {
	return Event{Kind: EventWindowAppeared, Window: info}
}

// WindowDisappeared reports a destroyed window.
func WindowDisappeared(id uint32) Event {
	return Event{Kind: EventWindowDisappeared, Window: types.WindowInfo{ID: id}}
}

// WindowMoved reports an observed frame.
func WindowMoved(id uint32, frame types.Rect) Event {
	return Event{Kind: EventWindowMoved, Window: types.WindowInfo{ID: id, Frame: frame}}
}

// WindowFocused reports that the OS moved focus to a window.
func WindowFocused(id uint32) Event {
	return Event{Kind: EventWindowFocused, Window: types.WindowInfo{ID: id}}
}

// DisplaysChanged reports a monitor attach, detach or resize.
func DisplaysChanged(displays []types.DisplayInfo) Event {
	return Event{Kind: EventDisplaysChanged, Displays: displays}
}

// HotkeyTriggered reports a pressed combo.
func HotkeyTriggered(combo string) Event {
	return Event{Kind: EventHotkeyTriggered, Combo: combo}
}
