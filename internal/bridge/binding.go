// Package bridge implements the window-system binding as a client of
// GridServer, the native accessibility helper listening on a unix socket.
package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/wm"
)

const (
	DefaultSocketPath = "/tmp/grid-server.sock"
	DefaultTimeout    = 5 * time.Second
)

// GridServer event types.
const (
	EventWindowCreated   = "window.created"
	EventWindowDestroyed = "window.destroyed"
	EventWindowMoved     = "window.moved"
	EventWindowResized   = "window.resized"
	EventWindowFocused   = "window.focused"
	EventDisplayChanged  = "display.changed"
	EventHotkey          = "hotkey.triggered"
)

var subscribedEvents = []string{
	EventWindowCreated,
	EventWindowDestroyed,
	EventWindowMoved,
	EventWindowResized,
	EventWindowFocused,
	EventDisplayChanged,
	EventHotkey,
}

// Binding drives windows through GridServer. It implements wm.Binding.
type Binding struct {
	conn *conn
}

var _ wm.Binding = (*Binding)(nil)

// Dial connects to GridServer. A failed dial means the helper is not
// running or lacks permission, which is fatal for the daemon.
func Dial(socketPath string, timeout time.Duration) (*Binding, error) {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	c, err := dial(socketPath, timeout)
	if err != nil {
		return nil, err
	}
	return &Binding{conn: c}, nil
}

// Disconnect closes the GridServer connection.
func (b *Binding) Disconnect() error {
	return b.conn.close()
}

// Ping checks that GridServer answers.
func (b *Binding) Ping(ctx context.Context) error {
	_, err := b.conn.call(ctx, "ping", nil)
	return err
}

func (b *Binding) dump(ctx context.Context) (*snapshot, error) {
	resp, err := b.conn.call(ctx, "dump", map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("dump failed: %w", err)
	}
	raw, err := resp.ResultMap()
	if err != nil {
		return nil, fmt.Errorf("dump failed: %w", err)
	}
	return parseDump(raw)
}

func (b *Binding) EnumerateDisplays(ctx context.Context) ([]types.DisplayInfo, error) {
	snap, err := b.dump(ctx)
	if err != nil {
		return nil, err
	}
	return snap.displays, nil
}

func (b *Binding) EnumerateWindows(ctx context.Context) ([]types.WindowInfo, error) {
	snap, err := b.dump(ctx)
	if err != nil {
		return nil, err
	}
	return snap.windows, nil
}

func (b *Binding) QueryPointerLocation(ctx context.Context) (types.Point, error) {
	resp, err := b.conn.call(ctx, "mouse.location", nil)
	if err != nil {
		return types.Point{}, err
	}
	result, err := resp.ResultMap()
	if err != nil {
		return types.Point{}, err
	}
	return types.Point{X: models.ToFloat64(result["x"]), Y: models.ToFloat64(result["y"])}, nil
}

func (b *Binding) SetGeometry(ctx context.Context, id uint32, rect types.Rect) error {
	params := models.FrameParams(rect)
	params["windowId"] = id
	_, err := b.conn.call(ctx, "updateWindow", params)
	return err
}

func (b *Binding) Raise(ctx context.Context, id uint32) error {
	return b.windowCall(ctx, "window.raise", id)
}

// Focus falls back to raising when GridServer cannot focus the window.
func (b *Binding) Focus(ctx context.Context, id uint32) error {
	err := b.windowCall(ctx, "window.focus", id)
	if err == nil || ctx.Err() != nil {
		return err
	}
	if err := b.windowCall(ctx, "window.raise", id); err != nil {
		return fmt.Errorf("focus/raise failed for window %d: %w", id, err)
	}
	return nil
}

func (b *Binding) Close(ctx context.Context, id uint32) error {
	return b.windowCall(ctx, "window.close", id)
}

func (b *Binding) windowCall(ctx context.Context, method string, id uint32) error {
	_, err := b.conn.call(ctx, method, map[string]interface{}{"windowId": id})
	return err
}

func (b *Binding) GrabHotkeys(ctx context.Context, combos []string) error {
	_, err := b.conn.call(ctx, "hotkeys.register", map[string]interface{}{"combos": combos})
	return err
}

// Observe subscribes to GridServer events and forwards them until ctx is
// done or the connection drops.
func (b *Binding) Observe(ctx context.Context, emit func(wm.Event)) error {
	if _, err := b.conn.call(ctx, "events.subscribe", map[string]interface{}{"events": subscribedEvents}); err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}
	logging.Debug().Strs("events", subscribedEvents).Msg("subscribed to window server events")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.conn.done:
			return b.conn.closedErr()
		case ev := <-b.conn.events:
			if out, ok := b.translate(ctx, ev); ok {
				emit(out)
			}
		}
	}
}

// translate maps a GridServer event onto a manager event.
func (b *Binding) translate(ctx context.Context, ev *models.Event) (wm.Event, bool) {
	data := ev.Data
	id := models.ToUint32(data["windowId"])

	switch ev.EventType {
	case EventWindowCreated:
		return b.windowCreated(ctx, data)
	case EventWindowDestroyed:
		if id == 0 {
			break
		}
		return wm.WindowDisappeared(id), true
	case EventWindowMoved, EventWindowResized:
		frame, ok := models.ParseFrame(data["frame"])
		if id == 0 || !ok {
			break
		}
		return wm.WindowMoved(id, frame), true
	case EventWindowFocused:
		if id == 0 {
			break
		}
		return wm.WindowFocused(id), true
	case EventDisplayChanged:
		return wm.DisplaysChanged(nil), true
	case EventHotkey:
		combo := models.ToString(data["combo"])
		if combo == "" {
			break
		}
		return wm.HotkeyTriggered(combo), true
	default:
		logging.Debug().Str("event", ev.EventType).Msg("ignored event")
		return wm.Event{}, false
	}

	logging.Debug().Str("event", ev.EventType).Interface("data", data).Msg("malformed event")
	return wm.Event{}, false
}

// windowCreated uses the record carried by the event, or looks the window
// up in a fresh dump when the event only names it.
func (b *Binding) windowCreated(ctx context.Context, data map[string]interface{}) (wm.Event, bool) {
	record := data["window"]
	if record == nil {
		record = data
	}
	if info, ok := parseWindow(record, nil); ok {
		if _, hasSpaces := asMap(record)["spaces"]; !hasSpaces {
			return wm.WindowAppeared(info), true
		}
	}

	id := models.ToUint32(data["windowId"])
	if id == 0 {
		id = models.ToUint32(asMap(record)["id"])
	}
	if id == 0 {
		return wm.Event{}, false
	}

	snap, err := b.dump(ctx)
	if err != nil {
		logging.Warn().Err(err).Uint32("windowId", id).Msg("window lookup failed")
		return wm.Event{}, false
	}
	for _, w := range snap.windows {
		if w.ID == id {
			return wm.WindowAppeared(w), true
		}
	}
	logging.Debug().Uint32("windowId", id).Msg("created window not in dump")
	return wm.Event{}, false
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}
