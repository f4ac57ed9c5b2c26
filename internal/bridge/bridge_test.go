package bridge

import (
	"bufio"
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/wm"
)

// fakeGridServer answers requests from canned results. Methods listed in
// silent never get a response.
type fakeGridServer struct {
	ln        net.Listener
	results   map[string]interface{}
	failures  map[string]string
	silent    map[string]bool
	connected chan struct{}

	mu       sync.Mutex
	conn     net.Conn
	requests []*models.Request
}

func startGridServer(t *testing.T) (*fakeGridServer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "g.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	s := &fakeGridServer{
		ln:        ln,
		results:   map[string]interface{}{},
		failures:  map[string]string{},
		silent:    map[string]bool{},
		connected: make(chan struct{}),
	}
	go s.serve()
	t.Cleanup(func() {
		ln.Close()
		s.mu.Lock()
		if s.conn != nil {
			s.conn.Close()
		}
		s.mu.Unlock()
	})
	return s, path
}

func (s *fakeGridServer) serve() {
	c, err := s.ln.Accept()
	if err != nil {
		return
	}
	s.mu.Lock()
	s.conn = c
	s.mu.Unlock()
	close(s.connected)

	reader := bufio.NewReader(c)
	for {
		env, err := models.ReadEnvelope(reader)
		if err != nil {
			return
		}
		req := env.Request
		s.mu.Lock()
		s.requests = append(s.requests, req)
		result, failure, silent := s.results[req.Method], s.failures[req.Method], s.silent[req.Method]
		s.mu.Unlock()

		if silent {
			continue
		}
		var out *models.MessageEnvelope
		if failure != "" {
			out = &models.MessageEnvelope{
				Type:     models.TypeResponse,
				Response: &models.Response{ID: req.ID, Error: &models.ErrorInfo{Code: 1, Message: failure}},
			}
		} else {
			out, _ = models.NewResponse(req.ID, result)
		}
		s.write(out)
	}
}

func (s *fakeGridServer) write(env *models.MessageEnvelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	models.WriteEnvelope(s.conn, env)
}

func (s *fakeGridServer) methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	for i, r := range s.requests {
		out[i] = r.Method
	}
	return out
}

func (s *fakeGridServer) lastRequest(method string) *models.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Method == method {
			return s.requests[i]
		}
	}
	return nil
}

func dialTest(t *testing.T, path string) *Binding {
	t.Helper()
	b, err := Dial(path, time.Second)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { b.Disconnect() })
	return b
}

func frame(x, y, w, h float64) map[string]interface{} {
	return map[string]interface{}{"x": x, "y": y, "width": w, "height": h}
}

func sampleDump() map[string]interface{} {
	return map[string]interface{}{
		"metadata": map[string]interface{}{"focusedWindowID": 10, "activeDisplayUUID": "d1"},
		"displays": []interface{}{
			map[string]interface{}{
				"uuid":           "d1",
				"isMain":         true,
				"currentSpaceID": 1,
				"frame":          frame(0, 0, 1440, 900),
				"visibleFrame":   frame(0, 25, 1440, 875),
			},
			map[string]interface{}{
				"uuid":           "d2",
				"currentSpaceID": 2,
				"frame":          []interface{}{[]interface{}{1440, 0}, []interface{}{1920, 1080}},
			},
		},
		"windows": map[string]interface{}{
			"10": map[string]interface{}{"id": 10, "appName": "Editor", "frame": frame(0, 25, 700, 875), "spaces": []interface{}{1}},
			"11": map[string]interface{}{"id": 11, "appName": "Browser", "frame": frame(0, 0, 800, 600), "spaces": []interface{}{5}},
			"12": map[string]interface{}{"id": 12, "appName": "", "frame": frame(0, 0, 10, 10)},
			"13": map[string]interface{}{"id": 13, "appName": "Mail", "frame": frame(1500, 0, 800, 600), "spaces": []interface{}{2}, "level": 3},
		},
	}
}

func TestEnumerate(t *testing.T) {
	srv, path := startGridServer(t)
	srv.results["dump"] = sampleDump()
	b := dialTest(t, path)
	ctx := context.Background()

	displays, err := b.EnumerateDisplays(ctx)
	if err != nil {
		t.Fatalf("EnumerateDisplays failed: %v", err)
	}
	if len(displays) != 2 {
		t.Fatalf("expected 2 displays, got %d", len(displays))
	}
	if want := (types.Rect{X: 0, Y: 25, Width: 1440, Height: 875}); displays[0].Frame != want || !displays[0].Main {
		t.Errorf("expected main display with visible frame %v, got %+v", want, displays[0])
	}
	if want := (types.Rect{X: 1440, Y: 0, Width: 1920, Height: 1080}); displays[1].Frame != want {
		t.Errorf("expected array frame %v, got %v", want, displays[1].Frame)
	}

	windows, err := b.EnumerateWindows(ctx)
	if err != nil {
		t.Fatalf("EnumerateWindows failed: %v", err)
	}
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}

	tests := []struct {
		id      uint32
		display string
		onSpace bool
		focused bool
		level   int
	}{
		{10, "d1", true, true, 0},
		{11, "", false, false, 0},
		{13, "d2", true, false, 3},
	}
	for i, tt := range tests {
		w := windows[i]
		if w.ID != tt.id || w.Display != tt.display || w.OnSpace != tt.onSpace || w.Focused != tt.focused || w.Level != tt.level {
			t.Errorf("window %d: expected %+v, got %+v", tt.id, tt, w)
		}
	}
}

func TestEnumerate_NoDisplays(t *testing.T) {
	srv, path := startGridServer(t)
	srv.results["dump"] = map[string]interface{}{"displays": []interface{}{}}
	b := dialTest(t, path)

	if _, err := b.EnumerateDisplays(context.Background()); err == nil {
		t.Fatal("expected error for empty dump")
	}
}

func TestCommands(t *testing.T) {
	srv, path := startGridServer(t)
	srv.results["mouse.location"] = map[string]interface{}{"x": 120.5, "y": 40}
	b := dialTest(t, path)
	ctx := context.Background()

	if err := b.SetGeometry(ctx, 10, types.Rect{X: 5, Y: 30, Width: 700, Height: 400}); err != nil {
		t.Fatalf("SetGeometry failed: %v", err)
	}
	req := srv.lastRequest("updateWindow")
	if req == nil {
		t.Fatal("expected updateWindow request")
	}
	want := map[string]float64{"windowId": 10, "x": 5, "y": 30, "width": 700, "height": 400}
	for k, v := range want {
		if got := models.ToFloat64(req.Params[k]); got != v {
			t.Errorf("param %s: expected %v, got %v", k, v, got)
		}
	}

	p, err := b.QueryPointerLocation(ctx)
	if err != nil {
		t.Fatalf("QueryPointerLocation failed: %v", err)
	}
	if p != (types.Point{X: 120.5, Y: 40}) {
		t.Errorf("expected (120.5, 40), got %v", p)
	}

	if err := b.GrabHotkeys(ctx, []string{"alt+h", "alt+l"}); err != nil {
		t.Fatalf("GrabHotkeys failed: %v", err)
	}
	combos, _ := srv.lastRequest("hotkeys.register").Params["combos"].([]interface{})
	if len(combos) != 2 {
		t.Errorf("expected 2 combos, got %v", combos)
	}

	if err := b.Close(ctx, 10); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestFocus_FallsBackToRaise(t *testing.T) {
	srv, path := startGridServer(t)
	srv.failures["window.focus"] = "not supported"
	b := dialTest(t, path)

	if err := b.Focus(context.Background(), 10); err != nil {
		t.Fatalf("Focus failed: %v", err)
	}
	methods := strings.Join(srv.methods(), ",")
	if methods != "window.focus,window.raise" {
		t.Errorf("expected focus then raise, got %s", methods)
	}
}

func TestCall_ServerErrorAndTimeout(t *testing.T) {
	srv, path := startGridServer(t)
	srv.failures["window.raise"] = "window not found"
	srv.silent["window.close"] = true
	b := dialTest(t, path)

	err := b.Raise(context.Background(), 99)
	if err == nil || !strings.Contains(err.Error(), "window not found") {
		t.Errorf("expected server error, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := b.Close(ctx, 99); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestObserve_TranslatesEvents(t *testing.T) {
	srv, path := startGridServer(t)
	b := dialTest(t, path)
	<-srv.connected

	events := make(chan wm.Event, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Observe(ctx, func(ev wm.Event) { events <- ev }) }()

	push := func(eventType string, data map[string]interface{}) {
		srv.write(models.NewEvent(eventType, data))
	}
	push(EventWindowCreated, map[string]interface{}{"window": map[string]interface{}{"id": 7, "appName": "Editor", "frame": frame(0, 0, 400, 300)}})
	push(EventWindowMoved, map[string]interface{}{"windowId": 7, "frame": frame(10, 10, 400, 300)})
	push("window.minimized", map[string]interface{}{"windowId": 7})
	push(EventWindowFocused, map[string]interface{}{"windowId": 7})
	push(EventHotkey, map[string]interface{}{"combo": "alt+h"})
	push(EventDisplayChanged, nil)
	push(EventWindowDestroyed, map[string]interface{}{"windowId": 7})

	want := []wm.EventKind{
		wm.EventWindowAppeared,
		wm.EventWindowMoved,
		wm.EventWindowFocused,
		wm.EventHotkeyTriggered,
		wm.EventDisplaysChanged,
		wm.EventWindowDisappeared,
	}
	for i, kind := range want {
		select {
		case ev := <-events:
			if ev.Kind != kind {
				t.Fatalf("event %d: expected %s, got %s", i, kind, ev.Kind)
			}
			switch ev.Kind {
			case wm.EventWindowAppeared:
				if ev.Window.ID != 7 || ev.Window.App != "Editor" || !ev.Window.OnSpace {
					t.Errorf("unexpected appeared window %+v", ev.Window)
				}
			case wm.EventWindowMoved:
				if ev.Window.Frame != (types.Rect{X: 10, Y: 10, Width: 400, Height: 300}) {
					t.Errorf("unexpected moved frame %v", ev.Window.Frame)
				}
			case wm.EventHotkeyTriggered:
				if ev.Combo != "alt+h" {
					t.Errorf("expected combo alt+h, got %q", ev.Combo)
				}
			case wm.EventDisplaysChanged:
				if ev.Displays != nil {
					t.Errorf("expected re-enumeration marker, got %v", ev.Displays)
				}
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", kind)
		}
	}

	if srv.lastRequest("events.subscribe") == nil {
		t.Error("expected events.subscribe request")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
