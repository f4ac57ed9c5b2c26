package bridge

import (
	"fmt"
	"sort"

	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/types"
)

// snapshot is the parsed result of one dump call.
type snapshot struct {
	displays []types.DisplayInfo
	windows  []types.WindowInfo
}

func parseDump(raw map[string]interface{}) (*snapshot, error) {
	rawDisplays, ok := raw["displays"].([]interface{})
	if !ok || len(rawDisplays) == 0 {
		return nil, fmt.Errorf("no displays in server state")
	}

	snap := &snapshot{}
	spaceDisplay := make(map[int64]string)
	for _, d := range rawDisplays {
		display, ok := d.(map[string]interface{})
		if !ok {
			continue
		}
		info, ok := parseDisplay(display)
		if !ok {
			continue
		}
		snap.displays = append(snap.displays, info)
		if space := display["currentSpaceID"]; space != nil {
			spaceDisplay[models.ToInt(space)] = info.ID
		}
	}
	if len(snap.displays) == 0 {
		return nil, fmt.Errorf("no usable displays in server state")
	}

	focused := parseFocusedWindowID(raw)
	for _, w := range rawWindows(raw) {
		win, ok := parseWindow(w, spaceDisplay)
		if !ok {
			continue
		}
		win.Focused = win.ID == focused
		snap.windows = append(snap.windows, win)
	}
	sort.Slice(snap.windows, func(i, j int) bool { return snap.windows[i].ID < snap.windows[j].ID })
	return snap, nil
}

// parseDisplay prefers the visible frame, which excludes menu bar and dock.
func parseDisplay(display map[string]interface{}) (types.DisplayInfo, bool) {
	uuid := models.ToString(display["uuid"])
	if uuid == "" {
		return types.DisplayInfo{}, false
	}
	frame, ok := models.ParseFrame(display["visibleFrame"])
	if !ok {
		frame, ok = models.ParseFrame(display["frame"])
	}
	if !ok || frame.IsEmpty() {
		return types.DisplayInfo{}, false
	}
	return types.DisplayInfo{ID: uuid, Frame: frame, Main: models.ToBool(display["isMain"])}, true
}

func parseFocusedWindowID(raw map[string]interface{}) uint32 {
	metadata, ok := raw["metadata"].(map[string]interface{})
	if !ok {
		return 0
	}
	return models.ToUint32(metadata["focusedWindowID"])
}

// rawWindows accepts the windows table as an object keyed by id or as an array.
func rawWindows(raw map[string]interface{}) []interface{} {
	if arr, ok := raw["windows"].([]interface{}); ok {
		return arr
	}
	obj, ok := raw["windows"].(map[string]interface{})
	if !ok {
		return nil
	}
	out := make([]interface{}, 0, len(obj))
	for _, w := range obj {
		out = append(out, w)
	}
	return out
}

// parseWindow converts one window record. A window listing spaces is
// placed on the display currently showing one of them; a window without a
// spaces list is assumed visible.
func parseWindow(w interface{}, spaceDisplay map[int64]string) (types.WindowInfo, bool) {
	win, ok := w.(map[string]interface{})
	if !ok {
		return types.WindowInfo{}, false
	}
	// Windows with no app name are system UI elements
	id := models.ToUint32(win["id"])
	if id == 0 || models.ToString(win["appName"]) == "" {
		return types.WindowInfo{}, false
	}

	info := types.WindowInfo{
		ID:        id,
		App:       models.ToString(win["appName"]),
		BundleID:  models.ToString(win["bundleId"]),
		Title:     models.ToString(win["title"]),
		Role:      models.ToString(win["role"]),
		Subrole:   models.ToString(win["subrole"]),
		Level:     int(models.ToInt(win["level"])),
		Parent:    models.ToUint32(win["parentId"]),
		Minimized: models.ToBool(win["isMinimized"]),
		Hidden:    models.ToBool(win["isHidden"]),
		OnSpace:   true,
	}
	if rect, ok := models.ParseFrame(win["frame"]); ok {
		info.Frame = rect
	}

	if spaces, ok := win["spaces"].([]interface{}); ok {
		info.OnSpace = false
		for _, s := range spaces {
			if display, ok := spaceDisplay[models.ToInt(s)]; ok {
				info.OnSpace = true
				info.Display = display
				break
			}
		}
	}
	return info, true
}
