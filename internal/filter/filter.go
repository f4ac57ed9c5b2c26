// Package filter decides which windows the manager tiles.
package filter

import (
	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/types"
)

// MinSize is the smallest width or height of a managed window.
const MinSize = 100

// Windows from these processes are system UI, never tiled.
var systemApps = map[string]bool{
	"Window Server":               true,
	"Dock":                        true,
	"SystemUIServer":              true,
	"ControlCenter":               true,
	"Control Center":              true,
	"NotificationCenter":          true,
	"Notification Center":         true,
	"Spotlight":                   true,
	"TextInputMenuAgent":          true,
	"TextInputSwitcher":           true,
	"Open and Save Panel Service": true,
	"CursorUIViewService":         true,
	"PhotosPicker":                true,
	"GridServer":                  true,
	"gridwm":                      true,
}

var excludedSubroles = map[string]bool{
	"AXSystemDialog":   true,
	"AXFloatingWindow": true,
	"AXUnknown":        true,
}

var utilityTitles = map[string]bool{
	"borders":       true,
	"Menubar":       true,
	"Window Server": true,
}

// Decision is the outcome of classifying one window.
type Decision struct {
	Managed  bool
	Floating bool
	Reason   string // why the window is unmanaged or floating
}

// Policy classifies windows from the configured app rules plus built-in
// heuristics for system UI and utility windows.
type Policy struct {
	cfg *config.Config
}

// New creates a policy over cfg's rules.
func New(cfg *config.Config) *Policy {
	return &Policy{cfg: cfg}
}

// Classify decides whether w is managed and, if so, whether it floats.
func (p *Policy) Classify(w types.WindowInfo) Decision {
	var rule *config.AppRule
	if p != nil && p.cfg != nil {
		rule = p.cfg.GetAppRule(w.App, w.BundleID)
	}

	if rule != nil && rule.Manage != nil && !*rule.Manage {
		return Decision{Reason: "app rule"}
	}
	if reason := unmanagedReason(w); reason != "" {
		return Decision{Reason: reason}
	}
	if rule != nil && rule.Float {
		return Decision{Managed: true, Floating: true, Reason: "app rule"}
	}
	return Decision{Managed: true}
}

// unmanagedReason returns a non-empty reason when w should not be managed.
func unmanagedReason(w types.WindowInfo) string {
	if w.Minimized || w.Hidden {
		return "minimized or hidden"
	}

	// Very small windows are usually icons and palettes
	if w.Frame.Width < MinSize || w.Frame.Height < MinSize {
		return "too small"
	}

	// Popup menus, tooltips, etc. have higher levels
	if w.Level != 0 {
		return "non-normal level"
	}

	// Only apply role filters when the binding reports roles
	if w.Role != "" {
		if w.Role != "AXWindow" {
			return "role " + w.Role
		}
		if excludedSubroles[w.Subrole] {
			return "subrole " + w.Subrole
		}
	}

	if w.Parent != 0 {
		return "child window"
	}
	if systemApps[w.App] {
		return "system app"
	}
	if utilityTitles[w.Title] {
		return "utility window"
	}

	// Windows without spaces are overlays (screenshot tools and the like)
	if !w.OnSpace {
		return "no space"
	}

	return ""
}
