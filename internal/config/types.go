package config

import (
	"time"

	"github.com/yourusername/gridwm/internal/types"
)

// Config is the root configuration structure
type Config struct {
	General GeneralConfig `yaml:"general" json:"general"`
	Layout  LayoutConfig  `yaml:"layout" json:"layout"`
	Focus   FocusConfig   `yaml:"focus" json:"focus"`
	Hotkeys HotkeyConfig  `yaml:"hotkeys" json:"hotkeys"`
	Rules   []AppRule     `yaml:"rules" json:"rules"`
	IPC     IPCConfig     `yaml:"ipc" json:"ipc"`
	Bridge  BridgeConfig  `yaml:"bridge" json:"bridge"`
	State   StateConfig   `yaml:"state" json:"state"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// GeneralConfig contains sizing and timing shared by every workspace
type GeneralConfig struct {
	Gap              float64 `yaml:"gap" json:"gap"`
	BorderWidth      float64 `yaml:"borderWidth" json:"borderWidth"`
	CommandTimeoutMs int     `yaml:"commandTimeoutMs" json:"commandTimeoutMs"`
}

// LayoutConfig holds the default layout and per-workspace overrides
type LayoutConfig struct {
	Default    string            `yaml:"default" json:"default"`
	SplitRatio float64           `yaml:"splitRatio" json:"splitRatio"`
	Workspaces []WorkspaceConfig `yaml:"workspaces,omitempty" json:"workspaces,omitempty"`
}

// WorkspaceConfig creates a named workspace on a display (by index in
// left-to-right order) with its own layout.
type WorkspaceConfig struct {
	Name       string  `yaml:"name" json:"name"`
	Display    int     `yaml:"display" json:"display"`
	Layout     string  `yaml:"layout,omitempty" json:"layout,omitempty"`
	SplitRatio float64 `yaml:"splitRatio,omitempty" json:"splitRatio,omitempty"`
}

// FocusConfig controls focus-follows-mouse and directional focus policy
type FocusConfig struct {
	FollowsMouse bool `yaml:"followsMouse" json:"followsMouse"`
	MouseDelayMs int  `yaml:"mouseDelayMs" json:"mouseDelayMs"`
	CrossDisplay bool `yaml:"crossDisplay" json:"crossDisplay"`
	WrapAround   bool `yaml:"wrapAround" json:"wrapAround"`
}

// HotkeyConfig maps key combos ("alt+shift+h") to actions ("move_left")
type HotkeyConfig struct {
	Bindings map[string]string `yaml:"bindings" json:"bindings"`
}

// AppRule defines application-specific window behavior
type AppRule struct {
	App    string `yaml:"app" json:"app"`                           // App name or bundle ID
	Float  bool   `yaml:"float,omitempty" json:"float,omitempty"`   // Never tile this app
	Manage *bool  `yaml:"manage,omitempty" json:"manage,omitempty"` // false: leave the window alone
}

// IPCConfig is the control socket the daemon listens on
type IPCConfig struct {
	SocketPath string `yaml:"socketPath" json:"socketPath"`
}

// BridgeConfig is the native helper's socket
type BridgeConfig struct {
	SocketPath string `yaml:"socketPath" json:"socketPath"`
	TimeoutMs  int    `yaml:"timeoutMs" json:"timeoutMs"`
}

// StateConfig controls persistence of per-workspace layout choices
type StateConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

// LoggingConfig sets the log level and file
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	Path  string `yaml:"path,omitempty" json:"path,omitempty"`
}

// CommandTimeout bounds each outbound geometry command.
func (g GeneralConfig) CommandTimeout() time.Duration {
	return time.Duration(g.CommandTimeoutMs) * time.Millisecond
}

// MouseDelay is the focus-follows-mouse debounce window.
func (f FocusConfig) MouseDelay() time.Duration {
	return time.Duration(f.MouseDelayMs) * time.Millisecond
}

// Timeout bounds each request to the native helper.
func (b BridgeConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutMs) * time.Millisecond
}

// DefaultLayout returns the parsed default kind and parameters.
// Call only on a validated config.
func (l LayoutConfig) DefaultLayout() (types.LayoutKind, types.LayoutParams) {
	kind, err := types.ParseLayoutKind(l.Default)
	if err != nil {
		kind = types.LayoutBSP
	}
	return kind, types.LayoutParams{SplitRatio: l.SplitRatio}
}

// WorkspaceLayout returns the kind and parameters for a workspace, falling
// back to the default for anything not overridden.
func (l LayoutConfig) WorkspaceLayout(name string) (types.LayoutKind, types.LayoutParams) {
	kind, params := l.DefaultLayout()
	for _, ws := range l.Workspaces {
		if ws.Name != name {
			continue
		}
		if k, err := types.ParseLayoutKind(ws.Layout); err == nil && ws.Layout != "" {
			kind = k
		}
		if ws.SplitRatio != 0 {
			params.SplitRatio = ws.SplitRatio
		}
	}
	return kind, params
}
