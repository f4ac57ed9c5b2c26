package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/gridwm/internal/state"
)

const (
	DefaultConfigDir  = ".config/gridwm"
	DefaultConfigFile = "config.yaml"
)

// ErrInvalid wraps every parse and validation failure.
var ErrInvalid = errors.New("invalid config")

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Gap:              10,
			BorderWidth:      2,
			CommandTimeoutMs: 250,
		},
		Layout: LayoutConfig{
			Default:    "bsp",
			SplitRatio: 0.5,
		},
		Focus: FocusConfig{
			FollowsMouse: true,
			MouseDelayMs: 100,
		},
		Hotkeys: HotkeyConfig{Bindings: DefaultBindings()},
		IPC:     IPCConfig{SocketPath: "/tmp/gridwm.sock"},
		Bridge: BridgeConfig{
			SocketPath: "/tmp/grid-server.sock",
			TimeoutMs:  5000,
		},
		State:   StateConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultBindings returns the stock hotkey table.
func DefaultBindings() map[string]string {
	return map[string]string{
		"alt+h":           "focus_left",
		"alt+j":           "focus_down",
		"alt+k":           "focus_up",
		"alt+l":           "focus_right",
		"alt+shift+h":     "move_left",
		"alt+shift+j":     "move_down",
		"alt+shift+k":     "move_up",
		"alt+shift+l":     "move_right",
		"alt+tab":         "focus_next",
		"alt+shift+tab":   "focus_prev",
		"ctrl+alt+space":  "toggle_layout",
		"ctrl+alt+f":      "toggle_float",
		"alt+m":           "toggle_fullscreen",
		"alt+shift+space": "swap_main",
		"alt+equal":       "increase_ratio",
		"alt+minus":       "decrease_ratio",
		"alt+return":      "exec:open -a Terminal",
		"alt+w":           "close_window",
		"alt+shift+r":     "reload",
	}
}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/gridwm/config.yaml (then config.json) and
// falls back to Default when neither exists.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}

// LoadConfigFromBytes loads configuration from raw bytes.
// format should be "yaml" or "json". Fields left out keep their defaults;
// a bindings table, when present, replaces the default one.
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()
	cfg.Hotkeys.Bindings = nil

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse YAML config: %v", ErrInvalid, err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON config: %v", ErrInvalid, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format: %s", ErrInvalid, format)
	}

	if cfg.Hotkeys.Bindings == nil {
		cfg.Hotkeys.Bindings = DefaultBindings()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// StatePath returns the configured state file or the default location.
func (c *Config) StatePath() string {
	if c.State.Path != "" {
		return c.State.Path
	}
	return state.GetStatePath()
}

// GetAppRule finds the first matching app rule
func (c *Config) GetAppRule(appName, bundleID string) *AppRule {
	for i, rule := range c.Rules {
		if strings.EqualFold(rule.App, appName) || (bundleID != "" && rule.App == bundleID) {
			return &c.Rules[i]
		}
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
