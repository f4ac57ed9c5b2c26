package config

import (
	"fmt"

	"github.com/yourusername/gridwm/internal/hotkeys"
	"github.com/yourusername/gridwm/internal/types"
)

// Validate checks the configuration for errors. Every error wraps ErrInvalid.
func (c *Config) Validate() error {
	if err := validateGeneral(&c.General); err != nil {
		return fmt.Errorf("%w: general: %v", ErrInvalid, err)
	}
	if err := validateLayout(&c.Layout); err != nil {
		return fmt.Errorf("%w: layout: %v", ErrInvalid, err)
	}
	if c.Focus.MouseDelayMs < 0 || c.Focus.MouseDelayMs > 10000 {
		return fmt.Errorf("%w: focus: mouseDelayMs must be between 0 and 10000, got %d", ErrInvalid, c.Focus.MouseDelayMs)
	}
	if _, err := hotkeys.NewTable(c.Hotkeys.Bindings); err != nil {
		return fmt.Errorf("%w: hotkeys: %v", ErrInvalid, err)
	}

	for i, rule := range c.Rules {
		if rule.App == "" {
			return fmt.Errorf("%w: rule %d: missing app identifier", ErrInvalid, i)
		}
	}

	if c.IPC.SocketPath == "" {
		return fmt.Errorf("%w: ipc: socketPath cannot be empty", ErrInvalid)
	}
	if c.Bridge.SocketPath == "" {
		return fmt.Errorf("%w: bridge: socketPath cannot be empty", ErrInvalid)
	}
	if c.Bridge.TimeoutMs <= 0 {
		return fmt.Errorf("%w: bridge: timeoutMs must be positive, got %d", ErrInvalid, c.Bridge.TimeoutMs)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging: unknown level %q", ErrInvalid, c.Logging.Level)
	}

	return nil
}

func validateGeneral(g *GeneralConfig) error {
	if g.Gap < 0 || g.Gap > 100 {
		return fmt.Errorf("gap must be between 0 and 100, got %v", g.Gap)
	}
	if g.BorderWidth < 0 || g.BorderWidth > 20 {
		return fmt.Errorf("borderWidth must be between 0 and 20, got %v", g.BorderWidth)
	}
	if g.CommandTimeoutMs < 1 || g.CommandTimeoutMs > 10000 {
		return fmt.Errorf("commandTimeoutMs must be between 1 and 10000, got %d", g.CommandTimeoutMs)
	}
	return nil
}

func validateLayout(l *LayoutConfig) error {
	if _, err := types.ParseLayoutKind(l.Default); err != nil {
		return err
	}
	if err := (types.LayoutParams{SplitRatio: l.SplitRatio}).Validate(); err != nil {
		return err
	}

	names := make(map[string]bool)
	for i, ws := range l.Workspaces {
		if ws.Name == "" {
			return fmt.Errorf("workspace %d: missing name", i)
		}
		if names[ws.Name] {
			return fmt.Errorf("duplicate workspace name: %s", ws.Name)
		}
		names[ws.Name] = true

		if ws.Display < 0 {
			return fmt.Errorf("workspace %s: display index must not be negative", ws.Name)
		}
		if ws.Layout != "" {
			if _, err := types.ParseLayoutKind(ws.Layout); err != nil {
				return fmt.Errorf("workspace %s: %w", ws.Name, err)
			}
		}
		if ws.SplitRatio != 0 {
			if err := (types.LayoutParams{SplitRatio: ws.SplitRatio}).Validate(); err != nil {
				return fmt.Errorf("workspace %s: %w", ws.Name, err)
			}
		}
	}
	return nil
}
