package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLayoutParams is returned when layout parameters are out of range.
var ErrInvalidLayoutParams = errors.New("invalid layout params")

// LayoutKind selects the placement algorithm of a workspace.
type LayoutKind string

const (
	LayoutBSP     LayoutKind = "bsp"
	LayoutStack   LayoutKind = "stack"
	LayoutGrid    LayoutKind = "grid"
	LayoutSpiral  LayoutKind = "spiral"
	LayoutColumn  LayoutKind = "column"
	LayoutMonocle LayoutKind = "monocle"
	LayoutFloat   LayoutKind = "float"
)

// layoutCycle is the order used by next/previous layout switching.
var layoutCycle = []LayoutKind{
	LayoutBSP,
	LayoutStack,
	LayoutGrid,
	LayoutSpiral,
	LayoutColumn,
	LayoutMonocle,
	LayoutFloat,
}

// LayoutKinds returns every supported kind in cycle order.
func LayoutKinds() []LayoutKind {
	out := make([]LayoutKind, len(layoutCycle))
	copy(out, layoutCycle)
	return out
}

// ParseLayoutKind resolves a layout name, accepting the common aliases.
func ParseLayoutKind(s string) (LayoutKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bsp", "binary":
		return LayoutBSP, nil
	case "stack", "stacking":
		return LayoutStack, nil
	case "grid":
		return LayoutGrid, nil
	case "spiral":
		return LayoutSpiral, nil
	case "column", "columns":
		return LayoutColumn, nil
	case "monocle", "fullscreen":
		return LayoutMonocle, nil
	case "float", "floating":
		return LayoutFloat, nil
	default:
		return "", fmt.Errorf("%w: unknown layout %q", ErrInvalidLayoutParams, s)
	}
}

// Next returns the kind after k in the layout cycle.
func (k LayoutKind) Next() LayoutKind {
	return k.step(1)
}

// Previous returns the kind before k in the layout cycle.
func (k LayoutKind) Previous() LayoutKind {
	return k.step(-1)
}

func (k LayoutKind) step(delta int) LayoutKind {
	for i, kind := range layoutCycle {
		if kind == k {
			n := len(layoutCycle)
			return layoutCycle[(i+delta+n)%n]
		}
	}
	return LayoutBSP
}

const (
	// DefaultSplitRatio is the master share used when none is configured.
	DefaultSplitRatio = 0.5
	// MinSplitRatio and MaxSplitRatio bound interactive ratio adjustment.
	MinSplitRatio = 0.1
	MaxSplitRatio = 0.9
)

// LayoutParams holds the per-workspace tunables of a layout.
type LayoutParams struct {
	SplitRatio float64 `json:"splitRatio" yaml:"splitRatio"`
}

// DefaultLayoutParams returns params with the default split ratio.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{SplitRatio: DefaultSplitRatio}
}

// Validate checks that the split ratio lies strictly between 0 and 1.
func (p LayoutParams) Validate() error {
	if !(p.SplitRatio > 0 && p.SplitRatio < 1) {
		return fmt.Errorf("%w: split ratio %v outside (0,1)", ErrInvalidLayoutParams, p.SplitRatio)
	}
	return nil
}
