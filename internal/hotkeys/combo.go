// Package hotkeys maps keyboard combos to window-manager actions.
package hotkeys

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCombo  = errors.New("invalid key combination")
	ErrInvalidAction = errors.New("invalid action")
)

// modifierOrder is the canonical order of modifiers in a normalized combo.
var modifierOrder = []string{"ctrl", "alt", "shift", "cmd"}

var modifierAliases = map[string]string{
	"alt":     "alt",
	"option":  "alt",
	"opt":     "alt",
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"cmd":     "cmd",
	"command": "cmd",
}

var keyAliases = map[string]string{
	"enter": "return",
	"esc":   "escape",
	"del":   "delete",
	"spc":   "space",
}

// NormalizeCombo returns the canonical form of a combo such as
// "Shift+Alt+H" -> "alt+shift+h". A combo has any number of distinct
// modifiers and exactly one key.
func NormalizeCombo(combo string) (string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")

	mods := make(map[string]bool)
	key := ""
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return "", fmt.Errorf("%w: %q has an empty part", ErrInvalidCombo, combo)
		}
		if m, ok := modifierAliases[p]; ok {
			if mods[m] {
				return "", fmt.Errorf("%w: %q repeats %s", ErrInvalidCombo, combo, m)
			}
			mods[m] = true
			continue
		}
		if key != "" {
			return "", fmt.Errorf("%w: %q has more than one key", ErrInvalidCombo, combo)
		}
		if alias, ok := keyAliases[p]; ok {
			p = alias
		}
		key = p
	}
	if key == "" {
		return "", fmt.Errorf("%w: %q has no key", ErrInvalidCombo, combo)
	}

	out := make([]string, 0, len(mods)+1)
	for _, m := range modifierOrder {
		if mods[m] {
			out = append(out, m)
		}
	}
	return strings.Join(append(out, key), "+"), nil
}
