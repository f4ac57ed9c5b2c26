package hotkeys

import (
	"fmt"
	"sort"
)

// Table is an immutable combo -> action lookup built from configuration.
type Table struct {
	bindings map[string]Action
}

// NewTable parses every binding. Two combos that normalize to the same key
// are rejected.
func NewTable(bindings map[string]string) (*Table, error) {
	t := &Table{bindings: make(map[string]Action, len(bindings))}
	raw := make(map[string]string, len(bindings))

	for _, combo := range sortedKeys(bindings) {
		norm, err := NormalizeCombo(combo)
		if err != nil {
			return nil, err
		}
		if prev, dup := raw[norm]; dup {
			return nil, fmt.Errorf("%w: %q and %q are the same combo", ErrInvalidCombo, prev, combo)
		}
		action, err := ParseAction(bindings[combo])
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", combo, err)
		}
		raw[norm] = combo
		t.bindings[norm] = action
	}
	return t, nil
}

// Lookup resolves a raw combo as delivered by the hotkey source.
func (t *Table) Lookup(combo string) (Action, bool) {
	if t == nil {
		return Action{}, false
	}
	norm, err := NormalizeCombo(combo)
	if err != nil {
		return Action{}, false
	}
	a, ok := t.bindings[norm]
	return a, ok
}

// Combos returns the normalized combos, sorted.
func (t *Table) Combos() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.bindings))
	for c := range t.bindings {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bindings)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
