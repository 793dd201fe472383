package domain

import (
	"fmt"
	"strings"
)

// SelectionMode defines how a state selects among its direct children.
type SelectionMode int

const (
	// SingleRequired keeps exactly one child selected; the default child is
	// selected whenever the selection would otherwise be empty.
	SingleRequired SelectionMode = iota
	// SingleOptional allows zero or one selected child, with no fallback.
	SingleOptional
	// Multiple allows any subset of children to be selected.
	Multiple
)

var selectionModeNames = map[SelectionMode]string{
	SingleRequired: "single_required",
	SingleOptional: "single_optional",
	Multiple:       "multiple",
}

func (m SelectionMode) String() string {
	if name, ok := selectionModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SelectionMode(%d)", int(m))
}

// IsSingle reports whether at most one child may be selected (and be default).
func (m SelectionMode) IsSingle() bool {
	return m != Multiple
}

// Valid reports whether m is one of the declared modes.
func (m SelectionMode) Valid() bool {
	_, ok := selectionModeNames[m]
	return ok
}

// ParseSelectionMode parses the text form of a mode.
// The legacy names "one_enabled" and "multiple_enabled" are accepted.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single_required", "one_enabled", "required":
		return SingleRequired, nil
	case "single_optional", "optional":
		return SingleOptional, nil
	case "multiple", "multiple_enabled":
		return Multiple, nil
	}
	return 0, fmt.Errorf("unknown selection mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m SelectionMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown selection mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SelectionMode) UnmarshalText(text []byte) error {
	parsed, err := ParseSelectionMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
