package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeID is the opaque handle of a node in the host scene graph.
// The empty NodeID means "no node".
type NodeID string

// IsZero reports whether the id is empty.
func (id NodeID) IsZero() bool {
	return id == ""
}

// Color is a display color, used only for presentation.
type Color struct {
	R, G, B uint8
}

// Black is the default state color.
var Black = Color{}

// ParseColor parses a "#rrggbb" (or "rrggbb") hex string.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the "#rrggbb" representation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}
