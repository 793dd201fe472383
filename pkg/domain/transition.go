package domain

import (
	"fmt"
	"strings"
)

// TransitionType defines which selection change a transition requests.
type TransitionType int

const (
	// EnterToThisState selects the transition's own state in its parent.
	EnterToThisState TransitionType = iota
	// ExitFromThisState deselects the transition's own state, optionally
	// swapping to a destination sibling.
	ExitFromThisState
)

func (t TransitionType) String() string {
	switch t {
	case EnterToThisState:
		return "enter"
	case ExitFromThisState:
		return "exit"
	}
	return fmt.Sprintf("TransitionType(%d)", int(t))
}

// ParseTransitionType parses "enter" or "exit".
func ParseTransitionType(s string) (TransitionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "enter", "enter_to_this_state":
		return EnterToThisState, nil
	case "exit", "exit_from_this_state":
		return ExitFromThisState, nil
	}
	return 0, fmt.Errorf("unknown transition type %q", s)
}

// OverlapPhase is the edge of a physical overlap reported by the host.
type OverlapPhase int

const (
	OverlapBegin OverlapPhase = iota
	OverlapEnd
)

func (p OverlapPhase) String() string {
	if p == OverlapEnd {
		return "end"
	}
	return "begin"
}

// ParseOverlapPhase parses "begin"/"enter" or "end"/"exit".
func ParseOverlapPhase(s string) (OverlapPhase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "begin", "enter":
		return OverlapBegin, nil
	case "end", "exit":
		return OverlapEnd, nil
	}
	return 0, fmt.Errorf("unknown overlap phase %q", s)
}

// OverlapKind distinguishes trigger volumes from solid collisions.
type OverlapKind int

const (
	// AnyOverlap matches both kinds. It is only meaningful as a filter.
	AnyOverlap OverlapKind = iota
	TriggerOverlap
	CollisionOverlap
)

func (k OverlapKind) String() string {
	switch k {
	case TriggerOverlap:
		return "trigger"
	case CollisionOverlap:
		return "collision"
	}
	return "any"
}

// ParseOverlapKind parses "any", "trigger" or "collision".
func ParseOverlapKind(s string) (OverlapKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return AnyOverlap, nil
	case "trigger":
		return TriggerOverlap, nil
	case "collision", "collider":
		return CollisionOverlap, nil
	}
	return 0, fmt.Errorf("unknown overlap kind %q", s)
}

// Matches reports whether an overlap of kind other passes this filter.
func (k OverlapKind) Matches(other OverlapKind) bool {
	return k == AnyOverlap || k == other
}
