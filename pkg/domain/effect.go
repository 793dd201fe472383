package domain

import (
	"fmt"
	"strings"
)

// EffectTrigger defines on which lifecycle edges an effect runs.
type EffectTrigger int

const (
	OnEnter EffectTrigger = iota
	OnExit
	OnEnterAndExit
)

func (t EffectTrigger) String() string {
	switch t {
	case OnEnter:
		return "enter"
	case OnExit:
		return "exit"
	case OnEnterAndExit:
		return "enter_and_exit"
	}
	return fmt.Sprintf("EffectTrigger(%d)", int(t))
}

// OnEnter reports whether the trigger includes the enter edge.
func (t EffectTrigger) OnEnter() bool {
	return t == OnEnter || t == OnEnterAndExit
}

// OnExit reports whether the trigger includes the exit edge.
func (t EffectTrigger) OnExit() bool {
	return t == OnExit || t == OnEnterAndExit
}

// ParseEffectTrigger parses "enter", "exit" or "enter_and_exit" ("both").
func ParseEffectTrigger(s string) (EffectTrigger, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "enter", "on_enter":
		return OnEnter, nil
	case "exit", "on_exit":
		return OnExit, nil
	case "both", "enter_and_exit", "on_enter_and_exit":
		return OnEnterAndExit, nil
	}
	return 0, fmt.Errorf("unknown effect trigger %q", s)
}
