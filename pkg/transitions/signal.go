package transitions

import (
	"context"

	"github.com/aretw0/playbox/pkg/fsm"
)

// Signal fires when a signal named Name is raised in the tree.
type Signal struct {
	fsm.TransitionBase
	Name string
}

// Kind implements fsm.Kinded.
func (s *Signal) Kind() string { return "signal" }

// Signal implements fsm.SignalListener.
func (s *Signal) Signal(ctx context.Context, name string) bool {
	if name != s.Name {
		return false
	}
	return s.InvokeTransition(ctx)
}
