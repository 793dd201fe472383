package effects

import (
	"context"
	"fmt"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
)

// Emit raises a named signal in the owning tree. Signal transitions that
// listen for it run before InvokeEffect returns.
type Emit struct {
	fsm.EffectSettings
	Signal string
}

// Kind implements fsm.Kinded.
func (e *Emit) Kind() string { return "emit" }

// InvokeEffect implements fsm.Effect.
func (e *Emit) InvokeEffect(ctx context.Context, _ bool, s *fsm.State) error {
	tree := s.Tree()
	if tree.SignalDepth() >= fsm.MaxSignalDepth {
		return fmt.Errorf("emit %q: %w", e.Signal, domain.ErrSignalLoop)
	}
	tree.Raise(ctx, e.Signal)
	return nil
}
