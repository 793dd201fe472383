package fsm

import (
	"context"
	"fmt"

	"github.com/aretw0/playbox/pkg/domain"
)

// Transition is a stimulus adapter that requests a selection change for the
// state whose node carries it. Variants embed TransitionBase and call
// InvokeTransition when their condition is met.
type Transition interface {
	Base() *TransitionBase
}

// Ticker is implemented by transitions polled once per tick.
type Ticker interface {
	Tick(ctx context.Context, frame domain.Frame)
}

// OverlapListener is implemented by transitions driven by the host's
// physical overlap callbacks.
type OverlapListener interface {
	Overlap(ctx context.Context, other domain.NodeID, phase domain.OverlapPhase, kind domain.OverlapKind) bool
}

// SignalListener is implemented by transitions driven by named signals.
type SignalListener interface {
	Signal(ctx context.Context, name string) bool
}

// StateObserver is implemented by transitions that track the enter/exit
// events of their own state.
type StateObserver interface {
	StateEntered(previous *State)
	StateExited(next *State)
}

// TransitionBase holds the settings shared by all transitions.
type TransitionBase struct {
	// Type selects entering or exiting the owning state.
	Type domain.TransitionType
	// Destination is the sibling selected in place of the owning state by an
	// exit transition. Empty means deselect with no replacement.
	Destination domain.NodeID
	// Disabled turns InvokeTransition into a no-op.
	Disabled bool

	state *State
	kind  string
}

// Base returns the shared settings; embedding types inherit it.
func (b *TransitionBase) Base() *TransitionBase { return b }

// State returns the owning state, set by the last refresh.
func (b *TransitionBase) State() *State { return b.state }

func (b *TransitionBase) attach(s *State, owner Transition) {
	b.state = s
	b.kind = componentName(owner)
}

// InvokeTransition maps the transition settings to a selection change in the
// owning state's parent. It reports whether the selection changed.
func (b *TransitionBase) InvokeTransition(ctx context.Context) bool {
	if b.Disabled || b.state == nil {
		return false
	}
	s := b.state
	parent := s.Parent()
	if parent == nil {
		return false
	}

	var applied bool
	switch b.Type {
	case domain.EnterToThisState:
		applied = s.SelectState(ctx)
	case domain.ExitFromThisState:
		if b.Destination.IsZero() {
			applied = s.DeselectState(ctx)
			break
		}
		dest, ok := s.tree.State(b.Destination)
		if !ok {
			s.tree.logger.WarnContext(ctx, "transition destination is not a state",
				"state_id", s.id, "destination", b.Destination)
			break
		}
		applied = parent.TryChangeSelectedState(ctx, s, dest)
	default:
		panic(fmt.Sprintf("fsm: unknown transition type %d on %s", int(b.Type), s.id))
	}

	t := s.tree
	t.logger.DebugContext(ctx, "transition invoked",
		"state_id", s.id, "transition", b.kind, "type", b.Type.String(), "applied", applied)
	if t.hooks.OnTransition != nil {
		t.hooks.OnTransition(ctx, &domain.TransitionEvent{
			EventBase:   s.eventBase(domain.EventTransition),
			StateID:     s.id,
			Transition:  b.kind,
			Type:        b.Type,
			Destination: b.Destination,
			Applied:     applied,
		})
	}
	return applied
}
