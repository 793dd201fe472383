package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateEnter        EventType = "state_enter"
	EventStateExit         EventType = "state_exit"
	EventInnerStateChanged EventType = "inner_state_changed"
	EventTransition        EventType = "transition"
	EventEffectError       EventType = "effect_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// SceneTime is the tree time (sum of tick deltas) when the event fired.
	SceneTime time.Duration `json:"scene_time"`
}

// StateEvent represents entry into or exit from a state.
// Other is the previous state on enter and the next state on exit.
type StateEvent struct {
	EventBase
	StateID  NodeID `json:"state_id"`
	ParentID NodeID `json:"parent_id,omitempty"`
	Other    NodeID `json:"other,omitempty"`
}

// InnerStateChangedEvent is emitted once per selection change of a parent.
type InnerStateChangedEvent struct {
	EventBase
	ParentID NodeID `json:"parent_id"`
	Previous NodeID `json:"previous,omitempty"`
	Current  NodeID `json:"current,omitempty"`
}

// TransitionEvent reports an invoked transition and whether it changed anything.
type TransitionEvent struct {
	EventBase
	StateID     NodeID         `json:"state_id"`
	Transition  string         `json:"transition"`
	Type        TransitionType `json:"transition_type"`
	Destination NodeID         `json:"destination,omitempty"`
	Applied     bool           `json:"applied"`
}

// EffectErrorEvent reports a failing effect. The selection change that
// triggered it has already completed.
type EffectErrorEvent struct {
	EventBase
	StateID NodeID `json:"state_id"`
	Effect  string `json:"effect"`
	Error   string `json:"error"`
	Err     error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStateEnter        func(context.Context, *StateEvent)
	OnStateExit         func(context.Context, *StateEvent)
	OnInnerStateChanged func(context.Context, *InnerStateChangedEvent)
	OnTransition        func(context.Context, *TransitionEvent)
	OnEffectError       func(context.Context, *EffectErrorEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateEnter:        chain(h.OnStateEnter, other.OnStateEnter),
		OnStateExit:         chain(h.OnStateExit, other.OnStateExit),
		OnInnerStateChanged: chain(h.OnInnerStateChanged, other.OnInnerStateChanged),
		OnTransition:        chain(h.OnTransition, other.OnTransition),
		OnEffectError:       chain(h.OnEffectError, other.OnEffectError),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
