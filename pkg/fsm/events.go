package fsm

import (
	"context"
	"slices"

	"github.com/aretw0/playbox/pkg/domain"
)

// invokeEnter records the enter time, notifies subscribers and observers,
// then runs the enter effects.
func (s *State) invokeEnter(ctx context.Context, previous *State) {
	s.notifyEntered(ctx, previous)
	for _, e := range slices.Clone(s.effects) {
		s.tree.onStateEnter(ctx, e, s)
	}
}

// invokeExit notifies subscribers and observers, then runs the exit effects.
func (s *State) invokeExit(ctx context.Context, next *State) {
	t := s.tree
	t.logger.DebugContext(ctx, "state exited", "state_id", s.id, "next", idOf(next))
	if t.hooks.OnStateExit != nil {
		t.hooks.OnStateExit(ctx, &domain.StateEvent{
			EventBase: s.eventBase(domain.EventStateExit),
			StateID:   s.id,
			ParentID:  s.parent,
			Other:     idOf(next),
		})
	}

	for _, h := range s.exited.snapshot() {
		h(next)
	}
	for _, tr := range slices.Clone(s.transitions) {
		if o, ok := tr.(StateObserver); ok {
			o.StateExited(next)
		}
	}
	for _, e := range slices.Clone(s.effects) {
		t.onStateExit(ctx, e, s)
	}
}

// notifyEntered is the enter event without effects. The initialization pass
// uses it for the initially selected states, whose effects already ran.
func (s *State) notifyEntered(ctx context.Context, previous *State) {
	t := s.tree
	s.enteredAt = t.now
	t.logger.DebugContext(ctx, "state entered", "state_id", s.id, "previous", idOf(previous))
	if t.hooks.OnStateEnter != nil {
		t.hooks.OnStateEnter(ctx, &domain.StateEvent{
			EventBase: s.eventBase(domain.EventStateEnter),
			StateID:   s.id,
			ParentID:  s.parent,
			Other:     idOf(previous),
		})
	}

	for _, h := range s.entered.snapshot() {
		h(previous)
	}
	for _, tr := range slices.Clone(s.transitions) {
		if o, ok := tr.(StateObserver); ok {
			o.StateEntered(previous)
		}
	}
}

func (s *State) emitInnerStateChanged(ctx context.Context, previous, current *State) {
	t := s.tree
	if t.hooks.OnInnerStateChanged != nil {
		t.hooks.OnInnerStateChanged(ctx, &domain.InnerStateChangedEvent{
			EventBase: s.eventBase(domain.EventInnerStateChanged),
			ParentID:  s.id,
			Previous:  idOf(previous),
			Current:   idOf(current),
		})
	}
	for _, h := range s.innerChanged.snapshot() {
		h(previous, current)
	}
}

func (s *State) invokeEffectsOnAwake(ctx context.Context, selected bool) {
	for _, e := range slices.Clone(s.effects) {
		s.tree.invokeEffectOnAwake(ctx, e, s, selected)
	}
}

func (s *State) eventBase(typ domain.EventType) domain.EventBase {
	base := s.tree.base()
	base.Type = typ
	return base
}

func idOf(s *State) domain.NodeID {
	if s == nil {
		return ""
	}
	return s.id
}
