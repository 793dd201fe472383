package fsm

import (
	"context"
	"slices"

	"github.com/aretw0/playbox/pkg/domain"
)

// SelectState asks the parent to select this state. Roots cannot be
// selected; an already selected state returns false without events.
func (s *State) SelectState(ctx context.Context) bool {
	p := s.Parent()
	if p == nil {
		return false
	}
	return p.TryAddSelectedState(ctx, s)
}

// DeselectState asks the parent to deselect this state.
func (s *State) DeselectState(ctx context.Context) bool {
	p := s.Parent()
	if p == nil {
		return false
	}
	return p.TryRemoveSelectState(ctx, s)
}

// TryAddSelectedState selects a direct child. Unless the mode is Multiple,
// every selected child is evicted first; each evicted child exits with the
// incoming child as its successor. The incoming child enters with the last
// evicted child as its predecessor.
func (s *State) TryAddSelectedState(ctx context.Context, child *State) bool {
	if !s.isChild(child) || s.isSelected(child) {
		return false
	}

	var evicted *State
	if s.mode.IsSingle() {
		for len(s.selected) > 0 {
			evicted = s.selected[0]
			s.selected = slices.Delete(s.selected, 0, 1)
			evicted.invokeExit(ctx, child)
		}
	}

	s.selected = append(s.selected, child)
	child.invokeEnter(ctx, evicted)
	s.emitInnerStateChanged(ctx, evicted, child)
	return true
}

// TryRemoveSelectState deselects a direct child. In SingleRequired mode an
// empty selection falls back to the defaults, which enter with no predecessor.
func (s *State) TryRemoveSelectState(ctx context.Context, child *State) bool {
	if !s.isChild(child) || !s.isSelected(child) {
		return false
	}

	s.selected = slices.DeleteFunc(s.selected, func(c *State) bool { return c == child })
	child.invokeExit(ctx, nil)
	s.emitInnerStateChanged(ctx, child, nil)

	if s.mode == domain.SingleRequired && len(s.selected) == 0 {
		s.selectDefaults(ctx)
	}
	return true
}

// TryChangeSelectedState swaps a selected child for an unselected sibling in
// one step: at no point is neither of them selected, and a single
// InnerStateChanged is emitted.
func (s *State) TryChangeSelectedState(ctx context.Context, oldChild, newChild *State) bool {
	if newChild == s || oldChild == nil || newChild == nil {
		return false
	}
	if !s.isSelected(oldChild) || s.isSelected(newChild) || !s.isChild(newChild) {
		return false
	}

	i := slices.Index(s.selected, oldChild)
	s.selected[i] = newChild

	oldChild.invokeExit(ctx, newChild)
	if !s.isSelected(newChild) {
		// An exit handler already changed the selection again.
		return true
	}
	s.emitInnerStateChanged(ctx, oldChild, newChild)
	newChild.invokeEnter(ctx, oldChild)
	return true
}

func (s *State) selectDefaults(ctx context.Context) {
	s.selected = slices.Clone(s.defaults)
	for _, d := range slices.Clone(s.selected) {
		d.invokeEnter(ctx, nil)
		s.emitInnerStateChanged(ctx, nil, d)
	}
}

// fixSelected repairs the selection without firing events.
func (s *State) fixSelected() {
	s.selected = slices.DeleteFunc(s.selected, func(c *State) bool { return !s.isChild(c) })
	if s.mode.IsSingle() && len(s.selected) > 1 {
		s.selected = s.selected[:1]
	}
	if s.mode == domain.SingleRequired && len(s.selected) == 0 {
		s.selected = slices.Clone(s.defaults)
	}
}

// exitSubtree fires exit events for every selected state below s, deepest
// first, and for s itself when selfSelected is set.
func (s *State) exitSubtree(ctx context.Context, selfSelected bool) {
	for _, c := range slices.Clone(s.selected) {
		c.exitSubtree(ctx, true)
	}
	if selfSelected {
		s.invokeExit(ctx, nil)
	}
}
