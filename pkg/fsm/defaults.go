package fsm

import (
	"slices"

	"github.com/aretw0/playbox/pkg/domain"
)

// SetAsDefault makes this state a default of its parent.
func (s *State) SetAsDefault() bool {
	p := s.Parent()
	if p == nil {
		return false
	}
	return p.TryAddDefault(s)
}

// UnsetAsDefault removes this state from its parent's defaults.
func (s *State) UnsetAsDefault() bool {
	p := s.Parent()
	if p == nil {
		return false
	}
	return p.TryRemoveDefault(s)
}

// TryAddDefault adds a direct child to the defaults. Unless the mode is
// Multiple, it replaces the current default.
func (s *State) TryAddDefault(child *State) bool {
	if !s.isChild(child) || slices.Contains(s.defaults, child) {
		return false
	}
	if s.mode.IsSingle() {
		s.defaults = s.defaults[:0]
	}
	s.defaults = append(s.defaults, child)
	return true
}

// TryRemoveDefault removes a direct child from the defaults. In
// SingleRequired mode the sole default cannot be removed.
func (s *State) TryRemoveDefault(child *State) bool {
	if !s.isChild(child) || !slices.Contains(s.defaults, child) {
		return false
	}
	if s.mode == domain.SingleRequired && len(s.defaults) <= 1 {
		return false
	}
	s.defaults = slices.DeleteFunc(s.defaults, func(c *State) bool { return c == child })
	return true
}

// SetSelectionMode changes the policy and repairs defaults and selection
// without events. It is refused while the tree is playing.
func (s *State) SetSelectionMode(mode domain.SelectionMode) bool {
	if s.tree.playing || !mode.Valid() || mode == s.mode {
		return false
	}
	s.mode = mode
	s.fixDefaults()
	s.fixSelected()
	return true
}

// fixDefaults repairs the defaults without firing events.
func (s *State) fixDefaults() {
	s.defaults = slices.DeleteFunc(s.defaults, func(c *State) bool { return !s.isChild(c) })
	if s.mode.IsSingle() && len(s.defaults) > 1 {
		s.defaults = s.defaults[:1]
	}
	if s.mode == domain.SingleRequired && len(s.defaults) == 0 && len(s.children) > 0 {
		s.defaults = append(s.defaults, s.children[0])
	}
}
