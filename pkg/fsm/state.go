package fsm

import (
	"context"
	"slices"
	"time"

	"github.com/aretw0/playbox/pkg/domain"
)

// State is a node of the hierarchy and the state machine over its direct children.
type State struct {
	tree  *Tree
	id    domain.NodeID
	color domain.Color
	mode  domain.SelectionMode

	// parent is a handle resolved through the tree, never an owning pointer.
	parent   domain.NodeID
	children []*State
	selected []*State
	defaults []*State

	effects     []Effect
	transitions []Transition

	enteredAt time.Duration

	entered      handlerList[func(previous *State)]
	exited       handlerList[func(next *State)]
	innerChanged handlerList[func(previous, current *State)]
}

// ID returns the handle of the host node carrying the state.
func (s *State) ID() domain.NodeID { return s.id }

// Name returns the host node display name.
func (s *State) Name() string { return s.tree.host.Name(s.id) }

// Tree returns the arena owning the state.
func (s *State) Tree() *Tree { return s.tree }

// Color returns the display color.
func (s *State) Color() domain.Color { return s.color }

// SetColor sets the display color.
func (s *State) SetColor(c domain.Color) { s.color = c }

// Mode returns the selection policy over the direct children.
func (s *State) Mode() domain.SelectionMode { return s.mode }

// EnteredAt returns the scene time of the last enter event.
func (s *State) EnteredAt() time.Duration { return s.enteredAt }

// Parent returns the parent state, or nil for a root.
func (s *State) Parent() *State {
	if s.parent.IsZero() {
		return nil
	}
	return s.tree.states[s.parent]
}

// Children returns the active child states in host order.
func (s *State) Children() []*State { return slices.Clone(s.children) }

// HasChildren reports whether the state has any active child state.
func (s *State) HasChildren() bool { return len(s.children) > 0 }

// SelectedChildren returns the selected children in selection order.
func (s *State) SelectedChildren() []*State { return slices.Clone(s.selected) }

// DefaultChildren returns the default children.
func (s *State) DefaultChildren() []*State { return slices.Clone(s.defaults) }

// SelectableChildren returns the children whose whole ancestry is selected.
func (s *State) SelectableChildren() []*State {
	var out []*State
	for _, c := range s.children {
		if c.IsSelectableState() {
			out = append(out, c)
		}
	}
	return out
}

// Effects returns the effects found on the node at the last refresh.
func (s *State) Effects() []Effect { return slices.Clone(s.effects) }

// Transitions returns the transitions found on the node at the last refresh.
func (s *State) Transitions() []Transition { return slices.Clone(s.transitions) }

// IsSelectedState reports whether the state is selected in its parent's scope.
// Roots are always selected.
func (s *State) IsSelectedState() bool {
	p := s.Parent()
	return p == nil || p.isSelected(s)
}

// IsSelectableState reports whether every ancestor is selected and selectable.
func (s *State) IsSelectableState() bool {
	p := s.Parent()
	return p == nil || (p.isSelected(s) && p.IsSelectableState())
}

// IsDefaultState reports whether the state is a default of its parent.
// Roots are always default.
func (s *State) IsDefaultState() bool {
	p := s.Parent()
	return p == nil || slices.Contains(p.defaults, s)
}

// OnEntered subscribes to the enter event. The handler receives the state
// that was replaced, or nil. The returned func unsubscribes.
func (s *State) OnEntered(fn func(previous *State)) func() {
	return s.entered.add(fn)
}

// OnExited subscribes to the exit event. The handler receives the state
// that replaces this one, or nil. The returned func unsubscribes.
func (s *State) OnExited(fn func(next *State)) func() {
	return s.exited.add(fn)
}

// OnInnerStateChanged subscribes to selection changes among the children.
func (s *State) OnInnerStateChanged(fn func(previous, current *State)) func() {
	return s.innerChanged.add(fn)
}

// UpdateState re-derives parent, children, defaults, selection and the
// capability lists from the host. It is idempotent and fires no events.
func (s *State) UpdateState() {
	s.findParent()
	s.findChildren()
	s.fixDefaults()
	s.fixSelected()
	s.scanComponents()
}

func (s *State) findParent() {
	host := s.tree.host
	p, ok := host.Parent(s.id)
	if !ok || !host.ActiveInHierarchy(p) {
		s.parent = ""
		return
	}
	if _, isState := s.tree.states[p]; !isState {
		s.parent = ""
		return
	}
	s.parent = p
}

func (s *State) findChildren() {
	host := s.tree.host
	var children []*State
	for _, c := range host.Children(s.id) {
		if !host.ActiveInHierarchy(c) {
			continue
		}
		if child, ok := s.tree.states[c]; ok {
			children = append(children, child)
		}
	}
	s.children = children
}

func (s *State) scanComponents() {
	s.effects, s.transitions = nil, nil
	for _, c := range s.tree.host.Components(s.id) {
		if e, ok := c.(Effect); ok {
			s.effects = append(s.effects, e)
		}
		if tr, ok := c.(Transition); ok {
			tr.Base().attach(s, tr)
			s.transitions = append(s.transitions, tr)
		}
	}
}

// awake resets the selection to the defaults without events, then runs the
// children's initialization effects: not selected children first, selected
// children second. Selected children that are selectable are then notified
// as entered. It recurses pre-order.
func (s *State) awake(ctx context.Context) {
	s.selected = slices.Clone(s.defaults)

	for _, c := range s.children {
		if !s.isSelected(c) {
			c.invokeEffectsOnAwake(ctx, false)
		}
	}
	for _, c := range s.children {
		if s.isSelected(c) {
			c.invokeEffectsOnAwake(ctx, !s.tree.legacyAwake)
		}
	}
	for _, c := range slices.Clone(s.selected) {
		if c.IsSelectableState() {
			c.notifyEntered(ctx, nil)
		}
	}

	for _, c := range s.children {
		c.awake(ctx)
	}
}

func (s *State) isSelected(c *State) bool {
	return slices.Contains(s.selected, c)
}

func (s *State) isChild(c *State) bool {
	return c != nil && slices.Contains(s.children, c)
}
