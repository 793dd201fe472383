package fsm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/playbox/pkg/domain"
)

// InvariantError describes a broken selection invariant on one state.
type InvariantError struct {
	StateID domain.NodeID
	Reason  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("state %s: %s", e.StateID, e.Reason)
}

// CheckInvariants verifies the selection invariants of the state's own scope.
func (s *State) CheckInvariants() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, &InvariantError{StateID: s.id, Reason: fmt.Sprintf(format, args...)})
	}

	for _, c := range s.selected {
		if !s.isChild(c) {
			fail("selected %s is not a child", c.id)
		}
	}
	for _, c := range s.defaults {
		if !s.isChild(c) {
			fail("default %s is not a child", c.id)
		}
	}
	if hasDuplicates(s.selected) {
		fail("selection contains duplicates")
	}
	if hasDuplicates(s.defaults) {
		fail("defaults contain duplicates")
	}
	if s.mode.IsSingle() {
		if len(s.selected) > 1 {
			fail("%d selected children in %s mode", len(s.selected), s.mode)
		}
		if len(s.defaults) > 1 {
			fail("%d default children in %s mode", len(s.defaults), s.mode)
		}
	}
	if s.mode == domain.SingleRequired && len(s.children) > 0 {
		if len(s.defaults) != 1 {
			fail("%d default children, want exactly 1", len(s.defaults))
		}
		if len(s.selected) == 0 {
			fail("no selected child")
		}
	}
	return errors.Join(errs...)
}

// CheckInvariants verifies every state of the tree.
func (t *Tree) CheckInvariants() error {
	var errs []error
	for _, s := range t.States() {
		if err := s.CheckInvariants(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func hasDuplicates(list []*State) bool {
	for i, s := range list {
		if slices.Contains(list[i+1:], s) {
			return true
		}
	}
	return false
}
