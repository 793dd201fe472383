package validator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/effects"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/scene"
	"github.com/aretw0/playbox/pkg/transitions"
)

// Severity grades an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding about a built scene.
type Issue struct {
	Severity Severity
	StateID  domain.NodeID
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.StateID, i.Message)
}

// ValidateScene inspects the active hierarchy of a built scene: selection
// invariants, transition destinations, activate subjects, emitted signals
// nobody listens to or that loop back through emit effects, and states no
// default or transition can ever select.
func ValidateScene(sc *scene.Scene) []Issue {
	var issues []Issue
	add := func(sev Severity, id domain.NodeID, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, StateID: id, Message: fmt.Sprintf(format, args...)})
	}

	tree := sc.Tree
	for _, err := range unwrap(tree.CheckInvariants()) {
		var inv *fsm.InvariantError
		if errors.As(err, &inv) {
			add(SeverityError, inv.StateID, "%s", inv.Reason)
		}
	}

	// Selectability per state: a default, an enter transition of its own,
	// or an exit transition of a sibling pointing at it.
	reachable := make(map[domain.NodeID]bool)
	emitted := make(map[string]domain.NodeID)
	listened := make(map[string]bool)
	// Signal flow: a signal selects some states, whose enter effects emit
	// further signals.
	selects := make(map[string][]domain.NodeID)
	emitsOnEnter := make(map[domain.NodeID][]string)

	tree.Walk(func(s *fsm.State, _ int) bool {
		if s.Parent() == nil || s.IsDefaultState() {
			reachable[s.ID()] = true
		}

		for _, tr := range s.Transitions() {
			if sig, ok := tr.(*transitions.Signal); ok {
				listened[sig.Name] = true
				if target := selectedBy(s, sig); target != "" {
					selects[sig.Name] = append(selects[sig.Name], target)
				}
			}
			checkTransition(s, tr, reachable, add)
		}

		for _, e := range s.Effects() {
			switch e := e.(type) {
			case *effects.Activate:
				for _, subject := range e.Subjects {
					if !sc.Host.Has(subject) {
						add(SeverityError, s.ID(), "activate subject %s does not exist", subject)
					}
				}
			case *effects.Emit:
				if _, seen := emitted[e.Signal]; !seen {
					emitted[e.Signal] = s.ID()
				}
				if !e.Disabled && e.When.OnEnter() {
					emitsOnEnter[s.ID()] = append(emitsOnEnter[s.ID()], e.Signal)
				}
			}
		}
		return true
	})

	tree.Walk(func(s *fsm.State, _ int) bool {
		if !reachable[s.ID()] {
			add(SeverityWarning, s.ID(), "state can never be selected")
		}
		return true
	})

	for _, name := range slices.Sorted(maps.Keys(emitted)) {
		if !listened[name] {
			add(SeverityWarning, emitted[name], "signal %q has no listener", name)
		}
		if raisesItself(name, selects, emitsOnEnter) {
			add(SeverityWarning, emitted[name], "signal %q raises itself again through emit effects", name)
		}
	}
	return issues
}

// selectedBy returns the state a signal transition selects, or "" when it
// only deselects.
func selectedBy(s *fsm.State, sig *transitions.Signal) domain.NodeID {
	if sig.Disabled || s.Parent() == nil {
		return ""
	}
	if sig.Type == domain.EnterToThisState {
		return s.ID()
	}
	return sig.Destination
}

// raisesItself reports whether raising name can lead back to name.
func raisesItself(name string, selects map[string][]domain.NodeID, emitsOnEnter map[domain.NodeID][]string) bool {
	seen := make(map[string]bool)
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, target := range selects[current] {
			for _, next := range emitsOnEnter[target] {
				if next == name {
					return true
				}
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return false
}

func checkTransition(s *fsm.State, tr fsm.Transition, reachable map[domain.NodeID]bool, add func(Severity, domain.NodeID, string, ...any)) {
	b := tr.Base()
	if b.Disabled {
		return
	}
	parent := s.Parent()
	if parent == nil {
		add(SeverityWarning, s.ID(), "transition on a root state never applies")
		return
	}

	switch b.Type {
	case domain.EnterToThisState:
		reachable[s.ID()] = true
	case domain.ExitFromThisState:
		if b.Destination.IsZero() {
			if parent.Mode() == domain.SingleRequired && s.IsDefaultState() {
				add(SeverityWarning, s.ID(), "exit without destination re-enters the default state")
			}
			return
		}
		dest, ok := s.Tree().State(b.Destination)
		if !ok {
			add(SeverityError, s.ID(), "transition destination %s is not a state", b.Destination)
			return
		}
		if dest.Parent() != parent {
			add(SeverityError, s.ID(), "transition destination %s is not a sibling", b.Destination)
			return
		}
		if dest == s {
			add(SeverityWarning, s.ID(), "transition destination is the state itself")
			return
		}
		reachable[dest.ID()] = true
	}
}

// Err folds the error-level issues into one error, nil when there are none.
func Err(issues []Issue) error {
	var lines []string
	for _, i := range issues {
		if i.Severity == SeverityError {
			lines = append(lines, fmt.Sprintf("%s: %s", i.StateID, i.Message))
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(lines), strings.Join(lines, "\n- "))
}

func unwrap(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, unwrap(e)...)
		}
		return out
	}
	return []error{err}
}

