package fsm_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/playbox/pkg/adapters/memory"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/stretchr/testify/require"
)

// journal records events in order as short strings.
type journal struct {
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) reset() {
	j.entries = nil
}

// recordEffect appends "name:state:enter|exit" on every invocation.
type recordEffect struct {
	fsm.EffectSettings
	name string
	log  *journal
	err  error
	boom bool
}

func (e *recordEffect) InvokeEffect(_ context.Context, entering bool, s *fsm.State) error {
	edge := "exit"
	if entering {
		edge = "enter"
	}
	e.log.add("%s:%s:%s", e.name, s.ID(), edge)
	if e.boom {
		panic("boom")
	}
	return e.err
}

// manualTransition is a transition without a stimulus; tests fire it directly.
type manualTransition struct {
	fsm.TransitionBase
}

func (m *manualTransition) Fire(ctx context.Context) bool {
	return m.InvokeTransition(ctx)
}

func (f *fixture) transition(t *testing.T, state string, typ domain.TransitionType, dest string) *manualTransition {
	t.Helper()
	tr := &manualTransition{TransitionBase: fsm.TransitionBase{Type: typ, Destination: domain.NodeID(dest)}}
	require.NoError(t, f.scene.AddComponent(domain.NodeID(state), tr))
	return tr
}

type fixture struct {
	scene  *memory.Scene
	tree   *fsm.Tree
	log    *journal
	states map[string]*fsm.State
}

// newFixture builds a root machine "m" with the given children, subscribes
// the journal to every child's enter/exit events and refreshes the tree.
func newFixture(t *testing.T, mode domain.SelectionMode, children ...string) *fixture {
	t.Helper()
	return newFixtureWith(t, nil, mode, children...)
}

func newFixtureWith(t *testing.T, opts []fsm.Option, mode domain.SelectionMode, children ...string) *fixture {
	t.Helper()
	f := &fixture{
		scene:  memory.NewScene(),
		log:    &journal{},
		states: make(map[string]*fsm.State),
	}
	f.tree = fsm.NewTree(f.scene, opts...)

	f.scene.MustInstantiate("", "m", "M")
	m, err := f.tree.Attach("m", mode)
	require.NoError(t, err)
	f.states["m"] = m
	m.OnInnerStateChanged(func(previous, current *fsm.State) {
		f.log.add("changed:%s->%s", idOrDash(previous), idOrDash(current))
	})

	for _, name := range children {
		f.addState(t, "m", name, domain.SingleRequired)
	}
	f.tree.Refresh()
	return f
}

func (f *fixture) addState(t *testing.T, parent, name string, mode domain.SelectionMode) *fsm.State {
	t.Helper()
	f.scene.MustInstantiate(domain.NodeID(parent), domain.NodeID(name), name)
	s, err := f.tree.Attach(domain.NodeID(name), mode)
	require.NoError(t, err)
	s.OnEntered(func(previous *fsm.State) {
		f.log.add("enter:%s<-%s", s.ID(), idOrDash(previous))
	})
	s.OnExited(func(next *fsm.State) {
		f.log.add("exit:%s->%s", s.ID(), idOrDash(next))
	})
	f.states[name] = s
	return s
}

func (f *fixture) effect(t *testing.T, state, name string, when domain.EffectTrigger) *recordEffect {
	t.Helper()
	e := &recordEffect{
		EffectSettings: fsm.EffectSettings{When: when},
		name:           name,
		log:            f.log,
	}
	require.NoError(t, f.scene.AddComponent(domain.NodeID(state), e))
	return e
}

func (f *fixture) s(name string) *fsm.State {
	return f.states[name]
}

func ids(states []*fsm.State) []domain.NodeID {
	out := make([]domain.NodeID, 0, len(states))
	for _, s := range states {
		out = append(out, s.ID())
	}
	return out
}

func idOrDash(s *fsm.State) string {
	if s == nil {
		return "-"
	}
	return string(s.ID())
}

var errEffect = errors.New("effect failed")
