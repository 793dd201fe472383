package fsm_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/playbox/pkg/adapters/memory"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttach(t *testing.T) {
	scene := memory.NewScene()
	scene.MustInstantiate("", "root", "Root")
	tree := fsm.NewTree(scene)

	_, err := tree.Attach("missing", domain.SingleRequired)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	_, err = tree.Attach("root", domain.SelectionMode(7))
	assert.Error(t, err)

	s, err := tree.Attach("root", domain.Multiple)
	require.NoError(t, err)
	assert.Equal(t, "Root", s.Name())
	assert.Same(t, tree, s.Tree())

	_, err = tree.Attach("root", domain.Multiple)
	assert.Error(t, err, "a node carries at most one state")
}

func TestCreateState(t *testing.T) {
	f := newFixture(t, domain.SingleRequired)

	assert.Empty(t, f.s("m").Children())
	jump, err := f.tree.CreateState("m", "jump", "Jump", domain.SingleRequired)
	require.NoError(t, err)

	assert.Equal(t, []domain.NodeID{"jump"}, ids(f.s("m").Children()))
	assert.Equal(t, []domain.NodeID{"jump"}, ids(f.s("m").DefaultChildren()))
	assert.Same(t, f.s("m"), jump.Parent())

	_, err = f.tree.CreateState("nowhere", "", "", domain.SingleRequired)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestRefresh_IsIdempotent(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")
	require.True(t, f.s("walk").SelectState(context.Background()))
	f.log.reset()

	before := ids(f.s("m").SelectedChildren())
	f.tree.Refresh()
	f.tree.Refresh()

	assert.Equal(t, before, ids(f.s("m").SelectedChildren()))
	assert.Equal(t, []domain.NodeID{"idle"}, ids(f.s("m").DefaultChildren()))
	assert.Empty(t, f.log.entries)
}

func TestRefresh_SkipsInactiveChildren(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk", "run")
	require.True(t, f.s("walk").SelectState(context.Background()))
	f.log.reset()

	require.NoError(t, f.scene.SetActive("walk", false))
	f.tree.Refresh()

	m := f.s("m")
	assert.Equal(t, []domain.NodeID{"idle", "run"}, ids(m.Children()))
	assert.Equal(t, []domain.NodeID{"idle"}, ids(m.SelectedChildren()), "falls back silently")
	assert.Empty(t, f.log.entries)

	require.NoError(t, f.scene.SetActive("idle", false))
	f.tree.Refresh()
	assert.Equal(t, []domain.NodeID{"run"}, ids(m.DefaultChildren()))
	assert.Equal(t, []domain.NodeID{"run"}, ids(m.SelectedChildren()))
}

func TestRoots_AndWalk(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "ground", "air")
	f.addState(t, "ground", "idle", domain.SingleRequired)
	f.scene.MustInstantiate("", "other", "Other")
	_, err := f.tree.Attach("other", domain.Multiple)
	require.NoError(t, err)
	f.tree.Refresh()

	assert.Equal(t, []domain.NodeID{"m", "other"}, ids(f.tree.Roots()))

	var visited []string
	f.tree.Walk(func(s *fsm.State, depth int) bool {
		visited = append(visited, fmt.Sprintf("%s:%d", s.ID(), depth))
		return s.ID() != "air"
	})
	assert.Equal(t, []string{"m:0", "ground:1", "idle:2", "air:1", "other:0"}, visited)
}

func TestAwake_RunsInitializationInTwoPasses(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")
	for _, name := range []string{"idle", "walk"} {
		e := f.effect(t, name, name, domain.OnEnter)
		e.InvokeOnAwake = true
	}
	f.effect(t, "walk", "plain", domain.OnEnterAndExit)

	f.tree.Awake(context.Background())

	assert.Equal(t, []string{
		"walk:walk:exit",
		"idle:idle:enter",
		"enter:idle<--",
	}, f.log.entries)
	assert.Equal(t, []domain.NodeID{"idle"}, ids(f.s("m").SelectedChildren()))
}

func TestAwake_LegacyReportsEverythingUnselected(t *testing.T) {
	f := newFixtureWith(t, []fsm.Option{fsm.WithLegacyAwake()}, domain.SingleRequired, "idle", "walk")
	e := f.effect(t, "idle", "idle", domain.OnEnter)
	e.InvokeOnAwake = true

	f.tree.Awake(context.Background())

	assert.Equal(t, []string{"idle:idle:exit", "enter:idle<--"}, f.log.entries)
}

func TestAwake_ResetsSelectionRecursively(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "ground", "air")
	f.addState(t, "air", "jump", domain.SingleRequired)
	f.addState(t, "air", "fall", domain.SingleRequired)
	f.tree.Refresh()
	ctx := context.Background()
	require.True(t, f.s("air").SelectState(ctx))
	require.True(t, f.s("fall").SelectState(ctx))
	f.log.reset()

	f.tree.Awake(ctx)

	assert.Equal(t, []domain.NodeID{"ground"}, ids(f.s("m").SelectedChildren()))
	assert.Equal(t, []domain.NodeID{"jump"}, ids(f.s("air").SelectedChildren()))
	assert.Equal(t, []string{"enter:ground<--"}, f.log.entries, "jump sits in an unselected branch")
}

func TestAwake_LeavesUnselectedBranchesDormant(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")
	f.addState(t, "walk", "w1", domain.SingleRequired)
	f.addState(t, "walk", "w2", domain.SingleRequired)
	tr := &delayedExit{
		TransitionBase: fsm.TransitionBase{Type: domain.ExitFromThisState, Destination: "w2"},
		delay:          time.Second,
	}
	require.NoError(t, f.scene.AddComponent("w1", tr))
	f.tree.Refresh()
	ctx := context.Background()

	f.tree.Awake(ctx)
	assert.False(t, f.s("w1").IsSelectableState())
	assert.False(t, tr.armed)

	f.tree.Tick(ctx, domain.Frame{Time: 2 * time.Second})
	assert.Equal(t, []domain.NodeID{"w1"}, ids(f.s("walk").SelectedChildren()))
	assert.Equal(t, []string{"enter:idle<--"}, f.log.entries)
}

func TestDestroy_ExitsSubtreeAndEntersFallback(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")
	f.addState(t, "walk", "inner", domain.SingleRequired)
	f.tree.Refresh()
	ctx := context.Background()
	require.True(t, f.s("walk").SelectState(ctx))
	f.log.reset()

	require.NoError(t, f.tree.Destroy(ctx, "walk"))

	assert.Equal(t, []string{
		"exit:inner->-",
		"exit:walk->-",
		"changed:walk->-",
		"enter:idle<--",
		"changed:-->idle",
	}, f.log.entries)
	_, ok := f.tree.State("walk")
	assert.False(t, ok)
	_, ok = f.tree.State("inner")
	assert.False(t, ok)
	assert.Equal(t, []domain.NodeID{"idle"}, ids(f.s("m").Children()))
	require.NoError(t, f.tree.CheckInvariants())
}

func TestDestroy_SelectedDefaultPromotesNextChild(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")
	ctx := context.Background()

	require.NoError(t, f.tree.Destroy(ctx, "idle"))

	assert.Equal(t, []string{
		"exit:idle->-",
		"changed:idle->-",
		"enter:walk<--",
		"changed:-->walk",
	}, f.log.entries)
	assert.Equal(t, []domain.NodeID{"walk"}, ids(f.s("m").DefaultChildren()))
	assert.Equal(t, []domain.NodeID{"walk"}, ids(f.s("m").SelectedChildren()))
}

func TestDestroy_UnselectedIsSilent(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")

	require.NoError(t, f.tree.Destroy(context.Background(), "walk"))
	assert.Empty(t, f.log.entries)
	assert.ErrorIs(t, f.tree.Destroy(context.Background(), "walk"), domain.ErrNodeNotFound)
}

func TestDestroy_RootExitsOnlyItsSelectedDescendants(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")
	f.tree.Awake(context.Background())
	f.log.reset()

	require.NoError(t, f.tree.Destroy(context.Background(), "m"))

	assert.Equal(t, []string{"exit:idle->-"}, f.log.entries)
	assert.Empty(t, f.tree.Roots())
}

func TestDestroy_PlainNodeWithStatesBelow(t *testing.T) {
	f := newFixture(t, domain.SingleRequired)
	f.scene.MustInstantiate("m", "group", "Group")
	f.addState(t, "group", "idle", domain.SingleRequired)
	f.tree.Refresh()

	// idle sits under a plain node, so it is its own root.
	assert.Nil(t, f.s("idle").Parent())
	require.NoError(t, f.tree.Destroy(context.Background(), "group"))
	_, ok := f.tree.State("idle")
	assert.False(t, ok)
	assert.Empty(t, f.log.entries)
}

func TestTick_AdvancesTimeAndPollsTickers(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")
	tk := &countingTicker{}
	require.NoError(t, f.scene.AddComponent("walk", tk))
	f.tree.Awake(context.Background())

	f.tree.Tick(context.Background(), domain.Frame{Time: 1500 * time.Millisecond, Delta: 16 * time.Millisecond})
	assert.Equal(t, 1, tk.ticks)
	assert.Equal(t, f.tree.Now(), tk.last.Time)

	require.NoError(t, f.scene.SetActive("walk", false))
	f.tree.Refresh()
	f.tree.Tick(context.Background(), domain.Frame{Time: 1600 * time.Millisecond})
	assert.Equal(t, 1, tk.ticks, "inactive states are not polled")
}

func TestRaise_DeliversToSignalListeners(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk", "run")
	require.NoError(t, f.scene.AddComponent("walk", &signalTransition{
		TransitionBase: fsm.TransitionBase{Type: domain.EnterToThisState},
		name:           "go",
	}))
	require.NoError(t, f.scene.AddComponent("run", &signalTransition{
		TransitionBase: fsm.TransitionBase{Type: domain.EnterToThisState},
		name:           "sprint",
	}))
	f.tree.Awake(context.Background())
	f.log.reset()

	assert.Equal(t, 0, f.tree.Raise(context.Background(), "nothing"))
	assert.Equal(t, 1, f.tree.Raise(context.Background(), "go"))
	assert.Equal(t, []domain.NodeID{"walk"}, ids(f.s("m").SelectedChildren()))
	assert.Equal(t, 0, f.tree.Raise(context.Background(), "go"), "already selected")
}

func TestDispatchOverlap(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "alert")
	require.NoError(t, f.scene.AddComponent("alert", &overlapTransition{
		TransitionBase: fsm.TransitionBase{Type: domain.EnterToThisState},
		phase:          domain.OverlapBegin,
	}))
	f.tree.Awake(context.Background())

	ctx := context.Background()
	assert.False(t, f.tree.DispatchOverlap(ctx, "nobody", "player", domain.OverlapBegin, domain.TriggerOverlap))
	assert.False(t, f.tree.DispatchOverlap(ctx, "alert", "player", domain.OverlapEnd, domain.TriggerOverlap))
	assert.True(t, f.tree.DispatchOverlap(ctx, "alert", "player", domain.OverlapBegin, domain.TriggerOverlap))
	assert.Equal(t, []domain.NodeID{"alert"}, ids(f.s("m").SelectedChildren()))
}

// delayedExit fires once delay has passed since its state was entered.
type delayedExit struct {
	fsm.TransitionBase
	delay   time.Duration
	armed   bool
	armedAt time.Duration
}

func (d *delayedExit) StateEntered(*fsm.State) {
	d.armed = true
	d.armedAt = d.State().EnteredAt()
}

func (d *delayedExit) StateExited(*fsm.State) { d.armed = false }

func (d *delayedExit) Tick(ctx context.Context, frame domain.Frame) {
	if d.armed && frame.Time-d.armedAt >= d.delay {
		d.armed = false
		d.InvokeTransition(ctx)
	}
}

type countingTicker struct {
	fsm.TransitionBase
	ticks int
	last  domain.Frame
}

func (c *countingTicker) Tick(_ context.Context, frame domain.Frame) {
	c.ticks++
	c.last = frame
}

type signalTransition struct {
	fsm.TransitionBase
	name string
}

func (s *signalTransition) Signal(ctx context.Context, name string) bool {
	if name != s.name {
		return false
	}
	return s.InvokeTransition(ctx)
}

type overlapTransition struct {
	fsm.TransitionBase
	phase domain.OverlapPhase
}

func (o *overlapTransition) Overlap(ctx context.Context, _ domain.NodeID, phase domain.OverlapPhase, _ domain.OverlapKind) bool {
	if phase != o.phase {
		return false
	}
	return o.InvokeTransition(ctx)
}
