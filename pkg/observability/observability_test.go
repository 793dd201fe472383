package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/playbox/pkg/adapters/memory"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failing struct {
	fsm.EffectSettings
}

func (failing) Kind() string { return "failing" }

func (failing) InvokeEffect(context.Context, bool, *fsm.State) error {
	return errors.New("nope")
}

type exitTransition struct {
	fsm.TransitionBase
}

func (exitTransition) Kind() string { return "manual" }

func machine(t *testing.T, hooks ...domain.LifecycleHooks) (*memory.Scene, *fsm.Tree) {
	t.Helper()
	scene := memory.NewScene()
	var opts []fsm.Option
	for _, h := range hooks {
		opts = append(opts, fsm.WithLifecycleHooks(h))
	}
	tree := fsm.NewTree(scene, opts...)
	scene.MustInstantiate("", "m", "M")
	_, err := tree.Attach("m", domain.SingleRequired)
	require.NoError(t, err)
	for _, id := range []domain.NodeID{"idle", "walk"} {
		scene.MustInstantiate("m", id, string(id))
		_, err := tree.Attach(id, domain.SingleRequired)
		require.NoError(t, err)
	}
	return scene, tree
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	scene, tree := machine(t, m.Hooks())
	require.NoError(t, scene.AddComponent("walk", &failing{}))
	tr := &exitTransition{TransitionBase: fsm.TransitionBase{Type: domain.ExitFromThisState, Destination: "idle"}}
	require.NoError(t, scene.AddComponent("walk", tr))
	ctx := context.Background()

	tree.Awake(ctx)
	require.True(t, tree.MustState("walk").SelectState(ctx))
	require.True(t, tr.InvokeTransition(ctx))
	require.False(t, tr.InvokeTransition(ctx))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Enters.WithLabelValues("idle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Enters.WithLabelValues("walk")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exits.WithLabelValues("walk")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selected.WithLabelValues("idle")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Selected.WithLabelValues("walk")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("walk", "manual", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("walk", "manual", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EffectFailures.WithLabelValues("walk", "failing")))

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err, "collectors register once per registry")
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	_, tree := machine(t, observability.LogHooks(logger))
	ctx := context.Background()

	tree.Awake(ctx)
	require.True(t, tree.MustState("walk").SelectState(ctx))

	out := buf.String()
	assert.Contains(t, out, "msg=state_enter state_id=idle")
	assert.Contains(t, out, "msg=state_exit state_id=idle next=walk")
	assert.Contains(t, out, "msg=inner_state_changed parent_id=m previous=idle current=walk")
}
