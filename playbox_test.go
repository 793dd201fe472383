package playbox_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/playbox"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doorScene = `
nodes:
  - id: door
    state: {}
    children:
      - id: closed
        state: {default: true}
        components:
          - {kind: signal, signal: open, type: exit, to: opened}
      - id: opened
        state: {}
        components:
          - {kind: call, function: multiply, args: {a: 2, b: 3}}
`

func selected(eng *playbox.Engine) []domain.NodeID {
	var out []domain.NodeID
	for _, v := range eng.Inspect() {
		if v.Parent != "" && v.Selected {
			out = append(out, v.ID)
		}
	}
	return out
}

func TestNew_LoadsFileAndNamesEngine(t *testing.T) {
	eng, err := playbox.New("pkg/scene/testdata/guard.yaml")
	require.NoError(t, err)
	assert.Equal(t, "guard", eng.Name)

	eng, err = playbox.New("pkg/scene/testdata/tiny.json")
	require.NoError(t, err)
	assert.NotEmpty(t, eng.Name)

	_, err = playbox.New("does/not/exist.yaml")
	assert.Error(t, err)
}

func TestEngine_DefaultRegistryHasBuiltins(t *testing.T) {
	eng, err := playbox.FromYAML([]byte(doorScene))
	require.NoError(t, err)

	ctx := context.Background()
	eng.Awake(ctx)
	require.NoError(t, eng.Signal(ctx, "open"))
	assert.Equal(t, []domain.NodeID{"opened"}, selected(eng))
}

func TestEngine_Inspect(t *testing.T) {
	eng, err := playbox.FromYAML([]byte(doorScene))
	require.NoError(t, err)
	eng.Awake(context.Background())

	views := eng.Inspect()
	require.Len(t, views, 3)

	root := views[0]
	assert.Equal(t, domain.NodeID("door"), root.ID)
	assert.Equal(t, "single_required", root.Mode)
	assert.Equal(t, []domain.NodeID{"closed", "opened"}, root.Children)

	assert.True(t, views[1].Default)
	assert.True(t, views[1].Selectable)
	assert.False(t, views[2].Selected)
}

func TestEngine_SignalQueuedWhileRunning(t *testing.T) {
	eng, err := playbox.FromYAML([]byte(doorScene))
	require.NoError(t, err)

	ctx := context.Background()
	var beforeNextTick []domain.NodeID
	tick := 0
	_, err = eng.Run(ctx,
		runner.WithMaxTicks(3),
		runner.WithOnTick(func(domain.Frame) {
			tick++
			if tick == 1 {
				assert.NoError(t, eng.Signal(ctx, "open"))
				beforeNextTick = selected(eng)
			}
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []domain.NodeID{"closed"}, beforeNextTick)
	assert.Equal(t, []domain.NodeID{"opened"}, selected(eng))
}

func TestEngine_RunTwiceConcurrently(t *testing.T) {
	eng, err := playbox.FromYAML([]byte(doorScene))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var nested error
	_, err = eng.Run(ctx,
		runner.WithMaxTicks(1),
		runner.WithOnTick(func(domain.Frame) {
			_, nested = eng.Run(ctx)
		}),
	)
	require.NoError(t, err)
	require.Error(t, nested)
	assert.Contains(t, nested.Error(), "already running")
}

func TestEngine_WithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	eng, err := playbox.FromYAML([]byte(doorScene), playbox.WithMetrics(reg))
	require.NoError(t, err)

	ctx := context.Background()
	eng.Awake(ctx)
	require.NoError(t, eng.Signal(ctx, "open"))

	count, err := testutil.GatherAndCount(reg, "playbox_state_enter_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = playbox.FromYAML([]byte(doorScene), playbox.WithMetrics(reg))
	assert.Error(t, err, "collectors registered twice")
}

func TestEngine_Graph(t *testing.T) {
	eng, err := playbox.FromYAML([]byte(doorScene))
	require.NoError(t, err)
	eng.Awake(context.Background())

	g := eng.Graph()
	assert.True(t, strings.HasPrefix(g, "graph TD\n"))
	assert.Contains(t, g, "closed")
	assert.Contains(t, g, "class closed selected")
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(playbox.Version))
}
