package fsm_test

import (
	"context"
	"testing"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAsDefault_ReplacesInSingleMode(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")

	require.True(t, f.s("walk").SetAsDefault())
	assert.Equal(t, []domain.NodeID{"walk"}, ids(f.s("m").DefaultChildren()))
	assert.True(t, f.s("walk").IsDefaultState())
	assert.False(t, f.s("idle").IsDefaultState())
	assert.False(t, f.s("walk").SetAsDefault(), "already a default")
	assert.Equal(t, []domain.NodeID{"idle"}, ids(f.s("m").SelectedChildren()), "defaults do not change the selection")
	assert.Empty(t, f.log.entries)
}

func TestUnsetAsDefault_KeepsTheSoleRequiredDefault(t *testing.T) {
	f := newFixture(t, domain.SingleRequired, "idle", "walk")

	assert.False(t, f.s("idle").UnsetAsDefault())
	assert.False(t, f.s("walk").UnsetAsDefault(), "not a default")
	assert.False(t, f.s("m").SetAsDefault(), "roots have no parent scope")
	assert.Equal(t, []domain.NodeID{"idle"}, ids(f.s("m").DefaultChildren()))
}

func TestDefaults_MultipleMode(t *testing.T) {
	f := newFixture(t, domain.Multiple, "a", "b", "c")

	require.True(t, f.s("a").SetAsDefault())
	require.True(t, f.s("c").SetAsDefault())
	assert.Equal(t, []domain.NodeID{"a", "c"}, ids(f.s("m").DefaultChildren()))

	require.True(t, f.s("a").UnsetAsDefault())
	require.True(t, f.s("c").UnsetAsDefault())
	assert.Empty(t, f.s("m").DefaultChildren())
}

func TestAwake_SelectsAllDefaultsInMultipleMode(t *testing.T) {
	f := newFixture(t, domain.Multiple, "a", "b", "c")
	require.True(t, f.s("a").SetAsDefault())
	require.True(t, f.s("c").SetAsDefault())

	f.tree.Awake(context.Background())

	assert.Equal(t, []domain.NodeID{"a", "c"}, ids(f.s("m").SelectedChildren()))
	assert.Equal(t, []string{"enter:a<--", "enter:c<--"}, f.log.entries)
}

func TestSetSelectionMode(t *testing.T) {
	f := newFixture(t, domain.Multiple, "a", "b", "c")
	ctx := context.Background()
	m := f.s("m")
	require.True(t, f.s("b").SelectState(ctx))
	require.True(t, f.s("c").SelectState(ctx))
	f.log.reset()

	t.Run("unchanged or invalid mode is refused", func(t *testing.T) {
		assert.False(t, m.SetSelectionMode(domain.Multiple))
		assert.False(t, m.SetSelectionMode(domain.SelectionMode(42)))
	})

	t.Run("narrowing repairs defaults and selection silently", func(t *testing.T) {
		require.True(t, m.SetSelectionMode(domain.SingleRequired))
		assert.Equal(t, domain.SingleRequired, m.Mode())
		assert.Equal(t, []domain.NodeID{"a"}, ids(m.DefaultChildren()))
		assert.Equal(t, []domain.NodeID{"b"}, ids(m.SelectedChildren()))
		assert.Empty(t, f.log.entries)
		require.NoError(t, m.CheckInvariants())
	})

	t.Run("locked while playing", func(t *testing.T) {
		f.tree.Awake(ctx)
		defer f.tree.Stop()
		assert.True(t, f.tree.Playing())
		assert.False(t, m.SetSelectionMode(domain.SingleOptional))
		assert.Equal(t, domain.SingleRequired, m.Mode())
	})

	t.Run("unlocked after stop", func(t *testing.T) {
		assert.False(t, f.tree.Playing())
		assert.True(t, m.SetSelectionMode(domain.SingleOptional))
	})
}
