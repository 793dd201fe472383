package fsm_test

import (
	"context"
	"testing"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// graphMock is a read-only host. It does not implement ports.SceneEditor.
type graphMock struct {
	mock.Mock
}

func (m *graphMock) Has(id domain.NodeID) bool {
	return m.Called(id).Bool(0)
}

func (m *graphMock) Parent(id domain.NodeID) (domain.NodeID, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.NodeID), args.Bool(1)
}

func (m *graphMock) Children(id domain.NodeID) []domain.NodeID {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.NodeID)
}

func (m *graphMock) ActiveInHierarchy(id domain.NodeID) bool {
	return m.Called(id).Bool(0)
}

func (m *graphMock) Name(id domain.NodeID) string {
	return m.Called(id).String(0)
}

func (m *graphMock) Components(id domain.NodeID) []any {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]any)
}

func newGraphMock() *graphMock {
	g := &graphMock{}
	for _, id := range []domain.NodeID{"root", "a", "b"} {
		g.On("Has", id).Return(true)
		g.On("ActiveInHierarchy", id).Return(true)
		g.On("Components", id).Return(nil)
	}
	g.On("Has", mock.Anything).Return(false)
	g.On("Parent", domain.NodeID("root")).Return(domain.NodeID(""), false)
	g.On("Parent", domain.NodeID("a")).Return(domain.NodeID("root"), true)
	g.On("Parent", domain.NodeID("b")).Return(domain.NodeID("root"), true)
	g.On("Children", domain.NodeID("root")).Return([]domain.NodeID{"a", "b"})
	g.On("Children", mock.Anything).Return(nil)
	return g
}

func TestTree_ReadOnlyHost(t *testing.T) {
	g := newGraphMock()
	tree := fsm.NewTree(g)
	for _, id := range []domain.NodeID{"root", "a", "b"} {
		_, err := tree.Attach(id, domain.SingleRequired)
		require.NoError(t, err)
	}
	tree.Awake(context.Background())

	root := tree.MustState("root")
	assert.Equal(t, []domain.NodeID{"a", "b"}, ids(root.Children()))
	assert.Equal(t, []domain.NodeID{"a"}, ids(root.SelectedChildren()))
	require.True(t, tree.MustState("b").SelectState(context.Background()))

	_, err := tree.CreateState("root", "c", "C", domain.SingleRequired)
	assert.ErrorIs(t, err, domain.ErrEditorUnavailable)
	assert.ErrorIs(t, tree.Destroy(context.Background(), "a"), domain.ErrEditorUnavailable)
	assert.Panics(t, func() { tree.MustState("missing") })

	g.AssertCalled(t, "Children", domain.NodeID("root"))
	g.AssertNotCalled(t, "Name", mock.Anything)
}
