package tests

import (
	"testing"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SceneContractTest is a reusable test suite that verifies if an adapter complies with ports.Scene.
// newScene must return an empty scene on every call.
func SceneContractTest(t *testing.T, newScene func() ports.Scene) {
	t.Helper()

	t.Run("Instantiate_Hierarchy", func(t *testing.T) {
		s := newScene()
		root, err := s.Instantiate("", "root", "Root")
		require.NoError(t, err)
		a, err := s.Instantiate(root, "a", "A")
		require.NoError(t, err)
		b, err := s.Instantiate(root, "b", "B")
		require.NoError(t, err)

		assert.Equal(t, []domain.NodeID{a, b}, s.Children(root), "children must keep creation order")

		parent, ok := s.Parent(a)
		assert.True(t, ok)
		assert.Equal(t, root, parent)

		_, ok = s.Parent(root)
		assert.False(t, ok, "root has no parent")
		assert.Equal(t, "A", s.Name(a))
		assert.True(t, s.Has(b))
		assert.False(t, s.Has("missing"))
	})

	t.Run("Instantiate_GeneratedID", func(t *testing.T) {
		s := newScene()
		id, err := s.Instantiate("", "", "Anonymous")
		require.NoError(t, err)
		assert.False(t, id.IsZero())
	})

	t.Run("Instantiate_UnknownParent", func(t *testing.T) {
		s := newScene()
		_, err := s.Instantiate("missing", "x", "X")
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})

	t.Run("ActiveInHierarchy", func(t *testing.T) {
		s := newScene()
		root, _ := s.Instantiate("", "root", "Root")
		child, _ := s.Instantiate(root, "child", "Child")

		assert.True(t, s.ActiveInHierarchy(child))
		require.NoError(t, s.SetActive(root, false))
		assert.False(t, s.ActiveInHierarchy(root))
		assert.False(t, s.ActiveInHierarchy(child), "inactive ancestor deactivates the subtree")

		require.NoError(t, s.SetActive(root, true))
		assert.True(t, s.ActiveInHierarchy(child))
	})

	t.Run("Destroy_Subtree", func(t *testing.T) {
		s := newScene()
		root, _ := s.Instantiate("", "root", "Root")
		child, _ := s.Instantiate(root, "child", "Child")
		grandchild, _ := s.Instantiate(child, "grandchild", "Grandchild")

		require.NoError(t, s.Destroy(child))
		assert.False(t, s.Has(child))
		assert.False(t, s.Has(grandchild))
		assert.Empty(t, s.Children(root))
		assert.Nil(t, s.Children(grandchild))
		assert.False(t, s.ActiveInHierarchy(grandchild))
		assert.ErrorIs(t, s.Destroy(child), domain.ErrNodeNotFound)
	})

	t.Run("Components", func(t *testing.T) {
		s := newScene()
		root, _ := s.Instantiate("", "root", "Root")
		require.NoError(t, s.AddComponent(root, "first"))
		require.NoError(t, s.AddComponent(root, 2))

		assert.Equal(t, []any{"first", 2}, s.Components(root))
		assert.ErrorIs(t, s.AddComponent("missing", 1), domain.ErrNodeNotFound)
	})
}
