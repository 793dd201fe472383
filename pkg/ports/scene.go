package ports

import "github.com/aretw0/playbox/pkg/domain"

// SceneGraph is the structural query surface the engine consumes.
type SceneGraph interface {
	// Has reports whether the node exists.
	Has(id domain.NodeID) bool

	// Parent returns the structural parent of a node.
	// ok is false for root nodes and unknown ids.
	Parent(id domain.NodeID) (parent domain.NodeID, ok bool)

	// Children returns the direct children of a node in order,
	// including inactive ones. Unknown ids return nil.
	Children(id domain.NodeID) []domain.NodeID

	// ActiveInHierarchy reports whether the node and all of its ancestors are active.
	ActiveInHierarchy(id domain.NodeID) bool

	// Name returns the display name of a node.
	Name(id domain.NodeID) string

	// Components returns the capability providers co-located on a node, in
	// attachment order. The engine filters them by interface.
	Components(id domain.NodeID) []any
}

// SceneEditor is the structural mutation surface used by editor actions and
// by effects that toggle scene objects.
type SceneEditor interface {
	// Instantiate creates a new node under parent (empty parent = root).
	// An empty id asks the host to generate one.
	Instantiate(parent domain.NodeID, id domain.NodeID, name string) (domain.NodeID, error)

	// Destroy removes a node and its whole subtree.
	Destroy(id domain.NodeID) error

	// SetActive sets the node's own active flag.
	SetActive(id domain.NodeID, active bool) error

	// AddComponent attaches a capability provider to a node.
	AddComponent(id domain.NodeID, component any) error
}

// Scene is a host that supports both queries and mutations.
type Scene interface {
	SceneGraph
	SceneEditor
}
