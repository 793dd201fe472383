package memory

import (
	"fmt"
	"slices"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/google/uuid"
)

type node struct {
	id         domain.NodeID
	name       string
	parent     domain.NodeID
	children   []domain.NodeID
	active     bool
	components []any
}

// Scene implements ports.Scene using an in-memory node tree.
// It is the reference host for tests, the CLI and the examples.
// Not safe for concurrent use; the engine is single-threaded.
type Scene struct {
	nodes map[domain.NodeID]*node
	roots []domain.NodeID
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		nodes: make(map[domain.NodeID]*node),
	}
}

// Instantiate creates a new active node under parent (empty parent = root).
// An empty id generates a random one.
func (s *Scene) Instantiate(parent domain.NodeID, id domain.NodeID, name string) (domain.NodeID, error) {
	if id.IsZero() {
		id = domain.NodeID(uuid.NewString())
	}
	if _, exists := s.nodes[id]; exists {
		return "", fmt.Errorf("node %s already exists", id)
	}

	n := &node{id: id, name: name, parent: parent, active: true}
	if name == "" {
		n.name = string(id)
	}

	if parent.IsZero() {
		s.roots = append(s.roots, id)
	} else {
		p, ok := s.nodes[parent]
		if !ok {
			return "", fmt.Errorf("parent %s: %w", parent, domain.ErrNodeNotFound)
		}
		p.children = append(p.children, id)
	}

	s.nodes[id] = n
	return id, nil
}

// MustInstantiate is Instantiate for fixtures; it panics on error.
func (s *Scene) MustInstantiate(parent domain.NodeID, id domain.NodeID, name string) domain.NodeID {
	created, err := s.Instantiate(parent, id, name)
	if err != nil {
		panic(err)
	}
	return created
}

// Destroy removes a node and its whole subtree.
func (s *Scene) Destroy(id domain.NodeID) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("destroy %s: %w", id, domain.ErrNodeNotFound)
	}

	if n.parent.IsZero() {
		s.roots = slices.DeleteFunc(s.roots, func(r domain.NodeID) bool { return r == id })
	} else if p, ok := s.nodes[n.parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(c domain.NodeID) bool { return c == id })
	}

	s.forget(n)
	return nil
}

func (s *Scene) forget(n *node) {
	for _, c := range n.children {
		if child, ok := s.nodes[c]; ok {
			s.forget(child)
		}
	}
	delete(s.nodes, n.id)
}

// Reparent moves a node under a new parent (empty = root), appending it last.
func (s *Scene) Reparent(id, parent domain.NodeID) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("reparent %s: %w", id, domain.ErrNodeNotFound)
	}
	if !parent.IsZero() {
		if _, ok := s.nodes[parent]; !ok {
			return fmt.Errorf("reparent to %s: %w", parent, domain.ErrNodeNotFound)
		}
		for cur := parent; !cur.IsZero(); cur = s.nodes[cur].parent {
			if cur == id {
				return fmt.Errorf("reparent %s under its own descendant %s", id, parent)
			}
		}
	}

	if n.parent.IsZero() {
		s.roots = slices.DeleteFunc(s.roots, func(r domain.NodeID) bool { return r == id })
	} else {
		old := s.nodes[n.parent]
		old.children = slices.DeleteFunc(old.children, func(c domain.NodeID) bool { return c == id })
	}

	n.parent = parent
	if parent.IsZero() {
		s.roots = append(s.roots, id)
	} else {
		p := s.nodes[parent]
		p.children = append(p.children, id)
	}
	return nil
}

// SetActive sets the node's own active flag.
func (s *Scene) SetActive(id domain.NodeID, active bool) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("set active %s: %w", id, domain.ErrNodeNotFound)
	}
	n.active = active
	return nil
}

// AddComponent attaches a capability provider to a node.
func (s *Scene) AddComponent(id domain.NodeID, component any) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("add component to %s: %w", id, domain.ErrNodeNotFound)
	}
	n.components = append(n.components, component)
	return nil
}

// Parent returns the structural parent of a node.
func (s *Scene) Parent(id domain.NodeID) (domain.NodeID, bool) {
	n, ok := s.nodes[id]
	if !ok || n.parent.IsZero() {
		return "", false
	}
	return n.parent, true
}

// Children returns the direct children of a node in order.
func (s *Scene) Children(id domain.NodeID) []domain.NodeID {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.children)
}

// Roots returns the root nodes in creation order.
func (s *Scene) Roots() []domain.NodeID {
	return slices.Clone(s.roots)
}

// ActiveSelf reports the node's own active flag, ignoring its ancestors.
func (s *Scene) ActiveSelf(id domain.NodeID) bool {
	n, ok := s.nodes[id]
	return ok && n.active
}

// ActiveInHierarchy reports whether the node and all of its ancestors are active.
func (s *Scene) ActiveInHierarchy(id domain.NodeID) bool {
	for cur := id; !cur.IsZero(); {
		n, ok := s.nodes[cur]
		if !ok || !n.active {
			return false
		}
		cur = n.parent
	}
	return !id.IsZero()
}

// Name returns the display name of a node.
func (s *Scene) Name(id domain.NodeID) string {
	if n, ok := s.nodes[id]; ok {
		return n.name
	}
	return ""
}

// Components returns the capability providers on a node.
func (s *Scene) Components(id domain.NodeID) []any {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.components)
}

// Has reports whether the node exists.
func (s *Scene) Has(id domain.NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int {
	return len(s.nodes)
}
