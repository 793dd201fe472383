package scene

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/playbox/internal/dto"
	"github.com/aretw0/playbox/pkg/adapters/memory"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/registry"
)

// Scene is a built fixture: the host graph and the state tree over it.
type Scene struct {
	Name string
	Host *memory.Scene
	Tree *fsm.Tree
}

// Builder turns fixtures into scenes.
type Builder struct {
	registry  *registry.Registry
	factories map[string]Factory
	treeOpts  []fsm.Option
}

// Option configures a Builder.
type Option func(*Builder)

// WithRegistry sets the function registry used by call components.
func WithRegistry(r *registry.Registry) Option {
	return func(b *Builder) {
		b.registry = r
	}
}

// WithFactory registers (or replaces) a component kind.
func WithFactory(kind string, f Factory) Option {
	return func(b *Builder) {
		b.factories[kind] = f
	}
}

// WithTreeOptions forwards options to fsm.NewTree.
func WithTreeOptions(opts ...fsm.Option) Option {
	return func(b *Builder) {
		b.treeOpts = append(b.treeOpts, opts...)
	}
}

// NewBuilder creates a builder with the built-in component kinds.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{factories: DefaultFactories()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Kinds returns the registered component kinds, sorted.
func (b *Builder) Kinds() []string {
	return slices.Sorted(maps.Keys(b.factories))
}

// Build instantiates every node, attaches states and components, refreshes
// the tree and applies the declared defaults. The tree is left in edit
// mode; callers run Awake when they start playing.
func (b *Builder) Build(doc *dto.SceneFile) (*Scene, error) {
	host := memory.NewScene()
	tree := fsm.NewTree(host, b.treeOpts...)

	var defaults []domain.NodeID
	var inactive []domain.NodeID
	var errs []error

	var visit func(parent domain.NodeID, n dto.NodeSpec)
	visit = func(parent domain.NodeID, n dto.NodeSpec) {
		id, err := host.Instantiate(parent, domain.NodeID(n.ID), n.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("node %q: %w", n.ID, err))
			return
		}
		if !n.IsActive() {
			inactive = append(inactive, id)
		}

		if n.State != nil {
			if err := b.attachState(tree, id, *n.State); err != nil {
				errs = append(errs, err)
			} else if n.State.Default {
				defaults = append(defaults, id)
			}
		}

		for i, raw := range n.Components {
			c, err := b.component(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("node %s component %d: %w", id, i, err))
				continue
			}
			if err := host.AddComponent(id, c); err != nil {
				errs = append(errs, err)
			}
		}

		for _, child := range n.Children {
			visit(id, child)
		}
	}
	for _, n := range doc.Nodes {
		visit("", n)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, id := range inactive {
		if err := host.SetActive(id, false); err != nil {
			return nil, err
		}
	}
	tree.Refresh()

	for _, id := range defaults {
		if !host.ActiveInHierarchy(id) {
			continue
		}
		s := tree.MustState(id)
		if s.Parent() == nil {
			return nil, fmt.Errorf("state %s: default declared on a root", id)
		}
		if !s.IsDefaultState() && !s.SetAsDefault() {
			return nil, fmt.Errorf("state %s: cannot be a default", id)
		}
	}
	tree.Refresh()

	return &Scene{Name: doc.Name, Host: host, Tree: tree}, nil
}

// LoadFile reads and builds a fixture file.
func (b *Builder) LoadFile(path string) (*Scene, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return b.Build(doc)
}

func (b *Builder) attachState(tree *fsm.Tree, id domain.NodeID, spec dto.StateSpec) error {
	mode, err := domain.ParseSelectionMode(spec.Mode)
	if err != nil {
		return fmt.Errorf("state %s: %w", id, err)
	}
	s, err := tree.Attach(id, mode)
	if err != nil {
		return err
	}
	if spec.Color != "" {
		c, err := domain.ParseColor(spec.Color)
		if err != nil {
			return fmt.Errorf("state %s: %w", id, err)
		}
		s.SetColor(c)
	}
	return nil
}

func (b *Builder) component(raw map[string]any) (any, error) {
	kind, _ := raw[KeyKind].(string)
	f, ok := b.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownComponent, kind)
	}
	params := maps.Clone(raw)
	delete(params, KeyKind)
	c, err := f(params, Env{Registry: b.registry})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return c, nil
}
