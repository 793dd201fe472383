package fsm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/ports"
)

// Tree is the arena owning the states of one scene.
type Tree struct {
	host        ports.SceneGraph
	states      map[domain.NodeID]*State
	order       []domain.NodeID
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	now         time.Duration
	playing     bool
	legacyAwake bool
	raising     int
}

// MaxSignalDepth bounds how deeply Raise may nest, e.g. when an effect run
// by a signal emits another signal.
const MaxSignalDepth = 16

// Option defines a functional option for configuring the Tree.
type Option func(*Tree)

// WithLogger sets a custom structured logger for the tree.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
// Calling it more than once chains the hooks in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Tree) {
		t.hooks = t.hooks.Merge(hooks)
	}
}

// WithLegacyAwake makes the initialization pass report selected children to
// their effects as not selected, as older scenes expect.
func WithLegacyAwake() Option {
	return func(t *Tree) {
		t.legacyAwake = true
	}
}

// NewTree creates an empty arena over the given scene graph.
func NewTree(host ports.SceneGraph, opts ...Option) *Tree {
	t := &Tree{
		host:   host,
		states: make(map[domain.NodeID]*State),
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Host returns the scene graph the tree reads from.
func (t *Tree) Host() ports.SceneGraph {
	return t.host
}

// Logger returns the tree logger. Capability providers log through it.
func (t *Tree) Logger() *slog.Logger {
	return t.logger
}

// Now returns the scene time of the last tick.
func (t *Tree) Now() time.Duration {
	return t.now
}

// SignalDepth returns how many Raise calls are in progress.
func (t *Tree) SignalDepth() int {
	return t.raising
}

// Playing reports whether Awake has run and Stop has not.
func (t *Tree) Playing() bool {
	return t.playing
}

// Attach turns a host node into a state.
// A node carries at most one state.
func (t *Tree) Attach(id domain.NodeID, mode domain.SelectionMode) (*State, error) {
	if !t.host.Has(id) {
		return nil, fmt.Errorf("attach state to %s: %w", id, domain.ErrNodeNotFound)
	}
	if _, exists := t.states[id]; exists {
		return nil, fmt.Errorf("node %s already carries a state", id)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("attach state to %s: unknown selection mode %d", id, int(mode))
	}

	s := &State{tree: t, id: id, mode: mode}
	t.states[id] = s
	t.order = append(t.order, id)
	return s, nil
}

// CreateState instantiates a new node under parent and attaches a state to
// it, then refreshes both the parent and the new state. It requires a host
// that implements ports.SceneEditor.
func (t *Tree) CreateState(parent domain.NodeID, id domain.NodeID, name string, mode domain.SelectionMode) (*State, error) {
	editor, ok := t.host.(ports.SceneEditor)
	if !ok {
		return nil, domain.ErrEditorUnavailable
	}
	created, err := editor.Instantiate(parent, id, name)
	if err != nil {
		return nil, fmt.Errorf("create state: %w", err)
	}
	s, err := t.Attach(created, mode)
	if err != nil {
		return nil, err
	}
	if p, ok := t.states[parent]; ok {
		p.UpdateState()
	}
	s.UpdateState()
	return s, nil
}

// State returns the state attached to a node.
func (t *Tree) State(id domain.NodeID) (*State, bool) {
	s, ok := t.states[id]
	return s, ok
}

// MustState is State for fixtures; it panics when the node carries no state.
func (t *Tree) MustState(id domain.NodeID) *State {
	s, ok := t.states[id]
	if !ok {
		panic(fmt.Sprintf("fsm: %s: %v", id, domain.ErrNotAState))
	}
	return s
}

// States returns every state in attach order.
func (t *Tree) States() []*State {
	out := make([]*State, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.states[id])
	}
	return out
}

// Roots returns the active states that have no parent state, in attach order.
func (t *Tree) Roots() []*State {
	var out []*State
	for _, id := range t.order {
		s := t.states[id]
		if s.Parent() == nil && t.host.ActiveInHierarchy(id) {
			out = append(out, s)
		}
	}
	return out
}

// Walk visits the active hierarchy depth-first, parents before children.
// Returning false from fn skips the state's subtree.
func (t *Tree) Walk(fn func(s *State, depth int) bool) {
	var visit func(s *State, depth int)
	visit = func(s *State, depth int) {
		if !fn(s, depth) {
			return
		}
		for _, c := range s.children {
			visit(c, depth+1)
		}
	}
	for _, r := range t.Roots() {
		visit(r, 0)
	}
}

// Refresh runs UpdateState on every state. Hosts call it after structural
// edits; it never fires lifecycle events.
func (t *Tree) Refresh() {
	t.prune()
	for _, id := range t.order {
		t.states[id].UpdateState()
	}
}

// Awake runs the initialization pass and switches the tree to play mode.
func (t *Tree) Awake(ctx context.Context) {
	t.Refresh()
	t.playing = true
	for _, r := range t.Roots() {
		r.awake(ctx)
	}
	t.logger.InfoContext(ctx, "state tree awake", "states", len(t.order), "roots", len(t.Roots()))
}

// Stop switches the tree back to edit mode.
func (t *Tree) Stop() {
	t.playing = false
}

// Tick advances scene time and polls every Ticker transition in the active
// hierarchy, parents before children.
func (t *Tree) Tick(ctx context.Context, frame domain.Frame) {
	t.now = frame.Time

	var tickers []Ticker
	t.Walk(func(s *State, _ int) bool {
		for _, tr := range s.transitions {
			if tk, ok := tr.(Ticker); ok {
				tickers = append(tickers, tk)
			}
		}
		return true
	})

	for _, tk := range tickers {
		tk.Tick(ctx, frame)
	}
}

// Raise delivers a named signal to every SignalListener transition in the
// active hierarchy. It returns how many of them applied a selection change.
// Past MaxSignalDepth nested raises the signal is dropped and logged.
func (t *Tree) Raise(ctx context.Context, name string) int {
	if t.raising >= MaxSignalDepth {
		t.logger.ErrorContext(ctx, "signal dropped", "signal", name, "depth", t.raising, "error", domain.ErrSignalLoop)
		return 0
	}
	t.raising++
	defer func() { t.raising-- }()

	var listeners []SignalListener
	t.Walk(func(s *State, _ int) bool {
		for _, tr := range s.transitions {
			if l, ok := tr.(SignalListener); ok {
				listeners = append(listeners, l)
			}
		}
		return true
	})

	applied := 0
	for _, l := range listeners {
		if l.Signal(ctx, name) {
			applied++
		}
	}
	t.logger.DebugContext(ctx, "signal raised", "signal", name, "listeners", len(listeners), "applied", applied)
	return applied
}

// DispatchOverlap is the host's collision callback. It forwards the overlap
// to the OverlapListener transitions of the node's state.
func (t *Tree) DispatchOverlap(ctx context.Context, id, other domain.NodeID, phase domain.OverlapPhase, kind domain.OverlapKind) bool {
	s, ok := t.states[id]
	if !ok {
		return false
	}
	applied := false
	for _, tr := range slices.Clone(s.transitions) {
		if l, ok := tr.(OverlapListener); ok {
			if l.Overlap(ctx, other, phase, kind) {
				applied = true
			}
		}
	}
	return applied
}

// Destroy removes a node from the host. Every state of the removed subtree
// that was selected receives its exit event (deepest first) before the node
// goes away. If a removed state was selected in a SingleRequired parent, the
// parent's fallback default is entered afterwards. A destroyed root raises no
// exit of its own: roots are never entered, Awake only enters their children.
func (t *Tree) Destroy(ctx context.Context, id domain.NodeID) error {
	editor, ok := t.host.(ports.SceneEditor)
	if !ok {
		return domain.ErrEditorUnavailable
	}
	if !t.host.Has(id) {
		return fmt.Errorf("destroy %s: %w", id, domain.ErrNodeNotFound)
	}

	type affected struct {
		parent *State
		before []*State
	}
	var parents []affected

	for _, top := range t.subtreeTops(id) {
		parent := top.Parent()
		wasSelected := parent != nil && parent.isSelected(top)
		if wasSelected {
			parent.selected = slices.DeleteFunc(parent.selected, func(c *State) bool { return c == top })
		}
		top.exitSubtree(ctx, wasSelected)
		if wasSelected {
			parent.emitInnerStateChanged(ctx, top, nil)
		}
		if parent != nil {
			parents = append(parents, affected{parent: parent, before: slices.Clone(parent.selected)})
		}
	}

	if err := editor.Destroy(id); err != nil {
		return fmt.Errorf("destroy %s: %w", id, err)
	}
	t.Refresh()

	for _, a := range parents {
		if _, alive := t.states[a.parent.id]; !alive {
			continue
		}
		for _, c := range slices.Clone(a.parent.selected) {
			if slices.Contains(a.before, c) {
				continue
			}
			c.invokeEnter(ctx, nil)
			a.parent.emitInnerStateChanged(ctx, nil, c)
		}
	}
	t.logger.DebugContext(ctx, "node destroyed", "node_id", id)
	return nil
}

// subtreeTops returns the top-most states found under id (id included).
func (t *Tree) subtreeTops(id domain.NodeID) []*State {
	if s, ok := t.states[id]; ok {
		return []*State{s}
	}
	var out []*State
	for _, c := range t.host.Children(id) {
		out = append(out, t.subtreeTops(c)...)
	}
	return out
}

// prune forgets states whose host node no longer exists.
func (t *Tree) prune() {
	t.order = slices.DeleteFunc(t.order, func(id domain.NodeID) bool {
		if t.host.Has(id) {
			return false
		}
		delete(t.states, id)
		return true
	})
}

func (t *Tree) base() domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), SceneTime: t.now}
}
