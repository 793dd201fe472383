package playbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/playbox/internal/dto"
	"github.com/aretw0/playbox/internal/presentation/graph"
	"github.com/aretw0/playbox/pkg/adapters/memory"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/observability"
	"github.com/aretw0/playbox/pkg/registry"
	"github.com/aretw0/playbox/pkg/runner"
	"github.com/aretw0/playbox/pkg/scene"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrSignalQueueFull is returned by Signal when a running engine cannot
// buffer more signals before its next tick.
var ErrSignalQueueFull = errors.New("signal queue full")

const signalBuffer = 64

// Engine is the high-level entry point for the PlayBox library.
// It owns a scene, its state tree and the lock shared by the tick loop and
// any concurrent reader (debug server, signal senders).
type Engine struct {
	mu      sync.Mutex
	scene   *scene.Scene
	running bool
	signals chan string

	registry    *registry.Registry
	factories   map[string]scene.Factory
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	metricsReg  prometheus.Registerer
	legacyAwake bool

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Repeated calls chain.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry sets the function table used by call effects. By default the
// engine uses a table holding the built-in functions.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithComponent registers a custom component kind for scene files.
func WithComponent(kind string, f scene.Factory) Option {
	return func(e *Engine) {
		if e.factories == nil {
			e.factories = make(map[string]scene.Factory)
		}
		e.factories[kind] = f
	}
}

// WithMetrics registers the Prometheus collectors with reg and feeds them
// from the lifecycle hooks.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.metricsReg = reg
	}
}

// WithLegacyAwake forwards fsm.WithLegacyAwake.
func WithLegacyAwake() Option {
	return func(e *Engine) {
		e.legacyAwake = true
	}
}

// New loads a scene file (YAML or JSON) and builds an engine over it.
func New(path string, opts ...Option) (*Engine, error) {
	doc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return newEngine(doc, opts)
}

// FromYAML builds an engine from an in-memory scene document.
func FromYAML(data []byte, opts ...Option) (*Engine, error) {
	doc, err := scene.Parse(data)
	if err != nil {
		return nil, err
	}
	return newEngine(doc, opts)
}

func newEngine(doc *dto.SceneFile, opts []Option) (*Engine, error) {
	eng := &Engine{signals: make(chan string, signalBuffer)}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.registry == nil {
		eng.registry = registry.New()
		registry.RegisterBuiltins(eng.registry)
	}
	eng.Name = doc.Name
	if eng.Name != "" {
		eng.logger = eng.logger.With("scene", eng.Name)
	}

	hooks := eng.hooks
	if eng.metricsReg != nil {
		m, err := observability.NewMetrics(eng.metricsReg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		hooks = hooks.Merge(m.Hooks())
	}

	treeOpts := []fsm.Option{fsm.WithLogger(eng.logger), fsm.WithLifecycleHooks(hooks)}
	if eng.legacyAwake {
		treeOpts = append(treeOpts, fsm.WithLegacyAwake())
	}
	builderOpts := []scene.Option{scene.WithRegistry(eng.registry), scene.WithTreeOptions(treeOpts...)}
	for kind, f := range eng.factories {
		builderOpts = append(builderOpts, scene.WithFactory(kind, f))
	}

	sc, err := scene.NewBuilder(builderOpts...).Build(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	eng.scene = sc
	return eng, nil
}

// Tree returns the state tree. Callers that share the engine with a running
// loop must hold the engine lock (see Do).
func (e *Engine) Tree() *fsm.Tree {
	return e.scene.Tree
}

// Host returns the in-memory scene graph.
func (e *Engine) Host() *memory.Scene {
	return e.scene.Host
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Do runs fn with exclusive access to the tree.
func (e *Engine) Do(fn func(tree *fsm.Tree)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.scene.Tree)
}

// Awake runs the initialization pass if the tree is not playing yet.
func (e *Engine) Awake(ctx context.Context) {
	e.Do(func(tree *fsm.Tree) {
		if !tree.Playing() {
			tree.Awake(ctx)
		}
	})
}

// Run plays the scene with a runner. Engine-level settings (logger, lock,
// queued signals) are applied before opts.
func (e *Engine) Run(ctx context.Context, opts ...runner.Option) (runner.Stats, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return runner.Stats{}, fmt.Errorf("engine %q is already running", e.Name)
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	base := []runner.Option{
		runner.WithLogger(e.logger),
		runner.WithLocker(&e.mu),
		runner.WithSignals(e.signals),
	}
	return runner.New(e.scene.Tree, append(base, opts...)...).Run(ctx)
}

// Signal raises a named signal. While Run is active the signal is queued and
// raised before the next tick; otherwise it is raised immediately.
func (e *Engine) Signal(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		e.scene.Tree.Raise(ctx, name)
		return nil
	}
	select {
	case e.signals <- name:
		return nil
	default:
		return ErrSignalQueueFull
	}
}

// StateView is a read-only snapshot of one state.
type StateView struct {
	ID         domain.NodeID   `json:"id"`
	Name       string          `json:"name"`
	Parent     domain.NodeID   `json:"parent,omitempty"`
	Mode       string          `json:"mode"`
	Color      string          `json:"color"`
	Selected   bool            `json:"selected"`
	Selectable bool            `json:"selectable"`
	Default    bool            `json:"default"`
	Children   []domain.NodeID `json:"children,omitempty"`
}

// Inspect returns a snapshot of the active hierarchy, parents first.
func (e *Engine) Inspect() []StateView {
	var views []StateView
	e.Do(func(tree *fsm.Tree) {
		tree.Walk(func(s *fsm.State, _ int) bool {
			v := StateView{
				ID:         s.ID(),
				Name:       s.Name(),
				Mode:       s.Mode().String(),
				Color:      s.Color().Hex(),
				Selected:   s.IsSelectedState(),
				Selectable: s.IsSelectableState(),
				Default:    s.IsDefaultState(),
			}
			if p := s.Parent(); p != nil {
				v.Parent = p.ID()
			}
			for _, c := range s.Children() {
				v.Children = append(v.Children, c.ID())
			}
			views = append(views, v)
			return true
		})
	})
	return views
}

// Graph renders the hierarchy as a Mermaid flowchart with the current
// selection highlighted.
func (e *Engine) Graph() string {
	var out string
	e.Do(func(tree *fsm.Tree) {
		out = graph.GenerateMermaid(tree, graph.OverlayFromTree(tree))
	})
	return out
}
