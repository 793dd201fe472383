package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/input"
)

// Runner plays a state tree with a fixed time step.
type Runner struct {
	tree          *fsm.Tree
	keyboard      *input.Keyboard
	logger        *slog.Logger
	step          time.Duration
	maxTicks      int
	keys          KeySource
	realtime      bool
	signals       <-chan string
	onTick        func(domain.Frame)
	handleSignals bool
	lock          sync.Locker
}

// Stats summarizes a finished run.
type Stats struct {
	Ticks     int
	SceneTime time.Duration
}

// New creates a runner for tree.
func New(tree *fsm.Tree, opts ...Option) *Runner {
	r := &Runner{
		tree:     tree,
		keyboard: input.NewKeyboard(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		step:     DefaultStep,
		lock:     noLock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Keyboard returns the keyboard fed to the tree. Hosts may press keys on it
// directly from any goroutine.
func (r *Runner) Keyboard() *input.Keyboard {
	return r.keyboard
}

// Run awakes the tree if needed and ticks it until the tick limit is reached
// or ctx is done. Cancellation is not an error: Run returns the stats and
// a nil error. The tree is stopped on return.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	if r.handleSignals {
		sm := NewSignalManager(ctx)
		defer sm.Stop()
		ctx = sm.Context()
	}
	if r.keys != nil {
		if err := r.keys.Start(ctx); err != nil {
			return Stats{}, err
		}
		defer r.keys.Stop()
	}

	r.lock.Lock()
	if !r.tree.Playing() {
		r.tree.Awake(ctx)
	}
	r.lock.Unlock()
	defer func() {
		r.lock.Lock()
		r.tree.Stop()
		r.lock.Unlock()
	}()

	var pace *time.Ticker
	if r.realtime {
		pace = time.NewTicker(r.step)
		defer pace.Stop()
	}

	var stats Stats
	for r.maxTicks == 0 || stats.Ticks < r.maxTicks {
		if ctx.Err() != nil {
			break
		}

		if r.keys != nil {
			r.keys.Poll(stats.Ticks, r.keyboard)
		}

		now := time.Duration(stats.Ticks+1) * r.step
		r.lock.Lock()
		r.raisePending(ctx)
		r.tree.Refresh()
		frame := r.keyboard.Frame(now, r.step)
		r.tree.Tick(ctx, frame)
		r.lock.Unlock()
		stats.Ticks++
		stats.SceneTime = now

		if r.onTick != nil {
			r.onTick(frame)
		}

		if pace != nil {
			select {
			case <-ctx.Done():
			case <-pace.C:
			}
		}
	}

	r.logger.InfoContext(ctx, "run finished", "ticks", stats.Ticks, "scene_time", stats.SceneTime)
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return stats, err
	}
	return stats, nil
}

func (r *Runner) raisePending(ctx context.Context) {
	if r.signals == nil {
		return
	}
	for {
		select {
		case name, ok := <-r.signals:
			if !ok {
				r.signals = nil
				return
			}
			r.tree.Raise(ctx, name)
		default:
			return
		}
	}
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
