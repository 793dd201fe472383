package runner

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/playbox/pkg/domain"
)

// DefaultStep is the scene time advanced by one tick (60 ticks per second).
const DefaultStep = time.Second / 60

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStep sets the fixed scene time advanced per tick.
func WithStep(step time.Duration) Option {
	return func(r *Runner) {
		if step > 0 {
			r.step = step
		}
	}
}

// WithMaxTicks stops the loop after n ticks. Zero means no limit.
func WithMaxTicks(n int) Option {
	return func(r *Runner) {
		r.maxTicks = n
	}
}

// WithKeys configures where key presses come from.
func WithKeys(src KeySource) Option {
	return func(r *Runner) {
		r.keys = src
	}
}

// WithRealtime paces ticks with the wall clock instead of running them
// back to back.
func WithRealtime(realtime bool) Option {
	return func(r *Runner) {
		r.realtime = realtime
	}
}

// WithSignals sets a channel of signal names raised in the tree before the
// next tick.
func WithSignals(ch <-chan string) Option {
	return func(r *Runner) {
		r.signals = ch
	}
}

// WithOnTick registers a callback run after every tick, e.g. to render.
func WithOnTick(fn func(domain.Frame)) Option {
	return func(r *Runner) {
		r.onTick = fn
	}
}

// WithInterruptHandling makes Run stop on SIGINT/SIGTERM.
func WithInterruptHandling(enabled bool) Option {
	return func(r *Runner) {
		r.handleSignals = enabled
	}
}

// WithLocker makes the runner hold l while it touches the tree, so other
// goroutines (a debug server) can read the tree under the same lock.
func WithLocker(l sync.Locker) Option {
	return func(r *Runner) {
		if l != nil {
			r.lock = l
		}
	}
}
