package transitions

import (
	"context"
	"time"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
)

// Delayed fires once Delay has elapsed since its state was entered.
// Exiting the state disarms it.
type Delayed struct {
	fsm.TransitionBase
	Delay time.Duration

	armed   bool
	armedAt time.Duration
}

// Kind implements fsm.Kinded.
func (d *Delayed) Kind() string { return "delayed" }

// Armed reports whether the timer is running.
func (d *Delayed) Armed() bool { return d.armed }

// StateEntered implements fsm.StateObserver.
func (d *Delayed) StateEntered(*fsm.State) {
	d.armed = true
	d.armedAt = d.State().EnteredAt()
}

// StateExited implements fsm.StateObserver.
func (d *Delayed) StateExited(*fsm.State) {
	d.armed = false
}

// Tick implements fsm.Ticker.
func (d *Delayed) Tick(ctx context.Context, frame domain.Frame) {
	if !d.armed || frame.Time-d.armedAt < d.Delay {
		return
	}
	d.armed = false
	d.InvokeTransition(ctx)
}
