package transitions

import (
	"context"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/input"
)

// KeyPress fires on every tick whose frame reports a down edge of Key.
type KeyPress struct {
	fsm.TransitionBase
	Key domain.Key
}

// Kind implements fsm.Kinded.
func (k *KeyPress) Kind() string { return "key_press" }

// Tick implements fsm.Ticker.
func (k *KeyPress) Tick(ctx context.Context, frame domain.Frame) {
	if frame.KeyDown(input.Normalize(k.Key)) {
		k.InvokeTransition(ctx)
	}
}
