package fsm

import (
	"context"
	"fmt"

	"github.com/aretw0/playbox/pkg/domain"
)

// Effect is a side effect bound to the enter/exit events of the state whose
// node carries it. Variants embed EffectSettings and implement InvokeEffect.
type Effect interface {
	Settings() *EffectSettings
	// InvokeEffect applies the effect. entering is true on enter and, during
	// initialization, true for selected states.
	InvokeEffect(ctx context.Context, entering bool, s *State) error
}

// EffectSettings holds the dispatch settings shared by all effects.
type EffectSettings struct {
	// When selects the lifecycle edges that run the effect.
	When domain.EffectTrigger
	// InvokeOnAwake runs the effect during initialization regardless of When.
	InvokeOnAwake bool
	// Disabled suppresses enter/exit dispatch.
	Disabled bool
}

// Settings returns the settings; embedding types inherit it.
func (e *EffectSettings) Settings() *EffectSettings { return e }

func (t *Tree) onStateEnter(ctx context.Context, e Effect, s *State) {
	settings := e.Settings()
	if settings.Disabled || !settings.When.OnEnter() {
		return
	}
	t.runEffect(ctx, e, s, true)
}

func (t *Tree) onStateExit(ctx context.Context, e Effect, s *State) {
	settings := e.Settings()
	if settings.Disabled || !settings.When.OnExit() {
		return
	}
	t.runEffect(ctx, e, s, false)
}

func (t *Tree) invokeEffectOnAwake(ctx context.Context, e Effect, s *State, selected bool) {
	if !e.Settings().InvokeOnAwake {
		return
	}
	t.runEffect(ctx, e, s, selected)
}

// runEffect isolates a single effect: errors and panics are logged and
// reported, never propagated to the selection operation.
func (t *Tree) runEffect(ctx context.Context, e Effect, s *State, entering bool) {
	defer func() {
		if r := recover(); r != nil {
			t.effectFailed(ctx, e, s, fmt.Errorf("effect panicked: %v", r))
		}
	}()
	if err := e.InvokeEffect(ctx, entering, s); err != nil {
		t.effectFailed(ctx, e, s, err)
	}
}

func (t *Tree) effectFailed(ctx context.Context, e Effect, s *State, err error) {
	name := componentName(e)
	t.logger.ErrorContext(ctx, "effect failed", "state_id", s.id, "effect", name, "error", err)
	if t.hooks.OnEffectError != nil {
		t.hooks.OnEffectError(ctx, &domain.EffectErrorEvent{
			EventBase: s.eventBase(domain.EventEffectError),
			StateID:   s.id,
			Effect:    name,
			Error:     err.Error(),
			Err:       err,
		})
	}
}

// Kinded is implemented by capability providers that report a short kind
// name for logs and metrics.
type Kinded interface {
	Kind() string
}

func componentName(c any) string {
	if k, ok := c.(Kinded); ok {
		return k.Kind()
	}
	return fmt.Sprintf("%T", c)
}
