package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/playbox/pkg/domain"
)

// LogHooks returns hooks that log every lifecycle event at info level,
// and effect failures at error level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "state_enter", "state_id", e.StateID, "previous", e.Other, "scene_time", e.SceneTime)
		},
		OnStateExit: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "state_exit", "state_id", e.StateID, "next", e.Other, "scene_time", e.SceneTime)
		},
		OnInnerStateChanged: func(ctx context.Context, e *domain.InnerStateChangedEvent) {
			logger.InfoContext(ctx, "inner_state_changed", "parent_id", e.ParentID, "previous", e.Previous, "current", e.Current)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition",
				"state_id", e.StateID,
				"transition", e.Transition,
				"type", e.Type.String(),
				"applied", e.Applied,
			)
		},
		OnEffectError: func(ctx context.Context, e *domain.EffectErrorEvent) {
			logger.ErrorContext(ctx, "effect_error", "state_id", e.StateID, "effect", e.Effect, "error", e.Err)
		},
	}
}
