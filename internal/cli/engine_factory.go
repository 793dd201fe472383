package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/playbox"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// createEngine initializes a PlayBox engine with standard CLI conventions.
// reg and hooks are optional.
func createEngine(opts RunOptions, logger *slog.Logger, reg prometheus.Registerer, hooks ...domain.LifecycleHooks) (*playbox.Engine, error) {
	engineOpts := []playbox.Option{playbox.WithLogger(logger)}

	// Lifecycle events are only worth formatting when debug logging is on.
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		engineOpts = append(engineOpts, playbox.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	for _, h := range hooks {
		engineOpts = append(engineOpts, playbox.WithLifecycleHooks(h))
	}
	if reg != nil {
		engineOpts = append(engineOpts, playbox.WithMetrics(reg))
	}
	if opts.LegacyAwake {
		engineOpts = append(engineOpts, playbox.WithLegacyAwake())
	}

	engine, err := playbox.New(opts.ScenePath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
