package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	Enters         *prometheus.CounterVec
	Exits          *prometheus.CounterVec
	Transitions    *prometheus.CounterVec
	EffectFailures *prometheus.CounterVec
	Selected       *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Enters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playbox_state_enter_total",
				Help: "Total number of state enter events",
			},
			[]string{"state_id"},
		),
		Exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playbox_state_exit_total",
				Help: "Total number of state exit events",
			},
			[]string{"state_id"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playbox_transitions_total",
				Help: "Total number of invoked transitions",
			},
			[]string{"state_id", "transition", "applied"},
		),
		EffectFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playbox_effect_failures_total",
				Help: "Total number of failed effect invocations",
			},
			[]string{"state_id", "effect"},
		),
		Selected: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "playbox_state_selected",
				Help: "1 while the state is selected in its parent, 0 otherwise",
			},
			[]string{"state_id"},
		),
	}

	for _, c := range []prometheus.Collector{m.Enters, m.Exits, m.Transitions, m.EffectFailures, m.Selected} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(_ context.Context, e *domain.StateEvent) {
			m.Enters.WithLabelValues(string(e.StateID)).Inc()
			m.Selected.WithLabelValues(string(e.StateID)).Set(1)
		},
		OnStateExit: func(_ context.Context, e *domain.StateEvent) {
			m.Exits.WithLabelValues(string(e.StateID)).Inc()
			m.Selected.WithLabelValues(string(e.StateID)).Set(0)
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.StateID), e.Transition, strconv.FormatBool(e.Applied)).Inc()
		},
		OnEffectError: func(_ context.Context, e *domain.EffectErrorEvent) {
			m.EffectFailures.WithLabelValues(string(e.StateID), e.Effect).Inc()
		},
	}
}
