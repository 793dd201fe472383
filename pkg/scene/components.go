package scene

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/playbox/internal/dto"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/effects"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/registry"
	"github.com/aretw0/playbox/pkg/transitions"
	"github.com/mitchellh/mapstructure"
)

// KeyKind is the component map key naming the component kind.
const KeyKind = "kind"

// Env is what component factories may depend on.
type Env struct {
	Registry *registry.Registry
}

// Factory builds a component from its parameters (the "kind" key removed).
type Factory func(params map[string]any, env Env) (any, error)

// DefaultFactories returns the built-in component kinds.
func DefaultFactories() map[string]Factory {
	return map[string]Factory{
		"activate":       newActivate,
		"log":            newLog,
		"call":           newCall,
		"emit":           newEmit,
		"delayed":        newDelayed,
		"key_press":      newKeyPress,
		"collider_event": newCollider,
		"signal":         newSignal,
	}
}

// decode maps params onto out. Unknown keys are rejected.
func decode(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}

// secondsToDurationHook reads plain numbers as seconds.
func secondsToDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case int:
		return time.Duration(v) * time.Second, nil
	}
	return data, nil
}

func effectSettings(p dto.EffectParams) (fsm.EffectSettings, error) {
	when, err := domain.ParseEffectTrigger(p.When)
	if err != nil {
		return fsm.EffectSettings{}, err
	}
	return fsm.EffectSettings{When: when, InvokeOnAwake: p.OnAwake, Disabled: p.Disabled}, nil
}

func transitionBase(p dto.TransitionParams) (fsm.TransitionBase, error) {
	typ, err := domain.ParseTransitionType(p.Type)
	if err != nil {
		return fsm.TransitionBase{}, err
	}
	return fsm.TransitionBase{Type: typ, Destination: domain.NodeID(p.To), Disabled: p.Disabled}, nil
}

func nodeIDs(in []string) []domain.NodeID {
	out := make([]domain.NodeID, len(in))
	for i, s := range in {
		out[i] = domain.NodeID(s)
	}
	return out
}

func newActivate(params map[string]any, _ Env) (any, error) {
	var p dto.ActivateParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	settings, err := effectSettings(p.EffectParams)
	if err != nil {
		return nil, err
	}
	mode, err := effects.ParseActivateMode(p.Mode)
	if err != nil {
		return nil, err
	}
	return &effects.Activate{EffectSettings: settings, Mode: mode, Subjects: nodeIDs(p.Subjects)}, nil
}

func newLog(params map[string]any, _ Env) (any, error) {
	var p dto.LogParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	settings, err := effectSettings(p.EffectParams)
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if p.Level != "" {
		if err := level.UnmarshalText([]byte(p.Level)); err != nil {
			return nil, err
		}
	}
	return &effects.Log{EffectSettings: settings, Message: p.Message, Level: level}, nil
}

func newCall(params map[string]any, env Env) (any, error) {
	var p dto.CallParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	settings, err := effectSettings(p.EffectParams)
	if err != nil {
		return nil, err
	}
	if p.Function == "" {
		return nil, fmt.Errorf("call: missing function")
	}
	if env.Registry == nil || !env.Registry.Has(p.Function) {
		return nil, fmt.Errorf("call: %w: %s", domain.ErrFunctionNotFound, p.Function)
	}
	return &effects.Call{EffectSettings: settings, Registry: env.Registry, Function: p.Function, Args: maps.Clone(p.Args)}, nil
}

func newEmit(params map[string]any, _ Env) (any, error) {
	var p dto.EmitParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	settings, err := effectSettings(p.EffectParams)
	if err != nil {
		return nil, err
	}
	if p.Signal == "" {
		return nil, fmt.Errorf("emit: missing signal")
	}
	return &effects.Emit{EffectSettings: settings, Signal: p.Signal}, nil
}

func newDelayed(params map[string]any, _ Env) (any, error) {
	var p dto.DelayedParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	base, err := transitionBase(p.TransitionParams)
	if err != nil {
		return nil, err
	}
	if p.Delay < 0 {
		return nil, fmt.Errorf("delayed: negative delay %s", p.Delay)
	}
	return &transitions.Delayed{TransitionBase: base, Delay: p.Delay}, nil
}

func newKeyPress(params map[string]any, _ Env) (any, error) {
	var p dto.KeyPressParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	base, err := transitionBase(p.TransitionParams)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Key) == "" && p.Key != " " {
		return nil, fmt.Errorf("key_press: missing key")
	}
	return &transitions.KeyPress{TransitionBase: base, Key: domain.Key(p.Key)}, nil
}

func newCollider(params map[string]any, _ Env) (any, error) {
	var p dto.ColliderParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	base, err := transitionBase(p.TransitionParams)
	if err != nil {
		return nil, err
	}
	phase, err := domain.ParseOverlapPhase(p.Phase)
	if err != nil {
		return nil, err
	}
	filter, err := domain.ParseOverlapKind(p.Filter)
	if err != nil {
		return nil, err
	}
	return &transitions.ColliderEvent{TransitionBase: base, Phase: phase, Filter: filter, Others: nodeIDs(p.Others)}, nil
}

func newSignal(params map[string]any, _ Env) (any, error) {
	var p dto.SignalParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	base, err := transitionBase(p.TransitionParams)
	if err != nil {
		return nil, err
	}
	if p.Signal == "" {
		return nil, fmt.Errorf("signal: missing signal name")
	}
	return &transitions.Signal{TransitionBase: base, Name: p.Signal}, nil
}
