package runner

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/input"
)

// KeySource feeds key presses to the keyboard.
type KeySource interface {
	// Start prepares the source; ctx bounds any background reading.
	Start(ctx context.Context) error
	// Poll applies the presses due before the given tick.
	Poll(tick int, kb *input.Keyboard)
	// Stop releases the source.
	Stop()
}

// ScriptedKeys taps keys at fixed ticks.
type ScriptedKeys struct {
	plan map[int][]domain.Key
}

// Script parses a plan such as "10:space,25:w,25:d". Ticks are zero-based.
func Script(plan string) (*ScriptedKeys, error) {
	s := &ScriptedKeys{plan: make(map[int][]domain.Key)}
	for _, item := range strings.Split(plan, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		tickStr, key, ok := strings.Cut(item, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid key script entry %q: expected tick:key", item)
		}
		tick, err := strconv.Atoi(strings.TrimSpace(tickStr))
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("invalid tick in key script entry %q", item)
		}
		s.plan[tick] = append(s.plan[tick], input.Normalize(domain.Key(key)))
	}
	return s, nil
}

// MustScript is Script for fixtures and examples; it panics on error.
func MustScript(plan string) *ScriptedKeys {
	s, err := Script(plan)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *ScriptedKeys) Start(context.Context) error { return nil }

func (s *ScriptedKeys) Poll(tick int, kb *input.Keyboard) {
	for _, k := range s.plan[tick] {
		kb.Tap(k)
	}
}

func (s *ScriptedKeys) Stop() {}
