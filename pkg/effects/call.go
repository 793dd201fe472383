package effects

import (
	"context"
	"fmt"
	"maps"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/registry"
)

// Call invokes a registry function. The function receives Args plus the
// "entering" flag and the "state_id" of the triggering state.
type Call struct {
	fsm.EffectSettings
	Registry *registry.Registry
	Function string
	Args     map[string]any

	// OnResult, when set, receives every successful result.
	OnResult func(result any)
}

// Kind implements fsm.Kinded.
func (c *Call) Kind() string { return "call" }

// InvokeEffect implements fsm.Effect.
func (c *Call) InvokeEffect(ctx context.Context, entering bool, s *fsm.State) error {
	if c.Registry == nil {
		return fmt.Errorf("call %s: no registry", c.Function)
	}

	args := make(map[string]any, len(c.Args)+2)
	maps.Copy(args, c.Args)
	args[domain.KeyEntering] = entering
	args[domain.KeyStateID] = string(s.ID())

	result, err := c.Registry.Call(ctx, c.Function, args)
	if err != nil {
		return fmt.Errorf("call %s: %w", c.Function, err)
	}
	s.Tree().Logger().DebugContext(ctx, "function called",
		"state_id", s.ID(), "function", c.Function, "result", result)
	if c.OnResult != nil {
		c.OnResult(result)
	}
	return nil
}
