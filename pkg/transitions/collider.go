package transitions

import (
	"context"
	"slices"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
)

// ColliderEvent fires when the host reports an overlap on the state's node
// with the configured phase and kind.
type ColliderEvent struct {
	fsm.TransitionBase
	Phase  domain.OverlapPhase
	Filter domain.OverlapKind
	// Others, when not empty, restricts the overlapping nodes.
	Others []domain.NodeID
}

// Kind implements fsm.Kinded.
func (c *ColliderEvent) Kind() string { return "collider_event" }

// Overlap implements fsm.OverlapListener.
func (c *ColliderEvent) Overlap(ctx context.Context, other domain.NodeID, phase domain.OverlapPhase, kind domain.OverlapKind) bool {
	if phase != c.Phase || !c.Filter.Matches(kind) {
		return false
	}
	if len(c.Others) > 0 && !slices.Contains(c.Others, other) {
		return false
	}
	return c.InvokeTransition(ctx)
}
