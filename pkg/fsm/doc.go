/*
Package fsm implements the PlayBox state hierarchy engine.

A State is attached to a node of the host scene graph. Every state is itself a
state machine over its direct child states: it keeps an ordered selection and
an ordered set of defaults, both constrained by its SelectionMode. Selection
changes fire enter/exit events on the affected children, which run the
Effects co-located on those nodes. Transitions are stimulus adapters that ask
the parent scope to select, deselect or swap their own state.

# Tree

Tree is the arena owning every State of one scene. States refer to their
parent through a NodeID handle resolved by the tree, so children never keep
their parent alive. The tree also carries the logger, the lifecycle hooks and
the scene time used by polled transitions.

# Model

All mutation happens on the caller's goroutine. Lists are mutated before the
matching event is dispatched, so handlers and effects that re-enter the
selection API observe the post-mutation state. A Tree is not safe for
concurrent use.

	tree := fsm.NewTree(scene, fsm.WithLogger(logger))
	machine, _ := tree.Attach("machine", domain.SingleRequired)
	walk, _ := tree.Attach("walk", domain.SingleRequired)
	tree.Awake(ctx)
	walk.SelectState(ctx)
*/
package fsm
