/*
Package domain contains the core vocabulary of the PlayBox state hierarchy.

It defines identifiers, selection policies, effect and transition settings,
the per-tick Frame and the lifecycle events emitted by the engine. The package
is kept free of I/O and of the engine itself so that hosts, adapters and
observability layers can share it without import cycles.

# Key Types

  - NodeID: Opaque handle of a node in the host scene graph.
  - SelectionMode: How many children of a state may be selected at once.
  - EffectTrigger: When an effect reacts (enter, exit or both).
  - TransitionType: Whether a transition enters or exits its own state.
  - Frame: Time and input snapshot delivered to polled transitions each tick.
  - LifecycleHooks: Observability callbacks for enter/exit/transition events.
*/
package domain
