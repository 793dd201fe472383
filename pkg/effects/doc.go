/*
Package effects provides the built-in state effects.

An effect is a component placed on a state's node. The engine runs it when the
state is entered or exited, according to its fsm.EffectSettings:

  - Activate: enables or disables scene nodes.
  - Log: writes an "Enter:"/"Exit:" line through the tree logger.
  - Call: invokes a function from a registry.Registry.
  - Emit: raises a named signal, so one state change can drive others.
*/
package effects
