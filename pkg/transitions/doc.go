/*
Package transitions provides the built-in stimulus adapters.

Each transition is a component on a state's node that embeds
fsm.TransitionBase and calls InvokeTransition when its condition holds:

  - Delayed fires once a fixed time after its state was entered.
  - KeyPress fires on the down edge of a key.
  - ColliderEvent fires on a matching overlap callback from the host.
  - Signal fires when a named signal is raised in the tree.
*/
package transitions
