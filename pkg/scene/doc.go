/*
Package scene loads scene fixtures into an in-memory host and a state tree.

A fixture lists nodes, their optional state settings and their components:

	name: guard
	nodes:
	  - id: guard
	    state: {mode: single_required}
	    children:
	      - id: patrol
	        state: {default: true}
	        components:
	          - {kind: key_press, key: space, type: exit, to: chase}
	      - id: chase
	        state: {}
	        components:
	          - {kind: log, when: both, message: "target acquired"}

Component kinds are resolved through a factory table. The built-in kinds are
activate, log, call, emit, delayed, key_press, collider_event and signal.
*/
package scene
