/*
Package playbox is a hierarchical finite state machine engine for scene graphs.

A scene is a tree of nodes owned by a host. Some nodes carry a State; the
direct child states of a state form its own state machine, governed by a
selection mode (single required, single optional or multiple). Effects react
to a state being entered or exited, and transitions turn stimuli (elapsed
time, key presses, overlaps, named signals) into selection changes.

# Concept

The engine never owns the scene: it queries the host through the ports in
pkg/ports and, for editor-style actions, asks it to mutate the scene. The
bundled in-memory host (pkg/adapters/memory) and the YAML scene format
(pkg/scene) make it usable standalone, from the playbox CLI or as a library.

# Key Features

  - Selection laws: single modes never hold more than one selected child,
    single required always falls back to its default.
  - Atomic swaps: exit transitions with a destination replace the state in one step.
  - Isolated effects: a failing effect is logged and reported, never propagated.
  - Observability: lifecycle hooks, slog logging and Prometheus metrics.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/playbox"
		"github.com/aretw0/playbox/pkg/runner"
	)

	func main() {
		eng, err := playbox.New("./guard.yaml")
		if err != nil {
			log.Fatal(err)
		}

		// Play ten seconds of scene time, pressing space at tick 30.
		_, err = eng.Run(context.Background(),
			runner.WithMaxTicks(600),
			runner.WithKeys(runner.MustScript("30:space")),
		)
		if err != nil {
			log.Fatal(err)
		}
	}
*/
package playbox
