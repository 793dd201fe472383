/*
Package runner implements the fixed-step tick loop that plays a state tree.

It acts as the bridge between the engine and the outside world: each tick it
collects key presses from a KeySource, raises queued signals, refreshes the
tree so host edits are picked up, and delivers a domain.Frame to the tree.

# Key Components

  - Runner: The loop. It stops on a tick limit, context cancellation or an
    OS interrupt.
  - KeySource: Feeds the input.Keyboard. ScriptedKeys replays a fixed plan;
    TerminalKeys reads a raw-mode terminal.
  - SignalManager: Ties the loop context to SIGINT/SIGTERM.

# Usage

	r := runner.New(tree,
		runner.WithStep(50*time.Millisecond),
		runner.WithMaxTicks(100),
		runner.WithKeys(runner.MustScript("10:space")),
	)

	stats, err := r.Run(ctx)
*/
package runner
