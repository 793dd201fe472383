package playbox_test

import (
	"context"
	"fmt"

	"github.com/aretw0/playbox/pkg/adapters/memory"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/transitions"
)

// Example_library builds a state machine in code, without a scene file,
// using the in-memory host and the fsm package directly.
func Example_library() {
	// 1. Build the host graph
	host := memory.NewScene()
	light := host.MustInstantiate("", "light", "Light")
	off := host.MustInstantiate(light, "off", "Off")
	on := host.MustInstantiate(light, "on", "On")
	_ = host.AddComponent(off, &transitions.Signal{
		TransitionBase: fsm.TransitionBase{Type: domain.ExitFromThisState, Destination: on},
		Name:           "switch_on",
	})
	_ = host.AddComponent(on, &transitions.Signal{
		TransitionBase: fsm.TransitionBase{Type: domain.ExitFromThisState, Destination: off},
		Name:           "switch_off",
	})

	// 2. Attach states; the first child becomes the default
	tree := fsm.NewTree(host)
	root, _ := tree.Attach(light, domain.SingleRequired)
	_, _ = tree.Attach(off, domain.SingleRequired)
	_, _ = tree.Attach(on, domain.SingleRequired)
	root.OnInnerStateChanged(func(previous, current *fsm.State) {
		if previous != nil && current != nil {
			fmt.Printf("%s -> %s\n", previous.Name(), current.Name())
		}
	})

	// 3. Play
	ctx := context.Background()
	tree.Awake(ctx)
	tree.Raise(ctx, "switch_on")
	tree.Raise(ctx, "switch_off")

	// Output:
	// Off -> On
	// On -> Off
}
