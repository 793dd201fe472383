package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/playbox/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	ScenePath   string
	Ticks       int
	Step        time.Duration
	Keys        string // scripted presses, e.g. "10:space,40:w"
	Interactive bool
	Realtime    bool
	Watch       bool
	Quiet       bool
	ShowTree    bool
	LogLevel    string
	DebugAddr   string
	LegacyAwake bool
}

// Execute handles the 'run' command logic, dispatching to Session or Watch mode.
func Execute(ctx context.Context, opts RunOptions, out io.Writer) error {
	if opts.ScenePath == "" {
		return fmt.Errorf("no scene file given (use --scene)")
	}
	if opts.Interactive && opts.Keys != "" {
		return fmt.Errorf("--interactive and --keys cannot be used together")
	}
	if opts.Keys != "" {
		if _, err := runner.Script(opts.Keys); err != nil {
			return err
		}
	}
	// Keyboard play only makes sense at wall clock speed.
	if opts.Interactive {
		opts.Realtime = true
	}
	if opts.Step <= 0 {
		opts.Step = runner.DefaultStep
	}

	if opts.Watch {
		return RunWatch(ctx, opts, out)
	}
	return RunSession(ctx, opts, out)
}
