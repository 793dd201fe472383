package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/playbox"
	debughttp "github.com/aretw0/playbox/internal/adapters/http"
	"github.com/aretw0/playbox/internal/presentation/tui"
	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
)

// RunSession plays the scene once, until the tick limit or ctx ends.
func RunSession(ctx context.Context, opts RunOptions, out io.Writer) error {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		tui.PrintBanner(out)
	}

	var reg *prometheus.Registry
	var streams *debughttp.StreamManager
	var hooks []domain.LifecycleHooks
	if opts.DebugAddr != "" {
		reg = prometheus.NewRegistry()
		streams = debughttp.NewStreamManager(logger)
		hooks = append(hooks, streams.Hooks())
	}

	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}
	engine, err := createEngine(opts, logger, registerer, hooks...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.DebugAddr != "" {
		handler := debughttp.NewHandler(engine,
			debughttp.WithGatherer(reg),
			debughttp.WithStreams(streams),
			debughttp.WithLogger(logger),
		)
		stop, addr, err := startDebugServer(opts.DebugAddr, handler, logger)
		if err != nil {
			return err
		}
		defer stop()
		if !opts.Quiet {
			printSystemMessage(out, "Debug server at http://%s", addr)
		}
	}

	runnerOpts := []runner.Option{
		runner.WithMaxTicks(opts.Ticks),
		runner.WithStep(opts.Step),
		runner.WithRealtime(opts.Realtime),
		runner.WithInterruptHandling(true),
	}

	renderer := tui.NewTreeRendererFor(out)
	treeOut := out
	switch {
	case opts.Interactive:
		runnerOpts = append(runnerOpts, runner.WithKeys(runner.NewTerminalKeys(cancel)))
		treeOut = crlfWriter{w: out}
		if !opts.Quiet {
			printSystemMessage(treeOut, "Interactive mode: press keys to play, 'q' to quit.")
		}
	case opts.Keys != "":
		keys, err := runner.Script(opts.Keys)
		if err != nil {
			return err
		}
		runnerOpts = append(runnerOpts, runner.WithKeys(keys))
	}

	if opts.ShowTree {
		runnerOpts = append(runnerOpts, runner.WithOnTick(treePrinter(engine, renderer, treeOut)))
	}

	logger.Info("Session started", "scene", engine.Name, "ticks", opts.Ticks, "step", opts.Step)
	stats, runErr := engine.Run(ctx, runnerOpts...)

	if !opts.Quiet {
		printSystemMessage(treeOut, "Finished after %d ticks (%s scene time).", stats.Ticks, stats.SceneTime)
	}
	return handleExecutionError(runErr)
}

// treePrinter renders the tree on every tick that changed the selection.
func treePrinter(engine *playbox.Engine, renderer *tui.TreeRenderer, out io.Writer) func(domain.Frame) {
	last := ""
	return func(frame domain.Frame) {
		sig := selectionSignature(engine.Inspect())
		if sig == last {
			return
		}
		last = sig
		engine.Do(func(tree *fsm.Tree) {
			fmt.Fprintf(out, "-- t=%s\n", frame.Time.Round(time.Millisecond))
			_ = renderer.Render(out, tree)
		})
	}
}

// startDebugServer listens on addr and serves handler until stop is called.
func startDebugServer(addr string, handler http.Handler, logger *slog.Logger) (stop func(), bound string, err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", fmt.Errorf("debug server: %w", err)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("debug server failed", "err", err)
		}
	}()
	logger.Info("Debug server listening", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, ln.Addr().String(), nil
}
