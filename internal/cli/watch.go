package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/playbox/internal/presentation/tui"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// RunWatch plays the scene in development mode, restarting it whenever the
// scene file changes. It returns when ctx is done.
func RunWatch(ctx context.Context, opts RunOptions, out io.Writer) error {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	changes, stop, err := watchFile(ctx, opts.ScenePath, logger)
	if err != nil {
		return err
	}
	defer stop()

	if !opts.Quiet {
		tui.PrintBanner(out)
	}
	logger.Info("Starting Watcher", "path", opts.ScenePath)
	printSystemMessage(out, "Watching '%s'.", opts.ScenePath)

	iterOpts := opts
	iterOpts.Quiet = true
	for {
		if !runWatchIteration(ctx, iterOpts, out, changes, logger) {
			return nil
		}
		logger.Info("Watcher restarting")
	}
}

// runWatchIteration runs one session and reports whether to start another.
func runWatchIteration(parent context.Context, opts RunOptions, out io.Writer, changes <-chan struct{}, logger *slog.Logger) bool {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- RunSession(ctx, opts, out)
	}()

	select {
	case <-parent.Done():
		cancel()
		<-done
		printSystemMessage(out, "Watcher stopped.")
		return false
	case <-changes:
		cancel()
		<-done
		printSystemMessage(out, "Change detected in '%s'.", opts.ScenePath)
		return true
	case err := <-done:
		if err != nil {
			logger.Error("Session failed", "err", err)
			printSystemMessage(out, "Error: %v", err)
		}
		printSystemMessage(out, "Waiting for changes...")
		select {
		case <-parent.Done():
			return false
		case <-changes:
			printSystemMessage(out, "Change detected in '%s'.", opts.ScenePath)
			return true
		}
	}
}

// watchFile reports debounced writes to path. The parent directory is
// watched so that editors replacing the file are noticed too.
func watchFile(ctx context.Context, path string, logger *slog.Logger) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		var debounce <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					debounce = time.After(reloadDebounce)
				}
			case <-debounce:
				debounce = nil
				select {
				case changes <- struct{}{}:
				default:
					// A reload is already pending
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "err", err)
			}
		}
	}()

	return changes, func() { _ = watcher.Close() }, nil
}
