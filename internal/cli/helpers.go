package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/playbox"
	"github.com/aretw0/playbox/internal/logging"
)

// createLogger configures the application logger from the --log-level flag.
// Anything above debug is only written on warnings, so the default run
// output stays the tree and the summary.
func createLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, ">>> %s\n", fmt.Sprintf(format, args...))
}

// selectionSignature identifies the current selection of the whole tree.
func selectionSignature(views []playbox.StateView) string {
	var sb strings.Builder
	for _, v := range views {
		if v.Selected {
			sb.WriteString(string(v.ID))
			sb.WriteByte(';')
		}
	}
	return sb.String()
}

// crlfWriter translates "\n" to "\r\n"; a terminal in raw mode does not.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}
