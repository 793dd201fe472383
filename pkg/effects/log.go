package effects

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/playbox/pkg/fsm"
)

// Log writes a line through the tree logger each time it runs.
type Log struct {
	fsm.EffectSettings
	Message string
	// Level defaults to slog.LevelInfo.
	Level slog.Level
}

// Kind implements fsm.Kinded.
func (l *Log) Kind() string { return "log" }

// Line formats the message for the given edge.
func (l *Log) Line(entering bool, s *fsm.State) string {
	edge := "Exit"
	if entering {
		edge = "Enter"
	}
	return fmt.Sprintf("%s: (%s) %s", edge, s.Name(), l.Message)
}

// InvokeEffect implements fsm.Effect.
func (l *Log) InvokeEffect(ctx context.Context, entering bool, s *fsm.State) error {
	s.Tree().Logger().Log(ctx, l.Level, l.Line(entering, s), "state_id", s.ID(), "entering", entering)
	return nil
}
