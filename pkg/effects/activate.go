package effects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/aretw0/playbox/pkg/ports"
)

// ActivateMode decides the active flag written to the subjects.
type ActivateMode int

const (
	// Enable activates the subjects on every invocation.
	Enable ActivateMode = iota
	// Disable deactivates the subjects on every invocation.
	Disable
	// EnableOnEnter activates on enter and deactivates on exit.
	EnableOnEnter
	// EnableOnExit activates on exit and deactivates on enter.
	EnableOnExit
)

func (m ActivateMode) String() string {
	switch m {
	case Enable:
		return "enable"
	case Disable:
		return "disable"
	case EnableOnEnter:
		return "enable_on_enter"
	case EnableOnExit:
		return "enable_on_exit"
	}
	return fmt.Sprintf("ActivateMode(%d)", int(m))
}

// ParseActivateMode parses the text form of a mode.
func ParseActivateMode(s string) (ActivateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "enable":
		return Enable, nil
	case "disable":
		return Disable, nil
	case "enable_on_enter", "enable_on_enter_disable_on_exit":
		return EnableOnEnter, nil
	case "enable_on_exit", "enable_on_exit_disable_on_enter":
		return EnableOnExit, nil
	}
	return 0, fmt.Errorf("unknown activate mode %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ActivateMode) UnmarshalText(text []byte) error {
	parsed, err := ParseActivateMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Activate sets the active flag of its subject nodes.
type Activate struct {
	fsm.EffectSettings
	Mode     ActivateMode
	Subjects []domain.NodeID
}

// Kind implements fsm.Kinded.
func (a *Activate) Kind() string { return "activate" }

// Enabled returns the flag written for the given edge.
func (a *Activate) Enabled(entering bool) bool {
	return a.Mode == Enable ||
		(a.Mode == EnableOnEnter && entering) ||
		(a.Mode == EnableOnExit && !entering)
}

// InvokeEffect implements fsm.Effect. Every subject is attempted; failures
// are joined. The host must support ports.SceneEditor.
func (a *Activate) InvokeEffect(_ context.Context, entering bool, s *fsm.State) error {
	if len(a.Subjects) == 0 {
		return nil
	}
	editor, ok := s.Tree().Host().(ports.SceneEditor)
	if !ok {
		return domain.ErrEditorUnavailable
	}

	enable := a.Enabled(entering)
	var errs []error
	for _, id := range a.Subjects {
		if err := editor.SetActive(id, enable); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
