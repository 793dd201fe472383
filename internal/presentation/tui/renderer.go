package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/muesli/termenv"
)

// TreeRenderer prints the state hierarchy with its live selection.
type TreeRenderer struct {
	Profile termenv.Profile
}

// NewTreeRendererFor detects the color profile of w. Writers that are not
// terminals get plain text.
func NewTreeRendererFor(w io.Writer) *TreeRenderer {
	return &TreeRenderer{Profile: termenv.NewOutput(w).EnvColorProfile()}
}

// Render writes one line per active state. Selected states get a filled
// marker and bold text; states outside the selectable path are faint.
func (r *TreeRenderer) Render(w io.Writer, tree *fsm.Tree) error {
	var sb strings.Builder
	tree.Walk(func(s *fsm.State, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(r.line(s))
		sb.WriteByte('\n')
		return true
	})
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *TreeRenderer) line(s *fsm.State) string {
	marker := "○"
	if s.IsSelectedState() {
		marker = "●"
	}

	name := r.Profile.String(s.Name())
	if s.Color() != domain.Black {
		name = name.Foreground(r.Profile.Color(s.Color().Hex()))
	}
	switch {
	case s.IsSelectableState() && s.IsSelectedState():
		name = name.Bold()
	case !s.IsSelectableState():
		name = name.Faint()
	}

	var tags []string
	if s.HasChildren() {
		tags = append(tags, s.Mode().String())
	}
	if s.Parent() != nil && s.IsDefaultState() {
		tags = append(tags, "default")
	}
	suffix := ""
	if len(tags) > 0 {
		suffix = " " + r.Profile.String("("+strings.Join(tags, ", ")+")").Faint().String()
	}
	return fmt.Sprintf("%s %s%s", marker, name, suffix)
}
