package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/playbox/pkg/domain"
	"github.com/aretw0/playbox/pkg/fsm"
)

// GraphOverlay contains dynamic selection data to visualize on the graph.
type GraphOverlay struct {
	Selected []domain.NodeID
	Defaults []domain.NodeID
}

// OverlayFromTree captures the current selection and defaults of every
// non-root state.
func OverlayFromTree(tree *fsm.Tree) *GraphOverlay {
	o := &GraphOverlay{}
	tree.Walk(func(s *fsm.State, depth int) bool {
		if depth == 0 {
			return true
		}
		if s.IsSelectedState() {
			o.Selected = append(o.Selected, s.ID())
		}
		if s.IsDefaultState() {
			o.Defaults = append(o.Defaults, s.ID())
		}
		return true
	})
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the state hierarchy.
// States with children become subgraphs. Leaf shapes follow the selection
// mode of the state:
// - SingleRequired: [Rectangle]
// - SingleOptional: (Rounded)
// - Multiple: [[Subroutine]]
// Exit transitions with a destination are drawn as labeled arrows between
// siblings; other transitions are drawn from the parent as dotted arrows.
// It also applies overlay styles (Default/Selected) if provided.
func GenerateMermaid(tree *fsm.Tree, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var edges []string
	var styles []string

	var visit func(s *fsm.State, indent string)
	visit = func(s *fsm.State, indent string) {
		safeID := sanitizeMermaidID(string(s.ID()))
		label := strings.ReplaceAll(s.Name(), "\"", "'")

		if s.HasChildren() {
			fmt.Fprintf(&sb, "%ssubgraph %s[\"%s <br/> %s\"]\n", indent, safeID, label, s.Mode())
			for _, c := range s.Children() {
				visit(c, indent+"    ")
			}
			fmt.Fprintf(&sb, "%send\n", indent)
		} else {
			opener, closer := "[", "]"
			switch s.Mode() {
			case domain.SingleOptional:
				opener, closer = "(", ")"
			case domain.Multiple:
				opener, closer = "[[", "]]"
			}
			fmt.Fprintf(&sb, "%s%s%s\"%s\"%s\n", indent, safeID, opener, label, closer)
		}

		if s.Color() != domain.Black {
			styles = append(styles, fmt.Sprintf("    style %s stroke:%s,stroke-width:2px\n", safeID, s.Color().Hex()))
		}
		edges = append(edges, transitionEdges(s, safeID)...)
	}

	for _, r := range tree.Roots() {
		visit(r, "    ")
	}

	for _, e := range edges {
		sb.WriteString(e)
	}
	for _, st := range styles {
		sb.WriteString(st)
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef default_state stroke-dasharray: 4 2,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, id := range overlay.Defaults {
			fmt.Fprintf(&sb, "    class %s default_state;\n", sanitizeMermaidID(string(id)))
		}
		for _, id := range overlay.Selected {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(string(id)))
		}
	}

	return sb.String()
}

func transitionEdges(s *fsm.State, safeID string) []string {
	var out []string
	for _, tr := range s.Transitions() {
		base := tr.Base()
		kind := kindOf(tr)
		if base.Disabled {
			kind += " (off)"
		}

		switch {
		case base.Type == domain.ExitFromThisState && !base.Destination.IsZero():
			out = append(out, fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, kind, sanitizeMermaidID(string(base.Destination))))
		case base.Type == domain.ExitFromThisState:
			if p := s.Parent(); p != nil {
				out = append(out, fmt.Sprintf("    %s -. \"%s\" .-> %s\n", safeID, kind, sanitizeMermaidID(string(p.ID()))))
			}
		default:
			if p := s.Parent(); p != nil {
				out = append(out, fmt.Sprintf("    %s -. \"%s\" .-> %s\n", sanitizeMermaidID(string(p.ID())), kind, safeID))
			}
		}
	}
	return out
}

func kindOf(c any) string {
	if k, ok := c.(fsm.Kinded); ok {
		return k.Kind()
	}
	return "transition"
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
