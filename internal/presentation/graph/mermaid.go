package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/claimform/internal/dependency"
)

// GraphOverlay contains per-submission state to visualize on the graph.
type GraphOverlay struct {
	ActiveFields []string
	FailedFields []string
}

// GenerateMermaid produces a Mermaid flowchart of a form's fold-out sections.
// Edges point from the gating field to the field it reveals and are labelled
// with the required value. Shapes:
// - Unconditional field: [Rectangle]
// - Fold-out field: [/Parallelogram/]
// - Field gated by several clauses: {{Hexagon}}
// Overlay styles (active/failed) are applied if provided.
func GenerateMermaid(g *dependency.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, field := range g.Fields() {
		safeID := sanitizeMermaidID(field)

		opener, closer := "[", "]"
		dep, gated := g.Dependency(field)
		switch {
		case gated && dep.IsAggregate():
			opener, closer = "{{", "}}" // Hexagon
		case gated:
			opener, closer = "[/", "/]" // Parallelogram
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, field, closer))

		for _, c := range dep.Clauses {
			label := strings.ReplaceAll(c.Value, "\"", "'")
			arrow := fmt.Sprintf("-- \"%s\" -->", label)
			if dep.IsAggregate() {
				arrow = fmt.Sprintf("-. \"& %s\" .->", label)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(c.Field), arrow, safeID))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef active fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		writeClass(&sb, overlay.ActiveFields, "active")
		writeClass(&sb, overlay.FailedFields, "failed")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, fields []string, class string) {
	seen := make(map[string]bool)
	for _, id := range fields {
		safeID := sanitizeMermaidID(id)
		if safeID == "" || seen[safeID] {
			continue
		}
		seen[safeID] = true
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", safeID, class))
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
