package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/claimform/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// SummaryMarkdown lays a validation summary out as a markdown report.
// Failures are grouped per field in the order the fields first failed.
func SummaryMarkdown(form string, summary *domain.ValidationSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", form)

	if summary == nil || !summary.HasFormErrors() {
		sb.WriteString("All answers are valid.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "**%d problem(s) found**\n\n", summary.Len())

	var order []string
	grouped := make(map[string][]domain.FormError)
	for _, e := range summary.FormErrors() {
		if _, ok := grouped[e.ID]; !ok {
			order = append(order, e.ID)
		}
		grouped[e.ID] = append(grouped[e.ID], e)
	}

	for _, id := range order {
		errs := grouped[id]
		fmt.Fprintf(&sb, "## %s\n\n", escape(errs[0].DisplayName))
		fmt.Fprintf(&sb, "`%s`\n\n", id)
		for _, e := range errs {
			fmt.Fprintf(&sb, "- %s\n", escape(e.Message))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`)
	return r.Replace(s)
}
