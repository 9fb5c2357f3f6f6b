package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/claimform"
	"github.com/aretw0/claimform/internal/logging"
	"github.com/aretw0/claimform/internal/presentation/tui"
	"github.com/aretw0/claimform/pkg/adapters/mappingfile"
	"github.com/aretw0/claimform/pkg/adapters/properties"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/observability"
)

// CreateLogger configures the application logger.
// Debug forces the debug level; otherwise LogLevel applies and an unset
// level keeps the CLI quiet.
func CreateLogger(cfg Config) (*slog.Logger, error) {
	if cfg.Debug {
		return logging.NewWith(os.Stderr, slog.LevelDebug, logging.Format(cfg.LogFormat)), nil
	}
	if cfg.LogLevel == "" {
		return logging.NewNop(), nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWith(os.Stderr, level, logging.Format(cfg.LogFormat)), nil
}

// NewEngine initializes an engine with standard CLI conventions: property
// files for messages and a mapping directory for assembly.
func NewEngine(cfg Config, logger *slog.Logger, metrics *observability.Metrics) (*claimform.Engine, error) {
	opts := []claimform.Option{
		claimform.WithLogger(logger),
		claimform.WithMetrics(metrics),
	}

	if len(cfg.Messages) > 0 {
		source, err := properties.LoadFiles(cfg.Messages...)
		if err != nil {
			return nil, fmt.Errorf("error loading messages: %w", err)
		}
		logger.Debug("messages loaded", "files", cfg.Messages, "count", source.Len())
		opts = append(opts, claimform.WithMessages(source))
	}
	if cfg.Mappings != "" {
		opts = append(opts, claimform.WithMappingLoader(mappingfile.NewLoader(cfg.Mappings)))
	}
	if cfg.Root != "" {
		opts = append(opts, claimform.WithRootTag(cfg.Root))
	}

	engine, err := claimform.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// PrintSummary writes the validation outcome of form to w. Pretty output is
// markdown rendered for the terminal; plain output is one line per failure.
func PrintSummary(w io.Writer, form string, summary *domain.ValidationSummary, pretty bool) error {
	if pretty {
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		out, err := render(tui.SummaryMarkdown(form, summary))
		if err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		_, err = fmt.Fprint(w, out)
		return err
	}

	if !summary.HasFormErrors() {
		_, err := fmt.Fprintln(w, tui.Status(true, fmt.Sprintf("%s is valid", form)))
		return err
	}
	for _, e := range summary.FormErrors() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.ID, e.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, tui.Status(false, fmt.Sprintf("%d problem(s) in %s", summary.Len(), form)))
	return err
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
