// Package expression evaluates the "${...}" template language used by
// question arguments and computed claim values.
//
// A template mixes literal text with substitutions:
//
//	"${carerFirstName} ${carerSurname}"
//	"${cads:dateOffset(dateOfClaim_day, dateOfClaim_month, dateOfClaim_year, 'd MMMM yyyy', '-1 week')}"
//	"${cads:prop('claim.heading')}"
//
// Variable values are evaluated again, so a value may itself be a template.
package expression

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/claimform/internal/logging"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/observability"
	"github.com/aretw0/claimform/pkg/ports"
)

const (
	functionPrefix = "${cads:"
	substitution   = "${"

	// DefaultMaxDepth bounds nested evaluation.
	DefaultMaxDepth = 32
)

// DefaultAliases maps whole expressions to fixed placeholders that the
// consuming system substitutes itself.
func DefaultAliases() map[string]string {
	return map[string]string{
		"${careeFirstName} ${careeSurname}": "@dpname",
		"${carerFirstName} ${carerSurname}": "@yourname",
	}
}

// Evaluator evaluates templates against claim values. It holds no per-call
// state and is safe for concurrent use.
type Evaluator struct {
	source   ports.MessageSource
	aliases  map[string]string
	maxDepth int
	now      func() time.Time
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithAliases replaces the default aliases. A nil map disables aliasing.
func WithAliases(aliases map[string]string) Option {
	return func(e *Evaluator) {
		e.aliases = make(map[string]string, len(aliases))
		for k, v := range aliases {
			e.aliases[k] = v
		}
	}
}

// WithMaxDepth bounds nested evaluation. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(e *Evaluator) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithClock sets the clock behind dateOffsetFromCurrent.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics counts failed expressions.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// New creates an evaluator. source backs the prop function and may be nil.
func New(source ports.MessageSource, opts ...Option) *Evaluator {
	e := &Evaluator{
		source:   source,
		aliases:  DefaultAliases(),
		maxDepth: DefaultMaxDepth,
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run carries the state of one top-level evaluation.
type run struct {
	values domain.ClaimValues
	stack  []string // names being resolved, outermost first
}

func (r *run) push(name string) error {
	for i, n := range r.stack {
		if n == name {
			path := append(append([]string(nil), r.stack[i:]...), name)
			return fmt.Errorf("%w: cycle %s", domain.ErrRecursionLimit, strings.Join(path, " -> "))
		}
	}
	r.stack = append(r.stack, name)
	return nil
}

func (r *run) pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

// Evaluate resolves every substitution in expr.
func (e *Evaluator) Evaluate(expr string, values domain.ClaimValues) (string, error) {
	return e.evaluate(expr, &run{values: values}, 0)
}

// EvaluateList evaluates a pipe separated list of expressions, e.g. the
// ".args" of a question, into positional message arguments.
func (e *Evaluator) EvaluateList(exprs string, values domain.ClaimValues) ([]string, error) {
	parts := strings.Split(exprs, "|")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		v, err := e.Evaluate(part, values)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Evaluator) evaluate(expr string, r *run, depth int) (string, error) {
	if depth > e.maxDepth {
		return "", e.fail(expr, "", fmt.Sprintf("nested deeper than %d", e.maxDepth), domain.ErrRecursionLimit)
	}
	if alias, ok := e.aliases[expr]; ok {
		return alias, nil
	}

	segments := Split(expr)
	switch {
	case len(segments) == 0:
		return "", nil
	case len(segments) > 1:
		var sb strings.Builder
		for _, seg := range segments {
			v, err := e.evaluate(seg, r, depth+1)
			if err != nil {
				return "", err
			}
			sb.WriteString(v)
		}
		return sb.String(), nil
	case strings.HasPrefix(expr, functionPrefix):
		return e.call(expr, r, depth)
	}
	return e.variable(expr, r, depth)
}

// variable resolves "${name}". Literal text is returned unchanged.
func (e *Evaluator) variable(expr string, r *run, depth int) (string, error) {
	if !strings.HasPrefix(expr, substitution) {
		return expr, nil
	}
	name, _, _ := strings.Cut(expr[len(substitution):], "}")

	value, _ := r.values[name].(string)
	if value == "" {
		return "", nil
	}
	// A value that looks exactly like its own reference is a fixed point.
	if value == expr {
		return value, nil
	}

	if err := r.push(name); err != nil {
		return "", e.fail(expr, "", "self-referencing value", err)
	}
	defer r.pop()
	return e.evaluate(value, r, depth+1)
}

// fail wraps err as an EvaluationError and counts it once, where it happened.
func (e *Evaluator) fail(expr, function, reason string, err error) error {
	var evalErr *domain.EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}
	e.metrics.RecordEvaluationError(function)
	e.logger.Debug("expression failed", "expression", expr, "function", function, "reason", reason, "error", err)
	return &domain.EvaluationError{Expression: expr, Reason: reason, Err: err}
}
