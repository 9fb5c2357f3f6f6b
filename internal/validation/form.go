package validation

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/claimform/internal/dependency"
	"github.com/aretw0/claimform/internal/logging"
	"github.com/aretw0/claimform/internal/messages"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/observability"
	"github.com/aretw0/claimform/pkg/ports"
)

// FieldsKeyFormat locates the comma separated field list of a form.
const FieldsKeyFormat = "%s.fields"

// FormValidations holds the rule chains of one form. It is immutable once
// built and may be shared across goroutines; each Validate call writes only
// to the summary it is given.
type FormValidations struct {
	formName string
	fields   []string
	graph    *dependency.Graph
	rules    map[string][]Rule
	global   Rule

	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures FormValidations.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	metrics       *observability.Metrics
	now           func() time.Time
	dependencyKey string
}

// WithLogger sets the logger used while building and validating.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records validation passes and failures.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock sets the clock behind "now()" date limits.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDependencyKeyFormat overrides "%s.validation.dependency".
func WithDependencyKeyFormat(format string) Option {
	return func(o *options) {
		o.dependencyKey = format
	}
}

// NewFormValidations builds the validations of formName, reading its fields
// from "<formName>.fields".
func NewFormValidations(source ports.MessageSource, formName string, opts ...Option) (*FormValidations, error) {
	if formName == "" {
		return nil, &domain.ConfigurationError{Key: "formName", Reason: "form name is required"}
	}
	key := fmt.Sprintf(FieldsKeyFormat, formName)
	raw, ok := messages.Get(source, key)
	if !ok {
		return nil, &domain.ConfigurationError{Key: key, Reason: "no field list", Err: domain.ErrMessageNotFound}
	}
	return NewFormValidationsForFields(source, formName, SplitFields(raw), opts...)
}

// NewFormValidationsForFields builds the validations for an explicit field list.
func NewFormValidationsForFields(source ports.MessageSource, formName string, fields []string, opts ...Option) (*FormValidations, error) {
	o := options{logger: logging.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if source == nil {
		return nil, &domain.ConfigurationError{Key: formName, Reason: "message source is required"}
	}
	if len(fields) == 0 {
		return nil, &domain.ConfigurationError{Key: formName, Reason: "form declares no fields"}
	}

	fv := &FormValidations{
		formName: formName,
		fields:   append([]string(nil), fields...),
		rules:    make(map[string][]Rule),
		logger:   o.logger.With("form", formName),
		metrics:  o.metrics,
	}

	graph, err := dependency.Load(source, o.dependencyKey, fv.fields, fv.fields)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", formName, err)
	}
	fv.graph = graph

	if err := fv.buildRules(source, o.now); err != nil {
		return nil, fmt.Errorf("form %s: %w", formName, err)
	}

	global, err := NewGlobalRegexRule(source)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", formName, err)
	}
	fv.global = global

	fv.logger.Info("form validations built", "fields", len(fv.fields), "rules", fv.ruleCount(), "global_regex", global != nil)
	return fv, nil
}

// buildRules tries every kind for every field. A missing key means the kind
// does not apply.
func (fv *FormValidations) buildRules(source ports.MessageSource, now func() time.Time) error {
	known := make(map[string]bool, len(fv.fields))
	for _, f := range fv.fields {
		known[f] = true
	}

	for _, kind := range Kinds() {
		for _, field := range fv.fields {
			key := fmt.Sprintf(kind.KeyFormat(), field)
			condition, _ := messages.Get(source, key)

			params, err := auxiliaryParams(source, kind, field, key)
			if err != nil {
				return err
			}

			rule, err := NewRule(kind, key, condition, params, source, WithNow(now))
			if err != nil {
				return err
			}
			if rule == nil {
				continue
			}
			if eq, ok := rule.(*EqualsRule); ok && !known[eq.Other] {
				return &domain.ConfigurationError{Key: key, Reason: fmt.Sprintf("compares with %q", eq.Other), Err: domain.ErrUnknownField}
			}

			fv.logger.Debug("rule added", "field", field, "kind", kind.String(), "condition", condition)
			fv.rules[field] = append(fv.rules[field], rule)
		}
	}
	return nil
}

// auxiliaryParams reads the sibling keys of a kind, keyed by the suffix after
// the main key, e.g. "lowerlimit".
func auxiliaryParams(source ports.MessageSource, kind Kind, field, key string) (map[string]string, error) {
	formats := kind.AuxiliaryKeyFormats()
	if len(formats) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(formats))
	for _, format := range formats {
		auxKey := fmt.Sprintf(format, field)
		if !strings.HasPrefix(auxKey, key+".") {
			return nil, &domain.ConfigurationError{Key: auxKey, Reason: fmt.Sprintf("does not share the stem of %q", key)}
		}
		if v, ok := messages.Get(source, auxKey); ok {
			params[auxKey[len(key)+1:]] = v
		}
	}
	return params, nil
}

// Validate runs every applicable rule and appends failures to summary,
// allocating one when summary is nil. Fields are visited in declared order.
// A field failing the global pattern skips its own rules; otherwise every rule
// of an active field runs, even after an earlier one failed.
func (fv *FormValidations) Validate(summary *domain.ValidationSummary, request, existing domain.FieldValues) *domain.ValidationSummary {
	if summary == nil {
		summary = domain.NewValidationSummary()
	}
	before := summary.Len()

	for _, field := range fv.fields {
		if fv.global != nil && !fv.global.Validate(summary, field, request, existing) {
			fv.logger.Debug("global pattern failed", "field", field)
			continue
		}

		chain, ok := fv.rules[field]
		if !ok {
			continue
		}
		if !fv.graph.IsActive(field, request) {
			fv.logger.Debug("skipping inactive field", "field", field)
			continue
		}

		for _, rule := range chain {
			if !rule.Validate(summary, field, request, existing) {
				fv.logger.Debug("rule failed", "field", field, "kind", rule.Kind().String())
			}
		}
	}

	if fv.metrics != nil {
		var failed []string
		for _, e := range summary.FormErrors()[before:] {
			failed = append(failed, e.ID)
		}
		fv.metrics.RecordValidation(fv.formName, failed)
	}
	return summary
}

// FormName returns the name the validations were built for.
func (fv *FormValidations) FormName() string { return fv.formName }

// Fields returns the fields in declared order.
func (fv *FormValidations) Fields() []string {
	return append([]string(nil), fv.fields...)
}

// Rules returns the chain of field in evaluation order.
func (fv *FormValidations) Rules(field string) []Rule {
	return append([]Rule(nil), fv.rules[field]...)
}

// Graph returns the fold-out dependencies of the form.
func (fv *FormValidations) Graph() *dependency.Graph { return fv.graph }

func (fv *FormValidations) ruleCount() int {
	n := 0
	for _, chain := range fv.rules {
		n += len(chain)
	}
	return n
}

// SplitFields parses a comma separated field list, dropping blanks and duplicates.
func SplitFields(raw string) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		fields = append(fields, f)
	}
	return fields
}
