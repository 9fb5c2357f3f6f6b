package claimform

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/claimform/internal/expression"
	"github.com/aretw0/claimform/internal/logging"
	"github.com/aretw0/claimform/internal/validation"
	"github.com/aretw0/claimform/internal/xmlbuilder"
	"github.com/aretw0/claimform/pkg/adapters/memory"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/observability"
	"github.com/aretw0/claimform/pkg/ports"
)

// DefaultRootTag is the root element of assembled claim documents.
const DefaultRootTag = "DWPBody"

// Engine is the high-level entry point for the claimform library.
// It owns the message source and mapping loader and builds the rule
// interpreters on top of them.
type Engine struct {
	messages   ports.MessageSource
	mappings   ports.MappingLoader
	logger     *slog.Logger
	metrics    *observability.Metrics
	now        func() time.Time
	rootTag    string
	namespaces []xmlbuilder.Attr

	evaluator *expression.Evaluator
	assembler *xmlbuilder.Assembler

	mu    sync.Mutex
	forms map[string]*validation.FormValidations
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithMessages sets the source of form, rule and question configuration.
func WithMessages(source ports.MessageSource) Option {
	return func(e *Engine) {
		e.messages = source
	}
}

// WithMappingLoader sets where Assemble reads mapping lists from.
func WithMappingLoader(loader ports.MappingLoader) Option {
	return func(e *Engine) {
		e.mappings = loader
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records validation, evaluation and assembly metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithClock overrides the time source used by date rules and expressions.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRootTag sets the root element of assembled documents (default: DWPBody).
func WithRootTag(tag string) Option {
	return func(e *Engine) {
		e.rootTag = tag
	}
}

// WithNamespaces replaces the attributes placed on the root element.
func WithNamespaces(attrs []xmlbuilder.Attr) Option {
	return func(e *Engine) {
		e.namespaces = attrs
	}
}

// New initializes an Engine. Without WithMessages it uses an empty source,
// which is enough for assembling documents that ask no questions.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		rootTag:    DefaultRootTag,
		namespaces: xmlbuilder.DefaultNamespaces(),
		now:        time.Now,
		forms:      make(map[string]*validation.FormValidations),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.messages == nil {
		eng.messages = memory.NewMessages(nil)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.evaluator = expression.New(eng.messages,
		expression.WithClock(eng.now),
		expression.WithLogger(eng.logger),
		expression.WithMetrics(eng.metrics),
	)

	asm, err := xmlbuilder.New(eng.rootTag,
		xmlbuilder.WithNamespaces(eng.namespaces),
		xmlbuilder.WithMessages(eng.messages),
		xmlbuilder.WithEvaluator(eng.evaluator),
		xmlbuilder.WithLogger(eng.logger),
		xmlbuilder.WithMetrics(eng.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize assembler: %w", err)
	}
	eng.assembler = asm

	return eng, nil
}

// Form returns the validations of the named form, building them on first use.
// Configuration errors are not cached so a corrected source can be retried.
func (e *Engine) Form(name string) (*validation.FormValidations, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if fv, ok := e.forms[name]; ok {
		return fv, nil
	}

	fv, err := validation.NewFormValidations(e.messages, name,
		validation.WithLogger(e.logger),
		validation.WithMetrics(e.metrics),
		validation.WithClock(e.now),
	)
	if err != nil {
		return nil, fmt.Errorf("form %q: %w", name, err)
	}
	e.forms[name] = fv
	return fv, nil
}

// Validate checks a submission against the named form.
// request holds the submitted values and existing the values already stored
// for the claim; request wins when both carry a field.
func (e *Engine) Validate(formName string, request, existing domain.FieldValues) (*domain.ValidationSummary, error) {
	fv, err := e.Form(formName)
	if err != nil {
		return nil, err
	}
	return fv.Validate(domain.NewValidationSummary(), request, existing), nil
}

// Assemble builds the claim document from values using the named mapping list.
func (e *Engine) Assemble(values domain.ClaimValues, mappingName string) (*xmlbuilder.Document, error) {
	if e.mappings == nil {
		return nil, fmt.Errorf("no mapping loader configured")
	}
	mappings, err := e.mappings.LoadMappings(mappingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load mappings %q: %w", mappingName, err)
	}
	return e.assembler.Assemble(values, mappings)
}

// Evaluate resolves a single expression against values.
func (e *Engine) Evaluate(expr string, values domain.ClaimValues) (string, error) {
	return e.evaluator.Evaluate(expr, values)
}

// Messages returns the message source used by the engine.
func (e *Engine) Messages() ports.MessageSource {
	return e.messages
}
