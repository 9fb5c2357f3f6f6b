// Package xmlbuilder assembles claim documents from flat claim values and an
// ordered list of path mappings.
package xmlbuilder

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/claimform/internal/expression"
	"github.com/aretw0/claimform/internal/logging"
	"github.com/aretw0/claimform/internal/messages"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/observability"
	"github.com/aretw0/claimform/pkg/ports"
)

// DefaultNamespaces are set on the root element of carers allowance claims.
func DefaultNamespaces() []Attr {
	return []Attr{
		{Name: "xmlns", Value: "http://www.govtalk.gov.uk/dwp/carers-allowance"},
		{Name: "xmlns:ds", Value: "http://www.w3.org/2000/09/xmldsig#"},
		{Name: "xmlns:xsi", Value: "http://www.w3.org/2001/XMLSchema-instance"},
		{Name: "xsi:schemaLocation", Value: "http://www.govtalk.gov.uk/dwp/carers-allowance file:/future/schema/ca/CarersAllowance_Schema.xsd"},
	}
}

// DefaultRepeatingSegment always creates a new sibling instead of reusing one.
const DefaultRepeatingSegment = "Line"

// OrderAttr numbers the entries of a field collection.
const OrderAttr = "order"

// DefaultTextReplacements rewrite whole text values.
func DefaultTextReplacements() map[string]string {
	return map[string]string{"yes": "Yes", "no": "No"}
}

// Assembler maps claim values onto a document. Its configuration is
// read-only after New; every Assemble call builds a fresh Document.
type Assembler struct {
	rootTag      string
	namespaces   []Attr
	mappingSets  map[string]domain.MappingList
	repeating    map[string]bool
	replacements map[string]string
	source       ports.MessageSource
	evaluator    *expression.Evaluator
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithNamespaces replaces the root attributes.
func WithNamespaces(attrs []Attr) Option {
	return func(a *Assembler) {
		a.namespaces = append([]Attr(nil), attrs...)
	}
}

// WithMappingSet registers the mappings used for each entry of the field
// collection stored under valueKey.
func WithMappingSet(valueKey string, mappings domain.MappingList) Option {
	return func(a *Assembler) {
		a.mappingSets[valueKey] = append(domain.MappingList(nil), mappings...)
	}
}

// WithRepeatingSegments replaces the tags that always start a new sibling.
func WithRepeatingSegments(tags ...string) Option {
	return func(a *Assembler) {
		a.repeating = make(map[string]bool, len(tags))
		for _, t := range tags {
			a.repeating[t] = true
		}
	}
}

// WithTextReplacements replaces the whole-value text rewrites.
func WithTextReplacements(replacements map[string]string) Option {
	return func(a *Assembler) {
		a.replacements = make(map[string]string, len(replacements))
		for k, v := range replacements {
			a.replacements[k] = v
		}
	}
}

// WithMessages sets the source of question texts and their ".args".
func WithMessages(source ports.MessageSource) Option {
	return func(a *Assembler) {
		a.source = source
	}
}

// WithEvaluator sets the evaluator for question arguments.
func WithEvaluator(e *expression.Evaluator) Option {
	return func(a *Assembler) {
		a.evaluator = e
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics records assembly duration and size.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// New creates an assembler producing documents rooted at rootTag.
func New(rootTag string, opts ...Option) (*Assembler, error) {
	if !validName(rootTag) {
		return nil, &domain.DataShapeError{Path: rootTag, Reason: "invalid root element name"}
	}

	a := &Assembler{
		rootTag:      rootTag,
		namespaces:   DefaultNamespaces(),
		mappingSets:  make(map[string]domain.MappingList),
		repeating:    map[string]bool{DefaultRepeatingSegment: true},
		replacements: DefaultTextReplacements(),
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.evaluator == nil {
		a.evaluator = expression.New(a.source, expression.WithLogger(a.logger), expression.WithMetrics(a.metrics))
	}
	return a, nil
}

// Assemble builds a document from values using mappings in order.
// Data shape errors abort the build; question texts that cannot be resolved
// are rendered as visible placeholders instead.
func (a *Assembler) Assemble(values domain.ClaimValues, mappings domain.MappingList) (*Document, error) {
	start := time.Now()
	b := &build{a: a, doc: newDocument(a.rootTag, a.namespaces)}

	if err := b.addNodes(values, mappings, root); err != nil {
		return nil, err
	}

	elements := b.doc.Elements()
	a.metrics.RecordAssembly(time.Since(start), elements)
	a.logger.Debug("claim assembled", "root", a.rootTag, "mappings", len(mappings), "elements", elements)
	return b.doc, nil
}

// build is the state of one Assemble call.
type build struct {
	a   *Assembler
	doc *Document
}

func (b *build) addNodes(values domain.ClaimValues, mappings domain.MappingList, local int) error {
	// Pass 1: answered keys, used to decide which questions to render.
	answered := make(map[string]bool)
	for _, m := range mappings {
		if strings.TrimSpace(m.XPath) == "" {
			continue
		}
		if s, ok := resolve(m.ValueKey, values).(string); ok && !domain.IsBlank(s) {
			answered[m.ValueKey] = true
		}
	}

	// Pass 2: materialize.
	for _, m := range mappings {
		xpath := strings.TrimSpace(m.XPath)
		value := resolve(m.ValueKey, values)

		if xpath != "" && !isEmpty(value) {
			if err := b.addValue(m, xpath, value, local); err != nil {
				return err
			}
			continue
		}

		if xpath == "" || !m.IsQuestion() {
			continue
		}
		answer := m.AnswerKey()
		if !answered[answer] && !answered[answer+domain.SuffixLineOne] {
			b.a.logger.Debug("question without answer omitted", "key", m.ValueKey)
			continue
		}
		if _, err := b.addNode(xpath, b.question(m.ValueKey, values), local); err != nil {
			return dataShape(m, err)
		}
	}
	return nil
}

func (b *build) addValue(m domain.PathMapping, xpath string, value any, local int) error {
	if s, ok := value.(string); ok {
		if m.SetsAttribute() {
			name := m.AttributeName()
			if !validName(name) {
				return &domain.DataShapeError{Key: m.ValueKey, Path: xpath, Reason: fmt.Sprintf("invalid attribute name %q", name)}
			}
			if err := b.addAttr(xpath, name, s, local); err != nil {
				return dataShape(m, err)
			}
			return nil
		}
		if _, err := b.addNode(xpath, s, local); err != nil {
			return dataShape(m, err)
		}
		return nil
	}

	collection, err := asCollection(value)
	if err != nil {
		return &domain.DataShapeError{Key: m.ValueKey, Path: xpath, Reason: err.Error()}
	}
	return b.addCollection(m, xpath, collection, local)
}

// addCollection creates one element per entry at xpath, numbered with an
// order attribute, and fills it through the mapping set registered for the
// value key or, without one, one child per entry key in sorted order.
func (b *build) addCollection(m domain.PathMapping, xpath string, collection domain.FieldCollection, local int) error {
	set, hasSet := b.a.mappingSets[m.ValueKey]

	for i, entry := range collection {
		order := []Attr{{Name: OrderAttr, Value: fmt.Sprint(i)}}
		item, err := b.namedNode(xpath, order, true, local)
		if err != nil {
			return dataShape(m, err)
		}

		if hasSet {
			entryValues := make(domain.ClaimValues, len(entry))
			for k, v := range entry {
				entryValues[k] = v
			}
			if err := b.addNodes(entryValues, set, item); err != nil {
				return err
			}
			continue
		}

		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if domain.IsBlank(entry[k]) {
				continue
			}
			if !validName(k) {
				return &domain.DataShapeError{Key: m.ValueKey, Path: xpath, Reason: fmt.Sprintf("entry %d: invalid element name %q", i, k)}
			}
			b.doc.addText(b.doc.addElement(item, k, nil), b.replace(entry[k]))
		}
	}
	return nil
}

// namedNode walks path below local, reusing the first matching child at each
// step and creating missing ones. extra attributes apply to the last step
// only, compared exactly when exact is set. Repeating tags always create.
func (b *build) namedNode(path string, extra []Attr, exact bool, local int) (int, error) {
	segments, err := parsePath(path)
	if err != nil {
		return 0, err
	}

	current := local
	for i, seg := range segments {
		attrs := seg.attrs
		exactStep := false
		if i == len(segments)-1 && len(extra) > 0 {
			attrs = append(append([]Attr(nil), seg.attrs...), extra...)
			exactStep = exact
		}

		if !b.a.repeating[seg.tag] {
			if idx, ok := b.doc.child(current, seg.tag, attrs, exactStep); ok {
				current = idx
				continue
			}
		}
		current = b.doc.addElement(current, seg.tag, attrs)
	}
	return current, nil
}

// addNode materializes path and appends value as text.
func (b *build) addNode(path, value string, local int) (int, error) {
	idx, err := b.namedNode(path, nil, false, local)
	if err != nil {
		return 0, err
	}
	if !domain.IsBlank(value) {
		b.doc.addText(idx, b.replace(value))
	}
	return idx, nil
}

// addAttr sets an attribute on the element at path without adding text.
func (b *build) addAttr(path, name, value string, local int) error {
	idx, err := b.namedNode(path, nil, false, local)
	if err != nil {
		return err
	}
	b.doc.setAttr(idx, name, value)
	return nil
}

func (b *build) replace(value string) string {
	if r, ok := b.a.replacements[value]; ok {
		return r
	}
	return value
}

// question renders the message for key with its ".args" evaluated.
func (b *build) question(key string, values domain.ClaimValues) string {
	pattern, ok := messages.Get(b.a.source, key)
	if !ok {
		b.a.logger.Error("question message not found", "key", key)
		return "ERROR " + key + " - message not found"
	}

	var args []string
	if raw, ok := messages.Get(b.a.source, key+".args"); ok {
		var err error
		if args, err = b.a.evaluator.EvaluateList(raw, values); err != nil {
			b.a.logger.Error("question arguments failed", "key", key, "error", err)
			return "ERROR " + key + " - exception"
		}
	}
	return messages.Format(pattern, args...)
}

// resolve finds the value of key: the exact key, then the key without its
// ".attribute" suffix, then a "d-m-y" date composed from "_day", "_month"
// and "_year" values. A date whose parts are all blank resolves to nil.
func resolve(key string, values domain.ClaimValues) any {
	if v := values[key]; v != nil {
		return v
	}
	if strings.Contains(key, domain.SuffixAttribute) {
		return values[strings.ReplaceAll(key, domain.SuffixAttribute, "")]
	}

	parts := domain.DatePartKeys(key)
	var date []string
	blank := true
	for _, p := range parts {
		if _, ok := values[p]; !ok {
			return nil
		}
		s, _ := values.String(p)
		if !domain.IsBlank(s) {
			blank = false
		}
		date = append(date, s)
	}
	if blank {
		return nil
	}
	return strings.Join(date, "-")
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return domain.IsBlank(s)
	}
	return false
}

// asCollection accepts a list of string maps in any shape mapstructure can
// decode, e.g. []any{map[string]any{...}} from YAML.
func asCollection(value any) (domain.FieldCollection, error) {
	switch v := value.(type) {
	case domain.FieldCollection:
		return v, nil
	case []map[string]string:
		return domain.FieldCollection(v), nil
	}

	if rv := reflect.ValueOf(value); rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("unsupported value type %T", value)
	}

	var out domain.FieldCollection
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(value); err != nil {
		return nil, fmt.Errorf("field collection: %w", err)
	}
	for i, entry := range out {
		if entry == nil {
			return nil, fmt.Errorf("field collection entry %d is empty", i)
		}
	}
	return out, nil
}

func dataShape(m domain.PathMapping, err error) error {
	return &domain.DataShapeError{Key: m.ValueKey, Path: m.XPath, Reason: err.Error()}
}
