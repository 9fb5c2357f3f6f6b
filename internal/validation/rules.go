// Package validation builds per-field rule chains from message resources and
// runs them against submitted values.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/claimform/internal/messages"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/ports"
)

// GlobalRegexKey holds the pattern every submitted value must match.
const GlobalRegexKey = "global.validation.regex"

// Kind identifies a validation rule. The set is closed.
type Kind int

// Kinds are built in declaration order, which is also chain order.
const (
	KindMandatory Kind = iota
	KindRegex
	KindMaxLength
	KindDate
	KindEquals
)

var kindNames = [...]string{
	KindMandatory: "mandatory",
	KindRegex:     "regex",
	KindMaxLength: "maxlength",
	KindDate:      "date",
	KindEquals:    "equals",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindMandatory, KindRegex, KindMaxLength, KindDate, KindEquals}
}

// ParseKind resolves a kind by name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownKind, name)
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KeyFormat is the configuration key of the kind for a field, e.g. "%s.validation.regex".
func (k Kind) KeyFormat() string {
	return "%s.validation." + k.String()
}

// AuxiliaryKeyFormats lists sibling keys read alongside the main key.
// They always share its stem.
func (k Kind) AuxiliaryKeyFormats() []string {
	if k == KindDate {
		return []string{"%s.validation.date.lowerlimit", "%s.validation.date.upperlimit"}
	}
	return nil
}

// Rule is a single compiled validation. Rules are immutable and safe for concurrent use.
type Rule interface {
	Kind() Kind
	Key() string
	// Validate reports whether field passed. On failure the error is appended to summary.
	Validate(summary *domain.ValidationSummary, field string, request, existing domain.FieldValues) bool
}

// RuleOption configures rule construction.
type RuleOption func(*ruleConfig)

type ruleConfig struct {
	now func() time.Time
}

// WithNow sets the clock used to resolve "now()" date limits.
func WithNow(now func() time.Time) RuleOption {
	return func(c *ruleConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewRule builds the rule of the given kind from its raw condition.
// An empty condition means the kind does not apply and yields a nil rule.
// params carries auxiliary values keyed by their suffix (e.g. "lowerlimit").
func NewRule(kind Kind, key, condition string, params map[string]string, source ports.MessageSource, opts ...RuleOption) (Rule, error) {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return nil, nil
	}

	cfg := ruleConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	b := base{kind: kind, key: key, source: source}

	switch kind {
	case KindMandatory:
		required, err := parseFlag(condition, "mandatory")
		if err != nil {
			return nil, &domain.ConfigurationError{Key: key, Reason: "invalid mandatory condition", Err: err}
		}
		if !required {
			return nil, nil
		}
		return &MandatoryRule{base: b}, nil

	case KindRegex:
		r, err := newRegexRule(b, condition)
		if err != nil {
			return nil, err
		}
		return r, nil

	case KindMaxLength:
		n, err := strconv.Atoi(messages.TrimQuotes(condition))
		if err != nil || n < 0 {
			return nil, &domain.ConfigurationError{Key: key, Reason: fmt.Sprintf("invalid max length %q", condition)}
		}
		return &MaxLengthRule{base: b, Max: n}, nil

	case KindDate:
		required, err := parseDateCondition(condition)
		if err != nil {
			return nil, &domain.ConfigurationError{Key: key, Reason: "invalid date condition", Err: err}
		}
		r := &DateRule{base: b, Mandatory: required, now: cfg.now}
		if r.Lower, err = parseLimit(params["lowerlimit"]); err != nil {
			return nil, &domain.ConfigurationError{Key: key + ".lowerlimit", Reason: "invalid date limit", Err: err}
		}
		if r.Upper, err = parseLimit(params["upperlimit"]); err != nil {
			return nil, &domain.ConfigurationError{Key: key + ".upperlimit", Reason: "invalid date limit", Err: err}
		}
		return r, nil

	case KindEquals:
		other := strings.TrimSpace(messages.TrimQuotes(condition))
		if other == "" {
			return nil, &domain.ConfigurationError{Key: key, Reason: "missing field to compare with"}
		}
		return &EqualsRule{base: b, Other: other}, nil
	}

	return nil, &domain.ConfigurationError{Key: key, Reason: kind.String(), Err: domain.ErrUnknownKind}
}

// NewGlobalRegexRule builds the rule run against every field before its own chain.
// It returns nil when no pattern is configured.
func NewGlobalRegexRule(source ports.MessageSource) (Rule, error) {
	pattern, ok := messages.Get(source, GlobalRegexKey)
	if !ok || pattern == "" {
		return nil, nil
	}
	r, err := newRegexRule(base{kind: KindRegex, key: GlobalRegexKey, source: source}, pattern)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DisplayName resolves the label shown for field in error summaries.
func DisplayName(source ports.MessageSource, field string) string {
	return messages.GetOr(source, field+domain.SuffixLabel, field)
}

var defaultMessages = map[string]string{
	"mandatory":       "{0} - You must complete this section",
	"regex":           "{0} - Invalid value",
	"maxlength":       "{0} - Answer must be {1} characters or fewer",
	"date":            "{0} - Invalid date",
	"date.mandatory":  "{0} - You must enter a date",
	"date.lowerlimit": "{0} - Date must be on or after {1}",
	"date.upperlimit": "{0} - Date must be on or before {1}",
	"equals":          "{0} - Must match {1}",
}

type base struct {
	kind   Kind
	key    string
	source ports.MessageSource
}

func (b base) Kind() Kind  { return b.kind }
func (b base) Key() string { return b.key }

func (b base) String() string {
	return b.kind.String() + "(" + b.key + ")"
}

// fail records a failure. variant selects a more specific message such as
// "lowerlimit"; it is looked up as "<key>.<variant>.message", then
// "validation.<kind>.<variant>.message", then the built-in default.
func (b base) fail(summary *domain.ValidationSummary, field, variant string, args ...string) bool {
	name := DisplayName(b.source, field)

	id := b.kind.String()
	specific := b.key
	if variant != "" {
		id += "." + variant
		specific += "." + variant
	}
	pattern := messages.GetOr(b.source, specific+".message",
		messages.GetOr(b.source, "validation."+id+".message", defaultMessages[id]))

	summary.AddFormError(field, name, messages.Format(pattern, append([]string{name}, args...)...))
	return false
}

func values(field string, request, existing domain.FieldValues) []string {
	return domain.Lookup(field, request, existing)
}

func first(field string, request, existing domain.FieldValues) string {
	vs := values(field, request, existing)
	if len(vs) == 0 {
		return ""
	}
	return strings.TrimSpace(vs[0])
}

// MandatoryRule requires a non-blank value. Date fields submitted as
// day/month/year parts require all three.
type MandatoryRule struct {
	base
}

func (r *MandatoryRule) Validate(summary *domain.ValidationSummary, field string, request, existing domain.FieldValues) bool {
	for _, v := range values(field, request, existing) {
		if !domain.IsBlank(v) {
			return true
		}
	}

	for _, p := range domain.DatePartKeys(field) {
		if first(p, request, existing) == "" {
			return r.fail(summary, field, "")
		}
	}
	return true
}

// RegexRule requires every non-blank value to match the whole pattern.
type RegexRule struct {
	base
	Pattern string
	re      *regexp.Regexp
}

func newRegexRule(b base, pattern string) (*RegexRule, error) {
	pattern = messages.TrimQuotes(strings.TrimSpace(pattern))
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, &domain.ConfigurationError{Key: b.key, Reason: "invalid pattern", Err: err}
	}
	return &RegexRule{base: b, Pattern: pattern, re: re}, nil
}

func (r *RegexRule) Validate(summary *domain.ValidationSummary, field string, request, existing domain.FieldValues) bool {
	for _, v := range values(field, request, existing) {
		if domain.IsBlank(v) {
			continue
		}
		if !r.re.MatchString(v) {
			return r.fail(summary, field, "")
		}
	}
	return true
}

// MaxLengthRule caps every value at Max characters.
type MaxLengthRule struct {
	base
	Max int
}

func (r *MaxLengthRule) Validate(summary *domain.ValidationSummary, field string, request, existing domain.FieldValues) bool {
	for _, v := range values(field, request, existing) {
		if utf8.RuneCountInString(v) > r.Max {
			return r.fail(summary, field, "", strconv.Itoa(r.Max))
		}
	}
	return true
}

// DateLimit bounds a date. The zero value is unbounded.
type DateLimit struct {
	Date time.Time
	Now  bool
}

// IsZero reports whether the limit is unset.
func (l DateLimit) IsZero() bool {
	return !l.Now && l.Date.IsZero()
}

func (l DateLimit) resolve(now func() time.Time) time.Time {
	if l.Now {
		return domain.Today(now())
	}
	return l.Date
}

// DateRule requires a real calendar date inside optional limits.
// The date is composed from "<field>_day", "<field>_month" and "<field>_year",
// or read from the field itself as dd-MM-yyyy or yyyy-MM-dd.
type DateRule struct {
	base
	Mandatory bool
	Lower     DateLimit
	Upper     DateLimit
	now       func() time.Time
}

func (r *DateRule) Validate(summary *domain.ValidationSummary, field string, request, existing domain.FieldValues) bool {
	date, blank, ok := ParseFieldDate(field, request, existing)
	if blank {
		if r.Mandatory {
			return r.fail(summary, field, "mandatory")
		}
		return true
	}
	if !ok {
		return r.fail(summary, field, "")
	}

	if !r.Lower.IsZero() {
		if lower := r.Lower.resolve(r.now); date.Before(lower) {
			return r.fail(summary, field, "lowerlimit", lower.Format(isoDate))
		}
	}
	if !r.Upper.IsZero() {
		if upper := r.Upper.resolve(r.now); date.After(upper) {
			return r.fail(summary, field, "upperlimit", upper.Format(isoDate))
		}
	}
	return true
}

const isoDate = "2006-01-02"

var singleDateLayouts = []string{"2-1-2006", "2006-1-2", "2/1/2006"}

// ParseFieldDate reads the date submitted for field. blank reports that no
// part of the date was entered; ok reports a valid calendar date.
func ParseFieldDate(field string, request, existing domain.FieldValues) (date time.Time, blank, ok bool) {
	keys := domain.DatePartKeys(field)
	day := first(keys[0], request, existing)
	month := first(keys[1], request, existing)
	year := first(keys[2], request, existing)

	if day == "" && month == "" && year == "" {
		single := first(field, request, existing)
		if single == "" {
			return time.Time{}, true, false
		}
		for _, layout := range singleDateLayouts {
			if t, err := time.Parse(layout, single); err == nil {
				return t, false, true
			}
		}
		return time.Time{}, false, false
	}

	t, err := domain.ComposeDate(day, month, year)
	return t, false, err == nil
}

func parseLimit(raw string) (DateLimit, error) {
	raw = strings.TrimSpace(messages.TrimQuotes(strings.TrimSpace(raw)))
	switch {
	case raw == "":
		return DateLimit{}, nil
	case strings.EqualFold(raw, "now()"):
		return DateLimit{Now: true}, nil
	}
	t, err := time.Parse(isoDate, raw)
	if err != nil {
		return DateLimit{}, err
	}
	return DateLimit{Date: t}, nil
}

// EqualsRule requires the field to repeat the value of Other,
// e.g. an email confirmation.
type EqualsRule struct {
	base
	Other string
}

func (r *EqualsRule) Validate(summary *domain.ValidationSummary, field string, request, existing domain.FieldValues) bool {
	value := first(field, request, existing)
	if value == "" {
		return true
	}
	if value == first(r.Other, request, existing) {
		return true
	}
	return r.fail(summary, field, "", DisplayName(r.source, r.Other))
}

// parseFlag accepts "true", "false" or "<name>=true|false".
// parseDateCondition reports whether a date must be present. A bare boolean
// only switches the rule on; presence comes from "mandatory=true".
func parseDateCondition(condition string) (bool, error) {
	raw := strings.TrimSpace(messages.TrimQuotes(condition))
	if !strings.Contains(raw, "=") {
		if _, err := strconv.ParseBool(raw); err != nil {
			return false, err
		}
		return false, nil
	}
	return parseFlag(raw, "mandatory")
}

func parseFlag(condition, name string) (bool, error) {
	raw := strings.TrimSpace(messages.TrimQuotes(condition))
	if k, v, found := strings.Cut(raw, "="); found {
		if strings.TrimSpace(k) != name {
			return false, fmt.Errorf("unexpected parameter %q", strings.TrimSpace(k))
		}
		raw = strings.TrimSpace(v)
	}
	return strconv.ParseBool(raw)
}
