package dsl

import (
	"strconv"
	"strings"
)

// FormBuilder collects the ordered fields of one form.
type FormBuilder struct {
	name    string
	builder *Builder
	fields  map[string]*FieldBuilder
	order   []string
}

// Field adds a field to the form, or resumes it when already declared.
func (f *FormBuilder) Field(id string) *FieldBuilder {
	id = strings.TrimSpace(id)
	if fb, ok := f.fields[id]; ok {
		return fb
	}
	if id == "" {
		f.builder.fail("form %q: blank field id", f.name)
	}
	fb := &FieldBuilder{id: id, form: f, messages: make(map[string]string)}
	f.fields[id] = fb
	f.order = append(f.order, id)
	return fb
}

// Name returns the form name.
func (f *FormBuilder) Name() string { return f.name }

// FieldBuilder provides a fluent API for configuring a field's rules.
type FieldBuilder struct {
	id       string
	form     *FormBuilder
	messages map[string]string
	clauses  []string
}

// Field continues with the next field of the same form.
func (n *FieldBuilder) Field(id string) *FieldBuilder {
	return n.form.Field(id)
}

// Label sets the display name used in failure messages.
func (n *FieldBuilder) Label(label string) *FieldBuilder {
	return n.set("label", label)
}

// Mandatory requires a non-blank answer.
func (n *FieldBuilder) Mandatory() *FieldBuilder {
	return n.set("validation.mandatory", "true")
}

// Regex requires non-blank answers to match pattern in full.
func (n *FieldBuilder) Regex(pattern string) *FieldBuilder {
	return n.set("validation.regex", `"`+pattern+`"`)
}

// MaxLength limits answers to max characters.
func (n *FieldBuilder) MaxLength(max int) *FieldBuilder {
	return n.set("validation.maxlength", strconv.Itoa(max))
}

// Date requires the day, month and year parts to form a real date.
func (n *FieldBuilder) Date(mandatory bool) *FieldBuilder {
	return n.set("validation.date", "mandatory="+strconv.FormatBool(mandatory))
}

// DateLimits bounds a date field. Each limit is yyyy-MM-dd, "now()" or
// empty for no bound.
func (n *FieldBuilder) DateLimits(lower, upper string) *FieldBuilder {
	if lower != "" {
		n.set("validation.date.lowerlimit", lower)
	}
	if upper != "" {
		n.set("validation.date.upperlimit", upper)
	}
	return n
}

// Equals requires the answer to repeat the answer of other.
func (n *FieldBuilder) Equals(other string) *FieldBuilder {
	return n.set("validation.equals", other)
}

// DependsOn hides the field unless field was answered with value.
// Repeated calls combine into an aggregate dependency.
func (n *FieldBuilder) DependsOn(field, value string) *FieldBuilder {
	n.clauses = append(n.clauses, field+"="+value)
	return n.set("validation.dependency", strings.Join(n.clauses, ",&"))
}

// Message overrides the failure message of a rule, e.g.
// Message("regex", "{0} - Enter a valid postcode").
func (n *FieldBuilder) Message(kind, message string) *FieldBuilder {
	return n.set("validation."+kind+".message", message)
}

// ID returns the field id.
func (n *FieldBuilder) ID() string { return n.id }

func (n *FieldBuilder) set(suffix, value string) *FieldBuilder {
	n.messages[n.id+"."+suffix] = value
	return n
}
