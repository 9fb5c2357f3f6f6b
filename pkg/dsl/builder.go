package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/claimform/pkg/adapters/memory"
	"github.com/aretw0/claimform/pkg/domain"
)

// Builder manages the configuration of one or more forms.
type Builder struct {
	forms    map[string]*FormBuilder
	order    []string
	messages map[string]string
	errs     []error
}

// New creates a new configuration builder.
func New() *Builder {
	return &Builder{
		forms:    make(map[string]*FormBuilder),
		messages: make(map[string]string),
	}
}

// Form starts or resumes the named form.
func (b *Builder) Form(name string) *FormBuilder {
	if fb, ok := b.forms[name]; ok {
		return fb
	}
	fb := &FormBuilder{name: name, builder: b, fields: make(map[string]*FieldBuilder)}
	b.forms[name] = fb
	b.order = append(b.order, name)
	return fb
}

// Set stores a raw message, e.g. a shared default like
// "validation.mandatory.message".
func (b *Builder) Set(key, value string) *Builder {
	b.messages[key] = value
	return b
}

// GlobalRegex sets the pattern every field is checked against first.
func (b *Builder) GlobalRegex(pattern string) *Builder {
	return b.Set("global.validation.regex", pattern)
}

// Question stores a question template and, when given, its argument
// expressions joined with "|".
func (b *Builder) Question(key, template string, args ...string) *Builder {
	b.Set(key, template)
	if len(args) > 0 {
		b.Set(key+".args", strings.Join(args, "|"))
	}
	return b
}

// Build compiles the configuration into an in-memory message source.
func (b *Builder) Build() (*memory.Messages, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	out := make(map[string]string, len(b.messages))
	for k, v := range b.messages {
		out[k] = v
	}

	for _, name := range b.order {
		fb := b.forms[name]
		if len(fb.order) == 0 {
			return nil, &domain.ConfigurationError{Key: name + ".fields", Reason: "form has no fields"}
		}
		out[name+".fields"] = strings.Join(fb.order, ",")
		for _, id := range fb.order {
			for k, v := range fb.fields[id].messages {
				out[k] = v
			}
		}
	}

	return memory.NewMessages(out), nil
}

// Keys returns the keys Build would produce, sorted. Useful for debugging.
func (b *Builder) Keys() []string {
	m, err := b.Build()
	if err != nil {
		return nil
	}
	return m.Keys()
}

func (b *Builder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}
