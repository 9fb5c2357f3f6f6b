package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValues(t *testing.T) {
	v := FieldValues{
		"name":     {"Ada"},
		"blank":    {"  "},
		"benefits": {"dla", "pip"},
	}

	assert.Equal(t, "Ada", v.First("name"))
	assert.Equal(t, "", v.First("missing"))
	assert.True(t, v.Has("name"))
	assert.False(t, v.Has("blank"))
	assert.True(t, v.HasValue("benefits", "pip"))
	assert.False(t, v.HasValue("benefits", "PIP"))

	existing := FieldValues{"name": {"Bob"}, "age": {"40"}}
	assert.Equal(t, []string{"Ada"}, Lookup("name", v, existing))
	assert.Equal(t, []string{"40"}, Lookup("age", v, existing))
	assert.Nil(t, Lookup("none", v, existing))
}

func TestClaimValues(t *testing.T) {
	v := ClaimValuesFromFields(FieldValues{"b": {"x", "y"}, "a": {"z"}})
	assert.Equal(t, []string{"a", "b"}, v.Keys())

	s, ok := v.String("b")
	require.True(t, ok)
	assert.Equal(t, "x, y", s)

	clone := v.Clone()
	clone["c"] = "new"
	_, ok = v["c"]
	assert.False(t, ok)

	v["list"] = FieldCollection{{"k": "v"}}
	_, ok = v.String("list")
	assert.False(t, ok)
}

func TestValidationSummary(t *testing.T) {
	s := NewValidationSummary()
	assert.False(t, s.HasFormErrors())

	s.AddFormError("surname", "Surname", "required")
	s.AddFormError("postcode", "Postcode", "invalid")
	s.AddFormError("surname", "Surname", "too long")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.HasError("surname"))
	assert.False(t, s.HasError(""))
	assert.Equal(t, "required", s.ErrorMessage("surname"))
	assert.Equal(t, "Postcode", s.ErrorDisplayName("postcode"))
	assert.Len(t, s.Errors("surname"), 2)
	assert.Equal(t, "Surname: required\nPostcode: invalid\nSurname: too long", s.String())

	errs := s.FormErrors()
	errs[0].Message = "changed"
	assert.Equal(t, "required", s.ErrorMessage("surname"), "FormErrors returns a copy")

	s.Reset()
	assert.False(t, s.HasFormErrors())
	assert.Equal(t, "", s.ErrorMessage("surname"))
}

func TestPathMapping(t *testing.T) {
	tests := []struct {
		name      string
		mapping   PathMapping
		question  bool
		answer    string
		attribute string
	}{
		{"Plain", PathMapping{ValueKey: "name"}, false, "name", ""},
		{"Label", PathMapping{ValueKey: "name.label"}, true, "name", ""},
		{"Text", PathMapping{ValueKey: "name.text"}, true, "name", ""},
		{"Attribute", PathMapping{ValueKey: "id", ProcessingInstruction: " @id "}, false, "id", "id"},
		{"Bracketed Attribute", PathMapping{ValueKey: "id", ProcessingInstruction: "[@id]"}, false, "id", "id"},
		{"Filter", PathMapping{ValueKey: "id", ProcessingInstruction: "type=home"}, false, "id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.question, tt.mapping.IsQuestion())
			assert.Equal(t, tt.answer, tt.mapping.AnswerKey())
			assert.Equal(t, tt.attribute, tt.mapping.AttributeName())
			assert.Equal(t, tt.attribute != "", tt.mapping.SetsAttribute())
		})
	}
}

func TestErrors(t *testing.T) {
	cfg := &ConfigurationError{Key: "a.validation.dependency", Reason: "dependency on \"b\"", Err: ErrUnknownField}
	assert.True(t, errors.Is(cfg, ErrUnknownField))
	assert.Equal(t, `configuration error at "a.validation.dependency": dependency on "b": unknown field`, cfg.Error())

	eval := &EvaluationError{Expression: "${cads:x()}", Reason: "x", Err: ErrUnknownFunction}
	assert.ErrorIs(t, eval, ErrUnknownFunction)
	assert.Equal(t, `cannot evaluate "${cads:x()}": x: unknown function`, eval.Error())

	shape := &DataShapeError{Key: "jobs", Path: "Job", Reason: "bad"}
	assert.Equal(t, `cannot build "Job" for "jobs": bad`, shape.Error())
	assert.Equal(t, `cannot build "Job": bad`, (&DataShapeError{Path: "Job", Reason: "bad"}).Error())
}
