package domain

import (
	"fmt"
	"strings"
)

// FormError is a single field failure recorded during validation.
type FormError struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Message     string `json:"message"`
}

func (e FormError) String() string {
	return fmt.Sprintf("%s: %s", e.DisplayName, e.Message)
}

// ValidationSummary accumulates field failures in the order they were found.
// Every failure is recorded; a field failing two rules yields two entries.
// Callers decide how to group them for display.
type ValidationSummary struct {
	errors []FormError
}

// NewValidationSummary creates an empty summary.
func NewValidationSummary() *ValidationSummary {
	return &ValidationSummary{}
}

// AddFormError appends a failure.
func (s *ValidationSummary) AddFormError(id, displayName, message string) {
	s.errors = append(s.errors, FormError{ID: id, DisplayName: displayName, Message: message})
}

// FormErrors returns a copy of all recorded failures.
func (s *ValidationSummary) FormErrors() []FormError {
	out := make([]FormError, len(s.errors))
	copy(out, s.errors)
	return out
}

// Errors returns every failure recorded for a field id.
func (s *ValidationSummary) Errors(id string) []FormError {
	var out []FormError
	for _, e := range s.errors {
		if e.ID == id {
			out = append(out, e)
		}
	}
	return out
}

// Error returns the first failure recorded for id.
func (s *ValidationSummary) Error(id string) (FormError, bool) {
	if id == "" {
		return FormError{}, false
	}
	for _, e := range s.errors {
		if e.ID == id {
			return e, true
		}
	}
	return FormError{}, false
}

// HasError reports whether id failed any rule.
func (s *ValidationSummary) HasError(id string) bool {
	_, ok := s.Error(id)
	return ok
}

// ErrorMessage returns the first message recorded for id, or "".
func (s *ValidationSummary) ErrorMessage(id string) string {
	e, _ := s.Error(id)
	return e.Message
}

// ErrorDisplayName returns the display name of the first failure for id, or "".
func (s *ValidationSummary) ErrorDisplayName(id string) string {
	e, _ := s.Error(id)
	return e.DisplayName
}

// HasFormErrors reports whether anything failed.
func (s *ValidationSummary) HasFormErrors() bool {
	return len(s.errors) > 0
}

// Len returns the number of recorded failures.
func (s *ValidationSummary) Len() int {
	return len(s.errors)
}

// Reset clears all failures.
func (s *ValidationSummary) Reset() {
	s.errors = s.errors[:0]
}

func (s *ValidationSummary) String() string {
	var sb strings.Builder
	for i, e := range s.errors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}
