package domain

import (
	"sort"
	"strings"
)

// FieldValues holds submitted values keyed by field name.
// Multi-select fields (checkboxes) carry more than one value.
type FieldValues map[string][]string

// First returns the first value for a field, or "" if none was submitted.
func (v FieldValues) First(field string) string {
	values := v[field]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Has reports whether at least one non-blank value was submitted for field.
func (v FieldValues) Has(field string) bool {
	for _, value := range v[field] {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

// HasValue reports whether field carries exactly the given value.
func (v FieldValues) HasValue(field, want string) bool {
	for _, value := range v[field] {
		if value == want {
			return true
		}
	}
	return false
}

// Lookup returns the values of a field from the first bag that has them.
func Lookup(field string, bags ...FieldValues) []string {
	for _, bag := range bags {
		if values, ok := bag[field]; ok {
			return values
		}
	}
	return nil
}

// FieldCollection is a repeating group of fields (e.g. one entry per employer).
type FieldCollection []map[string]string

// ClaimValues is the flat value bag consumed by the XML assembler.
// Values are either a string or a field collection.
type ClaimValues map[string]any

// String returns the value for key when it is a string.
func (v ClaimValues) String(key string) (string, bool) {
	s, ok := v[key].(string)
	return s, ok
}

// Keys returns the keys in sorted order.
func (v ClaimValues) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy, so callers can add derived values
// without mutating the session bag.
func (v ClaimValues) Clone() ClaimValues {
	out := make(ClaimValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// ClaimValuesFromFields flattens multi-valued fields into a claim bag.
// Multiple values are joined with ", ".
func ClaimValuesFromFields(fields FieldValues) ClaimValues {
	out := make(ClaimValues, len(fields))
	for k, values := range fields {
		out[k] = strings.Join(values, ", ")
	}
	return out
}

// IsBlank reports whether a string is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
