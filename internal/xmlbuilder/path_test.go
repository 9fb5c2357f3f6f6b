package xmlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []segment
	}{
		{"Simple", "Person/Name", []segment{{tag: "Person"}, {tag: "Name"}}},
		{"Spaces Around Segments", " Person / Name ", []segment{{tag: "Person"}, {tag: "Name"}}},
		{"Predicate", "Address[@type='home']/Line", []segment{
			{tag: "Address", attrs: []Attr{{Name: "type", Value: "home"}}},
			{tag: "Line"},
		}},
		{"Double Quoted Predicates", `Income[@kind="job"][@order = "1"]`, []segment{
			{tag: "Income", attrs: []Attr{{Name: "kind", Value: "job"}, {Name: "order", Value: "1"}}},
		}},
		{"Namespaced", "ds:Signature", []segment{{tag: "ds:Signature"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Malformed(t *testing.T) {
	for _, path := range []string{
		"",
		"Person//Name",
		"/Person",
		"Person/",
		"1Person",
		"Per son",
		"Address[@type=home]",
		"Address[type='home']",
		"Address[@type='home'",
		"Address[@type='home']x",
	} {
		_, err := parsePath(path)
		assert.Error(t, err, "%q", path)
	}
}
