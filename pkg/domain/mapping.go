package domain

import "strings"

// Suffixes that mark synthetic value keys in a mapping file.
const (
	SuffixLabel     = ".label"
	SuffixText      = ".text"
	SuffixAttribute = ".attribute"

	// SuffixLineOne is appended to a question stem to find the first line of
	// address-style answers (carerAddress.label -> carerAddressLineOne).
	SuffixLineOne = "LineOne"
)

// PathMapping binds a logical value key to a location in the claim document.
type PathMapping struct {
	// ValueKey names the form field, or a synthetic .label/.text/.attribute key.
	ValueKey string `json:"value" yaml:"value" mapstructure:"value"`

	// XPath is a slash separated path below the local root.
	XPath string `json:"xpath" yaml:"xpath" mapstructure:"xpath"`

	// ProcessingInstruction optionally names an attribute (e.g. "@id") to set
	// on the node at XPath instead of creating a text-bearing element.
	// Instructions containing "=" are filters and never set attributes.
	ProcessingInstruction string `json:"pi,omitempty" yaml:"pi,omitempty" mapstructure:"pi"`
}

// IsQuestion reports whether the mapping synthesizes a question label.
func (m PathMapping) IsQuestion() bool {
	return strings.HasSuffix(m.ValueKey, SuffixLabel) || strings.HasSuffix(m.ValueKey, SuffixText)
}

// AnswerKey returns the value key a question label belongs to.
func (m PathMapping) AnswerKey() string {
	key := strings.TrimSuffix(m.ValueKey, SuffixLabel)
	return strings.TrimSuffix(key, SuffixText)
}

// SetsAttribute reports whether the mapping writes an attribute rather than
// an element.
func (m PathMapping) SetsAttribute() bool {
	pi := strings.TrimSpace(m.ProcessingInstruction)
	return pi != "" && !strings.Contains(pi, "=")
}

// AttributeName returns the attribute to set, or "" when the mapping
// produces an element. "@id" and "[@id]" both name the id attribute.
func (m PathMapping) AttributeName() string {
	if !m.SetsAttribute() {
		return ""
	}
	pi := strings.TrimSpace(m.ProcessingInstruction)
	pi = strings.TrimSuffix(strings.TrimPrefix(pi, "["), "]")
	return strings.TrimPrefix(pi, "@")
}

// MappingList is an ordered list of path mappings. Order matters: it drives
// node reuse and the question label lookahead.
type MappingList []PathMapping
