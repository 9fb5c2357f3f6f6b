package xmlbuilder

import (
	"fmt"
	"regexp"
	"strings"
)

const pathSeparator = "/"

// Attr is an element attribute. Order is kept as set.
type Attr struct {
	Name  string
	Value string
}

// segment is one step of a path: a tag with optional attribute predicates.
type segment struct {
	tag   string
	attrs []Attr
}

var (
	namePattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)
	predicatePattern = regexp.MustCompile(`^\[\s*@([A-Za-z_][A-Za-z0-9_.:-]*)\s*=\s*(?:'([^']*)'|"([^"]*)")\s*\]`)
)

// parsePath splits "A/B[@type='home']/C" into segments.
func parsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty path")
	}

	raw := strings.Split(path, pathSeparator)
	segments := make([]segment, 0, len(raw))
	for i, part := range raw {
		seg, err := parseSegment(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("segment %d %q: %w", i+1, part, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func parseSegment(raw string) (segment, error) {
	if raw == "" {
		return segment{}, fmt.Errorf("empty segment")
	}

	tag, rest, _ := strings.Cut(raw, "[")
	if !namePattern.MatchString(tag) {
		return segment{}, fmt.Errorf("invalid element name %q", tag)
	}
	seg := segment{tag: tag}

	if rest == "" {
		return seg, nil
	}
	rest = "[" + rest
	for rest != "" {
		m := predicatePattern.FindStringSubmatch(rest)
		if m == nil {
			return segment{}, fmt.Errorf("malformed predicate %q", rest)
		}
		value := m[2]
		if value == "" {
			value = m[3]
		}
		seg.attrs = append(seg.attrs, Attr{Name: m[1], Value: value})
		rest = strings.TrimSpace(rest[len(m[0]):])
	}
	return seg, nil
}

// validName reports whether s can be used as an element or attribute name.
func validName(s string) bool {
	return namePattern.MatchString(s)
}
