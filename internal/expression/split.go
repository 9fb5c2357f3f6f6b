package expression

import "strings"

// Split breaks raw into literal and "${...}" segments. Nested substitutions
// stay inside their enclosing segment: "${" pushes, "}" pops, and only the
// pop that empties the stack closes a segment. An unterminated "${" yields
// the rest of the string as the final segment. Literal text is never trimmed.
func Split(raw string) []string {
	var segments []string
	var starts []int
	end := 0

	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '$':
			if i+1 < len(raw) && raw[i+1] == '{' {
				if len(starts) == 0 && i > end {
					segments = append(segments, raw[end:i])
					end = i
				}
				starts = append(starts, i)
				i++
			}
		case '}':
			if len(starts) == 0 {
				continue
			}
			start := starts[len(starts)-1]
			starts = starts[:len(starts)-1]
			if len(starts) == 0 {
				end = i + 1
				segments = append(segments, raw[start:end])
			}
		}
	}

	switch {
	case len(starts) > 0:
		segments = append(segments, raw[starts[0]:])
	case end < len(raw):
		segments = append(segments, raw[end:])
	}
	return segments
}

// splitArgs splits a function argument list on commas that are outside
// quotes, parentheses and nested substitutions. Arguments are trimmed.
func splitArgs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var args []string
	var quote byte
	depth, start := 0, 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '{' || c == '(':
			depth++
		case c == '}' || c == ')':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(raw[start:i]))
			start = i + 1
		}
	}
	return append(args, strings.TrimSpace(raw[start:]))
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0]
}
