// Package messages resolves and formats message resources.
package messages

import (
	"strconv"
	"strings"

	"github.com/aretw0/claimform/pkg/ports"
)

// Get returns the trimmed message for key and whether it exists.
// A nil source has no messages.
func Get(source ports.MessageSource, key string) (string, bool) {
	if source == nil {
		return "", false
	}
	v, ok := source.Message(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// GetOr returns the message for key, or fallback when it is missing or blank.
func GetOr(source ports.MessageSource, key, fallback string) string {
	if v, ok := Get(source, key); ok && v != "" {
		return v
	}
	return fallback
}

// TrimQuotes removes one pair of matching enclosing single or double quotes.
func TrimQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// Format substitutes positional {n} placeholders with args.
// A doubled single quote renders as one quote and text between single
// quotes is copied verbatim, as in MessageFormat patterns.
// Placeholders without a matching argument are left untouched, and a
// pattern formatted without arguments is returned as is.
func Format(pattern string, args ...string) string {
	if len(args) == 0 {
		return pattern
	}

	var sb strings.Builder
	quoted := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				sb.WriteByte('\'')
				i++
				continue
			}
			quoted = !quoted
		case c == '{' && !quoted:
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				sb.WriteString(pattern[i:])
				return sb.String()
			}
			n, err := strconv.Atoi(strings.TrimSpace(pattern[i+1 : i+end]))
			if err != nil || n < 0 || n >= len(args) {
				sb.WriteString(pattern[i : i+end+1])
			} else {
				sb.WriteString(args[n])
			}
			i += end
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
