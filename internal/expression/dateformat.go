package expression

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDate renders t with a SimpleDateFormat style pattern such as
// "d MMMM yyyy" or "dd/MM/yy". Letters outside single quotes are pattern
// letters; a doubled quote renders one quote.
func FormatDate(t time.Time, pattern string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				sb.WriteByte('\'')
				i += 2
				continue
			}
			end := strings.IndexByte(pattern[i+1:], '\'')
			if end < 0 {
				return "", fmt.Errorf("unterminated quote in date format %q", pattern)
			}
			sb.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}

		if !isLetter(c) {
			sb.WriteByte(c)
			i++
			continue
		}

		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}
		field, err := formatField(t, c, n)
		if err != nil {
			return "", fmt.Errorf("date format %q: %w", pattern, err)
		}
		sb.WriteString(field)
		i += n
	}
	return sb.String(), nil
}

func formatField(t time.Time, letter byte, n int) (string, error) {
	switch letter {
	case 'd':
		return pad(t.Day(), n), nil
	case 'M':
		switch {
		case n >= 4:
			return t.Month().String(), nil
		case n == 3:
			return t.Month().String()[:3], nil
		}
		return pad(int(t.Month()), n), nil
	case 'y':
		if n == 2 {
			return pad(t.Year()%100, 2), nil
		}
		return pad(t.Year(), n), nil
	case 'E':
		if n >= 4 {
			return t.Weekday().String(), nil
		}
		return t.Weekday().String()[:3], nil
	case 'D':
		return pad(t.YearDay(), n), nil
	case 'H':
		return pad(t.Hour(), n), nil
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, n), nil
	case 'm':
		return pad(t.Minute(), n), nil
	case 's':
		return pad(t.Second(), n), nil
	case 'a':
		return t.Format("PM"), nil
	}
	return "", fmt.Errorf("unsupported pattern letter %q", letter)
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Offset is a calendar shift such as "+3 months" or "-1 week".
type Offset struct {
	Years, Months, Days int
}

// ParseOffset reads "[+|-]N [day|days|week|weeks|month|months|year|years]".
// The unit defaults to days and an empty string is no offset.
func ParseOffset(raw string) (Offset, error) {
	fields := strings.Fields(raw)
	switch len(fields) {
	case 0:
		return Offset{}, nil
	case 1, 2:
	default:
		return Offset{}, fmt.Errorf("invalid offset %q", raw)
	}

	n, err := strconv.Atoi(strings.TrimPrefix(fields[0], "+"))
	if err != nil {
		return Offset{}, fmt.Errorf("invalid offset %q: %w", raw, err)
	}

	unit := "days"
	if len(fields) == 2 {
		unit = strings.ToLower(fields[1])
	}
	switch unit {
	case "day", "days":
		return Offset{Days: n}, nil
	case "week", "weeks":
		return Offset{Days: 7 * n}, nil
	case "month", "months":
		return Offset{Months: n}, nil
	case "year", "years":
		return Offset{Years: n}, nil
	}
	return Offset{}, fmt.Errorf("invalid offset unit %q", unit)
}

// Apply shifts t by the offset. Year and month shifts keep the day of month,
// clamped to the length of the target month, before days are added.
func (o Offset) Apply(t time.Time) time.Time {
	if o.Years != 0 || o.Months != 0 {
		first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		first = first.AddDate(o.Years, o.Months, 0)
		day := min(t.Day(), daysIn(first.Year(), first.Month()))
		t = first.AddDate(0, 0, day-1)
	}
	return t.AddDate(0, 0, o.Days)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
