package expression

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/claimform/internal/messages"
	"github.com/aretw0/claimform/pkg/domain"
)

type function struct {
	arity int
	usage string
}

// The function set is closed; dispatch below must cover every entry.
var functions = map[string]function{
	"dateOffset":            {arity: 5, usage: "dateOffset(dayField, monthField, yearField, format, offset)"},
	"dateOffsetFromCurrent": {arity: 2, usage: "dateOffsetFromCurrent(format, offset)"},
	"prop":                  {arity: 1, usage: "prop(name)"},
}

func (e *Evaluator) dispatch(c *callSite) (string, error) {
	switch c.name {
	case "dateOffset":
		return e.dateOffset(c)
	case "dateOffsetFromCurrent":
		return e.dateOffsetFromCurrent(c)
	case "prop":
		return e.prop(c)
	}
	return "", domain.ErrUnknownFunction
}

// Functions lists the callable function names.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// callSite is one "${cads:name(args)}" being evaluated.
type callSite struct {
	expr  string
	name  string
	args  []string
	run   *run
	depth int
}

// call parses and dispatches "${cads:name(arg, ...)}".
func (e *Evaluator) call(expr string, r *run, depth int) (string, error) {
	if !strings.HasSuffix(expr, "}") {
		return "", e.fail(expr, "", "function call is not closed", nil)
	}
	body := expr[len(functionPrefix) : len(expr)-1]

	name, rest, found := strings.Cut(body, "(")
	name = strings.TrimSpace(name)
	rest = strings.TrimSpace(rest)
	if !found || !strings.HasSuffix(rest, ")") {
		return "", e.fail(expr, name, "missing parentheses", nil)
	}

	f, ok := functions[name]
	if !ok {
		return "", e.fail(expr, name, name, domain.ErrUnknownFunction)
	}

	c := &callSite{expr: expr, name: name, args: splitArgs(rest[:len(rest)-1]), run: r, depth: depth}
	if len(c.args) != f.arity {
		return "", e.fail(expr, name, fmt.Sprintf("got %d, expecting %s", len(c.args), f.usage), domain.ErrArity)
	}

	out, err := e.dispatch(c)
	if err != nil {
		return "", e.fail(expr, name, "call failed", err)
	}
	return out, nil
}

// literal resolves an argument used as text: quotes are stripped, an
// unquoted argument containing a substitution is evaluated, anything else
// is taken as written.
func (e *Evaluator) literal(c *callSite, i int) (string, error) {
	arg := c.args[i]
	switch {
	case isQuoted(arg):
		return arg[1 : len(arg)-1], nil
	case strings.Contains(arg, substitution):
		return e.evaluate(arg, c.run, c.depth+1)
	}
	return arg, nil
}

// field resolves an argument naming a claim value.
func (e *Evaluator) field(c *callSite, i int) (string, error) {
	arg := c.args[i]
	if isQuoted(arg) || strings.Contains(arg, substitution) {
		return e.literal(c, i)
	}
	v, _ := c.run.values.String(arg)
	return strings.TrimSpace(v), nil
}

// dateOffset formats the date held in three claim values, shifted by offset.
// A missing part yields an empty result.
func (e *Evaluator) dateOffset(c *callSite) (string, error) {
	var parts [3]string
	for i := range parts {
		v, err := e.field(c, i)
		if err != nil {
			return "", err
		}
		if v == "" {
			return "", nil
		}
		parts[i] = v
	}

	date, err := domain.ComposeDate(parts[0], parts[1], parts[2])
	if err != nil {
		return "", err
	}
	return e.formatOffset(c, date, 3)
}

// dateOffsetFromCurrent formats today's date shifted by offset.
func (e *Evaluator) dateOffsetFromCurrent(c *callSite) (string, error) {
	return e.formatOffset(c, domain.Today(e.now()), 0)
}

// formatOffset reads the format and offset arguments starting at formatArg.
func (e *Evaluator) formatOffset(c *callSite, date time.Time, formatArg int) (string, error) {
	format, err := e.literal(c, formatArg)
	if err != nil {
		return "", err
	}
	raw, err := e.literal(c, formatArg+1)
	if err != nil {
		return "", err
	}
	offset, err := ParseOffset(raw)
	if err != nil {
		return "", err
	}
	return FormatDate(offset.Apply(date), format)
}

// prop looks up a message and evaluates its value. A value identical to the
// calling expression is returned unevaluated.
func (e *Evaluator) prop(c *callSite) (string, error) {
	name, err := e.literal(c, 0)
	if err != nil {
		return "", err
	}
	value, ok := messages.Get(e.source, name)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrMessageNotFound, name)
	}
	if value == c.expr {
		return value, nil
	}

	if err := c.run.push("prop:" + name); err != nil {
		return "", err
	}
	defer c.run.pop()
	return e.evaluate(value, c.run, c.depth+1)
}
