// Package dependency resolves fold-out sections: fields whose validations only
// apply while other fields hold a gating value.
package dependency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/claimform/internal/messages"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/ports"
)

// DefaultKeyFormat locates a field's dependency declaration.
const DefaultKeyFormat = "%s.validation.dependency"

// Clause requires Field to carry Value.
type Clause struct {
	Field string
	Value string
}

func (c Clause) String() string {
	return c.Field + "=" + c.Value
}

// Holds reports whether the clause is satisfied by values.
func (c Clause) Holds(values domain.FieldValues) bool {
	return values.HasValue(c.Field, c.Value)
}

// Dependency gates Field on every clause holding (logical AND).
// A dependency with more than one clause is an aggregate dependency.
type Dependency struct {
	Field   string
	Clauses []Clause
}

// IsAggregate reports whether several clauses are combined.
func (d Dependency) IsAggregate() bool {
	return len(d.Clauses) > 1
}

// Fulfilled reports whether every clause holds.
func (d Dependency) Fulfilled(values domain.FieldValues) bool {
	for _, c := range d.Clauses {
		if !c.Holds(values) {
			return false
		}
	}
	return true
}

func (d Dependency) String() string {
	parts := make([]string, len(d.Clauses))
	for i, c := range d.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",&")
}

// Parse reads a declaration of the form "other=value[,&other2=value2]".
// The whole declaration may be wrapped in quotes.
func Parse(declaration string) ([]Clause, error) {
	raw := messages.TrimQuotes(strings.TrimSpace(declaration))
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty dependency declaration")
	}

	var clauses []Clause
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimSpace(strings.TrimPrefix(part, "&"))
		if part == "" {
			return nil, fmt.Errorf("empty clause in %q", declaration)
		}

		field, value, found := strings.Cut(part, "=")
		field = strings.TrimSpace(field)
		value = strings.TrimSpace(value)
		if !found || field == "" || value == "" {
			return nil, fmt.Errorf("clause %q is not of the form field=value", part)
		}
		clauses = append(clauses, Clause{Field: field, Value: value})
	}
	return clauses, nil
}

// Graph is the immutable set of dependencies for one form.
// It is safe for concurrent use once built.
type Graph struct {
	fields []string
	deps   map[string]Dependency
}

// New builds a graph for the known fields. Dependencies declared more than
// once for the same field are aggregated. Unknown fields and cycles are
// reported as *domain.ConfigurationError.
func New(known []string, deps ...Dependency) (*Graph, error) {
	g := &Graph{
		fields: append([]string(nil), known...),
		deps:   make(map[string]Dependency),
	}

	knownSet := make(map[string]bool, len(known))
	for _, f := range known {
		knownSet[f] = true
	}

	for _, d := range deps {
		if len(d.Clauses) == 0 {
			continue
		}
		for _, c := range d.Clauses {
			if !knownSet[c.Field] {
				return nil, &domain.ConfigurationError{
					Key:    d.Field,
					Reason: fmt.Sprintf("dependency on %q", c.Field),
					Err:    domain.ErrUnknownField,
				}
			}
		}
		existing := g.deps[d.Field]
		existing.Field = d.Field
		existing.Clauses = append(existing.Clauses, d.Clauses...)
		g.deps[d.Field] = existing
	}

	if err := g.checkCycles(); err != nil {
		return nil, err
	}
	return g, nil
}

// Load reads "<field>.validation.dependency" (or keyFormat) for each field
// and builds the graph. Referenced fields must appear in known.
func Load(source ports.MessageSource, keyFormat string, fields, known []string) (*Graph, error) {
	if keyFormat == "" {
		keyFormat = DefaultKeyFormat
	}

	var deps []Dependency
	for _, field := range fields {
		key := fmt.Sprintf(keyFormat, field)
		declaration, ok := messages.Get(source, key)
		if !ok || declaration == "" {
			continue
		}
		clauses, err := Parse(declaration)
		if err != nil {
			return nil, &domain.ConfigurationError{Key: key, Reason: "malformed dependency", Err: err}
		}
		deps = append(deps, Dependency{Field: field, Clauses: clauses})
	}
	return New(known, deps...)
}

func (g *Graph) checkCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(g.deps))

	var visit func(field string, path []string) error
	visit = func(field string, path []string) error {
		switch state[field] {
		case visiting:
			return &domain.ConfigurationError{
				Key:    field,
				Reason: strings.Join(append(path, field), " -> "),
				Err:    domain.ErrCyclicDependency,
			}
		case done:
			return nil
		}
		state[field] = visiting
		for _, c := range g.deps[field].Clauses {
			if err := visit(c.Field, append(path, field)); err != nil {
				return err
			}
		}
		state[field] = done
		return nil
	}

	for _, field := range g.sortedDependants() {
		if err := visit(field, nil); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) sortedDependants() []string {
	keys := make([]string, 0, len(g.deps))
	for k := range g.deps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsActive reports whether field's enclosing fold-out section is live:
// every clause of its dependency holds and every field it depends on is
// itself active, transitively. Fields without a dependency are always active.
func (g *Graph) IsActive(field string, values domain.FieldValues) bool {
	return g.active(field, values, make(map[string]bool))
}

func (g *Graph) active(field string, values domain.FieldValues, visited map[string]bool) bool {
	dep, ok := g.deps[field]
	if !ok {
		return true
	}
	// Cycles are rejected by New; never loop even if one slipped through.
	if visited[field] {
		return false
	}
	visited[field] = true
	defer delete(visited, field)

	if !dep.Fulfilled(values) {
		return false
	}
	for _, c := range dep.Clauses {
		if !g.active(c.Field, values, visited) {
			return false
		}
	}
	return true
}

// Dependency returns the dependency declared for field.
func (g *Graph) Dependency(field string) (Dependency, bool) {
	d, ok := g.deps[field]
	return d, ok
}

// Fields returns the known fields in declaration order.
func (g *Graph) Fields() []string {
	return append([]string(nil), g.fields...)
}

// Chain returns the fields field transitively depends on, nearest first.
func (g *Graph) Chain(field string) []string {
	var chain []string
	seen := map[string]bool{field: true}
	queue := []string{field}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, c := range g.deps[current].Clauses {
			if seen[c.Field] {
				continue
			}
			seen[c.Field] = true
			chain = append(chain, c.Field)
			queue = append(queue, c.Field)
		}
	}
	return chain
}
