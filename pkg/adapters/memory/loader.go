package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/claimform/pkg/domain"
)

// Loader implements ports.MappingLoader using an in-memory map.
type Loader struct {
	mappings map[string]domain.MappingList
}

// NewLoader creates a new in-memory loader with the provided mapping lists.
func NewLoader(data map[string]domain.MappingList) *Loader {
	mappings := make(map[string]domain.MappingList, len(data))
	for name, list := range data {
		mappings[name] = append(domain.MappingList(nil), list...)
	}
	return &Loader{
		mappings: mappings,
	}
}

// LoadMappings returns a copy of the mapping list registered under name.
func (l *Loader) LoadMappings(name string) (domain.MappingList, error) {
	list, ok := l.mappings[name]
	if !ok {
		return nil, fmt.Errorf("mapping not found: %s", name)
	}
	return append(domain.MappingList(nil), list...), nil
}

// Names returns all registered mapping names.
func (l *Loader) Names() []string {
	keys := make([]string, 0, len(l.mappings))
	for k := range l.mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys
}
