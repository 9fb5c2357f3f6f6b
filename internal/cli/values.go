package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/claimform/pkg/domain"
)

// LoadFieldValues reads submitted form values from a YAML mapping of field
// to a scalar or a list of scalars. An empty path yields no values.
func LoadFieldValues(path string) (domain.FieldValues, error) {
	raw, err := readYAML(path)
	if err != nil || raw == nil {
		return nil, err
	}

	values := make(domain.FieldValues, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			values[k] = nil
		case []any:
			list := make([]string, 0, len(t))
			for _, item := range t {
				s, err := scalar(item)
				if err != nil {
					return nil, fmt.Errorf("%s: field %q: %w", path, k, err)
				}
				list = append(list, s)
			}
			values[k] = list
		default:
			s, err := scalar(t)
			if err != nil {
				return nil, fmt.Errorf("%s: field %q: %w", path, k, err)
			}
			values[k] = []string{s}
		}
	}
	return values, nil
}

// LoadClaimValues reads claim values from YAML. Scalars become strings;
// lists of mappings become field collections.
func LoadClaimValues(path string) (domain.ClaimValues, error) {
	raw, err := readYAML(path)
	if err != nil || raw == nil {
		return domain.ClaimValues{}, err
	}

	values := make(domain.ClaimValues, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
		case []any:
			collection := make(domain.FieldCollection, 0, len(t))
			for i, item := range t {
				entry, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%s: %s[%d]: expected a mapping, got %T", path, k, i, item)
				}
				fields := make(map[string]string, len(entry))
				for name, fv := range entry {
					s, err := scalar(fv)
					if err != nil {
						return nil, fmt.Errorf("%s: %s[%d].%s: %w", path, k, i, name, err)
					}
					fields[name] = s
				}
				collection = append(collection, fields)
			}
			values[k] = collection
		default:
			s, err := scalar(t)
			if err != nil {
				return nil, fmt.Errorf("%s: %q: %w", path, k, err)
			}
			values[k] = s
		}
	}
	return values, nil
}

// SortedKeys returns the keys of values in lexical order.
func SortedKeys(values domain.FieldValues) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func readYAML(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

func scalar(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t), nil
	case time.Time:
		return t.Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}
