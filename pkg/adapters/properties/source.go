// Package properties loads form configuration from Java-style .properties files.
//
// Values are kept raw: "${...}" placeholders are expressions for the claim
// evaluator, so the library's own key expansion is disabled.
package properties

import (
	"fmt"

	"github.com/magiconair/properties"
)

// Source implements ports.MessageSource on top of one or more property files.
type Source struct {
	props *properties.Properties
}

func newLoader() *properties.Loader {
	return &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
}

// LoadFiles reads the given files in order; later files override earlier keys.
func LoadFiles(paths ...string) (*Source, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one properties file is required")
	}

	merged := properties.NewProperties()
	merged.DisableExpansion = true

	loader := newLoader()
	for _, path := range paths {
		p, err := loader.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load messages from %s: %w", path, err)
		}
		merged.Merge(p)
	}

	return &Source{props: merged}, nil
}

// Parse builds a source from in-memory properties content.
func Parse(content []byte) (*Source, error) {
	p, err := newLoader().LoadBytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return &Source{props: p}, nil
}

// Message returns the raw value stored under key.
func (s *Source) Message(key string) (string, bool) {
	return s.props.Get(key)
}

// Keys returns all keys in file order.
func (s *Source) Keys() []string {
	return s.props.Keys()
}

// Len returns the number of keys.
func (s *Source) Len() int {
	return s.props.Len()
}
