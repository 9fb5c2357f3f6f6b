package memory

import "sort"

// Messages implements ports.MessageSource using an in-memory map.
// It is the default source for tests and for embedding small form definitions.
type Messages struct {
	data map[string]string
}

// NewMessages creates a message source from a key/value map.
func NewMessages(data map[string]string) *Messages {
	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return &Messages{data: copied}
}

// Message returns the raw value stored under key.
func (m *Messages) Message(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Len returns the number of messages.
func (m *Messages) Len() int {
	return len(m.data)
}

// Keys returns all keys in lexical order.
func (m *Messages) Keys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
