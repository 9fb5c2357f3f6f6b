package ports

// MessageSource is a read-only lookup of message resources keyed by dotted strings.
//
// It carries every piece of form configuration: field lists ("<form>.fields"),
// dependency and validation declarations ("<field>.validation.<kind>"), and
// question templates with their ".args" expression lists.
// Implementations must be safe for concurrent reads once loaded.
type MessageSource interface {
	// Message returns the raw value stored under key, without any expansion.
	Message(key string) (string, bool)
}

// MessageFunc adapts a function to the MessageSource interface.
type MessageFunc func(key string) (string, bool)

// Message implements MessageSource.
func (f MessageFunc) Message(key string) (string, bool) {
	return f(key)
}
