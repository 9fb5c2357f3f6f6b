package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when configuration references a field the form does not declare.
var ErrUnknownField = errors.New("unknown field")

// ErrCyclicDependency is returned when fold-out dependencies form a cycle.
var ErrCyclicDependency = errors.New("cyclic dependency")

// ErrUnknownKind is returned for a validation kind outside the supported set.
var ErrUnknownKind = errors.New("unknown validation kind")

// ErrUnknownFunction is returned when an expression calls a function that does not exist.
var ErrUnknownFunction = errors.New("unknown function")

// ErrArity is returned when a function is called with the wrong number of arguments.
var ErrArity = errors.New("wrong number of arguments")

// ErrRecursionLimit is returned when expression evaluation does not reach a fixed point.
var ErrRecursionLimit = errors.New("recursion limit reached")

// ErrMessageNotFound is returned when a configuration key has no message.
var ErrMessageNotFound = errors.New("message not found")

// ConfigurationError reports a broken form definition. It is fatal at load time.
type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration error at %q: %s", e.Key, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// EvaluationError reports an expression that could not be evaluated.
type EvaluationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *EvaluationError) Error() string {
	msg := fmt.Sprintf("cannot evaluate %q: %s", e.Expression, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// DataShapeError reports a value or path the assembler cannot place in the document.
type DataShapeError struct {
	Key    string
	Path   string
	Reason string
}

func (e *DataShapeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cannot build %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("cannot build %q for %q: %s", e.Path, e.Key, e.Reason)
}
