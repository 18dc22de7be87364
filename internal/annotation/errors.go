package annotation

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a load failure.
type ErrorKind string

const (
	KindFetch      ErrorKind = "fetch"
	KindParse      ErrorKind = "parse"
	KindValidation ErrorKind = "validation"
)

var (
	// ErrFetch matches failures reaching the source or non-2xx responses.
	ErrFetch = errors.New("annotation fetch failed")
	// ErrParse matches documents that are not valid JSON of the expected shape.
	ErrParse = errors.New("annotation parse failed")
	// ErrValidation matches well-formed documents missing required fields.
	ErrValidation = errors.New("annotation validation failed")
)

// LoadError reports why the dataset could not be loaded. It is fatal: the
// viewer never renders partial data.
type LoadError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.sentinel(), e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

// ErrorKind returns the classification string for log fields and status mapping.
func (e *LoadError) ErrorKind() string {
	return string(e.Kind)
}

func (e *LoadError) sentinel() error {
	switch e.Kind {
	case KindFetch:
		return ErrFetch
	case KindParse:
		return ErrParse
	default:
		return ErrValidation
	}
}
