package lesson

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the kind of a ParseError.
var (
	ErrNotFound            = errors.New("lesson not found")
	ErrEmptyDocument       = errors.New("empty document")
	ErrMalformed           = errors.New("malformed document")
	ErrUnparsableStatement = errors.New("unparsable statement")
)

// ParseError reports a failure to scan or finalize one document.
type ParseError struct {
	Kind     error
	Document string
	Line     int
	Message  string
}

func (e *ParseError) Error() string {
	loc := e.Document
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", loc, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", loc, e.Kind, e.Message)
}

// Unwrap exposes the sentinel kind to errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newError(kind error, doc string, line int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:     kind,
		Document: doc,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	}
}
