package document

import (
	"errors"
	"fmt"
)

// ErrUnknownAnchor is wrapped by ParseError when an alias names no earlier anchor.
var ErrUnknownAnchor = errors.New("unknown anchor")

// ErrRecursiveAlias is wrapped by ParseError when an alias refers to a node that contains it.
var ErrRecursiveAlias = errors.New("alias refers to an enclosing node")

// ParseError reports input that the YAML parser rejected. Line and Column are
// 1-based; zero means the parser did not report a position.
type ParseError struct {
	Message string
	Line    int
	Column  int
	Err     error
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("yaml parse error: %s (line: %d, column: %d)", e.Message, e.Line, e.Column)
	}

	return "yaml parse error: " + e.Message
}

// Unwrap returns the underlying parser error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error, line, column int) *ParseError {
	return &ParseError{Message: err.Error(), Line: line, Column: column, Err: err}
}
