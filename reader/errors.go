package reader

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a mandatory path matched nothing.
var ErrNotFound = errors.New("no value at path")

// SyntaxError reports raw text that cannot be parsed as XML. Line is 1-based
// and 0 when unknown.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed XML at line %d: %s", e.Line, e.Msg)
	}
	return "malformed XML: " + e.Msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// QueryError reports a path that could not be evaluated or matched nothing.
type QueryError struct {
	Path string
	Err  error
}

func (e *QueryError) Error() string { return fmt.Sprintf("query %s: %v", e.Path, e.Err) }

func (e *QueryError) Unwrap() error { return e.Err }
