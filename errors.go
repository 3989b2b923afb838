package metainfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/metainfo/i18n"
	"github.com/reoring/metainfo/reader"
)

// Issue codes for document and extraction failures.
// Field-specific codes come from the field packages' error types.
const (
	CodeMalformedXML = "malformed_xml"
	CodeRequired     = "required"
	CodeQuery        = "query_error"
	CodeInvalid      = "invalid"
)

// Stage tells which step of validation failed.
type Stage int

const (
	// StageDocument: the text is not a parsable XML document.
	StageDocument Stage = iota
	// StageExtract: a field's path matched nothing or could not be evaluated.
	StageExtract
	// StageField: a field's value was found but is invalid.
	StageField
)

func (s Stage) String() string {
	switch s {
	case StageDocument:
		return "document"
	case StageExtract:
		return "extract"
	case StageField:
		return "field"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Error is the single error returned by a fail-fast validation. Err holds
// the reader or field error and is reachable through errors.As.
type Error struct {
	Stage Stage
	// Field is the failing field's name; empty for StageDocument.
	Field string
	// Path is the field's path expression.
	Path string
	// Line is the 1-based line of a StageDocument error, 0 when unknown.
	Line int
	Err  error
}

func (e *Error) Error() string {
	switch e.Stage {
	case StageDocument:
		return e.Err.Error()
	case StageExtract:
		return fmt.Sprintf("failed to read field `%s`: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("failed to parse field `%s`: %v", e.Field, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// coder is implemented by every field error type.
type coder interface{ Code() string }

// Code returns a stable machine-readable code for the failure.
func (e *Error) Code() string {
	switch e.Stage {
	case StageDocument:
		return CodeMalformedXML
	case StageExtract:
		if errors.Is(e.Err, reader.ErrNotFound) {
			return CodeRequired
		}
		return CodeQuery
	}
	var c coder
	if errors.As(e.Err, &c) {
		return c.Code()
	}
	return CodeInvalid
}

// Issue projects the error onto the Issue model.
func (e *Error) Issue() Issue {
	it := Issue{
		Path:    e.Path,
		Field:   e.Field,
		Code:    e.Code(),
		Message: e.Err.Error(),
		Hint:    i18n.T(e.Code(), map[string]string{"field": e.Field}),
		Cause:   e.Err,
	}
	if e.Line > 0 {
		it.Params = map[string]any{"line": e.Line}
	}
	return it
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Path expression of the field (for example: /component/id/text()).
	Field   string // Field name; empty for document-level issues.
	Code    string // One of the codes above or a field error code.
	Message string
	Hint    string // Generic description of the code.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (for example {"line": 3}).
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unknown_license at license
		if it.Field != "" {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Field)
		} else {
			b.WriteString(it.Code)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes every issue's cause to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// AsIssues extracts Issues from an error. A single *Error is returned as a
// one-element slice.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var e *Error
	if errors.As(err, &e) {
		return Issues{e.Issue()}, true
	}
	return nil, false
}
