// Package text holds the free-text fields of a metainfo document.
package text

import (
	"fmt"
	"strings"
)

// Name is the human-readable component name.
type Name string

// Summary is the one-line description.
type Summary string

// PkgName is the distribution package providing the component.
type PkgName string

func (n Name) String() string    { return string(n) }
func (s Summary) String() string { return string(s) }
func (p PkgName) String() string { return string(p) }

// ParseName trims s and rejects empty values.
func ParseName(s string) (Name, error) {
	v, err := required("name", s)
	return Name(v), err
}

// ParseSummary trims s and rejects empty values.
func ParseSummary(s string) (Summary, error) {
	v, err := required("summary", s)
	return Summary(v), err
}

// ParsePkgName trims s and rejects empty values or values containing
// whitespace.
func ParsePkgName(s string) (PkgName, error) {
	v, err := required("pkgname", s)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(v, " \t\r\n") {
		return "", &InvalidError{Field: "pkgname", Value: v, Reason: "must not contain whitespace"}
	}
	return PkgName(v), nil
}

func required(field, s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", &EmptyError{Field: field}
	}
	return v, nil
}

// EmptyError reports a present but blank value.
type EmptyError struct {
	Field string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("failed to load `%s`: value is empty", e.Field)
}

func (e *EmptyError) Code() string { return "empty" }

// InvalidError reports a value with a disallowed shape.
type InvalidError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid `%s` %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidError) Code() string { return "invalid_text" }
