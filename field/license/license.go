// Package license validates SPDX license expressions such as
// "MIT OR Apache-2.0" or "GPL-2.0-or-later WITH Classpath-exception-2.0".
package license

import (
	"fmt"
	"strings"
)

// License is a validated SPDX expression. Its textual form is exactly the
// input it was built from.
type License struct {
	expr string
}

// New validates expr against the default identifier table.
func New(expr string) (License, error) {
	return DefaultTable().Parse(expr)
}

// Parse validates expr against t.
func (t *Table) Parse(expr string) (License, error) {
	if err := validate(t, expr); err != nil {
		return License{}, err
	}
	return License{expr: expr}, nil
}

// ParseOptional validates an optional license value. Absent or blank input
// yields (nil, nil).
func (t *Table) ParseOptional(raw string, present bool) (*License, error) {
	if !present || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	l, err := t.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (l License) String() string { return l.expr }

// UnknownIDError reports an identifier missing from the table.
type UnknownIDError struct {
	ID string
	// Exception is set when the identifier followed WITH.
	Exception bool
}

func (e *UnknownIDError) Error() string {
	if e.Exception {
		return fmt.Sprintf("unknown license exception: %s", e.ID)
	}
	return fmt.Sprintf("unknown license or other term: %s", e.ID)
}

func (e *UnknownIDError) Code() string { return "unknown_license" }

// StructureError reports a malformed boolean expression. Offset is the byte
// position of the offending token, or -1 when the parser does not report one.
type StructureError struct {
	Offset int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("invalid license expression: %s", e.Reason)
	}
	return fmt.Sprintf("invalid license expression at offset %d: %s", e.Offset, e.Reason)
}

func (e *StructureError) Code() string { return "invalid_license_expression" }
