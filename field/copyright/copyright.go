// Package copyright parses the leading "Copyright <years> <holder>" comment
// of a metainfo file.
package copyright

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dateRange  = regexp.MustCompile(`[0-9]{4}((, |-)[0-9]{4})*`)
	prefix     = regexp.MustCompile(`^Copyright [0-9]{4}((, |-)[0-9]{4})* `)
	fullNotice = regexp.MustCompile(`^Copyright [0-9]{4}((, |-)[0-9]{4})* .*$`)
)

// ErrMissing reports a document without a leading comment.
var ErrMissing error = missingError{}

type missingError struct{}

func (missingError) Error() string {
	return "expected copyright comment, e.g. <!-- Copyright YYYY First Last <maintainer@email.org> -->"
}

func (missingError) Code() string { return "missing_copyright" }

// Copyright is a parsed copyright notice.
type Copyright struct {
	year   string
	holder string
}

// Year returns the year or year-range token, e.g. "2014-2018".
func (c Copyright) Year() string { return c.year }

// Holder returns the text after the years, unmodified.
func (c Copyright) Holder() string { return c.holder }

func (c Copyright) String() string { return "Copyright " + c.year + " " + c.holder }

// Parse validates comment text. Surrounding whitespace is ignored.
func Parse(comment string) (Copyright, error) {
	trimmed := strings.TrimSpace(comment)

	year := dateRange.FindString(trimmed)
	if year == "" {
		return Copyright{}, &DateRangeError{Text: trimmed}
	}
	holder := prefix.ReplaceAllLiteralString(trimmed, "")

	// A year somewhere in the text is not enough: the whole comment must
	// read as a copyright line.
	if !fullNotice.MatchString(trimmed) {
		return Copyright{}, &InvalidError{Text: trimmed}
	}
	return Copyright{year: year, holder: holder}, nil
}

// FromComment validates an optional leading comment.
func FromComment(comment string, present bool) (Copyright, error) {
	if !present {
		return Copyright{}, ErrMissing
	}
	return Parse(comment)
}

// DateRangeError reports a comment without any four-digit year.
type DateRangeError struct {
	Text string
}

func (e *DateRangeError) Error() string { return fmt.Sprintf("malformed date range: %s", e.Text) }

func (e *DateRangeError) Code() string { return "malformed_date_range" }

// InvalidError reports a comment that does not match
// "Copyright <years> <holder>".
type InvalidError struct {
	Text string
}

func (e *InvalidError) Error() string { return fmt.Sprintf("invalid copyright comment: %s", e.Text) }

func (e *InvalidError) Code() string { return "invalid_copyright" }
