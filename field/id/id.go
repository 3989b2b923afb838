// Package id validates reverse-DNS component identifiers such as
// "org.gnome.Maps".
package id

import (
	"fmt"
	"strings"
)

// Segment names one of the three identifier parts.
type Segment int

const (
	SegmentTLD Segment = iota
	SegmentVendor
	SegmentProduct
)

func (s Segment) String() string {
	switch s {
	case SegmentTLD:
		return "tld"
	case SegmentVendor:
		return "vendor"
	case SegmentProduct:
		return "product"
	}
	return fmt.Sprintf("segment(%d)", int(s))
}

// ID is a validated reverse-DNS identifier.
type ID struct {
	tld     string
	vendor  string
	product string
}

// TLD returns the top-level domain segment.
func (i ID) TLD() string { return i.tld }

// Vendor returns the vendor segment.
func (i ID) Vendor() string { return i.vendor }

// Product returns the product segment. It may itself contain dots.
func (i ID) Product() string { return i.product }

// String renders the canonical dot-joined form.
func (i ID) String() string { return i.tld + "." + i.vendor + "." + i.product }

// New validates pre-split segments. Characters are checked across all three
// segments before the top-level domain is looked up in suffixes.
func New(suffixes SuffixList, tld, vendor, product string) (ID, error) {
	segs := [3]string{tld, vendor, product}
	for i, s := range segs {
		for _, r := range s {
			if !validRune(r) {
				return ID{}, &InvalidCharError{Segment: Segment(i), Char: r, Value: s}
			}
		}
	}
	if suffixes == nil {
		suffixes = DefaultSuffixes()
	}
	if !suffixes.Known(tld) {
		return ID{}, &UnknownTLDError{TLD: tld}
	}
	return ID{tld: tld, vendor: vendor, product: product}, nil
}

// Parse splits s into tld, vendor and product and validates them. Everything
// after the second dot belongs to the product.
func Parse(suffixes SuffixList, s string) (ID, error) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) != 3 {
		return ID{}, &SegmentCountError{Value: s, Got: len(parts)}
	}
	for _, p := range parts {
		if p == "" {
			return ID{}, &SegmentCountError{Value: s, Got: len(parts), Empty: true}
		}
	}
	return New(suffixes, parts[0], parts[1], parts[2])
}

func validRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	}
	return false
}

// SegmentCountError reports an identifier that does not split into three
// non-empty segments.
type SegmentCountError struct {
	Value string
	Got   int
	Empty bool
}

func (e *SegmentCountError) Error() string {
	if e.Empty {
		return fmt.Sprintf("identifier %q has an empty segment", e.Value)
	}
	return fmt.Sprintf("identifier %q: expected three fields separated by `.`, got %d", e.Value, e.Got)
}

func (e *SegmentCountError) Code() string { return "invalid_id" }

// InvalidCharError reports the first character outside [A-Za-z0-9_.-].
type InvalidCharError struct {
	Segment Segment
	Char    rune
	Value   string
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("invalid character %q in %s segment %q", e.Char, e.Segment, e.Value)
}

func (e *InvalidCharError) Code() string { return "invalid_id" }

// UnknownTLDError reports a top-level domain missing from the suffix list.
type UnknownTLDError struct {
	TLD string
}

func (e *UnknownTLDError) Error() string {
	return fmt.Sprintf("unrecognized top-level domain %q", e.TLD)
}

func (e *UnknownTLDError) Code() string { return "unknown_tld" }
