package metainfo

import (
	"context"
	"errors"
	"sync"

	"github.com/reoring/metainfo/field/id"
	"github.com/reoring/metainfo/field/license"
	"github.com/reoring/metainfo/reader"
)

// ValidateOpt tunes a validation. The zero value validates fail-fast against
// the bundled suffix list and SPDX table.
type ValidateOpt struct {
	// Suffixes replaces the public suffix list used for identifiers.
	Suffixes id.SuffixList
	// Licenses replaces the license identifier table.
	Licenses *license.Table
	// Collect keeps validating after a failure and returns every field's
	// failure as Issues instead of the first *Error.
	Collect bool
}

// Metainfo holds the text of one document. The reader is built on first use
// and reused by later calls; a Metainfo never changes documents.
type Metainfo struct {
	text string

	once   sync.Once
	reader *reader.Reader
	err    error
}

// New wraps document text for validation. Nothing is parsed yet.
func New(text string) *Metainfo { return &Metainfo{text: text} }

// NewBytes is New for byte input.
func NewBytes(b []byte) *Metainfo { return New(string(b)) }

func (m *Metainfo) load() (*reader.Reader, error) {
	m.once.Do(func() {
		r, err := reader.Parse(m.text)
		if err != nil {
			e := &Error{Stage: StageDocument, Err: err}
			var se *reader.SyntaxError
			if errors.As(err, &se) {
				e.Line = se.Line
			}
			m.err = e
			return
		}
		m.reader = r
	})
	return m.reader, m.err
}

// Validate checks every field in a fixed order and assembles a Document.
//
// By default the first failure stops validation and is returned as *Error:
// StageDocument when the text is not XML, StageExtract when a required
// element is missing, StageField when a value is invalid. With
// ValidateOpt.Collect the result is Issues. A canceled ctx stops between
// fields and returns ctx.Err().
func (m *Metainfo) Validate(ctx context.Context, opts ...ValidateOpt) (*Document, error) {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	r, err := m.load()
	if err != nil {
		if opt.Collect {
			var e *Error
			if errors.As(err, &e) {
				return nil, Issues{e.Issue()}
			}
		}
		return nil, err
	}
	return run(ctx, r, opt)
}

// Validate is a shorthand for New(text).Validate(ctx, opts...).
func Validate(ctx context.Context, text string, opts ...ValidateOpt) (*Document, error) {
	return New(text).Validate(ctx, opts...)
}
