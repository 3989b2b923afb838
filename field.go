package metainfo

import (
	"errors"
	"fmt"

	"github.com/reoring/metainfo/reader"
)

// Shape is the form of a field's raw value.
type Shape int

const (
	// ShapeString is a mandatory single string; no match is an extraction error.
	ShapeString Shape = iota
	// ShapeOptional is a string that may be absent.
	ShapeOptional
	// ShapeList is every matched string, possibly none.
	ShapeList
	// ShapeComment is the text of a comment node that may be absent.
	ShapeComment
	// ShapeElements is every matched element with attributes and children.
	ShapeElements
	// ShapeElement is like ShapeElements but must match at least one element.
	ShapeElement
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeOptional:
		return "optional"
	case ShapeList:
		return "list"
	case ShapeComment:
		return "comment"
	case ShapeElements:
		return "elements"
	case ShapeElement:
		return "element"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Raw is an unvalidated value produced by Field.Load. Only the members that
// belong to its Shape are set.
type Raw struct {
	Shape Shape
	// Text is set for ShapeString, ShapeOptional and ShapeComment.
	Text string
	// Present reports whether ShapeOptional or ShapeComment matched.
	Present  bool
	List     []string
	Elements []reader.Element
}

// Field describes where one value lives in the document and how its raw
// value becomes a validated T.
type Field[T any] struct {
	Name  string
	Path  string
	Shape Shape
	// Construct validates the raw value. It never sees extraction failures.
	Construct func(Raw) (T, error)
}

// Load evaluates Path against r and returns the raw value unmodified.
func (f Field[T]) Load(r *reader.Reader) (Raw, error) {
	raw := Raw{Shape: f.Shape}
	var err error
	switch f.Shape {
	case ShapeString:
		raw.Text, err = r.String(f.Path)
		raw.Present = err == nil
	case ShapeOptional:
		raw.Text, raw.Present, err = r.Optional(f.Path)
	case ShapeList:
		raw.List, err = r.Strings(f.Path)
	case ShapeComment:
		raw.Text, raw.Present, err = r.Comment(f.Path)
	case ShapeElements:
		raw.Elements, err = r.Elements(f.Path)
	case ShapeElement:
		raw.Elements, err = r.Elements(f.Path)
		if err == nil && len(raw.Elements) == 0 {
			err = &reader.QueryError{Path: f.Path, Err: reader.ErrNotFound}
		}
	default:
		err = fmt.Errorf("unsupported shape %v", f.Shape)
	}
	return raw, err
}

// Resolve runs Load then Construct. Failures are reported as *Error with
// StageExtract or StageField.
func (f Field[T]) Resolve(r *reader.Reader) (T, error) {
	var zero T
	raw, err := f.Load(r)
	if err != nil {
		return zero, &Error{Stage: StageExtract, Field: f.Name, Path: f.Path, Err: unwrapQuery(err)}
	}
	v, err := f.Construct(raw)
	if err != nil {
		return zero, &Error{Stage: StageField, Field: f.Name, Path: f.Path, Err: err}
	}
	return v, nil
}

// unwrapQuery drops the reader's path prefix; Error already carries Path.
func unwrapQuery(err error) error {
	var qe *reader.QueryError
	if errors.As(err, &qe) {
		return qe.Err
	}
	return err
}
