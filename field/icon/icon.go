// Package icon validates <icon> elements. The type attribute selects the
// variant and decides which attributes are allowed.
package icon

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/reoring/metainfo/reader"
)

// Kind is the icon variant named by the type attribute.
type Kind string

const (
	Stock  Kind = "stock"
	Cached Kind = "cached"
	Local  Kind = "local"
	Remote Kind = "remote"
)

// attributes allowed per kind besides "type".
var allowed = map[Kind][]string{
	Stock:  nil,
	Cached: nil,
	Local:  {"width", "height"},
	Remote: {"width", "height"},
}

// Icon is one validated icon. Only the fields matching Kind are set.
type Icon struct {
	Kind Kind
	// Name is the stock or cached icon name.
	Name string
	// Path is the local file path. Its existence is not checked.
	Path string
	// URL is the remote location.
	URL *url.URL
	// Width and Height are 0 when not given.
	Width  int
	Height int
}

// Value returns the variant's main value: name, path or URL.
func (i Icon) Value() string {
	switch i.Kind {
	case Local:
		return i.Path
	case Remote:
		if i.URL != nil {
			return i.URL.String()
		}
		return ""
	default:
		return i.Name
	}
}

// Parse validates one element. index is its position among the document's
// icons and is carried by errors.
func Parse(index int, el reader.Element) (Icon, error) {
	raw, ok := el.Attr("type")
	if !ok {
		return Icon{}, &TypeError{Index: index, Missing: true}
	}
	kind := Kind(raw)
	allow, known := allowed[kind]
	if !known {
		return Icon{}, &TypeError{Index: index, Value: raw}
	}
	for _, name := range slices.Sorted(maps.Keys(el.Attrs)) {
		if name != "type" && !slices.Contains(allow, name) {
			return Icon{}, &AttributeError{Index: index, Kind: kind, Name: name, Value: el.Attrs[name]}
		}
	}

	value := strings.TrimSpace(el.Text)
	if value == "" {
		return Icon{}, &ValueError{Index: index, Kind: kind, Reason: "value is empty"}
	}

	ic := Icon{Kind: kind}
	switch kind {
	case Stock, Cached:
		ic.Name = value
		return ic, nil
	case Local:
		ic.Path = value
	case Remote:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Icon{}, &ValueError{Index: index, Kind: kind, Value: value, Reason: "not an absolute URL"}
		}
		ic.URL = u
	}

	var err error
	if ic.Width, err = dimension(index, kind, el, "width"); err != nil {
		return Icon{}, err
	}
	if ic.Height, err = dimension(index, kind, el, "height"); err != nil {
		return Icon{}, err
	}
	return ic, nil
}

// ParseAll validates every element, stopping at the first failure.
func ParseAll(els []reader.Element) ([]Icon, error) {
	out := make([]Icon, 0, len(els))
	for i, el := range els {
		ic, err := Parse(i, el)
		if err != nil {
			return nil, err
		}
		out = append(out, ic)
	}
	return out, nil
}

func dimension(index int, kind Kind, el reader.Element, name string) (int, error) {
	raw, ok := el.Attr(name)
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, &AttributeError{Index: index, Kind: kind, Name: name, Value: raw, Reason: "must be a positive integer"}
	}
	return n, nil
}

// TypeError reports a missing or unknown type attribute.
type TypeError struct {
	Index   int
	Value   string
	Missing bool
}

func (e *TypeError) Error() string {
	if e.Missing {
		return fmt.Sprintf("icon %d: missing `type` attribute", e.Index)
	}
	return fmt.Sprintf("icon %d: invalid icon type `%s`", e.Index, e.Value)
}

func (e *TypeError) Code() string { return "invalid_icon_type" }

// AttributeError reports an attribute not allowed for the kind, or one with
// a bad value.
type AttributeError struct {
	Index  int
	Kind   Kind
	Name   string
	Value  string
	Reason string
}

func (e *AttributeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("icon %d (%s): attribute `%s`=`%s` %s", e.Index, e.Kind, e.Name, e.Value, e.Reason)
	}
	return fmt.Sprintf("icon %d (%s): unexpected attribute `%s` with value `%s`", e.Index, e.Kind, e.Name, e.Value)
}

func (e *AttributeError) Code() string { return "invalid_icon_attribute" }

// ValueError reports an empty or malformed icon value.
type ValueError struct {
	Index  int
	Kind   Kind
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("icon %d (%s): %s", e.Index, e.Kind, e.Reason)
	}
	return fmt.Sprintf("icon %d (%s): %q %s", e.Index, e.Kind, e.Value, e.Reason)
}

func (e *ValueError) Code() string { return "invalid_icon" }
