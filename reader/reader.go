// Package reader evaluates path expressions against a parsed metainfo
// document and returns raw, unvalidated values.
//
// The reader never interprets the values it returns: trimming, emptiness and
// vocabulary checks belong to the field validators.
package reader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/antchfx/xmlquery"
)

// Element is a raw element value: its own text plus attributes and direct
// child elements.
type Element struct {
	Name     string
	Text     string
	Attrs    map[string]string
	Children []Element
}

// Attr returns the value of the attribute name and whether it was present.
func (e Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Reader is a queryable view over one parsed document. It is immutable after
// Parse and safe for concurrent reads.
type Reader struct {
	root *xmlquery.Node
}

// xmlDecl is prepended to documents without one; xmlquery only keeps a
// leading comment node when a declaration precedes it.
const xmlDecl = "<?xml version=\"1.0\"?>\n"

// Parse parses raw document text. Leading and trailing whitespace is ignored.
// Errors are *SyntaxError; their Line counts lines of text as given.
func Parse(text string) (*Reader, error) {
	body := strings.TrimLeftFunc(text, unicode.IsSpace)
	lineShift := strings.Count(text[:len(text)-len(body)], "\n")
	body = strings.TrimRightFunc(body, unicode.IsSpace)
	if !strings.HasPrefix(body, "<?xml") {
		body = xmlDecl + body
		lineShift--
	}
	doc, err := xmlquery.Parse(strings.NewReader(body))
	if err != nil {
		se := &SyntaxError{Msg: err.Error(), Err: err}
		var xe *xml.SyntaxError
		if errors.As(err, &xe) {
			se.Line = max(xe.Line+lineShift, 1)
			se.Msg = xe.Msg
		}
		return nil, se
	}
	if xmlquery.FindOne(doc, "/*") == nil {
		return nil, &SyntaxError{Msg: "document has no root element"}
	}
	return &Reader{root: doc}, nil
}

// String returns the text of the first node matched by path. It fails with
// ErrNotFound when nothing matches.
func (r *Reader) String(path string) (string, error) {
	n, err := r.first(path)
	if err != nil {
		return "", err
	}
	if n == nil {
		return "", &QueryError{Path: path, Err: ErrNotFound}
	}
	return nodeText(n), nil
}

// Optional returns the text of the first node matched by path and whether
// anything matched.
func (r *Reader) Optional(path string) (string, bool, error) {
	n, err := r.first(path)
	if err != nil || n == nil {
		return "", false, err
	}
	return nodeText(n), true, nil
}

// Strings returns the text of every node matched by path in document order.
func (r *Reader) Strings(path string) ([]string, error) {
	nodes, err := r.all(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeText(n))
	}
	return out, nil
}

// Comment returns the text of the first comment node matched by path. A
// match that is not a comment is reported as absent.
func (r *Reader) Comment(path string) (string, bool, error) {
	n, err := r.first(path)
	if err != nil || n == nil {
		return "", false, err
	}
	if n.Type != xmlquery.CommentNode {
		return "", false, nil
	}
	return n.Data, true, nil
}

// Elements returns every element matched by path in document order.
func (r *Reader) Elements(path string) ([]Element, error) {
	nodes, err := r.all(path)
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		out = append(out, toElement(n))
	}
	return out, nil
}

func (r *Reader) first(path string) (*xmlquery.Node, error) {
	n, err := xmlquery.Query(r.root, path)
	if err != nil {
		return nil, &QueryError{Path: path, Err: err}
	}
	return n, nil
}

func (r *Reader) all(path string) ([]*xmlquery.Node, error) {
	nodes, err := xmlquery.QueryAll(r.root, path)
	if err != nil {
		return nil, &QueryError{Path: path, Err: err}
	}
	return nodes, nil
}

func nodeText(n *xmlquery.Node) string {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode, xmlquery.CommentNode:
		return n.Data
	default:
		return n.InnerText()
	}
}

func toElement(n *xmlquery.Node) Element {
	el := Element{Name: n.Data, Text: n.InnerText()}
	if len(n.Attr) > 0 {
		el.Attrs = make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			el.Attrs[a.Name.Local] = a.Value
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			el.Children = append(el.Children, toElement(c))
		}
	}
	return el
}

// String renders a short description used in debug output.
func (e Element) String() string {
	return fmt.Sprintf("<%s> %q", e.Name, e.Text)
}
