// Package report renders validation results for people and machines.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	metainfo "github.com/reoring/metainfo"
)

// CodeUnreadable marks a file that could not be read.
const CodeUnreadable = "unreadable"

// Result is the outcome for one file.
type Result struct {
	File     string    `json:"file" yaml:"file"`
	OK       bool      `json:"ok" yaml:"ok"`
	Document *Document `json:"document,omitempty" yaml:"document,omitempty"`
	Issues   []Issue   `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Document is the flat view of a validated document.
type Document struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Summary         string   `json:"summary" yaml:"summary"`
	PkgName         string   `json:"pkgname" yaml:"pkgname"`
	Type            string   `json:"type" yaml:"type"`
	Copyright       string   `json:"copyright" yaml:"copyright"`
	License         string   `json:"license,omitempty" yaml:"license,omitempty"`
	MetadataLicense string   `json:"metadata_license" yaml:"metadata_license"`
	Categories      []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Icons           []Icon   `json:"icons,omitempty" yaml:"icons,omitempty"`
}

type Icon struct {
	Type   string `json:"type" yaml:"type"`
	Value  string `json:"value" yaml:"value"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// Issue is one failure in a file.
type Issue struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// FromValidation converts what Validate returned for file.
func FromValidation(file string, doc *metainfo.Document, err error) Result {
	if err == nil {
		return Result{File: file, OK: true, Document: view(doc)}
	}
	r := Result{File: file}
	iss, ok := metainfo.AsIssues(err)
	if !ok {
		r.Issues = []Issue{{Code: CodeUnreadable, Message: err.Error()}}
		return r
	}
	for _, it := range iss {
		ri := Issue{Field: it.Field, Path: it.Path, Code: it.Code, Message: it.Message}
		if line, ok := it.Params["line"].(int); ok {
			ri.Line = line
		}
		r.Issues = append(r.Issues, ri)
	}
	return r
}

func view(d *metainfo.Document) *Document {
	if d == nil {
		return nil
	}
	v := &Document{
		ID:              d.ID().String(),
		Name:            string(d.Name()),
		Summary:         string(d.Summary()),
		PkgName:         string(d.PkgName()),
		Type:            d.ComponentType().String(),
		Copyright:       d.Copyright().String(),
		MetadataLicense: d.MetadataLicense().String(),
	}
	if l, ok := d.License(); ok {
		v.License = l.String()
	}
	if cats, ok := d.Categories(); ok {
		v.Categories = []string{}
		for _, c := range cats.Items() {
			v.Categories = append(v.Categories, string(c))
		}
	}
	for _, ic := range d.Icons() {
		v.Icons = append(v.Icons, Icon{Type: string(ic.Kind), Value: ic.Value(), Width: ic.Width, Height: ic.Height})
	}
	return v
}

// Failed reports whether any result has issues.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return true
		}
	}
	return false
}

var ErrUnknownFormat = errors.New("unknown report format")

// Write renders results in format: text, json or yaml.
func Write(w io.Writer, format string, results []Result) error {
	switch format {
	case "text", "":
		return writeText(w, results)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func writeText(w io.Writer, results []Result) error {
	b := &strings.Builder{}
	for _, r := range results {
		if r.OK {
			fmt.Fprintf(b, "%s: ok (%s)\n", r.File, r.Document.ID)
			continue
		}
		fmt.Fprintf(b, "%s: FAIL\n", r.File)
		for _, it := range r.Issues {
			loc := it.Field
			if loc == "" {
				loc = "document"
			}
			if it.Line > 0 {
				loc = fmt.Sprintf("%s (line %d)", loc, it.Line)
			}
			fmt.Fprintf(b, "  %s: %s: %s\n", loc, it.Code, it.Message)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
