// Package category validates freedesktop.org main categories.
package category

import (
	"fmt"
	"slices"

	"github.com/reoring/metainfo/reader"
)

// Category is a member of the closed main-category vocabulary.
type Category string

const (
	Audio       Category = "Audio"
	AudioVideo  Category = "AudioVideo"
	Development Category = "Development"
	Education   Category = "Education"
	Game        Category = "Game"
	Graphics    Category = "Graphics"
	Network     Category = "Network"
	Office      Category = "Office"
	Science     Category = "Science"
	Settings    Category = "Settings"
	System      Category = "System"
	Utility     Category = "Utility"
	Video       Category = "Video"
)

var vocabulary = []Category{
	Audio, AudioVideo, Development, Education, Game, Graphics, Network,
	Office, Science, Settings, System, Utility, Video,
}

// related maps additional category names to the main categories they
// imply. It is exposed for callers that normalize categories; validation
// does not expand them.
var related = map[string][]Category{
	"Building": {Development},
	"Debugger": {Development},
	"IDE":      {Development},
}

// All returns the vocabulary in canonical order.
func All() []Category { return slices.Clone(vocabulary) }

// Related returns the main categories implied by name, if any.
func Related(name string) []Category { return slices.Clone(related[name]) }

// RelatedNames returns every name with an entry in the related table, sorted.
func RelatedNames() []string {
	names := make([]string, 0, len(related))
	for n := range related {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Parse matches s exactly (case-sensitive) against the vocabulary.
func Parse(s string) (Category, error) {
	for _, c := range vocabulary {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &UnknownError{Value: s}
}

// Set is the ordered list of declared categories. Duplicates are kept.
type Set struct {
	items []Category
}

// Items returns the categories in declaration order.
func (s Set) Items() []Category { return slices.Clone(s.items) }

// Len returns the number of declared categories.
func (s Set) Len() int { return len(s.items) }

// Contains reports whether c was declared.
func (s Set) Contains(c Category) bool { return slices.Contains(s.items, c) }

// ParseAll validates values in order, stopping at the first unknown name.
func ParseAll(values []string) (Set, error) {
	items := make([]Category, 0, len(values))
	for _, v := range values {
		c, err := Parse(v)
		if err != nil {
			return Set{}, err
		}
		items = append(items, c)
	}
	return Set{items: items}, nil
}

// FromElements validates the <categories> groups matched by a reader. No
// group means no categories were declared and yields nil; an empty group
// yields an empty, non-nil Set.
func FromElements(groups []reader.Element) (*Set, error) {
	if len(groups) == 0 {
		return nil, nil
	}
	var values []string
	for _, g := range groups {
		for _, c := range g.Children {
			if c.Name == "category" {
				values = append(values, c.Text)
			}
		}
	}
	s, err := ParseAll(values)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UnknownError reports a name outside the vocabulary.
type UnknownError struct {
	Value string
}

func (e *UnknownError) Error() string { return fmt.Sprintf("unknown category: %s", e.Value) }

func (e *UnknownError) Code() string { return "unknown_category" }
