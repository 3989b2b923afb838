package license

import (
	"maps"
	"strings"
	"sync"

	"github.com/github/go-spdx/v2/spdxexp/spdxlicenses"
)

// spdxIDs is the exact-case SPDX license list (active and deprecated) and
// exception list.
type spdxIDs struct {
	licenses   map[string]struct{}
	exceptions map[string]struct{}
}

var loadSPDX = sync.OnceValue(func() spdxIDs {
	ids := spdxIDs{
		licenses:   make(map[string]struct{}),
		exceptions: make(map[string]struct{}),
	}
	for _, id := range spdxlicenses.GetLicenses() {
		ids.licenses[id] = struct{}{}
	}
	for _, id := range spdxlicenses.GetDeprecated() {
		ids.licenses[id] = struct{}{}
	}
	for _, id := range spdxlicenses.GetExceptions() {
		ids.exceptions[id] = struct{}{}
	}
	return ids
})

// Table is the immutable set of accepted identifiers: the SPDX license list
// plus any custom license identifiers.
type Table struct {
	custom map[string]struct{}
}

var defaultTable = &Table{}

// DefaultTable returns the table of SPDX identifiers without custom entries.
func DefaultTable() *Table { return defaultTable }

// WithCustom returns a copy of t that also accepts ids as license
// identifiers. t itself is unchanged.
func (t *Table) WithCustom(ids ...string) *Table {
	if len(ids) == 0 {
		return t
	}
	c := &Table{custom: maps.Clone(t.custom)}
	if c.custom == nil {
		c.custom = make(map[string]struct{}, len(ids))
	}
	for _, id := range ids {
		c.custom[id] = struct{}{}
	}
	return c
}

// License reports whether id is an SPDX license identifier or a custom one.
// Matching is case-sensitive.
func (t *Table) License(id string) bool {
	if _, ok := t.custom[id]; ok {
		return true
	}
	_, ok := loadSPDX().licenses[id]
	return ok
}

// Exception reports whether id is an SPDX exception identifier.
func (t *Table) Exception(id string) bool {
	_, ok := loadSPDX().exceptions[id]
	return ok
}

func (t *Table) isCustom(id string) bool {
	_, ok := t.custom[strings.TrimSuffix(id, "+")]
	return ok
}
