package metainfo

import (
	"slices"

	"github.com/reoring/metainfo/field/category"
	"github.com/reoring/metainfo/field/component"
	"github.com/reoring/metainfo/field/copyright"
	"github.com/reoring/metainfo/field/icon"
	"github.com/reoring/metainfo/field/id"
	"github.com/reoring/metainfo/field/license"
	"github.com/reoring/metainfo/field/text"
)

// Document is a fully validated metainfo file. It is built once by Validate
// and never modified.
type Document struct {
	copyright       copyright.Copyright
	id              id.ID
	pkgName         text.PkgName
	name            text.Name
	summary         text.Summary
	license         *license.License
	metadataLicense license.License
	categories      *category.Set
	componentType   component.Type
	icons           []icon.Icon
}

// Copyright returns the notice from the document's leading comment.
func (d *Document) Copyright() copyright.Copyright { return d.copyright }

// ID returns the reverse-DNS component identifier.
func (d *Document) ID() id.ID { return d.id }

// PkgName returns the distribution package name.
func (d *Document) PkgName() text.PkgName { return d.pkgName }

// Name returns the human-readable component name.
func (d *Document) Name() text.Name { return d.name }

// Summary returns the one-line component description.
func (d *Document) Summary() text.Summary { return d.summary }

// License returns the project license, if the document declares one.
func (d *Document) License() (license.License, bool) {
	if d.license == nil {
		return license.License{}, false
	}
	return *d.license, true
}

// MetadataLicense returns the license of the metainfo file itself.
func (d *Document) MetadataLicense() license.License { return d.metadataLicense }

// Categories returns the declared categories. ok is false when the document
// has no <categories> element; an empty element yields an empty set and true.
func (d *Document) Categories() (set category.Set, ok bool) {
	if d.categories == nil {
		return category.Set{}, false
	}
	return *d.categories, true
}

// ComponentType returns the root element's type attribute.
func (d *Document) ComponentType() component.Type { return d.componentType }

// Icons returns the declared icons in document order.
func (d *Document) Icons() []icon.Icon { return slices.Clone(d.icons) }
