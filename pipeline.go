package metainfo

import (
	"context"
	"strings"

	"github.com/reoring/metainfo/field/category"
	"github.com/reoring/metainfo/field/component"
	"github.com/reoring/metainfo/field/copyright"
	"github.com/reoring/metainfo/field/icon"
	"github.com/reoring/metainfo/field/id"
	"github.com/reoring/metainfo/field/license"
	"github.com/reoring/metainfo/field/text"
	"github.com/reoring/metainfo/reader"
)

// Path expressions evaluated by the reader.
const (
	PathCopyright       = "/comment()"
	PathID              = "/component/id/text()"
	PathPkgName         = "/component/pkgname/text()"
	PathName            = "/component/name/text()"
	PathSummary         = "/component/summary/text()"
	PathLicense         = "/component/license/text()"
	PathMetadataLicense = "/component/metadata_license/text()"
	PathCategories      = "/component/categories"
	PathComponent       = "/component"
	PathIcons           = "/component/icon"
)

// step resolves one field into the document under construction.
type step struct {
	name string
	run  func(r *reader.Reader, d *Document) error
}

func bind[T any](f Field[T], set func(*Document, T)) step {
	return step{name: f.Name, run: func(r *reader.Reader, d *Document) error {
		v, err := f.Resolve(r)
		if err != nil {
			return err
		}
		set(d, v)
		return nil
	}}
}

// steps returns the fields in validation order. The order is part of the
// contract: with fail-fast validation the first failing step is reported.
func steps(opt ValidateOpt) []step {
	suffixes := opt.Suffixes
	if suffixes == nil {
		suffixes = id.DefaultSuffixes()
	}
	licenses := opt.Licenses
	if licenses == nil {
		licenses = license.DefaultTable()
	}

	return []step{
		bind(Field[copyright.Copyright]{
			Name: "copyright", Path: PathCopyright, Shape: ShapeComment,
			Construct: func(raw Raw) (copyright.Copyright, error) {
				return copyright.FromComment(raw.Text, raw.Present)
			},
		}, func(d *Document, v copyright.Copyright) { d.copyright = v }),

		bind(Field[id.ID]{
			Name: "id", Path: PathID, Shape: ShapeString,
			Construct: func(raw Raw) (id.ID, error) { return id.Parse(suffixes, strings.TrimSpace(raw.Text)) },
		}, func(d *Document, v id.ID) { d.id = v }),

		bind(Field[text.PkgName]{
			Name: "pkgname", Path: PathPkgName, Shape: ShapeString,
			Construct: func(raw Raw) (text.PkgName, error) { return text.ParsePkgName(raw.Text) },
		}, func(d *Document, v text.PkgName) { d.pkgName = v }),

		bind(Field[text.Name]{
			Name: "name", Path: PathName, Shape: ShapeString,
			Construct: func(raw Raw) (text.Name, error) { return text.ParseName(raw.Text) },
		}, func(d *Document, v text.Name) { d.name = v }),

		bind(Field[text.Summary]{
			Name: "summary", Path: PathSummary, Shape: ShapeString,
			Construct: func(raw Raw) (text.Summary, error) { return text.ParseSummary(raw.Text) },
		}, func(d *Document, v text.Summary) { d.summary = v }),

		bind(Field[*license.License]{
			Name: "license", Path: PathLicense, Shape: ShapeOptional,
			Construct: func(raw Raw) (*license.License, error) {
				return licenses.ParseOptional(raw.Text, raw.Present)
			},
		}, func(d *Document, v *license.License) { d.license = v }),

		bind(Field[license.License]{
			Name: "metadata_license", Path: PathMetadataLicense, Shape: ShapeString,
			Construct: func(raw Raw) (license.License, error) { return licenses.Parse(strings.TrimSpace(raw.Text)) },
		}, func(d *Document, v license.License) { d.metadataLicense = v }),

		bind(Field[*category.Set]{
			Name: "categories", Path: PathCategories, Shape: ShapeElements,
			Construct: func(raw Raw) (*category.Set, error) { return category.FromElements(raw.Elements) },
		}, func(d *Document, v *category.Set) { d.categories = v }),

		bind(Field[component.Type]{
			Name: "type", Path: PathComponent, Shape: ShapeElement,
			Construct: func(raw Raw) (component.Type, error) { return component.FromRoot(raw.Elements) },
		}, func(d *Document, v component.Type) { d.componentType = v }),

		bind(Field[[]icon.Icon]{
			Name: "icon", Path: PathIcons, Shape: ShapeElements,
			Construct: func(raw Raw) ([]icon.Icon, error) { return icon.ParseAll(raw.Elements) },
		}, func(d *Document, v []icon.Icon) { d.icons = v }),
	}
}

// run executes every step against r. In fail-fast mode the first failure is
// returned as *Error; in collect mode every failure is gathered into Issues.
func run(ctx context.Context, r *reader.Reader, opt ValidateOpt) (*Document, error) {
	d := &Document{}
	var iss Issues
	for _, s := range steps(opt) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := s.run(r, d)
		if err == nil {
			continue
		}
		if !opt.Collect {
			return nil, err
		}
		if e, ok := err.(*Error); ok {
			iss = append(iss, e.Issue())
		} else {
			iss = append(iss, Issue{Field: s.name, Code: CodeInvalid, Message: err.Error(), Cause: err})
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return d, nil
}
