// Package metainfo validates AppStream metainfo documents.
//
// A document is checked field by field against a fixed schema and yields
// either a *Document with typed accessors or a structured error:
//
//   - Copyright notice from the leading comment (field/copyright)
//   - Reverse-DNS identifier checked against a public suffix list (field/id)
//   - Package name, display name and summary (field/text)
//   - Project and metadata licenses as SPDX expressions (field/license)
//   - Main categories from a closed vocabulary (field/category)
//   - Component type and icons (field/component, field/icon)
//
// Design policy:
//   - Keep only public APIs in the root package; field rules live in field/,
//     XML access in reader/.
//   - Every field is a Field[T]: a path, a raw shape and a Construct step.
//     Missing values (StageExtract) and invalid values (StageField) are
//     reported separately.
//   - Validation is fail-fast by default; ValidateOpt.Collect gathers Issues.
//   - Lookup tables are immutable and safe for concurrent validations.
//
// Typical usage:
//
//	doc, err := metainfo.New(xmlText).Validate(ctx)
//	var e *metainfo.Error
//	if errors.As(err, &e) {
//		fmt.Println(e.Stage, e.Field, e.Code())
//	}
//	fmt.Println(doc.ID(), doc.Name())
package metainfo
