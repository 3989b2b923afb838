package metainfo_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metainfo "github.com/reoring/metainfo"
	"github.com/reoring/metainfo/field/category"
	"github.com/reoring/metainfo/field/component"
	"github.com/reoring/metainfo/field/copyright"
	"github.com/reoring/metainfo/field/icon"
	"github.com/reoring/metainfo/field/id"
	"github.com/reoring/metainfo/field/license"
	"github.com/reoring/metainfo/field/text"
)

const simple = `
    <?xml version="1.0" encoding="utf-8" ?>
    <!-- Copyright 2014-2018 First Lastname <your@email.com>, Blah <thing@blah.org> -->
    <component type="desktop-application">
        <name>Package</name>
        <id>org.foo.bar</id>
        <summary>Does something amazing</summary>
        <pkgname>blah</pkgname>
        <metadata_license>MIT OR Apache-2.0</metadata_license>
        <icon type="local">/usr/share/icon.png</icon>
    </component>
`

func TestValidate_Simple(t *testing.T) {
	doc, err := metainfo.New(simple).Validate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2014-2018", doc.Copyright().Year())
	assert.Equal(t, "First Lastname <your@email.com>, Blah <thing@blah.org>", doc.Copyright().Holder())
	assert.Equal(t, "org.foo.bar", doc.ID().String())
	assert.Equal(t, text.Name("Package"), doc.Name())
	assert.Equal(t, text.Summary("Does something amazing"), doc.Summary())
	assert.Equal(t, text.PkgName("blah"), doc.PkgName())
	assert.Equal(t, "MIT OR Apache-2.0", doc.MetadataLicense().String())
	assert.Equal(t, component.DesktopApp, doc.ComponentType())

	_, ok := doc.License()
	assert.False(t, ok)
	_, ok = doc.Categories()
	assert.False(t, ok)

	icons := doc.Icons()
	require.Len(t, icons, 1)
	assert.Equal(t, icon.Local, icons[0].Kind)
	assert.Equal(t, "/usr/share/icon.png", icons[0].Path)
}

func TestValidate_OptionalFields(t *testing.T) {
	src := strings.Replace(simple, "<pkgname>", `<license>GPL-3.0-or-later</license>
        <categories><category>Audio</category><category>Audio</category></categories>
        <pkgname>`, 1)
	doc, err := metainfo.Validate(context.Background(), src)
	require.NoError(t, err)

	l, ok := doc.License()
	require.True(t, ok)
	assert.Equal(t, "GPL-3.0-or-later", l.String())

	cats, ok := doc.Categories()
	require.True(t, ok)
	assert.Equal(t, []category.Category{category.Audio, category.Audio}, cats.Items())
}

func TestValidate_EmptyCategoriesDeclared(t *testing.T) {
	src := strings.Replace(simple, "<pkgname>", "<categories/>\n<pkgname>", 1)
	doc, err := metainfo.Validate(context.Background(), src)
	require.NoError(t, err)

	cats, ok := doc.Categories()
	assert.True(t, ok)
	assert.Zero(t, cats.Len())
}

func TestValidate_EmptyLicenseIsAbsent(t *testing.T) {
	src := strings.Replace(simple, "<pkgname>", "<license></license>\n<pkgname>", 1)
	doc, err := metainfo.Validate(context.Background(), src)
	require.NoError(t, err)
	_, ok := doc.License()
	assert.False(t, ok)
}

func TestValidate_MissingCopyright(t *testing.T) {
	src := strings.Replace(simple,
		"<!-- Copyright 2014-2018 First Lastname <your@email.com>, Blah <thing@blah.org> -->", "", 1)
	_, err := metainfo.Validate(context.Background(), src)
	require.Error(t, err)

	var e *metainfo.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, metainfo.StageField, e.Stage)
	assert.Equal(t, "copyright", e.Field)
	assert.ErrorIs(t, err, copyright.ErrMissing)
	assert.Equal(t, "missing_copyright", e.Code())
}

func TestValidate_MalformedXML(t *testing.T) {
	_, err := metainfo.Validate(context.Background(), "<!-- Copyright 2018 A -->\n<component>\n<id>org.foo.bar</name>\n</component>")
	var e *metainfo.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, metainfo.StageDocument, e.Stage)
	assert.Equal(t, metainfo.CodeMalformedXML, e.Code())
	assert.Equal(t, 3, e.Line)
	assert.Empty(t, e.Field)
}

func TestValidate_MissingElementIsExtractionError(t *testing.T) {
	src := strings.Replace(simple, "<name>Package</name>", "", 1)
	_, err := metainfo.Validate(context.Background(), src)
	var e *metainfo.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, metainfo.StageExtract, e.Stage)
	assert.Equal(t, "name", e.Field)
	assert.Equal(t, metainfo.PathName, e.Path)
	assert.Equal(t, metainfo.CodeRequired, e.Code())
}

func TestValidate_FieldErrors(t *testing.T) {
	cases := []struct {
		name  string
		from  string
		to    string
		field string
		check func(t *testing.T, err error)
	}{
		{"bad id char", "org.foo.bar", "org.f$o.bar", "id", func(t *testing.T, err error) {
			var ce *id.InvalidCharError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, id.SegmentVendor, ce.Segment)
			assert.Equal(t, '$', ce.Char)
		}},
		{"unknown tld", "org.foo.bar", "nosuchtld.foo.bar", "id", func(t *testing.T, err error) {
			var ue *id.UnknownTLDError
			require.ErrorAs(t, err, &ue)
		}},
		{"unknown license", "MIT OR Apache-2.0", "not-a-license", "metadata_license", func(t *testing.T, err error) {
			var ue *license.UnknownIDError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, "not-a-license", ue.ID)
		}},
		{"unknown category", "<pkgname>", "<categories><category>audio</category></categories><pkgname>", "categories", func(t *testing.T, err error) {
			var ue *category.UnknownError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, "audio", ue.Value)
		}},
		{"component type", `type="desktop-application"`, `type="widget"`, "type", func(t *testing.T, err error) {
			var te *component.TypeError
			require.ErrorAs(t, err, &te)
		}},
		{"icon type", `type="local"`, `type="svg"`, "icon", func(t *testing.T, err error) {
			var te *icon.TypeError
			require.ErrorAs(t, err, &te)
		}},
		{"not a copyright line", "<!-- Copyright 2014-2018", "<!-- Built 2014-2018", "copyright", func(t *testing.T, err error) {
			var ie *copyright.InvalidError
			require.ErrorAs(t, err, &ie)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := strings.Replace(simple, tc.from, tc.to, 1)
			_, err := metainfo.Validate(context.Background(), src)
			var e *metainfo.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, metainfo.StageField, e.Stage)
			assert.Equal(t, tc.field, e.Field)
			tc.check(t, err)
		})
	}
}

func TestValidate_FailFastReportsFirstInOrder(t *testing.T) {
	src := strings.Replace(simple, "MIT OR Apache-2.0", "nope", 1)
	src = strings.Replace(src, "org.foo.bar", "org.foo", 1)

	_, err := metainfo.Validate(context.Background(), src)
	var e *metainfo.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "id", e.Field)

	_, ok := metainfo.AsIssues(err)
	assert.True(t, ok)
}

func TestValidate_Collect(t *testing.T) {
	src := strings.Replace(simple, "MIT OR Apache-2.0", "nope", 1)
	src = strings.Replace(src, "org.foo.bar", "org.foo", 1)
	src = strings.Replace(src, "<summary>Does something amazing</summary>", "", 1)

	_, err := metainfo.Validate(context.Background(), src, metainfo.ValidateOpt{Collect: true})
	iss, ok := metainfo.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 3)
	assert.Equal(t, "id", iss[0].Field)
	assert.Equal(t, "invalid_id", iss[0].Code)
	assert.Equal(t, "summary", iss[1].Field)
	assert.Equal(t, metainfo.CodeRequired, iss[1].Code)
	assert.Equal(t, "metadata_license", iss[2].Field)
	assert.Equal(t, "unknown_license", iss[2].Code)
	assert.Contains(t, err.Error(), "invalid_id at id")

	var e *metainfo.Error
	assert.False(t, errors.As(err, &e), "collect mode returns Issues")

	var ue *license.UnknownIDError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "nope", ue.ID)
}

func TestValidate_CollectWrongRootElement(t *testing.T) {
	src := strings.Replace(simple, `<component type="desktop-application">`, `<application type="desktop-application">`, 1)
	src = strings.Replace(src, "</component>", "</application>", 1)

	_, err := metainfo.Validate(context.Background(), src, metainfo.ValidateOpt{Collect: true})
	iss, ok := metainfo.AsIssues(err)
	require.True(t, ok)

	var typeIssue *metainfo.Issue
	for i := range iss {
		if iss[i].Field == "type" {
			typeIssue = &iss[i]
		}
	}
	require.NotNil(t, typeIssue)
	assert.Equal(t, metainfo.CodeRequired, typeIssue.Code)
	assert.Equal(t, metainfo.PathComponent, typeIssue.Path)

	var te *component.TypeError
	assert.False(t, errors.As(err, &te))
}

func TestValidate_NoDeclarationLeadingComment(t *testing.T) {
	src := "<!-- Copyright 2020 Jane Doe -->\n" +
		`<component type="addon">
  <id>org.foo.bar</id>
  <name>Package</name>
  <summary>Does something</summary>
  <pkgname>blah</pkgname>
  <metadata_license>Beerware</metadata_license>
</component>`
	doc, err := metainfo.Validate(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "2020", doc.Copyright().Year())
	assert.Equal(t, "Jane Doe", doc.Copyright().Holder())
	assert.Equal(t, "Beerware", doc.MetadataLicense().String())
	assert.Equal(t, component.Addon, doc.ComponentType())
}

func TestValidate_MalformedAfterBlankLines(t *testing.T) {
	_, err := metainfo.Validate(context.Background(), "\n\n\n<component>\n<id>org.foo.bar</name>\n</component>")
	var e *metainfo.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 5, e.Line)
}

func TestValidate_CollectMalformed(t *testing.T) {
	_, err := metainfo.Validate(context.Background(), "<a>", metainfo.ValidateOpt{Collect: true})
	iss, ok := metainfo.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, metainfo.CodeMalformedXML, iss[0].Code)
}

func TestValidate_InjectedTables(t *testing.T) {
	suffixes, err := id.ParseSuffixList("test\n")
	require.NoError(t, err)
	src := strings.Replace(simple, "org.foo.bar", "test.foo.bar", 1)
	src = strings.Replace(src, "MIT OR Apache-2.0", "Proprietary", 1)

	opt := metainfo.ValidateOpt{
		Suffixes: suffixes,
		Licenses: license.DefaultTable().WithCustom("Proprietary"),
	}
	doc, err := metainfo.Validate(context.Background(), src, opt)
	require.NoError(t, err)
	assert.Equal(t, "test", doc.ID().TLD())

	_, err = metainfo.Validate(context.Background(), simple, opt)
	var ue *id.UnknownTLDError
	require.ErrorAs(t, err, &ue)
}

func TestMetainfo_ReaderBuiltOnce(t *testing.T) {
	m := metainfo.New(simple)
	d1, err := m.Validate(context.Background())
	require.NoError(t, err)
	d2, err := m.Validate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.NotSame(t, d1, d2)

	bad := metainfo.New("<a>")
	_, err1 := bad.Validate(context.Background())
	_, err2 := bad.Validate(context.Background())
	assert.Same(t, err1, err2)
}

func TestValidate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := metainfo.Validate(ctx, simple)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := metainfo.Validate(context.Background(), simple)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
