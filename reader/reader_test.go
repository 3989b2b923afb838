package reader_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/metainfo/reader"
)

const doc = `
<?xml version="1.0" encoding="utf-8" ?>
<!-- Copyright 2018 Jane Doe -->
<component type="desktop-application">
  <id>org.foo.bar</id>
  <categories>
    <category>Audio</category>
    <category>Video</category>
  </categories>
  <icon type="remote" width="64">https://example.org/icon.png</icon>
</component>
`

func TestParse_Malformed(t *testing.T) {
	_, err := reader.Parse("<component>\n<id>x</name>\n</component>")
	require.Error(t, err)

	var se *reader.SyntaxError
	require.True(t, errors.As(err, &se), "got %T", err)
	assert.Equal(t, 2, se.Line)
}

func TestParse_LeadingBlankLinesKeepLineNumbers(t *testing.T) {
	for name, text := range map[string]string{
		"no declaration": "\n\n  <component>\n<id>x</name>\n</component>",
		"declaration":    "\n\n<?xml version=\"1.0\"?><component>\n<id>x</name>\n</component>",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := reader.Parse(text)
			var se *reader.SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 4, se.Line)
		})
	}
}

func TestParse_LeadingCommentWithoutDeclaration(t *testing.T) {
	r, err := reader.Parse("<!-- Copyright 2018 Jane Doe -->\n<component><id>org.foo.bar</id></component>")
	require.NoError(t, err)

	c, ok, err := r.Comment("/comment()")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, " Copyright 2018 Jane Doe ", c)

	id, err := r.String("/component/id/text()")
	require.NoError(t, err)
	assert.Equal(t, "org.foo.bar", id)
}

func TestParse_NoRoot(t *testing.T) {
	_, err := reader.Parse("   ")
	var se *reader.SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestReader_Shapes(t *testing.T) {
	r, err := reader.Parse(doc)
	require.NoError(t, err)

	id, err := r.String("/component/id/text()")
	require.NoError(t, err)
	assert.Equal(t, "org.foo.bar", id)

	_, err = r.String("/component/name/text()")
	require.ErrorIs(t, err, reader.ErrNotFound)

	_, ok, err := r.Optional("/component/license/text()")
	require.NoError(t, err)
	assert.False(t, ok)

	cats, err := r.Strings("/component/categories/category/text()")
	require.NoError(t, err)
	assert.Equal(t, []string{"Audio", "Video"}, cats)

	c, ok, err := r.Comment("/comment()")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, " Copyright 2018 Jane Doe ", c)

	icons, err := r.Elements("/component/icon")
	require.NoError(t, err)
	require.Len(t, icons, 1)
	typ, ok := icons[0].Attr("type")
	assert.True(t, ok)
	assert.Equal(t, "remote", typ)
	assert.Equal(t, "64", icons[0].Attrs["width"])
	assert.Equal(t, "https://example.org/icon.png", icons[0].Text)

	groups, err := r.Elements("/component/categories")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Children, 2)
}

func TestReader_BadPath(t *testing.T) {
	r, err := reader.Parse(doc)
	require.NoError(t, err)

	_, err = r.Strings("/component/[")
	var qe *reader.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "/component/[", qe.Path)
}
