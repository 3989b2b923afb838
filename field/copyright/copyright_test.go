package copyright_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/metainfo/field/copyright"
)

func TestParse_Valid(t *testing.T) {
	cases := []struct {
		in, year, holder string
	}{
		{
			" Copyright 2014-2018 First Lastname <your@email.com>, Blah <thing@blah.org> ",
			"2014-2018",
			"First Lastname <your@email.com>, Blah <thing@blah.org>",
		},
		{"Copyright 2020 Jane", "2020", "Jane"},
		{"Copyright 2001, 2003-2005 ACME Inc.", "2001, 2003-2005", "ACME Inc."},
		{"\n\tCopyright 1999 The Authors\n", "1999", "The Authors"},
	}
	for _, tc := range cases {
		t.Run(tc.year, func(t *testing.T) {
			c, err := copyright.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.year, c.Year())
			assert.Equal(t, tc.holder, c.Holder())
		})
	}
}

func TestParse_NoYear(t *testing.T) {
	for _, in := range []string{"Copyright Jane Doe", "", "just a comment", "Copyright 99 Jane"} {
		_, err := copyright.Parse(in)
		var de *copyright.DateRangeError
		require.ErrorAs(t, err, &de, in)
	}
}

func TestParse_YearOutsideNotice(t *testing.T) {
	for _, in := range []string{
		"Generated in 2018 by a tool",
		"2014-2018 First Lastname",
		"copyright 2018 Jane",
		"Copyright 2018",
		"(C) Copyright 2018 Jane",
	} {
		_, err := copyright.Parse(in)
		var ie *copyright.InvalidError
		require.ErrorAs(t, err, &ie, in)
	}
}

func TestFromComment_Missing(t *testing.T) {
	_, err := copyright.FromComment("", false)
	require.ErrorIs(t, err, copyright.ErrMissing)

	c, err := copyright.FromComment("Copyright 2020 Jane", true)
	require.NoError(t, err)
	assert.Equal(t, "Copyright 2020 Jane", c.String())
}
