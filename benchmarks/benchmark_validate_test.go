package metainfo_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	metainfo "github.com/reoring/metainfo"
	"github.com/reoring/metainfo/field/license"
)

// ---- Helpers ----

const smallDoc = `<?xml version="1.0" encoding="utf-8"?>
<!-- Copyright 2014-2018 Jane Doe <jane@example.org> -->
<component type="desktop-application">
  <id>org.example.app</id>
  <name>App</name>
  <summary>Does something</summary>
  <pkgname>app</pkgname>
  <metadata_license>MIT OR Apache-2.0</metadata_license>
  <categories><category>Utility</category></categories>
  <icon type="stock">app</icon>
</component>`

// docWithIcons returns a valid document declaring n remote icons.
func docWithIcons(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  <icon type=\"remote\" width=\"%d\" height=\"%d\">https://example.org/%d.png</icon>\n", 16+i, 16+i, i)
	}
	return strings.Replace(smallDoc, "  <icon type=\"stock\">app</icon>\n", b.String(), 1)
}

// ---- Benchmarks ----

func BenchmarkValidate_Small(b *testing.B) {
	ctx := context.Background()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := metainfo.Validate(ctx, smallDoc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate_ReusedReader(b *testing.B) {
	ctx := context.Background()
	m := metainfo.New(smallDoc)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := m.Validate(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate_Icons(b *testing.B) {
	ctx := context.Background()
	for _, n := range []int{1, 16, 256} {
		doc := docWithIcons(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := metainfo.Validate(ctx, doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkValidate_Collect(b *testing.B) {
	ctx := context.Background()
	doc := strings.Replace(smallDoc, "org.example.app", "org.example", 1)
	opt := metainfo.ValidateOpt{Collect: true}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := metainfo.Validate(ctx, doc, opt); err == nil {
			b.Fatal("expected issues")
		}
	}
}

func BenchmarkLicense_Parse(b *testing.B) {
	t := license.DefaultTable()
	exprs := []string{"MIT", "GPL-2.0-only WITH Classpath-exception-2.0", "(MIT OR Apache-2.0) AND BSD-3-Clause"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := t.Parse(exprs[i%len(exprs)]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate_Parallel(b *testing.B) {
	ctx := context.Background()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := metainfo.Validate(ctx, smallDoc); err != nil {
				b.Fatal(err)
			}
		}
	})
}
