package metasonic_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/112RG/metasonic"
)

// BenchmarkParse measures decoding a typical metadata region from memory.
func BenchmarkParse(b *testing.B) {
	data := referenceStream()
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := metasonic.Parse(ctx, bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkOpen measures opening and parsing a single file.
func BenchmarkOpen(b *testing.B) {
	path := writeTestFile(b, referenceStream())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := metasonic.Open(path); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseMany measures concurrent parsing of multiple files.
func BenchmarkParseMany(b *testing.B) {
	path := writeTestFile(b, referenceStream())
	paths := []string{path, path, path, path, path, path, path, path}
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := metasonic.ParseMany(ctx, paths); err != nil {
			b.Fatal(err)
		}
	}
}
