package benchmarks_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"github.com/reoring/yamlprops"
)

// --- Fixtures ---

func fixture(groups, items int) string {
	var b strings.Builder
	b.WriteString("# generated\n")
	for g := 0; g < groups; g++ {
		fmt.Fprintf(&b, "group%d:\n  name: \"group %d\"\n  enabled: yes\n  items:\n", g, g)
		for i := 0; i < items; i++ {
			fmt.Fprintf(&b, "    - item%d\n", i)
		}
	}
	return b.String()
}

func schemaFor(groups int) *yamlprops.Schema {
	b := yamlprops.NewSchema()
	for g := 0; g < groups; g++ {
		b.Single(fmt.Sprintf("group%d.name", g)).Required().
			List(fmt.Sprintf("group%d.items", g)).Required()
	}
	return b.MustBuild()
}

// --- Sources ---

func Benchmark_Parse_String(b *testing.B) {
	text := fixture(50, 20)
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := yamlprops.Parse(yamlprops.FromString(text)); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Parse_Reader(b *testing.B) {
	text := fixture(50, 20)
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := yamlprops.Parse(yamlprops.FromReader(strings.NewReader(text))); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Parse_Bytes(b *testing.B) {
	data := []byte(fixture(50, 20))
	for _, size := range []int{16, 512, 4096} {
		b.Run(fmt.Sprintf("buf=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				src := yamlprops.FromBytes(bytes.NewReader(data), unicode.UTF8, size)
				if _, err := yamlprops.Parse(src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// --- Schema ---

func Benchmark_ParseWithSchema(b *testing.B) {
	text := fixture(50, 20)
	s := schemaFor(50)
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := yamlprops.ParseWithSchema(yamlprops.FromString(text), s); err != nil {
			b.Fatal(err)
		}
	}
}
