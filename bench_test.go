// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/saintamh/canif"
	"github.com/saintamh/canif/ast"
	"github.com/saintamh/canif/printer"
)

// benchInput builds a JSON-ish document exercising most of the grammar.
func benchInput() string {
	var sb strings.Builder
	sb.WriteString("[\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, `{id: %d, 'name': "item-%d", tags: {%d, %d}, pos: (%d, %d),
         at: Date(%d), pattern: /item-\d+/i, extra: [1,,%d],},
`, i, i, i, i+1, i%7, i%11, 1573081939+i, i)
	}
	sb.WriteString("]")
	return sb.String()
}

func BenchmarkTranslate(b *testing.B) {
	input := benchInput()
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Discard", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := canif.Translate(canif.Discard, input, true); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Verbatim", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			v := printer.NewVerbatim(io.Discard, printer.Options{Indent: 4})
			if err := canif.Translate(v, input, true); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("JSON", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			j := printer.NewJSON(io.Discard, printer.Options{Indent: 4})
			if err := canif.Translate(j, input, true); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

func BenchmarkParse(b *testing.B) {
	input := benchInput()
	for i := 0; i < b.N; i++ {
		if _, err := ast.Parse(input); err != nil {
			b.Fatalf("Unexpected error: %v", err)
		}
	}
}
