// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif_test

import (
	"bytes"
	"testing"

	"github.com/saintamh/canif"
	"github.com/saintamh/canif/printer"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{``, ``},
		{`42`, "42\n"},
		{`1 2 3`, "1\n2\n3\n"},
		{`{'a': 1,} [true]`, "{'a': 1}\n[true]\n"},
		{"// leading comment\n42", "42\n"},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		v := printer.NewVerbatim(&buf, printer.Options{})
		if err := canif.Translate(v, test.input, false); err != nil {
			t.Errorf("Input %#q: Translate failed: %v", test.input, err)
			continue
		}
		if got := buf.String(); got != test.want {
			t.Errorf("Input %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

// On a syntax error the output must hold the reformatted prefix followed by
// the raw unconsumed input: nothing is dropped.
func TestTranslateFlushAndEcho(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{
			`[1, &junk]`,
			`[1, &junk]`,
			"position 4: expected expression, found \"&junk]\"",
		},
		{
			// The whitespace before the error position was consumed by the
			// lexer, so the echo resumes directly at the "2".
			`{'a': 1, 'b' 2}`,
			`{'a': 1, 'b'2}`,
			"position 13: expected `:`, found \"2}\"",
		},
		{
			`[1, 2`,
			`[1, 2`,
			"position 5: expected `]`, found \"\"",
		},
		{
			``,
			``,
			"position 0: expected expression, found \"\"",
		},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		v := printer.NewVerbatim(&buf, printer.Options{})
		err := canif.Translate(v, test.input, true)
		if err == nil {
			t.Errorf("Input %#q: Translate unexpectedly succeeded", test.input)
			continue
		}
		if err.Error() != test.wantErr {
			t.Errorf("Input %#q: got error %q, want %q", test.input, err, test.wantErr)
		}
		if got := buf.String(); got != test.want {
			t.Errorf("Input %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestTranslateSingleDocument(t *testing.T) {
	var buf bytes.Buffer
	v := printer.NewVerbatim(&buf, printer.Options{})
	err := canif.Translate(v, `1 2`, true)
	if err == nil {
		t.Fatal("Translate unexpectedly succeeded")
	}
	want := "position 2: expected end of input, found \"2\""
	if err.Error() != want {
		t.Errorf("Got error %q, want %q", err, want)
	}
	// The first document is printed, the extra input echoed raw.
	if got := buf.String(); got != "1\n2" {
		t.Errorf("Got output %#q, want %#q", got, "1\n2")
	}
}

// Discard parses for validation only; it is not a Sink, so no separators or
// echoes are written anywhere.
func TestTranslateDiscard(t *testing.T) {
	if err := canif.Translate(canif.Discard, `{'a': (1,)} [None] f(x=/a/i)`, false); err != nil {
		t.Errorf("Translate failed: %v", err)
	}
	if err := canif.Translate(canif.Discard, `[oops`, false); err == nil {
		t.Error("Translate unexpectedly succeeded")
	}
}
