// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif_test

import (
	"testing"

	"github.com/saintamh/canif"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{``, ``},
		{`plain`, `plain`},
		{`a\nb`, "a\nb"},
		{`a\tb\rc`, "a\tb\rc"},
		{`\"quoted\"`, `"quoted"`},
		{`\'single\'`, `'single'`},
		{`\\`, `\`},
		{`\/`, `/`},
		{`\b\f`, "\b\f"},
		{`Ф`, "Ф"},
		{`Фо`, "Фо"},
		{`\x7E`, "~"},
		{`\x41\x42`, "AB"},
		{`\ud83d\ude00`, "\U0001f600"},
		{`ok \ud83d\ude01!`, "ok \U0001f601!"},

		// Unrecognized or malformed escapes pass through verbatim.
		{`\q`, `\q`},
		{`\u12`, `\u12`},
		{`\uZZZZ`, `\uZZZZ`},
		{`\x`, `\x`},
		{`trailing\`, `trailing\`},

		// A surrogate half with no partner is not a character.
		{`\ud83d`, "\ufffd"},
		{`\ud83d\u0041`, "\ufffdA"},
	}
	for _, test := range tests {
		if got := canif.Unescape(test.input); got != test.want {
			t.Errorf("Unescape(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{``, `""`},
		{`plain`, `"plain"`},
		{"a\nb", `"a\nb"`},
		{"tab\there", `"tab\there"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"\x01", `"\u0001"`},
		{"Ф", `"Ф"`},
		{" ", `"\u2028"`}, // JS chokes on a raw line separator
	}
	for _, test := range tests {
		if got := canif.Quote(test.input); got != test.want {
			t.Errorf("Quote(%#q): got %s, want %s", test.input, got, test.want)
		}
	}
}

func TestQuoteASCII(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`plain`, `"plain"`},
		{"Ф", `"\u0424"`},
		{"Фи", `"\u0424\u0438"`},
		{"a Ф z", `"a \u0424 z"`},
		{"\U0001f600", `"\ud83d\ude00"`},
	}
	for _, test := range tests {
		if got := canif.QuoteASCII(test.input); got != test.want {
			t.Errorf("QuoteASCII(%#q): got %s, want %s", test.input, got, test.want)
		}
	}
}

func TestQuoteUnescapeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"hello",
		"line\nbreak",
		`a "quoted" word`,
		"Фёдор",
		"\x00\x01\x02",
		"\U0001f600\U0001f601",
	} {
		quoted := canif.Quote(s)
		if got := canif.Unescape(quoted[1 : len(quoted)-1]); got != s {
			t.Errorf("Round trip of %#q: got %#q via %s", s, got, quoted)
		}
	}
}

func TestQuoteASCIIUnescapeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"Фёдор",
		"\U0001f600\U0001f601",
		"a \U0001f600 z",
	} {
		quoted := canif.QuoteASCII(s)
		if got := canif.Unescape(quoted[1 : len(quoted)-1]); got != s {
			t.Errorf("Round trip of %#q: got %#q via %s", s, got, quoted)
		}
	}
}
