// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif

import "github.com/saintamh/canif/internal/escape"

// Quote encodes src as a strict JSON string value, adding double quotation
// marks and escaping as needed.
func Quote(src string) string {
	return `"` + string(escape.Quote(src, false)) + `"`
}

// QuoteASCII is like Quote but escapes every non-ASCII rune as a \uXXXX
// sequence, so the result is pure ASCII.
func QuoteASCII(src string) string {
	return `"` + string(escape.Quote(src, true)) + `"`
}

// Unescape decodes the backslash escapes in the contents of a quoted string
// or regex literal, with the delimiters already removed. Unrecognized or
// malformed escape sequences are preserved verbatim.
func Unescape(src string) string { return escape.Unescape(src) }
