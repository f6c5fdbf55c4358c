// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

// Package escape handles backslash escape sequences in JSON-ish strings:
// decoding the extended escape table accepted on input, and encoding string
// contents for emission as strict JSON.
package escape

import (
	"unicode/utf16"
	"unicode/utf8"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Unescape decodes the backslash escapes in src, the contents of a quoted
// string or regex literal with the delimiters already removed. Recognized
// escapes are \\ \" \/ \' \b \f \n \r \t \uXXXX and \xXX; any other
// backslash sequence is not an escape and is preserved verbatim, as is a
// malformed \u or \x with too few hex digits. A surrogate pair written as
// two \u escapes decodes to the single rune it encodes.
func Unescape(src string) string {
	i := 0
	for i < len(src) && src[i] != '\\' {
		i++
	}
	if i == len(src) {
		return src
	}

	dec := make([]byte, 0, len(src))
	dec = append(dec, src[:i]...)
	for i < len(src) {
		c := src[i]
		if c != '\\' || i+1 == len(src) {
			dec = append(dec, c)
			i++
			continue
		}
		switch e := src[i+1]; e {
		case '\\', '"', '/', '\'':
			dec = append(dec, e)
			i += 2
		case 'b':
			dec = append(dec, '\b')
			i += 2
		case 'f':
			dec = append(dec, '\f')
			i += 2
		case 'n':
			dec = append(dec, '\n')
			i += 2
		case 'r':
			dec = append(dec, '\r')
			i += 2
		case 't':
			dec = append(dec, '\t')
			i += 2
		case 'u':
			if v, ok := parseHex(src[i+2:], 4); ok {
				r := rune(v)
				i += 6
				// A high surrogate followed by an escaped low surrogate
				// spells a single rune beyond the BMP.
				if utf16.IsSurrogate(r) && i+1 < len(src) && src[i] == '\\' && src[i+1] == 'u' {
					if w, ok := parseHex(src[i+2:], 4); ok {
						if c := utf16.DecodeRune(r, rune(w)); c != utf8.RuneError {
							r = c
							i += 6
						}
					}
				}
				dec = utf8.AppendRune(dec, r)
			} else {
				dec = append(dec, '\\', 'u')
				i += 2
			}
		case 'x':
			if v, ok := parseHex(src[i+2:], 2); ok {
				dec = utf8.AppendRune(dec, rune(v))
				i += 4
			} else {
				dec = append(dec, '\\', 'x')
				i += 2
			}
		default:
			// Not a recognized escape; keep the backslash.
			dec = append(dec, '\\', e)
			i += 2
		}
	}
	return string(dec)
}

func parseHex(s string, n int) (int64, bool) {
	if len(s) < n {
		return 0, false
	}
	var v int64
	for i := 0; i < n; i++ {
		b := s[i]
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}

// Quote encodes src for inclusion in a strict JSON string. The surrounding
// quotation marks are not added. If asciiOnly is set, every non-ASCII rune
// is written as a \uXXXX sequence (using surrogate pairs beyond the BMP).
func Quote(src string, asciiOnly bool) []byte {
	buf := make([]byte, 0, len(src))
	for _, r := range src {
		if r < utf8.RuneSelf {
			switch {
			case r < ' ':
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = appendHex4(buf, uint16(r))
				}
			case r == '\\' || r == '"':
				buf = append(buf, '\\', byte(r))
			default:
				buf = append(buf, byte(r))
			}
			continue
		}
		if asciiOnly {
			if r > 0xFFFF {
				hi, lo := utf16.EncodeRune(r)
				buf = appendHex4(buf, uint16(hi))
				buf = appendHex4(buf, uint16(lo))
			} else {
				buf = appendHex4(buf, uint16(r))
			}
			continue
		}
		switch r {
		case '\u2028', '\u2029': // line and paragraph separators
			buf = appendHex4(buf, uint16(r))
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return buf
}

func appendHex4(buf []byte, v uint16) []byte {
	return append(buf, '\\', 'u',
		hexDigit[v>>12], hexDigit[(v>>8)&15], hexDigit[(v>>4)&15], hexDigit[v&15])
}
