// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif

import (
	"fmt"
	"io"
	"regexp"

	"go4.org/mem"
)

var (
	reSkipped = regexp.MustCompile(`^(?:\s+|//[^\n]*)+`)
	reLabel   = regexp.MustCompile(`^[\w ]+$`)
)

// The number of unconsumed input bytes quoted in an error message.
const errContext = 30

// A SyntaxError reports that the input does not follow the JSON-ish grammar.
// It carries the byte offset at which parsing could not continue.
type SyntaxError struct {
	Position int    // byte offset into the input, 0-based
	Message  string // "expected X, found Y"
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("position %d: %s", e.Position, e.Message)
}

// A Lexer splits an input string into tokens, the smallest indivisible
// spans of the text. A Lexer keeps track of where it is in the input and
// advances through it gradually; the position never moves backwards.
//
// Between tokens the lexer silently skips insignificant text: whitespace
// and line comments ("//" to end of line).
type Lexer struct {
	text string
	pos  int
}

// NewLexer constructs a lexer positioned at the first token of text.
func NewLexer(text string) *Lexer {
	lx := &Lexer{text: text}
	lx.Skip()
	return lx
}

// Position returns the current byte offset into the input.
func (lx *Lexer) Position() int { return lx.pos }

// Skip advances the position past any run of whitespace and comments.
// It is idempotent, and is called automatically after successful matches.
func (lx *Lexer) Skip() {
	if m := reSkipped.FindString(lx.text[lx.pos:]); m != "" {
		lx.pos += len(m)
	}
}

// Pop matches the literal token at the current position. On a match it
// advances past the token (and any following insignificant text) and
// reports true; otherwise it reports false and the position is unchanged.
func (lx *Lexer) Pop(token string) bool {
	if !lx.Peek(token) {
		return false
	}
	lx.pos += len(token)
	lx.Skip()
	return true
}

// PopPattern matches re at the current position. The pattern must be
// anchored with "^". On a match it advances the position and returns the
// match groups, m[0] being the full matched text; otherwise it returns nil
// and the position is unchanged.
func (lx *Lexer) PopPattern(re *regexp.Regexp) []string {
	m := re.FindStringSubmatch(lx.text[lx.pos:])
	if m == nil {
		return nil
	}
	lx.pos += len(m[0])
	lx.Skip()
	return m
}

// Peek reports whether the text at the current position starts with the
// literal token. The position is not advanced.
func (lx *Lexer) Peek(token string) bool {
	return mem.HasPrefix(mem.S(lx.text[lx.pos:]), mem.S(token))
}

// PeekPattern reports whether re matches at the current position.
// The position is not advanced.
func (lx *Lexer) PeekPattern(re *regexp.Regexp) bool {
	return re.MatchString(lx.text[lx.pos:])
}

// AtEnd reports whether the whole input has been consumed.
func (lx *Lexer) AtEnd() bool { return lx.pos >= len(lx.text) }

// FlushRemainder writes whatever is left unconsumed of the input verbatim
// to w, leaving the lexer at the end of input. It is used during error
// recovery, after a streaming builder's output has been flushed.
func (lx *Lexer) FlushRemainder(w io.Writer) error {
	_, err := io.WriteString(w, lx.text[lx.pos:])
	lx.pos = len(lx.text)
	return err
}

// Expected returns a SyntaxError describing the token that was expected
// and not found at the current position. The message quotes the next few
// unconsumed characters of input for diagnostics.
func (lx *Lexer) Expected(what string) *SyntaxError {
	if !reLabel.MatchString(what) {
		what = "`" + what + "`"
	}
	found := lx.text[lx.pos:]
	if len(found) > errContext {
		found = found[:errContext]
	}
	return &SyntaxError{
		Position: lx.pos,
		Message:  fmt.Sprintf("expected %s, found %q", what, found),
	}
}
