// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

// Package printer provides streaming canif.Builder implementations that
// reformat the input as it is parsed, without buffering whole documents:
// [Verbatim] preserves the original token spellings, [JSON] normalizes the
// output to strict JSON.
//
// Separators are speculative: a comma (plus indentation) is held back in a
// single-slot spacer until the next event shows whether more content
// follows, so that trailing-comma decisions never require un-writing bytes.
package printer

import (
	"io"
	"strings"
)

// Options control the layout of printed output.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero or less
	// means fully flattened, single-line output.
	Indent int

	// TrailingCommas prints a comma after the last element of every
	// indented sequence. It has no effect on flattened output, and is
	// ignored by the JSON printer.
	TrailingCommas bool

	// EnsureASCII escapes every non-ASCII rune in JSON strings as a
	// \uXXXX sequence. Only the JSON printer consults it.
	EnsureASCII bool
}

type scopeKind byte

const (
	scopeList scopeKind = iota
	scopeTuple
	scopeMapping
	scopeSet
	scopeCall
)

// A scope tracks the state of one open bracketed sequence in the output.
type scope struct {
	kind       scopeKind
	count      int  // elements completed so far
	lastHole   bool // the most recent slot was an empty slot
	awaitValue bool // mappings: a key has been printed, its value hasn't
}

// printer is the output engine shared by the concrete builders. It owns the
// sink, the scope stack, and the pending spacer. Write errors are sticky;
// the first one is reported by Flush.
type printer struct {
	w      io.Writer
	opts   Options
	stack  []scope
	spacer string
	err    error
}

func newPrinter(w io.Writer, opts Options) printer {
	if opts.Indent < 0 {
		opts.Indent = 0
	}
	return printer{w: w, opts: opts}
}

func (p *printer) write(s string) {
	if p.err != nil || s == "" {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// print flushes the pending spacer and writes text. Any non-empty text
// fills the current slot, clearing the top scope's hole marker.
func (p *printer) print(text string) {
	p.write(p.spacer)
	p.spacer = ""
	p.write(text)
	if text != "" && len(p.stack) > 0 {
		p.top().lastHole = false
	}
}

func (p *printer) top() *scope { return &p.stack[len(p.stack)-1] }

func (p *printer) popScope() scope {
	f := *p.top()
	p.stack = p.stack[:len(p.stack)-1]
	return f
}

func (p *printer) indentString() string {
	if p.opts.Indent == 0 {
		return ""
	}
	return "\n" + strings.Repeat(" ", p.opts.Indent*len(p.stack))
}

// openScope prints the opening bracket, pushes a scope, and sets the spacer
// so the first element starts on its own indented line.
func (p *printer) openScope(kind scopeKind, bracket string) {
	p.print(bracket)
	p.stack = append(p.stack, scope{kind: kind})
	p.spacer = p.indentString()
}

// element marks the end of one element: the separator before the next one
// is pended, to be overwritten if the scope closes instead.
func (p *printer) element() {
	p.top().count++
	p.commaSeparator()
}

func (p *printer) commaSeparator() {
	if p.opts.Indent == 0 {
		p.spacer = ", "
	} else {
		p.spacer = "," + p.indentString()
	}
}

// endSequence replaces whatever separator is pending with the text that
// belongs between the last element and the closing bracket. It must be
// called after the scope has been popped, so that indentation is computed
// at the parent's depth. forceComma keeps a trailing comma even where one
// would normally be dropped, so that "(1,)" and a trailing array hole
// survive reformatting.
func (p *printer) endSequence(length int, forceComma bool) {
	switch {
	case p.opts.Indent == 0:
		if forceComma {
			p.spacer = ","
		} else {
			p.spacer = ""
		}
	case length == 0:
		p.spacer = ""
	case forceComma || p.opts.TrailingCommas:
		p.spacer = "," + p.indentString()
	default:
		p.spacer = p.indentString()
	}
}

// Writer returns the underlying sink, for the Translate driver's document
// separators and error-recovery echo.
func (p *printer) Writer() io.Writer { return p.w }

// Flush writes any pending spacer text and reports the first write error
// encountered, if any.
func (p *printer) Flush() error {
	p.print("")
	return p.err
}
