// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package printer

import (
	"io"

	"github.com/saintamh/canif"
)

// A Verbatim builder reprints the input with every token spelled exactly as
// it appeared in the source; only whitespace and separators are normalized.
// Quoting style, numeric notation, unquoted keys, tuples, regexes and other
// non-JSON constructs all pass through untouched.
type Verbatim struct {
	printer
}

var _ canif.Builder = (*Verbatim)(nil)

// NewVerbatim constructs a verbatim printer writing to w.
func NewVerbatim(w io.Writer, opts Options) *Verbatim {
	return &Verbatim{newPrinter(w, opts)}
}

func (v *Verbatim) Float(raw string, value float64)  { v.print(raw) }
func (v *Verbatim) Int(raw string, value int64)      { v.print(raw) }
func (v *Verbatim) Bool(raw string, value bool)      { v.print(raw) }
func (v *Verbatim) Null(raw string)                  { v.print(raw) }
func (v *Verbatim) NamedConstant(raw, value string)  { v.print(raw) }
func (v *Verbatim) String(raw, value string)         { v.print(raw) }
func (v *Verbatim) Regex(raw, pattern, flags string) { v.print(raw) }
func (v *Verbatim) Repr(raw string)                  { v.print(raw) }
func (v *Verbatim) Identifier(name string)           { v.print(name) }

func (v *Verbatim) OpenDocument()  {}
func (v *Verbatim) CloseDocument() {}

func (v *Verbatim) OpenArray(kind canif.ArrayKind) {
	if kind == canif.Tuple {
		v.openScope(scopeTuple, "(")
	} else {
		v.openScope(scopeList, "[")
	}
}

func (v *Verbatim) ArrayElement() { v.element() }

// ArrayEmptySlot renders a hole: the pending separator is flushed so the
// hole occupies a visible slot of its own.
func (v *Verbatim) ArrayEmptySlot() {
	v.print("")
	v.top().lastHole = true
}

func (v *Verbatim) CloseArray() {
	f := v.popScope()
	// A one-element tuple needs its comma to stay a tuple, and an array
	// ending in a hole needs one so the hole stays visible.
	force := f.lastHole || (f.kind == scopeTuple && f.count == 1)
	v.endSequence(f.count, force)
	if f.kind == scopeTuple {
		v.print(")")
	} else {
		v.print("]")
	}
}

func (v *Verbatim) OpenMapping()  { v.openScope(scopeMapping, "{") }
func (v *Verbatim) MappingKey()   { v.print(": ") }
func (v *Verbatim) MappingValue() { v.element() }

func (v *Verbatim) CloseMapping() {
	f := v.popScope()
	v.endSequence(f.count, false)
	v.print("}")
}

func (v *Verbatim) OpenSet()    { v.openScope(scopeSet, "{") }
func (v *Verbatim) SetElement() { v.element() }

func (v *Verbatim) CloseSet() {
	f := v.popScope()
	v.endSequence(f.count, false)
	v.print("}")
}

func (v *Verbatim) OpenCall(name string) {
	v.print(name)
	v.openScope(scopeCall, "(")
}

func (v *Verbatim) PositionalArgument()     { v.element() }
func (v *Verbatim) EndPositionalArguments() {}
func (v *Verbatim) StartKeywordArguments()  {}
func (v *Verbatim) KeywordArgumentKey()     { v.print("=") }
func (v *Verbatim) KeywordArgumentValue()   { v.element() }
func (v *Verbatim) EndKeywordArguments()    {}

func (v *Verbatim) CloseCall() {
	f := v.popScope()
	v.endSequence(f.count, f.lastHole)
	v.print(")")
}
