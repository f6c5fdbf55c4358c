// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif

// A builderOp names one method of the Builder interface, so that calls can
// be buffered and replayed.
type builderOp byte

const (
	opFloat builderOp = iota
	opInt
	opBool
	opNull
	opNamedConstant
	opString
	opRegex
	opRepr
	opIdentifier
	opOpenDocument
	opCloseDocument
	opOpenArray
	opArrayElement
	opArrayEmptySlot
	opCloseArray
	opOpenMapping
	opMappingKey
	opMappingValue
	opCloseMapping
	opOpenSet
	opSetElement
	opCloseSet
	opOpenCall
	opPositionalArgument
	opEndPositionalArguments
	opStartKeywordArguments
	opKeywordArgumentKey
	opKeywordArgumentValue
	opEndKeywordArguments
	opCloseCall
	opFlush
)

// A recordedCall is one buffered Builder call with its arguments. Only the
// fields relevant to the op are set.
type recordedCall struct {
	op    builderOp
	raw   string
	str   string // decoded value, regex pattern, or call/identifier name
	flags string
	fval  float64
	ival  int64
	bval  bool
	kind  ArrayKind
}

// apply forwards the recorded call to b.
func (c recordedCall) apply(b Builder) {
	switch c.op {
	case opFloat:
		b.Float(c.raw, c.fval)
	case opInt:
		b.Int(c.raw, c.ival)
	case opBool:
		b.Bool(c.raw, c.bval)
	case opNull:
		b.Null(c.raw)
	case opNamedConstant:
		b.NamedConstant(c.raw, c.str)
	case opString:
		b.String(c.raw, c.str)
	case opRegex:
		b.Regex(c.raw, c.str, c.flags)
	case opRepr:
		b.Repr(c.raw)
	case opIdentifier:
		b.Identifier(c.str)
	case opOpenDocument:
		b.OpenDocument()
	case opCloseDocument:
		b.CloseDocument()
	case opOpenArray:
		b.OpenArray(c.kind)
	case opArrayElement:
		b.ArrayElement()
	case opArrayEmptySlot:
		b.ArrayEmptySlot()
	case opCloseArray:
		b.CloseArray()
	case opOpenMapping:
		b.OpenMapping()
	case opMappingKey:
		b.MappingKey()
	case opMappingValue:
		b.MappingValue()
	case opCloseMapping:
		b.CloseMapping()
	case opOpenSet:
		b.OpenSet()
	case opSetElement:
		b.SetElement()
	case opCloseSet:
		b.CloseSet()
	case opOpenCall:
		b.OpenCall(c.str)
	case opPositionalArgument:
		b.PositionalArgument()
	case opEndPositionalArguments:
		b.EndPositionalArguments()
	case opStartKeywordArguments:
		b.StartKeywordArguments()
	case opKeywordArgumentKey:
		b.KeywordArgumentKey()
	case opKeywordArgumentValue:
		b.KeywordArgumentValue()
	case opEndKeywordArguments:
		b.EndKeywordArguments()
	case opCloseCall:
		b.CloseCall()
	case opFlush:
		b.Flush()
	}
}

// A recorder buffers Builder calls in memory, for the cases where the
// parser must read ahead a little before it knows which construct it is in.
// Replaying the buffer against the real builder produces the same calls as
// if no recording had occurred. Recorders may nest: the builder a recording
// is replayed into can itself be another recorder.
type recorder struct {
	calls []recordedCall
}

// Replay forwards every buffered call to b, in order.
func (r *recorder) Replay(b Builder) {
	for _, c := range r.calls {
		c.apply(b)
	}
}

// soleBareString reports whether the recording consists of exactly one
// String call whose raw text equals its decoded value, i.e. a bare unquoted
// word parsed tentatively as a mapping key. If so it returns the word.
func (r *recorder) soleBareString() (string, bool) {
	if len(r.calls) == 1 && r.calls[0].op == opString && r.calls[0].raw == r.calls[0].str {
		return r.calls[0].raw, true
	}
	return "", false
}

func (r *recorder) record(c recordedCall) { r.calls = append(r.calls, c) }

func (r *recorder) Float(raw string, value float64) {
	r.record(recordedCall{op: opFloat, raw: raw, fval: value})
}

func (r *recorder) Int(raw string, value int64) {
	r.record(recordedCall{op: opInt, raw: raw, ival: value})
}

func (r *recorder) Bool(raw string, value bool) {
	r.record(recordedCall{op: opBool, raw: raw, bval: value})
}

func (r *recorder) Null(raw string) { r.record(recordedCall{op: opNull, raw: raw}) }

func (r *recorder) NamedConstant(raw, value string) {
	r.record(recordedCall{op: opNamedConstant, raw: raw, str: value})
}

func (r *recorder) String(raw, value string) {
	r.record(recordedCall{op: opString, raw: raw, str: value})
}

func (r *recorder) Regex(raw, pattern, flags string) {
	r.record(recordedCall{op: opRegex, raw: raw, str: pattern, flags: flags})
}

func (r *recorder) Repr(raw string) { r.record(recordedCall{op: opRepr, raw: raw}) }

func (r *recorder) Identifier(name string) {
	r.record(recordedCall{op: opIdentifier, str: name})
}

func (r *recorder) OpenDocument()  { r.record(recordedCall{op: opOpenDocument}) }
func (r *recorder) CloseDocument() { r.record(recordedCall{op: opCloseDocument}) }

func (r *recorder) OpenArray(kind ArrayKind) {
	r.record(recordedCall{op: opOpenArray, kind: kind})
}

func (r *recorder) ArrayElement()   { r.record(recordedCall{op: opArrayElement}) }
func (r *recorder) ArrayEmptySlot() { r.record(recordedCall{op: opArrayEmptySlot}) }
func (r *recorder) CloseArray()     { r.record(recordedCall{op: opCloseArray}) }
func (r *recorder) OpenMapping()    { r.record(recordedCall{op: opOpenMapping}) }
func (r *recorder) MappingKey()     { r.record(recordedCall{op: opMappingKey}) }
func (r *recorder) MappingValue()   { r.record(recordedCall{op: opMappingValue}) }
func (r *recorder) CloseMapping()   { r.record(recordedCall{op: opCloseMapping}) }
func (r *recorder) OpenSet()        { r.record(recordedCall{op: opOpenSet}) }
func (r *recorder) SetElement()     { r.record(recordedCall{op: opSetElement}) }
func (r *recorder) CloseSet()       { r.record(recordedCall{op: opCloseSet}) }

func (r *recorder) OpenCall(name string) {
	r.record(recordedCall{op: opOpenCall, str: name})
}

func (r *recorder) PositionalArgument()     { r.record(recordedCall{op: opPositionalArgument}) }
func (r *recorder) EndPositionalArguments() { r.record(recordedCall{op: opEndPositionalArguments}) }
func (r *recorder) StartKeywordArguments()  { r.record(recordedCall{op: opStartKeywordArguments}) }
func (r *recorder) KeywordArgumentKey()     { r.record(recordedCall{op: opKeywordArgumentKey}) }
func (r *recorder) KeywordArgumentValue()   { r.record(recordedCall{op: opKeywordArgumentValue}) }
func (r *recorder) EndKeywordArguments()    { r.record(recordedCall{op: opEndKeywordArguments}) }
func (r *recorder) CloseCall()              { r.record(recordedCall{op: opCloseCall}) }

func (r *recorder) Flush() error {
	r.record(recordedCall{op: opFlush})
	return nil
}
