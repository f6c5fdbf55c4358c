// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif

// ArrayKind distinguishes the two bracketed sequence syntaxes.
type ArrayKind byte

// Constants defining the valid ArrayKind values.
const (
	List  ArrayKind = iota // square brackets, "[...]"
	Tuple                  // round brackets, "(...)"
)

func (k ArrayKind) String() string {
	if k == Tuple {
		return "tuple"
	}
	return "list"
}

// A Builder handles events from parsing an input document. The Parser takes
// a Builder and calls its methods as the input is discovered; it is up to the
// builder to decide what to produce, whether an in-memory structure or
// incrementally written output.
//
// The parser guarantees stack discipline: every Open method is matched by
// exactly one corresponding Close, with correctly nested calls in between.
// Within a mapping, each MappingKey is immediately paired with one
// MappingValue. Scalar methods receive both the raw source spelling of the
// token and its decoded value, so builders may re-emit the original text
// verbatim rather than reformatting the decoded value.
type Builder interface {
	// Report a float, giving the source spelling and the decoded value.
	Float(raw string, value float64)

	// Report an integer, giving the source spelling and the decoded value.
	Int(raw string, value int64)

	// Report a boolean constant. The spelling may be "true" or "True" etc.
	Bool(raw string, value bool)

	// Report a null, spelled "null" or "None" in the source.
	Null(raw string)

	// Report a named constant such as "undefined", along with its
	// conventional sentinel encoding (e.g. "$undefined").
	NamedConstant(raw, value string)

	// Report a string. The raw text includes the quotes and undecoded
	// escapes; value is the decoded string contents.
	String(raw, value string)

	// Report a regex literal /pattern/flags. The pattern is passed through
	// string escape decoding but never compiled.
	Regex(raw, pattern, flags string)

	// Report an opaque <...> repr token.
	Repr(raw string)

	// Report a bare identifier.
	Identifier(name string)

	// Document delimiters. Each document holds exactly one expression.
	OpenDocument()
	CloseDocument()

	// Begin a bracketed sequence of the given kind. Each element's events
	// are followed by one ArrayElement call; an empty slot in a sparse list
	// is reported as ArrayEmptySlot followed by ArrayElement.
	OpenArray(kind ArrayKind)
	ArrayElement()
	ArrayEmptySlot()
	CloseArray()

	// Begin a mapping. Each entry is reported as the key's events, then
	// MappingKey, then the value's events, then MappingValue.
	OpenMapping()
	MappingKey()
	MappingValue()
	CloseMapping()

	// Begin a set. Each element's events are followed by one SetElement.
	OpenSet()
	SetElement()
	CloseSet()

	// Begin a function call with the given name. Positional arguments come
	// first, each followed by PositionalArgument; then either
	// EndPositionalArguments alone, or EndPositionalArguments,
	// StartKeywordArguments, the keyword phase, and EndKeywordArguments.
	// Keyword argument keys arrive as String events followed by
	// KeywordArgumentKey; values are followed by KeywordArgumentValue.
	OpenCall(name string)
	PositionalArgument()
	EndPositionalArguments()
	StartKeywordArguments()
	KeywordArgumentKey()
	KeywordArgumentValue()
	EndKeywordArguments()
	CloseCall()

	// Flush finalizes any buffered-but-unwritten output. It is called by
	// the Translate driver during error recovery, before the unconsumed
	// input is echoed, and reports any deferred write error.
	Flush() error
}

// Discard is a Builder that ignores all events. It can be used to validate
// input syntax without producing any output.
var Discard Builder = discard{}

type discard struct{}

func (discard) Float(string, float64)     {}
func (discard) Int(string, int64)         {}
func (discard) Bool(string, bool)         {}
func (discard) Null(string)               {}
func (discard) NamedConstant(_, _ string) {}
func (discard) String(_, _ string)        {}
func (discard) Regex(_, _, _ string)      {}
func (discard) Repr(string)               {}
func (discard) Identifier(string)         {}
func (discard) OpenDocument()             {}
func (discard) CloseDocument()            {}
func (discard) OpenArray(ArrayKind)       {}
func (discard) ArrayElement()             {}
func (discard) ArrayEmptySlot()           {}
func (discard) CloseArray()               {}
func (discard) OpenMapping()              {}
func (discard) MappingKey()               {}
func (discard) MappingValue()             {}
func (discard) CloseMapping()             {}
func (discard) OpenSet()                  {}
func (discard) SetElement()               {}
func (discard) CloseSet()                 {}
func (discard) OpenCall(string)           {}
func (discard) PositionalArgument()       {}
func (discard) EndPositionalArguments()   {}
func (discard) StartKeywordArguments()    {}
func (discard) KeywordArgumentKey()       {}
func (discard) KeywordArgumentValue()     {}
func (discard) EndKeywordArguments()      {}
func (discard) CloseCall()                {}
func (discard) Flush() error              { return nil }
