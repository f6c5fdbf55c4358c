// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

// Package ast builds plain in-memory Go values from parsed JSON-ish input:
// nested map[string]any, []any, and scalars. Non-JSON constructs are
// encoded as sentinel-tagged structures ("$set", "$regex", "$$name"...) so
// that the result is also valid JSON when marshaled.
package ast

import (
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/saintamh/canif"
	"github.com/saintamh/canif/internal/jsonify"
)

// A Number is a parsed float that remembers its source spelling, so that
// re-serializing it reproduces the original literal exactly: "5.12e-1"
// round-trips as "5.12e-1", not "0.512".
type Number struct {
	Raw   string  // the literal as it appeared in the input
	Value float64 // the decoded value
}

// String returns the original literal text.
func (n Number) String() string { return n.Raw }

// Float64 returns the decoded value.
func (n Number) Float64() float64 { return n.Value }

var reJSONNumber = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`)

// MarshalJSON emits the original literal when it is valid JSON, falling
// back to the decoded value for spellings JSON does not allow (such as a
// leading "+" or redundant leading zeroes).
func (n Number) MarshalJSON() ([]byte, error) {
	raw := strings.TrimPrefix(n.Raw, "+")
	if reJSONNumber.MatchString(raw) {
		return []byte(raw), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'g', -1, 64)), nil
}

// Parse parses text as a single document and returns the built value.
// Input remaining after the document, other than whitespace and comments,
// is a syntax error.
func Parse(text string) (any, error) {
	lx := canif.NewLexer(text)
	b := NewBuilder()
	p := canif.NewParser(lx, b)
	if err := p.Document(); err != nil {
		return nil, err
	}
	if !lx.AtEnd() {
		return nil, lx.Expected("end of input")
	}
	return b.Value(), nil
}

// A Builder implements canif.Builder by assembling plain data structures.
// It maintains a stack of partially-built accumulators; closing a composite
// finalizes the top accumulator into a plain value and hands it to the
// parent as if it were a scalar.
type Builder struct {
	stack  []frame
	result any
}

var _ canif.Builder = (*Builder)(nil)

// NewBuilder constructs an empty in-memory builder.
func NewBuilder() *Builder { return new(Builder) }

// Value returns the finished document value. It is only meaningful after
// CloseDocument has been received.
func (b *Builder) Value() any { return b.result }

// A frame accumulates the children of one open composite. Scalar values
// land in the frame's pending slot; the marker events (ArrayElement,
// MappingKey, ...) move the pending value to its proper place.
type frame interface {
	put(v any)
}

// pending is the single-value slot shared by all frame types.
type pending struct {
	value any
	has   bool
}

func (p *pending) put(v any) { p.value, p.has = v, true }

func (p *pending) take() any {
	v := p.value
	p.value, p.has = nil, false
	return v
}

type documentFrame struct{ pending }

type arrayFrame struct {
	pending
	kind  canif.ArrayKind
	elems []any
}

type mappingFrame struct {
	pending
	m      map[string]any
	key    string
	hasKey bool
}

type setFrame struct {
	pending
	elems []any
}

type callFrame struct {
	pending
	name       string
	positional []any
	kwargs     map[string]any
	key        string
}

func (b *Builder) top() frame { return b.stack[len(b.stack)-1] }

func (b *Builder) push(f frame) { b.stack = append(b.stack, f) }

func (b *Builder) pop() frame {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	return f
}

// add hands a finalized value to the innermost open accumulator.
func (b *Builder) add(v any) { b.top().put(v) }

func (b *Builder) Float(raw string, value float64) { b.add(Number{Raw: raw, Value: value}) }
func (b *Builder) Int(raw string, value int64)     { b.add(value) }
func (b *Builder) Bool(raw string, value bool)     { b.add(value) }
func (b *Builder) Null(raw string)                 { b.add(nil) }
func (b *Builder) NamedConstant(raw, value string) { b.add(value) }
func (b *Builder) String(raw, value string)        { b.add(value) }
func (b *Builder) Repr(raw string)                 { b.add(jsonify.Repr(raw)) }
func (b *Builder) Identifier(name string)          { b.add(jsonify.Identifier(name)) }

func (b *Builder) Regex(raw, pattern, flags string) {
	m := map[string]any{jsonify.RegexKey: pattern}
	if flags != "" {
		m[jsonify.OptionsKey] = flags
	}
	b.add(m)
}

func (b *Builder) OpenDocument() { b.push(new(documentFrame)) }

func (b *Builder) CloseDocument() {
	f := b.pop().(*documentFrame)
	b.result = f.take()
}

func (b *Builder) OpenArray(kind canif.ArrayKind) {
	b.push(&arrayFrame{kind: kind, elems: []any{}})
}

func (b *Builder) ArrayElement() {
	f := b.top().(*arrayFrame)
	f.elems = append(f.elems, f.take())
}

// ArrayEmptySlot records a sparse-array hole as a null-equivalent value.
func (b *Builder) ArrayEmptySlot() { b.add(nil) }

func (b *Builder) CloseArray() {
	f := b.pop().(*arrayFrame)
	// The list/tuple distinction is dropped in the built value.
	b.add(f.elems)
}

func (b *Builder) OpenMapping() { b.push(&mappingFrame{m: map[string]any{}}) }

func (b *Builder) MappingKey() {
	f := b.top().(*mappingFrame)
	f.key, f.hasKey = keyString(f.take()), true
}

func (b *Builder) MappingValue() {
	f := b.top().(*mappingFrame)
	f.m[f.key] = f.take()
	f.key, f.hasKey = "", false
}

func (b *Builder) CloseMapping() {
	f := b.pop().(*mappingFrame)
	if f.hasKey {
		panic("ast: mapping closed with dangling key")
	}
	b.add(f.m)
}

func (b *Builder) OpenSet() { b.push(&setFrame{elems: []any{}}) }

func (b *Builder) SetElement() {
	f := b.top().(*setFrame)
	f.elems = append(f.elems, f.take())
}

func (b *Builder) CloseSet() {
	f := b.pop().(*setFrame)
	b.add(map[string]any{jsonify.SetKey: f.elems})
}

func (b *Builder) OpenCall(name string) {
	b.push(&callFrame{name: name, positional: []any{}})
}

func (b *Builder) PositionalArgument() {
	f := b.top().(*callFrame)
	f.positional = append(f.positional, f.take())
}

func (b *Builder) EndPositionalArguments() {}

func (b *Builder) StartKeywordArguments() {
	f := b.top().(*callFrame)
	f.kwargs = map[string]any{}
}

func (b *Builder) KeywordArgumentKey() {
	f := b.top().(*callFrame)
	f.key = keyString(f.take())
}

func (b *Builder) KeywordArgumentValue() {
	f := b.top().(*callFrame)
	f.kwargs[f.key] = f.take()
}

func (b *Builder) EndKeywordArguments() {}

func (b *Builder) CloseCall() {
	f := b.pop().(*callFrame)
	b.add(f.finish())
}

func (b *Builder) Flush() error { return nil }

func (f *callFrame) finish() any {
	if f.kwargs == nil {
		if key, ok := jsonify.SpecialCall(f.name); ok {
			// There should be a single argument, but don't silently
			// swallow the rest if there are more.
			if len(f.positional) == 1 {
				return map[string]any{key: f.positional[0]}
			}
			return map[string]any{key: f.positional}
		}
		if f.name == "OrderedDict" {
			if m, ok := foldPairs(f.positional); ok {
				return m
			}
		}
	}
	m := map[string]any{jsonify.Identifier(f.name): f.positional}
	if len(f.kwargs) != 0 {
		m[jsonify.KwargsKey] = f.kwargs
	}
	return m
}

// foldPairs converts OrderedDict-style arguments, a single list of [key,
// value] pairs, into a mapping. It reports false for any other shape.
func foldPairs(args []any) (map[string]any, bool) {
	if len(args) != 1 {
		return nil, false
	}
	pairs, ok := args[0].([]any)
	if !ok {
		return nil, false
	}
	m := make(map[string]any, len(pairs))
	for _, p := range pairs {
		pair, ok := p.([]any)
		if !ok || len(pair) != 2 {
			return nil, false
		}
		m[keyString(pair[0])] = pair[1]
	}
	return m, true
}

// keyString renders a parsed mapping key as a string. String keys pass
// through; numeric and constant keys use their literal spelling; composite
// keys (tuples) are serialized to their JSON encoding.
func keyString(v any) string {
	switch key := v.(type) {
	case string:
		return key
	case int64:
		return strconv.FormatInt(key, 10)
	case Number:
		return key.Raw
	case bool:
		return strconv.FormatBool(key)
	case nil:
		return "null"
	default:
		data, err := json.Marshal(key)
		if err != nil {
			panic("ast: unencodable mapping key: " + err.Error())
		}
		return string(data)
	}
}
