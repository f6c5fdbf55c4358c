// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package printer

import (
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/saintamh/canif"
	"github.com/saintamh/canif/ast"
	"github.com/saintamh/canif/internal/escape"
	"github.com/saintamh/canif/internal/jsonify"
)

// A JSON builder prints the input normalized to strict JSON. Constructs
// with no JSON equivalent are lowered on the fly to the same sentinel-tagged
// encodings the ast package produces: sets become {"$set": [...]}, regexes
// {"$regex": ...}, function calls {"$$name": [args]}, identifiers "$$name"
// strings. Tuples flatten to arrays, holes to null, and non-string mapping
// keys are rendered as strings.
type JSON struct {
	printer

	// Composite mapping keys (tuples and the like) cannot be streamed:
	// JSON keys must be strings, so the whole key expression is captured
	// in memory, serialized, and printed as one quoted string.
	capture  *ast.Builder
	capDepth int
}

var _ canif.Builder = (*JSON)(nil)

// NewJSON constructs a JSON printer writing to w. Trailing commas are never
// printed, whatever opts says: JSON does not allow them.
func NewJSON(w io.Writer, opts Options) *JSON {
	opts.TrailingCommas = false
	return &JSON{printer: newPrinter(w, opts)}
}

// keyPosition reports whether the next value printed would land in mapping
// key position, where JSON requires a string.
func (j *JSON) keyPosition() bool {
	if len(j.stack) == 0 {
		return false
	}
	top := j.top()
	return top.kind == scopeMapping && !top.awaitValue
}

func (j *JSON) capturing() bool { return j.capture != nil }

func (j *JSON) startCapture() {
	j.capture = ast.NewBuilder()
	j.capture.OpenDocument()
}

// closeCapture is called when the captured composite key has been fully
// parsed; it serializes the captured value and prints it as a string key.
func (j *JSON) closeCapture() {
	j.capture.CloseDocument()
	data, err := json.Marshal(j.capture.Value())
	j.capture = nil
	if err != nil {
		if j.err == nil {
			j.err = err
		}
		return
	}
	j.emitString(string(data))
}

// emitString prints a quoted, escaped JSON string.
func (j *JSON) emitString(value string) {
	j.print(`"` + string(escape.Quote(value, j.opts.EnsureASCII)) + `"`)
}

// emitRaw prints a JSON literal, quoting it if it lands in key position.
func (j *JSON) emitRaw(lit string) {
	if j.keyPosition() {
		j.print(`"` + lit + `"`)
	} else {
		j.print(lit)
	}
}

func (j *JSON) Float(raw string, value float64) {
	if j.capturing() {
		j.capture.Float(raw, value)
		return
	}
	data, _ := ast.Number{Raw: raw, Value: value}.MarshalJSON()
	j.emitRaw(string(data))
}

func (j *JSON) Int(raw string, value int64) {
	if j.capturing() {
		j.capture.Int(raw, value)
		return
	}
	j.emitRaw(strconv.FormatInt(value, 10))
}

func (j *JSON) Bool(raw string, value bool) {
	if j.capturing() {
		j.capture.Bool(raw, value)
		return
	}
	j.emitRaw(strconv.FormatBool(value))
}

func (j *JSON) Null(raw string) {
	if j.capturing() {
		j.capture.Null(raw)
		return
	}
	j.emitRaw("null")
}

func (j *JSON) NamedConstant(raw, value string) {
	if j.capturing() {
		j.capture.NamedConstant(raw, value)
		return
	}
	j.emitString(value)
}

func (j *JSON) String(raw, value string) {
	if j.capturing() {
		j.capture.String(raw, value)
		return
	}
	j.emitString(value)
}

func (j *JSON) Regex(raw, pattern, flags string) {
	if j.capturing() {
		j.capture.Regex(raw, pattern, flags)
		return
	}
	if j.keyPosition() {
		// Key position: render the tagged form as one compact string,
		// $regex before $options, like the value branch below.
		key := `{"` + jsonify.RegexKey + `":"` + string(escape.Quote(pattern, false)) + `"`
		if flags != "" {
			key += `,"` + jsonify.OptionsKey + `":"` + string(escape.Quote(flags, false)) + `"`
		}
		j.emitString(key + "}")
		return
	}
	j.openScope(scopeMapping, "{")
	j.emitString(jsonify.RegexKey)
	j.mappingKey()
	j.emitString(pattern)
	j.mappingValue()
	if flags != "" {
		j.emitString(jsonify.OptionsKey)
		j.mappingKey()
		j.emitString(flags)
		j.mappingValue()
	}
	j.closeMapping()
}

func (j *JSON) Repr(raw string) {
	if j.capturing() {
		j.capture.Repr(raw)
		return
	}
	j.emitString(jsonify.Repr(raw))
}

func (j *JSON) Identifier(name string) {
	if j.capturing() {
		j.capture.Identifier(name)
		return
	}
	j.emitString(jsonify.Identifier(name))
}

func (j *JSON) OpenDocument()  {}
func (j *JSON) CloseDocument() {}

// open and close wrap the shared scope helpers with the capture bookkeeping
// every composite event needs.
func (j *JSON) open(forward func(*ast.Builder), prim func()) {
	if j.capturing() {
		j.capDepth++
		forward(j.capture)
		return
	}
	if j.keyPosition() {
		j.startCapture()
		j.capDepth++
		forward(j.capture)
		return
	}
	prim()
}

func (j *JSON) close(forward func(*ast.Builder), prim func()) {
	if j.capturing() {
		forward(j.capture)
		j.capDepth--
		if j.capDepth == 0 {
			j.closeCapture()
		}
		return
	}
	prim()
}

// inner forwards an interior event to the capture when one is active.
func (j *JSON) inner(forward func(*ast.Builder), prim func()) {
	if j.capturing() {
		forward(j.capture)
		return
	}
	prim()
}

func (j *JSON) OpenArray(kind canif.ArrayKind) {
	// The list/tuple distinction is dropped.
	j.open(func(b *ast.Builder) { b.OpenArray(kind) },
		func() { j.openScope(scopeList, "[") })
}

func (j *JSON) ArrayElement() {
	j.inner((*ast.Builder).ArrayElement, j.element)
}

func (j *JSON) ArrayEmptySlot() {
	if j.capturing() {
		j.capture.ArrayEmptySlot()
		return
	}
	j.print("null")
}

func (j *JSON) CloseArray() {
	j.close((*ast.Builder).CloseArray, j.closeArrayPrim)
}

func (j *JSON) closeArrayPrim() {
	f := j.popScope()
	j.endSequence(f.count, false)
	j.print("]")
}

func (j *JSON) OpenMapping() {
	j.open((*ast.Builder).OpenMapping,
		func() { j.openScope(scopeMapping, "{") })
}

func (j *JSON) MappingKey() {
	j.inner((*ast.Builder).MappingKey, j.mappingKey)
}

func (j *JSON) MappingValue() {
	j.inner((*ast.Builder).MappingValue, j.mappingValue)
}

func (j *JSON) CloseMapping() {
	j.close((*ast.Builder).CloseMapping, j.closeMapping)
}

func (j *JSON) mappingKey() {
	j.print(": ")
	j.top().awaitValue = true
}

func (j *JSON) mappingValue() {
	j.element()
	j.top().awaitValue = false
}

func (j *JSON) closeMapping() {
	f := j.popScope()
	j.endSequence(f.count, false)
	j.print("}")
}

func (j *JSON) OpenSet() {
	j.open((*ast.Builder).OpenSet, func() {
		j.openScope(scopeMapping, "{")
		j.emitString(jsonify.SetKey)
		j.mappingKey()
		j.openScope(scopeList, "[")
	})
}

func (j *JSON) SetElement() {
	j.inner((*ast.Builder).SetElement, j.element)
}

func (j *JSON) CloseSet() {
	j.close((*ast.Builder).CloseSet, func() {
		j.closeArrayPrim()
		j.mappingValue()
		j.closeMapping()
	})
}

func (j *JSON) OpenCall(name string) {
	j.open(func(b *ast.Builder) { b.OpenCall(name) }, func() {
		j.openScope(scopeMapping, "{")
		j.emitString(jsonify.CallKey(name))
		j.mappingKey()
		j.openScope(scopeList, "[")
	})
}

func (j *JSON) PositionalArgument() {
	j.inner((*ast.Builder).PositionalArgument, j.element)
}

func (j *JSON) EndPositionalArguments() {
	j.inner((*ast.Builder).EndPositionalArguments, func() {
		j.closeArrayPrim()
		j.mappingValue()
	})
}

func (j *JSON) StartKeywordArguments() {
	j.inner((*ast.Builder).StartKeywordArguments, func() {
		j.emitString(jsonify.KwargsKey)
		j.mappingKey()
		j.openScope(scopeMapping, "{")
	})
}

func (j *JSON) KeywordArgumentKey() {
	j.inner((*ast.Builder).KeywordArgumentKey, j.mappingKey)
}

func (j *JSON) KeywordArgumentValue() {
	j.inner((*ast.Builder).KeywordArgumentValue, j.mappingValue)
}

func (j *JSON) EndKeywordArguments() {
	j.inner((*ast.Builder).EndKeywordArguments, func() {
		j.closeMapping()
		j.mappingValue()
	})
}

func (j *JSON) CloseCall() {
	j.close((*ast.Builder).CloseCall, j.closeMapping)
}
