// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif

import (
	"regexp"
	"strconv"

	"github.com/saintamh/canif/internal/escape"
	"github.com/saintamh/canif/internal/jsonify"
)

// Token patterns for the JSON-ish grammar. All are anchored at the current
// lexer position.
var (
	reNumber       = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	reBool         = regexp.MustCompile(`^(?:[tT]rue|[fF]alse)\b`)
	reNull         = regexp.MustCompile(`^(?:null|None)\b`)
	reConstant     = regexp.MustCompile(`^(?:undefined|NotImplemented)\b`)
	reDoubleQuoted = regexp.MustCompile(`^"((?:[^\\"]|\\.)*)"`)
	reSingleQuoted = regexp.MustCompile(`^'((?:[^\\']|\\.)*)'`)
	reRegex        = regexp.MustCompile(`^/((?:[^\\/]|\\.)*)/(\w*)`)
	reRepr         = regexp.MustCompile(`^<\w+(?:[^'">]|"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')+>`)
	reIdentifier   = regexp.MustCompile(`^\$?\w+`)
	reCall         = regexp.MustCompile(`^((?:new\s+)?\w+(?:\.\w+)*)\s*\(`)
	reENotation    = regexp.MustCompile(`[.eE]`)
	reDigit        = regexp.MustCompile(`^\d`)
)

const errPositionalAfterKeyword = "positional argument follows keyword argument"

// A Parser drives a Lexer through the JSON-ish grammar, reporting the
// structure of the input to a Builder as it goes. The parser stores no
// parsed data itself; it is created once per (lexer, builder) pair.
type Parser struct {
	lexer   *Lexer
	builder Builder
}

// NewParser constructs a parser that reads tokens from lx and reports
// events to b.
func NewParser(lx *Lexer, b Builder) *Parser {
	return &Parser{lexer: lx, builder: b}
}

// Document parses a single document: one expression bracketed by
// OpenDocument and CloseDocument events. In case of a syntax error the
// returned error has concrete type [*SyntaxError].
func (p *Parser) Document() (err error) {
	defer p.recoverSyntaxError(&err)
	p.builder.OpenDocument()
	p.expression(true, false)
	p.builder.CloseDocument()
	return nil
}

// Syntax errors propagate out of the grammar rules by panic, so that the
// deeply recursive descent does not have to thread error returns through
// every production. They are recovered at the exported entry points.
func (p *Parser) recoverSyntaxError(errp *error) {
	if v := recover(); v != nil {
		serr, ok := v.(*SyntaxError)
		if !ok {
			panic(v)
		}
		*errp = serr
	}
}

func (p *Parser) fail(what string) {
	panic(p.lexer.Expected(what))
}

func (p *Parser) failMessage(msg string) {
	panic(&SyntaxError{Position: p.lexer.Position(), Message: msg})
}

// pop consumes the literal token or fails with "expected X, found Y".
func (p *Parser) pop(token string) {
	if !p.lexer.Pop(token) {
		p.fail(token)
	}
}

// popPattern consumes a pattern token or fails, describing the expected
// token by the given label.
func (p *Parser) popPattern(re *regexp.Regexp, label string) []string {
	m := p.lexer.PopPattern(re)
	if m == nil {
		p.fail(label)
	}
	return m
}

// expression recognizes a single expression, trying each alternative of the
// grammar in fixed priority order; the first to match wins. It reports
// whether an alternative matched. If checked is set, a failure to match is
// a syntax error instead. If isMappingKey is set, a bare word is reported
// as a string key rather than an identifier.
//
// Note p.builder must be re-read at every use rather than cached across
// nested parses: the speculative mapping/set lookahead temporarily swaps in
// a recorder.
func (p *Parser) expression(checked, isMappingKey bool) bool {
	// square-bracketed array
	if p.lexer.Pop("[") {
		p.builder.OpenArray(List)
		p.commaSeparatedList("]", func() { p.builder.ArrayElement() }, listOpts{allowEmptySlots: true})
		p.builder.CloseArray()
		return true
	}

	// round-bracketed array (tuple)
	if p.lexer.Pop("(") {
		p.builder.OpenArray(Tuple)
		p.commaSeparatedList(")", func() { p.builder.ArrayElement() }, listOpts{needsAtLeastOneComma: true})
		p.builder.CloseArray()
		return true
	}

	// mapping or set
	if p.lexer.Pop("{") {
		p.mappingOrSet()
		return true
	}

	// single-quoted string
	if p.lexer.Peek("'") {
		m := p.popPattern(reSingleQuoted, "string")
		p.builder.String(m[0], escape.Unescape(m[1]))
		return true
	}

	// double-quoted string
	if p.lexer.Peek(`"`) {
		m := p.popPattern(reDoubleQuoted, "string")
		p.builder.String(m[0], escape.Unescape(m[1]))
		return true
	}

	// regex literal. The pattern is kept as a string, never compiled: that
	// would invite syntax mismatches between regex engines, and would lose
	// flags we have no equivalent for.
	if p.lexer.Peek("/") {
		m := p.popPattern(reRegex, "regex")
		p.builder.Regex(m[0], escape.Unescape(m[1]), m[2])
		return true
	}

	// python repr expression
	if p.lexer.Peek("<") {
		m := p.popPattern(reRepr, "repr")
		p.builder.Repr(m[0])
		return true
	}

	// number
	if m := p.lexer.PopPattern(reNumber); m != nil {
		raw := m[0]
		if reENotation.MatchString(raw) {
			value, _ := strconv.ParseFloat(raw, 64)
			p.builder.Float(raw, value)
		} else if value, err := strconv.ParseInt(raw, 10, 64); err == nil {
			p.builder.Int(raw, value)
		} else {
			// Out of int64 range; report as a float, raw text preserved.
			value, _ := strconv.ParseFloat(raw, 64)
			p.builder.Float(raw, value)
		}
		return true
	}

	// bool
	if m := p.lexer.PopPattern(reBool); m != nil {
		raw := m[0]
		p.builder.Bool(raw, raw[0] == 't' || raw[0] == 'T')
		return true
	}

	// null
	if m := p.lexer.PopPattern(reNull); m != nil {
		p.builder.Null(m[0])
		return true
	}

	// named constant
	if m := p.lexer.PopPattern(reConstant); m != nil {
		p.builder.NamedConstant(m[0], jsonify.NamedConstant(m[0]))
		return true
	}

	// function call
	if m := p.lexer.PopPattern(reCall); m != nil {
		p.functionCall(m[1])
		return true
	}

	// identifier or unquoted mapping key
	if name, ok := p.popIdentifier(); ok {
		if isMappingKey {
			p.builder.String(name, name)
		} else {
			p.builder.Identifier(name)
		}
		return true
	}

	if checked {
		if isMappingKey {
			p.fail("key")
		}
		p.fail("expression")
	}
	return false
}

// popIdentifier consumes a bare word, rejecting the spellings reserved for
// other token types (bools, nulls, named constants, leading digits).
func (p *Parser) popIdentifier() (string, bool) {
	if p.lexer.PeekPattern(reBool) || p.lexer.PeekPattern(reNull) ||
		p.lexer.PeekPattern(reConstant) || p.lexer.PeekPattern(reDigit) {
		return "", false
	}
	m := p.lexer.PopPattern(reIdentifier)
	if m == nil {
		return "", false
	}
	return m[0], true
}

type listOpts struct {
	needsAtLeastOneComma bool // tuples: "(1)" is an error, "(1,)" is not
	allowEmptySlots      bool // sparse lists: "[1,,2]" has a hole
}

// commaSeparatedList consumes zero or more comma-separated expressions up
// to the given end token, invoking element after each one. Trailing commas
// are always permitted.
func (p *Parser) commaSeparatedList(end string, element func(), opts listOpts) {
	n := 0
	for !p.lexer.Peek(end) {
		if opts.allowEmptySlots && p.lexer.Pop(",") {
			p.builder.ArrayEmptySlot()
			element()
			continue
		}
		p.expression(true, false)
		if p.lexer.Peek(",") || p.lexer.Peek(end) {
			element()
		}
		n++
		if !p.lexer.Pop(",") {
			if opts.needsAtLeastOneComma && n == 1 {
				p.fail(",")
			}
			break
		}
	}
	p.pop(end)
}

// mappingOrSet disambiguates the two brace-delimited constructs. The open
// brace has already been consumed. An empty "{}" is a mapping. Otherwise the
// first expression is parsed speculatively with a recorder standing in for
// the builder: if a "," or "}" follows, the braces denote a set and the
// recording is replayed as its first element; if the recorded expression
// was a lone bare word, it is reinterpreted as an identifier rather than a
// string key. Otherwise a ":" must follow and the recording is replayed as
// the first mapping key.
func (p *Parser) mappingOrSet() {
	if p.lexer.Pop("}") {
		p.builder.OpenMapping()
		p.builder.CloseMapping()
		return
	}

	prev := p.builder
	rec := new(recorder)
	p.builder = rec
	haveElement, serr := p.tryExpression(true)
	p.builder = prev

	if serr != nil {
		// Make sure we print back out everything we've consumed before
		// re-raising, so that streaming builders are left coherent.
		p.builder.OpenMapping()
		rec.Replay(p.builder)
		panic(serr)
	}

	if haveElement && (p.lexer.Pop(",") || p.lexer.Peek("}")) {
		p.continueSet(rec)
	} else {
		p.continueMapping(haveElement, rec)
	}
}

// tryExpression parses an expression speculatively, converting a syntax
// error panic into a returned error. Matching failure is not an error here;
// it is reported in the bool.
func (p *Parser) tryExpression(isMappingKey bool) (ok bool, serr *SyntaxError) {
	defer func() {
		if v := recover(); v != nil {
			e, isSyntax := v.(*SyntaxError)
			if !isSyntax {
				panic(v)
			}
			serr = e
		}
	}()
	return p.expression(false, isMappingKey), nil
}

func (p *Parser) continueSet(rec *recorder) {
	p.builder.OpenSet()
	if name, ok := rec.soleBareString(); ok {
		// It looked like a naked string mapping key when we parsed it, but
		// now that we know we have a set it must be an identifier.
		p.builder.Identifier(name)
	} else {
		rec.Replay(p.builder)
	}
	p.builder.SetElement()
	p.commaSeparatedList("}", func() { p.builder.SetElement() }, listOpts{})
	p.builder.CloseSet()
}

func (p *Parser) continueMapping(firstKeyAlreadyParsed bool, rec *recorder) {
	p.builder.OpenMapping()
	rec.Replay(p.builder)
	if !firstKeyAlreadyParsed {
		p.expression(true, true)
	}
	p.pop(":")
	p.builder.MappingKey()
	p.expression(true, false)
	if p.lexer.Pop(",") {
		p.builder.MappingValue()
		for !p.lexer.Peek("}") {
			p.expression(true, true)
			p.pop(":")
			p.builder.MappingKey()
			p.expression(true, false)
			if p.lexer.Peek(",") || p.lexer.Peek("}") {
				p.builder.MappingValue()
			}
			if !p.lexer.Pop(",") {
				break
			}
		}
	} else if p.lexer.Peek("}") {
		p.builder.MappingValue()
	}
	p.pop("}")
	p.builder.CloseMapping()
}

// functionCall consumes the arguments of a call whose name and open paren
// have already been consumed. Positional arguments must all precede keyword
// arguments; a bare word is a keyword key only when immediately followed by
// "=", otherwise it is itself a positional argument.
func (p *Parser) functionCall(name string) {
	haveKeywords := false
	p.builder.OpenCall(name)
	for !p.lexer.Peek(")") {
		if !haveKeywords && p.lexer.Pop(",") {
			p.builder.ArrayEmptySlot()
			p.builder.PositionalArgument()
			continue
		}
		word, isWord := p.popIdentifier()
		if haveKeywords {
			if !isWord || !p.lexer.Pop("=") {
				p.failMessage(errPositionalAfterKeyword)
			}
			p.keywordArgument(word)
		} else {
			switch {
			case isWord && p.lexer.Pop("="):
				haveKeywords = true
				p.builder.EndPositionalArguments()
				p.builder.StartKeywordArguments()
				p.keywordArgument(word)
			case isWord && p.lexer.Pop("("):
				p.functionCall(word)
				p.builder.PositionalArgument()
			case isWord:
				p.builder.Identifier(word)
				p.builder.PositionalArgument()
			default:
				p.expression(true, false)
				p.builder.PositionalArgument()
			}
		}
		if !p.lexer.Pop(",") {
			break
		}
	}
	p.pop(")")
	if haveKeywords {
		p.builder.EndKeywordArguments()
	} else {
		p.builder.EndPositionalArguments()
	}
	p.builder.CloseCall()
}

func (p *Parser) keywordArgument(key string) {
	p.builder.String(key, key)
	p.builder.KeywordArgumentKey()
	p.expression(true, false)
	p.builder.KeywordArgumentValue()
}
