// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

// Package canif implements a lexer and parser for "JSON-ish" data: JSON plus
// the extensions commonly found in JavaScript source and Python reprs, such
// as unquoted identifiers, single-quoted strings, regex literals, tuples,
// sets, function calls, trailing commas and sparse arrays.
//
// # Lexing
//
// The Lexer type owns a cursor over an input string. Its Pop and Peek methods
// match literal tokens or anchored patterns at the current position, skipping
// whitespace and line comments between tokens:
//
//	lx := canif.NewLexer(input)
//	if lx.Pop("{") {
//	   // position has advanced past the brace and any following whitespace
//	}
//
// # Parsing
//
// The Parser type implements an event-driven recursive-descent parser.  It
// works by calling methods on a Builder value to report the structure of the
// input as it is discovered; the parser itself stores none of the parsed
// data. In case of error, parsing is terminated and an error of concrete
// type *canif.SyntaxError is returned.
//
//	p := canif.NewParser(lx, builder)
//	if err := p.Document(); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Builders
//
// The Builder interface accepts parser events. The methods of a builder
// correspond to the grammar of JSON-ish values:
//
//	construct     | methods                                  | description
//	------------- | ---------------------------------------- | -------------------
//	document      | OpenDocument, CloseDocument              | one top-level value
//	array         | OpenArray, ArrayElement, ArrayEmptySlot, | [...] or (...)
//	              | CloseArray                               |
//	mapping       | OpenMapping, MappingKey, MappingValue,   | {k: v}
//	              | CloseMapping                             |
//	set           | OpenSet, SetElement, CloseSet            | {a, b}
//	function call | OpenCall, PositionalArgument, ...,       | f(a, k=v)
//	              | CloseCall                                |
//	scalar        | Float, Int, Bool, Null, NamedConstant,   | leaf values
//	              | String, Regex, Repr, Identifier          |
//
// The parser ensures that corresponding Open and Close methods are correctly
// paired, or that a SyntaxError is reported. Concrete builders in this module
// include the in-memory value builder (package ast) and the streaming
// verbatim and JSON printers (package printer).
//
// # Error recovery
//
// Streaming builders write output incrementally while the input is still
// being parsed. So that a syntax error discovered mid-document does not leave
// the output truncated, the Translate driver finalizes the builder's buffered
// output with Flush and then echoes the unconsumed input verbatim with the
// lexer's FlushRemainder. The result is a correctly reformatted prefix
// followed by a raw copy of the input from the error position onward.
package canif
