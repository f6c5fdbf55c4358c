// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package canif

import "io"

// Sink is implemented by builders that stream their output to a writer,
// such as the printers in package printer. The Translate driver uses it to
// write document separators and, during error recovery, to echo the
// unconsumed remainder of the input.
type Sink interface {
	Writer() io.Writer
}

// Translate reads text and feeds it to b. If singleDocument is set, the
// input must hold exactly one document; otherwise documents are parsed
// until the input is exhausted, with a newline written between them.
//
// On a syntax error, Translate finalizes whatever output b has buffered by
// calling its Flush method, then (if b is a Sink) echoes the unconsumed
// input verbatim, and returns the error. The output is therefore a
// correctly reformatted prefix followed by a raw copy of the input from the
// error position onward: nothing is lost.
func Translate(b Builder, text string, singleDocument bool) error {
	lx := NewLexer(text)
	p := NewParser(lx, b)
	err := translate(lx, p, b, singleDocument)
	if err != nil {
		b.Flush() // finish printing the parsed tokens
		if s, ok := b.(Sink); ok {
			lx.FlushRemainder(s.Writer()) // then echo the unparsed input
		}
	}
	return err
}

func translate(lx *Lexer, p *Parser, b Builder, singleDocument bool) error {
	for {
		if !singleDocument && lx.AtEnd() {
			break
		}
		if err := p.Document(); err != nil {
			return err
		}
		if s, ok := b.(Sink); ok {
			io.WriteString(s.Writer(), "\n")
		}
		if singleDocument {
			break
		}
	}
	if !lx.AtEnd() {
		return lx.Expected("end of input")
	}
	return b.Flush()
}
