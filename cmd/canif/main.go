// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

// Program canif pretty-prints JSON and JSON-ish data.
//
// It reads from stdin and writes to stdout. The input may use the laxer
// syntax that hand-written or logged data often has: unquoted keys, single
// quotes, trailing commas, tuples, Python constants, function calls. By
// default the output preserves those spellings and just fixes the layout;
// with -j it is normalized to strict JSON.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/saintamh/canif"
	"github.com/saintamh/canif/printer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		indent           int
		flatten          bool
		jsonOutput       bool
		noTrailingCommas bool
		singleDocument   bool
		ensureASCII      bool
		inputEncoding    string
		outputEncoding   string
	)

	cmd := &cobra.Command{
		Use:   "canif",
		Short: "Pretty-print JSON and JSON-ish data",
		Long: `Pretty-print JSON and JSON-ish data.

Reads documents from stdin and writes them, reformatted, to stdout. On a
syntax error the correctly reformatted prefix is written out, followed by
the raw unparsed remainder of the input, so no data is ever lost.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flatten {
				indent = 0
			}
			text, err := readAll(cmd.InOrStdin(), inputEncoding)
			if err != nil {
				return err
			}
			out, closeOut, err := encodedWriter(cmd.OutOrStdout(), outputEncoding)
			if err != nil {
				return err
			}
			opts := printer.Options{
				Indent:         indent,
				TrailingCommas: !noTrailingCommas,
				EnsureASCII:    ensureASCII,
			}
			var b canif.Builder
			if jsonOutput {
				b = printer.NewJSON(out, opts)
			} else {
				b = printer.NewVerbatim(out, opts)
			}
			terr := canif.Translate(b, text, singleDocument)
			if cerr := closeOut(); terr == nil {
				terr = cerr
			}
			return terr
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&indent, "indent", "i", 4, "indent each level by N spaces (0 means flat, single-line output)")
	fl.BoolVarP(&flatten, "flatten", "f", false, "flatten output (equivalent to -i 0)")
	fl.BoolVarP(&jsonOutput, "json-output", "j", false, "convert data to valid JSON if it wasn't already (e.g. None becomes null)")
	fl.BoolVarP(&noTrailingCommas, "no-trailing-commas", "T", false, "don't insert trailing commas after the last item in a sequence; implied by --json-output")
	fl.BoolVar(&singleDocument, "single-document", false, "check that the input consists of a single document, rather than accepting a stream of documents")
	fl.BoolVar(&ensureASCII, "ensure-ascii", false, `ensure JSON output is ASCII by using \uXXXX sequences in place of non-ASCII characters`)
	fl.StringVarP(&inputEncoding, "input-encoding", "I", "UTF-8", "character set used for decoding the input")
	fl.StringVarP(&outputEncoding, "output-encoding", "O", "UTF-8", "character set used for encoding the output")
	cmd.MarkFlagsMutuallyExclusive("indent", "flatten")

	return cmd
}

// lookupEncoding resolves an IANA character set name. UTF-8 is returned as
// nil, meaning no transformation is needed.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

func readAll(r io.Reader, encodingName string) (string, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// encodedWriter wraps w so that writes are encoded in the named character
// set. The returned close function flushes the encoder; it does not close w.
func encodedWriter(w io.Writer, encodingName string) (io.Writer, func() error, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, nil, err
	}
	if enc == nil {
		return w, func() error { return nil }, nil
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw.Close, nil
}
