package main

import (
	"fmt"
	"io"

	"github.com/opal-lang/opal/internal/lexer"
	"github.com/opal-lang/opal/internal/source"
	"github.com/opal-lang/opal/internal/token"
)

// dumpTokens tokenizes src to completion, printing one line per token in
// the same `<path>[<beg>-<end>|<row>,<col>]` location format the
// diagnostics sink uses, then the end-of-text sentinel.
func dumpTokens(out io.Writer, src *source.Source) error {
	tz := lexer.New(src)
	for {
		tok, err := tz.Next()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s[%d-%d|%d,%d]: %s\n",
			src.Path(), tok.Range.Beg, tok.Range.End, tok.Range.Row, tok.Range.Column, tok.Type)
		if tok.Type == token.EOT {
			return nil
		}
	}
}
