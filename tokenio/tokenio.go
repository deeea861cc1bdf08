// Package tokenio reads and writes two token-stream text formats: an input
// format (`KIND[,ATTRIBUTE]` per line) for driving the parser directly
// without a live scanner, and an output format (`(lexeme, kind,
// attribute)` triples) for the scanner's emitted tokens.
package tokenio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shadowCow/lexparse-go/grammar"
	"github.com/shadowCow/lexparse-go/parsedriver"
	"github.com/shadowCow/lexparse-go/scanner"
)

// ReadInput parses a `KIND[,ATTRIBUTE]`-per-line token stream into driver
// input tokens. Since this format carries no surface lexeme, the kind
// itself stands in as the tree leaf's Lexeme.
func ReadInput(r io.Reader) ([]parsedriver.InputToken, error) {
	var tokens []parsedriver.InputToken
	s := bufio.NewScanner(r)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		var kind, attr string
		if line == "," {
			kind = ","
		} else if idx := strings.Index(line, ","); idx >= 0 {
			kind = strings.TrimSpace(line[:idx])
			attr = strings.TrimSpace(line[idx+1:])
		} else {
			kind = line
		}
		if kind == "" {
			return nil, fmt.Errorf("tokenio: line %d: missing token kind", lineNo)
		}
		tokens = append(tokens, parsedriver.InputToken{
			Symbol:    grammar.Symbol(kind),
			Lexeme:    kind,
			Attribute: attr,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// WriteOutput writes the scanner's emitted tokens as `(lexeme, kind,
// attribute)` triples, one per line.
func WriteOutput(w io.Writer, tokens []scanner.Token) error {
	bw := bufio.NewWriter(w)
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(bw, "(%s, %s, %s)\n", tok.Lexeme, tok.Kind, tok.Attribute); err != nil {
			return err
		}
	}
	return bw.Flush()
}
