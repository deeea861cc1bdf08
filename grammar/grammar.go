// Package grammar loads a flat BNF grammar from the `Head ::= Body | Body`
// text format into the numbered-production model the SLR table
// builder consumes.
package grammar

import (
	"fmt"
	"strings"

	"github.com/projectdiscovery/gologger"
)

// Symbol is a single grammar vocabulary element: either a non-terminal
// (declared as the head of some production) or a terminal (referenced in a
// body but never declared as a head).
type Symbol string

// Epsilon is the special symbol denoting an empty production body.
const Epsilon Symbol = "&"

// Production is one numbered rule Head -> Body. Production 0 is always the
// augmented start production S' -> S that GrammarFromText synthesizes.
type Production struct {
	Head   Symbol
	Body   []Symbol
	Number int
}

func (p Production) String() string {
	if len(p.Body) == 0 {
		return fmt.Sprintf("%s ::= %s", p.Head, Epsilon)
	}
	parts := make([]string, len(p.Body))
	for i, s := range p.Body {
		parts[i] = string(s)
	}
	return fmt.Sprintf("%s ::= %s", p.Head, strings.Join(parts, " "))
}

// Grammar is a flat BNF grammar: a numbered production list plus the
// derived non-terminal/terminal vocabularies and the augmented start
// symbol.
type Grammar struct {
	Productions  []Production
	NonTerminals map[Symbol]bool
	Terminals    map[Symbol]bool
	Start        Symbol // augmented start symbol, e.g. "Program'"
	OrigStart    Symbol // the grammar's own declared start symbol
}

// GrammarError reports a malformed grammar definition.
type GrammarError struct {
	Msg string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar error: %s", e.Msg)
}

// specialChars are tokenized as standalone symbols even with no
// surrounding whitespace, so a production body can be written without
// spacing out every operator.
var specialChars = []rune{'*', '+', '(', ')', ';', '='}

func spaceSpecials(s string) string {
	var b strings.Builder
	for _, r := range s {
		special := false
		for _, sc := range specialChars {
			if r == sc {
				special = true
				break
			}
		}
		if special {
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GrammarFromText parses the `Head ::= Body | Body` format. Comments start
// with `//` (stripped to end of line) or `#` (skips the whole line); blank
// lines are skipped. Every line must contain `::=`. The first head
// encountered becomes the grammar's declared start symbol; GrammarFromText
// synthesizes an augmented production 0, `Start' ::= Start`, uniquifying
// the augmented symbol by appending `'` until it doesn't collide with a
// declared name. Alternatives separated by `|` become separate numbered
// productions. A body consisting of exactly the symbol `&` denotes an
// empty production. Symbols that are referenced in some body but never
// declared as a head are terminals.
func GrammarFromText(text string) (*Grammar, error) {
	var heads []Symbol
	type rawProd struct {
		head Symbol
		body []Symbol
	}
	var raw []rawProd
	seenHead := make(map[Symbol]bool)

	lines := strings.Split(text, "\n")
	for lineNo, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sepIdx := strings.Index(line, "::=")
		if sepIdx < 0 {
			return nil, &GrammarError{Msg: fmt.Sprintf("line %d: missing '::=': %q", lineNo+1, line)}
		}

		head := Symbol(strings.TrimSpace(line[:sepIdx]))
		if head == "" {
			return nil, &GrammarError{Msg: fmt.Sprintf("line %d: empty head", lineNo+1)}
		}
		if !seenHead[head] {
			seenHead[head] = true
			heads = append(heads, head)
		}

		bodyText := strings.TrimSpace(line[sepIdx+3:])
		for _, alt := range strings.Split(bodyText, "|") {
			alt = strings.TrimSpace(spaceSpecials(alt))
			fields := strings.Fields(alt)
			var body []Symbol
			if len(fields) == 1 && fields[0] == string(Epsilon) {
				body = nil
			} else {
				for _, f := range fields {
					body = append(body, Symbol(f))
				}
			}
			raw = append(raw, rawProd{head: head, body: body})
		}
	}

	if len(heads) == 0 {
		return nil, &GrammarError{Msg: "no productions found"}
	}

	origStart := heads[0]
	startSym := origStart + "'"
	for seenHead[startSym] {
		startSym = startSym + "'"
	}

	g := &Grammar{
		NonTerminals: make(map[Symbol]bool),
		Terminals:    make(map[Symbol]bool),
		Start:        startSym,
		OrigStart:    origStart,
	}
	for _, h := range heads {
		g.NonTerminals[h] = true
	}
	g.NonTerminals[startSym] = true

	g.Productions = append(g.Productions, Production{Head: startSym, Body: []Symbol{origStart}, Number: 0})
	for i, r := range raw {
		g.Productions = append(g.Productions, Production{Head: r.head, Body: r.body, Number: i + 1})
	}

	for _, p := range g.Productions {
		for _, s := range p.Body {
			if s == Epsilon {
				continue
			}
			if !g.NonTerminals[s] {
				g.Terminals[s] = true
			}
		}
	}

	gologger.Verbose().Msgf("grammar: loaded %d productions, %d non-terminals, %d terminals",
		len(g.Productions), len(g.NonTerminals), len(g.Terminals))

	return g, nil
}
