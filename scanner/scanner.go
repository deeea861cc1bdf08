package scanner

import (
	"strconv"
	"strings"

	"github.com/shadowCow/lexparse-go/automata"
)

// Scanner tokenizes source text against a compiled DFA using maximal
// munch: it keeps advancing the DFA over runes, remembering the most
// recent accepting state and offset, and backtracks to that point once no
// further transition exists (or input ends). If no accepting state was
// ever reached for the current position, the offending rune becomes a
// single-rune ERR token and scanning resumes one rune later.
type Scanner struct {
	dfa      *automata.DFA
	ignore   map[string]bool
	reserved map[string]string
	idKind   string
	numKind  string
}

// New builds a Scanner. ignore is the set of pattern names declared
// `%ignore` (matched but never emitted); reserved maps a lowercased
// lexeme to the token kind it should be reclassified as when the matched
// pattern is idKind (identifiers), the reserved-word convenience that
// lets a keyword share the identifier pattern instead of needing its own.
func New(dfa *automata.DFA, ignore map[string]bool, reserved map[string]string, idKind, numKind string) *Scanner {
	if ignore == nil {
		ignore = map[string]bool{}
	}
	if reserved == nil {
		reserved = map[string]string{}
	}
	return &Scanner{dfa: dfa, ignore: ignore, reserved: reserved, idKind: idKind, numKind: numKind}
}

// Tokenize scans source end to end, returning the emitted token stream and
// the symbol table populated along the way. Only identifier lexemes
// (idKind matches that are not reclassified as reserved words) are entered
// into the symbol table; ignored, reserved-word and other lexemes are not.
func (s *Scanner) Tokenize(source string) ([]Token, *SymbolTable) {
	runes := []rune(source)
	symbols := NewSymbolTable()
	var tokens []Token

	offset := 0
	line, col := 1, 1

	advance := func(n int) {
		for i := 0; i < n; i++ {
			if runes[offset+i] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		offset += n
	}

	for offset < len(runes) {
		startLine, startCol, startOffset := line, col, offset

		cur := s.dfa.Start
		lastAcceptLen := -1
		lastAcceptName := ""

		pos := offset
		for pos < len(runes) {
			next, ok := s.dfa.NextState(cur, runes[pos])
			if !ok {
				break
			}
			cur = next
			pos++
			if name, ok := s.dfa.PatternNameOf(cur); ok {
				lastAcceptLen = pos - offset
				lastAcceptName = name
			}
		}

		if lastAcceptLen <= 0 {
			lexeme := string(runes[offset])
			tokens = append(tokens, Token{
				Lexeme: lexeme, Kind: ErrorKind, Attribute: lexeme,
				Line: startLine, Column: startCol, Offset: startOffset,
			})
			advance(1)
			continue
		}

		lexeme := string(runes[offset : offset+lastAcceptLen])
		advance(lastAcceptLen)

		if s.ignore[lastAcceptName] {
			continue
		}

		kind := lastAcceptName
		if kind == s.idKind {
			if reclass, ok := s.reserved[lowercase(lexeme)]; ok {
				kind = reclass
			}
		}

		tok := Token{Lexeme: lexeme, Kind: kind, Line: startLine, Column: startCol, Offset: startOffset}
		switch lastAcceptName {
		case s.idKind:
			if kind == s.idKind {
				tok.Attribute = strconv.Itoa(symbols.AddSymbol(lexeme, kind))
			}
		case s.numKind:
			tok.Attribute = formatNumericAttribute(lexeme)
		}
		tokens = append(tokens, tok)
	}

	return tokens, symbols
}

// formatNumericAttribute parses a NUM lexeme and reformats it canonically:
// a dot triggers float parsing, otherwise the lexeme parses as an integer.
// Falls back to the raw lexeme if parsing fails, which should not happen
// for any lexeme a numeric pattern can actually match.
func formatNumericAttribute(lexeme string) string {
	if strings.Contains(lexeme, ".") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return lexeme
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return lexeme
	}
	return strconv.FormatInt(n, 10)
}

func lowercase(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r - 'A' + 'a'
		}
	}
	return string(out)
}
