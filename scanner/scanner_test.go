package scanner

import (
	"testing"

	"github.com/shadowCow/lexparse-go/automata"
	"github.com/shadowCow/lexparse-go/regex"
)

func compilePattern(t *testing.T, raw, name string, priority int) *automata.NFA {
	t.Helper()
	tokens, err := regex.Preprocess(raw)
	if err != nil {
		t.Fatalf("Preprocess(%q): %v", raw, err)
	}
	postfix, err := regex.ToPostfix(tokens)
	if err != nil {
		t.Fatalf("ToPostfix(%q): %v", raw, err)
	}
	n, err := automata.BuildFromPostfix(postfix, name, priority)
	if err != nil {
		t.Fatalf("BuildFromPostfix(%q): %v", raw, err)
	}
	return n
}

func buildTestDFA(t *testing.T) *automata.DFA {
	t.Helper()
	id := compilePattern(t, "[a-z]([a-z]|[0-9])*", "ID", 1)
	num := compilePattern(t, "[0-9]+", "NUM", 2)
	ws := compilePattern(t, "( |\t|\n)+", "WS", 0)
	plus := compilePattern(t, `\+`, "PLUS", 3)
	combined := automata.Combine([]*automata.NFA{ws, id, num, plus})
	return automata.Minimize(automata.SubsetConstruct(combined))
}

func TestScannerMaximalMunchAndSymbolTable(t *testing.T) {
	dfa := buildTestDFA(t)
	s := New(dfa, map[string]bool{"WS": true}, map[string]string{"if": "IF"}, "ID", "NUM")

	tokens, symbols := s.Tokenize("x1 + 42 + if")

	var kinds []string
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []string{"ID", "PLUS", "NUM", "PLUS", "IF"}
	if len(kinds) != len(want) {
		t.Fatalf("got kinds %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d kind = %q, want %q", i, kinds[i], want[i])
		}
	}

	if tokens[0].Attribute == "" {
		t.Error("expected ID token to carry a symbol-table attribute")
	}
	if symbols.Len() == 0 {
		t.Error("expected symbol table to be populated")
	}
}

func TestScannerErrorTokenOnUnmatchedRune(t *testing.T) {
	dfa := buildTestDFA(t)
	s := New(dfa, map[string]bool{"WS": true}, nil, "ID", "NUM")

	tokens, _ := s.Tokenize("x1 # y2")

	var found bool
	for _, tok := range tokens {
		if tok.Kind == ErrorKind && tok.Lexeme == "#" && tok.Attribute == "#" {
			found = true
		}
	}
	if !found {
		t.Error("expected an ERR token (\"#\", ERR, \"#\") for the unmatched '#'")
	}
}

func buildNumericTestDFA(t *testing.T) *automata.DFA {
	t.Helper()
	num := compilePattern(t, `[0-9]+(\.[0-9]+)?`, "NUM", 1)
	ws := compilePattern(t, "( |\t|\n)+", "WS", 0)
	combined := automata.Combine([]*automata.NFA{ws, num})
	return automata.Minimize(automata.SubsetConstruct(combined))
}

func TestScannerNumAttributeIsParsedAndReformatted(t *testing.T) {
	dfa := buildNumericTestDFA(t)
	s := New(dfa, map[string]bool{"WS": true}, nil, "ID", "NUM")

	tokens, _ := s.Tokenize("007 3.140")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Attribute != "7" {
		t.Errorf("expected integer lexeme \"007\" to reformat to \"7\", got %q", tokens[0].Attribute)
	}
	if tokens[1].Attribute != "3.14" {
		t.Errorf("expected float lexeme \"3.140\" to reformat to \"3.14\", got %q", tokens[1].Attribute)
	}
}

func TestScannerIgnoredPatternNotEmitted(t *testing.T) {
	dfa := buildTestDFA(t)
	s := New(dfa, map[string]bool{"WS": true}, nil, "ID", "NUM")

	tokens, _ := s.Tokenize("a   b")
	if len(tokens) != 2 {
		t.Fatalf("expected whitespace to be suppressed, got %d tokens", len(tokens))
	}
}

func TestSymbolTableSharesIndexForRepeatedLexeme(t *testing.T) {
	dfa := buildTestDFA(t)
	s := New(dfa, map[string]bool{"WS": true}, nil, "ID", "NUM")

	tokens, symbols := s.Tokenize("foo foo")
	if tokens[0].Attribute != tokens[1].Attribute {
		t.Errorf("expected repeated lexeme to share symbol-table index, got %q and %q",
			tokens[0].Attribute, tokens[1].Attribute)
	}
	if symbols.Len() != 1 {
		t.Errorf("expected 1 distinct symbol, got %d", symbols.Len())
	}
}
