package regex

import "testing"

func kindsOf(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func equalKinds(a, b []TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestToPostfixSimpleConcat(t *testing.T) {
	tokens, err := Preprocess("ab")
	if err != nil {
		t.Fatalf("Preprocess error: %v", err)
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		t.Fatalf("ToPostfix error: %v", err)
	}
	want := []TokenKind{Literal, Literal, Concat}
	if got := kindsOf(postfix); !equalKinds(got, want) {
		t.Errorf("ToPostfix(\"ab\") = %v, want %v", got, want)
	}
}

func TestToPostfixUnionLowerPrecedenceThanConcat(t *testing.T) {
	tokens, err := Preprocess("ab|c")
	if err != nil {
		t.Fatalf("Preprocess error: %v", err)
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		t.Fatalf("ToPostfix error: %v", err)
	}
	// ab|c => (a.b)|c => a b . c |
	want := []TokenKind{Literal, Literal, Concat, Literal, Union}
	if got := kindsOf(postfix); !equalKinds(got, want) {
		t.Errorf("ToPostfix(\"ab|c\") = %v, want %v", got, want)
	}
}

func TestToPostfixGrouping(t *testing.T) {
	tokens, err := Preprocess("(a|b)c")
	if err != nil {
		t.Fatalf("Preprocess error: %v", err)
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		t.Fatalf("ToPostfix error: %v", err)
	}
	// (a|b)c => a b | c .
	want := []TokenKind{Literal, Literal, Union, Literal, Concat}
	if got := kindsOf(postfix); !equalKinds(got, want) {
		t.Errorf("ToPostfix(\"(a|b)c\") = %v, want %v", got, want)
	}
}

func TestToPostfixStarBindsTighterThanConcat(t *testing.T) {
	tokens, err := Preprocess("a*b")
	if err != nil {
		t.Fatalf("Preprocess error: %v", err)
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		t.Fatalf("ToPostfix error: %v", err)
	}
	// a*b => a* . b => a * b .
	want := []TokenKind{Literal, Star, Literal, Concat}
	if got := kindsOf(postfix); !equalKinds(got, want) {
		t.Errorf("ToPostfix(\"a*b\") = %v, want %v", got, want)
	}
}

func TestToPostfixUnmatchedCloseParen(t *testing.T) {
	tokens := []Token{{Kind: Literal, Text: "a"}, {Kind: RParen}}
	_, err := ToPostfix(tokens)
	if _, ok := err.(*UnbalancedParenError); !ok {
		t.Fatalf("expected *UnbalancedParenError, got %v", err)
	}
}

func TestToPostfixUnmatchedOpenParen(t *testing.T) {
	tokens := []Token{{Kind: LParen}, {Kind: Literal, Text: "a"}}
	_, err := ToPostfix(tokens)
	if _, ok := err.(*UnbalancedParenError); !ok {
		t.Fatalf("expected *UnbalancedParenError, got %v", err)
	}
}

func TestToPostfixClassicExample(t *testing.T) {
	// (a|b)*abb, the canonical dragon-book example.
	tokens, err := Preprocess("(a|b)*abb")
	if err != nil {
		t.Fatalf("Preprocess error: %v", err)
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		t.Fatalf("ToPostfix error: %v", err)
	}
	want := []TokenKind{
		Literal, Literal, Union, Star,
		Literal, Concat,
		Literal, Concat,
		Literal, Concat,
	}
	if got := kindsOf(postfix); !equalKinds(got, want) {
		t.Errorf("ToPostfix(\"(a|b)*abb\") = %v, want %v", got, want)
	}
}
