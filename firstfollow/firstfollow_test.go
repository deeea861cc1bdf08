package firstfollow

import (
	"testing"

	"github.com/shadowCow/lexparse-go/grammar"
)

func arithmeticGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	src := `
E ::= E + T | T
T ::= T * F | F
F ::= ( E ) | id
`
	g, err := grammar.GrammarFromText(src)
	if err != nil {
		t.Fatalf("GrammarFromText error: %v", err)
	}
	return g
}

func hasSymbol(set map[grammar.Symbol]bool, sym grammar.Symbol) bool {
	return set[sym]
}

func TestComputeFirstSetsArithmetic(t *testing.T) {
	g := arithmeticGrammar(t)
	first := ComputeFirstSets(g)

	for _, nt := range []grammar.Symbol{"E", "T", "F"} {
		if !hasSymbol(first[nt], "(") || !hasSymbol(first[nt], "id") {
			t.Errorf("FIRST(%s) = %v, want to contain '(' and 'id'", nt, first[nt])
		}
	}
}

func TestComputeFollowSetsArithmetic(t *testing.T) {
	g := arithmeticGrammar(t)
	first := ComputeFirstSets(g)
	follow := ComputeFollowSets(g, first)

	if !hasSymbol(follow["E"], "$") || !hasSymbol(follow["E"], "+") || !hasSymbol(follow["E"], ")") {
		t.Errorf("FOLLOW(E) = %v, want to contain '$', '+', ')'", follow["E"])
	}
	if !hasSymbol(follow["T"], "+") || !hasSymbol(follow["T"], "*") || !hasSymbol(follow["T"], "$") {
		t.Errorf("FOLLOW(T) = %v, want to contain '+', '*', '$'", follow["T"])
	}
	if !hasSymbol(follow["F"], "*") || !hasSymbol(follow["F"], "+") {
		t.Errorf("FOLLOW(F) = %v, want to contain '*', '+'", follow["F"])
	}
}

func TestNullableEpsilonProduction(t *testing.T) {
	src := `
S ::= a S | &
`
	g, err := grammar.GrammarFromText(src)
	if err != nil {
		t.Fatalf("GrammarFromText error: %v", err)
	}
	sets := Compute(g)
	if !sets.IsNullable("S") {
		t.Error("expected S to be nullable")
	}
}
