package lr0

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

func TestClosureIncludesAugmentedStart(t *testing.T) {
	g := arithmeticGrammar(t)
	closure := Closure(g, ItemSet{Item{ProdNumber: 0, Dot: 0}: true})

	if !closure[Item{ProdNumber: 0, Dot: 0}] {
		t.Error("expected closure to retain seed item")
	}
	// closure should also pull in every E, T, F production with dot at 0
	var foundE, foundT, foundF bool
	for it := range closure {
		p := g.Productions[it.ProdNumber]
		if it.Dot != 0 {
			continue
		}
		switch p.Head {
		case "E":
			foundE = true
		case "T":
			foundT = true
		case "F":
			foundF = true
		}
	}
	if !foundE || !foundT || !foundF {
		t.Errorf("expected closure to include E, T, F productions at dot 0: E=%v T=%v F=%v", foundE, foundT, foundF)
	}
}

func TestGotoAdvancesDot(t *testing.T) {
	g := arithmeticGrammar(t)
	start := Closure(g, ItemSet{Item{ProdNumber: 0, Dot: 0}: true})

	onID := Goto(g, start, "id")
	if len(onID) == 0 {
		t.Fatal("expected goto(start, \"id\") to be non-empty")
	}
	// F ::= id . should be in the result (a completed F production)
	var found bool
	for it := range onID {
		p := g.Productions[it.ProdNumber]
		if p.Head == "F" && it.Dot == len(p.Body) {
			found = true
		}
	}
	if !found {
		t.Error("expected goto(start, \"id\") to contain the completed F ::= id item")
	}
}

func TestBuildCanonicalCollectionIsDeterministic(t *testing.T) {
	g := arithmeticGrammar(t)
	c1 := Build(g)
	c2 := Build(g)

	if len(c1.States) != len(c2.States) {
		t.Fatalf("non-deterministic state count: %d vs %d", len(c1.States), len(c2.States))
	}
	for i := range c1.States {
		if len(c1.States[i]) != len(c2.States[i]) {
			t.Errorf("state %d differs in size between runs", i)
		}
	}
}

func TestBuildCanonicalCollectionHasExpectedStateCount(t *testing.T) {
	// The textbook SLR collection for this grammar has 12 states.
	g := arithmeticGrammar(t)
	c := Build(g)
	if len(c.States) != 12 {
		t.Errorf("expected 12 states in the canonical collection, got %d", len(c.States))
	}
}
