package lr0

import (
	"fmt"
	"io"
	"sort"

	"github.com/shadowCow/lexparse-go/grammar"
)

// Collection is the canonical collection of LR(0) states: one item set per
// state plus the goto transitions between them.
type Collection struct {
	States      []ItemSet
	Transitions []map[grammar.Symbol]int // Transitions[i][sym] = target state index
}

func allSymbols(g *grammar.Grammar) []grammar.Symbol {
	seen := make(map[grammar.Symbol]bool)
	var syms []grammar.Symbol
	for nt := range g.NonTerminals {
		if !seen[nt] {
			seen[nt] = true
			syms = append(syms, nt)
		}
	}
	for t := range g.Terminals {
		if !seen[t] {
			seen[t] = true
			syms = append(syms, t)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// Build constructs the canonical collection via worklist BFS starting from
// the closure of the augmented start item {Start ::= . Program}, iterating
// candidate symbols in sorted order at each state so state numbering is
// deterministic across runs.
func Build(g *grammar.Grammar) *Collection {
	symbols := allSymbols(g)

	start := Closure(g, ItemSet{Item{ProdNumber: 0, Dot: 0}: true})
	c := &Collection{
		States:      []ItemSet{start},
		Transitions: []map[grammar.Symbol]int{make(map[grammar.Symbol]int)},
	}
	indexOf := map[string]int{start.key(): 0}

	worklist := []int{0}
	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]

		for _, sym := range symbols {
			target := Goto(g, c.States[i], sym)
			if len(target) == 0 {
				continue
			}
			key := target.key()
			j, exists := indexOf[key]
			if !exists {
				j = len(c.States)
				c.States = append(c.States, target)
				c.Transitions = append(c.Transitions, make(map[grammar.Symbol]int))
				indexOf[key] = j
				worklist = append(worklist, j)
			}
			c.Transitions[i][sym] = j
		}
	}

	return c
}

// Fprint writes every state's items and outgoing transitions.
func Fprint(w io.Writer, g *grammar.Grammar, c *Collection) {
	for i, state := range c.States {
		fmt.Fprintf(w, "State %d:\n", i)
		items := make([]Item, 0, len(state))
		for it := range state {
			items = append(items, it)
		}
		sort.Slice(items, func(a, b int) bool {
			if items[a].ProdNumber != items[b].ProdNumber {
				return items[a].ProdNumber < items[b].ProdNumber
			}
			return items[a].Dot < items[b].Dot
		})
		for _, it := range items {
			fmt.Fprintf(w, "  %s\n", String(g, it))
		}
		syms := make([]grammar.Symbol, 0, len(c.Transitions[i]))
		for sym := range c.Transitions[i] {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(a, b int) bool { return syms[a] < syms[b] })
		for _, sym := range syms {
			fmt.Fprintf(w, "  on %s -> %d\n", sym, c.Transitions[i][sym])
		}
	}
}
