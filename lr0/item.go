// Package lr0 builds the canonical collection of LR(0) item sets a grammar
// induces: closure, goto, and the resulting state/transition graph the SLR
// table builder turns into ACTION/GOTO entries.
package lr0

import (
	"fmt"
	"sort"

	"github.com/shadowCow/lexparse-go/grammar"
)

// Item is an LR(0) item: a production (identified by its number, since
// grammar.Production's slice body isn't itself a valid map key) with a
// dot position marking how much of the body has been matched so far.
type Item struct {
	ProdNumber int
	Dot        int
}

// NextSymbol returns the symbol immediately after the dot, or false if the
// dot is at the end of the body (the item is a "reduce item").
func NextSymbol(g *grammar.Grammar, it Item) (grammar.Symbol, bool) {
	body := g.Productions[it.ProdNumber].Body
	if it.Dot >= len(body) {
		return "", false
	}
	return body[it.Dot], true
}

// IsReduceItem reports whether the dot has reached the end of the body.
func IsReduceItem(g *grammar.Grammar, it Item) bool {
	_, ok := NextSymbol(g, it)
	return !ok
}

// Advance returns the item with its dot moved one position to the right.
func Advance(it Item) Item {
	return Item{ProdNumber: it.ProdNumber, Dot: it.Dot + 1}
}

// String renders an item as `Head ::= X Y . Z`.
func String(g *grammar.Grammar, it Item) string {
	p := g.Productions[it.ProdNumber]
	s := fmt.Sprintf("%s ::= ", p.Head)
	for i, sym := range p.Body {
		if i == it.Dot {
			s += ". "
		}
		s += string(sym) + " "
	}
	if it.Dot == len(p.Body) {
		s += "."
	}
	return s
}

// ItemSet is a set of LR(0) items, canonicalized for use as a map key by
// its sorted (ProdNumber, Dot) pairs.
type ItemSet map[Item]bool

func (s ItemSet) key() string {
	items := make([]Item, 0, len(s))
	for it := range s {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ProdNumber != items[j].ProdNumber {
			return items[i].ProdNumber < items[j].ProdNumber
		}
		return items[i].Dot < items[j].Dot
	})
	var b []byte
	for _, it := range items {
		b = append(b, fmt.Sprintf("%d.%d,", it.ProdNumber, it.Dot)...)
	}
	return string(b)
}

// Closure computes the closure of a seed item set: repeatedly, for every
// item with the dot before non-terminal B, add every production B -> ...
// with the dot at position 0, until no new items are added.
func Closure(g *grammar.Grammar, seed ItemSet) ItemSet {
	closure := make(ItemSet, len(seed))
	for it := range seed {
		closure[it] = true
	}

	for {
		added := false
		for it := range closure {
			sym, ok := NextSymbol(g, it)
			if !ok || !g.NonTerminals[sym] {
				continue
			}
			for _, p := range g.Productions {
				if p.Head != sym {
					continue
				}
				newItem := Item{ProdNumber: p.Number, Dot: 0}
				if !closure[newItem] {
					closure[newItem] = true
					added = true
				}
			}
		}
		if !added {
			break
		}
	}

	return closure
}

// Goto computes goto(items, sym): advance the dot past sym in every item
// of items that has sym next, then close the result.
func Goto(g *grammar.Grammar, items ItemSet, sym grammar.Symbol) ItemSet {
	seed := make(ItemSet)
	for it := range items {
		next, ok := NextSymbol(g, it)
		if ok && next == sym {
			seed[Advance(it)] = true
		}
	}
	if len(seed) == 0 {
		return nil
	}
	return Closure(g, seed)
}
