// Package firstfollow computes FIRST and FOLLOW sets over a flat grammar
// via fixed-point iteration, the input the LR(0)/SLR construction needs
// for reduce-lookahead decisions.
package firstfollow

import (
	"fmt"
	"io"
	"sort"

	"github.com/shadowCow/lexparse-go/grammar"
)

// EndMarker is the end-of-input symbol added to FOLLOW(start symbol).
const EndMarker grammar.Symbol = "$"

// Sets holds both FIRST and FOLLOW for every symbol in a grammar.
type Sets struct {
	First  map[grammar.Symbol]map[grammar.Symbol]bool
	Follow map[grammar.Symbol]map[grammar.Symbol]bool
}

// IsNullable reports whether s can derive the empty string, represented
// by epsilon's membership in FIRST(s) rather than a separate nullable
// map.
func (s *Sets) IsNullable(sym grammar.Symbol) bool {
	return s.First[sym][grammar.Epsilon]
}

func newSymbolSet() map[grammar.Symbol]bool {
	return make(map[grammar.Symbol]bool)
}

func addAllExceptEpsilon(dst, src map[grammar.Symbol]bool) bool {
	changed := false
	for s := range src {
		if s == grammar.Epsilon {
			continue
		}
		if !dst[s] {
			dst[s] = true
			changed = true
		}
	}
	return changed
}

// firstOfSequence computes FIRST of a symbol sequence (a production body,
// or a suffix of one): union FIRST of each symbol until one is not
// nullable, epsilon included only if every symbol in the sequence is
// nullable (or the sequence is empty).
func firstOfSequence(first map[grammar.Symbol]map[grammar.Symbol]bool, seq []grammar.Symbol) map[grammar.Symbol]bool {
	result := newSymbolSet()
	allNullable := true
	for _, s := range seq {
		set := first[s]
		addAllExceptEpsilon(result, set)
		if !set[grammar.Epsilon] {
			allNullable = false
			break
		}
	}
	if allNullable {
		result[grammar.Epsilon] = true
	}
	return result
}

// ComputeFirstSets computes FIRST(X) for every symbol X via fixed-point
// iteration: terminals' FIRST is themselves; a non-terminal's FIRST
// accumulates FIRST of each production body's leading nullable prefix.
func ComputeFirstSets(g *grammar.Grammar) map[grammar.Symbol]map[grammar.Symbol]bool {
	first := make(map[grammar.Symbol]map[grammar.Symbol]bool)
	for t := range g.Terminals {
		first[t] = map[grammar.Symbol]bool{t: true}
	}
	for nt := range g.NonTerminals {
		first[nt] = newSymbolSet()
	}

	for {
		changed := false
		for _, p := range g.Productions {
			if len(p.Body) == 0 {
				if !first[p.Head][grammar.Epsilon] {
					first[p.Head][grammar.Epsilon] = true
					changed = true
				}
				continue
			}
			seqFirst := firstOfSequence(first, p.Body)
			if addAllExceptEpsilon(first[p.Head], seqFirst) {
				changed = true
			}
			if seqFirst[grammar.Epsilon] && !first[p.Head][grammar.Epsilon] {
				first[p.Head][grammar.Epsilon] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return first
}

// ComputeFollowSets computes FOLLOW(A) for every non-terminal A via the
// standard reverse-propagation ("trailer") technique: FOLLOW(start) always
// contains EndMarker; for a production A -> aBb, FOLLOW(B) gets FIRST(b)
// minus epsilon, and if b is nullable or empty, FOLLOW(B) also gets
// FOLLOW(A).
func ComputeFollowSets(g *grammar.Grammar, first map[grammar.Symbol]map[grammar.Symbol]bool) map[grammar.Symbol]map[grammar.Symbol]bool {
	follow := make(map[grammar.Symbol]map[grammar.Symbol]bool)
	for nt := range g.NonTerminals {
		follow[nt] = newSymbolSet()
	}
	follow[g.Start][EndMarker] = true

	for {
		changed := false
		for _, p := range g.Productions {
			for i, sym := range p.Body {
				if !g.NonTerminals[sym] {
					continue
				}
				trailer := p.Body[i+1:]
				trailerFirst := firstOfSequence(first, trailer)
				if addAllExceptEpsilon(follow[sym], trailerFirst) {
					changed = true
				}
				if trailerFirst[grammar.Epsilon] || len(trailer) == 0 {
					if addAllExceptEpsilon(follow[sym], follow[p.Head]) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return follow
}

// Compute runs both passes and returns them together.
func Compute(g *grammar.Grammar) *Sets {
	first := ComputeFirstSets(g)
	follow := ComputeFollowSets(g, first)
	return &Sets{First: first, Follow: follow}
}

func sortedSymbols(set map[grammar.Symbol]bool) []grammar.Symbol {
	syms := make([]grammar.Symbol, 0, len(set))
	for s := range set {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// FprintFirstSets writes one line per non-terminal: `FIRST(X) = { a, b, ... }`.
func FprintFirstSets(w io.Writer, g *grammar.Grammar, first map[grammar.Symbol]map[grammar.Symbol]bool) {
	nts := sortedSymbols(g.NonTerminals)
	for _, nt := range nts {
		fmt.Fprintf(w, "FIRST(%s) = { %s }\n", nt, joinSymbols(sortedSymbols(first[nt])))
	}
}

// FprintFollowSets writes one line per non-terminal: `FOLLOW(X) = { a, b, ... }`.
func FprintFollowSets(w io.Writer, g *grammar.Grammar, follow map[grammar.Symbol]map[grammar.Symbol]bool) {
	nts := sortedSymbols(g.NonTerminals)
	for _, nt := range nts {
		fmt.Fprintf(w, "FOLLOW(%s) = { %s }\n", nt, joinSymbols(sortedSymbols(follow[nt])))
	}
}

func joinSymbols(syms []grammar.Symbol) string {
	var out string
	for i, s := range syms {
		if i > 0 {
			out += ", "
		}
		out += string(s)
	}
	return out
}
