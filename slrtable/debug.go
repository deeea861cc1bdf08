package slrtable

import (
	"fmt"
	"io"
	"sort"

	"github.com/shadowCow/lexparse-go/grammar"
)

// Fprint writes the ACTION/GOTO table as one line per (state, symbol)
// cell, sorted for stable output.
func Fprint(w io.Writer, t *Table) {
	states := make([]int, 0, len(t.Action))
	for s := range t.Action {
		states = append(states, s)
	}
	sort.Ints(states)

	for _, s := range states {
		syms := make([]grammar.Symbol, 0, len(t.Action[s]))
		for sym := range t.Action[s] {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			fmt.Fprintf(w, "ACTION[%d, %s] = %s\n", s, sym, t.Action[s][sym])
		}
	}

	gstates := make([]int, 0, len(t.Goto))
	for s := range t.Goto {
		gstates = append(gstates, s)
	}
	sort.Ints(gstates)
	for _, s := range gstates {
		syms := make([]grammar.Symbol, 0, len(t.Goto[s]))
		for sym := range t.Goto[s] {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			fmt.Fprintf(w, "GOTO[%d, %s] = %d\n", s, sym, t.Goto[s][sym])
		}
	}
}
