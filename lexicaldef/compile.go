package lexicaldef

import (
	"fmt"

	"github.com/shadowCow/lexparse-go/automata"
	"github.com/shadowCow/lexparse-go/scanner"
)

// buildNFAs runs automata.BuildPatternNFA over the definition's ordered
// pattern list, with declaration index as priority.
func (d *LexicalDef) buildNFAs() ([]*automata.NFA, error) {
	nfas := make([]*automata.NFA, 0, len(d.Patterns))
	for i, p := range d.Patterns {
		n, err := automata.BuildPatternNFA(p.Pattern, p.Name, i)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.Name, err)
		}
		nfas = append(nfas, n)
	}
	return nfas, nil
}

// Compile builds a minimized DFA from the definition's ordered pattern
// list via Thompson construction, NFA combination and subset construction
// plus Hopcroft minimization (components C, E, F, G), then wraps it in a
// Scanner configured with the ignore set and reserved-word table.
// idKind/numKind name the patterns (by convention "ID"/"NUM") that get
// symbol-table-index and literal-value attributes respectively.
func (d *LexicalDef) Compile(idKind, numKind string) (*scanner.Scanner, error) {
	if len(d.Patterns) == 0 {
		return nil, fmt.Errorf("lexicaldef: no patterns declared")
	}

	nfas, err := d.buildNFAs()
	if err != nil {
		return nil, err
	}

	combined := automata.Combine(nfas)
	dfa := automata.Minimize(automata.SubsetConstruct(combined))

	return scanner.New(dfa, d.IgnoreSet(), d.Reserved, idKind, numKind), nil
}

// CompileDFAOnly builds just the minimized DFA, for callers (such as the
// CLI's -dfa-out flag) that need to persist it via dfaio instead of
// driving a scanner immediately.
func (d *LexicalDef) CompileDFAOnly() (*automata.DFA, error) {
	nfas, err := d.buildNFAs()
	if err != nil {
		return nil, err
	}
	combined := automata.Combine(nfas)
	return automata.Minimize(automata.SubsetConstruct(combined)), nil
}
