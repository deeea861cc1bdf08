// Package slrtable builds the SLR(1) ACTION/GOTO tables from a grammar's
// LR(0) canonical collection and FOLLOW sets, detecting shift/reduce,
// reduce/reduce and accept conflicts along the way.
package slrtable

import (
	"fmt"
	"sort"

	"github.com/shadowCow/lexparse-go/firstfollow"
	"github.com/shadowCow/lexparse-go/grammar"
	"github.com/shadowCow/lexparse-go/lr0"
)

// ActionKind distinguishes the three kinds of ACTION-table entries.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Accept
)

// Action is one ACTION-table cell: a shift to a state, a reduce by a
// production, or accept.
type Action struct {
	Kind       ActionKind
	Target     int // state to shift to
	Production int // production number to reduce by
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.Target)
	case Reduce:
		return fmt.Sprintf("reduce %d", a.Production)
	case Accept:
		return "accept"
	default:
		return "?"
	}
}

// Table is the full SLR(1) parse table: ACTION indexed by (state,
// terminal), GOTO indexed by (state, non-terminal).
type Table struct {
	Action map[int]map[grammar.Symbol]Action
	Goto   map[int]map[grammar.Symbol]int
}

// Conflict records one ACTION-table cell where two different actions were
// both applicable.
type Conflict struct {
	State    int
	Symbol   grammar.Symbol
	Existing Action
	New      Action
	Reason   string
}

func (c Conflict) Error() string {
	return fmt.Sprintf("conflict in state %d on %q: existing action %s, new action %s (%s)",
		c.State, c.Symbol, c.Existing, c.New, c.Reason)
}

// ConflictError aggregates every conflict found while building a table; a
// grammar with any conflict is not SLR(1).
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("grammar is not SLR(1): %d conflict(s)", len(e.Conflicts))
	for _, c := range e.Conflicts {
		msg += "\n  " + c.Error()
	}
	return msg
}

type builder struct {
	g          *grammar.Grammar
	c          *lr0.Collection
	follow     map[grammar.Symbol]map[grammar.Symbol]bool
	table      *Table
	conflicts  []Conflict
}

func (b *builder) setAction(state int, sym grammar.Symbol, action Action, reason string) {
	if b.table.Action[state] == nil {
		b.table.Action[state] = make(map[grammar.Symbol]Action)
	}
	if existing, ok := b.table.Action[state][sym]; ok && existing != action {
		b.conflicts = append(b.conflicts, Conflict{
			State: state, Symbol: sym, Existing: existing, New: action, Reason: reason,
		})
		return
	}
	b.table.Action[state][sym] = action
}

// BuildTable constructs the SLR(1) ACTION/GOTO tables. Reduce items place
// a Reduce action at every terminal in FOLLOW(head); the augmented
// production's reduce item instead places Accept at the end-marker. Shift
// items place a Shift action per the collection's transition on that
// terminal. Non-terminal transitions become GOTO entries directly (GOTO
// conflicts cannot occur: a deterministic automaton has at most one
// transition per symbol per state). Every conflict is collected instead
// of stopping at the first.
func BuildTable(g *grammar.Grammar, c *lr0.Collection, follow map[grammar.Symbol]map[grammar.Symbol]bool) (*Table, error) {
	b := &builder{
		g:      g,
		c:      c,
		follow: follow,
		table: &Table{
			Action: make(map[int]map[grammar.Symbol]Action),
			Goto:   make(map[int]map[grammar.Symbol]int),
		},
	}

	for i, state := range c.States {
		items := make([]lr0.Item, 0, len(state))
		for it := range state {
			items = append(items, it)
		}
		sort.Slice(items, func(a, bb int) bool {
			if items[a].ProdNumber != items[bb].ProdNumber {
				return items[a].ProdNumber < items[bb].ProdNumber
			}
			return items[a].Dot < items[bb].Dot
		})

		for _, it := range items {
			if lr0.IsReduceItem(g, it) {
				prod := g.Productions[it.ProdNumber]
				if it.ProdNumber == 0 {
					b.setAction(i, firstfollow.EndMarker, Action{Kind: Accept}, "accept vs existing action")
					continue
				}
				for term := range follow[prod.Head] {
					b.setAction(i, term, Action{Kind: Reduce, Production: it.ProdNumber}, "shift/reduce or reduce/reduce")
				}
				continue
			}

			sym, _ := lr0.NextSymbol(g, it)
			target, ok := c.Transitions[i][sym]
			if !ok {
				continue
			}
			if g.Terminals[sym] {
				b.setAction(i, sym, Action{Kind: Shift, Target: target}, "shift/reduce")
			} else {
				if b.table.Goto[i] == nil {
					b.table.Goto[i] = make(map[grammar.Symbol]int)
				}
				b.table.Goto[i][sym] = target
			}
		}
	}

	if len(b.conflicts) > 0 {
		return b.table, &ConflictError{Conflicts: b.conflicts}
	}
	return b.table, nil
}
