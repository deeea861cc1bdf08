// Package parsedriver runs the shift-reduce algorithm over an SLR(1) table,
// producing both a parse tree and a structured step-by-step trace.
package parsedriver

import (
	"fmt"

	"github.com/shadowCow/lexparse-go/firstfollow"
	"github.com/shadowCow/lexparse-go/grammar"
	"github.com/shadowCow/lexparse-go/parsetree"
	"github.com/shadowCow/lexparse-go/slrtable"
)

// InputToken is one token fed to the driver: its grammar terminal symbol,
// plus the surface lexeme/attribute to carry into the parse tree leaf.
type InputToken struct {
	Symbol    grammar.Symbol
	Lexeme    string
	Attribute string
}

// Step is one recorded shift/reduce/accept action in the parse trace.
type Step struct {
	Stack          []string
	RemainingInput []string
	Action         string
}

// ParseError reports a stuck parser: no ACTION-table entry for the current
// state and lookahead, or no GOTO-table entry after a reduce (Lookahead then
// holds the reduced non-terminal).
type ParseError struct {
	State     int
	Lookahead grammar.Symbol
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error: no action for state %d on lookahead %q", e.State, e.Lookahead)
}

type stackEntry struct {
	State  int
	Symbol grammar.Symbol
	Node   parsetree.Tree
}

// Driver runs the shift-reduce parser over a fixed SLR(1) table.
type Driver struct {
	Table   *slrtable.Table
	Grammar *grammar.Grammar
}

// New returns a Driver for the given table and grammar.
func New(table *slrtable.Table, g *grammar.Grammar) *Driver {
	return &Driver{Table: table, Grammar: g}
}

func remainingSymbols(tokens []InputToken, pos int) []string {
	out := make([]string, 0, len(tokens)-pos+1)
	for _, tok := range tokens[pos:] {
		out = append(out, string(tok.Symbol))
	}
	out = append(out, string(firstfollow.EndMarker))
	return out
}

func stackSymbols(stack []stackEntry) []string {
	out := make([]string, 0, len(stack))
	for _, e := range stack {
		if e.Symbol == "" {
			out = append(out, fmt.Sprintf("%d", e.State))
			continue
		}
		out = append(out, fmt.Sprintf("%s:%d", e.Symbol, e.State))
	}
	return out
}

// Parse drives the shift-reduce algorithm to completion (or failure),
// returning the resulting parse tree root and the full step trace. An
// empty production (prod.Body has zero symbols) pops nothing from the
// stack on reduce, since there is nothing on the stack representing it;
// every other reduce pops len(body) stack entries, one per symbol in the
// production body.
func (d *Driver) Parse(tokens []InputToken) (parsetree.Tree, []Step, error) {
	stack := []stackEntry{{State: 0}}
	pos := 0
	var steps []Step

	lookaheadAt := func(pos int) grammar.Symbol {
		if pos < len(tokens) {
			return tokens[pos].Symbol
		}
		return firstfollow.EndMarker
	}

	for {
		state := stack[len(stack)-1].State
		lookahead := lookaheadAt(pos)

		action, ok := d.Table.Action[state][lookahead]
		if !ok {
			return nil, steps, &ParseError{State: state, Lookahead: lookahead}
		}

		switch action.Kind {
		case slrtable.Shift:
			tok := tokens[pos]
			node := &parsetree.Terminal{Symbol: tok.Symbol, Lexeme: tok.Lexeme, Attribute: tok.Attribute}
			steps = append(steps, Step{
				Stack:          stackSymbols(stack),
				RemainingInput: remainingSymbols(tokens, pos),
				Action:         fmt.Sprintf("shift %d", action.Target),
			})
			stack = append(stack, stackEntry{State: action.Target, Symbol: tok.Symbol, Node: node})
			pos++

		case slrtable.Reduce:
			prod := d.Grammar.Productions[action.Production]
			steps = append(steps, Step{
				Stack:          stackSymbols(stack),
				RemainingInput: remainingSymbols(tokens, pos),
				Action:         fmt.Sprintf("reduce by %s", prod),
			})

			var children []parsetree.Tree
			if len(prod.Body) > 0 {
				children = make([]parsetree.Tree, len(prod.Body))
				for i := 0; i < len(prod.Body); i++ {
					children[i] = stack[len(stack)-len(prod.Body)+i].Node
				}
				stack = stack[:len(stack)-len(prod.Body)]
			}

			topState := stack[len(stack)-1].State
			gotoState, ok := d.Table.Goto[topState][prod.Head]
			if !ok {
				return nil, steps, &ParseError{State: topState, Lookahead: prod.Head}
			}
			node := &parsetree.NonTerminal{Symbol: prod.Head, Production: prod.Number, Children: children}
			stack = append(stack, stackEntry{State: gotoState, Symbol: prod.Head, Node: node})

		case slrtable.Accept:
			steps = append(steps, Step{
				Stack:          stackSymbols(stack),
				RemainingInput: remainingSymbols(tokens, pos),
				Action:         "accept",
			})
			return stack[len(stack)-1].Node, steps, nil
		}
	}
}
