// Package parsetree defines the concrete parse tree nodes the
// shift-reduce driver builds as it reduces: a leaf per shifted terminal, an
// interior node per completed production, each carrying enough to render
// the tree as the CLI's final output.
package parsetree

import (
	"fmt"
	"io"

	"github.com/shadowCow/lexparse-go/grammar"
)

// Tree is the marker interface every parse tree node implements.
type Tree interface {
	NodeType() string
}

// Terminal is a leaf built from one shifted token.
type Terminal struct {
	Symbol    grammar.Symbol
	Lexeme    string
	Attribute string
}

func (Terminal) NodeType() string { return "terminal" }

// NonTerminal is an interior node built when a production is reduced; its
// Children are in left-to-right production-body order (empty for an
// epsilon production).
type NonTerminal struct {
	Symbol     grammar.Symbol
	Production int
	Children   []Tree
}

func (NonTerminal) NodeType() string { return "nonterminal" }

// Fprint writes an indented rendering of tree.
func Fprint(w io.Writer, tree Tree) {
	fprint(w, tree, 0)
}

func fprint(w io.Writer, tree Tree, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	switch n := tree.(type) {
	case *Terminal:
		if n.Attribute != "" {
			fmt.Fprintf(w, "%s%s(%q, %s)\n", indent, n.Symbol, n.Lexeme, n.Attribute)
		} else {
			fmt.Fprintf(w, "%s%s(%q)\n", indent, n.Symbol, n.Lexeme)
		}
	case *NonTerminal:
		fmt.Fprintf(w, "%s%s\n", indent, n.Symbol)
		for _, c := range n.Children {
			fprint(w, c, depth+1)
		}
	}
}
