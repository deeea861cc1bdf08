package parsedriver

import (
	"testing"

	"github.com/shadowCow/lexparse-go/firstfollow"
	"github.com/shadowCow/lexparse-go/grammar"
	"github.com/shadowCow/lexparse-go/lr0"
	"github.com/shadowCow/lexparse-go/parsetree"
	"github.com/shadowCow/lexparse-go/slrtable"
	"github.com/stretchr/testify/require"
)

func buildArithmeticDriver(t *testing.T) *Driver {
	t.Helper()
	src := `
E ::= E + T | T
T ::= T * F | F
F ::= ( E ) | id
`
	g, err := grammar.GrammarFromText(src)
	require.NoError(t, err)

	collection := lr0.Build(g)
	sets := firstfollow.Compute(g)
	table, err := slrtable.BuildTable(g, collection, sets.Follow)
	require.NoError(t, err)

	return New(table, g)
}

func TestParseAcceptsIDPlusIDTimesID(t *testing.T) {
	d := buildArithmeticDriver(t)
	tokens := []InputToken{
		{Symbol: "id", Lexeme: "a"},
		{Symbol: "+", Lexeme: "+"},
		{Symbol: "id", Lexeme: "b"},
		{Symbol: "*", Lexeme: "*"},
		{Symbol: "id", Lexeme: "c"},
	}

	tree, steps, err := d.Parse(tokens)
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	root, ok := tree.(*parsetree.NonTerminal)
	require.True(t, ok)
	require.Equal(t, grammar.Symbol("E"), root.Symbol)

	lastStep := steps[len(steps)-1]
	require.Equal(t, "accept", lastStep.Action)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	d := buildArithmeticDriver(t)
	tokens := []InputToken{
		{Symbol: "id", Lexeme: "a"},
		{Symbol: "+", Lexeme: "+"},
		{Symbol: "+", Lexeme: "+"},
	}

	_, _, err := d.Parse(tokens)
	require.Error(t, err)
	_, ok := err.(*ParseError)
	require.True(t, ok)
}

func TestParseParenthesizedExpression(t *testing.T) {
	d := buildArithmeticDriver(t)
	tokens := []InputToken{
		{Symbol: "(", Lexeme: "("},
		{Symbol: "id", Lexeme: "a"},
		{Symbol: "+", Lexeme: "+"},
		{Symbol: "id", Lexeme: "b"},
		{Symbol: ")", Lexeme: ")"},
	}

	tree, _, err := d.Parse(tokens)
	require.NoError(t, err)

	root, ok := tree.(*parsetree.NonTerminal)
	require.True(t, ok)
	require.Equal(t, grammar.Symbol("E"), root.Symbol)
	require.Len(t, root.Children, 1)
}
