package slrtable

import (
	"testing"

	"github.com/shadowCow/lexparse-go/firstfollow"
	"github.com/shadowCow/lexparse-go/grammar"
	"github.com/shadowCow/lexparse-go/lr0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arithmeticGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	src := `
E ::= E + T | T
T ::= T * F | F
F ::= ( E ) | id
`
	g, err := grammar.GrammarFromText(src)
	require.NoError(t, err)
	return g
}

func TestBuildTableArithmeticHasNoConflicts(t *testing.T) {
	g := arithmeticGrammar(t)
	collection := lr0.Build(g)
	sets := firstfollow.Compute(g)

	table, err := BuildTable(g, collection, sets.Follow)
	require.NoError(t, err)
	assert.NotEmpty(t, table.Action)
	assert.NotEmpty(t, table.Goto)
}

func TestBuildTableDetectsShiftReduceConflict(t *testing.T) {
	// The classic dangling-else grammar is not SLR(1).
	src := `
S ::= if E then S | if E then S else S | other
E ::= id
`
	g, err := grammar.GrammarFromText(src)
	require.NoError(t, err)

	collection := lr0.Build(g)
	sets := firstfollow.Compute(g)

	_, err = BuildTable(g, collection, sets.Follow)
	require.Error(t, err)
	conflictErr, ok := err.(*ConflictError)
	require.True(t, ok)
	assert.NotEmpty(t, conflictErr.Conflicts)
}
