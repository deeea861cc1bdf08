package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarFromTextArithmetic(t *testing.T) {
	src := `
E ::= E + T | T
T ::= T * F | F
F ::= ( E ) | id
`
	g, err := GrammarFromText(src)
	require.NoError(t, err)

	assert.Equal(t, Symbol("E"), g.OrigStart)
	assert.Equal(t, Symbol("E'"), g.Start)

	// production 0 is the augmented start rule
	assert.Equal(t, Production{Head: "E'", Body: []Symbol{"E"}, Number: 0}, g.Productions[0])

	// 6 user productions + 1 augmented = 7
	assert.Len(t, g.Productions, 7)

	assert.True(t, g.NonTerminals["E"])
	assert.True(t, g.NonTerminals["T"])
	assert.True(t, g.NonTerminals["F"])
	assert.True(t, g.Terminals["+"])
	assert.True(t, g.Terminals["*"])
	assert.True(t, g.Terminals["("])
	assert.True(t, g.Terminals[")"])
	assert.True(t, g.Terminals["id"])
}

func TestGrammarFromTextEpsilonProduction(t *testing.T) {
	src := `
S ::= a S | &
`
	g, err := GrammarFromText(src)
	require.NoError(t, err)

	var foundEmpty bool
	for _, p := range g.Productions {
		if p.Head == "S" && len(p.Body) == 0 {
			foundEmpty = true
		}
	}
	assert.True(t, foundEmpty, "expected an empty-body production for S ::= &")
}

func TestGrammarFromTextMissingSeparator(t *testing.T) {
	src := "S -> a\n"
	_, err := GrammarFromText(src)
	require.Error(t, err)
	_, ok := err.(*GrammarError)
	assert.True(t, ok)
}

func TestGrammarFromTextCommentsAndBlankLines(t *testing.T) {
	src := `
// a comment
# another comment

S ::= a // trailing comment
`
	g, err := GrammarFromText(src)
	require.NoError(t, err)
	require.Len(t, g.Productions, 2) // augmented + S ::= a
	assert.Equal(t, []Symbol{"a"}, g.Productions[1].Body)
}

func TestGrammarFromTextAugmentedSymbolUniquified(t *testing.T) {
	src := `
S ::= a
S' ::= b
`
	g, err := GrammarFromText(src)
	require.NoError(t, err)
	assert.Equal(t, Symbol("S''"), g.Start)
}
