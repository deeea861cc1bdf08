package lexicaldef

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBasic(t *testing.T) {
	src := `
# comment line

ID: [a-z]([a-z]|[0-9])*
NUM: [0-9]+
WS: ( |\t|\n)+ %ignore
IF: if
`
	def, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, def.Patterns, 3)
	assert.Equal(t, "ID", def.Patterns[0].Name)
	assert.Equal(t, "NUM", def.Patterns[1].Name)
	assert.Equal(t, "WS", def.Patterns[2].Name)
	assert.True(t, def.Patterns[2].Ignore)

	assert.Equal(t, "IF", def.Reserved["if"])
}

func TestLoadDuplicateNameOverwrites(t *testing.T) {
	src := `
A: a
A: b
`
	def, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, def.Patterns, 1)
	assert.Equal(t, "b", def.Patterns[0].Pattern)
}

func TestLoadMalformedLineSkipped(t *testing.T) {
	src := `
this line has no colon
ID: [a-z]+
`
	def, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, def.Patterns, 1)
	assert.Equal(t, "ID", def.Patterns[0].Name)
}

func TestCompileAndScan(t *testing.T) {
	src := `
ID: [a-z]([a-z]|[0-9])*
NUM: [0-9]+
WS: ( |\t|\n)+ %ignore
IF: if
`
	def, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	sc, err := def.Compile("ID", "NUM")
	require.NoError(t, err)

	tokens, _ := sc.Tokenize("if x1 42")
	var kinds []string
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []string{"IF", "ID", "NUM"}, kinds)
}
