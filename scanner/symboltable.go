package scanner

import (
	"fmt"
	"strings"
)

type symbolEntry struct {
	Lexeme string
	Kind   string
}

// SymbolTable records the identifiers encountered during scanning,
// in first-seen order, and maps each back to its index so repeated
// occurrences of the same lexeme share one entry.
type SymbolTable struct {
	entries []symbolEntry
	index   map[string]int
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]int)}
}

// AddSymbol inserts lexeme if not already present and returns its index.
func (st *SymbolTable) AddSymbol(lexeme, kind string) int {
	if idx, ok := st.index[lexeme]; ok {
		return idx
	}
	idx := len(st.entries)
	st.entries = append(st.entries, symbolEntry{Lexeme: lexeme, Kind: kind})
	st.index[lexeme] = idx
	return idx
}

// Index returns the index of lexeme and whether it is present.
func (st *SymbolTable) Index(lexeme string) (int, bool) {
	idx, ok := st.index[lexeme]
	return idx, ok
}

// Len returns the number of distinct symbols recorded.
func (st *SymbolTable) Len() int {
	return len(st.entries)
}

// String renders a fixed-width index/lexeme/kind table.
func (st *SymbolTable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-20s %s\n", "Index", "Lexeme", "Kind")
	for i, e := range st.entries {
		fmt.Fprintf(&b, "%-6d %-20s %s\n", i, e.Lexeme, e.Kind)
	}
	return b.String()
}
