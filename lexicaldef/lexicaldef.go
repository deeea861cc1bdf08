// Package lexicaldef parses the regex-definition file format
// (`NAME: regex [%ignore]` per line) into an ordered pattern list plus a
// reserved-word table, and wires the result into a compiled scanner.
package lexicaldef

import (
	"bufio"
	"io"
	"strings"

	"github.com/projectdiscovery/gologger"
)

// Definition is one declared pattern: a name, its regex text, and whether
// it was marked `%ignore`.
type Definition struct {
	Name    string
	Pattern string
	Ignore  bool
}

// LexicalDef is the result of loading a regex-definition file: the ordered
// pattern list that gets compiled into one DFA (declaration order is
// priority order), plus the reserved-word table extracted from
// definitions whose name is the upper-cased form of a plain keyword
// pattern (e.g. `IF: if`), which are reclassified from the identifier
// pattern after matching rather than compiled as their own DFA branch.
type LexicalDef struct {
	Patterns []Definition
	Reserved map[string]string
}

func isUpper(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
	}
	return true
}

func toLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r - 'A' + 'a'
		}
	}
	return string(out)
}

// isReservedWordDefinition reports whether a definition is the
// reserved-word convenience form: an all-uppercase name whose regex is
// exactly the lowercased name (e.g. `IF: if`).
func isReservedWordDefinition(name, pattern string) bool {
	return isUpper(name) && toLower(name) == pattern
}

// Load parses a regex-definition file. Blank lines and lines starting with
// '#' are skipped. A line missing ':' is malformed and produces a warning,
// not a parse failure. A duplicate pattern name overwrites the earlier
// definition and produces a warning.
func Load(r io.Reader) (*LexicalDef, error) {
	def := &LexicalDef{Reserved: make(map[string]string)}
	byName := make(map[string]int)
	lineOf := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		colon := strings.Index(line, ":")
		if colon < 0 {
			gologger.Warning().Msgf("lexicaldef: line %d malformed (missing ':'): %q", lineNo, line)
			continue
		}

		name := strings.TrimSpace(line[:colon])
		rest := strings.TrimSpace(line[colon+1:])
		if name == "" || rest == "" {
			gologger.Warning().Msgf("lexicaldef: line %d malformed (empty name or pattern): %q", lineNo, line)
			continue
		}

		ignore := false
		if idx := strings.LastIndex(rest, "%ignore"); idx >= 0 && strings.TrimSpace(rest[idx:]) == "%ignore" {
			ignore = true
			rest = strings.TrimSpace(rest[:idx])
		}

		if isReservedWordDefinition(name, rest) {
			def.Reserved[toLower(name)] = name
			continue
		}

		if existing, ok := byName[name]; ok {
			gologger.Warning().Msgf("lexicaldef: line %d redefines pattern %q (previously on line %d), overwriting", lineNo, name, lineOf[name])
			def.Patterns[existing] = Definition{Name: name, Pattern: rest, Ignore: ignore}
			lineOf[name] = lineNo
			continue
		}

		byName[name] = len(def.Patterns)
		lineOf[name] = lineNo
		def.Patterns = append(def.Patterns, Definition{Name: name, Pattern: rest, Ignore: ignore})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return def, nil
}

// IgnoreSet returns the set of pattern names declared `%ignore`.
func (d *LexicalDef) IgnoreSet() map[string]bool {
	ignore := make(map[string]bool)
	for _, p := range d.Patterns {
		if p.Ignore {
			ignore[p.Name] = true
		}
	}
	return ignore
}
