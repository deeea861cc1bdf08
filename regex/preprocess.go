package regex

import "strings"

const metaChars = "*+?|()"

// isMeta reports whether r is a regex metacharacter that must be re-escaped
// if it appears literally inside an expanded character class.
func isMeta(r rune) bool {
	return strings.ContainsRune(metaChars, r)
}

// expandCharClass expands the content of a `[...]` segment (without the
// surrounding brackets) into an equivalent `(t1|t2|...|tn)` substring. A
// `x-y` range whose ends are both alphabetic or both numeric, with
// ord(x) <= ord(y), expands to every code point in the inclusive interval.
// A backslash inside the class escapes the next character.
func expandCharClass(content string) string {
	runes := []rune(content)
	var parts []string
	i := 0
	for i < len(runes) {
		if runes[i] == '\\' && i+1 < len(runes) {
			parts = append(parts, string(runes[i:i+2]))
			i += 2
			continue
		}
		if i+2 < len(runes) && runes[i+1] == '-' {
			from, to := runes[i], runes[i+2]
			isAlpha := isAlphaRune(from) && isAlphaRune(to)
			isDigit := isDigitRune(from) && isDigitRune(to)
			if (isAlpha || isDigit) && from <= to {
				for c := from; c <= to; c++ {
					if isMeta(c) {
						parts = append(parts, "\\"+string(c))
					} else {
						parts = append(parts, string(c))
					}
				}
				i += 3
				continue
			}
		}
		c := runes[i]
		if isMeta(c) {
			parts = append(parts, "\\"+string(c))
		} else {
			parts = append(parts, string(c))
		}
		i++
	}
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, "|") + ")"
}

func isAlphaRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}

// expandClasses performs the class-expansion pass over the raw regex text,
// leaving escapes (`\c`) intact for the tokenizing pass. Fails with
// SyntaxError if a `[` has no matching `]`.
func expandClasses(raw string) (string, error) {
	runes := []rune(raw)
	var out strings.Builder
	i := 0
	for i < len(runes) {
		switch {
		case runes[i] == '\\':
			if i+1 < len(runes) {
				out.WriteRune(runes[i])
				out.WriteRune(runes[i+1])
				i += 2
			} else {
				out.WriteRune(runes[i])
				i++
			}
		case runes[i] == '[':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ']' && runes[j-1] != '\\' {
					end = j
					break
				}
			}
			if end == -1 {
				return "", &SyntaxError{Regex: raw, Msg: "unterminated '['"}
			}
			out.WriteString(expandCharClass(string(runes[i+1 : end])))
			i = end + 1
		default:
			out.WriteRune(runes[i])
			i++
		}
	}
	return out.String(), nil
}

// tokenizeLiterals splits an already class-expanded regex string into a flat
// token stream of literals and structural characters, preserving two-rune
// escapes as single Literal tokens.
func tokenizeLiterals(expanded string) []Token {
	runes := []rune(expanded)
	var tokens []Token
	i := 0
	for i < len(runes) {
		switch runes[i] {
		case '\\':
			if i+1 < len(runes) {
				tokens = append(tokens, Token{Kind: Literal, Text: string(runes[i : i+2])})
				i += 2
			} else {
				tokens = append(tokens, Token{Kind: Literal, Text: string(runes[i])})
				i++
			}
		case '(':
			tokens = append(tokens, Token{Kind: LParen})
			i++
		case ')':
			tokens = append(tokens, Token{Kind: RParen})
			i++
		case '*':
			tokens = append(tokens, Token{Kind: Star})
			i++
		case '+':
			tokens = append(tokens, Token{Kind: Plus})
			i++
		case '?':
			tokens = append(tokens, Token{Kind: Question})
			i++
		case '|':
			tokens = append(tokens, Token{Kind: Union})
			i++
		default:
			tokens = append(tokens, Token{Kind: Literal, Text: string(runes[i])})
			i++
		}
	}
	return tokens
}

// insertConcat inserts an explicit Concat token between every adjacent pair
// of tokens (t, t') where t can end an operand and t' can start one.
func insertConcat(tokens []Token) []Token {
	if len(tokens) == 0 {
		return tokens
	}
	out := make([]Token, 0, len(tokens)*2)
	for i, tok := range tokens {
		out = append(out, tok)
		if i < len(tokens)-1 && isOperandEnd(tok) && isOperandStart(tokens[i+1]) {
			out = append(out, Token{Kind: Concat})
		}
	}
	return out
}

// Preprocess runs the full regex preprocessor: class expansion, escape
// preservation, and implicit concatenation insertion. An empty regex is a
// SyntaxError; use "&" to denote the epsilon acceptor.
func Preprocess(raw string) ([]Token, error) {
	if raw == "" {
		return nil, &SyntaxError{Regex: raw, Msg: "empty regex"}
	}
	expanded, err := expandClasses(raw)
	if err != nil {
		return nil, err
	}
	tokens := tokenizeLiterals(expanded)
	return insertConcat(tokens), nil
}
