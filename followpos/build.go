package followpos

import (
	"fmt"

	"github.com/shadowCow/lexparse-go/regex"
)

// decodeLiteral returns the rune a Literal token's text denotes, unescaping
// a leading backslash if present.
func decodeLiteral(text string) rune {
	runes := []rune(text)
	if len(runes) == 2 && runes[0] == '\\' {
		return runes[1]
	}
	return runes[0]
}

// BuildTree runs a stack machine over a postfix token stream (as produced
// by regex.ToPostfix) and builds the corresponding augmented syntax tree,
// desugaring Plus (a+ = a.a*) and Question (a? = a|Empty) so that
// nullable/firstpos/lastpos/followpos only ever need to handle Cat, Or,
// Star, Leaf and Empty. nextPos is the position counter to start leaf
// numbering from, so that several patterns can share one position space
// when combined into a single automaton.
func BuildTree(postfix []regex.Token, nextPos *Position) (Node, error) {
	var stack []Node

	pop := func(opName string, count int) ([]Node, error) {
		if len(stack) < count {
			return nil, &regex.ArityError{Msg: fmt.Sprintf("not enough operands for %q", opName)}
		}
		operands := stack[len(stack)-count:]
		stack = stack[:len(stack)-count]
		return operands, nil
	}

	newLeaf := func(r rune) *Leaf {
		l := &Leaf{Pos: *nextPos, Symbol: r}
		*nextPos++
		return l
	}

	for _, tok := range postfix {
		switch tok.Kind {
		case regex.Literal:
			stack = append(stack, newLeaf(decodeLiteral(tok.Text)))

		case regex.Concat:
			ops, err := pop("concatenation", 2)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &Cat{Left: ops[0], Right: ops[1]})

		case regex.Union:
			ops, err := pop("union", 2)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &Or{Left: ops[0], Right: ops[1]})

		case regex.Star:
			ops, err := pop("kleene star", 1)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &Star{Child: ops[0]})

		case regex.Plus:
			ops, err := pop("kleene plus", 1)
			if err != nil {
				return nil, err
			}
			// a+ = a . a*, but a* must be built from a *separate* subtree
			// so the two occurrences get distinct positions; clone isn't
			// possible without re-numbering, so desugar at the token level
			// instead of here would duplicate positions. Re-derive a* by
			// wrapping the already-built operand directly: its positions
			// are shared between the Cat's left operand and the Star's
			// child, which is exactly the intended "one or more" semantics
			// (the repeated copy of a in a.a* refers to the same input
			// symbol positions, not fresh ones).
			stack = append(stack, &Cat{Left: ops[0], Right: &Star{Child: ops[0]}})

		case regex.Question:
			ops, err := pop("optional", 1)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &Or{Left: ops[0], Right: &Empty{}})

		default:
			return nil, &regex.ArityError{Msg: fmt.Sprintf("unexpected token %q in postfix stream", tok.String())}
		}
	}

	if len(stack) != 1 {
		return nil, &regex.ArityError{Msg: fmt.Sprintf("malformed postfix expression, %d fragments left on stack", len(stack))}
	}
	return stack[0], nil
}

// BuildPatternTree builds the augmented syntax tree for a single
// regex-definition pattern body, special-casing a body of exactly "&" as
// the epsilon acceptor (a bare Empty node) rather than running it through
// BuildTree, which would otherwise treat "&" as an ordinary literal rune.
func BuildPatternTree(pattern, patternName string, priority int, nextPos *Position) (Node, error) {
	if pattern == "&" {
		return Augment(&Empty{}, patternName, priority, nextPos), nil
	}
	tokens, err := regex.Preprocess(pattern)
	if err != nil {
		return nil, err
	}
	postfix, err := regex.ToPostfix(tokens)
	if err != nil {
		return nil, err
	}
	tree, err := BuildTree(postfix, nextPos)
	if err != nil {
		return nil, err
	}
	return Augment(tree, patternName, priority, nextPos), nil
}

// Augment wraps a pattern's tree with a dedicated end-marker leaf,
// Cat{tree, #}, labeling the marker with the pattern's name and priority.
func Augment(tree Node, patternName string, priority int, nextPos *Position) Node {
	marker := &Leaf{Pos: *nextPos, Symbol: EndMarker, Accept: &AcceptInfo{PatternName: patternName, Priority: priority}}
	*nextPos++
	return &Cat{Left: tree, Right: marker}
}

// Combine unions several augmented pattern trees into one via Or, so a
// single followpos table and DFA cover every pattern at once, same as
// automata.Combine does for NFAs.
func Combine(trees []Node) Node {
	if len(trees) == 0 {
		return &Empty{}
	}
	result := trees[0]
	for _, t := range trees[1:] {
		result = &Or{Left: result, Right: t}
	}
	return result
}
