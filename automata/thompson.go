package automata

import (
	"fmt"

	"github.com/shadowCow/lexparse-go/regex"
)

// fragment is a start/accept state pair for one operand on the Thompson
// build stack. The underlying states and transitions already live in the
// NFA being built; fragment only tracks which of those states currently
// serve as this sub-expression's entry and exit points.
type fragment struct {
	start, accept StateID
}

// decodeLiteral returns the rune a Literal token's text denotes, unescaping
// a leading backslash if present.
func decodeLiteral(text string) rune {
	runes := []rune(text)
	if len(runes) == 2 && runes[0] == '\\' {
		return runes[1]
	}
	return runes[0]
}

// BuildFromPostfix runs the Thompson stack machine over a postfix token
// stream (as produced by regex.ToPostfix) and returns the resulting NFA.
// Each operator pops its operand fragment(s), builds new states and
// epsilon wiring per the rule for that operator, and pushes the
// resulting fragment.
func BuildFromPostfix(postfix []regex.Token, patternName string, priority int) (*NFA, error) {
	n := NewNFA()
	var stack []fragment

	pop := func(opName string, count int) ([]fragment, error) {
		if len(stack) < count {
			return nil, &regex.ArityError{Msg: fmt.Sprintf("not enough operands for %q", opName)}
		}
		operands := stack[len(stack)-count:]
		stack = stack[:len(stack)-count]
		return operands, nil
	}

	for _, tok := range postfix {
		switch tok.Kind {
		case regex.Literal:
			s := n.AddState()
			a := n.AddState()
			n.AddTransition(s.ID, decodeLiteral(tok.Text), a.ID)
			stack = append(stack, fragment{s.ID, a.ID})

		case regex.Concat:
			ops, err := pop("concatenation", 2)
			if err != nil {
				return nil, err
			}
			left, right := ops[0], ops[1]
			n.AddEpsilonTransition(left.accept, right.start)
			stack = append(stack, fragment{left.start, right.accept})

		case regex.Union:
			ops, err := pop("union", 2)
			if err != nil {
				return nil, err
			}
			left, right := ops[0], ops[1]
			s := n.AddState()
			a := n.AddState()
			n.AddEpsilonTransition(s.ID, left.start)
			n.AddEpsilonTransition(s.ID, right.start)
			n.AddEpsilonTransition(left.accept, a.ID)
			n.AddEpsilonTransition(right.accept, a.ID)
			stack = append(stack, fragment{s.ID, a.ID})

		case regex.Star:
			ops, err := pop("kleene star", 1)
			if err != nil {
				return nil, err
			}
			op := ops[0]
			s := n.AddState()
			a := n.AddState()
			n.AddEpsilonTransition(s.ID, op.start)
			n.AddEpsilonTransition(s.ID, a.ID)
			n.AddEpsilonTransition(op.accept, op.start)
			n.AddEpsilonTransition(op.accept, a.ID)
			stack = append(stack, fragment{s.ID, a.ID})

		case regex.Plus:
			ops, err := pop("kleene plus", 1)
			if err != nil {
				return nil, err
			}
			op := ops[0]
			s := n.AddState()
			a := n.AddState()
			n.AddEpsilonTransition(s.ID, op.start)
			n.AddEpsilonTransition(op.accept, op.start)
			n.AddEpsilonTransition(op.accept, a.ID)
			stack = append(stack, fragment{s.ID, a.ID})

		case regex.Question:
			ops, err := pop("optional", 1)
			if err != nil {
				return nil, err
			}
			op := ops[0]
			s := n.AddState()
			a := n.AddState()
			n.AddEpsilonTransition(s.ID, op.start)
			n.AddEpsilonTransition(s.ID, a.ID)
			n.AddEpsilonTransition(op.accept, a.ID)
			stack = append(stack, fragment{s.ID, a.ID})

		default:
			return nil, &regex.ArityError{Msg: fmt.Sprintf("unexpected token %q in postfix stream", tok.String())}
		}
	}

	if len(stack) != 1 {
		return nil, &regex.ArityError{Msg: fmt.Sprintf("malformed postfix expression, %d fragments left on stack", len(stack))}
	}

	top := stack[0]
	n.Start = top.start
	n.Accept = top.accept
	n.AcceptStates[top.accept] = AcceptInfo{PatternName: patternName, Priority: priority}
	return n, nil
}

// BuildEpsilonNFA returns the single-state NFA accepting only the empty
// string, used for the "&" epsilon-acceptor pattern. A zero-length match
// can never advance the input, so this pattern is effectively suppressed
// at the scanner layer without any special-casing there.
func BuildEpsilonNFA(patternName string, priority int) *NFA {
	n := NewNFA()
	s := n.AddState()
	n.Start = s.ID
	n.Accept = s.ID
	n.AcceptStates[s.ID] = AcceptInfo{PatternName: patternName, Priority: priority}
	return n
}

// BuildPatternNFA builds the NFA for a single regex-definition pattern
// body, special-casing a body of exactly "&" as the epsilon acceptor.
// Without this check, "&" would flow into regex.Preprocess/ToPostfix like
// any other pattern and tokenizeLiterals would hand it back as an
// ordinary Literal token, building a matcher for the literal ampersand
// character instead of an epsilon acceptor.
func BuildPatternNFA(pattern, patternName string, priority int) (*NFA, error) {
	if pattern == "&" {
		return BuildEpsilonNFA(patternName, priority), nil
	}
	tokens, err := regex.Preprocess(pattern)
	if err != nil {
		return nil, err
	}
	postfix, err := regex.ToPostfix(tokens)
	if err != nil {
		return nil, err
	}
	return BuildFromPostfix(postfix, patternName, priority)
}
