package regex

import "fmt"

// SyntaxError is raised by Preprocess when a character class is malformed,
// or when the regex is empty (an empty regex is not a valid pattern; use
// "&" to denote the epsilon acceptor).
type SyntaxError struct {
	Regex string
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in regex %q: %s", e.Regex, e.Msg)
}

// UnbalancedParenError is raised by ToPostfix on mismatched parentheses.
type UnbalancedParenError struct {
	Regex string
	Msg   string
}

func (e *UnbalancedParenError) Error() string {
	return fmt.Sprintf("unbalanced parentheses in regex %q: %s", e.Regex, e.Msg)
}

// ArityError is raised when an operator is missing operands, whether during
// shunting-yard or during the Thompson build that consumes the postfix
// stream.
type ArityError struct {
	Regex string
	Msg   string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("arity error in regex %q: %s", e.Regex, e.Msg)
}
