package main

import "fmt"

// SyntaxError reports malformed or unresolvable source. Parsing stops at
// the first one.
type SyntaxError struct {
	Pos  int       // byte offset of the offending token
	Kind TokenType // kind of the offending token, empty for lexer errors
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// UnsupportedError reports a tree the generator cannot lower: an unknown
// node, a register width it has no name for, or more than six
// arguments or parameters.
type UnsupportedError struct {
	Construct string
	Detail    string
}

func (e *UnsupportedError) Error() string {
	if e.Detail == "" {
		return "unsupported construct: " + e.Construct
	}
	return fmt.Sprintf("unsupported construct: %s: %s", e.Construct, e.Detail)
}

func unsupported(construct, format string, args ...any) {
	panic(&UnsupportedError{Construct: construct, Detail: fmt.Sprintf(format, args...)})
}

// recoverError turns a panicked *SyntaxError or *UnsupportedError back into
// a returned error. Anything else keeps unwinding.
func recoverError(err *error) {
	switch e := recover().(type) {
	case nil:
	case *SyntaxError:
		*err = e
	case *UnsupportedError:
		*err = e
	default:
		panic(e)
	}
}
