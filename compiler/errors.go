package compiler

import "fmt"

// SemanticError is a single compile-time diagnostic: a parse or semantic
// error tied to the token where it was detected. Its Error() format is
// pinned: `[line N] Error at 'lexeme': <message>` or `[line N] Error at
// end: <message>`, since the test suite and downstream tooling compare it
// literally.
type SemanticError struct {
	Line    int
	Lexeme  string
	AtEnd   bool
	Message string
}

func (e SemanticError) Error() string {
	where := fmt.Sprintf("at '%s'", e.Lexeme)
	if e.AtEnd {
		where = "at end"
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, where, e.Message)
}

// DeveloperError marks an invariant violated by the compiler itself rather
// than by the program being compiled. It should never surface from a
// correct implementation.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
