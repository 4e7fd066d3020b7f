package expr

import "fmt"

// EvalError is the single error type the expression layer produces. It
// covers malformed syntax, undefined variables under strict
// evaluation, division by zero, type errors, and a non-boolean result
// where a boolean was required.
type EvalError struct {
	// Expr is the source text of the offending expression.
	Expr string

	// Pos is the byte offset into Expr where the problem was detected.
	Pos int

	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Expr == "" {
		return fmt.Sprintf("evaluation failed at offset %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("evaluation of %q failed at offset %d: %s", e.Expr, e.Pos, e.Message)
}

func evalErrorf(expr string, pos int, format string, args ...any) *EvalError {
	return &EvalError{
		Expr:    expr,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// withExpr fills in the source text on an EvalError produced during a
// node walk, which has no access to the original input.
func withExpr(err error, expr string) error {
	if ee, ok := err.(*EvalError); ok && ee.Expr == "" {
		ee.Expr = expr
	}
	return err
}
