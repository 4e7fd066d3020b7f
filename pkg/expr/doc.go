// Package expr implements the small sandboxed expression language used
// by declarative rules and filter conditions.
//
// The grammar, from lowest to highest precedence:
//
//	||  &&  !  (== != < <= > >=)  (+ -)  (* /)  unary -  primary
//
// Primaries are numeric, string, bool, and null literals, parenthesized
// expressions, and variable references. Variables may be written bare
// (count) or bracketed ([count]); names are case-sensitive. There are
// no function calls and no access to anything outside the variable
// scope: the grammar above is the entire capability surface.
//
// Evaluation is pure and reentrant. Strict evaluation fails on an
// undefined variable; lenient evaluation resolves it to null, so a
// condition referencing a variable not yet introduced degrades to a
// comparison against null instead of aborting the caller.
package expr
