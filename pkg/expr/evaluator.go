package expr

import (
	"mercator-hq/ganymede/pkg/machine"
)

// Evaluator evaluates expressions against a variable scope. It is
// stateless: a single instance may be shared freely across goroutines
// and across rules.
type Evaluator struct{}

// NewEvaluator creates an expression evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate parses and strictly evaluates an expression. It returns an
// EvalError on malformed syntax, an undefined variable, division by
// zero, or an operand type error.
func (e *Evaluator) Evaluate(input string, vars map[string]machine.Value) (machine.Value, error) {
	node, err := Parse(input)
	if err != nil {
		return machine.Null(), err
	}
	v, err := e.EvaluateNode(node, vars, false)
	if err != nil {
		return machine.Null(), withExpr(err, input)
	}
	return v, nil
}

// EvaluateBoolean strictly evaluates an expression and additionally
// fails when the result is not a boolean.
func (e *Evaluator) EvaluateBoolean(input string, vars map[string]machine.Value) (bool, error) {
	node, err := Parse(input)
	if err != nil {
		return false, err
	}
	ok, err := e.EvaluateNodeBoolean(node, vars, false)
	if err != nil {
		return false, withExpr(err, input)
	}
	return ok, nil
}

// EvaluateBooleanLenient evaluates a boolean expression with undefined
// variables resolving to null instead of failing. Rule conditions use
// this mode so a condition over a variable no rule has introduced yet
// simply compares against null rather than aborting the whole build.
func (e *Evaluator) EvaluateBooleanLenient(input string, vars map[string]machine.Value) (bool, error) {
	node, err := Parse(input)
	if err != nil {
		return false, err
	}
	ok, err := e.EvaluateNodeBoolean(node, vars, true)
	if err != nil {
		return false, withExpr(err, input)
	}
	return ok, nil
}

// EvaluateNode evaluates a pre-parsed expression. When lenient is
// true, undefined variables resolve to null.
func (e *Evaluator) EvaluateNode(node *Node, vars map[string]machine.Value, lenient bool) (machine.Value, error) {
	if node == nil {
		return machine.Null(), evalErrorf("", 0, "expression node is nil")
	}
	env := &env{vars: vars, lenient: lenient}
	return env.eval(node)
}

// EvaluateNodeBoolean evaluates a pre-parsed expression and fails when
// the result is not a boolean.
func (e *Evaluator) EvaluateNodeBoolean(node *Node, vars map[string]machine.Value, lenient bool) (bool, error) {
	v, err := e.EvaluateNode(node, vars, lenient)
	if err != nil {
		return false, err
	}
	if v.Kind() != machine.KindBool {
		return false, evalErrorf("", node.pos, "expression produced %s, expected a boolean", v.Kind())
	}
	return v.AsBool(), nil
}

// env carries the variable scope and evaluation mode through one walk
// of the AST.
type env struct {
	vars    map[string]machine.Value
	lenient bool
}

func (ev *env) eval(n *Node) (machine.Value, error) {
	switch n.Kind {
	case NodeLiteral:
		return n.Value, nil

	case NodeVariable:
		v, ok := ev.vars[n.Name]
		if !ok {
			if ev.lenient {
				return machine.Null(), nil
			}
			return machine.Null(), evalErrorf("", n.pos, "undefined variable %q", n.Name)
		}
		return v, nil

	case NodeUnary:
		return ev.evalUnary(n)

	case NodeBinary:
		return ev.evalBinary(n)
	}
	return machine.Null(), evalErrorf("", n.pos, "unknown node kind %q", n.Kind)
}

func (ev *env) evalUnary(n *Node) (machine.Value, error) {
	operand, err := ev.eval(n.Left)
	if err != nil {
		return machine.Null(), err
	}

	switch n.Op {
	case "!":
		if operand.Kind() != machine.KindBool {
			return machine.Null(), evalErrorf("", n.pos, "operator ! requires a boolean, got %s", operand.Kind())
		}
		return machine.BoolValue(!operand.AsBool()), nil

	case "-":
		v, err := operand.Neg()
		if err != nil {
			return machine.Null(), evalErrorf("", n.pos, "%v", err)
		}
		return v, nil
	}
	return machine.Null(), evalErrorf("", n.pos, "unknown unary operator %q", n.Op)
}

func (ev *env) evalBinary(n *Node) (machine.Value, error) {
	// Logical operators short-circuit, so the right operand of a
	// decided || or && is never evaluated.
	if n.Op == "||" || n.Op == "&&" {
		return ev.evalLogical(n)
	}

	left, err := ev.eval(n.Left)
	if err != nil {
		return machine.Null(), err
	}
	right, err := ev.eval(n.Right)
	if err != nil {
		return machine.Null(), err
	}

	switch n.Op {
	case "==":
		return machine.BoolValue(left.Equal(right)), nil
	case "!=":
		return machine.BoolValue(!left.Equal(right)), nil
	case "<", "<=", ">", ">=":
		cmp, err := left.Compare(right)
		if err != nil {
			return machine.Null(), evalErrorf("", n.pos, "%v", err)
		}
		switch n.Op {
		case "<":
			return machine.BoolValue(cmp < 0), nil
		case "<=":
			return machine.BoolValue(cmp <= 0), nil
		case ">":
			return machine.BoolValue(cmp > 0), nil
		default:
			return machine.BoolValue(cmp >= 0), nil
		}
	case "+", "-", "*", "/":
		var v machine.Value
		switch n.Op {
		case "+":
			v, err = left.Add(right)
		case "-":
			v, err = left.Sub(right)
		case "*":
			v, err = left.Mul(right)
		default:
			v, err = left.Div(right)
		}
		if err != nil {
			return machine.Null(), evalErrorf("", n.pos, "%v", err)
		}
		return v, nil
	}
	return machine.Null(), evalErrorf("", n.pos, "unknown operator %q", n.Op)
}

func (ev *env) evalLogical(n *Node) (machine.Value, error) {
	left, err := ev.eval(n.Left)
	if err != nil {
		return machine.Null(), err
	}
	if left.Kind() != machine.KindBool {
		return machine.Null(), evalErrorf("", n.pos, "operator %s requires booleans, got %s", n.Op, left.Kind())
	}

	if n.Op == "||" && left.AsBool() {
		return machine.BoolValue(true), nil
	}
	if n.Op == "&&" && !left.AsBool() {
		return machine.BoolValue(false), nil
	}

	right, err := ev.eval(n.Right)
	if err != nil {
		return machine.Null(), err
	}
	if right.Kind() != machine.KindBool {
		return machine.Null(), evalErrorf("", n.pos, "operator %s requires booleans, got %s", n.Op, right.Kind())
	}
	return right, nil
}
