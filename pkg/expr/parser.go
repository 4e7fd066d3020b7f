package expr

import (
	"mercator-hq/ganymede/pkg/machine"
)

// NodeKind identifies the shape of a parsed expression node.
type NodeKind string

const (
	NodeLiteral  NodeKind = "literal"
	NodeVariable NodeKind = "variable"
	NodeUnary    NodeKind = "unary"
	NodeBinary   NodeKind = "binary"
)

// Node is a parsed expression. The populated fields depend on Kind:
// literals carry Value, variables carry Name, unary nodes carry Op and
// Left, binary nodes carry Op, Left, and Right.
type Node struct {
	Kind  NodeKind
	Op    string
	Left  *Node
	Right *Node
	Value machine.Value
	Name  string
	pos   int
}

// parser is a recursive-descent parser over the token stream. Each
// parse level corresponds to one precedence tier of the grammar.
type parser struct {
	input  string
	tokens []token
	pos    int
}

// Parse parses an expression into its AST. Rules pre-compile their
// conditions and transforms with Parse so malformed expressions fail
// at construction rather than mid-exploration.
func Parse(input string) (*Node, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, evalErrorf(input, tok.pos, "unexpected trailing input")
	}
	return node, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

// acceptOp consumes the next token if it is one of the given
// operators.
func (p *parser) acceptOp(ops ...string) (token, bool) {
	tok := p.peek()
	if tok.kind != tokenOp {
		return token{}, false
	}
	for _, op := range ops {
		if tok.text == op {
			p.pos++
			return tok, true
		}
	}
	return token{}, false
}

func (p *parser) parseOr() (*Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.acceptOp("||")
		if !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeBinary, Op: "||", Left: left, Right: right, pos: tok.pos}
	}
}

func (p *parser) parseAnd() (*Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.acceptOp("&&")
		if !ok {
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeBinary, Op: "&&", Left: left, Right: right, pos: tok.pos}
	}
}

// parseNot sits between && and the comparison tier, so !a == b parses
// as !(a == b).
func (p *parser) parseNot() (*Node, error) {
	if tok, ok := p.acceptOp("!"); ok {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeUnary, Op: "!", Left: operand, pos: tok.pos}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (*Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.acceptOp("==", "!=", "<", "<=", ">", ">=")
		if !ok {
			return left, nil
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeBinary, Op: tok.text, Left: left, Right: right, pos: tok.pos}
	}
}

func (p *parser) parseAdditive() (*Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeBinary, Op: tok.text, Left: left, Right: right, pos: tok.pos}
	}
}

func (p *parser) parseMultiplicative() (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.acceptOp("*", "/")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeBinary, Op: tok.text, Left: left, Right: right, pos: tok.pos}
	}
}

func (p *parser) parseUnary() (*Node, error) {
	if tok, ok := p.acceptOp("-"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeUnary, Op: "-", Left: operand, pos: tok.pos}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenInt:
		return &Node{Kind: NodeLiteral, Value: machine.IntValue(tok.i), pos: tok.pos}, nil

	case tokenFloat:
		return &Node{Kind: NodeLiteral, Value: machine.FloatValue(tok.f), pos: tok.pos}, nil

	case tokenString:
		return &Node{Kind: NodeLiteral, Value: machine.StringValue(tok.text), pos: tok.pos}, nil

	case tokenBool:
		return &Node{Kind: NodeLiteral, Value: machine.BoolValue(tok.b), pos: tok.pos}, nil

	case tokenNull:
		return &Node{Kind: NodeLiteral, Value: machine.Null(), pos: tok.pos}, nil

	case tokenIdent:
		return &Node{Kind: NodeVariable, Name: tok.text, pos: tok.pos}, nil

	case tokenLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, evalErrorf(p.input, closing.pos, "expected closing parenthesis")
		}
		return inner, nil

	case tokenEOF:
		return nil, evalErrorf(p.input, tok.pos, "unexpected end of expression")

	default:
		return nil, evalErrorf(p.input, tok.pos, "unexpected token %q", tok.text)
	}
}
