package expr

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenInt
	tokenFloat
	tokenString
	tokenBool
	tokenNull
	tokenIdent // bare or bracketed variable reference
	tokenOp    // || && ! == != < <= > >= + - * /
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string // operator text, variable name, or string literal
	pos  int
	i    int64
	f    float64
	b    bool
}

// twoCharOps are matched before their single-character prefixes.
var twoCharOps = []string{"||", "&&", "==", "!=", "<=", ">="}

const singleCharOps = "!<>+-*/"

// lex splits the input into tokens. It reports malformed numbers,
// unterminated strings and brackets, and characters outside the
// grammar.
func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: i})
			i++

		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: i})
			i++

		case c == '[':
			end := strings.IndexByte(input[i:], ']')
			if end < 0 {
				return nil, evalErrorf(input, i, "unterminated variable reference")
			}
			name := strings.TrimSpace(input[i+1 : i+end])
			if name == "" {
				return nil, evalErrorf(input, i, "empty variable reference")
			}
			tokens = append(tokens, token{kind: tokenIdent, text: name, pos: i})
			i += end + 1

		case c == '\'' || c == '"':
			lit, width, err := lexString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, text: lit, pos: i})
			i += width

		case c >= '0' && c <= '9':
			tok, width, err := lexNumber(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i += width

		case isIdentStart(rune(c)):
			start := i
			for i < len(input) && isIdentPart(rune(input[i])) {
				i++
			}
			word := input[start:i]
			switch word {
			case "true":
				tokens = append(tokens, token{kind: tokenBool, pos: start, b: true})
			case "false":
				tokens = append(tokens, token{kind: tokenBool, pos: start, b: false})
			case "null":
				tokens = append(tokens, token{kind: tokenNull, pos: start})
			default:
				tokens = append(tokens, token{kind: tokenIdent, text: word, pos: start})
			}

		default:
			if op, ok := matchOperator(input, i); ok {
				tokens = append(tokens, token{kind: tokenOp, text: op, pos: i})
				i += len(op)
				break
			}
			return nil, evalErrorf(input, i, "unexpected character %q", c)
		}
	}

	tokens = append(tokens, token{kind: tokenEOF, pos: len(input)})
	return tokens, nil
}

func matchOperator(input string, i int) (string, bool) {
	for _, op := range twoCharOps {
		if strings.HasPrefix(input[i:], op) {
			return op, true
		}
	}
	if strings.IndexByte(singleCharOps, input[i]) >= 0 {
		return input[i : i+1], true
	}
	return "", false
}

// lexString scans a quoted literal starting at i. Single and double
// quotes are interchangeable; backslash escapes the quote characters
// and itself.
func lexString(input string, i int) (string, int, error) {
	quote := input[i]
	var sb strings.Builder
	j := i + 1
	for j < len(input) {
		c := input[j]
		if c == '\\' && j+1 < len(input) {
			next := input[j+1]
			if next == '\'' || next == '"' || next == '\\' {
				sb.WriteByte(next)
				j += 2
				continue
			}
		}
		if c == quote {
			return sb.String(), j - i + 1, nil
		}
		sb.WriteByte(c)
		j++
	}
	return "", 0, evalErrorf(input, i, "unterminated string literal")
}

// lexNumber scans an integer or float literal starting at i. A literal
// containing a decimal point is a float; otherwise it is an int.
func lexNumber(input string, i int) (token, int, error) {
	j := i
	sawDot := false
	for j < len(input) {
		c := input[j]
		if c >= '0' && c <= '9' {
			j++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			j++
			continue
		}
		break
	}
	text := input[i:j]
	if sawDot {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, 0, evalErrorf(input, i, "malformed number %q", text)
		}
		return token{kind: tokenFloat, pos: i, f: f}, j - i, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, 0, evalErrorf(input, i, "malformed number %q", text)
	}
	return token{kind: tokenInt, pos: i, i: n}, j - i, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
