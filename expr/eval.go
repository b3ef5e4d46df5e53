// Package expr evaluates the arithmetic bodies of $( ... ) expressions.
//
// The grammar is deliberately closed: integer literals, named constants,
// the binary operators + - * /, unary + and -, parentheses and a single
// builtin abs(x). Nothing else is reachable from an expression.
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | primary
//	primary = NUMBER | NAME | "abs" "(" expr ")" | "(" expr ")"
package expr

import (
	"fmt"

	"github.com/Aidix21/Conf-SH-A-R-Pr4/value"
)

// absName is the only callable name inside an expression.
const absName = "abs"

// MaxDepth bounds how deeply parentheses and unary operators may nest.
const MaxDepth = 1000

// Env resolves constant names to their bound values.
type Env interface {
	Lookup(name string) (value.Value, bool)
}

// Eval parses and evaluates src against env. Integral results are returned
// as value.Int; division that does not come out even yields value.Float.
func Eval(src string, env Env) (value.Value, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	e := &evaluator{toks: toks, env: env}
	if e.peek().kind == tokEOF {
		return nil, fmt.Errorf("empty expression")
	}
	v, err := e.expr()
	if err != nil {
		return nil, err
	}
	if tok := e.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %s at offset %d", tok, tok.pos)
	}
	return value.Normalize(v), nil
}

type evaluator struct {
	toks  []token
	pos   int
	env   Env
	depth int
}

func (e *evaluator) peek() token { return e.toks[e.pos] }

func (e *evaluator) next() token {
	tok := e.toks[e.pos]
	if tok.kind != tokEOF {
		e.pos++
	}
	return tok
}

func (e *evaluator) expect(kind tokenKind, what string) error {
	if tok := e.next(); tok.kind != kind {
		return fmt.Errorf("expected %s, got %s", what, tok)
	}
	return nil
}

func (e *evaluator) expr() (value.Value, error) {
	left, err := e.term()
	if err != nil {
		return nil, err
	}
	for {
		op := e.peek()
		if op.kind != tokPlus && op.kind != tokMinus {
			return left, nil
		}
		e.next()
		right, err := e.term()
		if err != nil {
			return nil, err
		}
		if op.kind == tokPlus {
			left, err = add(left, right)
		} else {
			left, err = sub(left, right)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (e *evaluator) term() (value.Value, error) {
	left, err := e.unary()
	if err != nil {
		return nil, err
	}
	for {
		op := e.peek()
		if op.kind != tokStar && op.kind != tokSlash {
			return left, nil
		}
		e.next()
		right, err := e.unary()
		if err != nil {
			return nil, err
		}
		if op.kind == tokStar {
			left, err = mul(left, right)
		} else {
			left, err = div(left, right)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (e *evaluator) unary() (value.Value, error) {
	// Every nested construct re-enters here.
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > MaxDepth {
		return nil, fmt.Errorf("nesting too deep (limit %d)", MaxDepth)
	}

	switch e.peek().kind {
	case tokMinus:
		e.next()
		v, err := e.unary()
		if err != nil {
			return nil, err
		}
		return neg(v)
	case tokPlus:
		e.next()
		v, err := e.unary()
		if err != nil {
			return nil, err
		}
		return pos(v)
	}
	return e.primary()
}

func (e *evaluator) primary() (value.Value, error) {
	tok := e.next()
	switch tok.kind {
	case tokNumber:
		return value.Int(tok.num), nil
	case tokLParen:
		v, err := e.expr()
		if err != nil {
			return nil, err
		}
		if err := e.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return v, nil
	case tokName:
		if tok.text == absName {
			return e.call()
		}
		if e.peek().kind == tokLParen {
			return nil, fmt.Errorf("name '%s' is not callable", tok.text)
		}
		v, ok := e.env.Lookup(tok.text)
		if !ok {
			return nil, fmt.Errorf("name '%s' is not defined", tok.text)
		}
		return v, nil
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression")
	}
	return nil, fmt.Errorf("unexpected %s at offset %d", tok, tok.pos)
}

// call parses the argument list of abs and applies it.
func (e *evaluator) call() (value.Value, error) {
	if err := e.expect(tokLParen, "'(' after abs"); err != nil {
		return nil, err
	}
	if e.peek().kind == tokRParen {
		return nil, fmt.Errorf("abs() takes exactly one argument (0 given)")
	}
	arg, err := e.expr()
	if err != nil {
		return nil, err
	}
	if e.peek().kind == tokComma {
		return nil, fmt.Errorf("abs() takes exactly one argument")
	}
	if err := e.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return abs(arg)
}
