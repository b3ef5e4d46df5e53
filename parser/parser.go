// Package parser turns confsh source text into a value tree.
//
// A source file is a sequence of constant declarations and at most one
// main table:
//
//	const NAME = VALUE
//	[ KEY => VALUE, KEY => [ ... ], KEY => $(NAME * 2) ]
//
// VALUE is an octal literal (0o17), a nested table, a $( ... ) arithmetic
// expression, or the name of a constant declared earlier. Backslash starts
// a comment that runs to the end of the line.
package parser

import (
	"strconv"

	"github.com/Aidix21/Conf-SH-A-R-Pr4/expr"
	"github.com/Aidix21/Conf-SH-A-R-Pr4/scanner"
	"github.com/Aidix21/Conf-SH-A-R-Pr4/value"
	"go.uber.org/zap"
)

// SyntaxError is returned for every grammar or semantic violation.
type SyntaxError = scanner.SyntaxError

const (
	constKeyword = "const"
	exprOpen     = "$("
)

// MaxDepth bounds how deeply tables may nest.
const MaxDepth = 1000

var (
	reConst    = scanner.Anchored(`const`)
	reIdent    = scanner.Anchored(`[A-Z]+`)
	reAssign   = scanner.Anchored(`=`)
	reLBracket = scanner.Anchored(`\[`)
	reArrow    = scanner.Anchored(`=>`)
	reComma    = scanner.Anchored(`,`)
	reOctal    = scanner.Anchored(`0[oO][0-7]+`)
	reExprOpen = scanner.Anchored(`\$\(`)
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used to trace constant bindings and the main
// table. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session parses a single source text. It owns its cursor and constant
// table, so separate sessions can run concurrently.
type Session struct {
	cur    *scanner.Cursor
	consts *Constants
	log    *zap.Logger
	depth  int

	done   bool
	result *value.Table
	err    error
}

// New creates a Session over src.
func New(src string, opts ...Option) *Session {
	s := &Session{
		cur:    scanner.New(src),
		consts: NewConstants(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse parses src in one call. See Session.Parse.
func Parse(src string, opts ...Option) (*value.Table, error) {
	return New(src, opts...).Parse()
}

// Constants returns the session's constant table.
func (s *Session) Constants() *Constants { return s.consts }

// Parse consumes the whole input and returns the main table, or an empty
// table when the input declares none. The first error aborts the parse and
// is a *SyntaxError. Repeated calls return the first outcome.
func (s *Session) Parse() (*value.Table, error) {
	if !s.done {
		s.result, s.err = s.parse()
		s.done = true
	}
	return s.result, s.err
}

func (s *Session) parse() (*value.Table, error) {
	var main *value.Table
	for {
		s.cur.SkipInsignificant()
		if s.cur.AtEnd() {
			break
		}

		if s.cur.LookingAt(constKeyword + " ") {
			if err := s.parseConst(); err != nil {
				return nil, err
			}
			continue
		}

		if main != nil {
			return nil, s.cur.Errorf("multiple main structures defined or content after main structure")
		}
		tbl, err := s.parseDict()
		if err != nil {
			return nil, err
		}
		s.log.Debug("main table parsed", zap.Int("entries", tbl.Len()))
		main = tbl
	}

	if main == nil {
		return value.NewTable(), nil
	}
	return main, nil
}

func (s *Session) parseConst() error {
	s.cur.Match(reConst)
	name, err := s.cur.Expect(reIdent, "expected constant name (uppercase letters)")
	if err != nil {
		return err
	}
	if _, err := s.cur.Expect(reAssign, "expected '=' after constant name"); err != nil {
		return err
	}
	v, err := s.parseValue()
	if err != nil {
		return err
	}
	if s.consts.Has(name) {
		s.log.Debug("constant rebound", zap.String("name", name))
	}
	s.consts.Bind(name, v)
	s.log.Debug("constant bound", zap.String("name", name), zap.Stringer("value", v))
	return nil
}

// parseValue dispatches on the upcoming text without consuming it until the
// value kind is known.
func (s *Session) parseValue() (value.Value, error) {
	s.cur.SkipInsignificant()

	if lit, ok := s.cur.Match(reOctal); ok {
		n, err := strconv.ParseInt(lit[2:], 8, 64)
		if err != nil {
			return nil, s.cur.Errorf("invalid octal number")
		}
		return value.Int(n), nil
	}

	if b, ok := s.cur.PeekByte(); ok && b == '[' {
		return s.parseDict()
	}

	if s.cur.LookingAt(exprOpen) {
		return s.parseExpression()
	}

	if name, ok := s.cur.Match(reIdent); ok {
		v, found := s.consts.Lookup(name)
		if !found {
			return nil, s.cur.Errorf("undefined constant: %s", name)
		}
		return v, nil
	}

	return nil, s.cur.Errorf("expected value (number, dictionary, or expression)")
}

func (s *Session) parseDict() (*value.Table, error) {
	if _, err := s.cur.Expect(reLBracket, "expected '['"); err != nil {
		return nil, err
	}
	s.depth++
	defer func() { s.depth-- }()
	if s.depth > MaxDepth {
		return nil, s.cur.Errorf("nesting too deep (limit %d)", MaxDepth)
	}
	tbl := value.NewTable()

	for {
		s.cur.SkipInsignificant()
		if s.cur.LookingAt("]") {
			s.cur.Advance(1)
			return tbl, nil
		}

		key, err := s.cur.Expect(reIdent, "expected key (uppercase letters)")
		if err != nil {
			return nil, err
		}
		if _, err := s.cur.Expect(reArrow, "expected '=>'"); err != nil {
			return nil, err
		}
		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		tbl.Set(key, v)

		if _, ok := s.cur.Match(reComma); ok {
			continue
		}
		if s.cur.LookingAt("]") {
			continue
		}
		return nil, s.cur.Errorf("expected ',' or ']'")
	}
}

// parseExpression isolates the paren-balanced body of $( ... ) and hands it
// to the arithmetic evaluator.
func (s *Session) parseExpression() (value.Value, error) {
	if _, err := s.cur.Expect(reExprOpen, "expected '$('"); err != nil {
		return nil, err
	}

	body := s.cur.Rest()
	depth := 1
	end := -1
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		s.cur.Advance(len(body))
		return nil, s.cur.Errorf("unbalanced parentheses in expression")
	}
	s.cur.Advance(end + 1)

	v, err := expr.Eval(body[:end], s.consts)
	if err != nil {
		return nil, s.cur.Errorf("expression evaluation error: %v", err)
	}
	return v, nil
}
