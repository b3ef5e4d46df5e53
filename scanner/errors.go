package scanner

import (
	"fmt"
	"regexp"
)

// SyntaxError reports a grammar or semantic violation at a source position.
// Line and Col are 1-based.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Error at line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

// Errorf builds a SyntaxError positioned at the cursor's current offset.
func (c *Cursor) Errorf(format string, args ...any) error {
	line, col := c.Position(c.pos)
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// Expect is Match that turns a miss into a SyntaxError carrying msg.
func (c *Cursor) Expect(re *regexp.Regexp, msg string) (string, error) {
	text, ok := c.Match(re)
	if !ok {
		return "", c.Errorf("%s", msg)
	}
	return text, nil
}
