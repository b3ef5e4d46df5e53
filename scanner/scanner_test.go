package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ident = Anchored(`[A-Z]+`)
	arrow = Anchored(`=>`)
)

func TestCursor_SkipWhitespace(t *testing.T) {
	c := New("  \t\n  KEY")
	c.SkipInsignificant()
	assert.Equal(t, 6, c.Pos())
	assert.True(t, c.LookingAt("KEY"))
}

func TestCursor_SkipComment(t *testing.T) {
	c := New("\\ a comment\nKEY")
	c.SkipInsignificant()
	assert.True(t, c.LookingAt("KEY"))
}

func TestCursor_SkipCommentToEOF(t *testing.T) {
	c := New("KEY \\ trailing")
	_, ok := c.Match(ident)
	require.True(t, ok)
	c.SkipInsignificant()
	assert.True(t, c.AtEnd())
}

func TestCursor_SkipUnicodeSpace(t *testing.T) {
	c := New("\u00a0\u2003KEY")
	c.SkipInsignificant()
	assert.True(t, c.LookingAt("KEY"))
}

func TestCursor_SkipSeparatorControls(t *testing.T) {
	c := New("\x1c\x1d\x1e\x1f KEY")
	c.SkipInsignificant()
	assert.True(t, c.LookingAt("KEY"))

	c = New("\x1b")
	c.SkipInsignificant()
	assert.False(t, c.AtEnd())
}

func TestCursor_SkipConsecutiveComments(t *testing.T) {
	c := New("\\ one\n  \\ two\n\n  KEY")
	c.SkipInsignificant()
	assert.True(t, c.LookingAt("KEY"))
}

func TestCursor_MatchAdvances(t *testing.T) {
	c := New("  ABC => 1")
	text, ok := c.Match(ident)
	require.True(t, ok)
	assert.Equal(t, "ABC", text)
	assert.Equal(t, 5, c.Pos())

	text, ok = c.Match(arrow)
	require.True(t, ok)
	assert.Equal(t, "=>", text)
}

func TestCursor_MatchIsAnchored(t *testing.T) {
	c := New("  abc DEF")
	_, ok := c.Match(ident)
	assert.False(t, ok)
	// The whitespace skip is kept even when the pattern misses.
	assert.Equal(t, 2, c.Pos())
}

func TestCursor_LookingAtDoesNotConsume(t *testing.T) {
	c := New("$(A)")
	assert.True(t, c.LookingAt("$("))
	assert.Equal(t, 0, c.Pos())
	b, ok := c.PeekByte()
	require.True(t, ok)
	assert.Equal(t, byte('$'), b)
}

func TestCursor_PeekAtEnd(t *testing.T) {
	c := New("")
	_, ok := c.PeekByte()
	assert.False(t, ok)
	assert.True(t, c.AtEnd())
}

func TestCursor_AdvanceClamps(t *testing.T) {
	c := New("abc")
	assert.Equal(t, 2, c.Advance(2))
	assert.Equal(t, 1, c.Advance(10))
	assert.True(t, c.AtEnd())
	assert.Equal(t, 0, c.Advance(-1))
}

func TestCursor_Position(t *testing.T) {
	c := New("ab\ncde\nf")
	tests := []struct {
		pos       int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
		{8, 3, 2},
	}
	for _, tt := range tests {
		line, col := c.Position(tt.pos)
		assert.Equal(t, tt.line, line, "line at %d", tt.pos)
		assert.Equal(t, tt.col, col, "col at %d", tt.pos)
	}
}

func TestCursor_PositionCountsRunes(t *testing.T) {
	c := New("é€X")
	line, col := c.Position(len("é€"))
	assert.Equal(t, 1, line)
	assert.Equal(t, 3, col)
}

func TestCursor_ExpectError(t *testing.T) {
	c := New("[\n  KEY = 0o1 ]")
	_, err := c.Expect(Anchored(`\[`), "expected '['")
	require.NoError(t, err)
	_, err = c.Expect(ident, "expected key")
	require.NoError(t, err)

	_, err = c.Expect(arrow, "expected '=>'")
	require.Error(t, err)
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Line)
	assert.Equal(t, 7, se.Col)
	assert.Equal(t, "expected '=>'", se.Msg)
	assert.Equal(t, "Error at line 2, col 7: expected '=>'", err.Error())
}
