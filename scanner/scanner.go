// Package scanner provides the forward-only cursor used by the confsh
// parser. It owns the source text and a byte offset into it, skips
// whitespace and backslash line comments, and matches anchored patterns at
// the current position. The cursor never rewinds: once a skip or a match
// advances the offset, the advance is final.
package scanner

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// commentMarker starts a line comment that runs to the next newline.
const commentMarker = '\\'

// Cursor iterates over source text, tracking the current byte offset.
// Invariant: 0 <= pos <= len(src).
type Cursor struct {
	src string
	pos int
}

// New creates a Cursor positioned at the start of src.
func New(src string) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Src returns the full source text being scanned.
func (c *Cursor) Src() string { return c.src }

// Rest returns the unscanned remainder of the source.
func (c *Cursor) Rest() string { return c.src[c.pos:] }

// AtEnd reports whether the cursor has consumed all input.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.src) }

// PeekByte returns the byte at the current position without advancing,
// or (0, false) at end of input.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.src[c.pos], true
}

// LookingAt checks if src[pos:] starts with the given prefix.
// Useful for multi-character dispatch decisions (e.g., "$(", "const ").
func (c *Cursor) LookingAt(prefix string) bool {
	return strings.HasPrefix(c.src[c.pos:], prefix)
}

// Advance moves the cursor forward by n bytes, clamped to end of input.
// Returns the number of bytes actually skipped.
func (c *Cursor) Advance(n int) int {
	if n < 0 {
		return 0
	}
	if rest := len(c.src) - c.pos; n > rest {
		n = rest
	}
	c.pos += n
	return n
}

// SkipInsignificant advances past whitespace and line comments. A line
// comment starts at a backslash and extends through the next newline, or
// to end of input when no newline follows.
func (c *Cursor) SkipInsignificant() {
	for c.pos < len(c.src) {
		r, size := utf8.DecodeRuneInString(c.src[c.pos:])
		if IsSpace(r) {
			c.pos += size
			continue
		}
		if r == commentMarker {
			nl := strings.IndexByte(c.src[c.pos:], '\n')
			if nl < 0 {
				c.pos = len(c.src)
			} else {
				c.pos += nl + 1
			}
			continue
		}
		break
	}
}

// IsSpace reports whether r is insignificant whitespace. Besides
// unicode.IsSpace it accepts the ASCII file, group, record and unit
// separators (0x1C-0x1F).
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Match skips insignificant content and then tries re anchored at the
// current position. On success the cursor advances past the match and the
// matched text is returned. On failure it returns ("", false); the skip is
// not undone. Patterns must be built with Anchored.
func (c *Cursor) Match(re *regexp.Regexp) (string, bool) {
	c.SkipInsignificant()
	loc := re.FindStringIndex(c.src[c.pos:])
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return "", false
	}
	text := c.src[c.pos : c.pos+loc[1]]
	c.pos += loc[1]
	return text, true
}

// Position returns the 1-based line and column of byte offset pos.
// Columns count runes since the last newline.
func (c *Cursor) Position(pos int) (line, col int) {
	if pos > len(c.src) {
		pos = len(c.src)
	}
	before := c.src[:pos]
	line = strings.Count(before, "\n") + 1
	lastNL := strings.LastIndexByte(before, '\n')
	col = utf8.RuneCountInString(before[lastNL+1:]) + 1
	return line, col
}

// Anchored compiles pattern so that it only matches at the start of the
// input handed to Match.
func Anchored(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`\A(?:` + pattern + `)`)
}
