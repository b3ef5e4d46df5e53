package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokName
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  int64 // tokNumber only
	pos  int   // byte offset within the expression
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of expression"
	}
	return fmt.Sprintf("%q", t.text)
}

var punct = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
}

// lex splits src into tokens, always terminated by a tokEOF.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r < utf8.RuneSelf && punct[byte(r)] != tokEOF:
			toks = append(toks, token{kind: punct[byte(r)], text: string(r), pos: i})
			i++
		case r >= '0' && r <= '9':
			tok, err := lexNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += len(tok.text)
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(src) {
				r, size := utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			toks = append(toks, token{kind: tokName, text: src[start:i], pos: start})
		default:
			return nil, fmt.Errorf("invalid character %q", r)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

// lexNumber reads a decimal literal or a 0o, 0x or 0b prefixed literal at
// src[start:].
func lexNumber(src string, start int) (token, error) {
	end := start
	for end < len(src) && isAlnum(src[end]) {
		end++
	}
	text := src[start:end]

	base, digits := 10, text
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'o', 'O':
			base, digits = 8, text[2:]
		case 'x', 'X':
			base, digits = 16, text[2:]
		case 'b', 'B':
			base, digits = 2, text[2:]
		default:
			if strings.Trim(text, "0") != "" {
				if strings.Trim(text, "0123456789") != "" {
					return token{}, fmt.Errorf("invalid number literal: %s", text)
				}
				return token{}, fmt.Errorf("leading zeros in decimal integer literals are not permitted: %s", text)
			}
		}
	}

	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return token{}, fmt.Errorf("integer literal out of range: %s", text)
		}
		return token{}, fmt.Errorf("invalid number literal: %s", text)
	}
	return token{kind: tokNumber, text: text, num: n, pos: start}, nil
}

func isAlnum(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
