package lexer

import (
	"unicode/utf8"
)

// bumpRune consumes one UTF-8 encoded character; invalid bytes count as one.
func (lx *Lexer) bumpRune() {
	if lx.cursor.EOF() {
		return
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		lx.cursor.Bump()
		return
	}
	_, sz := utf8.DecodeRune(lx.cursor.Rest())
	lx.cursor.Advance(sz)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}
