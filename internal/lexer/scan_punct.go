package lexer

import (
	"dialang/internal/token"
)

var punct = [256]token.Kind{
	'=': token.Assign,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	'.': token.Dot,
	':': token.Colon,
	'#': token.Hash,
}

// scanPunct matches the '=' operator and the single-character separators.
func (lx *Lexer) scanPunct() (token.Token, bool) {
	k := punct[lx.cursor.Peek()]
	if k == token.Invalid {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}, true
}
