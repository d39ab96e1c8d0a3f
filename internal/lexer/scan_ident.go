package lexer

import (
	"bytes"

	"dialang/internal/token"
)

// scanRawIdent matches `...`: everything up to the next backtick, verbatim.
// Without a closing backtick the rule does not apply.
func (lx *Lexer) scanRawIdent() (token.Token, bool) {
	if lx.cursor.Peek() != '`' {
		return token.Token{}, false
	}
	closing := bytes.IndexByte(lx.cursor.Rest()[1:], '`')
	if closing < 0 {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.cursor.Advance(closing + 2)
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}, true
}

// scanIdentOrKeyword matches the longest [A-Za-z_][A-Za-z0-9_]* run and
// resolves keywords case-sensitively.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, bool) {
	if !isIdentStartByte(lx.cursor.Peek()) {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.eatIdentRun()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}, true
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}, true
}

// scanAnnotation matches '@' followed by a name from the annotation table.
// An unknown name is left untouched so '@' falls through to Invalid.
func (lx *Lexer) scanAnnotation() (token.Token, bool) {
	if lx.cursor.Peek() != '@' {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	nameStart := lx.cursor.Mark()
	if !isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	lx.eatIdentRun()
	k, ok := token.LookupAnnotation(lx.text(lx.cursor.SpanFrom(nameStart)))
	if !ok {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}, true
}

func (lx *Lexer) eatIdentRun() {
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
