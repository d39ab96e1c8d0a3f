package lexer

import (
	"dialang/internal/diag"
	"dialang/internal/source"
	"dialang/internal/token"
)

// Lexer turns file content into significant tokens. Whitespace and comments
// are attached to the following token as Leading trivia.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
	hold   []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Lex runs a fresh lexer over file and returns every token, EOF included.
func Lex(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// Next returns the next significant token with its leading trivia.
// After the end of input it keeps returning EOF; the first EOF carries the
// trailing trivia of the file.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	var tok token.Token
	if lx.cursor.EOF() {
		tok = token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	} else {
		tok = lx.scanToken()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is the zero-width span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// scanToken tries the rules in priority order: raw identifier, '=',
// separators, annotation tag, identifier or keyword. Anything else is one
// Invalid character.
func (lx *Lexer) scanToken() token.Token {
	if tok, ok := lx.scanRawIdent(); ok {
		return tok
	}
	if tok, ok := lx.scanPunct(); ok {
		return tok
	}
	if tok, ok := lx.scanAnnotation(); ok {
		return tok
	}
	if tok, ok := lx.scanIdentOrKeyword(); ok {
		return tok
	}
	return lx.scanInvalid()
}

func (lx *Lexer) scanInvalid() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "Unknown (non-ASCII) character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
