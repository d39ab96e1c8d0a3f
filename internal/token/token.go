package token

import (
	"strings"

	"dialang/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsRaw reports whether the token is a backtick-quoted identifier.
func (t Token) IsRaw() bool {
	return t.Kind == Ident && len(t.Text) >= 2 && t.Text[0] == '`'
}

// IdentName returns the identifier value: Text without the raw-identifier backticks.
func (t Token) IdentName() string {
	if t.IsRaw() {
		return strings.TrimSuffix(t.Text[1:], "`")
	}
	return t.Text
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return t.Text
}
