package token

import "dialang/internal/source"

type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces, tabs, CR and LF.
	TriviaSpace TriviaKind = iota
	// TriviaLineComment is "//" up to, not including, the newline.
	TriviaLineComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaLineComment:
		return "LineComment"
	}
	return "Trivia(?)"
}

// Trivia is a skipped region of source: it consumes characters but yields no token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
