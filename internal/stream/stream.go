// Package stream provides the immutable token sequence the grammar consumes.
//
// A Stream is a value: every operation returns new streams that share the
// underlying token slice. An empty stream still knows where it sits in the
// file, so failures at end of input get a meaningful location.
package stream

import (
	"dialang/internal/source"
	"dialang/internal/token"
)

type Stream struct {
	toks []token.Token
	file source.FileID
	off  uint32 // start of toks[0], or the position of what follows when empty
}

// New builds the root stream. A trailing EOF token is dropped; the grammar
// detects end of input through Empty.
func New(toks []token.Token) Stream {
	var file source.FileID
	if n := len(toks); n > 0 {
		file = toks[n-1].Span.File
		if toks[n-1].Kind == token.EOF {
			toks = toks[:n-1]
		}
	}
	s := Stream{toks: toks, file: file}
	if len(toks) > 0 {
		s.off = toks[0].Span.Start
	}
	return s
}

func (s Stream) Len() int       { return len(s.toks) }
func (s Stream) Empty() bool    { return len(s.toks) == 0 }
func (s Stream) Offset() uint32 { return s.off }

// Tokens exposes the remaining tokens. Callers must not modify them.
func (s Stream) Tokens() []token.Token { return s.toks }

// Front returns the first token.
func (s Stream) Front() (token.Token, bool) {
	if len(s.toks) == 0 {
		return token.Token{}, false
	}
	return s.toks[0], true
}

// At reports whether the first token has kind k.
func (s Stream) At(k token.Kind) bool {
	return len(s.toks) > 0 && s.toks[0].Kind == k
}

// Split returns the first n tokens and the rest. n is clamped to Len.
// An empty head sits at the front of rest; an empty rest sits at the end of
// the head's last token.
func (s Stream) Split(n int) (head, rest Stream) {
	n = max(0, min(n, len(s.toks)))
	head = Stream{toks: s.toks[:n:n], file: s.file, off: s.off}
	rest = Stream{toks: s.toks[n:], file: s.file}
	switch {
	case n < len(s.toks):
		rest.off = s.toks[n].Span.Start
	case n > 0:
		rest.off = s.toks[n-1].Span.End
	default:
		rest.off = s.off
	}
	return head, rest
}

// Take returns the first n tokens.
func (s Stream) Take(n int) Stream {
	head, _ := s.Split(n)
	return head
}

// Skip drops the first n tokens.
func (s Stream) Skip(n int) Stream {
	_, rest := s.Split(n)
	return rest
}

// Position returns the index of the first token satisfying pred, or -1.
func (s Stream) Position(pred func(token.Token) bool) int {
	for i, tok := range s.toks {
		if pred(tok) {
			return i
		}
	}
	return -1
}

// Span covers every token in the stream. An empty stream reports the
// one-byte span at its offset.
func (s Stream) Span() source.Span {
	if len(s.toks) == 0 {
		return source.Span{File: s.file, Start: s.off, End: s.off + 1}
	}
	return s.toks[0].Span.Cover(s.toks[len(s.toks)-1].Span)
}

// Consumed returns the span of the tokens between s and rest, a suffix of s.
// When nothing was consumed the span is zero-width at the front of s.
func (s Stream) Consumed(rest Stream) source.Span {
	n := len(s.toks) - len(rest.toks)
	if n <= 0 {
		return source.Span{File: s.file, Start: s.off, End: s.off}
	}
	return s.toks[0].Span.Cover(s.toks[n-1].Span)
}
