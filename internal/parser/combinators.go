package parser

import (
	"fmt"

	"dialang/internal/ast"
	"dialang/internal/stream"
	"dialang/internal/token"
)

// rule is a grammar production. On success it returns the value and the
// remaining stream; on failure the stream is unchanged from the caller's
// point of view and the failure describes the mismatch.
type rule[T any] func(s stream.Stream) (T, stream.Stream, *Failure)

// expect matches one token of kind k.
func expect(k token.Kind, what string) rule[token.Token] {
	return func(s stream.Stream) (token.Token, stream.Stream, *Failure) {
		if !s.At(k) {
			return token.Token{}, s, baseFailure(s, what)
		}
		tok, _ := s.Front()
		return tok, s.Skip(1), nil
	}
}

// contextual labels any failure of r.
func contextual[T any](label string, r rule[T]) rule[T] {
	return func(s stream.Stream) (T, stream.Stream, *Failure) {
		v, rest, f := r(s)
		if f != nil {
			return v, s, f.withContext(s, label)
		}
		return v, rest, nil
	}
}

// committed makes any failure of r hard.
func committed[T any](r rule[T]) rule[T] {
	return func(s stream.Stream) (T, stream.Stream, *Failure) {
		v, rest, f := r(s)
		if f != nil {
			return v, s, f.commit()
		}
		return v, rest, nil
	}
}

// opt returns nil when r fails softly.
func opt[T any](r rule[T]) rule[*T] {
	return func(s stream.Stream) (*T, stream.Stream, *Failure) {
		v, rest, f := r(s)
		switch {
		case f == nil:
			return &v, rest, nil
		case f.Fatal:
			return nil, s, f
		default:
			return nil, s, nil
		}
	}
}

// preceded runs prefix and then r, keeping r's value. Once prefix matched,
// r is committed.
func preceded[P, T any](prefix rule[P], r rule[T]) rule[T] {
	r = committed(r)
	return func(s stream.Stream) (T, stream.Stream, *Failure) {
		var zero T
		_, rest, f := prefix(s)
		if f != nil {
			return zero, s, f
		}
		v, rest, f := r(rest)
		if f != nil {
			return zero, s, f
		}
		return v, rest, nil
	}
}

// many0 applies r until it fails softly. Hard failures propagate.
func many0[T any](r rule[T]) rule[[]T] {
	return func(s stream.Stream) ([]T, stream.Stream, *Failure) {
		var out []T
		cur := s
		for {
			v, rest, f := r(cur)
			if f != nil {
				if f.Fatal {
					return nil, s, f
				}
				return out, cur, nil
			}
			if rest.Len() >= cur.Len() {
				panic(fmt.Sprintf("parser: repeated rule made no progress at offset %d", cur.Offset()))
			}
			out = append(out, v)
			cur = rest
		}
	}
}

// separatedList0 matches zero or more r separated by sep. A separator not
// followed by an element is left unconsumed.
func separatedList0[S, T any](sep rule[S], r rule[T]) rule[[]T] {
	return func(s stream.Stream) ([]T, stream.Stream, *Failure) {
		var out []T
		v, cur, f := r(s)
		if f != nil {
			if f.Fatal {
				return nil, s, f
			}
			return nil, s, nil
		}
		out = append(out, v)
		for {
			_, afterSep, f := sep(cur)
			if f != nil {
				if f.Fatal {
					return nil, s, f
				}
				return out, cur, nil
			}
			v, rest, f := r(afterSep)
			if f != nil {
				if f.Fatal {
					return nil, s, f
				}
				return out, cur, nil
			}
			out = append(out, v)
			cur = rest
		}
	}
}

// choice tries each alternative in order. The first success wins; a hard
// failure stops the search; otherwise the soft failures are collected.
func choice[T any](alts ...rule[T]) rule[T] {
	return func(s stream.Stream) (T, stream.Stream, *Failure) {
		var zero T
		fails := make([]*Failure, 0, len(alts))
		for _, alt := range alts {
			v, rest, f := alt(s)
			if f == nil {
				return v, rest, nil
			}
			if f.Fatal {
				return zero, s, f
			}
			fails = append(fails, f)
		}
		return zero, s, altFailure(fails)
	}
}

// spanned attaches the span of the consumed tokens to r's value.
func spanned[T any](r rule[T]) rule[ast.Spanned[T]] {
	return func(s stream.Stream) (ast.Spanned[T], stream.Stream, *Failure) {
		v, rest, f := r(s)
		if f != nil {
			return ast.Spanned[T]{}, s, f
		}
		return ast.At(v, s.Consumed(rest)), rest, nil
	}
}

// mapped converts the value of r.
func mapped[T, U any](r rule[T], fn func(T) U) rule[U] {
	return func(s stream.Stream) (U, stream.Stream, *Failure) {
		v, rest, f := r(s)
		if f != nil {
			var zero U
			return zero, s, f
		}
		return fn(v), rest, nil
	}
}
