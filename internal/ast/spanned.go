package ast

import "dialang/internal/source"

// Spanned pairs a value with the source range it came from.
type Spanned[T any] struct {
	Value T
	Span  source.Span
}

// At wraps v with sp.
func At[T any](v T, sp source.Span) Spanned[T] {
	return Spanned[T]{Value: v, Span: sp}
}

// Ptr is At returning a pointer, for optional children.
func Ptr[T any](v T, sp source.Span) *Spanned[T] {
	return &Spanned[T]{Value: v, Span: sp}
}
