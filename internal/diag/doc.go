// Package diag defines the diagnostic model shared by the lexer and the parser.
//
// A Diagnostic records one finding: severity, stable code, message and the
// primary span, plus optional notes pointing at related source. Producers
// emit through the Reporter interface so they never depend on storage; Bag is
// the ordered, append-only sink used by one lex+parse run. A Bag must not be
// shared between concurrent runs.
//
// Package diag does no formatting beyond the single-line short form used by
// tests; rendering lives in internal/diagfmt.
package diag
