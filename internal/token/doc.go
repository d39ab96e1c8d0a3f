// Package token defines the lexical vocabulary of the class-definition language.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Whitespace and comments never appear as tokens; they are kept as
//     leading Trivia of the next token (or of EOF).
//   - Semicolon is a synchronization marker for error recovery only: the
//     lexer never produces it.
//   - Raw identifiers keep their backticks in Text; IdentName strips them.
package token
