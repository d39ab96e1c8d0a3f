// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). They guard against panics, hangs and broken
// span bookkeeping on arbitrary input.
package fuzztests
