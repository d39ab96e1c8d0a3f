package lexer

import (
	"dialang/internal/diag"
	"dialang/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil: errors are dropped, lexing continues
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
