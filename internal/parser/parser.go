package parser

import (
	"fmt"

	"dialang/internal/ast"
	"dialang/internal/lexer"
	"dialang/internal/source"
	"dialang/internal/stream"
	"dialang/internal/token"
)

// Result is the outcome of parsing one file. Program is never nil.
type Result struct {
	Program *ast.Program
	// Recovered counts the constructs that failed and were skipped.
	Recovered int
}

// ParseFile lexes and parses file. Lexer and parser diagnostics go to
// opts.Reporter in source order of discovery.
func ParseFile(file *source.File, opts Options) Result {
	rep := &limitReporter{next: opts.Reporter, max: opts.MaxErrors}
	opts.Reporter = rep
	toks := lexer.Lex(file, lexer.Options{Reporter: rep})
	return parseTokens(toks, opts, rep)
}

// ParseTokens parses an already lexed token sequence.
func ParseTokens(toks []token.Token, opts Options) Result {
	return parseTokens(toks, opts, &limitReporter{next: opts.Reporter, max: opts.MaxErrors})
}

func parseTokens(toks []token.Token, opts Options, rep *limitReporter) Result {
	p := parser{opts: opts, rep: rep}
	root := stream.New(toks)
	prog := &ast.Program{}

	rest := root
	for !rest.Empty() {
		var st ast.Spanned[ast.Statement]
		var ok bool
		st, ok, rest = p.statement(rest)
		if ok {
			prog.Statements = append(prog.Statements, st)
		}
	}
	prog.Span = root.Consumed(rest)
	return Result{Program: prog, Recovered: p.recovered}
}

type parser struct {
	opts      Options
	rep       *limitReporter
	recovered int
}

// statement parses one top-level statement or recovers from its failure.
// ok is false when the failure produced a placeholder that is not kept.
func (p *parser) statement(s stream.Stream) (ast.Spanned[ast.Statement], bool, stream.Stream) {
	st, rest, f := topLevelStatement(s)
	if f == nil {
		return st, true, rest
	}

	rec, residue := Recover(f, p.opts)
	if residue != nil {
		rec = recoverUnexpected(residue, s, p.opts)
	}
	if rec.Rest.Len() >= s.Len() {
		panic(fmt.Sprintf("parser: recovery made no progress at offset %d", s.Offset()))
	}

	d := rec.Diagnostic
	p.rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	p.recovered++

	placeholder := ast.At[ast.Statement](&ast.ErrorPlaceholder{Message: d.Message}, s.Consumed(rec.Rest))
	return placeholder, p.opts.KeepPlaceholders, rec.Rest
}
