package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"dialang/internal/ast"
	"dialang/internal/diag"
	"dialang/internal/source"
)

type parseOutcome struct {
	fs     *source.FileSet
	file   *source.File
	result Result
	diags  []diag.Diagnostic
}

func parseSource(t *testing.T, input string) parseOutcome {
	t.Helper()
	return parseSourceWith(t, input, Options{})
}

func parseSourceWith(t *testing.T, input string, opts Options) parseOutcome {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cls", []byte(input))
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	file := fs.Get(id)
	res := ParseFile(file, opts)
	if res.Program == nil {
		t.Fatalf("ParseFile returned nil program")
	}
	return parseOutcome{fs: fs, file: file, result: res, diags: bag.Items()}
}

// ignoreSpans compares tree shape and values only.
var ignoreSpans = cmp.Options{
	cmpopts.IgnoreTypes(source.Span{}),
	cmpopts.EquateEmpty(),
}

func name(s string) ast.Spanned[string] { return ast.Spanned[string]{Value: s} }

func optName(s string) *ast.Spanned[string] { return &ast.Spanned[string]{Value: s} }

func attr(n string, typ *ast.Spanned[string]) ast.Spanned[ast.Attribute] {
	return ast.Spanned[ast.Attribute]{Value: ast.Attribute{Name: name(n), Type: typ}}
}

func expr(e ast.Expr) ast.Spanned[ast.Expr] { return ast.Spanned[ast.Expr]{Value: e} }

func stmt(s ast.Statement) ast.Spanned[ast.Statement] { return ast.Spanned[ast.Statement]{Value: s} }

func expectNoDiags(t *testing.T, out parseOutcome) {
	t.Helper()
	if len(out.diags) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatShort(out.diags, out.fs, true))
	}
}

func expectProgram(t *testing.T, out parseOutcome, want ...ast.Spanned[ast.Statement]) {
	t.Helper()
	if diff := cmp.Diff(want, out.result.Program.Statements, ignoreSpans); diff != "" {
		t.Fatalf("program mismatch (-want +got):\n%s", diff)
	}
}

func expectExprs(t *testing.T, want, got []ast.Spanned[ast.Expr]) {
	t.Helper()
	if diff := cmp.Diff(want, got, ignoreSpans); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}
