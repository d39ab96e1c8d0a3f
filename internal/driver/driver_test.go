package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"dialang/internal/diag"
	"dialang/internal/observ"
	"dialang/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.cls", "class A { }")

	res, err := Tokenize(path, Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []token.Kind{token.KwClass, token.Ident, token.LBrace, token.RBrace, token.EOF}
	var got []token.Kind
	for _, tok := range res.Tokens {
		got = append(got, tok.Kind)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token kinds (-want +got):\n%s", diff)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(filepath.Join(t.TempDir(), "missing.cls"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestParseBuildsModelAndLogs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.cls", "class A { x: Int fn f() { g() } }\nclass { }")
	core, logs := observer.New(zap.DebugLevel)
	timer := observ.NewTimer()

	res, err := Parse(context.Background(), path, Options{Logger: zap.New(core), Timer: timer})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := res.Model.Order; !cmp.Equal(got, []string{"A"}) {
		t.Fatalf("classes = %v", got)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.SynExpected {
		t.Fatalf("expected one SYN2001, got %v", res.Bag.Items())
	}
	if res.Recovered != 1 {
		t.Fatalf("recovered = %d, want 1", res.Recovered)
	}

	entries := logs.FilterMessage("parsed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one parsed log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["diagnostics"]; got != int64(1) {
		t.Fatalf("logged diagnostics = %v", got)
	}

	var names []string
	for _, p := range timer.Phases() {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"parse", "adapt"}, names); diff != "" {
		t.Fatalf("phases (-want +got):\n%s", diff)
	}
}

func TestParseCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.cls", "class A { }")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Parse(ctx, path, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseDirOrderAndMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.cls", "class B { } class A { y: Int }")
	writeFile(t, dir, "a.cls", "class A { x: Int }")
	writeFile(t, dir, "nested/c.cls", "@SequenceEntrypoint main()")
	writeFile(t, dir, "notes.txt", "class Ignored { }")

	fs, results, err := ParseDir(context.Background(), dir, 2, Options{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	var paths []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		paths = append(paths, filepath.ToSlash(rel))
		if r.Program == nil || fs.Get(r.FileID).Path != filepath.ToSlash(filepath.Clean(r.Path)) {
			t.Fatalf("result for %s not bound to its file", r.Path)
		}
	}
	if diff := cmp.Diff([]string{"a.cls", "b.cls", "nested/c.cls"}, paths); diff != "" {
		t.Fatalf("file order (-want +got):\n%s", diff)
	}

	m, bag := MergeDir(results, 0)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if diff := cmp.Diff([]string{"A", "B"}, m.Order); diff != "" {
		t.Fatalf("class order (-want +got):\n%s", diff)
	}
	if got := m.Classes["A"].Attributes[0].Name; got != "y" {
		t.Fatalf("later definition of A should win, got attribute %q", got)
	}
	if len(m.Blocks["SequenceEntrypoint"]) != 1 {
		t.Fatalf("expected one entry point block, got %v", m.Blocks)
	}
}

func TestParseDirEmpty(t *testing.T) {
	_, results, err := ParseDir(context.Background(), t.TempDir(), 0, Options{})
	if err != nil || len(results) != 0 {
		t.Fatalf("expected no results, got %v, %v", results, err)
	}
}

func TestParseDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.cls", "class A { }")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ParseDir(ctx, dir, 1, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseDirTestdata(t *testing.T) {
	_, results, err := ParseDir(context.Background(), filepath.Join("..", "..", "testdata"), 0, Options{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	m, bag := MergeDir(results, 0)
	if diff := cmp.Diff([]string{"Order", "Customer", "Cart"}, m.Order); diff != "" {
		t.Fatalf("class order (-want +got):\n%s", diff)
	}
	if bag.Len() != 1 || bag.Items()[0].Message != "expected class name" {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	checkout := m.Classes["Customer"].Methods[0]
	if got := checkout.Signature(); got != "checkout(cart: Cart): Order" {
		t.Fatalf("signature = %q", got)
	}
	if len(checkout.Body) != 2 {
		t.Fatalf("checkout body = %+v", checkout.Body)
	}
}
