package lexer_test

import (
	"strings"
	"testing"

	"dialang/internal/diag"
	"dialang/internal/lexer"
	"dialang/internal/source"
	"dialang/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cls", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func lexAll(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cls", []byte(input))
	bag := diag.NewBag(0)
	toks := lexer.Lex(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func expectKinds(t *testing.T, toks []token.Token, want ...token.Kind) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), kinds(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v (%q), want %v", i, toks[i].Kind, toks[i].Text, k)
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexClassDeclaration(t *testing.T) {
	toks, bag := lexAll(t, "class Foo { bar: Int fn baz(): Int { bar.qux() } }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	expectKinds(t, toks,
		token.KwClass, token.Ident, token.LBrace,
		token.Ident, token.Colon, token.Ident,
		token.KwFn, token.Ident, token.LParen, token.RParen, token.Colon, token.Ident,
		token.LBrace, token.Ident, token.Dot, token.Ident, token.LParen, token.RParen, token.RBrace,
		token.RBrace, token.EOF,
	)
	if toks[1].Text != "Foo" || toks[1].Span != (source.Span{File: toks[1].Span.File, Start: 6, End: 9}) {
		t.Errorf("Foo token = %q %v", toks[1].Text, toks[1].Span)
	}
}

func TestKeywordsAreExact(t *testing.T) {
	cases := []struct {
		in   string
		want token.Kind
	}{
		{"fn", token.KwFn},
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"while", token.KwWhile},
		{"for", token.KwFor},
		{"in", token.KwIn},
		{"class", token.KwClass},
		{"struct", token.KwClass},
		{"Class", token.Ident},
		{"classy", token.Ident},
		{"fn_", token.Ident},
		{"_x1", token.Ident},
	}
	for _, c := range cases {
		toks, _ := lexAll(t, c.in)
		expectKinds(t, toks, c.want, token.EOF)
	}
}

func TestRawIdentifier(t *testing.T) {
	toks, bag := lexAll(t, "`hello world` `fn`")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	expectKinds(t, toks, token.Ident, token.Ident, token.EOF)
	if got := toks[0].IdentName(); got != "hello world" {
		t.Errorf("IdentName = %q", got)
	}
	if got := toks[1].IdentName(); got != "fn" {
		t.Errorf("raw keyword IdentName = %q", got)
	}
	if toks[0].Span.Start != 0 || toks[0].Span.End != 13 {
		t.Errorf("raw span = %v, want 0..13", toks[0].Span)
	}
}

func TestUnterminatedBacktickIsInvalid(t *testing.T) {
	toks, bag := lexAll(t, "`abc")
	expectKinds(t, toks, token.Invalid, token.Ident, token.EOF)
	if bag.Len() != 1 {
		t.Fatalf("want 1 diagnostic, got %d", bag.Len())
	}
}

func TestAnnotation(t *testing.T) {
	toks, bag := lexAll(t, "@SequenceEntrypoint main()")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	expectKinds(t, toks, token.AtSequenceEntrypoint, token.Ident, token.LParen, token.RParen, token.EOF)
	if toks[0].Span.Len() != uint32(len("@SequenceEntrypoint")) {
		t.Errorf("annotation span = %v", toks[0].Span)
	}
}

func TestUnknownAnnotationLeavesAtInvalid(t *testing.T) {
	toks, bag := lexAll(t, "@Other")
	expectKinds(t, toks, token.Invalid, token.Ident, token.EOF)
	if toks[1].Text != "Other" {
		t.Errorf("got %q after '@'", toks[1].Text)
	}
	if bag.Len() != 1 {
		t.Fatalf("want 1 diagnostic, got %d", bag.Len())
	}
}

func TestAnnotationTagNeedsWholeWord(t *testing.T) {
	toks, bag := lexAll(t, "@SequenceEntrypointX")
	expectKinds(t, toks, token.Invalid, token.Ident, token.EOF)
	if toks[1].Text != "SequenceEntrypointX" {
		t.Errorf("got %q after '@'", toks[1].Text)
	}
	if bag.Len() != 1 {
		t.Fatalf("want 1 diagnostic, got %d", bag.Len())
	}
}

func TestNonASCIICharacter(t *testing.T) {
	toks, bag := lexAll(t, "class A { é }")
	expectKinds(t, toks, token.KwClass, token.Ident, token.LBrace, token.Invalid, token.RBrace, token.EOF)

	bad := toks[3]
	if bad.Text != "é" || bad.Span.Start != 10 || bad.Span.End != 12 {
		t.Errorf("invalid token = %q %v", bad.Text, bad.Span)
	}
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("want 1 diagnostic, got %d", len(items))
	}
	if items[0].Code != diag.LexUnknownChar || items[0].Message != "Unknown (non-ASCII) character" {
		t.Errorf("diagnostic = %v %q", items[0].Code, items[0].Message)
	}
	if items[0].Primary != bad.Span {
		t.Errorf("diagnostic span %v, token span %v", items[0].Primary, bad.Span)
	}
}

func TestTriviaAttachesToNextToken(t *testing.T) {
	toks, _ := lexAll(t, "  // note\nfoo // tail\n")
	expectKinds(t, toks, token.Ident, token.EOF)

	lead := toks[0].Leading
	if len(lead) != 3 {
		t.Fatalf("leading trivia = %d, want 3", len(lead))
	}
	if lead[0].Kind != token.TriviaSpace || lead[1].Kind != token.TriviaLineComment || lead[2].Kind != token.TriviaSpace {
		t.Errorf("trivia kinds = %v %v %v", lead[0].Kind, lead[1].Kind, lead[2].Kind)
	}
	if lead[1].Text != "// note" {
		t.Errorf("comment text = %q", lead[1].Text)
	}
	if n := len(toks[1].Leading); n != 3 {
		t.Errorf("EOF should carry trailing trivia, got %d", n)
	}
}

func TestSingleSlashIsInvalid(t *testing.T) {
	toks, _ := lexAll(t, "a / b")
	expectKinds(t, toks, token.Ident, token.Invalid, token.Ident, token.EOF)
}

func TestSemicolonIsNotLexed(t *testing.T) {
	toks, bag := lexAll(t, "a;")
	expectKinds(t, toks, token.Ident, token.Invalid, token.EOF)
	if bag.Len() != 1 {
		t.Fatalf("want 1 diagnostic, got %d", bag.Len())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
	for k := 0; k < 2; k++ {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("want repeated EOF, got %v", n.Kind)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	toks, bag := lexAll(t, "")
	expectKinds(t, toks, token.EOF)
	if bag.Len() != 0 || len(toks[0].Leading) != 0 {
		t.Fatalf("empty input produced diagnostics or trivia")
	}
}

// Every byte of the input is covered by exactly one token or trivia span,
// in order and without gaps.
func TestSourceCoverage(t *testing.T) {
	inputs := []string{
		"class Foo { bar: Int fn baz(): Int { bar.qux() } }",
		"  @SequenceEntrypoint\n\tmain() // go\n",
		"`raw id` = x.y(a, b) # ; $ é ü",
		"@Nope `open",
		strings.Repeat("fn x ( ) ", 20),
	}
	for _, in := range inputs {
		toks, _ := lexAll(t, in)
		var off uint32
		var rebuilt strings.Builder
		for _, tok := range toks {
			for _, tr := range tok.Leading {
				if tr.Span.Start != off {
					t.Fatalf("%q: gap before trivia at %d (cursor %d)", in, tr.Span.Start, off)
				}
				rebuilt.WriteString(tr.Text)
				off = tr.Span.End
			}
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Start != off {
				t.Fatalf("%q: gap before %v at %d (cursor %d)", in, tok.Kind, tok.Span.Start, off)
			}
			rebuilt.WriteString(tok.Text)
			off = tok.Span.End
		}
		if rebuilt.String() != in {
			t.Errorf("rebuilt %q, want %q", rebuilt.String(), in)
		}
	}
}
