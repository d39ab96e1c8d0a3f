package parser

import (
	"testing"

	"dialang/internal/ast"
	"dialang/internal/stream"
	"dialang/internal/token"
)

func TestOptBacktracksSoftOnly(t *testing.T) {
	s := streamOf(t, "x")
	v, rest, f := opt(expect(token.Colon, "':'"))(s)
	if f != nil || v != nil || rest.Len() != 1 {
		t.Fatalf("soft failure: v=%v rest=%d f=%v", v, rest.Len(), f)
	}
	_, _, f = opt(committed(expect(token.Colon, "':'")))(s)
	if f == nil || !f.Fatal {
		t.Fatalf("hard failure should propagate, got %v", f)
	}
}

func TestMany0StopsAndPropagates(t *testing.T) {
	s := streamOf(t, "a b c :")
	items, rest, f := many0(ident)(s)
	if f != nil || len(items) != 3 || rest.Len() != 1 {
		t.Fatalf("items %d rest %d f %v", len(items), rest.Len(), f)
	}

	hard := func(s stream.Stream) (ast.Spanned[string], stream.Stream, *Failure) {
		if s.At(token.Colon) {
			return ast.Spanned[string]{}, s, baseFailure(s, "x").commit()
		}
		return identifier(s)
	}
	_, rest, f = many0(rule[ast.Spanned[string]](hard))(s)
	if f == nil || !f.Fatal || rest.Len() != s.Len() {
		t.Fatalf("hard failure should propagate from many0")
	}
}

func TestMany0PanicsWithoutProgress(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	empty := func(s stream.Stream) (int, stream.Stream, *Failure) { return 0, s, nil }
	many0(rule[int](empty))(streamOf(t, "a"))
}

func TestSeparatedListLeavesTrailingSeparator(t *testing.T) {
	s := streamOf(t, "a, b, )")
	items, rest, f := separatedList0(comma, ident)(s)
	if f != nil || len(items) != 2 {
		t.Fatalf("items %d f %v", len(items), f)
	}
	if !rest.At(token.Comma) {
		t.Fatalf("trailing comma should stay, front is %v", rest.Tokens()[0].Kind)
	}
}

func TestChoiceCollectsSoftFailures(t *testing.T) {
	s := streamOf(t, "x")
	_, rest, f := choice(expect(token.KwClass, "'class'"), expect(token.KwFn, "'fn'"))(s)
	if f == nil || f.Kind != FailAlt || len(f.Alts) != 2 || rest.Len() != 1 {
		t.Fatalf("f = %+v", f)
	}
}

func TestSpannedUsesConsumedTokens(t *testing.T) {
	s := streamOf(t, "  foo  bar")
	v, _, f := spanned(many0(ident))(s)
	if f != nil {
		t.Fatal(f)
	}
	if v.Span.Start != 2 || v.Span.End != 10 {
		t.Fatalf("span = %v", v.Span)
	}
}
