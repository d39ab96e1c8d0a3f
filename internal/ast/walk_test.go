package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func str(s string) Spanned[string] { return Spanned[string]{Value: s} }

func sampleProgram() *Program {
	call := &FuncCall{Root: str("g")}
	body := &ExprList{Items: []Spanned[Expr]{
		{Value: &Assignment{Name: str("r"), Expr: Spanned[Expr]{Value: call}}},
		{Value: &ExprList{Items: []Spanned[Expr]{{Value: &FuncCall{Root: str("h")}}}}},
	}}
	return &Program{Statements: []Spanned[Statement]{
		{Value: &Class{Name: str("A"), Methods: []Spanned[Method]{
			{Value: Method{Name: str("f"), Body: &Spanned[ExprList]{Value: *body}}},
		}}},
		{Value: &ErrorPlaceholder{Message: "expected class name"}},
		{Value: &AnnotatedBlock{Annotation: SequenceEntrypoint, Elements: []Spanned[Expr]{{Value: &FuncCall{Root: str("main")}}}}},
	}}
}

func nodeName(n any) string {
	switch n := n.(type) {
	case *Class:
		return "class " + n.Name.Value
	case *AnnotatedBlock:
		return "@" + n.Annotation.String()
	case *ErrorPlaceholder:
		return "error"
	case *Assignment:
		return "assign " + n.Name.Value
	case *FuncCall:
		return "call " + n.Root.Value
	case *ExprList:
		return "list"
	}
	return "?"
}

func TestInspectOrder(t *testing.T) {
	var got []string
	sampleProgram().Inspect(func(n any) bool {
		got = append(got, nodeName(n))
		return true
	})
	want := []string{
		"class A", "assign r", "call g", "list", "call h",
		"error",
		"@SequenceEntrypoint", "call main",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("visit order (-want +got):\n%s", diff)
	}
}

func TestInspectPrunes(t *testing.T) {
	var got []string
	sampleProgram().Inspect(func(n any) bool {
		got = append(got, nodeName(n))
		_, isClass := n.(*Class)
		return !isClass
	})
	want := []string{"class A", "error", "@SequenceEntrypoint", "call main"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("visit order (-want +got):\n%s", diff)
	}
}

func TestClassesAndBlocks(t *testing.T) {
	p := sampleProgram()
	if len(p.Classes()) != 1 || p.Classes()[0].Name.Value != "A" {
		t.Fatalf("Classes = %v", p.Classes())
	}
	if len(p.Blocks()) != 1 || p.Blocks()[0].Annotation != SequenceEntrypoint {
		t.Fatalf("Blocks = %v", p.Blocks())
	}
}
