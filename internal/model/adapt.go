package model

import (
	"dialang/internal/ast"
)

// FromProgram drops spans and error placeholders from prog.
func FromProgram(prog *ast.Program) *Model {
	m := New()
	for _, st := range prog.Statements {
		switch s := st.Value.(type) {
		case *ast.Class:
			m.AddClass(adaptClass(s))
		case *ast.AnnotatedBlock:
			tag := s.Annotation.String()
			m.Blocks[tag] = append(m.Blocks[tag], adaptBlock(s))
		}
	}
	return m
}

func adaptClass(c *ast.Class) *Class {
	out := &Class{Name: c.Name.Value}
	for _, a := range c.Attributes {
		out.Attributes = append(out.Attributes, adaptAttribute(a.Value))
	}
	for _, m := range c.Methods {
		out.Methods = append(out.Methods, adaptMethod(m.Value))
	}
	return out
}

func adaptAttribute(a ast.Attribute) Attribute {
	return Attribute{Name: a.Name.Value, Type: value(a.Type)}
}

func adaptMethod(m ast.Method) Method {
	out := Method{Name: m.Name.Value, RetType: value(m.RetType)}
	for _, p := range m.Parameters {
		out.Parameters = append(out.Parameters, adaptAttribute(p.Value))
	}
	if m.Body != nil {
		out.Body = flatten(&m.Body.Value)
	}
	return out
}

// flatten turns an expression into body statements. Nested lists are
// spliced in place; placeholders disappear.
func flatten(e ast.Expr) []Statement {
	switch e := e.(type) {
	case *ast.FuncCall:
		c := adaptCall(e)
		return []Statement{{Kind: StmtCall, Root: c.Root, Access: c.Access, Args: c.Args}}
	case *ast.Assignment:
		return []Statement{{Kind: StmtAssign, Name: e.Name.Value, Expr: flatten(e.Expr.Value)}}
	case *ast.ExprList:
		var out []Statement
		for _, it := range e.Items {
			out = append(out, flatten(it.Value)...)
		}
		return out
	}
	return nil
}

func adaptBlock(b *ast.AnnotatedBlock) Block {
	out := Block{Annotation: b.Annotation.String()}
	for _, el := range b.Elements {
		if call, ok := el.Value.(*ast.FuncCall); ok {
			out.Calls = append(out.Calls, adaptCall(call))
		}
	}
	return out
}

func adaptCall(c *ast.FuncCall) Call {
	out := Call{Root: c.Root.Value, Access: value(c.Access)}
	for _, a := range c.Args {
		out.Args = append(out.Args, a.Value)
	}
	return out
}

func value(s *ast.Spanned[string]) *string {
	if s == nil {
		return nil
	}
	v := s.Value
	return &v
}
