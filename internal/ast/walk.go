package ast

// Classes returns the class statements of p in source order.
func (p *Program) Classes() []*Class {
	var out []*Class
	for _, st := range p.Statements {
		if c, ok := st.Value.(*Class); ok {
			out = append(out, c)
		}
	}
	return out
}

// Blocks returns the annotated blocks of p in source order.
func (p *Program) Blocks() []*AnnotatedBlock {
	var out []*AnnotatedBlock
	for _, st := range p.Statements {
		if b, ok := st.Value.(*AnnotatedBlock); ok {
			out = append(out, b)
		}
	}
	return out
}

// Inspect calls fn for every statement and, depth-first, every expression
// reachable from method bodies and annotated blocks.
func (p *Program) Inspect(fn func(node any) bool) {
	for _, st := range p.Statements {
		if !fn(st.Value) {
			continue
		}
		switch s := st.Value.(type) {
		case *Class:
			for _, m := range s.Methods {
				if m.Value.Body != nil {
					inspectExprs(m.Value.Body.Value.Items, fn)
				}
			}
		case *AnnotatedBlock:
			inspectExprs(s.Elements, fn)
		}
	}
}

func inspectExprs(items []Spanned[Expr], fn func(node any) bool) {
	for _, it := range items {
		if !fn(it.Value) {
			continue
		}
		switch e := it.Value.(type) {
		case *Assignment:
			inspectExprs([]Spanned[Expr]{e.Expr}, fn)
		case *ExprList:
			inspectExprs(e.Items, fn)
		}
	}
}
