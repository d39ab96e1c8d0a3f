package ast

// Expr is a method-body element: *FuncCall, *Assignment, *ExprList or
// *ErrorPlaceholder.
type Expr interface {
	exprNode()
}

// FuncCall is root(args) or root.access(args). Arguments are plain names.
type FuncCall struct {
	Root   Spanned[string]
	Access *Spanned[string]
	Args   []Spanned[string]
}

// Assignment binds the result of Expr to Name, optionally typed.
type Assignment struct {
	Name Spanned[string]
	Type *Spanned[string]
	Expr Spanned[Expr]
}

type ExprList struct {
	Items []Spanned[Expr]
}

func (*FuncCall) exprNode()         {}
func (*Assignment) exprNode()       {}
func (*ExprList) exprNode()         {}
func (*ErrorPlaceholder) exprNode() {}
