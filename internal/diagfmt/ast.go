package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dialang/internal/ast"
	"dialang/internal/model"
	"dialang/internal/source"
)

// ASTNodeOutput is the JSON form of a tree node.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatProgramPretty prints the program as an indented outline.
func FormatProgramPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	root := buildProgramNode(prog, fs)
	if _, err := fmt.Fprintln(w, root.label); err != nil {
		return err
	}
	return writeOutline(w, root.children, "")
}

func writeOutline(w io.Writer, nodes []*treeNode, prefix string) error {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label); err != nil {
			return err
		}
		if err := writeOutline(w, n.children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// FormatProgramJSON prints the program as nested JSON nodes.
func FormatProgramJSON(w io.Writer, prog *ast.Program) error {
	out := ASTNodeOutput{Type: "Program", Span: prog.Span}
	for _, st := range prog.Statements {
		out.Children = append(out.Children, statementJSON(st))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func statementJSON(st ast.Spanned[ast.Statement]) ASTNodeOutput {
	switch s := st.Value.(type) {
	case *ast.Class:
		node := ASTNodeOutput{Type: "Class", Span: st.Span, Text: s.Name.Value}
		for _, a := range s.Attributes {
			node.Children = append(node.Children, attributeJSON("Attribute", a))
		}
		for _, m := range s.Methods {
			node.Children = append(node.Children, methodJSON(m))
		}
		return node
	case *ast.AnnotatedBlock:
		node := ASTNodeOutput{Type: "AnnotatedBlock", Span: st.Span, Text: s.Annotation.String()}
		for _, e := range s.Elements {
			node.Children = append(node.Children, exprJSON(e))
		}
		return node
	case *ast.ErrorPlaceholder:
		return ASTNodeOutput{Type: "Error", Span: st.Span, Text: s.Message}
	}
	return ASTNodeOutput{Type: "Unknown", Span: st.Span}
}

func attributeJSON(kind string, a ast.Spanned[ast.Attribute]) ASTNodeOutput {
	node := ASTNodeOutput{Type: kind, Span: a.Span, Text: a.Value.Name.Value}
	if a.Value.Type != nil {
		node.Fields = map[string]any{"type": a.Value.Type.Value}
	}
	return node
}

func methodJSON(m ast.Spanned[ast.Method]) ASTNodeOutput {
	node := ASTNodeOutput{Type: "Method", Span: m.Span, Text: m.Value.Name.Value}
	fields := map[string]any{}
	if m.Value.RetType != nil {
		fields["ret_type"] = m.Value.RetType.Value
	}
	fields["has_body"] = m.Value.Body != nil
	node.Fields = fields
	for _, p := range m.Value.Parameters {
		node.Children = append(node.Children, attributeJSON("Parameter", p))
	}
	if m.Value.Body != nil {
		for _, e := range m.Value.Body.Value.Items {
			node.Children = append(node.Children, exprJSON(e))
		}
	}
	return node
}

func exprJSON(e ast.Spanned[ast.Expr]) ASTNodeOutput {
	switch x := e.Value.(type) {
	case *ast.FuncCall:
		fields := map[string]any{"args": callArgs(x)}
		if x.Access != nil {
			fields["access"] = x.Access.Value
		}
		return ASTNodeOutput{Type: "FuncCall", Span: e.Span, Text: x.Root.Value, Fields: fields}
	case *ast.Assignment:
		node := ASTNodeOutput{Type: "Assignment", Span: e.Span, Text: x.Name.Value}
		if x.Type != nil {
			node.Fields = map[string]any{"type": x.Type.Value}
		}
		node.Children = []ASTNodeOutput{exprJSON(x.Expr)}
		return node
	case *ast.ExprList:
		node := ASTNodeOutput{Type: "ExprList", Span: e.Span}
		for _, it := range x.Items {
			node.Children = append(node.Children, exprJSON(it))
		}
		return node
	case *ast.ErrorPlaceholder:
		return ASTNodeOutput{Type: "Error", Span: e.Span, Text: x.Message}
	}
	return ASTNodeOutput{Type: "Unknown", Span: e.Span}
}

func callArgs(c *ast.FuncCall) []string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Value
	}
	return args
}

func formatCall(c *ast.FuncCall) string {
	target := c.Root.Value
	if c.Access != nil {
		target += "." + c.Access.Value
	}
	return target + "(" + strings.Join(callArgs(c), ", ") + ")"
}

func formatAttribute(a ast.Attribute) string {
	if a.Type == nil {
		return a.Name.Value
	}
	return a.Name.Value + ": " + a.Type.Value
}

// FormatModelJSON prints the adapted class model.
func FormatModelJSON(w io.Writer, m *model.Model) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(m)
}
