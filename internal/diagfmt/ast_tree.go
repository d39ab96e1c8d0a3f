package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"dialang/internal/ast"
	"dialang/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func leaf(format string, args ...any) *treeNode {
	return &treeNode{label: fmt.Sprintf(format, args...)}
}

// buildProgramNode turns the program into a label tree shared by the
// outline and the top-down renderer.
func buildProgramNode(prog *ast.Program, fs *source.FileSet) *treeNode {
	header := "Program"
	if fs != nil && len(prog.Statements) > 0 {
		f := fs.Get(prog.Span.File)
		header = f.FormatPath("auto", fs.BaseDir())
	}
	root := leaf("%s (span: %s)", header, formatSpan(prog.Span, fs))
	for i, st := range prog.Statements {
		root.children = append(root.children, buildStatementNode(st, fs, i))
	}
	return root
}

func buildStatementNode(st ast.Spanned[ast.Statement], fs *source.FileSet, idx int) *treeNode {
	switch s := st.Value.(type) {
	case *ast.Class:
		node := leaf("Stmt[%d]: Class %s (span: %s)", idx, s.Name.Value, formatSpan(st.Span, fs))
		for _, a := range s.Attributes {
			node.children = append(node.children, leaf("Attr %s", formatAttribute(a.Value)))
		}
		for _, m := range s.Methods {
			node.children = append(node.children, buildMethodNode(m.Value))
		}
		return node
	case *ast.AnnotatedBlock:
		node := leaf("Stmt[%d]: @%s (span: %s)", idx, s.Annotation, formatSpan(st.Span, fs))
		for _, e := range s.Elements {
			node.children = append(node.children, buildExprNode(e.Value))
		}
		return node
	case *ast.ErrorPlaceholder:
		return leaf("Stmt[%d]: <error: %s> (span: %s)", idx, s.Message, formatSpan(st.Span, fs))
	}
	return leaf("Stmt[%d]: <nil>", idx)
}

func buildMethodNode(m ast.Method) *treeNode {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = formatAttribute(p.Value)
	}
	sig := fmt.Sprintf("Fn %s(%s)", m.Name.Value, strings.Join(params, ", "))
	if m.RetType != nil {
		sig += ": " + m.RetType.Value
	}
	node := leaf("%s", sig)
	if m.Body == nil {
		node.children = append(node.children, leaf("Body: <none>"))
		return node
	}
	for _, e := range m.Body.Value.Items {
		node.children = append(node.children, buildExprNode(e.Value))
	}
	return node
}

func buildExprNode(e ast.Expr) *treeNode {
	switch x := e.(type) {
	case *ast.FuncCall:
		return leaf("Call %s", formatCall(x))
	case *ast.Assignment:
		label := "Assign " + x.Name.Value
		if x.Type != nil {
			label += ": " + x.Type.Value
		}
		return &treeNode{label: label, children: []*treeNode{buildExprNode(x.Expr.Value)}}
	case *ast.ExprList:
		node := leaf("List")
		for _, it := range x.Items {
			node.children = append(node.children, buildExprNode(it.Value))
		}
		return node
	case *ast.ErrorPlaceholder:
		return leaf("<error: %s>", x.Message)
	}
	return leaf("<nil>")
}

// FormatProgramTree draws the program as a top-down tree with the root
// centered over its children.
func FormatProgramTree(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	block := renderTree(buildProgramNode(prog, fs))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// treeBlock is a rendered subtree: its lines, their common display width
// and the column of the subtree root.
type treeBlock struct {
	lines []string
	width int
	root  int
}

const treeSpacing = 3

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func renderTree(node *treeNode) treeBlock {
	labelWidth := runewidth.StringWidth(node.label)
	if len(node.children) == 0 {
		return treeBlock{lines: []string{node.label}, width: labelWidth, root: labelWidth / 2}
	}

	children := make([]treeBlock, len(node.children))
	height := 0
	for i, child := range node.children {
		children[i] = renderTree(child)
		height = max(height, len(children[i].lines))
	}

	// child root columns relative to the children row
	positions := make([]int, len(children))
	rowWidth := 0
	for i, b := range children {
		if i > 0 {
			rowWidth += treeSpacing
		}
		positions[i] = rowWidth + b.root
		rowWidth += b.width
	}

	center := (positions[0] + positions[len(positions)-1]) / 2
	labelStart := max(center-labelWidth/2, 0)
	childOffset := max(labelWidth/2-center, 0)
	rootCol := labelStart + labelWidth/2
	if childOffset > 0 {
		rootCol = labelWidth / 2
	}
	width := max(labelStart+labelWidth, childOffset+rowWidth)

	lines := make([]string, 0, height+2)
	lines = append(lines, padRight(strings.Repeat(" ", labelStart)+node.label, width))

	connector := []byte(strings.Repeat(" ", width))
	connector[rootCol] = '|'
	for _, pos := range positions {
		pos += childOffset
		switch {
		case pos < rootCol:
			connector[pos] = '/'
		case pos > rootCol:
			connector[pos] = '\\'
		}
	}
	lines = append(lines, string(connector))

	for row := 0; row < height; row++ {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childOffset))
		for i, b := range children {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", treeSpacing))
			}
			line := ""
			if row < len(b.lines) {
				line = b.lines[row]
			}
			sb.WriteString(padRight(line, b.width))
		}
		lines = append(lines, padRight(sb.String(), width))
	}

	return treeBlock{lines: lines, width: width, root: rootCol}
}
