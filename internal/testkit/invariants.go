// Package testkit holds invariant checks shared by tests and fuzz targets.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"dialang/internal/ast"
	"dialang/internal/source"
	"dialang/internal/token"
)

// CheckSpanInvariants runs the span invariants of a parsed program:
//  1. every statement span is non-empty, inside the file and in source order
//  2. the program span covers every statement
//  3. member spans are contained in their statement span
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, st := range prog.Statements {
		sp := st.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("statement %d: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("statement %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("statement %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("statement %d: span %v overlaps previous statement ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End
		if !prog.Span.Contains(sp) {
			return fmt.Errorf("program span %v does not cover statement %v", prog.Span, sp)
		}
		if err := checkMembers(st); err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return nil
}

func checkMembers(st ast.Spanned[ast.Statement]) error {
	inside := func(what string, sp source.Span) error {
		if !st.Span.Contains(sp) {
			return fmt.Errorf("%s span %v outside %v", what, sp, st.Span)
		}
		return nil
	}
	switch s := st.Value.(type) {
	case *ast.Class:
		if err := inside("class name", s.Name.Span); err != nil {
			return err
		}
		for _, a := range s.Attributes {
			if err := inside("attribute", a.Span); err != nil {
				return err
			}
		}
		for _, m := range s.Methods {
			if err := inside("method", m.Span); err != nil {
				return err
			}
			if m.Value.Body != nil && !m.Span.Contains(m.Value.Body.Span) {
				return fmt.Errorf("method body %v outside method %v", m.Value.Body.Span, m.Span)
			}
		}
	case *ast.AnnotatedBlock:
		for _, e := range s.Elements {
			if err := inside("element", e.Span); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckTokenCoverage verifies that trivia and token text, concatenated in
// order, reproduce the file content with no gaps or overlaps.
func CheckTokenCoverage(toks []token.Token, sf *source.File) error {
	var (
		off uint32
		sb  strings.Builder
	)
	visit := func(what string, sp source.Span, text string) error {
		if sp.Start != off {
			return fmt.Errorf("%s at %v: expected start %d", what, sp, off)
		}
		if int(sp.End-sp.Start) != len(text) {
			return fmt.Errorf("%s at %v: text length %d does not match span", what, sp, len(text))
		}
		sb.WriteString(text)
		off = sp.End
		return nil
	}
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if err := visit("trivia "+tr.Kind.String(), tr.Span, tr.Text); err != nil {
				return err
			}
		}
		if tok.Kind == token.EOF {
			break
		}
		if err := visit("token "+tok.Kind.String(), tok.Span, tok.Text); err != nil {
			return err
		}
	}
	if sb.String() != string(sf.Content) {
		return fmt.Errorf("coverage mismatch: rebuilt %d bytes, content has %d", sb.Len(), len(sf.Content))
	}
	return nil
}
