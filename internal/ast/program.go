package ast

import "dialang/internal/source"

// Program is the root of a parsed file.
type Program struct {
	Statements []Spanned[Statement]
	Span       source.Span
}

// Statement is a top-level construct: *Class, *AnnotatedBlock or
// *ErrorPlaceholder.
type Statement interface {
	statementNode()
}

// Class is a class declaration with its attributes and methods in source order.
type Class struct {
	Name       Spanned[string]
	Attributes []Spanned[Attribute]
	Methods    []Spanned[Method]
}

// Attribute is a name with an optional type. It also describes method
// parameters.
type Attribute struct {
	Name Spanned[string]
	Type *Spanned[string]
}

// Method is a function member. Body is nil when no block was written, and
// non-nil but empty for "{}".
type Method struct {
	Name       Spanned[string]
	Parameters []Spanned[Attribute]
	RetType    *Spanned[string]
	Body       *Spanned[ExprList]
}

// Annotation is the closed set of annotation tags.
type Annotation uint8

const (
	SequenceEntrypoint Annotation = iota + 1
)

func (a Annotation) String() string {
	switch a {
	case SequenceEntrypoint:
		return "SequenceEntrypoint"
	}
	return "Annotation(?)"
}

// AnnotatedBlock is an annotation tag with the elements it applies to.
type AnnotatedBlock struct {
	Annotation Annotation
	Elements   []Spanned[Expr]
}

// ErrorPlaceholder stands in for a construct that failed to parse.
// Message is the diagnostic reported for it.
type ErrorPlaceholder struct {
	Message string
}

func (*Class) statementNode()            {}
func (*AnnotatedBlock) statementNode()   {}
func (*ErrorPlaceholder) statementNode() {}
