package parser

import (
	"dialang/internal/ast"
	"dialang/internal/stream"
	"dialang/internal/token"
)

// Context labels. They name the piece that was expected and become the
// diagnostic message as "expected <label>".
const (
	ctxClassName      = "class name"
	ctxOpenBrace      = "opening brace"
	ctxCloseBrace     = "closing brace"
	ctxAttrType       = "attribute type"
	ctxMethodName     = "method name"
	ctxParamList      = "parameter list"
	ctxCloseParen     = "closing parenthesis"
	ctxReturnType     = "return type"
	ctxCloseBody      = "closing brace of method body"
	ctxMemberName     = "member name"
	ctxCallArgs       = "call arguments"
	ctxAssignType     = "assignment type"
	ctxAssignedCall   = "assigned call"
	ctxEntryCall      = "entry point call"
	ctxClassDecl      = "class declaration"
	ctxMethodDecl     = "method declaration"
	ctxAnnotatedBlock = "annotated block"
)

var (
	comma      = expect(token.Comma, "','")
	colon      = expect(token.Colon, "':'")
	openParen  = expect(token.LParen, "'('")
	closeParen = contextual(ctxCloseParen, expect(token.RParen, "')'"))
	openBrace  = contextual(ctxOpenBrace, expect(token.LBrace, "'{'"))
	closeBrace = contextual(ctxCloseBrace, expect(token.RBrace, "'}'"))
	bodyClose  = expect(token.RBrace, "'}'")
	kwFn       = expect(token.KwFn, "'fn'")
	kwClass    = expect(token.KwClass, "'class'")
	atEntry    = expect(token.AtSequenceEntrypoint, "'@SequenceEntrypoint'")

	identTok = expect(token.Ident, "identifier")
	ident    = rule[ast.Spanned[string]](identifier)

	attrType   = typeAnnotation(ctxAttrType)
	returnType = typeAnnotation(ctxReturnType)
	assignType = typeAnnotation(ctxAssignType)

	parameters = separatedList0(comma, rule[ast.Spanned[ast.Attribute]](attribute))
	arguments  = separatedList0(comma, ident)
	access     = opt(preceded(expect(token.Dot, "'.'"), contextual(ctxMemberName, ident)))

	attributes = many0(rule[ast.Spanned[ast.Attribute]](attribute))
	methods    = many0(rule[ast.Spanned[ast.Method]](method))
	bodyItems  = many0(rule[ast.Spanned[ast.Expr]](bodyElement))
	body       = opt(preceded(expect(token.LBrace, "'{'"), rule[ast.Spanned[ast.ExprList]](bodyAndClose)))

	assignedCall = committed(contextual(ctxAssignedCall, rule[ast.Spanned[*ast.FuncCall]](funcCall)))
	entryCall    = contextual(ctxEntryCall, rule[ast.Spanned[*ast.FuncCall]](funcCall))

	annotationBlock = choice(rule[ast.Spanned[ast.Statement]](sequenceEntrypoint))

	topLevelStatement = choice(
		rule[ast.Spanned[ast.Statement]](class),
		annotationBlock,
	)
)

// identifier matches one Ident token; raw identifiers lose their backticks.
func identifier(s stream.Stream) (ast.Spanned[string], stream.Stream, *Failure) {
	tok, rest, f := identTok(s)
	if f != nil {
		return ast.Spanned[string]{}, s, f
	}
	return ast.At(tok.IdentName(), tok.Span), rest, nil
}

// typeAnnotation matches an optional ": Type". The type is mandatory once
// the colon is consumed.
func typeAnnotation(label string) rule[*ast.Spanned[string]] {
	return opt(preceded(colon, contextual(label, ident)))
}

// attribute = identifier (':' identifier)?
func attribute(s stream.Stream) (ast.Spanned[ast.Attribute], stream.Stream, *Failure) {
	var zero ast.Spanned[ast.Attribute]
	name, rest, f := identifier(s)
	if f != nil {
		return zero, s, f
	}
	typ, rest, f := attrType(rest)
	if f != nil {
		return zero, s, f
	}
	return ast.At(ast.Attribute{Name: name, Type: typ}, s.Consumed(rest)), rest, nil
}

// parameterList = '(' (attribute (',' attribute)*)? ')'
func parameterList(s stream.Stream) ([]ast.Spanned[ast.Attribute], stream.Stream, *Failure) {
	_, rest, f := openParen(s)
	if f != nil {
		return nil, s, f.withContext(s, ctxParamList)
	}
	params, rest, f := parameters(rest)
	if f != nil {
		return nil, s, f
	}
	_, rest, f = closeParen(rest)
	if f != nil {
		return nil, s, f
	}
	return params, rest, nil
}

// funcCall = identifier ('.' identifier)? '(' (identifier (',' identifier)*)? ')'
// The argument list is committed once '(' is consumed.
func funcCall(s stream.Stream) (ast.Spanned[*ast.FuncCall], stream.Stream, *Failure) {
	var zero ast.Spanned[*ast.FuncCall]
	root, rest, f := identifier(s)
	if f != nil {
		return zero, s, f
	}
	member, rest, f := access(rest)
	if f != nil {
		return zero, s, f
	}
	_, afterOpen, f := openParen(rest)
	if f != nil {
		return zero, s, f.withContext(rest, ctxCallArgs)
	}
	args, rest, f := arguments(afterOpen)
	if f != nil {
		return zero, s, f.commit()
	}
	_, rest, f = closeParen(rest)
	if f != nil {
		return zero, s, f.commit()
	}
	call := &ast.FuncCall{Root: root, Access: member, Args: args}
	return ast.At(call, s.Consumed(rest)), rest, nil
}

// assignPrefix = identifier (':' identifier)? '='
type assignPrefix struct {
	name ast.Spanned[string]
	typ  *ast.Spanned[string]
}

func assignTarget(s stream.Stream) (assignPrefix, stream.Stream, *Failure) {
	name, rest, f := identifier(s)
	if f != nil {
		return assignPrefix{}, s, f
	}
	typ, rest, f := assignType(rest)
	if f != nil {
		return assignPrefix{}, s, f
	}
	_, rest, f = assignOp(rest)
	if f != nil {
		return assignPrefix{}, s, f
	}
	return assignPrefix{name: name, typ: typ}, rest, nil
}

var (
	assignOp        = expect(token.Assign, "'='")
	optAssignTarget = opt(rule[assignPrefix](assignTarget))
)

// bodyElement = (identifier (':' identifier)? '=')? funcCall
func bodyElement(s stream.Stream) (ast.Spanned[ast.Expr], stream.Stream, *Failure) {
	var zero ast.Spanned[ast.Expr]
	target, rest, f := optAssignTarget(s)
	if f != nil {
		return zero, s, f
	}

	if target == nil {
		call, rest, f := funcCall(s)
		if f != nil {
			return zero, s, f
		}
		return ast.At[ast.Expr](call.Value, call.Span), rest, nil
	}

	call, rest, f := assignedCall(rest)
	if f != nil {
		return zero, s, f
	}
	assign := &ast.Assignment{
		Name: target.name,
		Type: target.typ,
		Expr: ast.At[ast.Expr](call.Value, call.Span),
	}
	return ast.At[ast.Expr](assign, s.Consumed(rest)), rest, nil
}

// bodyAndClose parses the statements after '{' and the closing brace. The
// span of the list covers the statements only.
func bodyAndClose(s stream.Stream) (ast.Spanned[ast.ExprList], stream.Stream, *Failure) {
	var zero ast.Spanned[ast.ExprList]
	items, rest, f := bodyItems(s)
	if f != nil {
		return zero, s, f
	}
	list := ast.At(ast.ExprList{Items: items}, s.Consumed(rest))
	_, after, f := bodyClose(rest)
	if f != nil {
		return zero, s, f.withContext(rest, ctxCloseBody)
	}
	return list, after, nil
}

// method = 'fn' identifier parameterList (':' identifier)? ('{' body '}')?
// Everything after 'fn' is committed.
func method(s stream.Stream) (ast.Spanned[ast.Method], stream.Stream, *Failure) {
	var zero ast.Spanned[ast.Method]
	_, rest, f := kwFn(s)
	if f != nil {
		return zero, s, f
	}
	m, rest, f := methodRest(rest)
	if f != nil {
		return zero, s, f.withContext(s, ctxMethodDecl).commit()
	}
	return ast.At(m, s.Consumed(rest)), rest, nil
}

func methodRest(s stream.Stream) (ast.Method, stream.Stream, *Failure) {
	name, rest, f := identifier(s)
	if f != nil {
		return ast.Method{}, s, f.withContext(s, ctxMethodName)
	}
	params, rest, f := parameterList(rest)
	if f != nil {
		return ast.Method{}, s, f
	}
	ret, rest, f := returnType(rest)
	if f != nil {
		return ast.Method{}, s, f
	}
	b, rest, f := body(rest)
	if f != nil {
		return ast.Method{}, s, f
	}
	return ast.Method{Name: name, Parameters: params, RetType: ret, Body: b}, rest, nil
}

// class = 'class' identifier '{' attribute* method* '}'
// Everything after 'class' is committed.
func class(s stream.Stream) (ast.Spanned[ast.Statement], stream.Stream, *Failure) {
	var zero ast.Spanned[ast.Statement]
	_, rest, f := kwClass(s)
	if f != nil {
		return zero, s, f
	}
	c, rest, f := classRest(rest)
	if f != nil {
		return zero, s, f.withContext(s, ctxClassDecl).commit()
	}
	return ast.At[ast.Statement](c, s.Consumed(rest)), rest, nil
}

func classRest(s stream.Stream) (*ast.Class, stream.Stream, *Failure) {
	name, rest, f := identifier(s)
	if f != nil {
		return nil, s, f.withContext(s, ctxClassName)
	}
	_, rest, f = openBrace(rest)
	if f != nil {
		return nil, s, f
	}
	attrs, rest, f := attributes(rest)
	if f != nil {
		return nil, s, f
	}
	ms, rest, f := methods(rest)
	if f != nil {
		return nil, s, f
	}
	_, rest, f = closeBrace(rest)
	if f != nil {
		return nil, s, f
	}
	return &ast.Class{Name: name, Attributes: attrs, Methods: ms}, rest, nil
}

// sequenceEntrypoint = '@SequenceEntrypoint' funcCall
func sequenceEntrypoint(s stream.Stream) (ast.Spanned[ast.Statement], stream.Stream, *Failure) {
	var zero ast.Spanned[ast.Statement]
	_, rest, f := atEntry(s)
	if f != nil {
		return zero, s, f
	}
	call, rest, f := entryCall(rest)
	if f != nil {
		return zero, s, f.withContext(s, ctxAnnotatedBlock).commit()
	}
	block := &ast.AnnotatedBlock{
		Annotation: ast.SequenceEntrypoint,
		Elements:   []ast.Spanned[ast.Expr]{ast.At[ast.Expr](call.Value, call.Span)},
	}
	return ast.At[ast.Statement](block, s.Consumed(rest)), rest, nil
}
