// Package ast defines the abstract syntax tree for the checked subset of
// BlueScript.  Nodes carry only source spans: static types, coercion flags,
// and scope tables are associated off-tree by the checker so the tree itself
// stays immutable after parsing.
package ast

import "github.com/ymzk/bluescript/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// The abstract interface for all AST expressions.
type ASTExpr interface {
	ASTNode

	exprNode()
}

// A utility base struct for all AST expressions.
type ExprBase struct {
	ASTBase
}

// NewExprBaseOn creates a new expression base with the given span.
func NewExprBaseOn(span *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span)}
}

// NewExprBaseOver creates a new expression base spanning over two spans.
func NewExprBaseOver(start, end *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOver(start, end)}
}

func (eb ExprBase) exprNode() {}

// -----------------------------------------------------------------------------

// Program represents a whole source file: a list of top-level declarations
// and statements.
type Program struct {
	ASTBase

	// The top-level declarations and statements in order.
	Body []ASTNode
}
