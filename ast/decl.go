package ast

import "github.com/ymzk/bluescript/report"

// VarDecl represents a single `let` or `const` declaration.  Comma lists are
// split into one VarDecl per declarator by the parser.
type VarDecl struct {
	ASTBase

	// Whether the declaration is const.
	IsConst bool

	// The declared name.
	Name *Identifier

	// The declared type annotation, or nil for an inferred type.
	TypeAnn TypeExpr

	// The initializer, or nil.
	Init ASTExpr

	// Whether the declaration is marked export.
	Exported bool
}

// FuncDecl represents a top-level function declaration.
type FuncDecl struct {
	ASTBase

	Name   *Identifier
	Params []*Param
	RetAnn TypeExpr
	Body   *Block

	// Whether the declaration is marked export.
	Exported bool
}

// -----------------------------------------------------------------------------

// ClassDecl represents a class declaration.
type ClassDecl struct {
	ASTBase

	Name *Identifier

	// The extends clause, or nil.
	SuperName *Identifier

	// The declared properties in source order.
	Props []*PropertyDecl

	// The declared methods in source order.  The constructor is the method
	// named `constructor`.
	Methods []*MethodDecl

	// Whether the declaration is marked export.
	Exported bool
}

// PropertyDecl is a declared instance property.
type PropertyDecl struct {
	ASTBase

	Name    string
	TypeAnn TypeExpr
}

// MethodDecl is a declared method or constructor.
type MethodDecl struct {
	ASTBase

	Name     string
	NameSpan *report.TextSpan
	Params   []*Param
	RetAnn   TypeExpr
	Body     *Block
}

// IsConstructor returns whether the method is the class constructor.
func (md *MethodDecl) IsConstructor() bool {
	return md.Name == "constructor"
}

// FindConstructor returns the class's declared constructor, or nil.
func (cd *ClassDecl) FindConstructor() *MethodDecl {
	for _, method := range cd.Methods {
		if method.IsConstructor() {
			return method
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// ImportDecl represents `import { a, b } from "mod"`.
type ImportDecl struct {
	ASTBase

	// The imported names.
	Names []*Identifier

	// The module name given in the from clause.
	From string
}
