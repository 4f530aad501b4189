package ast

import "strings"

// TypeExpr is the abstract interface for type-annotation forms.
type TypeExpr interface {
	ASTNode

	// Repr returns the annotation as written, for diagnostics.
	Repr() string

	typeExprNode()
}

// TypeExprBase is a utility base struct for all type-annotation nodes.
type TypeExprBase struct {
	ASTBase
}

func (tb TypeExprBase) typeExprNode() {}

// -----------------------------------------------------------------------------

// TypeName is a named type annotation: a primitive keyword or a class name.
type TypeName struct {
	TypeExprBase

	Name string
}

func (tn *TypeName) Repr() string {
	return tn.Name
}

// ArrayTypeExpr is an `Array<T>` annotation.
type ArrayTypeExpr struct {
	TypeExprBase

	Elem TypeExpr
}

func (at *ArrayTypeExpr) Repr() string {
	return "Array<" + at.Elem.Repr() + ">"
}

// FuncTypeExpr is a function type annotation: `(T, ...) => R`.
type FuncTypeExpr struct {
	TypeExprBase

	Params []TypeExpr
	Ret    TypeExpr
}

func (ft *FuncTypeExpr) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')
	for i, param := range ft.Params {
		if i != 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param.Repr())
	}
	sb.WriteString(") => ")
	sb.WriteString(ft.Ret.Repr())

	return sb.String()
}

// UnionTypeExpr is a union annotation `T | U`.  Only the two-option form with
// one null/undefined member denotes a valid (optional) type; every other
// union is a diagnostic.
type UnionTypeExpr struct {
	TypeExprBase

	Members []TypeExpr
}

func (ut *UnionTypeExpr) Repr() string {
	sb := strings.Builder{}

	for i, member := range ut.Members {
		if i != 0 {
			sb.WriteString(" | ")
		}

		sb.WriteString(member.Repr())
	}

	return sb.String()
}
