package ast

import "github.com/ymzk/bluescript/report"

// Identifier represents a named value.  `undefined` is an identifier; the
// checker resolves it to the null type.
type Identifier struct {
	ExprBase

	// The identifier's name.
	Name string
}

// NumberLit represents a numeric literal.  The raw source text decides
// whether the literal is an integer (decimal or hex syntax) or a float.
type NumberLit struct {
	ExprBase

	// The raw text of the literal as written.
	Raw string
}

// StringLit represents a string literal with its quotes trimmed.
type StringLit struct {
	ExprBase

	Value string
}

// BoolLit represents `true` or `false`.
type BoolLit struct {
	ExprBase

	Value bool
}

// NullLit represents the `null` keyword.
type NullLit struct {
	ExprBase
}

// ThisExpr represents the `this` keyword.
type ThisExpr struct {
	ExprBase
}

// SuperExpr represents the `super` keyword.  It only occurs as the callee of
// a call inside a class constructor.
type SuperExpr struct {
	ExprBase
}

// -----------------------------------------------------------------------------

// UnaryExpr represents a prefix operator application.  Op is the operator's
// source spelling (`-`, `!`, `~`, `typeof`, ...).
type UnaryExpr struct {
	ExprBase

	Op      string
	Operand ASTExpr
}

// UpdateExpr represents `++`/`--` in prefix or postfix position.
type UpdateExpr struct {
	ExprBase

	Op      string
	Prefix  bool
	Operand ASTExpr
}

// BinaryExpr represents a binary operator application, including the logical
// (`&&`, `||`, `??`) and `instanceof` forms.
type BinaryExpr struct {
	ExprBase

	Op       string
	Lhs, Rhs ASTExpr
}

// AssignExpr represents a plain or compound assignment.
type AssignExpr struct {
	ExprBase

	Op       string
	Lhs, Rhs ASTExpr
}

// CondExpr represents the conditional operator `test ? cons : alt`.
type CondExpr struct {
	ExprBase

	Test, Cons, Alt ASTExpr
}

// -----------------------------------------------------------------------------

// CallExpr represents a function, method, or super call.
type CallExpr struct {
	ExprBase

	Callee ASTExpr
	Args   []ASTExpr
}

// NewExpr represents a new-expression: `new C(...)` or `new Array<T>(...)`.
type NewExpr struct {
	ExprBase

	// The name of the constructed class, or `Array`.
	Callee *Identifier

	// The type arguments.  Only the Array builtin takes one.
	TypeArgs []TypeExpr

	Args []ASTExpr
}

// MemberExpr represents property access.  Computed access (`o[i]`) stores the
// index expression in Index; named access (`o.p`) stores the property name in
// Property.
type MemberExpr struct {
	ExprBase

	Object   ASTExpr
	Property *Identifier
	Index    ASTExpr
	Computed bool
}

// ArrowFunc represents an arrow function expression.  An expression body is
// normalized by the parser into a block containing a single return statement.
type ArrowFunc struct {
	ExprBase

	Params []*Param
	RetAnn TypeExpr
	Body   *Block
}

// Param is a declared function parameter.
type Param struct {
	// The parameter name.
	Name string

	// The declared type annotation, or nil for an untyped (any) parameter.
	TypeAnn TypeExpr

	// The span of the parameter name.
	NameSpan *report.TextSpan
}
