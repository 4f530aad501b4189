package checker

import (
	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/types"
)

// ctorValidator verifies the super() and property-initialisation discipline
// inside a class constructor.  It delegates to the checker only for error
// reporting: the walk itself separates top-level statements (handled by
// walkTopLevelStmt) from nested ones, and tracks the set of initialised
// properties and whether super() has been called.
type ctorValidator struct {
	c *Checker

	// The class being validated.
	class *types.InstanceType

	// The declared property names mapped to an initialised flag.
	inited map[string]bool

	// Whether a top-level super(...) call has been seen.
	superCalled bool
}

// validateConstructor runs the constructor validator.  It is invoked in
// pass 1 on every class constructor.
func (c *Checker) validateConstructor(cd *ast.ClassDecl, it *types.InstanceType, ctor *ast.MethodDecl) {
	cv := &ctorValidator{
		c:      c,
		class:  it,
		inited: make(map[string]bool),
	}

	for _, prop := range cd.Props {
		cv.inited[prop.Name] = false
	}

	// Only statements at depth 1, the direct children of the constructor
	// body, are top-level.
	for _, stmt := range ctor.Body.Stmts {
		cv.walkTopLevelStmt(stmt)
	}

	if !cv.superCalled {
		if _, extendsClass := it.SuperType().(*types.InstanceType); extendsClass {
			c.error(ctor.NameSpan, "super() is not called")
		}
	}

	for _, prop := range cd.Props {
		if !cv.inited[prop.Name] {
			c.error(prop.Span(), "uninitialized property: %s", prop.Name)
		}
	}
}

// walkTopLevelStmt handles a direct child of the constructor body: it marks
// `this.p = expr` property initialisations and top-level super calls, then
// descends with top-level meaning disabled.
func (cv *ctorValidator) walkTopLevelStmt(node ast.ASTNode) {
	if es, ok := node.(*ast.ExprStmt); ok {
		if call, ok := es.Expr.(*ast.CallExpr); ok {
			if _, ok := call.Callee.(*ast.SuperExpr); ok {
				if cv.superCalled {
					cv.c.error(call.Span(), "cannot call super() here")
				}

				cv.superCalled = true

				for _, arg := range call.Args {
					cv.walkExpr(arg)
				}

				return
			}
		}

		if assign, ok := es.Expr.(*ast.AssignExpr); ok && assign.Op == "=" {
			if member, ok := assign.Lhs.(*ast.MemberExpr); ok && !member.Computed {
				if _, ok := member.Object.(*ast.ThisExpr); ok {
					if _, declared := cv.inited[member.Property.Name]; declared {
						cv.inited[member.Property.Name] = true
					}

					cv.walkExpr(assign.Rhs)
					return
				}
			}
		}
	}

	cv.walkStmt(node)
}

// walkStmt descends into a non-top-level statement looking for misplaced
// super calls.
func (cv *ctorValidator) walkStmt(node ast.ASTNode) {
	switch v := node.(type) {
	case *ast.Block:
		for _, stmt := range v.Stmts {
			cv.walkStmt(stmt)
		}
	case *ast.IfStmt:
		cv.walkExpr(v.Cond)
		cv.walkStmt(v.Then)
		if v.Else != nil {
			cv.walkStmt(v.Else)
		}
	case *ast.WhileLoop:
		cv.walkExpr(v.Cond)
		cv.walkStmt(v.Body)
	case *ast.ForLoop:
		if v.Init != nil {
			cv.walkStmt(v.Init)
		}
		if v.Cond != nil {
			cv.walkExpr(v.Cond)
		}
		if v.Update != nil {
			cv.walkStmt(v.Update)
		}
		cv.walkStmt(v.Body)
	case *ast.ReturnStmt:
		if v.Value != nil {
			cv.walkExpr(v.Value)
		}
	case *ast.ThrowStmt:
		cv.walkExpr(v.Value)
	case *ast.ExprStmt:
		cv.walkExpr(v.Expr)
	case *ast.VarDecl:
		if v.Init != nil {
			cv.walkExpr(v.Init)
		}
	}
}

// walkExpr descends into an expression.  Any super call reached here is not
// a direct top-level statement and is rejected.
func (cv *ctorValidator) walkExpr(e ast.ASTExpr) {
	switch v := e.(type) {
	case *ast.UnaryExpr:
		cv.walkExpr(v.Operand)
	case *ast.UpdateExpr:
		cv.walkExpr(v.Operand)
	case *ast.BinaryExpr:
		cv.walkExpr(v.Lhs)
		cv.walkExpr(v.Rhs)
	case *ast.AssignExpr:
		cv.walkExpr(v.Lhs)
		cv.walkExpr(v.Rhs)
	case *ast.CondExpr:
		cv.walkExpr(v.Test)
		cv.walkExpr(v.Cons)
		cv.walkExpr(v.Alt)
	case *ast.CallExpr:
		if _, ok := v.Callee.(*ast.SuperExpr); ok {
			cv.c.error(v.Span(), "cannot call super() here")
		} else {
			cv.walkExpr(v.Callee)
		}

		for _, arg := range v.Args {
			cv.walkExpr(arg)
		}
	case *ast.NewExpr:
		for _, arg := range v.Args {
			cv.walkExpr(arg)
		}
	case *ast.MemberExpr:
		cv.walkExpr(v.Object)
		if v.Computed {
			cv.walkExpr(v.Index)
		}
	case *ast.ArrowFunc:
		cv.walkStmt(v.Body)
	}
}
