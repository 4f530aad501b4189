package checker

import (
	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/types"
)

// resolveTypeExpr resolves a type-annotation form to a static type.  The
// `number` keyword is interpreted as integer; `undefined` and `null` both
// yield the unified null type.  Unresolvable annotations yield any so that
// checking can continue.
func (c *Checker) resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch v := te.(type) {
	case *ast.TypeName:
		return c.resolveTypeName(v)
	case *ast.ArrayTypeExpr:
		return &types.ArrayType{ElemType: c.resolveTypeExpr(v.Elem)}
	case *ast.FuncTypeExpr:
		ft := &types.FuncType{ReturnType: c.resolveTypeExpr(v.Ret)}
		for _, param := range v.Params {
			ft.ParamTypes = append(ft.ParamTypes, c.resolveTypeExpr(param))
		}

		return ft
	case *ast.UnionTypeExpr:
		return c.resolveUnionType(v)
	default:
		c.error(te.Span(), "unsupported type annotation")
		return types.Any
	}
}

// resolveTypeName resolves a named annotation: a primitive keyword or a
// declared class.
func (c *Checker) resolveTypeName(tn *ast.TypeName) types.Type {
	switch tn.Name {
	case "integer", "number":
		return types.Integer
	case "float":
		return types.Float
	case "boolean":
		return types.Boolean
	case "string":
		return types.String
	case "void":
		return types.Void
	case "null", "undefined":
		return types.Null
	case "any":
		return types.Any
	}

	if it, ok := c.table.FindClass(tn.Name); ok {
		return it
	}

	if !c.firstPass {
		c.error(tn.Span(), "unknown type name: %s", tn.Name)
	}

	return types.Any
}

// resolveUnionType resolves a union annotation.  Only the two-option form
// `T | null` (in either order, with `undefined` accepted for `null`) denotes
// a valid type: the optional type wrapping T.
func (c *Checker) resolveUnionType(ut *ast.UnionTypeExpr) types.Type {
	if len(ut.Members) == 2 {
		var elemExpr ast.TypeExpr
		switch {
		case isNullTypeExpr(ut.Members[0]) && !isNullTypeExpr(ut.Members[1]):
			elemExpr = ut.Members[1]
		case isNullTypeExpr(ut.Members[1]) && !isNullTypeExpr(ut.Members[0]):
			elemExpr = ut.Members[0]
		}

		if elemExpr != nil {
			elem := c.resolveTypeExpr(elemExpr)

			opt, err := types.OptionalOf(elem)
			if err == nil {
				return opt
			}
		}
	}

	c.error(ut.Span(), "only optional types are supported -- %s", ut.Repr())
	return types.Any
}

// isNullTypeExpr reports whether the annotation names the null type.
func isNullTypeExpr(te ast.TypeExpr) bool {
	tn, ok := te.(*ast.TypeName)
	return ok && (tn.Name == "null" || tn.Name == "undefined")
}
