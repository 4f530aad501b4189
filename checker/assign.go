package checker

import (
	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/types"
)

// checkAssignExpr checks a plain or compound assignment expression.
func (c *Checker) checkAssignExpr(v *ast.AssignExpr) types.Type {
	rhsType := c.checkExpr(v.Rhs)

	switch v.Op {
	case "=":
		targetType := c.checkAssignTarget(v.Lhs, rhsType)

		if types.IsSubtype(rhsType, targetType) {
			return targetType
		}

		if types.IsConsistent(rhsType, targetType) {
			// The implicit runtime coercion papers over the static mismatch
			// on both sides of the assignment.
			c.coerce(v.Lhs)
			c.coerce(v.Rhs)
			return targetType
		}

		c.error(v.Span(), "Type '%s' is not assignable to type '%s'",
			rhsType.Repr(), targetType.Repr())
		return targetType
	case "+=", "-=", "*=", "/=":
		targetType := c.checkAssignTarget(v.Lhs, rhsType)
		return c.checkCompoundNumeric(v, targetType, rhsType)
	case "%=":
		targetType := c.checkAssignTarget(v.Lhs, rhsType)

		targetInt := types.Equals(targetType, types.Integer) || types.Equals(targetType, types.Any)
		rhsInt := types.Equals(rhsType, types.Integer) || types.Equals(rhsType, types.Any)
		if !targetInt || !rhsInt {
			c.error(v.Span(), "invalid operands to %%=")
		}

		if types.Equals(targetType, types.Any) || types.Equals(rhsType, types.Any) {
			return types.Any
		}

		return types.Integer
	case "&=", "|=", "^=", "<<=", ">>=", ">>>=":
		targetType := c.checkAssignTarget(v.Lhs, rhsType)

		if !types.Equals(targetType, types.Integer) || !types.Equals(rhsType, types.Integer) {
			c.error(v.Span(), "invalid operands to %s", v.Op)
		}

		return types.Integer
	default:
		// **=, &&=, ||=, ??= are outside the supported subset.
		c.checkExpr(v.Lhs)
		c.error(v.Span(), "operator %s is not supported", v.Op)
		return types.Any
	}
}

// checkCompoundNumeric checks `+=`-family assignments under the numeric
// rules of the underlying operator.
func (c *Checker) checkCompoundNumeric(v *ast.AssignExpr, targetType, rhsType types.Type) types.Type {
	valid := func(t types.Type) bool {
		return types.IsNumeric(t) || types.Equals(t, types.Any)
	}

	if !valid(targetType) || !valid(rhsType) {
		c.error(v.Span(), "invalid operands to %s", v.Op)
		return types.Any
	}

	if types.Equals(targetType, types.Any) || types.Equals(rhsType, types.Any) {
		c.coerce(v.Lhs)
		c.coerce(v.Rhs)
		return types.Any
	}

	resultType := types.Type(types.Integer)
	if types.Equals(targetType, types.Float) || types.Equals(rhsType, types.Float) {
		resultType = types.Float
	}

	if !types.IsSubtype(resultType, targetType) {
		c.error(v.Span(), "Type '%s' is not assignable to type '%s'",
			resultType.Repr(), targetType.Repr())
	}

	return resultType
}

// -----------------------------------------------------------------------------

// checkAssignTarget checks the target of an assignment or update and returns
// the type an assigned value must satisfy.  It records the target node's
// static type and marks tagged-slot writes for coercion.
func (c *Checker) checkAssignTarget(lhs ast.ASTExpr, rhsType types.Type) types.Type {
	switch v := lhs.(type) {
	case *ast.Identifier:
		return c.result(v, c.checkNameTarget(v, rhsType))
	case *ast.MemberExpr:
		if v.Computed {
			return c.result(v, c.checkIndexedTarget(v))
		}

		return c.result(v, c.checkMemberTarget(v))
	default:
		c.checkExpr(lhs)
		c.error(lhs.Span(), "invalid assignment target")
		return types.Any
	}
}

// checkNameTarget checks assignment to a named variable.
func (c *Checker) checkNameTarget(v *ast.Identifier, rhsType types.Type) types.Type {
	if v.Name == "undefined" {
		c.error(v.Span(), "invalid assignment target")
		return types.Any
	}

	info, ok := c.table.Lookup(v.Name)
	if !ok {
		if !c.firstPass {
			c.error(v.Span(), "unknown name: %s", v.Name)
		}

		return types.Any
	}

	switch {
	case info.IsConst:
		c.error(v.Span(), "assignment to constant variable")
	case info.IsFunction:
		c.error(v.Span(), "assignment to top-level function")
	case info.IsTypeName:
		c.error(v.Span(), "`%s` cannot be used as a value", v.Name)
	}

	if declaredType, ok := c.narrowed[info]; ok {
		// Assigning null or another optional value to a narrowed name
		// discards the narrowing for the remainder of the block.
		if isPossiblyNull(rhsType) {
			info.Type = declaredType
			delete(c.narrowed, info)
		}

		return declaredType
	}

	return info.Type
}

// isPossiblyNull reports whether a value of type t may be null.
func isPossiblyNull(t types.Type) bool {
	if types.Equals(t, types.Null) {
		return true
	}

	_, ok := t.(*types.OptionalType)
	return ok
}

// checkIndexedTarget checks assignment to `o[i]`.
func (c *Checker) checkIndexedTarget(v *ast.MemberExpr) types.Type {
	objType := c.checkExpr(v.Object)
	c.checkIndexExpr(v.Index)

	switch o := objType.(type) {
	case *types.ArrayType:
		elemType := o.ElemType
		if !types.Equals(types.ActualElementType(elemType), elemType) {
			// The write fills a tagged slot: the generator must box the
			// stored value.
			c.coerce(v)
		}

		return elemType
	case *types.InstanceType:
		if isByteArray(o) {
			return types.Integer
		}
	case types.PrimitiveType:
		if types.Equals(o, types.Any) {
			return types.Any
		}
	}

	c.error(v.Object.Span(), "indexed access requires an array")
	return types.Any
}

// checkMemberTarget checks assignment to `o.p`.
func (c *Checker) checkMemberTarget(v *ast.MemberExpr) types.Type {
	objType := c.checkExpr(v.Object)
	name := v.Property.Name

	switch o := objType.(type) {
	case *types.ArrayType:
		if name == types.ArrayLengthName {
			c.error(v.Property.Span(), "cannot change .length")
			return types.Integer
		}

		c.error(v.Property.Span(), "unknown property: %s", name)
		return types.Any
	case *types.InstanceType:
		if isByteArray(o) && name == types.ArrayLengthName {
			c.error(v.Property.Span(), "cannot change .length")
			return types.Integer
		}

		if propType, index, ok := o.FindProperty(name); ok {
			if o.IsBoxedProperty(index) {
				c.coerce(v)
			}

			return propType
		}

		if _, _, ok := o.FindMethod(name); ok {
			c.error(v.Property.Span(), "invalid assignment target")
			return types.Any
		}

		c.error(v.Property.Span(), "unknown property: %s", name)
		return types.Any
	case types.PrimitiveType:
		if types.Equals(o, types.Any) {
			return types.Any
		}
	}

	c.error(v.Property.Span(), "unknown property: %s", name)
	return types.Any
}
