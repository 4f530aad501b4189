package checker

import (
	"regexp"

	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/types"
)

// integerSyntax matches the raw text of numeric literals that denote an
// integer: decimal or hex.  Everything else is a float.
var integerSyntax = regexp.MustCompile(`^([0-9]+|0[xX][0-9a-fA-F]+)$`)

// checkExpr checks an expression and returns its static type.  In pass 2 the
// type is also recorded in the side-table.
func (c *Checker) checkExpr(e ast.ASTExpr) types.Type {
	switch v := e.(type) {
	case *ast.Identifier:
		return c.result(v, c.checkIdentifier(v))
	case *ast.NumberLit:
		if integerSyntax.MatchString(v.Raw) {
			return c.result(v, types.Integer)
		}

		return c.result(v, types.Float)
	case *ast.StringLit:
		return c.result(v, types.String)
	case *ast.BoolLit:
		return c.result(v, types.Boolean)
	case *ast.NullLit:
		return c.result(v, types.Null)
	case *ast.ThisExpr:
		if c.currentClass != nil {
			return c.result(v, c.currentClass)
		}

		c.error(v.Span(), "this is not available here")
		return c.result(v, types.Any)
	case *ast.SuperExpr:
		c.error(v.Span(), "cannot call super() here")
		return c.result(v, types.Any)
	case *ast.UnaryExpr:
		return c.result(v, c.checkUnaryExpr(v))
	case *ast.UpdateExpr:
		return c.result(v, c.checkUpdateExpr(v))
	case *ast.BinaryExpr:
		return c.result(v, c.checkBinaryExpr(v))
	case *ast.AssignExpr:
		return c.result(v, c.checkAssignExpr(v))
	case *ast.CondExpr:
		return c.result(v, c.checkCondExpr(v))
	case *ast.CallExpr:
		return c.result(v, c.checkCallExpr(v))
	case *ast.NewExpr:
		return c.result(v, c.checkNewExpr(v))
	case *ast.MemberExpr:
		return c.result(v, c.checkMemberRead(v))
	case *ast.ArrowFunc:
		return c.result(v, c.checkArrowFunc(v))
	default:
		c.error(e.Span(), "unsupported expression")
		return c.result(e, types.Any)
	}
}

// checkIdentifier resolves a name used as an expression.  `undefined` is an
// identifier and resolves to the null type.  During pass 1, unknown names
// yield any without a diagnostic so that forward references succeed.
func (c *Checker) checkIdentifier(v *ast.Identifier) types.Type {
	if v.Name == "undefined" {
		return types.Null
	}

	info, ok := c.table.Lookup(v.Name)
	if !ok {
		if !c.firstPass {
			c.error(v.Span(), "unknown name: %s", v.Name)
		}

		return types.Any
	}

	if info.IsTypeName {
		c.error(v.Span(), "`%s` cannot be used as a value", v.Name)
		return types.Any
	}

	if ft, ok := info.Type.(*types.FuncType); ok && ft.ReturnType == nil {
		// A recursive reference to a function whose return type is still
		// being inferred.
		return &types.FuncType{ParamTypes: ft.ParamTypes, ReturnType: types.Any}
	}

	return info.Type
}

// -----------------------------------------------------------------------------

// checkUnaryExpr checks a prefix operator application.
func (c *Checker) checkUnaryExpr(v *ast.UnaryExpr) types.Type {
	operandType := c.checkExpr(v.Operand)

	switch v.Op {
	case "+", "-":
		if types.IsNumeric(operandType) || types.Equals(operandType, types.Any) {
			return operandType
		}

		c.error(v.Span(), "invalid operand to unary %s", v.Op)
		return types.Any
	case "!":
		// The operand is coerced to boolean.
		if !types.Equals(operandType, types.Boolean) {
			c.coerce(v.Operand)
		}

		return types.Boolean
	case "~":
		if !types.Equals(operandType, types.Integer) {
			c.error(v.Span(), "invalid operand to unary ~")
		}

		return types.Integer
	case "typeof":
		return types.String
	case "void":
		c.error(v.Span(), "void operator is not supported")
		return types.Any
	case "delete":
		c.error(v.Span(), "delete operator is not supported")
		return types.Any
	default:
		c.error(v.Span(), "unsupported operator: %s", v.Op)
		return types.Any
	}
}

// checkUpdateExpr checks `++`/`--`.  The operand must be a legal l-value of
// numeric (or any) type.
func (c *Checker) checkUpdateExpr(v *ast.UpdateExpr) types.Type {
	switch v.Operand.(type) {
	case *ast.Identifier, *ast.MemberExpr:
	default:
		c.error(v.Span(), "invalid operand to %s", v.Op)
		c.checkExpr(v.Operand)
		return types.Any
	}

	operandType := c.checkAssignTarget(v.Operand, types.Integer)
	if types.IsNumeric(operandType) || types.Equals(operandType, types.Any) {
		return operandType
	}

	c.error(v.Span(), "invalid operand to %s", v.Op)
	return types.Any
}

// -----------------------------------------------------------------------------

// checkBinaryExpr checks a binary operator application.
func (c *Checker) checkBinaryExpr(v *ast.BinaryExpr) types.Type {
	if v.Op == "instanceof" {
		return c.checkInstanceof(v)
	}

	lhsType := c.checkExpr(v.Lhs)
	rhsType := c.checkExpr(v.Rhs)

	anyInvolved := types.Equals(lhsType, types.Any) || types.Equals(rhsType, types.Any)

	switch v.Op {
	case "==", "!=", "===", "!==":
		bothBoolean := types.Equals(lhsType, types.Boolean) && types.Equals(rhsType, types.Boolean)
		bothString := types.Equals(lhsType, types.String) && types.Equals(rhsType, types.String)

		if !anyInvolved && !bothBoolean && !bothString &&
			!types.IsSubtype(lhsType, rhsType) && !types.IsSubtype(rhsType, lhsType) {
			c.error(v.Span(), "invalid operands to %s", v.Op)
		}

		return types.Boolean
	case "<", "<=", ">", ">=":
		bothNumeric := types.IsNumeric(lhsType) && types.IsNumeric(rhsType)
		bothString := types.Equals(lhsType, types.String) && types.Equals(rhsType, types.String)

		if !anyInvolved && !bothNumeric && !bothString {
			c.error(v.Span(), "invalid operands to %s", v.Op)
		}

		return types.Boolean
	case "+", "-", "*", "/", "**":
		return c.numericResult(v, lhsType, rhsType)
	case "%":
		lhsInt := types.Equals(lhsType, types.Integer) || types.Equals(lhsType, types.Any)
		rhsInt := types.Equals(rhsType, types.Integer) || types.Equals(rhsType, types.Any)
		if !lhsInt || !rhsInt {
			c.error(v.Span(), "invalid operands to %%")
		}

		if anyInvolved {
			return types.Any
		}

		return types.Integer
	case "&", "|", "^", "<<", ">>", ">>>":
		// Bitwise and shift operators demand integers strictly: any is not
		// coerced here.
		if !types.Equals(lhsType, types.Integer) || !types.Equals(rhsType, types.Integer) {
			c.error(v.Span(), "invalid operands to %s", v.Op)
		}

		return types.Integer
	case "&&", "||":
		if !types.Equals(lhsType, types.Boolean) {
			c.coerce(v.Lhs)
		}
		if !types.Equals(rhsType, types.Boolean) {
			c.coerce(v.Rhs)
		}

		return types.Boolean
	case "??":
		c.error(v.Span(), "nullish coalescing is not supported")
		return types.Any
	default:
		c.error(v.Span(), "unsupported operator: %s", v.Op)
		return types.Any
	}
}

// numericResult computes the result type of an arithmetic operator: float if
// both operand types are known and one is float, any if either operand is
// any, else integer.
func (c *Checker) numericResult(v *ast.BinaryExpr, lhsType, rhsType types.Type) types.Type {
	valid := func(t types.Type) bool {
		return types.IsNumeric(t) || types.Equals(t, types.Any)
	}

	if !valid(lhsType) || !valid(rhsType) {
		c.error(v.Span(), "invalid operands to %s", v.Op)
		return types.Any
	}

	if types.Equals(lhsType, types.Any) || types.Equals(rhsType, types.Any) {
		return types.Any
	}

	if types.Equals(lhsType, types.Float) || types.Equals(rhsType, types.Float) {
		return types.Float
	}

	return types.Integer
}

// checkInstanceof checks an instanceof test.  The right operand must be an
// identifier naming an instance type, the literal Array, or the keyword
// string.
func (c *Checker) checkInstanceof(v *ast.BinaryExpr) types.Type {
	lhsType := c.checkExpr(v.Lhs)
	if types.IsPrimitive(lhsType) && !types.Equals(lhsType, types.Any) {
		c.error(v.Lhs.Span(), "invalid operands to instanceof")
	}

	ident, ok := v.Rhs.(*ast.Identifier)
	if !ok {
		c.error(v.Rhs.Span(), "invalid operands to instanceof")
		return types.Boolean
	}

	switch ident.Name {
	case "Array":
		c.result(v.Rhs, &types.ArrayType{ElemType: types.Any})
	case "string":
		c.result(v.Rhs, types.String)
	default:
		if it, ok := c.table.FindClass(ident.Name); ok {
			c.result(v.Rhs, it)
		} else {
			if !c.firstPass {
				c.error(ident.Span(), "unknown type name: %s", ident.Name)
			}

			c.result(v.Rhs, types.Any)
		}
	}

	return types.Boolean
}

// -----------------------------------------------------------------------------

// checkCondExpr checks a conditional expression.  The result type is the
// common supertype of the two branches.
func (c *Checker) checkCondExpr(v *ast.CondExpr) types.Type {
	testType := c.checkExpr(v.Test)
	c.markBooleanTest(v.Test, testType)

	consType := c.checkExpr(v.Cons)
	altType := c.checkExpr(v.Alt)

	common := types.CommonSuperType(consType, altType)
	if common == nil {
		c.error(v.Span(), "incompatible types in conditional expression: '%s' and '%s'",
			consType.Repr(), altType.Repr())

		// Best-effort recovery: continue with the else branch's type.
		return altType
	}

	return common
}

// -----------------------------------------------------------------------------

// checkCallExpr checks a function, method, or super call.
func (c *Checker) checkCallExpr(v *ast.CallExpr) types.Type {
	if _, ok := v.Callee.(*ast.SuperExpr); ok {
		return c.checkSuperCall(v)
	}

	calleeType := c.checkExpr(v.Callee)

	if ft, ok := calleeType.(*types.FuncType); ok {
		c.checkCallArgs(v, ft)

		if ft.ReturnType == nil {
			// A recursive call into a function whose return type is still
			// being inferred.
			return types.Any
		}

		return ft.ReturnType
	}

	for _, arg := range v.Args {
		c.checkExpr(arg)
	}

	if types.Equals(calleeType, types.Any) || c.firstPass {
		// The callee may be a forward reference still unresolved in pass 1.
		return types.Any
	}

	c.error(v.Callee.Span(), "cannot call a non-function value")
	return types.Any
}

// checkSuperCall checks `super(...)` against the superclass's constructor, or
// an implicit zero-argument one.
func (c *Checker) checkSuperCall(v *ast.CallExpr) types.Type {
	if !c.inConstructor || c.currentClass == nil {
		c.error(v.Span(), "cannot call super() here")

		for _, arg := range v.Args {
			c.checkExpr(arg)
		}

		return types.Any
	}

	var ctorType *types.FuncType
	if sit, ok := c.currentClass.SuperType().(*types.InstanceType); ok {
		ctorType, _ = sit.Constructor()
	}

	if ctorType == nil {
		if c.firstPass {
			// The superclass's constructor may belong to a declaration
			// pass 1 has not reached yet.
			for _, arg := range v.Args {
				c.checkExpr(arg)
			}

			return types.Void
		}

		ctorType = &types.FuncType{ReturnType: types.Void}
	}

	c.checkCallArgs(v, ctorType)
	return types.Void
}

// checkCallArgs checks a call's arguments against a signature.  Each argument
// must be a subtype of its parameter, a consistent any-bearing value (which
// is coerced), or, in pass 1 only, a tentative array/any pairing.
func (c *Checker) checkCallArgs(v *ast.CallExpr, ft *types.FuncType) {
	if len(v.Args) != len(ft.ParamTypes) {
		c.error(v.Span(), "wrong number of arguments")

		for _, arg := range v.Args {
			c.checkExpr(arg)
		}

		return
	}

	for i, arg := range v.Args {
		argType := c.checkExpr(arg)
		paramType := ft.ParamTypes[i]

		if types.IsSubtype(argType, paramType) {
			continue
		}

		if types.IsConsistent(argType, paramType) {
			c.coerce(arg)
			continue
		}

		if c.firstPass && isArrayAnyPairing(argType, paramType) {
			continue
		}

		c.error(arg.Span(), "Type '%s' is not assignable to type '%s'",
			argType.Repr(), paramType.Repr())
	}
}

// isArrayAnyPairing reports whether the two types are array types of which
// one has an any element: a pairing tentatively accepted while signatures
// may still be incomplete in pass 1.
func isArrayAnyPairing(s, t types.Type) bool {
	sa, okS := s.(*types.ArrayType)
	ta, okT := t.(*types.ArrayType)
	if !okS || !okT {
		return false
	}

	return types.Equals(sa.ElemType, types.Any) || types.Equals(ta.ElemType, types.Any)
}

// -----------------------------------------------------------------------------

// checkNewExpr checks a new-expression.
func (c *Checker) checkNewExpr(v *ast.NewExpr) types.Type {
	if v.Callee.Name == "Array" {
		return c.checkNewArray(v)
	}

	if len(v.TypeArgs) > 0 {
		c.error(v.Span(), "wrong number of type arguments")
	}

	it, ok := c.table.FindClass(v.Callee.Name)
	if !ok {
		for _, arg := range v.Args {
			c.checkExpr(arg)
		}

		if !c.firstPass {
			c.error(v.Callee.Span(), "unknown type name: %s", v.Callee.Name)
		}

		return types.Any
	}

	ctorType, declared := it.Constructor()
	if !declared {
		if c.firstPass {
			// The constructor may belong to a class declaration pass 1 has
			// not reached yet.
			for _, arg := range v.Args {
				c.checkExpr(arg)
			}

			return it
		}

		// Implicit zero-argument constructor.
		ctorType = &types.FuncType{ReturnType: types.Void}
	}

	c.checkCallArgs(&ast.CallExpr{
		ExprBase: ast.NewExprBaseOn(v.Span()),
		Args:     v.Args,
	}, ctorType)

	return it
}

// checkNewArray checks `new Array<T>(n)` and `new Array<T>(n, init)`.  The
// one-argument form is only allowed when T is integer, float, boolean, or any.
func (c *Checker) checkNewArray(v *ast.NewExpr) types.Type {
	elemType := types.Type(types.Any)
	switch len(v.TypeArgs) {
	case 0:
	case 1:
		elemType = c.resolveTypeExpr(v.TypeArgs[0])
	default:
		c.error(v.Span(), "wrong number of type arguments")
	}

	arrayType := &types.ArrayType{ElemType: elemType}

	switch len(v.Args) {
	case 1:
		c.checkArraySize(v.Args[0])

		switch {
		case types.Equals(elemType, types.Integer), types.Equals(elemType, types.Float),
			types.Equals(elemType, types.Boolean), types.Equals(elemType, types.Any):
		default:
			c.error(v.Span(), "an initial value is required for element type '%s'", elemType.Repr())
		}
	case 2:
		c.checkArraySize(v.Args[0])

		initType := c.checkExpr(v.Args[1])
		if !types.IsSubtype(initType, elemType) {
			if types.IsConsistent(initType, elemType) {
				c.coerce(v.Args[1])
			} else {
				c.error(v.Args[1].Span(), "Type '%s' is not assignable to type '%s'",
					initType.Repr(), elemType.Repr())
			}
		}
	default:
		c.error(v.Span(), "wrong number of arguments")

		for _, arg := range v.Args {
			c.checkExpr(arg)
		}
	}

	return arrayType
}

// checkArraySize checks an array length argument, which must be an integer.
func (c *Checker) checkArraySize(arg ast.ASTExpr) {
	sizeType := c.checkExpr(arg)
	if types.IsSubtype(sizeType, types.Integer) {
		return
	}

	if types.IsConsistent(sizeType, types.Integer) {
		c.coerce(arg)
		return
	}

	c.error(arg.Span(), "Type '%s' is not assignable to type 'integer'", sizeType.Repr())
}

// -----------------------------------------------------------------------------

// checkMemberRead checks an indexed or named member read.
func (c *Checker) checkMemberRead(v *ast.MemberExpr) types.Type {
	if v.Computed {
		return c.checkIndexedRead(v)
	}

	objType := c.checkExpr(v.Object)
	name := v.Property.Name

	switch o := objType.(type) {
	case *types.ArrayType:
		if name == types.ArrayLengthName {
			return types.Integer
		}

		c.error(v.Property.Span(), "unknown property: %s", name)
		return types.Any
	case *types.InstanceType:
		if isByteArray(o) && name == types.ArrayLengthName {
			return types.Integer
		}

		if propType, index, ok := o.FindProperty(name); ok {
			// Reads of slots at or beyond the unboxed cutoff return a boxed
			// value that the generator wraps with a coercion.
			if o.IsBoxedProperty(index) {
				c.coerce(v)
			}

			return propType
		}

		if methodType, _, ok := o.FindMethod(name); ok {
			if methodType.ReturnType == nil {
				return &types.FuncType{ParamTypes: methodType.ParamTypes, ReturnType: types.Any}
			}

			return methodType
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

// checkIndexedRead checks `o[i]`.
func (c *Checker) checkIndexedRead(v *ast.MemberExpr) types.Type {
	objType := c.checkExpr(v.Object)
	c.checkIndexExpr(v.Index)

	switch o := objType.(type) {
	case *types.ArrayType:
		elemType := o.ElemType
		if !types.Equals(types.ActualElementType(elemType), elemType) {
			// The cell is a tagged slot: the read crosses an any boundary.
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

// checkIndexExpr checks an index expression, which must be an integer.
func (c *Checker) checkIndexExpr(index ast.ASTExpr) {
	indexType := c.checkExpr(index)
	if types.IsSubtype(indexType, types.Integer) {
		return
	}

	if types.IsConsistent(indexType, types.Integer) {
		c.coerce(index)
		return
	}

	c.error(index.Span(), "Type '%s' is not assignable to type 'integer'", indexType.Repr())
}

// -----------------------------------------------------------------------------

// checkArrowFunc checks an arrow function expression and yields its function
// type.  An undeclared return type is fixed by the first return statement.
func (c *Checker) checkArrowFunc(v *ast.ArrowFunc) types.Type {
	paramTypes := c.paramTypes(v.Params)

	var declaredRet types.Type
	if v.RetAnn != nil {
		declaredRet = c.resolveTypeExpr(v.RetAnn)
	}

	retType := c.checkFunctionBody(v.Params, paramTypes, declaredRet, v.Body, v)

	return &types.FuncType{ParamTypes: paramTypes, ReturnType: retType}
}

// paramTypes resolves the declared types of a parameter list.  Untyped
// parameters are any.
func (c *Checker) paramTypes(params []*ast.Param) []types.Type {
	resolved := make([]types.Type, len(params))
	for i, param := range params {
		if param.TypeAnn != nil {
			resolved[i] = c.resolveTypeExpr(param.TypeAnn)
		} else {
			resolved[i] = types.Any
		}
	}

	return resolved
}

// checkFunctionBody checks a function body in a fresh function scope holding
// the parameters and the return-type slot.  It returns the declared or
// inferred return type (void if no return yields a value).
func (c *Checker) checkFunctionBody(params []*ast.Param, paramTypes []types.Type, declaredRet types.Type, body *ast.Block, node ast.ASTNode) types.Type {
	fnTable := names.NewFunctionTable(c.table)

	for i, param := range params {
		if !fnTable.Record(param.Name, &names.NameInfo{Type: paramTypes[i]}) {
			c.error(param.NameSpan, "multiple declarations of `%s`", param.Name)
		}
	}

	if declaredRet != nil {
		fnTable.SetReturnType(declaredRet)
	}

	c.attach(node, fnTable)
	c.checkBlock(body, fnTable)

	retType, known := fnTable.ReturnType()
	if !known {
		retType = types.Void
	}

	return retType
}
