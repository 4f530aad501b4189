// Package checker implements the static type checker: a two-pass traversal
// over the parsed AST that resolves identifier bindings, infers and verifies
// static types, records coercion markers where runtime conversions are
// needed, and rejects ill-typed programs with positioned diagnostics.
package checker

import (
	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/report"
	"github.com/ymzk/bluescript/types"
)

// Checker holds the state of one checking traversal.  The same checker runs
// both passes; firstPass selects the pass behavior.  A checker is not
// reentrant.
type Checker struct {
	// Whether the declaration-recording pass is running.  During pass 1,
	// unknown-name diagnostics are suppressed because forward references must
	// succeed, and the side-table is not written.
	firstPass bool

	// The name table of the scope being checked.
	table *names.NameTable

	// The side-table being filled in.
	info *TypeTable

	// The accumulated diagnostics.
	log *report.ErrorLog

	// The importer callback, or nil.
	importer Importer

	// The class whose method body is being checked, or nil.
	currentClass *types.InstanceType

	// Whether the body being checked is a constructor.
	inConstructor bool

	// narrowed maps flow-narrowed name infos to the declared (optional) type
	// the narrowing refined.  Assigning a possibly-null value to a narrowed
	// name reverts its info to the declared type.
	narrowed map[*names.NameInfo]types.Type

	// classOf maps each class declaration to the instance type its pre-scan
	// registered.  The entry is nil when registration failed (a duplicate
	// name), so the declaration is skipped instead of mutating another class.
	classOf map[*ast.ClassDecl]*types.InstanceType

	// pendingClasses collects the classes pass 1 has recorded, for the
	// constructor-discipline validation run at the end of the pass.
	pendingClasses []*ast.ClassDecl
}

// Importer resolves an import name to the global name table of the imported
// file.  A returned *report.ErrorLog is absorbed verbatim into the importing
// file's log; any other error is pushed with the import node's location.
type Importer func(name string) (*names.NameTable, error)

// -----------------------------------------------------------------------------

// error pushes a diagnostic for the given span.  Errors do not stop the
// traversal: checking continues in a best-effort state.
func (c *Checker) error(span *report.TextSpan, msg string, args ...interface{}) {
	c.log.Push(span, msg, args...)
}

// result records the static type of an expression node in pass 2 and returns
// it, so every expression check ends with a single result call.
func (c *Checker) result(node ast.ASTNode, t types.Type) types.Type {
	if !c.firstPass {
		c.info.AddStaticType(node, t)
	}

	return t
}

// coerce marks the node as requiring a runtime adapter.  Pass 1 records no
// annotations.
func (c *Checker) coerce(node ast.ASTNode) {
	if !c.firstPass {
		c.info.AddCoercionFlag(node)
	}
}

// attach associates a scope table with its introducing node in pass 2.
func (c *Checker) attach(node ast.ASTNode, table *names.NameTable) {
	if !c.firstPass {
		c.info.AddNameTable(node, table)
	}
}

// -----------------------------------------------------------------------------

// checkProgram checks all top-level declarations and statements.  In pass 1 a
// pre-scan registers every declared class name first, so that classes and
// their extends clauses may reference each other in any order.
func (c *Checker) checkProgram(prog *ast.Program) {
	if c.firstPass {
		for _, node := range prog.Body {
			if cd, ok := node.(*ast.ClassDecl); ok {
				c.preDeclareClass(cd)
			}
		}
	} else {
		c.attach(prog, c.table)
	}

	for _, node := range prog.Body {
		c.checkStmt(node)
	}

	if c.firstPass {
		c.checkClassDiscipline()
	}
}

// checkStmt checks a single statement or declaration.
func (c *Checker) checkStmt(node ast.ASTNode) {
	switch v := node.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(v)
	case *ast.FuncDecl:
		c.checkFuncDecl(v)
	case *ast.ClassDecl:
		c.checkClassDecl(v)
	case *ast.ImportDecl:
		c.checkImportDecl(v)
	case *ast.Block:
		c.checkBlock(v, names.NewBlockTable(c.table))
	case *ast.IfStmt:
		c.checkIfStmt(v)
	case *ast.WhileLoop:
		c.checkWhileLoop(v)
	case *ast.ForLoop:
		c.checkForLoop(v)
	case *ast.ReturnStmt:
		c.checkReturnStmt(v)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.EmptyStmt:
		// Nothing to check.
	case *ast.ThrowStmt:
		c.error(v.Span(), "throw is not supported")
	case *ast.ExprStmt:
		c.checkExpr(v.Expr)
	default:
		c.error(node.Span(), "unsupported statement")
	}
}

// checkBlock checks the statements of a block in the given scope table and
// attaches the table to the block node.
func (c *Checker) checkBlock(b *ast.Block, table *names.NameTable) {
	saved := c.table
	c.table = table
	c.attach(b, table)

	for _, stmt := range b.Stmts {
		c.checkStmt(stmt)
	}

	c.table = saved
}

// -----------------------------------------------------------------------------

// checkIfStmt checks an if statement, refining the type of an optional-typed
// identifier that the condition tests against undefined.
func (c *Checker) checkIfStmt(v *ast.IfStmt) {
	condType := c.checkExpr(v.Cond)
	c.markBooleanTest(v.Cond, condType)

	thenTable := names.NewBlockTable(c.table)
	elseTable := names.NewBlockTable(c.table)

	if nt, ok := c.narrowTest(v.Cond); ok {
		c.recordNarrowed(thenTable, nt.name, nt.info, nt.positive)
		c.recordNarrowed(elseTable, nt.name, nt.info, nt.negative)
	}

	c.checkBlock(v.Then, thenTable)

	switch alt := v.Else.(type) {
	case nil:
	case *ast.Block:
		c.checkBlock(alt, elseTable)
	default:
		// An else-if chain: check the nested if under the negative branch's
		// scope so its narrowing remains visible.
		saved := c.table
		c.table = elseTable
		c.checkStmt(alt)
		c.table = saved
	}
}

// checkWhileLoop checks a while loop.  Narrowing established by the loop
// condition is preserved across the loop body on the narrowed side.
func (c *Checker) checkWhileLoop(v *ast.WhileLoop) {
	condType := c.checkExpr(v.Cond)
	c.markBooleanTest(v.Cond, condType)

	bodyTable := names.NewBlockTable(c.table)
	if nt, ok := c.narrowTest(v.Cond); ok {
		c.recordNarrowed(bodyTable, nt.name, nt.info, nt.positive)
	}

	c.checkBlock(v.Body, bodyTable)
}

// checkForLoop checks a C-style for loop.  The loop header introduces a scope
// of its own, attached to the for node.
func (c *Checker) checkForLoop(v *ast.ForLoop) {
	headerTable := names.NewBlockTable(c.table)
	saved := c.table
	c.table = headerTable
	c.attach(v, headerTable)

	if v.Init != nil {
		c.checkStmt(v.Init)
	}

	bodyTable := names.NewBlockTable(c.table)
	if v.Cond != nil {
		condType := c.checkExpr(v.Cond)
		c.markBooleanTest(v.Cond, condType)

		if nt, ok := c.narrowTest(v.Cond); ok {
			c.recordNarrowed(bodyTable, nt.name, nt.info, nt.positive)
		}
	}

	if v.Update != nil {
		c.checkStmt(v.Update)
	}

	c.checkBlock(v.Body, bodyTable)

	c.table = saved
}

// checkReturnStmt checks a return statement against the enclosing function's
// return-type slot.  If the function has no declared return type, the first
// return fixes it.
func (c *Checker) checkReturnStmt(v *ast.ReturnStmt) {
	fnTable := c.table.EnclosingFunction()
	if fnTable == nil {
		c.error(v.Span(), "return is not allowed here")

		if v.Value != nil {
			c.checkExpr(v.Value)
		}

		return
	}

	valueType := types.Type(types.Void)
	if v.Value != nil {
		valueType = c.checkExpr(v.Value)
	}

	retType, known := fnTable.ReturnType()
	if !known {
		fnTable.SetReturnType(valueType)
		return
	}

	if types.IsSubtype(valueType, retType) {
		return
	}

	if types.IsConsistent(valueType, retType) {
		if v.Value != nil {
			c.coerce(v.Value)
		}

		return
	}

	c.error(v.Span(), "Type '%s' is not assignable to type '%s'", valueType.Repr(), retType.Repr())
}

// -----------------------------------------------------------------------------

// markBooleanTest flags an expression used in boolean position for a runtime
// boolean coercion when its static type is not already boolean.
func (c *Checker) markBooleanTest(node ast.ASTExpr, t types.Type) {
	if !types.Equals(t, types.Boolean) {
		c.coerce(node)
	}
}

// narrowedTest describes an optional-narrowing opportunity found in a branch
// condition: the tested identifier and the types it refines to on the
// positive and negative sides.
type narrowedTest struct {
	name     string
	info     *names.NameInfo
	positive types.Type
	negative types.Type
}

// narrowTest recognizes a condition of the shape `x != undefined` (also
// `!==`, `==`, `===`, and the flipped operand order, with `null` accepted
// for `undefined`) where x is an optional-typed identifier.
func (c *Checker) narrowTest(cond ast.ASTExpr) (narrowedTest, bool) {
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok {
		return narrowedTest{}, false
	}

	var equalIsPositive bool
	switch bin.Op {
	case "==", "===":
		equalIsPositive = false
	case "!=", "!==":
		equalIsPositive = true
	default:
		return narrowedTest{}, false
	}

	ident, ok := bin.Lhs.(*ast.Identifier)
	other := bin.Rhs
	if !ok || ident.Name == "undefined" {
		ident, ok = bin.Rhs.(*ast.Identifier)
		other = bin.Lhs
		if !ok || ident.Name == "undefined" {
			return narrowedTest{}, false
		}
	}

	if !isNullExpr(other) {
		return narrowedTest{}, false
	}

	info, ok := c.table.Lookup(ident.Name)
	if !ok {
		return narrowedTest{}, false
	}

	opt, ok := info.Type.(*types.OptionalType)
	if !ok {
		return narrowedTest{}, false
	}

	nt := narrowedTest{name: ident.Name, info: info}
	if equalIsPositive {
		nt.positive, nt.negative = opt.ElemType, types.Null
	} else {
		nt.positive, nt.negative = types.Null, opt.ElemType
	}

	return nt, true
}

// isNullExpr reports whether the expression is the identifier `undefined` or
// the literal `null`.
func isNullExpr(e ast.ASTExpr) bool {
	if ident, ok := e.(*ast.Identifier); ok {
		return ident.Name == "undefined"
	}

	_, ok := e.(*ast.NullLit)
	return ok
}

// recordNarrowed shadows name in the branch table with a copy of its info
// refined to the given type, remembering the declared type so an assignment
// of a possibly-null value can discard the narrowing.
func (c *Checker) recordNarrowed(table *names.NameTable, name string, orig *names.NameInfo, refined types.Type) {
	info := &names.NameInfo{
		Type:       refined,
		IsConst:    orig.IsConst,
		IsFunction: orig.IsFunction,
		IsTypeName: orig.IsTypeName,
		IsExported: orig.IsExported,
	}

	table.Record(name, info)
	c.narrowed[info] = orig.Type
}
