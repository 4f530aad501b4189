package checker

import (
	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/report"
	"github.com/ymzk/bluescript/types"
)

// checkVarDecl checks a variable declaration and records the name.  Global
// names are recorded in pass 1 only; local names are re-recorded in each
// freshly built block or function table in pass 2.
func (c *Checker) checkVarDecl(v *ast.VarDecl) {
	if v.Exported && !c.table.IsGlobal() {
		c.error(v.Span(), "export is only allowed at top level")
	}

	var declaredType types.Type
	if v.TypeAnn != nil {
		declaredType = c.resolveTypeExpr(v.TypeAnn)
	}

	var initType types.Type
	if v.Init != nil {
		initType = c.checkExpr(v.Init)
	}

	boundType := declaredType
	if boundType == nil {
		if initType != nil {
			boundType = initType
		} else {
			boundType = types.Any
		}
	}

	if declaredType != nil && initType != nil && !types.IsSubtype(initType, declaredType) {
		if types.IsConsistent(initType, declaredType) {
			c.coerce(v.Init)
		} else {
			c.error(v.Init.Span(), "Type '%s' is not assignable to type '%s'",
				initType.Repr(), declaredType.Repr())
		}
	}

	c.result(v.Name, boundType)

	if c.table.IsGlobal() && !c.firstPass {
		// Already recorded by pass 1.
		return
	}

	info := &names.NameInfo{
		Type:       boundType,
		IsConst:    v.IsConst,
		IsExported: v.Exported,
	}
	if !c.table.Record(v.Name.Name, info) {
		c.error(v.Name.Span(), "multiple declarations of `%s`", v.Name.Name)
	}
}

// -----------------------------------------------------------------------------

// checkFuncDecl checks a function declaration.  Only top-level functions are
// allowed.  An undeclared return type is inferred from the body.
func (c *Checker) checkFuncDecl(f *ast.FuncDecl) {
	if !c.table.IsGlobal() {
		c.error(f.Span(), "nested function declarations are not supported")
	}

	paramTypes := c.paramTypes(f.Params)

	var declaredRet types.Type
	if f.RetAnn != nil {
		declaredRet = c.resolveTypeExpr(f.RetAnn)
	}

	var fnType *types.FuncType
	if c.firstPass || !c.table.IsGlobal() {
		fnType = &types.FuncType{ParamTypes: paramTypes, ReturnType: declaredRet}

		info := &names.NameInfo{
			Type:       fnType,
			IsFunction: true,
			IsExported: f.Exported,
		}
		if !c.table.Record(f.Name.Name, info) {
			c.error(f.Name.Span(), "multiple declarations of `%s`", f.Name.Name)
		}
	} else {
		// Pass 2 at the global scope: the signature was recorded by pass 1.
		if info, ok := c.table.Lookup(f.Name.Name); ok {
			fnType, _ = info.Type.(*types.FuncType)
		}

		if fnType == nil {
			fnType = &types.FuncType{ParamTypes: paramTypes, ReturnType: declaredRet}
		}
	}

	retType := c.checkFunctionBody(f.Params, paramTypes, fnType.ReturnType, f.Body, f)
	if fnType.ReturnType == nil {
		fnType.ReturnType = retType
	}

	c.result(f.Name, fnType)
}

// -----------------------------------------------------------------------------

// preDeclareClass registers a declared class's name before pass 1 resolves
// any bodies, so that classes and their extends clauses may reference each
// other in any order.
func (c *Checker) preDeclareClass(cd *ast.ClassDecl) {
	it := types.NewInstanceType(cd.Name.Name, nil)

	if !c.table.AddClass(cd.Name.Name, it) {
		c.error(cd.Name.Span(), "multiple declarations of `%s`", cd.Name.Name)
		c.classOf[cd] = nil
		return
	}

	info := &names.NameInfo{
		Type:       it,
		IsTypeName: true,
		IsExported: cd.Exported,
	}
	if !c.table.Record(cd.Name.Name, info) {
		c.error(cd.Name.Span(), "multiple declarations of `%s`", cd.Name.Name)
		c.classOf[cd] = nil
		return
	}

	c.classOf[cd] = it
}

// checkClassDecl checks a class declaration.  Pass 1 resolves the superclass
// and records property and method signatures, seals the instance type, and
// queues the class for the constructor validation run at the end of the pass;
// both passes descend into method bodies.
func (c *Checker) checkClassDecl(cd *ast.ClassDecl) {
	if !c.table.IsGlobal() {
		c.error(cd.Span(), "classes must be declared at top level")
		return
	}

	it := c.classOf[cd]
	if it == nil {
		return
	}

	if c.firstPass {
		c.recordClassMembers(cd, it)
	}

	c.checkClassBody(cd, it)

	if c.firstPass {
		// Constructor discipline is validated once every class of the
		// program has been recorded, so superclass constructor signatures
		// are complete.
		c.pendingClasses = append(c.pendingClasses, cd)
	}
}

// checkClassDiscipline runs the constructor validator over every class
// recorded by pass 1.
func (c *Checker) checkClassDiscipline() {
	for _, cd := range c.pendingClasses {
		it := c.classOf[cd]
		if it == nil {
			continue
		}

		if ctor := cd.FindConstructor(); ctor != nil {
			c.validateConstructor(cd, it, ctor)
			continue
		}

		// A class without an explicit constructor never initializes its own
		// properties and relies on an implicit zero-argument super call.
		for _, prop := range cd.Props {
			c.error(prop.Span(), "uninitialized property: %s", prop.Name)
		}

		if sit, ok := it.SuperType().(*types.InstanceType); ok {
			if superCtor, ok := sit.Constructor(); ok && len(superCtor.ParamTypes) > 0 {
				c.error(cd.Name.Span(), "super() is not called")
			}
		}
	}

	c.pendingClasses = nil
}

// recordClassMembers resolves the extends clause and records the class's
// declared properties and methods, then seals the instance type.
func (c *Checker) recordClassMembers(cd *ast.ClassDecl, it *types.InstanceType) {
	if cd.SuperName != nil {
		if super, ok := c.table.FindClass(cd.SuperName.Name); ok {
			switch {
			case super.Leaf():
				c.error(cd.SuperName.Span(), "%s cannot be extended", super.Name())
			case createsInheritanceCycle(it, super):
				c.error(cd.SuperName.Span(), "inheritance cycle through %s", cd.SuperName.Name)
			default:
				it.SetSuperType(super)
			}
		} else {
			c.error(cd.SuperName.Span(), "unknown type name: %s", cd.SuperName.Name)
		}
	}

	for _, prop := range cd.Props {
		propType := types.Type(types.Any)
		if prop.TypeAnn != nil {
			propType = c.resolveTypeExpr(prop.TypeAnn)
		}

		if !it.AddProperty(prop.Name, propType) {
			c.error(prop.Span(), "duplicate member: %s", prop.Name)
		}
	}

	for _, method := range cd.Methods {
		methodType := &types.FuncType{ParamTypes: c.paramTypes(method.Params)}

		if method.IsConstructor() {
			methodType.ReturnType = types.Void
		} else if method.RetAnn != nil {
			methodType.ReturnType = c.resolveTypeExpr(method.RetAnn)
		}

		if !it.AddMethod(method.Name, methodType) {
			c.error(method.NameSpan, "duplicate member: %s", method.Name)
		}
	}

	it.Seal()
}

// createsInheritanceCycle reports whether making super the superclass of it
// would close a cycle.
func createsInheritanceCycle(it *types.InstanceType, super *types.InstanceType) bool {
	for s := types.Type(super); ; {
		sit, ok := s.(*types.InstanceType)
		if !ok {
			return false
		}

		if types.Equals(sit, it) {
			return true
		}

		s = sit.SuperType()
	}
}

// checkClassBody descends into the class's method bodies.  In pass 1 this
// serves return-type inference with unknown-name diagnostics suppressed; in
// pass 2 the bodies are fully checked.
func (c *Checker) checkClassBody(cd *ast.ClassDecl, it *types.InstanceType) {
	savedClass, savedCtor := c.currentClass, c.inConstructor
	c.currentClass = it

	for _, method := range cd.Methods {
		methodType, _, ok := it.FindMethod(method.Name)
		if !ok {
			continue
		}

		c.inConstructor = method.IsConstructor()

		paramTypes := methodType.ParamTypes
		if len(paramTypes) != len(method.Params) {
			paramTypes = c.paramTypes(method.Params)
		}

		retType := c.checkFunctionBody(method.Params, paramTypes, methodType.ReturnType, method.Body, method)
		if methodType.ReturnType == nil {
			methodType.ReturnType = retType
		}
	}

	c.currentClass, c.inConstructor = savedClass, savedCtor
}

// -----------------------------------------------------------------------------

// checkImportDecl resolves an import declaration.  Imports are valid only in
// the global scope and are performed only during pass 1.
func (c *Checker) checkImportDecl(d *ast.ImportDecl) {
	if !c.firstPass {
		return
	}

	if !c.table.IsGlobal() {
		c.error(d.Span(), "import is only allowed at top level")
		return
	}

	if c.importer == nil {
		c.error(d.Span(), "cannot import '%s': no importer is available", d.From)
		return
	}

	imported, err := c.importer(d.From)
	if err != nil {
		if elog, ok := err.(*report.ErrorLog); ok {
			c.log.Merge(elog, d.From)
		} else {
			c.log.Push(d.Span(), "%s", err.Error())
		}

		return
	}

	for _, name := range d.Names {
		info, ok := imported.Lookup(name.Name)
		if !ok {
			c.error(name.Span(), "'%s' is not declared in '%s'", name.Name, d.From)
			continue
		}

		if !info.IsExported {
			c.error(name.Span(), "'%s' is not exported", name.Name)
			continue
		}

		if !c.table.ImportInfo(name.Name, info) {
			c.error(name.Span(), "multiple declarations of `%s`", name.Name)
			continue
		}

		if info.IsTypeName {
			if it, ok := info.Type.(*types.InstanceType); ok {
				c.table.AddClass(name.Name, it)
			}
		}
	}
}
