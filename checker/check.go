package checker

import (
	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/report"
	"github.com/ymzk/bluescript/types"
)

// ByteArrayClassName is the name of the builtin byte-array class.
const ByteArrayClassName = "Uint8Array"

// TypeCheck runs the two checking passes over a program.
//
// Pass 1 records every global variable, function, class, and imported symbol
// into the global scope; pass 2 re-checks the full program with every global
// name bound, filling in the side-table.  At each pass boundary the
// accumulated log is surfaced as the error if it is non-empty.
//
// The caller's global table is populated in place; the returned side-table
// carries the per-node static types, coercion flags, and scope tables.
func TypeCheck(prog *ast.Program, global *names.NameTable, importer Importer) (*TypeTable, error) {
	if !global.HasParent() {
		installBuiltins(global)
	}

	c := &Checker{
		firstPass: true,
		table:     global,
		info:      NewTypeTable(),
		log:       report.NewErrorLog(),
		importer:  importer,
		narrowed:  make(map[*names.NameInfo]types.Type),
		classOf:   make(map[*ast.ClassDecl]*types.InstanceType),
	}

	c.checkProgram(prog)
	if c.log.HasError() {
		return c.info, c.log
	}

	c.firstPass = false
	c.table = global
	c.narrowed = make(map[*names.NameInfo]types.Type)

	c.checkProgram(prog)
	if c.log.HasError() {
		return c.info, c.log
	}

	return c.info, nil
}

// installBuiltins seeds an outermost global scope with the builtin types:
// currently only the byte-array class with its two-argument (length, fill)
// constructor, marked leaf and exported.
func installBuiltins(global *names.NameTable) {
	byteArray := types.NewInstanceType(ByteArrayClassName, nil)
	byteArray.AddMethod("constructor", &types.FuncType{
		ParamTypes: []types.Type{types.Integer, types.Integer},
		ReturnType: types.Void,
	})
	byteArray.SetLeaf()
	byteArray.Seal()

	global.AddClass(ByteArrayClassName, byteArray)
	global.Record(ByteArrayClassName, &names.NameInfo{
		Type:       byteArray,
		IsTypeName: true,
		IsExported: true,
	})
}

// isByteArray reports whether t is the builtin byte-array class.  Leaf
// classes cannot be declared in source, so the name and flag identify it.
func isByteArray(t types.Type) bool {
	it, ok := t.(*types.InstanceType)
	return ok && it.Leaf() && it.Name() == ByteArrayClassName
}
