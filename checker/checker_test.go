package checker

import (
	"strings"
	"testing"

	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/report"
	"github.com/ymzk/bluescript/syntax"
	"github.com/ymzk/bluescript/types"
)

// checkSource parses and type-checks a source string against a fresh global
// scope.
func checkSource(t *testing.T, src string) (*ast.Program, *names.NameTable, *TypeTable, error) {
	t.Helper()

	prog, err := syntax.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	global := names.NewGlobalTable(nil)
	info, cerr := TypeCheck(prog, global, nil)
	return prog, global, info, cerr
}

// mustCheck asserts that a source string checks without errors.
func mustCheck(t *testing.T, src string) (*ast.Program, *names.NameTable, *TypeTable) {
	t.Helper()

	prog, global, info, err := checkSource(t, src)
	if err != nil {
		t.Fatalf("unexpected checker errors:\n%v", err)
	}

	return prog, global, info
}

// mustFail asserts that a source string fails to check with a diagnostic
// containing want.
func mustFail(t *testing.T, src, want string) *report.ErrorLog {
	t.Helper()

	_, _, _, err := checkSource(t, src)
	if err == nil {
		t.Fatalf("expected a diagnostic containing %q, got none", want)
	}

	log := err.(*report.ErrorLog)
	for _, diag := range log.Diags {
		if strings.Contains(diag.Message, want) {
			return log
		}
	}

	t.Fatalf("expected a diagnostic containing %q, got:\n%v", want, log)
	return nil
}

// globalType returns the checked type bound to a global name.
func globalType(t *testing.T, global *names.NameTable, name string) types.Type {
	t.Helper()

	info, ok := global.Lookup(name)
	if !ok {
		t.Fatalf("global `%s` was not recorded", name)
	}

	return info.Type
}

// -----------------------------------------------------------------------------

func TestSimpleProgram(t *testing.T) {
	_, global, _ := mustCheck(t, `
let n: integer = 1;
let f: float = 1.5;
let s = "hello";
let b = n < 3 && true;

function twice(x: integer): integer {
	return x * 2;
}

let m = twice(n);
`)

	if got := globalType(t, global, "s"); !types.Equals(got, types.String) {
		t.Errorf("s should be string, got %s", got.Repr())
	}

	if got := globalType(t, global, "m"); !types.Equals(got, types.Integer) {
		t.Errorf("m should be integer, got %s", got.Repr())
	}
}

func TestNumericLiterals(t *testing.T) {
	_, global, _ := mustCheck(t, `
let a = 42;
let b = 0x2a;
let c = 4.5;
let d = 1e3;
`)

	if got := globalType(t, global, "a"); !types.Equals(got, types.Integer) {
		t.Errorf("decimal literals should be integer, got %s", got.Repr())
	}

	if got := globalType(t, global, "b"); !types.Equals(got, types.Integer) {
		t.Errorf("hex literals should be integer, got %s", got.Repr())
	}

	if got := globalType(t, global, "c"); !types.Equals(got, types.Float) {
		t.Errorf("fractional literals should be float, got %s", got.Repr())
	}

	if got := globalType(t, global, "d"); !types.Equals(got, types.Float) {
		t.Errorf("exponent literals should be float, got %s", got.Repr())
	}
}

func TestAnnotationCompleteness(t *testing.T) {
	prog, _, info := mustCheck(t, `
let n: integer = 1;
let m = n + 2;
`)

	// Every expression node of a successfully checked program has a static
	// type after pass 2.
	add := prog.Body[1].(*ast.VarDecl).Init.(*ast.BinaryExpr)
	for _, node := range []ast.ASTNode{add, add.Lhs, add.Rhs} {
		if _, ok := info.GetStaticType(node); !ok {
			t.Errorf("missing static type for %T", node)
		}
	}

	if tbl, ok := info.GetNameTable(prog); !ok || !tbl.IsGlobal() {
		t.Error("the global table should be attached to the program node")
	}
}

// -----------------------------------------------------------------------------

func TestOptionalDeclaration(t *testing.T) {
	// `integer | undefined` in either order denotes the optional type.
	_, global, _ := mustCheck(t, `let a: integer | undefined;`)

	opt, ok := globalType(t, global, "a").(*types.OptionalType)
	if !ok {
		t.Fatal("a should be optional")
	}

	if !types.Equals(opt.ElemType, types.Integer) {
		t.Errorf("element should be integer, got %s", opt.ElemType.Repr())
	}

	_, global2, _ := mustCheck(t, `let a: undefined | integer;`)
	if _, ok := globalType(t, global2, "a").(*types.OptionalType); !ok {
		t.Error("the flipped order should also denote the optional type")
	}
}

func TestInvalidUnionPosition(t *testing.T) {
	log := mustFail(t, `const a: integer | string = 0`, "only optional types are supported")

	diag := log.Diags[0]
	if diag.Span == nil || diag.Span.StartCol != 9 {
		t.Errorf("the diagnostic should sit at column 9, got %+v", diag.Span)
	}
}

func TestUnionRejections(t *testing.T) {
	cases := []string{
		`let a: integer | string | null = 0;`,
		`let a: null | undefined;`,
		`let a: any | null;`,
	}

	for _, src := range cases {
		mustFail(t, src, "only optional types are supported")
	}
}

func TestOptionalInitializerKeepsItsType(t *testing.T) {
	prog, global, info := mustCheck(t, `let a: integer | undefined = 0;`)

	if _, ok := globalType(t, global, "a").(*types.OptionalType); !ok {
		t.Fatal("a should be optional")
	}

	// The initialiser keeps its own type: no narrowing demotion.
	init := prog.Body[0].(*ast.VarDecl).Init
	if it, ok := info.GetStaticType(init); !ok || !types.Equals(it, types.Integer) {
		t.Error("the initializer should have type integer")
	}
}

func TestNumberKeywordMeansInteger(t *testing.T) {
	_, global, _ := mustCheck(t, `let a: number = 1;`)

	if got := globalType(t, global, "a"); !types.Equals(got, types.Integer) {
		t.Errorf("number should mean integer, got %s", got.Repr())
	}
}

// -----------------------------------------------------------------------------

func TestNarrowingPositiveBranch(t *testing.T) {
	mustCheck(t, `
let x: integer | undefined = 0;
if (x != undefined) {
	const y: integer = x;
}
`)
}

func TestNarrowingNegativeBranch(t *testing.T) {
	mustCheck(t, `
let x: integer | undefined = 0;
if (x == undefined) {
	const y: null = x;
} else {
	const y: integer = x;
}
`)
}

func TestNarrowingDiscardedByNullAssignment(t *testing.T) {
	mustFail(t, `
let x: integer | undefined = 0;
if (x != undefined) {
	x = undefined;
	const y: integer = x;
}
`, "Type 'integer|null' is not assignable to type 'integer'")
}

func TestNarrowingSurvivesNonNullAssignment(t *testing.T) {
	mustCheck(t, `
let x: integer | undefined = 0;
if (x != undefined) {
	x = 1;
	const y: integer = x;
}
`)
}

func TestNarrowingEndsOutsideBranch(t *testing.T) {
	mustFail(t, `
let x: integer | undefined = 0;
if (x != undefined) { }
const y: integer = x;
`, "Type 'integer|null' is not assignable to type 'integer'")
}

func TestNarrowingAcrossWhileBody(t *testing.T) {
	mustCheck(t, `
let x: integer | undefined = 0;
while (x != undefined) {
	const y: integer = x;
	x = undefined;
}
`)
}

func TestNarrowingAcrossForBody(t *testing.T) {
	mustCheck(t, `
let x: integer | undefined = 0;
for (let i = 0; x !== undefined; i++) {
	const y: integer = x;
}
`)
}

// -----------------------------------------------------------------------------

func TestAssignability(t *testing.T) {
	mustFail(t, `let a: integer = "s";`, "Type 'string' is not assignable to type 'integer'")
	mustFail(t, `let a: integer = 1.5;`, "Type 'float' is not assignable to type 'integer'")
	mustFail(t, `
let a: integer = 1;
let b: string = "s";
a = b;
`, "Type 'string' is not assignable to type 'integer'")
}

func TestAnyCoercionOnAssignment(t *testing.T) {
	prog, _, info := mustCheck(t, `
let a: any = 1;
let b: integer = a;
`)

	// The static mismatch is papered over by a runtime coercion.
	init := prog.Body[1].(*ast.VarDecl).Init
	if !info.HasCoercionFlag(init) {
		t.Error("the any-to-integer boundary should carry a coercion flag")
	}

	if it, ok := info.GetStaticType(init); !ok || !types.Equals(it, types.Any) {
		t.Error("a coercion flag is always accompanied by a static type")
	}
}

func TestConstAndFunctionAssignment(t *testing.T) {
	mustFail(t, `
const c = 1;
c = 2;
`, "assignment to constant variable")

	mustFail(t, `
function f() { }
f = 1;
`, "assignment to top-level function")
}

func TestCompoundOperators(t *testing.T) {
	mustCheck(t, `
let a = 1;
a += 2;
a %= 3;
a <<= 1;
`)

	mustFail(t, `
let a = 1;
a += "s";
`, "invalid operands to +=")

	mustFail(t, `
let a = 1;
let f = 1.5;
a += f;
`, "Type 'float' is not assignable to type 'integer'")

	mustFail(t, `
let a = 1;
a **= 2;
`, "operator **= is not supported")

	mustFail(t, `
let a = 1.5;
a &= 2;
`, "invalid operands to &=")
}

func TestOperatorRules(t *testing.T) {
	_, global, _ := mustCheck(t, `
let i = 1 + 2;
let f = 1 + 2.5;
let m = 7 % 3;
let b = 1 < 2;
let s = "a" == "b";
let n = !0;
`)

	if got := globalType(t, global, "i"); !types.Equals(got, types.Integer) {
		t.Errorf("integer + integer should be integer, got %s", got.Repr())
	}

	if got := globalType(t, global, "f"); !types.Equals(got, types.Float) {
		t.Errorf("integer + float should be float, got %s", got.Repr())
	}

	if got := globalType(t, global, "n"); !types.Equals(got, types.Boolean) {
		t.Errorf("! should return boolean, got %s", got.Repr())
	}
}

func TestOperatorRejections(t *testing.T) {
	mustFail(t, `let x = "s" + 1;`, "invalid operands to +")
	mustFail(t, `let x = 1.5 % 2;`, "invalid operands to %")
	mustFail(t, `let x = 1.5 & 2;`, "invalid operands to &")
	mustFail(t, `let x = true < 1;`, "invalid operands to <")
	mustFail(t, `let x = 1 == "s";`, "invalid operands to ==")
	mustFail(t, `let x = 1 ?? 2;`, "nullish coalescing is not supported")
	mustFail(t, `let x = ~1.5;`, "invalid operand to unary ~")
	mustFail(t, `let x = -"s";`, "invalid operand to unary -")
	mustFail(t, `delete x;`, "delete operator is not supported")
	mustFail(t, `throw 1;`, "throw is not supported")
}

func TestUpdateExpr(t *testing.T) {
	mustCheck(t, `
let i = 0;
i++;
--i;
`)

	mustFail(t, `
const c = 1;
c++;
`, "assignment to constant variable")

	mustFail(t, `
let s = "x";
s++;
`, "invalid operand to ++")
}

func TestConditionalExpr(t *testing.T) {
	_, global, _ := mustCheck(t, `
let a = true ? 1 : 2.5;
`)

	if got := globalType(t, global, "a"); !types.Equals(got, types.Float) {
		t.Errorf("the result should be the common supertype float, got %s", got.Repr())
	}

	mustFail(t, `let a = true ? 1 : "s";`, "incompatible types in conditional expression")
}

// -----------------------------------------------------------------------------

func TestCallChecking(t *testing.T) {
	mustFail(t, `
function f(a: integer): integer { return a; }
f(1, 2);
`, "wrong number of arguments")

	mustFail(t, `
function f(a: integer): integer { return a; }
f("s");
`, "Type 'string' is not assignable to type 'integer'")

	mustFail(t, `
let n = 1;
n(2);
`, "cannot call a non-function value")
}

func TestForwardReferences(t *testing.T) {
	mustCheck(t, `
function even(n: integer): boolean {
	if (n == 0) { return true; }
	return odd(n - 1);
}

function odd(n: integer): boolean {
	if (n == 0) { return false; }
	return even(n - 1);
}
`)
}

func TestReturnTypeInference(t *testing.T) {
	_, global, _ := mustCheck(t, `
function f(n: integer) {
	return n + 1;
}

function g() { }
`)

	ft := globalType(t, global, "f").(*types.FuncType)
	if !types.Equals(ft.ReturnType, types.Integer) {
		t.Errorf("f's return type should infer to integer, got %s", ft.ReturnType.Repr())
	}

	gt := globalType(t, global, "g").(*types.FuncType)
	if !types.Equals(gt.ReturnType, types.Void) {
		t.Errorf("g's return type should infer to void, got %s", gt.ReturnType.Repr())
	}
}

func TestReturnAgainstInferred(t *testing.T) {
	// The first return fixes the type; later returns are checked against it.
	mustFail(t, `
function f(n: integer) {
	if (n > 0) { return 1; }
	return "s";
}
`, "Type 'string' is not assignable to type 'integer'")
}

func TestReturnOutsideFunction(t *testing.T) {
	mustFail(t, `return 1;`, "return is not allowed here")
}

func TestNestedFunctionRejected(t *testing.T) {
	mustFail(t, `
function f() {
	function g() { }
}
`, "nested function declarations are not supported")
}

func TestArrowFunction(t *testing.T) {
	_, global, _ := mustCheck(t, `
let add = (a: integer, b: integer) => a + b;
let n: integer = add(1, 2);
`)

	ft, ok := globalType(t, global, "add").(*types.FuncType)
	if !ok {
		t.Fatal("add should have a function type")
	}

	if len(ft.ParamTypes) != 2 || !types.Equals(ft.ReturnType, types.Integer) {
		t.Errorf("add should be (integer, integer) => integer, got %s", ft.Repr())
	}
}

func TestArrowOperandMismatch(t *testing.T) {
	mustFail(t, `let f = (a: float, b: string) => a + b;`, "invalid operands to +")
}

// -----------------------------------------------------------------------------

func TestNewArray(t *testing.T) {
	_, global, _ := mustCheck(t, `let a = new Array<integer>(3);`)

	at, ok := globalType(t, global, "a").(*types.ArrayType)
	if !ok || !types.Equals(at.ElemType, types.Integer) {
		t.Fatalf("a should be Array<integer>")
	}

	mustCheck(t, `let a = new Array<string>(3, "");`)
	mustFail(t, `let a = new Array<string>(3);`, "an initial value is required")
	mustFail(t, `let a = new Array<integer>("n");`, "Type 'string' is not assignable to type 'integer'")
	mustFail(t, `let a = new Array<string>(3, 1);`, "Type 'integer' is not assignable to type 'string'")
}

func TestArrayAccess(t *testing.T) {
	prog, _, info := mustCheck(t, `
let a = new Array<integer>(3);
let n: integer = a[0];
let l: integer = a.length;
a[1] = 5;
`)

	// Unboxed integer cells need no adapter.
	read := prog.Body[1].(*ast.VarDecl).Init
	if info.HasCoercionFlag(read) {
		t.Error("reading an unboxed integer cell should not be coerced")
	}

	mustFail(t, `
let a = new Array<integer>(3);
a["x"];
`, "Type 'string' is not assignable to type 'integer'")

	mustFail(t, `
let a = new Array<integer>(3);
a.length = 0;
`, "cannot change .length")

	mustFail(t, `
let n = 1;
let x = n[0];
`, "indexed access requires an array")
}

func TestTaggedSlotCoercion(t *testing.T) {
	prog, _, info := mustCheck(t, `
let a = new Array<integer | undefined>(3, undefined);
let s: integer | undefined = a[0];
a[1] = 0;
`)

	// Optional cells are tagged slots: reads and indexed writes cross an any
	// boundary.
	read := prog.Body[1].(*ast.VarDecl).Init
	if !info.HasCoercionFlag(read) {
		t.Error("reading a tagged slot should be coerced")
	}

	write := prog.Body[2].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	if !info.HasCoercionFlag(write.Lhs) {
		t.Error("writing a tagged slot should be coerced")
	}
}

func TestArrayInvarianceOnAssignment(t *testing.T) {
	mustFail(t, `
let a = new Array<integer>(3);
let b = new Array<float>(3);
a = b;
`, "Type 'Array<float>' is not assignable to type 'Array<integer>'")
}

// -----------------------------------------------------------------------------

func TestClassChecking(t *testing.T) {
	_, global, _ := mustCheck(t, `
class Point {
	x: integer
	y: integer

	constructor(x: integer, y: integer) {
		this.x = x;
		this.y = y;
	}

	norm(): integer {
		return this.x * this.x + this.y * this.y;
	}
}

let p = new Point(1, 2);
let n: integer = p.norm();
let x: integer = p.x;
`)

	it, ok := globalType(t, global, "p").(*types.InstanceType)
	if !ok || it.Name() != "Point" {
		t.Fatal("p should be a Point instance")
	}
}

func TestUninitializedProperty(t *testing.T) {
	mustFail(t, `
class C {
	p: integer

	constructor() { }
}
`, "uninitialized property: p")
}

func TestClassWithoutConstructor(t *testing.T) {
	mustCheck(t, `
class Empty { }
let e = new Empty();
`)

	mustFail(t, `
class C {
	p: integer
}
`, "uninitialized property: p")
}

func TestSuperDiscipline(t *testing.T) {
	mustCheck(t, `
class A {
	n: integer

	constructor(n: integer) {
		this.n = n;
	}
}

class B extends A {
	constructor() {
		super(1);
	}
}
`)

	mustFail(t, `
class A {
	constructor(n: integer) { }
}

class B extends A {
	constructor() { }
}
`, "super() is not called")

	mustFail(t, `
class A {
	constructor() { }
}

class B extends A {
	constructor() {
		if (true) {
			super();
		}
	}
}
`, "cannot call super() here")

	mustFail(t, `
class A {
	constructor() { }
}

class B extends A {
	constructor() {
		super();
		super();
	}
}
`, "cannot call super() here")
}

func TestImplicitConstructorNeedsZeroArgSuper(t *testing.T) {
	mustFail(t, `
class A {
	constructor(n: integer) { }
}

class B extends A { }
`, "super() is not called")

	mustCheck(t, `
class A {
	constructor() { }
}

class B extends A { }
`)
}

func TestInheritance(t *testing.T) {
	mustCheck(t, `
class Animal {
	constructor() { }

	speak(): string {
		return "...";
	}
}

class Dog extends Animal {
	constructor() {
		super();
	}
}

let a: Animal = new Dog();
let s: string = a.speak();
`)

	mustFail(t, `
class Animal {
	constructor() { }
}

class Dog extends Animal {
	constructor() { super(); }
}

let d: Dog = new Animal();
`, "Type 'Animal' is not assignable to type 'Dog'")
}

func TestBoxedPropertyCoercion(t *testing.T) {
	prog, _, info := mustCheck(t, `
class P {
	s: string
	n: integer

	constructor() {
		this.s = "x";
		this.n = 0;
	}
}

let p = new P();
let s: string = p.s;
let n: integer = p.n;
`)

	boxedRead := prog.Body[2].(*ast.VarDecl).Init
	if !info.HasCoercionFlag(boxedRead) {
		t.Error("reading a property at or beyond the unboxed cutoff should be coerced")
	}

	unboxedRead := prog.Body[3].(*ast.VarDecl).Init
	if info.HasCoercionFlag(unboxedRead) {
		t.Error("reading a property below the unboxed cutoff should not be coerced")
	}
}

func TestClassStructuralRejections(t *testing.T) {
	mustFail(t, `
function f() {
	class C { }
}
`, "classes must be declared at top level")

	mustFail(t, `
class C {
	p: integer
	p: string

	constructor() { this.p = 1; }
}
`, "duplicate member: p")

	mustFail(t, `
class C extends Missing {
	constructor() { super(); }
}
`, "unknown type name: Missing")

	mustFail(t, `
class C extends Uint8Array {
	constructor() { super(1, 0); }
}
`, "Uint8Array cannot be extended")
}

func TestClassForwardReference(t *testing.T) {
	mustCheck(t, `
function mk(): C {
	return new C();
}

class C {
	constructor() { }
}
`)
}

func TestClassNameIsNotAValue(t *testing.T) {
	mustFail(t, `
class C {
	constructor() { }
}

let x = C;
`, "`C` cannot be used as a value")
}

func TestInstanceof(t *testing.T) {
	_, global, _ := mustCheck(t, `
class C {
	constructor() { }
}

let o = new C();
let a = o instanceof C;
let b = o instanceof Array;
let c = o instanceof string;
`)

	if got := globalType(t, global, "a"); !types.Equals(got, types.Boolean) {
		t.Errorf("instanceof should yield boolean, got %s", got.Repr())
	}

	mustFail(t, `let a = 1 instanceof Array;`, "invalid operands to instanceof")
}

// -----------------------------------------------------------------------------

func TestByteArrayBuiltin(t *testing.T) {
	mustCheck(t, `
let u = new Uint8Array(4, 0);
let n: integer = u[0];
let l: integer = u.length;
u[1] = 255;
`)

	mustFail(t, `let u = new Uint8Array(4);`, "wrong number of arguments")
	mustFail(t, `
let u = new Uint8Array(4, 0);
u.length = 2;
`, "cannot change .length")
}

// -----------------------------------------------------------------------------

func TestUnknownNames(t *testing.T) {
	mustFail(t, `x = 1;`, "unknown name: x")
	mustFail(t, `let a = y + 1;`, "unknown name: y")
	mustFail(t, `let a: Missing = 1;`, "unknown type name: Missing")
}

func TestDuplicateDeclarations(t *testing.T) {
	mustFail(t, `
let a = 1;
let a = 2;
`, "multiple declarations of `a`")

	mustFail(t, `
function f() { }
function f() { }
`, "multiple declarations of `f`")
}

func TestUndefinedIsNullTyped(t *testing.T) {
	_, global, _ := mustCheck(t, `let a = undefined;`)

	if got := globalType(t, global, "a"); !types.Equals(got, types.Null) {
		t.Errorf("undefined should resolve to null, got %s", got.Repr())
	}
}

func TestPassIdempotence(t *testing.T) {
	prog, err := syntax.Parse(`
let a = 1;
function f(): integer { return a; }
`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	global := names.NewGlobalTable(nil)
	if _, err := TypeCheck(prog, global, nil); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Re-running declaration recording over the same global scope turns the
	// recordings into duplicate-declaration errors, leaving the scope
	// otherwise unchanged.
	_, err2 := TypeCheck(prog, global, nil)
	if err2 == nil {
		t.Fatal("a second run should report duplicate declarations")
	}

	if !strings.Contains(err2.Error(), "multiple declarations") {
		t.Errorf("expected duplicate-declaration errors, got: %v", err2)
	}

	if got := globalType(t, global, "a"); !types.Equals(got, types.Integer) {
		t.Error("the recorded binding should be unchanged")
	}
}

// -----------------------------------------------------------------------------

func TestImportResolution(t *testing.T) {
	lib := names.NewGlobalTable(nil)
	lib.Record("visible", &names.NameInfo{Type: types.Integer, IsExported: true})
	lib.Record("hidden", &names.NameInfo{Type: types.Integer})

	importer := func(name string) (*names.NameTable, error) {
		if name == "lib" {
			return lib, nil
		}

		return nil, &missingModuleError{name}
	}

	prog, err := syntax.Parse(`
import { visible } from "lib";
let n: integer = visible;
`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	global := names.NewGlobalTable(nil)
	if _, err := TypeCheck(prog, global, importer); err != nil {
		t.Fatalf("import should succeed: %v", err)
	}

	if got := globalType(t, global, "visible"); !types.Equals(got, types.Integer) {
		t.Error("the imported symbol should carry its type")
	}

	t.Run("NotExported", func(t *testing.T) {
		prog, _ := syntax.Parse(`import { hidden } from "lib";`)
		_, err := TypeCheck(prog, names.NewGlobalTable(nil), importer)
		if err == nil || !strings.Contains(err.Error(), "'hidden' is not exported") {
			t.Errorf("expected a not-exported error, got %v", err)
		}
	})

	t.Run("NotDeclared", func(t *testing.T) {
		prog, _ := syntax.Parse(`import { nothing } from "lib";`)
		_, err := TypeCheck(prog, names.NewGlobalTable(nil), importer)
		if err == nil || !strings.Contains(err.Error(), "'nothing' is not declared in 'lib'") {
			t.Errorf("expected a not-declared error, got %v", err)
		}
	})

	t.Run("MissingModule", func(t *testing.T) {
		prog, _ := syntax.Parse(`import { x } from "nowhere";`)
		_, err := TypeCheck(prog, names.NewGlobalTable(nil), importer)
		if err == nil || !strings.Contains(err.Error(), "unknown module: 'nowhere'") {
			t.Errorf("expected the importer's message, got %v", err)
		}
	})

	t.Run("StructuredLog", func(t *testing.T) {
		bad := report.NewErrorLog()
		bad.Push(&report.TextSpan{StartLine: 3, StartCol: 1}, "unknown name: z")

		failing := func(name string) (*names.NameTable, error) { return nil, bad }

		prog, _ := syntax.Parse(`import { x } from "broken";`)
		_, err := TypeCheck(prog, names.NewGlobalTable(nil), failing)
		if err == nil {
			t.Fatal("a structured importer failure should surface")
		}

		log := err.(*report.ErrorLog)
		if len(log.Diags) != 1 || log.Diags[0].File != "broken" {
			t.Errorf("the absorbed log should carry the source file as context, got %+v", log.Diags)
		}
	})
}

// missingModuleError is a plain error used by the test importer.
type missingModuleError struct {
	name string
}

func (e *missingModuleError) Error() string {
	return "unknown module: '" + e.name + "'"
}

func TestImportOnlyAtTopLevel(t *testing.T) {
	importer := func(name string) (*names.NameTable, error) {
		return names.NewGlobalTable(nil), nil
	}

	prog, err := syntax.Parse(`
function f() {
	import { a } from "lib";
}
`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	_, cerr := TypeCheck(prog, names.NewGlobalTable(nil), importer)
	if cerr == nil || !strings.Contains(cerr.Error(), "import is only allowed at top level") {
		t.Errorf("expected a top-level import error, got %v", cerr)
	}
}
