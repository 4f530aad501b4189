package checker

import (
	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/types"
)

// TypeTable is the AST annotation side-table: it associates checker-produced
// annotations with AST node identities so the tree itself stays immutable.
// It is the sole channel between the checker and a downstream code generator.
// Entries are written once, during pass 2.
type TypeTable struct {
	// The inferred static type of each expression node.
	staticTypes map[ast.ASTNode]types.Type

	// The nodes whose expression boundary requires a runtime adapter.
	coercions map[ast.ASTNode]bool

	// The name table attached to each scope-introducing node.
	nameTables map[ast.ASTNode]*names.NameTable
}

// NewTypeTable creates a new, empty side-table.
func NewTypeTable() *TypeTable {
	return &TypeTable{
		staticTypes: make(map[ast.ASTNode]types.Type),
		coercions:   make(map[ast.ASTNode]bool),
		nameTables:  make(map[ast.ASTNode]*names.NameTable),
	}
}

// AddStaticType records the static type of an expression node.
func (tt *TypeTable) AddStaticType(node ast.ASTNode, t types.Type) {
	tt.staticTypes[node] = t
}

// AddCoercionFlag marks that the node's expression boundary requires a
// runtime adapter.  A coercion flag is always accompanied by a static type.
func (tt *TypeTable) AddCoercionFlag(node ast.ASTNode) {
	tt.coercions[node] = true
}

// AddNameTable attaches the scope that a code generator must use when
// compiling the given scope-introducing node.
func (tt *TypeTable) AddNameTable(node ast.ASTNode, table *names.NameTable) {
	tt.nameTables[node] = table
}

// GetStaticType returns the recorded static type of a node.
func (tt *TypeTable) GetStaticType(node ast.ASTNode) (types.Type, bool) {
	t, ok := tt.staticTypes[node]
	return t, ok
}

// HasCoercionFlag returns whether the node carries a coercion flag.
func (tt *TypeTable) HasCoercionFlag(node ast.ASTNode) bool {
	return tt.coercions[node]
}

// GetNameTable returns the name table attached to a scope-introducing node.
func (tt *TypeTable) GetNameTable(node ast.ASTNode) (*names.NameTable, bool) {
	table, ok := tt.nameTables[node]
	return table, ok
}
