// Package names implements the symbol-table family used by the checker:
// nested global, function, and block scopes recording per-identifier name
// info, the global class table, and the function return-type slot.
package names

import (
	"github.com/ymzk/bluescript/types"
)

// NameInfo is the per-identifier record held in a name table.
type NameInfo struct {
	// The bound static type of the name.
	Type types.Type

	// Whether the name was declared with const: assignment is forbidden.
	IsConst bool

	// Whether the name binds a top-level function: assignment is forbidden.
	IsFunction bool

	// Whether the name binds a class: it is not usable as an expression.
	IsTypeName bool

	// Whether the name may be exposed to importing files.
	IsExported bool
}

// -----------------------------------------------------------------------------

// Enumeration of name table kinds.
type tableKind int

const (
	globalTable = tableKind(iota)
	functionTable
	blockTable
)

// NameTable records the identifiers visible in one scope.  Tables form a
// chain through their parents; lookup searches the chain to the root.
type NameTable struct {
	// The kind of scope this table records.
	kind tableKind

	// The enclosing scope, or nil for the outermost global table.
	parent *NameTable

	// The names recorded in this scope.
	names map[string]*NameInfo

	// The declared or inferred return type of the current function.  Only
	// meaningful on function tables; nil until inference concludes.
	returnType types.Type

	// The class table: every declared class by name.  Only allocated on
	// global tables.
	classes map[string]*types.InstanceType
}

// NewGlobalTable creates a new global name table.  The parent may be nil for
// the outermost global scope, or an older global table whose bindings remain
// visible (as in an interactive session).
func NewGlobalTable(parent *NameTable) *NameTable {
	return &NameTable{
		kind:    globalTable,
		parent:  parent,
		names:   make(map[string]*NameInfo),
		classes: make(map[string]*types.InstanceType),
	}
}

// NewFunctionTable creates a new function scope table under parent.
func NewFunctionTable(parent *NameTable) *NameTable {
	return &NameTable{
		kind:   functionTable,
		parent: parent,
		names:  make(map[string]*NameInfo),
	}
}

// NewBlockTable creates a new block scope table under parent.
func NewBlockTable(parent *NameTable) *NameTable {
	return &NameTable{
		kind:   blockTable,
		parent: parent,
		names:  make(map[string]*NameInfo),
	}
}

// -----------------------------------------------------------------------------

// Record binds name to info in this scope.  A name may be recorded once per
// scope: re-recording fails.
func (t *NameTable) Record(name string, info *NameInfo) bool {
	if _, ok := t.names[name]; ok {
		return false
	}

	t.names[name] = info
	return true
}

// Lookup searches this table and its parents for name.
func (t *NameTable) Lookup(name string) (*NameInfo, bool) {
	for tab := t; tab != nil; tab = tab.parent {
		if info, ok := tab.names[name]; ok {
			return info, true
		}
	}

	return nil, false
}

// LookupInThis queries only the current table.
func (t *NameTable) LookupInThis(name string) (*NameInfo, bool) {
	info, ok := t.names[name]
	return info, ok
}

// IsGlobal returns whether this table records the global scope.
func (t *NameTable) IsGlobal() bool {
	return t.kind == globalTable
}

// HasParent returns whether this table has an enclosing scope.
func (t *NameTable) HasParent() bool {
	return t.parent != nil
}

// Parent returns the enclosing scope table, or nil.
func (t *NameTable) Parent() *NameTable {
	return t.parent
}

// -----------------------------------------------------------------------------

// EnclosingFunction returns the nearest function table at or above this one,
// or nil if the scope is not inside a function.
func (t *NameTable) EnclosingFunction() *NameTable {
	for tab := t; tab != nil; tab = tab.parent {
		switch tab.kind {
		case functionTable:
			return tab
		case globalTable:
			return nil
		}
	}

	return nil
}

// ReturnType returns the function's declared or inferred return type.  The
// boolean is false while the type is still to be inferred.  Must only be
// called on function tables.
func (t *NameTable) ReturnType() (types.Type, bool) {
	return t.returnType, t.returnType != nil
}

// SetReturnType fixes the function's return type.
func (t *NameTable) SetReturnType(rt types.Type) {
	t.returnType = rt
}

// -----------------------------------------------------------------------------

// AddClass records a declared class in the class table of this scope chain's
// global table.  It fails if a class of that name is already recorded there.
func (t *NameTable) AddClass(name string, it *types.InstanceType) bool {
	g := t.enclosingGlobal()
	if _, ok := g.classes[name]; ok {
		return false
	}

	g.classes[name] = it
	return true
}

// FindClass looks up a declared class by name, searching the class tables of
// every global table in the chain.
func (t *NameTable) FindClass(name string) (*types.InstanceType, bool) {
	for tab := t.enclosingGlobal(); tab != nil; tab = tab.parent {
		if tab.classes != nil {
			if it, ok := tab.classes[name]; ok {
				return it, true
			}
		}
	}

	return nil, false
}

// enclosingGlobal returns the nearest global table at or above this one.
func (t *NameTable) enclosingGlobal() *NameTable {
	for tab := t; tab != nil; tab = tab.parent {
		if tab.kind == globalTable {
			return tab
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// ImportInfo copies a single symbol from an externally-produced table into
// this global scope under the given name.  The stored info is a copy: later
// mutation of the source table does not affect this scope.
func (t *NameTable) ImportInfo(name string, info *NameInfo) bool {
	copied := *info
	return t.Record(name, &copied)
}
