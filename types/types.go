package types

import (
	"sort"
	"strings"
)

// Type represents a BlueScript static type.
type Type interface {
	// Returns whether this type is equal to the other type.  This does not
	// account for subtyping: it should only be called within methods of type
	// instances.
	equals(other Type) bool

	// Returns the representative string for this type.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive scalar type.  This must be one of the
// enumerated primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.  `null` and `undefined` are
// unified into the single Null type.  Any denotes a dynamically-typed value.
const (
	Integer = PrimitiveType(iota)
	Float
	Boolean
	String
	Void
	Null
	Any
)

func (pt PrimitiveType) equals(other Type) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimitiveType) Repr() string {
	switch pt {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Void:
		return "void"
	case Null:
		return "null"
	default:
		return "any"
	}
}

// -----------------------------------------------------------------------------

// ObjectType represents the base object type: structurally the root of all
// class instance types.
type ObjectType struct{}

// BaseObject is the shared base object type instance.
var BaseObject = &ObjectType{}

func (ot *ObjectType) equals(other Type) bool {
	_, ok := other.(*ObjectType)
	return ok
}

func (ot *ObjectType) Repr() string {
	return "object"
}

// -----------------------------------------------------------------------------

// Property is a declared property of an instance type.
type Property struct {
	// The property's name.
	Name string

	// The property's declared type.
	Type Type
}

// Method is a declared method of an instance type.
type Method struct {
	// The method's name.
	Name string

	// The method's signature.
	Type *FuncType
}

// InstanceType represents a named class type.  An instance type is mutable
// while its declaration is being visited and is frozen by Seal at the end of
// that visit.
type InstanceType struct {
	// The class name.
	name string

	// The superclass: another instance type or the base object type.
	superType Type

	// The declared properties of the class in declaration order until Seal is
	// called, after which the unboxed properties form a leading prefix.
	properties []Property

	// A mapping between property names and their index within properties.
	propIndices map[string]int

	// The declared methods of the class in declaration order.
	methods []Method

	// A mapping between method names and their index within methods.
	methodIndices map[string]int

	// Whether the class may not be extended.
	leaf bool

	// The number of leading own properties stored in an unboxed
	// representation.  Valid only after Seal.
	unboxed int

	// Whether Seal has been called.
	sealed bool
}

// NewInstanceType creates a new, unsealed instance type with the given name
// and superclass.  If super is nil, the base object type is used.
func NewInstanceType(name string, super Type) *InstanceType {
	if super == nil {
		super = BaseObject
	}

	return &InstanceType{
		name:          name,
		superType:     super,
		propIndices:   make(map[string]int),
		methodIndices: make(map[string]int),
	}
}

func (it *InstanceType) equals(other Type) bool {
	if oit, ok := other.(*InstanceType); ok {
		return it == oit
	}

	return false
}

func (it *InstanceType) Repr() string {
	return it.name
}

// Name returns the class name.
func (it *InstanceType) Name() string {
	return it.name
}

// SuperType returns the superclass type.
func (it *InstanceType) SuperType() Type {
	return it.superType
}

// SetSuperType replaces the superclass type.  Only valid before Seal.
func (it *InstanceType) SetSuperType(super Type) {
	it.superType = super
}

// Leaf returns whether the class may not be extended.
func (it *InstanceType) Leaf() bool {
	return it.leaf
}

// SetLeaf marks the class as not extensible.
func (it *InstanceType) SetLeaf() {
	it.leaf = true
}

// AddProperty declares a new property.  It fails if a property or method of
// the same name already exists anywhere along the superclass chain.
func (it *InstanceType) AddProperty(name string, typ Type) bool {
	if it.memberExists(name) {
		return false
	}

	it.propIndices[name] = len(it.properties)
	it.properties = append(it.properties, Property{Name: name, Type: typ})
	return true
}

// AddMethod declares a new method.  It fails if a property of the same name
// exists along the superclass chain or a method of the same name exists on
// this class.  Overriding a superclass method is permitted.
func (it *InstanceType) AddMethod(name string, typ *FuncType) bool {
	if _, ok := it.methodIndices[name]; ok {
		return false
	}

	if _, _, ok := it.FindProperty(name); ok {
		return false
	}

	it.methodIndices[name] = len(it.methods)
	it.methods = append(it.methods, Method{Name: name, Type: typ})
	return true
}

// memberExists reports whether a property or method named name exists on this
// class or along its superclass chain.
func (it *InstanceType) memberExists(name string) bool {
	if _, _, ok := it.FindProperty(name); ok {
		return true
	}

	_, _, ok := it.FindMethod(name)
	return ok
}

// FindProperty looks up a property by name along the superclass chain.  The
// returned index is the property's slot index within a full instance: own
// properties are offset by the total property count of the superclasses.
func (it *InstanceType) FindProperty(name string) (Type, int, bool) {
	if idx, ok := it.propIndices[name]; ok {
		return it.properties[idx].Type, it.superPropertyCount() + idx, true
	}

	if sup, ok := it.superType.(*InstanceType); ok {
		return sup.FindProperty(name)
	}

	return nil, 0, false
}

// FindMethod looks up a method by name along the superclass chain.
func (it *InstanceType) FindMethod(name string) (*FuncType, int, bool) {
	if idx, ok := it.methodIndices[name]; ok {
		return it.methods[idx].Type, idx, true
	}

	if sup, ok := it.superType.(*InstanceType); ok {
		return sup.FindMethod(name)
	}

	return nil, 0, false
}

// Properties returns the class's own properties in slot order.
func (it *InstanceType) Properties() []Property {
	return it.properties
}

// PropertyCount returns the total number of property slots of a full
// instance, superclass slots included.
func (it *InstanceType) PropertyCount() int {
	return it.superPropertyCount() + len(it.properties)
}

func (it *InstanceType) superPropertyCount() int {
	if sup, ok := it.superType.(*InstanceType); ok {
		return sup.PropertyCount()
	}

	return 0
}

// Constructor returns the class's constructor signature, searching the
// superclass chain.  The boolean is false if no constructor is declared
// anywhere along the chain, in which case an implicit zero-argument
// constructor applies.
func (it *InstanceType) Constructor() (*FuncType, bool) {
	ft, _, ok := it.FindMethod("constructor")
	return ft, ok
}

// Seal freezes the instance type: own properties are sorted so that those of
// unboxed primitive type form a leading prefix and the unboxed-properties
// cutoff is computed.  The relative order within each partition is preserved.
func (it *InstanceType) Seal() {
	if it.sealed {
		return
	}

	sort.SliceStable(it.properties, func(i, j int) bool {
		return isUnboxed(it.properties[i].Type) && !isUnboxed(it.properties[j].Type)
	})

	it.unboxed = 0
	for i, prop := range it.properties {
		it.propIndices[prop.Name] = i

		if isUnboxed(prop.Type) {
			it.unboxed++
		}
	}

	it.sealed = true
}

// UnboxedCount returns the unboxed-properties cutoff: property slots at
// indices below it are stored in an unboxed representation.  A superclass
// with any boxed slot caps the cutoff, since own slots always follow the
// superclass's slots.
func (it *InstanceType) UnboxedCount() int {
	if sup, ok := it.superType.(*InstanceType); ok {
		if sup.UnboxedCount() < sup.PropertyCount() {
			return sup.UnboxedCount()
		}

		return sup.PropertyCount() + it.unboxed
	}

	return it.unboxed
}

// IsBoxedProperty reports whether the property slot at the given index is a
// tagged (boxed) slot whose reads require a runtime adapter.
func (it *InstanceType) IsBoxedProperty(index int) bool {
	return index >= it.UnboxedCount()
}

// isUnboxed reports whether a property of the given declared type is stored
// in an unboxed representation.
func isUnboxed(t Type) bool {
	return Equals(t, Integer) || Equals(t, Float) || Equals(t, Boolean)
}

// -----------------------------------------------------------------------------

// FuncType represents a function type.
type FuncType struct {
	// The parameter types of the function in order.
	ParamTypes []Type

	// The return type of the function.
	ReturnType Type
}

func (ft *FuncType) equals(other Type) bool {
	if oft, ok := other.(*FuncType); ok {
		if len(ft.ParamTypes) != len(oft.ParamTypes) {
			return false
		}

		for i, paramType := range ft.ParamTypes {
			if !Equals(paramType, oft.ParamTypes[i]) {
				return false
			}
		}

		return Equals(ft.ReturnType, oft.ReturnType)
	}

	return false
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')
	for i, paramType := range ft.ParamTypes {
		if i != 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(paramType.Repr())
	}
	sb.WriteString(") => ")
	sb.WriteString(ft.ReturnType.Repr())

	return sb.String()
}

// -----------------------------------------------------------------------------

// ArrayLengthName is the name of the distinguished read-only length member
// carried by array types.
const ArrayLengthName = "length"

// ArrayType represents an array type.  Array types are invariant in their
// element type.
type ArrayType struct {
	// The element type of the array.
	ElemType Type
}

func (at *ArrayType) equals(other Type) bool {
	if oat, ok := other.(*ArrayType); ok {
		return Equals(at.ElemType, oat.ElemType)
	}

	return false
}

func (at *ArrayType) Repr() string {
	return "Array<" + at.ElemType.Repr() + ">"
}

// -----------------------------------------------------------------------------

// OptionalType wraps a non-null, non-any, non-optional element type.  Its
// value set is the element's values plus null.
type OptionalType struct {
	// The wrapped element type.
	ElemType Type
}

func (ot *OptionalType) equals(other Type) bool {
	if oot, ok := other.(*OptionalType); ok {
		return Equals(ot.ElemType, oot.ElemType)
	}

	return false
}

func (ot *OptionalType) Repr() string {
	return ot.ElemType.Repr() + "|null"
}
