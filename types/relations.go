package types

import "errors"

// Equals returns whether the two types are exactly equal.
func Equals(a, b Type) bool {
	return a.equals(b)
}

// IsSubtype returns whether s is a subtype of t.  The relation is reflexive;
// primitives only subtype themselves; instance types subtype along the
// declared superclass chain; function types are contravariant in their
// parameters and covariant in their return type; array types are invariant;
// T and null are subtypes of optional T.
func IsSubtype(s, t Type) bool {
	if Equals(s, t) {
		return true
	}

	switch v := t.(type) {
	case *OptionalType:
		return Equals(s, Null) || IsSubtype(s, v.ElemType)
	case *ObjectType:
		_, ok := s.(*InstanceType)
		return ok
	case *InstanceType:
		sit, ok := s.(*InstanceType)
		if !ok {
			return false
		}

		for {
			sup, ok := sit.SuperType().(*InstanceType)
			if !ok {
				return false
			}

			if Equals(sup, t) {
				return true
			}

			sit = sup
		}
	case *FuncType:
		sft, ok := s.(*FuncType)
		if !ok || len(sft.ParamTypes) != len(v.ParamTypes) {
			return false
		}

		for i, paramType := range v.ParamTypes {
			if !IsSubtype(paramType, sft.ParamTypes[i]) {
				return false
			}
		}

		return IsSubtype(sft.ReturnType, v.ReturnType)
	}

	return false
}

// IsConsistent returns whether s and t are compatible under gradual typing:
// true whenever any is involved on either side, or the types are equal.  It
// decides whether an implicit runtime coercion can paper over a static
// mismatch instead of raising an error.
func IsConsistent(s, t Type) bool {
	return Equals(s, Any) || Equals(t, Any) || Equals(s, t)
}

// CommonSuperType returns the smallest type that is a supertype of both s and
// t.  any is the top of the lattice and is always a valid answer; nil is
// returned only for primitive disagreements the language does not permit.
func CommonSuperType(s, t Type) Type {
	if Equals(s, Any) || Equals(t, Any) {
		return Any
	}

	if IsSubtype(s, t) {
		return t
	}

	if IsSubtype(t, s) {
		return s
	}

	if IsNumeric(s) && IsNumeric(t) {
		return Float
	}

	// null pairs with any optional-eligible type.
	if Equals(s, Null) {
		if opt, err := OptionalOf(t); err == nil {
			return opt
		}

		return nil
	}

	if Equals(t, Null) {
		if opt, err := OptionalOf(s); err == nil {
			return opt
		}

		return nil
	}

	// Two instance types meet along their superclass chains, with the base
	// object type as the final common ancestor.
	if sit, ok := s.(*InstanceType); ok {
		if _, ok := t.(*InstanceType); ok {
			for sup := Type(sit); ; {
				supInst, ok := sup.(*InstanceType)
				if !ok {
					return BaseObject
				}

				if IsSubtype(t, supInst) {
					return supInst
				}

				sup = supInst.SuperType()
			}
		}
	}

	return nil
}

// IsNumeric returns whether t is integer or float.
func IsNumeric(t Type) bool {
	return Equals(t, Integer) || Equals(t, Float)
}

// IsPrimitive returns whether t is one of the primitive scalar types.
func IsPrimitive(t Type) bool {
	_, ok := t.(PrimitiveType)
	return ok
}

// ActualElementType returns the storage-level type seen when reading an array
// element of declared element type t: any for optional and object-like
// element types, whose cells are tagged slots, else t itself.
func ActualElementType(t Type) Type {
	switch t.(type) {
	case *OptionalType, *ObjectType, *InstanceType, *ArrayType, *FuncType:
		return Any
	}

	return t
}

// -----------------------------------------------------------------------------

// ErrInvalidOptional is reported by OptionalOf for element types that may not
// be wrapped in an optional.
var ErrInvalidOptional = errors.New("invalid optional type")

// OptionalOf wraps elem in an optional type.  Wrapping any, null, void, or
// another optional is rejected.
func OptionalOf(elem Type) (*OptionalType, error) {
	switch {
	case Equals(elem, Any), Equals(elem, Null), Equals(elem, Void):
		return nil, ErrInvalidOptional
	}

	if _, ok := elem.(*OptionalType); ok {
		return nil, ErrInvalidOptional
	}

	return &OptionalType{ElemType: elem}, nil
}
