package types

import "testing"

func TestPrimitiveSubtyping(t *testing.T) {
	prims := []Type{Integer, Float, Boolean, String, Void, Null, Any}

	for _, p := range prims {
		if !IsSubtype(p, p) {
			t.Errorf("%s should be a subtype of itself", p.Repr())
		}
	}

	if IsSubtype(Integer, Float) {
		t.Error("integer should not be a subtype of float")
	}

	if IsSubtype(Integer, Any) {
		t.Error("primitives should only subtype themselves")
	}
}

func TestInstanceSubtyping(t *testing.T) {
	animal := NewInstanceType("Animal", nil)
	animal.Seal()
	dog := NewInstanceType("Dog", animal)
	dog.Seal()
	cat := NewInstanceType("Cat", animal)
	cat.Seal()

	if !IsSubtype(dog, animal) {
		t.Error("Dog should be a subtype of Animal")
	}

	if IsSubtype(animal, dog) {
		t.Error("Animal should not be a subtype of Dog")
	}

	if IsSubtype(dog, cat) {
		t.Error("Dog should not be a subtype of Cat")
	}

	if !IsSubtype(dog, BaseObject) {
		t.Error("every instance type should subtype the base object type")
	}
}

func TestFunctionSubtyping(t *testing.T) {
	animal := NewInstanceType("Animal", nil)
	animal.Seal()
	dog := NewInstanceType("Dog", animal)
	dog.Seal()

	// Contravariant parameters, covariant return.
	f := &FuncType{ParamTypes: []Type{animal}, ReturnType: dog}
	g := &FuncType{ParamTypes: []Type{dog}, ReturnType: animal}

	if !IsSubtype(f, g) {
		t.Error("(Animal) => Dog should be a subtype of (Dog) => Animal")
	}

	if IsSubtype(g, f) {
		t.Error("(Dog) => Animal should not be a subtype of (Animal) => Dog")
	}

	h := &FuncType{ParamTypes: []Type{animal, animal}, ReturnType: dog}
	if IsSubtype(h, g) {
		t.Error("parameter counts must match")
	}
}

func TestArrayInvariance(t *testing.T) {
	animal := NewInstanceType("Animal", nil)
	animal.Seal()
	dog := NewInstanceType("Dog", animal)
	dog.Seal()

	if IsSubtype(&ArrayType{ElemType: dog}, &ArrayType{ElemType: animal}) {
		t.Error("array types must be invariant")
	}

	if !IsSubtype(&ArrayType{ElemType: dog}, &ArrayType{ElemType: dog}) {
		t.Error("equal array types should be subtypes")
	}
}

func TestOptionalSubtyping(t *testing.T) {
	opt, err := OptionalOf(Integer)
	if err != nil {
		t.Fatalf("OptionalOf(integer) failed: %v", err)
	}

	if !IsSubtype(Integer, opt) {
		t.Error("T should be a subtype of optional T")
	}

	if !IsSubtype(Null, opt) {
		t.Error("null should be a subtype of optional T")
	}

	if IsSubtype(opt, Integer) {
		t.Error("optional T should not be a subtype of T")
	}
}

func TestOptionalConstructorRejections(t *testing.T) {
	if _, err := OptionalOf(Any); err == nil {
		t.Error("optional any should be rejected")
	}

	if _, err := OptionalOf(Null); err == nil {
		t.Error("optional null should be rejected")
	}

	opt, _ := OptionalOf(Integer)
	if _, err := OptionalOf(opt); err == nil {
		t.Error("optional optional T should be rejected")
	}
}

func TestConsistency(t *testing.T) {
	if !IsConsistent(Any, Integer) || !IsConsistent(Integer, Any) {
		t.Error("any should be consistent with everything")
	}

	if !IsConsistent(Integer, Integer) {
		t.Error("equal types should be consistent")
	}

	if IsConsistent(Integer, Float) {
		t.Error("integer and float should not be consistent")
	}
}

func TestCommonSuperType(t *testing.T) {
	animal := NewInstanceType("Animal", nil)
	animal.Seal()
	dog := NewInstanceType("Dog", animal)
	dog.Seal()
	cat := NewInstanceType("Cat", animal)
	cat.Seal()

	if cs := CommonSuperType(dog, cat); cs == nil || !Equals(cs, animal) {
		t.Errorf("common supertype of Dog and Cat should be Animal")
	}

	if cs := CommonSuperType(Integer, Float); cs == nil || !Equals(cs, Float) {
		t.Error("common supertype of integer and float should be float")
	}

	if cs := CommonSuperType(Any, Integer); cs == nil || !Equals(cs, Any) {
		t.Error("any should be a common supertype with anything")
	}

	opt, _ := OptionalOf(Integer)
	if cs := CommonSuperType(Null, Integer); cs == nil || !Equals(cs, opt) {
		t.Error("common supertype of null and integer should be integer|null")
	}

	if cs := CommonSuperType(Integer, String); cs != nil {
		t.Errorf("integer and string should have no common supertype, got %s", cs.Repr())
	}
}

func TestActualElementType(t *testing.T) {
	if !Equals(ActualElementType(Integer), Integer) {
		t.Error("integer cells should be unboxed")
	}

	opt, _ := OptionalOf(Integer)
	if !Equals(ActualElementType(opt), Any) {
		t.Error("optional cells should be tagged slots")
	}

	inst := NewInstanceType("C", nil)
	inst.Seal()
	if !Equals(ActualElementType(inst), Any) {
		t.Error("object cells should be tagged slots")
	}
}

func TestInstanceSealing(t *testing.T) {
	it := NewInstanceType("P", nil)
	it.AddProperty("s", String)
	it.AddProperty("n", Integer)
	it.AddProperty("b", Boolean)
	it.Seal()

	if got := it.UnboxedCount(); got != 2 {
		t.Errorf("unboxed cutoff should be 2, got %d", got)
	}

	// The unboxed properties form the leading prefix.
	if _, idx, _ := it.FindProperty("n"); idx >= it.UnboxedCount() {
		t.Error("n should sit below the unboxed cutoff")
	}

	if _, idx, _ := it.FindProperty("s"); !it.IsBoxedProperty(idx) {
		t.Error("s should be a boxed slot")
	}

	if it.AddProperty("n", Integer) {
		t.Error("duplicate property names should be rejected")
	}
}

func TestInheritedPropertyIndices(t *testing.T) {
	base := NewInstanceType("Base", nil)
	base.AddProperty("a", Integer)
	base.Seal()

	derived := NewInstanceType("Derived", base)
	derived.AddProperty("b", Integer)
	derived.Seal()

	if got := derived.PropertyCount(); got != 2 {
		t.Errorf("Derived should have 2 property slots, got %d", got)
	}

	if _, idx, ok := derived.FindProperty("b"); !ok || idx != 1 {
		t.Errorf("b should sit at slot 1, got %d", idx)
	}

	if got := derived.UnboxedCount(); got != 2 {
		t.Errorf("all-unboxed chain should have cutoff 2, got %d", got)
	}
}
