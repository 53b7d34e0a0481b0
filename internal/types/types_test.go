package types

import "testing"

func TestNewInterner_Singletons(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if in.Kind(b.Unknown) != KindUnknown {
		t.Fatalf("expected Unknown kind")
	}
	if in.Kind(b.None) != KindNone {
		t.Fatalf("expected None kind")
	}
	if in.Kind(b.Never) != KindNever {
		t.Fatalf("expected Never kind")
	}
	if in.Kind(b.Any) != KindAny || in.IsEllipsis(b.Any) {
		t.Fatalf("expected plain Any")
	}
	if in.Kind(b.AnyEllipsis) != KindAny || !in.IsEllipsis(b.AnyEllipsis) {
		t.Fatalf("expected ellipsis Any")
	}
}

func TestLookup_InvalidID(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(TypeID(9999)); ok {
		t.Fatalf("expected lookup of out-of-range id to fail")
	}
	if _, ok := in.Lookup(NoTypeID); ok {
		t.Fatalf("expected lookup of NoTypeID to fail")
	}
}

func TestRegisterClass_FreshIdentityPerCall(t *testing.T) {
	in := NewInterner()
	a := in.RegisterClass(ClassInfo{Name: "Foo"})
	b := in.RegisterClass(ClassInfo{Name: "Foo"})
	if a == b {
		t.Fatalf("expected distinct TypeIDs for separate RegisterClass calls")
	}
	if !in.IsSameGenericClass(a, a) {
		t.Fatalf("expected a class to be the same generic class as itself")
	}
	if in.IsSameGenericClass(a, b) {
		t.Fatalf("expected distinct RegisterClass calls to have distinct SourceIDs")
	}
}

func TestCloneForSpecialization(t *testing.T) {
	in := NewInterner()
	intType := in.RegisterClass(ClassInfo{Name: "int"})
	list := in.RegisterClass(ClassInfo{Name: "list", Flags: ClassGeneric})

	specialized, ok := in.CloneForSpecialization(list, []TypeID{intType})
	if !ok {
		t.Fatalf("expected specialization to succeed")
	}
	if !in.IsSameGenericClass(list, specialized) {
		t.Fatalf("expected specialization to share SourceID with the generic class")
	}
	info, ok := in.Class(specialized)
	if !ok || len(info.TypeArgs) != 1 || info.TypeArgs[0] != intType {
		t.Fatalf("expected specialization to carry the supplied TypeArgs, got %+v", info)
	}
}

func TestRegisterFunction_ReturnType(t *testing.T) {
	in := NewInterner()
	none := in.Builtins().None
	unknown := in.Builtins().Unknown

	withDeclared := in.RegisterFunction(FunctionInfo{DeclaredReturnType: none, InferredReturnType: unknown})
	fi, ok := in.Function(withDeclared)
	if !ok || fi.ReturnType() != none {
		t.Fatalf("expected declared return type to win")
	}

	withInferredOnly := in.RegisterFunction(FunctionInfo{InferredReturnType: unknown})
	fi2, ok := in.Function(withInferredOnly)
	if !ok || fi2.ReturnType() != unknown {
		t.Fatalf("expected inferred return type as fallback")
	}
}

func TestRegisterUnion_PreservesMemberOrder(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	u := in.RegisterUnion([]TypeID{b.None, b.Unknown})

	members, ok := in.UnionMembers(u)
	if !ok || len(members) != 2 || members[0] != b.None || members[1] != b.Unknown {
		t.Fatalf("unexpected union members: %+v", members)
	}
}

func TestObject_WithTruthy(t *testing.T) {
	in := NewInterner()
	cls := in.RegisterClass(ClassInfo{Name: "bool"})
	obj := in.RegisterObject(ObjectInfo{ClassType: cls, Truthy: TruthyUnknown})

	narrowed := in.WithTruthy(obj, TruthyTrue)
	info, ok := in.Object(narrowed)
	if !ok || info.Truthy != TruthyTrue || info.ClassType != cls {
		t.Fatalf("unexpected narrowed object: %+v", info)
	}
}

func TestSymbol_IsVariable(t *testing.T) {
	var empty Symbol
	if !empty.IsVariable() {
		t.Fatalf("expected zero-value symbol to count as a variable")
	}

	mixed := Symbol{Declarations: []Declaration{
		{Category: DeclVariable},
		{Category: DeclFunction},
	}}
	if mixed.IsVariable() {
		t.Fatalf("expected mixed declarations to not be a plain variable")
	}
}

func TestSymbol_DeclaredType(t *testing.T) {
	sym := Symbol{Declarations: []Declaration{
		{Category: DeclVariable, DeclaredType: NoTypeID},
		{Category: DeclVariable, DeclaredType: TypeID(7)},
	}}
	got, ok := sym.DeclaredType()
	if !ok || got != TypeID(7) {
		t.Fatalf("expected first non-empty declared type, got %v ok=%v", got, ok)
	}
}
