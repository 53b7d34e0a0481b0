package scope

import (
	"testing"

	"gradualtype/internal/types"
)

func TestFake_LookUpSymbolRecursive(t *testing.T) {
	root := NewFake(Permanent)
	root.Symbols["x"] = &types.Symbol{CurrentType: types.TypeID(5)}
	child := root.Child(Temporary)

	res, ok := child.LookUpSymbolRecursive("x")
	if !ok || res.Symbol.CurrentType != types.TypeID(5) {
		t.Fatalf("expected to find x in parent scope, got %+v ok=%v", res, ok)
	}
	if res.Scope != root {
		t.Fatalf("expected resolved scope to be the declaring scope")
	}

	if _, ok := child.LookUpSymbolRecursive("missing"); ok {
		t.Fatalf("expected missing name to fail lookup")
	}
}

func TestFake_GetBuiltInType_ClimbsParents(t *testing.T) {
	root := NewFake(Permanent)
	root.Builtins["int"] = types.TypeID(3)
	child := root.Child(Temporary)

	id, ok := child.GetBuiltInType("int")
	if !ok || id != types.TypeID(3) {
		t.Fatalf("expected builtin lookup to climb to parent, got %v ok=%v", id, ok)
	}
}

func TestFake_GetParent_NilAtRoot(t *testing.T) {
	root := NewFake(Permanent)
	if root.GetParent() != nil {
		t.Fatalf("expected root scope to have a nil parent")
	}
}
