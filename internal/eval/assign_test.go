package eval

import (
	"testing"

	"gradualtype/internal/types"
)

func TestCanAssignTypeIsReflexive(t *testing.T) {
	env := newTestEnv()
	for name, obj := range env.objects {
		if !env.ev.CanAssignType(obj, obj, nil) {
			t.Fatalf("%s should be assignable to itself", name)
		}
	}
}

func TestCanAssignTypeUnknownAbsorbsBothSides(t *testing.T) {
	env := newTestEnv()
	unknown := env.ev.unknown()
	if !env.ev.CanAssignType(env.objects["int"], unknown, nil) {
		t.Fatalf("Unknown source should assign to anything")
	}
	if !env.ev.CanAssignType(unknown, env.objects["int"], nil) {
		t.Fatalf("anything should assign to Unknown destination")
	}
}

func TestCanAssignTypeNeverAssignsToAnythingButNotReverse(t *testing.T) {
	env := newTestEnv()
	never := env.interner.Builtins().Never
	if !env.ev.CanAssignType(env.objects["int"], never, nil) {
		t.Fatalf("Never should assign to any destination")
	}
	if env.ev.CanAssignType(never, env.objects["int"], nil) {
		t.Fatalf("only Never should assign to Never")
	}
}

func TestCanAssignTypeUnrelatedClassesAreNotAssignable(t *testing.T) {
	env := newTestEnv()
	if env.ev.CanAssignType(env.objects["int"], env.objects["str"], nil) {
		t.Fatalf("unrelated builtin classes must not be mutually assignable")
	}
}

func TestCanAssignTypeDistributesOverSourceUnion(t *testing.T) {
	env := newTestEnv()
	union := env.interner.RegisterUnion([]types.TypeID{env.objects["int"], env.objects["str"]})

	if env.ev.CanAssignType(env.objects["int"], union, nil) {
		t.Fatalf("int ∪ str must not assign to plain int")
	}
	broader := env.interner.RegisterUnion([]types.TypeID{env.objects["int"], env.objects["str"], env.objects["float"]})
	if !env.ev.CanAssignType(broader, union, nil) {
		t.Fatalf("every member of the source union must find a home in a superset union")
	}
}
