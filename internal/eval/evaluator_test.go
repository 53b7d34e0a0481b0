package eval

import (
	"testing"

	"gradualtype/internal/diag"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

func TestGetTypeUndefinedNameReportsDiagnostic(t *testing.T) {
	env := newTestEnv()
	node := env.exprs.NewName(source.Span{}, 0, env.name("mystery"))

	got := env.ev.GetType(node, UsageGet, 0)
	if got != env.ev.unknown() {
		t.Fatalf("expected Unknown for an undefined name, got %v", got)
	}
	if env.bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", env.bag.Len())
	}
	if env.bag.Items()[0].Code != diag.SemaUndefinedName {
		t.Fatalf("expected SemaUndefinedName, got %v", env.bag.Items()[0].Code)
	}
}

func TestGetTypeNameResolvesDeclaredType(t *testing.T) {
	env := newTestEnv()
	env.fake.Symbols["x"] = &types.Symbol{
		Declarations: []types.Declaration{{Category: types.DeclVariable, DeclaredType: env.objects["int"]}},
		CurrentType:  env.objects["int"],
	}
	node := env.exprs.NewName(source.Span{}, 0, env.name("x"))

	got := env.ev.GetType(node, UsageGet, 0)
	if got != env.objects["int"] {
		t.Fatalf("expected int, got %v", got)
	}
	if env.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", env.bag.Len())
	}
}

func TestGetTypeIsIdempotentUnderCache(t *testing.T) {
	env := newTestEnv()
	node := env.exprs.NewNumber(source.Span{}, 0, env.name("1"), false, false)

	first := env.ev.GetType(node, UsageGet, 0)
	second := env.ev.GetType(node, UsageGet, 0)
	if first != second {
		t.Fatalf("getType must be stable across calls under a fixed cache: %v != %v", first, second)
	}
	// combineTypes([getType(n)]) == getType(n), the §8 singleton invariant.
	combined := env.ev.CombineTypes([]types.TypeID{first})
	if combined != first {
		t.Fatalf("combineTypes of a singleton must return that singleton unchanged")
	}
}

func TestDoForSubtypesOnNonUnionIsIdentity(t *testing.T) {
	env := newTestEnv()
	got := env.ev.DoForSubtypes(env.objects["int"], func(t types.TypeID) types.TypeID { return t })
	if got != env.objects["int"] {
		t.Fatalf("doForSubtypes(t, identity) must return t for a non-union input")
	}
}
