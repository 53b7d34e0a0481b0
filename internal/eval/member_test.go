package eval

import (
	"testing"

	"gradualtype/internal/diag"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

func TestGetMemberResolvesInstanceField(t *testing.T) {
	env := newTestEnv()
	fieldSym := &types.Symbol{Declarations: []types.Declaration{{Category: types.DeclVariable, DeclaredType: env.objects["int"]}}}
	point := env.interner.RegisterClass(types.ClassInfo{
		Name:           "Point",
		BaseClasses:    []types.BaseClassRef{{Class: env.classes["object"], IncludeInMro: true}},
		InstanceFields: map[string]*types.Symbol{"x": fieldSym},
	})
	instance := env.interner.RegisterObject(types.ObjectInfo{ClassType: point})

	got := env.ev.GetMember(instance, "x", UsageGet, source.Span{}, 0)
	if got != env.objects["int"] {
		t.Fatalf("expected Point().x to resolve to int, got %v", got)
	}
}

func TestGetMemberFallsBackThroughBases(t *testing.T) {
	env := newTestEnv()
	fieldSym := &types.Symbol{Declarations: []types.Declaration{{Category: types.DeclVariable, DeclaredType: env.objects["str"]}}}
	base := env.interner.RegisterClass(types.ClassInfo{
		Name:           "Base",
		BaseClasses:    []types.BaseClassRef{{Class: env.classes["object"], IncludeInMro: true}},
		InstanceFields: map[string]*types.Symbol{"label": fieldSym},
	})
	derived := env.interner.RegisterClass(types.ClassInfo{
		Name:        "Derived",
		BaseClasses: []types.BaseClassRef{{Class: base, IncludeInMro: true}},
	})
	instance := env.interner.RegisterObject(types.ObjectInfo{ClassType: derived})

	got := env.ev.GetMember(instance, "label", UsageGet, source.Span{}, 0)
	if got != env.objects["str"] {
		t.Fatalf("expected Derived().label to resolve through Base, got %v", got)
	}
}

func TestGetMemberUnknownNameReportsNoSuchMember(t *testing.T) {
	env := newTestEnv()
	got := env.ev.GetMember(env.objects["int"], "frobnicate", UsageGet, source.Span{}, 0)
	if got != env.ev.unknown() {
		t.Fatalf("expected Unknown for an undefined attribute, got %v", got)
	}
	if env.bag.Len() != 1 || env.bag.Items()[0].Code != diag.SemaNoSuchMember {
		t.Fatalf("expected a single SemaNoSuchMember diagnostic, got %+v", env.bag.Items())
	}
}

func TestGetMemberOnUnknownBaseIsUnknownWithNoDiagnostic(t *testing.T) {
	env := newTestEnv()
	got := env.ev.GetMember(env.ev.unknown(), "anything", UsageGet, source.Span{}, 0)
	if got != env.ev.unknown() {
		t.Fatalf("member access on Unknown must stay Unknown")
	}
	if env.bag.Len() != 0 {
		t.Fatalf("member access on Unknown must not raise a diagnostic, got %d", env.bag.Len())
	}
}
