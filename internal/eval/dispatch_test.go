package eval

import (
	"testing"

	"gradualtype/internal/ast"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

func TestDispatchNumberPicksIntFloatComplex(t *testing.T) {
	cases := []struct {
		isFloat, isComplex bool
		want               string
	}{
		{false, false, "int"},
		{true, false, "float"},
		{false, true, "complex"},
	}
	for _, c := range cases {
		env := newTestEnv()
		node := env.exprs.NewNumber(source.Span{}, 0, env.name("1"), c.isFloat, c.isComplex)
		got := env.ev.GetType(node, UsageGet, 0)
		if got != env.objects[c.want] {
			t.Fatalf("isFloat=%v isComplex=%v: expected %s, got %v", c.isFloat, c.isComplex, c.want, got)
		}
	}
}

func TestDispatchStringPicksStrOrBytes(t *testing.T) {
	env := newTestEnv()
	str := env.exprs.NewString(source.Span{}, 0, env.name("'hi'"), ast.NoExprID, false)
	if got := env.ev.GetType(str, UsageGet, 0); got != env.objects["str"] {
		t.Fatalf("expected str, got %v", got)
	}

	env2 := newTestEnv()
	b := env2.exprs.NewString(source.Span{}, 0, env2.name("b'hi'"), ast.NoExprID, true)
	if got := env2.ev.GetType(b, UsageGet, 0); got != env2.objects["bytes"] {
		t.Fatalf("expected bytes, got %v", got)
	}
}

func TestDispatchConstantNoneTrueFalse(t *testing.T) {
	env := newTestEnv()
	none := env.exprs.NewConstant(source.Span{}, 0, ast.KeywordNone)
	if got := env.ev.GetType(none, UsageGet, 0); got != env.ev.none() {
		t.Fatalf("expected None, got %v", got)
	}

	truthy := env.exprs.NewConstant(source.Span{}, 0, ast.KeywordTrue)
	got := env.ev.GetType(truthy, UsageGet, 0)
	if env.ev.Interner.Kind(got) != types.KindObject {
		t.Fatalf("expected bool to dispatch as an object, got kind %v", env.ev.Interner.Kind(got))
	}

	falsy := env.exprs.NewConstant(source.Span{}, 0, ast.KeywordFalse)
	got = env.ev.GetType(falsy, UsageGet, 0)
	if env.ev.Interner.Kind(got) != types.KindObject {
		t.Fatalf("expected False to dispatch as a bool object, got kind %v", env.ev.Interner.Kind(got))
	}
}

func TestDispatchArithmeticPromotesIntAndFloat(t *testing.T) {
	env := newTestEnv()
	left := env.exprs.NewNumber(source.Span{}, 0, env.name("1"), false, false)
	right := env.exprs.NewNumber(source.Span{}, 0, env.name("2.0"), true, false)
	node := env.exprs.NewBinary(source.Span{}, 0, ast.OpAdd, left, right)

	got := env.ev.GetType(node, UsageGet, 0)
	if got != env.objects["float"] {
		t.Fatalf("int + float should promote to float, got %v", got)
	}
}

func TestDispatchBooleanOpAndCombinesFalsyLeftWithRight(t *testing.T) {
	env := newTestEnv()
	left := env.exprs.NewConstant(source.Span{}, 0, ast.KeywordFalse)
	right := env.exprs.NewNumber(source.Span{}, 0, env.name("1"), false, false)
	node := env.exprs.NewBinary(source.Span{}, 0, ast.OpAnd, left, right)

	got := env.ev.GetType(node, UsageGet, 0)
	if env.bag.Len() != 0 {
		t.Fatalf("boolean op dispatch should not itself raise diagnostics, got %d", env.bag.Len())
	}
	// `False and 1`: removing truthiness leaves the falsy bool in place, and
	// the result combines it with the right operand's int.
	members, ok := env.ev.Interner.UnionMembers(got)
	if !ok || len(members) != 2 || members[1] != env.objects["int"] {
		t.Fatalf("expected a union of the falsy bool and int, got kind %v", env.ev.Interner.Kind(got))
	}
	if obj, ok := env.ev.Interner.Object(members[0]); !ok || obj.ClassType != env.classes["bool"] {
		t.Fatalf("expected the falsy bool as the first union member, got %v", members[0])
	}
}

func TestDispatchUnaryNotAlwaysReturnsBool(t *testing.T) {
	env := newTestEnv()
	operand := env.exprs.NewNumber(source.Span{}, 0, env.name("0"), false, false)
	node := env.exprs.NewUnary(source.Span{}, 0, ast.OpNot, operand)

	got := env.ev.GetType(node, UsageGet, 0)
	if got != env.objects["bool"] {
		t.Fatalf("not x must always be bool, got %v", got)
	}
}
