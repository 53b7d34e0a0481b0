package eval

import (
	"testing"

	"gradualtype/internal/ast"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

func (e *testEnv) nameRef(sym *types.Symbol, symbolName string) ast.ExprID {
	e.fake.Symbols[symbolName] = sym
	return e.exprs.NewName(source.Span{}, 0, e.name(symbolName))
}

func TestDispatchCallRecognizesTypeVar(t *testing.T) {
	env := newTestEnv()
	callee := env.exprs.NewName(source.Span{}, 0, env.name("TypeVar"))
	nameArg := env.exprs.NewString(source.Span{}, 0, env.name("T"), ast.NoExprID, false)
	boundArg := env.nameRef(&types.Symbol{Declarations: []types.Declaration{{Category: types.DeclClass, DeclaredType: env.classes["int"]}}}, "IntClass")

	call := env.exprs.NewCall(source.Span{}, 0, callee, []ast.CallArg{
		{Category: ast.CategorySimple, Value: nameArg},
		{Category: ast.CategorySimple, Name: env.name("bound"), Value: boundArg},
	})

	got := env.ev.GetType(call, UsageGet, 0)
	if env.ev.Interner.Kind(got) != types.KindTypeVar {
		t.Fatalf("expected TypeVar(...) to synthesize a TypeVar, got kind %v", env.ev.Interner.Kind(got))
	}
	tv, ok := env.interner.TypeVar(got)
	if !ok {
		t.Fatalf("expected a registered TypeVarInfo")
	}
	if tv.Name != "T" {
		t.Fatalf("expected TypeVar name 'T', got %q", tv.Name)
	}
	if tv.Bound != env.classes["int"] {
		t.Fatalf("expected bound=int to thread through, got %v", tv.Bound)
	}
}

func TestDispatchCallRecognizesNamedTupleUntypedMode(t *testing.T) {
	env := newTestEnv()
	callee := env.exprs.NewName(source.Span{}, 0, env.name("NamedTuple"))
	nameArg := env.exprs.NewString(source.Span{}, 0, env.name("Point"), ast.NoExprID, false)
	fieldsArg := env.exprs.NewString(source.Span{}, 0, env.name("x y"), ast.NoExprID, false)

	call := env.exprs.NewCall(source.Span{}, 0, callee, []ast.CallArg{
		{Category: ast.CategorySimple, Value: nameArg},
		{Category: ast.CategorySimple, Value: fieldsArg},
	})

	got := env.ev.GetType(call, UsageGet, 0)
	if env.ev.Interner.Kind(got) != types.KindClass {
		t.Fatalf("expected NamedTuple(...) to synthesize a Class, got kind %v", env.ev.Interner.Kind(got))
	}
	info, ok := env.interner.Class(got)
	if !ok {
		t.Fatalf("expected a registered ClassInfo")
	}
	if info.Name != "Point" {
		t.Fatalf("expected class name 'Point', got %q", info.Name)
	}
	for _, field := range []string{"x", "y"} {
		if _, ok := info.InstanceFields[field]; !ok {
			t.Fatalf("expected instance field %q", field)
		}
	}
	for _, method := range []string{"__new__", "__init__", "keys", "items", "__len__"} {
		if _, ok := info.ClassFields[method]; !ok {
			t.Fatalf("expected synthesized method %q", method)
		}
	}
}

func TestDispatchCallRecognizesDataclass(t *testing.T) {
	env := newTestEnv()
	target := env.interner.RegisterClass(types.ClassInfo{
		Name: "Point",
		InstanceFields: map[string]*types.Symbol{
			"x": {Declarations: []types.Declaration{{Category: types.DeclVariable, DeclaredType: env.objects["int"]}}},
		},
	})

	callee := env.exprs.NewName(source.Span{}, 0, env.name("dataclass"))
	clsArg := env.nameRef(&types.Symbol{Declarations: []types.Declaration{{Category: types.DeclClass, DeclaredType: target}}}, "Point")
	call := env.exprs.NewCall(source.Span{}, 0, callee, []ast.CallArg{
		{Category: ast.CategorySimple, Value: clsArg},
	})

	got := env.ev.GetType(call, UsageGet, 0)
	if got != target {
		t.Fatalf("dataclass(C) should return C unchanged, got %v want %v", got, target)
	}
	info, ok := env.interner.Class(got)
	if !ok {
		t.Fatalf("expected a registered ClassInfo")
	}
	for _, method := range []string{"__new__", "__init__"} {
		if _, ok := info.ClassFields[method]; !ok {
			t.Fatalf("expected dataclass to install %q", method)
		}
	}
}

func TestDispatchCallOrdinaryCalleeIsUnaffectedByDecoratorNames(t *testing.T) {
	env := newTestEnv()
	// A plain call to a name that isn't one of the recognized synthesis
	// forms should fall through to ordinary ValidateCall dispatch and
	// report not-callable against a plain int.
	intSym := &types.Symbol{Declarations: []types.Declaration{{Category: types.DeclVariable, DeclaredType: env.objects["int"]}}}
	callee := env.nameRef(intSym, "x")
	call := env.exprs.NewCall(source.Span{}, 0, callee, nil)

	got := env.ev.GetType(call, UsageGet, 0)
	if got != env.ev.unknown() {
		t.Fatalf("calling a non-callable int should yield Unknown, got %v", got)
	}
	if env.bag.Len() != 1 {
		t.Fatalf("expected exactly one not-callable diagnostic, got %d", env.bag.Len())
	}
}

func TestGetTypeFromIterableFallsBackWhenNoAwaitDunder(t *testing.T) {
	env := newTestEnv()
	iterCls := env.interner.RegisterClass(types.ClassInfo{
		Name: "OldCoroutine",
		ClassFields: map[string]*types.Symbol{
			"__iter__": sym(env.interner.RegisterFunction(types.FunctionInfo{
				Parameters:         []types.Param{{Category: types.ParamSimple, Name: "self"}},
				DeclaredReturnType: env.objects["str"],
			})),
		},
	})
	obj := env.interner.RegisterObject(types.ObjectInfo{ClassType: iterCls})

	got := env.ev.getTypeFromAwaitable(obj, source.Span{})
	if got != env.objects["str"] {
		t.Fatalf("await should fall back through __iter__ when __await__ is absent, got %v", got)
	}
	if env.bag.Len() != 0 {
		t.Fatalf("expected no diagnostic once __iter__ satisfies the await chain, got %d", env.bag.Len())
	}
}

func TestGetTypeFromAwaitableReportsWhenNeitherDunderExists(t *testing.T) {
	env := newTestEnv()
	plainCls := env.interner.RegisterClass(types.ClassInfo{Name: "NotAwaitable"})
	obj := env.interner.RegisterObject(types.ObjectInfo{ClassType: plainCls})

	got := env.ev.getTypeFromAwaitable(obj, source.Span{})
	if got != env.ev.unknown() {
		t.Fatalf("expected Unknown for an unawaitable object, got %v", got)
	}
	if env.bag.Len() != 1 {
		t.Fatalf("expected exactly one not-awaitable diagnostic, got %d", env.bag.Len())
	}
}
