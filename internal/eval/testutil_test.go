package eval

import (
	"gradualtype/internal/ast"
	"gradualtype/internal/config"
	"gradualtype/internal/diag"
	"gradualtype/internal/scope"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

// testEnv bundles everything a dispatch/assign/member test needs: a fresh
// arena, interner, and a handful of pre-registered builtin classes and
// scalar objects, held in scope.Fake's flat Builtins map (see below).
type testEnv struct {
	exprs    *ast.Exprs
	strings  *source.Interner
	interner *types.Interner
	fake     *scope.Fake
	bag      *diag.Bag
	ev       *Evaluator

	classes map[string]types.TypeID
	objects map[string]types.TypeID
}

func newTestEnv() *testEnv {
	exprs := ast.NewExprs(0)
	strings := source.NewInterner()
	interner := types.NewInterner()
	fake := scope.NewFake(scope.Permanent)
	bag := diag.NewBag(100)

	env := &testEnv{
		exprs:    exprs,
		strings:  strings,
		interner: interner,
		fake:     fake,
		bag:      bag,
		classes:  map[string]types.TypeID{},
		objects:  map[string]types.TypeID{},
	}

	object := interner.RegisterClass(types.ClassInfo{Name: "object", Flags: types.ClassBuiltin})
	env.classes["object"] = object
	for _, name := range []string{"int", "float", "complex", "bool", "str", "bytes", "list", "dict", "set", "tuple", "slice"} {
		cls := interner.RegisterClass(types.ClassInfo{
			Name:        name,
			Flags:       types.ClassBuiltin,
			BaseClasses: []types.BaseClassRef{{Class: object, IncludeInMro: true}},
		})
		env.classes[name] = cls
	}

	// scope.Fake keeps one flat Builtins map serving both GetBuiltInType and
	// GetBuiltInObject: container classes (needed unspecialized, by
	// specializeBuiltinClass) get the Class TypeID; scalars (only ever
	// consulted as instances, by dispatchNumber/String/Constant) get the
	// Object TypeID directly, per Fake's own doc comment.
	for _, name := range []string{"list", "dict", "set", "tuple"} {
		fake.Builtins[name] = env.classes[name]
	}
	for _, name := range []string{"int", "float", "complex", "bool", "str", "bytes", "slice"} {
		obj := interner.RegisterObject(types.ObjectInfo{ClassType: env.classes[name]})
		env.objects[name] = obj
		fake.Builtins[name] = obj
	}

	ev := New(exprs, strings, interner, fake, config.Default(), diag.BagReporter{Bag: bag})
	env.ev = ev
	return env
}

func (e *testEnv) name(s string) source.StringID { return e.strings.Intern(s) }
