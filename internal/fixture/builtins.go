package fixture

import (
	"gradualtype/internal/scope"
	"gradualtype/internal/types"
)

// builtinScope is the Scope a loaded fixture runs against: a flat,
// single-level Permanent scope holding a handful of pre-registered
// builtin classes and the symbol table a *.gtcexpr document declares.
// Unlike scope.Fake, it distinguishes a builtin *class* (needed by
// internal/eval's generic specialization path) from a builtin *object*
// instance (needed everywhere a literal's type is asked for), since a
// real name-resolution scope would do the same.
type builtinScope struct {
	interner *types.Interner
	classes  map[string]types.TypeID
	objects  map[string]types.TypeID
	symbols  map[string]*types.Symbol
}

// builtinClassNames mirrors the scalar and container types §4 of the
// evaluator spec names by dunder: every one of these gets a plain
// ClassBuiltin-flagged ClassInfo rooted at "object".
var builtinClassNames = []string{
	"object", "int", "float", "complex", "bool", "str", "bytes",
	"NoneType", "list", "dict", "set", "frozenset", "tuple", "slice", "type",
}

func newBuiltinScope(interner *types.Interner) *builtinScope {
	bs := &builtinScope{
		interner: interner,
		classes:  make(map[string]types.TypeID, len(builtinClassNames)),
		objects:  make(map[string]types.TypeID, len(builtinClassNames)),
		symbols:  make(map[string]*types.Symbol),
	}

	object := interner.RegisterClass(types.ClassInfo{Name: "object", Flags: types.ClassBuiltin})
	bs.classes["object"] = object

	for _, name := range builtinClassNames {
		if name == "object" {
			continue
		}
		cls := interner.RegisterClass(types.ClassInfo{
			Name:        name,
			Flags:       types.ClassBuiltin,
			BaseClasses: []types.BaseClassRef{{Class: object, IncludeInMro: true}},
		})
		bs.classes[name] = cls
	}

	// Scalar builtins resolve to a plain, unspecialized instance of their
	// class whenever no type arguments are given; containers have no
	// pre-registered instance, so GetBuiltInObject wraps the container class
	// (specialized when typeArgs are given) in a fresh Object on demand.
	for _, name := range []string{"int", "float", "complex", "bool", "str", "bytes", "slice"} {
		bs.objects[name] = interner.RegisterObject(types.ObjectInfo{ClassType: bs.classes[name]})
	}
	bs.objects["NoneType"] = interner.Builtins().None

	return bs
}

func (bs *builtinScope) LookUpSymbolRecursive(name string) (scope.LookupResult, bool) {
	sym, ok := bs.symbols[name]
	if !ok {
		return scope.LookupResult{}, false
	}
	return scope.LookupResult{Symbol: sym, Scope: bs}, true
}

func (bs *builtinScope) GetParent() scope.Scope { return nil }

func (bs *builtinScope) GetKind() scope.Kind { return scope.Permanent }

func (bs *builtinScope) GetTypeConstraints() []scope.Constraint { return nil }

func (bs *builtinScope) GetBuiltInType(name string) (types.TypeID, bool) {
	id, ok := bs.classes[name]
	return id, ok
}

// GetBuiltInObject returns a plain instance for a no-arg scalar lookup, or
// specializes the named container class with typeArgs and wraps the result
// (e.g. "list" + [int] -> Object(list[int])).
func (bs *builtinScope) GetBuiltInObject(name string, typeArgs []types.TypeID) (types.TypeID, bool) {
	if len(typeArgs) == 0 {
		if id, ok := bs.objects[name]; ok {
			return id, true
		}
	}
	cls, ok := bs.classes[name]
	if !ok {
		return types.NoTypeID, false
	}
	if len(typeArgs) > 0 {
		specialized, ok := bs.interner.CloneForSpecialization(cls, typeArgs)
		if !ok {
			return types.NoTypeID, false
		}
		cls = specialized
	}
	return bs.interner.RegisterObject(types.ObjectInfo{ClassType: cls}), true
}

var _ scope.Scope = (*builtinScope)(nil)
