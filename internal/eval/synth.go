package eval

import (
	"fmt"

	"gradualtype/internal/ast"
	"gradualtype/internal/diag"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

// SpecialForm names the generic/special-form constructors C6 recognizes
// by name at a Subscription or Call node (§4.5).
type SpecialForm string

const (
	FormCallable    SpecialForm = "Callable"
	FormOptional    SpecialForm = "Optional"
	FormUnion       SpecialForm = "Union"
	FormType        SpecialForm = "Type"
	FormGeneric     SpecialForm = "Generic"
	FormClassVar    SpecialForm = "ClassVar"
	FormTuple       SpecialForm = "Tuple"
	FormList        SpecialForm = "List"
	FormSet         SpecialForm = "Set"
	FormFrozenSet   SpecialForm = "FrozenSet"
	FormDeque       SpecialForm = "Deque"
	FormDict        SpecialForm = "Dict"
	FormDefaultDict SpecialForm = "DefaultDict"
	FormChainMap    SpecialForm = "ChainMap"
	FormProtocol    SpecialForm = "Protocol"
)

// IsSpecialForm reports whether name identifies one of the recognized
// generic special forms.
func IsSpecialForm(name string) (SpecialForm, bool) {
	switch SpecialForm(name) {
	case FormCallable, FormOptional, FormUnion, FormType, FormGeneric, FormClassVar,
		FormTuple, FormList, FormSet, FormFrozenSet, FormDeque, FormDict, FormDefaultDict,
		FormChainMap, FormProtocol:
		return SpecialForm(name), true
	default:
		return "", false
	}
}

// SynthesizeSubscription builds the specialized type for `Name[args...]`
// where Name identifies a special form (§4.5). argTypes are the already
// evaluated type-expression operands; ellipsisPositions marks which
// argument slots were a literal `...`.
func (ev *Evaluator) SynthesizeSubscription(form SpecialForm, node ast.ExprID, argTypes []types.TypeID, ellipsisPositions []bool) types.TypeID {
	span := ev.spanOf(node)
	switch form {
	case FormOptional:
		if len(argTypes) != 1 {
			return ev.arityError(span, "Optional", 1, len(argTypes))
		}
		return ev.CombineTypes([]types.TypeID{argTypes[0], ev.none()})
	case FormUnion:
		if len(argTypes) == 0 {
			return ev.arityError(span, "Union", 1, 0)
		}
		return ev.CombineTypes(argTypes)
	case FormType:
		if len(argTypes) != 1 {
			return ev.arityError(span, "Type", 1, len(argTypes))
		}
		return ev.specializeBuiltinClass("type", argTypes)
	case FormList, FormFrozenSet, FormDeque:
		if len(argTypes) > 1 {
			return ev.arityError(span, string(form), 1, len(argTypes))
		}
		return ev.specializeBuiltinClass(builtinNameFor(form), argTypes)
	case FormSet:
		if len(argTypes) != 1 {
			return ev.arityError(span, "Set", 1, len(argTypes))
		}
		return ev.specializeBuiltinClass("set", argTypes)
	case FormDict, FormDefaultDict:
		if len(argTypes) != 2 {
			return ev.arityError(span, string(form), 2, len(argTypes))
		}
		return ev.specializeBuiltinClass(builtinNameFor(form), argTypes)
	case FormChainMap:
		if len(argTypes) > 2 {
			return ev.arityError(span, "ChainMap", 2, len(argTypes))
		}
		return ev.specializeBuiltinClass("ChainMap", argTypes)
	case FormTuple:
		for i, isEllipsis := range ellipsisPositions {
			if isEllipsis && i != len(ellipsisPositions)-1 {
				ev.report(diag.SemaBadEllipsis, diag.SevError, span, "ellipsis is only allowed in the last position of Tuple[...]", nil)
				return ev.unknown()
			}
		}
		return ev.specializeBuiltinClass("tuple", argTypes)
	case FormClassVar:
		if len(argTypes) != 1 {
			return ev.arityError(span, "ClassVar", 1, len(argTypes))
		}
		return argTypes[0]
	case FormGeneric:
		if len(argTypes) == 0 {
			ev.report(diag.SemaWrongArity, diag.SevError, span, "Generic requires at least one type argument", nil)
			return ev.unknown()
		}
		seen := map[types.TypeID]bool{}
		for _, a := range argTypes {
			if ev.Interner.Kind(a) != types.KindTypeVar {
				ev.report(diag.SemaWrongArity, diag.SevError, span, "Generic arguments must be TypeVars", nil)
				return ev.unknown()
			}
			if seen[a] {
				ev.report(diag.SemaDuplicateTypeVar, diag.SevError, span, "Generic arguments must be unique TypeVars", nil)
				return ev.unknown()
			}
			seen[a] = true
		}
		return ev.specializeBuiltinClass("Generic", argTypes)
	case FormProtocol:
		return ev.specializeBuiltinClass("Protocol", argTypes)
	case FormCallable:
		// Callable[[P1, P2], R] is shaped by the dispatcher directly into
		// SynthesizeCallable since its argument list isn't a flat type list.
		return ev.unknown()
	default:
		return ev.unknown()
	}
}

func builtinNameFor(form SpecialForm) string {
	switch form {
	case FormList:
		return "list"
	case FormFrozenSet:
		return "frozenset"
	case FormDeque:
		return "deque"
	case FormDict:
		return "dict"
	case FormDefaultDict:
		return "defaultdict"
	default:
		return string(form)
	}
}

func (ev *Evaluator) arityError(span source.Span, name string, want, got int) types.TypeID {
	ev.report(diag.SemaWrongArity, diag.SevError, span,
		fmt.Sprintf("%s expects %d type argument(s), got %d", name, want, got), nil)
	return ev.unknown()
}

// specializeBuiltinClass looks up a builtin generic class by name and
// clones it with the supplied type args.
func (ev *Evaluator) specializeBuiltinClass(name string, args []types.TypeID) types.TypeID {
	base := ev.builtin(name)
	if ev.Interner.Kind(base) != types.KindClass {
		return ev.unknown()
	}
	specialized, ok := ev.Interner.CloneForSpecialization(base, args)
	if !ok {
		return ev.unknown()
	}
	return specialized
}

// SynthesizeCallable builds Function{params, returnType} for
// `Callable[[P1, P2, ...], R]` or `Callable[..., R]` (ellipsis preserved
// via Any(isEllipsis)).
func (ev *Evaluator) SynthesizeCallable(node ast.ExprID, paramTypes []types.TypeID, isEllipsisParams bool, ret types.TypeID) types.TypeID {
	if isEllipsisParams {
		return ev.Interner.RegisterFunction(types.FunctionInfo{
			Parameters: []types.Param{{
				Category: types.ParamVarArgList,
				Type:     ev.Interner.Builtins().AnyEllipsis,
			}},
			DeclaredReturnType: ret,
		})
	}
	params := make([]types.Param, len(paramTypes))
	for i, t := range paramTypes {
		params[i] = types.Param{Category: types.ParamSimple, Type: t}
	}
	return ev.Interner.RegisterFunction(types.FunctionInfo{Parameters: params, DeclaredReturnType: ret})
}

// SynthesizeTypeVar implements `TypeVar(name, *constraints, bound=, covariant=, contravariant=)`.
func (ev *Evaluator) SynthesizeTypeVar(node ast.ExprID, name string, constraints []types.TypeID, bound types.TypeID, covariant, contravariant bool) types.TypeID {
	span := ev.spanOf(node)
	if bound != types.NoTypeID && len(constraints) > 0 {
		ev.report(diag.SemaTypeVarBoundAndCons, diag.SevError, span, "TypeVar cannot be both bounded and constrained", nil)
		return ev.unknown()
	}
	if covariant && contravariant {
		ev.report(diag.SemaTypeVarVariance, diag.SevError, span, "TypeVar cannot be both covariant and contravariant", nil)
		return ev.unknown()
	}
	variance := types.Invariant
	if covariant {
		variance = types.Covariant
	} else if contravariant {
		variance = types.Contravariant
	}
	return ev.Interner.RegisterTypeVar(types.TypeVarInfo{
		Name:        name,
		Bound:       bound,
		Constraints: constraints,
		Variance:    variance,
	})
}

// NamedTupleField is one (name, type) pair of a typed-mode NamedTuple call.
type NamedTupleField struct {
	Name string
	Type types.TypeID
}

// SynthesizeNamedTuple implements `NamedTuple(name, fields)` (§4.5):
// generates __new__/__init__/keys/items/__len__ and, in dynamic-fields
// fallback mode (empty/duplicate names coerced to "_<index>"),
// __getattribute__.
func (ev *Evaluator) SynthesizeNamedTuple(node ast.ExprID, name string, fields []NamedTupleField) types.TypeID {
	span := ev.spanOf(node)
	seen := map[string]bool{}
	dynamicFallback := false
	resolved := make([]NamedTupleField, len(fields))
	for i, f := range fields {
		fname := f.Name
		if fname == "" {
			ev.report(diag.SemaEmptyFieldName, diag.SevError, span, "NamedTuple field name cannot be empty", nil)
			fname = fmt.Sprintf("_%d", i)
			dynamicFallback = true
		}
		if seen[fname] {
			ev.report(diag.SemaDuplicateFieldName, diag.SevError, span,
				fmt.Sprintf("Duplicate NamedTuple field name '%s'", fname), nil)
			fname = fmt.Sprintf("_%d", i)
			dynamicFallback = true
		}
		seen[fname] = true
		resolved[i] = NamedTupleField{Name: fname, Type: f.Type}
	}

	cls := ev.Interner.RegisterClass(types.ClassInfo{Name: name, Flags: types.ClassNamedTuple})

	newParams := []types.Param{{Category: types.ParamSimple, Name: "cls"}}
	initParams := []types.Param{{Category: types.ParamSimple, Name: "self"}}
	instanceFields := map[string]*types.Symbol{}
	for _, f := range resolved {
		newParams = append(newParams, types.Param{Category: types.ParamSimple, Name: f.Name, Type: f.Type})
		initParams = append(initParams, types.Param{Category: types.ParamSimple, Name: f.Name, Type: f.Type})
		instanceFields[f.Name] = &types.Symbol{CurrentType: f.Type, Declarations: []types.Declaration{{Category: types.DeclVariable, DeclaredType: f.Type}}}
	}

	objType := ev.Interner.RegisterObject(types.ObjectInfo{ClassType: cls})
	classFields := map[string]*types.Symbol{
		"__new__": sym(ev.Interner.RegisterFunction(types.FunctionInfo{
			Flags: types.FunctionStaticMethod, Parameters: newParams, DeclaredReturnType: objType,
		})),
		"__init__": sym(ev.Interner.RegisterFunction(types.FunctionInfo{
			Parameters: initParams, DeclaredReturnType: ev.none(),
		})),
		"keys": sym(ev.Interner.RegisterFunction(types.FunctionInfo{
			Parameters: []types.Param{{Category: types.ParamSimple, Name: "self"}},
			DeclaredReturnType: ev.specializeBuiltinClass("list", []types.TypeID{ev.builtinObject("str", nil)}),
		})),
		"items": sym(ev.Interner.RegisterFunction(types.FunctionInfo{
			Parameters:         []types.Param{{Category: types.ParamSimple, Name: "self"}},
			DeclaredReturnType: ev.unknown(),
		})),
		"__len__": sym(ev.Interner.RegisterFunction(types.FunctionInfo{
			Parameters:         []types.Param{{Category: types.ParamSimple, Name: "self"}},
			DeclaredReturnType: ev.builtinObject("int", nil),
		})),
	}
	if dynamicFallback {
		classFields["__getattribute__"] = sym(ev.Interner.RegisterFunction(types.FunctionInfo{
			Parameters: []types.Param{
				{Category: types.ParamSimple, Name: "self"},
				{Category: types.ParamSimple, Name: "name", Type: ev.builtinObject("str", nil)},
			},
			DeclaredReturnType: ev.unknown(),
		}))
	}
	ev.Interner.SetClassFields(cls, classFields, instanceFields)
	return cls
}

func sym(t types.TypeID) *types.Symbol {
	return &types.Symbol{CurrentType: t, Declarations: []types.Declaration{{Category: types.DeclFunction, DeclaredType: t}}}
}

// DataclassField is one top-level assignment contributed to a dataclass
// body (§4.5).
type DataclassField struct {
	Name       string
	Type       types.TypeID
	HasDefault bool
}

// SynthesizeDataClassMethods implements the dataclass synthesis rules:
// walk fields, enforce defaulted-field ordering and (on language version
// >= 3.7) the leading-underscore ban, then install __new__/__init__.
func (ev *Evaluator) SynthesizeDataClassMethods(node ast.ExprID, cls types.TypeID, fields []DataclassField) bool {
	span := ev.spanOf(node)
	ok := true
	sawDefault := false
	for _, f := range fields {
		if sawDefault && !f.HasDefault {
			ev.report(diag.SemaDataclassFieldOrder, diag.SevError, span,
				"Data fields without default value cannot appear after data fields with default values", nil)
			ok = false
		}
		if f.HasDefault {
			sawDefault = true
		}
		if ev.Config.PythonVersion >= 307 && len(f.Name) > 0 && f.Name[0] == '_' {
			ev.report(diag.SemaDataclassLeadingUnderscore, diag.SevError, span,
				fmt.Sprintf("dataclass field name '%s' cannot begin with an underscore", f.Name), nil)
			ok = false
		}
	}
	if !ok {
		return false
	}

	newParams := []types.Param{{Category: types.ParamSimple, Name: "cls"}}
	initParams := []types.Param{{Category: types.ParamSimple, Name: "self"}}
	instanceFields := map[string]*types.Symbol{}
	for _, f := range fields {
		p := types.Param{Category: types.ParamSimple, Name: f.Name, Type: f.Type, HasDefault: f.HasDefault}
		newParams = append(newParams, p)
		initParams = append(initParams, p)
		instanceFields[f.Name] = &types.Symbol{CurrentType: f.Type, Declarations: []types.Declaration{{Category: types.DeclVariable, DeclaredType: f.Type}}}
	}

	objType := ev.Interner.RegisterObject(types.ObjectInfo{ClassType: cls})
	info, ok2 := ev.Interner.Class(cls)
	if !ok2 {
		return false
	}
	classFields := info.ClassFields
	if classFields == nil {
		classFields = map[string]*types.Symbol{}
	}
	classFields["__new__"] = sym(ev.Interner.RegisterFunction(types.FunctionInfo{
		Flags: types.FunctionStaticMethod, Parameters: newParams, DeclaredReturnType: objType,
	}))
	classFields["__init__"] = sym(ev.Interner.RegisterFunction(types.FunctionInfo{
		Parameters: initParams, DeclaredReturnType: ev.none(),
	}))
	existingInstance := info.InstanceFields
	for k, v := range instanceFields {
		if existingInstance == nil {
			existingInstance = map[string]*types.Symbol{}
		}
		existingInstance[k] = v
	}
	ev.Interner.SetClassFields(cls, classFields, existingInstance)
	return true
}
