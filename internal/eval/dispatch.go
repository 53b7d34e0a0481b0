package eval

import (
	"fmt"
	"sort"
	"strings"

	"gradualtype/internal/ast"
	"gradualtype/internal/diag"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

// dispatch is the C5 expression dispatcher: one case per ast.ExprKind,
// implementing §4.4's per-node-kind policy. GetType wraps this with the
// cache and narrowing passes; dispatch itself never touches the cache.
func (ev *Evaluator) dispatch(node ast.ExprID, usage Usage, flags MemberFlags) types.TypeID {
	expr := ev.Exprs.Get(node)
	if expr == nil {
		return ev.unknown()
	}

	switch expr.Kind {
	case ast.KindName:
		return ev.dispatchName(node, usage)
	case ast.KindMember:
		return ev.dispatchMember(node, usage, flags)
	case ast.KindIndex:
		return ev.dispatchIndex(node)
	case ast.KindCall:
		return ev.dispatchCall(node)
	case ast.KindTuple, ast.KindList, ast.KindSet:
		return ev.dispatchContainer(node, expr.Kind)
	case ast.KindDict:
		return ev.dispatchDict(node)
	case ast.KindNumber:
		return ev.dispatchNumber(node)
	case ast.KindString:
		return ev.dispatchString(node)
	case ast.KindConstant:
		return ev.dispatchConstant(node)
	case ast.KindUnaryOp:
		return ev.dispatchUnary(node)
	case ast.KindBinaryOp:
		return ev.dispatchBinary(node)
	case ast.KindTernary:
		return ev.dispatchTernary(node)
	case ast.KindAwait:
		return ev.dispatchAwait(node)
	case ast.KindYield:
		return ev.dispatchYield(node)
	case ast.KindYieldFrom:
		return ev.dispatchYieldFrom(node)
	case ast.KindLambda:
		return ev.dispatchLambda(node)
	case ast.KindComprehension:
		// §9: comprehensions are a stub, always Unknown.
		return ev.unknown()
	case ast.KindSlice:
		return ev.dispatchSlice(node)
	case ast.KindAssignment:
		return ev.dispatchAssignment(node)
	case ast.KindTypeAnnotation:
		return ev.dispatchTypeAnnotation(node)
	default:
		return ev.unknown()
	}
}

func (ev *Evaluator) dispatchName(node ast.ExprID, usage Usage) types.TypeID {
	data, ok := ev.Exprs.Name(node)
	if !ok {
		return ev.unknown()
	}
	name := ev.lookupString(data.Name)
	if ev.Scope == nil {
		return ev.unknown()
	}
	result, ok := ev.Scope.LookUpSymbolRecursive(name)
	if !ok {
		ev.report(diag.SemaUndefinedName, diag.SevError, ev.spanOf(node),
			fmt.Sprintf("'%s' is not defined", name), nil)
		return ev.unknown()
	}
	t := symbolType(result.Symbol)
	if t == types.NoTypeID {
		return ev.unknown()
	}
	return t
}

func (ev *Evaluator) dispatchMember(node ast.ExprID, usage Usage, flags MemberFlags) types.TypeID {
	data, ok := ev.Exprs.Member(node)
	if !ok {
		return ev.unknown()
	}
	base := ev.GetType(data.Target, UsageGet, 0)
	name := ev.lookupString(data.Attr)
	return ev.GetMember(base, name, usage, ev.spanOf(node), flags)
}

func (ev *Evaluator) dispatchIndex(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Index(node)
	if !ok {
		return ev.unknown()
	}
	target := ev.GetType(data.Target, UsageGet, 0)
	span := ev.spanOf(node)
	return ev.DoForSubtypes(target, func(t types.TypeID) types.TypeID {
		switch ev.Interner.Kind(t) {
		case types.KindNone:
			ev.addDiagnostic(ev.Config.ReportOptionalSubscript, diag.SemaOptionalSubscript, span,
				"Object of type 'None' is not subscriptable")
			return ev.unknown()
		case types.KindClass:
			return ev.synthesizeGenericSubscription(node, t, data.Index)
		case types.KindObject:
			ev.GetType(data.Index, UsageGet, 0)
			return ev.subscriptObject(t, span)
		case types.KindUnknown, types.KindAny:
			ev.GetType(data.Index, UsageGet, 0)
			return t
		default:
			ev.GetType(data.Index, UsageGet, 0)
			ev.report(diag.SemaNotSubscriptable, diag.SevError, span,
				fmt.Sprintf("'%s' is not subscriptable", ev.describeType(t)), nil)
			return ev.unknown()
		}
	})
}

// synthesizeGenericSubscription handles `Name[args]` where Name is a
// Class: either one of the recognized special forms (§4.5) or ordinary
// generic specialization of a user class.
func (ev *Evaluator) synthesizeGenericSubscription(node ast.ExprID, cls types.TypeID, index ast.ExprID) types.TypeID {
	info, ok := ev.Interner.Class(cls)
	if !ok {
		return ev.unknown()
	}
	if form, isForm := IsSpecialForm(info.Name); isForm {
		if form == FormCallable {
			return ev.synthesizeCallableSubscription(node, index)
		}
		args, ellipsis := ev.evaluateTypeArgList(index)
		return ev.SynthesizeSubscription(form, node, args, ellipsis)
	}
	args, _ := ev.evaluateTypeArgList(index)
	specialized, ok := ev.Interner.CloneForSpecialization(cls, args)
	if !ok {
		return ev.unknown()
	}
	return specialized
}

// evaluateTypeArgList evaluates index as either a single type-expression
// or, if it's a Tuple literal (`X[a, b]` parses as a tuple index), each
// element in turn. A bare Slice element with no bounds is read as `...`.
func (ev *Evaluator) evaluateTypeArgList(index ast.ExprID) ([]types.TypeID, []bool) {
	if container, ok := ev.Exprs.Container(index); ok {
		if expr := ev.Exprs.Get(index); expr != nil && expr.Kind == ast.KindTuple {
			args := make([]types.TypeID, len(container.Elements))
			ellipsis := make([]bool, len(container.Elements))
			for i, el := range container.Elements {
				args[i] = ev.GetType(el, UsageGet, 0)
				ellipsis[i] = ev.Interner.IsEllipsis(args[i])
			}
			return args, ellipsis
		}
	}
	t := ev.GetType(index, UsageGet, 0)
	return []types.TypeID{t}, []bool{ev.Interner.IsEllipsis(t)}
}

// synthesizeCallableSubscription handles Callable[[P1, P2], R] and
// Callable[..., R], whose first argument isn't a flat type list.
func (ev *Evaluator) synthesizeCallableSubscription(node ast.ExprID, index ast.ExprID) types.TypeID {
	container, ok := ev.Exprs.Container(index)
	if !ok || len(container.Elements) != 2 {
		ev.report(diag.SemaWrongArity, diag.SevError, ev.spanOf(node),
			"Callable requires exactly two arguments: a parameter list and a return type", nil)
		return ev.unknown()
	}
	ret := ev.GetType(container.Elements[1], UsageGet, 0)
	paramsExpr := container.Elements[0]

	if paramsExpr == ast.NoExprID {
		return ev.SynthesizeCallable(node, nil, true, ret)
	}
	if paramContainer, ok := ev.Exprs.Container(paramsExpr); ok {
		paramTypes := make([]types.TypeID, len(paramContainer.Elements))
		for i, el := range paramContainer.Elements {
			paramTypes[i] = ev.GetType(el, UsageGet, 0)
		}
		return ev.SynthesizeCallable(node, paramTypes, false, ret)
	}
	// `...` as the bare parameter-list element.
	single := ev.GetType(paramsExpr, UsageGet, 0)
	if ev.Interner.IsEllipsis(single) {
		return ev.SynthesizeCallable(node, nil, true, ret)
	}
	return ev.SynthesizeCallable(node, []types.TypeID{single}, false, ret)
}

// subscriptObject handles `obj[i]` via `__getitem__`.
func (ev *Evaluator) subscriptObject(obj types.TypeID, span source.Span) types.TypeID {
	if fn := ev.dunderUnaryResult(obj, "__getitem__"); fn != types.NoTypeID {
		return fn
	}
	ev.report(diag.SemaNotSubscriptable, diag.SevError, span,
		fmt.Sprintf("'%s' is not subscriptable", ev.describeType(obj)), nil)
	return ev.unknown()
}

func (ev *Evaluator) dispatchCall(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Call(node)
	if !ok {
		return ev.unknown()
	}
	if result, handled := ev.getTypeFromDecorator(node, data); handled {
		return result
	}
	callee := ev.GetType(data.Target, UsageGet, 0)
	args := ev.resolveArguments(data.Args)
	return ev.ValidateCall(node, args, callee, NewTypeVarMap())
}

// getTypeFromDecorator recognizes the §4.5 synthesis forms that appear as a
// bare Call node rather than a subscription: `TypeVar(...)`, `NamedTuple(...)`,
// and `dataclass(...)` (the desugaring of `@dataclass class C: ...` is
// `C = dataclass(C)`, since this AST has no class-statement node of its
// own). handled is false for an ordinary call, which falls through to
// ValidateCall.
func (ev *Evaluator) getTypeFromDecorator(node ast.ExprID, data *ast.CallData) (types.TypeID, bool) {
	name, ok := ev.exprName(data.Target)
	if !ok {
		return types.NoTypeID, false
	}
	switch name {
	case "TypeVar":
		return ev.dispatchTypeVarCall(node, data.Args), true
	case "NamedTuple":
		return ev.dispatchNamedTupleCall(node, data.Args), true
	case "dataclass":
		return ev.dispatchDataclassCall(node, data.Args), true
	default:
		return types.NoTypeID, false
	}
}

func (ev *Evaluator) exprName(node ast.ExprID) (string, bool) {
	expr := ev.Exprs.Get(node)
	if expr == nil || expr.Kind != ast.KindName {
		return "", false
	}
	data, ok := ev.Exprs.Name(node)
	if !ok {
		return "", false
	}
	return ev.lookupString(data.Name), true
}

func (ev *Evaluator) stringLiteral(node ast.ExprID) (string, bool) {
	expr := ev.Exprs.Get(node)
	if expr == nil || expr.Kind != ast.KindString {
		return "", false
	}
	data, ok := ev.Exprs.String(node)
	if !ok || data.IsBytes {
		return "", false
	}
	return ev.lookupString(data.Raw), true
}

func (ev *Evaluator) constantBool(node ast.ExprID) (bool, bool) {
	data, ok := ev.Exprs.Constant(node)
	if !ok {
		return false, false
	}
	switch data.Keyword {
	case ast.KeywordTrue:
		return true, true
	case ast.KeywordFalse:
		return false, true
	default:
		return false, false
	}
}

// dispatchTypeVarCall implements `TypeVar(name, *constraints, bound=,
// covariant=, contravariant=)`.
func (ev *Evaluator) dispatchTypeVarCall(node ast.ExprID, args []ast.CallArg) types.TypeID {
	if len(args) == 0 {
		ev.report(diag.SemaWrongArity, diag.SevError, ev.spanOf(node), "TypeVar requires a name argument", nil)
		return ev.unknown()
	}
	name, ok := ev.stringLiteral(args[0].Value)
	if !ok {
		ev.report(diag.SemaWrongArity, diag.SevError, ev.spanOf(node), "TypeVar name must be a string literal", nil)
		return ev.unknown()
	}
	var constraints []types.TypeID
	bound := types.NoTypeID
	covariant, contravariant := false, false
	for _, a := range args[1:] {
		if a.Category != ast.CategorySimple {
			continue
		}
		switch ev.lookupString(a.Name) {
		case "":
			constraints = append(constraints, ev.GetType(a.Value, UsageGet, 0))
		case "bound":
			bound = ev.GetType(a.Value, UsageGet, 0)
		case "covariant":
			covariant, _ = ev.constantBool(a.Value)
		case "contravariant":
			contravariant, _ = ev.constantBool(a.Value)
		}
	}
	return ev.SynthesizeTypeVar(node, name, constraints, bound, covariant, contravariant)
}

// dispatchNamedTupleCall implements `NamedTuple(name, fields)`.
func (ev *Evaluator) dispatchNamedTupleCall(node ast.ExprID, args []ast.CallArg) types.TypeID {
	if len(args) < 2 {
		ev.report(diag.SemaWrongArity, diag.SevError, ev.spanOf(node), "NamedTuple requires a name and a field list", nil)
		return ev.unknown()
	}
	name, ok := ev.stringLiteral(args[0].Value)
	if !ok {
		ev.report(diag.SemaWrongArity, diag.SevError, ev.spanOf(node), "NamedTuple name must be a string literal", nil)
		return ev.unknown()
	}
	return ev.SynthesizeNamedTuple(node, name, ev.namedTupleFields(args[1].Value))
}

// namedTupleFields reads either NamedTuple's untyped mode (a single
// whitespace-separated string of field names, each defaulting to Unknown)
// or its typed mode (a list of (name, type) pairs).
func (ev *Evaluator) namedTupleFields(node ast.ExprID) []NamedTupleField {
	if raw, ok := ev.stringLiteral(node); ok {
		names := strings.Fields(raw)
		fields := make([]NamedTupleField, len(names))
		for i, n := range names {
			fields[i] = NamedTupleField{Name: n, Type: ev.unknown()}
		}
		return fields
	}
	container, ok := ev.Exprs.Container(node)
	if !ok {
		return nil
	}
	fields := make([]NamedTupleField, 0, len(container.Elements))
	for _, el := range container.Elements {
		pair, ok := ev.Exprs.Container(el)
		if !ok || len(pair.Elements) != 2 {
			continue
		}
		fname, _ := ev.stringLiteral(pair.Elements[0])
		fields = append(fields, NamedTupleField{Name: fname, Type: ev.GetType(pair.Elements[1], UsageGet, 0)})
	}
	return fields
}

// dispatchDataclassCall implements `dataclass(SomeClass)`, the desugared
// form of `@dataclass`. Field order is derived from the class's own
// InstanceFields, sorted by name: this AST has no class-statement node to
// carry source declaration order or per-field default-value presence, so
// every derived field is treated as required. The parameterized
// decorator-factory form (`dataclass(order=True)` with no class argument)
// has nothing to act on here and is left as Unknown.
func (ev *Evaluator) dispatchDataclassCall(node ast.ExprID, args []ast.CallArg) types.TypeID {
	if len(args) == 0 || args[0].Category != ast.CategorySimple || ev.lookupString(args[0].Name) != "" {
		return ev.unknown()
	}
	cls := ev.GetType(args[0].Value, UsageGet, 0)
	if ev.Interner.Kind(cls) != types.KindClass {
		return cls
	}
	ev.SynthesizeDataClassMethods(node, cls, ev.dataclassFieldsOf(cls))
	return cls
}

func (ev *Evaluator) dataclassFieldsOf(cls types.TypeID) []DataclassField {
	info, ok := ev.Interner.Class(cls)
	if !ok || len(info.InstanceFields) == 0 {
		return nil
	}
	names := make([]string, 0, len(info.InstanceFields))
	for name := range info.InstanceFields {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]DataclassField, len(names))
	for i, name := range names {
		fields[i] = DataclassField{Name: name, Type: symbolType(info.InstanceFields[name])}
	}
	return fields
}

func (ev *Evaluator) dispatchContainer(node ast.ExprID, kind ast.ExprKind) types.TypeID {
	data, ok := ev.Exprs.Container(node)
	if !ok {
		return ev.unknown()
	}
	elemTypes := make([]types.TypeID, len(data.Elements))
	for i, el := range data.Elements {
		elemTypes[i] = ev.GetType(el, UsageGet, 0)
	}
	elem := ev.CombineTypes(elemTypes)
	if len(elemTypes) == 0 {
		elem = ev.unknown()
	}
	switch kind {
	case ast.KindTuple:
		return ev.specializeBuiltinClass("tuple", elemTypes)
	case ast.KindList:
		return ev.specializeBuiltinClass("list", []types.TypeID{elem})
	case ast.KindSet:
		return ev.specializeBuiltinClass("set", []types.TypeID{elem})
	default:
		return ev.unknown()
	}
}

// dispatchDict always specializes to dict[Unknown, Unknown] (§9: key/value
// inference for dict literals is explicitly out of scope).
func (ev *Evaluator) dispatchDict(node ast.ExprID) types.TypeID {
	data, _ := ev.Exprs.Dict(node)
	for _, entry := range data.Entries {
		ev.GetType(entry.Key, UsageGet, 0)
		ev.GetType(entry.Value, UsageGet, 0)
	}
	return ev.specializeBuiltinClass("dict", []types.TypeID{ev.unknown(), ev.unknown()})
}

func (ev *Evaluator) dispatchNumber(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Number(node)
	if !ok {
		return ev.unknown()
	}
	switch {
	case data.IsComplex:
		return ev.builtinObject("complex", nil)
	case data.IsFloat:
		return ev.builtinObject("float", nil)
	default:
		return ev.builtinObject("int", nil)
	}
}

func (ev *Evaluator) dispatchString(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.String(node)
	if !ok {
		return ev.unknown()
	}
	if data.TypeComment != ast.NoExprID {
		return ev.GetType(data.TypeComment, UsageGet, 0)
	}
	if data.IsBytes {
		return ev.builtinObject("bytes", nil)
	}
	return ev.builtinObject("str", nil)
}

func (ev *Evaluator) dispatchConstant(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Constant(node)
	if !ok {
		return ev.unknown()
	}
	switch data.Keyword {
	case ast.KeywordNone:
		return ev.none()
	case ast.KeywordTrue:
		return ev.boolWithTruthy(types.TruthyTrue)
	case ast.KeywordFalse:
		return ev.boolWithTruthy(types.TruthyFalse)
	case ast.KeywordDebug:
		return ev.builtinObject("bool", nil)
	default:
		return ev.unknown()
	}
}

func (ev *Evaluator) boolWithTruthy(truthy types.Truthy) types.TypeID {
	base := ev.builtinObject("bool", nil)
	return ev.Interner.WithTruthy(base, truthy)
}

func (ev *Evaluator) dispatchUnary(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Unary(node)
	if !ok {
		return ev.unknown()
	}
	if data.Op == ast.OpNot {
		ev.GetType(data.Operand, UsageGet, 0)
		return ev.builtinObject("bool", nil)
	}
	operand := ev.GetType(data.Operand, UsageGet, 0)
	span := ev.spanOf(node)
	return ev.DoForSubtypes(operand, func(t types.TypeID) types.TypeID {
		if ev.Interner.Kind(t) == types.KindUnknown || ev.Interner.Kind(t) == types.KindAny {
			return t
		}
		dunder := data.Op.DunderName()
		if data.Op == ast.OpInvert {
			// §9: the typo'd legacy dunder is probed first for source
			// fidelity, falling back to the corrected name.
			if fn := ev.dunderUnaryResult(t, "__inv__"); fn != types.NoTypeID {
				return fn
			}
		}
		if fn := ev.dunderUnaryResult(t, dunder); fn != types.NoTypeID {
			return fn
		}
		ev.report(diag.SemaNoSuchMember, diag.SevError, span,
			fmt.Sprintf("Operator '%s' not supported for type '%s'", data.Op.String(), ev.describeType(t)), nil)
		return ev.unknown()
	})
}

func (ev *Evaluator) dunderUnaryResult(t types.TypeID, name string) types.TypeID {
	classOf := t
	if obj, ok := ev.Interner.Object(t); ok {
		classOf = obj.ClassType
	} else if ev.Interner.Kind(t) != types.KindClass {
		return types.NoTypeID
	}
	sym, _, ok := ev.LookUpClassMember(classOf, name, false, true, SkipForMethodLookup)
	if !ok {
		return types.NoTypeID
	}
	fi, ok := ev.Interner.Function(symbolType(sym))
	if !ok {
		return types.NoTypeID
	}
	return fi.ReturnType()
}

func (ev *Evaluator) dispatchBinary(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Binary(node)
	if !ok {
		return ev.unknown()
	}
	switch {
	case data.Op.IsBoolean():
		return ev.dispatchBooleanOp(node, data)
	case data.Op.IsIdentity(), data.Op.IsMembership():
		ev.GetType(data.Left, UsageGet, 0)
		ev.GetType(data.Right, UsageGet, 0)
		return ev.builtinObject("bool", nil)
	case data.Op.IsComparison():
		return ev.dispatchComparisonOp(node, data)
	case data.Op.IsArithmetic():
		return ev.dispatchArithmeticOp(node, data)
	case data.Op.IsBitwise():
		return ev.dispatchBitwiseOp(node, data)
	default:
		return ev.unknown()
	}
}

// dispatchBooleanOp implements `and`/`or` with narrowing of the right
// operand (§4.4): `x and y` evaluates y under the constraints that hold
// when x is truthy; `x or y` under the constraints that hold when x is
// falsy. The result combines the narrowed-away left type with the right.
func (ev *Evaluator) dispatchBooleanOp(node ast.ExprID, data *ast.BinaryData) types.TypeID {
	left := ev.GetType(data.Left, UsageGet, 0)
	ifC, elseC := ev.narrowingFor(ev.NarrowBuilder, data.Left)

	var right types.TypeID
	var leftSurvives types.TypeID
	if data.Op == ast.OpAnd {
		leftSurvives = ev.RemoveTruthinessFromType(left)
		ev.withConstraints(ifC, func() {
			right = ev.GetType(data.Right, UsageGet, 0)
		})
	} else {
		leftSurvives = ev.RemoveFalsinessFromType(left)
		ev.withConstraints(elseC, func() {
			right = ev.GetType(data.Right, UsageGet, 0)
		})
	}
	return ev.CombineTypes([]types.TypeID{leftSurvives, right})
}

// dispatchComparisonOp implements §4.4: a comparison always yields bool.
// Both operands are evaluated; no comparison dunder is looked up.
func (ev *Evaluator) dispatchComparisonOp(node ast.ExprID, data *ast.BinaryData) types.TypeID {
	ev.GetType(data.Left, UsageGet, 0)
	ev.GetType(data.Right, UsageGet, 0)
	return ev.builtinObject("bool", nil)
}

// dispatchArithmeticOp implements int -> float -> complex numeric
// promotion (§4.4), excluded for OpMatMul which always routes through the
// left operand's dunder.
func (ev *Evaluator) dispatchArithmeticOp(node ast.ExprID, data *ast.BinaryData) types.TypeID {
	left := ev.GetType(data.Left, UsageGet, 0)
	right := ev.GetType(data.Right, UsageGet, 0)
	span := ev.spanOf(node)

	if data.Op != ast.OpMatMul {
		if promoted, ok := ev.promoteNumeric(left, right); ok {
			return promoted
		}
	}
	return ev.DoForSubtypes(left, func(l types.TypeID) types.TypeID {
		if ev.Interner.Kind(l) == types.KindUnknown || ev.Interner.Kind(l) == types.KindAny {
			return l
		}
		if fn := ev.dunderUnaryResult(l, data.Op.DunderName()); fn != types.NoTypeID {
			return fn
		}
		ev.report(diag.SemaNoSuchMember, diag.SevError, span,
			fmt.Sprintf("Operator '%s' not supported between '%s' and '%s'",
				data.Op.String(), ev.describeType(l), ev.describeType(right)), nil)
		return ev.unknown()
	})
}

var numericRank = map[string]int{"int": 0, "float": 1, "complex": 2}

// promoteNumeric recognizes both operands as builtin numeric objects and
// returns the result at the higher rank (int < float < complex).
func (ev *Evaluator) promoteNumeric(left, right types.TypeID) (types.TypeID, bool) {
	ln, lok := ev.numericName(left)
	rn, rok := ev.numericName(right)
	if !lok || !rok {
		return types.NoTypeID, false
	}
	if numericRank[ln] >= numericRank[rn] {
		return left, true
	}
	return right, true
}

func (ev *Evaluator) numericName(t types.TypeID) (string, bool) {
	obj, ok := ev.Interner.Object(t)
	if !ok {
		return "", false
	}
	info, ok := ev.Interner.Class(obj.ClassType)
	if !ok {
		return "", false
	}
	_, known := numericRank[info.Name]
	return info.Name, known
}

func (ev *Evaluator) dispatchBitwiseOp(node ast.ExprID, data *ast.BinaryData) types.TypeID {
	left := ev.GetType(data.Left, UsageGet, 0)
	right := ev.GetType(data.Right, UsageGet, 0)
	span := ev.spanOf(node)

	if ev.isBuiltinName(left, "int") && ev.isBuiltinName(right, "int") {
		return ev.builtinObject("int", nil)
	}
	return ev.DoForSubtypes(left, func(l types.TypeID) types.TypeID {
		if ev.Interner.Kind(l) == types.KindUnknown || ev.Interner.Kind(l) == types.KindAny {
			return l
		}
		if fn := ev.dunderUnaryResult(l, data.Op.DunderName()); fn != types.NoTypeID {
			return fn
		}
		ev.report(diag.SemaNoSuchMember, diag.SevError, span,
			fmt.Sprintf("Operator '%s' not supported between '%s' and '%s'",
				data.Op.String(), ev.describeType(l), ev.describeType(right)), nil)
		return ev.unknown()
	})
}

func (ev *Evaluator) isBuiltinName(t types.TypeID, name string) bool {
	n, ok := ev.numericName(t)
	return ok && n == name
}

func (ev *Evaluator) dispatchTernary(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Ternary(node)
	if !ok {
		return ev.unknown()
	}
	ev.GetType(data.Cond, UsageGet, 0)
	ifC, elseC := ev.narrowingFor(ev.NarrowBuilder, data.Cond)

	var thenType, elseType types.TypeID
	ev.withConstraints(ifC, func() {
		thenType = ev.GetType(data.Then, UsageGet, 0)
	})
	ev.withConstraints(elseC, func() {
		elseType = ev.GetType(data.Else, UsageGet, 0)
	})
	return ev.CombineTypes([]types.TypeID{thenType, elseType})
}

func (ev *Evaluator) dispatchAwait(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Await(node)
	if !ok {
		return ev.unknown()
	}
	t := ev.GetType(data.Value, UsageGet, 0)
	span := ev.spanOf(node)
	return ev.DoForSubtypes(t, func(a types.TypeID) types.TypeID {
		return ev.getTypeFromAwaitable(a, span)
	})
}

// getTypeFromAwaitable implements §4.4's await chain: Generator[Y, S, R]
// specializes directly to R; otherwise follow __await__'s return type;
// failing that, fall back to getTypeFromIterable for generator-based
// coroutines that expose __iter__ instead of __await__; anything else is
// an error.
func (ev *Evaluator) getTypeFromAwaitable(t types.TypeID, span source.Span) types.TypeID {
	if ev.Interner.Kind(t) == types.KindUnknown || ev.Interner.Kind(t) == types.KindAny {
		return t
	}
	if obj, ok := ev.Interner.Object(t); ok {
		if info, ok := ev.Interner.Class(obj.ClassType); ok && info.Name == "Generator" && len(info.TypeArgs) == 3 {
			return info.TypeArgs[2]
		}
	}
	if fn := ev.dunderUnaryResult(t, "__await__"); fn != types.NoTypeID {
		return ev.getTypeFromAwaitable(fn, span)
	}
	if result, ok := ev.getTypeFromIterable(t); ok {
		return result
	}
	ev.report(diag.SemaNoSuchMember, diag.SevError, span,
		fmt.Sprintf("'%s' is not awaitable", ev.describeType(t)), nil)
	return ev.unknown()
}

// getTypeFromIterable is the await chain's second fallback (§4.4): old-style
// generator-based coroutines implement __iter__ instead of __await__. If
// __iter__ resolves to a Generator[Y, S, R], the awaited result is R;
// otherwise the plain __iter__ return type stands in for it.
func (ev *Evaluator) getTypeFromIterable(t types.TypeID) (types.TypeID, bool) {
	fn := ev.dunderUnaryResult(t, "__iter__")
	if fn == types.NoTypeID {
		return types.NoTypeID, false
	}
	if obj, ok := ev.Interner.Object(fn); ok {
		if info, ok := ev.Interner.Class(obj.ClassType); ok && info.Name == "Generator" && len(info.TypeArgs) == 3 {
			return info.TypeArgs[2], true
		}
	}
	return fn, true
}

func (ev *Evaluator) dispatchYield(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Yield(node)
	if !ok {
		return ev.unknown()
	}
	if data.Value != ast.NoExprID {
		ev.GetType(data.Value, UsageGet, 0)
	}
	return ev.generatorSendType(node)
}

func (ev *Evaluator) dispatchYieldFrom(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.YieldFrom(node)
	if !ok {
		return ev.unknown()
	}
	ev.GetType(data.Value, UsageGet, 0)
	return ev.generatorSendType(node)
}

// generatorSendType resolves the send-type of the enclosing generator
// function via previously-computed annotations (§6 "Consumed from
// analyzer annotations"); Unknown when no enclosing function was
// annotated yet.
func (ev *Evaluator) generatorSendType(node ast.ExprID) types.TypeID {
	if ev.Annotations == nil {
		return ev.unknown()
	}
	if t, ok := ev.Annotations.GetExpressionType(node); ok {
		return t
	}
	return ev.unknown()
}

func (ev *Evaluator) dispatchLambda(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Lambda(node)
	if !ok {
		return ev.unknown()
	}
	params := make([]types.Param, len(data.Params))
	for i, p := range data.Params {
		var defaultType types.TypeID
		if p.HasDefault && p.Default != ast.NoExprID {
			defaultType = ev.GetType(p.Default, UsageGet, 0)
		}
		params[i] = types.Param{
			Category:    toParamCategory(p.Category),
			Name:        ev.lookupString(p.Name),
			HasDefault:  p.HasDefault,
			DefaultType: defaultType,
			Type:        ev.unknown(),
		}
	}
	ret := ev.GetType(data.Body, UsageGet, 0)
	return ev.Interner.RegisterFunction(types.FunctionInfo{
		Parameters:         params,
		DeclaredReturnType: ret,
	})
}

// dispatchSlice evaluates the live `slice` built-in (§9 redesign: the
// historical placeholder special-cased `set`, which was never correct —
// it survives only as the TODO note after the return, not as code).
func (ev *Evaluator) dispatchSlice(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Slice(node)
	if !ok {
		return ev.unknown()
	}
	for _, part := range []ast.ExprID{data.Lower, data.Upper, data.Step} {
		if part != ast.NoExprID {
			ev.GetType(part, UsageGet, 0)
		}
	}
	return ev.builtinObject("slice", nil)
	// TODO: historical placeholder returned ev.builtinObject("set", nil)
	// here; kept only as a note in case some caller still depends on the
	// old (incorrect) behavior surfacing as a diagnostic rather than silently
	// changing shape.
}

func (ev *Evaluator) dispatchAssignment(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.Assignment(node)
	if !ok {
		return ev.unknown()
	}
	valueType := ev.GetType(data.Value, UsageGet, 0)
	if data.IsAugmented {
		targetType := ev.GetType(data.Target, UsageGet, 0)
		span := ev.spanOf(node)
		result := ev.DoForSubtypes(targetType, func(t types.TypeID) types.TypeID {
			if ev.Interner.Kind(t) == types.KindUnknown || ev.Interner.Kind(t) == types.KindAny {
				return t
			}
			dunder := "__i" + data.AugOp.DunderName()[2:]
			if fn := ev.dunderUnaryResult(t, dunder); fn != types.NoTypeID {
				return fn
			}
			if fn := ev.dunderUnaryResult(t, data.AugOp.DunderName()); fn != types.NoTypeID {
				return fn
			}
			ev.report(diag.SemaNoSuchMember, diag.SevError, span,
				fmt.Sprintf("Operator '%s=' not supported for type '%s'", data.AugOp.String(), ev.describeType(t)), nil)
			return ev.unknown()
		})
		return ev.checkAssignmentTarget(node, data.Target, result)
	}
	return ev.checkAssignmentTarget(node, data.Target, valueType)
}

// checkAssignmentTarget reports SemaAssignmentMismatch when the target
// carries a declared type incompatible with the assigned value (§4.4);
// returns the declared type when present so narrowing keeps the tighter
// annotation, else the value's own type.
func (ev *Evaluator) checkAssignmentTarget(node, target ast.ExprID, valueType types.TypeID) types.TypeID {
	nameData, isName := ev.Exprs.Name(target)
	if !isName || ev.Scope == nil {
		return valueType
	}
	result, ok := ev.Scope.LookUpSymbolRecursive(ev.lookupString(nameData.Name))
	if !ok {
		return valueType
	}
	declared, hasDeclared := result.Symbol.DeclaredType()
	if !hasDeclared {
		return valueType
	}
	if !ev.CanAssignType(declared, valueType, nil) {
		ev.report(diag.SemaAssignmentMismatch, diag.SevError, ev.spanOf(node),
			fmt.Sprintf("Type '%s' is not assignable to declared type '%s'",
				ev.describeType(valueType), ev.describeType(declared)), nil)
	}
	return declared
}

// dispatchTypeAnnotation evaluates the annotation expression as a
// type-expression and returns the type it denotes (§4.4: "the RHS of a
// variable declaration's type comment or an annotated assignment's target
// type"); the paired Value expression is still visited so its own
// diagnostics fire, but its type doesn't participate in the result.
func (ev *Evaluator) dispatchTypeAnnotation(node ast.ExprID) types.TypeID {
	data, ok := ev.Exprs.TypeAnnotation(node)
	if !ok {
		return ev.unknown()
	}
	if data.Value != ast.NoExprID {
		ev.GetType(data.Value, UsageGet, 0)
	}
	return ev.GetType(data.Annotation, UsageGet, 0)
}
