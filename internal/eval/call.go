package eval

import (
	"fmt"

	"gradualtype/internal/ast"
	"gradualtype/internal/diag"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

// ValidateCall dispatches validateCall per §4.3 based on the callee's kind.
func (ev *Evaluator) ValidateCall(errorNode ast.ExprID, args []Argument, callee types.TypeID, varMap *TypeVarMap) types.TypeID {
	span := ev.spanOf(errorNode)
	switch ev.Interner.Kind(callee) {
	case types.KindAny:
		return ev.any()
	case types.KindUnknown:
		return ev.unknown()
	case types.KindFunction:
		t, _ := ev.validateFunctionArguments(errorNode, args, callee, varMap)
		return t
	case types.KindOverloadedFunction:
		return ev.validateOverloaded(errorNode, args, callee, varMap)
	case types.KindClass:
		return ev.validateConstructorArguments(errorNode, args, callee)
	case types.KindObject:
		return ev.validateObjectCall(errorNode, args, callee, varMap)
	case types.KindUnion:
		return ev.validateUnionCall(errorNode, args, callee, varMap, span)
	default:
		ev.report(diag.SemaNotCallable, diag.SevError, span,
			fmt.Sprintf("'%s' is not callable", ev.describeType(callee)), nil)
		return ev.unknown()
	}
}

func (ev *Evaluator) validateOverloaded(errorNode ast.ExprID, args []Argument, callee types.TypeID, varMap *TypeVarMap) types.TypeID {
	overloads, _ := ev.Interner.Overloaded(callee)
	for _, fn := range overloads {
		var result types.TypeID
		var ok bool
		ev.withSilencedDiagnostics(func() {
			result, ok = ev.validateFunctionArguments(errorNode, args, fn, NewTypeVarMap())
		})
		if ok {
			return result
		}
	}
	ev.report(diag.SemaNoOverloadMatches, diag.SevError, ev.spanOf(errorNode), "No overloads match parameters", nil)
	return ev.unknown()
}

func (ev *Evaluator) validateObjectCall(errorNode ast.ExprID, args []Argument, callee types.TypeID, varMap *TypeVarMap) types.TypeID {
	obj, ok := ev.Interner.Object(callee)
	if !ok {
		return ev.unknown()
	}
	sym, _, ok := ev.LookUpClassMember(obj.ClassType, "__call__", false, true, SkipForMethodLookup)
	if !ok {
		ev.report(diag.SemaNotCallable, diag.SevError, ev.spanOf(errorNode),
			fmt.Sprintf("'%s' is not callable", ev.describeType(callee)), nil)
		return ev.unknown()
	}
	fn := ev.BindFunctionToClassOrObject(callee, symbolType(sym))
	return ev.ValidateCall(errorNode, args, fn, varMap)
}

func (ev *Evaluator) validateUnionCall(errorNode ast.ExprID, args []Argument, callee types.TypeID, varMap *TypeVarMap, span source.Span) types.TypeID {
	members, _ := ev.Interner.UnionMembers(callee)
	results := make([]types.TypeID, 0, len(members))
	reportedOptional := false
	for _, m := range members {
		if ev.Interner.Kind(m) == types.KindNone {
			if !reportedOptional {
				ev.addDiagnostic(ev.Config.ReportOptionalCall, diag.SemaOptionalCall, span,
					"Object of type 'None' cannot be called")
				reportedOptional = true
			}
			continue
		}
		results = append(results, ev.ValidateCall(errorNode, args, m, varMap))
	}
	return ev.CombineTypes(results)
}

// paramState tracks per-parameter bookkeeping during validateFunctionArguments.
type paramState struct {
	param        types.Param
	argsNeeded   int
	argsReceived int
}

// validateFunctionArguments implements PEP 3102 matching per §4.3.
func (ev *Evaluator) validateFunctionArguments(errorNode ast.ExprID, args []Argument, fn types.TypeID, varMap *TypeVarMap) (types.TypeID, bool) {
	fi, ok := ev.Interner.Function(fn)
	if !ok {
		return ev.unknown(), false
	}
	span := ev.spanOf(errorNode)

	states := make([]paramState, len(fi.Parameters))
	for i, p := range fi.Parameters {
		needed := 0
		if p.Category == types.ParamSimple && !p.HasDefault {
			needed = 1
		}
		states[i] = paramState{param: p, argsNeeded: needed}
	}

	positionalParamCount := len(states)
	for i, s := range states {
		if s.param.Category == types.ParamVarArgList {
			if s.param.Name == "" {
				positionalParamCount = i
			} else {
				positionalParamCount = i + 1
			}
			break
		}
		if s.param.Category == types.ParamVarArgDict {
			positionalParamCount = i
			break
		}
	}

	positionalArgCount := len(args)
	for i, a := range args {
		if a.Category == ast.CategoryVarArgDict || a.Name != "" {
			positionalArgCount = i
			break
		}
	}

	ok = true
	foundDictionaryArg := false
	foundListArg := false
	argIndex := 0
	paramIndex := 0

	for argIndex < positionalArgCount {
		if paramIndex >= len(states) {
			ev.report(diag.SemaTooManyPositional, diag.SevError, args[argIndex].Span,
				fmt.Sprintf("Expected %d positional arguments", positionalParamCount), nil)
			ok = false
			break
		}
		st := &states[paramIndex]
		if st.param.Category == types.ParamVarArgList && st.param.Name != "" {
			for ; argIndex < positionalArgCount; argIndex++ {
				if !ev.CanAssignType(st.param.Type, args[argIndex].Type, varMap) {
					ev.report(diag.SemaArgumentTypeMismatch, diag.SevError, args[argIndex].Span,
						fmt.Sprintf("Argument of type '%s' cannot be assigned to parameter of type '%s'",
							ev.describeType(args[argIndex].Type), ev.describeType(st.param.Type)), nil)
					ok = false
				}
			}
			st.argsReceived++
			paramIndex++
			break
		}
		if paramIndex >= positionalParamCount {
			ev.report(diag.SemaTooManyPositional, diag.SevError, args[argIndex].Span,
				fmt.Sprintf("Expected %d positional arguments", positionalParamCount), nil)
			ok = false
			argIndex++
			continue
		}
		if args[argIndex].Category == ast.CategoryVarArgList {
			foundListArg = true
		} else if !ev.CanAssignType(st.param.Type, args[argIndex].Type, varMap) {
			ev.report(diag.SemaArgumentTypeMismatch, diag.SevError, args[argIndex].Span,
				fmt.Sprintf("Argument of type '%s' cannot be assigned to parameter of type '%s'",
					ev.describeType(args[argIndex].Type), ev.describeType(st.param.Type)), nil)
			ok = false
		}
		st.argsReceived++
		argIndex++
		paramIndex++
	}

	for ; argIndex < len(args); argIndex++ {
		a := args[argIndex]
		if a.Category == ast.CategoryVarArgDict {
			foundDictionaryArg = true
			continue
		}
		if a.Category == ast.CategoryVarArgList {
			foundListArg = true
			continue
		}
		idx := paramIndexByName(states, a.Name)
		if idx < 0 {
			if dictParam := findVarArgDict(states); dictParam != nil {
				dictParam.argsReceived++
				continue
			}
			ev.report(diag.SemaNoParameterNamed, diag.SevError, a.Span,
				fmt.Sprintf("No parameter named '%s'", a.Name), nil)
			ok = false
			continue
		}
		st := &states[idx]
		if st.argsReceived > 0 {
			ev.report(diag.SemaArgumentAlready, diag.SevError, a.Span,
				fmt.Sprintf("Argument for parameter '%s' is already assigned", a.Name), nil)
			ok = false
			continue
		}
		if !ev.CanAssignType(st.param.Type, a.Type, varMap) {
			ev.report(diag.SemaArgumentTypeMismatch, diag.SevError, a.Span,
				fmt.Sprintf("Argument of type '%s' cannot be assigned to parameter of type '%s'",
					ev.describeType(a.Type), ev.describeType(st.param.Type)), nil)
			ok = false
		}
		st.argsReceived++
	}

	if !foundDictionaryArg && !foundListArg {
		for _, st := range states {
			if st.argsReceived < st.argsNeeded {
				name := st.param.Name
				if name == "" {
					name = "<anonymous>"
				}
				ev.report(diag.SemaArgumentMissing, diag.SevError, span,
					fmt.Sprintf("Argument missing for parameter '%s'", name), nil)
				ok = false
			}
		}
	}

	if !ok {
		return ev.unknown(), false
	}
	return ev.SpecializeType(fi.ReturnType(), varMap), true
}

func paramIndexByName(states []paramState, name string) int {
	for i, s := range states {
		if s.param.Category == types.ParamSimple && s.param.Name == name {
			return i
		}
	}
	return -1
}

func findVarArgDict(states []paramState) *paramState {
	for i := range states {
		if states[i].param.Category == types.ParamVarArgDict {
			return &states[i]
		}
	}
	return nil
}

// validateConstructorArguments implements §4.3's __new__/__init__ dispatch.
func (ev *Evaluator) validateConstructorArguments(errorNode ast.ExprID, args []Argument, cls types.TypeID) types.TypeID {
	span := ev.spanOf(errorNode)

	newSym, _, hasNew := ev.LookUpClassMember(cls, "__new__", false, true, SkipForMethodLookup|SkipObjectBaseClass)
	hasNewErr := false
	if hasNew {
		newVarMap := NewTypeVarMap()
		fn := ev.BindFunctionToClassOrObject(cls, symbolType(newSym))
		if _, ok := ev.validateFunctionArguments(errorNode, args, fn, newVarMap); !ok {
			hasNewErr = true
		}
	}

	objType := ev.Interner.RegisterObject(types.ObjectInfo{ClassType: cls})
	initSym, _, hasInit := ev.LookUpClassMember(cls, "__init__", false, true, SkipForMethodLookup)
	if hasInit {
		initVarMap := NewTypeVarMap()
		fn := ev.BindFunctionToClassOrObject(objType, symbolType(initSym))
		var ok bool
		if hasNewErr {
			ev.withSilencedDiagnostics(func() {
				_, ok = ev.validateFunctionArguments(errorNode, args, fn, initVarMap)
			})
		} else {
			_, ok = ev.validateFunctionArguments(errorNode, args, fn, initVarMap)
		}
		if ok {
			specialized := ev.SpecializeType(cls, initVarMap)
			return ev.Interner.RegisterObject(types.ObjectInfo{ClassType: specialized})
		}
		return ev.unknown()
	}

	if !hasNew {
		if len(args) > 0 {
			ev.report(diag.SemaExpectedNoArgs, diag.SevError, span, "Expected no arguments", nil)
			return ev.unknown()
		}
		return objType
	}
	if hasNewErr {
		return ev.unknown()
	}
	return objType
}
