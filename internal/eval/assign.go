package eval

import "gradualtype/internal/types"

// CanAssignType decides assignability of src to dst, recording
// substitutions into varMap along the way (§4.1). varMap may be nil when
// the caller has no interest in generic binding (e.g. simple reflexivity
// checks).
func (ev *Evaluator) CanAssignType(dst, src types.TypeID, varMap *TypeVarMap) bool {
	dstKind := ev.Interner.Kind(dst)
	srcKind := ev.Interner.Kind(src)

	// Rule 1: Unknown/Any absorb on either side.
	if dstKind == types.KindUnknown || dstKind == types.KindAny ||
		srcKind == types.KindUnknown || srcKind == types.KindAny {
		return true
	}

	// Rule 2: Never is assignable to anything; only Never assigns to Never.
	if dstKind == types.KindNever {
		return srcKind == types.KindNever
	}
	if srcKind == types.KindNever {
		return true
	}

	// Rule 3: Union distribution.
	if srcMembers, ok := ev.Interner.UnionMembers(src); ok {
		for _, m := range srcMembers {
			if !ev.CanAssignType(dst, m, varMap) {
				return false
			}
		}
		return true
	}
	if dstMembers, ok := ev.Interner.UnionMembers(dst); ok {
		for _, m := range dstMembers {
			if ev.CanAssignType(m, src, varMap) {
				return true
			}
		}
		return false
	}

	// Rule 5: TypeVar on destination.
	if dstKind == types.KindTypeVar {
		return ev.canAssignToTypeVar(dst, src, varMap)
	}

	if dstKind != srcKind {
		return false
	}

	switch dstKind {
	case types.KindNone:
		return true
	case types.KindObject:
		return ev.canAssignObject(dst, src, varMap)
	case types.KindClass:
		return ev.Interner.IsSameGenericClass(dst, src)
	case types.KindFunction:
		return ev.canAssignFunction(dst, src, varMap)
	case types.KindModule, types.KindOverloadedFunction, types.KindProperty:
		return dst == src
	default:
		return dst == src
	}
}

// canAssignObject implements rule 4: Object(C) -> Object(D) iff D is in
// C's transitive MRO with generic args satisfying D's parameter variance.
func (ev *Evaluator) canAssignObject(dst, src types.TypeID, varMap *TypeVarMap) bool {
	dstObj, ok := ev.Interner.Object(dst)
	if !ok {
		return false
	}
	srcObj, ok := ev.Interner.Object(src)
	if !ok {
		return false
	}
	return ev.classAssignable(dstObj.ClassType, srcObj.ClassType, varMap)
}

func (ev *Evaluator) classAssignable(dstClass, srcClass types.TypeID, varMap *TypeVarMap) bool {
	if ev.Interner.IsSameGenericClass(dstClass, srcClass) {
		return ev.typeArgsAssignable(dstClass, srcClass, varMap)
	}
	srcInfo, ok := ev.Interner.Class(srcClass)
	if !ok {
		return false
	}
	for _, base := range srcInfo.BaseClasses {
		if !base.IncludeInMro {
			continue
		}
		if ev.classAssignable(dstClass, base.Class, varMap) {
			return true
		}
	}
	return false
}

func (ev *Evaluator) typeArgsAssignable(dstClass, srcClass types.TypeID, varMap *TypeVarMap) bool {
	dstInfo, _ := ev.Interner.Class(dstClass)
	srcInfo, _ := ev.Interner.Class(srcClass)
	if dstInfo == nil || srcInfo == nil {
		return true
	}
	n := len(dstInfo.TypeParams)
	if n == 0 {
		return true
	}
	for i := 0; i < n; i++ {
		variance := types.Invariant
		if tv, ok := ev.Interner.TypeVar(dstInfo.TypeParams[i]); ok {
			variance = tv.Variance
		}
		d := argOrAny(dstInfo.TypeArgs, i, ev)
		s := argOrAny(srcInfo.TypeArgs, i, ev)
		switch variance {
		case types.Covariant:
			if !ev.CanAssignType(d, s, varMap) {
				return false
			}
		case types.Contravariant:
			if !ev.CanAssignType(s, d, varMap) {
				return false
			}
		default:
			if !ev.CanAssignType(d, s, varMap) || !ev.CanAssignType(s, d, varMap) {
				return false
			}
		}
	}
	return true
}

func argOrAny(args []types.TypeID, i int, ev *Evaluator) types.TypeID {
	if i < len(args) {
		return args[i]
	}
	return ev.any()
}

// canAssignFunction implements rule 6: contravariant parameters by
// position, covariant return, matching categories.
func (ev *Evaluator) canAssignFunction(dst, src types.TypeID, varMap *TypeVarMap) bool {
	dstFn, ok := ev.Interner.Function(dst)
	if !ok {
		return false
	}
	srcFn, ok := ev.Interner.Function(src)
	if !ok {
		return false
	}
	if len(dstFn.Parameters) != len(srcFn.Parameters) {
		return false
	}
	for i := range dstFn.Parameters {
		dp, sp := dstFn.Parameters[i], srcFn.Parameters[i]
		if dp.Category != sp.Category {
			return false
		}
		if !ev.CanAssignType(sp.Type, dp.Type, varMap) { // contravariant
			return false
		}
	}
	return ev.CanAssignType(dstFn.ReturnType(), srcFn.ReturnType(), varMap) // covariant
}

// canAssignToTypeVar implements rule 5.
func (ev *Evaluator) canAssignToTypeVar(dst, src types.TypeID, varMap *TypeVarMap) bool {
	tv, ok := ev.Interner.TypeVar(dst)
	if !ok {
		return false
	}
	if varMap != nil {
		if bound, ok := varMap.Get(dst); ok {
			return ev.CanAssignType(bound, src, varMap)
		}
	}
	if tv.Bound != types.NoTypeID && !ev.CanAssignType(tv.Bound, src, nil) {
		return false
	}
	if len(tv.Constraints) > 0 {
		matched := false
		for _, c := range tv.Constraints {
			if ev.CanAssignType(c, src, nil) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if varMap != nil {
		varMap.Set(dst, src)
	}
	return true
}

// SpecializeType applies a TypeVarMap substitution to t: a bare TypeVar
// resolves to its binding, a Class resolves recursively over its
// TypeArgs, an Object over its class, a Function over parameter/return
// types, a Union over its members; everything else is returned unchanged.
func (ev *Evaluator) SpecializeType(t types.TypeID, varMap *TypeVarMap) types.TypeID {
	if varMap == nil {
		return t
	}
	switch ev.Interner.Kind(t) {
	case types.KindTypeVar:
		if bound, ok := varMap.Get(t); ok {
			return bound
		}
		return t
	case types.KindUnion:
		members, _ := ev.Interner.UnionMembers(t)
		out := make([]types.TypeID, len(members))
		for i, m := range members {
			out[i] = ev.SpecializeType(m, varMap)
		}
		return ev.CombineTypes(out)
	case types.KindClass:
		info, _ := ev.Interner.Class(t)
		if info == nil || len(info.TypeArgs) == 0 {
			return t
		}
		args := make([]types.TypeID, len(info.TypeArgs))
		changed := false
		for i, a := range info.TypeArgs {
			args[i] = ev.SpecializeType(a, varMap)
			changed = changed || args[i] != a
		}
		if !changed {
			return t
		}
		specialized, ok := ev.Interner.CloneForSpecialization(t, args)
		if !ok {
			return t
		}
		return specialized
	case types.KindObject:
		obj, _ := ev.Interner.Object(t)
		if obj == nil {
			return t
		}
		cls := ev.SpecializeType(obj.ClassType, varMap)
		if cls == obj.ClassType {
			return t
		}
		return ev.Interner.RegisterObject(types.ObjectInfo{ClassType: cls, Truthy: obj.Truthy})
	case types.KindFunction:
		fi, _ := ev.Interner.Function(t)
		if fi == nil {
			return t
		}
		clone := *fi
		clone.Parameters = make([]types.Param, len(fi.Parameters))
		for i, p := range fi.Parameters {
			p.Type = ev.SpecializeType(p.Type, varMap)
			clone.Parameters[i] = p
		}
		clone.DeclaredReturnType = ev.SpecializeType(fi.DeclaredReturnType, varMap)
		clone.InferredReturnType = ev.SpecializeType(fi.InferredReturnType, varMap)
		return ev.Interner.RegisterFunction(clone)
	default:
		return t
	}
}

// BindFunctionToClassOrObject drops the receiver parameter of an instance
// or class method when called as a bound method; static methods and
// plain functions are returned unchanged (§4.1).
func (ev *Evaluator) BindFunctionToClassOrObject(base types.TypeID, fn types.TypeID) types.TypeID {
	fi, ok := ev.Interner.Function(fn)
	if !ok || len(fi.Parameters) == 0 {
		return fn
	}
	if fi.Flags.Has(types.FunctionStaticMethod) {
		return fn
	}
	baseIsObject := ev.Interner.Kind(base) == types.KindObject
	baseIsClass := ev.Interner.Kind(base) == types.KindClass
	isClassMethod := fi.Flags.Has(types.FunctionClassMethod)

	bindable := (baseIsObject && !isClassMethod) || (baseIsClass && isClassMethod)
	if !bindable {
		return fn
	}
	bound := *fi
	bound.Parameters = fi.Parameters[1:]
	return ev.Interner.RegisterFunction(bound)
}

// LookUpClassMember performs an MRO walk (depth-first over BaseClasses
// marked IncludeInMro), returning the first match and its owning class.
// Alias classes are followed first (§4.1).
func (ev *Evaluator) LookUpClassMember(cls types.TypeID, name string, includeInstance, includeBases bool, flags MemberFlags) (*types.Symbol, types.TypeID, bool) {
	info, ok := ev.Interner.Class(cls)
	if !ok {
		return nil, types.NoTypeID, false
	}
	if info.AliasClass != types.NoTypeID {
		return ev.LookUpClassMember(info.AliasClass, name, includeInstance, includeBases, flags)
	}
	if includeInstance {
		if sym, ok := info.InstanceFields[name]; ok {
			return sym, cls, true
		}
	}
	if sym, ok := info.ClassFields[name]; ok {
		return sym, cls, true
	}
	if !includeBases {
		return nil, types.NoTypeID, false
	}
	for _, base := range info.BaseClasses {
		if !base.IncludeInMro {
			continue
		}
		if flags.Has(SkipObjectBaseClass) && ev.isObjectRootClass(base.Class) {
			continue
		}
		if sym, owner, ok := ev.LookUpClassMember(base.Class, name, includeInstance, includeBases, flags); ok {
			return sym, owner, true
		}
	}
	return nil, types.NoTypeID, false
}

// isObjectRootClass reports whether cls is the builtin `object` root (no
// further bases of its own), the class SkipObjectBaseClass excludes from
// the MRO walk.
func (ev *Evaluator) isObjectRootClass(cls types.TypeID) bool {
	info, ok := ev.Interner.Class(cls)
	return ok && info.Name == "object" && len(info.BaseClasses) == 0
}
