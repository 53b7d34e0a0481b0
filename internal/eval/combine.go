package eval

import "gradualtype/internal/types"

// CombineTypes returns Never for empty input, the single type for a
// singleton, else a Union whose subtypes are flattened (no nested unions)
// and deduplicated under structural identity (§3, §4.1).
func (ev *Evaluator) CombineTypes(ts []types.TypeID) types.TypeID {
	flat := ev.flatten(ts)
	deduped := ev.dedupe(flat)
	switch len(deduped) {
	case 0:
		return ev.never()
	case 1:
		return deduped[0]
	default:
		return ev.Interner.RegisterUnion(deduped)
	}
}

func (ev *Evaluator) flatten(ts []types.TypeID) []types.TypeID {
	var out []types.TypeID
	for _, t := range ts {
		if members, ok := ev.Interner.UnionMembers(t); ok {
			out = append(out, ev.flatten(members)...)
			continue
		}
		out = append(out, t)
	}
	return out
}

func (ev *Evaluator) dedupe(ts []types.TypeID) []types.TypeID {
	var out []types.TypeID
	for _, t := range ts {
		dup := false
		for _, seen := range out {
			if ev.sameStructuralIdentity(t, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

// sameStructuralIdentity is the dedup relation combineTypes canonicalizes
// under: same variant, and for Class/TypeVar same identity (§3 "same
// variant and generic class identity; TypeVars by identity; classes by
// identity + specialization args").
func (ev *Evaluator) sameStructuralIdentity(a, b types.TypeID) bool {
	if a == b {
		return true
	}
	ta, aok := ev.Interner.Lookup(a)
	tb, bok := ev.Interner.Lookup(b)
	if !aok || !bok || ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case types.KindUnknown, types.KindNone, types.KindNever:
		return true
	case types.KindAny:
		return ev.Interner.IsEllipsis(a) == ev.Interner.IsEllipsis(b)
	case types.KindClass:
		if !ev.Interner.IsSameGenericClass(a, b) {
			return false
		}
		ca, _ := ev.Interner.Class(a)
		cb, _ := ev.Interner.Class(b)
		return sameTypeArgs(ca.TypeArgs, cb.TypeArgs, ev)
	case types.KindObject:
		oa, _ := ev.Interner.Object(a)
		ob, _ := ev.Interner.Object(b)
		return ev.sameStructuralIdentity(oa.ClassType, ob.ClassType)
	case types.KindTypeVar:
		return false // TypeVars dedupe by identity only, and a != b already failed.
	default:
		return false
	}
}

func sameTypeArgs(a, b []types.TypeID, ev *Evaluator) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ev.sameStructuralIdentity(a[i], b[i]) {
			return false
		}
	}
	return true
}

// DoForSubtypes applies f to each subtype of a Union and recombines,
// or to t directly if it isn't a Union. It is the only sanctioned
// distributor over unions (§4.1).
func (ev *Evaluator) DoForSubtypes(t types.TypeID, f func(types.TypeID) types.TypeID) types.TypeID {
	members, ok := ev.Interner.UnionMembers(t)
	if !ok {
		return f(t)
	}
	results := make([]types.TypeID, len(members))
	for i, m := range members {
		results[i] = f(m)
	}
	return ev.CombineTypes(results)
}

// RemoveTruthinessFromType strips a TruthyTrue-only Object down to
// Never (it can never be the falsy short-circuit result) and leaves
// everything else unchanged, used by `and`'s narrowing of its left
// operand (§4.4).
func (ev *Evaluator) RemoveTruthinessFromType(t types.TypeID) types.TypeID {
	if obj, ok := ev.Interner.Object(t); ok && obj.Truthy == types.TruthyTrue {
		return ev.never()
	}
	return t
}

// RemoveFalsinessFromType is the `or` counterpart: strips a
// TruthyFalse-only Object down to Never.
func (ev *Evaluator) RemoveFalsinessFromType(t types.TypeID) types.TypeID {
	if obj, ok := ev.Interner.Object(t); ok && obj.Truthy == types.TruthyFalse {
		return ev.never()
	}
	return t
}
