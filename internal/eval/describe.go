package eval

import "gradualtype/internal/types"

// describeType renders a short human-readable name for a type, used only
// in diagnostic messages; it never panics on an unresolvable TypeID.
func (ev *Evaluator) describeType(t types.TypeID) string {
	switch ev.Interner.Kind(t) {
	case types.KindUnknown:
		return "Unknown"
	case types.KindAny:
		return "Any"
	case types.KindNone:
		return "None"
	case types.KindNever:
		return "Never"
	case types.KindClass:
		if info, ok := ev.Interner.Class(t); ok {
			return info.Name
		}
		return "type"
	case types.KindObject:
		if obj, ok := ev.Interner.Object(t); ok {
			return ev.describeType(obj.ClassType)
		}
		return "object"
	case types.KindFunction:
		return "function"
	case types.KindOverloadedFunction:
		return "overloaded function"
	case types.KindModule:
		return "module"
	case types.KindUnion:
		members, _ := ev.Interner.UnionMembers(t)
		if len(members) == 0 {
			return "Union"
		}
		s := ev.describeType(members[0])
		for _, m := range members[1:] {
			s += " | " + ev.describeType(m)
		}
		return s
	case types.KindTypeVar:
		if tv, ok := ev.Interner.TypeVar(t); ok {
			return tv.Name
		}
		return "TypeVar"
	case types.KindProperty:
		return "property"
	default:
		return "?"
	}
}
