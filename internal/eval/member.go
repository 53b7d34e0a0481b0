package eval

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"gradualtype/internal/diag"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

// dunderGetAttribute/dunderGetAttr/dunderSetAttr are the attribute-protocol
// fallbacks tried when ordinary lookup fails and SkipGetAttributeCheck
// isn't set (§4.2). dunderDelAttr is tried in the order §9 calls out:
// the typo'd legacy name first for source fidelity, then the correct one.
const (
	dunderGetAttribute  = "__getattribute__"
	dunderGetAttr       = "__getattr__"
	dunderSetAttr       = "__setattr__"
	dunderDelAttrLegacy = "__detattr__" // §9: retained typo, tried first
	dunderDelAttr       = "__delattr__"
)

// GetMember resolves base.name (or Cls.name) per §4.2. name is normalized
// under NFKC first, matching how Python identifiers compare: differently
// composed Unicode spellings of the same attribute name must resolve to
// the same member.
func (ev *Evaluator) GetMember(base types.TypeID, name string, usage Usage, span source.Span, flags MemberFlags) types.TypeID {
	name = norm.NFKC.String(name)
	switch ev.Interner.Kind(base) {
	case types.KindUnknown, types.KindAny:
		return base
	case types.KindClass:
		return ev.getMemberFromClass(base, name, usage, span, flags)
	case types.KindObject:
		return ev.getMemberFromObject(base, name, usage, span, flags)
	case types.KindModule:
		return ev.getMemberFromModule(base, name, usage, span)
	case types.KindUnion:
		return ev.getMemberFromUnion(base, name, usage, span, flags)
	case types.KindProperty:
		return ev.getMemberFromProperty(base, usage)
	case types.KindNone:
		return ev.failMember(base, name, usage, span)
	default:
		return ev.failMember(base, name, usage, span)
	}
}

func (ev *Evaluator) getMemberFromClass(base types.TypeID, name string, usage Usage, span source.Span, flags MemberFlags) types.TypeID {
	lookupFlags := flags | SkipInstanceMembers
	sym, _, ok := ev.LookUpClassMember(base, name, !lookupFlags.Has(SkipInstanceMembers), true, lookupFlags)
	if ok {
		resolved := ev.resolveDescriptorAndBind(base, sym, usage)
		return resolved
	}
	return ev.attributeFallback(base, name, usage, span, flags)
}

func (ev *Evaluator) getMemberFromObject(base types.TypeID, name string, usage Usage, span source.Span, flags MemberFlags) types.TypeID {
	obj, ok := ev.Interner.Object(base)
	if !ok {
		return ev.failMember(base, name, usage, span)
	}
	includeInstance := !flags.Has(SkipInstanceMembers)
	sym, _, ok := ev.LookUpClassMember(obj.ClassType, name, includeInstance, true, flags)
	if ok {
		return ev.resolveDescriptorAndBind(base, sym, usage)
	}
	return ev.attributeFallback(base, name, usage, span, flags)
}

func (ev *Evaluator) getMemberFromModule(base types.TypeID, name string, usage Usage, span source.Span) types.TypeID {
	mod, ok := ev.Interner.Module(base)
	if !ok {
		return ev.failMember(base, name, usage, span)
	}
	if sym, ok := mod.Fields[name]; ok {
		return symbolType(sym)
	}
	return ev.failMember(base, name, usage, span)
}

func (ev *Evaluator) getMemberFromUnion(base types.TypeID, name string, usage Usage, span source.Span, flags MemberFlags) types.TypeID {
	members, _ := ev.Interner.UnionMembers(base)
	results := make([]types.TypeID, 0, len(members))
	reportedOptional := false
	for _, m := range members {
		if ev.Interner.Kind(m) == types.KindNone {
			if !reportedOptional {
				ev.addDiagnostic(ev.Config.ReportOptionalMemberAccess, diag.SemaOptionalMemberAccess, span,
					fmt.Sprintf("'%s' is not a known member of 'None'", name))
				reportedOptional = true
			}
			continue
		}
		results = append(results, ev.GetMember(m, name, usage, span, flags))
	}
	return ev.CombineTypes(results)
}

func (ev *Evaluator) getMemberFromProperty(base types.TypeID, usage Usage) types.TypeID {
	prop, ok := ev.Interner.Property(base)
	if !ok {
		return ev.unknown()
	}
	switch usage {
	case UsageGet:
		if prop.Getter == types.NoTypeID {
			return ev.unknown()
		}
		fi, ok := ev.Interner.Function(prop.Getter)
		if !ok {
			return ev.unknown()
		}
		return fi.ReturnType()
	case UsageSet:
		if prop.Setter != types.NoTypeID {
			return ev.any()
		}
		return ev.unknown()
	case UsageDelete:
		if prop.Deleter != types.NoTypeID {
			return ev.any()
		}
		return ev.unknown()
	}
	return ev.unknown()
}

// resolveDescriptorAndBind applies the descriptor protocol, then binds
// the remaining Function to base (§4.2).
func (ev *Evaluator) resolveDescriptorAndBind(base types.TypeID, sym *types.Symbol, usage Usage) types.TypeID {
	t := symbolType(sym)
	if descriptorResult, ok := ev.applyDescriptorProtocol(t, usage); ok {
		return descriptorResult
	}
	if ev.Interner.Kind(t) == types.KindFunction {
		return ev.BindFunctionToClassOrObject(base, t)
	}
	return t
}

// applyDescriptorProtocol handles the GLOSSARY's Descriptor: any Object
// whose class defines __get__/__set__/__del__ substitutes that method's
// result for plain field access (§4.2).
func (ev *Evaluator) applyDescriptorProtocol(t types.TypeID, usage Usage) (types.TypeID, bool) {
	obj, ok := ev.Interner.Object(t)
	if !ok {
		return types.NoTypeID, false
	}
	var dunder string
	switch usage {
	case UsageGet:
		dunder = "__get__"
	case UsageSet:
		dunder = "__set__"
	case UsageDelete:
		dunder = "__del__"
	}
	sym, _, ok := ev.LookUpClassMember(obj.ClassType, dunder, false, true, SkipForMethodLookup)
	if !ok {
		return types.NoTypeID, false
	}
	fn := symbolType(sym)
	if usage != UsageGet {
		return ev.any(), true
	}
	fi, ok := ev.Interner.Function(fn)
	if !ok {
		return types.NoTypeID, false
	}
	return fi.ReturnType(), true
}

// attributeFallback tries __getattribute__/__getattr__ (Get),
// __setattr__ (Set), or the delattr pair (Delete) in the order §9
// specifies, then reports failure.
func (ev *Evaluator) attributeFallback(base types.TypeID, name string, usage Usage, span source.Span, flags MemberFlags) types.TypeID {
	if flags.Has(SkipGetAttributeCheck) {
		return ev.failMember(base, name, usage, span)
	}
	classOf := base
	if obj, ok := ev.Interner.Object(base); ok {
		classOf = obj.ClassType
	}

	var names []string
	switch usage {
	case UsageGet:
		names = []string{dunderGetAttribute, dunderGetAttr}
	case UsageSet:
		names = []string{dunderSetAttr}
	case UsageDelete:
		names = []string{dunderDelAttrLegacy, dunderDelAttr}
	}

	for _, dunder := range names {
		sym, _, ok := ev.LookUpClassMember(classOf, dunder, false, true, SkipForMethodLookup)
		if !ok {
			continue
		}
		fi, ok := ev.Interner.Function(symbolType(sym))
		if !ok {
			continue
		}
		return fi.ReturnType()
	}
	return ev.failMember(base, name, usage, span)
}

func (ev *Evaluator) failMember(base types.TypeID, name string, usage Usage, span source.Span) types.TypeID {
	verb := "access"
	code := diag.SemaNoSuchMember
	switch usage {
	case UsageSet:
		verb = "set"
		code = diag.SemaCannotSetMember
	case UsageDelete:
		verb = "delete"
		code = diag.SemaCannotDeleteMember
	}
	ev.report(code, diag.SevError, span,
		fmt.Sprintf("Cannot %s member '%s' for type '%s'", verb, name, ev.describeType(base)), nil)
	return ev.unknown()
}
