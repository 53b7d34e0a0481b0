// Package eval implements the expression type evaluator: recursive
// dispatch over expression nodes (C5), member access (C3), call matching
// (C4), generic synthesis (C6), and the type utilities (C2) all of those
// lean on. An Evaluator is parameterized by a scope, a configuration, a
// diagnostic sink, and cache callbacks (§5) — it owns no other state and
// is not safe to share across threads: one Evaluator per scope under
// analysis.
package eval

import (
	"gradualtype/internal/ast"
	"gradualtype/internal/config"
	"gradualtype/internal/diag"
	"gradualtype/internal/scope"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

// Usage classifies how a member or name is being accessed (§4.2).
type Usage uint8

const (
	UsageGet Usage = iota
	UsageSet
	UsageDelete
)

// MemberFlags are the bit flags getMember and method lookup consult.
type MemberFlags uint8

const (
	SkipInstanceMembers MemberFlags = 1 << iota
	SkipGetAttributeCheck
	SkipGetCheck
	SkipObjectBaseClass
)

// SkipForMethodLookup is the flag combination used internally to find raw
// method definitions without invoking descriptors or attribute fallbacks
// (§4.2).
const SkipForMethodLookup = SkipInstanceMembers | SkipGetAttributeCheck | SkipGetCheck

func (f MemberFlags) Has(flag MemberFlags) bool { return f&flag != 0 }

// Evaluator is the public entry point §6 names: getType and its siblings.
type Evaluator struct {
	Exprs    *ast.Exprs
	Strings  *source.Interner
	Interner *types.Interner
	Scope    scope.Scope
	Config   config.Config
	Sink     diag.Reporter

	// NarrowBuilder is the external narrowing builder (§6); nil disables
	// conditional narrowing entirely, which is a valid degraded mode.
	NarrowBuilder scope.ConstraintBuilder

	// Annotations exposes previously-computed types for nodes the
	// evaluator doesn't itself dispatch (§6 "Consumed from analyzer
	// annotations"); nil when unavailable.
	Annotations scope.AnnotatedExpressions

	ReadCache  func(ast.ExprID) (types.TypeID, bool)
	WriteCache func(ast.ExprID, types.TypeID)

	narrowing narrowStack
	silenced  bool

	// recursionGuard bounds dispatch depth (§5: "the only failure vector
	// not otherwise catchable").
	recursionGuard int
}

// MaxRecursionDepth is the dispatch-depth ceiling; exceeding it produces a
// diagnostic rather than a stack overflow.
const MaxRecursionDepth = 4000

// New constructs an Evaluator whose ReadCache/WriteCache pair is backed by
// a private per-Evaluator map, so repeated GetType calls on one node are
// memoized; callers may replace either callback afterwards.
func New(exprs *ast.Exprs, strings *source.Interner, interner *types.Interner, sc scope.Scope, cfg config.Config, sink diag.Reporter) *Evaluator {
	ev := &Evaluator{
		Exprs:    exprs,
		Strings:  strings,
		Interner: interner,
		Scope:    sc,
		Config:   cfg,
		Sink:     sink,
	}
	cached := map[ast.ExprID]types.TypeID{}
	ev.ReadCache = func(id ast.ExprID) (types.TypeID, bool) { t, ok := cached[id]; return t, ok }
	ev.WriteCache = func(id ast.ExprID, t types.TypeID) { cached[id] = t }
	return ev
}

// GetType is the public entry point (§2 "data flow"): consult the cache,
// dispatch on node kind, pipe the result through narrowing, write back.
func (ev *Evaluator) GetType(node ast.ExprID, usage Usage, flags MemberFlags) types.TypeID {
	if cached, ok := ev.readCache(node); ok {
		return cached
	}

	ev.recursionGuard++
	defer func() { ev.recursionGuard-- }()
	if ev.recursionGuard > MaxRecursionDepth {
		ev.report(diag.SemaInternal, diag.SevError, ev.spanOf(node), "expression nesting exceeds the recursion limit", nil)
		return ev.unknown()
	}

	t := ev.dispatch(node, usage, flags)
	t = ev.applyNarrowing(node, t)
	ev.writeCache(node, t)
	return t
}

func (ev *Evaluator) readCache(node ast.ExprID) (types.TypeID, bool) {
	if ev.ReadCache == nil {
		return types.NoTypeID, false
	}
	return ev.ReadCache(node)
}

func (ev *Evaluator) writeCache(node ast.ExprID, t types.TypeID) {
	if ev.WriteCache != nil {
		ev.WriteCache(node, t)
	}
}

func (ev *Evaluator) spanOf(node ast.ExprID) source.Span {
	if expr := ev.Exprs.Get(node); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

func (ev *Evaluator) unknown() types.TypeID { return ev.Interner.Builtins().Unknown }
func (ev *Evaluator) none() types.TypeID    { return ev.Interner.Builtins().None }
func (ev *Evaluator) never() types.TypeID   { return ev.Interner.Builtins().Never }
func (ev *Evaluator) any() types.TypeID     { return ev.Interner.Builtins().Any }

// report routes a diagnostic through the sink unless it has been
// silenced by an in-progress overload probe (§4.3, §5).
func (ev *Evaluator) report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if ev.silenced || ev.Sink == nil {
		return
	}
	ev.Sink.Report(code, sev, primary, msg, notes)
}

// withSilencedDiagnostics runs fn with the sink detached, restoring it on
// both normal and panicking return (§5 "silenced-diagnostic scope").
func (ev *Evaluator) withSilencedDiagnostics(fn func()) {
	prev := ev.silenced
	ev.silenced = true
	defer func() { ev.silenced = prev }()
	fn()
}

// builtin resolves a builtin class by name through the scope chain,
// falling back to Unknown (with no diagnostic — an evaluator-internal
// lookup failure here means the builtin scope wasn't wired up, not a
// user-facing type error).
func (ev *Evaluator) builtin(name string) types.TypeID {
	if id, ok := ev.Scope.GetBuiltInType(name); ok {
		return id
	}
	return ev.unknown()
}

func (ev *Evaluator) builtinObject(name string, typeArgs []types.TypeID) types.TypeID {
	if id, ok := ev.Scope.GetBuiltInObject(name, typeArgs); ok {
		return id
	}
	return ev.unknown()
}

// addDiagnostic is the configurable-diagnostic gateway (§6
// "Error-level mapping"): "none" suppresses, "warning"/"error" route to
// the matching severity.
func (ev *Evaluator) addDiagnostic(level config.Level, code diag.Code, primary source.Span, msg string) {
	switch level {
	case config.LevelError:
		ev.report(code, diag.SevError, primary, msg, nil)
	case config.LevelWarning:
		ev.report(code, diag.SevWarning, primary, msg, nil)
	case config.LevelNone:
		// suppressed
	}
}
