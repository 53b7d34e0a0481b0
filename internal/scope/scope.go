// Package scope defines the evaluator's view onto the external scope
// builder: lexical lookup, per-symbol type slots, and the narrowing
// constraints a conditional contributes to outer scopes. The evaluator
// never constructs a Scope itself — it is handed one by a caller that
// already ran name resolution.
package scope

import (
	"gradualtype/internal/ast"
	"gradualtype/internal/types"
)

// Kind classifies a scope the way narrowing needs to distinguish them:
// narrowing only climbs through Temporary scopes (conditional branches,
// comprehensions), never past a Permanent function/class/module boundary.
type Kind uint8

const (
	Permanent Kind = iota
	Temporary
)

// LookupResult is the pair a recursive symbol lookup resolves to.
type LookupResult struct {
	Symbol *types.Symbol
	Scope  Scope
}

// Scope is the lexical-scope interface the evaluator consumes. Concrete
// implementations live in the external scope builder; Fake (fake.go) is a
// minimal in-memory stand-in for tests.
type Scope interface {
	// LookUpSymbolRecursive walks this scope and its ancestors for name,
	// returning the first match.
	LookUpSymbolRecursive(name string) (LookupResult, bool)

	// GetParent returns the enclosing scope, or nil at the module root.
	GetParent() Scope

	// GetKind reports whether this is a Permanent (function/class/module)
	// or Temporary (conditional branch, comprehension) scope.
	GetKind() Kind

	// GetTypeConstraints returns the narrowing constraints attached
	// directly to this scope (not inherited from ancestors).
	GetTypeConstraints() []Constraint

	// GetBuiltInType resolves a builtin class by name (e.g. "int", "list").
	GetBuiltInType(name string) (types.TypeID, bool)

	// GetBuiltInObject resolves a builtin instance type by name, optionally
	// specialized with typeArgs (e.g. "list" -> list[int]).
	GetBuiltInObject(name string, typeArgs []types.TypeID) (types.TypeID, bool)
}

// Constraint is one fact a narrowing builder contributed about a name's
// type within a branch. applyToType rewrites the unnarrowed type; a
// constraint that reports blockSubsequentConstraints for a given node
// stops the climb through ancestor scopes for that node (§4.6).
type Constraint interface {
	ApplyToType(node ast.ExprID, t types.TypeID) types.TypeID
	BlockSubsequentConstraints(node ast.ExprID) bool
}

// ConstraintBuilder is the external narrowing builder's interface:
// given a conditional test expression and a way to evaluate it, produce
// the constraints that hold in the then/else branches.
type ConstraintBuilder interface {
	BuildTypeConstraintsForConditional(test ast.ExprID, eval func(ast.ExprID) types.TypeID) (ifConstraints, elseConstraints []Constraint)
}

// AnnotatedExpressions exposes previously-computed types for nodes the
// evaluator itself didn't evaluate (enclosing functions, earlier lambda
// passes) — §6 "Consumed from analyzer annotations".
type AnnotatedExpressions interface {
	GetExpressionType(node ast.ExprID) (types.TypeID, bool)
}
