package eval

import (
	"gradualtype/internal/ast"
	"gradualtype/internal/scope"
	"gradualtype/internal/types"
)

// narrowFrame is one pushed set of constraints, scoped to a single
// subexpression evaluation (§4.6: "a stack of constraints is pushed
// before recursing into a branch ... and popped on return").
type narrowFrame struct {
	constraints []scope.Constraint
}

type narrowStack struct {
	frames []narrowFrame
}

func (s *narrowStack) push(constraints []scope.Constraint) {
	s.frames = append(s.frames, narrowFrame{constraints: constraints})
}

func (s *narrowStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *narrowStack) depth() int { return len(s.frames) }

// withConstraints pushes constraints, runs fn, and unconditionally pops —
// exception-safe via defer even if fn panics (§4.6, §9 "guarantee release
// on all exit paths including failure returns").
func (ev *Evaluator) withConstraints(constraints []scope.Constraint, fn func()) {
	ev.narrowing.push(constraints)
	defer ev.narrowing.pop()
	fn()
}

// applyNarrowing is the scope-chain narrowing pass (§4.6): constraints on
// the expression-local stack apply first (innermost first), then the
// enclosing Temporary scopes' constraints apply outer-first. The climb from
// the current scope stops at the first Permanent scope, or after a scope
// holding a constraint that blocks further application for this node; the
// parents of that scope are skipped.
func (ev *Evaluator) applyNarrowing(node ast.ExprID, t types.TypeID) types.TypeID {
	for i := len(ev.narrowing.frames) - 1; i >= 0; i-- {
		for _, c := range ev.narrowing.frames[i].constraints {
			t = c.ApplyToType(node, t)
			if c.BlockSubsequentConstraints(node) {
				return t
			}
		}
	}

	var chain []scope.Scope
	for sc := ev.Scope; sc != nil && sc.GetKind() == scope.Temporary; sc = sc.GetParent() {
		chain = append(chain, sc)
		blocked := false
		for _, c := range sc.GetTypeConstraints() {
			blocked = blocked || c.BlockSubsequentConstraints(node)
		}
		if blocked {
			break
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, c := range chain[i].GetTypeConstraints() {
			t = c.ApplyToType(node, t)
		}
	}
	return t
}

// narrowingFor delegates to the external narrowing builder (§6
// "Consumed from narrowing builder") to compute the then/else constraint
// sets for a conditional's test expression.
func (ev *Evaluator) narrowingFor(builder scope.ConstraintBuilder, test ast.ExprID) (ifC, elseC []scope.Constraint) {
	if builder == nil {
		return nil, nil
	}
	return builder.BuildTypeConstraintsForConditional(test, func(n ast.ExprID) types.TypeID {
		return ev.GetType(n, UsageGet, 0)
	})
}
