package eval

import (
	"testing"

	"gradualtype/internal/ast"
	"gradualtype/internal/diag"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

func TestValidateCallAcceptsMatchingPositionalArgs(t *testing.T) {
	env := newTestEnv()
	fn := env.interner.RegisterFunction(types.FunctionInfo{
		Parameters: []types.Param{
			{Category: types.ParamSimple, Name: "n", Type: env.objects["int"]},
		},
		DeclaredReturnType: env.objects["str"],
	})
	args := []Argument{{Category: ast.CategorySimple, Type: env.objects["int"], Span: source.Span{}}}

	got := env.ev.ValidateCall(0, args, fn, nil)
	if got != env.objects["str"] {
		t.Fatalf("expected str return type, got %v", got)
	}
	if env.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for a matching call, got %d", env.bag.Len())
	}
}

func TestValidateCallReportsMissingRequiredArgument(t *testing.T) {
	env := newTestEnv()
	fn := env.interner.RegisterFunction(types.FunctionInfo{
		Parameters: []types.Param{
			{Category: types.ParamSimple, Name: "n", Type: env.objects["int"]},
		},
		DeclaredReturnType: env.objects["str"],
	})

	got := env.ev.ValidateCall(0, nil, fn, nil)
	if got != env.ev.unknown() {
		t.Fatalf("expected Unknown on a failed match, got %v", got)
	}
	if env.bag.Len() != 1 || env.bag.Items()[0].Code != diag.SemaArgumentMissing {
		t.Fatalf("expected a single SemaArgumentMissing diagnostic, got %+v", env.bag.Items())
	}
}

func TestValidateCallReportsArgumentTypeMismatch(t *testing.T) {
	env := newTestEnv()
	fn := env.interner.RegisterFunction(types.FunctionInfo{
		Parameters: []types.Param{
			{Category: types.ParamSimple, Name: "n", Type: env.objects["int"]},
		},
		DeclaredReturnType: env.objects["str"],
	})
	args := []Argument{{Category: ast.CategorySimple, Type: env.objects["str"], Span: source.Span{}}}

	got := env.ev.ValidateCall(0, args, fn, nil)
	if got != env.ev.unknown() {
		t.Fatalf("expected Unknown on a type mismatch, got %v", got)
	}
	if env.bag.Len() != 1 || env.bag.Items()[0].Code != diag.SemaArgumentTypeMismatch {
		t.Fatalf("expected a single SemaArgumentTypeMismatch diagnostic, got %+v", env.bag.Items())
	}
}

func TestValidateCallBareStarRejectsExtraPositionalArgs(t *testing.T) {
	env := newTestEnv()
	// def f(a, *, b=...): the bare `*` only marks `b` keyword-only; it is
	// not itself a *args collector and must not swallow a second
	// positional argument.
	fn := env.interner.RegisterFunction(types.FunctionInfo{
		Parameters: []types.Param{
			{Category: types.ParamSimple, Name: "a", Type: env.objects["int"]},
			{Category: types.ParamVarArgList, Name: "", Type: types.NoTypeID},
		},
		DeclaredReturnType: env.objects["str"],
	})
	args := []Argument{
		{Category: ast.CategorySimple, Type: env.objects["int"], Span: source.Span{}},
		{Category: ast.CategorySimple, Type: env.objects["int"], Span: source.Span{}},
	}

	got := env.ev.ValidateCall(0, args, fn, nil)
	if got != env.ev.unknown() {
		t.Fatalf("expected Unknown when a second positional arg hits the bare separator, got %v", got)
	}
	if env.bag.Len() != 1 || env.bag.Items()[0].Code != diag.SemaTooManyPositional {
		t.Fatalf("expected a single SemaTooManyPositional diagnostic, got %+v", env.bag.Items())
	}
}

func TestValidateCallOnNonCallableReportsNotCallable(t *testing.T) {
	env := newTestEnv()
	got := env.ev.ValidateCall(0, nil, env.objects["int"], nil)
	if got != env.ev.unknown() {
		t.Fatalf("expected Unknown calling a plain int, got %v", got)
	}
	if env.bag.Len() != 1 || env.bag.Items()[0].Code != diag.SemaNotCallable {
		t.Fatalf("expected a single SemaNotCallable diagnostic, got %+v", env.bag.Items())
	}
}
