package eval

import (
	"gradualtype/internal/ast"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

// Argument is the evaluator's resolved view of one call argument (§3
// FunctionArgument): the call site's AST shape plus the type its value
// expression evaluated to.
type Argument struct {
	Category ast.ArgCategory
	Name     string // "" unless this is a keyword argument
	Type     types.TypeID
	Span     source.Span
	Value    ast.ExprID
}

// resolveArguments evaluates every argument's value expression, turning
// the raw ast.CallData into the Argument list the call matcher consumes.
func (ev *Evaluator) resolveArguments(args []ast.CallArg) []Argument {
	out := make([]Argument, len(args))
	for i, a := range args {
		out[i] = Argument{
			Category: a.Category,
			Name:     ev.lookupString(a.Name),
			Type:     ev.GetType(a.Value, UsageGet, 0),
			Span:     ev.spanOf(a.Value),
			Value:    a.Value,
		}
	}
	return out
}

func (ev *Evaluator) lookupString(id source.StringID) string {
	if id == source.NoStringID || ev.Strings == nil {
		return ""
	}
	s, _ := ev.Strings.Lookup(id)
	return s
}

func toParamCategory(c ast.ArgCategory) types.ParamCategory {
	switch c {
	case ast.CategoryVarArgList:
		return types.ParamVarArgList
	case ast.CategoryVarArgDict:
		return types.ParamVarArgDict
	default:
		return types.ParamSimple
	}
}
