package eval

import "gradualtype/internal/types"

// symbolType resolves the effective type of a symbol the way §4.4's Name
// rule does: declaredType if any; else currentType if the symbol isn't a
// plain variable; else inferredType. Member resolution reuses the exact
// same rule when it binds a resolved field.
func symbolType(sym *types.Symbol) types.TypeID {
	if sym == nil {
		return types.NoTypeID
	}
	if declared, ok := sym.DeclaredType(); ok {
		return declared
	}
	if !sym.IsVariable() {
		return sym.CurrentType
	}
	return sym.InferredType
}
