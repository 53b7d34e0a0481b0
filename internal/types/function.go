package types

// ParamCategory classifies a function parameter the same three ways
// internal/ast.ArgCategory classifies a call argument, but is defined
// independently so internal/types never has to import internal/ast.
type ParamCategory uint8

const (
	ParamSimple ParamCategory = iota
	ParamVarArgList
	ParamVarArgDict
)

// FunctionFlags are boolean properties of a function declaration.
type FunctionFlags uint16

const (
	FunctionAsync FunctionFlags = 1 << iota
	FunctionGenerator
	FunctionStaticMethod
	FunctionClassMethod
	FunctionAbstract
	FunctionProperty
	FunctionBuiltin
)

func (f FunctionFlags) Has(flag FunctionFlags) bool { return f&flag != 0 }

// Param is one formal parameter of a FunctionInfo.
type Param struct {
	Category    ParamCategory
	Name        string
	HasDefault  bool
	DefaultType TypeID
	Type        TypeID
}

// FunctionInfo is the side-table payload for KindFunction. BuiltInName
// identifies a stub-implemented builtin (e.g. "isinstance") so the call
// matcher can special-case it instead of running ordinary parameter
// matching (§9 "Stubs").
type FunctionInfo struct {
	Flags              FunctionFlags
	Parameters         []Param
	DeclaredReturnType TypeID
	InferredReturnType TypeID
	BuiltInName        string
}

// RegisterFunction allocates a fresh Function type.
func (in *Interner) RegisterFunction(info FunctionInfo) TypeID {
	payload := slot(len(in.functions))
	in.functions = append(in.functions, info)
	return in.allocate(Type{Kind: KindFunction, Payload: payload})
}

// Function returns the FunctionInfo for a Function TypeID.
func (in *Interner) Function(id TypeID) (*FunctionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunction || int(tt.Payload) >= len(in.functions) {
		return nil, false
	}
	return &in.functions[tt.Payload], true
}

// ReturnType resolves the return type the call matcher should report: the
// declared annotation when present, else whatever was inferred from the
// function body.
func (fi *FunctionInfo) ReturnType() TypeID {
	if fi.DeclaredReturnType != NoTypeID {
		return fi.DeclaredReturnType
	}
	return fi.InferredReturnType
}
