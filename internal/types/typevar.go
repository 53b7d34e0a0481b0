package types

// TypeVarInfo is the side-table payload for KindTypeVar.
type TypeVarInfo struct {
	Name        string
	Bound       TypeID
	Constraints []TypeID
	Variance    Variance
}

// RegisterTypeVar allocates a fresh TypeVar type.
func (in *Interner) RegisterTypeVar(info TypeVarInfo) TypeID {
	payload := slot(len(in.typeVars))
	in.typeVars = append(in.typeVars, info)
	return in.allocate(Type{Kind: KindTypeVar, Payload: payload})
}

// TypeVar returns the TypeVarInfo for a TypeVar TypeID.
func (in *Interner) TypeVar(id TypeID) (*TypeVarInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeVar || int(tt.Payload) >= len(in.typeVars) {
		return nil, false
	}
	return &in.typeVars[tt.Payload], true
}
