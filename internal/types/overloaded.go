package types

// RegisterOverloaded allocates a fresh OverloadedFunction type wrapping an
// ordered list of Function TypeIDs. Order matters: the call matcher tries
// overloads in declaration order and commits to the first match (§4.2).
func (in *Interner) RegisterOverloaded(overloads []TypeID) TypeID {
	payload := slot(len(in.overloaded))
	in.overloaded = append(in.overloaded, overloads)
	return in.allocate(Type{Kind: KindOverloadedFunction, Payload: payload})
}

// Overloaded returns the member Function TypeIDs of an OverloadedFunction.
func (in *Interner) Overloaded(id TypeID) ([]TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindOverloadedFunction || int(tt.Payload) >= len(in.overloaded) {
		return nil, false
	}
	return in.overloaded[tt.Payload], true
}
