package types

// RegisterUnion allocates a fresh Union type wrapping a flat slice of
// member TypeIDs. Flattening nested unions and deduping members is the
// evaluator's combineTypes concern (§4.1), not the interner's: by the time
// a caller reaches here the slice is already canonical.
func (in *Interner) RegisterUnion(members []TypeID) TypeID {
	payload := slot(len(in.unions))
	stored := make([]TypeID, len(members))
	copy(stored, members)
	in.unions = append(in.unions, stored)
	return in.allocate(Type{Kind: KindUnion, Payload: payload})
}

// UnionMembers returns the member TypeIDs of a Union TypeID.
func (in *Interner) UnionMembers(id TypeID) ([]TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion || int(tt.Payload) >= len(in.unions) {
		return nil, false
	}
	return in.unions[tt.Payload], true
}
