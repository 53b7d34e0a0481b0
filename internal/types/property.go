package types

// PropertyInfo is the side-table payload for KindProperty: the three
// accessor functions a @property/@x.setter/@x.deleter group contributes,
// any of which may be NoTypeID if that accessor was never defined.
type PropertyInfo struct {
	Getter  TypeID
	Setter  TypeID
	Deleter TypeID
}

// RegisterProperty allocates a fresh Property type.
func (in *Interner) RegisterProperty(info PropertyInfo) TypeID {
	payload := slot(len(in.properties))
	in.properties = append(in.properties, info)
	return in.allocate(Type{Kind: KindProperty, Payload: payload})
}

// Property returns the PropertyInfo for a Property TypeID.
func (in *Interner) Property(id TypeID) (*PropertyInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindProperty || int(tt.Payload) >= len(in.properties) {
		return nil, false
	}
	return &in.properties[tt.Payload], true
}
