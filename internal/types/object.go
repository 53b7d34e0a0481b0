package types

// ObjectInfo is the side-table payload for KindObject: an instance of a
// class, optionally tagged with a statically-known truth value so literal
// bool narrowing (§4.4 "Literal constants") has somewhere to live.
type ObjectInfo struct {
	ClassType TypeID
	Truthy    Truthy
}

// RegisterObject allocates a fresh Object type wrapping a class.
func (in *Interner) RegisterObject(info ObjectInfo) TypeID {
	payload := slot(len(in.objects))
	in.objects = append(in.objects, info)
	return in.allocate(Type{Kind: KindObject, Payload: payload})
}

// Object returns the ObjectInfo for an Object TypeID.
func (in *Interner) Object(id TypeID) (*ObjectInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindObject || int(tt.Payload) >= len(in.objects) {
		return nil, false
	}
	return &in.objects[tt.Payload], true
}

// WithTruthy returns an Object TypeID identical to id but carrying the
// given Truthy tag, used when narrowing produces `x is True`-style facts.
func (in *Interner) WithTruthy(id TypeID, truthy Truthy) TypeID {
	info, ok := in.Object(id)
	if !ok {
		return id
	}
	return in.RegisterObject(ObjectInfo{ClassType: info.ClassType, Truthy: truthy})
}
