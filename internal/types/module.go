package types

// ModuleInfo is the side-table payload for KindModule: the namespace a
// `import foo` binding resolves member access against.
type ModuleInfo struct {
	Name   string
	Fields map[string]*Symbol
}

// RegisterModule allocates a fresh Module type.
func (in *Interner) RegisterModule(info ModuleInfo) TypeID {
	payload := slot(len(in.modules))
	in.modules = append(in.modules, info)
	return in.allocate(Type{Kind: KindModule, Payload: payload})
}

// Module returns the ModuleInfo for a Module TypeID.
func (in *Interner) Module(id TypeID) (*ModuleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindModule || int(tt.Payload) >= len(in.modules) {
		return nil, false
	}
	return &in.modules[tt.Payload], true
}
