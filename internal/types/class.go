package types

// ClassFlags are boolean properties of a class declaration that change how
// the evaluator resolves members and matches calls against it.
type ClassFlags uint16

const (
	ClassFinal ClassFlags = 1 << iota
	ClassAbstract
	ClassProtocol
	ClassTypedDict
	ClassNamedTuple
	ClassGeneric
	ClassBuiltin
)

func (f ClassFlags) Has(flag ClassFlags) bool { return f&flag != 0 }

// BaseClassRef is one entry of a class's base list. IncludeInMro is false
// for bases written only to satisfy a Protocol check, which Python omits
// from the runtime MRO (§3 "Class").
type BaseClassRef struct {
	Class        TypeID
	IncludeInMro bool
}

// ClassInfo is the side-table payload for KindClass. SourceID identifies
// the syntactic class statement a specialization was produced from, so
// List[int] and List[str] share a SourceID but never a TypeID.
type ClassInfo struct {
	Name           string
	Flags          ClassFlags
	TypeParams     []TypeID
	TypeArgs       []TypeID
	BaseClasses    []BaseClassRef
	ClassFields    map[string]*Symbol
	InstanceFields map[string]*Symbol
	AliasClass     TypeID
	SourceID       uint32
}

// RegisterClass allocates a fresh Class type. Every call produces a new
// TypeID even for identical field values, matching the identity semantics
// class declarations have at runtime.
func (in *Interner) RegisterClass(info ClassInfo) TypeID {
	if info.SourceID == 0 {
		info.SourceID = in.newSourceID()
	}
	payload := slot(len(in.classes))
	in.classes = append(in.classes, info)
	return in.allocate(Type{Kind: KindClass, Payload: payload})
}

// Class returns the ClassInfo for a Class TypeID.
func (in *Interner) Class(id TypeID) (*ClassInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass || int(tt.Payload) >= len(in.classes) {
		return nil, false
	}
	return &in.classes[tt.Payload], true
}

// SetClassFields replaces the class-level and instance-level field maps of
// an already-registered class, used once member collection for a class
// body completes.
func (in *Interner) SetClassFields(id TypeID, classFields, instanceFields map[string]*Symbol) bool {
	info, ok := in.Class(id)
	if !ok {
		return false
	}
	info.ClassFields = classFields
	info.InstanceFields = instanceFields
	return true
}

// CloneForSpecialization copies a generic class's ClassInfo under a fresh
// TypeID with TypeArgs replaced, the shape List[T] takes when instantiated
// as List[int] (§3 "Class", §4.1 generic narrowing).
func (in *Interner) CloneForSpecialization(id TypeID, typeArgs []TypeID) (TypeID, bool) {
	info, ok := in.Class(id)
	if !ok {
		return NoTypeID, false
	}
	clone := *info
	clone.TypeArgs = typeArgs
	payload := slot(len(in.classes))
	in.classes = append(in.classes, clone)
	return in.allocate(Type{Kind: KindClass, Payload: payload}), true
}

// IsSameGenericClass reports whether two Class TypeIDs were produced from
// the same class statement, ignoring any specialization of their TypeArgs.
func (in *Interner) IsSameGenericClass(a, b TypeID) bool {
	ai, ok := in.Class(a)
	if !ok {
		return false
	}
	bi, ok := in.Class(b)
	if !ok {
		return false
	}
	return ai.SourceID == bi.SourceID
}
