package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores the TypeIDs of the singleton terminal types: every
// Interner has exactly one Unknown, one None, one Never, and the two Any
// variants (plain and the ellipsis-flagged form Callable[..., T] needs).
type Builtins struct {
	Unknown     TypeID
	Any         TypeID
	AnyEllipsis TypeID
	None        TypeID
	Never       TypeID
}

// Interner owns every Type value ever produced during an evaluation run
// plus the side tables compound kinds (Class, Function, ...) index into by
// Payload. Terminal kinds are deduplicated to one TypeID each; compound
// kinds always allocate a fresh TypeID, since two structurally identical
// classes are still distinct identities once registered (§3 "Lifecycle").
type Interner struct {
	types    []Type
	builtins Builtins

	classes    []ClassInfo
	objects    []ObjectInfo
	functions  []FunctionInfo
	overloaded [][]TypeID
	modules    []ModuleInfo
	unions     [][]TypeID
	typeVars   []TypeVarInfo
	properties []PropertyInfo

	nextSourceID uint32
}

// NewInterner constructs an interner seeded with the terminal singletons.
func NewInterner() *Interner {
	in := &Interner{}
	// Slot 0 of every side table is reserved so a zero Payload never
	// aliases a real entry.
	in.classes = append(in.classes, ClassInfo{})
	in.objects = append(in.objects, ObjectInfo{})
	in.functions = append(in.functions, FunctionInfo{})
	in.overloaded = append(in.overloaded, nil)
	in.modules = append(in.modules, ModuleInfo{})
	in.unions = append(in.unions, nil)
	in.typeVars = append(in.typeVars, TypeVarInfo{})
	in.properties = append(in.properties, PropertyInfo{})

	in.types = append(in.types, Type{Kind: KindInvalid})
	in.builtins.Unknown = in.allocate(Type{Kind: KindUnknown})
	in.builtins.Any = in.allocate(Type{Kind: KindAny})
	in.builtins.AnyEllipsis = in.allocate(Type{Kind: KindAny, Payload: 1})
	in.builtins.None = in.allocate(Type{Kind: KindNone})
	in.builtins.Never = in.allocate(Type{Kind: KindNever})
	return in
}

// Builtins returns the terminal singleton TypeIDs.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// IsEllipsis reports whether an Any TypeID is the ellipsis-flagged variant.
func (in *Interner) IsEllipsis(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindAny && tt.Payload == 1
}

func (in *Interner) allocate(t Type) TypeID {
	id, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(id)
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid; reserved for call sites that have
// already validated the ID came from this interner (§7: structural
// invariant failures should be unreachable-hinted, not recovered from).
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind is a convenience accessor equivalent to Lookup(id).Kind, returning
// KindInvalid for an unknown ID instead of requiring an ok check everywhere.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

func (in *Interner) newSourceID() uint32 {
	in.nextSourceID++
	return in.nextSourceID
}

func slot(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("types: side table overflow: %w", err))
	}
	return v
}
