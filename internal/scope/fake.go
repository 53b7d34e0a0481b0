package scope

import "gradualtype/internal/types"

// Fake is a minimal in-memory Scope used by package tests throughout
// internal/eval. It has no parser or real symbol table behind it: callers
// populate Symbols/Builtins/Constraints directly.
type Fake struct {
	Parent      *Fake
	KindValue   Kind
	Symbols     map[string]*types.Symbol
	Builtins    map[string]types.TypeID
	Constraints []Constraint
}

// NewFake builds a root Fake scope with empty tables.
func NewFake(kind Kind) *Fake {
	return &Fake{
		KindValue: kind,
		Symbols:   make(map[string]*types.Symbol),
		Builtins:  make(map[string]types.TypeID),
	}
}

// Child builds a scope nested under f.
func (f *Fake) Child(kind Kind) *Fake {
	c := NewFake(kind)
	c.Parent = f
	return c
}

func (f *Fake) LookUpSymbolRecursive(name string) (LookupResult, bool) {
	for s := f; s != nil; s = s.Parent {
		if sym, ok := s.Symbols[name]; ok {
			return LookupResult{Symbol: sym, Scope: s}, true
		}
	}
	return LookupResult{}, false
}

func (f *Fake) GetParent() Scope {
	if f.Parent == nil {
		return nil
	}
	return f.Parent
}

func (f *Fake) GetKind() Kind { return f.KindValue }

func (f *Fake) GetTypeConstraints() []Constraint { return f.Constraints }

func (f *Fake) GetBuiltInType(name string) (types.TypeID, bool) {
	for s := f; s != nil; s = s.Parent {
		if id, ok := s.Builtins[name]; ok {
			return id, true
		}
	}
	return types.NoTypeID, false
}

// GetBuiltInObject looks up a pre-registered builtin object type by name.
// Fake has no interner of its own to synthesize Object(Class) values on
// demand, so tests that need e.g. "int" to resolve to an Object rather
// than a Class populate Builtins with the Object TypeID directly under
// that name; typeArgs is accepted for interface compatibility but ignored.
func (f *Fake) GetBuiltInObject(name string, typeArgs []types.TypeID) (types.TypeID, bool) {
	return f.GetBuiltInType(name)
}

var _ Scope = (*Fake)(nil)
