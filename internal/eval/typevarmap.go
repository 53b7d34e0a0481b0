package eval

import "gradualtype/internal/types"

// TypeVarMap is an ordered substitution from TypeVar identity to bound
// Type, built up during assignability checks and applied during
// return-type realization (§3 "TypeVarMap", GLOSSARY).
type TypeVarMap struct {
	order []types.TypeID
	bound map[types.TypeID]types.TypeID
}

// NewTypeVarMap constructs an empty substitution.
func NewTypeVarMap() *TypeVarMap {
	return &TypeVarMap{bound: make(map[types.TypeID]types.TypeID)}
}

// Get returns the type currently bound to a TypeVar, if any.
func (m *TypeVarMap) Get(typeVar types.TypeID) (types.TypeID, bool) {
	t, ok := m.bound[typeVar]
	return t, ok
}

// Set records a binding, preserving insertion order on first set.
func (m *TypeVarMap) Set(typeVar, bound types.TypeID) {
	if _, ok := m.bound[typeVar]; !ok {
		m.order = append(m.order, typeVar)
	}
	m.bound[typeVar] = bound
}

// Entries returns the bindings in insertion order.
func (m *TypeVarMap) Entries() []struct{ TypeVar, Bound types.TypeID } {
	out := make([]struct{ TypeVar, Bound types.TypeID }, 0, len(m.order))
	for _, tv := range m.order {
		out = append(out, struct{ TypeVar, Bound types.TypeID }{tv, m.bound[tv]})
	}
	return out
}
