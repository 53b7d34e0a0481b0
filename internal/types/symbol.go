package types

// DeclCategory classifies one declaration site contributing to a Symbol.
type DeclCategory uint8

const (
	DeclVariable DeclCategory = iota
	DeclClass
	DeclFunction
	DeclMethod
	DeclParameter
	DeclModule
)

// Declaration is one binding site for a Symbol; a name can be declared more
// than once (e.g. overload chains, redefinition across branches).
type Declaration struct {
	Category     DeclCategory
	DeclaredType TypeID // NoTypeID if this declaration carries no annotation
}

// Symbol is the evaluator's view of a bound name: the declarations that
// contributed to it, plus the two derived types §4.4's Name rule consults.
// A Symbol exclusively owns its Declarations slice.
type Symbol struct {
	Declarations []Declaration
	CurrentType  TypeID
	InferredType TypeID
}

// IsVariable reports whether every declaration contributing to the symbol
// is a plain variable binding, the case where §4.4 falls through to
// InferredType instead of CurrentType.
func (s *Symbol) IsVariable() bool {
	if s == nil || len(s.Declarations) == 0 {
		return true
	}
	for _, d := range s.Declarations {
		if d.Category != DeclVariable {
			return false
		}
	}
	return true
}

// DeclaredType returns the first non-empty declared type across the
// symbol's declarations, if any.
func (s *Symbol) DeclaredType() (TypeID, bool) {
	if s == nil {
		return NoTypeID, false
	}
	for _, d := range s.Declarations {
		if d.DeclaredType != NoTypeID {
			return d.DeclaredType, true
		}
	}
	return NoTypeID, false
}
