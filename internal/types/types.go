package types

import "fmt"

// TypeID uniquely identifies a type value inside an Interner.
type TypeID uint32

// NoTypeID marks the absence of a type (an unset optional type field).
const NoTypeID TypeID = 0

// Kind enumerates the variants of the closed Type union.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnknown
	KindAny
	KindNone
	KindNever
	KindClass
	KindObject
	KindFunction
	KindOverloadedFunction
	KindModule
	KindUnion
	KindTypeVar
	KindProperty
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindAny:
		return "Any"
	case KindNone:
		return "None"
	case KindNever:
		return "Never"
	case KindClass:
		return "Class"
	case KindObject:
		return "Object"
	case KindFunction:
		return "Function"
	case KindOverloadedFunction:
		return "OverloadedFunction"
	case KindModule:
		return "Module"
	case KindUnion:
		return "Union"
	case KindTypeVar:
		return "TypeVar"
	case KindProperty:
		return "Property"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor: a tag plus a slot index into the side
// table the tag owns (unused for the terminal kinds). Compound kinds own
// side tables in class.go/function.go/union.go/etc so a Type value stays a
// fixed-size struct regardless of variant.
type Type struct {
	Kind    Kind
	Payload uint32
}

// Variance classifies a TypeVar's subtyping direction.
type Variance uint8

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	default:
		return "invariant"
	}
}

// Truthy is a tri-state used by Object to carry the narrowing tag produced
// by True/False literals (§4.4 "Literal constants").
type Truthy uint8

const (
	TruthyUnknown Truthy = iota
	TruthyTrue
	TruthyFalse
)
