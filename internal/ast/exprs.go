package ast

import "gradualtype/internal/source"

// ArgCategory classifies a call argument or a parameter the way §3's Param
// and FunctionArgument records do: a plain value, a `*args`-style spread,
// or a `**kwargs`-style spread.
type ArgCategory uint8

const (
	CategorySimple ArgCategory = iota
	CategoryVarArgList
	CategoryVarArgDict
)

// NameData holds identifier expression details.
type NameData struct {
	Name source.StringID
}

// MemberData holds member access (`target.attr`) expression details.
type MemberData struct {
	Target ExprID
	Attr   source.StringID
}

// IndexData holds subscription (`target[index]`) expression details. Index
// may itself be a KindSlice node.
type IndexData struct {
	Target ExprID
	Index  ExprID
}

// CallArg is one argument in a call, matching §3's FunctionArgument.
type CallArg struct {
	Category ArgCategory
	Name     source.StringID // NoStringID unless this is a keyword argument
	Value    ExprID
}

// CallData holds call expression details.
type CallData struct {
	Target ExprID
	Args   []CallArg
}

// ContainerData holds Tuple/List/Set literal details.
type ContainerData struct {
	Elements []ExprID
}

// DictEntry is one key/value pair in a dict literal.
type DictEntry struct {
	Key   ExprID
	Value ExprID
}

// DictData holds dict literal details.
type DictData struct {
	Entries []DictEntry
}

// NumberData holds a numeric literal's raw text and subkind.
type NumberData struct {
	Raw       source.StringID
	IsFloat   bool
	IsComplex bool
}

// StringData holds a string literal's raw text and an optional type-comment
// annotation expression (§4.4: "string literal with a type-comment
// annotation is dispatched to its annotation").
type StringData struct {
	Raw         source.StringID
	TypeComment ExprID // NoExprID if absent
	IsBytes     bool
}

// ConstantData holds a keyword-literal constant (True/False/None/__debug__).
type ConstantData struct {
	Keyword KeywordType
}

// UnaryData holds unary expression details.
type UnaryData struct {
	Op      UnaryOperator
	Operand ExprID
}

// BinaryData holds binary expression details.
type BinaryData struct {
	Op    BinaryOperator
	Left  ExprID
	Right ExprID
}

// TernaryData holds `Then if Cond else Else` expression details.
type TernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// AwaitData holds `await value` expression details.
type AwaitData struct {
	Value ExprID
}

// YieldData holds `yield value` expression details; Value is NoExprID for a
// bare `yield`.
type YieldData struct {
	Value ExprID
}

// YieldFromData holds `yield from value` expression details.
type YieldFromData struct {
	Value ExprID
}

// LambdaParam is one parameter of a lambda expression.
type LambdaParam struct {
	Category   ArgCategory
	Name       source.StringID
	HasDefault bool
	Default    ExprID // NoExprID if HasDefault is false
}

// LambdaData holds lambda expression details.
type LambdaData struct {
	Params []LambdaParam
	Body   ExprID
}

// ComprehensionData is a stub payload: the evaluator always returns Unknown
// for comprehensions (§9), so only the span is meaningful today.
type ComprehensionData struct {
	Element ExprID
}

// SliceData is a stub payload for `a:b:c` slice expressions (§9: the
// evaluator's historical placeholder special-cased `set`; the correct
// built-in is `slice`).
type SliceData struct {
	Lower ExprID // NoExprID if omitted
	Upper ExprID
	Step  ExprID
}

// AssignmentData holds assignment and augmented-assignment expression
// details. AugOp is meaningful only when IsAugmented is true.
type AssignmentData struct {
	Target      ExprID
	Value       ExprID
	IsAugmented bool
	AugOp       BinaryOperator
}

// TypeAnnotationData holds a `value: annotation` expression pair, e.g. the
// RHS of a variable declaration's type comment or an annotated assignment's
// target type.
type TypeAnnotationData struct {
	Value      ExprID
	Annotation ExprID
}

// Exprs owns the node arena and one payload arena per expression kind,
// following the same per-kind-arena layout the dispatcher's cache callbacks
// key off of (ExprID -> TypeID).
type Exprs struct {
	Arena *Arena[Expr]

	Names           *Arena[NameData]
	Members         *Arena[MemberData]
	Indices         *Arena[IndexData]
	Calls           *Arena[CallData]
	Containers      *Arena[ContainerData]
	Dicts           *Arena[DictData]
	Numbers         *Arena[NumberData]
	Strings         *Arena[StringData]
	Constants       *Arena[ConstantData]
	Unaries         *Arena[UnaryData]
	Binaries        *Arena[BinaryData]
	Ternaries       *Arena[TernaryData]
	Awaits          *Arena[AwaitData]
	Yields          *Arena[YieldData]
	YieldFroms      *Arena[YieldFromData]
	Lambdas         *Arena[LambdaData]
	Comprehensions  *Arena[ComprehensionData]
	Slices          *Arena[SliceData]
	Assignments     *Arena[AssignmentData]
	TypeAnnotations *Arena[TypeAnnotationData]
}

// NewExprs allocates an Exprs with per-kind arenas preallocated using
// capHint as the initial capacity (default 1<<8 when capHint is 0).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:           NewArena[Expr](capHint),
		Names:           NewArena[NameData](capHint),
		Members:         NewArena[MemberData](capHint),
		Indices:         NewArena[IndexData](capHint),
		Calls:           NewArena[CallData](capHint),
		Containers:      NewArena[ContainerData](capHint),
		Dicts:           NewArena[DictData](capHint),
		Numbers:         NewArena[NumberData](capHint),
		Strings:         NewArena[StringData](capHint),
		Constants:       NewArena[ConstantData](capHint),
		Unaries:         NewArena[UnaryData](capHint),
		Binaries:        NewArena[BinaryData](capHint),
		Ternaries:       NewArena[TernaryData](capHint),
		Awaits:          NewArena[AwaitData](capHint),
		Yields:          NewArena[YieldData](capHint),
		YieldFroms:      NewArena[YieldFromData](capHint),
		Lambdas:         NewArena[LambdaData](capHint),
		Comprehensions:  NewArena[ComprehensionData](capHint),
		Slices:          NewArena[SliceData](capHint),
		Assignments:     NewArena[AssignmentData](capHint),
		TypeAnnotations: NewArena[TypeAnnotationData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, parent ExprID, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Parent:  parent,
		Payload: payload,
	}))
}

// Get returns the node header for id.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewName(span source.Span, parent ExprID, name source.StringID) ExprID {
	p := e.Names.Allocate(NameData{Name: name})
	return e.new(KindName, span, parent, PayloadID(p))
}

func (e *Exprs) Name(id ExprID) (*NameData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindName {
		return nil, false
	}
	return e.Names.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMember(span source.Span, parent ExprID, target ExprID, attr source.StringID) ExprID {
	p := e.Members.Allocate(MemberData{Target: target, Attr: attr})
	return e.new(KindMember, span, parent, PayloadID(p))
}

func (e *Exprs) Member(id ExprID) (*MemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, parent ExprID, target, index ExprID) ExprID {
	p := e.Indices.Allocate(IndexData{Target: target, Index: index})
	return e.new(KindIndex, span, parent, PayloadID(p))
}

func (e *Exprs) Index(id ExprID) (*IndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, parent ExprID, target ExprID, args []CallArg) ExprID {
	p := e.Calls.Allocate(CallData{Target: target, Args: append([]CallArg(nil), args...)})
	return e.new(KindCall, span, parent, PayloadID(p))
}

func (e *Exprs) Call(id ExprID) (*CallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) newContainer(kind ExprKind, span source.Span, parent ExprID, elements []ExprID) ExprID {
	p := e.Containers.Allocate(ContainerData{Elements: append([]ExprID(nil), elements...)})
	return e.new(kind, span, parent, PayloadID(p))
}

func (e *Exprs) NewTuple(span source.Span, parent ExprID, elements []ExprID) ExprID {
	return e.newContainer(KindTuple, span, parent, elements)
}

func (e *Exprs) NewList(span source.Span, parent ExprID, elements []ExprID) ExprID {
	return e.newContainer(KindList, span, parent, elements)
}

func (e *Exprs) NewSet(span source.Span, parent ExprID, elements []ExprID) ExprID {
	return e.newContainer(KindSet, span, parent, elements)
}

// Container returns the element list for Tuple/List/Set nodes.
func (e *Exprs) Container(id ExprID) (*ContainerData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != KindTuple && expr.Kind != KindList && expr.Kind != KindSet) {
		return nil, false
	}
	return e.Containers.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewDict(span source.Span, parent ExprID, entries []DictEntry) ExprID {
	p := e.Dicts.Allocate(DictData{Entries: append([]DictEntry(nil), entries...)})
	return e.new(KindDict, span, parent, PayloadID(p))
}

func (e *Exprs) Dict(id ExprID) (*DictData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindDict {
		return nil, false
	}
	return e.Dicts.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewNumber(span source.Span, parent ExprID, raw source.StringID, isFloat, isComplex bool) ExprID {
	p := e.Numbers.Allocate(NumberData{Raw: raw, IsFloat: isFloat, IsComplex: isComplex})
	return e.new(KindNumber, span, parent, PayloadID(p))
}

func (e *Exprs) Number(id ExprID) (*NumberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindNumber {
		return nil, false
	}
	return e.Numbers.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewString(span source.Span, parent ExprID, raw source.StringID, typeComment ExprID, isBytes bool) ExprID {
	p := e.Strings.Allocate(StringData{Raw: raw, TypeComment: typeComment, IsBytes: isBytes})
	return e.new(KindString, span, parent, PayloadID(p))
}

func (e *Exprs) String(id ExprID) (*StringData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindString {
		return nil, false
	}
	return e.Strings.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewConstant(span source.Span, parent ExprID, kw KeywordType) ExprID {
	p := e.Constants.Allocate(ConstantData{Keyword: kw})
	return e.new(KindConstant, span, parent, PayloadID(p))
}

func (e *Exprs) Constant(id ExprID) (*ConstantData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindConstant {
		return nil, false
	}
	return e.Constants.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, parent ExprID, op UnaryOperator, operand ExprID) ExprID {
	p := e.Unaries.Allocate(UnaryData{Op: op, Operand: operand})
	return e.new(KindUnaryOp, span, parent, PayloadID(p))
}

func (e *Exprs) Unary(id ExprID) (*UnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindUnaryOp {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, parent ExprID, op BinaryOperator, left, right ExprID) ExprID {
	p := e.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})
	return e.new(KindBinaryOp, span, parent, PayloadID(p))
}

func (e *Exprs) Binary(id ExprID) (*BinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindBinaryOp {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewTernary(span source.Span, parent ExprID, cond, then, els ExprID) ExprID {
	p := e.Ternaries.Allocate(TernaryData{Cond: cond, Then: then, Else: els})
	return e.new(KindTernary, span, parent, PayloadID(p))
}

func (e *Exprs) Ternary(id ExprID) (*TernaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindTernary {
		return nil, false
	}
	return e.Ternaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewAwait(span source.Span, parent ExprID, value ExprID) ExprID {
	p := e.Awaits.Allocate(AwaitData{Value: value})
	return e.new(KindAwait, span, parent, PayloadID(p))
}

func (e *Exprs) Await(id ExprID) (*AwaitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindAwait {
		return nil, false
	}
	return e.Awaits.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewYield(span source.Span, parent ExprID, value ExprID) ExprID {
	p := e.Yields.Allocate(YieldData{Value: value})
	return e.new(KindYield, span, parent, PayloadID(p))
}

func (e *Exprs) Yield(id ExprID) (*YieldData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindYield {
		return nil, false
	}
	return e.Yields.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewYieldFrom(span source.Span, parent ExprID, value ExprID) ExprID {
	p := e.YieldFroms.Allocate(YieldFromData{Value: value})
	return e.new(KindYieldFrom, span, parent, PayloadID(p))
}

func (e *Exprs) YieldFrom(id ExprID) (*YieldFromData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindYieldFrom {
		return nil, false
	}
	return e.YieldFroms.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLambda(span source.Span, parent ExprID, params []LambdaParam, body ExprID) ExprID {
	p := e.Lambdas.Allocate(LambdaData{Params: append([]LambdaParam(nil), params...), Body: body})
	return e.new(KindLambda, span, parent, PayloadID(p))
}

func (e *Exprs) Lambda(id ExprID) (*LambdaData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindLambda {
		return nil, false
	}
	return e.Lambdas.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewComprehension(span source.Span, parent ExprID, element ExprID) ExprID {
	p := e.Comprehensions.Allocate(ComprehensionData{Element: element})
	return e.new(KindComprehension, span, parent, PayloadID(p))
}

func (e *Exprs) Comprehension(id ExprID) (*ComprehensionData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindComprehension {
		return nil, false
	}
	return e.Comprehensions.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewSlice(span source.Span, parent ExprID, lower, upper, step ExprID) ExprID {
	p := e.Slices.Allocate(SliceData{Lower: lower, Upper: upper, Step: step})
	return e.new(KindSlice, span, parent, PayloadID(p))
}

func (e *Exprs) Slice(id ExprID) (*SliceData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindSlice {
		return nil, false
	}
	return e.Slices.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewAssignment(span source.Span, parent ExprID, target, value ExprID, augOp BinaryOperator, isAugmented bool) ExprID {
	p := e.Assignments.Allocate(AssignmentData{
		Target:      target,
		Value:       value,
		IsAugmented: isAugmented,
		AugOp:       augOp,
	})
	return e.new(KindAssignment, span, parent, PayloadID(p))
}

func (e *Exprs) Assignment(id ExprID) (*AssignmentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindAssignment {
		return nil, false
	}
	return e.Assignments.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewTypeAnnotation(span source.Span, parent ExprID, value, annotation ExprID) ExprID {
	p := e.TypeAnnotations.Allocate(TypeAnnotationData{Value: value, Annotation: annotation})
	return e.new(KindTypeAnnotation, span, parent, PayloadID(p))
}

func (e *Exprs) TypeAnnotation(id ExprID) (*TypeAnnotationData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != KindTypeAnnotation {
		return nil, false
	}
	return e.TypeAnnotations.Get(uint32(expr.Payload)), true
}
