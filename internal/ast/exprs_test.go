package ast

import (
	"testing"

	"gradualtype/internal/source"
)

func TestExprs_NewBinary(t *testing.T) {
	exprs := NewExprs(0)
	left := exprs.NewNumber(source.Span{}, NoExprID, source.StringID(1), false, false)
	right := exprs.NewNumber(source.Span{}, NoExprID, source.StringID(2), false, false)
	bin := exprs.NewBinary(source.Span{}, NoExprID, OpAdd, left, right)

	data, ok := exprs.Binary(bin)
	if !ok {
		t.Fatalf("expected binary payload")
	}
	if data.Op != OpAdd || data.Left != left || data.Right != right {
		t.Fatalf("unexpected binary data: %+v", data)
	}

	if _, ok := exprs.Binary(left); ok {
		t.Fatalf("expected Binary to reject a non-binary node")
	}
}

func TestExprs_NewCallWithMixedArgs(t *testing.T) {
	exprs := NewExprs(0)
	target := exprs.NewName(source.Span{}, NoExprID, source.StringID(1))
	pos := exprs.NewNumber(source.Span{}, NoExprID, source.StringID(2), false, false)
	kw := exprs.NewNumber(source.Span{}, NoExprID, source.StringID(3), false, false)

	call := exprs.NewCall(source.Span{}, NoExprID, target, []CallArg{
		{Category: CategorySimple, Value: pos},
		{Category: CategorySimple, Name: source.StringID(9), Value: kw},
	})

	data, ok := exprs.Call(call)
	if !ok {
		t.Fatalf("expected call payload")
	}
	if len(data.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(data.Args))
	}
	if data.Args[0].Name != source.NoStringID {
		t.Fatalf("expected first arg to be positional")
	}
	if data.Args[1].Name != source.StringID(9) {
		t.Fatalf("expected second arg keyword name preserved")
	}
}

func TestExprs_ContainerAcceptsTupleListSet(t *testing.T) {
	exprs := NewExprs(0)
	el := exprs.NewNumber(source.Span{}, NoExprID, source.StringID(1), false, false)

	for _, kind := range []ExprKind{KindTuple, KindList, KindSet} {
		var id ExprID
		switch kind {
		case KindTuple:
			id = exprs.NewTuple(source.Span{}, NoExprID, []ExprID{el})
		case KindList:
			id = exprs.NewList(source.Span{}, NoExprID, []ExprID{el})
		case KindSet:
			id = exprs.NewSet(source.Span{}, NoExprID, []ExprID{el})
		}
		data, ok := exprs.Container(id)
		if !ok {
			t.Fatalf("expected container payload for %s", kind)
		}
		if len(data.Elements) != 1 || data.Elements[0] != el {
			t.Fatalf("unexpected elements for %s: %+v", kind, data.Elements)
		}
	}
}

func TestExprs_ParentLinkPreserved(t *testing.T) {
	exprs := NewExprs(0)
	parent := exprs.NewName(source.Span{}, NoExprID, source.StringID(1))
	child := exprs.NewUnary(source.Span{}, parent, OpNeg, parent)

	expr := exprs.Get(child)
	if expr.Parent != parent {
		t.Fatalf("expected parent %d, got %d", parent, expr.Parent)
	}
}

func TestUnaryOperator_DunderName(t *testing.T) {
	if got := OpInvert.DunderName(); got != "__invert__" {
		t.Fatalf("expected __invert__, got %q", got)
	}
	if got := OpNot.DunderName(); got != "" {
		t.Fatalf("expected OpNot to have no dunder, got %q", got)
	}
}
