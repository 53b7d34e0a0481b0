// Package fixture loads *.gtcexpr documents: tiny JSON expression trees used
// as a stand-in for a real parser front-end (spec §9 scopes parsing out
// entirely). A fixture declares a flat symbol table (names bound to builtin
// type names) and a list of top-level expressions to run getType over — just
// enough surface to drive internal/eval end to end from the command line.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"gradualtype/internal/ast"
	"gradualtype/internal/scope"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
)

// Node is the wire shape of one expression. Only the fields relevant to
// Kind are populated by an author; everything else stays zero.
type Node struct {
	Kind string `json:"kind"`

	Name string `json:"name,omitempty"` // name, constant(keyword)

	Target *Node `json:"target,omitempty"` // member, index
	Attr   string `json:"attr,omitempty"`

	Index *Node `json:"index,omitempty"` // index

	Callee *Node `json:"callee,omitempty"` // call
	Args   []Arg  `json:"args,omitempty"`

	Elements []Node  `json:"elements,omitempty"` // tuple/list/set
	Entries  []Entry `json:"entries,omitempty"`   // dict

	Raw   string `json:"raw,omitempty"` // number/string literal text
	Float bool   `json:"float,omitempty"`
	Complex bool `json:"complex,omitempty"`
	Bytes bool   `json:"bytes,omitempty"`

	Op      string `json:"op,omitempty"`      // unary/binary operator spelling
	Operand *Node  `json:"operand,omitempty"` // unary
	Left    *Node  `json:"left,omitempty"`    // binary
	Right   *Node  `json:"right,omitempty"`

	Cond *Node `json:"cond,omitempty"` // ternary
	Then *Node `json:"then,omitempty"`
	Else *Node `json:"else,omitempty"`

	Value      *Node `json:"value,omitempty"`      // assignment RHS / annotation value
	Annotation *Node `json:"annotation,omitempty"` // annotation type expr
	Augmented  bool  `json:"augmented,omitempty"`
}

// Arg is one call argument.
type Arg struct {
	Category string `json:"category,omitempty"` // "", "varargs", "varkwargs"
	Name     string `json:"name,omitempty"`
	Value    Node   `json:"value"`
}

// Entry is one dict-literal key/value pair.
type Entry struct {
	Key   Node `json:"key"`
	Value Node `json:"value"`
}

// Doc is the top-level *.gtcexpr document: a flat symbol table (name ->
// builtin type name) and the checks to evaluate.
type Doc struct {
	Symbols map[string]string `json:"symbols"`
	Checks  []Node            `json:"checks"`
}

// Check is a loaded, arena-built fixture ready to drive an eval.Evaluator.
type Check struct {
	Path     string
	Exprs    *ast.Exprs
	Strings  *source.Interner
	Interner *types.Interner
	Scope    scope.Scope
	FileSet  *source.FileSet
	FileID   source.FileID
	Roots    []ast.ExprID
}

// Load reads and builds one *.gtcexpr fixture.
func Load(path string) (*Check, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(path, raw)

	b := &builder{
		exprs:    ast.NewExprs(0),
		strings:  source.NewInterner(),
		interner: types.NewInterner(),
		span:     source.Span{File: fileID, Start: 0, End: safeLen(raw)},
	}
	bscope := newBuiltinScope(b.interner)
	b.scope = bscope

	for name, builtinName := range doc.Symbols {
		t, ok := bscope.GetBuiltInObject(builtinName, nil)
		if !ok {
			return nil, fmt.Errorf("%s: unknown builtin type %q for symbol %q", path, builtinName, name)
		}
		bscope.symbols[name] = &types.Symbol{
			Declarations: []types.Declaration{{Category: types.DeclVariable, DeclaredType: t}},
			CurrentType:  t,
			InferredType: t,
		}
	}

	roots := make([]ast.ExprID, 0, len(doc.Checks))
	for i := range doc.Checks {
		id, err := b.build(&doc.Checks[i], ast.NoExprID)
		if err != nil {
			return nil, fmt.Errorf("%s: check %d: %w", path, i, err)
		}
		roots = append(roots, id)
	}

	return &Check{
		Path:     path,
		Exprs:    b.exprs,
		Strings:  b.strings,
		Interner: b.interner,
		Scope:    bscope,
		FileSet:  fs,
		FileID:   fileID,
		Roots:    roots,
	}, nil
}

func safeLen(b []byte) uint32 {
	if len(b) > 1<<31 {
		return 1 << 31
	}
	return uint32(len(b))
}

type builder struct {
	exprs    *ast.Exprs
	strings  *source.Interner
	interner *types.Interner
	scope    *builtinScope
	span     source.Span
}

// relink fixes up each child's Parent field to point at id, since children
// are necessarily built (and given a provisional parent) before the node
// that owns them is allocated. NoExprID children are skipped.
func (b *builder) relink(id ast.ExprID, children ...ast.ExprID) ast.ExprID {
	for _, c := range children {
		if c == ast.NoExprID {
			continue
		}
		b.exprs.Get(c).Parent = id
	}
	return id
}

func (b *builder) build(n *Node, parent ast.ExprID) (ast.ExprID, error) {
	switch n.Kind {
	case "name":
		return b.exprs.NewName(b.span, parent, b.strings.Intern(n.Name)), nil

	case "member":
		target, err := b.build(n.Target, parent)
		if err != nil {
			return 0, err
		}
		id := b.exprs.NewMember(b.span, parent, target, b.strings.Intern(n.Attr))
		return b.relink(id, target), nil

	case "index":
		target, err := b.build(n.Target, parent)
		if err != nil {
			return 0, err
		}
		index, err := b.build(n.Index, parent)
		if err != nil {
			return 0, err
		}
		id := b.exprs.NewIndex(b.span, parent, target, index)
		return b.relink(id, target, index), nil

	case "call":
		callee, err := b.build(n.Callee, parent)
		if err != nil {
			return 0, err
		}
		args := make([]ast.CallArg, 0, len(n.Args))
		children := []ast.ExprID{callee}
		for i := range n.Args {
			valID, err := b.build(&n.Args[i].Value, parent)
			if err != nil {
				return 0, err
			}
			cat := ast.CategorySimple
			switch n.Args[i].Category {
			case "varargs":
				cat = ast.CategoryVarArgList
			case "varkwargs":
				cat = ast.CategoryVarArgDict
			}
			name := source.NoStringID
			if n.Args[i].Name != "" {
				name = b.strings.Intern(n.Args[i].Name)
			}
			args = append(args, ast.CallArg{Category: cat, Name: name, Value: valID})
			children = append(children, valID)
		}
		id := b.exprs.NewCall(b.span, parent, callee, args)
		return b.relink(id, children...), nil

	case "tuple", "list", "set":
		elems := make([]ast.ExprID, 0, len(n.Elements))
		for i := range n.Elements {
			id, err := b.build(&n.Elements[i], parent)
			if err != nil {
				return 0, err
			}
			elems = append(elems, id)
		}
		var id ast.ExprID
		switch n.Kind {
		case "tuple":
			id = b.exprs.NewTuple(b.span, parent, elems)
		case "list":
			id = b.exprs.NewList(b.span, parent, elems)
		default:
			id = b.exprs.NewSet(b.span, parent, elems)
		}
		return b.relink(id, elems...), nil

	case "dict":
		entries := make([]ast.DictEntry, 0, len(n.Entries))
		children := make([]ast.ExprID, 0, len(n.Entries)*2)
		for i := range n.Entries {
			k, err := b.build(&n.Entries[i].Key, parent)
			if err != nil {
				return 0, err
			}
			v, err := b.build(&n.Entries[i].Value, parent)
			if err != nil {
				return 0, err
			}
			entries = append(entries, ast.DictEntry{Key: k, Value: v})
			children = append(children, k, v)
		}
		id := b.exprs.NewDict(b.span, parent, entries)
		return b.relink(id, children...), nil

	case "number":
		return b.exprs.NewNumber(b.span, parent, b.strings.Intern(n.Raw), n.Float, n.Complex), nil

	case "string":
		var typeComment ast.ExprID = ast.NoExprID
		if n.Annotation != nil {
			id, err := b.build(n.Annotation, parent)
			if err != nil {
				return 0, err
			}
			typeComment = id
		}
		id := b.exprs.NewString(b.span, parent, b.strings.Intern(n.Raw), typeComment, n.Bytes)
		return b.relink(id, typeComment), nil

	case "constant":
		kw, err := parseKeyword(n.Name)
		if err != nil {
			return 0, err
		}
		return b.exprs.NewConstant(b.span, parent, kw), nil

	case "unary":
		op, err := parseUnaryOp(n.Op)
		if err != nil {
			return 0, err
		}
		operand, err := b.build(n.Operand, parent)
		if err != nil {
			return 0, err
		}
		id := b.exprs.NewUnary(b.span, parent, op, operand)
		return b.relink(id, operand), nil

	case "binary":
		op, err := parseBinaryOp(n.Op)
		if err != nil {
			return 0, err
		}
		left, err := b.build(n.Left, parent)
		if err != nil {
			return 0, err
		}
		right, err := b.build(n.Right, parent)
		if err != nil {
			return 0, err
		}
		id := b.exprs.NewBinary(b.span, parent, op, left, right)
		return b.relink(id, left, right), nil

	case "ternary":
		cond, err := b.build(n.Cond, parent)
		if err != nil {
			return 0, err
		}
		then, err := b.build(n.Then, parent)
		if err != nil {
			return 0, err
		}
		els, err := b.build(n.Else, parent)
		if err != nil {
			return 0, err
		}
		id := b.exprs.NewTernary(b.span, parent, cond, then, els)
		return b.relink(id, cond, then, els), nil

	case "assign":
		target, err := b.build(n.Target, parent)
		if err != nil {
			return 0, err
		}
		value, err := b.build(n.Value, parent)
		if err != nil {
			return 0, err
		}
		augOp := ast.OpAdd
		if n.Augmented {
			augOp, err = parseBinaryOp(n.Op)
			if err != nil {
				return 0, err
			}
		}
		id := b.exprs.NewAssignment(b.span, parent, target, value, augOp, n.Augmented)
		return b.relink(id, target, value), nil

	case "annotation":
		value, err := b.build(n.Value, parent)
		if err != nil {
			return 0, err
		}
		annotation, err := b.build(n.Annotation, parent)
		if err != nil {
			return 0, err
		}
		id := b.exprs.NewTypeAnnotation(b.span, parent, value, annotation)
		return b.relink(id, value, annotation), nil

	default:
		return 0, fmt.Errorf("unknown expression kind %q", n.Kind)
	}
}

func parseKeyword(name string) (ast.KeywordType, error) {
	switch name {
	case "True":
		return ast.KeywordTrue, nil
	case "False":
		return ast.KeywordFalse, nil
	case "None":
		return ast.KeywordNone, nil
	case "__debug__":
		return ast.KeywordDebug, nil
	default:
		return 0, fmt.Errorf("unknown constant keyword %q", name)
	}
}

func parseUnaryOp(op string) (ast.UnaryOperator, error) {
	switch op {
	case "+":
		return ast.OpPos, nil
	case "-":
		return ast.OpNeg, nil
	case "~":
		return ast.OpInvert, nil
	case "not":
		return ast.OpNot, nil
	default:
		return 0, fmt.Errorf("unknown unary operator %q", op)
	}
}

func parseBinaryOp(op string) (ast.BinaryOperator, error) {
	switch op {
	case "+":
		return ast.OpAdd, nil
	case "-":
		return ast.OpSub, nil
	case "*":
		return ast.OpMul, nil
	case "/":
		return ast.OpDiv, nil
	case "//":
		return ast.OpFloorDiv, nil
	case "%":
		return ast.OpMod, nil
	case "**":
		return ast.OpPow, nil
	case "@":
		return ast.OpMatMul, nil
	case "&":
		return ast.OpBitAnd, nil
	case "|":
		return ast.OpBitOr, nil
	case "^":
		return ast.OpBitXor, nil
	case "<<":
		return ast.OpLShift, nil
	case ">>":
		return ast.OpRShift, nil
	case "==":
		return ast.OpEq, nil
	case "!=":
		return ast.OpNotEq, nil
	case "<":
		return ast.OpLt, nil
	case "<=":
		return ast.OpLtEq, nil
	case ">":
		return ast.OpGt, nil
	case ">=":
		return ast.OpGtEq, nil
	case "and":
		return ast.OpAnd, nil
	case "or":
		return ast.OpOr, nil
	case "is":
		return ast.OpIs, nil
	case "is not":
		return ast.OpIsNot, nil
	case "in":
		return ast.OpIn, nil
	case "not in":
		return ast.OpNotIn, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %q", op)
	}
}
