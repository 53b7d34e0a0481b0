package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"gradualtype/internal/ast"
)

func writeFixture(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.gtcexpr")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadLinksNestedParentsToTheirImmediateParent(t *testing.T) {
	path := writeFixture(t, `{
		"symbols": {"x": "int", "y": "int"},
		"checks": [
			{
				"kind": "binary",
				"op": "+",
				"left": {"kind": "name", "name": "x"},
				"right": {
					"kind": "binary",
					"op": "*",
					"left": {"kind": "name", "name": "y"},
					"right": {"kind": "number", "raw": "2"}
				}
			}
		]
	}`)

	check, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(check.Roots) != 1 {
		t.Fatalf("expected one root, got %d", len(check.Roots))
	}
	root := check.Roots[0]

	outer, ok := check.Exprs.Binary(root)
	if !ok {
		t.Fatalf("expected root to be a binary node")
	}
	if got := check.Exprs.Get(outer.Left).Parent; got != root {
		t.Fatalf("expected outer.Left's parent to be root %d, got %d", root, got)
	}
	if got := check.Exprs.Get(outer.Right).Parent; got != root {
		t.Fatalf("expected outer.Right's parent to be root %d, got %d", root, got)
	}

	inner, ok := check.Exprs.Binary(outer.Right)
	if !ok {
		t.Fatalf("expected outer.Right to be a binary node")
	}
	if got := check.Exprs.Get(inner.Left).Parent; got != outer.Right {
		t.Fatalf("expected inner.Left's parent to be the inner node %d, got %d", outer.Right, got)
	}
	if got := check.Exprs.Get(inner.Right).Parent; got != outer.Right {
		t.Fatalf("expected inner.Right's parent to be the inner node %d, got %d", outer.Right, got)
	}
	if check.Exprs.Get(root).Parent != ast.NoExprID {
		t.Fatalf("expected the root's own parent to stay NoExprID")
	}
}

func TestLoadLinksCallArgParents(t *testing.T) {
	path := writeFixture(t, `{
		"symbols": {"f": "int"},
		"checks": [
			{
				"kind": "call",
				"callee": {"kind": "name", "name": "f"},
				"args": [
					{"value": {"kind": "number", "raw": "1"}},
					{"value": {"kind": "number", "raw": "2"}}
				]
			}
		]
	}`)

	check, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	root := check.Roots[0]
	call, ok := check.Exprs.Call(root)
	if !ok {
		t.Fatalf("expected root to be a call node")
	}
	if got := check.Exprs.Get(call.Target).Parent; got != root {
		t.Fatalf("expected callee's parent to be root %d, got %d", root, got)
	}
	for i, arg := range call.Args {
		if got := check.Exprs.Get(arg.Value).Parent; got != root {
			t.Fatalf("expected arg %d's parent to be root %d, got %d", i, root, got)
		}
	}
}
