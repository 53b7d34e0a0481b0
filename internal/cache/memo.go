// Package cache supplies the two cache layers the evaluator is wired
// against: an in-memory per-node memo the evaluator reads and writes on
// every getType call (§2 C8, §5 "shared resources"), and an optional
// disk-backed cross-run cache keyed by a content digest.
package cache

import "gradualtype/internal/ast"

// Reader and Writer are the two callback types the evaluator is
// parameterized by (§6, §2 C8). A concrete Memo supplies both; tests can
// inject narrower fakes.
type (
	Reader func(node ast.ExprID) (uint32, bool)
	Writer func(node ast.ExprID, typeID uint32)
)

// Memo is the in-memory per-node cache. It is not safe to share across
// evaluator instances running concurrently (§5): one Memo per scope under
// analysis.
type Memo struct {
	entries map[ast.ExprID]uint32
}

// NewMemo constructs an empty per-node cache.
func NewMemo() *Memo {
	return &Memo{entries: make(map[ast.ExprID]uint32)}
}

// Read implements Reader.
func (m *Memo) Read(node ast.ExprID) (uint32, bool) {
	v, ok := m.entries[node]
	return v, ok
}

// Write implements Writer. Writing the same type twice for the same node
// is permitted (§5) and is a no-op past the first write's effect.
func (m *Memo) Write(node ast.ExprID, typeID uint32) {
	m.entries[node] = typeID
}

// Len reports how many nodes currently have a cached type.
func (m *Memo) Len() int { return len(m.entries) }

// Clear empties the cache.
func (m *Memo) Clear() { m.entries = make(map[ast.ExprID]uint32) }
