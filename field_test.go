// FILE: shelldeck/settings/field_test.go
package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFieldPresence tests local presence tracking
func TestFieldPresence(t *testing.T) {
	var f Field[int]
	assert.False(t, f.IsSet())
	assert.Equal(t, 0, f.Value())

	f.Set(42)
	assert.True(t, f.IsSet())
	assert.Equal(t, 42, f.Value())

	f.Set(0)
	assert.True(t, f.IsSet(), "setting the zero value still counts as set")

	f.Clear()
	assert.False(t, f.IsSet())
	assert.Equal(t, 0, f.Value())
}

type fieldNode struct {
	parents []*fieldNode
	value   Field[string]
}

func nodeParents(n *fieldNode) []*fieldNode       { return n.parents }
func nodeValue(n *fieldNode) *Field[string]       { return &n.value }
func leaf(v string) *fieldNode                    { n := &fieldNode{}; n.value.Set(v); return n }
func unsetNode(parents ...*fieldNode) *fieldNode  { return &fieldNode{parents: parents} }

// TestResolveFieldOwnValueWins tests that a locally set value beats any parent
func TestResolveFieldOwnValueWins(t *testing.T) {
	n := leaf("own")
	n.parents = []*fieldNode{leaf("parent")}

	v, src, ok := resolveField(n, nodeParents, nodeValue)
	assert.True(t, ok)
	assert.Equal(t, "own", v)
	assert.Same(t, n, src)
}

// TestResolveFieldDepthFirst tests that parent 0's whole ancestry is
// consulted before parent 1
func TestResolveFieldDepthFirst(t *testing.T) {
	grandparent := leaf("from grandparent")
	parent0 := unsetNode(grandparent)
	parent1 := leaf("from parent 1")
	n := unsetNode(parent0, parent1)

	v, src, ok := resolveField(n, nodeParents, nodeValue)
	assert.True(t, ok)
	assert.Equal(t, "from grandparent", v)
	assert.Same(t, grandparent, src)
}

// TestResolveFieldParentOrder tests first-parent priority among siblings
func TestResolveFieldParentOrder(t *testing.T) {
	n := unsetNode(leaf("first"), leaf("second"))

	v := resolveOr(n, nodeParents, nodeValue, "fallback")
	assert.Equal(t, "first", v)
}

// TestResolveFieldUnsetEverywhere tests the fallback path
func TestResolveFieldUnsetEverywhere(t *testing.T) {
	n := unsetNode(unsetNode(), unsetNode())

	_, _, ok := resolveField(n, nodeParents, nodeValue)
	assert.False(t, ok)
	assert.Equal(t, "fallback", resolveOr(n, nodeParents, nodeValue, "fallback"))
}

// TestResolveFieldCycleSafety tests that an accidental cycle resolves as
// unset instead of recursing forever
func TestResolveFieldCycleSafety(t *testing.T) {
	a := unsetNode()
	b := unsetNode(a)
	a.parents = []*fieldNode{b}

	_, _, ok := resolveField(a, nodeParents, nodeValue)
	assert.False(t, ok)
}

// TestResolveFieldSharedAncestor tests diamond-shaped graphs
func TestResolveFieldSharedAncestor(t *testing.T) {
	shared := leaf("shared")
	n := unsetNode(unsetNode(shared), unsetNode(shared))

	v, src, ok := resolveField(n, nodeParents, nodeValue)
	assert.True(t, ok)
	assert.Equal(t, "shared", v)
	assert.Same(t, shared, src)
}

// TestInsertAt tests clamped slice insertion
func TestInsertAt(t *testing.T) {
	s := []int{1, 2, 3}
	assert.Equal(t, []int{0, 1, 2, 3}, insertAt(append([]int(nil), s...), 0, 0))
	assert.Equal(t, []int{1, 9, 2, 3}, insertAt(append([]int(nil), s...), 1, 9))
	assert.Equal(t, []int{1, 2, 3, 4}, insertAt(append([]int(nil), s...), 3, 4))
	assert.Equal(t, []int{1, 2, 3, 4}, insertAt(append([]int(nil), s...), 99, 4))
	assert.Equal(t, []int{0, 1, 2, 3}, insertAt(append([]int(nil), s...), -5, 0))
}
