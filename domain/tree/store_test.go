package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(PolicySequential, Position{X: 250, Y: 50})
}

func TestNewStore(t *testing.T) {
	s := newTestStore()

	require.Equal(t, 1, s.Len())
	require.Equal(t, "1", s.RootID())

	root, ok := s.Node("1")
	require.True(t, ok)
	assert.True(t, root.IsRoot())
	assert.True(t, root.Data.IsRoot)
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, 1, root.SubtreeHeight)
	assert.Equal(t, Position{X: 250, Y: 50}, root.Position)
}

func TestNewStoreInvalidPolicyFallsBack(t *testing.T) {
	s := NewStore(LayoutPolicy("spiral"), Position{})

	id, ok := s.AddChild(s.RootID())
	require.True(t, ok)

	child, ok := s.Node(id)
	require.True(t, ok)
	assert.Equal(t, Position{X: levelSpacingX, Y: siblingSpacingY}, child.Position)
}

func TestAddChild(t *testing.T) {
	s := newTestStore()

	id, ok := s.AddChild("1")
	require.True(t, ok)
	assert.Equal(t, "2", id)

	child, ok := s.Node(id)
	require.True(t, ok)
	assert.Equal(t, "1", child.ParentID)
	assert.Equal(t, 1, child.Level)
	assert.False(t, child.IsRoot())

	_, edges := s.Snapshot()
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{ID: "e1-2", Source: "1", Target: "2"}, edges[0])
}

func TestAddChildMissingParent(t *testing.T) {
	s := newTestStore()

	_, ok := s.AddChild("99")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestAddChildUpdatesHeightsAndPositions(t *testing.T) {
	s := newTestStore()

	a, _ := s.AddChild("1")
	b, _ := s.AddChild(a)

	root, _ := s.Node("1")
	assert.Equal(t, 3, root.SubtreeHeight)

	mid, _ := s.Node(a)
	assert.Equal(t, 2, mid.SubtreeHeight)
	assert.Equal(t, Position{X: 250 + levelSpacingX, Y: 50 + siblingSpacingY}, mid.Position)

	leaf, _ := s.Node(b)
	assert.Equal(t, 1, leaf.SubtreeHeight)
	assert.Equal(t, Position{X: 250 + 2*levelSpacingX, Y: 50 + 2*siblingSpacingY}, leaf.Position)
}

func TestRemoveSubtree(t *testing.T) {
	s := newTestStore()

	a, _ := s.AddChild("1")
	b, _ := s.AddChild("1")
	c, _ := s.AddChild(a)
	d, _ := s.AddChild(c)

	require.Equal(t, 5, s.Len())

	ok := s.RemoveSubtree(a)
	require.True(t, ok)

	assert.Equal(t, 2, s.Len())
	for _, id := range []string{a, c, d} {
		_, found := s.Node(id)
		assert.False(t, found, "node %s should be gone", id)
	}

	sibling, found := s.Node(b)
	require.True(t, found)
	assert.Equal(t, "1", sibling.ParentID)

	_, edges := s.Snapshot()
	require.Len(t, edges, 1)
	assert.Equal(t, b, edges[0].Target)
}

func TestRemoveSubtreeRootIsNoOp(t *testing.T) {
	s := newTestStore()
	s.AddChild("1")

	assert.False(t, s.RemoveSubtree("1"))
	assert.Equal(t, 2, s.Len())
}

func TestRemoveSubtreeMissingIsNoOp(t *testing.T) {
	s := newTestStore()

	assert.False(t, s.RemoveSubtree("42"))
	assert.Equal(t, 1, s.Len())
}

func TestIDsNeverReused(t *testing.T) {
	s := newTestStore()

	a, _ := s.AddChild("1") // "2"
	require.True(t, s.RemoveSubtree(a))

	b, _ := s.AddChild("1")
	assert.Equal(t, "3", b, "a freed id must not be handed out again")
}

func TestUpdateNodeData(t *testing.T) {
	s := newTestStore()
	id, _ := s.AddChild("1")

	label := "Ideas"
	body := "raw body"
	require.True(t, s.UpdateNodeData(id, NodeDataPatch{Label: &label, Body: &body}))

	node, _ := s.Node(id)
	assert.Equal(t, "Ideas", node.Data.Label)
	assert.Equal(t, "raw body", node.Data.Body)
	assert.Empty(t, node.Data.Context)

	ctx := "project context"
	require.True(t, s.UpdateNodeData(id, NodeDataPatch{Context: &ctx}))

	node, _ = s.Node(id)
	assert.Equal(t, "Ideas", node.Data.Label, "fields absent from the patch stay put")
	assert.Equal(t, "project context", node.Data.Context)
}

func TestUpdateNodeDataMissing(t *testing.T) {
	s := newTestStore()
	label := "x"
	assert.False(t, s.UpdateNodeData("7", NodeDataPatch{Label: &label}))
}

func TestNodeReturnsCopy(t *testing.T) {
	s := newTestStore()

	node, _ := s.Node("1")
	node.Data.Label = "mutated"

	fresh, _ := s.Node("1")
	assert.Empty(t, fresh.Data.Label)
}

func TestSnapshotOrderedAndEdgesDerived(t *testing.T) {
	s := newTestStore()

	// Build enough children to cross into double-digit ids.
	for i := 0; i < 10; i++ {
		_, ok := s.AddChild("1")
		require.True(t, ok)
	}

	nodes, edges := s.Snapshot()
	require.Len(t, nodes, 11)
	require.Len(t, edges, 10)

	// Numeric order, not lexicographic: "2" before "10".
	assert.Equal(t, "1", nodes[0].ID)
	assert.Equal(t, "2", nodes[1].ID)
	assert.Equal(t, "10", nodes[9].ID)
	assert.Equal(t, "11", nodes[10].ID)

	for _, e := range edges {
		assert.Equal(t, "e"+e.Source+"-"+e.Target, e.ID)
	}
}

func TestResolveContextFromStore(t *testing.T) {
	s := newTestStore()

	rootCtx := "world state"
	require.True(t, s.UpdateNodeData("1", NodeDataPatch{Context: &rootCtx}))

	mid, _ := s.AddChild("1")
	midCtx := "chapter"
	require.True(t, s.UpdateNodeData(mid, NodeDataPatch{Context: &midCtx}))

	leaf, _ := s.AddChild(mid)
	leafCtx := "scene"
	require.True(t, s.UpdateNodeData(leaf, NodeDataPatch{Context: &leafCtx}))

	entries := s.ResolveContext(leaf)
	require.Len(t, entries, 3)
	assert.Equal(t, ContextEntry{Context: "scene", Priority: 10}, entries[0])
	assert.Equal(t, ContextEntry{Context: "chapter", Priority: 8}, entries[1])
	assert.Equal(t, ContextEntry{Context: "world state", Priority: 6}, entries[2])
}
