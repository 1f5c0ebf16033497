package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainNodes(contexts ...string) map[string]*Node {
	nodes := make(map[string]*Node, len(contexts))
	parent := ""
	for i, ctx := range contexts {
		id := string(rune('1' + i))
		nodes[id] = &Node{ID: id, ParentID: parent, Data: NodeData{Context: ctx}}
		parent = id
	}
	return nodes
}

func TestResolveContextFullChain(t *testing.T) {
	nodes := chainNodes("root ctx", "mid ctx", "leaf ctx")

	entries := ResolveContext(nodes, "3")
	require.Len(t, entries, 3)

	assert.Equal(t, ContextEntry{Context: "leaf ctx", Priority: 10}, entries[0])
	assert.Equal(t, ContextEntry{Context: "mid ctx", Priority: 8}, entries[1])
	assert.Equal(t, ContextEntry{Context: "root ctx", Priority: 6}, entries[2])
}

func TestResolveContextBlankLevelStillDecrements(t *testing.T) {
	nodes := chainNodes("root ctx", "   ", "leaf ctx")

	entries := ResolveContext(nodes, "3")
	require.Len(t, entries, 2)

	assert.Equal(t, ContextEntry{Context: "leaf ctx", Priority: 10}, entries[0])
	// The blank middle level is skipped but its level still costs a step.
	assert.Equal(t, ContextEntry{Context: "root ctx", Priority: 6}, entries[1])
}

func TestResolveContextOwnBlank(t *testing.T) {
	nodes := chainNodes("root ctx", "")

	entries := ResolveContext(nodes, "2")
	require.Len(t, entries, 1)
	assert.Equal(t, ContextEntry{Context: "root ctx", Priority: 8}, entries[0])
}

func TestResolveContextNoFloor(t *testing.T) {
	contexts := make([]string, 8)
	for i := range contexts {
		contexts[i] = "level"
	}
	nodes := chainNodes(contexts...)

	entries := ResolveContext(nodes, "8")
	require.Len(t, entries, 8)
	assert.Equal(t, 10, entries[0].Priority)
	assert.Equal(t, -4, entries[7].Priority)
}

func TestResolveContextTrimsWhitespace(t *testing.T) {
	nodes := chainNodes("  padded  ")

	entries := ResolveContext(nodes, "1")
	require.Len(t, entries, 1)
	assert.Equal(t, "padded", entries[0].Context)
}

func TestResolveContextMissingNode(t *testing.T) {
	assert.Nil(t, ResolveContext(map[string]*Node{}, "1"))
}

func TestResolveContextRootOnly(t *testing.T) {
	nodes := chainNodes("only")

	entries := ResolveContext(nodes, "1")
	require.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].Priority)
}
