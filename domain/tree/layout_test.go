package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNodes wires a node map from parent->children adjacency. Node "1"
// is the root.
func buildNodes(children map[string][]string) map[string]*Node {
	nodes := map[string]*Node{
		"1": {ID: "1", Data: NodeData{IsRoot: true}},
	}
	var attach func(parentID string, level int)
	attach = func(parentID string, level int) {
		for _, id := range children[parentID] {
			nodes[id] = &Node{ID: id, ParentID: parentID, Level: level}
			attach(id, level+1)
		}
	}
	attach("1", 1)
	return nodes
}

func TestSubtreeHeights(t *testing.T) {
	nodes := buildNodes(map[string][]string{
		"1": {"2", "3"},
		"2": {"4"},
		"4": {"5"},
	})

	heights := SubtreeHeights(nodes, "1")

	assert.Equal(t, 4, heights["1"])
	assert.Equal(t, 3, heights["2"])
	assert.Equal(t, 1, heights["3"])
	assert.Equal(t, 2, heights["4"])
	assert.Equal(t, 1, heights["5"])
}

func TestSubtreeHeightsMissingRoot(t *testing.T) {
	heights := SubtreeHeights(map[string]*Node{}, "1")
	assert.Empty(t, heights)
}

func TestLayoutSequential(t *testing.T) {
	nodes := buildNodes(map[string][]string{
		"1": {"2", "3"},
		"2": {"4"},
	})
	origin := Position{X: 250, Y: 50}

	pos := LayoutSubtree(nodes, "1", origin, PolicySequential)
	require.Len(t, pos, 4)

	assert.Equal(t, origin, pos["1"])
	assert.Equal(t, Position{X: 450, Y: 200}, pos["2"])
	assert.Equal(t, Position{X: 650, Y: 350}, pos["4"])
	// "3" is placed after the entire subtree of "2" has consumed its rows.
	assert.Equal(t, Position{X: 450, Y: 500}, pos["3"])
}

func TestLayoutSequentialDeepChain(t *testing.T) {
	nodes := buildNodes(map[string][]string{
		"1": {"2"},
		"2": {"3"},
		"3": {"4"},
	})

	pos := LayoutSubtree(nodes, "1", Position{}, PolicySequential)

	for i, id := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, Position{
			X: float64(i) * levelSpacingX,
			Y: float64(i) * siblingSpacingY,
		}, pos[id])
	}
}

func TestLayoutCentered(t *testing.T) {
	nodes := buildNodes(map[string][]string{
		"1": {"2", "3"},
	})
	origin := Position{X: 100, Y: 0}

	pos := LayoutSubtree(nodes, "1", origin, PolicyCentered)
	require.Len(t, pos, 3)

	// Two leaves claim one gap each, side by side one level down.
	assert.Equal(t, Position{X: 100, Y: levelGapY}, pos["2"])
	assert.Equal(t, Position{X: 100 + siblingGapX, Y: levelGapY}, pos["3"])

	// Parent centered over the combined span.
	assert.Equal(t, Position{X: 100 + siblingGapX/2, Y: 0}, pos["1"])
}

func TestLayoutCenteredUnevenSubtrees(t *testing.T) {
	nodes := buildNodes(map[string][]string{
		"1": {"2", "3"},
		"2": {"4", "5"},
	})

	pos := LayoutSubtree(nodes, "1", Position{}, PolicyCentered)

	// Subtree of "2" spans two leaf widths, "3" one. "2" sits centered
	// over its children, "3" starts where that span ends.
	assert.Equal(t, Position{X: 0, Y: 2 * levelGapY}, pos["4"])
	assert.Equal(t, Position{X: siblingGapX, Y: 2 * levelGapY}, pos["5"])
	assert.Equal(t, Position{X: siblingGapX / 2, Y: levelGapY}, pos["2"])
	assert.Equal(t, Position{X: 2 * siblingGapX, Y: levelGapY}, pos["3"])
	assert.Equal(t, Position{X: 3*siblingGapX/2 - siblingGapX/2, Y: 0}, pos["1"])
}

func TestLayoutIsDeterministic(t *testing.T) {
	nodes := buildNodes(map[string][]string{
		"1": {"2", "3", "4"},
		"3": {"5"},
	})

	first := LayoutSubtree(nodes, "1", Position{X: 10, Y: 20}, PolicySequential)
	second := LayoutSubtree(nodes, "1", Position{X: 10, Y: 20}, PolicySequential)
	assert.Equal(t, first, second)
}

func TestChildOrderIsLexicographic(t *testing.T) {
	// Ids 9 and 10: lexicographic order puts "10" before "9".
	nodes := map[string]*Node{
		"1":  {ID: "1"},
		"9":  {ID: "9", ParentID: "1"},
		"10": {ID: "10", ParentID: "1"},
	}

	pos := LayoutSubtree(nodes, "1", Position{}, PolicySequential)
	assert.Less(t, pos["10"].Y, pos["9"].Y)
}

func TestLayoutMissingRoot(t *testing.T) {
	pos := LayoutSubtree(map[string]*Node{}, "1", Position{}, PolicySequential)
	assert.Empty(t, pos)
}
