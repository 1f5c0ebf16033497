package tree

import "sort"

// Layout policies. Sequential walks children top to bottom at a fixed
// horizontal step per level and never overlaps, at the cost of vertical
// space. Centered gives every subtree a horizontal span equal to the
// sum of its children's spans and centers the parent above it.
type LayoutPolicy string

const (
	PolicySequential LayoutPolicy = "sequential"
	PolicyCentered   LayoutPolicy = "centered"
)

// Spacing constants per policy, in screen units.
const (
	levelSpacingX   = 200.0 // sequential: horizontal step per level
	siblingSpacingY = 150.0 // sequential: vertical step per placed node

	levelGapY   = 100.0 // centered: vertical step per level
	siblingGapX = 150.0 // centered: horizontal span of one leaf
)

// Valid reports whether p names a known layout policy.
func (p LayoutPolicy) Valid() bool {
	return p == PolicySequential || p == PolicyCentered
}

// childrenOf returns the ids of a node's children ordered by plain
// lexicographic string comparison. Historical variants disagreed
// between string and numeric ordering; string order is canonical here
// and must not be changed without relayouting stored maps.
func childrenOf(nodes map[string]*Node, parentID string) []string {
	var ids []string
	for id, n := range nodes {
		if n.ParentID == parentID && id != parentID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// SubtreeHeights computes the height of every subtree hanging off
// rootID in one bottom-up pass: leaves count 1, internal nodes
// 1 + max over children. Returns the computed heights by node id.
func SubtreeHeights(nodes map[string]*Node, rootID string) map[string]int {
	heights := make(map[string]int, len(nodes))

	var walk func(id string) int
	walk = func(id string) int {
		max := 0
		for _, child := range childrenOf(nodes, id) {
			if h := walk(child); h > max {
				max = h
			}
		}
		heights[id] = 1 + max
		return heights[id]
	}

	if _, ok := nodes[rootID]; ok {
		walk(rootID)
	}
	return heights
}

// LayoutSubtree derives screen positions for every node reachable from
// rootID. It is a pure function of the tree shape: the same shape and
// origin always produce the same positions, and nodes outside the
// subtree are absent from the result.
func LayoutSubtree(nodes map[string]*Node, rootID string, origin Position, policy LayoutPolicy) map[string]Position {
	positions := make(map[string]Position, len(nodes))
	if _, ok := nodes[rootID]; !ok {
		return positions
	}

	switch policy {
	case PolicyCentered:
		layoutCentered(nodes, rootID, origin, positions)
	default:
		layoutSequential(nodes, rootID, origin, positions)
	}
	return positions
}

// layoutSequential places each node at x + levelSpacingX and a strictly
// increasing running y offset, regardless of subtree size.
func layoutSequential(nodes map[string]*Node, rootID string, origin Position, out map[string]Position) {
	var recurse func(id string, x, y float64) float64
	recurse = func(id string, x, y float64) float64 {
		out[id] = Position{X: x, Y: y}

		offsetY := y
		for _, child := range childrenOf(nodes, id) {
			offsetY = recurse(child, x+levelSpacingX, offsetY+siblingSpacingY)
		}
		return offsetY
	}
	recurse(rootID, origin.X, origin.Y)
}

// layoutCentered claims one siblingGapX of width per leaf, sums child
// widths for internal nodes and centers each parent over the span of
// its children.
func layoutCentered(nodes map[string]*Node, rootID string, origin Position, out map[string]Position) {
	var recurse func(id string, x, y float64) float64
	recurse = func(id string, x, y float64) float64 {
		children := childrenOf(nodes, id)
		if len(children) == 0 {
			out[id] = Position{X: x, Y: y}
			return siblingGapX
		}

		subtreeWidth := 0.0
		currentX := x
		for _, child := range children {
			w := recurse(child, currentX, y+levelGapY)
			currentX += w
			subtreeWidth += w
		}

		out[id] = Position{X: x + subtreeWidth/2 - siblingGapX/2, Y: y}
		return subtreeWidth
	}
	recurse(rootID, origin.X, origin.Y)
}
