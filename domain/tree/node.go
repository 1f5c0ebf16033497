// Package tree holds the canonical mind-map model: nodes, their derived
// edges, the geometric layout and the cascading-context resolver.
package tree

import (
	"strings"

	"mindmap-backend/domain/thesis"
)

// Position is a node's placement in screen units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// NodeData carries the user-editable content of a node.
type NodeData struct {
	Label   string          `json:"label"`
	Context string          `json:"context"`
	Body    string          `json:"body"`
	IsRoot  bool            `json:"isRoot"`
	Theses  []thesis.Thesis `json:"theses,omitempty"`
}

// NodeDataPatch is a partial update applied to NodeData. Nil fields are
// left untouched.
type NodeDataPatch struct {
	Label   *string          `json:"label,omitempty"`
	Context *string          `json:"context,omitempty"`
	Body    *string          `json:"body,omitempty"`
	Theses  *[]thesis.Thesis `json:"theses,omitempty"`
}

// Node is one mind-map entry. IDs are numeric strings assigned
// monotonically and never reused; ParentID is empty only for the root.
type Node struct {
	ID            string   `json:"id"`
	ParentID      string   `json:"parentId,omitempty"`
	Level         int      `json:"level"`
	SubtreeHeight int      `json:"subtreeHeight"`
	Position      Position `json:"position"`
	Data          NodeData `json:"data"`
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.ParentID == ""
}

// HasContext reports whether the node carries a non-blank context string.
func (n *Node) HasContext() bool {
	return strings.TrimSpace(n.Data.Context) != ""
}

// Apply merges a patch into the node's data.
func (n *Node) Apply(patch NodeDataPatch) {
	if patch.Label != nil {
		n.Data.Label = *patch.Label
	}
	if patch.Context != nil {
		n.Data.Context = *patch.Context
	}
	if patch.Body != nil {
		n.Data.Body = *patch.Body
	}
	if patch.Theses != nil {
		theses := make([]thesis.Thesis, len(*patch.Theses))
		copy(theses, *patch.Theses)
		n.Data.Theses = theses
	}
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	if n.Data.Theses != nil {
		c.Data.Theses = make([]thesis.Thesis, len(n.Data.Theses))
		copy(c.Data.Theses, n.Data.Theses)
	}
	return &c
}

// Edge is the derived parent->child link. Its ID is deterministic from
// the endpoints so the edge set can be rebuilt from nodes at any time.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewEdge builds the canonical edge for a (parent, child) pair.
func NewEdge(parentID, childID string) Edge {
	return Edge{
		ID:     "e" + parentID + "-" + childID,
		Source: parentID,
		Target: childID,
	}
}
