package tree

import "strings"

// Context priorities: the node itself ranks highest and each ancestor
// level drops by a fixed step. There is deliberately no floor, so very
// deep trees produce negative priorities rather than losing entries.
const (
	maxContextPriority  = 10
	contextPriorityStep = 2
)

// ContextEntry is one prioritized ancestor context string, produced
// transiently for prompt assembly and never persisted.
type ContextEntry struct {
	Context  string `json:"context"`
	Priority int    `json:"priority"`
}

// ResolveContext assembles the cascading context for nodeID: the node's
// own trimmed context first, then each ancestor from nearest to
// farthest. Blank contexts produce no entry but still consume the
// priority decrement for their level, so the ranking always reflects
// tree distance.
func ResolveContext(nodes map[string]*Node, nodeID string) []ContextEntry {
	current, ok := nodes[nodeID]
	if !ok {
		return nil
	}

	var entries []ContextEntry
	priority := maxContextPriority

	if ctx := strings.TrimSpace(current.Data.Context); ctx != "" {
		entries = append(entries, ContextEntry{Context: ctx, Priority: priority})
	}

	for current.ParentID != "" {
		parent, ok := nodes[current.ParentID]
		if !ok {
			break
		}
		priority -= contextPriorityStep
		if ctx := strings.TrimSpace(parent.Data.Context); ctx != "" {
			entries = append(entries, ContextEntry{Context: ctx, Priority: priority})
		}
		current = parent
	}

	return entries
}
