package tree

import (
	"sort"
	"strconv"
	"sync"
)

// Store owns the canonical node and edge collections of one mind-map.
//
// All mutations run to completion under a single mutex, matching the
// one-writer event model of the editor: two tree mutations never
// interleave, and every mutation that changes the shape finishes with
// recomputed subtree heights and positions before it returns.
//
// Operations on ids that no longer exist are silent no-ops reported
// through the boolean return, never errors: a stale id arriving after
// a deletion is an expected race, not a fault.
type Store struct {
	mu     sync.Mutex
	nodes  map[string]*Node
	edges  []Edge
	rootID string
	lastID int
	policy LayoutPolicy
	origin Position
}

// NewStore creates a store holding a single root node placed at origin.
// The root id is allocated like any other id (it is "1" for a fresh
// store) and kept in an explicit field; nothing else may assume the
// literal value.
func NewStore(policy LayoutPolicy, origin Position) *Store {
	if !policy.Valid() {
		policy = PolicySequential
	}

	s := &Store{
		nodes:  make(map[string]*Node),
		policy: policy,
		origin: origin,
	}

	rootID := s.nextID()
	s.nodes[rootID] = &Node{
		ID:            rootID,
		Level:         0,
		SubtreeHeight: 1,
		Position:      origin,
		Data:          NodeData{IsRoot: true},
	}
	s.rootID = rootID
	return s
}

// RootID returns the id of the root node.
func (s *Store) RootID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rootID
}

// AddChild creates an empty child under parentID and relayouts the
// tree. Returns the new id, or ok=false (state unchanged) when the
// parent does not exist.
func (s *Store) AddChild(parentID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.nodes[parentID]
	if !ok {
		return "", false
	}

	id := s.nextID()
	s.nodes[id] = &Node{
		ID:            id,
		ParentID:      parentID,
		Level:         parent.Level + 1,
		SubtreeHeight: 1,
		Position:      Position{},
	}
	s.edges = append(s.edges, NewEdge(parentID, id))

	s.recompute()
	return id, true
}

// RemoveSubtree deletes nodeID and every descendant, along with all
// edges touching the removed set, then relayouts. Removing the root or
// a missing id is a no-op.
func (s *Store) RemoveSubtree(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if nodeID == s.rootID {
		return false
	}
	if _, ok := s.nodes[nodeID]; !ok {
		return false
	}

	doomed := s.descendantSet(nodeID)
	for id := range doomed {
		delete(s.nodes, id)
	}

	kept := s.edges[:0]
	for _, e := range s.edges {
		if doomed[e.Source] || doomed[e.Target] {
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept

	s.recompute()
	return true
}

// UpdateNodeData merges patch into a node's data. Content changes do
// not alter the tree shape, so no relayout happens here.
func (s *Store) UpdateNodeData(nodeID string, patch NodeDataPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[nodeID]
	if !ok {
		return false
	}
	node.Apply(patch)
	return true
}

// Node returns a copy of one node.
func (s *Store) Node(id string) (*Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, false
	}
	return node.Clone(), true
}

// ResolveContext walks the parent chain of nodeID and returns the
// prioritized ancestor contexts for prompt assembly.
func (s *Store) ResolveContext(nodeID string) []ContextEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ResolveContext(s.nodes, nodeID)
}

// Snapshot returns copies of all nodes (ordered by numeric id) and the
// derived edge set, for the rendering boundary.
func (s *Store) Snapshot() ([]Node, []Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, *n.Clone())
	}
	sort.Slice(nodes, func(i, j int) bool {
		a, _ := strconv.Atoi(nodes[i].ID)
		b, _ := strconv.Atoi(nodes[j].ID)
		if a != b {
			return a < b
		}
		return nodes[i].ID < nodes[j].ID
	})

	edges := make([]Edge, len(s.edges))
	copy(edges, s.edges)
	return nodes, edges
}

// Len returns the current node count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

// nextID allocates max numeric id + 1. The high-water mark never
// decreases, so an id freed by a deletion is never handed out again.
func (s *Store) nextID() string {
	max := s.lastID
	for id := range s.nodes {
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	s.lastID = max + 1
	return strconv.Itoa(s.lastID)
}

// descendantSet collects nodeID and everything transitively below it.
func (s *Store) descendantSet(nodeID string) map[string]bool {
	doomed := make(map[string]bool)

	var collect func(id string)
	collect = func(id string) {
		doomed[id] = true
		for childID, n := range s.nodes {
			if n.ParentID == id && !doomed[childID] {
				collect(childID)
			}
		}
	}
	collect(nodeID)
	return doomed
}

// recompute refreshes subtree heights and positions from the root.
// Callers hold the mutex.
func (s *Store) recompute() {
	for id, h := range SubtreeHeights(s.nodes, s.rootID) {
		s.nodes[id].SubtreeHeight = h
	}
	for id, pos := range LayoutSubtree(s.nodes, s.rootID, s.origin, s.policy) {
		s.nodes[id].Position = pos
	}
}
