package pathfind

import (
	"fmt"
	"slices"
)

// Parent is the value stored for a node in a ParentMap: either the search
// root marker or the id of the node it was discovered from.
type Parent struct {
	id  NodeID
	set bool
}

// Root returns the marker stored for the search root.
func Root() Parent { return Parent{} }

// Via returns a Parent pointing at id.
func Via(id NodeID) Parent { return Parent{id: id, set: true} }

// IsRoot reports whether p is the root marker.
func (p Parent) IsRoot() bool { return !p.set }

// ID returns the parent id, or false for the root marker.
func (p Parent) ID() (NodeID, bool) { return p.id, p.set }

// String implements fmt.Stringer.
func (p Parent) String() string {
	if !p.set {
		return "root"
	}

	return fmt.Sprintf("via(%d)", p.id)
}

// ParentMap records, for every node discovered by one search, the node it
// was first reached from. Entries are fixed on first discovery and never
// rewritten. A ParentMap belongs to a single search call.
type ParentMap struct {
	root    NodeID
	parents map[NodeID]Parent
}

// NewParentMap returns a map containing only root.
func NewParentMap(root NodeID) *ParentMap {
	return &ParentMap{
		root:    root,
		parents: map[NodeID]Parent{root: Root()},
	}
}

// ParentMapFromEntries builds a ParentMap from raw entries without checking
// them. The root is the smallest id carrying the root marker. Use it for maps
// that did not come from a search; Reconstruct reports malformed ones as
// Corrupt.
func ParentMapFromEntries(entries map[NodeID]Parent) *ParentMap {
	m := &ParentMap{parents: make(map[NodeID]Parent, len(entries))}

	rootSet := false

	for id, p := range entries {
		m.parents[id] = p

		if p.IsRoot() && (!rootSet || id < m.root) {
			m.root = id
			rootSet = true
		}
	}

	return m
}

// Root returns the node the search started from.
func (m *ParentMap) Root() NodeID { return m.root }

// Discover records parent as the parent of child. It returns false and
// leaves the map unchanged when child is already present.
func (m *ParentMap) Discover(child, parent NodeID) bool {
	if _, ok := m.parents[child]; ok {
		return false
	}

	m.parents[child] = Via(parent)

	return true
}

// Contains reports whether id has been discovered.
func (m *ParentMap) Contains(id NodeID) bool {
	_, ok := m.parents[id]

	return ok
}

// Parent returns the entry for id.
func (m *ParentMap) Parent(id NodeID) (Parent, bool) {
	p, ok := m.parents[id]

	return p, ok
}

// Len returns the number of discovered nodes, root included.
func (m *ParentMap) Len() int { return len(m.parents) }

// IDs returns every discovered node in ascending order.
func (m *ParentMap) IDs() []NodeID {
	ids := make([]NodeID, 0, len(m.parents))
	for id := range m.parents {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}
