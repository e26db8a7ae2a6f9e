// ABOUTME: Core data types for heap snapshots
// ABOUTME: Defines Node, NodeID and the root-set view of a snapshot

// Package heapgraph holds point-in-time snapshots of an arena's live cells
// and the algorithms used to explain why a cell is still alive.
package heapgraph

// NodeID identifies a heap cell in a snapshot. IDs start at 1.
type NodeID uint64

// Node is one live heap cell.
type Node struct {
	ID   NodeID   // Cell identifier
	Kind string   // Value tag, e.g. "cons" or "string"
	Size uint64   // Approximate payload size in bytes
	Ptrs []NodeID // Cells this cell refers to
}

// RootEntry lists the cells marked directly by one root-set entry.
type RootEntry struct {
	Depth int      // 1-based position in the root set
	IDs   []NodeID // Cells the entry pushed in its Mark
}

// Roots is the root set as seen by the snapshot.
type Roots struct {
	IDs     []NodeID    // Union of all entries, in first-seen order
	Entries []RootEntry // One per installed root, oldest first
}
