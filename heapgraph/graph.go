// ABOUTME: Graph interface and in-memory snapshot implementation
// ABOUTME: Stores heap cells and the root set captured from an arena

package heapgraph

import (
	"sort"
	"sync"
)

// Graph is a heap snapshot.
type Graph interface {
	// AddNode adds or replaces a cell
	AddNode(n *Node)

	// Node returns the cell with the given ID, or nil
	Node(id NodeID) *Node

	// NumNodes returns the number of cells
	NumNodes() int

	// ForEachNode visits cells in ascending ID order
	ForEachNode(fn func(*Node))

	// SetRoots records the root set
	SetRoots(roots Roots)

	// Roots returns the root set
	Roots() Roots
}

// MemGraph is an in-memory Graph. It is safe for concurrent readers once
// built, so a snapshot can be inspected while the arena keeps running.
type MemGraph struct {
	mu    sync.RWMutex
	nodes map[NodeID]*Node
	roots Roots
	// Epoch is the arena epoch the snapshot was taken in.
	Epoch uint32
}

func NewMemGraph() *MemGraph {
	return &MemGraph{
		nodes: make(map[NodeID]*Node),
	}
}

func (g *MemGraph) AddNode(n *Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[n.ID] = n
}

func (g *MemGraph) Node(id NodeID) *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[id]
}

func (g *MemGraph) NumNodes() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func (g *MemGraph) ForEachNode(fn func(*Node)) {
	g.mu.RLock()
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	g.mu.RUnlock()

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	for _, n := range nodes {
		fn(n)
	}
}

func (g *MemGraph) SetRoots(roots Roots) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = roots
}

func (g *MemGraph) Roots() Roots {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.roots
}
