// ABOUTME: Builds reverse edges for snapshot traversal
// ABOUTME: Maps each cell to the cells that refer to it

package heapgraph

// ReverseEdges maps each cell to its referrers.
type ReverseEdges map[NodeID][]NodeID

func BuildReverseEdges(g Graph) ReverseEdges {
	reverse := make(ReverseEdges)
	g.ForEachNode(func(n *Node) {
		for _, to := range n.Ptrs {
			reverse[to] = append(reverse[to], n.ID)
		}
	})
	return reverse
}
