// ABOUTME: Reachability over a heap snapshot
// ABOUTME: Mirrors the collector's mark phase for diagnostics and tests

package heapgraph

import "sort"

// Reachable returns every cell reachable from the root set.
func Reachable(g Graph) map[NodeID]bool {
	return ReachableFrom(g, g.Roots().IDs)
}

// ReachableFrom returns every cell reachable from start.
func ReachableFrom(g Graph, start []NodeID) map[NodeID]bool {
	seen := make(map[NodeID]bool)
	stack := append([]NodeID(nil), start...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		n := g.Node(id)
		if n == nil {
			continue
		}
		seen[id] = true
		stack = append(stack, n.Ptrs...)
	}
	return seen
}

// Garbage returns the cells the next collection would free, in ID order.
func Garbage(g Graph) []NodeID {
	live := Reachable(g)
	var out []NodeID
	g.ForEachNode(func(n *Node) {
		if !live[n.ID] {
			out = append(out, n.ID)
		}
	})
	return out
}

// HoldingEntries returns the depths of the root-set entries that keep id
// alive, oldest first.
func HoldingEntries(g Graph, id NodeID) []int {
	var depths []int
	for _, e := range g.Roots().Entries {
		if ReachableFrom(g, e.IDs)[id] {
			depths = append(depths, e.Depth)
		}
	}
	sort.Ints(depths)
	return depths
}
