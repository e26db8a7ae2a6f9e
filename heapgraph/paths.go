// ABOUTME: BFS from a cell back to the root set
// ABOUTME: Answers "which roots keep this value alive"

package heapgraph

// Path runs from a cell to a directly rooted cell.
type Path struct {
	IDs []NodeID
}

// PathsToRoots returns up to maxPaths shortest-first paths from a cell to
// cells marked directly by the root set. Paths never revisit a cell.
func PathsToRoots(g Graph, from NodeID, maxPaths int) []Path {
	if maxPaths <= 0 {
		return nil
	}

	rooted := make(map[NodeID]bool)
	for _, id := range g.Roots().IDs {
		rooted[id] = true
	}
	if rooted[from] {
		return []Path{{IDs: []NodeID{from}}}
	}

	reverse := BuildReverseEdges(g)

	var result []Path
	queue := [][]NodeID{{from}}
	for len(queue) > 0 && len(result) < maxPaths {
		path := queue[0]
		queue = queue[1:]

		for _, ref := range reverse[path[len(path)-1]] {
			if onPath(path, ref) {
				continue
			}
			next := append(append(make([]NodeID, 0, len(path)+1), path...), ref)
			if !rooted[ref] {
				queue = append(queue, next)
				continue
			}
			result = append(result, Path{IDs: next})
			if len(result) == maxPaths {
				break
			}
		}
	}
	return result
}

func onPath(path []NodeID, id NodeID) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}
