// ABOUTME: Exports the live heap and root set as a heapgraph snapshot
// ABOUTME: Used to explain which root keeps a value alive

package arena

import (
	"github.com/prateek/gcroot/heapgraph"
	"github.com/prateek/gcroot/object"
)

// NodeID returns the snapshot ID of a heap value, or 0 for immediates.
func NodeID(o object.Obj) heapgraph.NodeID {
	return rawNodeID(o.Raw())
}

func rawNodeID(raw object.RawObj) heapgraph.NodeID {
	if !raw.Tag().IsHeap() {
		return 0
	}
	return heapgraph.NodeID(raw.Payload() + 1)
}

// Snapshot captures every allocated cell, live or not yet collected, along
// with the references each root-set entry marks.
func (a *Arena) Snapshot() *heapgraph.MemGraph {
	g := heapgraph.NewMemGraph()
	g.Epoch = a.epoch

	for i := range a.cells {
		c := &a.cells[i]
		if !c.used {
			continue
		}
		n := &heapgraph.Node{
			ID:   heapgraph.NodeID(i + 1),
			Kind: c.tag.String(),
			Ptrs: []heapgraph.NodeID{},
		}
		switch c.tag {
		case object.TagString:
			n.Size = uint64(len(c.str))
		case object.TagFloat:
			n.Size = 8
		case object.TagCons:
			n.Size = 16
			var refs WorkList
			c.cons.Mark(&refs)
			for _, raw := range refs {
				n.Ptrs = append(n.Ptrs, rawNodeID(raw))
			}
		}
		g.AddNode(n)
	}

	roots := heapgraph.Roots{IDs: []heapgraph.NodeID{}}
	seen := make(map[heapgraph.NodeID]bool)
	a.roots.each(func(depth int, t Trace) {
		var refs WorkList
		t.Mark(&refs)
		entry := heapgraph.RootEntry{Depth: depth, IDs: []heapgraph.NodeID{}}
		for _, raw := range refs {
			id := rawNodeID(raw)
			entry.IDs = append(entry.IDs, id)
			if !seen[id] {
				seen[id] = true
				roots.IDs = append(roots.IDs, id)
			}
		}
		roots.Entries = append(roots.Entries, entry)
	})
	g.SetRoots(roots)

	a.log.Debug().Int("nodes", g.NumNodes()).Int("roots", len(roots.Entries)).Msg("heap snapshot taken")
	return g
}
