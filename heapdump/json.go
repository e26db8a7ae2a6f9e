// ABOUTME: JSON dump format for heap snapshots
// ABOUTME: Written with encoding/json, read back with gjson

package heapdump

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/prateek/gcroot/heapgraph"
)

// FormatName marks a JSON snapshot dump. It is written as the first key so
// a preview can identify the format.
const FormatName = "gcroot-snapshot"

type jsonDump struct {
	Format  string      `json:"format"`
	Epoch   uint32      `json:"epoch"`
	Nodes   []jsonNode  `json:"nodes"`
	Roots   []uint64    `json:"roots"`
	Entries []jsonEntry `json:"entries"`
}

type jsonNode struct {
	ID   uint64   `json:"id"`
	Kind string   `json:"kind"`
	Size uint64   `json:"size"`
	Ptrs []uint64 `json:"ptrs"`
}

type jsonEntry struct {
	Depth int      `json:"depth"`
	IDs   []uint64 `json:"ids"`
}

// WriteJSON writes g as a JSON snapshot dump.
func WriteJSON(w io.Writer, g heapgraph.Graph) error {
	dump := jsonDump{Format: FormatName, Nodes: []jsonNode{}, Roots: []uint64{}, Entries: []jsonEntry{}}
	if mg, ok := g.(*heapgraph.MemGraph); ok {
		dump.Epoch = mg.Epoch
	}
	g.ForEachNode(func(n *heapgraph.Node) {
		dump.Nodes = append(dump.Nodes, jsonNode{ID: uint64(n.ID), Kind: n.Kind, Size: n.Size, Ptrs: toUints(n.Ptrs)})
	})
	roots := g.Roots()
	dump.Roots = toUints(roots.IDs)
	for _, e := range roots.Entries {
		dump.Entries = append(dump.Entries, jsonEntry{Depth: e.Depth, IDs: toUints(e.IDs)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

func toUints(ids []heapgraph.NodeID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

// JSONParser reads dumps written by WriteJSON.
type JSONParser struct{}

func (p *JSONParser) CanParse(preview io.Reader) bool {
	buf := make([]byte, 1024)
	n, err := preview.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	return gjson.GetBytes(buf[:n], "format").String() == FormatName
}

func (p *JSONParser) Parse(r io.Reader) (heapgraph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to decode JSON: invalid document")
	}
	doc := gjson.ParseBytes(data)
	if got := doc.Get("format").String(); got != FormatName {
		return nil, fmt.Errorf("failed to decode JSON: format %q", got)
	}

	g := heapgraph.NewMemGraph()
	g.Epoch = uint32(doc.Get("epoch").Uint())

	var parseErr error
	doc.Get("nodes").ForEach(func(i, node gjson.Result) bool {
		id := node.Get("id").Uint()
		if id == 0 {
			parseErr = fmt.Errorf("node at index %d missing ID", i.Int())
			return false
		}
		g.AddNode(&heapgraph.Node{
			ID:   heapgraph.NodeID(id),
			Kind: node.Get("kind").String(),
			Size: node.Get("size").Uint(),
			Ptrs: ids(node.Get("ptrs")),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	roots := heapgraph.Roots{IDs: ids(doc.Get("roots"))}
	doc.Get("entries").ForEach(func(_, e gjson.Result) bool {
		roots.Entries = append(roots.Entries, heapgraph.RootEntry{
			Depth: int(e.Get("depth").Int()),
			IDs:   ids(e.Get("ids")),
		})
		return true
	})
	g.SetRoots(roots)
	return g, nil
}

func ids(r gjson.Result) []heapgraph.NodeID {
	out := []heapgraph.NodeID{}
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, heapgraph.NodeID(v.Uint()))
		return true
	})
	return out
}

func init() {
	Register(&JSONParser{})
}
