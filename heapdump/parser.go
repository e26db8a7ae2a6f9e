// ABOUTME: Parser interface for heap snapshot dumps
// ABOUTME: Defines the contract for pluggable dump formats

// Package heapdump reads and writes heap snapshots so they can be inspected
// outside the process that took them.
package heapdump

import (
	"io"

	"github.com/prateek/gcroot/heapgraph"
)

// Parser reads one dump format.
type Parser interface {
	// CanParse inspects a preview of the dump. It must not assume it sees
	// the whole stream.
	CanParse(preview io.Reader) bool

	// Parse reads the full dump from the start.
	Parse(r io.Reader) (heapgraph.Graph, error)
}
