// ABOUTME: Registry of snapshot dump parsers
// ABOUTME: Picks the first parser that recognises a dump

package heapdump

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/prateek/gcroot/heapgraph"
)

// ErrNoParser is returned when no registered parser recognises a dump.
var ErrNoParser = errors.New("no parser found for dump format")

const previewSize = 4096

type parserRegistry struct {
	mu      sync.RWMutex
	parsers []Parser
}

var registry = &parserRegistry{}

// Register adds p. Parsers are tried in registration order.
func Register(p Parser) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.parsers = append(registry.parsers, p)
}

// Open detects the dump format of r and parses it.
func Open(r io.Reader) (heapgraph.Graph, error) {
	br := bufio.NewReaderSize(r, previewSize)
	preview, err := br.Peek(previewSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	registry.mu.RLock()
	parsers := append([]Parser(nil), registry.parsers...)
	registry.mu.RUnlock()

	for _, p := range parsers {
		if p.CanParse(bytes.NewReader(preview)) {
			return p.Parse(br)
		}
	}
	return nil, ErrNoParser
}
