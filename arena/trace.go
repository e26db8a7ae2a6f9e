// ABOUTME: The tracing contract used by the mark phase
// ABOUTME: Rooted types push the heap references they own onto a WorkList

package arena

import "github.com/prateek/gcroot/object"

// Trace is implemented by every rooted type and heap node. Mark pushes every
// heap reference the value directly owns; the collector finds the rest.
// An omitted field is a premature free.
type Trace interface {
	Mark(stack *WorkList)
}

// WorkList is the mark stack.
type WorkList []object.RawObj

// Push records raw if it refers to an arena cell. Immediates are dropped.
func (w *WorkList) Push(raw object.RawObj) {
	if raw.Tag().IsHeap() {
		*w = append(*w, raw)
	}
}

func (w WorkList) Len() int { return len(w) }

// Refs returns the pending references, most recent last.
func (w WorkList) Refs() []object.RawObj { return w }

func (w *WorkList) pop() (object.RawObj, bool) {
	n := len(*w)
	if n == 0 {
		return 0, false
	}
	raw := (*w)[n-1]
	*w = (*w)[:n-1]
	return raw, true
}
