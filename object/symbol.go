// ABOUTME: Process-wide symbol interning and symbol function cells
// ABOUTME: Symbols are immediates and never need rooting

package object

import (
	"sync"
	"sync/atomic"
)

// Symbol is an interned name. The zero Symbol is the empty name.
type Symbol uint32

type symbolEntry struct {
	name string
	// fn holds the function cell as a RawObj; 0 (the nil word) is unset.
	fn atomic.Uint64
}

var symbols = struct {
	mu      sync.RWMutex
	entries []*symbolEntry
	index   map[string]Symbol
}{
	entries: []*symbolEntry{{name: ""}},
	index:   map[string]Symbol{"": 0},
}

// Intern returns the symbol for name, creating it on first use.
func Intern(name string) Symbol {
	symbols.mu.RLock()
	s, ok := symbols.index[name]
	symbols.mu.RUnlock()
	if ok {
		return s
	}

	symbols.mu.Lock()
	defer symbols.mu.Unlock()
	if s, ok := symbols.index[name]; ok {
		return s
	}
	s = Symbol(len(symbols.entries))
	symbols.entries = append(symbols.entries, &symbolEntry{name: name})
	symbols.index[name] = s
	return s
}

func (s Symbol) entry() *symbolEntry {
	symbols.mu.RLock()
	defer symbols.mu.RUnlock()
	if int(s) >= len(symbols.entries) {
		return nil
	}
	return symbols.entries[s]
}

func (s Symbol) Name() string {
	if e := s.entry(); e != nil {
		return e.name
	}
	return ""
}

// SetFunc stores fn in the symbol's function cell. Storing the nil word
// unsets it. The cell is shared by every arena and is not traced, so only
// immediates or values rooted elsewhere belong in it.
func (s Symbol) SetFunc(fn RawObj) {
	if e := s.entry(); e != nil {
		e.fn.Store(uint64(fn))
	}
}

// Func returns the symbol's function cell, or false when it is unset.
func (s Symbol) Func() (RawObj, bool) {
	e := s.entry()
	if e == nil {
		return 0, false
	}
	fn := RawObj(e.fn.Load())
	return fn, fn != Nil.Raw()
}

func (s Symbol) String() string {
	return "'" + s.Name()
}
