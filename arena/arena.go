// ABOUTME: The heap anchor: cells, allocation and the arena's root set
// ABOUTME: Dereferences are checked against the current collection epoch

// Package arena implements the rooting protocol for the lisp heap.
//
// Native code that must keep a heap value alive across a safe point roots it:
// it wraps the value in rooted storage, installs that storage in the arena's
// RootSet through a Guard, and releases the guard when its scope ends.
// Branded roots (Root) can additionally only be borrowed through the Owner
// of the session that created them.
//
// The arena itself is a simple non-moving mark/sweep heap. Allocation never
// collects; collection happens at explicit safe points (MaybeCollect,
// Collect), after which every unrooted Obj is stale and any attempt to use it
// panics.
package arena

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prateek/gcroot/internal/logging"
	"github.com/prateek/gcroot/object"
)

// Stats describes allocation and collection activity.
type Stats struct {
	Collections uint64
	Allocated   uint64
	Freed       uint64
	Live        int
	LastMarked  int
	// LastRootRefs is the number of heap references pushed directly by
	// root-set entries in the last collection.
	LastRootRefs int
}

type Option func(*Arena)

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Arena) {
		a.log = logger
	}
}

// Arena owns the heap cells and exactly one RootSet.
type Arena struct {
	roots      RootSet
	cells      []cell
	free       []uint32
	epoch      uint32
	sinceGC    int
	collecting bool
	cfg        Config
	stats      Stats
	log        zerolog.Logger
}

func New(cfg Config, opts ...Option) *Arena {
	a := &Arena{
		cells: make([]cell, 0, cfg.InitialCells),
		epoch: 1,
		cfg:   cfg,
		log:   logging.New("arena"),
	}
	if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
		a.log = a.log.Level(level)
	}
	if level, ok := logging.EnvLevel(); ok {
		a.log = a.log.Level(level)
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log.Debug().
		Int("initial_cells", cfg.InitialCells).
		Int("collect_threshold", cfg.Threshold).
		Bool("stress", cfg.Stress).
		Msg("arena created")
	return a
}

func (a *Arena) RootSet() *RootSet { return &a.roots }

// Epoch increases with every collection.
func (a *Arena) Epoch() uint32 { return a.epoch }

func (a *Arena) Config() Config { return a.cfg }

func (a *Arena) Stats() Stats {
	s := a.stats
	s.Live = a.Live()
	return s
}

// Live returns the number of allocated cells.
func (a *Arena) Live() int {
	return len(a.cells) - len(a.free)
}

func (a *Arena) bind(raw object.RawObj) object.Obj {
	return object.Bind(raw, a.epoch)
}

// check panics if o is a heap reference from an earlier epoch.
func (a *Arena) check(o object.Obj) {
	if !o.Tag().IsHeap() {
		return
	}
	if o.Epoch() != a.epoch {
		fatal(ErrStaleObject, "%s bound in epoch %d, arena is at epoch %d", o.Tag(), o.Epoch(), a.epoch)
	}
}

func (a *Arena) mutator() {
	if a.collecting {
		fatal(ErrCollecting, "mutable borrow during collection")
	}
}

func (a *Arena) alloc(c cell) uint32 {
	c.used = true
	a.stats.Allocated++
	a.sinceGC++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.cells[idx] = c
		return idx
	}
	a.cells = append(a.cells, c)
	return uint32(len(a.cells) - 1)
}

func (a *Arena) AddString(s string) object.Obj {
	idx := a.alloc(cell{tag: object.TagString, str: s})
	return a.bind(object.MakeRaw(object.TagString, uint64(idx)))
}

func (a *Arena) AddFloat(f float64) object.Obj {
	idx := a.alloc(cell{tag: object.TagFloat, num: f})
	return a.bind(object.MakeRaw(object.TagFloat, uint64(idx)))
}

// Cons allocates a pair. car and cdr must be current.
func (a *Arena) Cons(car, cdr object.Obj) object.Obj {
	a.check(car)
	a.check(cdr)
	c := &Cons{car: car.Raw(), cdr: cdr.Raw(), arena: a}
	c.slot = a.alloc(cell{tag: object.TagCons, cons: c})
	return a.bind(c.raw())
}

func (a *Arena) lookup(o object.Obj, tag object.Tag) *cell {
	a.check(o)
	if o.Tag() != tag {
		return nil
	}
	idx := o.Raw().Payload()
	if idx >= uint64(len(a.cells)) || !a.cells[idx].used {
		fatal(ErrDeadObject, "%s cell %d", tag, idx)
	}
	return &a.cells[idx]
}

func (a *Arena) StringOf(o object.Obj) (string, bool) {
	c := a.lookup(o, object.TagString)
	if c == nil {
		return "", false
	}
	return c.str, true
}

func (a *Arena) FloatOf(o object.Obj) (float64, bool) {
	c := a.lookup(o, object.TagFloat)
	if c == nil {
		return 0, false
	}
	return c.num, true
}

func (a *Arena) ConsOf(o object.Obj) (*Cons, bool) {
	c := a.lookup(o, object.TagCons)
	if c == nil {
		return nil, false
	}
	return c.cons, true
}

// Format prints o in lisp syntax.
func (a *Arena) Format(o object.Obj) string {
	var b strings.Builder
	a.format(&b, o, 0)
	return b.String()
}

const maxFormatDepth = 64

func (a *Arena) format(b *strings.Builder, o object.Obj, depth int) {
	switch o.Tag() {
	case object.TagNil:
		b.WriteString("nil")
	case object.TagTrue:
		b.WriteString("t")
	case object.TagInt:
		n, _ := o.AsInt()
		b.WriteString(strconv.FormatInt(n, 10))
	case object.TagSymbol:
		s, _ := o.AsSymbol()
		b.WriteString(s.Name())
	case object.TagFloat:
		f, _ := a.FloatOf(o)
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnNI") {
			s += ".0"
		}
		b.WriteString(s)
	case object.TagString:
		s, _ := a.StringOf(o)
		b.WriteString(strconv.Quote(s))
	case object.TagCons:
		if depth >= maxFormatDepth {
			b.WriteString("(...)")
			return
		}
		seen := map[uint64]bool{}
		b.WriteByte('(')
		for first := true; ; first = false {
			slot := o.Raw().Payload()
			if seen[slot] {
				b.WriteString(" ...")
				break
			}
			seen[slot] = true
			c, _ := a.ConsOf(o)
			if !first {
				b.WriteByte(' ')
			}
			a.format(b, c.Car(), depth+1)
			o = c.Cdr()
			if o.Tag() == object.TagCons {
				continue
			}
			if !o.IsNil() {
				b.WriteString(" . ")
				a.format(b, o, depth+1)
			}
			break
		}
		b.WriteByte(')')
	default:
		b.WriteString(o.Tag().String())
	}
}
