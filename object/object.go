// ABOUTME: Tagged encoding of references into the lisp heap
// ABOUTME: Defines RawObj (epoch erased) and Obj (bound to one collection epoch)

// Package object defines how lisp values are encoded as tagged words.
//
// A RawObj is the bare encoding: tag bits in the low three bits, payload
// above them. Immediates (nil, t, fixnums, symbols) carry their value in the
// payload; heap values carry the index of their arena cell.
//
// An Obj is a RawObj bound to the collection epoch it was read in. Arenas
// refuse to dereference a heap Obj from an older epoch, which is how an
// unrooted reference held across a collection is caught.
package object

import "fmt"

// Tag identifies the dynamic type of a value.
type Tag uint8

const (
	TagNil Tag = iota
	TagTrue
	TagInt
	TagSymbol
	TagFloat
	TagString
	TagCons
)

const (
	tagBits = 3
	tagMask = 1<<tagBits - 1
)

// Fixnum range representable as an immediate Int.
const (
	MaxInt = 1<<(63-tagBits) - 1
	MinInt = -1 << (63 - tagBits)
)

func (t Tag) String() string {
	switch t {
	case TagNil:
		return "nil"
	case TagTrue:
		return "t"
	case TagInt:
		return "int"
	case TagSymbol:
		return "symbol"
	case TagFloat:
		return "float"
	case TagString:
		return "string"
	case TagCons:
		return "cons"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// IsHeap reports whether values with this tag live in an arena cell.
func (t Tag) IsHeap() bool {
	return t >= TagFloat && t <= TagCons
}

// RawObj is a tagged word with no epoch attached.
type RawObj uint64

// MakeRaw packs a tag and payload into a RawObj.
func MakeRaw(tag Tag, payload uint64) RawObj {
	return RawObj(payload<<tagBits | uint64(tag))
}

func (r RawObj) Tag() Tag {
	return Tag(r & tagMask)
}

func (r RawObj) Payload() uint64 {
	return uint64(r) >> tagBits
}

// Obj is a reference valid for a single collection epoch.
type Obj struct {
	raw   RawObj
	epoch uint32
}

var (
	Nil  = Obj{}
	True = Obj{raw: MakeRaw(TagTrue, 0)}
)

// Bind attaches an epoch to a raw word. Only the arena should call this
// for heap values; it is the point where an erased reference becomes usable.
func Bind(raw RawObj, epoch uint32) Obj {
	if !raw.Tag().IsHeap() {
		epoch = 0
	}
	return Obj{raw: raw, epoch: epoch}
}

// Int returns an immediate fixnum. Values outside [MinInt, MaxInt] wrap.
func Int(i int64) Obj {
	return Obj{raw: RawObj(uint64(i)<<tagBits | uint64(TagInt))}
}

func Bool(b bool) Obj {
	if b {
		return True
	}
	return Nil
}

func SymbolObj(s Symbol) Obj {
	return Obj{raw: MakeRaw(TagSymbol, uint64(s))}
}

// Raw erases the epoch.
func (o Obj) Raw() RawObj { return o.raw }

func (o Obj) Tag() Tag { return o.raw.Tag() }

// Epoch is the collection epoch the reference was bound in, or 0 for immediates.
func (o Obj) Epoch() uint32 { return o.epoch }

func (o Obj) IsNil() bool { return o.raw == 0 }

func (o Obj) AsInt() (int64, bool) {
	if o.Tag() != TagInt {
		return 0, false
	}
	return int64(o.raw) >> tagBits, true
}

func (o Obj) AsSymbol() (Symbol, bool) {
	if o.Tag() != TagSymbol {
		return 0, false
	}
	return Symbol(o.raw.Payload()), true
}
