// ABOUTME: Branded owner tokens and the root cells they unlock
// ABOUTME: A root can only be borrowed through the owner of the session that created it

package arena

import "sync/atomic"

var lastBrand atomic.Uint64

// Owner is the capability to borrow roots created in its session. Each
// session has exactly one owner; pass it by pointer.
type Owner struct {
	noCopy noCopy
	brand  uint64
	closed bool
}

// NewOwner starts a rooting session with a fresh brand. Call Close when the
// session ends.
func NewOwner() *Owner {
	return &Owner{brand: lastBrand.Add(1)}
}

// WithOwner runs fn inside a new session and closes it afterwards.
func WithOwner(fn func(owner *Owner)) {
	owner := NewOwner()
	defer owner.Close()
	fn(owner)
}

// Close ends the session. Roots branded with it can no longer be borrowed.
func (o *Owner) Close() {
	o.closed = true
}

func (o *Owner) Closed() bool {
	return o.closed
}

func (o *Owner) usable() {
	if o == nil || o.brand == 0 {
		fatal(ErrNoOwner, "")
	}
	if o.closed {
		fatal(ErrOwnerClosed, "session %d", o.brand)
	}
}

// Root stores one rooted value of type T, branded with a session. Its
// contents are reachable only through Borrow and BorrowMut with the owner of
// that session.
type Root[T Trace] struct {
	brand uint64
	rt    T
}

// newRoot is only safe when the result is installed in a root set before
// the next safe point; Install does both.
func newRoot[T Trace](owner *Owner, v T) *Root[T] {
	owner.usable()
	return &Root[T]{brand: owner.brand, rt: v}
}

func (r *Root[T]) Mark(stack *WorkList) {
	r.rt.Mark(stack)
}

func (r *Root[T]) admit(owner *Owner) {
	owner.usable()
	if owner.brand != r.brand {
		fatal(ErrBrandMismatch, "root of session %d, owner of session %d", r.brand, owner.brand)
	}
}

// Borrow gives read access to the rooted view.
func (r *Root[T]) Borrow(owner *Owner) *T {
	r.admit(owner)
	return &r.rt
}

// BorrowMut gives write access to the rooted view. The arena is evidence
// that the heap is live and not in the middle of a collection.
func (r *Root[T]) BorrowMut(owner *Owner, a *Arena) *T {
	r.admit(owner)
	a.mutator()
	return &r.rt
}

// BorrowMut2 gives write access to two distinct roots at once. Passing the
// same root twice panics.
func BorrowMut2[T, U Trace](r1 *Root[T], r2 *Root[U], owner *Owner, a *Arena) (*T, *U) {
	if any(r1) == any(r2) {
		fatal(ErrAliasedBorrow, "")
	}
	a.mutator()
	return BorrowMut2Unchecked(r1, r2, owner)
}

// BorrowMut2Unchecked is BorrowMut2 without the identity check or arena
// evidence. The caller guarantees r1 and r2 are distinct and that no
// collection is running.
func BorrowMut2Unchecked[T, U Trace](r1 *Root[T], r2 *Root[U], owner *Owner) (*T, *U) {
	r1.admit(owner)
	r2.admit(owner)
	return &r1.rt, &r2.rt
}
