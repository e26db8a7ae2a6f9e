// ABOUTME: Stack-discipline registrar for roots
// ABOUTME: A guard installs one root and removes exactly that entry on release

package arena

import (
	"reflect"

	"github.com/prateek/gcroot/object"
)

type guardState uint8

const (
	guardUnset guardState = iota
	guardSet
	guardRetired
)

// noCopy lets go vet flag copies of values that must stay unique.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Guard binds one root into a RootSet for the extent of a Go scope.
//
//	r, g := arena.Install(a, owner, arena.IntoRoot(obj))
//	defer g.Release()
//
// Guards must be released in the reverse order they were set, which is what
// deferred releases in nested calls produce.
type Guard struct {
	noCopy noCopy
	roots  *RootSet
	depth  int
	state  guardState
}

func NewGuard(roots *RootSet) *Guard {
	return &Guard{roots: roots}
}

// Set installs t. t must be a pointer to the storage being rooted, so later
// writes through the rooted view are seen by the collector.
func (g *Guard) Set(t Trace) {
	if g.state != guardUnset {
		fatal(ErrGuardSet, "")
	}
	v := reflect.ValueOf(t)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() {
		fatal(ErrRootNotAddressable, "got %T", t)
	}
	g.depth = g.roots.push(t)
	g.state = guardSet
}

// Release removes the guard's entry. It must be the newest entry in the set.
func (g *Guard) Release() {
	switch g.state {
	case guardUnset:
		fatal(ErrGuardUnset, "")
	case guardRetired:
		fatal(ErrGuardRetired, "")
	}
	if top := g.roots.Len(); top != g.depth {
		fatal(ErrGuardOrder, "guard at depth %d released with %d roots installed", g.depth, top)
	}
	g.roots.pop()
	g.state = guardRetired
}

// Depth is the 1-based root-set position of the guard's entry, or 0 if the
// guard is not set.
func (g *Guard) Depth() int {
	if g.state != guardSet {
		return 0
	}
	return g.depth
}

// Install roots v under owner's session for the caller's scope. The caller
// must defer Release on the returned guard.
func Install[T Trace](a *Arena, owner *Owner, v T) (*Root[T], *Guard) {
	r := newRoot(owner, v)
	g := NewGuard(a.RootSet())
	g.Set(r)
	return r, g
}

// RootObj roots a single value without session branding.
func (a *Arena) RootObj(obj object.Obj) (*RootObj, *Guard) {
	a.check(obj)
	r := &RootObj{obj: obj.Raw()}
	g := NewGuard(a.RootSet())
	g.Set(r)
	return r, g
}

// RootCons roots a pair node without session branding.
func (a *Arena) RootCons(c *Cons) (*RootCons, *Guard) {
	c.check()
	r := &RootCons{cons: c}
	g := NewGuard(a.RootSet())
	g.Set(r)
	return r, g
}
