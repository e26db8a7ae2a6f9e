// ABOUTME: List built-ins that allocate in loops
// ABOUTME: Partial results are rooted so they survive each safe point

package builtins

import (
	"fmt"

	"github.com/prateek/gcroot/arena"
	"github.com/prateek/gcroot/object"
)

// List conses the rooted items into a fresh list. The result is unrooted;
// root it before the caller's next safe point.
func List(a *arena.Arena, owner *arena.Owner, items *arena.Root[arena.RootVec[arena.RootObj]]) object.Obj {
	acc, guard := a.RootObj(object.Nil)
	defer guard.Release()

	vec := items.Borrow(owner)
	for i := vec.Len() - 1; i >= 0; i-- {
		a.MaybeCollect()
		acc.Set(a.Cons(vec.Index(i).Bind(a), acc.Bind(a)))
	}
	return acc.Bind(a)
}

func notList(a *arena.Arena, o object.Obj) error {
	return fmt.Errorf("%w: listp, %s", ErrWrongType, a.Format(o))
}

// Reverse returns a reversed copy of the rooted list.
func Reverse(a *arena.Arena, owner *arena.Owner, list *arena.Root[arena.RootObj]) (object.Obj, error) {
	acc, accGuard := a.RootObj(object.Nil)
	defer accGuard.Release()
	cur, curGuard := a.RootObj(list.Borrow(owner).Bind(a))
	defer curGuard.Release()

	for {
		a.MaybeCollect()
		o := cur.Bind(a)
		if o.IsNil() {
			return acc.Bind(a), nil
		}
		c, ok := a.ConsOf(o)
		if !ok {
			return object.Nil, notList(a, o)
		}
		acc.Set(a.Cons(c.Car(), acc.Bind(a)))
		cur.Set(c.Cdr())
	}
}

// MapFunc is applied to each element by Mapcar. It may reach safe points,
// in which case it must root its argument itself.
type MapFunc func(a *arena.Arena, elem object.Obj) (object.Obj, error)

// Mapcar applies fn to each element of the rooted list and returns the
// list of results.
func Mapcar(a *arena.Arena, owner *arena.Owner, fn MapFunc, list *arena.Root[arena.RootObj]) (object.Obj, error) {
	results, resultsGuard := arena.Install(a, owner, arena.RootVec[arena.RootObj]{})
	defer resultsGuard.Release()
	cur, curGuard := a.RootObj(list.Borrow(owner).Bind(a))
	defer curGuard.Release()

	for {
		a.MaybeCollect()
		o := cur.Bind(a)
		if o.IsNil() {
			break
		}
		c, ok := a.ConsOf(o)
		if !ok {
			return object.Nil, notList(a, o)
		}
		v, err := fn(a, c.Car())
		if err != nil {
			return object.Nil, err
		}
		results.BorrowMut(owner, a).Push(arena.IntoRoot(v))
		cur.Set(c.Cdr())
	}
	return List(a, owner, results), nil
}

// Length counts the elements of a proper list.
func Length(a *arena.Arena, list object.Obj) (int, error) {
	seen := make(map[object.RawObj]bool)
	n := 0
	for o := list; !o.IsNil(); n++ {
		c, ok := a.ConsOf(o)
		if !ok {
			return 0, notList(a, list)
		}
		if seen[o.Raw()] {
			return 0, fmt.Errorf("%w: circular list", ErrWrongType)
		}
		seen[o.Raw()] = true
		o = c.Cdr()
	}
	return n, nil
}
