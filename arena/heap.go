// ABOUTME: Heap cells managed by the arena
// ABOUTME: Cons is the pair node that RootCons points at

package arena

import "github.com/prateek/gcroot/object"

type cell struct {
	used   bool
	marked bool
	tag    object.Tag
	str    string
	num    float64
	cons   *Cons
}

// Cons is a pair node. Its fields hold erased references; reading them binds
// against the owning arena's current epoch.
type Cons struct {
	car, cdr object.RawObj
	arena    *Arena
	slot     uint32
	dead     bool
}

func (c *Cons) check() {
	if c.dead {
		fatal(ErrDeadObject, "cons cell %d", c.slot)
	}
}

func (c *Cons) raw() object.RawObj {
	return object.MakeRaw(object.TagCons, uint64(c.slot))
}

func (c *Cons) Car() object.Obj {
	c.check()
	return c.arena.bind(c.car)
}

func (c *Cons) Cdr() object.Obj {
	c.check()
	return c.arena.bind(c.cdr)
}

func (c *Cons) SetCar(o object.Obj) {
	c.check()
	c.arena.check(o)
	c.car = o.Raw()
}

func (c *Cons) SetCdr(o object.Obj) {
	c.check()
	c.arena.check(o)
	c.cdr = o.Raw()
}

// Obj returns the node as a value bound to the current epoch.
func (c *Cons) Obj() object.Obj {
	c.check()
	return c.arena.bind(c.raw())
}

func (c *Cons) Mark(stack *WorkList) {
	stack.Push(c.car)
	stack.Push(c.cdr)
}
