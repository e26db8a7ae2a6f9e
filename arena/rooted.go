// ABOUTME: Rooted storage for single values and pair nodes
// ABOUTME: Stored references are epoch-erased and rebound against a live arena

package arena

import "github.com/prateek/gcroot/object"

// RootObj is rooted storage for one value. It keeps only the erased word;
// Bind attaches the arena's current epoch when the value is read.
type RootObj struct {
	obj object.RawObj
}

// IntoRoot erases obj's epoch. The result must be installed in a root set
// (directly or inside a rooted container) before the next safe point, or it
// will refer to freed memory.
func IntoRoot(obj object.Obj) RootObj {
	return RootObj{obj: obj.Raw()}
}

func (r RootObj) Mark(stack *WorkList) {
	stack.Push(r.obj)
}

func (r *RootObj) Set(obj object.Obj) {
	r.obj = obj.Raw()
}

// Bind returns the stored value, valid until the arena's next collection.
func (r RootObj) Bind(a *Arena) object.Obj {
	return a.bind(r.obj)
}

func (r RootObj) Raw() object.RawObj { return r.obj }

func (r RootObj) Tag() object.Tag { return r.obj.Tag() }

// Is reports whether the stored word is bit-identical to obj.
func (r RootObj) Is(obj object.Obj) bool {
	return r.obj == obj.Raw()
}

// RootCons is rooted storage for a pair node.
type RootCons struct {
	cons *Cons
}

// IntoRootCons has the same obligation as IntoRoot.
func IntoRootCons(c *Cons) RootCons {
	return RootCons{cons: c}
}

func (r RootCons) Mark(stack *WorkList) {
	if r.cons != nil {
		stack.Push(r.cons.raw())
	}
}

func (r *RootCons) Set(c *Cons) {
	r.cons = c
}

// Cons dereferences to the node, or nil if nothing was stored.
func (r RootCons) Cons() *Cons {
	if r.cons != nil {
		r.cons.check()
	}
	return r.cons
}

func (r RootCons) Bind(a *Arena) object.Obj {
	if r.cons == nil {
		return object.Nil
	}
	r.cons.check()
	return a.bind(r.cons.raw())
}

// RootSym holds a symbol inside rooted containers. Symbols are immediates so
// it marks nothing.
type RootSym struct {
	object.Symbol
}

func (RootSym) Mark(*WorkList) {}

// BindAll reads a rooted sequence as plain values against a live arena.
func BindAll(a *Arena, s RootSlice[RootObj]) []object.Obj {
	out := make([]object.Obj, len(s.items))
	for i, r := range s.items {
		out[i] = r.Bind(a)
	}
	return out
}
