// ABOUTME: Symbol values and property lists over a rooted Env
// ABOUTME: Implements set, symbol-value, put and get

package builtins

import (
	"fmt"

	"github.com/prateek/gcroot/arena"
	"github.com/prateek/gcroot/object"
)

// Set implements (set sym val).
func Set(a *arena.Arena, owner *arena.Owner, env *arena.Root[arena.Env], sym object.Symbol, val object.Obj) {
	env.BorrowMut(owner, a).Vars().Insert(sym, arena.IntoRoot(val))
}

// SymbolValue implements (symbol-value sym).
func SymbolValue(a *arena.Arena, owner *arena.Owner, env *arena.Root[arena.Env], sym object.Symbol) (object.Obj, error) {
	v, ok := env.Borrow(owner).Vars().Get(sym)
	if !ok {
		return object.Nil, fmt.Errorf("%w: %s", ErrVoidVariable, sym.Name())
	}
	return v.Bind(a), nil
}

// Put implements (put sym prop val).
func Put(a *arena.Arena, owner *arena.Owner, env *arena.Root[arena.Env], sym, prop object.Symbol, val object.Obj) {
	props := env.BorrowMut(owner, a).Props()
	plist, ok := props.Get(sym)
	if !ok {
		props.Insert(sym, arena.RootVec[arena.Prop]{})
		plist, _ = props.Get(sym)
	}
	for i := 0; i < plist.Len(); i++ {
		key, v := plist.Index(i).Parts()
		if key.Symbol == prop {
			v.Set(val)
			return
		}
	}
	plist.Push(arena.MakeRootPair(arena.RootSym{Symbol: prop}, arena.IntoRoot(val)))
}

// Get implements (get sym prop); a missing property is nil.
func Get(a *arena.Arena, owner *arena.Owner, env *arena.Root[arena.Env], sym, prop object.Symbol) object.Obj {
	plist, ok := env.Borrow(owner).Props().Get(sym)
	if !ok {
		return object.Nil
	}
	for i := 0; i < plist.Len(); i++ {
		key, v := plist.Index(i).Parts()
		if key.Symbol == prop {
			return v.Bind(a)
		}
	}
	return object.Nil
}
