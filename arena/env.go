// ABOUTME: Rooted variable and property tables for the global environment
// ABOUTME: Projections expose each table as its own rooted map

package arena

import "github.com/prateek/gcroot/object"

// Prop is one (property, value) entry on a symbol's property list.
type Prop = RootPair[RootSym, RootObj]

// Env holds symbol values and symbol property lists. It is normally rooted
// once per session with Install and shared by every built-in.
type Env struct {
	vars  RootMap[object.Symbol, RootObj]
	props RootMap[object.Symbol, RootVec[Prop]]
}

func (e Env) Mark(stack *WorkList) {
	e.vars.Mark(stack)
	e.props.Mark(stack)
}

func (e *Env) Vars() *RootMap[object.Symbol, RootObj] {
	return &e.vars
}

func (e *Env) Props() *RootMap[object.Symbol, RootVec[Prop]] {
	return &e.props
}
