// ABOUTME: Tests for symbol values and property lists
// ABOUTME: Values stored in the rooted Env survive collections

package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek/gcroot/arena"
	"github.com/prateek/gcroot/object"
)

func TestSetAndSymbolValue(t *testing.T) {
	a := stressArena(t)
	arena.WithOwner(func(owner *arena.Owner) {
		env, g := arena.Install(a, owner, arena.Env{})
		defer g.Release()

		x := object.Intern("gcroot-test-x")
		_, err := SymbolValue(a, owner, env, x)
		require.ErrorIs(t, err, ErrVoidVariable)

		Set(a, owner, env, x, a.AddString("first"))
		Set(a, owner, env, x, a.AddString("second"))
		a.Collect()

		v, err := SymbolValue(a, owner, env, x)
		require.NoError(t, err)
		s, ok := a.StringOf(v)
		require.True(t, ok)
		assert.Equal(t, "second", s)
		assert.Equal(t, 1, a.Live())
	})
}

func TestPutAndGet(t *testing.T) {
	a := stressArena(t)
	arena.WithOwner(func(owner *arena.Owner) {
		env, g := arena.Install(a, owner, arena.Env{})
		defer g.Release()

		sym := object.Intern("gcroot-test-sym")
		color, size := object.Intern("color"), object.Intern("size")
		assert.Equal(t, object.Nil, Get(a, owner, env, sym, color))

		Put(a, owner, env, sym, color, a.AddString("red"))
		Put(a, owner, env, sym, size, object.Int(3))
		Put(a, owner, env, sym, color, a.AddString("blue"))
		a.Collect()

		got := Get(a, owner, env, sym, color)
		assert.Equal(t, `"blue"`, a.Format(got))
		assert.Equal(t, object.Int(3), Get(a, owner, env, sym, size))
		assert.Equal(t, object.Nil, Get(a, owner, env, sym, object.Intern("missing")))

		plist, ok := env.Borrow(owner).Props().Get(sym)
		require.True(t, ok)
		assert.Equal(t, 2, plist.Len())
		assert.Equal(t, 1, a.Live())
	})
}
