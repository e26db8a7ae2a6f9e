// ABOUTME: Tests for collection, safe points and stale reference detection
// ABOUTME: Unrooted values must be freed and rooted ones must survive

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek/gcroot/object"
)

func TestCollectFreesUnrooted(t *testing.T) {
	a := newTestArena(t, false)
	kept := a.AddString("kept")
	a.AddString("dropped")
	a.AddFloat(1.5)

	r, g := a.RootObj(kept)
	defer g.Release()

	a.Collect()
	stats := a.Stats()
	assert.Equal(t, uint64(1), stats.Collections)
	assert.Equal(t, uint64(3), stats.Allocated)
	assert.Equal(t, uint64(2), stats.Freed)
	assert.Equal(t, 1, stats.Live)
	assert.Equal(t, 1, stats.LastMarked)
	assert.Equal(t, 1, stats.LastRootRefs)

	got, ok := a.StringOf(r.Bind(a))
	require.True(t, ok)
	assert.Equal(t, "kept", got)
}

func TestCollectReusesFreedCells(t *testing.T) {
	a := newTestArena(t, false)
	a.AddString("one")
	a.AddString("two")
	a.Collect()
	require.Zero(t, a.Live())

	a.AddString("three")
	assert.Equal(t, 1, a.Live())
	assert.Len(t, a.cells, 2, "freed cells are reused before growing")
}

func TestCollectTracesLists(t *testing.T) {
	a := newTestArena(t, false)
	list := a.Cons(object.Int(1), a.Cons(a.AddString("a"), a.Cons(a.AddFloat(2.5), object.Nil)))
	a.AddString("garbage")

	r, g := a.RootObj(list)
	defer g.Release()

	a.Collect()
	assert.Equal(t, 5, a.Live())
	assert.Equal(t, `(1 "a" 2.5)`, a.Format(r.Bind(a)))
}

func TestStaleObjectAfterCollect(t *testing.T) {
	a := newTestArena(t, false)
	s := a.AddString("gone")
	epoch := a.Epoch()
	a.Collect()
	assert.Greater(t, a.Epoch(), epoch)

	requireFatal(t, ErrStaleObject, func() { a.StringOf(s) })
	requireFatal(t, ErrStaleObject, func() { a.Cons(s, object.Nil) })
	requireFatal(t, ErrStaleObject, func() { a.RootObj(s) })
}

func TestImmediatesNeverGoStale(t *testing.T) {
	a := newTestArena(t, false)
	n := object.Int(12)
	a.Collect()

	pair := a.Cons(n, object.True)
	c, ok := a.ConsOf(pair)
	require.True(t, ok)
	assert.Equal(t, n, c.Car())
	assert.Equal(t, object.True, c.Cdr())
}

func TestDeadConsAccess(t *testing.T) {
	a := newTestArena(t, false)
	c, ok := a.ConsOf(a.Cons(object.Int(1), object.Nil))
	require.True(t, ok)
	a.Collect()

	requireFatal(t, ErrDeadObject, func() { c.Car() })
	requireFatal(t, ErrDeadObject, func() { c.SetCdr(object.Nil) })
	requireFatal(t, ErrDeadObject, func() { a.RootCons(c) })
}

func TestCollectDetectsDanglingRoot(t *testing.T) {
	a := newTestArena(t, false)
	s := a.AddString("freed")
	a.Collect()

	// IntoRoot skips the epoch check, so a stale value rooted this way is
	// only caught when it is traced.
	WithOwner(func(owner *Owner) {
		_, g := Install(a, owner, IntoRoot(s))
		defer g.Release()
		requireFatal(t, ErrDeadObject, a.Collect)
	})
}

func TestMaybeCollectThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 2
	a := New(cfg, WithLogger(nopLogger()))

	a.AddString("one")
	assert.False(t, a.MaybeCollect())
	a.AddString("two")
	assert.True(t, a.MaybeCollect())
	assert.False(t, a.MaybeCollect(), "the allocation count resets after a collection")
	assert.Equal(t, uint64(1), a.Stats().Collections)
}

func TestMaybeCollectDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 0
	a := New(cfg, WithLogger(nopLogger()))
	for i := 0; i < 10; i++ {
		a.AddFloat(float64(i))
	}
	assert.False(t, a.MaybeCollect())
}

func TestMaybeCollectStress(t *testing.T) {
	a := newTestArena(t, true)
	assert.True(t, a.MaybeCollect())
	assert.True(t, a.MaybeCollect())
	assert.Equal(t, uint64(2), a.Stats().Collections)
}

type reentrantRoot struct{ a *Arena }

func (r *reentrantRoot) Mark(*WorkList) { r.a.Collect() }

func TestCollectReentry(t *testing.T) {
	a := newTestArena(t, false)
	g := NewGuard(a.RootSet())
	g.Set(&reentrantRoot{a: a})

	requireFatal(t, ErrCollecting, a.Collect)
	g.Release()

	a.Collect()
	assert.Equal(t, uint64(1), a.Stats().Collections)
}
