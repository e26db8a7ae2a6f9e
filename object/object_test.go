// ABOUTME: Tests for the tagged value encoding
// ABOUTME: Covers immediates, tag decoding and epoch binding

package object

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 42, -4096, MaxInt, MinInt} {
		o := Int(n)
		require.Equal(t, TagInt, o.Tag())
		got, ok := o.AsInt()
		require.True(t, ok)
		assert.Equal(t, n, got)
		assert.Zero(t, o.Epoch(), "immediates carry no epoch")
	}
}

func TestNilAndBool(t *testing.T) {
	assert.True(t, Nil.IsNil())
	assert.Equal(t, TagNil, Nil.Tag())
	assert.Equal(t, True, Bool(true))
	assert.Equal(t, Nil, Bool(false))
	assert.False(t, True.IsNil())

	_, ok := Nil.AsInt()
	assert.False(t, ok)
}

func TestBindKeepsEpochForHeapOnly(t *testing.T) {
	heap := Bind(MakeRaw(TagString, 7), 3)
	assert.Equal(t, uint32(3), heap.Epoch())
	assert.Equal(t, uint64(7), heap.Raw().Payload())
	assert.Equal(t, TagString, heap.Tag())

	imm := Bind(Int(5).Raw(), 3)
	assert.Zero(t, imm.Epoch())
	assert.Equal(t, Int(5), imm)
}

func TestTagIsHeap(t *testing.T) {
	heap := map[Tag]bool{
		TagNil: false, TagTrue: false, TagInt: false, TagSymbol: false,
		TagFloat: true, TagString: true, TagCons: true,
	}
	for tag, want := range heap {
		assert.Equal(t, want, tag.IsHeap(), tag.String())
	}
	assert.Equal(t, "tag(7)", Tag(7).String())
}

func TestIntern(t *testing.T) {
	a := Intern("foo")
	b := Intern("foo")
	c := Intern("bar")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "foo", a.Name())
	assert.Equal(t, "'bar", c.String())

	o := SymbolObj(a)
	assert.Equal(t, TagSymbol, o.Tag())
	got, ok := o.AsSymbol()
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestSymbolFunctionCell(t *testing.T) {
	sym := Intern("gcroot-fn-cell")
	_, ok := sym.Func()
	assert.False(t, ok, "a fresh symbol has no function")

	target := SymbolObj(Intern("gcroot-fn-target")).Raw()
	sym.SetFunc(target)
	fn, ok := sym.Func()
	require.True(t, ok)
	assert.Equal(t, target, fn)

	sym.SetFunc(Int(7).Raw())
	fn, ok = sym.Func()
	require.True(t, ok)
	assert.Equal(t, Int(7).Raw(), fn)

	sym.SetFunc(Nil.Raw())
	_, ok = sym.Func()
	assert.False(t, ok, "storing nil unsets the cell")

	_, ok = Intern("gcroot-fn-other").Func()
	assert.False(t, ok, "cells are per symbol")
}

func TestSymbolFunctionCellConcurrent(t *testing.T) {
	sym := Intern("gcroot-fn-concurrent")
	var wg sync.WaitGroup
	for i := int64(1); i <= 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			sym.SetFunc(Int(n).Raw())
			_, _ = sym.Func()
			Intern("gcroot-fn-concurrent")
		}(i)
	}
	wg.Wait()

	fn, ok := sym.Func()
	require.True(t, ok)
	assert.Equal(t, TagInt, fn.Tag())
}
