// ABOUTME: Shared helpers for built-in tests
// ABOUTME: Arenas run in stress mode so every safe point collects

package builtins

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/prateek/gcroot/arena"
	"github.com/prateek/gcroot/object"
)

func stressArena(t *testing.T) *arena.Arena {
	t.Helper()
	cfg := arena.DefaultConfig()
	cfg.Stress = true
	return arena.New(cfg, arena.WithLogger(zerolog.Nop()))
}

func ints(ns ...int64) []object.Obj {
	out := make([]object.Obj, len(ns))
	for i, n := range ns {
		out[i] = object.Int(n)
	}
	return out
}
