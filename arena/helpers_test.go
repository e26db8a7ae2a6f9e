// ABOUTME: Shared helpers for arena tests
// ABOUTME: Builds quiet arenas and asserts protocol panics

package arena

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestArena(t *testing.T, stress bool) *Arena {
	t.Helper()
	cfg := DefaultConfig()
	cfg.InitialCells = 16
	cfg.Stress = stress
	return New(cfg, WithLogger(nopLogger()))
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }

// requireFatal runs fn and checks that it panics with an error wrapping target.
func requireFatal(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.ErrorIs(t, err, target)
	}()
	fn()
}
