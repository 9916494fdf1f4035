package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// newTestBackend attaches a SQLite backend in a fresh temp directory and
// detaches it when the test ends.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	b := NewBackend(nil)
	err := b.Attach(context.Background(), types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { b.Detach() })
	return b
}

func mustExec(t *testing.T, b *Backend, query string, args ...any) {
	t.Helper()
	_, err := b.Exec(context.Background(), query, args...)
	require.NoError(t, err)
}
