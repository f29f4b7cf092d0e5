package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/internal/testutil"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// sampleTableDB is the two-row fixture t(a, b) used across tests.
var sampleTableDB = []string{
	`CREATE TABLE t (a, b)`,
	`INSERT INTO t (rowid, a, b) VALUES (1, 'x', 'y'), (2, 'p', 'q')`,
}

func newTestSession(t *testing.T, config types.Config) *Session {
	t.Helper()
	s, err := NewSession(config, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// openTestSession creates a fixture database from stmts and opens it.
func openTestSession(t *testing.T, stmts ...string) (*Session, string) {
	t.Helper()
	path := testutil.CreateDB(t, stmts...)
	s := newTestSession(t, types.Config{})
	require.NoError(t, s.Open(context.Background(), path))
	return s, path
}
