package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/internal/testutil"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

func TestNewSession_RejectsInvalidConfig(t *testing.T) {
	_, err := NewSession(types.Config{RowLimit: types.MaxRowLimit + 1})
	assert.ErrorIs(t, err, types.ErrRowLimitInvalid)
}

func TestNewSession_AssignsDistinctIDs(t *testing.T) {
	a := newTestSession(t, types.Config{})
	b := newTestSession(t, types.Config{})
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSession_OpenAndClose(t *testing.T) {
	ctx := context.Background()
	path := testutil.CreateDB(t, sampleTableDB...)
	s := newTestSession(t, types.Config{})

	assert.False(t, s.IsOpen())
	require.NoError(t, s.Open(ctx, path))
	assert.True(t, s.IsOpen())
	assert.Equal(t, path, s.Path())

	require.NoError(t, s.Close())
	assert.False(t, s.IsOpen())
	assert.Empty(t, s.Path())

	// Idempotent.
	require.NoError(t, s.Close())
}

func TestSession_CloseWithoutOpen(t *testing.T) {
	s := newTestSession(t, types.Config{})
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestSession_OperationsAfterCloseAreMisuse(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSession(t, sampleTableDB...)
	_, err := s.LoadTable(ctx, "t")
	require.NoError(t, err)

	require.NoError(t, s.Close())

	_, err = s.ListTables(ctx)
	assert.ErrorIs(t, err, types.ErrMisuse)
	assert.ErrorIs(t, err, types.ErrNoConnection)

	_, err = s.LoadTable(ctx, "t")
	assert.ErrorIs(t, err, types.ErrMisuse)

	err = s.UpdateCell(ctx, 1, "1", "z")
	assert.ErrorIs(t, err, types.ErrMisuse)

	_, ok := s.Current()
	assert.False(t, ok, "close frees the current table")
}

func TestSession_OpenMissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	s := newTestSession(t, types.Config{})

	err := s.Open(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, types.CodeEngine, types.CodeOf(err))
	assert.False(t, s.IsOpen())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "open must not create %s", path)
}

func TestSession_FailedOpenClearsPreviousConnection(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSession(t, sampleTableDB...)
	_, err := s.LoadTable(ctx, "t")
	require.NoError(t, err)

	err = s.Open(ctx, filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)

	assert.False(t, s.IsOpen())
	assert.Empty(t, s.Path())
	_, ok := s.Current()
	assert.False(t, ok)

	_, err = s.ListTables(ctx)
	assert.ErrorIs(t, err, types.ErrNoConnection)
}

func TestSession_OpenEmptyPath(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSession(t, sampleTableDB...)

	err := s.Open(ctx, "")
	assert.ErrorIs(t, err, types.ErrMisuse)
	assert.ErrorIs(t, err, types.ErrEmptyPath)
	assert.False(t, s.IsOpen(), "previous connection is closed before the path is checked")
}

func TestSession_OpenReplacesConnection(t *testing.T) {
	ctx := context.Background()
	first := testutil.CreateDB(t, sampleTableDB...)
	second := testutil.CreateDB(t, `CREATE TABLE other (c)`)

	s := newTestSession(t, types.Config{})
	require.NoError(t, s.Open(ctx, first))
	_, err := s.LoadTable(ctx, "t")
	require.NoError(t, err)

	require.NoError(t, s.Open(ctx, second))
	assert.Equal(t, second, s.Path())

	_, ok := s.Current()
	assert.False(t, ok, "open releases the previous table state")

	tables, err := s.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, tables)
}

func TestSession_OpenAppliesBusyTimeout(t *testing.T) {
	path := testutil.CreateDB(t, sampleTableDB...)
	s := newTestSession(t, types.Config{BusyTimeout: 2 * time.Second})
	require.NoError(t, s.Open(context.Background(), path))

	var ms int64
	require.NoError(t, s.db.QueryRow("PRAGMA busy_timeout").Scan(&ms))
	assert.Equal(t, int64(2000), ms)

	// A replacement connection gets the same timeout.
	s.db.SetMaxIdleConns(0)
	require.NoError(t, s.db.QueryRow("PRAGMA busy_timeout").Scan(&ms))
	assert.Equal(t, int64(2000), ms)
	assert.GreaterOrEqual(t, s.db.Stats().MaxIdleClosed, int64(1))
}

func TestSession_OpenNonDatabaseFile(t *testing.T) {
	// The engine opens lazily; a non-database file is only rejected once
	// a statement reads the header.
	ctx := context.Background()
	path := testutil.WriteFile(t, "bad.db", "this is plain text and definitely not an sqlite database header")
	s := newTestSession(t, types.Config{})

	if err := s.Open(ctx, path); err != nil {
		assert.Equal(t, types.CodeEngine, types.CodeOf(err))
		assert.False(t, s.IsOpen())
		return
	}

	_, err := s.ListTables(ctx)
	require.Error(t, err)
	assert.Equal(t, types.CodeEngine, types.CodeOf(err))
}

func TestSession_CurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSession(t, sampleTableDB...)
	_, err := s.LoadTable(ctx, "t")
	require.NoError(t, err)

	cur, ok := s.Current()
	require.True(t, ok)
	cur.Columns[1].Name = "mutated"

	again, _ := s.Current()
	assert.Equal(t, "a", again.Columns[1].Name)
}
