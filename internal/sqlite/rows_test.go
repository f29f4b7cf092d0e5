package sqlite

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/internal/testutil"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// insertRows returns statements creating table big(a) with n rows.
func insertRows(n int) []string {
	stmts := []string{`CREATE TABLE big (a, b)`}
	for i := 1; i <= n; i++ {
		stmts = append(stmts, fmt.Sprintf(`INSERT INTO big (a, b) VALUES ('a%d', %d)`, i, i))
	}
	return stmts
}

func TestLoadTable_SampleTable(t *testing.T) {
	s, _ := openTestSession(t, sampleTableDB...)

	snap, err := s.LoadTable(context.Background(), "t")
	require.NoError(t, err)

	assert.Equal(t, "t", snap.Table)
	assert.Equal(t, []types.ColumnDescriptor{
		{Name: "rowid", Position: 0},
		{Name: "a", Position: 1},
		{Name: "b", Position: 2},
	}, snap.Columns)
	assert.Equal(t, []types.Row{
		{"1", "x", "y"},
		{"2", "p", "q"},
	}, snap.Rows)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "t", cur.Name)
	assert.Equal(t, snap.Columns, cur.Columns)
}

func TestLoadTable_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSession(t, insertRows(30)...)

	first, err := s.LoadTable(ctx, "big")
	require.NoError(t, err)
	second, err := s.LoadTable(ctx, "big")
	require.NoError(t, err)

	assert.Equal(t, first.Columns, second.Columns)
	assert.Len(t, second.Rows, len(first.Rows))
	assert.Equal(t, first.Rows, second.Rows)
}

func TestLoadTable_RowShapeAndLimit(t *testing.T) {
	s, _ := openTestSession(t, insertRows(150)...)

	snap, err := s.LoadTable(context.Background(), "big")
	require.NoError(t, err)

	require.Len(t, snap.Rows, types.MaxRowLimit)
	seen := make(map[string]bool, len(snap.Rows))
	for _, row := range snap.Rows {
		assert.Len(t, row, len(snap.Columns))
		assert.False(t, seen[row[0]], "duplicate rowid %s", row[0])
		seen[row[0]] = true
	}
}

func TestLoadTable_ConfiguredRowLimit(t *testing.T) {
	path := testutil.CreateDB(t, insertRows(20)...)
	s := newTestSession(t, types.Config{RowLimit: 5})
	require.NoError(t, s.Open(context.Background(), path))

	snap, err := s.LoadTable(context.Background(), "big")
	require.NoError(t, err)
	assert.Len(t, snap.Rows, 5)
}

func TestLoadTable_ValuesAsText(t *testing.T) {
	s, _ := openTestSession(t,
		`CREATE TABLE mixed (i INTEGER, r REAL, s TEXT, n)`,
		`INSERT INTO mixed VALUES (42, 1.5, 'hello', NULL)`,
	)

	snap, err := s.LoadTable(context.Background(), "mixed")
	require.NoError(t, err)

	require.Len(t, snap.Rows, 1)
	assert.Equal(t, types.Row{"1", "42", "1.5", "hello", ""}, snap.Rows[0])
}

func TestLoadTable_IntegerPrimaryKeyAlias(t *testing.T) {
	s, _ := openTestSession(t,
		`CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT)`,
		`INSERT INTO people (id, name) VALUES (7, 'ada'), (9, 'bob')`,
	)

	snap, err := s.LoadTable(context.Background(), "people")
	require.NoError(t, err)

	assert.Equal(t, []string{"rowid", "id", "name"}, snap.ColumnNames())
	assert.Equal(t, []types.Row{{"7", "7", "ada"}, {"9", "9", "bob"}}, snap.Rows)
}

func TestLoadTable_EmptyTable(t *testing.T) {
	s, _ := openTestSession(t, `CREATE TABLE empty (a, b)`)

	snap, err := s.LoadTable(context.Background(), "empty")
	require.NoError(t, err)
	assert.Equal(t, []string{"rowid", "a", "b"}, snap.ColumnNames())
	assert.NotNil(t, snap.Rows)
	assert.Empty(t, snap.Rows)
}

func TestLoadTable_Errors(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		wantCode types.ErrorCode
	}{
		{"empty name", "", types.CodeMisuse},
		{"unknown table", "nope", types.CodeEngine},
		{"without rowid table", "norowid", types.CodeEngine},
		{"unbalanced quote", `x"y`, types.CodeEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := openTestSession(t, append(sampleTableDB,
				`CREATE TABLE norowid (k TEXT PRIMARY KEY, v) WITHOUT ROWID`)...)

			_, err := s.LoadTable(ctx, "t")
			require.NoError(t, err)

			_, err = s.LoadTable(ctx, tt.table)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, types.CodeOf(err))

			if tt.wantCode == types.CodeEngine {
				_, ok := s.Current()
				assert.False(t, ok, "a failed load leaves no table selected")
			}
		})
	}
}

func TestLoadTable_EmptyNameKeepsCurrentTable(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSession(t, sampleTableDB...)
	_, err := s.LoadTable(ctx, "t")
	require.NoError(t, err)

	_, err = s.LoadTable(ctx, "")
	require.ErrorIs(t, err, types.ErrEmptyTableName)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "t", cur.Name)
}

// Names are interpolated with plain double quotes. A name that closes the
// quote changes the statement; here a trailing comment drops the LIMIT. This
// pins the behavior behind the rule that names must come from ListTables.
func TestLoadTable_QuotedNameAltersStatement(t *testing.T) {
	s, _ := openTestSession(t, insertRows(types.MaxRowLimit+20)...)

	crafted := `big" --`
	snap, err := s.LoadTable(context.Background(), crafted)
	require.NoError(t, err)

	assert.Len(t, snap.Rows, types.MaxRowLimit+20)
	assert.Equal(t, crafted, snap.Table)

	tables, err := s.ListTables(context.Background())
	require.NoError(t, err)
	for _, name := range tables {
		assert.False(t, strings.Contains(name, `"`))
	}
}
