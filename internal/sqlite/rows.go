package sqlite

import (
	"context"
	"database/sql"
	"slices"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// LoadTable materializes up to the configured row limit from table name.
// Column 0 of every row is the rowid; NULL values become "".
//
// The previous table state is released before the query runs, so a failed
// load leaves no table selected.
func (s *Session) LoadTable(ctx context.Context, name string) (types.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.Snapshot{}, misuse("load table", types.ErrNoConnection)
	}
	if name == "" {
		return types.Snapshot{}, misuse("load table", types.ErrEmptyTableName)
	}

	s.current = nil

	rows, err := s.db.QueryContext(ctx, selectRowsSQL(name, s.config.EffectiveRowLimit()))
	if err != nil {
		return types.Snapshot{}, engineError("load table "+name, err)
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return types.Snapshot{}, engineError("load table "+name, err)
	}
	columns := make([]types.ColumnDescriptor, len(names))
	for i, n := range names {
		columns[i] = types.ColumnDescriptor{Name: n, Position: i}
	}

	values := make([]sql.NullString, len(names))
	dest := make([]any, len(names))
	for i := range values {
		dest[i] = &values[i]
	}

	data := []types.Row{}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return types.Snapshot{}, engineError("load table "+name, err)
		}
		row := make(types.Row, len(values))
		for i, v := range values {
			row[i] = v.String
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return types.Snapshot{}, engineError("load table "+name, err)
	}

	s.current = &types.CurrentTable{Name: name, Columns: columns}
	s.logger.Debug("table loaded", "table", name, "columns", len(columns), "rows", len(data))

	return types.Snapshot{
		Table:   name,
		Columns: slices.Clone(columns),
		Rows:    data,
	}, nil
}
