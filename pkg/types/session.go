package types

import "context"

// Session is the single logical session over one database file. It owns at
// most one live connection and at most one materialized table at a time.
// Callers must serialize their use of a Session.
type Session interface {
	// Open closes any active connection, then opens path read-write. The
	// file must already exist. After a failed Open no connection is active.
	Open(ctx context.Context, path string) error

	// Close releases the active connection. Idempotent.
	Close() error

	// IsOpen reports whether a connection is active.
	IsOpen() bool

	// Path returns the path of the active connection, or "".
	Path() string

	// Current returns the table materialized by the last successful
	// LoadTable. The bool is false when no table is selected.
	Current() (CurrentTable, bool)

	// ListTables returns user table names in ascending order, excluding
	// the engine's internal tables.
	ListTables(ctx context.Context) ([]string, error)

	// LoadTable materializes up to the configured row limit from the named
	// table. The name is embedded as a quoted identifier, so it must come
	// from ListTables and never from raw user input.
	LoadTable(ctx context.Context, name string) (Snapshot, error)

	// UpdateCell sets column colIndex of the row identified by rowID in the
	// current table to text. Column 0 (the row identity) is never written.
	UpdateCell(ctx context.Context, colIndex int, rowID, text string) error

	// UpdateCellResult is UpdateCell returning the number of rows changed.
	UpdateCellResult(ctx context.Context, colIndex int, rowID, text string) (int64, error)
}

// CurrentTable is the table name and column layout of the live view.
type CurrentTable struct {
	Name    string
	Columns []ColumnDescriptor
}

// Column returns the descriptor at position i.
func (c CurrentTable) Column(i int) (ColumnDescriptor, bool) {
	if i < 0 || i >= len(c.Columns) {
		return ColumnDescriptor{}, false
	}
	return c.Columns[i], true
}
