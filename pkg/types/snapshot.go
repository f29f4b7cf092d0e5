package types

import "fmt"

// RowIDColumn is the name of the synthetic leading column holding the
// engine's row identity.
const RowIDColumn = "rowid"

// MaxRowLimit bounds every snapshot.
const MaxRowLimit = 100

// ColumnDescriptor names one snapshot column. Position 0 is always the row
// identity, never a schema column.
type ColumnDescriptor struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Row holds one value per column, as text. Row[0] is the row identity.
type Row []string

// Snapshot is a bounded, in-memory copy of a table's rows.
type Snapshot struct {
	Table   string             `json:"table"`
	Columns []ColumnDescriptor `json:"columns"`
	Rows    []Row              `json:"rows"`
}

// ColumnNames returns the column names in position order.
func (s Snapshot) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (s Snapshot) ColumnIndex(name string) int {
	for _, c := range s.Columns {
		if c.Name == name {
			return c.Position
		}
	}
	return -1
}

// RowByID returns the row whose identity equals id.
func (s Snapshot) RowByID(id string) (Row, bool) {
	for _, r := range s.Rows {
		if len(r) > 0 && r[0] == id {
			return r, true
		}
	}
	return nil, false
}

// SetCell patches the in-memory copy after a successful update. The row
// identity column cannot be changed.
func (s Snapshot) SetCell(rowID string, colIndex int, text string) error {
	if colIndex <= 0 || colIndex >= len(s.Columns) {
		return fmt.Errorf("column %d: %w", colIndex, ErrInvalidColumn)
	}
	r, ok := s.RowByID(rowID)
	if !ok {
		return fmt.Errorf("row %q: %w", rowID, ErrRowNotInSnapshot)
	}
	r[colIndex] = text
	return nil
}
