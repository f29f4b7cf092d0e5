package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// UpdateCell writes text into column colIndex of the row identified by
// rowID in the current table. Column 0 is the rowid and is a no-op.
// An update that matches no row succeeds.
func (s *Session) UpdateCell(ctx context.Context, colIndex int, rowID, text string) error {
	_, err := s.UpdateCellResult(ctx, colIndex, rowID, text)
	return err
}

// UpdateCellResult is UpdateCell returning the number of rows changed.
func (s *Session) UpdateCellResult(ctx context.Context, colIndex int, rowID, text string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, misuse("update cell", types.ErrNoConnection)
	}
	if s.current == nil {
		return 0, misuse("update cell", types.ErrNoTable)
	}
	if colIndex == 0 {
		return 0, nil
	}
	col, ok := s.current.Column(colIndex)
	if !ok {
		return 0, misuse("update cell", fmt.Errorf("column %d of %q: %w", colIndex, s.current.Name, types.ErrInvalidColumn))
	}

	op := "update " + s.current.Name + "." + col.Name
	stmt, err := s.db.PrepareContext(ctx, updateCellSQL(s.current.Name, col.Name))
	if err != nil {
		return 0, engineError(op, err)
	}
	defer func() { _ = stmt.Close() }()

	res, err := stmt.ExecContext(ctx, text, rowID)
	if err != nil {
		return 0, engineError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, engineError(op, err)
	}

	if n == 0 {
		s.logger.Debug("update matched no row", "table", s.current.Name, "column", col.Name, "rowid", rowID)
	} else {
		s.logger.Debug("cell updated", "table", s.current.Name, "column", col.Name, "rowid", rowID)
	}
	return n, nil
}
