package sqlite

import (
	"context"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// ListTables returns the names of user tables in ascending order. Internal
// sqlite_* tables are excluded.
func (s *Session) ListTables(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, misuse("list tables", types.ErrNoConnection)
	}

	rows, err := s.db.QueryContext(ctx, listTablesSQL)
	if err != nil {
		return nil, engineError("list tables", err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, engineError("list tables", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, engineError("list tables", err)
	}

	s.logger.Debug("tables listed", "count", len(names))
	return names, nil
}
