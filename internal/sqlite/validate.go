package sqlite

import (
	"context"
	"database/sql"
)

// IsValidDatabase reports whether path names an existing, readable SQLite
// database. It opens its own read-only handle, never creates a file, and
// always closes the handle before returning.
func IsValidDatabase(path string) bool {
	return IsValidDatabaseContext(context.Background(), path)
}

// IsValidDatabaseContext is IsValidDatabase with a context for the probe.
func IsValidDatabaseContext(ctx context.Context, path string) bool {
	if path == "" {
		return false
	}

	dsn, err := fileURI(path, modeReadOnly)
	if err != nil {
		return false
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return false
	}
	defer func() { _ = db.Close() }()

	var version int64
	if err := db.QueryRowContext(ctx, probeSQL).Scan(&version); err != nil {
		return false
	}
	return true
}
