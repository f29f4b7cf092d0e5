// Package sqlite provides the public API for the SQLite table-browsing
// session. It exposes the session factory and the validator while keeping
// implementation details internal.
package sqlite

import (
	"context"

	"github.com/mesh-intelligence/tabula/internal/sqlite"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Option configures a session created by NewSession.
type Option = sqlite.Option

// WithLogger sets the session's slog logger.
var WithLogger = sqlite.WithLogger

// NewSession creates a session with no active connection.
//
// Example:
//
//	s, err := sqlite.NewSession(types.Config{})
//	if err != nil { ... }
//	defer s.Close()
//	if !sqlite.IsValidDatabase(path) { ... }
//	err = s.Open(ctx, path)
func NewSession(config types.Config, opts ...Option) (types.Session, error) {
	s, err := sqlite.NewSession(config, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// IsValidDatabase reports whether path names a readable SQLite database.
func IsValidDatabase(path string) bool {
	return sqlite.IsValidDatabase(path)
}

// IsValidDatabaseContext is IsValidDatabase with a context.
func IsValidDatabaseContext(ctx context.Context, path string) bool {
	return sqlite.IsValidDatabaseContext(ctx, path)
}
