// Package sqlite implements the table-browsing session over an SQLite
// database file: validation, connection lifetime, table listing, bounded
// row snapshots, and single-cell updates by rowid.
package sqlite

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

// Session implements types.Session. It holds at most one connection and at
// most one materialized table.
type Session struct {
	mu      sync.Mutex
	id      string
	config  types.Config
	logger  *slog.Logger
	openDB  func(dsn string) (*sql.DB, error)
	db      *sql.DB
	path    string
	current *types.CurrentTable
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for debug tracing. The session adds its
// own "session" attribute.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session with no active connection.
func NewSession(config types.Config, opts ...Option) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:     newSessionID(),
		config: config,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		openDB: func(dsn string) (*sql.DB, error) {
			return sql.Open(driverName, dsn)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	return s, nil
}

// newSessionID returns a UUID v7 used to correlate log lines.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ID returns the session's log correlation ID.
func (s *Session) ID() string {
	return s.id
}

// Open closes the active connection, if any, then opens path read-write.
// The file is never created. After a failed Open no connection is active.
func (s *Session) Open(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeLocked()

	if path == "" {
		return misuse("open", types.ErrEmptyPath)
	}

	var pragmas []string
	if ms := s.config.BusyTimeout.Milliseconds(); ms > 0 {
		pragmas = append(pragmas, busyTimeoutPragma(ms))
	}
	dsn, err := fileURI(path, modeReadWrite, pragmas...)
	if err != nil {
		return types.NewError(types.CodeEngine, "open", err)
	}

	db, err := s.openDB(dsn)
	if err != nil {
		return engineError("open", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return engineError("open", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("database opened", "path", path)
	return nil
}

// Close releases the active connection and the current table state.
// Idempotent. The session holds no connection afterward even if the engine
// reports a close error.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		s.current = nil
		return nil
	}

	err := s.db.Close()
	s.db = nil
	s.path = ""
	s.current = nil
	if err != nil {
		return engineError("close", err)
	}
	s.logger.Debug("database closed")
	return nil
}

// closeLocked closes the active connection, swallowing any error.
// The caller must hold s.mu.
func (s *Session) closeLocked() {
	s.current = nil
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		s.logger.Debug("close previous connection", "path", s.path, "error", err)
	}
	s.db = nil
	s.path = ""
}

// IsOpen reports whether a connection is active.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// Path returns the path of the active connection, or "".
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Current returns a copy of the current table state.
func (s *Session) Current() (types.CurrentTable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return types.CurrentTable{}, false
	}
	return types.CurrentTable{
		Name:    s.current.Name,
		Columns: slices.Clone(s.current.Columns),
	}, true
}

var _ types.Session = (*Session)(nil)
