package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/tabula/pkg/sqlite"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// newSession creates an unopened session from the loaded configuration.
func (a *app) newSession() (types.Session, error) {
	s, err := sqlite.NewSession(sessionConfig(a.config), sqlite.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("configure session: %w", err)
	}
	return s, nil
}

// openDatabase validates path and opens it in s.
func openDatabase(ctx context.Context, s types.Session, path string) error {
	if !sqlite.IsValidDatabaseContext(ctx, path) {
		return fmt.Errorf("%s: %w", path, errInvalidDatabase)
	}
	return s.Open(ctx, path)
}

// openSession creates a session and opens path in it. The caller must
// Close the session.
func (a *app) openSession(ctx context.Context, path string) (types.Session, error) {
	s, err := a.newSession()
	if err != nil {
		return nil, err
	}
	if err := openDatabase(ctx, s, path); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// requireListedTable checks name against ListTables. Table names are
// embedded in SQL as quoted identifiers, so only catalog names pass.
func requireListedTable(ctx context.Context, s types.Session, name string) error {
	tables, err := s.ListTables(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(tables, name) {
		return fmt.Errorf("%w %q (available: %s)", errUnknownTable, name, strings.Join(tables, ", "))
	}
	return nil
}

// resolveColumn accepts a column name or a numeric position.
func resolveColumn(snap types.Snapshot, arg string) (int, error) {
	if i := snap.ColumnIndex(arg); i >= 0 {
		return i, nil
	}
	if i, err := strconv.Atoi(arg); err == nil && i >= 0 && i < len(snap.Columns) {
		return i, nil
	}
	return 0, fmt.Errorf("%w %q in %s (columns: %s)", errUnknownColumn, arg, snap.Table,
		strings.Join(snap.ColumnNames(), ", "))
}
