package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Open modes for the file: URI.
const (
	modeReadOnly  = "ro"
	modeReadWrite = "rw"
)

// probeSQL is the trivial metadata query run by the validator.
const probeSQL = `PRAGMA schema_version`

// listTablesSQL lists user tables. The ESCAPE keeps "_" literal so that only
// the reserved "sqlite_" prefix is filtered.
const listTablesSQL = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\' ORDER BY name`

// fileURI returns an SQLite URI for path with the given open mode. Neither
// "ro" nor "rw" creates a missing file. Each pragma becomes a _pragma
// parameter, which the driver runs on every new connection.
func fileURI(path, mode string, pragmas ...string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	query := "mode=" + mode
	for _, p := range pragmas {
		query += "&_pragma=" + url.QueryEscape(p)
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: query,
	}
	return u.String(), nil
}

// quoteIdentifier wraps name in double quotes. Embedded quotes are not
// escaped: names must come from catalog reads, never from user input.
func quoteIdentifier(name string) string {
	return `"` + name + `"`
}

// selectRowsSQL builds the bounded fetch for a table. Column 0 is the rowid.
func selectRowsSQL(table string, limit int) string {
	return fmt.Sprintf("SELECT rowid AS %s, * FROM %s LIMIT %d",
		types.RowIDColumn, quoteIdentifier(table), limit)
}

// updateCellSQL builds the single-cell update. Both values are bound: the
// new text first, then the rowid.
func updateCellSQL(table, column string) string {
	return fmt.Sprintf("UPDATE %s SET %s = ? WHERE rowid = ?",
		quoteIdentifier(table), quoteIdentifier(column))
}

// busyTimeoutPragma is the _pragma value for a busy timeout in milliseconds.
func busyTimeoutPragma(ms int64) string {
	return "busy_timeout(" + strconv.FormatInt(ms, 10) + ")"
}
