package sqlite

import (
	"errors"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// misuse reports a violated precondition.
func misuse(op string, cause error) error {
	return types.NewError(types.CodeMisuse, op, cause)
}

// engineError classifies an error returned through database/sql. The engine
// message is kept verbatim.
func engineError(op string, err error) error {
	if err == nil {
		return nil
	}

	code := types.CodeEngine
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_NOMEM:
			code = types.CodeAllocation
		case sqlite3.SQLITE_MISUSE:
			code = types.CodeMisuse
		}
	}
	return types.NewError(code, op, err)
}
