package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <db> <table> <column> <rowid> <value>",
		Short: "Set one cell of a table",
		Long: `Set writes value into one cell, identified by column (name or
position) and rowid. The value is stored as text. The rowid column itself
cannot be changed.

Example:
  tabula set app.db users email 12 ada@example.com
  tabula set app.db users 2 12 "Ada Lovelace"`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			table, column, rowID, value := args[1], args[2], args[3], args[4]

			s, err := a.openSession(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if err := requireListedTable(ctx, s, table); err != nil {
				return err
			}
			snap, err := s.LoadTable(ctx, table)
			if err != nil {
				return err
			}
			col, err := resolveColumn(snap, column)
			if err != nil {
				return err
			}

			n, err := s.UpdateCellResult(ctx, col, rowID, value)
			if err != nil {
				return err
			}
			reportUpdate(cmd.OutOrStdout(), cmd.ErrOrStderr(), snap, col, rowID, n)
			return nil
		},
	}
}

// reportUpdate describes the outcome of an update. A rowid column edit and
// an update matching no row both succeed and produce a warning.
func reportUpdate(out, errOut io.Writer, snap types.Snapshot, col int, rowID string, n int64) {
	switch {
	case col == 0:
		fmt.Fprintf(errOut, "warning: %s is read-only; nothing changed\n", types.RowIDColumn)
	case n == 0:
		fmt.Fprintf(errOut, "warning: no row in %s with rowid %s\n", snap.Table, rowID)
	default:
		fmt.Fprintf(out, "Updated %s.%s where rowid = %s\n", snap.Table, snap.Columns[col].Name, rowID)
	}
}
