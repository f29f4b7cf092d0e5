package cli

import (
	"github.com/spf13/cobra"
)

func newRowsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rows <db> <table>",
		Short: "Show a bounded snapshot of a table",
		Long: `Rows prints up to row_limit rows of a table (at most 100). The first
column is the rowid used by "tabula set". NULL values print as empty text.

Example:
  tabula rows app.db users
  tabula rows app.db users --format csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openSession(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if err := requireListedTable(ctx, s, args[1]); err != nil {
				return err
			}
			snap, err := s.LoadTable(ctx, args[1])
			if err != nil {
				return err
			}
			return renderSnapshot(cmd.OutOrStdout(), snap, a.format())
		},
	}
}
