package cli

import (
	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables <db>",
		Short: "List the user tables of a database",
		Long: `Tables lists user tables in ascending order. Internal sqlite_*
tables and views are not listed.

Example:
  tabula tables app.db
  tabula tables app.db --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openSession(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			tables, err := s.ListTables(ctx)
			if err != nil {
				return err
			}
			return renderTables(cmd.OutOrStdout(), tables, a.format())
		},
	}
}
