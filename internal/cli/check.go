package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabula/pkg/sqlite"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <db>",
		Short: "Report whether a file is a valid SQLite database",
		Long: `Check opens the file read-only and runs a trivial metadata query.
It never creates or modifies the file. Exits 1 if the file is not a valid
database, without saying why.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !sqlite.IsValidDatabaseContext(cmd.Context(), path) {
				return fmt.Errorf("%s: %w", path, errInvalidDatabase)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid SQLite database\n", path)
			return nil
		},
	}
}
