// Package cli implements the tabula command-line interface: one-shot
// commands for checking, listing, viewing, and editing tables, and an
// interactive shell over a single session.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tabula/internal/paths"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// User-facing errors raised by the CLI itself.
var (
	errInvalidDatabase = errors.New("not a valid SQLite database")
	errUnknownTable    = errors.New("unknown table")
	errUnknownColumn   = errors.New("unknown column")
	errNoSnapshot      = errors.New("no table loaded (use .load <table>)")
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	format    string
	logLevel  string
}

// app carries the state of one CLI invocation.
type app struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "tabula" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tabula",
		Short: "Browse and edit SQLite tables",
		Long: `tabula lists the tables of an SQLite database, shows a bounded
snapshot of a table's rows keyed by rowid, and edits single cells in place.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/tabula)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory for shell history (default: $XDG_DATA_HOME/tabula)")
	root.PersistentFlags().StringVarP(&a.flags.format, "format", "f", defaultFormat, "output format: table, json, csv, markdown")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newTablesCmd(a))
	root.AddCommand(newRowsCmd(a))
	root.AddCommand(newSetCmd(a))
	root.AddCommand(newShellCmd(a))

	return root
}

// setup resolves the config directory, loads config.yaml, and builds the
// logger. A missing config file is not an error.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	v, err := loadConfig(configDir, cmd.Flags())
	if err != nil {
		return err
	}
	a.config = v

	level, err := parseLogLevel(v.GetString(cfgKeyLogLevel))
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.logger.Debug("config loaded", "config_dir", configDir, "file", v.ConfigFileUsed())
	return nil
}

// dataDir returns the resolved data directory.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps engine and allocation failures to a system error and
// everything else to a user error.
func exitCode(err error) int {
	switch types.CodeOf(err) {
	case types.CodeEngine, types.CodeAllocation:
		return exitSysError
	default:
		return exitUserError
	}
}
