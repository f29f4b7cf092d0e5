package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tabula/internal/paths"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	RowLimit    int    `yaml:"row_limit"`
	BusyTimeout string `yaml:"busy_timeout"`
	Format      string `yaml:"format"`
	LogLevel    string `yaml:"log_level"`
	DataDir     string `yaml:"data_dir,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long:  "Create the configuration directory with a default config.yaml and the data directory for shell history.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	configPath := paths.ConfigFile(a.configDir)
	written, err := writeConfigIfMissing(configPath, a.flags.dataDir)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	dataDir, err := a.dataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "Wrote %s\n", configPath)
	} else {
		fmt.Fprintf(out, "Kept existing %s\n", configPath)
	}
	fmt.Fprintf(out, "Data directory %s\n", dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether the file was written.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := configFile{
		RowLimit:    types.DefaultRowLimit,
		BusyTimeout: defaultBusyTimeout,
		Format:      defaultFormat,
		LogLevel:    defaultLogLevel,
		DataDir:     dataDir,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
