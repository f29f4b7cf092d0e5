package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TABULA"

	cfgKeyRowLimit    = "row_limit"
	cfgKeyBusyTimeout = "busy_timeout"
	cfgKeyFormat      = "format"
	cfgKeyLogLevel    = "log_level"
	cfgKeyDataDir     = "data_dir"

	defaultFormat      = formatTable
	defaultLogLevel    = "warn"
	defaultBusyTimeout = "0s"
)

// flagKeys maps persistent flags onto config keys. A flag set on the
// command line wins over the environment and config.yaml.
var flagKeys = map[string]string{
	"format":    cfgKeyFormat,
	"log-level": cfgKeyLogLevel,
}

// loadConfig reads config.yaml from configDir using Viper. TABULA_*
// environment variables override file values. A missing config.yaml is
// not an error.
func loadConfig(configDir string, fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyRowLimit, types.DefaultRowLimit)
	v.SetDefault(cfgKeyBusyTimeout, defaultBusyTimeout)
	v.SetDefault(cfgKeyFormat, defaultFormat)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(v, fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}

// sessionConfig builds the session Config from the loaded settings.
func sessionConfig(v *viper.Viper) types.Config {
	return types.Config{
		RowLimit:    v.GetInt(cfgKeyRowLimit),
		BusyTimeout: v.GetDuration(cfgKeyBusyTimeout),
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
