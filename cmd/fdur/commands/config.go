package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override flags.
const EnvPrefix = "FDUR"

// ConfigPaths are searched for fdur.yaml when --config is not given.
var ConfigPaths = []string{
	".",
	"$HOME/.config/fdur",
}

// loadConfig prepares v to resolve settings from flags, FDUR_* environment
// variables and the config file, in that order. A missing config file is
// only an error when path was given explicitly.
func loadConfig(v *viper.Viper, path string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", "text")
	v.SetDefault("log-level", "info")
	v.SetDefault("steps", 11)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fdur")
		v.SetConfigType("yaml")
		for _, p := range ConfigPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger builds the operational logger. Verbose forces debug level.
func newLogger(w io.Writer, level string, verbose bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}
