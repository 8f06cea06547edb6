package commands

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootOptions holds global settings for all commands, resolved from
// flags, environment and config file before any command runs.
type RootOptions struct {
	Config   string
	Verbose  bool
	Format   string
	LogLevel string

	// Logger is the operational logger, writing to stderr.
	Logger *slog.Logger

	// Now returns the current time; tests replace it.
	Now func() time.Time

	v *viper.Viper
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml", "cbor"}

// NewRootCommand creates the root command of the fdur CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		Now: time.Now,
		v:   viper.New(),
	}

	cmd := &cobra.Command{
		Use:   "fdur",
		Short: "fdur - floating-point duration toolkit",
		Long: `Inspect, convert and sum floating-point durations, generate evenly
spaced time samples, and run fixed-step simulations over them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.Config, "config", "", "config file (default: fdur.yaml in . or $HOME/.config/fdur)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (text|json|yaml|cbor)")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewSumCommand(opts))
	cmd.AddCommand(NewSubdivideCommand(opts))
	cmd.AddCommand(NewSinceCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))

	return cmd
}

func (o *RootOptions) resolve(cmd *cobra.Command) error {
	if err := loadConfig(o.v, o.Config); err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if err := o.v.BindPFlags(cmd.Flags()); err != nil {
		return WrapExitError(ExitCommandError, "failed to bind flags", err)
	}

	o.Format = o.v.GetString("format")
	o.LogLevel = o.v.GetString("log-level")
	o.Verbose = o.v.GetBool("verbose")

	if !slices.Contains(ValidFormats, o.Format) {
		return WrapExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats), nil)
	}

	logger, err := newLogger(cmd.ErrOrStderr(), o.LogLevel, o.Verbose)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to configure logging", err)
	}
	o.Logger = logger

	if used := o.v.ConfigFileUsed(); used != "" {
		o.Logger.Debug("loaded config", "path", used)
	}
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}
