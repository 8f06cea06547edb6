package commands

import (
	"github.com/spf13/cobra"

	"github.com/floatdur/floatdur-go/cmd/fdur/interactive"
)

// NewReplCommand creates the repl subcommand.
func NewReplCommand(opts *RootOptions) *cobra.Command {
	var history string

	cmd := &cobra.Command{
		Use:           "repl",
		Short:         "Interactive duration calculator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl, err := interactive.New(opts.Logger, history)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to start repl", err)
			}
			return repl.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&history, "history", "", "history file (default: none)")

	return cmd
}
