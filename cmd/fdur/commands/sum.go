package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// SumReport is the total of a list of durations.
type SumReport struct {
	Count      int               `json:"count" yaml:"count"`
	Total      duration.Duration `json:"total" yaml:"total"`
	Display    string            `json:"display" yaml:"display"`
	Decomposed string            `json:"decomposed" yaml:"decomposed"`
}

// NewSumCommand creates the sum subcommand.
func NewSumCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "sum <duration>...",
		Short:         "Add up durations",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := make([]duration.Duration, 0, len(args))
			for _, arg := range args {
				d, err := duration.Parse(arg)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid duration", err)
				}
				ds = append(ds, d)
			}

			total := duration.Sum(ds...)
			opts.Logger.Debug("summed durations", "count", len(ds), "total", total.Seconds())

			report := SumReport{
				Count:      len(ds),
				Total:      total,
				Display:    total.String(),
				Decomposed: total.Decompose().String(),
			}
			return opts.formatter(cmd).Write(report, func(w io.Writer) {
				fmt.Fprintf(w, "%s (%s)\n", report.Display, report.Decomposed)
			})
		},
	}
}
