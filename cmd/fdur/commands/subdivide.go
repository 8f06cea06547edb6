package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/floatdur/floatdur-go/pkg/duration"
	"github.com/floatdur/floatdur-go/pkg/subdivide"
)

// MaxSubdivideSteps bounds --steps; every sample is held for output.
const MaxSubdivideSteps = 1_000_000

// SubdivideReport lists the samples of an interval.
type SubdivideReport struct {
	Start   duration.Duration   `json:"start" yaml:"start"`
	End     duration.Duration   `json:"end" yaml:"end"`
	Step    duration.Duration   `json:"step" yaml:"step"`
	Samples []duration.Duration `json:"samples" yaml:"samples"`
}

// NewSubdivideCommand creates the subdivide subcommand.
func NewSubdivideCommand(opts *RootOptions) *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "subdivide <start> <end>",
		Short: "List evenly spaced samples between two durations",
		Long: `Subdivide prints --steps samples from start to end inclusive. The
first sample is exactly start and the last is exactly end. The default
step count comes from the "steps" config key.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := duration.Parse(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid start", err)
			}
			end, err := duration.Parse(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid end", err)
			}

			steps := opts.v.GetInt("steps")
			if steps < 2 || steps > MaxSubdivideSteps {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid step count %d: must be between 2 and %d", steps, MaxSubdivideSteps), nil)
			}

			seq := subdivide.New(start, end, steps)
			report := SubdivideReport{
				Start: start,
				End:   end,
				Step:  seq.StepSize(),
			}
			samples := seq.All()
			if reverse {
				samples = seq.Backward()
			}
			for t := range samples {
				report.Samples = append(report.Samples, t)
			}
			opts.Logger.Debug("subdivided interval",
				"start", start.Seconds(), "end", end.Seconds(), "steps", steps, "reverse", reverse)

			return opts.formatter(cmd).Write(report, func(w io.Writer) {
				fmt.Fprintf(w, "step: %s\n", report.Step)
				for i, t := range report.Samples {
					fmt.Fprintf(w, "%4d  %-16v %s\n", i, t.Seconds(), t)
				}
			})
		},
	}

	cmd.Flags().Int("steps", 11, "number of samples, including both ends")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "list samples from end to start")

	return cmd
}
