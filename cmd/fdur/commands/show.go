package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// ProtoParts is the protobuf rendering of a duration.
type ProtoParts struct {
	Seconds int64 `json:"seconds" yaml:"seconds"`
	Nanos   int32 `json:"nanos" yaml:"nanos"`
}

// ShowReport describes one duration in every representation.
type ShowReport struct {
	Input      string            `json:"input" yaml:"input"`
	Seconds    duration.Duration `json:"seconds" yaml:"seconds"`
	Display    string            `json:"display" yaml:"display"`
	Decomposed string            `json:"decomposed" yaml:"decomposed"`
	Std        string            `json:"std,omitempty" yaml:"std,omitempty"`
	StdError   string            `json:"std_error,omitempty" yaml:"std_error,omitempty"`
	Proto      *ProtoParts       `json:"proto,omitempty" yaml:"proto,omitempty"`
	ProtoError string            `json:"proto_error,omitempty" yaml:"proto_error,omitempty"`
}

// NewShowCommand creates the show subcommand.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <duration>...",
		Short: "Show durations in every representation",
		Long: `Show parses each argument as a duration ("90", "1.5h", "250 ms") and
prints its seconds, readable form, day/clock breakdown, and its
time.Duration and protobuf equivalents when those can hold it.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]ShowReport, 0, len(args))
			for _, arg := range args {
				d, err := duration.Parse(arg)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid duration", err)
				}
				reports = append(reports, Show(arg, d))
			}

			var data any = reports
			if len(reports) == 1 {
				data = reports[0]
			}
			return opts.formatter(cmd).Write(data, func(w io.Writer) {
				for i, r := range reports {
					if i > 0 {
						fmt.Fprintln(w)
					}
					writeShowText(w, r)
				}
			})
		},
	}
}

// Show builds the report for d. Conversion failures are recorded in the
// report rather than returned.
func Show(input string, d duration.Duration) ShowReport {
	r := ShowReport{
		Input:      input,
		Seconds:    d,
		Display:    d.String(),
		Decomposed: d.Decompose().String(),
	}
	if std, err := d.ToStd(); err != nil {
		r.StdError = err.Error()
	} else {
		r.Std = std.String()
	}
	if pb, err := d.ToProto(); err != nil {
		r.ProtoError = err.Error()
	} else {
		r.Proto = &ProtoParts{Seconds: pb.GetSeconds(), Nanos: pb.GetNanos()}
	}
	return r
}

func writeShowText(w io.Writer, r ShowReport) {
	fmt.Fprintf(w, "%s\n", r.Display)
	fmt.Fprintf(w, "  seconds:    %v\n", r.Seconds.Seconds())
	fmt.Fprintf(w, "  decomposed: %s\n", r.Decomposed)
	if r.StdError != "" {
		fmt.Fprintf(w, "  std:        (%s)\n", r.StdError)
	} else {
		fmt.Fprintf(w, "  std:        %s\n", r.Std)
	}
	if r.Proto == nil {
		fmt.Fprintf(w, "  proto:      (%s)\n", r.ProtoError)
	} else {
		fmt.Fprintf(w, "  proto:      %ds %dns\n", r.Proto.Seconds, r.Proto.Nanos)
	}
}
