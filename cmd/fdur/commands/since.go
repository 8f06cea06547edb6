package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// Clock names accepted by --clock.
const (
	ClockWall     = "wall"
	ClockCalendar = "calendar"
)

// SinceReport is the elapsed time between two instants.
type SinceReport struct {
	From       time.Time         `json:"from" yaml:"from"`
	To         time.Time         `json:"to" yaml:"to"`
	Clock      string            `json:"clock" yaml:"clock"`
	Elapsed    duration.Duration `json:"elapsed" yaml:"elapsed"`
	Display    string            `json:"display" yaml:"display"`
	Decomposed string            `json:"decomposed" yaml:"decomposed"`
}

// NewSinceCommand creates the since subcommand.
func NewSinceCommand(opts *RootOptions) *cobra.Command {
	var clock string

	cmd := &cobra.Command{
		Use:   "since <from> [to]",
		Short: "Elapsed time between two instants",
		Long: `Since prints the time elapsed from an RFC 3339 instant until another
one, or until now.

With --clock wall (the default) an instant earlier than from is an error
that reports how far the clock went backwards. With --clock calendar the
elapsed time is signed.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse(time.RFC3339Nano, args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid from time", err)
			}
			to := opts.Now()
			if len(args) == 2 {
				if to, err = time.Parse(time.RFC3339Nano, args[1]); err != nil {
					return WrapExitError(ExitCommandError, "invalid to time", err)
				}
			}

			elapsed, err := Elapsed(clock, from, to)
			if err != nil {
				if errors.Is(err, duration.ErrClockOrder) {
					return WrapExitError(ExitFailure, "clock went backwards", err)
				}
				return WrapExitError(ExitCommandError, "cannot measure elapsed time", err)
			}

			report := SinceReport{
				From:       from,
				To:         to,
				Clock:      clock,
				Elapsed:    elapsed,
				Display:    elapsed.String(),
				Decomposed: elapsed.Decompose().String(),
			}
			return opts.formatter(cmd).Write(report, func(w io.Writer) {
				fmt.Fprintf(w, "%s (%s)\n", report.Display, report.Decomposed)
			})
		},
	}

	cmd.Flags().StringVar(&clock, "clock", ClockWall, "clock semantics (wall|calendar)")

	return cmd
}

// Elapsed measures to - from with the named clock's semantics.
func Elapsed(clock string, from, to time.Time) (duration.Duration, error) {
	switch clock {
	case ClockWall:
		return duration.Between(duration.SystemTimeOf(to), duration.SystemTimeOf(from))
	case ClockCalendar:
		return duration.Between(duration.TimestampFromTime(to), duration.TimestampFromTime(from))
	default:
		return duration.Zero(), fmt.Errorf("unknown clock %q", clock)
	}
}
