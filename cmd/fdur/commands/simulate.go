package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/floatdur/floatdur-go/pkg/duration"
	"github.com/floatdur/floatdur-go/pkg/simulate"
	"github.com/floatdur/floatdur-go/pkg/steplog"
)

// SampleRow is one printed sample of a run.
type SampleRow struct {
	Index int                `json:"index" yaml:"index"`
	Time  duration.Duration  `json:"t" yaml:"t"`
	State map[string]float64 `json:"state" yaml:"state"`
}

// SimulateReport summarizes a run.
type SimulateReport struct {
	RunID    string            `json:"run_id" yaml:"run_id"`
	Scenario string            `json:"scenario" yaml:"scenario"`
	Model    string            `json:"model" yaml:"model"`
	Step     duration.Duration `json:"step" yaml:"step"`
	Steps    int               `json:"steps" yaml:"steps"`
	Samples  []SampleRow       `json:"samples" yaml:"samples"`
	Wall     duration.Duration `json:"wall" yaml:"wall"`
	Trace    string            `json:"trace,omitempty" yaml:"trace,omitempty"`
	Canceled bool              `json:"canceled,omitempty" yaml:"canceled,omitempty"`
}

// NewSimulateCommand creates the simulate subcommand.
func NewSimulateCommand(opts *RootOptions) *cobra.Command {
	var (
		tracePath string
		every     int
		runID     string
	)

	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run a simulation scenario",
		Long: `Simulate integrates the scenario's model over evenly spaced steps and
prints every Nth sample. Step events are logged at debug level and, with
--trace, appended to a CBOR trace file that "fdur trace" can read.

Models: ` + fmt.Sprint(simulate.Models()),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := simulate.LoadScenario(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load scenario", err)
			}
			if every < 0 {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --every %d", every), nil)
			}

			loggers := []steplog.Logger{steplog.NewSlogAdapter(opts.Logger)}
			if tracePath != "" {
				fl, err := steplog.NewFileLogger(tracePath)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to open trace file", err)
				}
				defer func() {
					if err := fl.Close(); err != nil {
						opts.Logger.Error("trace file incomplete", "path", tracePath, "error", err)
					}
				}()
				loggers = append(loggers, fl)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var runOpts []simulate.Option
			if runID != "" {
				runOpts = append(runOpts, simulate.WithRunID(runID))
			}

			opts.Logger.Info("running scenario", "scenario", sc.Name, "model", sc.Model, "steps", sc.Steps)
			res, runErr := simulate.Run(ctx, sc, steplog.NewMultiLogger(loggers...), runOpts...)
			if res == nil {
				return WrapExitError(ExitCommandError, "invalid scenario", runErr)
			}

			report := NewSimulateReport(sc, res, every)
			report.Trace = tracePath
			report.Canceled = errors.Is(runErr, context.Canceled)

			if err := opts.formatter(cmd).Write(report, func(w io.Writer) {
				writeSimulateText(w, report)
			}); err != nil {
				return err
			}
			if runErr != nil {
				return WrapExitError(ExitFailure, "simulation interrupted", runErr)
			}
			opts.Logger.Info("scenario finished", "run_id", res.RunID, "wall", res.Wall.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&tracePath, "trace", "", "append step events to this CBOR trace file")
	cmd.Flags().IntVar(&every, "every", 0, "print every Nth sample (0 picks about ten rows)")
	cmd.Flags().StringVar(&runID, "run-id", "", "run ID (default: random UUID)")

	return cmd
}

// NewSimulateReport selects every Nth sample of res, always keeping the
// last one. every == 0 picks a stride that prints about ten rows.
func NewSimulateReport(sc *simulate.Scenario, res *simulate.Result, every int) SimulateReport {
	if every == 0 {
		every = max(1, (sc.Steps-1)/10)
	}

	report := SimulateReport{
		RunID:    res.RunID,
		Scenario: res.Scenario,
		Model:    sc.Model,
		Step:     res.Step,
		Steps:    len(res.Samples),
		Wall:     res.Wall,
	}
	for i, s := range res.Samples {
		if i%every == 0 || i == len(res.Samples)-1 {
			report.Samples = append(report.Samples, SampleRow{Index: s.Index, Time: s.Time, State: s.State})
		}
	}
	return report
}

func writeSimulateText(w io.Writer, r SimulateReport) {
	fmt.Fprintf(w, "run %s: %s (%s), %d samples, step %s\n", r.RunID, r.Scenario, r.Model, r.Steps, r.Step)
	for _, s := range r.Samples {
		fmt.Fprintf(w, "%6d  t=%-12v", s.Index, s.Time.Seconds())
		for _, name := range slices.Sorted(maps.Keys(s.State)) {
			fmt.Fprintf(w, "  %s=%.6g", name, s.State[name])
		}
		fmt.Fprintln(w)
	}
	if r.Canceled {
		fmt.Fprintln(w, "canceled")
	}
	fmt.Fprintf(w, "wall time: %s\n", r.Wall)
	if r.Trace != "" {
		fmt.Fprintf(w, "trace: %s\n", r.Trace)
	}
}
