package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/floatdur/floatdur-go/pkg/duration"
	"github.com/floatdur/floatdur-go/pkg/steplog"
)

// TraceRow is one printed trace event.
type TraceRow struct {
	Timestamp time.Time          `json:"timestamp" yaml:"timestamp"`
	RunID     string             `json:"run_id" yaml:"run_id"`
	Scenario  string             `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Kind      string             `json:"kind" yaml:"kind"`
	Index     int                `json:"index" yaml:"index"`
	Time      duration.Duration  `json:"t" yaml:"t"`
	State     map[string]float64 `json:"state,omitempty" yaml:"state,omitempty"`
	Wall      *duration.Duration `json:"wall,omitempty" yaml:"wall,omitempty"`
	Error     string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunStats summarizes one run found in a trace file.
type RunStats struct {
	RunID    string             `json:"run_id" yaml:"run_id"`
	Scenario string             `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Steps    int                `json:"steps" yaml:"steps"`
	From     duration.Duration  `json:"from" yaml:"from"`
	To       duration.Duration  `json:"to" yaml:"to"`
	Wall     *duration.Duration `json:"wall,omitempty" yaml:"wall,omitempty"`
	Status   string             `json:"status" yaml:"status"`
}

// TraceStats summarizes a trace file.
type TraceStats struct {
	Events int            `json:"events" yaml:"events"`
	Kinds  map[string]int `json:"kinds" yaml:"kinds"`
	Runs   []RunStats     `json:"runs" yaml:"runs"`
}

// TraceOptions are the filters and mode of the trace command.
type TraceOptions struct {
	RunID    string
	Scenario string
	Kind     string
	From     string
	To       string
	Stats    bool
}

// NewTraceCommand creates the trace subcommand.
func NewTraceCommand(opts *RootOptions) *cobra.Command {
	var topts TraceOptions

	cmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "View a simulation trace file",
		Long: `Trace prints the events of a trace file written by "fdur simulate
--trace", optionally filtered by run, scenario, kind and simulated time.
With --stats it prints a per-run summary instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := topts.filter()
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid filter", err)
			}
			events, err := ReadTrace(args[0], filter)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read trace", err)
			}
			opts.Logger.Debug("read trace", "path", args[0], "events", len(events))

			f := opts.formatter(cmd)
			if topts.Stats {
				stats := Stats(events)
				return f.Write(stats, func(w io.Writer) { writeStatsText(w, stats) })
			}

			rows := make([]TraceRow, 0, len(events))
			for _, ev := range events {
				rows = append(rows, traceRow(ev))
			}
			return f.Write(rows, func(w io.Writer) {
				for _, r := range rows {
					writeTraceRow(w, r)
				}
			})
		},
	}

	cmd.Flags().StringVar(&topts.RunID, "run", "", "only events of this run ID")
	cmd.Flags().StringVar(&topts.Scenario, "scenario", "", "only events of this scenario")
	cmd.Flags().StringVar(&topts.Kind, "kind", "", "only events of this kind (start|step|end|error)")
	cmd.Flags().StringVar(&topts.From, "from", "", "only events at or after this simulated time")
	cmd.Flags().StringVar(&topts.To, "to", "", "only events at or before this simulated time")
	cmd.Flags().BoolVar(&topts.Stats, "stats", false, "print a per-run summary")

	return cmd
}

func (o TraceOptions) filter() (steplog.Filter, error) {
	f := steplog.Filter{RunID: o.RunID, Scenario: o.Scenario}
	if o.Kind != "" {
		k, ok := steplog.ParseKind(o.Kind)
		if !ok {
			return f, fmt.Errorf("unknown kind %q", o.Kind)
		}
		f.Kind = &k
	}
	if o.From != "" {
		d, err := duration.Parse(o.From)
		if err != nil {
			return f, fmt.Errorf("--from: %w", err)
		}
		f.SimFrom = &d
	}
	if o.To != "" {
		d, err := duration.Parse(o.To)
		if err != nil {
			return f, fmt.Errorf("--to: %w", err)
		}
		f.SimTo = &d
	}
	return f, nil
}

// ReadTrace reads every event of the trace file at path that matches
// filter.
func ReadTrace(path string, filter steplog.Filter) ([]steplog.Event, error) {
	r, err := steplog.NewFilteredReader(path, filter)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var events []steplog.Event
	for ev, err := range r.Events() {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Stats groups events by run, in order of first appearance.
func Stats(events []steplog.Event) TraceStats {
	stats := TraceStats{Events: len(events), Kinds: map[string]int{}}
	byRun := map[string]*RunStats{}
	var order []string

	for _, ev := range events {
		stats.Kinds[ev.Kind.String()]++

		rs, ok := byRun[ev.RunID]
		if !ok {
			rs = &RunStats{RunID: ev.RunID, Scenario: ev.Scenario, From: ev.Time, To: ev.Time, Status: "incomplete"}
			byRun[ev.RunID] = rs
			order = append(order, ev.RunID)
		}
		if ev.Time.Less(rs.From) {
			rs.From = ev.Time
		}
		if rs.To.Less(ev.Time) {
			rs.To = ev.Time
		}

		switch ev.Kind {
		case steplog.KindStep:
			rs.Steps++
		case steplog.KindEnd:
			rs.Status = "completed"
			rs.Wall = ev.Wall
		case steplog.KindError:
			rs.Status = "failed: " + ev.Error
		}
	}

	for _, id := range order {
		stats.Runs = append(stats.Runs, *byRun[id])
	}
	return stats
}

func traceRow(ev steplog.Event) TraceRow {
	return TraceRow{
		Timestamp: ev.Timestamp,
		RunID:     ev.RunID,
		Scenario:  ev.Scenario,
		Kind:      ev.Kind.String(),
		Index:     ev.Index,
		Time:      ev.Time,
		State:     ev.State,
		Wall:      ev.Wall,
		Error:     ev.Error,
	}
}

func writeTraceRow(w io.Writer, r TraceRow) {
	fmt.Fprintf(w, "%s  %-5s  %s  #%-5d t=%-10v",
		r.Timestamp.Format(time.RFC3339Nano), r.Kind, r.RunID, r.Index, r.Time.Seconds())
	for _, name := range slices.Sorted(maps.Keys(r.State)) {
		fmt.Fprintf(w, "  %s=%.6g", name, r.State[name])
	}
	if r.Wall != nil {
		fmt.Fprintf(w, "  wall=%s", r.Wall)
	}
	if r.Error != "" {
		fmt.Fprintf(w, "  error=%q", r.Error)
	}
	fmt.Fprintln(w)
}

func writeStatsText(w io.Writer, s TraceStats) {
	fmt.Fprintf(w, "%d events", s.Events)
	for _, k := range slices.Sorted(maps.Keys(s.Kinds)) {
		fmt.Fprintf(w, ", %s=%d", k, s.Kinds[k])
	}
	fmt.Fprintln(w)
	for _, r := range s.Runs {
		fmt.Fprintf(w, "%s  %-12s  %5d steps  %v..%v  %s", r.RunID, r.Scenario, r.Steps, r.From.Seconds(), r.To.Seconds(), r.Status)
		if r.Wall != nil {
			fmt.Fprintf(w, "  (wall %s)", r.Wall)
		}
		fmt.Fprintln(w)
	}
}
