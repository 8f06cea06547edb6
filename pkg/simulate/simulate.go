// Package simulate integrates small ODE models over evenly spaced float
// duration steps and traces every step.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/floatdur/floatdur-go/pkg/duration"
	"github.com/floatdur/floatdur-go/pkg/steplog"
	"github.com/floatdur/floatdur-go/pkg/stopwatch"
	"github.com/floatdur/floatdur-go/pkg/subdivide"
)

// MaxSteps is the largest step count a scenario may ask for. Every sample
// is kept in memory.
const MaxSteps = 10_000_000

// Simulation errors.
var (
	ErrUnknownModel    = errors.New("unknown model")
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Sample is the model state at one simulated time.
type Sample struct {
	Index int
	Time  duration.Duration
	State map[string]float64
}

// Result is the outcome of a run.
type Result struct {
	RunID    string
	Scenario string
	Step     duration.Duration
	Samples  []Sample

	// Wall is the wall time the run took.
	Wall duration.Duration
}

// Final returns the last sample, or a zero Sample if there is none.
func (r *Result) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	runID string
	clock stopwatch.Clock
}

// WithRunID sets the run ID instead of generating a random UUID.
func WithRunID(id string) Option {
	return func(c *runConfig) { c.runID = id }
}

// WithClock sets the clock used to measure wall time.
func WithClock(clock stopwatch.Clock) Option {
	return func(c *runConfig) { c.clock = clock }
}

// Run integrates the scenario with the explicit Euler method, one step per
// sample of subdivide.WithStep(Start, End, Steps). Every sample is sent to
// logger as a step event, framed by a start and an end event.
//
// Run checks ctx between steps. When ctx is done it logs an error event and
// returns the samples computed so far together with the context error.
func Run(ctx context.Context, sc *Scenario, logger steplog.Logger, opts ...Option) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	factory, _ := lookupModel(sc.Model)
	model, err := factory(sc.Params)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", sc.Model, err)
	}

	cfg := runConfig{clock: stopwatch.SystemClock{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}
	if logger == nil {
		logger = steplog.NoopLogger{}
	}

	vars := model.Variables()
	state := make([]float64, len(vars))
	for i, name := range vars {
		state[i] = sc.Initial[name]
	}
	deriv := make([]float64, len(vars))

	sw := stopwatch.New(cfg.clock)
	sw.Start()

	seq := subdivide.New(sc.Start, sc.End, sc.Steps)
	res := &Result{
		RunID:    cfg.runID,
		Scenario: sc.Name,
		Step:     seq.StepSize(),
		Samples:  make([]Sample, 0, sc.Steps),
	}

	event := func(kind steplog.Kind, index int, t duration.Duration) steplog.Event {
		return steplog.Event{
			Timestamp: time.Now(),
			RunID:     res.RunID,
			Scenario:  res.Scenario,
			Kind:      kind,
			Index:     index,
			Time:      t,
			Step:      res.Step,
		}
	}

	start := event(steplog.KindStart, 0, sc.Start)
	start.State = snapshot(vars, state)
	logger.Log(start)

	prev := sc.Start
	for t, dt := range subdivide.WithStep(sc.Start, sc.End, sc.Steps) {
		index := len(res.Samples)
		if err := ctx.Err(); err != nil {
			ev := event(steplog.KindError, index, t)
			ev.Error = err.Error()
			logger.Log(ev)
			res.Wall = sw.Elapsed()
			return res, fmt.Errorf("simulation %q stopped at step %d: %w", sc.Name, index, err)
		}

		if index > 0 {
			model.Derivative(prev, state, deriv)
			for i := range state {
				state[i] += deriv[i] * dt.Seconds()
			}
		}
		prev = t

		sample := Sample{Index: index, Time: t, State: snapshot(vars, state)}
		res.Samples = append(res.Samples, sample)

		ev := event(steplog.KindStep, index, t)
		ev.State = maps.Clone(sample.State)
		logger.Log(ev)
	}

	res.Wall = sw.Elapsed()
	end := event(steplog.KindEnd, len(res.Samples)-1, sc.End)
	end.State = maps.Clone(res.Final().State)
	end.Wall = &res.Wall
	logger.Log(end)

	return res, nil
}

func snapshot(vars []string, state []float64) map[string]float64 {
	m := make(map[string]float64, len(vars))
	for i, name := range vars {
		m[name] = state[i]
	}
	return m
}
