package steplog

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("kind", event.Kind.String()),
		slog.Int("index", event.Index),
		slog.Float64("t", event.Time.Seconds()),
	}
	if event.Scenario != "" {
		attrs = append(attrs, slog.String("scenario", event.Scenario))
	}

	switch event.Kind {
	case KindStart, KindStep:
		attrs = append(attrs, slog.Float64("step", event.Step.Seconds()))
	case KindEnd:
		if event.Wall != nil {
			attrs = append(attrs, slog.String("wall", event.Wall.String()))
		}
	case KindError:
		attrs = append(attrs, slog.String("error", event.Error))
	}

	if len(event.State) > 0 {
		state := make([]any, 0, len(event.State))
		for _, name := range slices.Sorted(maps.Keys(event.State)) {
			state = append(state, slog.Float64(name, event.State[name]))
		}
		attrs = append(attrs, slog.Group("state", state...))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "step", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
