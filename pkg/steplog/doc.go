// Package steplog records a machine-readable trace of simulation runs.
//
// Every run emits a start event, one event per integration step and an end
// (or error) event. The trace is separate from operational logging (slog):
// it is meant to be replayed, filtered and exported after the fact.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	logger := steplog.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a binary file
//	logger, _ := steplog.NewFileLogger("decay.steplog")
//
//	// Both
//	logger := steplog.NewMultiLogger(
//	    steplog.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Trace files are a plain concatenation of CBOR-encoded events using
// integer keys. Durations are single float64 values of seconds. The
// "fdur trace" command views and filters them.
package steplog
