// Package stopwatch measures wall time in float durations, with lap
// support.
package stopwatch

import (
	"slices"
	"sync"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// Clock supplies monotonic instants.
type Clock interface {
	Now() duration.Instant
}

// SystemClock reads the process monotonic clock.
type SystemClock struct{}

// Now returns the current instant.
func (SystemClock) Now() duration.Instant { return duration.Now() }

// Stopwatch measures elapsed time since Start and splits it into laps.
// It is safe for concurrent use.
type Stopwatch struct {
	mu      sync.Mutex
	clock   Clock
	running bool
	start   duration.Instant
	lapFrom duration.Instant
	laps    []duration.Duration
}

// New creates a stopped Stopwatch reading clock. A nil clock means
// SystemClock.
func New(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Stopwatch{clock: clock}
}

// Start resets the stopwatch and starts it.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.running = true
	s.start = now
	s.lapFrom = now
	s.laps = nil
}

// Running reports whether Start has been called.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Lap records and returns the time since the previous lap (or Start).
// A stopped stopwatch returns zero and records nothing.
func (s *Stopwatch) Lap() duration.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return duration.Zero()
	}
	now := s.clock.Now()
	lap, _ := duration.Between(now, s.lapFrom)
	s.lapFrom = now
	s.laps = append(s.laps, lap)
	return lap
}

// Elapsed returns the time since Start without recording a lap.
func (s *Stopwatch) Elapsed() duration.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return duration.Zero()
	}
	d, _ := duration.Between(s.clock.Now(), s.start)
	return d
}

// Laps returns a copy of the recorded laps.
func (s *Stopwatch) Laps() []duration.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.laps)
}

// Total returns the sum of the recorded laps.
func (s *Stopwatch) Total() duration.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return duration.Sum(s.laps...)
}
