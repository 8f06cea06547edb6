// Package timer runs named countdown timers whose lengths are float
// durations.
package timer

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// Timer errors.
var (
	ErrTimerNotFound   = errors.New("timer not found")
	ErrInvalidDuration = errors.New("invalid timer duration")
)

// Default timer limits.
var (
	// DefaultMinDuration is the shortest timer a Manager accepts by default.
	DefaultMinDuration = duration.Milliseconds(1)

	// DefaultMaxDuration is the longest timer a Manager accepts by default.
	DefaultMaxDuration = duration.Days(1)
)

// Accuracy bounds.
const (
	// AccuracyPercent is the timer accuracy as a percentage.
	AccuracyPercent = 1.0
)

// AccuracyAbsolute is the minimum timer accuracy.
var AccuracyAbsolute = duration.Seconds(1)

// Timer represents an active countdown.
type Timer struct {
	// Name identifies this timer.
	Name string

	// Started is when the timer was set.
	Started duration.Instant

	// Duration is the timer length.
	Duration duration.Duration

	// Value is handed to the expiry callback.
	Value any

	timer *time.Timer
}

// ExpiresAt returns when the timer will expire.
func (t *Timer) ExpiresAt() time.Time {
	std, err := t.Duration.ToStd()
	if err != nil {
		return t.Started.Time()
	}
	return t.Started.Time().Add(std)
}

// Remaining returns the time until expiry, or zero once expired.
func (t *Timer) Remaining() duration.Duration {
	remaining := t.Duration.Sub(t.Started.Elapsed())
	if remaining.IsNegative() {
		return duration.Zero()
	}
	return remaining
}

// IsExpired returns true if the timer has run out.
func (t *Timer) IsExpired() bool {
	return !t.Started.Elapsed().Less(t.Duration)
}

// Manager manages named timers.
type Manager struct {
	mu sync.RWMutex

	minLen, maxLen duration.Duration
	timers         map[string]*Timer
	onExpiry       func(name string, value any)
}

// NewManager creates a timer manager with the default limits.
func NewManager() *Manager {
	return NewManagerWithLimits(DefaultMinDuration, DefaultMaxDuration)
}

// NewManagerWithLimits creates a timer manager that only accepts timer
// lengths in [minLen, maxLen].
func NewManagerWithLimits(minLen, maxLen duration.Duration) *Manager {
	return &Manager{
		minLen: minLen,
		maxLen: maxLen,
		timers: make(map[string]*Timer),
	}
}

// SetTimer creates or replaces the timer called name. The timer starts
// immediately. The length must lie within the manager's limits and fit a
// time.Duration.
func (m *Manager) SetTimer(name string, d duration.Duration, value any) error {
	if !d.IsFinite() || d.Less(m.minLen) || m.maxLen.Less(d) {
		return fmt.Errorf("%w: %v not within [%v, %v]", ErrInvalidDuration, d, m.minLen, m.maxLen)
	}
	std, err := d.ToStd()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDuration, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.timers[name]; exists {
		existing.timer.Stop()
	}

	t := &Timer{
		Name:     name,
		Started:  duration.Now(),
		Duration: d,
		Value:    value,
	}
	t.timer = time.AfterFunc(std, func() {
		m.expireTimer(name, t)
	})

	m.timers[name] = t
	return nil
}

// CancelTimer cancels a timer without triggering the expiry callback.
func (m *Manager) CancelTimer(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, exists := m.timers[name]
	if !exists {
		return fmt.Errorf("%w: %q", ErrTimerNotFound, name)
	}

	t.timer.Stop()
	delete(m.timers, name)
	return nil
}

// CancelAll cancels every timer.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, t := range m.timers {
		t.timer.Stop()
		delete(m.timers, name)
	}
}

// GetTimer returns a copy of the timer called name, or nil if not set.
func (m *Manager) GetTimer(name string) *Timer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if t, exists := m.timers[name]; exists {
		return t.snapshot()
	}
	return nil
}

// Timers returns copies of all active timers, soonest expiry first.
func (m *Manager) Timers() []*Timer {
	m.mu.RLock()
	result := make([]*Timer, 0, len(m.timers))
	for _, t := range m.timers {
		result = append(result, t.snapshot())
	}
	m.mu.RUnlock()

	slices.SortFunc(result, func(a, b *Timer) int {
		return a.Remaining().Compare(b.Remaining())
	})
	return result
}

// Count returns the number of active timers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.timers)
}

// OnExpiry sets the callback for timer expiry. It runs on its own goroutine
// and receives the timer name and the value that was set.
func (m *Manager) OnExpiry(fn func(name string, value any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpiry = fn
}

func (t *Timer) snapshot() *Timer {
	return &Timer{
		Name:     t.Name,
		Started:  t.Started,
		Duration: t.Duration,
		Value:    t.Value,
	}
}

// expireTimer removes t if it is still the current timer for name.
// A replaced timer whose AfterFunc already fired is ignored.
func (m *Manager) expireTimer(name string, t *Timer) {
	m.mu.Lock()

	current, exists := m.timers[name]
	if !exists || current != t {
		m.mu.Unlock()
		return
	}
	delete(m.timers, name)
	callback := m.onExpiry

	m.mu.Unlock()

	// Call callback outside lock
	if callback != nil {
		callback(name, t.Value)
	}
}

// CalculateAccuracy returns the expected accuracy for a timer of length d:
// +/- 1% or +/- 1 second, whichever is greater.
func CalculateAccuracy(d duration.Duration) duration.Duration {
	percent := d.Abs().Mul(AccuracyPercent / 100)
	if AccuracyAbsolute.Less(percent) {
		return percent
	}
	return AccuracyAbsolute
}
