package duration

import (
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// TimePoint is implemented by instant types that can report the Duration
// elapsed since another instant of the same kind.
type TimePoint[T any] interface {
	DurationSince(earlier T) (Duration, error)
}

// Between returns the Duration from earlier to later.
func Between[T TimePoint[T]](later, earlier T) (Duration, error) {
	return later.DurationSince(earlier)
}

// Instant is a reading of the monotonic clock.
type Instant struct {
	t time.Time
}

// Now returns the current monotonic instant.
func Now() Instant {
	return Instant{t: time.Now()}
}

// InstantOf wraps t. Elapsed time between two instants uses their monotonic
// clock readings when both carry one.
func InstantOf(t time.Time) Instant {
	return Instant{t: t}
}

// Time returns the underlying time.Time.
func (i Instant) Time() time.Time { return i.t }

// DurationSince returns i - earlier. It never fails; the result is negative
// when earlier is in fact later.
func (i Instant) DurationSince(earlier Instant) (Duration, error) {
	return FromStd(i.t.Sub(earlier.t)), nil
}

// Elapsed returns the time elapsed since i.
func (i Instant) Elapsed() Duration {
	d, _ := Now().DurationSince(i)
	return d
}

// SystemTime is a wall-clock instant. It carries no monotonic reading, so
// elapsed time between two SystemTimes reflects clock adjustments.
type SystemTime struct {
	t time.Time
}

// SystemNow returns the current wall-clock time.
func SystemNow() SystemTime {
	return SystemTime{t: time.Now().Round(0)}
}

// SystemTimeOf wraps t, stripping any monotonic clock reading.
func SystemTimeOf(t time.Time) SystemTime {
	return SystemTime{t: t.Round(0)}
}

// Time returns the underlying time.Time.
func (s SystemTime) Time() time.Time { return s.t }

// DurationSince returns s - earlier. It fails with a *ClockOrderError when
// earlier is after s.
func (s SystemTime) DurationSince(earlier SystemTime) (Duration, error) {
	if earlier.t.After(s.t) {
		return Zero(), &ClockOrderError{Earlier: earlier.t, Later: s.t}
	}
	return secondsBetween(earlier.t, s.t), nil
}

// Timestamp is a calendar instant backed by a protobuf Timestamp.
type Timestamp struct {
	ts *timestamppb.Timestamp
}

// TimestampOf wraps ts. A nil ts is the Unix epoch.
func TimestampOf(ts *timestamppb.Timestamp) Timestamp {
	return Timestamp{ts: ts}
}

// TimestampFromTime returns the calendar instant of t.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{ts: timestamppb.New(t)}
}

// Proto returns the underlying protobuf Timestamp.
func (c Timestamp) Proto() *timestamppb.Timestamp { return c.ts }

// DurationSince returns c - earlier as a signed Duration. It never fails.
// Spans whose nanosecond count overflows int64 are computed at millisecond
// precision, like FromProto.
func (c Timestamp) DurationSince(earlier Timestamp) (Duration, error) {
	secs := c.ts.GetSeconds() - earlier.ts.GetSeconds()
	nanos := c.ts.GetNanos() - earlier.ts.GetNanos()
	// durationpb requires seconds and nanos to agree in sign.
	if secs > 0 && nanos < 0 {
		secs--
		nanos += int32(time.Second)
	} else if secs < 0 && nanos > 0 {
		secs++
		nanos -= int32(time.Second)
	}

	return fromProtoParts(&durationpb.Duration{Seconds: secs, Nanos: nanos}), nil
}

// secondsBetween returns b - a without the +/-292 year saturation of
// time.Time.Sub.
func secondsBetween(a, b time.Time) Duration {
	secs := float64(b.Unix() - a.Unix())
	nanos := float64(b.Nanosecond() - a.Nanosecond())
	return Seconds(secs + nanos/NanosPerSecond)
}
