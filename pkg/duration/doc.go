// Package duration provides a floating-point time duration for simulation and
// scheduling math.
//
// A Duration stores a single float64 number of seconds. Arithmetic never
// fails: dividing by zero yields infinities or NaN, which propagate like any
// other float. Only conversions into fixed-width types can fail, with
// ErrOutOfRange.
//
// # Units
//
// Constructors and accessors exist for years, days, hours, minutes, seconds,
// milliseconds, microseconds and nanoseconds. A year is always exactly 365
// days; there is no notion of leap years, leap seconds or time zones.
//
//	d := duration.Days(3).Add(duration.Hours(12))
//	fmt.Println(d)          // 3.5 days
//	fmt.Println(d.Hours())  // 84
//
// # Decomposition
//
// Decompose breaks a Duration into days, hours, minutes, seconds and a
// fractional second plus a separate sign. Decomposed.Duration applies the
// sign when recombining, so the two directions are exact inverses up to
// float rounding.
//
// # Conversions
//
// ToStd/FromStd bridge to time.Duration, the monotonic duration type, and
// only accept non-negative values up to math.MaxInt64 nanoseconds.
// ToProto/FromProto bridge to the signed protobuf Duration. Very large
// protobuf durations are rebuilt at millisecond precision.
//
// # Elapsed Time
//
// Instant (monotonic clock), SystemTime (wall clock) and Timestamp
// (protobuf calendar instant) implement TimePoint. Only SystemTime can fail,
// with a *ClockOrderError, when the wall clock went backwards.
//
// # Serialization
//
// JSON, CBOR and YAML all encode a Duration as one float of seconds.
package duration
