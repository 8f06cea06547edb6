package duration

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
)

// Limits of time.Duration split into whole seconds and nanoseconds.
const (
	maxStdSeconds = math.MaxInt64 / int64(time.Second)
	maxStdNanos   = math.MaxInt64 % int64(time.Second)
)

// ToStd converts d to a time.Duration.
//
// Only the non-negative half of time.Duration is a valid target: ToStd fails
// with ErrOutOfRange when d is NaN, negative (negative zero included), or
// longer than math.MaxInt64 nanoseconds. Whole seconds are truncated and the fraction is rounded to the nearest nanosecond; a
// fraction that rounds up to a full second is carried into the seconds.
func (d Duration) ToStd() (time.Duration, error) {
	if math.IsNaN(d.secs) || math.Signbit(d.secs) {
		return 0, outOfRange(d, "time.Duration")
	}

	whole := math.Trunc(d.secs)
	if whole > float64(maxStdSeconds) {
		return 0, outOfRange(d, "time.Duration")
	}

	secs := int64(whole)
	nanos := int64(math.Round((d.secs - whole) * NanosPerSecond))
	if nanos >= int64(time.Second) {
		secs++
		nanos -= int64(time.Second)
	}
	if secs > maxStdSeconds || (secs == maxStdSeconds && nanos > maxStdNanos) {
		return 0, outOfRange(d, "time.Duration")
	}

	return time.Duration(secs)*time.Second + time.Duration(nanos), nil
}

// FromStd converts a time.Duration to a Duration. It never fails; for very
// large inputs precision is limited by the float64 mantissa.
func FromStd(std time.Duration) Duration {
	secs := std / time.Second
	nanos := std % time.Second
	return Seconds(float64(secs) + float64(nanos)/NanosPerSecond)
}

// ToProto converts d to a protobuf Duration.
//
// The magnitude goes through ToStd and the sign is reapplied afterwards, so
// ToProto fails with ErrOutOfRange whenever |d| does not fit a time.Duration
// or the resulting message does not pass durationpb validation.
func (d Duration) ToProto() (*durationpb.Duration, error) {
	negative := d.secs < 0

	std, err := d.Abs().ToStd()
	if err != nil {
		return nil, err
	}

	pb := durationpb.New(std)
	if negative {
		pb.Seconds = -pb.Seconds
		pb.Nanos = -pb.Nanos
	}
	if err := pb.CheckValid(); err != nil {
		return nil, outOfRange(d, "durationpb.Duration")
	}
	return pb, nil
}

// FromProto converts a protobuf Duration to a Duration.
//
// Invalid messages (nil, out of the +/-10000 year range, or with mismatched
// signs) are rejected with ErrOutOfRange. When the total number of
// nanoseconds does not fit an int64 the value is rebuilt from whole
// milliseconds instead, dropping sub-millisecond precision.
func FromProto(pb *durationpb.Duration) (Duration, error) {
	if err := pb.CheckValid(); err != nil {
		return Zero(), fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return fromProtoParts(pb), nil
}

// fromProtoParts rebuilds a Duration from the fields of pb without
// validating them.
func fromProtoParts(pb *durationpb.Duration) Duration {
	if nanos, ok := protoNanos(pb); ok {
		return Nanoseconds(float64(nanos))
	}
	millis := pb.GetSeconds()*1000 + int64(pb.GetNanos())/1e6
	return Milliseconds(float64(millis))
}

// protoNanos returns the total nanoseconds of pb if they fit in an int64.
func protoNanos(pb *durationpb.Duration) (int64, bool) {
	secs := pb.GetSeconds()
	if secs >= maxStdSeconds || secs <= -maxStdSeconds {
		return 0, false
	}
	// |secs| < maxStdSeconds, so secs*1e9 + nanos cannot overflow.
	return secs*int64(time.Second) + int64(pb.GetNanos()), true
}
