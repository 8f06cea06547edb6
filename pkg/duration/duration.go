package duration

import (
	"cmp"
	"iter"
	"math"
	"strconv"
)

// Unit ratios.
const (
	// NanosPerSecond is the number of nanoseconds in a second.
	NanosPerSecond = 1e9

	// MicrosPerSecond is the number of microseconds in a second.
	MicrosPerSecond = 1e6

	// MillisPerSecond is the number of milliseconds in a second.
	MillisPerSecond = 1e3

	// SecondsPerMinute is the number of seconds in a minute.
	SecondsPerMinute = 60.0

	// SecondsPerHour is the number of seconds in an hour.
	SecondsPerHour = SecondsPerMinute * 60

	// SecondsPerDay is the number of seconds in a day.
	SecondsPerDay = SecondsPerHour * 24

	// SecondsPerYear is the number of seconds in a year of exactly 365 days.
	SecondsPerYear = SecondsPerDay * 365
)

// Duration is an amount of elapsed time stored as a float64 number of
// seconds.
//
// Unlike time.Duration it is meant for simulation and arithmetic rather than
// exact timekeeping: it is only as precise as a float64, and values may be
// infinite or NaN as the result of division. The zero value is zero seconds.
//
// Durations compare with == using IEEE-754 semantics, so positive and
// negative zero are equal and NaN equals nothing.
type Duration struct {
	secs float64
}

// Years returns a Duration of the given number of 365-day years.
func Years(years float64) Duration {
	return Duration{secs: years * SecondsPerYear}
}

// Days returns a Duration of the given number of days.
func Days(days float64) Duration {
	return Duration{secs: days * SecondsPerDay}
}

// Hours returns a Duration of the given number of hours.
func Hours(hours float64) Duration {
	return Duration{secs: hours * SecondsPerHour}
}

// Minutes returns a Duration of the given number of minutes.
func Minutes(mins float64) Duration {
	return Duration{secs: mins * SecondsPerMinute}
}

// Seconds returns a Duration of the given number of seconds.
func Seconds(secs float64) Duration {
	return Duration{secs: secs}
}

// Milliseconds returns a Duration of the given number of milliseconds.
func Milliseconds(millis float64) Duration {
	return Duration{secs: millis / MillisPerSecond}
}

// Microseconds returns a Duration of the given number of microseconds.
func Microseconds(micros float64) Duration {
	return Duration{secs: micros / MicrosPerSecond}
}

// Nanoseconds returns a Duration of the given number of nanoseconds.
func Nanoseconds(nanos float64) Duration {
	return Duration{secs: nanos / NanosPerSecond}
}

// Zero returns a Duration of no elapsed time.
func Zero() Duration {
	return Duration{}
}

// MinValue returns the most negative finite Duration.
func MinValue() Duration {
	return Duration{secs: -math.MaxFloat64}
}

// MaxValue returns the largest finite Duration.
func MaxValue() Duration {
	return Duration{secs: math.MaxFloat64}
}

// Years returns the duration as a fractional number of 365-day years.
func (d Duration) Years() float64 { return d.secs / SecondsPerYear }

// Days returns the duration as a fractional number of days.
func (d Duration) Days() float64 { return d.secs / SecondsPerDay }

// Hours returns the duration as a fractional number of hours.
func (d Duration) Hours() float64 { return d.secs / SecondsPerHour }

// Minutes returns the duration as a fractional number of minutes.
func (d Duration) Minutes() float64 { return d.secs / SecondsPerMinute }

// Seconds returns the duration as a fractional number of seconds.
func (d Duration) Seconds() float64 { return d.secs }

// Milliseconds returns the duration as a fractional number of milliseconds.
func (d Duration) Milliseconds() float64 { return d.secs * MillisPerSecond }

// Microseconds returns the duration as a fractional number of microseconds.
func (d Duration) Microseconds() float64 { return d.secs * MicrosPerSecond }

// Nanoseconds returns the duration as a fractional number of nanoseconds.
func (d Duration) Nanoseconds() float64 { return d.secs * NanosPerSecond }

// Abs returns the absolute value of d.
func (d Duration) Abs() Duration {
	return Duration{secs: math.Abs(d.secs)}
}

// IsZero reports whether d is exactly zero. Negative zero is zero.
func (d Duration) IsZero() bool {
	return d.secs == 0
}

// IsPositive reports whether the sign bit of d is clear.
func (d Duration) IsPositive() bool {
	return !math.Signbit(d.secs)
}

// IsNegative reports whether the sign bit of d is set, which includes
// negative zero.
func (d Duration) IsNegative() bool {
	return math.Signbit(d.secs)
}

// IsFinite reports whether d is neither infinite nor NaN.
func (d Duration) IsFinite() bool {
	return !math.IsInf(d.secs, 0) && !math.IsNaN(d.secs)
}

// Neg returns -d.
func (d Duration) Neg() Duration {
	return Duration{secs: -d.secs}
}

// Add returns d+o.
func (d Duration) Add(o Duration) Duration {
	return Duration{secs: d.secs + o.secs}
}

// Sub returns d-o.
func (d Duration) Sub(o Duration) Duration {
	return Duration{secs: d.secs - o.secs}
}

// Mul returns d scaled by k.
func (d Duration) Mul(k float64) Duration {
	return Duration{secs: d.secs * k}
}

// Scale returns k*d. It is Mul with the operands the other way around.
func Scale(k float64, d Duration) Duration {
	return Duration{secs: k * d.secs}
}

// Div returns d divided by k. Dividing by zero yields an infinite or NaN
// duration.
func (d Duration) Div(k float64) Duration {
	return Duration{secs: d.secs / k}
}

// Ratio returns d/o as a dimensionless number. A zero divisor yields an
// infinite or NaN ratio.
func (d Duration) Ratio(o Duration) float64 {
	return d.secs / o.secs
}

// AddAssign sets *d to d.Add(o).
func (d *Duration) AddAssign(o Duration) { *d = d.Add(o) }

// SubAssign sets *d to d.Sub(o).
func (d *Duration) SubAssign(o Duration) { *d = d.Sub(o) }

// MulAssign sets *d to d.Mul(k).
func (d *Duration) MulAssign(k float64) { *d = d.Mul(k) }

// DivAssign sets *d to d.Div(k).
func (d *Duration) DivAssign(k float64) { *d = d.Div(k) }

// Equal reports whether d == o.
func (d Duration) Equal(o Duration) bool {
	return d.secs == o.secs
}

// Less reports whether d < o.
func (d Duration) Less(o Duration) bool {
	return d.secs < o.secs
}

// Compare returns -1, 0 or +1 like cmp.Compare. NaN sorts before every other
// value and equal to itself.
func (d Duration) Compare(o Duration) int {
	return cmp.Compare(d.secs, o.secs)
}

// ApproxEqual reports whether d and o differ by at most tolerance, either in
// absolute seconds or relative to the larger magnitude.
func (d Duration) ApproxEqual(o Duration, tolerance float64) bool {
	if d.secs == o.secs {
		return true
	}
	diff := math.Abs(d.secs - o.secs)
	if diff <= tolerance {
		return true
	}
	largest := math.Max(math.Abs(d.secs), math.Abs(o.secs))
	return diff <= largest*tolerance
}

// Sum returns the sum of ds, folded left to right from Zero.
func Sum(ds ...Duration) Duration {
	total := Zero()
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

// SumSeq returns the sum of every duration produced by seq.
func SumSeq(seq iter.Seq[Duration]) Duration {
	total := Zero()
	for d := range seq {
		total = total.Add(d)
	}
	return total
}

// displayUnits is ordered coarsest first.
var displayUnits = []struct {
	name      string
	threshold float64
	scale     func(Duration) float64
}{
	{"years", SecondsPerYear, Duration.Years},
	{"days", SecondsPerDay, Duration.Days},
	{"hours", SecondsPerHour, Duration.Hours},
	{"minutes", SecondsPerMinute, Duration.Minutes},
	{"seconds", 1, Duration.Seconds},
	{"milliseconds", 1e-3, Duration.Milliseconds},
	{"microseconds", 1e-6, Duration.Microseconds},
}

// String renders d in the coarsest unit it strictly exceeds, e.g.
// "3.5 minutes". Exactly one day renders as "24 hours". Values that exceed
// no unit, including all negative values, render in nanoseconds.
func (d Duration) String() string {
	for _, u := range displayUnits {
		if d.secs > u.threshold {
			return formatFloat(u.scale(d)) + " " + u.name
		}
	}
	return formatFloat(d.Nanoseconds()) + " nanoseconds"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
