package duration

import (
	"fmt"
	"math"
	"strings"
)

// Decomposed is a human-readable breakdown of a Duration into days, hours,
// minutes, seconds and a fractional second.
//
// It uses a sign-and-magnitude representation: every component holds part
// of the absolute value and only Sign carries the direction.
type Decomposed struct {
	Days    uint64
	Hours   uint32
	Minutes uint32
	Seconds uint32

	// Fraction is the sub-second remainder in [0, 1). For infinite or NaN
	// durations it holds the whole non-finite magnitude instead.
	Fraction float64

	// Sign is +1 or -1.
	Sign int8
}

// DecomposedZero returns the decomposition of a zero duration.
func DecomposedZero() Decomposed {
	return Decomposed{Sign: 1}
}

// FromComponents returns a positive Decomposed with the given components.
// Components are not normalized, so 90 minutes stays 90 minutes.
func FromComponents(days uint64, hours, minutes, seconds uint32, fraction float64) Decomposed {
	return Decomposed{
		Days:     days,
		Hours:    hours,
		Minutes:  minutes,
		Seconds:  seconds,
		Fraction: fraction,
		Sign:     1,
	}
}

// Decompose breaks d into components. Zero and positive durations get Sign
// +1, negative durations Sign -1.
func (d Duration) Decompose() Decomposed {
	out := Decomposed{Sign: 1}
	if d.secs < 0 {
		out.Sign = -1
	}

	rem := math.Abs(d.secs)
	if math.IsInf(rem, 0) || math.IsNaN(rem) {
		out.Fraction = rem
		return out
	}

	days, rem := divMod(rem, SecondsPerDay)
	if days >= math.MaxUint64 {
		// Too many days for the field: carry the magnitude like Inf.
		out.Fraction = math.Abs(d.secs)
		return out
	}
	out.Days = uint64(days)

	hours, rem := divMod(rem, SecondsPerHour)
	out.Hours = uint32(hours)

	minutes, rem := divMod(rem, SecondsPerMinute)
	out.Minutes = uint32(minutes)

	whole := math.Trunc(rem)
	out.Seconds = uint32(whole)
	out.Fraction = rem - whole

	return out
}

// divMod splits x into a whole number of units and an exact remainder.
func divMod(x, unit float64) (q, r float64) {
	r = math.Mod(x, unit)
	q = math.Round((x - r) / unit)
	return q, r
}

// Duration recombines the components into a Duration, applying Sign.
func (c Decomposed) Duration() Duration {
	secs := float64(c.Days)*SecondsPerDay +
		float64(c.Hours)*SecondsPerHour +
		float64(c.Minutes)*SecondsPerMinute +
		float64(c.Seconds) +
		c.Fraction
	if c.IsNegative() {
		secs = -secs
	}
	return Seconds(secs)
}

// IsNegative reports whether Sign is negative.
func (c Decomposed) IsNegative() bool {
	return c.Sign < 0
}

// Negate returns c with the sign flipped. The magnitude is unchanged.
func (c Decomposed) Negate() Decomposed {
	if c.IsNegative() {
		c.Sign = 1
	} else {
		c.Sign = -1
	}
	return c
}

// String renders c as "[<days>d ][-]hh:mm:ss[.fraction]", e.g.
// "2d 03:04:05.25" or "-00:03:00". The fraction is printed with as many
// digits as it has, without rounding. A magnitude carried whole in Fraction
// renders as plain seconds ("1000000000000000000000000000000s", "-Inf").
func (c Decomposed) String() string {
	var b strings.Builder
	if !(c.Fraction < 1) {
		if c.IsNegative() {
			b.WriteByte('-')
		}
		switch {
		case math.IsNaN(c.Fraction):
			b.WriteString("NaN")
		case math.IsInf(c.Fraction, 0):
			b.WriteString("Inf")
		default:
			b.WriteString(formatFloat(c.Fraction) + "s")
		}
		return b.String()
	}
	if c.Days != 0 {
		fmt.Fprintf(&b, "%dd ", c.Days)
	}
	if c.IsNegative() {
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
	if c.Fraction != 0 {
		b.WriteString(strings.TrimPrefix(formatFloat(c.Fraction), "0"))
	}
	return b.String()
}
