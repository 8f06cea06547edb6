package duration

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// unitNames maps accepted unit spellings to their constructor.
var unitNames = map[string]func(float64) Duration{
	"y": Years, "yr": Years, "yrs": Years, "year": Years, "years": Years,
	"d": Days, "day": Days, "days": Days,
	"h": Hours, "hr": Hours, "hrs": Hours, "hour": Hours, "hours": Hours,
	"m": Minutes, "min": Minutes, "mins": Minutes, "minute": Minutes, "minutes": Minutes,
	"s": Seconds, "sec": Seconds, "secs": Seconds, "second": Seconds, "seconds": Seconds,
	"ms": Milliseconds, "msec": Milliseconds, "millisecond": Milliseconds, "milliseconds": Milliseconds,
	"us": Microseconds, "µs": Microseconds, "μs": Microseconds, "usec": Microseconds,
	"microsecond": Microseconds, "microseconds": Microseconds,
	"ns": Nanoseconds, "nsec": Nanoseconds, "nanosecond": Nanoseconds, "nanoseconds": Nanoseconds,
}

// Parse parses a number followed by an optional unit, such as "90s",
// "1.5 hours", "-3 minutes" or "2.5e3 ms". A bare number is a number of
// seconds. Parse accepts everything String produces.
func Parse(s string) (Duration, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return Zero(), fmt.Errorf("%w: empty string", ErrSyntax)
	}

	// The unit is the trailing run of letters.
	split := strings.LastIndexFunc(in, func(r rune) bool { return !unicode.IsLetter(r) }) + 1
	number := strings.TrimSpace(in[:split])
	unit := strings.ToLower(in[split:])

	// "NaN" and "Inf" are all letters; treat them as a bare number.
	if number == "" || strings.HasSuffix(number, "+") || strings.HasSuffix(number, "-") {
		if v, err := strconv.ParseFloat(in, 64); err == nil {
			return Seconds(v), nil
		}
		return Zero(), fmt.Errorf("%w: %q has no number", ErrSyntax, s)
	}

	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Zero(), fmt.Errorf("%w: bad number in %q", ErrSyntax, s)
	}
	if unit == "" {
		return Seconds(v), nil
	}

	ctor, ok := unitNames[unit]
	if !ok {
		return Zero(), fmt.Errorf("%w: unknown unit %q in %q", ErrSyntax, unit, s)
	}
	return ctor(v), nil
}

// MustParse is like Parse but panics on error. It is meant for constants
// and tests.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
