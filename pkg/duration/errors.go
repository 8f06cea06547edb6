package duration

import (
	"errors"
	"fmt"
	"time"
)

// Duration errors.
var (
	// ErrOutOfRange is returned when a duration cannot be represented by the
	// target type of a conversion (negative, too large or not a number).
	ErrOutOfRange = errors.New("converted duration value is out of range")

	// ErrClockOrder matches any *ClockOrderError.
	ErrClockOrder = errors.New("clock went backwards")

	// ErrSyntax is returned by Parse for malformed input.
	ErrSyntax = errors.New("invalid duration syntax")
)

// ClockOrderError reports a wall-clock elapsed computation where the instant
// supposed to come first is actually later. The system clock was adjusted
// between the two readings, or the caller swapped the operands.
type ClockOrderError struct {
	// Earlier is the instant passed as the starting point.
	Earlier time.Time

	// Later is the instant the elapsed time was requested for.
	Later time.Time
}

// Behind returns how far Later lies before Earlier.
func (e *ClockOrderError) Behind() Duration {
	return secondsBetween(e.Later, e.Earlier)
}

func (e *ClockOrderError) Error() string {
	return fmt.Sprintf("%v: start instant is %v after the end instant", ErrClockOrder, e.Behind())
}

// Is reports whether target is ErrClockOrder.
func (e *ClockOrderError) Is(target error) bool {
	return target == ErrClockOrder
}

// outOfRange wraps ErrOutOfRange with the offending value and target type.
func outOfRange(d Duration, target string) error {
	return fmt.Errorf("%w: %s cannot hold %g seconds", ErrOutOfRange, target, d.secs)
}
