package steplog

import (
	"strings"
	"time"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// Event is a single trace record of a simulation run.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp is the wall-clock time the event was recorded.
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID uniquely identifies the run (UUID).
	RunID string `cbor:"2,keyasint"`

	// Scenario is the name of the simulated scenario.
	Scenario string `cbor:"3,keyasint,omitempty"`

	// Kind classifies the event.
	Kind Kind `cbor:"4,keyasint"`

	// Index is the sample index within the run.
	Index int `cbor:"5,keyasint"`

	// Time is the simulated time of the sample.
	Time duration.Duration `cbor:"6,keyasint"`

	// Step is the integration step size.
	Step duration.Duration `cbor:"7,keyasint"`

	// State holds the model variables after the step.
	State map[string]float64 `cbor:"8,keyasint,omitempty"`

	// Wall is the wall time spent on the run so far (end events only).
	Wall *duration.Duration `cbor:"9,keyasint,omitempty"`

	// Error is the failure message (error events only).
	Error string `cbor:"10,keyasint,omitempty"`
}

// Kind classifies trace events.
type Kind uint8

const (
	// KindStart marks the beginning of a run.
	KindStart Kind = 0
	// KindStep is a single integration step.
	KindStep Kind = 1
	// KindEnd marks the successful end of a run.
	KindEnd Kind = 2
	// KindError marks a run that stopped early.
	KindError Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "START"
	case KindStep:
		return "STEP"
	case KindEnd:
		return "END"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseKind returns the Kind with the given (case-insensitive) name.
func ParseKind(s string) (Kind, bool) {
	for k := KindStart; k <= KindError; k++ {
		if strings.EqualFold(k.String(), s) {
			return k, true
		}
	}
	return 0, false
}
